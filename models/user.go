package models

import (
	"time"

	"github.com/lib/pq"
)

type UserAccount struct {
	JsonModel
	Name   string `json:"name"`
	Email  string `json:"email" gorm:"unique"`
	Banned bool   `gorm:"default:false" json:"-"`
	LastIp string `json:"-"`
	//"STARTED_AUTH", "FINISHED_AUTH"
	Status    string   `json:"-"`
	GoogleID  string   `json:"-"`
	UTMSource string   `json:"utm_source"`
	Platform  Platform `sql:"type:ENUM('ios', 'android', 'web')" json:"platform"`

	Subscription               *string    `json:"subscription"`
	ExpirationDate             *time.Time `json:"-"`
	ConfirmedDeleteDate        *time.Time `json:"-"`
	EnforcedDailyGenerateLimit *int32     `json:"enforced_daily_generate_limit"`

	ReceiveNotifications bool `json:"receive_notifications"`
	IsSuperadmin         bool `json:"is_superadmin"`

	AvatarURL string `json:"avatar_url"`

	Profile *StyleProfile `gorm:"foreignKey:UserAccountID" json:"profile"`
}

// StyleProfile biases the scorer toward the user's taste; all fields
// optional, an absent profile means neutral scoring.
type StyleProfile struct {
	JsonModel
	UserAccountID    uint           `gorm:"uniqueIndex" json:"-"`
	BodyType         string         `json:"body_type"`
	Gender           string         `json:"gender"`
	SkinTone         string         `json:"skin_tone"`
	StylePreferences pq.StringArray `gorm:"type:text[]" json:"style_preferences"`
}

type UserPushToken struct {
	JsonModel
	UserAccountID uint
	UserAccount   UserAccount `json:"user_account"`
	Platform      Platform    `sql:"type:ENUM('ios', 'android', 'web')" json:"platform"`
	Token         string      `json:"token"`
	Active        bool        `gorm:"default:false" json:"-"`
}

type UserPushIn struct {
	Token    string `json:"token"`
	Platform string `json:"platform"`
}

type UserSettingsIn struct {
	ReceiveNotifications bool `json:"receive_notifications"`
}
