package models

import "time"

type JsonModel struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type GoogleAuthSignIn struct {
	IdToken  string `json:"idToken" validate:"required"`
	Platform string `json:"platform" validate:"required,platform"`
}

type SignUpIn struct {
	ProfileIn
	IdToken  string `json:"idToken" validate:"required"`
	Platform string `json:"platform" validate:"required,platform"`
}

type ProfileIn struct {
	Name      string `json:"name" validate:"required"`
	UTMSource string `json:"utm_source"`
}

type GoogleSignInOut struct {
	Email string `json:"email"`

	// null in the first step, before sign-up completes
	Id string `json:"id"`

	New         bool   `json:"new"`
	Avatar      string `json:"avatar"`
	AccessToken string `json:"access_token"`
}

type UserMeInfoOut struct {
	Id                   string        `json:"id"`
	Name                 string        `json:"name"`
	Email                string        `json:"email"`
	Status               string        `json:"-"`
	AvatarURL            string        `json:"avatar_url"`
	Subscription         *string       `json:"subscription"`
	ReceiveNotifications bool          `json:"receive_notifications"`
	Profile              *StyleProfile `json:"profile"`
}
