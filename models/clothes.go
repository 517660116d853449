package models

import "github.com/lib/pq"

type Clothing struct {
	JsonModel
	Name         string      `json:"name"`
	Description  *string     `gorm:"type:text" json:"description"`
	ClothingType string      `json:"clothing_type"` // top, bottom, shoes, outerwear, accessory
	Owner        UserAccount `json:"-"`
	OwnerID      uint        `json:"-"`

	// normalized attributes consumed by the generation engine
	Color        string         `json:"color"`
	Material     string         `json:"material"`
	Pattern      string         `json:"pattern"`
	Formality    int            `json:"formality"`     // 0 loungewear .. 4 black tie
	WearLayer    string         `json:"wear_layer"`    // base, mid, outer
	Neckline     string         `json:"neckline"`      // crew, collar, turtleneck, ...
	SleeveLength string         `json:"sleeve_length"` // sleeveless, short, long
	TempMin      float64        `json:"temp_min"`      // comfort range, °F
	TempMax      float64        `json:"temp_max"`
	OccasionTags pq.StringArray `gorm:"type:text[]" json:"occasion_tags"`
	StyleTags    pq.StringArray `gorm:"type:text[]" json:"style_tags"`

	// usage statistics feeding the favorite/usage score
	WearCount int    `json:"wear_count"`
	Favorite  bool   `json:"favorite"`
	LastWorn  *int64 `json:"last_worn"` // unix millis

	Status              string  `json:"status"`            // temporary, in_closet
	ImageStatus         string  `json:"image_status"`      // draft, uploaded
	ProcessingStatus    string  `json:"processing_status"` // idle, pending, completed, failed
	ProcessRetryTimes   int     `json:"process_retry_times"`
	ProcessErrorMessage *string `json:"process_error_message"`
	ImageURL            *string `json:"image_url"`
}

// OutfitGeneration persists one generation request and its outcome,
// including the healing audit summary for observability.
type OutfitGeneration struct {
	JsonModel
	UserAccountID uint        `json:"-"`
	UserAccount   UserAccount `json:"user_account"`

	Occasion         string   `json:"occasion"`
	Style            string   `json:"style"`
	Mood             string   `json:"mood"`
	Temperature      *float64 `json:"temperature"`
	WeatherCondition *string  `json:"weather_condition"`
	BaseClothingID   *uint    `json:"base_clothing_id"`

	Status             string        `json:"status"` // pending, completed, failed
	GenerationStrategy *string       `json:"generation_strategy"`
	ConfidenceScore    *float64      `json:"confidence_score"`
	ItemIDs            pq.Int64Array `gorm:"type:integer[]" json:"item_ids"`

	// engine output kept verbatim as JSON for auditability
	HealingSummary  *string `gorm:"type:text" json:"healing_summary"`
	RemainingErrors *string `gorm:"type:text" json:"remaining_errors"`

	WardrobeSize  int `json:"wardrobe_size"`
	ItemsSelected int `json:"items_selected"`

	Duration               *float64 `json:"duration"` // in seconds
	GenerationRetryTimes   int      `json:"generation_retry_times"`
	GenerationErrorMessage *string  `json:"generation_error_message"`
}
