package models

type StyleProfileIn struct {
	BodyType         string   `json:"body_type" validate:"omitempty,max=50"`
	Gender           string   `json:"gender" validate:"omitempty,max=30"`
	SkinTone         string   `json:"skin_tone" validate:"omitempty,max=50"`
	StylePreferences []string `json:"style_preferences" validate:"omitempty,max=20,dive,max=50"`
}

type ClothingUploadRequestIn struct {
	ClothingId uint   `json:"clothing_id"`
	FileName   string `json:"file_name"`
}

type ClothingUploadRequestOut struct {
	ClothingId uint   `json:"clothing_id"`
	FileName   string `json:"file_name"`
	UploadUrl  string `json:"upload_url"`
}
