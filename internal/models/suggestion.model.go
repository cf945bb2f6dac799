package models

import "gorm.io/datatypes"

// Suggestion is a feedback entry accepted through the captcha-gated
// suggestion endpoint.
type Suggestion struct {
	BaseUUIDModel
	Types       datatypes.JSONSlice[string] `gorm:"type:text" json:"types"`
	Explanation string                      `gorm:"type:text" json:"explanation"`
}

func (Suggestion) TableName() string { return "suggestions" }
