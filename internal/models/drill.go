package models

import "time"

type Drill struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedByID uint `json:"created_by_id"`

	Name        string `gorm:"size:100;not null" json:"name"`
	Category    string `gorm:"size:50;index" json:"category"`
	Description string `gorm:"size:1000" json:"description"`
	VideoURL    string `gorm:"size:255" json:"video_url"`
	Difficulty  string `gorm:"size:20" json:"difficulty"`

	// Semicolon-separated lists, same convention as the CSV import format.
	Tags       string `gorm:"size:255" json:"tags"`
	Equipment  string `gorm:"size:255" json:"equipment"`
	FocusAreas string `gorm:"size:255" json:"focus_areas"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
