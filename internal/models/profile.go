package models

import "time"

type Profile struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`

	Role string `gorm:"size:20;default:'athlete'" json:"role"`

	Age    int    `json:"age"`
	Sports string `gorm:"size:255" json:"sports"` // semicolon-separated list
	Region string `gorm:"size:100" json:"region"`

	LeaderboardOptIn bool `gorm:"default:false" json:"leaderboard_opt_in"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
