package models

import "time"

type AvailabilitySlot struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CoachID uint    `gorm:"index" json:"coach_id"`
	Coach   Profile `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"coach"`

	SlotDate  time.Time `gorm:"index" json:"slot_date"`
	StartTime string    `gorm:"size:5" json:"start_time"` // "15:04"
	EndTime   string    `gorm:"size:5" json:"end_time"`

	MaxBookings     int `gorm:"default:1" json:"max_bookings"`
	CurrentBookings int `gorm:"default:0" json:"current_bookings"`

	IsAvailable bool   `gorm:"default:true" json:"is_available"`
	Location    string `gorm:"size:255" json:"location"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
