package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Reference string `gorm:"size:36;uniqueIndex" json:"reference"`

	AthleteID uint    `gorm:"index" json:"athlete_id"`
	Athlete   Profile `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"athlete"`

	CoachID uint    `gorm:"index" json:"coach_id"`
	Coach   Profile `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"coach"`

	SlotID *uint             `gorm:"index" json:"slot_id"`
	Slot   *AvailabilitySlot `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"slot,omitempty"`

	ServiceID *uint    `json:"service_id"`
	Service   *Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service,omitempty"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	Notes       string     `gorm:"size:255" json:"notes"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
