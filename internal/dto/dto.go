package dto

import "time"

type BookingListDTO struct {
	ID          uint       `json:"id"`
	Reference   string     `json:"reference"`
	Status      string     `json:"status"`
	AthleteName string     `json:"athlete_name"`
	CoachName   string     `json:"coach_name"`
	ServiceName string     `json:"service_name,omitempty"`
	SlotDate    *time.Time `json:"slot_date,omitempty"`
	StartTime   string     `json:"start_time,omitempty"`
	EndTime     string     `json:"end_time,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type ConversationSummary struct {
	ID              uint       `json:"id"`
	OtherID         uint       `json:"other_id"`
	OtherName       string     `json:"other_name"`
	OtherRole       string     `json:"other_role"`
	LastMessage     string     `json:"last_message"`
	LastMessageAt   *time.Time `json:"last_message_at,omitempty"`
	LastMessageMine bool       `json:"last_message_mine"`
	UnreadCount     int        `json:"unread_count"`
}

type DrillImportResult struct {
	Total   int                `json:"total"`
	Created int                `json:"created"`
	Errors  []DrillImportError `json:"errors"`
}

type DrillImportError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}
