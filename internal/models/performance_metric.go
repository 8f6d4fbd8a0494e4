package models

import "time"

// PerformanceMetric rows are append-only: history is never rewritten,
// the leaderboard reduces over the full set.
type PerformanceMetric struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AthleteID uint    `gorm:"index" json:"athlete_id"`
	Athlete   Profile `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"athlete"`

	RecordedByID uint `json:"recorded_by_id"`

	MetricKey string `gorm:"size:50;index" json:"metric_key"`

	// Fixed columns for the well-known metrics.
	SprintSeconds  *float64 `json:"sprint_seconds"`
	VerticalJumpCM *float64 `json:"vertical_jump_cm"`
	AgilitySeconds *float64 `json:"agility_seconds"`
	BenchPressKG   *float64 `json:"bench_press_kg"`
	EnduranceLevel *float64 `json:"endurance_level"`

	// Free-form bag for anything without a fixed column. Legacy rows may
	// also carry a "verified" key in here; the column below is authoritative.
	CustomMetrics string `gorm:"type:text" json:"custom_metrics"`

	Verified bool `gorm:"default:false" json:"verified"`

	TestDate time.Time `gorm:"index" json:"test_date"`

	CreatedAt time.Time `json:"created_at"`
}
