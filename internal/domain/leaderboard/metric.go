package leaderboard

import (
	"encoding/json"

	"github.com/primefit-labs/training-scheduler/internal/models"
)

// Metric describes one rankable measurement. A value is read from a fixed
// model column when DBColumn is set, otherwise from JSONKey inside the
// custom_metrics bag. LowerIsBetter flips the direction for timed metrics.
type Metric struct {
	Key           string `json:"key"`
	Label         string `json:"label"`
	Unit          string `json:"unit"`
	DBColumn      string `json:"-"`
	JSONKey       string `json:"-"`
	LowerIsBetter bool   `json:"lower_is_better"`
}

var Catalog = []Metric{
	{Key: "sprint_40m", Label: "40m Sprint", Unit: "s", DBColumn: "sprint_seconds", LowerIsBetter: true},
	{Key: "vertical_jump", Label: "Vertical Jump", Unit: "cm", DBColumn: "vertical_jump_cm"},
	{Key: "agility_5105", Label: "5-10-5 Agility", Unit: "s", DBColumn: "agility_seconds", LowerIsBetter: true},
	{Key: "bench_press", Label: "Bench Press", Unit: "kg", DBColumn: "bench_press_kg"},
	{Key: "beep_test", Label: "Beep Test", Unit: "level", DBColumn: "endurance_level"},
	{Key: "broad_jump", Label: "Broad Jump", Unit: "cm", JSONKey: "broad_jump_cm"},
	{Key: "plank_hold", Label: "Plank Hold", Unit: "s", JSONKey: "plank_hold_s"},
	{Key: "mile_run", Label: "Mile Run", Unit: "s", JSONKey: "mile_run_s", LowerIsBetter: true},
}

func Lookup(key string) (Metric, bool) {
	for _, m := range Catalog {
		if m.Key == key {
			return m, true
		}
	}
	return Metric{}, false
}

// Value extracts the numeric reading for this metric from a row. The second
// return is false when neither the fixed column nor the JSON bag resolves
// to a number; such rows are skipped by the ranking.
func (m Metric) Value(row *models.PerformanceMetric) (float64, bool) {
	if m.DBColumn != "" {
		if v := columnValue(m.DBColumn, row); v != nil {
			return *v, true
		}
		return 0, false
	}

	if m.JSONKey == "" || row.CustomMetrics == "" {
		return 0, false
	}

	var bag map[string]json.RawMessage
	if err := json.Unmarshal([]byte(row.CustomMetrics), &bag); err != nil {
		return 0, false
	}

	raw, ok := bag[m.JSONKey]
	if !ok {
		return 0, false
	}

	var num float64
	if err := json.Unmarshal(raw, &num); err != nil {
		return 0, false
	}
	return num, true
}

func columnValue(col string, row *models.PerformanceMetric) *float64 {
	switch col {
	case "sprint_seconds":
		return row.SprintSeconds
	case "vertical_jump_cm":
		return row.VerticalJumpCM
	case "agility_seconds":
		return row.AgilitySeconds
	case "bench_press_kg":
		return row.BenchPressKG
	case "endurance_level":
		return row.EnduranceLevel
	}
	return nil
}

// Better reports whether a beats b under this metric's direction.
func (m Metric) Better(a, b float64) bool {
	if m.LowerIsBetter {
		return a < b
	}
	return a > b
}
