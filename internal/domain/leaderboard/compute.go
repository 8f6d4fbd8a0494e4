package leaderboard

import (
	"sort"

	"github.com/primefit-labs/training-scheduler/internal/models"
)

// TopN caps the ranked output.
const TopN = 25

type Entry struct {
	AthleteID uint    `json:"athlete_id"`
	Name      string  `json:"name"`
	Region    string  `json:"region"`
	Value     float64 `json:"value"`
	Rank      int     `json:"rank"`
	TestCount int     `json:"test_count"`
}

// BestPerAthlete reduces metric rows to the single best value per athlete.
// Rows are expected in test_date-descending order; the first qualifying row
// wins ties, matching the scan order of the ranking.
func BestPerAthlete(metric Metric, rows []models.PerformanceMetric, verifiedOnly bool) map[uint]float64 {
	best := make(map[uint]float64)

	for i := range rows {
		row := &rows[i]

		if verifiedOnly && !row.Verified {
			continue
		}

		v, ok := metric.Value(row)
		if !ok {
			continue
		}

		cur, seen := best[row.AthleteID]
		if !seen || metric.Better(v, cur) {
			best[row.AthleteID] = v
		}
	}

	return best
}

// Rank joins best values to profiles, orders by the metric direction and
// truncates to TopN. Athletes without a qualifying value are left out.
func Rank(metric Metric, profiles []models.Profile, best map[uint]float64, counts map[uint]int) []Entry {
	entries := make([]Entry, 0, len(best))

	for _, p := range profiles {
		v, ok := best[p.ID]
		if !ok {
			continue
		}
		entries = append(entries, Entry{
			AthleteID: p.ID,
			Name:      p.Name,
			Region:    p.Region,
			Value:     v,
			TestCount: counts[p.ID],
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return metric.Better(entries[i].Value, entries[j].Value)
	})

	if len(entries) > TopN {
		entries = entries[:TopN]
	}

	for i := range entries {
		entries[i].Rank = i + 1
	}

	return entries
}
