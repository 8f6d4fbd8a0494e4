package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/primefit-labs/training-scheduler/internal/domain/leaderboard"
	"github.com/primefit-labs/training-scheduler/internal/models"
)

type LeaderboardGormRepository struct {
	db *gorm.DB
}

func NewLeaderboardGormRepository(db *gorm.DB) *LeaderboardGormRepository {
	return &LeaderboardGormRepository{db: db}
}

// ListOptedInAthletes returns athlete profiles visible on leaderboards,
// optionally narrowed by region and sport. Sport matching is a substring
// test against the semicolon list, same as the profile filter UI.
func (r *LeaderboardGormRepository) ListOptedInAthletes(
	ctx context.Context,
	sport string,
	region string,
) ([]models.Profile, error) {

	q := r.db.WithContext(ctx).
		Where("role = ? AND leaderboard_opt_in = ?", "athlete", true)

	if region != "" {
		q = q.Where("region = ?", region)
	}

	if sport != "" {
		q = q.Where("sports LIKE ?", "%"+sport+"%")
	}

	var profiles []models.Profile
	if err := q.Find(&profiles).Error; err != nil {
		return nil, err
	}

	return profiles, nil
}

// ListMetricsForAthletes returns metric rows for the given athletes in
// test_date-descending order, the scan order the reduction expects.
func (r *LeaderboardGormRepository) ListMetricsForAthletes(
	ctx context.Context,
	athleteIDs []uint,
	metricKey string,
) ([]models.PerformanceMetric, error) {

	if len(athleteIDs) == 0 {
		return []models.PerformanceMetric{}, nil
	}

	var rows []models.PerformanceMetric
	if err := r.db.WithContext(ctx).
		Where("athlete_id IN ? AND metric_key = ?", athleteIDs, metricKey).
		Order("test_date DESC, id DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}

// Compile-time check
var _ domain.Repository = (*LeaderboardGormRepository)(nil)
