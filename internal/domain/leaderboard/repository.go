package leaderboard

import (
	"context"

	"github.com/primefit-labs/training-scheduler/internal/models"
)

type Repository interface {
	ListOptedInAthletes(
		ctx context.Context,
		sport string,
		region string,
	) ([]models.Profile, error)

	ListMetricsForAthletes(
		ctx context.Context,
		athleteIDs []uint,
		metricKey string,
	) ([]models.PerformanceMetric, error)
}
