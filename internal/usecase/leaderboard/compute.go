package leaderboard

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	domain "github.com/primefit-labs/training-scheduler/internal/domain/leaderboard"
	"github.com/primefit-labs/training-scheduler/internal/httperr"
	"github.com/primefit-labs/training-scheduler/internal/models"
)

// Boards are cheap to recompute but hot on sport pages, so computed
// results sit in redis for a short window keyed by the full filter tuple.
const cacheTTL = 60 * time.Second

// ======================================================
// QUERY / RESULT
// ======================================================

type Query struct {
	Sport        string
	MetricKey    string
	Region       string
	VerifiedOnly bool
}

type Board struct {
	Metric     domain.Metric  `json:"metric"`
	Entries    []domain.Entry `json:"entries"`
	ComputedAt time.Time      `json:"computed_at"`
	Cached     bool           `json:"cached"`
}

// ======================================================
// USE CASE
// ======================================================

type Compute struct {
	repo domain.Repository
	rdb  *redis.Client
}

// NewCompute builds the leaderboard usecase. rdb may be nil; the board is
// then recomputed on every call.
func NewCompute(repo domain.Repository, rdb *redis.Client) *Compute {
	return &Compute{repo: repo, rdb: rdb}
}

func (uc *Compute) Execute(ctx context.Context, q Query) (*Board, error) {
	metric, ok := domain.Lookup(q.MetricKey)
	if !ok {
		return nil, httperr.ErrBusiness("unknown_metric")
	}

	key := cacheKey(q)

	if uc.rdb != nil {
		if cached, err := uc.rdb.Get(ctx, key).Bytes(); err == nil {
			var board Board
			if err := json.Unmarshal(cached, &board); err == nil {
				board.Cached = true
				return &board, nil
			}
		}
	}

	board, err := uc.compute(ctx, metric, q)
	if err != nil {
		return nil, err
	}

	if uc.rdb != nil {
		if payload, err := json.Marshal(board); err == nil {
			if err := uc.rdb.Set(ctx, key, payload, cacheTTL).Err(); err != nil {
				log.Printf("leaderboard cache write failed: %v", err)
			}
		}
	}

	return board, nil
}

func (uc *Compute) compute(ctx context.Context, metric domain.Metric, q Query) (*Board, error) {
	profiles, err := uc.repo.ListOptedInAthletes(ctx, q.Sport, q.Region)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.ID)
	}

	rows, err := uc.repo.ListMetricsForAthletes(ctx, ids, q.MetricKey)
	if err != nil {
		return nil, err
	}

	best := domain.BestPerAthlete(metric, rows, q.VerifiedOnly)
	counts := countRows(rows)

	return &Board{
		Metric:     metric,
		Entries:    domain.Rank(metric, profiles, best, counts),
		ComputedAt: time.Now().UTC(),
	}, nil
}

func countRows(rows []models.PerformanceMetric) map[uint]int {
	counts := make(map[uint]int)
	for i := range rows {
		counts[rows[i].AthleteID]++
	}
	return counts
}

func cacheKey(q Query) string {
	return fmt.Sprintf("leaderboard:%s:%s:%s:%t", q.Sport, q.MetricKey, q.Region, q.VerifiedOnly)
}
