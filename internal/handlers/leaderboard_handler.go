package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/primefit-labs/training-scheduler/internal/domain/leaderboard"
	"github.com/primefit-labs/training-scheduler/internal/httperr"
	"github.com/primefit-labs/training-scheduler/internal/httpresp"
	ucLeaderboard "github.com/primefit-labs/training-scheduler/internal/usecase/leaderboard"
)

type LeaderboardHandler struct {
	computeUC *ucLeaderboard.Compute
}

func NewLeaderboardHandler(computeUC *ucLeaderboard.Compute) *LeaderboardHandler {
	return &LeaderboardHandler{computeUC: computeUC}
}

// Metrics exposes the catalog so the frontend can render the metric tabs.
func (h *LeaderboardHandler) Metrics(c *gin.Context) {
	httpresp.List(c, domain.Catalog)
}

func (h *LeaderboardHandler) Get(c *gin.Context) {
	metricKey := c.Query("metric")
	if metricKey == "" {
		httperr.BadRequest(c, "missing_metric", "metric is required.")
		return
	}

	board, err := h.computeUC.Execute(c.Request.Context(), ucLeaderboard.Query{
		Sport:        c.Query("sport"),
		MetricKey:    metricKey,
		Region:       c.Query("region"),
		VerifiedOnly: c.Query("verified_only") == "true",
	})
	if err != nil {
		if code := httperr.BusinessCode(err); code != "" {
			httperr.BadRequest(c, code, "Invalid leaderboard query.")
			return
		}
		httperr.Internal(c, "failed_to_compute_leaderboard", "Could not compute leaderboard.")
		return
	}

	httpresp.OK(c, board)
}
