package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/primefit-labs/training-scheduler/internal/audit"
	"github.com/primefit-labs/training-scheduler/internal/domain/leaderboard"
	"github.com/primefit-labs/training-scheduler/internal/httpresp"
	"github.com/primefit-labs/training-scheduler/internal/middleware"
	"github.com/primefit-labs/training-scheduler/internal/models"
	"github.com/primefit-labs/training-scheduler/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type MetricHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewMetricHandler(db *gorm.DB, audit *audit.Dispatcher) *MetricHandler {
	return &MetricHandler{db: db, audit: audit}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateMetricRequest struct {
	AthleteID uint   `json:"athlete_id" binding:"required"`
	MetricKey string `json:"metric_key" binding:"required"`

	Value float64 `json:"value" binding:"required"`

	// Extra readings without a fixed column; stored in the JSON bag.
	CustomValues map[string]float64 `json:"custom_values"`

	Verified bool   `json:"verified"`
	TestDate string `json:"test_date"` // "2006-01-02", default today
}

// ======================================================
// CREATE
// ======================================================

// Create records one measurement. The verified flag is resolved at write
// time: athletes self-reporting always get verified=false, whatever the
// payload claims; coach and admin entries keep the submitted flag.
func (h *MetricHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	var req CreateMetricRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	metric, ok := leaderboard.Lookup(req.MetricKey)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown_metric"})
		return
	}

	athleteID := req.AthleteID
	verified := req.Verified
	if role == middleware.RoleAthlete {
		athleteID = userID
		verified = false
	}

	var athlete models.Profile
	if err := h.db.Where("id = ? AND role = ?", athleteID, middleware.RoleAthlete).
		First(&athlete).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "athlete_not_found"})
		return
	}

	testDate := timezone.Now()
	if req.TestDate != "" {
		parsed, err := time.ParseInLocation("2006-01-02", req.TestDate, timezone.Platform())
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_test_date"})
			return
		}
		testDate = parsed
	}

	row := models.PerformanceMetric{
		AthleteID:    athleteID,
		RecordedByID: userID,
		MetricKey:    req.MetricKey,
		Verified:     verified,
		TestDate:     testDate,
	}

	h.assignValue(&row, metric, req.Value)

	bag := map[string]float64{}
	if metric.JSONKey != "" {
		bag[metric.JSONKey] = req.Value
	}
	for k, v := range req.CustomValues {
		bag[k] = v
	}
	if len(bag) > 0 {
		if b, err := json.Marshal(bag); err == nil {
			row.CustomMetrics = string(b)
		}
	}

	if err := h.db.Create(&row).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_metric"})
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorID:  &userID,
		Action:   "metric_recorded",
		Entity:   "performance_metric",
		EntityID: &row.ID,
		Metadata: map[string]any{"metric": req.MetricKey, "verified": verified},
	})

	c.JSON(http.StatusCreated, row)
}

func (h *MetricHandler) assignValue(row *models.PerformanceMetric, metric leaderboard.Metric, v float64) {
	switch metric.DBColumn {
	case "sprint_seconds":
		row.SprintSeconds = &v
	case "vertical_jump_cm":
		row.VerticalJumpCM = &v
	case "agility_seconds":
		row.AgilitySeconds = &v
	case "bench_press_kg":
		row.BenchPressKG = &v
	case "endurance_level":
		row.EnduranceLevel = &v
	}
}

// ======================================================
// HISTORY
// ======================================================

func (h *MetricHandler) ListForAthlete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	id64, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_athlete_id"})
		return
	}
	athleteID := uint(id64)

	// Athletes see only their own history.
	if role == middleware.RoleAthlete && athleteID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient_role"})
		return
	}

	q := h.db.Where("athlete_id = ?", athleteID)

	if key := c.Query("metric"); key != "" {
		q = q.Where("metric_key = ?", key)
	}

	var rows []models.PerformanceMetric
	if err := q.
		Order("test_date DESC, id DESC").
		Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_metrics"})
		return
	}

	httpresp.List(c, rows)
}
