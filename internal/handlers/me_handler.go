package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/primefit-labs/training-scheduler/internal/httpresp"
	"github.com/primefit-labs/training-scheduler/internal/middleware"
	"github.com/primefit-labs/training-scheduler/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

// --------- Requests ---------

type UpdateMeRequest struct {
	Name             *string `json:"name,omitempty"`
	Phone            *string `json:"phone,omitempty"`
	Age              *int    `json:"age,omitempty"`
	Sports           *string `json:"sports,omitempty"`
	Region           *string `json:"region,omitempty"`
	LeaderboardOptIn *bool   `json:"leaderboard_opt_in,omitempty"`
}

// --------- Handlers ---------

func (h *MeHandler) GetMe(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var profile models.Profile
	if err := h.db.First(&profile, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile_not_found"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *MeHandler) UpdateMe(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var profile models.Profile
	if err := h.db.First(&profile, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile_not_found"})
		return
	}

	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Age != nil && (*req.Age < 5 || *req.Age > 100) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_age"})
		return
	}

	if req.Name != nil {
		profile.Name = *req.Name
	}
	if req.Phone != nil {
		profile.Phone = *req.Phone
	}
	if req.Age != nil {
		profile.Age = *req.Age
	}
	if req.Sports != nil {
		profile.Sports = *req.Sports
	}
	if req.Region != nil {
		profile.Region = *req.Region
	}
	if req.LeaderboardOptIn != nil {
		profile.LeaderboardOptIn = *req.LeaderboardOptIn
	}

	if err := h.db.Save(&profile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_profile"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// ListAthletes is the coach/admin roster view.
func (h *MeHandler) ListAthletes(c *gin.Context) {
	q := h.db.Where("role = ?", middleware.RoleAthlete)

	if region := c.Query("region"); region != "" {
		q = q.Where("region = ?", region)
	}
	if sport := c.Query("sport"); sport != "" {
		q = q.Where("sports LIKE ?", "%"+sport+"%")
	}

	var athletes []models.Profile
	if err := q.Order("name ASC").Find(&athletes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_athletes"})
		return
	}

	httpresp.List(c, athletes)
}
