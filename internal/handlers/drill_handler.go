package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/primefit-labs/training-scheduler/internal/middleware"
	"github.com/primefit-labs/training-scheduler/internal/models"
	ucDrill "github.com/primefit-labs/training-scheduler/internal/usecase/drill"
	"github.com/primefit-labs/training-scheduler/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type DrillHandler struct {
	db       *gorm.DB
	importUC *ucDrill.Import
}

func NewDrillHandler(db *gorm.DB, importUC *ucDrill.Import) *DrillHandler {
	return &DrillHandler{db: db, importUC: importUC}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateDrillRequest struct {
	Name        string `json:"name" binding:"required"`
	Category    string `json:"category"`
	Description string `json:"description"`
	VideoURL    string `json:"video_url"`
	Difficulty  string `json:"difficulty"`
	Tags        string `json:"tags"`
	Equipment   string `json:"equipment"`
	FocusAreas  string `json:"focus_areas"`
}

type UpdateDrillRequest struct {
	Name        *string `json:"name,omitempty"`
	Category    *string `json:"category,omitempty"`
	Description *string `json:"description,omitempty"`
	VideoURL    *string `json:"video_url,omitempty"`
	Difficulty  *string `json:"difficulty,omitempty"`
	Tags        *string `json:"tags,omitempty"`
	Equipment   *string `json:"equipment,omitempty"`
	FocusAreas  *string `json:"focus_areas,omitempty"`
}

// ======================================================
// LIST
// ======================================================

func (h *DrillHandler) List(c *gin.Context) {
	category := strings.ToLower(strings.TrimSpace(c.Query("category")))
	difficulty := strings.ToLower(strings.TrimSpace(c.Query("difficulty")))
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Session(&gorm.Session{})

	if category != "" {
		q = q.Where("category = ?", category)
	}
	if difficulty != "" {
		q = q.Where("difficulty = ?", difficulty)
	}
	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(tags) LIKE ?", like, like, like)
	}

	var drills []models.Drill
	if err := q.
		Order("name ASC").
		Find(&drills).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_drills"})
		return
	}

	c.JSON(http.StatusOK, drills)
}

// ======================================================
// CREATE / UPDATE
// ======================================================

func (h *DrillHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateDrillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.VideoURL != "" && !validators.IsYouTubeURL(req.VideoURL) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_video_url"})
		return
	}

	drill := models.Drill{
		CreatedByID: userID,
		Name:        req.Name,
		Category:    strings.ToLower(req.Category),
		Description: req.Description,
		VideoURL:    req.VideoURL,
		Difficulty:  strings.ToLower(req.Difficulty),
		Tags:        req.Tags,
		Equipment:   req.Equipment,
		FocusAreas:  req.FocusAreas,
	}

	if err := h.db.Create(&drill).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_drill"})
		return
	}

	c.JSON(http.StatusCreated, drill)
}

func (h *DrillHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var drill models.Drill
	if err := h.db.First(&drill, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "drill_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_drill"})
		return
	}

	var req UpdateDrillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.VideoURL != nil && *req.VideoURL != "" && !validators.IsYouTubeURL(*req.VideoURL) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_video_url"})
		return
	}

	if req.Name != nil {
		drill.Name = *req.Name
	}
	if req.Category != nil {
		drill.Category = strings.ToLower(*req.Category)
	}
	if req.Description != nil {
		drill.Description = *req.Description
	}
	if req.VideoURL != nil {
		drill.VideoURL = *req.VideoURL
	}
	if req.Difficulty != nil {
		drill.Difficulty = strings.ToLower(*req.Difficulty)
	}
	if req.Tags != nil {
		drill.Tags = *req.Tags
	}
	if req.Equipment != nil {
		drill.Equipment = *req.Equipment
	}
	if req.FocusAreas != nil {
		drill.FocusAreas = *req.FocusAreas
	}

	if err := h.db.Save(&drill).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_drill"})
		return
	}

	c.JSON(http.StatusOK, drill)
}

// ======================================================
// CSV IMPORT
// ======================================================

// Import accepts either a multipart "file" field or the raw CSV body and
// returns the per-row outcome.
func (h *DrillHandler) Import(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	reader := c.Request.Body

	if file, err := c.FormFile("file"); err == nil {
		f, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable_file"})
			return
		}
		defer f.Close()
		reader = f
	}

	result, err := h.importUC.Execute(c.Request.Context(), userID, reader)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_csv",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, result)
}
