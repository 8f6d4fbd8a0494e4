package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/primefit-labs/training-scheduler/internal/config"
	"github.com/primefit-labs/training-scheduler/internal/middleware"
	"github.com/primefit-labs/training-scheduler/internal/models"
	"github.com/primefit-labs/training-scheduler/internal/notify"
	"github.com/primefit-labs/training-scheduler/internal/validators"
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
	mailer *notify.EmailSender
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config, mailer *notify.EmailSender) *AuthHandler {
	return &AuthHandler{db: db, config: cfg, mailer: mailer}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`

	Role string `json:"role" binding:"omitempty,oneof=athlete coach"`

	Age    int    `json:"age"`
	Sports string `json:"sports"`
	Region string `json:"region"`

	// Required for minors; triggers the parent notification.
	ParentEmail string `json:"parent_email" binding:"omitempty,email"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ParentNotifyRequest struct {
	ParentEmail string `json:"parent_email" binding:"required,email"`
	AthleteName string `json:"athlete_name" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Age != 0 && (req.Age < 5 || req.Age > 100) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_age"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !validators.IsEmailDomainValid(email) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_email_domain",
			"message": "The email domain does not appear to be valid.",
		})
		return
	}

	var count int64
	h.db.Model(&models.Profile{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email_already_exists"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_hash_password"})
		return
	}

	role := req.Role
	if role == "" {
		role = middleware.RoleAthlete
	}

	profile := models.Profile{
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        req.Phone,
		Role:         role,
		Age:          req.Age,
		Sports:       req.Sports,
		Region:       req.Region,
	}

	if err := h.db.Create(&profile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_profile"})
		return
	}

	// Minor signups notify the listed guardian; the response never waits
	// on the email.
	if req.Age > 0 && req.Age < 18 && req.ParentEmail != "" {
		go h.mailer.SendParentNotification(req.ParentEmail, profile.Name)
	}

	token, err := h.generateToken(&profile)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":  publicProfile(&profile),
		"token": token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var profile models.Profile
	if err := h.db.Where("email = ?", email).First(&profile).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
		return
	}

	token, err := h.generateToken(&profile)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  publicProfile(&profile),
		"token": token,
	})
}

// ParentNotify re-sends the guardian email on demand, e.g. when the
// address was corrected after signup. Always 202 on valid input.
func (h *AuthHandler) ParentNotify(c *gin.Context) {
	var req ParentNotifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	go h.mailer.SendParentNotification(req.ParentEmail, req.AthleteName)

	c.JSON(http.StatusAccepted, gin.H{"status": "queued"})
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(profile *models.Profile) (string, error) {
	claims := jwt.MapClaims{
		"sub":  profile.ID,
		"role": profile.Role,
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}

func publicProfile(p *models.Profile) gin.H {
	return gin.H{
		"id":                 p.ID,
		"name":               p.Name,
		"email":              p.Email,
		"phone":              p.Phone,
		"role":               p.Role,
		"age":                p.Age,
		"sports":             p.Sports,
		"region":             p.Region,
		"leaderboard_opt_in": p.LeaderboardOptIn,
	}
}
