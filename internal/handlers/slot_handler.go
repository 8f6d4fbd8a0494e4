package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/primefit-labs/training-scheduler/internal/httperr"
	"github.com/primefit-labs/training-scheduler/internal/httpresp"
	"github.com/primefit-labs/training-scheduler/internal/middleware"
	ucBooking "github.com/primefit-labs/training-scheduler/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type SlotHandler struct {
	createSlotUC *ucBooking.CreateSlot
	listSlotsUC  *ucBooking.ListAvailableSlots
}

func NewSlotHandler(
	createSlotUC *ucBooking.CreateSlot,
	listSlotsUC *ucBooking.ListAvailableSlots,
) *SlotHandler {
	return &SlotHandler{
		createSlotUC: createSlotUC,
		listSlotsUC:  listSlotsUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateSlotRequest struct {
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`

	MaxBookings int    `json:"max_bookings"`
	Location    string `json:"location"`

	// Admin only: publish on behalf of another coach.
	CoachID uint `json:"coach_id"`
}

// ======================================================
// LIST (public browse)
// ======================================================

func (h *SlotHandler) List(c *gin.Context) {
	var coachID *uint
	if raw := c.Query("coach_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			httperr.BadRequest(c, "invalid_coach_id", "coach_id must be numeric.")
			return
		}
		v := uint(id)
		coachID = &v
	}

	slots, err := h.listSlotsUC.Execute(c.Request.Context(), coachID, c.Query("from"))
	if err != nil {
		if code := httperr.BusinessCode(err); code != "" {
			httperr.BadRequest(c, code, "Invalid slot query.")
			return
		}
		httperr.Internal(c, "failed_to_list_slots", "Could not list slots.")
		return
	}

	httpresp.List(c, slots)
}

// ======================================================
// CREATE
// ======================================================

func (h *SlotHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	var req CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid slot payload.")
		return
	}

	coachID := userID
	if role == middleware.RoleAdmin && req.CoachID != 0 {
		coachID = req.CoachID
	}

	slot, err := h.createSlotUC.Execute(c.Request.Context(), ucBooking.CreateSlotInput{
		CoachID:     coachID,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		MaxBookings: req.MaxBookings,
		Location:    req.Location,
	})
	if err != nil {
		if code := httperr.BusinessCode(err); code != "" {
			httperr.BadRequest(c, code, "Could not publish slot.")
			return
		}
		httperr.Internal(c, "failed_to_create_slot", "Could not publish slot.")
		return
	}

	httpresp.Created(c, slot)
}
