package handlers

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	domainBooking "github.com/primefit-labs/training-scheduler/internal/domain/booking"
	"github.com/primefit-labs/training-scheduler/internal/dto"
	"github.com/primefit-labs/training-scheduler/internal/httperr"
	"github.com/primefit-labs/training-scheduler/internal/httpresp"
	"github.com/primefit-labs/training-scheduler/internal/middleware"
	"github.com/primefit-labs/training-scheduler/internal/models"
	ucBooking "github.com/primefit-labs/training-scheduler/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	createUC     *ucBooking.CreateBooking
	transitionUC *ucBooking.TransitionBooking
	repo         domainBooking.Repository
}

func NewBookingHandler(
	createUC *ucBooking.CreateBooking,
	transitionUC *ucBooking.TransitionBooking,
	repo domainBooking.Repository,
) *BookingHandler {
	return &BookingHandler{
		createUC:     createUC,
		transitionUC: transitionUC,
		repo:         repo,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	SlotID    *uint `json:"slot_id"`
	ServiceID *uint `json:"service_id"`
	CoachID   uint  `json:"coach_id"`

	// Admin only: book on an athlete's behalf.
	AthleteID uint `json:"athlete_id"`

	Notes string `json:"notes"`
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid booking payload.")
		return
	}

	athleteID := userID
	if role == middleware.RoleAdmin && req.AthleteID != 0 {
		athleteID = req.AthleteID
	}

	b, err := h.createUC.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		AthleteID: athleteID,
		SlotID:    req.SlotID,
		ServiceID: req.ServiceID,
		CoachID:   req.CoachID,
		Notes:     req.Notes,
	})
	if err != nil {
		if code := httperr.BusinessCode(err); code != "" {
			httperr.BadRequest(c, code, "Could not create booking.")
			return
		}
		httperr.Internal(c, "failed_to_create_booking", "Could not create booking.")
		return
	}

	httpresp.Created(c, b)
}

// ======================================================
// LIST (role-scoped)
// ======================================================

func (h *BookingHandler) ListMine(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	var (
		bookings []models.Booking
		err      error
	)

	if role == middleware.RoleCoach || role == middleware.RoleAdmin {
		bookings, err = h.repo.ListBookingsForCoach(c.Request.Context(), userID)
	} else {
		bookings, err = h.repo.ListBookingsForAthlete(c.Request.Context(), userID)
	}
	if err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Could not list bookings.")
		return
	}

	out := make([]dto.BookingListDTO, 0, len(bookings))
	for _, b := range bookings {
		row := dto.BookingListDTO{
			ID:          b.ID,
			Reference:   b.Reference,
			Status:      b.Status,
			AthleteName: b.Athlete.Name,
			CoachName:   b.Coach.Name,
			CreatedAt:   b.CreatedAt,
		}
		if b.Service != nil {
			row.ServiceName = b.Service.Name
		}
		if b.Slot != nil {
			row.SlotDate = &b.Slot.SlotDate
			row.StartTime = b.Slot.StartTime
			row.EndTime = b.Slot.EndTime
		}
		out = append(out, row)
	}

	httpresp.List(c, out)
}

// ======================================================
// STATUS TRANSITIONS
// ======================================================

func (h *BookingHandler) Confirm(c *gin.Context) {
	h.transition(c, h.transitionUC.Confirm)
}

func (h *BookingHandler) Complete(c *gin.Context) {
	h.transition(c, h.transitionUC.Complete)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	h.transition(c, h.transitionUC.Cancel)
}

func (h *BookingHandler) transition(
	c *gin.Context,
	run func(ctx context.Context, bookingID, actorID uint, actorRole string) (*models.Booking, error),
) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	id64, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "Booking id must be numeric.")
		return
	}

	b, err := run(c.Request.Context(), uint(id64), userID, role)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "booking_not_found"):
			httperr.NotFound(c, "booking_not_found", "Booking not found.")
		case httperr.IsBusiness(err, "invalid_state"):
			httperr.BadRequest(c, "invalid_state", "Booking cannot change to that status.")
		default:
			httperr.Internal(c, "failed_to_update_booking", "Could not update booking.")
		}
		return
	}

	httpresp.OK(c, b)
}
