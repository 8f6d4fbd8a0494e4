package booking

import (
	"context"
	"time"

	"github.com/primefit-labs/training-scheduler/internal/audit"
	domain "github.com/primefit-labs/training-scheduler/internal/domain/booking"
	"github.com/primefit-labs/training-scheduler/internal/httperr"
	"github.com/primefit-labs/training-scheduler/internal/middleware"
	"github.com/primefit-labs/training-scheduler/internal/models"
	"github.com/primefit-labs/training-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateSlotInput struct {
	CoachID uint

	Date      string // "2006-01-02"
	StartTime string // "15:04"
	EndTime   string

	MaxBookings int
	Location    string
}

// ======================================================
// USE CASE
// ======================================================

type CreateSlot struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateSlot(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateSlot {
	return &CreateSlot{
		repo:  repo,
		audit: audit,
	}
}

// Execute publishes an open time window for a coach. Duplicate or
// overlapping windows for the same coach are not rejected; the slot list
// shows whatever was published.
func (uc *CreateSlot) Execute(
	ctx context.Context,
	in CreateSlotInput,
) (*models.AvailabilitySlot, error) {

	coach, err := uc.repo.GetProfile(ctx, in.CoachID)
	if err != nil {
		return nil, httperr.ErrBusiness("coach_not_found")
	}
	if coach.Role != middleware.RoleCoach && coach.Role != middleware.RoleAdmin {
		return nil, httperr.ErrBusiness("not_a_coach")
	}

	date, err := time.ParseInLocation("2006-01-02", in.Date, timezone.Platform())
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	start, err := time.Parse("15:04", in.StartTime)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_time")
	}
	end, err := time.Parse("15:04", in.EndTime)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_time")
	}
	if !end.After(start) {
		return nil, httperr.ErrBusiness("end_before_start")
	}

	maxBookings := in.MaxBookings
	if maxBookings <= 0 {
		maxBookings = 1
	}

	slot := &models.AvailabilitySlot{
		CoachID:         in.CoachID,
		SlotDate:        date,
		StartTime:       in.StartTime,
		EndTime:         in.EndTime,
		MaxBookings:     maxBookings,
		CurrentBookings: 0,
		IsAvailable:     true,
		Location:        in.Location,
	}

	if err := uc.repo.CreateSlot(ctx, slot); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &in.CoachID,
		Action:   "slot_created",
		Entity:   "availability_slot",
		EntityID: &slot.ID,
	})

	return slot, nil
}
