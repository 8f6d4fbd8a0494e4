package booking

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/primefit-labs/training-scheduler/internal/audit"
	domain "github.com/primefit-labs/training-scheduler/internal/domain/booking"
	"github.com/primefit-labs/training-scheduler/internal/httperr"
	"github.com/primefit-labs/training-scheduler/internal/middleware"
	"github.com/primefit-labs/training-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	AthleteID uint

	// Exactly one of SlotID / ServiceID. A slot booking derives the coach
	// from the slot; a service booking names the coach directly.
	SlotID    *uint
	ServiceID *uint
	CoachID   uint

	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateBooking {
	return &CreateBooking{
		repo:  repo,
		audit: audit,
	}
}

// Execute inserts a pending booking. Capacity is NOT verified or reserved
// as part of this call: the current_bookings bump is a separate write that
// runs after the insert, so two concurrent bookings against a one-seat
// slot can both succeed. Known race, kept until the reservation path gets
// a conditional decrement. There is also no idempotency key; a client
// retry creates a second booking.
func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	athlete, err := uc.repo.GetProfile(ctx, in.AthleteID)
	if err != nil {
		return nil, httperr.ErrBusiness("athlete_not_found")
	}
	if athlete.Role != middleware.RoleAthlete {
		return nil, httperr.ErrBusiness("not_an_athlete")
	}

	b := &models.Booking{
		Reference: uuid.NewString(),
		AthleteID: in.AthleteID,
		Status:    string(domain.InitialStatus()),
		Notes:     in.Notes,
	}

	switch {
	case in.SlotID != nil:
		slot, err := uc.repo.GetSlot(ctx, *in.SlotID)
		if err != nil {
			return nil, httperr.ErrBusiness("slot_not_found")
		}
		b.SlotID = &slot.ID
		b.CoachID = slot.CoachID

	case in.ServiceID != nil:
		svc, err := uc.repo.GetService(ctx, *in.ServiceID)
		if err != nil {
			return nil, httperr.ErrBusiness("service_not_found")
		}
		coach, err := uc.repo.GetProfile(ctx, in.CoachID)
		if err != nil || (coach.Role != middleware.RoleCoach && coach.Role != middleware.RoleAdmin) {
			return nil, httperr.ErrBusiness("coach_not_found")
		}
		b.ServiceID = &svc.ID
		b.CoachID = coach.ID

	default:
		return nil, httperr.ErrBusiness("missing_slot_or_service")
	}

	if err := uc.repo.CreateBooking(ctx, b); err != nil {
		return nil, err
	}

	// Separate, unguarded bookkeeping write. Failure here leaves the
	// booking in place with a stale counter rather than failing the call.
	if b.SlotID != nil {
		if err := uc.repo.BumpSlotBookings(ctx, *b.SlotID); err != nil {
			log.Printf("slot %d capacity bump failed: %v", *b.SlotID, err)
		}
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &in.AthleteID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
