package booking

import (
	"context"
	"log"

	"github.com/primefit-labs/training-scheduler/internal/audit"
	domain "github.com/primefit-labs/training-scheduler/internal/domain/booking"
	"github.com/primefit-labs/training-scheduler/internal/httperr"
	"github.com/primefit-labs/training-scheduler/internal/middleware"
	"github.com/primefit-labs/training-scheduler/internal/models"
	"github.com/primefit-labs/training-scheduler/internal/timezone"
)

// ======================================================
// STATUS TRANSITIONS (confirm / complete / cancel)
// ======================================================

type TransitionBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewTransitionBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *TransitionBooking {
	return &TransitionBooking{
		repo:  repo,
		audit: audit,
	}
}

func (uc *TransitionBooking) load(
	ctx context.Context,
	bookingID uint,
	actorID uint,
	actorRole string,
) (*models.Booking, error) {

	// Admins reach any booking, coaches only their own, athletes only
	// bookings they made.
	if actorRole == middleware.RoleAdmin {
		b, err := uc.repo.GetBooking(ctx, bookingID)
		if err != nil {
			return nil, httperr.ErrBusiness("booking_not_found")
		}
		return b, nil
	}

	if actorRole == middleware.RoleAthlete {
		b, err := uc.repo.GetBooking(ctx, bookingID)
		if err != nil || b.AthleteID != actorID {
			return nil, httperr.ErrBusiness("booking_not_found")
		}
		return b, nil
	}

	b, err := uc.repo.GetBookingForCoach(ctx, bookingID, actorID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}
	return b, nil
}

func (uc *TransitionBooking) Confirm(
	ctx context.Context,
	bookingID uint,
	actorID uint,
	actorRole string,
) (*models.Booking, error) {

	b, err := uc.load(ctx, bookingID, actorID, actorRole)
	if err != nil {
		return nil, err
	}

	if err := domain.Confirm(b); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.dispatch(actorID, "booking_confirmed", b)
	return b, nil
}

func (uc *TransitionBooking) Complete(
	ctx context.Context,
	bookingID uint,
	actorID uint,
	actorRole string,
) (*models.Booking, error) {

	b, err := uc.load(ctx, bookingID, actorID, actorRole)
	if err != nil {
		return nil, err
	}

	if err := domain.Complete(b, timezone.Now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.dispatch(actorID, "booking_completed", b)
	return b, nil
}

func (uc *TransitionBooking) Cancel(
	ctx context.Context,
	bookingID uint,
	actorID uint,
	actorRole string,
) (*models.Booking, error) {

	b, err := uc.load(ctx, bookingID, actorID, actorRole)
	if err != nil {
		return nil, err
	}

	heldCapacity := domain.HoldsCapacity(domain.Status(b.Status))

	if err := domain.Cancel(b, timezone.Now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	// Cancellation releases the seat and re-opens the slot. Same
	// non-transactional bookkeeping as the create path.
	if b.SlotID != nil && heldCapacity {
		if err := uc.repo.ReleaseSlotBookings(ctx, *b.SlotID); err != nil {
			log.Printf("slot %d capacity release failed: %v", *b.SlotID, err)
		}
	}

	uc.dispatch(actorID, "booking_cancelled", b)
	return b, nil
}

func (uc *TransitionBooking) dispatch(actorID uint, action string, b *models.Booking) {
	uc.audit.Dispatch(audit.Event{
		ActorID:  &actorID,
		Action:   action,
		Entity:   "booking",
		EntityID: &b.ID,
	})
}
