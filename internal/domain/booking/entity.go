package booking

import (
	"time"

	"github.com/primefit-labs/training-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Confirm(b *models.Booking) error {
	if err := CanConfirm(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusConfirmed)
	return nil
}

func Complete(b *models.Booking, now time.Time) error {
	if err := CanComplete(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusCompleted)
	b.CompletedAt = &now
	return nil
}

func Cancel(b *models.Booking, now time.Time) error {
	if err := CanCancel(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusCancelled)
	b.CancelledAt = &now
	return nil
}

// HoldsCapacity reports whether a booking in this status occupies a seat
// on its slot. Pending bookings hold capacity from the moment they are
// created; cancellation releases it.
func HoldsCapacity(s Status) bool {
	return s == StatusPending || s == StatusConfirmed || s == StatusCompleted
}
