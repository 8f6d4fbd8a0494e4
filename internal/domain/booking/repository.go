package booking

import (
	"context"
	"time"

	"github.com/primefit-labs/training-scheduler/internal/models"
)

type Repository interface {
	// -------- Profiles --------
	GetProfile(
		ctx context.Context,
		id uint,
	) (*models.Profile, error)

	// -------- Service --------
	GetService(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	// -------- Slots --------
	CreateSlot(
		ctx context.Context,
		slot *models.AvailabilitySlot,
	) error

	GetSlot(
		ctx context.Context,
		id uint,
	) (*models.AvailabilitySlot, error)

	ListAvailableSlots(
		ctx context.Context,
		coachID *uint,
		from time.Time,
	) ([]models.AvailabilitySlot, error)

	// -------- Capacity bookkeeping (non-transactional, see usecase) --------
	BumpSlotBookings(
		ctx context.Context,
		slotID uint,
	) error

	ReleaseSlotBookings(
		ctx context.Context,
		slotID uint,
	) error

	// -------- Booking --------
	CreateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	GetBooking(
		ctx context.Context,
		id uint,
	) (*models.Booking, error)

	GetBookingForCoach(
		ctx context.Context,
		bookingID uint,
		coachID uint,
	) (*models.Booking, error)

	UpdateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	ListBookingsForAthlete(
		ctx context.Context,
		athleteID uint,
	) ([]models.Booking, error)

	ListBookingsForCoach(
		ctx context.Context,
		coachID uint,
	) ([]models.Booking, error)
}
