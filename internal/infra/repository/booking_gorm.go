package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/primefit-labs/training-scheduler/internal/domain/booking"
	"github.com/primefit-labs/training-scheduler/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Profiles
// --------------------------------------------------

func (r *BookingGormRepository) GetProfile(
	ctx context.Context,
	id uint,
) (*models.Profile, error) {

	var p models.Profile
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *BookingGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var s models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND active = ?", id, true).
		First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// --------------------------------------------------
// Slots
// --------------------------------------------------

func (r *BookingGormRepository) CreateSlot(
	ctx context.Context,
	slot *models.AvailabilitySlot,
) error {
	return r.db.WithContext(ctx).Create(slot).Error
}

func (r *BookingGormRepository) GetSlot(
	ctx context.Context,
	id uint,
) (*models.AvailabilitySlot, error) {

	var slot models.AvailabilitySlot
	if err := r.db.WithContext(ctx).First(&slot, id).Error; err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *BookingGormRepository) ListAvailableSlots(
	ctx context.Context,
	coachID *uint,
	from time.Time,
) ([]models.AvailabilitySlot, error) {

	q := r.db.WithContext(ctx).
		Preload("Coach").
		Where("is_available = ? AND slot_date >= ?", true, from)

	if coachID != nil {
		q = q.Where("coach_id = ?", *coachID)
	}

	var slots []models.AvailabilitySlot
	if err := q.
		Order("slot_date ASC, start_time ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}

	return slots, nil
}

// --------------------------------------------------
// Capacity bookkeeping
// --------------------------------------------------

// BumpSlotBookings is a bare increment issued after the booking insert.
// It is deliberately not wrapped in a transaction with the insert and
// carries no max_bookings guard: two concurrent bookings against a
// one-seat slot can both land. Known defect, kept until the reservation
// path gets a conditional decrement.
func (r *BookingGormRepository) BumpSlotBookings(
	ctx context.Context,
	slotID uint,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.AvailabilitySlot{}).
		Where("id = ?", slotID).
		Update("current_bookings", gorm.Expr("current_bookings + 1"))
	if res.Error != nil {
		return res.Error
	}

	return r.db.WithContext(ctx).
		Model(&models.AvailabilitySlot{}).
		Where("id = ? AND current_bookings >= max_bookings", slotID).
		Update("is_available", false).Error
}

func (r *BookingGormRepository) ReleaseSlotBookings(
	ctx context.Context,
	slotID uint,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.AvailabilitySlot{}).
		Where("id = ? AND current_bookings > 0", slotID).
		Update("current_bookings", gorm.Expr("current_bookings - 1"))
	if res.Error != nil {
		return res.Error
	}

	return r.db.WithContext(ctx).
		Model(&models.AvailabilitySlot{}).
		Where("id = ? AND current_bookings < max_bookings", slotID).
		Update("is_available", true).Error
}

// --------------------------------------------------
// Booking
// --------------------------------------------------

func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	id uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) GetBookingForCoach(
	ctx context.Context,
	bookingID uint,
	coachID uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Where("id = ? AND coach_id = ?", bookingID, coachID).
		First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BookingGormRepository) ListBookingsForAthlete(
	ctx context.Context,
	athleteID uint,
) ([]models.Booking, error) {
	return r.listBookings(ctx, "athlete_id = ?", athleteID)
}

func (r *BookingGormRepository) ListBookingsForCoach(
	ctx context.Context,
	coachID uint,
) ([]models.Booking, error) {
	return r.listBookings(ctx, "coach_id = ?", coachID)
}

func (r *BookingGormRepository) listBookings(
	ctx context.Context,
	cond string,
	id uint,
) ([]models.Booking, error) {

	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Preload("Athlete").
		Preload("Coach").
		Preload("Slot").
		Preload("Service").
		Where(cond, id).
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}

	return bookings, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
