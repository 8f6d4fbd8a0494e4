package booking

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/primefit-labs/training-scheduler/internal/audit"
	"github.com/primefit-labs/training-scheduler/internal/infra/repository"
	"github.com/primefit-labs/training-scheduler/internal/middleware"
	"github.com/primefit-labs/training-scheduler/internal/models"
)

// openTestDB returns an isolated in-file SQLite database in a temp directory.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dir := t.TempDir()
	gdb, err := gorm.Open(sqlite.Open(filepath.Join(dir, "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := gdb.AutoMigrate(
		&models.Profile{},
		&models.Service{},
		&models.AvailabilitySlot{},
		&models.Booking{},
		&models.AuditLog{},
	); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return gdb
}

func seedProfiles(t *testing.T, gdb *gorm.DB) (athlete, coach models.Profile) {
	t.Helper()
	athlete = models.Profile{Name: "Athlete", Email: "athlete@test.local", PasswordHash: "x", Role: middleware.RoleAthlete}
	coach = models.Profile{Name: "Coach", Email: "coach@test.local", PasswordHash: "x", Role: middleware.RoleCoach}
	gdb.Create(&athlete)
	gdb.Create(&coach)
	return athlete, coach
}

func seedSlot(t *testing.T, gdb *gorm.DB, coachID uint, maxBookings int) models.AvailabilitySlot {
	t.Helper()
	slot := models.AvailabilitySlot{
		CoachID:     coachID,
		SlotDate:    time.Now().AddDate(0, 0, 1),
		StartTime:   "09:00",
		EndTime:     "10:00",
		MaxBookings: maxBookings,
		IsAvailable: true,
	}
	gdb.Create(&slot)
	return slot
}

func newRepo(gdb *gorm.DB) *repository.BookingGormRepository {
	return repository.NewBookingGormRepository(gdb)
}

func newDispatcher(gdb *gorm.DB) *audit.Dispatcher {
	return audit.NewDispatcher(audit.New(gdb))
}

func newCreateUC(gdb *gorm.DB) *CreateBooking {
	return NewCreateBooking(newRepo(gdb), newDispatcher(gdb))
}

// TestCreateBooking_SlotPath verifies the normal slot booking flow: a
// pending booking with a reference, the coach derived from the slot, and
// the slot counter bumped to capacity (which closes the slot).
func TestCreateBooking_SlotPath(t *testing.T) {
	gdb := openTestDB(t)
	athlete, coach := seedProfiles(t, gdb)
	slot := seedSlot(t, gdb, coach.ID, 1)

	uc := newCreateUC(gdb)

	b, err := uc.Execute(context.Background(), CreateBookingInput{
		AthleteID: athlete.ID,
		SlotID:    &slot.ID,
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	if b.Status != "pending" {
		t.Errorf("expected pending, got %s", b.Status)
	}
	if b.CoachID != coach.ID {
		t.Errorf("coach should come from the slot, got %d", b.CoachID)
	}
	if b.Reference == "" {
		t.Error("booking must carry a reference")
	}

	var got models.AvailabilitySlot
	gdb.First(&got, slot.ID)
	if got.CurrentBookings != 1 {
		t.Errorf("expected current_bookings 1, got %d", got.CurrentBookings)
	}
	if got.IsAvailable {
		t.Error("a full slot must be marked unavailable")
	}
}

// TestCreateBooking_OverbooksFullSlot documents the reservation race: the
// capacity bump is a separate unguarded write after the insert, so a
// second booking against an already-full slot still succeeds and pushes
// the counter past max_bookings. Clients relying on the slot list being
// closed is the only thing standing between two athletes and one seat.
func TestCreateBooking_OverbooksFullSlot(t *testing.T) {
	gdb := openTestDB(t)
	athlete, coach := seedProfiles(t, gdb)
	second := models.Profile{Name: "Athlete 2", Email: "athlete2@test.local", PasswordHash: "x", Role: middleware.RoleAthlete}
	gdb.Create(&second)

	slot := seedSlot(t, gdb, coach.ID, 1)
	uc := newCreateUC(gdb)

	if _, err := uc.Execute(context.Background(), CreateBookingInput{
		AthleteID: athlete.ID,
		SlotID:    &slot.ID,
	}); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	// The slot is now full and flagged unavailable, but nothing checks.
	if _, err := uc.Execute(context.Background(), CreateBookingInput{
		AthleteID: second.ID,
		SlotID:    &slot.ID,
	}); err != nil {
		t.Fatalf("second booking against a full slot: %v", err)
	}

	var count int64
	gdb.Model(&models.Booking{}).Where("slot_id = ?", slot.ID).Count(&count)
	if count != 2 {
		t.Errorf("expected 2 bookings on the one-seat slot, got %d", count)
	}

	var got models.AvailabilitySlot
	gdb.First(&got, slot.ID)
	if got.CurrentBookings != 2 {
		t.Errorf("expected counter at 2 (past max 1), got %d", got.CurrentBookings)
	}
}

// TestCreateBooking_ServicePath verifies booking a service with an
// explicitly named coach, and that inactive services are rejected.
func TestCreateBooking_ServicePath(t *testing.T) {
	gdb := openTestDB(t)
	athlete, coach := seedProfiles(t, gdb)

	svc := models.Service{Name: "1:1 Session", PriceCents: 5000, DurationMin: 60, Active: true}
	gdb.Create(&svc)
	inactive := models.Service{Name: "Retired", Active: false}
	gdb.Create(&inactive)

	uc := newCreateUC(gdb)

	b, err := uc.Execute(context.Background(), CreateBookingInput{
		AthleteID: athlete.ID,
		ServiceID: &svc.ID,
		CoachID:   coach.ID,
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if b.ServiceID == nil || *b.ServiceID != svc.ID || b.CoachID != coach.ID {
		t.Errorf("unexpected booking: %+v", b)
	}

	if _, err := uc.Execute(context.Background(), CreateBookingInput{
		AthleteID: athlete.ID,
		ServiceID: &inactive.ID,
		CoachID:   coach.ID,
	}); err == nil {
		t.Error("inactive service must be rejected")
	}
}

// TestCreateBooking_Rejections covers the guard clauses.
func TestCreateBooking_Rejections(t *testing.T) {
	gdb := openTestDB(t)
	athlete, coach := seedProfiles(t, gdb)

	uc := newCreateUC(gdb)
	ctx := context.Background()

	if _, err := uc.Execute(ctx, CreateBookingInput{AthleteID: athlete.ID}); err == nil {
		t.Error("neither slot nor service must be rejected")
	}

	missing := uint(9999)
	if _, err := uc.Execute(ctx, CreateBookingInput{AthleteID: athlete.ID, SlotID: &missing}); err == nil {
		t.Error("unknown slot must be rejected")
	}

	slot := seedSlot(t, gdb, coach.ID, 1)
	if _, err := uc.Execute(ctx, CreateBookingInput{AthleteID: coach.ID, SlotID: &slot.ID}); err == nil {
		t.Error("a coach cannot book as an athlete")
	}
}
