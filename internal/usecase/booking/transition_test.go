package booking

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/primefit-labs/training-scheduler/internal/middleware"
	"github.com/primefit-labs/training-scheduler/internal/models"
)

func newTransitionUC(gdb *gorm.DB) *TransitionBooking {
	return NewTransitionBooking(newRepo(gdb), newDispatcher(gdb))
}

// TestCancel_ReleasesCapacity verifies that cancelling a slot booking
// decrements the counter and re-opens a slot that was full.
func TestCancel_ReleasesCapacity(t *testing.T) {
	gdb := openTestDB(t)
	athlete, coach := seedProfiles(t, gdb)
	slot := seedSlot(t, gdb, coach.ID, 1)

	createUC := newCreateUC(gdb)
	b, err := createUC.Execute(context.Background(), CreateBookingInput{
		AthleteID: athlete.ID,
		SlotID:    &slot.ID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	uc := newTransitionUC(gdb)
	cancelled, err := uc.Cancel(context.Background(), b.ID, athlete.ID, middleware.RoleAthlete)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != "cancelled" || cancelled.CancelledAt == nil {
		t.Errorf("unexpected booking after cancel: %+v", cancelled)
	}

	var got models.AvailabilitySlot
	gdb.First(&got, slot.ID)
	if got.CurrentBookings != 0 {
		t.Errorf("expected counter back at 0, got %d", got.CurrentBookings)
	}
	if !got.IsAvailable {
		t.Error("slot must re-open once a seat is freed")
	}
}

// TestTransitions_Authorization verifies the reach rules: coaches only
// touch their own bookings, athletes only their own, admins anything.
func TestTransitions_Authorization(t *testing.T) {
	gdb := openTestDB(t)
	athlete, coach := seedProfiles(t, gdb)
	other := models.Profile{Name: "Other Coach", Email: "other@test.local", PasswordHash: "x", Role: middleware.RoleCoach}
	gdb.Create(&other)

	slot := seedSlot(t, gdb, coach.ID, 1)
	b, err := newCreateUC(gdb).Execute(context.Background(), CreateBookingInput{
		AthleteID: athlete.ID,
		SlotID:    &slot.ID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	uc := newTransitionUC(gdb)
	ctx := context.Background()

	if _, err := uc.Confirm(ctx, b.ID, other.ID, middleware.RoleCoach); err == nil {
		t.Error("a coach must not confirm another coach's booking")
	}
	if _, err := uc.Cancel(ctx, b.ID, other.ID, middleware.RoleAthlete); err == nil {
		t.Error("an athlete must not cancel someone else's booking")
	}

	if _, err := uc.Confirm(ctx, b.ID, coach.ID, middleware.RoleCoach); err != nil {
		t.Errorf("owning coach confirm: %v", err)
	}
	if _, err := uc.Complete(ctx, b.ID, 42, middleware.RoleAdmin); err != nil {
		t.Errorf("admin complete: %v", err)
	}
}

// TestTransitions_InvalidState verifies that the status machine errors
// surface from the use case.
func TestTransitions_InvalidState(t *testing.T) {
	gdb := openTestDB(t)
	athlete, coach := seedProfiles(t, gdb)
	slot := seedSlot(t, gdb, coach.ID, 1)

	b, err := newCreateUC(gdb).Execute(context.Background(), CreateBookingInput{
		AthleteID: athlete.ID,
		SlotID:    &slot.ID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	uc := newTransitionUC(gdb)
	ctx := context.Background()

	// pending -> completed skips confirmation.
	if _, err := uc.Complete(ctx, b.ID, coach.ID, middleware.RoleCoach); err == nil {
		t.Error("completing a pending booking must fail")
	}

	if _, err := uc.Cancel(ctx, b.ID, coach.ID, middleware.RoleCoach); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, err := uc.Cancel(ctx, b.ID, coach.ID, middleware.RoleCoach); err == nil {
		t.Error("cancelling twice must fail")
	}

	// The second (rejected) cancel must not release capacity again.
	var got models.AvailabilitySlot
	gdb.First(&got, slot.ID)
	if got.CurrentBookings != 0 {
		t.Errorf("expected counter at 0, got %d", got.CurrentBookings)
	}
}
