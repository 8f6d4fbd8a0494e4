package booking

import (
	"testing"
	"time"

	"github.com/primefit-labs/training-scheduler/internal/models"
)

// TestLifecycle walks a booking through the happy path and checks the
// timestamps land where they should.
func TestLifecycle(t *testing.T) {
	b := &models.Booking{Status: string(InitialStatus())}
	now := time.Now()

	if err := Confirm(b); err != nil {
		t.Fatalf("confirm pending: %v", err)
	}
	if b.Status != string(StatusConfirmed) {
		t.Errorf("expected confirmed, got %s", b.Status)
	}

	if err := Complete(b, now); err != nil {
		t.Fatalf("complete confirmed: %v", err)
	}
	if b.CompletedAt == nil || !b.CompletedAt.Equal(now) {
		t.Error("complete must stamp CompletedAt")
	}
}

// TestInvalidTransitions lists the moves the status machine rejects.
func TestInvalidTransitions(t *testing.T) {
	now := time.Now()

	cases := []struct {
		name string
		from Status
		move func(b *models.Booking) error
	}{
		{"confirm a confirmed booking", StatusConfirmed, Confirm},
		{"confirm a completed booking", StatusCompleted, Confirm},
		{"confirm a cancelled booking", StatusCancelled, Confirm},
		{"complete a pending booking", StatusPending, func(b *models.Booking) error { return Complete(b, now) }},
		{"complete a cancelled booking", StatusCancelled, func(b *models.Booking) error { return Complete(b, now) }},
		{"cancel a completed booking", StatusCompleted, func(b *models.Booking) error { return Cancel(b, now) }},
		{"cancel a cancelled booking", StatusCancelled, func(b *models.Booking) error { return Cancel(b, now) }},
	}

	for _, tc := range cases {
		b := &models.Booking{Status: string(tc.from)}
		if err := tc.move(b); err == nil {
			t.Errorf("%s: expected error, got none", tc.name)
		}
		if b.Status != string(tc.from) {
			t.Errorf("%s: rejected move must not change status, got %s", tc.name, b.Status)
		}
	}
}

// TestCancelFromPendingAndConfirmed verifies both legal cancel sources.
func TestCancelFromPendingAndConfirmed(t *testing.T) {
	now := time.Now()

	for _, from := range []Status{StatusPending, StatusConfirmed} {
		b := &models.Booking{Status: string(from)}
		if err := Cancel(b, now); err != nil {
			t.Errorf("cancel from %s: %v", from, err)
		}
		if b.CancelledAt == nil {
			t.Errorf("cancel from %s must stamp CancelledAt", from)
		}
	}
}

// TestHoldsCapacity pins which statuses occupy a slot seat.
func TestHoldsCapacity(t *testing.T) {
	holds := map[Status]bool{
		StatusPending:   true,
		StatusConfirmed: true,
		StatusCompleted: true,
		StatusCancelled: false,
	}

	for s, want := range holds {
		if got := HoldsCapacity(s); got != want {
			t.Errorf("HoldsCapacity(%s) = %v, want %v", s, got, want)
		}
	}
}
