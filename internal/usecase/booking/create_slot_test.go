package booking

import (
	"context"
	"testing"

	"github.com/primefit-labs/training-scheduler/internal/middleware"
	"github.com/primefit-labs/training-scheduler/internal/models"
)

// TestCreateSlot verifies slot publication, the max_bookings default and
// that a freshly published slot shows up in the open list.
func TestCreateSlot(t *testing.T) {
	gdb := openTestDB(t)
	_, coach := seedProfiles(t, gdb)

	uc := NewCreateSlot(newRepo(gdb), newDispatcher(gdb))
	ctx := context.Background()

	slot, err := uc.Execute(ctx, CreateSlotInput{
		CoachID:   coach.ID,
		Date:      "2099-06-01",
		StartTime: "09:00",
		EndTime:   "10:00",
		Location:  "Field 2",
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	if slot.MaxBookings != 1 {
		t.Errorf("max_bookings should default to 1, got %d", slot.MaxBookings)
	}
	if !slot.IsAvailable || slot.CurrentBookings != 0 {
		t.Errorf("fresh slot must be open and empty: %+v", slot)
	}

	list := NewListAvailableSlots(newRepo(gdb))
	slots, err := list.Execute(ctx, &coach.ID, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(slots) != 1 || slots[0].ID != slot.ID {
		t.Errorf("published slot missing from the open list: %+v", slots)
	}
}

// TestCreateSlot_Rejections covers the validation guards.
func TestCreateSlot_Rejections(t *testing.T) {
	gdb := openTestDB(t)
	athlete, coach := seedProfiles(t, gdb)

	uc := NewCreateSlot(newRepo(gdb), newDispatcher(gdb))
	ctx := context.Background()

	base := CreateSlotInput{
		CoachID:   coach.ID,
		Date:      "2099-06-01",
		StartTime: "09:00",
		EndTime:   "10:00",
	}

	cases := []struct {
		name   string
		mutate func(in CreateSlotInput) CreateSlotInput
	}{
		{"athlete as coach", func(in CreateSlotInput) CreateSlotInput { in.CoachID = athlete.ID; return in }},
		{"unknown coach", func(in CreateSlotInput) CreateSlotInput { in.CoachID = 9999; return in }},
		{"bad date", func(in CreateSlotInput) CreateSlotInput { in.Date = "01/06/2099"; return in }},
		{"bad start time", func(in CreateSlotInput) CreateSlotInput { in.StartTime = "9am"; return in }},
		{"end before start", func(in CreateSlotInput) CreateSlotInput { in.EndTime = "08:00"; return in }},
		{"zero-length window", func(in CreateSlotInput) CreateSlotInput { in.EndTime = in.StartTime; return in }},
	}

	for _, tc := range cases {
		if _, err := uc.Execute(ctx, tc.mutate(base)); err == nil {
			t.Errorf("%s: expected error, got none", tc.name)
		}
	}

	var count int64
	gdb.Model(&models.AvailabilitySlot{}).Count(&count)
	if count != 0 {
		t.Errorf("rejected inputs must not create slots, got %d", count)
	}
}

// TestListAvailableSlots_Filters verifies coach and date filtering plus
// the exclusion of closed slots.
func TestListAvailableSlots_Filters(t *testing.T) {
	gdb := openTestDB(t)
	_, coach := seedProfiles(t, gdb)
	other := models.Profile{Name: "Other", Email: "o@test.local", PasswordHash: "x", Role: middleware.RoleCoach}
	gdb.Create(&other)

	uc := NewCreateSlot(newRepo(gdb), newDispatcher(gdb))
	ctx := context.Background()

	mine, _ := uc.Execute(ctx, CreateSlotInput{CoachID: coach.ID, Date: "2099-06-01", StartTime: "09:00", EndTime: "10:00"})
	uc.Execute(ctx, CreateSlotInput{CoachID: other.ID, Date: "2099-06-01", StartTime: "09:00", EndTime: "10:00"})
	uc.Execute(ctx, CreateSlotInput{CoachID: coach.ID, Date: "2099-01-01", StartTime: "09:00", EndTime: "10:00"})

	closed, _ := uc.Execute(ctx, CreateSlotInput{CoachID: coach.ID, Date: "2099-06-02", StartTime: "09:00", EndTime: "10:00"})
	gdb.Model(&models.AvailabilitySlot{}).Where("id = ?", closed.ID).Update("is_available", false)

	list := NewListAvailableSlots(newRepo(gdb))

	slots, err := list.Execute(ctx, &coach.ID, "2099-03-01")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(slots) != 1 || slots[0].ID != mine.ID {
		t.Errorf("expected only the coach's open future slot, got %+v", slots)
	}

	all, err := list.Execute(ctx, nil, "2099-01-01")
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 open slots across coaches, got %d", len(all))
	}
}
