package booking

import (
	"context"
	"time"

	domain "github.com/primefit-labs/training-scheduler/internal/domain/booking"
	"github.com/primefit-labs/training-scheduler/internal/httperr"
	"github.com/primefit-labs/training-scheduler/internal/models"
	"github.com/primefit-labs/training-scheduler/internal/timezone"
)

type ListAvailableSlots struct {
	repo domain.Repository
}

func NewListAvailableSlots(repo domain.Repository) *ListAvailableSlots {
	return &ListAvailableSlots{repo: repo}
}

// Execute returns open future slots, optionally for one coach. From
// defaults to today in the platform timezone.
func (uc *ListAvailableSlots) Execute(
	ctx context.Context,
	coachID *uint,
	fromDate string,
) ([]models.AvailabilitySlot, error) {

	var from time.Time
	if fromDate == "" {
		now := timezone.Now()
		from = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, timezone.Platform())
	} else {
		var err error
		from, err = time.ParseInLocation("2006-01-02", fromDate, timezone.Platform())
		if err != nil {
			return nil, httperr.ErrBusiness("invalid_date")
		}
	}

	return uc.repo.ListAvailableSlots(ctx, coachID, from)
}
