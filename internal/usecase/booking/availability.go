package booking

import (
	"context"
	"time"

	domain "github.com/thanFreecss/celebrity-salon/internal/domain/booking"
	"github.com/thanFreecss/celebrity-salon/internal/httperr"
	"github.com/thanFreecss/celebrity-salon/internal/timezone"
)

var errInvalidDate = httperr.Validation(
	"invalid_date",
	"Date must be in YYYY-MM-DD format.",
	map[string]string{"date": "must be a date in YYYY-MM-DD format"},
)

type GetAvailability struct {
	repo  domain.Repository
	clock timezone.Clock
	loc   *time.Location
}

func NewGetAvailability(
	repo domain.Repository,
	clock timezone.Clock,
	loc *time.Location,
) *GetAvailability {
	return &GetAvailability{repo: repo, clock: clock, loc: loc}
}

// Execute lists every slot of the day with whether it can still be booked.
// Days already gone report every slot as taken.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	date string,
) ([]domain.SlotAvailability, error) {

	d, err := timezone.ParseDate(date)
	if err != nil {
		return nil, errInvalidDate
	}

	out := make([]domain.SlotAvailability, 0, len(domain.Slots))

	if d.Before(timezone.Today(uc.clock(), uc.loc)) {
		for _, s := range domain.Slots {
			out = append(out, domain.SlotAvailability{Time: s})
		}
		return out, nil
	}

	taken, err := uc.repo.ListActiveSlots(ctx, timezone.FormatDate(d))
	if err != nil {
		return nil, err
	}
	busy := make(map[string]bool, len(taken))
	for _, s := range taken {
		busy[s] = true
	}

	for _, s := range domain.Slots {
		out = append(out, domain.SlotAvailability{Time: s, Free: !busy[s]})
	}
	return out, nil
}
