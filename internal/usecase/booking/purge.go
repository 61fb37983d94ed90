package booking

import (
	"context"

	"github.com/thanFreecss/celebrity-salon/internal/audit"
	domain "github.com/thanFreecss/celebrity-salon/internal/domain/booking"
)

type PurgeBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewPurgeBooking(repo domain.Repository, audit *audit.Dispatcher) *PurgeBooking {
	return &PurgeBooking{repo: repo, audit: audit}
}

// Execute hard-deletes a booking. Its booking id is never reissued.
func (uc *PurgeBooking) Execute(
	ctx context.Context,
	bookingID int64,
	actor domain.Actor,
) error {

	if err := uc.repo.Delete(ctx, bookingID); err != nil {
		return err
	}

	id := bookingID
	uc.audit.Dispatch(audit.Event{
		ActorID:  actorID(actor),
		Action:   "booking_deleted",
		Entity:   "booking",
		EntityID: &id,
	})
	return nil
}
