package booking

import (
	"context"
	"sort"

	"github.com/thanFreecss/celebrity-salon/internal/audit"
	domain "github.com/thanFreecss/celebrity-salon/internal/domain/booking"
	"github.com/thanFreecss/celebrity-salon/internal/models"
	"github.com/thanFreecss/celebrity-salon/internal/notify"
)

// Notifier delivers a message and reports whether the first attempt went
// through. *notify.Notifier is the production implementation.
type Notifier interface {
	Deliver(ctx context.Context, msg notify.Message) bool
}

// StatusResult is what a status change reports back to the caller.
type StatusResult struct {
	Booking          *models.Booking `json:"booking"`
	NotificationSent bool            `json:"notificationSent"`
}

// notifyEntered sends the message tied to entering status, if any.
func notifyEntered(ctx context.Context, n Notifier, b *models.Booking, status domain.Status) bool {
	if n == nil {
		return false
	}
	switch status {
	case domain.StatusConfirmed:
		return n.Deliver(ctx, notify.BookingConfirmed(b))
	case domain.StatusCancelled:
		return n.Deliver(ctx, notify.BookingCancelled(b))
	}
	return false
}

func actorID(actor domain.Actor) *uint {
	if actor.UserID == 0 {
		return nil
	}
	id := actor.UserID
	return &id
}

func auditBooking(d *audit.Dispatcher, actor domain.Actor, action string, b *models.Booking, meta any) {
	id := b.BookingID
	d.Dispatch(audit.Event{
		ActorID:  actorID(actor),
		Action:   action,
		Entity:   "booking",
		EntityID: &id,
		Metadata: meta,
	})
}

// newestFirst orders by appointment date then slot, latest first.
func newestFirst(items []models.Booking) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].AppointmentDate != items[j].AppointmentDate {
			return items[i].AppointmentDate > items[j].AppointmentDate
		}
		return items[i].Slot > items[j].Slot
	})
}
