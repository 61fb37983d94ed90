package booking

import (
	"context"

	"github.com/thanFreecss/celebrity-salon/internal/audit"
	domain "github.com/thanFreecss/celebrity-salon/internal/domain/booking"
	"github.com/thanFreecss/celebrity-salon/internal/metrics"
	"github.com/thanFreecss/celebrity-salon/internal/timezone"
)

type CancelBooking struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	notifier Notifier
	clock    timezone.Clock
}

func NewCancelBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	notifier Notifier,
	clock timezone.Clock,
) *CancelBooking {
	return &CancelBooking{
		repo:     repo,
		audit:    audit,
		notifier: notifier,
		clock:    clock,
	}
}

func (uc *CancelBooking) Execute(
	ctx context.Context,
	bookingID int64,
	actor domain.Actor,
) (*StatusResult, error) {

	b, err := uc.repo.GetByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin() && !domain.OwnedBy(b, actor) {
		return nil, domain.ErrNotOwner
	}

	prev := domain.Status(b.Status)
	if err := domain.CanCancel(prev); err != nil {
		return nil, err
	}

	if _, err := domain.Transition(b, domain.StatusCancelled, uc.clock()); err != nil {
		return nil, err
	}

	if err := uc.repo.Save(ctx, b, prev); err != nil {
		return nil, err
	}
	metrics.StatusTransitions.WithLabelValues(string(prev), string(domain.StatusCancelled)).Inc()

	auditBooking(uc.audit, actor, "booking_cancelled", b, map[string]string{"from": string(prev)})

	sent := notifyEntered(ctx, uc.notifier, b, domain.StatusCancelled)
	return &StatusResult{Booking: b, NotificationSent: sent}, nil
}
