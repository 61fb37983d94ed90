package booking

import (
	"context"

	"github.com/thanFreecss/celebrity-salon/internal/audit"
	domain "github.com/thanFreecss/celebrity-salon/internal/domain/booking"
	"github.com/thanFreecss/celebrity-salon/internal/metrics"
	"github.com/thanFreecss/celebrity-salon/internal/timezone"
)

type UpdateBookingStatus struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	notifier Notifier
	clock    timezone.Clock
}

func NewUpdateBookingStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
	notifier Notifier,
	clock timezone.Clock,
) *UpdateBookingStatus {
	return &UpdateBookingStatus{
		repo:     repo,
		audit:    audit,
		notifier: notifier,
		clock:    clock,
	}
}

// Execute moves the booking to status. Setting the status it already has
// succeeds without touching storage or notifying anyone.
func (uc *UpdateBookingStatus) Execute(
	ctx context.Context,
	bookingID int64,
	status string,
	actor domain.Actor,
) (*StatusResult, error) {

	next, err := domain.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	b, err := uc.repo.GetByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	prev := domain.Status(b.Status)
	changed, err := domain.Transition(b, next, uc.clock())
	if err != nil {
		return nil, err
	}
	if !changed {
		return &StatusResult{Booking: b}, nil
	}

	if err := uc.repo.Save(ctx, b, prev); err != nil {
		return nil, err
	}
	metrics.StatusTransitions.WithLabelValues(string(prev), string(next)).Inc()

	auditBooking(uc.audit, actor, "booking_status_changed", b, map[string]string{
		"from": string(prev),
		"to":   string(next),
	})

	// Status is committed; delivery outcome only shapes the response.
	sent := notifyEntered(ctx, uc.notifier, b, next)

	return &StatusResult{Booking: b, NotificationSent: sent}, nil
}
