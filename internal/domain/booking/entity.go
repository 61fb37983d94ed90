package booking

import (
	"time"

	"github.com/thanFreecss/celebrity-salon/internal/httperr"
	"github.com/thanFreecss/celebrity-salon/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Transition moves b to next. It returns false when b already is in next,
// in which case nothing is touched.
func Transition(b *models.Booking, next Status, now time.Time) (bool, error) {
	current := Status(b.Status)
	if current == next {
		return false, nil
	}
	if !CanTransition(current, next) {
		return false, httperr.IllegalTransition(string(current), string(next))
	}

	b.Status = string(next)
	switch next {
	case StatusConfirmed:
		b.ConfirmedAt = &now
	case StatusCompleted:
		b.CompletedAt = &now
	case StatusCancelled:
		b.CancelledAt = &now
	}
	return true, nil
}

// Reschedule points b at a new date and slot and sends it back to pending
// for re-confirmation.
func Reschedule(b *models.Booking, date, slot string) error {
	if err := CanReschedule(Status(b.Status)); err != nil {
		return err
	}
	b.AppointmentDate = date
	b.Slot = slot
	b.Status = string(StatusPending)
	b.ConfirmedAt = nil
	return nil
}
