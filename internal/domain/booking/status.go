package booking

import (
	"strings"

	"github.com/thanFreecss/celebrity-salon/internal/httperr"
)

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

var AllStatuses = []Status{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled}

// ActiveStatuses hold their slot.
var ActiveStatuses = []Status{StatusPending, StatusConfirmed}

var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

func InitialStatus() Status {
	return StatusPending
}

func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllStatuses {
		if st == known {
			return st, nil
		}
	}
	return "", httperr.Validation(
		"invalid_status",
		"Unknown booking status.",
		map[string]string{"status": "must be one of [pending confirmed completed cancelled]"},
	)
}

func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

// CanTransition reports whether from → to is allowed. Staying in the same
// state is always allowed and is treated as a no-op by callers.
func CanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CanCancel guards customer self-service cancellation.
func CanCancel(current Status) error {
	if !current.IsActive() {
		return httperr.Conflict("not_cancellable", "Only pending or confirmed bookings can be cancelled.")
	}
	return nil
}

func CanReschedule(current Status) error {
	if !current.IsActive() {
		return httperr.Conflict("not_reschedulable", "Only pending or confirmed bookings can be rescheduled.")
	}
	return nil
}

func ActiveStatusStrings() []string {
	out := make([]string, len(ActiveStatuses))
	for i, s := range ActiveStatuses {
		out[i] = string(s)
	}
	return out
}
