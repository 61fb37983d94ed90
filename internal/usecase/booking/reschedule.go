package booking

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/thanFreecss/celebrity-salon/internal/audit"
	domain "github.com/thanFreecss/celebrity-salon/internal/domain/booking"
	"github.com/thanFreecss/celebrity-salon/internal/domain/employee"
	"github.com/thanFreecss/celebrity-salon/internal/httperr"
	"github.com/thanFreecss/celebrity-salon/internal/metrics"
	"github.com/thanFreecss/celebrity-salon/internal/models"
	"github.com/thanFreecss/celebrity-salon/internal/timezone"
)

type RescheduleInput struct {
	BookingID       int64
	AppointmentDate string
	SelectedTime    string
}

type RescheduleBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	clock timezone.Clock
	loc   *time.Location
}

func NewRescheduleBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	clock timezone.Clock,
	loc *time.Location,
) *RescheduleBooking {
	return &RescheduleBooking{
		repo:  repo,
		audit: audit,
		clock: clock,
		loc:   loc,
	}
}

// Execute moves a pending or confirmed booking to another date and slot.
// The booking goes back to pending and must be confirmed again. Asking for
// the date and slot it already has changes nothing.
func (uc *RescheduleBooking) Execute(
	ctx context.Context,
	in RescheduleInput,
	actor domain.Actor,
) (*models.Booking, error) {

	slot := strings.TrimSpace(in.SelectedTime)
	fields := map[string]string{}
	if !domain.IsValidSlot(slot) {
		fields["selectedTime"] = "must be one of " + strings.Join(domain.Slots, ", ")
	}
	var date string
	d, err := timezone.ParseDate(strings.TrimSpace(in.AppointmentDate))
	switch {
	case err != nil:
		fields["appointmentDate"] = "must be a date in YYYY-MM-DD format"
	case d.Before(timezone.Today(uc.clock(), uc.loc)):
		fields["appointmentDate"] = "must not be in the past"
	default:
		date = timezone.FormatDate(d)
	}
	if len(fields) > 0 {
		return nil, httperr.Validation("invalid_reschedule", "Please correct the highlighted fields.", fields)
	}

	b, err := uc.repo.GetByBookingID(ctx, in.BookingID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !domain.OwnedBy(b, actor) {
		return nil, domain.ErrNotOwner
	}

	prev := domain.Status(b.Status)
	if err := domain.CanReschedule(prev); err != nil {
		return nil, err
	}
	if b.AppointmentDate == date && b.Slot == slot {
		return b, nil
	}

	if b.EmployeeID != nil {
		emp, err := uc.repo.FindActiveEmployee(ctx, strconv.FormatUint(uint64(*b.EmployeeID), 10))
		if err != nil {
			return nil, err
		}
		if emp != nil && employee.IsOnLeave(emp.LeaveDates, date) {
			return nil, domain.ErrEmployeeOnLeave
		}
	}

	free, err := uc.repo.IsSlotFree(ctx, date, slot, b.ID)
	if err != nil {
		return nil, err
	}
	if !free {
		metrics.SlotConflicts.Inc()
		return nil, domain.ErrSlotTaken
	}

	from := b.AppointmentDate + " " + b.Slot
	if err := domain.Reschedule(b, date, slot); err != nil {
		return nil, err
	}
	if err := uc.repo.Save(ctx, b, prev); err != nil {
		return nil, err
	}

	auditBooking(uc.audit, actor, "booking_rescheduled", b, map[string]string{
		"from": from,
		"to":   date + " " + slot,
	})

	return b, nil
}
