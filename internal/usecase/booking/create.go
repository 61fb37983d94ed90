package booking

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/thanFreecss/celebrity-salon/internal/audit"
	domain "github.com/thanFreecss/celebrity-salon/internal/domain/booking"
	"github.com/thanFreecss/celebrity-salon/internal/domain/employee"
	"github.com/thanFreecss/celebrity-salon/internal/httperr"
	"github.com/thanFreecss/celebrity-salon/internal/metrics"
	"github.com/thanFreecss/celebrity-salon/internal/models"
	"github.com/thanFreecss/celebrity-salon/internal/timezone"
	"github.com/thanFreecss/celebrity-salon/internal/validators"
)

const maxNotesLength = 500

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	// CustomerID is set when the request carries a valid customer token.
	CustomerID *uint

	FullName     string
	MobileNumber string
	Email        string

	Service string
	// Employee is an id, employee code or name. Empty means no preference.
	Employee string

	AppointmentDate string
	SelectedTime    string
	ClientNotes     string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	clock timezone.Clock
	loc   *time.Location
}

func NewCreateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	clock timezone.Clock,
	loc *time.Location,
) *CreateBooking {
	return &CreateBooking{
		repo:  repo,
		audit: audit,
		clock: clock,
		loc:   loc,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	// --------------------------------------------------
	// 1. Fields
	// --------------------------------------------------
	date, err := uc.validate(&in)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Employee (optional)
	// --------------------------------------------------
	var emp *models.Employee
	if in.Employee != "" {
		emp, err = uc.resolveEmployee(ctx, in.Employee, in.Service, date)
		if err != nil {
			return nil, err
		}
	}

	// --------------------------------------------------
	// 3. Slot pre-check
	// --------------------------------------------------
	free, err := uc.repo.IsSlotFree(ctx, date, in.SelectedTime, 0)
	if err != nil {
		return nil, err
	}
	if !free {
		metrics.SlotConflicts.Inc()
		return nil, domain.ErrSlotTaken
	}

	// --------------------------------------------------
	// 4. Build + persist (id and insert are atomic)
	// --------------------------------------------------
	total, _ := domain.PriceOf(in.Service)

	b := &models.Booking{
		CustomerID:      in.CustomerID,
		FullName:        in.FullName,
		MobileNumber:    in.MobileNumber,
		Email:           in.Email,
		Service:         in.Service,
		AppointmentDate: date,
		Slot:            in.SelectedTime,
		Status:          string(domain.InitialStatus()),
		TotalAmount:     total,
		ClientNotes:     in.ClientNotes,
	}
	if emp != nil {
		b.EmployeeID = &emp.ID
		b.EmployeeName = emp.Name
	}

	if err := uc.repo.Create(ctx, b); err != nil {
		if errors.Is(err, domain.ErrSlotTaken) {
			metrics.SlotConflicts.Inc()
		}
		return nil, err
	}
	metrics.BookingsCreated.Inc()

	// --------------------------------------------------
	// 5. Audit
	// --------------------------------------------------
	var actor domain.Actor
	if in.CustomerID != nil {
		actor.UserID = *in.CustomerID
	}
	auditBooking(uc.audit, actor, "booking_created", b, map[string]string{
		"date": b.AppointmentDate,
		"slot": b.Slot,
	})

	return b, nil
}

// validate trims the input in place and returns the normalized date.
func (uc *CreateBooking) validate(in *CreateBookingInput) (string, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	in.MobileNumber = strings.TrimSpace(in.MobileNumber)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Service = strings.TrimSpace(in.Service)
	in.Employee = strings.TrimSpace(in.Employee)
	in.SelectedTime = strings.TrimSpace(in.SelectedTime)
	in.ClientNotes = strings.TrimSpace(in.ClientNotes)

	fields := map[string]string{}

	if in.FullName == "" {
		fields["fullName"] = "is required"
	} else if utf8.RuneCountInString(in.FullName) > 100 {
		fields["fullName"] = "must be at most 100 characters"
	}
	if !validators.IsMobileNumber(in.MobileNumber) {
		fields["mobileNumber"] = "must be exactly 11 digits"
	}
	if !validators.IsEmail(in.Email) {
		fields["email"] = "must be a valid email address"
	}
	if _, ok := domain.LookupService(in.Service); !ok {
		fields["service"] = "is not a service we offer"
	}
	if !domain.IsValidSlot(in.SelectedTime) {
		fields["selectedTime"] = "must be one of " + strings.Join(domain.Slots, ", ")
	}
	if utf8.RuneCountInString(in.ClientNotes) > maxNotesLength {
		fields["clientNotes"] = "must be at most 500 characters"
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
		return "", httperr.Validation("invalid_booking", "Please correct the highlighted fields.", fields)
	}
	return date, nil
}

func (uc *CreateBooking) resolveEmployee(
	ctx context.Context,
	ref string,
	service string,
	date string,
) (*models.Employee, error) {

	emp, err := uc.repo.FindActiveEmployee(ctx, ref)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, httperr.Validation("invalid_employee", "Selected employee is not available.",
			map[string]string{"selectedEmployee": "unknown or inactive employee"})
	}
	if !offers(emp, service) {
		return nil, httperr.Validation("invalid_employee", "Selected employee does not offer this service.",
			map[string]string{"selectedEmployee": "does not offer " + service})
	}
	if employee.IsOnLeave(emp.LeaveDates, date) {
		return nil, domain.ErrEmployeeOnLeave
	}
	return emp, nil
}

// offers prefers the explicit specialties list and falls back to the
// categories the employee's position covers.
func offers(emp *models.Employee, service string) bool {
	if len(emp.Specialties) > 0 {
		for _, s := range emp.Specialties {
			if s == service {
				return true
			}
		}
		return false
	}
	return domain.PositionAllows(emp.Position, service)
}
