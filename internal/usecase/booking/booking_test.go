package booking

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	domain "github.com/thanFreecss/celebrity-salon/internal/domain/booking"
	"github.com/thanFreecss/celebrity-salon/internal/dbtest"
	"github.com/thanFreecss/celebrity-salon/internal/httperr"
	"github.com/thanFreecss/celebrity-salon/internal/infra/repository"
	"github.com/thanFreecss/celebrity-salon/internal/models"
	"github.com/thanFreecss/celebrity-salon/internal/notify"
	"github.com/thanFreecss/celebrity-salon/internal/timezone"
)

var (
	salon = timezone.Location(timezone.DefaultTimezone)
	now   = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	clock = func() time.Time { return now }
	admin = domain.Actor{UserID: 1, Email: "admin@salon.pk", Role: models.RoleAdmin}
)

type recordingNotifier struct {
	mu   sync.Mutex
	fail bool
	sent []notify.Message
}

func (n *recordingNotifier) Deliver(ctx context.Context, msg notify.Message) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, msg)
	return !n.fail
}

func (n *recordingNotifier) kinds() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, 0, len(n.sent))
	for _, m := range n.sent {
		out = append(out, m.Kind)
	}
	return out
}

type fixture struct {
	db       *gorm.DB
	repo     *repository.BookingGormRepository
	notifier *recordingNotifier
	create   *CreateBooking
	status   *UpdateBookingStatus
	cancel   *CancelBooking
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.New(t)
	repo := repository.NewBookingGormRepository(db)
	n := &recordingNotifier{}
	return &fixture{
		db:       db,
		repo:     repo,
		notifier: n,
		create:   NewCreateBooking(repo, nil, clock, salon),
		status:   NewUpdateBookingStatus(repo, nil, n, clock),
		cancel:   NewCancelBooking(repo, nil, n, clock),
	}
}

func input(date, slot string) CreateBookingInput {
	return CreateBookingInput{
		FullName:        "Ayesha Khan",
		MobileNumber:    "03001234567",
		Email:           "Ayesha@Example.com",
		Service:         "haircut",
		AppointmentDate: date,
		SelectedTime:    slot,
	}
}

func TestCreateThenSameSlotConflicts(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	b, err := f.create.Execute(ctx, input("2025-06-10", "10:00"))
	require.NoError(t, err)
	require.Equal(t, int64(1), b.BookingID)
	require.Equal(t, "pending", b.Status)
	require.Equal(t, "1500", b.TotalAmount.String())
	require.Equal(t, "ayesha@example.com", b.Email)

	_, err = f.create.Execute(ctx, input("2025-06-10", "10:00"))
	require.Equal(t, httperr.KindConflict, httperr.KindOf(err))
	require.True(t, httperr.IsBusiness(err, "slot_already_booked"))
}

func TestCreateValidationReportsFields(t *testing.T) {
	f := setup(t)
	in := CreateBookingInput{
		MobileNumber:    "123",
		Email:           "nope",
		Service:         "tattoo",
		AppointmentDate: "2025-05-31",
		SelectedTime:    "13:00",
	}

	_, err := f.create.Execute(context.Background(), in)
	var be httperr.BusinessError
	require.ErrorAs(t, err, &be)
	require.Equal(t, httperr.KindValidation, be.Kind)
	for _, field := range []string{"fullName", "mobileNumber", "email", "service", "selectedTime", "appointmentDate"} {
		require.Contains(t, be.Fields, field)
	}
	require.Equal(t, "must not be in the past", be.Fields["appointmentDate"])

	for _, bad := range []string{"2025-06-10junk", "2025-06-10 09:00", "10-06-2025"} {
		_, err = f.create.Execute(context.Background(), input(bad, "10:00"))
		require.ErrorAs(t, err, &be, bad)
		require.Equal(t, httperr.KindValidation, be.Kind, bad)
		require.Contains(t, be.Fields, "appointmentDate", bad)
		require.NotContains(t, be.Fields, "selectedTime", bad)
	}
}

func TestCreateTodayInSalonZone(t *testing.T) {
	f := setup(t)
	// 20:00 UTC on May 31 is already June 1 in Karachi.
	late := time.Date(2025, 5, 31, 20, 0, 0, 0, time.UTC)
	uc := NewCreateBooking(f.repo, nil, func() time.Time { return late }, salon)

	_, err := uc.Execute(context.Background(), input("2025-06-01", "16:00"))
	require.NoError(t, err)
	_, err = uc.Execute(context.Background(), input("2025-05-31", "16:00"))
	require.Equal(t, httperr.KindValidation, httperr.KindOf(err))
}

func TestCreateWithEmployee(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	emp := models.Employee{
		Name:         "Hina",
		EmployeeCode: "EMP-01",
		Position:     "hair_stylist",
		IsActive:     true,
		LeaveDates:   []string{"2025-06-12"},
	}
	require.NoError(t, f.db.Create(&emp).Error)

	in := input("2025-06-10", "09:00")
	in.Employee = "EMP-01"
	b, err := f.create.Execute(ctx, in)
	require.NoError(t, err)
	require.Equal(t, "Hina", b.EmployeeName)
	require.Equal(t, emp.ID, *b.EmployeeID)

	in = input("2025-06-12", "09:00")
	in.Employee = "Hina"
	_, err = f.create.Execute(ctx, in)
	require.True(t, httperr.IsBusiness(err, "employee_on_leave"))

	in = input("2025-06-11", "09:00")
	in.Employee = "EMP-01"
	in.Service = "manicure"
	_, err = f.create.Execute(ctx, in)
	require.True(t, httperr.IsBusiness(err, "invalid_employee"))

	in.Employee = "nobody"
	_, err = f.create.Execute(ctx, in)
	require.True(t, httperr.IsBusiness(err, "invalid_employee"))
}

func TestConcurrentCreatesGetDistinctDenseIDs(t *testing.T) {
	f := setup(t)

	var wg sync.WaitGroup
	ids := make([]int64, len(domain.Slots))
	errs := make([]error, len(domain.Slots))
	for i, slot := range domain.Slots {
		wg.Add(1)
		go func(i int, slot string) {
			defer wg.Done()
			b, err := f.create.Execute(context.Background(), input("2025-06-10", slot))
			errs[i] = err
			if err == nil {
				ids[i] = b.BookingID
			}
		}(i, slot)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for i, id := range ids {
		require.Equal(t, int64(i+1), id)
	}
}

func TestStatusLifecycle(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	b, err := f.create.Execute(ctx, input("2025-06-10", "10:00"))
	require.NoError(t, err)

	res, err := f.status.Execute(ctx, b.BookingID, "confirmed", admin)
	require.NoError(t, err)
	require.True(t, res.NotificationSent)
	require.Equal(t, "confirmed", res.Booking.Status)
	require.NotNil(t, res.Booking.ConfirmedAt)

	// Same status again: accepted, nothing sent.
	res, err = f.status.Execute(ctx, b.BookingID, "confirmed", admin)
	require.NoError(t, err)
	require.False(t, res.NotificationSent)
	require.Equal(t, []string{notify.KindBookingConfirmed}, f.notifier.kinds())

	res, err = f.status.Execute(ctx, b.BookingID, "completed", admin)
	require.NoError(t, err)
	require.Equal(t, "completed", res.Booking.Status)
	require.False(t, res.NotificationSent)

	_, err = f.status.Execute(ctx, b.BookingID, "confirmed", admin)
	require.Equal(t, httperr.KindIllegalTransition, httperr.KindOf(err))

	stored, err := f.repo.GetByBookingID(ctx, b.BookingID)
	require.NoError(t, err)
	require.Equal(t, "completed", stored.Status)
	require.NotNil(t, stored.CompletedAt)
}

func TestStatusRejectsUnknownValues(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	b, err := f.create.Execute(ctx, input("2025-06-10", "10:00"))
	require.NoError(t, err)

	for _, s := range []string{"rejected", "done", ""} {
		_, err = f.status.Execute(ctx, b.BookingID, s, admin)
		require.True(t, httperr.IsBusiness(err, "invalid_status"), s)
	}

	_, err = f.status.Execute(ctx, 999, "confirmed", admin)
	require.Equal(t, httperr.KindNotFound, httperr.KindOf(err))
}

func TestNotificationFailureDoesNotRollBack(t *testing.T) {
	f := setup(t)
	f.notifier.fail = true
	ctx := context.Background()

	b, err := f.create.Execute(ctx, input("2025-06-10", "10:00"))
	require.NoError(t, err)

	res, err := f.status.Execute(ctx, b.BookingID, "cancelled", admin)
	require.NoError(t, err)
	require.False(t, res.NotificationSent)

	stored, err := f.repo.GetByBookingID(ctx, b.BookingID)
	require.NoError(t, err)
	require.Equal(t, "cancelled", stored.Status)
	require.Equal(t, []string{notify.KindBookingCancelled}, f.notifier.kinds())
}

func TestCancelledSlotIsBookableAgain(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	b, err := f.create.Execute(ctx, input("2025-06-10", "10:00"))
	require.NoError(t, err)
	_, err = f.status.Execute(ctx, b.BookingID, "cancelled", admin)
	require.NoError(t, err)

	again, err := f.create.Execute(ctx, input("2025-06-10", "10:00"))
	require.NoError(t, err)
	require.Equal(t, int64(2), again.BookingID)
}

func TestCustomerCancelOwnership(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	owner := uint(5)
	in := input("2025-06-10", "10:00")
	in.CustomerID = &owner
	b, err := f.create.Execute(ctx, in)
	require.NoError(t, err)

	stranger := domain.Actor{UserID: 6, Email: "ayesha@example.com", Role: models.RoleCustomer}
	_, err = f.cancel.Execute(ctx, b.BookingID, stranger)
	require.Equal(t, httperr.KindForbidden, httperr.KindOf(err))

	me := domain.Actor{UserID: owner, Email: "other@example.com", Role: models.RoleCustomer}
	res, err := f.cancel.Execute(ctx, b.BookingID, me)
	require.NoError(t, err)
	require.Equal(t, "cancelled", res.Booking.Status)
	require.True(t, res.NotificationSent)

	_, err = f.cancel.Execute(ctx, b.BookingID, me)
	require.True(t, httperr.IsBusiness(err, "not_cancellable"))
}

func TestGuestBookingCancelledByMatchingEmail(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	b, err := f.create.Execute(ctx, input("2025-06-10", "11:00"))
	require.NoError(t, err)

	me := domain.Actor{UserID: 9, Email: "AYESHA@example.com", Role: models.RoleCustomer}
	_, err = f.cancel.Execute(ctx, b.BookingID, me)
	require.NoError(t, err)
}

func TestListForCustomerDeduplicates(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	owner := uint(5)
	withAccount := input("2025-06-10", "10:00")
	withAccount.CustomerID = &owner
	_, err := f.create.Execute(ctx, withAccount)
	require.NoError(t, err)

	_, err = f.create.Execute(ctx, input("2025-06-11", "10:00"))
	require.NoError(t, err)

	someoneElse := input("2025-06-12", "10:00")
	someoneElse.Email = "bilal@example.com"
	_, err = f.create.Execute(ctx, someoneElse)
	require.NoError(t, err)

	got, err := NewListCustomerBookings(f.repo).Execute(ctx, owner, "ayesha@example.com")
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "2025-06-11", got[0].AppointmentDate)
	require.Equal(t, "2025-06-10", got[1].AppointmentDate)
}

func TestReschedule(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	uc := NewRescheduleBooking(f.repo, nil, clock, salon)

	a, err := f.create.Execute(ctx, input("2025-06-10", "10:00"))
	require.NoError(t, err)
	_, err = f.create.Execute(ctx, input("2025-06-10", "11:00"))
	require.NoError(t, err)
	_, err = f.status.Execute(ctx, a.BookingID, "confirmed", admin)
	require.NoError(t, err)

	_, err = uc.Execute(ctx, RescheduleInput{BookingID: a.BookingID, AppointmentDate: "2025-06-10", SelectedTime: "11:00"}, admin)
	require.True(t, httperr.IsBusiness(err, "slot_already_booked"))

	same, err := uc.Execute(ctx, RescheduleInput{BookingID: a.BookingID, AppointmentDate: "2025-06-10", SelectedTime: "10:00"}, admin)
	require.NoError(t, err)
	require.Equal(t, "confirmed", same.Status)

	moved, err := uc.Execute(ctx, RescheduleInput{BookingID: a.BookingID, AppointmentDate: "2025-06-11", SelectedTime: "14:00"}, admin)
	require.NoError(t, err)
	require.Equal(t, "pending", moved.Status)
	require.Nil(t, moved.ConfirmedAt)

	// The old slot is free again.
	free, err := f.repo.IsSlotFree(ctx, "2025-06-10", "10:00", 0)
	require.NoError(t, err)
	require.True(t, free)
}

func TestRescheduleOwnership(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	uc := NewRescheduleBooking(f.repo, nil, clock, salon)

	owner := uint(5)
	in := input("2025-06-10", "10:00")
	in.CustomerID = &owner
	mine, err := f.create.Execute(ctx, in)
	require.NoError(t, err)

	stranger := domain.Actor{UserID: 6, Email: "bilal@example.com", Role: models.RoleCustomer}
	_, err = uc.Execute(ctx, RescheduleInput{BookingID: mine.BookingID, AppointmentDate: "2025-06-11", SelectedTime: "10:00"}, stranger)
	require.True(t, httperr.IsBusiness(err, "not_booking_owner"))

	guest, err := f.create.Execute(ctx, input("2025-06-10", "11:00"))
	require.NoError(t, err)

	_, err = uc.Execute(ctx, RescheduleInput{BookingID: guest.BookingID, AppointmentDate: "2025-06-11", SelectedTime: "11:00"}, stranger)
	require.True(t, httperr.IsBusiness(err, "not_booking_owner"))

	me := domain.Actor{UserID: 9, Email: "AYESHA@example.com", Role: models.RoleCustomer}
	moved, err := uc.Execute(ctx, RescheduleInput{BookingID: guest.BookingID, AppointmentDate: "2025-06-11", SelectedTime: "11:00"}, me)
	require.NoError(t, err)
	require.Equal(t, "2025-06-11", moved.AppointmentDate)
	require.Equal(t, "11:00", moved.Slot)
	require.Equal(t, "pending", moved.Status)

	// Stranger attempts left the stored booking untouched.
	stored, err := f.repo.GetByBookingID(ctx, mine.BookingID)
	require.NoError(t, err)
	require.Equal(t, "2025-06-10", stored.AppointmentDate)
}

func TestRescheduleOntoEmployeeLeave(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	uc := NewRescheduleBooking(f.repo, nil, clock, salon)

	emp := models.Employee{
		Name:         "Hina",
		EmployeeCode: "EMP-01",
		Position:     "hair_stylist",
		IsActive:     true,
		LeaveDates:   []string{"2025-06-12"},
	}
	require.NoError(t, f.db.Create(&emp).Error)

	in := input("2025-06-10", "09:00")
	in.Employee = "EMP-01"
	b, err := f.create.Execute(ctx, in)
	require.NoError(t, err)

	_, err = uc.Execute(ctx, RescheduleInput{BookingID: b.BookingID, AppointmentDate: "2025-06-12", SelectedTime: "09:00"}, admin)
	require.True(t, httperr.IsBusiness(err, "employee_on_leave"))

	moved, err := uc.Execute(ctx, RescheduleInput{BookingID: b.BookingID, AppointmentDate: "2025-06-13", SelectedTime: "09:00"}, admin)
	require.NoError(t, err)
	require.Equal(t, "2025-06-13", moved.AppointmentDate)
}

func TestAvailability(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	uc := NewGetAvailability(f.repo, clock, salon)

	_, err := f.create.Execute(ctx, input("2025-06-10", "12:00"))
	require.NoError(t, err)

	slots, err := uc.Execute(ctx, "2025-06-10")
	require.NoError(t, err)
	require.Len(t, slots, len(domain.Slots))
	for _, s := range slots {
		require.Equal(t, s.Time != "12:00", s.Free, s.Time)
	}

	past, err := uc.Execute(ctx, "2025-05-01")
	require.NoError(t, err)
	for _, s := range past {
		require.False(t, s.Free)
	}

	_, err = uc.Execute(ctx, "june")
	require.True(t, httperr.IsBusiness(err, "invalid_date"))
}

func TestAdminListPurgeAndStats(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	for _, slot := range []string{"09:00", "10:00", "11:00"} {
		_, err := f.create.Execute(ctx, input("2025-06-10", slot))
		require.NoError(t, err)
	}
	_, err := f.status.Execute(ctx, 2, "confirmed", admin)
	require.NoError(t, err)

	res, err := NewListBookings(f.repo).Execute(ctx, ListBookingsInput{Status: "pending"})
	require.NoError(t, err)
	require.Equal(t, int64(2), res.Total)
	require.Equal(t, 1, res.Page)

	_, err = NewListBookings(f.repo).Execute(ctx, ListBookingsInput{Status: "rejected"})
	require.True(t, httperr.IsBusiness(err, "invalid_status"))

	require.NoError(t, NewPurgeBooking(f.repo, nil).Execute(ctx, 1, admin))
	require.Equal(t, httperr.KindNotFound, httperr.KindOf(NewPurgeBooking(f.repo, nil).Execute(ctx, 1, admin)))

	stats, err := NewGetStats(f.repo, clock, salon).Execute(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(2), stats.Total)
	require.Equal(t, int64(1), stats.ByStatus[domain.StatusConfirmed])
	require.Equal(t, "2025-06-01", stats.Date)

	// A purged id is not reissued.
	b, err := f.create.Execute(ctx, input("2025-06-10", "09:00"))
	require.NoError(t, err)
	require.Equal(t, int64(4), b.BookingID)
}
