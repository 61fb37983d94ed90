package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/thanFreecss/celebrity-salon/internal/httperr"
	"github.com/thanFreecss/celebrity-salon/internal/models"
)

func TestOwnerOf(t *testing.T) {
	id := uint(7)
	require.Equal(t, Registered{CustomerID: 7}, OwnerOf(&models.Booking{CustomerID: &id}))

	guest := OwnerOf(&models.Booking{FullName: "Sara", Email: "a@x.com", MobileNumber: "03001234567"})
	require.Equal(t, Guest{Name: "Sara", Email: "a@x.com", Phone: "03001234567"}, guest)
}

func TestOwnedBy(t *testing.T) {
	id := uint(7)
	registered := &models.Booking{CustomerID: &id, Email: "a@x.com"}
	guest := &models.Booking{Email: "A@x.com"}

	require.True(t, OwnedBy(registered, Actor{UserID: 7}))
	require.False(t, OwnedBy(registered, Actor{UserID: 8, Email: "a@x.com"}))
	require.True(t, OwnedBy(guest, Actor{UserID: 8, Email: "a@x.com"}))
	require.False(t, OwnedBy(guest, Actor{UserID: 8, Email: "b@x.com"}))
	require.False(t, OwnedBy(guest, Actor{UserID: 8}))
}

func TestTransitionStampsTimes(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	b := &models.Booking{Status: string(StatusPending)}

	changed, err := Transition(b, StatusConfirmed, now)
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, now, *b.ConfirmedAt)

	changed, err = Transition(b, StatusConfirmed, now)
	require.NoError(t, err)
	require.False(t, changed)

	_, err = Transition(b, StatusPending, now)
	require.Equal(t, httperr.KindIllegalTransition, httperr.KindOf(err))
	require.Equal(t, string(StatusConfirmed), b.Status)
}

func TestReschedule(t *testing.T) {
	now := time.Now()
	b := &models.Booking{Status: string(StatusConfirmed), ConfirmedAt: &now, AppointmentDate: "2025-06-10", Slot: "10:00"}

	require.NoError(t, Reschedule(b, "2025-06-11", "14:00"))
	require.Equal(t, string(StatusPending), b.Status)
	require.Nil(t, b.ConfirmedAt)
	require.Equal(t, "14:00", b.Slot)

	b.Status = string(StatusCompleted)
	require.True(t, httperr.IsBusiness(Reschedule(b, "2025-06-12", "09:00"), "not_reschedulable"))
}
