package booking

import (
	"testing"

	"github.com/thanFreecss/celebrity-salon/internal/httperr"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from  Status
		to    Status
		valid bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusPending, false},
		{StatusCompleted, StatusConfirmed, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusPending, StatusPending, true},
		{StatusCompleted, StatusCompleted, true},
		{StatusCancelled, StatusCancelled, true},
	}

	for _, tt := range cases {
		if got := CanTransition(tt.from, tt.to); got != tt.valid {
			t.Fatalf("CanTransition(%q, %q)=%v, want %v", tt.from, tt.to, got, tt.valid)
		}
	}
}

func TestParseStatus(t *testing.T) {
	if s, err := ParseStatus(" Confirmed "); err != nil || s != StatusConfirmed {
		t.Fatalf("ParseStatus(Confirmed)=%q, %v", s, err)
	}
	for _, bad := range []string{"rejected", "", "done"} {
		_, err := ParseStatus(bad)
		if httperr.KindOf(err) != httperr.KindValidation {
			t.Fatalf("ParseStatus(%q) kind=%q, want validation", bad, httperr.KindOf(err))
		}
	}
}

func TestCanCancel(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusConfirmed} {
		if err := CanCancel(s); err != nil {
			t.Fatalf("CanCancel(%q)=%v", s, err)
		}
	}
	for _, s := range []Status{StatusCompleted, StatusCancelled} {
		if !httperr.IsBusiness(CanCancel(s), "not_cancellable") {
			t.Fatalf("CanCancel(%q) should fail", s)
		}
	}
}
