package employee

import (
	"sort"
	"time"

	"github.com/thanFreecss/celebrity-salon/internal/timezone"
)

const DefaultLeadDays = 15

const (
	ReasonInvalidDate = "invalid_date"
	ReasonTooSoon     = "too_soon"
	ReasonDuplicate   = "duplicate"
	ReasonSameWeek    = "same_week"
)

type Rejection struct {
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

// IsConflict reports whether the rejection clashes with existing leave as
// opposed to being malformed or too early.
func (r Rejection) IsConflict() bool {
	return r.Reason == ReasonDuplicate || r.Reason == ReasonSameWeek
}

type Evaluation struct {
	Accepted []string
	Rejected []Rejection
	// Merged is existing plus accepted, sorted.
	Merged []string
}

// EvaluateLeave runs every candidate through, in order: date parsing, the
// lead-time rule, the duplicate rule and the one-leave-per-ISO-week rule.
// Dates accepted earlier in the same call count as existing for later ones.
func EvaluateLeave(existing, candidates []string, today time.Time, leadDays int) Evaluation {
	earliest := today.AddDate(0, 0, leadDays)

	taken := make([]time.Time, 0, len(existing)+len(candidates))
	for _, s := range existing {
		if d, err := timezone.ParseDate(s); err == nil {
			taken = append(taken, d)
		}
	}

	var ev Evaluation
	for _, raw := range candidates {
		d, err := timezone.ParseDate(raw)
		if err != nil {
			ev.Rejected = append(ev.Rejected, Rejection{Date: raw, Reason: ReasonInvalidDate})
			continue
		}
		date := timezone.FormatDate(d)

		if d.Before(earliest) {
			ev.Rejected = append(ev.Rejected, Rejection{Date: date, Reason: ReasonTooSoon})
			continue
		}
		if reason := clash(taken, d); reason != "" {
			ev.Rejected = append(ev.Rejected, Rejection{Date: date, Reason: reason})
			continue
		}

		taken = append(taken, d)
		ev.Accepted = append(ev.Accepted, date)
	}

	ev.Merged = normalize(append(append([]string{}, existing...), ev.Accepted...))
	return ev
}

func clash(taken []time.Time, d time.Time) string {
	for _, t := range taken {
		if t.Equal(d) {
			return ReasonDuplicate
		}
	}
	for _, t := range taken {
		if timezone.SameWeek(t, d) {
			return ReasonSameWeek
		}
	}
	return ""
}

// RemoveLeave drops every existing date whose calendar day matches one of
// dates. It returns the remaining dates and how many were removed.
func RemoveLeave(existing, dates []string) ([]string, int) {
	drop := make(map[string]struct{}, len(dates))
	for _, raw := range dates {
		if d, err := timezone.ParseDate(raw); err == nil {
			drop[timezone.FormatDate(d)] = struct{}{}
		}
	}

	kept := make([]string, 0, len(existing))
	removed := 0
	for _, s := range existing {
		key := s
		if d, err := timezone.ParseDate(s); err == nil {
			key = timezone.FormatDate(d)
		}
		if _, ok := drop[key]; ok {
			removed++
			continue
		}
		kept = append(kept, s)
	}
	return normalize(kept), removed
}

// IsOnLeave reports whether date (YYYY-MM-DD) is one of leave.
func IsOnLeave(leave []string, date string) bool {
	for _, s := range leave {
		if d, err := timezone.ParseDate(s); err == nil && timezone.FormatDate(d) == date {
			return true
		}
	}
	return false
}

func normalize(dates []string) []string {
	out := make([]string, 0, len(dates))
	for _, s := range dates {
		if d, err := timezone.ParseDate(s); err == nil {
			out = append(out, timezone.FormatDate(d))
		}
	}
	sort.Strings(out)
	return out
}
