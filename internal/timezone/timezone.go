package timezone

import (
	"time"
	_ "time/tzdata"
)

const DefaultTimezone = "Asia/Karachi"

const DateLayout = "2006-01-02"

// Clock returns the current instant. Use cases take one so tests can pin "now".
type Clock func() time.Time

func SystemClock() time.Time {
	return time.Now()
}

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// ParseDate parses a YYYY-MM-DD calendar date. The result is midnight UTC so
// that day arithmetic is never skewed by DST. A full RFC3339 timestamp is
// accepted and keeps only its date part; anything else is an error.
func ParseDate(s string) (time.Time, error) {
	if len(s) > len(DateLayout) {
		ts, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return time.Time{}, err
		}
		return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse(DateLayout, s)
}

// Today is the salon-local calendar date of now, as midnight UTC.
func Today(now time.Time, loc *time.Location) time.Time {
	local := now.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// WeekStart returns the Monday of the week containing d.
func WeekStart(d time.Time) time.Time {
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

func SameWeek(a, b time.Time) bool {
	return WeekStart(a).Equal(WeekStart(b))
}

func FormatDate(d time.Time) string {
	return d.Format(DateLayout)
}
