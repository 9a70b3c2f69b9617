// Package week provides the calendar arithmetic behind weekly prediction
// records: Monday/Sunday bounds, the ISO year/week pair that keys a record,
// and validation of week-start inputs coming from the API. All computation
// is date-only and anchored to UTC so that the same calendar day never maps
// to two different weeks depending on server timezone.
package week

import (
	"errors"
	"time"
)

// DateLayout is the wire format for week-start dates.
const DateLayout = "2006-01-02"

// ErrNotMonday is returned when a supplied week-start date is valid but does
// not fall on a Monday.
var ErrNotMonday = errors.New("week start date must be a Monday")

// Truncate strips the time-of-day from t and anchors it to UTC.
func Truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// StartOf returns the Monday of the week containing t (date-only, UTC).
func StartOf(t time.Time) time.Time {
	t = Truncate(t)
	// time.Weekday puts Sunday at 0; shift so Monday is 0.
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}

// EndOf returns the Sunday of the week containing t (date-only, UTC).
func EndOf(t time.Time) time.Time {
	return StartOf(t).AddDate(0, 0, 6)
}

// ISO returns the ISO-8601 year and week number of the week containing t.
// Together with a user identifier the pair uniquely keys a weekly record.
func ISO(t time.Time) (year, weekNumber int) {
	return Truncate(t).ISOWeek()
}

// ParseStart parses s as a week-start date. The value must parse as a
// calendar date and fall on a Monday; anything else is rejected so a typo'd
// date can never address a neighboring week's record.
func ParseStart(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	if t.Weekday() != time.Monday {
		return time.Time{}, ErrNotMonday
	}
	return t, nil
}

// DayOf returns the calendar date of the zero-based day offset within the
// week starting at weekStart (0 = Monday .. 6 = Sunday).
func DayOf(weekStart time.Time, offset int) time.Time {
	return Truncate(weekStart).AddDate(0, 0, offset)
}
