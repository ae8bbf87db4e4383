// Package timeutil holds the date helpers shared by the store, the journal
// codec and the calendar views. Dates are day-granular and local; the
// canonical string form is ISO "YYYY-MM-DD".
package timeutil

import "time"

const ISODate = "2006-01-02"

func ParseISO(s string) (time.Time, error) {
	return time.Parse(ISODate, s)
}

func FormatISO(t time.Time) string {
	return t.Format(ISODate)
}

// Date builds a local midnight time for the given calendar day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

// Today returns the current local day at midnight.
func Today() time.Time {
	now := time.Now()
	return Date(now.Year(), now.Month(), now.Day())
}

func TodayISO() string {
	return FormatISO(Today())
}

// IsFuture reports whether t falls on a later day than today.
func IsFuture(t time.Time) bool {
	return Date(t.Year(), t.Month(), t.Day()).After(Today())
}

// ValidYMD reports whether the components name a real calendar day.
// time.Date normalizes out-of-range values (Feb 30 becomes Mar 1), so a
// round-trip that changes any component means the input was invalid.
func ValidYMD(year int, month time.Month, day int) bool {
	t := Date(year, month, day)
	return t.Year() == year && t.Month() == month && t.Day() == day
}

// DaysIn returns the number of days in a month. Day zero of the following
// month is the last day of this one.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
