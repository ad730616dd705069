// Package dates provides calendar-day arithmetic for the antigravity app.
// All day-scoped data is keyed by a canonical YYYY-MM-DD string; the helpers
// here are the only place those keys are produced or compared.
package dates

import (
	"fmt"
	"math"
	"time"
)

// KeyLayout is the canonical day-key format.
const KeyLayout = "2006-01-02"

// legacyKeyLayout matches day keys found in older data files, which were
// written in a locale-dependent form ("Wed Jan 01 2025").
const legacyKeyLayout = "Mon Jan 02 2006"

// DayKey returns the canonical key for the calendar day containing t.
// The time of day is irrelevant: any instant within the same day yields
// the same key.
func DayKey(t time.Time) string {
	return StartOfDay(t).Format(KeyLayout)
}

// ParseDayKey parses a canonical day key back into a local-midnight time.
func ParseDayKey(key string) (time.Time, error) {
	t, err := time.ParseInLocation(KeyLayout, key, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day key %q: expected YYYY-MM-DD", key)
	}
	return t, nil
}

// NormalizeKey converts a day key of unknown vintage to the canonical
// format. Legacy toDateString keys are rewritten; canonical keys pass
// through unchanged. Returns ok=false for keys in neither format.
func NormalizeKey(key string) (string, bool) {
	if _, err := time.ParseInLocation(KeyLayout, key, time.Local); err == nil {
		return key, true
	}
	if t, err := time.ParseInLocation(legacyKeyLayout, key, time.Local); err == nil {
		return t.Format(KeyLayout), true
	}
	return key, false
}

// StartOfDay truncates t to local midnight.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// IsPast reports whether date falls on a calendar day strictly before the
// day containing now. Today is never past.
func IsPast(date, now time.Time) bool {
	return StartOfDay(date).Before(StartOfDay(now))
}

// IsLeapYear reports whether year is a leap year under the Gregorian rule:
// divisible by 400, or by 4 but not by 100.
func IsLeapYear(year int) bool {
	if year%400 == 0 {
		return true
	}
	return year%4 == 0 && year%100 != 0
}

// DaysInYear returns 366 for leap years, 365 otherwise.
func DaysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// DaysInMonth returns the number of days in the month containing t.
func DaysInMonth(t time.Time) int {
	y, m, _ := t.Date()
	// Day zero of the next month is the last day of this one.
	return time.Date(y, m+1, 0, 0, 0, 0, 0, t.Location()).Day()
}

// YearProgress returns how far through the year now is, as a percentage
// rounded to the nearest integer. January 1st counts as day one.
func YearProgress(now time.Time) int {
	return roundPercent(now.YearDay(), DaysInYear(now.Year()))
}

// MonthProgress returns how far through the month now is, as a percentage
// rounded to the nearest integer.
func MonthProgress(now time.Time) int {
	return roundPercent(now.Day(), DaysInMonth(now))
}

func roundPercent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}
