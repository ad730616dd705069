package dates

import (
	"testing"
	"time"
)

func TestDayKey_TimeOfDayIndependent(t *testing.T) {
	day := time.Date(2025, 3, 14, 0, 0, 0, 0, time.Local)
	times := []time.Time{
		day,
		day.Add(1 * time.Second),
		day.Add(12 * time.Hour),
		day.Add(23*time.Hour + 59*time.Minute + 59*time.Second),
	}

	want := "2025-03-14"
	for _, tt := range times {
		if got := DayKey(tt); got != want {
			t.Errorf("DayKey(%v) = %q, want %q", tt, got, want)
		}
	}
}

func TestDayKey_ZeroPadded(t *testing.T) {
	got := DayKey(time.Date(2026, 1, 5, 8, 0, 0, 0, time.Local))
	if got != "2026-01-05" {
		t.Errorf("DayKey() = %q, want %q", got, "2026-01-05")
	}
}

func TestParseDayKey_RoundTrip(t *testing.T) {
	day := time.Date(2024, 12, 31, 0, 0, 0, 0, time.Local)
	parsed, err := ParseDayKey(DayKey(day))
	if err != nil {
		t.Fatalf("ParseDayKey() error = %v", err)
	}
	if !parsed.Equal(day) {
		t.Errorf("ParseDayKey(DayKey()) = %v, want %v", parsed, day)
	}
}

func TestParseDayKey_Invalid(t *testing.T) {
	for _, key := range []string{"", "2024-13-01", "Jan 1 2024", "20240101"} {
		if _, err := ParseDayKey(key); err == nil {
			t.Errorf("ParseDayKey(%q) expected error", key)
		}
	}
}

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"canonical passes through", "2024-01-01", "2024-01-01", true},
		{"legacy toDateString", "Mon Jan 01 2024", "2024-01-01", true},
		{"legacy late in year", "Wed Dec 25 2024", "2024-12-25", true},
		{"garbage", "not a date", "not a date", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeKey(tt.in)
			if got != tt.want || ok != tt.ok {
				t.Errorf("NormalizeKey(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestIsPast(t *testing.T) {
	now := time.Date(2025, 6, 15, 14, 30, 0, 0, time.Local)

	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{"yesterday", now.AddDate(0, 0, -1), true},
		{"last year", now.AddDate(-1, 0, 0), true},
		{"today at midnight", StartOfDay(now), false},
		{"today later", now.Add(5 * time.Hour), false},
		{"tomorrow", now.AddDate(0, 0, 1), false},
		{"earlier today", time.Date(2025, 6, 15, 0, 0, 1, 0, time.Local), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsPast(tt.date, now); got != tt.want {
				t.Errorf("IsPast(%v, %v) = %v, want %v", tt.date, now, got, tt.want)
			}
		})
	}
}

func TestIsLeapYear(t *testing.T) {
	tests := []struct {
		year int
		want bool
	}{
		{2024, true},  // divisible by 4, not by 100
		{2100, false}, // divisible by 100, not by 400
		{2000, true},  // divisible by 400
		{2025, false},
		{1900, false},
	}

	for _, tt := range tests {
		if got := IsLeapYear(tt.year); got != tt.want {
			t.Errorf("IsLeapYear(%d) = %v, want %v", tt.year, got, tt.want)
		}
		wantDays := 365
		if tt.want {
			wantDays = 366
		}
		if got := DaysInYear(tt.year); got != wantDays {
			t.Errorf("DaysInYear(%d) = %d, want %d", tt.year, got, wantDays)
		}
	}
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.February, 29},
		{2025, time.February, 28},
		{2025, time.January, 31},
		{2025, time.April, 30},
		{2025, time.December, 31},
	}

	for _, tt := range tests {
		d := time.Date(tt.year, tt.month, 10, 0, 0, 0, 0, time.Local)
		if got := DaysInMonth(d); got != tt.want {
			t.Errorf("DaysInMonth(%d-%02d) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}

func TestYearProgress(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"jan 1 non-leap", time.Date(2025, 1, 1, 9, 0, 0, 0, time.Local), 0},   // 1/365 rounds to 0
		{"dec 31 non-leap", time.Date(2025, 12, 31, 9, 0, 0, 0, time.Local), 100},
		{"mid leap year", time.Date(2024, 7, 1, 0, 0, 0, 0, time.Local), 50}, // day 183 of 366
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := YearProgress(tt.now); got != tt.want {
				t.Errorf("YearProgress(%v) = %d, want %d", tt.now, got, tt.want)
			}
		})
	}
}

func TestMonthProgress(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"first of month", time.Date(2025, 1, 1, 0, 0, 0, 0, time.Local), 3},   // 1/31
		{"last of month", time.Date(2025, 1, 31, 0, 0, 0, 0, time.Local), 100},
		{"mid february leap", time.Date(2024, 2, 15, 0, 0, 0, 0, time.Local), 52}, // 15/29
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MonthProgress(tt.now); got != tt.want {
				t.Errorf("MonthProgress(%v) = %d, want %d", tt.now, got, tt.want)
			}
		})
	}
}
