package core

import (
	"testing"
	"time"
)

func TestDailyCheckerIsDue(t *testing.T) {
	checker := DailyChecker{}
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	anchor := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		lastRun time.Time
		want    bool
	}{
		{"never run", time.Time{}, true},
		{"ran today", time.Date(2026, 8, 15, 8, 0, 0, 0, time.UTC), false},
		{"ran yesterday", time.Date(2026, 8, 14, 12, 0, 0, 0, time.UTC), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := checker.IsDue(tt.lastRun, now, anchor); got != tt.want {
				t.Errorf("IsDue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWeeklyCheckerIsDue(t *testing.T) {
	checker := WeeklyChecker{}
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	anchor := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		lastRun time.Time
		want    bool
	}{
		{"never run", time.Time{}, true},
		{"ran three days ago", now.AddDate(0, 0, -3), false},
		{"ran exactly a week ago", now.AddDate(0, 0, -7), true},
		{"ran two weeks ago", now.AddDate(0, 0, -14), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := checker.IsDue(tt.lastRun, now, anchor); got != tt.want {
				t.Errorf("IsDue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMonthlyCheckerIsDue(t *testing.T) {
	checker := MonthlyChecker{}
	anchor := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		lastRun time.Time
		now     time.Time
		want    bool
	}{
		{
			name:    "never run",
			lastRun: time.Time{},
			now:     time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
			want:    true,
		},
		{
			name:    "already ran this month",
			lastRun: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
			now:     time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
			want:    false,
		},
		{
			name:    "new month before anchor day",
			lastRun: time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC),
			now:     time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
			want:    false,
		},
		{
			name:    "new month at anchor day",
			lastRun: time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC),
			now:     time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
			want:    true,
		},
		{
			name:    "anchor day clamped in short month",
			lastRun: time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
			now:     time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC),
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := checker.IsDue(tt.lastRun, tt.now, anchor); got != tt.want {
				t.Errorf("IsDue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestYearlyCheckerIsDue(t *testing.T) {
	checker := YearlyChecker{}
	anchor := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		lastRun time.Time
		now     time.Time
		want    bool
	}{
		{"never run", time.Time{}, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), true},
		{"already ran this year", time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC), time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC), false},
		{"new year before anniversary", time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), false},
		{"new year at anniversary", time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC), true},
		{"new year past anniversary month", time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := checker.IsDue(tt.lastRun, tt.now, anchor); got != tt.want {
				t.Errorf("IsDue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCheckerFor(t *testing.T) {
	for _, interval := range []Interval{IntervalDaily, IntervalWeekly, IntervalMonthly, IntervalYearly} {
		if _, err := CheckerFor(interval); err != nil {
			t.Errorf("CheckerFor(%v) returned error: %v", interval, err)
		}
	}
	if _, err := CheckerFor("fortnightly"); err == nil {
		t.Error("CheckerFor should reject unknown intervals")
	}
}
