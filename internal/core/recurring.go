package core

import (
	"fmt"
	"time"
)

// DuenessChecker decides whether a recurring expense should be materialized
// again, given when it last was and its anchor date.
type DuenessChecker interface {
	IsDue(lastRun, now, anchor time.Time) bool
}

type DailyChecker struct{}

// IsDue returns true if the last run was before today.
func (DailyChecker) IsDue(lastRun, now, _ time.Time) bool {
	if lastRun.IsZero() {
		return true
	}
	return DayKey(lastRun) != DayKey(now)
}

type WeeklyChecker struct{}

// IsDue returns true if 7 or more days have passed since the last run.
func (WeeklyChecker) IsDue(lastRun, now, _ time.Time) bool {
	if lastRun.IsZero() {
		return true
	}
	return now.Sub(lastRun).Hours()/24 >= 7
}

type MonthlyChecker struct{}

// IsDue returns true in a new month once the anchor's day of month is
// reached, clamped to shorter months.
func (MonthlyChecker) IsDue(lastRun, now, anchor time.Time) bool {
	if lastRun.IsZero() {
		return true
	}
	if lastRun.Year() == now.Year() && lastRun.Month() == now.Month() {
		return false
	}
	target := anchor.Day()
	if last := DaysInMonth(now); target > last {
		target = last
	}
	return now.Day() >= target
}

type YearlyChecker struct{}

// IsDue returns true in a new year once the anchor's month and day are
// reached.
func (YearlyChecker) IsDue(lastRun, now, anchor time.Time) bool {
	if lastRun.IsZero() {
		return true
	}
	if lastRun.Year() == now.Year() {
		return false
	}
	if now.Month() < anchor.Month() {
		return false
	}
	if now.Month() == anchor.Month() {
		target := anchor.Day()
		if last := DaysInMonth(now); target > last {
			target = last
		}
		return now.Day() >= target
	}
	return true
}

var duenessCheckers = map[Interval]DuenessChecker{
	IntervalDaily:   DailyChecker{},
	IntervalWeekly:  WeeklyChecker{},
	IntervalMonthly: MonthlyChecker{},
	IntervalYearly:  YearlyChecker{},
}

// CheckerFor returns the dueness checker for an interval.
func CheckerFor(interval Interval) (DuenessChecker, error) {
	checker, ok := duenessCheckers[interval]
	if !ok {
		return nil, fmt.Errorf("unknown recurring interval: %s", interval)
	}
	return checker, nil
}
