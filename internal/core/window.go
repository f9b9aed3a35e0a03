package core

import "time"

// Window is an inclusive time range used for all aggregation queries.
type Window struct {
	Start time.Time
	End   time.Time
}

// MonthWindow returns the calendar month containing t: first day 00:00:00
// through last day 23:59:59.999, in t's location.
func MonthWindow(t time.Time) Window {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return Window{Start: start, End: start.AddDate(0, 1, 0).Add(-time.Millisecond)}
}

// PreviousMonthWindow returns the calendar month before the one containing t.
func PreviousMonthWindow(t time.Time) Window {
	return MonthWindow(time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, 0, -1))
}

// DayWindow returns the calendar day containing t, 00:00 to 23:59:59.999.
func DayWindow(t time.Time) Window {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return Window{Start: start, End: start.AddDate(0, 0, 1).Add(-time.Millisecond)}
}

// TrailingDaysWindow returns a window covering the trailing n calendar days
// ending with the day containing t (inclusive of today).
func TrailingDaysWindow(t time.Time, n int) Window {
	day := DayWindow(t)
	return Window{Start: day.Start.AddDate(0, 0, -(n - 1)), End: day.End}
}

// DaysInMonth returns the number of days in the month containing t.
func DaysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}

// DayKey formats t as the YYYY-MM-DD bucket key used by daily groupings.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
