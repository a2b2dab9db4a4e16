package analytics

import (
	"time"

	"saldo/internal/core"
)

const daysPerWeek = 7

// WeekBucket is a fixed day-of-month span. Weeks are not ISO weeks: week n
// always covers days 7n+1 through 7n+7, truncated at the end of the month.
type WeekBucket struct {
	Index    int // 1-indexed
	StartDay int
	EndDay   int
}

// MonthBucket is one calendar month of a year with inclusive bounds.
type MonthBucket struct {
	MonthIndex int // 0-indexed
	Start      time.Time
	End        time.Time
}

// DaysInMonth returns the Gregorian day count of a month. monthIndex is 0-based.
func DaysInMonth(year, monthIndex int) int {
	// Day 0 of the following month normalises to the last day of this one.
	return time.Date(year, time.Month(monthIndex+2), 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthBounds returns the first instant and the last second of a month.
func MonthBounds(year, monthIndex int) (start, end time.Time) {
	start, _ = DayBounds(year, monthIndex, 1)
	_, end = DayBounds(year, monthIndex, DaysInMonth(year, monthIndex))
	return start, end
}

// DayBounds returns 00:00:00 and 23:59:59 of a single calendar day.
func DayBounds(year, monthIndex, day int) (start, end time.Time) {
	start = time.Date(year, time.Month(monthIndex+1), day, 0, 0, 0, 0, time.UTC)
	end = time.Date(year, time.Month(monthIndex+1), day, 23, 59, 59, 0, time.UTC)
	return start, end
}

// WeekBuckets splits a month of the given length into ceil(days/7) buckets.
func WeekBuckets(daysInMonth int) []WeekBucket {
	weeks := (daysInMonth + daysPerWeek - 1) / daysPerWeek
	out := make([]WeekBucket, 0, weeks)
	for week := 0; week < weeks; week++ {
		out = append(out, WeekBucket{
			Index:    week + 1,
			StartDay: week*daysPerWeek + 1,
			EndDay:   min((week+1)*daysPerWeek, daysInMonth),
		})
	}
	return out
}

// MonthBuckets returns January through December of year.
func MonthBuckets(year int) []MonthBucket {
	out := make([]MonthBucket, 0, 12)
	for m := 0; m < 12; m++ {
		start, end := MonthBounds(year, m)
		out = append(out, MonthBucket{MonthIndex: m, Start: start, End: end})
	}
	return out
}

// inRange reports whether d falls within [start, end]. Only the calendar
// day of d takes part in the comparison.
func inRange(d core.Date, start, end time.Time) bool {
	day := core.DateOf(d.Time).Time
	return !day.Before(start) && !day.After(end)
}

// filterRange keeps the records dated within [start, end], preserving order.
func filterRange(records []core.Transaction, start, end time.Time) []core.Transaction {
	var out []core.Transaction
	for _, r := range records {
		if inRange(r.Date, start, end) {
			out = append(out, r)
		}
	}
	return out
}

// sum adds amounts in input order.
func sum(records []core.Transaction) float64 {
	var total float64
	for _, r := range records {
		total += r.Amount
	}
	return total
}
