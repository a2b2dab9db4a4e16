package analytics

import "time"

// Clock is the time source used to resolve default periods.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the local wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant.
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }

// ResolveMonth fills a missing year or month index from the clock's local
// date and validates the result. monthIndex is 0-based.
func ResolveMonth(clock Clock, year, monthIndex *int) (int, int, error) {
	now := clock.Now()
	y, m := now.Year(), int(now.Month())-1
	if year != nil {
		y = *year
	}
	if monthIndex != nil {
		m = *monthIndex
	}
	if err := checkYear("ResolveMonth", y); err != nil {
		return 0, 0, err
	}
	if err := checkMonthIndex("ResolveMonth", m); err != nil {
		return 0, 0, err
	}
	return y, m, nil
}

// ResolveYear fills a missing year from the clock's local date.
func ResolveYear(clock Clock, year *int) (int, error) {
	y := clock.Now().Year()
	if year != nil {
		y = *year
	}
	if err := checkYear("ResolveYear", y); err != nil {
		return 0, err
	}
	return y, nil
}

// YearBounds returns Jan 1 00:00:00 and Dec 31 23:59:59 of year.
func YearBounds(year int) (start, end time.Time) {
	start, _ = MonthBounds(year, 0)
	_, end = MonthBounds(year, 11)
	return start, end
}
