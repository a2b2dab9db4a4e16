package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		name       string
		year       int
		monthIndex int
		want       int
	}{
		{"january", 2024, 0, 31},
		{"leap february", 2024, 1, 29},
		{"common february", 2023, 1, 28},
		{"century not leap", 1900, 1, 28},
		{"four hundred leap", 2000, 1, 29},
		{"april", 2024, 3, 30},
		{"december", 2024, 11, 31},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysInMonth(tt.year, tt.monthIndex))
		})
	}
}

func TestWeekBuckets(t *testing.T) {
	t.Run("29 days", func(t *testing.T) {
		weeks := WeekBuckets(29)
		require.Len(t, weeks, 5)
		assert.Equal(t, WeekBucket{Index: 5, StartDay: 29, EndDay: 29}, weeks[4])
	})

	t.Run("31 days", func(t *testing.T) {
		weeks := WeekBuckets(31)
		require.Len(t, weeks, 5)
		assert.Equal(t, WeekBucket{Index: 1, StartDay: 1, EndDay: 7}, weeks[0])
		assert.Equal(t, WeekBucket{Index: 5, StartDay: 29, EndDay: 31}, weeks[4])
	})

	t.Run("28 days", func(t *testing.T) {
		weeks := WeekBuckets(28)
		require.Len(t, weeks, 4)
		assert.Equal(t, 28, weeks[3].EndDay)
	})

	t.Run("buckets cover the month without gaps", func(t *testing.T) {
		for days := 28; days <= 31; days++ {
			next := 1
			for _, w := range WeekBuckets(days) {
				assert.Equal(t, next, w.StartDay)
				assert.LessOrEqual(t, w.EndDay-w.StartDay, 6)
				next = w.EndDay + 1
			}
			assert.Equal(t, days+1, next)
		}
	})
}

func TestMonthBounds(t *testing.T) {
	start, end := MonthBounds(2024, 1)
	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, time.February, 29, 23, 59, 59, 0, time.UTC), end)
}

func TestMonthBuckets(t *testing.T) {
	buckets := MonthBuckets(2024)
	require.Len(t, buckets, 12)
	for i, b := range buckets {
		assert.Equal(t, i, b.MonthIndex)
		assert.Equal(t, 1, b.Start.Day())
		assert.Equal(t, DaysInMonth(2024, i), b.End.Day())
	}
}

func TestInRangeIgnoresTimeOfDay(t *testing.T) {
	start, end := DayBounds(2024, 2, 15)
	d := date(2024, 3, 15)
	d.Time = d.Add(18 * time.Hour)
	assert.True(t, inRange(d, start, end))
	assert.False(t, inRange(date(2024, 3, 16), start, end))
}
