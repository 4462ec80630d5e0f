package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(today time.Time, daysAgo int) time.Time {
	return today.AddDate(0, 0, -daysAgo)
}

func TestComputeStreak(t *testing.T) {
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("no history", func(t *testing.T) {
		current, longest := computeStreak(nil, today)
		assert.Equal(t, 0, current)
		assert.Equal(t, 0, longest)
	})

	t.Run("single checkin today", func(t *testing.T) {
		current, longest := computeStreak([]time.Time{today}, today)
		assert.Equal(t, 1, current)
		assert.Equal(t, 1, longest)
	})

	t.Run("single checkin yesterday still counts", func(t *testing.T) {
		current, longest := computeStreak([]time.Time{day(today, 1)}, today)
		assert.Equal(t, 1, current)
		assert.Equal(t, 1, longest)
	})

	t.Run("run ending two days ago is broken", func(t *testing.T) {
		dates := []time.Time{day(today, 2), day(today, 3), day(today, 4)}
		current, longest := computeStreak(dates, today)
		assert.Equal(t, 0, current)
		assert.Equal(t, 3, longest)
	})

	t.Run("consecutive run ending yesterday", func(t *testing.T) {
		dates := []time.Time{day(today, 1), day(today, 2), day(today, 3)}
		current, longest := computeStreak(dates, today)
		assert.Equal(t, 3, current)
		assert.Equal(t, 3, longest)
	})

	t.Run("older run can hold the record", func(t *testing.T) {
		dates := []time.Time{
			today, day(today, 1),
			day(today, 5), day(today, 6), day(today, 7),
		}
		current, longest := computeStreak(dates, today)
		assert.Equal(t, 2, current)
		assert.Equal(t, 3, longest)
	})

	t.Run("backfill closes a gap", func(t *testing.T) {
		// The run [today, today-2] only becomes a 3-day streak once
		// today-1 is backfilled.
		before := []time.Time{today, day(today, 2)}
		current, _ := computeStreak(before, today)
		assert.Equal(t, 1, current)

		after := []time.Time{today, day(today, 1), day(today, 2)}
		current, longest := computeStreak(after, today)
		assert.Equal(t, 3, current)
		assert.Equal(t, 3, longest)
	})
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2026, 3, 9, 23, 59, 0, 0, time.UTC)
	b := time.Date(2026, 3, 10, 0, 1, 0, 0, time.UTC)
	// Clock time must not matter, only the calendar day.
	assert.Equal(t, 1, daysBetween(a, b))
	assert.Equal(t, 0, daysBetween(b, b))
}
