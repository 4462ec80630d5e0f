package service

import (
	"testing"

	"axis6/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestBuildDailyStat(t *testing.T) {
	t.Run("all six axes completed", func(t *testing.T) {
		checkins := make([]*model.Checkin, 0, 6)
		for i := uint64(1); i <= 6; i++ {
			checkins = append(checkins, &model.Checkin{CategoryID: i, Mood: 8})
		}
		completed, rate, moodAvg := BuildDailyStat(checkins)
		assert.Equal(t, 6, completed)
		assert.InDelta(t, 1.0, rate, 1e-9)
		assert.InDelta(t, 8.0, moodAvg, 1e-9)
	})

	t.Run("duplicate categories count once", func(t *testing.T) {
		checkins := []*model.Checkin{
			{CategoryID: 1, Mood: 4},
			{CategoryID: 1, Mood: 6},
			{CategoryID: 2, Mood: 5},
		}
		completed, rate, moodAvg := BuildDailyStat(checkins)
		assert.Equal(t, 2, completed)
		assert.InDelta(t, 2.0/6.0, rate, 1e-9)
		assert.InDelta(t, 5.0, moodAvg, 1e-9)
	})

	t.Run("mood zero is excluded from the average", func(t *testing.T) {
		checkins := []*model.Checkin{
			{CategoryID: 1, Mood: 0},
			{CategoryID: 2, Mood: 10},
		}
		_, _, moodAvg := BuildDailyStat(checkins)
		assert.InDelta(t, 10.0, moodAvg, 1e-9)
	})

	t.Run("no recorded moods", func(t *testing.T) {
		checkins := []*model.Checkin{
			{CategoryID: 3, Mood: 0},
		}
		completed, rate, moodAvg := BuildDailyStat(checkins)
		assert.Equal(t, 1, completed)
		assert.InDelta(t, 1.0/6.0, rate, 1e-9)
		assert.Zero(t, moodAvg)
	})
}
