package service

import (
	"testing"
	"time"

	"talenthub_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func clockConfig(delayHrs, intervalHrs int, startTime string) *model.AutoScheduleConfig {
	return &model.AutoScheduleConfig{
		SchedulingDelayHrs: delayHrs,
		RoundIntervalHrs:   intervalHrs,
		DefaultStartTime:   startTime,
	}
}

func TestGenerateScheduleWeekdaysInOrder(t *testing.T) {
	// Monday
	base := time.Date(2025, 3, 3, 9, 30, 0, 0, time.UTC)
	slots := GenerateSchedule(base, clockConfig(24, 24, "10:00"), 3)

	assert.Len(t, slots, 3)
	for i, slot := range slots {
		assert.Equal(t, 10, slot.Hour())
		assert.Equal(t, 0, slot.Minute())
		assert.NotEqual(t, time.Saturday, slot.Weekday())
		assert.NotEqual(t, time.Sunday, slot.Weekday())
		if i > 0 {
			assert.False(t, slot.Before(slots[i-1]))
		}
	}
	assert.Equal(t, time.Date(2025, 3, 4, 10, 0, 0, 0, time.UTC), slots[0])
	assert.Equal(t, time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC), slots[1])
	assert.Equal(t, time.Date(2025, 3, 6, 10, 0, 0, 0, time.UTC), slots[2])
}

func TestGenerateScheduleSkipsWeekend(t *testing.T) {
	// Thursday; round 2 lands on Saturday, round 3 on Sunday, both advance to
	// Monday. The compressed spacing is the shipped policy: the interval is
	// not re-applied after the weekend skip.
	base := time.Date(2025, 3, 6, 9, 0, 0, 0, time.UTC)
	slots := GenerateSchedule(base, clockConfig(24, 24, "10:00"), 3)

	monday := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 7, 10, 0, 0, 0, time.UTC), slots[0])
	assert.Equal(t, monday, slots[1])
	assert.Equal(t, monday, slots[2])
}

func TestGenerateScheduleCustomStartTime(t *testing.T) {
	base := time.Date(2025, 3, 3, 18, 0, 0, 0, time.UTC)
	slots := GenerateSchedule(base, clockConfig(0, 48, "14:30"), 2)

	assert.Equal(t, 14, slots[0].Hour())
	assert.Equal(t, 30, slots[0].Minute())
	assert.Equal(t, 14, slots[1].Hour())
}

func TestGenerateScheduleKeepsBaseLocation(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	base := time.Date(2025, 3, 3, 9, 0, 0, 0, loc)
	slots := GenerateSchedule(base, clockConfig(24, 24, "10:00"), 1)

	assert.Equal(t, loc, slots[0].Location())
}

func TestParseStartTimeFallback(t *testing.T) {
	cases := []string{"", "banana", "25:00", "10:61", "10"}
	for _, c := range cases {
		hour, minute := parseStartTime(c)
		assert.Equal(t, 10, hour, "input %q", c)
		assert.Equal(t, 0, minute, "input %q", c)
	}

	hour, minute := parseStartTime("09:15")
	assert.Equal(t, 9, hour)
	assert.Equal(t, 15, minute)
}
