package service

import (
	"strconv"
	"strings"
	"time"

	"talenthub_backend/internal/model"
)

// GenerateSchedule produces one instant per round, in round order. Pure and
// deterministic: base + delay, then interval*i per round, then the clock time
// is normalized to the configured start time while keeping the date. Anything
// landing on a weekend advances day by day until it hits Mon-Fri.
//
// Weekend skipping deliberately does not re-check the interval: a 24h gap that
// lands on Saturday becomes a 72h gap to Monday, and two rounds straddling a
// weekend can end up closer together than configured. That is the shipped
// policy; callers wanting a strict spacing guarantee need a product decision
// first.
//
// The config's timezone is advisory metadata. Arithmetic runs on the base
// instant's own location and never converts.
func GenerateSchedule(base time.Time, cfg *model.AutoScheduleConfig, roundCount int) []time.Time {
	hour, minute := parseStartTime(cfg.DefaultStartTime)

	first := base.Add(time.Duration(cfg.SchedulingDelayHrs) * time.Hour)

	slots := make([]time.Time, 0, roundCount)
	for i := 0; i < roundCount; i++ {
		t := first.Add(time.Duration(cfg.RoundIntervalHrs*i) * time.Hour)
		t = time.Date(t.Year(), t.Month(), t.Day(), hour, minute, 0, 0, t.Location())
		for t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
			t = t.AddDate(0, 0, 1)
		}
		slots = append(slots, t)
	}
	return slots
}

// parseStartTime reads "HH:MM", falling back to 10:00 on malformed input.
func parseStartTime(s string) (int, int) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 10, 0
	}
	hour, err1 := strconv.Atoi(parts[0])
	minute, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 10, 0
	}
	return hour, minute
}
