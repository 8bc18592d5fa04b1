package schedule

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config carries the scheduling policy knobs. Values are fixed per
// deployment, never per request.
type Config struct {
	WorkStartMinutes int          // start of the daily working window
	WorkEndMinutes   int          // end of the daily working window
	BreakMinutes     int          // mandatory rest after every booking
	MinCleaners      int          // smallest crew a booking may request
	MaxCleaners      int          // largest crew a booking may request
	DurationsHours   []int        // allowed booking durations
	NonWorkingDay    time.Weekday // weekday with no bookings at all
}

// DefaultConfig returns the production rule set: 08:00-22:00 working
// window, 30 minute breaks, crews of 1-3, 2 or 4 hour jobs, Fridays off.
func DefaultConfig() Config {
	return Config{
		WorkStartMinutes: 8 * 60,
		WorkEndMinutes:   22 * 60,
		BreakMinutes:     30,
		MinCleaners:      1,
		MaxCleaners:      3,
		DurationsHours:   []int{2, 4},
		NonWorkingDay:    time.Friday,
	}
}

// ConfigFromEnv starts from DefaultConfig and overrides from the
// environment where set (WORK_START_MINUTES, WORK_END_MINUTES,
// BREAK_MINUTES, NON_WORKING_DAY).
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("WORK_START_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.WorkStartMinutes = n
		}
	}
	if v := os.Getenv("WORK_END_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.WorkEndMinutes = n
		}
	}
	if v := os.Getenv("BREAK_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.BreakMinutes = n
		}
	}
	if v := os.Getenv("NON_WORKING_DAY"); v != "" {
		if day, ok := parseWeekday(v); ok {
			cfg.NonWorkingDay = day
		}
	}

	return cfg
}

// DurationAllowed reports whether hours is one of the allowed durations.
func (c Config) DurationAllowed(hours int) bool {
	for _, d := range c.DurationsHours {
		if d == hours {
			return true
		}
	}
	return false
}

// CrewCountAllowed reports whether count is within the crew bounds.
func (c Config) CrewCountAllowed(count int) bool {
	return count >= c.MinCleaners && count <= c.MaxCleaners
}

// InsideWorkingWindow reports whether [startMin, endMin) lies inside the
// working window. Both endpoints are hard boundaries.
func (c Config) InsideWorkingWindow(startMin, endMin int) bool {
	return startMin >= c.WorkStartMinutes && endMin <= c.WorkEndMinutes
}

func parseWeekday(s string) (time.Weekday, bool) {
	switch strings.ToLower(s) {
	case "sunday":
		return time.Sunday, true
	case "monday":
		return time.Monday, true
	case "tuesday":
		return time.Tuesday, true
	case "wednesday":
		return time.Wednesday, true
	case "thursday":
		return time.Thursday, true
	case "friday":
		return time.Friday, true
	case "saturday":
		return time.Saturday, true
	}
	return time.Sunday, false
}
