package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 480, cfg.WorkStartMinutes)
	assert.Equal(t, 1320, cfg.WorkEndMinutes)
	assert.Equal(t, 30, cfg.BreakMinutes)
	assert.Equal(t, time.Friday, cfg.NonWorkingDay)
}

func TestConfigFromEnvOverrides(t *testing.T) {
	t.Setenv("WORK_START_MINUTES", "540")
	t.Setenv("BREAK_MINUTES", "45")
	t.Setenv("NON_WORKING_DAY", "Sunday")

	cfg := ConfigFromEnv()

	assert.Equal(t, 540, cfg.WorkStartMinutes)
	assert.Equal(t, 1320, cfg.WorkEndMinutes)
	assert.Equal(t, 45, cfg.BreakMinutes)
	assert.Equal(t, time.Sunday, cfg.NonWorkingDay)
}

func TestDurationAllowed(t *testing.T) {
	cfg := DefaultConfig()

	assert.True(t, cfg.DurationAllowed(2))
	assert.True(t, cfg.DurationAllowed(4))
	assert.False(t, cfg.DurationAllowed(3))
	assert.False(t, cfg.DurationAllowed(0))
}

func TestCrewCountAllowed(t *testing.T) {
	cfg := DefaultConfig()

	assert.False(t, cfg.CrewCountAllowed(0))
	assert.True(t, cfg.CrewCountAllowed(1))
	assert.True(t, cfg.CrewCountAllowed(3))
	assert.False(t, cfg.CrewCountAllowed(4))
}

func TestInsideWorkingWindow(t *testing.T) {
	cfg := DefaultConfig()

	// Exactly 08:00-10:00 is allowed; the window is a hard boundary.
	assert.True(t, cfg.InsideWorkingWindow(480, 600))
	assert.True(t, cfg.InsideWorkingWindow(1200, 1320))
	assert.False(t, cfg.InsideWorkingWindow(479, 600))
	assert.False(t, cfg.InsideWorkingWindow(1200, 1321))
}
