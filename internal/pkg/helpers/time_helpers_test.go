package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMonthRange(t *testing.T) {
	from, to, err := ParseMonthRange("02-2025")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), to)
}

func TestParseMonthRangeDecemberRollsOver(t *testing.T) {
	from, to, err := ParseMonthRange("12-2024")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), to)
}

func TestParseMonthRangeRejectsBadInput(t *testing.T) {
	for _, input := range []string{"", "2025-02", "13-2025", "00-2025", "2-2025", "02/2025"} {
		_, _, err := ParseMonthRange(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestMonthLabel(t *testing.T) {
	assert.Equal(t, "February 2025", MonthLabel("02-2025"))
	// unparseable input falls through unchanged
	assert.Equal(t, "garbage", MonthLabel("garbage"))
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 2*time.Hour, ParseDuration("2h", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("not-a-duration", time.Minute))
}
