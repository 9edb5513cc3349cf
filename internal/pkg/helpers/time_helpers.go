package helpers

import (
	"fmt"
	"regexp"
	"time"
)

var monthPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])-(\d{4})$`)

// ParseMonthRange parses a "MM-YYYY" string into the UTC half-open interval
// [first day of month, first day of next month).
func ParseMonthRange(month string) (from, to time.Time, err error) {
	m := monthPattern.FindStringSubmatch(month)
	if m == nil {
		return time.Time{}, time.Time{}, fmt.Errorf("month must match MM-YYYY, got %q", month)
	}

	t, err := time.Parse("01-2006", month)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid month %q: %w", month, err)
	}

	from = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	to = from.AddDate(0, 1, 0)
	return from, to, nil
}

// ParseDuration parses a duration string, falling back to a default on error
func ParseDuration(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}

// MonthLabel formats a month for display on payslips and reports, e.g. "February 2025"
func MonthLabel(month string) string {
	t, err := time.Parse("01-2006", month)
	if err != nil {
		return month
	}
	return t.Format("January 2006")
}
