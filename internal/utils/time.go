package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/otfkit/internal/constants"
)

// vendorLayouts lists the timestamp shapes the vendor APIs return. Layouts
// without an offset are interpreted in the local timezone.
var vendorLayouts = []struct {
	layout string
	naive  bool
}{
	{time.RFC3339Nano, false},
	{"2006-01-02T15:04:05.999999999", true},
	{"2006-01-02 15:04:05.999999999Z07:00", false},
	{"2006-01-02 15:04:05.999999999", true},
	{"2006-01-02T15:04", true},
	{constants.DateFormat, true},
}

// ParseTimestamp parses a vendor timestamp. It reports false for empty or
// unparsable input.
func ParseTimestamp(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, l := range vendorLayouts {
		var (
			t   time.Time
			err error
		)
		if l.naive {
			t, err = time.ParseInLocation(l.layout, value, time.Local)
		} else {
			t, err = time.Parse(l.layout, value)
		}
		if err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// EpochSeconds returns t as fractional seconds since the Unix epoch.
func EpochSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

// FormatAbsolute renders t in UTC with an explicit +00:00 offset and no
// sub-second precision.
func FormatAbsolute(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(constants.TimestampFormat)
}

// StartOfDay returns midnight of t's day in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns 23:59:59 of t's day in t's location.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

// DefaultHistoryWindow returns the workout history window ending today:
// local midnight `days` days before now through today at 23:59:59 local.
func DefaultHistoryWindow(now time.Time, days int) (time.Time, time.Time) {
	local := now.In(time.Local)
	return StartOfDay(local.AddDate(0, 0, -days)), EndOfDay(local)
}

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// ParseDateInLocation parses a date string (YYYY-MM-DD) in the specified timezone.
func ParseDateInLocation(dateStr string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", dateStr, err)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}
