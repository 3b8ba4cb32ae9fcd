package workouts

import (
	"encoding/json"
	"maps"
	"time"

	"github.com/julianstephens/otfkit/internal/models"
	"github.com/julianstephens/otfkit/internal/utils"
)

const sampleTimestampKey = "timestamp"

var relativeTimestampKeys = []string{"relative_timestamp", "relativeTimestamp"}

// EnhanceTelemetry returns a copy of telemetry where every sample carrying a
// relative offset also carries an absolute "timestamp" computed from
// classStart. With no class start the telemetry is returned untouched.
func EnhanceTelemetry(telemetry *models.Telemetry, classStart *time.Time) *models.Telemetry {
	if telemetry == nil || classStart == nil {
		return telemetry
	}

	out := *telemetry
	out.Samples = make([]map[string]any, len(telemetry.Samples))
	for i, sample := range telemetry.Samples {
		enhanced := maps.Clone(sample)
		if offset, ok := relativeOffset(sample); ok {
			if enhanced == nil {
				enhanced = make(map[string]any, 1)
			}
			enhanced[sampleTimestampKey] = utils.FormatAbsolute(classStart.Add(offset))
		}
		out.Samples[i] = enhanced
	}
	return &out
}

func relativeOffset(sample map[string]any) (time.Duration, bool) {
	for _, key := range relativeTimestampKeys {
		raw, ok := sample[key]
		if !ok || raw == nil {
			continue
		}
		var seconds float64
		switch v := raw.(type) {
		case float64:
			seconds = v
		case int:
			seconds = float64(v)
		case int64:
			seconds = float64(v)
		case json.Number:
			f, err := v.Float64()
			if err != nil {
				continue
			}
			seconds = f
		default:
			continue
		}
		return time.Duration(seconds * float64(time.Second)), true
	}
	return 0, false
}

// classStartTime picks the first parsable class start from the telemetry,
// then the booking's UTC start, then its local start.
func classStartTime(class *models.BookingClass, telemetry *models.Telemetry) *time.Time {
	var candidates []string
	if telemetry != nil {
		candidates = append(candidates, telemetry.ClassStartTime)
	}
	if class != nil {
		candidates = append(candidates, class.StartsAtUTC, class.StartsAt)
	}
	for _, c := range candidates {
		if t, ok := utils.ParseTimestamp(c); ok {
			return &t
		}
	}
	return nil
}
