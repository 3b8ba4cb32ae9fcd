package workouts

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	maxPowerKey    = "max_power"
	metricValueKey = "metric_value"
)

// FilterEquipmentData copies one equipment breakdown without the internal
// max_power metric and with every metric_value rendered as a decimal string.
// A nil breakdown yields an empty map.
func FilterEquipmentData(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		if k == maxPowerKey {
			continue
		}
		out[k] = formatMetricValues(v)
	}
	return out
}

func formatMetricValues(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			if k == metricValueKey {
				out[k] = FormatDecimal(inner)
				continue
			}
			out[k] = formatMetricValues(inner)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, inner := range val {
			out[i] = formatMetricValues(inner)
		}
		return out
	default:
		return v
	}
}

// FormatDecimal renders a numeric value as a decimal string that always has a
// fractional part: 5 becomes "5.0", 5.25 stays "5.25". Strings holding a whole
// number get ".0" appended. Anything else is returned as is.
func FormatDecimal(v any) any {
	switch val := v.(type) {
	case float64:
		return withFraction(decimal.NewFromFloat(val).String())
	case float32:
		return withFraction(decimal.NewFromFloat32(val).String())
	case int:
		return withFraction(decimal.NewFromInt(int64(val)).String())
	case int64:
		return withFraction(decimal.NewFromInt(val).String())
	case json.Number:
		d, err := decimal.NewFromString(val.String())
		if err != nil {
			return val.String()
		}
		return withFraction(d.String())
	case string:
		if isWholeNumber(val) {
			return val + ".0"
		}
		return val
	default:
		return v
	}
}

func withFraction(s string) string {
	if strings.Contains(s, ".") {
		return s
	}
	return s + ".0"
}

func isWholeNumber(s string) bool {
	digits := strings.TrimPrefix(s, "-")
	if digits == "" {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
