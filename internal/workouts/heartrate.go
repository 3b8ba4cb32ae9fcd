package workouts

import "github.com/julianstephens/otfkit/internal/models"

// CorrectMaxHR replaces the summary's max heart rate with the maximum
// observed in telemetry. Without a telemetry value hr is returned unchanged.
func CorrectMaxHR(hr models.HeartRate, telemetry *models.Telemetry) models.HeartRate {
	if telemetry == nil || telemetry.MaxHR == nil {
		return hr
	}
	maxHR := *telemetry.MaxHR
	hr.MaxHR = &maxHR
	return hr
}
