package models

// Telemetry is the heart-rate time series for one performance summary.
// Samples keep their decoded JSON form so an unenhanced series is passed
// through exactly as the vendor returned it.
type Telemetry struct {
	MemberUUID           string           `json:"memberUuid"`
	PerformanceSummaryID string           `json:"performanceSummaryId,omitempty"`
	ClassHistoryUUID     string           `json:"classHistoryUuid"`
	ClassStartTime       string           `json:"classStartTime,omitempty"`
	MaxHR                *int             `json:"maxHr"`
	Zones                map[string]any   `json:"zones"`
	WindowSize           *int             `json:"windowSize"`
	Samples              []map[string]any `json:"telemetry"`
}
