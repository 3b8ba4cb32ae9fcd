package models

// PerformanceSummary holds the metrics recorded for one workout.
type PerformanceSummary struct {
	ID      string         `json:"id"`
	Ratable *bool          `json:"ratable"`
	Class   *SummaryClass  `json:"class"`
	Coach   *Coach         `json:"coach"`
	Details SummaryDetails `json:"details"`
}

// SummaryClass is the class reference carried by a performance summary.
type SummaryClass struct {
	ClassUUID *string `json:"ot_base_class_uuid"`
	StartsAt  string  `json:"starts_at_local"`
	Name      string  `json:"name"`
}

type SummaryDetails struct {
	CaloriesBurned    *int             `json:"calories_burned"`
	SplatPoints       *int             `json:"splat_points"`
	StepCount         *int             `json:"step_count"`
	ActiveTimeSeconds *int             `json:"active_time_seconds"`
	ZoneTimeMinutes   *ZoneTimeMinutes `json:"zone_time_minutes"`
	HeartRate         *HeartRate       `json:"heart_rate"`
	// EquipmentData is keyed by equipment ("rower", "treadmill"); each breakdown
	// is kept as decoded JSON so unknown metrics survive.
	EquipmentData map[string]map[string]any `json:"equipment_data"`
}

type ZoneTimeMinutes struct {
	Gray   int `json:"gray"`
	Blue   int `json:"blue"`
	Green  int `json:"green"`
	Orange int `json:"orange"`
	Red    int `json:"red"`
}

// HeartRate metrics. MaxHR is frequently absent or inconsistent with PeakHR.
type HeartRate struct {
	MaxHR         *int `json:"max_hr"`
	PeakHR        *int `json:"peak_hr"`
	PeakHRPercent *int `json:"peak_hr_percent"`
	AvgHR         *int `json:"avg_hr"`
	AvgHRPercent  *int `json:"avg_hr_percent"`
}
