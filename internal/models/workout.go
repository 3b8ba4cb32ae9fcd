package models

// Workout is the unified record assembled from a booking, its performance
// summary and its telemetry.
type Workout struct {
	PerformanceSummaryID string  `json:"performance_summary_id"`
	ClassHistoryUUID     string  `json:"class_history_uuid"`
	BookingID            string  `json:"booking_id"`
	ClassUUID            *string `json:"class_uuid"`
	Coach                *string `json:"coach"`

	Ratable     bool    `json:"ratable"`
	ClassRating *Rating `json:"class_rating"`
	CoachRating *Rating `json:"coach_rating"`

	CaloriesBurned    *int            `json:"calories_burned"`
	SplatPoints       *int            `json:"splat_points"`
	StepCount         *int            `json:"step_count"`
	ActiveTimeSeconds *int            `json:"active_time_seconds"`
	ZoneTimeMinutes   ZoneTimeMinutes `json:"zone_time_minutes"`
	HeartRate         HeartRate       `json:"heart_rate"`
	RowerData         map[string]any  `json:"rower_data"`
	TreadmillData     map[string]any  `json:"treadmill_data"`

	OtfClass  WorkoutClass `json:"otf_class"`
	Studio    *Studio      `json:"studio"`
	Telemetry *Telemetry   `json:"telemetry"`
}

// WorkoutClass is the class snapshot embedded in an assembled workout.
type WorkoutClass struct {
	ClassID   string  `json:"class_id"`
	ClassUUID *string `json:"class_uuid"`
	Name      string  `json:"name"`
	ClassType string  `json:"class_type"`
	StartsAt  *string `json:"starts_at"`
	EndsAt    *string `json:"ends_at"`
}
