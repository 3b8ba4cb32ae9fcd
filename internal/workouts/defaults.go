package workouts

import (
	"github.com/julianstephens/otfkit/internal/constants"
	"github.com/julianstephens/otfkit/internal/models"
)

// defaultWorkout is the table of values a workout field takes when neither
// the performance summary nor the booking supplies one. Assemble starts from
// this record and overlays whatever the sources provide.
func defaultWorkout() models.Workout {
	return models.Workout{
		PerformanceSummaryID: constants.UnknownWorkoutID,
		ClassHistoryUUID:     constants.UnknownWorkoutID,
		BookingID:            "",
		ClassUUID:            nil,
		Coach:                nil,

		Ratable:     false,
		ClassRating: nil,
		CoachRating: nil,

		// Metrics stay null rather than 0 so a workout without a summary is
		// not mistaken for a tracking failure by the calorie floor.
		CaloriesBurned:    nil,
		SplatPoints:       nil,
		StepCount:         nil,
		ActiveTimeSeconds: nil,
		ZoneTimeMinutes:   models.ZoneTimeMinutes{},
		HeartRate:         models.HeartRate{},
		RowerData:         map[string]any{},
		TreadmillData:     map[string]any{},

		OtfClass:  models.WorkoutClass{},
		Studio:    nil,
		Telemetry: nil,
	}
}

// Equipment breakdown keys in SummaryDetails.EquipmentData.
const (
	equipmentRower     = "rower"
	equipmentTreadmill = "treadmill"
)
