// Package workouts joins bookings with their performance summaries and
// telemetry into assembled workout records.
package workouts

import (
	"github.com/julianstephens/otfkit/internal/constants"
	"github.com/julianstephens/otfkit/internal/models"
	"github.com/julianstephens/otfkit/internal/utils"
)

// Assemble builds one workout from a booking and whatever was fetched for it.
// summary, telemetry and classUUID may all be nil; missing values take the
// defaults from defaultWorkout. Only a nil booking or a booking without a
// class snapshot is rejected, with a *ValidationError.
func Assemble(booking *models.Booking, summary *models.PerformanceSummary, telemetry *models.Telemetry, classUUID *string) (*models.Workout, error) {
	if booking == nil {
		return nil, &ValidationError{Message: "booking is required"}
	}
	if booking.Class == nil {
		return nil, &ValidationError{BookingID: booking.BookingID, Message: "class information missing"}
	}
	if summary == nil {
		summary = &models.PerformanceSummary{}
	}

	w := defaultWorkout()

	id := workoutID(booking, summary)
	w.PerformanceSummaryID = id
	w.ClassHistoryUUID = id
	w.BookingID = booking.BookingID
	w.ClassUUID = classUUID

	w.Coach = FormatCoachName(booking.Class.Coach)
	if w.Coach == nil {
		w.Coach = FormatCoachName(summary.Coach)
	}

	w.Ratable = booking.Ratable
	if summary.Ratable != nil {
		w.Ratable = *summary.Ratable
	}
	w.ClassRating = booking.ClassRating
	w.CoachRating = booking.CoachRating

	details := summary.Details
	embedded := booking.Workout
	if embedded == nil {
		embedded = &models.BookingWorkout{}
	}
	w.CaloriesBurned = firstInt(details.CaloriesBurned, embedded.CaloriesBurned)
	w.SplatPoints = firstInt(details.SplatPoints, embedded.SplatPoints)
	w.StepCount = firstInt(details.StepCount, embedded.StepCount)
	w.ActiveTimeSeconds = firstInt(details.ActiveTimeSeconds, embedded.ActiveTimeSeconds)

	if details.ZoneTimeMinutes != nil {
		w.ZoneTimeMinutes = *details.ZoneTimeMinutes
	}
	if details.HeartRate != nil {
		w.HeartRate = *details.HeartRate
	}
	w.HeartRate = CorrectMaxHR(w.HeartRate, telemetry)

	w.RowerData = FilterEquipmentData(details.EquipmentData[equipmentRower])
	w.TreadmillData = FilterEquipmentData(details.EquipmentData[equipmentTreadmill])

	w.OtfClass = classSnapshot(booking.Class, summary.Class)
	w.Studio = booking.Class.Studio
	w.Telemetry = EnhanceTelemetry(telemetry, classStartTime(booking.Class, telemetry))

	return &w, nil
}

func workoutID(booking *models.Booking, summary *models.PerformanceSummary) string {
	if summary.ID != "" {
		return summary.ID
	}
	if id := booking.PerformanceSummaryID(); id != "" {
		return id
	}
	return constants.UnknownWorkoutID
}

func classSnapshot(class *models.BookingClass, ref *models.SummaryClass) models.WorkoutClass {
	snap := models.WorkoutClass{
		ClassID:   class.ClassID,
		ClassUUID: class.ClassUUID,
		Name:      class.Name,
		ClassType: class.ClassType,
	}
	if snap.ClassUUID == nil && ref != nil {
		snap.ClassUUID = ref.ClassUUID
	}
	if snap.Name == "" && ref != nil {
		snap.Name = ref.Name
	}

	startsAt := class.StartsAt
	if startsAt == "" && ref != nil {
		startsAt = ref.StartsAt
	}
	if startsAt != "" {
		snap.StartsAt = &startsAt
	}

	switch {
	case class.EndsAt != "":
		endsAt := class.EndsAt
		snap.EndsAt = &endsAt
	case startsAt != "":
		if start, ok := utils.ParseTimestamp(startsAt); ok {
			endsAt := formatLike(startsAt, InferClassEndTime(start, class.ClassType))
			snap.EndsAt = &endsAt
		}
	}
	return snap
}

func firstInt(values ...*int) *int {
	for _, v := range values {
		if v != nil {
			n := *v
			return &n
		}
	}
	return nil
}
