package workouts

import (
	"time"

	"github.com/julianstephens/otfkit/internal/constants"
	"github.com/julianstephens/otfkit/internal/logger"
)

const localTimeLayout = "2006-01-02T15:04:05"

// ClassDuration returns the scheduled length of a class type. OTHER and
// unrecognised types fall back to the default length with a warning.
func ClassDuration(classType string) time.Duration {
	minutes, ok := constants.ClassDurationsMin[constants.ClassType(classType)]
	if !ok {
		logger.Warn("Unknown class duration, using default",
			"class_type", classType, "minutes", constants.DefaultClassDurationMin)
		minutes = constants.DefaultClassDurationMin
	}
	return time.Duration(minutes) * time.Minute
}

// InferClassEndTime adds the class type's duration to start.
func InferClassEndTime(start time.Time, classType string) time.Time {
	return start.Add(ClassDuration(classType))
}

// formatLike renders t in the same shape as the raw timestamp it was derived
// from: with an offset if raw had one, as naive local time otherwise.
func formatLike(raw string, t time.Time) string {
	if _, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t.Format(time.RFC3339)
	}
	return t.Format(localTimeLayout)
}
