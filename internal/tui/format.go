package tui

import (
	"strconv"

	"github.com/julianstephens/otfkit/internal/models"
	"github.com/julianstephens/otfkit/internal/utils"
)

// Headers are the column titles shared by the browser and `workouts list`.
var Headers = []string{"Date", "Class", "Coach", "Calories", "Splats", "Max HR", "Avg HR", "Booking"}

// Row renders one workout as table cells.
func Row(w models.Workout) []string {
	return []string{
		classDate(w.OtfClass.StartsAt),
		w.OtfClass.Name,
		str(w.Coach),
		num(w.CaloriesBurned),
		num(w.SplatPoints),
		num(w.HeartRate.MaxHR),
		num(w.HeartRate.AvgHR),
		w.BookingID,
	}
}

func classDate(startsAt *string) string {
	if startsAt == nil {
		return "-"
	}
	if t, ok := utils.ParseTimestamp(*startsAt); ok {
		return t.Format("Mon Jan 02 15:04")
	}
	return *startsAt
}

func num(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

func str(v *string) string {
	if v == nil || *v == "" {
		return "-"
	}
	return *v
}
