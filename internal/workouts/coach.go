package workouts

import (
	"strings"

	"github.com/julianstephens/otfkit/internal/models"
)

// FormatCoachName joins a coach's first and last name. It returns nil when
// neither part is present.
func FormatCoachName(coach *models.Coach) *string {
	if coach == nil {
		return nil
	}
	name := strings.TrimSpace(strings.TrimSpace(coach.FirstName) + " " + strings.TrimSpace(coach.LastName))
	if name == "" {
		return nil
	}
	return &name
}
