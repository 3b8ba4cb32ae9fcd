package workouts

import "errors"

var (
	// ErrCollaboratorUnavailable means no booking source has been attached.
	ErrCollaboratorUnavailable = errors.New("booking source is not available")

	// ErrNoPerformanceSummary means a booking has no linked workout to assemble.
	ErrNoPerformanceSummary = errors.New("booking has no linked performance summary")
)

// ValidationError rejects a single booking during assembly.
type ValidationError struct {
	BookingID string
	Message   string
}

func (e *ValidationError) Error() string {
	if e.BookingID == "" {
		return e.Message
	}
	return e.Message + " (booking " + e.BookingID + ")"
}
