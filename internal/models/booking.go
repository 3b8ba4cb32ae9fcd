package models

import (
	"encoding/json"
	"strings"
)

// Booking is one reservation for a class as returned by the bookings endpoint.
// Timestamps are kept as the raw vendor strings; they may be empty or invalid.
type Booking struct {
	BookingID   string          `json:"id"`
	MemberUUID  string          `json:"member_uuid,omitempty"`
	Status      BookingStatus   `json:"status"`
	Class       *BookingClass   `json:"class"`
	Workout     *BookingWorkout `json:"workout"`
	Ratable     bool            `json:"ratable"`
	ClassRating *Rating         `json:"class_rating"`
	CoachRating *Rating         `json:"coach_rating"`
	CreatedAt   string          `json:"created_at,omitempty"`
	UpdatedAt   string          `json:"updated_at,omitempty"`
}

// ClassID returns the class identity used for deduplication, or "" when the
// booking has no class snapshot.
func (b Booking) ClassID() string {
	if b.Class == nil {
		return ""
	}
	return b.Class.ClassID
}

// StartsAt returns the raw local class start time, or "" when absent.
func (b Booking) StartsAt() string {
	if b.Class == nil {
		return ""
	}
	return b.Class.StartsAt
}

// PerformanceSummaryID returns the linked performance-summary identifier, or "".
func (b Booking) PerformanceSummaryID() string {
	if b.Workout == nil {
		return ""
	}
	if b.Workout.PerformanceSummaryID != "" {
		return b.Workout.PerformanceSummaryID
	}
	return b.Workout.ID
}

// BookingClass is the class snapshot embedded in a booking.
type BookingClass struct {
	ClassID     string  `json:"id"`
	ClassUUID   *string `json:"ot_base_class_uuid"`
	Name        string  `json:"name"`
	ClassType   string  `json:"type"`
	StartsAt    string  `json:"starts_at_local"`
	StartsAtUTC string  `json:"starts_at,omitempty"`
	EndsAt      string  `json:"ends_at_local,omitempty"`
	Coach       *Coach  `json:"coach"`
	Studio      *Studio `json:"studio"`
}

// BookingWorkout is the workout reference embedded in a past booking.
type BookingWorkout struct {
	ID                   string `json:"id"`
	PerformanceSummaryID string `json:"performance_summary_id"`
	CaloriesBurned       *int   `json:"calories_burned"`
	SplatPoints          *int   `json:"splat_points"`
	StepCount            *int   `json:"step_count"`
	ActiveTimeSeconds    *int   `json:"active_time_seconds"`
}

// Rating is an existing class or coach rating.
type Rating struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Value       int    `json:"value"`
}

// Coach carries the coach name. The vendor returns it in snake_case from the
// bookings API and camelCase from the performance API; both are accepted.
type Coach struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (c *Coach) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.FirstName = firstString(raw, "first_name", "firstName")
	c.LastName = firstString(raw, "last_name", "lastName")
	return nil
}

func firstString(raw map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := raw[k].(string); ok && strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
