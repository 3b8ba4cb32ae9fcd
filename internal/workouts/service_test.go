package workouts

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/julianstephens/otfkit/internal/models"
)

type fakeBookings struct {
	bookings []models.Booking
	err      error

	mu    sync.Mutex
	calls []bookingCall
}

type bookingCall struct {
	start, end                         time.Time
	excludeCancelled, removeDuplicates bool
}

func (f *fakeBookings) FetchBookingsInRange(_ context.Context, start, end time.Time, excludeCancelled, removeDuplicates bool) ([]models.Booking, error) {
	f.mu.Lock()
	f.calls = append(f.calls, bookingCall{start, end, excludeCancelled, removeDuplicates})
	f.mu.Unlock()
	return f.bookings, f.err
}

func (f *fakeBookings) FetchBookingByID(_ context.Context, id string) (*models.Booking, error) {
	for i := range f.bookings {
		if f.bookings[i].BookingID == id {
			b := f.bookings[i]
			return &b, nil
		}
	}
	return nil, errors.New("booking not found")
}

type fakePerformance struct {
	summaries   map[string]*models.PerformanceSummary
	telemetry   map[string]*models.Telemetry
	mapping     map[string]*string
	failSummary map[string]bool
	failTele    map[string]bool
	mappingErr  error

	mu            sync.Mutex
	summaryCalls  int
	mappingCalls  int
	maxDataPoints []int
}

func (f *fakePerformance) FetchPerformanceSummary(_ context.Context, id string) (*models.PerformanceSummary, error) {
	f.mu.Lock()
	f.summaryCalls++
	f.mu.Unlock()
	if f.failSummary[id] {
		return nil, errors.New("summary unavailable")
	}
	return f.summaries[id], nil
}

func (f *fakePerformance) FetchTelemetry(_ context.Context, id string, maxDataPoints int) (*models.Telemetry, error) {
	f.mu.Lock()
	f.maxDataPoints = append(f.maxDataPoints, maxDataPoints)
	f.mu.Unlock()
	if f.failTele[id] {
		return nil, errors.New("telemetry unavailable")
	}
	return f.telemetry[id], nil
}

func (f *fakePerformance) FetchClassUUIDMapping(context.Context) (map[string]*string, error) {
	f.mu.Lock()
	f.mappingCalls++
	f.mu.Unlock()
	return f.mapping, f.mappingErr
}

var fixedNow = time.Date(2024, 1, 20, 12, 0, 0, 0, time.UTC)

func newTestService(perf *fakePerformance, src BookingSource) *Service {
	s := NewService(perf)
	s.now = func() time.Time { return fixedNow }
	if src != nil {
		s.AttachBookings(src)
	}
	return s
}

func pastBooking(id, classID, summaryID, startsAt string) models.Booking {
	b := models.Booking{
		BookingID: id,
		Status:    models.StatusCheckedIn,
		Class: &models.BookingClass{
			ClassID:     classID,
			ClassType:   "ORANGE_60",
			StartsAt:    startsAt,
			StartsAtUTC: startsAt,
		},
	}
	if summaryID != "" {
		b.Workout = &models.BookingWorkout{PerformanceSummaryID: summaryID}
	}
	return b
}

func summary(id string, calories int) *models.PerformanceSummary {
	return &models.PerformanceSummary{ID: id, Details: models.SummaryDetails{CaloriesBurned: intPtr(calories)}}
}

func workoutIDs(ws []models.Workout) []string {
	out := make([]string, 0, len(ws))
	for _, w := range ws {
		out = append(out, w.BookingID)
	}
	return out
}

func TestGetWorkoutsNoBookingSource(t *testing.T) {
	perf := &fakePerformance{}
	s := newTestService(perf, nil)

	got, err := s.GetWorkouts(context.Background(), nil, nil, 0)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
	require.Zero(t, perf.mappingCalls)
}

func TestGetWorkoutsUnavailableSourceError(t *testing.T) {
	src := &fakeBookings{err: ErrCollaboratorUnavailable}
	got, err := newTestService(&fakePerformance{}, src).GetWorkouts(context.Background(), nil, nil, 0)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestGetWorkoutsBookingFetchErrorPropagates(t *testing.T) {
	src := &fakeBookings{err: errors.New("connection reset")}
	_, err := newTestService(&fakePerformance{}, src).GetWorkouts(context.Background(), nil, nil, 0)
	require.ErrorContains(t, err, "connection reset")
}

func TestGetWorkoutsDefaults(t *testing.T) {
	src := &fakeBookings{}
	perf := &fakePerformance{}
	_, err := newTestService(perf, src).GetWorkouts(context.Background(), nil, nil, 0)
	require.NoError(t, err)

	require.Len(t, src.calls, 1)
	call := src.calls[0]
	local := fixedNow.In(time.Local)
	wantStart := time.Date(local.Year(), local.Month(), local.Day()-30, 0, 0, 0, 0, time.Local)
	wantEnd := time.Date(local.Year(), local.Month(), local.Day(), 23, 59, 59, 0, time.Local)
	require.True(t, wantStart.Equal(call.start), "start = %v, want %v", call.start, wantStart)
	require.True(t, wantEnd.Equal(call.end), "end = %v, want %v", call.end, wantEnd)
	require.True(t, call.excludeCancelled)
	require.False(t, call.removeDuplicates)

	// nothing linked, so nothing else is fetched
	require.Zero(t, perf.mappingCalls)
	require.Zero(t, perf.summaryCalls)
}

func TestGetWorkoutsExplicitWindowAndDataPoints(t *testing.T) {
	src := &fakeBookings{bookings: []models.Booking{pastBooking("b1", "c1", "ps-1", "2024-01-10T10:00:00Z")}}
	perf := &fakePerformance{summaries: map[string]*models.PerformanceSummary{"ps-1": summary("ps-1", 300)}}
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	_, err := newTestService(perf, src).GetWorkouts(context.Background(), &start, &end, 42)
	require.NoError(t, err)
	require.Equal(t, start, src.calls[0].start)
	require.Equal(t, end, src.calls[0].end)
	require.Equal(t, []int{42}, perf.maxDataPoints)
}

func TestGetWorkoutsPipeline(t *testing.T) {
	src := &fakeBookings{bookings: []models.Booking{
		pastBooking("future", "c9", "ps-9", "2024-02-01T10:00:00Z"),
		pastBooking("b2", "c2", "ps-2", "2024-01-12T10:00:00Z"),
		pastBooking("b1", "c1", "ps-1", "2024-01-10T10:00:00Z"),
		pastBooking("b1-dup", "c1", "ps-1", "2024-01-10T10:00:00Z"),
		pastBooking("low", "c3", "ps-3", "2024-01-14T10:00:00Z"),
		pastBooking("unlinked", "c4", "", "2024-01-16T10:00:00Z"),
		{BookingID: "classless", Status: models.StatusBooked},
	}}
	src.bookings[3].Status = models.StatusCancelCheckinPending

	perf := &fakePerformance{
		summaries: map[string]*models.PerformanceSummary{
			"ps-1": summary("ps-1", 500),
			"ps-2": summary("ps-2", 450),
			"ps-3": summary("ps-3", 99),
		},
		telemetry: map[string]*models.Telemetry{
			"ps-1": {MaxHR: intPtr(195), Samples: []map[string]any{{"relative_timestamp": float64(300)}}},
		},
		mapping: map[string]*string{"ps-2": strPtr("uuid-2")},
	}

	got, err := newTestService(perf, src).GetWorkouts(context.Background(), nil, nil, 0)
	require.NoError(t, err)

	require.Equal(t, []string{"b1", "b2", "unlinked"}, workoutIDs(got))
	require.Equal(t, intPtr(195), got[0].HeartRate.MaxHR)
	require.Equal(t, "2024-01-10T10:05:00+00:00", got[0].Telemetry.Samples[0]["timestamp"])
	require.Equal(t, strPtr("uuid-2"), got[1].ClassUUID)
	require.Nil(t, got[1].Telemetry)
	require.Equal(t, "unknown", got[2].PerformanceSummaryID)
	require.Nil(t, got[2].CaloriesBurned)
	require.Equal(t, 1, perf.mappingCalls)
	require.Equal(t, []int{150, 150, 150}, perf.maxDataPoints)

	for _, w := range got {
		if w.CaloriesBurned != nil {
			require.GreaterOrEqual(t, *w.CaloriesBurned, 100)
		}
	}
}

func TestGetWorkoutsPartialFailure(t *testing.T) {
	src := &fakeBookings{bookings: []models.Booking{
		pastBooking("b1", "c1", "ps-1", "2024-01-10T10:00:00Z"),
		pastBooking("b2", "c2", "ps-2", "2024-01-11T10:00:00Z"),
		pastBooking("b3", "c3", "ps-3", "2024-01-12T10:00:00Z"),
	}}
	perf := &fakePerformance{
		summaries: map[string]*models.PerformanceSummary{
			"ps-1": summary("ps-1", 500),
			"ps-2": summary("ps-2", 600),
			"ps-3": summary("ps-3", 700),
		},
		failSummary: map[string]bool{"ps-2": true},
		failTele:    map[string]bool{"ps-1": true, "ps-2": true, "ps-3": true},
	}

	got, err := newTestService(perf, src).GetWorkouts(context.Background(), nil, nil, 0)
	require.NoError(t, err)

	require.Equal(t, []string{"b1", "b2", "b3"}, workoutIDs(got))
	require.Equal(t, intPtr(500), got[0].CaloriesBurned)
	require.Equal(t, "ps-2", got[1].PerformanceSummaryID)
	require.Nil(t, got[1].CaloriesBurned)
	require.Equal(t, intPtr(700), got[2].CaloriesBurned)
	for _, w := range got {
		require.Nil(t, w.Telemetry)
	}
}

func TestGetWorkoutsMappingErrorPropagates(t *testing.T) {
	src := &fakeBookings{bookings: []models.Booking{pastBooking("b1", "c1", "ps-1", "2024-01-10T10:00:00Z")}}
	perf := &fakePerformance{mappingErr: errors.New("mapping endpoint down")}

	_, err := newTestService(perf, src).GetWorkouts(context.Background(), nil, nil, 0)
	require.ErrorContains(t, err, "mapping endpoint down")
}

func TestGetWorkoutFromBooking(t *testing.T) {
	src := &fakeBookings{bookings: []models.Booking{
		pastBooking("b1", "c1", "ps-1", "2024-01-10T10:00:00Z"),
		pastBooking("b2", "c2", "", "2024-01-11T10:00:00Z"),
	}}
	perf := &fakePerformance{
		summaries: map[string]*models.PerformanceSummary{"ps-1": summary("ps-1", 80)},
		telemetry: map[string]*models.Telemetry{"ps-1": {MaxHR: intPtr(177)}},
	}
	s := newTestService(perf, src)

	w, err := s.GetWorkoutFromBooking(context.Background(), "b1", 0)
	require.NoError(t, err)
	require.Equal(t, "ps-1", w.PerformanceSummaryID)
	require.Equal(t, intPtr(80), w.CaloriesBurned)
	require.Equal(t, intPtr(177), w.HeartRate.MaxHR)

	_, err = s.GetWorkoutFromBooking(context.Background(), "b2", 0)
	require.ErrorIs(t, err, ErrNoPerformanceSummary)

	_, err = s.GetWorkoutFromBooking(context.Background(), "missing", 0)
	require.ErrorContains(t, err, "booking not found")

	_, err = newTestService(perf, nil).GetWorkoutFromBooking(context.Background(), "b1", 0)
	require.ErrorIs(t, err, ErrCollaboratorUnavailable)
}
