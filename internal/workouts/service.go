package workouts

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/julianstephens/otfkit/internal/bookings"
	"github.com/julianstephens/otfkit/internal/constants"
	"github.com/julianstephens/otfkit/internal/fanout"
	"github.com/julianstephens/otfkit/internal/logger"
	"github.com/julianstephens/otfkit/internal/models"
	"github.com/julianstephens/otfkit/internal/observability"
	"github.com/julianstephens/otfkit/internal/utils"
)

// BookingSource lists and looks up bookings.
type BookingSource interface {
	FetchBookingsInRange(ctx context.Context, start, end time.Time, excludeCancelled, removeDuplicates bool) ([]models.Booking, error)
	FetchBookingByID(ctx context.Context, bookingID string) (*models.Booking, error)
}

// PerformanceSource fetches the per-workout data joined onto bookings.
type PerformanceSource interface {
	FetchPerformanceSummary(ctx context.Context, id string) (*models.PerformanceSummary, error)
	FetchTelemetry(ctx context.Context, id string, maxDataPoints int) (*models.Telemetry, error)
	FetchClassUUIDMapping(ctx context.Context) (map[string]*string, error)
}

// Service assembles workout history. The booking source is attached after
// construction because the client that provides it is built independently.
type Service struct {
	perf PerformanceSource

	mu       sync.RWMutex
	bookings BookingSource

	now func() time.Time
}

// NewService creates a Service without a booking source.
func NewService(perf PerformanceSource) *Service {
	return &Service{perf: perf, now: time.Now}
}

// AttachBookings wires the booking source.
func (s *Service) AttachBookings(src BookingSource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings = src
}

func (s *Service) bookingSource() (BookingSource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.bookings == nil {
		return nil, ErrCollaboratorUnavailable
	}
	return s.bookings, nil
}

// GetWorkouts returns the assembled workouts for bookings in [start, end],
// ordered by class start time. A nil start or end falls back to the default
// history window; maxDataPoints <= 0 uses the default telemetry resolution.
//
// Without an attached booking source the result is empty. Per-booking
// problems (failed fetches, invalid bookings, low calorie readings) shorten
// the result instead of failing it.
func (s *Service) GetWorkouts(ctx context.Context, start, end *time.Time, maxDataPoints int) ([]models.Workout, error) {
	now := s.now()
	from, to := utils.DefaultHistoryWindow(now, constants.DefaultHistoryDays)
	if start != nil {
		from = *start
	}
	if end != nil {
		to = *end
	}
	if maxDataPoints <= 0 {
		maxDataPoints = constants.DefaultMaxDataPoints
	}

	src, err := s.bookingSource()
	if err != nil {
		logger.Warn("No booking source attached, returning no workouts")
		return []models.Workout{}, nil
	}

	raw, err := src.FetchBookingsInRange(ctx, from, to, true, false)
	if errors.Is(err, ErrCollaboratorUnavailable) {
		logger.Warn("Booking source unavailable, returning no workouts", "error", err)
		return []models.Workout{}, nil
	}
	if err != nil {
		logger.Error("Failed to fetch bookings", "start", from, "end", to, "error", err)
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}

	candidates := bookings.Deduplicate(bookings.FilterPast(raw, now))

	ids := make([]string, 0, len(candidates))
	for _, b := range candidates {
		if id := b.PerformanceSummaryID(); id != "" {
			ids = append(ids, id)
		}
	}
	logger.Debug("Assembling workouts", "bookings", len(raw), "candidates", len(candidates), "linked", len(ids))

	d, err := s.fetchDetails(ctx, ids, maxDataPoints)
	if err != nil {
		logger.Error("Failed to fetch workout details", "error", err)
		return nil, err
	}

	out := make([]models.Workout, 0, len(candidates))
	for i := range candidates {
		w, err := d.assemble(&candidates[i])
		if err != nil {
			var verr *ValidationError
			if errors.As(err, &verr) {
				logger.Warn("Skipping invalid booking", "booking_id", candidates[i].BookingID, "error", err)
				observability.RecordWorkout(observability.OutcomeInvalid)
				continue
			}
			return nil, err
		}
		if w.CaloriesBurned != nil && *w.CaloriesBurned < constants.MinValidCalories {
			logger.Debug("Dropping workout below calorie floor",
				"booking_id", w.BookingID, "calories", *w.CaloriesBurned)
			observability.RecordWorkout(observability.OutcomeLowCalories)
			continue
		}
		observability.RecordWorkout(observability.OutcomeAssembled)
		out = append(out, *w)
	}
	return out, nil
}

// GetWorkoutFromBooking assembles the workout linked to a single booking.
func (s *Service) GetWorkoutFromBooking(ctx context.Context, bookingID string, maxDataPoints int) (*models.Workout, error) {
	if maxDataPoints <= 0 {
		maxDataPoints = constants.DefaultMaxDataPoints
	}

	src, err := s.bookingSource()
	if err != nil {
		return nil, err
	}

	b, err := src.FetchBookingByID(ctx, bookingID)
	observability.RecordFetch(observability.SourceBooking, err)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking %s: %w", bookingID, err)
	}

	id := b.PerformanceSummaryID()
	if id == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoPerformanceSummary, bookingID)
	}

	d, err := s.fetchDetails(ctx, []string{id}, maxDataPoints)
	if err != nil {
		return nil, err
	}
	return d.assemble(b)
}

// details holds the per-identifier results of one fetch round.
type details struct {
	summaries  map[string]*models.PerformanceSummary
	telemetry  map[string]*models.Telemetry
	classUUIDs map[string]*string
}

func (d details) assemble(b *models.Booking) (*models.Workout, error) {
	id := b.PerformanceSummaryID()
	return Assemble(b, d.summaries[id], d.telemetry[id], d.classUUIDs[id])
}

// fetchDetails runs the summary and telemetry fan-outs alongside the class
// uuid mapping call. Individual summary or telemetry failures are absorbed by
// the fan-outs; a mapping failure is returned.
func (s *Service) fetchDetails(ctx context.Context, ids []string, maxDataPoints int) (details, error) {
	d := details{
		summaries:  map[string]*models.PerformanceSummary{},
		telemetry:  map[string]*models.Telemetry{},
		classUUIDs: map[string]*string{},
	}
	if len(ids) == 0 {
		return d, nil
	}

	var g errgroup.Group
	g.Go(func() error {
		d.summaries = fanout.Collect[string, *models.PerformanceSummary](
			ctx, observability.SourcePerformanceSummary, ids, fanout.OmitOnError, s.perf.FetchPerformanceSummary)
		return nil
	})
	g.Go(func() error {
		d.telemetry = fanout.Collect[string, *models.Telemetry](
			ctx, observability.SourceTelemetry, ids, fanout.NilOnError,
			func(ctx context.Context, id string) (*models.Telemetry, error) {
				return s.perf.FetchTelemetry(ctx, id, maxDataPoints)
			})
		return nil
	})
	g.Go(func() error {
		mapping, err := s.perf.FetchClassUUIDMapping(ctx)
		observability.RecordFetch(observability.SourceClassUUIDMapping, err)
		if err != nil {
			return fmt.Errorf("failed to fetch class uuid mapping: %w", err)
		}
		if mapping != nil {
			d.classUUIDs = mapping
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return details{}, err
	}
	return d, nil
}
