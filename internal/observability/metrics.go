package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// Fetch sources.
const (
	SourceBookings           = "bookings"
	SourceBooking            = "booking"
	SourcePerformanceSummary = "performance_summary"
	SourceTelemetry          = "telemetry"
	SourceClassUUIDMapping   = "class_uuid_mapping"
)

// Workout outcomes.
const (
	OutcomeAssembled   = "assembled"
	OutcomeInvalid     = "invalid"
	OutcomeLowCalories = "low_calories"
)

const namespace = "otf"

var (
	fetchCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "fetch_total",
		Help:      "Remote fetches grouped by source and outcome.",
	}, []string{"source", "outcome"})

	workoutCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "workouts_total",
		Help:      "Bookings processed by the workout assembler grouped by outcome.",
	}, []string{"outcome"})

	cacheCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_lookups_total",
		Help:      "Cache lookups grouped by result.",
	}, []string{"result"})

	fanOutDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "fanout_duration_seconds",
		Help:      "Wall time of one concurrent fetch batch.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"source"})
)

func init() {
	prometheus.MustRegister(fetchCounter, workoutCounter, cacheCounter, fanOutDuration)
}

// RecordFetch counts one remote fetch as ok or error.
func RecordFetch(source string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	fetchCounter.WithLabelValues(source, outcome).Inc()
}

// RecordWorkout counts one assembler outcome.
func RecordWorkout(outcome string) {
	workoutCounter.WithLabelValues(outcome).Inc()
}

// RecordCacheLookup counts a cache hit or miss.
func RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	cacheCounter.WithLabelValues(result).Inc()
}

// ObserveFanOut records how long a fetch batch took.
func ObserveFanOut(source string, d time.Duration) {
	fanOutDuration.WithLabelValues(source).Observe(d.Seconds())
}

// WriteStats prints every otf_ series from the default registry, one per line.
func WriteStats(w io.Writer) error {
	return writeStats(w, prometheus.DefaultGatherer)
}

func writeStats(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}

	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), namespace+"_") {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := formatLabels(m.GetLabel())
			switch mf.GetType() {
			case dto.MetricType_COUNTER:
				fmt.Fprintf(w, "%s%s %g\n", mf.GetName(), labels, m.GetCounter().GetValue())
			case dto.MetricType_HISTOGRAM:
				h := m.GetHistogram()
				fmt.Fprintf(w, "%s_count%s %d\n", mf.GetName(), labels, h.GetSampleCount())
				fmt.Fprintf(w, "%s_sum%s %g\n", mf.GetName(), labels, h.GetSampleSum())
			}
		}
	}
	return nil
}

func formatLabels(pairs []*dto.LabelPair) string {
	if len(pairs) == 0 {
		return ""
	}
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, fmt.Sprintf("%s=%q", p.GetName(), p.GetValue()))
	}
	sort.Strings(parts)
	return "{" + strings.Join(parts, ",") + "}"
}
