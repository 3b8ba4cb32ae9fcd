package observability

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordFetch(t *testing.T) {
	okBefore := testutil.ToFloat64(fetchCounter.WithLabelValues(SourceTelemetry, "ok"))
	errBefore := testutil.ToFloat64(fetchCounter.WithLabelValues(SourceTelemetry, "error"))

	RecordFetch(SourceTelemetry, nil)
	RecordFetch(SourceTelemetry, errors.New("boom"))
	RecordFetch(SourceTelemetry, errors.New("boom again"))

	if got := testutil.ToFloat64(fetchCounter.WithLabelValues(SourceTelemetry, "ok")) - okBefore; got != 1 {
		t.Errorf("ok delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(fetchCounter.WithLabelValues(SourceTelemetry, "error")) - errBefore; got != 2 {
		t.Errorf("error delta = %v, want 2", got)
	}
}

func TestRecordWorkout(t *testing.T) {
	before := testutil.ToFloat64(workoutCounter.WithLabelValues(OutcomeLowCalories))
	RecordWorkout(OutcomeLowCalories)
	if got := testutil.ToFloat64(workoutCounter.WithLabelValues(OutcomeLowCalories)) - before; got != 1 {
		t.Errorf("delta = %v, want 1", got)
	}
}

func TestRecordCacheLookup(t *testing.T) {
	before := testutil.ToFloat64(cacheCounter.WithLabelValues("hit"))
	RecordCacheLookup(true)
	if got := testutil.ToFloat64(cacheCounter.WithLabelValues("hit")) - before; got != 1 {
		t.Errorf("delta = %v, want 1", got)
	}
}

func TestWriteStats(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "things_total",
		Help:      "test",
	}, []string{"kind"})
	hist := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "wait_seconds",
		Help:      "test",
	}, []string{"source"})
	other := prometheus.NewCounter(prometheus.CounterOpts{Name: "unrelated_total", Help: "test"})
	reg.MustRegister(counter, hist, other)

	counter.WithLabelValues("a").Add(3)
	hist.WithLabelValues("x").Observe((500 * time.Millisecond).Seconds())
	other.Inc()

	var buf bytes.Buffer
	if err := writeStats(&buf, reg); err != nil {
		t.Fatalf("writeStats() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		`otf_things_total{kind="a"} 3`,
		`otf_wait_seconds_count{source="x"} 1`,
		`otf_wait_seconds_sum{source="x"} 0.5`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "unrelated_total") {
		t.Errorf("output should only include otf_ series:\n%s", out)
	}
}

func TestObserveFanOut(t *testing.T) {
	ObserveFanOut(SourcePerformanceSummary, 10*time.Millisecond)
	if n := testutil.CollectAndCount(fanOutDuration); n == 0 {
		t.Error("expected at least one histogram series")
	}
}
