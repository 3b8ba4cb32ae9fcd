// Package fanout issues one fetch per identifier concurrently and collects the
// results that succeeded.
package fanout

import (
	"context"
	"sync"
	"time"

	"github.com/julianstephens/otfkit/internal/logger"
	"github.com/julianstephens/otfkit/internal/observability"
)

// FailurePolicy decides what a failed fetch leaves in the result map.
type FailurePolicy int

const (
	// OmitOnError leaves a failed identifier out of the result map.
	OmitOnError FailurePolicy = iota
	// NilOnError maps a failed identifier to the zero value of V.
	NilOnError
)

func (p FailurePolicy) String() string {
	switch p {
	case OmitOnError:
		return "omit"
	case NilOnError:
		return "nil"
	default:
		return "unknown"
	}
}

// FetchFunc fetches the value for one identifier.
type FetchFunc[K comparable, V any] func(ctx context.Context, key K) (V, error)

// Collect runs fetch for every distinct key at once and waits for all of them.
// A failing fetch never fails the batch: it is logged, counted under source
// and then handled according to policy. Nothing is retried or cancelled here;
// ctx is handed to each fetch unchanged.
func Collect[K comparable, V any](ctx context.Context, source string, keys []K, policy FailurePolicy, fetch FetchFunc[K, V]) map[K]V {
	results := make(map[K]V, len(keys))
	if len(keys) == 0 {
		return results
	}

	start := time.Now()
	var (
		mu   sync.Mutex
		wg   sync.WaitGroup
		seen = make(map[K]struct{}, len(keys))
	)

	for _, key := range keys {
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		wg.Go(func() {
			value, err := fetch(ctx, key)
			observability.RecordFetch(source, err)
			if err != nil {
				logger.Warn("Fetch failed", "source", source, "id", key, "policy", policy, "error", err)
				if policy == OmitOnError {
					return
				}
				var zero V
				value = zero
			}

			mu.Lock()
			results[key] = value
			mu.Unlock()
		})
	}

	wg.Wait()
	observability.ObserveFanOut(source, time.Since(start))
	logger.Debug("Fan-out finished", "source", source, "requested", len(seen), "collected", len(results))
	return results
}
