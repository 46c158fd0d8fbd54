// Package aggregator refreshes every configured stop concurrently and
// assembles their lines into a single report.
package aggregator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/bluele/gcache"
	"golang.org/x/sync/singleflight"
	"transitboard.org/internal/arrivals"
	"transitboard.org/internal/logging"
)

// DefaultRequestTimeout bounds a single provider call when no timeout is configured.
const DefaultRequestTimeout = 10 * time.Second

var (
	// ErrPartialFailure is joined with the per-stop errors when at least one
	// stop could not be refreshed. The report is still complete.
	ErrPartialFailure = errors.New("one or more stops failed to refresh")

	ErrUnknownStop = errors.New("unknown stop")
)

type Options struct {
	// MaxResults caps how many provider candidates each stop examines.
	MaxResults int
	// RequestTimeout bounds each provider call. Zero means DefaultRequestTimeout.
	RequestTimeout time.Duration
	// MinRefreshInterval lets a successful snapshot younger than this be
	// reused instead of calling the provider again. Zero disables reuse.
	MinRefreshInterval time.Duration
	// Now overrides the clock, mostly for tests.
	Now func() time.Time
}

func (o Options) requestTimeout() time.Duration {
	if o.RequestTimeout <= 0 {
		return DefaultRequestTimeout
	}
	return o.RequestTimeout
}

func (o Options) now() time.Time {
	if o.Now == nil {
		return time.Now()
	}
	return o.Now()
}

// Report is the outcome of one RefreshAll call. Lines and Snapshots are in
// configured stop order.
type Report struct {
	Lines     []string
	Snapshots []arrivals.Snapshot
	Failed    int
}

// String renders the report as plain text, one line per stop.
func (r Report) String() string {
	if len(r.Lines) == 0 {
		return ""
	}
	return strings.Join(r.Lines, "\n") + "\n"
}

type Aggregator struct {
	stops     []arrivals.Stop
	opts      Options
	logger    *slog.Logger
	inflight  singleflight.Group
	snapshots gcache.Cache

	pollMu sync.Mutex
	poller *poller
}

func New(stops []arrivals.Stop, opts Options, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	size := len(stops)
	if size == 0 {
		size = 1
	}
	return &Aggregator{
		stops:     stops,
		opts:      opts,
		logger:    logger.With(slog.String("component", "aggregator")),
		snapshots: gcache.New(size).LRU().Build(),
	}
}

// Len returns the number of configured stops.
func (a *Aggregator) Len() int {
	return len(a.stops)
}

// Stops returns the configuration of every stop, in order.
func (a *Aggregator) Stops() []arrivals.StopConfig {
	out := make([]arrivals.StopConfig, 0, len(a.stops))
	for _, stop := range a.stops {
		out = append(out, stop.Config())
	}
	return out
}

// RefreshAll refreshes every stop concurrently and waits for all of them,
// whether they succeed or fail. A failed stop still contributes a line.
func (a *Aggregator) RefreshAll(ctx context.Context) (Report, error) {
	start := time.Now()
	snaps := make([]arrivals.Snapshot, len(a.stops))

	var wg sync.WaitGroup
	for i := range a.stops {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			snaps[i] = a.refreshStop(ctx, i)
		}(i)
	}
	wg.Wait()

	report := Report{
		Lines:     make([]string, 0, len(snaps)),
		Snapshots: snaps,
	}
	var errs []error
	for _, snap := range snaps {
		report.Lines = append(report.Lines, arrivals.Format(snap))
		if snap.Failed() {
			report.Failed++
			errs = append(errs, fmt.Errorf("%s: %w", snap.Stop.Name, snap.Err))
		}
	}

	logging.LogOperation(a.logger, "refreshed_all_stops",
		slog.Int("stops", len(snaps)),
		slog.Int("failed", report.Failed),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()))

	if len(errs) > 0 {
		return report, errors.Join(append([]error{ErrPartialFailure}, errs...)...)
	}
	return report, nil
}

// Refresh refreshes a single stop by its position in the configuration.
func (a *Aggregator) Refresh(ctx context.Context, index int) (arrivals.Snapshot, error) {
	if index < 0 || index >= len(a.stops) {
		return arrivals.Snapshot{}, ErrUnknownStop
	}
	return a.refreshStop(ctx, index), nil
}

// Snapshots returns the latest snapshot per stop without refreshing. Stops
// that were never refreshed have a zero FetchedAt.
func (a *Aggregator) Snapshots() []arrivals.Snapshot {
	out := make([]arrivals.Snapshot, 0, len(a.stops))
	for i, stop := range a.stops {
		snap, ok := a.cached(i)
		if !ok {
			snap = arrivals.Snapshot{Stop: stop.Config(), Arrivals: []arrivals.Arrival{}}
		}
		out = append(out, snap)
	}
	return out
}

// refreshStop coalesces overlapping refreshes of the same stop: a caller
// arriving while one is in flight receives that refresh's snapshot.
func (a *Aggregator) refreshStop(ctx context.Context, index int) arrivals.Snapshot {
	if snap, ok := a.reusable(index); ok {
		a.logger.Debug("reusing recent snapshot", slog.String("stop", snap.Stop.Name))
		return snap
	}

	v, _, _ := a.inflight.Do(strconv.Itoa(index), func() (interface{}, error) {
		// Joined callers share this refresh, so one caller going away must not cancel it.
		reqCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.opts.requestTimeout())
		defer cancel()

		snap := arrivals.Refresh(reqCtx, a.stops[index], arrivals.Options{
			MaxResults: a.opts.MaxResults,
			Now:        a.opts.now(),
		})
		if err := a.snapshots.Set(index, snap); err != nil {
			logging.LogError(a.logger, "failed to store snapshot", err, slog.Int("index", index))
		}
		return snap, nil
	})
	return v.(arrivals.Snapshot)
}

func (a *Aggregator) cached(index int) (arrivals.Snapshot, bool) {
	v, err := a.snapshots.Get(index)
	if err != nil {
		return arrivals.Snapshot{}, false
	}
	snap, ok := v.(arrivals.Snapshot)
	return snap, ok
}

func (a *Aggregator) reusable(index int) (arrivals.Snapshot, bool) {
	if a.opts.MinRefreshInterval <= 0 {
		return arrivals.Snapshot{}, false
	}
	snap, ok := a.cached(index)
	if !ok || snap.Failed() {
		return arrivals.Snapshot{}, false
	}
	if a.opts.now().Sub(snap.FetchedAt) >= a.opts.MinRefreshInterval {
		return arrivals.Snapshot{}, false
	}
	return snap, true
}
