package aggregator

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"transitboard.org/internal/logging"
)

// poller keeps snapshots warm by refreshing every stop on a fixed interval.
type poller struct {
	shutdownChan chan struct{}
	wg           sync.WaitGroup
	shutdownOnce sync.Once
}

// StartPolling refreshes all stops every interval until Shutdown is called.
// A non-positive interval or a second call does nothing.
func (a *Aggregator) StartPolling(interval time.Duration) {
	if interval <= 0 {
		return
	}
	a.pollMu.Lock()
	defer a.pollMu.Unlock()
	if a.poller != nil {
		return
	}
	p := &poller{shutdownChan: make(chan struct{})}
	a.poller = p

	p.wg.Add(1)
	go a.pollPeriodically(p, interval)
}

func (a *Aggregator) pollPeriodically(p *poller, interval time.Duration) {
	defer p.wg.Done()

	logger := a.logger.With(slog.String("component", "stop_poller"))
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx := logging.WithLogger(context.Background(), logger)
			report, err := a.RefreshAll(ctx)
			if err != nil {
				logger.Warn("background refresh incomplete",
					slog.Int("failed", report.Failed),
					slog.String("error", err.Error()))
			}
		case <-p.shutdownChan:
			logger.Debug("stop poller shutting down")
			return
		}
	}
}

// Shutdown stops background polling and waits for an in-progress refresh.
// It is safe to call more than once, or without StartPolling.
func (a *Aggregator) Shutdown() {
	a.pollMu.Lock()
	p := a.poller
	a.pollMu.Unlock()
	if p == nil {
		return
	}
	p.shutdownOnce.Do(func() {
		close(p.shutdownChan)
		p.wg.Wait()
	})
}
