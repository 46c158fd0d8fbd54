package aggregator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"transitboard.org/internal/arrivals"
)

func TestPollingRefreshesInBackground(t *testing.T) {
	stop := newFakeStop("Fiction Tram", "Tram", 600)
	agg := New([]arrivals.Stop{stop}, Options{}, nil)

	agg.StartPolling(10 * time.Millisecond)
	agg.StartPolling(10 * time.Millisecond)

	require.Eventually(t, func() bool {
		return stop.calls.Load() >= 2
	}, 2*time.Second, 5*time.Millisecond)

	agg.Shutdown()
	calls := stop.calls.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, calls, stop.calls.Load())

	assert.False(t, agg.Snapshots()[0].FetchedAt.IsZero())
}

func TestShutdown(t *testing.T) {
	t.Run("without polling", func(t *testing.T) {
		agg := New(nil, Options{}, nil)
		assert.NotPanics(t, agg.Shutdown)
	})

	t.Run("twice", func(t *testing.T) {
		agg := New([]arrivals.Stop{newFakeStop("Fiction Bus", "Bus")}, Options{}, nil)
		agg.StartPolling(time.Hour)

		done := make(chan struct{})
		go func() {
			agg.Shutdown()
			agg.Shutdown()
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("Shutdown took too long")
		}
	})

	t.Run("non-positive interval is ignored", func(t *testing.T) {
		stop := newFakeStop("Fiction Bus", "Bus")
		agg := New([]arrivals.Stop{stop}, Options{}, nil)
		agg.StartPolling(0)
		agg.Shutdown()
		assert.Equal(t, int32(0), stop.calls.Load())
	})
}
