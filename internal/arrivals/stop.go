package arrivals

import (
	"context"
)

// Stop is a configured physical location that can load its upcoming arrivals.
type Stop interface {
	Config() StopConfig
	LoadArrivals(ctx context.Context, opts Options) ([]Arrival, error)
}

// CustomFilter is implemented by stops that reject vehicles on
// provider-specific grounds, e.g. the wrong platform.
type CustomFilter interface {
	AcceptArrival(a Arrival) bool
}

// BaseStop carries the stop configuration and the default behaviour.
// Provider stops embed it and override LoadArrivals.
type BaseStop struct {
	cfg StopConfig
}

func NewBaseStop(cfg StopConfig) BaseStop {
	return BaseStop{cfg: cfg}
}

func (s BaseStop) Config() StopConfig {
	return s.cfg
}

// LoadArrivals always fails: a stop without a provider is an integration bug.
func (s BaseStop) LoadArrivals(ctx context.Context, opts Options) ([]Arrival, error) {
	return nil, ErrNotImplemented
}

// AcceptArrival accepts every vehicle.
func (s BaseStop) AcceptArrival(a Arrival) bool {
	return true
}
