// Package providers builds concrete stops for the configured upstream services.
package providers

import (
	"fmt"

	"transitboard.org/internal/arrivals"
	"transitboard.org/internal/providers/darwin"
	"transitboard.org/internal/providers/tfl"
)

// Clients holds one client per upstream service. A nil client means the
// service is not configured.
type Clients struct {
	TfL    *tfl.Client
	Darwin *darwin.Client
}

// NewStop returns the stop implementation for cfg.Provider. A stop whose
// provider has no client still builds, but every refresh fails with
// arrivals.ErrNotImplemented.
func NewStop(cfg arrivals.StopConfig, clients Clients) (arrivals.Stop, error) {
	switch cfg.Provider {
	case arrivals.ProviderTfL:
		if clients.TfL == nil {
			return arrivals.NewBaseStop(cfg), nil
		}
		return tfl.NewStop(cfg, clients.TfL), nil
	case arrivals.ProviderRail:
		if clients.Darwin == nil {
			return arrivals.NewBaseStop(cfg), nil
		}
		return darwin.NewStop(cfg, clients.Darwin), nil
	default:
		return nil, fmt.Errorf("stop %q: unsupported provider %s", cfg.Name, cfg.Provider)
	}
}

// NewStops builds every configured stop, preserving order.
func NewStops(configs []arrivals.StopConfig, clients Clients) ([]arrivals.Stop, error) {
	stops := make([]arrivals.Stop, 0, len(configs))
	for _, cfg := range configs {
		stop, err := NewStop(cfg, clients)
		if err != nil {
			return nil, err
		}
		stops = append(stops, stop)
	}
	return stops, nil
}
