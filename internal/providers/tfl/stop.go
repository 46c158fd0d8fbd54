package tfl

import (
	"context"
	"log/slog"

	"transitboard.org/internal/arrivals"
	"transitboard.org/internal/logging"
	"transitboard.org/internal/utils"
)

// Stop is a bus or tram stop served by TfL, identified by its NaPTAN id.
type Stop struct {
	arrivals.BaseStop
	client *Client
}

func NewStop(cfg arrivals.StopConfig, client *Client) *Stop {
	return &Stop{BaseStop: arrivals.NewBaseStop(cfg), client: client}
}

// LoadArrivals maps TfL predictions to arrivals, keeping provider order.
func (s *Stop) LoadArrivals(ctx context.Context, opts arrivals.Options) ([]arrivals.Arrival, error) {
	cfg := s.Config()
	logger := logging.FromContext(ctx).With(
		slog.String("component", "tfl_stop"),
		slog.String("stop", cfg.Name))

	logger.Info("getting arrival predictions from TFL")

	predictions, err := s.client.Arrivals(ctx, cfg.ID)
	if err != nil {
		return nil, err
	}

	logger.Debug("got TFL predictions", slog.Int("count", len(predictions)))

	out := make([]arrivals.Arrival, 0, len(predictions))
	for _, p := range predictions {
		out = append(out, arrivals.Arrival{
			VehicleID:        p.VehicleID,
			SecondsToArrival: utils.ClampSeconds(p.TimeToStation),
			Platform:         p.PlatformName,
		})
	}
	return out, nil
}

// AcceptArrival rejects vehicles calling at a platform we are not interested in.
func (s *Stop) AcceptArrival(a arrivals.Arrival) bool {
	return s.Config().HasPlatform(a.Platform)
}
