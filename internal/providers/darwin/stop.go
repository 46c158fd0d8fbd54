package darwin

import (
	"context"
	"log/slog"
	"time"

	"transitboard.org/internal/arrivals"
	"transitboard.org/internal/logging"
)

// DefaultVehicleType is the display label for rail stops without one configured.
const DefaultVehicleType = "Train"

// Stop is a National Rail station, optionally filtered to trains calling at a destination.
type Stop struct {
	arrivals.BaseStop
	client *Client
}

func NewStop(cfg arrivals.StopConfig, client *Client) *Stop {
	if cfg.VehicleType == "" {
		cfg.VehicleType = DefaultVehicleType
	}
	return &Stop{BaseStop: arrivals.NewBaseStop(cfg), client: client}
}

// LoadArrivals converts the departure board into arrivals. Services whose
// departure time cannot be read are logged and skipped.
func (s *Stop) LoadArrivals(ctx context.Context, opts arrivals.Options) ([]arrivals.Arrival, error) {
	cfg := s.Config()
	logger := logging.FromContext(ctx).With(
		slog.String("component", "darwin_stop"),
		slog.String("stop", cfg.Name))

	logger.Info("getting departure board from Darwin")

	board, err := s.client.DepartureBoard(ctx, BoardRequest{
		Origin:      cfg.ID,
		Destination: cfg.Destination,
		TimeOffset:  cfg.WalkingTime,
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("got Darwin departures", slog.Int("count", len(board.Services)))

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	return servicesToArrivals(logger, board.Services, now.In(s.client.Location())), nil
}

// AcceptArrival rejects trains leaving from a platform we are not interested in.
func (s *Stop) AcceptArrival(a arrivals.Arrival) bool {
	return s.Config().HasPlatform(a.Platform)
}
