package arrivals

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"transitboard.org/internal/logging"
)

// Refresh runs one fetch → filter → sort cycle for stop and returns the
// resulting snapshot. The snapshot always replaces the previous one in full;
// on failure it carries no arrivals and a wrapped error.
func Refresh(ctx context.Context, stop Stop, opts Options) Snapshot {
	cfg := stop.Config()
	now := opts.now()
	opts.Now = now

	logger := logging.FromContext(ctx).With(
		slog.String("component", "stop"),
		slog.String("stop", cfg.Name),
		slog.String("vehicle_type", cfg.VehicleType))

	candidates, err := stop.LoadArrivals(ctx, opts)
	if err != nil {
		err = fmt.Errorf("Failed to load arrivals: %w", err)
		logging.LogError(logger, "refresh failed", err)
		return Snapshot{Stop: cfg, Arrivals: []Arrival{}, FetchedAt: now, Err: err}
	}

	logger.Info("loaded arrivals", slog.Int("count", len(candidates)))

	kept := filterArrivals(logger, stop, candidates, opts.maxResults())
	sortArrivals(kept)

	logger.Debug("arrivals in order", slog.Any("arrivals", kept))

	return Snapshot{Stop: cfg, Arrivals: kept, FetchedAt: now}
}

// filterArrivals examines at most maxResults candidates, in provider order,
// and keeps those passing the custom predicate and the walking-time filter.
// The cap bounds the candidates examined, so fewer than maxResults may survive.
func filterArrivals(logger *slog.Logger, stop Stop, candidates []Arrival, maxResults int) []Arrival {
	cfg := stop.Config()
	custom, hasCustom := stop.(CustomFilter)
	walkingSeconds := cfg.WalkingTime * 60

	limit := len(candidates)
	if limit > maxResults {
		limit = maxResults
	}

	kept := make([]Arrival, 0, limit)
	for i, vehicle := range candidates[:limit] {
		logger.Debug("examining vehicle",
			slog.Int("index", i),
			slog.String("vehicle_id", vehicle.VehicleID),
			slog.Int("seconds", vehicle.SecondsToArrival))

		if hasCustom && !custom.AcceptArrival(vehicle) {
			logger.Info("filtering out vehicle", slog.String("vehicle_id", vehicle.VehicleID))
			continue
		}

		if vehicle.SecondsToArrival-walkingSeconds <= 0 {
			logger.Info("filtering out vehicle arriving too early",
				slog.String("vehicle_id", vehicle.VehicleID),
				slog.Int("seconds", vehicle.SecondsToArrival))
			continue
		}

		kept = append(kept, vehicle)
	}
	return kept
}

func sortArrivals(list []Arrival) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].SecondsToArrival < list[j].SecondsToArrival
	})
}
