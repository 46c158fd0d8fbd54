package darwin

import (
	"log/slog"
	"time"

	"transitboard.org/internal/arrivals"
	"transitboard.org/internal/logging"
	"transitboard.org/internal/utils"
)

// servicesToArrivals keeps board order and drops services whose effective
// departure time is unreadable (e.g. "Cancelled", "Delayed").
func servicesToArrivals(logger *slog.Logger, services []Service, now time.Time) []arrivals.Arrival {
	out := make([]arrivals.Arrival, 0, len(services))
	for i, svc := range services {
		departure := utils.EffectiveDepartureTime(svc.ScheduledDeparture, svc.EstimatedDeparture)

		seconds, err := utils.SecondsUntilBoardTime(departure, now)
		if err != nil {
			logging.LogError(logger, "problem setting arrival time for vehicle",
				&arrivals.MalformedEntryError{Index: i, Value: departure, Err: err},
				slog.String("service_id", svc.ServiceID))
			continue
		}

		out = append(out, arrivals.Arrival{
			VehicleID:        svc.RSID,
			SecondsToArrival: seconds,
			Platform:         svc.Platform,
		})
	}
	return out
}
