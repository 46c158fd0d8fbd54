package restapi

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"transitboard.org/internal/aggregator"
	"transitboard.org/internal/logging"
)

// transportOptionsHandler refreshes every stop and answers with one plain
// text line per stop. 203 when every stop refreshed, 503 when any failed;
// the body carries every line either way.
func (api *RestAPI) transportOptionsHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger := logging.FromContext(r.Context()).With(slog.String("component", "transport_options"))

	report, err := api.Aggregator.RefreshAll(r.Context())

	status := http.StatusNonAuthoritativeInfo
	if err != nil {
		if !errors.Is(err, aggregator.ErrPartialFailure) {
			api.unknownSystemError(w, r, err)
			return
		}
		logging.LogError(logger, "some stops are unavailable", err,
			slog.Int("failed", report.Failed))
		status = http.StatusServiceUnavailable
	}

	api.sendText(w, r, status, report.String())

	logging.LogOperation(logger, "request served",
		slog.Int("stops", len(report.Lines)),
		slog.Duration("duration", time.Since(start)))
}
