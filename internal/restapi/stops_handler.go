package restapi

import (
	"errors"
	"net/http"

	"transitboard.org/internal/aggregator"
	"transitboard.org/internal/models"
	"transitboard.org/internal/utils"
)

// stopsHandler lists every stop with its latest snapshot. It never calls the providers.
func (api *RestAPI) stopsHandler(w http.ResponseWriter, r *http.Request) {
	stops := models.NewStopModels(api.Aggregator.Snapshots())
	api.sendResponse(w, r, models.NewListResponse(stops))
}

// stopHandler refreshes a single stop and returns it.
func (api *RestAPI) stopHandler(w http.ResponseWriter, r *http.Request) {
	index, err := utils.ParseIndex(utils.ExtractIDFromParams(r, "index"))
	if err != nil {
		api.validationErrorResponse(w, r, map[string][]string{
			"index": {err.Error()},
		})
		return
	}

	snap, err := api.Aggregator.Refresh(r.Context(), index)
	if errors.Is(err, aggregator.ErrUnknownStop) {
		api.sendNotFound(w, r)
		return
	}
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewEntryResponse(models.NewStopModel(index, snap)))
}
