package restapi

import (
	"fmt"
	"log/slog"
	"net/http"

	"transitboard.org/internal/logging"
	"transitboard.org/internal/models"
)

const (
	unknownSystemErrorText = "Unknown system error!!"
	unknownServiceText     = "Unknown service."
)

// unknownSystemError logs err and answers with generic text. Provider
// payloads must never reach the client.
func (api *RestAPI) unknownSystemError(w http.ResponseWriter, r *http.Request, err error) {
	logging.LogError(logging.FromContext(r.Context()), "unexpected error serving request", err,
		slog.String("path", r.URL.Path))
	api.sendText(w, r, http.StatusServiceUnavailable, unknownSystemErrorText)
}

func (api *RestAPI) unknownServiceHandler(w http.ResponseWriter, r *http.Request) {
	api.sendText(w, r, http.StatusNotFound, unknownServiceText)
}

func (api *RestAPI) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	logging.LogError(logging.FromContext(r.Context()), "internal server error", err,
		slog.String("path", r.URL.Path))

	setJSONResponseType(&w)
	w.WriteHeader(http.StatusInternalServerError)
	writeJSON(w, models.NewResponse(http.StatusInternalServerError, nil, "internal server error"))
}

// validationErrorResponse sends a 400 Bad Request response with field-specific validation errors
func (api *RestAPI) validationErrorResponse(w http.ResponseWriter, r *http.Request, fieldErrors map[string][]string) {
	setJSONResponseType(&w)
	w.WriteHeader(http.StatusBadRequest)
	writeJSON(w, models.NewResponse(http.StatusBadRequest, map[string]interface{}{
		"fieldErrors": fieldErrors,
	}, "invalid request"))
}

// recoverPanic turns a handler panic into the generic system error.
func (api *RestAPI) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				w.Header().Set("Connection", "close")
				api.unknownSystemError(w, r, fmt.Errorf("panic: %v", rec))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
