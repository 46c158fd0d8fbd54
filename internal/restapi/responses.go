package restapi

import (
	"encoding/json"
	"io"
	"net/http"

	"transitboard.org/internal/models"
)

func (api *RestAPI) sendResponse(w http.ResponseWriter, r *http.Request, response models.ResponseModel) {
	setJSONResponseType(&w)
	if response.Code != 0 && response.Code != http.StatusOK {
		w.WriteHeader(response.Code)
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		api.Logger.Error("failed to encode response", "error", err)
	}
}

func (api *RestAPI) sendNotFound(w http.ResponseWriter, r *http.Request) {
	api.sendResponse(w, r, models.NewResponse(http.StatusNotFound, nil, "resource not found"))
}

func (api *RestAPI) sendText(w http.ResponseWriter, r *http.Request, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	if _, err := io.WriteString(w, body); err != nil {
		api.Logger.Error("failed to write response", "error", err, "path", r.URL.Path)
	}
}

func writeJSON(w io.Writer, v interface{}) {
	_ = json.NewEncoder(w).Encode(v)
}

func setJSONResponseType(w *http.ResponseWriter) {
	(*w).Header().Set("Content-Type", "application/json")
}
