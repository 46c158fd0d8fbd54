package restapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"transitboard.org/internal/webui"
)

func (api *RestAPI) indexHandler(w http.ResponseWriter, r *http.Request) {
	api.sendText(w, r, http.StatusOK, "transitboard")
}

// SetRoutes registers every endpoint on router.
func (api *RestAPI) SetRoutes(router *httprouter.Router) {
	router.HandlerFunc(http.MethodGet, "/", api.indexHandler)
	router.HandlerFunc(http.MethodGet, "/transportOptions", api.transportOptionsHandler)
	router.HandlerFunc(http.MethodGet, "/api/stops.json", api.stopsHandler)
	router.HandlerFunc(http.MethodGet, "/api/stops/:index", api.stopHandler)
	router.HandlerFunc(http.MethodGet, "/api/current-time.json", api.currentTimeHandler)

	if !api.IsProduction() {
		webui.SetWebUIRoutes(router, api.Application)
	}

	router.NotFound = http.HandlerFunc(api.unknownServiceHandler)
}

// Handler returns the fully wrapped application handler.
func (api *RestAPI) Handler() http.Handler {
	router := httprouter.New()
	api.SetRoutes(router)

	var handler http.Handler = router
	handler = CompressionMiddleware(handler)
	handler = api.rateLimiter.Handler(handler)
	handler = securityHeaders(handler)
	handler = api.recoverPanic(handler)
	handler = NewRequestLoggingMiddleware(api.Logger)(handler)
	return handler
}
