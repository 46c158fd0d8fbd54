package restapi

import (
	"log/slog"
	"time"

	"transitboard.org/internal/app"
)

type RestAPI struct {
	*app.Application
	rateLimiter *RateLimitMiddleware
}

// NewRestAPI creates a new RestAPI instance with initialized rate limiter
func NewRestAPI(app *app.Application) *RestAPI {
	if app.Logger == nil {
		app.Logger = slog.Default()
	}
	return &RestAPI{
		Application: app,
		rateLimiter: NewRateLimitMiddleware(app.Config.RateLimit, time.Second),
	}
}

// Close stops background work owned by the API.
func (api *RestAPI) Close() {
	api.rateLimiter.Stop()
}
