package app

import (
	"log/slog"
	"time"

	"transitboard.org/internal/aggregator"
	"transitboard.org/internal/appconf"
)

// Application holds the dependencies for our HTTP handlers, helpers,
// and middleware.
type Application struct {
	Config     appconf.Config
	Logger     *slog.Logger
	Aggregator *aggregator.Aggregator
	// Location is the zone departure boards are published in.
	Location *time.Location
}

// Now returns the current time in the board time zone.
func (app *Application) Now() time.Time {
	if app.Location == nil {
		return time.Now()
	}
	return time.Now().In(app.Location)
}

// IsProduction reports whether debug surfaces must stay hidden.
func (app *Application) IsProduction() bool {
	return app.Config.Env == appconf.Production
}
