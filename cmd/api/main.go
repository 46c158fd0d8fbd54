package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"transitboard.org/internal/aggregator"
	"transitboard.org/internal/appconf"
	"transitboard.org/internal/logging"
	"transitboard.org/internal/restapi"
)

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := logging.NewStructuredLogger(os.Stdout, cfg.LogLevel)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logging.LogError(logger, "server stopped", err)
		os.Exit(1)
	}
}

func parseFlags(args []string) (appconf.Config, error) {
	var cfg appconf.Config
	var env, logLevel string

	fs := flag.NewFlagSet("transitboard", flag.ContinueOnError)
	fs.IntVar(&cfg.Port, "port", 4000, "API server port")
	fs.StringVar(&env, "env", "development", "Environment (development|test|production)")
	fs.StringVar(&cfg.ConfigPath, "config", "config.yml", "Path to the YAML stop configuration")
	fs.IntVar(&cfg.MaxResults, "max-results", 0, "Provider candidates examined per stop (0 uses the config file or the default of 3)")
	fs.DurationVar(&cfg.RequestTimeout, "request-timeout", aggregator.DefaultRequestTimeout, "Timeout for each provider request")
	fs.DurationVar(&cfg.MinRefreshInterval, "min-refresh", 0, "Reuse a successful stop snapshot younger than this")
	fs.DurationVar(&cfg.PollInterval, "poll-interval", 0, "Refresh every stop in the background at this interval (0 disables)")
	fs.IntVar(&cfg.RateLimit, "rate-limit", 10, "Requests per second allowed per client (0 disables)")
	fs.StringVar(&logLevel, "log-level", "info", "Log level (debug|info|warn|error)")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	cfg.Env = appconf.EnvFlagToEnvironment(env)

	level, err := logging.ParseLevel(logLevel)
	if err != nil {
		return cfg, err
	}
	cfg.LogLevel = level
	return cfg, nil
}

func run(cfg appconf.Config, logger *slog.Logger) (err error) {
	application, err := buildApplication(cfg, logger)
	if err != nil {
		return logging.WrapAndLog(logger, "failed to build application", err)
	}

	application.Aggregator.StartPolling(cfg.PollInterval)
	defer application.Aggregator.Shutdown()

	api := restapi.NewRestAPI(application)
	defer api.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      api.Handler(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 10*time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			slog.String("addr", srv.Addr),
			slog.String("env", cfg.Env.String()),
			slog.Int("stops", application.Aggregator.Len()))
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logging.LogOperation(logger, "shutting_down_server")

	// Shutdown makes ListenAndServe return; collect its result after.
	defer logging.HandleDeferredError(&err, func() error {
		if listenErr := <-serveErr; !errors.Is(listenErr, http.ErrServerClosed) {
			return listenErr
		}
		return nil
	}, logger, "server_listen")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
