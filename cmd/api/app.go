package main

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"transitboard.org/internal/aggregator"
	"transitboard.org/internal/app"
	"transitboard.org/internal/appconf"
	"transitboard.org/internal/arrivals"
	"transitboard.org/internal/providers"
	"transitboard.org/internal/providers/darwin"
	"transitboard.org/internal/providers/tfl"
)

// buildApplication loads the stop file, builds one client per provider in
// use and wires the aggregator.
func buildApplication(cfg appconf.Config, logger *slog.Logger) (*app.Application, error) {
	file, err := appconf.LoadFile(cfg.ConfigPath)
	if err != nil {
		return nil, err
	}

	stopConfigs, err := file.StopConfigs()
	if err != nil {
		return nil, err
	}

	location, err := file.Darwin.Location()
	if err != nil {
		return nil, fmt.Errorf("darwin timezone: %w", err)
	}

	clients, err := buildClients(file, location, logger)
	if err != nil {
		return nil, err
	}

	stops, err := providers.NewStops(stopConfigs, clients)
	if err != nil {
		return nil, err
	}

	if cfg.MaxResults <= 0 {
		cfg.MaxResults = file.MaxResults
	}

	agg := aggregator.New(stops, aggregator.Options{
		MaxResults:         cfg.MaxResults,
		RequestTimeout:     cfg.RequestTimeout,
		MinRefreshInterval: cfg.MinRefreshInterval,
	}, logger)

	return &app.Application{
		Config:     cfg,
		Logger:     logger,
		Aggregator: agg,
		Location:   location,
	}, nil
}

func buildClients(file *appconf.File, location *time.Location, logger *slog.Logger) (providers.Clients, error) {
	var clients providers.Clients

	if file.Uses(arrivals.ProviderTfL) {
		// TfL serves anonymous requests at a lower rate, so the key is optional.
		appKey, err := appconf.SecretFromEnvironment(appconf.TfLKeyEnv)
		var missing appconf.MissingEnvironmentKey
		if err != nil && !errors.As(err, &missing) {
			return clients, err
		}
		if appKey == "" {
			logger.Warn("no TfL app key configured, using anonymous access")
		}
		clients.TfL = tfl.NewClient(tfl.Config{
			BaseURL: file.TfL.BaseURL,
			AppKey:  appKey,
			Timeout: file.TfL.Timeout,
		})
	}

	if file.Uses(arrivals.ProviderRail) {
		apiKey, err := appconf.SecretFromEnvironment(appconf.DarwinKeyEnv)
		if err != nil {
			return clients, fmt.Errorf("rail stops need a Darwin token: %w", err)
		}
		clients.Darwin = darwin.NewClient(darwin.Config{
			Endpoint: file.Darwin.Endpoint,
			APIKey:   apiKey,
			Timeout:  file.Darwin.Timeout,
			Location: location,
		})
	}

	return clients, nil
}
