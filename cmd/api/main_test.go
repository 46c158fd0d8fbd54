package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"transitboard.org/internal/appconf"
	"transitboard.org/internal/logging"
)

const testConfig = `
maxResults: 5
stops:
  - name: Fiction tram stop
    id: "789101112"
    vehicleType: Tram
    walkingTime: 10
    infoService: tfl
  - name: Fiction station
    id: ABC
    destination: DEF
    infoService: train
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func quietLogger() *slog.Logger {
	return logging.NewStructuredLogger(io.Discard, slog.LevelError)
}

func TestParseFlags(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := parseFlags(nil)
		require.NoError(t, err)
		assert.Equal(t, 4000, cfg.Port)
		assert.Equal(t, appconf.Development, cfg.Env)
		assert.Equal(t, "config.yml", cfg.ConfigPath)
		assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
		assert.Equal(t, 10, cfg.RateLimit)
		assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	})

	t.Run("overrides", func(t *testing.T) {
		cfg, err := parseFlags([]string{
			"-port", "8080", "-env", "production", "-max-results", "4",
			"-request-timeout", "3s", "-min-refresh", "30s", "-poll-interval", "1m", "-log-level", "debug",
		})
		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, appconf.Production, cfg.Env)
		assert.Equal(t, 4, cfg.MaxResults)
		assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
		assert.Equal(t, 30*time.Second, cfg.MinRefreshInterval)
		assert.Equal(t, time.Minute, cfg.PollInterval)
		assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	})

	t.Run("rejects a bad log level", func(t *testing.T) {
		_, err := parseFlags([]string{"-log-level", "loud"})
		assert.Error(t, err)
	})
}

func TestBuildApplication(t *testing.T) {
	t.Run("wires every configured stop", func(t *testing.T) {
		t.Setenv(appconf.DarwinKeyEnv, "token")
		t.Setenv(appconf.TfLKeyEnv, "")

		application, err := buildApplication(appconf.Config{ConfigPath: writeConfig(t, testConfig)}, quietLogger())
		require.NoError(t, err)

		assert.Equal(t, 2, application.Aggregator.Len())
		stops := application.Aggregator.Stops()
		assert.Equal(t, "Fiction tram stop", stops[0].Name)
		assert.Equal(t, "Train", stops[1].VehicleType)
		assert.Equal(t, 5, application.Config.MaxResults)
		assert.Equal(t, "Europe/London", application.Location.String())
	})

	t.Run("flag beats the config file for max results", func(t *testing.T) {
		t.Setenv(appconf.DarwinKeyEnv, "token")

		application, err := buildApplication(appconf.Config{ConfigPath: writeConfig(t, testConfig), MaxResults: 2}, quietLogger())
		require.NoError(t, err)
		assert.Equal(t, 2, application.Config.MaxResults)
	})

	t.Run("rail stops need a Darwin token", func(t *testing.T) {
		t.Setenv(appconf.DarwinKeyEnv, "")
		t.Setenv(appconf.DarwinKeyEnv+"_FILE", "")

		_, err := buildApplication(appconf.Config{ConfigPath: writeConfig(t, testConfig)}, quietLogger())
		require.Error(t, err)
		assert.Contains(t, err.Error(), appconf.DarwinKeyEnv)
	})

	t.Run("missing config file", func(t *testing.T) {
		_, err := buildApplication(appconf.Config{ConfigPath: filepath.Join(t.TempDir(), "nope.yml")}, quietLogger())
		assert.Error(t, err)
	})
}
