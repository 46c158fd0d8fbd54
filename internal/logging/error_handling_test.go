package logging

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errorCloser struct {
	err error
}

func (e *errorCloser) Close() error {
	return e.err
}

func TestSafeClose(t *testing.T) {
	t.Run("closes response body without logging", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("[]"))
		}))
		defer server.Close()

		resp, err := http.Get(server.URL)
		require.NoError(t, err)

		SafeCloseWithLogging(resp.Body, logger, "tfl_response_body")

		assert.NotContains(t, buf.String(), `"level":"ERROR"`)
	})

	t.Run("logs error when close fails", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)

		SafeCloseWithLogging(&errorCloser{err: assert.AnError}, logger, "darwin_response_body")

		output := buf.String()
		assert.Contains(t, output, `"level":"ERROR"`)
		assert.Contains(t, output, `"msg":"failed to close resource"`)
		assert.Contains(t, output, `"operation":"darwin_response_body"`)
	})

	t.Run("ignores a nil closer", func(t *testing.T) {
		assert.NotPanics(t, func() {
			SafeCloseWithLogging(nil, slog.Default(), "nothing")
		})
	})
}

func TestHandleDeferredError(t *testing.T) {
	t.Run("surfaces a deferred failure when the function succeeded", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)

		run := func() (err error) {
			defer HandleDeferredError(&err, func() error {
				return assert.AnError
			}, logger, "server_shutdown")
			return nil
		}

		err := run()
		require.Error(t, err)
		assert.ErrorIs(t, err, assert.AnError)
		assert.Contains(t, err.Error(), "server_shutdown failed")
		assert.Contains(t, buf.String(), `"msg":"deferred operation failed"`)
	})

	t.Run("keeps the original error", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)

		run := func() (err error) {
			defer HandleDeferredError(&err, func() error {
				return assert.AnError
			}, logger, "server_shutdown")
			return http.ErrServerClosed
		}

		err := run()
		assert.ErrorIs(t, err, http.ErrServerClosed)
		assert.Contains(t, buf.String(), `"level":"ERROR"`)
	})

	t.Run("does nothing without a deferred operation", func(t *testing.T) {
		var err error
		HandleDeferredError(&err, nil, slog.Default(), "noop")
		assert.NoError(t, err)
	})
}
