package tfl

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"transitboard.org/internal/arrivals"
	"transitboard.org/internal/logging"
)

// ProviderName is used in error messages and logs.
const ProviderName = "TFL"

// DefaultBaseURL is the TfL Unified API.
const DefaultBaseURL = "https://api.tfl.gov.uk"

// Prediction is one entry of the StopPoint arrivals payload. Only the fields
// we use are decoded.
type Prediction struct {
	ID              string    `json:"id"`
	VehicleID       string    `json:"vehicleId"`
	NaptanID        string    `json:"naptanId"`
	LineName        string    `json:"lineName"`
	PlatformName    string    `json:"platformName"`
	DestinationName string    `json:"destinationName"`
	TimeToStation   int       `json:"timeToStation"`
	ExpectedArrival time.Time `json:"expectedArrival"`
}

// Config holds the settings for talking to TfL.
type Config struct {
	BaseURL string
	// AppKey is passed through as the app_key query parameter when set.
	AppKey  string
	Timeout time.Duration
}

// Client fetches arrival predictions from TfL.
type Client struct {
	baseURL    string
	appKey     string
	httpClient *http.Client
}

// NewClient creates a TfL client. A zero BaseURL uses DefaultBaseURL.
func NewClient(config Config) *Client {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		appKey:     config.AppKey,
		httpClient: &http.Client{Timeout: config.Timeout},
	}
}

// Arrivals returns the predictions for a stop in the order TfL sent them.
// TfL does not sort its response.
func (c *Client) Arrivals(ctx context.Context, naptanID string) ([]Prediction, error) {
	endpoint := c.baseURL + "/StopPoint/" + url.PathEscape(naptanID) + "/Arrivals"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.appKey != "" {
		req.URL.RawQuery = url.Values{"app_key": {c.appKey}}.Encode()
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &arrivals.UnreachableError{Provider: ProviderName, Err: err}
	}
	defer logging.SafeCloseWithLogging(resp.Body,
		logging.FromContext(ctx).With(slog.String("component", "tfl_client")),
		"http_response_body")

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &arrivals.UnreachableError{Provider: ProviderName, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &arrivals.BadResponseError{
			Provider:   ProviderName,
			StatusCode: resp.StatusCode,
			Body:       stringifyBody(body),
		}
	}

	var predictions []Prediction
	if err := json.Unmarshal(body, &predictions); err != nil {
		return nil, &arrivals.BadResponseError{
			Provider:   ProviderName,
			StatusCode: resp.StatusCode,
			Body:       "undecodable arrivals payload: " + err.Error(),
		}
	}
	return predictions, nil
}

// stringifyBody renders JSON bodies compactly and anything else verbatim.
func stringifyBody(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if json.Valid(trimmed) && len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		var buf bytes.Buffer
		if err := json.Compact(&buf, trimmed); err == nil {
			return buf.String()
		}
	}
	return string(body)
}
