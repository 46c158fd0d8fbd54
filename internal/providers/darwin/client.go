package darwin

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"transitboard.org/internal/arrivals"
	"transitboard.org/internal/logging"
)

// ProviderName is used in error messages and logs.
const ProviderName = "Darwin"

// DefaultEndpoint is the National Rail OpenLDBWS SOAP endpoint.
const DefaultEndpoint = "https://lite.realtime.nationalrail.co.uk/OpenLDBWS/ldb11.asmx"

const (
	DefaultRows       = 15
	DefaultTimeWindow = 30

	minTimeOffset = -120
	maxTimeOffset = 119

	soapAction = "http://thalesgroup.com/RTTI/2012-01-13/ldb/GetDepBoardWithDetails"
)

// BoardRequest parameterizes a departure board query.
type BoardRequest struct {
	// Origin and Destination are three-letter CRS codes.
	Origin      string
	Destination string
	Rows        int
	// TimeOffset and TimeWindow are in minutes.
	TimeOffset int
	TimeWindow int
}

func (r BoardRequest) withDefaults() BoardRequest {
	if r.Rows <= 0 {
		r.Rows = DefaultRows
	}
	if r.TimeWindow <= 0 {
		r.TimeWindow = DefaultTimeWindow
	}
	if r.TimeOffset < minTimeOffset {
		r.TimeOffset = minTimeOffset
	}
	if r.TimeOffset > maxTimeOffset {
		r.TimeOffset = maxTimeOffset
	}
	return r
}

// Service is a single train service on the departure board.
type Service struct {
	ScheduledDeparture string `xml:"std"`
	EstimatedDeparture string `xml:"etd"`
	Platform           string `xml:"platform"`
	Operator           string `xml:"operator"`
	ServiceType        string `xml:"serviceType"`
	ServiceID          string `xml:"serviceID"`
	RSID               string `xml:"rsid"`
}

// Board is the decoded departure board.
type Board struct {
	GeneratedAt  string    `xml:"generatedAt"`
	LocationName string    `xml:"locationName"`
	CRS          string    `xml:"crs"`
	Services     []Service `xml:"trainServices>service"`
}

type envelope struct {
	XMLName xml.Name `xml:"Envelope"`
	Body    struct {
		Response struct {
			Result Board `xml:"GetStationBoardResult"`
		} `xml:"GetDepBoardWithDetailsResponse"`
		Fault *soapFault `xml:"Fault"`
	} `xml:"Body"`
}

type soapFault struct {
	Code   string `xml:"faultcode"`
	String string `xml:"faultstring"`
}

// Config holds the settings for talking to Darwin.
type Config struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration
	// Location is the time zone board times are expressed in. Defaults to UTC
	// when nil; production config sets Europe/London.
	Location *time.Location
}

// Client queries the Darwin departure board service.
type Client struct {
	endpoint   string
	apiKey     string
	location   *time.Location
	httpClient *http.Client
}

// NewClient creates a Darwin client. A zero Endpoint uses DefaultEndpoint.
func NewClient(config Config) *Client {
	endpoint := config.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	location := config.Location
	if location == nil {
		location = time.UTC
	}
	return &Client{
		endpoint:   endpoint,
		apiKey:     config.APIKey,
		location:   location,
		httpClient: &http.Client{Timeout: config.Timeout},
	}
}

// Location returns the time zone departure board times are read in.
func (c *Client) Location() *time.Location {
	return c.location
}

// DepartureBoard fetches the departure board with service details.
func (c *Client) DepartureBoard(ctx context.Context, request BoardRequest) (*Board, error) {
	request = request.withDefaults()

	payload, err := c.buildEnvelope(request)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("SOAPAction", soapAction)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &arrivals.UnreachableError{Provider: ProviderName, Err: err}
	}
	defer logging.SafeCloseWithLogging(resp.Body,
		logging.FromContext(ctx).With(slog.String("component", "darwin_client")),
		"http_response_body")

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &arrivals.UnreachableError{Provider: ProviderName, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &arrivals.BadResponseError{
			Provider:   ProviderName,
			StatusCode: resp.StatusCode,
			Body:       faultOrBody(body),
		}
	}

	var env envelope
	if err := xml.Unmarshal(body, &env); err != nil {
		return nil, &arrivals.BadResponseError{
			Provider:   ProviderName,
			StatusCode: resp.StatusCode,
			Body:       "undecodable departure board: " + err.Error(),
		}
	}
	if env.Body.Fault != nil {
		return nil, &arrivals.BadResponseError{
			Provider:   ProviderName,
			StatusCode: resp.StatusCode,
			Body:       env.Body.Fault.String,
		}
	}

	board := env.Body.Response.Result
	return &board, nil
}

func (c *Client) buildEnvelope(request BoardRequest) ([]byte, error) {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="utf-8"?>`)
	b.WriteString(`<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/"`)
	b.WriteString(` xmlns:typ="http://thalesgroup.com/RTTI/2013-11-28/Token/types"`)
	b.WriteString(` xmlns:ldb="http://thalesgroup.com/RTTI/2017-10-01/ldb/">`)
	b.WriteString(`<soap:Header><typ:AccessToken><typ:TokenValue>`)
	if err := xml.EscapeText(&b, []byte(c.apiKey)); err != nil {
		return nil, err
	}
	b.WriteString(`</typ:TokenValue></typ:AccessToken></soap:Header>`)
	b.WriteString(`<soap:Body><ldb:GetDepBoardWithDetailsRequest>`)
	fmt.Fprintf(&b, `<ldb:numRows>%d</ldb:numRows>`, request.Rows)
	b.WriteString(`<ldb:crs>`)
	if err := xml.EscapeText(&b, []byte(request.Origin)); err != nil {
		return nil, err
	}
	b.WriteString(`</ldb:crs>`)
	if request.Destination != "" {
		b.WriteString(`<ldb:filterCrs>`)
		if err := xml.EscapeText(&b, []byte(request.Destination)); err != nil {
			return nil, err
		}
		b.WriteString(`</ldb:filterCrs><ldb:filterType>to</ldb:filterType>`)
	}
	fmt.Fprintf(&b, `<ldb:timeOffset>%d</ldb:timeOffset>`, request.TimeOffset)
	fmt.Fprintf(&b, `<ldb:timeWindow>%d</ldb:timeWindow>`, request.TimeWindow)
	b.WriteString(`</ldb:GetDepBoardWithDetailsRequest></soap:Body></soap:Envelope>`)
	return []byte(b.String()), nil
}

// faultOrBody prefers the SOAP fault string of an error body when there is one.
func faultOrBody(body []byte) string {
	var env envelope
	if err := xml.Unmarshal(body, &env); err == nil && env.Body.Fault != nil && env.Body.Fault.String != "" {
		return env.Body.Fault.String
	}
	return string(body)
}
