package arrivals

import (
	"fmt"
	"strings"
	"time"
)

// DefaultMaxResults is the number of provider candidates examined per stop
// when no cap is configured.
const DefaultMaxResults = 3

// ProviderKind selects which upstream service a stop is backed by.
type ProviderKind int

const (
	ProviderUnknown ProviderKind = iota
	ProviderTfL
	ProviderRail
)

func (k ProviderKind) String() string {
	switch k {
	case ProviderTfL:
		return "tfl"
	case ProviderRail:
		return "train"
	default:
		return "unknown"
	}
}

// ParseProviderKind maps the config file spelling ("tfl", "train") to a ProviderKind.
func ParseProviderKind(s string) (ProviderKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tfl":
		return ProviderTfL, nil
	case "train", "rail", "darwin":
		return ProviderRail, nil
	default:
		return ProviderUnknown, fmt.Errorf("unknown info service %q", s)
	}
}

// StopConfig describes a configured stop. It is treated as immutable once built.
type StopConfig struct {
	Name        string
	ID          string
	Destination string
	VehicleType string
	// WalkingTime is the time it takes to walk to the stop, in minutes.
	WalkingTime int
	Platforms   []string
	Provider    ProviderKind
}

// HasPlatform reports whether platform is one of the configured platforms.
// A stop without a platform list accepts every platform.
func (c StopConfig) HasPlatform(platform string) bool {
	if len(c.Platforms) == 0 {
		return true
	}
	for _, p := range c.Platforms {
		if strings.EqualFold(strings.TrimSpace(p), strings.TrimSpace(platform)) {
			return true
		}
	}
	return false
}

// Arrival is a single predicted vehicle arrival, normalized across providers.
type Arrival struct {
	VehicleID        string `json:"vehicleId"`
	SecondsToArrival int    `json:"timeToArrival"`
	Platform         string `json:"platform,omitempty"`
}

// Minutes returns the whole minutes until arrival, rounded down.
func (a Arrival) Minutes() int {
	return a.SecondsToArrival / 60
}

// Options controls a single refresh cycle.
type Options struct {
	// MaxResults caps how many provider candidates are examined.
	MaxResults int
	// Now is the reference time used by providers that return wall-clock times.
	Now time.Time
}

func (o Options) maxResults() int {
	if o.MaxResults <= 0 {
		return DefaultMaxResults
	}
	return o.MaxResults
}

func (o Options) now() time.Time {
	if o.Now.IsZero() {
		return time.Now()
	}
	return o.Now
}

// Snapshot is the immutable result of one refresh cycle for one stop.
type Snapshot struct {
	Stop      StopConfig
	Arrivals  []Arrival
	FetchedAt time.Time
	Err       error
}

// Failed reports whether the refresh that produced the snapshot failed.
func (s Snapshot) Failed() bool {
	return s.Err != nil
}
