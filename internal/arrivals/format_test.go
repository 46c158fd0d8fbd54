package arrivals

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	cfg := basicConfig()

	tests := []struct {
		name     string
		arrivals []Arrival
		expected string
	}{
		{
			name:     "many arrivals",
			arrivals: []Arrival{{SecondsToArrival: 620}, {SecondsToArrival: 1210}, {SecondsToArrival: 1850}},
			expected: "Fiction Tram: Tram arriving in 10, 20, and 30 minutes.",
		},
		{
			name:     "many arrivals in a minute (singular)",
			arrivals: []Arrival{{SecondsToArrival: 60}, {SecondsToArrival: 70}},
			expected: "Fiction Tram: Tram arriving in 1, and 1 minute.",
		},
		{
			name:     "singular applies only to the last element",
			arrivals: []Arrival{{SecondsToArrival: 30}, {SecondsToArrival: 100}},
			expected: "Fiction Tram: Tram arriving in 0, and 1 minute.",
		},
		{
			name:     "plural when only an earlier element is one",
			arrivals: []Arrival{{SecondsToArrival: 61}, {SecondsToArrival: 200}},
			expected: "Fiction Tram: Tram arriving in 1, and 3 minutes.",
		},
		{
			name:     "one arrival",
			arrivals: []Arrival{{SecondsToArrival: 644}},
			expected: "Fiction Tram: Tram arriving in 10 minutes.",
		},
		{
			name:     "one arrival within a minute (singular)",
			arrivals: []Arrival{{SecondsToArrival: 80}},
			expected: "Fiction Tram: Tram arriving in 1 minute.",
		},
		{
			name:     "one arrival under a minute",
			arrivals: []Arrival{{SecondsToArrival: 59}},
			expected: "Fiction Tram: Tram arriving in 0 minutes.",
		},
		{
			name:     "no arrival",
			arrivals: []Arrival{},
			expected: "Fiction Tram: No Tram coming.",
		},
		{
			name:     "nil arrivals",
			arrivals: nil,
			expected: "Fiction Tram: No Tram coming.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := Snapshot{Stop: cfg, Arrivals: tt.arrivals}
			assert.Equal(t, tt.expected, Format(snap))
			// same input, same output
			assert.Equal(t, Format(snap), Format(snap))
		})
	}
}

func TestFormatFailedSnapshot(t *testing.T) {
	snap := Snapshot{
		Stop: basicConfig(),
		Err:  errors.New("Failed to load arrivals: Bad response from TFL: (503) secret payload"),
	}

	out := Format(snap)
	assert.Equal(t, "Fiction Tram: Tram arrivals temporarily unavailable.", out)
	assert.NotContains(t, out, "secret payload")
}

func TestRefreshThenFormat(t *testing.T) {
	stop := &fakeStop{
		BaseStop: NewBaseStop(basicConfig()),
		arrivals: []Arrival{{SecondsToArrival: 1693}, {SecondsToArrival: 733}, {SecondsToArrival: 793}},
	}

	snap := Refresh(context.Background(), stop, Options{})
	assert.Equal(t, "Fiction Tram: Tram arriving in 12, 13, and 28 minutes.", Format(snap))
}

func TestParseProviderKind(t *testing.T) {
	kind, err := ParseProviderKind("tfl")
	assert.NoError(t, err)
	assert.Equal(t, ProviderTfL, kind)

	kind, err = ParseProviderKind(" Train ")
	assert.NoError(t, err)
	assert.Equal(t, ProviderRail, kind)

	_, err = ParseProviderKind("ferry")
	assert.Error(t, err)
}

func TestStopConfigHasPlatform(t *testing.T) {
	cfg := StopConfig{Platforms: []string{"Westbound Platform"}}
	assert.True(t, cfg.HasPlatform("westbound platform"))
	assert.False(t, cfg.HasPlatform("Eastbound Platform"))
	assert.True(t, StopConfig{}.HasPlatform("anything"))
}
