package appconf

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
	"transitboard.org/internal/arrivals"
	"transitboard.org/internal/utils"
)

const (
	DarwinKeyEnv = "DARWIN_API_KEY"
	TfLKeyEnv    = "TFL_APP_KEY"
)

// Config holds the runtime settings read from command-line flags.
type Config struct {
	Port               int
	Env                Environment
	ConfigPath         string
	MaxResults         int
	RequestTimeout     time.Duration
	MinRefreshInterval time.Duration
	PollInterval       time.Duration
	RateLimit          int
	LogLevel           slog.Level
}

// File is the YAML stop configuration.
type File struct {
	MaxResults int           `yaml:"maxResults" validate:"gte=0"`
	TfL        TfLSection    `yaml:"tfl"`
	Darwin     DarwinSection `yaml:"darwin"`
	Stops      []StopSection `yaml:"stops" validate:"required,min=1,dive"`
}

type TfLSection struct {
	BaseURL string        `yaml:"baseUrl" validate:"omitempty,url"`
	Timeout time.Duration `yaml:"timeout" validate:"gte=0"`
}

type DarwinSection struct {
	Endpoint string        `yaml:"endpoint" validate:"omitempty,url"`
	Timezone string        `yaml:"timezone"`
	Timeout  time.Duration `yaml:"timeout" validate:"gte=0"`
}

type StopSection struct {
	Name        string   `yaml:"name" validate:"required"`
	ID          string   `yaml:"id" validate:"required"`
	Destination string   `yaml:"destination"`
	VehicleType string   `yaml:"vehicleType" validate:"required_if=InfoService tfl"`
	WalkingTime int      `yaml:"walkingTime" validate:"gte=0"`
	Platforms   []string `yaml:"platforms"`
	InfoService string   `yaml:"infoService" validate:"required,oneof=tfl train"`
}

// LoadFile reads and validates the stop configuration at path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseFile(data)
}

func ParseFile(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := validator.New().Struct(f); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &f, nil
}

// StopConfigs converts the configured stops, in file order.
func (f *File) StopConfigs() ([]arrivals.StopConfig, error) {
	out := make([]arrivals.StopConfig, 0, len(f.Stops))
	for _, s := range f.Stops {
		kind, err := arrivals.ParseProviderKind(s.InfoService)
		if err != nil {
			return nil, fmt.Errorf("stop %q: %w", s.Name, err)
		}
		if err := utils.ValidateID(s.ID); err != nil {
			return nil, fmt.Errorf("stop %q: %w", s.Name, err)
		}
		if s.Destination != "" {
			if err := utils.ValidateID(s.Destination); err != nil {
				return nil, fmt.Errorf("stop %q destination: %w", s.Name, err)
			}
		}
		out = append(out, arrivals.StopConfig{
			Name:        s.Name,
			ID:          s.ID,
			Destination: s.Destination,
			VehicleType: s.VehicleType,
			WalkingTime: s.WalkingTime,
			Platforms:   s.Platforms,
			Provider:    kind,
		})
	}
	return out, nil
}

// Uses reports whether any stop is served by kind.
func (f *File) Uses(kind arrivals.ProviderKind) bool {
	for _, s := range f.Stops {
		if k, err := arrivals.ParseProviderKind(s.InfoService); err == nil && k == kind {
			return true
		}
	}
	return false
}

// Location resolves the Darwin timezone. Board times are UK local time.
func (d DarwinSection) Location() (*time.Location, error) {
	name := d.Timezone
	if name == "" {
		name = "Europe/London"
	}
	return time.LoadLocation(name)
}
