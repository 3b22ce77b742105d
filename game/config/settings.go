package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

var ErrInvalidSettings = errors.New("invalid settings")

const (
	StoreFile   = "file"
	StoreBadger = "badger"
)

// Settings configures the campaign server and CLI
type Settings struct {
	Host string `env:"CAMPAIGN_HOST" envDefault:"localhost"`
	Port int    `env:"CAMPAIGN_PORT" envDefault:"8080"`

	// DataDir holds the campaign file or the badger database
	DataDir      string `env:"CAMPAIGN_DATA_DIR" envDefault:"data"`
	CampaignFile string `env:"CAMPAIGN_FILE" envDefault:"campaign.json"`
	Store        string `env:"CAMPAIGN_STORE" envDefault:"file"`

	// Watch reloads the campaign file when it is edited outside the server
	Watch bool `env:"CAMPAIGN_WATCH" envDefault:"true"`

	// ReferenceDir overrides the embedded monster datasets
	ReferenceDir string `env:"REFERENCE_DIR"`

	Debug bool `env:"CAMPAIGN_DEBUG"`

	Ngrok NgrokSettings `envPrefix:"NGROK_"`
}

// NgrokSettings configures the optional public tunnel
type NgrokSettings struct {
	Enabled   bool   `env:"ENABLED"`
	AuthToken string `env:"AUTHTOKEN"`
	Domain    string `env:"DOMAIN"`
}

// Load reads settings from the process environment
func Load() (*Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadFrom reads settings from the given variables instead of the process environment
func LoadFrom(environ map[string]string) (*Settings, error) {
	var s Settings
	if err := env.ParseWithOptions(&s, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks ranges and enumerations
func (s *Settings) Validate() error {
	if s.Port <= 0 || s.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidSettings, s.Port)
	}
	if s.Store != StoreFile && s.Store != StoreBadger {
		return fmt.Errorf("%w: store must be %q or %q, got %q", ErrInvalidSettings, StoreFile, StoreBadger, s.Store)
	}
	if s.DataDir == "" {
		return fmt.Errorf("%w: data directory is required", ErrInvalidSettings)
	}
	if s.Store == StoreFile && s.CampaignFile == "" {
		return fmt.Errorf("%w: campaign file name is required", ErrInvalidSettings)
	}
	return nil
}

// Addr returns the HTTP listen address
func (s *Settings) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// CampaignPath returns the campaign file used by the file store
func (s *Settings) CampaignPath() string {
	return filepath.Join(s.DataDir, s.CampaignFile)
}

// BadgerPath returns the database directory used by the badger store
func (s *Settings) BadgerPath() string {
	return filepath.Join(s.DataDir, "badger")
}
