package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config represents the application configuration structure
type Config struct {
	// Environment defines the environment ('prod' or 'dev') the application runs in
	Environment string `default:"dev" split_words:"true"`

	// ListenAddress defines the address the debug API listens on
	ListenAddress string `default:":8081" split_words:"true"`

	// AllowedOrigin defines the origin the debug API allows cross-origin requests from
	AllowedOrigin string `default:"*" split_words:"true"`

	// InitialCapacity defines the bucket count the table starts out with (0 selects the table default)
	InitialCapacity int `default:"0" split_words:"true"`

	// MaxKeyLength and MaxValueLength define the fixed byte widths of the table
	MaxKeyLength   int `default:"64" split_words:"true"`
	MaxValueLength int `default:"256" split_words:"true"`

	// ShrinkThreshold and GrowThreshold define the load factor window triggering resizes
	ShrinkThreshold float64 `default:"0.25" split_words:"true"`
	GrowThreshold   float64 `default:"0.75" split_words:"true"`

	// StatsInterval defines how often table statistics are logged
	StatsInterval time.Duration `default:"1m" split_words:"true"`
}

// LoadFromEnv loads a new configuration structure using environment variables and an optional .env file
func LoadFromEnv() (*Config, error) {
	// Load a .env file if it exists
	_ = godotenv.Overload()

	// Load a new configuration structure using environment variables
	config := new(Config)
	if err := envconfig.Process("ts", config); err != nil {
		return nil, err
	}

	if config.MaxKeyLength <= 0 || config.MaxValueLength <= 0 {
		return nil, fmt.Errorf("config: key and value widths must be positive (%d/%d)", config.MaxKeyLength, config.MaxValueLength)
	}

	return config, nil
}

// IsEnvProduction returns whether the application runs in a production environment
func (config *Config) IsEnvProduction() bool {
	return config.Environment == "prod"
}
