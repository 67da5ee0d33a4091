package host

import (
	"errors"
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// Config holds configuration for decode sessions
type Config struct {
	ChunkSize          int    `mapstructure:"chunk_size"`
	BufferSize         int    `mapstructure:"buffer_size"`
	ResourceForkLayout string `mapstructure:"resource_fork_layout"`
	MetadataBackend    string `mapstructure:"metadata_backend"`
	LogLevel           string `mapstructure:"log_level"`
	LogFormat          string `mapstructure:"log_format"`
}

// LoadConfig loads configuration using Viper.
// Files are read through fs so that tests can supply an in-memory file system.
func LoadConfig(fs afero.Fs) (*Config, error) {
	v := viper.New()
	if fs != nil {
		v.SetFs(fs)
	}

	v.SetConfigName("applefile-config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("$HOME/.applefile")
	v.AddConfigPath("/etc/applefile")

	// Set defaults
	v.SetDefault("chunk_size", 8192)
	v.SetDefault("buffer_size", 64*1024)
	v.SetDefault("resource_fork_layout", string(ResourceForkSidecar))
	v.SetDefault("metadata_backend", BackendSidecar)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")

	// Allow environment variables
	v.SetEnvPrefix("APPLEFILE")
	v.AutomaticEnv()

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks that every setting has a usable value
func (c *Config) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("chunk_size must be positive, got %d", c.ChunkSize)
	}
	if c.BufferSize < 0 {
		return fmt.Errorf("buffer_size must not be negative, got %d", c.BufferSize)
	}
	switch ResourceForkLayout(c.ResourceForkLayout) {
	case ResourceForkSidecar, ResourceForkNamed:
	default:
		return fmt.Errorf("unsupported resource_fork_layout: %q", c.ResourceForkLayout)
	}
	switch c.MetadataBackend {
	case BackendSidecar, BackendXattr, BackendNone:
	default:
		return fmt.Errorf("unsupported metadata_backend: %q", c.MetadataBackend)
	}
	return nil
}
