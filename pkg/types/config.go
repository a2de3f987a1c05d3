package types

import "time"

// HTTPConfig holds shared HTTP settings for the outbound API client.
type HTTPConfig struct {
	// Timeout bounds each request. Zero means no timeout.
	Timeout time.Duration `mapstructure:"timeout" json:"timeout" yaml:"timeout" validate:"gte=0"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "uspto-lookup/0.1").
	UserAgent string `mapstructure:"user_agent" json:"user_agent" yaml:"user_agent"`
}

// APIConfig holds the USPTO endpoints.
type APIConfig struct {
	HTTPConfig `mapstructure:",squash" yaml:",inline"`

	// Endpoint is the patent applications search URL.
	Endpoint string `mapstructure:"endpoint" json:"endpoint" yaml:"endpoint" validate:"required,url"`

	// FeesBaseURL is the maintenance-fee storefront domain.
	FeesBaseURL string `mapstructure:"fees_base_url" json:"fees_base_url" yaml:"fees_base_url" validate:"required,url"`
}

// LogConfig selects the zap logger level and destination.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `mapstructure:"level" json:"level" yaml:"level" validate:"required,oneof=debug info warn error"`

	// Path is a log file path. Empty logs to stderr; "none" disables logging.
	Path string `mapstructure:"path" json:"path" yaml:"path"`
}

// TelemetryConfig controls OpenTelemetry tracing of API calls.
type TelemetryConfig struct {
	// Exporter is "none" or "stdout".
	Exporter string `mapstructure:"exporter" json:"exporter" yaml:"exporter" validate:"required,oneof=none stdout"`

	// ServiceName is recorded as the service.name resource attribute.
	ServiceName string `mapstructure:"service_name" json:"service_name" yaml:"service_name" validate:"required"`
}

// Config groups all settings for uspto-lookup.
type Config struct {
	// APIKey is the USPTO x-api-key. It is never printed.
	APIKey string `mapstructure:"api_key" json:"-" yaml:"-"`

	// SecretsDir is consulted for an uspto-api-key file when APIKey is empty.
	SecretsDir string `mapstructure:"secrets_dir" json:"secrets_dir" yaml:"secrets_dir"`

	API       APIConfig       `mapstructure:"api" json:"api" yaml:"api" validate:"required"`
	Log       LogConfig       `mapstructure:"log" json:"log" yaml:"log" validate:"required"`
	Telemetry TelemetryConfig `mapstructure:"telemetry" json:"telemetry" yaml:"telemetry" validate:"required"`

	// File is the config file that was read, empty when defaults were used.
	File string `mapstructure:"-" json:"-" yaml:"-"`
}
