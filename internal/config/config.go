// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config loads uspto-lookup settings from an optional YAML file and
// USPTO_LOOKUP_* environment variables, applies defaults, and validates the
// result.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/pdiddy/uspto-lookup/internal/display"
	"github.com/pdiddy/uspto-lookup/internal/uspto"
	"github.com/pdiddy/uspto-lookup/pkg/types"
)

// Name is the config file base name and the directory under ~/.config.
const Name = "uspto-lookup"

// EnvPrefix prefixes every environment override, e.g. USPTO_LOOKUP_LOG_LEVEL.
const EnvPrefix = "USPTO_LOOKUP"

// Defaults for every key, in the dotted form viper uses.
var defaults = map[string]any{
	"api_key":                "",
	"secrets_dir":            ".secrets",
	"api.endpoint":           uspto.DefaultEndpoint,
	"api.fees_base_url":      display.DefaultFeesBaseURL,
	"api.timeout":            "0s",
	"api.user_agent":         "uspto-lookup",
	"log.level":              "warn",
	"log.path":               "",
	"telemetry.exporter":     "none",
	"telemetry.service_name": "uspto-lookup",
}

// Load reads configuration. When path is empty it looks for
// uspto-lookup.yaml in the working directory and then in
// ~/.config/uspto-lookup; a missing file is not an error.
func Load(path string) (types.Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(Name)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", Name))
		}
	}

	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return types.Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg types.Config
	if err := v.UnmarshalExact(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if err := Validate(cfg); err != nil {
		return types.Config{}, err
	}
	return cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg types.Config) error {
	if err := validator.New().Struct(&cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
