// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/sitesettings

package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "SITESETTINGS_"

// Config is the command line tool configuration.
type Config struct {
	// Store is the settings store file.
	Store string `koanf:"store"`
	// Format overrides store format detection by extension.
	Format string `koanf:"format"`
	// Output is the result encoding: json or yaml.
	Output string `koanf:"output"`
	// Verbose is the log verbosity level.
	Verbose int `koanf:"verbose"`
}

// defaultConfig returns built-in configuration values.
func defaultConfig() map[string]any {
	return map[string]any{
		"store":   "site-settings.json",
		"format":  "",
		"output":  "json",
		"verbose": 0,
	}
}

// LoadConfig loads configuration in order: defaults, optional TOML file, environment.
//
// Environment keys use the SITESETTINGS_ prefix, e.g. SITESETTINGS_STORE.
// An empty path skips the config file; a non-empty path must exist.
func LoadConfig(path string) (*Config, error) {
	k := koanf.New(".")

	// 1. Load defaults
	if err := k.Load(confmap.Provider(defaultConfig(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Load config file
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("failed to stat config %s: %w", path, err)
		}

		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
		}
	}

	// 3. Load env vars
	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return &cfg, nil
}
