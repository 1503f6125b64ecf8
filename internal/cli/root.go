// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/sitesettings

// Package cli implements the sitesettings command line tool.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/woozymasta/sitesettings"
	"github.com/woozymasta/sitesettings/internal/logging"
)

// ErrNoSettings is returned when a query resolves to no settings.
var ErrNoSettings = errors.New("no settings")

// app holds flags, loaded configuration and the opened provider of one invocation.
type app struct {
	cfg        *Config
	provider   *sitesettings.Provider
	logger     zerolog.Logger
	configPath string
	storePath  string
	format     string
	output     string
	verbosity  int
}

// NewRootCmd creates the root command with all subcommands.
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "sitesettings",
		Short: "Inspect and edit per-site settings",
		Long: `sitesettings manages settings keyed by host patterns such as
"https://www.brave.com", "https?://*.brave.com:*" or "*", and resolves the
effective settings for a URL with more specific patterns overriding less
specific ones per key.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", os.Getenv(envPrefix+"CONFIG"), "config file (TOML)")
	flags.StringVarP(&a.storePath, "store", "s", "", "settings store file (json, yaml or toml)")
	flags.StringVar(&a.format, "format", "", "store format, detected by extension when empty")
	flags.StringVarP(&a.output, "output", "o", "", "output format: json or yaml")
	flags.CountVarP(&a.verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")

	rootCmd.AddCommand(
		a.newMergeCmd(),
		a.newResolveCmd(),
		a.newPatternCmd(),
		a.newExplainCmd(),
		a.newListCmd(),
	)

	return rootCmd
}

// setup loads configuration, applies flag overrides, configures logging and opens the store.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := LoadConfig(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("store") {
		cfg.Store = a.storePath
	}
	if flags.Changed("format") {
		cfg.Format = a.format
	}
	if flags.Changed("output") {
		cfg.Output = a.output
	}
	if flags.Changed("verbose") {
		cfg.Verbose = a.verbosity
	}

	if cfg.Output != "json" && cfg.Output != "yaml" {
		return fmt.Errorf("unsupported output %q", cfg.Output)
	}

	a.cfg = cfg
	logging.SetupLogger(cmd.ErrOrStderr(), cfg.Verbose)
	a.logger = logging.GetLogger("cli")
	a.logger.Debug().Str("command", cmd.Name()).Str("store", cfg.Store).Msg("Command started")

	opts := sitesettings.ProviderOptions{
		StoreFile: cfg.Store,
		Logger:    &a.logger,
	}

	if cfg.Format != "" {
		format, err := sitesettings.ParseFormat(cfg.Format)
		if err != nil {
			return err
		}

		opts.Format = format
	}

	provider, err := sitesettings.NewProvider(opts)
	if err != nil {
		return fmt.Errorf("open store %s: %w", cfg.Store, err)
	}

	a.provider = provider
	return nil
}

// write encodes v to w in the configured output format.
func (a *app) write(w io.Writer, v any) error {
	if a.cfg.Output == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}

		return enc.Close()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// parseValue decodes a command line value as JSON, falling back to the raw string.
func parseValue(raw string) any {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}

	return v
}
