// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/sitesettings

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/woozymasta/sitesettings"
)

func (a *app) newMergeCmd() *cobra.Command {
	var host bool

	cmd := &cobra.Command{
		Use:   "merge PATTERN KEY VALUE",
		Short: "Set one setting on a pattern",
		Long: `Set KEY to VALUE on PATTERN, keeping the other keys of the pattern.
VALUE is parsed as JSON when possible (1, true, {"a":1}), otherwise stored as a string.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			pattern := args[0]
			if host {
				patterns := sitesettings.HostPatterns([]string{pattern})
				if len(patterns) == 0 {
					return fmt.Errorf("empty host %q", pattern)
				}

				pattern = patterns[0]
			}

			if !sitesettings.ParsePattern(pattern).Valid() {
				a.logger.Warn().Str("pattern", pattern).Msg("Pattern does not parse and will never match")
			}

			store, err := a.provider.MergeSetting(pattern, args[1], parseValue(args[2]))
			if err != nil {
				return err
			}

			settings, _ := store.HostPatternSettings(pattern)
			return a.write(cmd.OutOrStdout(), sitesettings.Entry{Pattern: pattern, Settings: settings})
		},
	}

	cmd.Flags().BoolVar(&host, "host", false, "treat PATTERN as a bare host (\".brave.com\" includes subdomains)")
	return cmd
}

func (a *app) newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve URL",
		Short: "Print effective settings for a URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, ok := a.provider.ResolveForURL(args[0])
			if !ok {
				return fmt.Errorf("%w for %q", ErrNoSettings, args[0])
			}

			return a.write(cmd.OutOrStdout(), settings)
		},
	}
}

func (a *app) newPatternCmd() *cobra.Command {
	var exact bool

	cmd := &cobra.Command{
		Use:   "pattern PATTERN",
		Short: "Print settings for a literal pattern",
		Long: `Print settings of PATTERN overlaid on every stored, less specific pattern
that covers it. With --exact only the record stored under PATTERN is printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap := a.provider.Snapshot()

			var (
				settings sitesettings.Record
				ok       bool
			)
			if exact {
				settings, ok = snap.HostPatternSettings(args[0])
			} else {
				settings, ok = snap.ResolveForHostPattern(args[0])
			}

			if !ok {
				return fmt.Errorf("%w for pattern %q", ErrNoSettings, args[0])
			}

			return a.write(cmd.OutOrStdout(), settings)
		},
	}

	cmd.Flags().BoolVar(&exact, "exact", false, "only the record stored under PATTERN")
	return cmd
}

func (a *app) newExplainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explain URL",
		Short: "Print matching patterns for a URL from least to most specific",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.write(cmd.OutOrStdout(), a.provider.Explain(args[0]))
		},
	}
}

func (a *app) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print stored patterns in write order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.write(cmd.OutOrStdout(), a.provider.Snapshot().Entries())
		},
	}
}
