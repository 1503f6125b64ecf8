// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/sitesettings

package sitesettings

import "strings"

// HostPatterns converts a host list to patterns for http and https.
//
// Accepted host forms:
//   - "brave.com" becomes "https?://brave.com"
//   - ".brave.com" and "*.brave.com" become "https?://*.brave.com"
//   - "*" and values already containing "://" are kept as is
//
// Empty values are skipped. Returned patterns are lower-case and preserve input order.
func HostPatterns(hosts []string) []string {
	patterns := make([]string, 0, len(hosts))
	for _, host := range hosts {
		host = strings.TrimSpace(host)
		if host == "" {
			continue
		}

		if host == "*" || strings.Contains(host, "://") {
			patterns = append(patterns, host)
			continue
		}

		host = asciiLower(host)
		if rest, ok := strings.CutPrefix(host, "*."); ok {
			host = "." + rest
		}

		if rest, ok := strings.CutPrefix(host, "."); ok {
			rest = strings.TrimLeft(rest, ".")
			if rest == "" {
				continue
			}

			patterns = append(patterns, "https?://*."+rest)
			continue
		}

		patterns = append(patterns, "https?://"+host)
	}

	return patterns
}
