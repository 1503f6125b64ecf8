// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/sitesettings

package sitesettings

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/idna"
)

// URL is a concrete URL decomposed into the components used for matching.
type URL struct {
	// Protocol is lower-case scheme without "://".
	Protocol string `json:"protocol" yaml:"protocol"`
	// Host is lower-case ASCII host without brackets.
	Host string `json:"host" yaml:"host"`
	// Port is explicit port or protocol default; empty when protocol has no known default.
	Port string `json:"port,omitempty" yaml:"port,omitempty"`
	// Rest is raw path, query and fragment exactly as written, empty for a bare origin.
	Rest string `json:"rest,omitempty" yaml:"rest,omitempty"`
}

// defaultPorts maps protocols to their implicit port.
var defaultPorts = map[string]string{
	"http":  "80",
	"https": "443",
	"ws":    "80",
	"wss":   "443",
	"ftp":   "21",
}

// ParseURL decomposes raw URL into protocol, host, effective port and raw rest.
//
// Only "protocol://host[:port][rest]" inputs are accepted; rest is kept byte-for-byte
// because exact-URL patterns compare it by identity.
func ParseURL(raw string) (URL, error) {
	raw = strings.TrimSpace(raw)

	scheme, after, ok := strings.Cut(raw, "://")
	if !ok || !isSchemeToken(scheme) {
		return URL{}, fmt.Errorf("%w: missing protocol (%q)", ErrInvalidURL, raw)
	}

	authority, rest := splitAuthority(after)
	if authority == "" {
		return URL{}, fmt.Errorf("%w: missing host (%q)", ErrInvalidURL, raw)
	}

	u, err := url.Parse(scheme + "://" + authority)
	if err != nil {
		return URL{}, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	host := u.Hostname()
	if host == "" {
		return URL{}, fmt.Errorf("%w: missing host (%q)", ErrInvalidURL, raw)
	}

	protocol := asciiLower(scheme)
	port := u.Port()
	if port == "" {
		port = defaultPorts[protocol]
	} else {
		port = trimPortZeros(port)
	}

	return URL{
		Protocol: protocol,
		Host:     normalizeHost(host),
		Port:     port,
		Rest:     rest,
	}, nil
}

// splitAuthority splits text after "://" into authority and raw rest.
func splitAuthority(s string) (string, string) {
	if i := strings.IndexAny(s, "/?#"); i >= 0 {
		return s[:i], s[i:]
	}

	return s, ""
}

// normalizeHost lower-cases host and converts internationalized names to ASCII.
// Hosts rejected by IDNA lookup rules (IP literals, underscores) are only lower-cased.
func normalizeHost(host string) string {
	host = asciiLower(host)
	if isASCII(host) {
		return host
	}

	ascii, err := idna.Lookup.ToASCII(host)
	if err != nil {
		return host
	}

	return ascii
}

// isSchemeToken reports whether s is a valid URL scheme.
func isSchemeToken(s string) bool {
	if s == "" {
		return false
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case i > 0 && (c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.'):
		default:
			return false
		}
	}

	return true
}

// isPortNumber reports whether s is a decimal port in range 0-65535.
func isPortNumber(s string) bool {
	if s == "" || len(s) > 5 {
		return false
	}

	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}

		n = n*10 + int(s[i]-'0')
	}

	return n <= 65535
}

// trimPortZeros removes leading zeros so "0080" and "80" compare equal.
func trimPortZeros(port string) string {
	trimmed := strings.TrimLeft(port, "0")
	if trimmed == "" && port != "" {
		return "0"
	}

	return trimmed
}

// isASCII reports whether s contains only ASCII bytes.
func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}

	return true
}

// asciiLower converts only ASCII A-Z to a-z and leaves all other bytes unchanged.
func asciiLower(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			b := []byte(s)
			for j := i; j < len(b); j++ {
				if b[j] >= 'A' && b[j] <= 'Z' {
					b[j] += 'a' - 'A'
				}
			}

			return string(b)
		}
	}

	return s
}
