// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/sitesettings

package sitesettings

// Record is one settings record: opaque setting key to value.
type Record map[string]any

// Entry is one user-visible stored pattern with its settings.
type Entry struct {
	// Pattern is the verbatim pattern string.
	Pattern string `json:"pattern" yaml:"pattern" toml:"pattern"`
	// Settings is the record stored under pattern.
	Settings Record `json:"settings" yaml:"settings" toml:"settings"`
}

// PatternKind is the parsed shape of one pattern.
type PatternKind uint8

const (
	// KindInvalid is a pattern that does not parse; it never matches.
	KindInvalid PatternKind = iota
	// KindMatchAll is the literal "*" pattern.
	KindMatchAll
	// KindProtocolOnly is "protocol://*", any host.
	KindProtocolOnly
	// KindHost is "protocol://host" with omitted port.
	KindHost
	// KindHostPort is "protocol://host:port".
	KindHostPort
	// KindHostAnyPort is "protocol://host:*".
	KindHostAnyPort
	// KindSubdomain is "protocol://*.domain[:port]".
	KindSubdomain
	// KindExactURL is a pattern carrying a path, query or fragment.
	KindExactURL
)

// ProtocolSpec is the protocol component of a pattern.
type ProtocolSpec uint8

const (
	// ProtocolAny matches every protocol.
	ProtocolAny ProtocolSpec = iota
	// ProtocolHTTPOrHTTPS matches "http" and "https" ("https?").
	ProtocolHTTPOrHTTPS
	// ProtocolExact matches one literal protocol.
	ProtocolExact
)

// HostSpec is the host component of a pattern.
type HostSpec uint8

const (
	// HostAny matches every host.
	HostAny HostSpec = iota
	// HostSuffix matches a domain and all its subdomains ("*.domain").
	HostSuffix
	// HostExact matches one host.
	HostExact
)

// PortSpec is the port component of a pattern.
type PortSpec uint8

const (
	// PortWildcard is the explicit ":*" form.
	PortWildcard PortSpec = iota
	// PortOmitted is a pattern without port; it matches any port.
	PortOmitted
	// PortExact matches one port.
	PortExact
)

// String returns a stable lower-case name of pattern kind.
func (k PatternKind) String() string {
	switch k {
	case KindMatchAll:
		return "match-all"
	case KindProtocolOnly:
		return "protocol-only"
	case KindHost:
		return "host"
	case KindHostPort:
		return "host-port"
	case KindHostAnyPort:
		return "host-any-port"
	case KindSubdomain:
		return "subdomain"
	case KindExactURL:
		return "exact-url"
	default:
		return "invalid"
	}
}

// cloneRecord creates a deep copy of a record. Nil stays nil.
func cloneRecord(src Record) Record {
	if src == nil {
		return nil
	}

	dst := make(Record, len(src))
	for key, val := range src {
		dst[key] = cloneValue(val)
	}

	return dst
}

// cloneValue creates a deep copy of nested maps and slices; other values are shared.
func cloneValue(val any) any {
	switch v := val.(type) {
	case map[string]any:
		dst := make(map[string]any, len(v))
		for key, item := range v {
			dst[key] = cloneValue(item)
		}

		return dst
	case Record:
		return cloneRecord(v)
	case []any:
		dst := make([]any, len(v))
		for i, item := range v {
			dst[i] = cloneValue(item)
		}

		return dst
	default:
		return val
	}
}
