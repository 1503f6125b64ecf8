// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/sitesettings

package sitesettings

import "strings"

// Pattern is the parsed representation of one host pattern.
//
// Parsing is total: input that does not fit a known shape yields KindInvalid,
// which never matches, never covers and is never covered.
type Pattern struct {
	// Source is the original pattern string.
	Source string `json:"source" yaml:"source"`
	// ProtocolName is the literal protocol when Protocol is ProtocolExact.
	ProtocolName string `json:"protocol_name,omitempty" yaml:"protocol_name,omitempty"`
	// HostName is the exact host or, for HostSuffix, the base domain.
	HostName string `json:"host_name,omitempty" yaml:"host_name,omitempty"`
	// PortNumber is the exact port when Port is PortExact.
	PortNumber string `json:"port_number,omitempty" yaml:"port_number,omitempty"`
	// Rest is raw path, query and fragment of an exact-URL pattern.
	Rest string `json:"rest,omitempty" yaml:"rest,omitempty"`
	// Kind is the pattern shape.
	Kind PatternKind `json:"kind" yaml:"kind"`
	// Protocol is the protocol component.
	Protocol ProtocolSpec `json:"protocol" yaml:"protocol"`
	// Host is the host component.
	Host HostSpec `json:"host" yaml:"host"`
	// Port is the port component.
	Port PortSpec `json:"port" yaml:"port"`
}

// ParsePattern parses a pattern string into its components.
func ParsePattern(raw string) Pattern {
	invalid := Pattern{Source: raw, Kind: KindInvalid}

	s := strings.TrimSpace(raw)
	if s == "*" {
		return Pattern{Source: raw, Kind: KindMatchAll}
	}

	scheme, after, ok := strings.Cut(s, "://")
	if !ok {
		return invalid
	}

	p := Pattern{Source: raw}
	switch scheme = asciiLower(scheme); {
	case scheme == "*":
		p.Protocol = ProtocolAny
	case scheme == "https?" || scheme == "http?":
		p.Protocol = ProtocolHTTPOrHTTPS
	case isSchemeToken(scheme):
		p.Protocol = ProtocolExact
		p.ProtocolName = scheme
	default:
		return invalid
	}

	authority, rest := splitAuthority(after)
	host, port, ok := splitPatternHostPort(authority)
	if !ok {
		return invalid
	}

	switch {
	case host == "*":
		p.Host = HostAny
	case strings.HasPrefix(host, "*."):
		base := strings.TrimPrefix(host, "*.")
		if base == "" || strings.Contains(base, "*") {
			return invalid
		}

		p.Host = HostSuffix
		p.HostName = normalizeHost(base)
	case host == "" || strings.Contains(host, "*"):
		return invalid
	default:
		p.Host = HostExact
		p.HostName = normalizeHost(host)
	}

	switch {
	case port == "":
		p.Port = PortOmitted
	case port == "*":
		p.Port = PortWildcard
	case isPortNumber(port):
		p.Port = PortExact
		p.PortNumber = trimPortZeros(port)
	default:
		return invalid
	}

	switch {
	case rest != "" && (p.Protocol != ProtocolExact || p.Host != HostExact || p.Port == PortWildcard):
		return invalid
	case p.Host == HostAny && p.Port == PortExact:
		return invalid
	}

	p.Rest = rest
	p.Kind = classifyPattern(p)
	return p
}

// classifyPattern derives pattern kind from parsed components.
func classifyPattern(p Pattern) PatternKind {
	switch {
	case p.Rest != "":
		return KindExactURL
	case p.Host == HostAny:
		return KindProtocolOnly
	case p.Host == HostSuffix:
		return KindSubdomain
	case p.Port == PortExact:
		return KindHostPort
	case p.Port == PortWildcard:
		return KindHostAnyPort
	default:
		return KindHost
	}
}

// splitPatternHostPort splits pattern authority into host and port text.
// Bracketed IPv6 hosts are returned without brackets.
func splitPatternHostPort(authority string) (string, string, bool) {
	if strings.HasPrefix(authority, "[") {
		end := strings.IndexByte(authority, ']')
		if end < 0 {
			return "", "", false
		}

		host := authority[1:end]
		tail := authority[end+1:]
		if tail == "" {
			return host, "", host != ""
		}

		if tail[0] != ':' {
			return "", "", false
		}

		return host, tail[1:], host != ""
	}

	host, port, hasPort := strings.Cut(authority, ":")
	if hasPort && strings.Contains(port, ":") {
		return "", "", false
	}

	return host, port, true
}

// String returns the original pattern string.
func (p Pattern) String() string {
	return p.Source
}

// Valid reports whether pattern parsed into a known shape.
func (p Pattern) Valid() bool {
	return p.Kind != KindInvalid
}

// MatchString reports whether pattern matches raw URL. Unparsable URLs never match.
func (p Pattern) MatchString(rawURL string) bool {
	u, err := ParseURL(rawURL)
	if err != nil {
		return false
	}

	return p.Matches(u)
}

// Matches reports whether pattern matches decomposed URL.
func (p Pattern) Matches(u URL) bool {
	switch p.Kind {
	case KindInvalid:
		return false
	case KindMatchAll:
		return true
	}

	return p.matchProtocol(u.Protocol) &&
		p.matchHost(u.Host) &&
		p.matchPort(u.Port) &&
		(p.Kind != KindExactURL || p.Rest == u.Rest)
}

// matchProtocol checks the protocol component.
func (p Pattern) matchProtocol(protocol string) bool {
	switch p.Protocol {
	case ProtocolHTTPOrHTTPS:
		return protocol == "http" || protocol == "https"
	case ProtocolExact:
		return protocol == p.ProtocolName
	default:
		return true
	}
}

// matchHost checks the host component.
func (p Pattern) matchHost(host string) bool {
	switch p.Host {
	case HostSuffix:
		return domainWithin(host, p.HostName)
	case HostExact:
		return host == p.HostName
	default:
		return true
	}
}

// matchPort checks the port component.
// Omitted and wildcard ports match any port, except that an exact URL is pinned
// to the default port of its protocol.
func (p Pattern) matchPort(port string) bool {
	fixed, ok := p.fixedPort()
	if !ok {
		return true
	}

	return port == fixed
}

// fixedPort returns the only port pattern can match.
func (p Pattern) fixedPort() (string, bool) {
	switch {
	case p.Port == PortExact:
		return p.PortNumber, true
	case p.Kind == KindExactURL:
		return defaultPorts[p.ProtocolName], true
	default:
		return "", false
	}
}

// Covers reports whether every URL matched by other is also matched by p.
//
// It is the ancestor relation used by ResolveForHostPattern.
func (p Pattern) Covers(other Pattern) bool {
	if !p.Valid() || !other.Valid() {
		return false
	}

	if p.Kind == KindMatchAll {
		return true
	}

	if other.Kind == KindMatchAll {
		return false
	}

	return p.coversProtocol(other) &&
		p.coversHost(other) &&
		p.coversPort(other) &&
		(p.Kind != KindExactURL || other.Kind == KindExactURL && other.Rest == p.Rest)
}

// coversProtocol checks protocol component inclusion.
func (p Pattern) coversProtocol(other Pattern) bool {
	switch p.Protocol {
	case ProtocolHTTPOrHTTPS:
		if other.Protocol == ProtocolHTTPOrHTTPS {
			return true
		}

		return other.Protocol == ProtocolExact &&
			(other.ProtocolName == "http" || other.ProtocolName == "https")
	case ProtocolExact:
		return other.Protocol == ProtocolExact && other.ProtocolName == p.ProtocolName
	default:
		return true
	}
}

// coversPort checks port component inclusion.
func (p Pattern) coversPort(other Pattern) bool {
	port, ok := p.fixedPort()
	if !ok {
		return true
	}

	otherPort, ok := other.fixedPort()
	return ok && otherPort == port
}

// coversHost checks host component inclusion.
func (p Pattern) coversHost(other Pattern) bool {
	switch p.Host {
	case HostSuffix:
		return other.Host != HostAny && domainWithin(other.HostName, p.HostName)
	case HostExact:
		return other.Host == HostExact && other.HostName == p.HostName
	default:
		return true
	}
}

// domainWithin reports whether host equals domain or is one of its subdomains.
func domainWithin(host string, domain string) bool {
	if host == domain {
		return true
	}

	return len(host) > len(domain) &&
		strings.HasSuffix(host, domain) &&
		host[len(host)-len(domain)-1] == '.'
}
