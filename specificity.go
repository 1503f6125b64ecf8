// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/sitesettings

package sitesettings

import (
	"cmp"
	"strings"
)

// specificity is a comparable rank of one pattern; fields are ordered by priority.
type specificity struct {
	// notMatchAll is 0 only for "*".
	notMatchAll int
	// exactURL is 1 for patterns carrying path, query or fragment.
	exactURL int
	// host is 2 for exact host, 1 for subdomain wildcard, 0 for any host.
	host int
	// hostDepth is the label count of a subdomain wildcard base domain.
	hostDepth int
	// port is 2 for exact port, 1 for omitted port, 0 for ":*".
	port int
	// protocol is 2 for one protocol, 1 for "https?", 0 for any protocol.
	protocol int
}

// specificityOf ranks parsed pattern. Invalid patterns rank below everything.
func specificityOf(p Pattern) specificity {
	switch p.Kind {
	case KindInvalid:
		return specificity{notMatchAll: -1}
	case KindMatchAll:
		return specificity{}
	}

	s := specificity{notMatchAll: 1}
	if p.Kind == KindExactURL {
		s.exactURL = 1
	}

	switch p.Host {
	case HostExact:
		s.host = 2
	case HostSuffix:
		s.host = 1
		s.hostDepth = strings.Count(p.HostName, ".") + 1
	}

	switch p.Port {
	case PortExact:
		s.port = 2
	case PortOmitted:
		s.port = 1
	}

	switch p.Protocol {
	case ProtocolExact:
		s.protocol = 2
	case ProtocolHTTPOrHTTPS:
		s.protocol = 1
	}

	return s
}

// compareSpecificity returns -1, 0 or +1 when a is less, equally or more specific than b.
func compareSpecificity(a, b specificity) int {
	if c := cmp.Compare(a.notMatchAll, b.notMatchAll); c != 0 {
		return c
	}

	if c := cmp.Compare(a.exactURL, b.exactURL); c != 0 {
		return c
	}

	if c := cmp.Compare(a.host, b.host); c != 0 {
		return c
	}

	if c := cmp.Compare(a.hostDepth, b.hostDepth); c != 0 {
		return c
	}

	if c := cmp.Compare(a.port, b.port); c != 0 {
		return c
	}

	return cmp.Compare(a.protocol, b.protocol)
}

// ComparePatterns orders two patterns by specificity.
//
// It returns a negative number when a is less specific than b, zero when both rank
// equally (write order then decides) and a positive number otherwise.
func ComparePatterns(a, b Pattern) int {
	return compareSpecificity(specificityOf(a), specificityOf(b))
}
