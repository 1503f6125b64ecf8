// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/sitesettings

package sitesettings

// Matcher resolves URLs against one store snapshot compiled in specificity order.
type Matcher struct {
	// compiled holds valid entries from least to most specific.
	compiled []*storeEntry
}

// MatchResult is a deterministic resolution produced by matcher.
type MatchResult struct {
	// Settings is the overlaid record, nil when nothing matched.
	Settings Record `json:"settings,omitempty" yaml:"settings,omitempty"`
	// Patterns lists matched patterns from least to most specific.
	Patterns []string `json:"patterns,omitempty" yaml:"patterns,omitempty"`
	// Matched reports whether at least one pattern matched.
	Matched bool `json:"matched" yaml:"matched"`
}

// NewMatcher compiles store snapshot into matcher. Store may be nil.
//
// The compiled order is computed once per snapshot and shared by all its matchers.
func NewMatcher(store *Store) *Matcher {
	return &Matcher{compiled: store.sorted()}
}

// Explain returns matched patterns and the overlaid record for one URL.
//
// Resolution policy:
// - records are applied from the least to the most specific pattern
// - equally specific patterns apply in write order, the last write wins
// - unparsable URLs match nothing
func (m *Matcher) Explain(rawURL string) MatchResult {
	u, err := ParseURL(rawURL)
	if err != nil {
		return MatchResult{}
	}

	return m.explainURL(u)
}

// Resolve returns the overlaid record for one URL and whether any pattern matched.
func (m *Matcher) Resolve(rawURL string) (Record, bool) {
	res := m.Explain(rawURL)
	return res.Settings, res.Matched
}

// Len returns the number of compiled patterns.
func (m *Matcher) Len() int {
	return len(m.compiled)
}

// explainURL resolves an already decomposed URL.
func (m *Matcher) explainURL(u URL) MatchResult {
	var res MatchResult
	for _, e := range m.compiled {
		if !e.pattern.Matches(u) {
			continue
		}

		if res.Settings == nil {
			res.Settings = make(Record, len(e.record))
		}

		overlayRecord(res.Settings, e.record)
		res.Patterns = append(res.Patterns, e.pattern.Source)
		res.Matched = true
	}

	return res
}
