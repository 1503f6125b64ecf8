// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/sitesettings

package sitesettings

import (
	"cmp"
	"slices"
	"sync"
)

// Store is an immutable snapshot mapping pattern strings to settings records.
//
// Write operations return a new Store and never modify the receiver, so any number
// of goroutines may read one snapshot while a single writer derives the next one.
// A nil *Store behaves as an empty store.
type Store struct {
	// entries maps verbatim pattern string to its stored entry.
	entries map[string]*storeEntry
	// ordered caches entries sorted from least to most specific.
	ordered []*storeEntry
	// orderOnce guards lazy ordered computation.
	orderOnce sync.Once
	// seq is the last assigned write sequence.
	seq uint64
}

// storeEntry is one stored pattern. It is never modified after creation.
type storeEntry struct {
	// record holds the pattern settings.
	record Record
	// pattern is the parsed pattern.
	pattern Pattern
	// rank is the precomputed pattern specificity.
	rank specificity
	// seq is the write sequence of the last write into this pattern.
	seq uint64
}

// NewStore creates a store from entries applied in the given order.
//
// Entries repeating a pattern are merged key by key, later values win.
func NewStore(entries ...Entry) *Store {
	s := &Store{entries: make(map[string]*storeEntry, len(entries))}
	for _, e := range entries {
		s.mergeInPlace(e.Pattern, e.Settings)
	}

	return s
}

// MergeSetting returns a new store where pattern's record has key set to value.
//
// Other keys of the pattern record are preserved. Patterns that do not parse are
// stored verbatim and never match.
func (s *Store) MergeSetting(pattern string, key string, value any) *Store {
	return s.MergeRecord(pattern, Record{key: value})
}

// MergeRecord returns a new store where every key of settings is set on pattern's record.
//
// The whole record is one write for tie-break purposes.
func (s *Store) MergeRecord(pattern string, settings Record) *Store {
	next := s.clone()
	next.mergeInPlace(pattern, settings)
	return next
}

// ResolveForURL returns the settings effective for a concrete URL.
//
// Matching records are overlaid from the least to the most specific pattern.
// It reports false when the URL does not parse or no pattern matches.
func (s *Store) ResolveForURL(rawURL string) (Record, bool) {
	return NewMatcher(s).Resolve(rawURL)
}

// ResolveForHostPattern returns the record of a literal pattern overlaid on its ancestors.
//
// Ancestors are stored patterns that match every URL the literal pattern matches and
// are not more specific than it. More specific descendants are never included.
// It reports false when neither the pattern nor any ancestor is stored.
func (s *Store) ResolveForHostPattern(pattern string) (Record, bool) {
	if s == nil {
		return nil, false
	}

	own, hasOwn := s.entries[pattern]

	// Stored entries hold ParsePattern of their own key.
	var target Pattern
	if hasOwn {
		target = own.pattern
	} else {
		target = ParsePattern(pattern)
	}

	layers := make([]Record, 0, 4)
	if target.Valid() {
		targetRank := specificityOf(target)
		for _, e := range s.sorted() {
			if e == own {
				continue
			}

			if compareSpecificity(e.rank, targetRank) > 0 || !e.pattern.Covers(target) {
				continue
			}

			layers = append(layers, e.record)
		}
	}

	if hasOwn {
		layers = append(layers, own.record)
	}

	if len(layers) == 0 {
		return nil, false
	}

	return MergeRecords(layers...), true
}

// HostPatternSettings returns a copy of the record stored exactly under pattern.
func (s *Store) HostPatternSettings(pattern string) (Record, bool) {
	if s == nil {
		return nil, false
	}

	e, ok := s.entries[pattern]
	if !ok {
		return nil, false
	}

	return cloneRecord(e.record), true
}

// Get returns one stored value from the record stored exactly under pattern.
func (s *Store) Get(pattern string, key string) (any, bool) {
	if s == nil {
		return nil, false
	}

	e, ok := s.entries[pattern]
	if !ok {
		return nil, false
	}

	v, ok := e.record[key]
	if !ok {
		return nil, false
	}

	return cloneValue(v), true
}

// Len returns the number of stored patterns.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}

	return len(s.entries)
}

// Patterns returns stored pattern strings in write order.
func (s *Store) Patterns() []string {
	entries := s.writeOrder()
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.pattern.Source
	}

	return out
}

// Entries returns copies of stored entries in write order.
//
// Passing the result to NewStore reconstructs an equivalent store.
func (s *Store) Entries() []Entry {
	entries := s.writeOrder()
	out := make([]Entry, len(entries))
	for i, e := range entries {
		out[i] = Entry{
			Pattern:  e.pattern.Source,
			Settings: cloneRecord(e.record),
		}
	}

	return out
}

// clone returns a writable shallow copy sharing immutable entries.
func (s *Store) clone() *Store {
	if s == nil {
		return &Store{entries: make(map[string]*storeEntry, 1)}
	}

	entries := make(map[string]*storeEntry, len(s.entries)+1)
	for k, e := range s.entries {
		entries[k] = e
	}

	return &Store{entries: entries, seq: s.seq}
}

// mergeInPlace applies one write to a store not yet visible to readers.
func (s *Store) mergeInPlace(pattern string, settings Record) {
	s.seq++

	prev, exists := s.entries[pattern]

	record := make(Record, len(settings)+1)
	var parsed Pattern
	if exists {
		for k, v := range prev.record {
			record[k] = v
		}

		parsed = prev.pattern
	} else {
		parsed = ParsePattern(pattern)
	}

	for k, v := range settings {
		record[k] = cloneValue(v)
	}

	s.entries[pattern] = &storeEntry{
		record:  record,
		pattern: parsed,
		rank:    specificityOf(parsed),
		seq:     s.seq,
	}
}

// sorted returns entries ordered from least to most specific, ties by write order.
func (s *Store) sorted() []*storeEntry {
	if s == nil {
		return nil
	}

	s.orderOnce.Do(func() {
		ordered := make([]*storeEntry, 0, len(s.entries))
		for _, e := range s.entries {
			if e.pattern.Valid() {
				ordered = append(ordered, e)
			}
		}

		slices.SortFunc(ordered, func(a, b *storeEntry) int {
			if c := compareSpecificity(a.rank, b.rank); c != 0 {
				return c
			}

			return cmp.Compare(a.seq, b.seq)
		})

		s.ordered = ordered
	})

	return s.ordered
}

// writeOrder returns all entries, invalid patterns included, ordered by write sequence.
func (s *Store) writeOrder() []*storeEntry {
	if s == nil {
		return nil
	}

	out := make([]*storeEntry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}

	slices.SortFunc(out, func(a, b *storeEntry) int {
		return cmp.Compare(a.seq, b.seq)
	})

	return out
}

// MergeSetting returns store with key set to value on pattern. Store may be nil.
func MergeSetting(store *Store, pattern string, key string, value any) *Store {
	return store.MergeSetting(pattern, key, value)
}

// ResolveForURL returns the settings effective for rawURL in store. Store may be nil.
func ResolveForURL(store *Store, rawURL string) (Record, bool) {
	return store.ResolveForURL(rawURL)
}

// ResolveForHostPattern returns the settings of pattern overlaid on its ancestors in store.
func ResolveForHostPattern(store *Store, pattern string) (Record, bool) {
	return store.ResolveForHostPattern(pattern)
}
