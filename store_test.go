// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/sitesettings

package sitesettings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreExactHostPattern(t *testing.T) {
	t.Parallel()

	s := MergeSetting(nil, "https://www.brave.com", "prop1", 1)

	setting, ok := s.ResolveForHostPattern("https://www.brave.com")
	require.True(t, ok)
	assert.Equal(t, 1, setting["prop1"])

	for _, u := range []string{
		"https://www.brave.com",
		"https://www.brave.com/projects#test",
	} {
		setting, ok := s.ResolveForURL(u)
		require.True(t, ok, u)
		assert.Equal(t, 1, setting["prop1"], u)
	}
}

func TestStoreAnyPortPattern(t *testing.T) {
	t.Parallel()

	s := NewStore().MergeSetting("https://www.brave.com:*", "prop1", 2)

	setting, ok := s.ResolveForHostPattern("https://www.brave.com:*")
	require.True(t, ok)
	assert.Equal(t, 2, setting["prop1"])

	for _, u := range []string{
		"https://www.brave.com",
		"https://www.brave.com:8080/projects#test",
	} {
		setting, ok := s.ResolveForURL(u)
		require.True(t, ok, u)
		assert.Equal(t, 2, setting["prop1"], u)
	}
}

func TestStoreProtocolOnlyPattern(t *testing.T) {
	t.Parallel()

	s := NewStore().MergeSetting("https://*", "prop1", 3)

	setting, ok := s.ResolveForURL("https://www.brave.com")
	require.True(t, ok)
	assert.Equal(t, 3, setting["prop1"])

	setting, ok = s.ResolveForURL("http://www.brave.com")
	assert.False(t, ok)
	assert.Nil(t, setting)
}

func TestStoreHTTPOrHTTPSPattern(t *testing.T) {
	t.Parallel()

	s := NewStore().MergeSetting("https?://www.brave.com", "prop1", 4)

	for _, u := range []string{
		"https://www.brave.com/projects",
		"http://www.brave.com/projects",
	} {
		setting, ok := s.ResolveForURL(u)
		require.True(t, ok, u)
		assert.Equal(t, 4, setting["prop1"], u)
	}

	_, ok := s.ResolveForURL("ftp://www.brave.com/projects")
	assert.False(t, ok)
}

func TestStoreExactURLPattern(t *testing.T) {
	t.Parallel()

	s := NewStore().MergeSetting("https://www.brave.com/", "prop1", 1)

	setting, ok := s.ResolveForURL("https://www.brave.com/")
	require.True(t, ok)
	assert.Equal(t, 1, setting["prop1"])

	for _, u := range []string{
		"https://www.brave.com/projects",
		"https://www.brave.com",
		"https://www.brave.com:8080/",
		"http://www.brave.com/",
	} {
		setting, _ := s.ResolveForURL(u)
		_, has := setting["prop1"]
		assert.False(t, has, u)
	}
}

func TestStoreExactURLRequiresLiteralOrigin(t *testing.T) {
	t.Parallel()

	s := NewStore().
		MergeSetting("https://*/", "prop1", 1).
		MergeSetting("*://*.brave.com/x", "prop2", 2).
		MergeSetting("https://*:8080", "prop3", 3)

	for _, u := range []string{
		"https://evil.example/",
		"ftp://a.brave.com/x",
		"https://www.brave.com:8080/",
	} {
		setting, ok := s.ResolveForURL(u)
		assert.False(t, ok, u)
		assert.Nil(t, setting, u)
	}

	assert.Equal(t, 3, s.Len())
}

func TestStoreSubdomainWildcard(t *testing.T) {
	t.Parallel()

	s := NewStore().MergeSetting("https?://*.brave.com:*", "prop1", 5)

	for _, u := range []string{
		"https://brave.com/projects",
		"https://www.brave.com/projects",
		"http://a.b.brave.com/projects",
		"http://a.b.brave.com:99/projects",
	} {
		setting, ok := s.ResolveForURL(u)
		require.True(t, ok, u)
		assert.Equal(t, 5, setting["prop1"], u)
	}

	for _, u := range []string{
		"https://brianbondy.com/projects",
		"https://notbrave.com/",
	} {
		setting, ok := s.ResolveForURL(u)
		assert.False(t, ok, u)
		assert.Nil(t, setting, u)
	}
}

func TestStoreMergeOverwritesKeepsOtherKeys(t *testing.T) {
	t.Parallel()

	s := NewStore()
	s = s.MergeSetting("https://www.brave.com", "prop1", 1)
	s = s.MergeSetting("https://www.brave.com", "prop1", 2)

	setting, ok := s.ResolveForHostPattern("https://www.brave.com")
	require.True(t, ok)
	assert.Equal(t, 2, setting["prop1"])

	s = s.MergeSetting("https://www.brave.com", "prop2", 3)
	setting, ok = s.HostPatternSettings("https://www.brave.com")
	require.True(t, ok)
	assert.Equal(t, Record{"prop1": 2, "prop2": 3}, setting)
	assert.Equal(t, 1, s.Len())
}

// layeredStore builds the layered fixture used by precedence tests.
func layeredStore() *Store {
	s := NewStore()

	s = s.MergeSetting("https://*.brave.com", "prop1", 3)
	s = s.MergeSetting("https://*.brave.com", "prop2", 3)
	s = s.MergeSetting("https://*.brave.com", "prop3", 3)

	s = s.MergeSetting("https://www.brave.com", "prop1", 1)

	s = s.MergeSetting("https://www.brave.com:*", "prop1", 2)
	s = s.MergeSetting("https://www.brave.com:*", "prop2", 2)

	s = s.MergeSetting("*", "prop1", 4)
	s = s.MergeSetting("*", "prop2", 4)
	s = s.MergeSetting("*", "prop3", 4)
	s = s.MergeSetting("*", "prop4", 4)

	return s
}

func TestStoreMoreSpecificOverridesForURL(t *testing.T) {
	t.Parallel()

	s := layeredStore()

	setting, ok := s.ResolveForURL("https://www.brave.com")
	require.True(t, ok)
	assert.Equal(t, Record{"prop1": 1, "prop2": 2, "prop3": 3, "prop4": 4}, setting)

	setting, ok = s.ResolveForURL("https://brave.com/")
	require.True(t, ok)
	assert.Equal(t, Record{"prop1": 3, "prop2": 3, "prop3": 3, "prop4": 4}, setting)

	setting, ok = s.ResolveForURL("http://www.brave.com")
	require.True(t, ok)
	assert.Equal(t, Record{"prop1": 4, "prop2": 4, "prop3": 4, "prop4": 4}, setting)
}

func TestStoreExactLookupDoesNotOverlay(t *testing.T) {
	t.Parallel()

	s := layeredStore()

	setting, ok := s.HostPatternSettings("https://www.brave.com")
	require.True(t, ok)
	assert.Equal(t, Record{"prop1": 1}, setting)

	setting, ok = s.HostPatternSettings("https://www.brave.com:*")
	require.True(t, ok)
	assert.Equal(t, Record{"prop1": 2, "prop2": 2}, setting)

	_, ok = s.HostPatternSettings("https://brave.com")
	assert.False(t, ok)
}

func TestStoreResolveForHostPatternOverlaysAncestors(t *testing.T) {
	t.Parallel()

	s := layeredStore()

	tests := []struct {
		pattern string
		want    Record
	}{
		{"https://www.brave.com", Record{"prop1": 1, "prop2": 2, "prop3": 3, "prop4": 4}},
		{"https://www.brave.com:*", Record{"prop1": 2, "prop2": 2, "prop3": 3, "prop4": 4}},
		{"https://*.brave.com", Record{"prop1": 3, "prop2": 3, "prop3": 3, "prop4": 4}},
		{"*", Record{"prop1": 4, "prop2": 4, "prop3": 4, "prop4": 4}},
		// Not stored: ancestors only.
		{"https://a.brave.com:8080", Record{"prop1": 3, "prop2": 3, "prop3": 3, "prop4": 4}},
	}

	for _, tt := range tests {
		got, ok := s.ResolveForHostPattern(tt.pattern)
		require.True(t, ok, tt.pattern)
		assert.Equal(t, tt.want, got, tt.pattern)
	}
}

func TestStoreResolveForHostPatternStoredMatchesUnstored(t *testing.T) {
	t.Parallel()

	s := layeredStore()

	for _, pattern := range []string{"https://a.brave.com:8080", "HTTPS://A.Brave.com:8080"} {
		unstored, ok := s.ResolveForHostPattern(pattern)
		require.True(t, ok, pattern)

		stored, ok := s.MergeRecord(pattern, Record{}).ResolveForHostPattern(pattern)
		require.True(t, ok, pattern)
		assert.Equal(t, unstored, stored, pattern)
	}
}

func TestStoreResolveForHostPatternSkipsDescendants(t *testing.T) {
	t.Parallel()

	s := NewStore().
		MergeSetting("https://*.brave.com", "prop1", "wide").
		MergeSetting("https://www.brave.com", "prop1", "narrow").
		MergeSetting("https://www.brave.com", "prop2", "narrow")

	got, ok := s.ResolveForHostPattern("https://*.brave.com")
	require.True(t, ok)
	assert.Equal(t, Record{"prop1": "wide"}, got)

	_, ok = s.ResolveForHostPattern("http://*.example.com")
	assert.False(t, ok)
}

func TestStoreInvalidPatternStoredVerbatim(t *testing.T) {
	t.Parallel()

	s := NewStore().
		MergeSetting("not a pattern", "prop1", 1).
		MergeSetting("https://www.brave.com:port", "prop1", 2)

	assert.Equal(t, []string{"not a pattern", "https://www.brave.com:port"}, s.Patterns())

	got, ok := s.HostPatternSettings("not a pattern")
	require.True(t, ok)
	assert.Equal(t, Record{"prop1": 1}, got)

	got, ok = s.ResolveForHostPattern("not a pattern")
	require.True(t, ok)
	assert.Equal(t, Record{"prop1": 1}, got)

	_, ok = s.ResolveForURL("https://www.brave.com")
	assert.False(t, ok)
}

func TestStoreInvalidURLFailsClosed(t *testing.T) {
	t.Parallel()

	s := NewStore().MergeSetting("*", "prop1", 1)

	for _, u := range []string{"", "www.brave.com", "https://", "://x", "https://:80/"} {
		setting, ok := s.ResolveForURL(u)
		assert.False(t, ok, u)
		assert.Nil(t, setting, u)
	}
}

func TestStoreAbsentDiffersFromZeroValues(t *testing.T) {
	t.Parallel()

	s := NewStore().MergeSetting("https://www.brave.com", "enabled", false)

	setting, ok := s.ResolveForURL("https://www.brave.com")
	require.True(t, ok)
	assert.Equal(t, Record{"enabled": false}, setting)

	setting, ok = s.ResolveForURL("https://example.com")
	assert.False(t, ok)
	assert.Nil(t, setting)
}

func TestStoreEqualSpecificityLastWriteWins(t *testing.T) {
	t.Parallel()

	s := NewStore().
		MergeSetting("https://WWW.brave.com", "prop1", "first").
		MergeSetting("https://www.brave.com", "prop1", "second")

	got, ok := s.ResolveForURL("https://www.brave.com")
	require.True(t, ok)
	assert.Equal(t, "second", got["prop1"])

	// Rewriting the first pattern makes it the latest write.
	s = s.MergeSetting("https://WWW.brave.com", "prop1", "third")
	got, ok = s.ResolveForURL("https://www.brave.com")
	require.True(t, ok)
	assert.Equal(t, "third", got["prop1"])
}

func TestStoreSnapshotsAreIsolated(t *testing.T) {
	t.Parallel()

	before := NewStore().MergeSetting("https://www.brave.com", "prop1", 1)
	after := before.MergeSetting("https://www.brave.com", "prop1", 2).
		MergeSetting("*", "prop2", 3)

	got, ok := before.ResolveForURL("https://www.brave.com")
	require.True(t, ok)
	assert.Equal(t, Record{"prop1": 1}, got)
	assert.Equal(t, 1, before.Len())

	got, ok = after.ResolveForURL("https://www.brave.com")
	require.True(t, ok)
	assert.Equal(t, Record{"prop1": 2, "prop2": 3}, got)
}

func TestStoreResultsDoNotAliasStoredValues(t *testing.T) {
	t.Parallel()

	nested := map[string]any{"list": []any{"a"}}
	s := NewStore().MergeSetting("https://www.brave.com", "nested", nested)

	// Mutating the caller's value after the write must not leak into the store.
	nested["list"] = []any{"mutated"}

	got, ok := s.ResolveForURL("https://www.brave.com")
	require.True(t, ok)
	gotNested := got["nested"].(map[string]any)
	assert.Equal(t, []any{"a"}, gotNested["list"])

	gotNested["list"].([]any)[0] = "changed"

	again, ok := s.HostPatternSettings("https://www.brave.com")
	require.True(t, ok)
	assert.Equal(t, []any{"a"}, again["nested"].(map[string]any)["list"])
}

func TestStoreResolveIsIdempotent(t *testing.T) {
	t.Parallel()

	s := layeredStore()

	first, ok1 := s.ResolveForURL("https://www.brave.com/a?b#c")
	second, ok2 := s.ResolveForURL("https://www.brave.com/a?b#c")
	assert.Equal(t, ok1, ok2)
	assert.Equal(t, first, second)
}

func TestStoreEntriesRoundTrip(t *testing.T) {
	t.Parallel()

	s := layeredStore()
	rebuilt := NewStore(s.Entries()...)

	assert.Equal(t, s.Entries(), rebuilt.Entries())
	assert.Equal(t, []string{
		"https://*.brave.com",
		"https://www.brave.com",
		"https://www.brave.com:*",
		"*",
	}, rebuilt.Patterns())

	for _, u := range []string{"https://www.brave.com", "http://brave.com:81/x"} {
		want, wantOK := s.ResolveForURL(u)
		got, gotOK := rebuilt.ResolveForURL(u)
		assert.Equal(t, wantOK, gotOK, u)
		assert.Equal(t, want, got, u)
	}
}

func TestStoreNilIsEmpty(t *testing.T) {
	t.Parallel()

	var s *Store

	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Patterns())

	_, ok := s.ResolveForURL("https://www.brave.com")
	assert.False(t, ok)

	_, ok = ResolveForHostPattern(s, "*")
	assert.False(t, ok)

	_, ok = s.Get("*", "prop1")
	assert.False(t, ok)

	got, ok := ResolveForURL(MergeSetting(s, "*", "prop1", 1), "https://a.b")
	require.True(t, ok)
	assert.Equal(t, Record{"prop1": 1}, got)
}
