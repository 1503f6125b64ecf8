// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/sitesettings

package sitesettings

import (
	"bytes"
	"fmt"
	"path/filepath"
	"testing"
)

const (
	benchPatternCount = 96
	benchURLCount     = 512
)

var (
	benchRecordSink  Record
	benchMatchedSink bool
	benchStoreSink   *Store
)

func BenchmarkParsePattern(b *testing.B) {
	patterns := buildBenchmarkPatterns(benchPatternCount)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p := ParsePattern(patterns[i%len(patterns)])
		if !p.Valid() {
			b.Fatalf("invalid pattern %q", p.Source)
		}
	}
}

func BenchmarkMergeSetting(b *testing.B) {
	store := buildBenchmarkStore(benchPatternCount)
	patterns := buildBenchmarkPatterns(benchPatternCount)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		benchStoreSink = store.MergeSetting(patterns[i%len(patterns)], "bench", i)
	}
}

func BenchmarkStoreResolveForURL(b *testing.B) {
	store := buildBenchmarkStore(benchPatternCount)
	urls := benchmarkURLs(benchURLCount)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		benchRecordSink, benchMatchedSink = store.ResolveForURL(urls[i%len(urls)])
	}
}

func BenchmarkStoreResolveForHostPattern(b *testing.B) {
	store := buildBenchmarkStore(benchPatternCount)
	patterns := buildBenchmarkPatterns(benchPatternCount)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		benchRecordSink, benchMatchedSink = store.ResolveForHostPattern(patterns[i%len(patterns)])
	}
}

func BenchmarkProviderResolveCached(b *testing.B) {
	p, err := NewProvider(ProviderOptions{Initial: buildBenchmarkStore(benchPatternCount)})
	if err != nil {
		b.Fatal(err)
	}

	urls := benchmarkURLs(benchURLCount)

	// Warm provider cache before timed loop.
	for i := 0; i < len(urls) && i < 64; i++ {
		_, _ = p.ResolveForURL(urls[i])
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		benchRecordSink, benchMatchedSink = p.ResolveForURL(urls[i%64])
	}
}

func BenchmarkProviderResolveCold(b *testing.B) {
	path := filepath.Join(b.TempDir(), "site-settings.json")
	if err := SaveStoreFile(path, buildBenchmarkStore(benchPatternCount)); err != nil {
		b.Fatal(err)
	}

	urls := benchmarkURLs(benchURLCount)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p, err := NewProvider(ProviderOptions{StoreFile: path})
		if err != nil {
			b.Fatal(err)
		}

		benchRecordSink, benchMatchedSink = p.ResolveForURL(urls[i%len(urls)])
	}
}

func BenchmarkEncodeJSON(b *testing.B) {
	store := buildBenchmarkStore(benchPatternCount)

	var buf bytes.Buffer
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf.Reset()
		if err := Encode(&buf, store, FormatJSON); err != nil {
			b.Fatal(err)
		}
	}
}

func buildBenchmarkPatterns(patternCount int) []string {
	patterns := make([]string, 0, patternCount+1)
	patterns = append(patterns, "*")

	for i := 0; i < patternCount; i++ {
		switch i % 6 {
		case 0:
			patterns = append(patterns, fmt.Sprintf("https://*.site%03d.com", i%37))
		case 1:
			patterns = append(patterns, fmt.Sprintf("https://www.site%03d.com", i%37))
		case 2:
			patterns = append(patterns, fmt.Sprintf("https://www.site%03d.com:*", i%37))
		case 3:
			patterns = append(patterns, fmt.Sprintf("https?://*.site%03d.com:%d", i%37, 8000+i%5))
		case 4:
			patterns = append(patterns, fmt.Sprintf("https://www.site%03d.com/page_%02d", i%37, i%11))
		default:
			patterns = append(patterns, fmt.Sprintf("http://host%03d.example:*", i%23))
		}
	}

	return patterns
}

func buildBenchmarkStore(patternCount int) *Store {
	store := NewStore()
	for i, pattern := range buildBenchmarkPatterns(patternCount) {
		store = store.MergeSetting(pattern, fmt.Sprintf("prop%d", i%7), i)
	}

	return store
}

func benchmarkURLs(urlCount int) []string {
	urls := make([]string, 0, urlCount)
	for i := 0; i < urlCount; i++ {
		switch i % 5 {
		case 0:
			urls = append(urls, fmt.Sprintf("https://www.site%03d.com/", i%37))
		case 1:
			urls = append(urls, fmt.Sprintf("https://a.b.site%03d.com:%d/x", i%37, 8000+i%5))
		case 2:
			urls = append(urls, fmt.Sprintf("https://www.site%03d.com/page_%02d", i%37, i%11))
		case 3:
			urls = append(urls, fmt.Sprintf("http://host%03d.example:%d/", i%23, 1000+i))
		default:
			urls = append(urls, fmt.Sprintf("ftp://unknown%05d.net/", i))
		}
	}

	return urls
}
