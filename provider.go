// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/sitesettings

package sitesettings

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
)

const (
	defaultCacheSize = 1024
	loggerComponent  = "sitesettings"
)

// ProviderOptions configures provider behavior.
type ProviderOptions struct {
	// Initial is the starting snapshot when StoreFile is empty or does not exist yet.
	Initial *Store `json:"-" yaml:"-"`
	// Logger receives debug and warning events. Nil disables logging.
	Logger *zerolog.Logger `json:"-" yaml:"-"`
	// StoreFile is an optional file persisted after every write.
	StoreFile string `json:"store_file,omitempty" yaml:"store_file,omitempty"`
	// Format is the StoreFile format. Zero value detects it by file extension.
	Format Format `json:"format,omitempty" yaml:"format,omitempty"`
	// CacheSize limits cached URL resolutions per snapshot.
	// Zero defaults to 1024, negative disables the cache.
	CacheSize int `json:"cache_size,omitempty" yaml:"cache_size,omitempty"`
}

// Provider owns the current store snapshot with single-writer discipline.
//
// Readers never block each other and always observe one complete snapshot.
// Writers are serialized; a write that fails to persist leaves the previous
// snapshot current.
type Provider struct {
	// current is the published snapshot.
	current atomic.Pointer[Store]
	// cache stores URL resolutions for cacheOwner snapshot.
	cache map[string]cachedResolution
	// cacheOwner is the snapshot cache entries were computed from.
	cacheOwner *Store
	// logger is component-scoped logger.
	logger zerolog.Logger
	// storeFile is the persistence path, empty for memory-only providers.
	storeFile string

	// mu serializes writers.
	mu sync.Mutex
	// cacheMu guards cache and cacheOwner.
	cacheMu sync.Mutex
	// format is storeFile format.
	format Format
	// cacheSize is maximum cache entries, 0 when caching is disabled.
	cacheSize int
}

// cachedResolution stores one URL resolution.
type cachedResolution struct {
	// settings is the overlaid record, never handed out without copying.
	settings Record
	// matched reports whether any pattern matched.
	matched bool
}

// NewProvider creates a provider, loading StoreFile when it exists.
func NewProvider(opts ProviderOptions) (*Provider, error) {
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	p := &Provider{
		logger:    logger.With().Str("component", loggerComponent).Logger(),
		storeFile: opts.StoreFile,
		format:    opts.Format,
		cacheSize: opts.CacheSize,
		cache:     make(map[string]cachedResolution),
	}

	switch {
	case p.cacheSize == 0:
		p.cacheSize = defaultCacheSize
	case p.cacheSize < 0:
		p.cacheSize = 0
	}

	initial := opts.Initial
	if p.storeFile != "" {
		if p.format == FormatUnknown {
			format, err := FormatFromPath(p.storeFile)
			if err != nil {
				return nil, err
			}

			p.format = format
		}

		loaded, err := LoadStoreFileFormat(p.storeFile, p.format)
		switch {
		case err == nil:
			initial = loaded
			p.logger.Debug().
				Str("path", p.storeFile).
				Int("patterns", loaded.Len()).
				Msg("Loaded store file")
		case errors.Is(err, fs.ErrNotExist):
			p.logger.Debug().Str("path", p.storeFile).Msg("Store file does not exist yet")
		default:
			return nil, fmt.Errorf("load store: %w", err)
		}
	}

	if initial == nil {
		initial = NewStore()
	}

	p.current.Store(initial)
	return p, nil
}

// Snapshot returns the current immutable store. Nil provider returns nil store.
func (p *Provider) Snapshot() *Store {
	if p == nil {
		return nil
	}

	return p.current.Load()
}

// MergeSetting sets key to value on pattern and publishes the new snapshot.
func (p *Provider) MergeSetting(pattern string, key string, value any) (*Store, error) {
	return p.MergeRecord(pattern, Record{key: value})
}

// MergeRecord sets every key of settings on pattern and publishes the new snapshot.
func (p *Provider) MergeRecord(pattern string, settings Record) (*Store, error) {
	if p == nil {
		return nil, ErrNilProvider
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	next := p.current.Load().MergeRecord(pattern, settings)
	if err := p.publishLocked(next); err != nil {
		return nil, err
	}

	p.logger.Debug().
		Str("pattern", pattern).
		Int("keys", len(settings)).
		Bool("valid", next.entries[pattern].pattern.Valid()).
		Msg("Merged settings")

	return next, nil
}

// Replace publishes store as the current snapshot, for example to restore an older one.
func (p *Provider) Replace(store *Store) error {
	if p == nil {
		return ErrNilProvider
	}

	if store == nil {
		store = NewStore()
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	return p.publishLocked(store)
}

// Reload replaces the current snapshot with StoreFile content.
func (p *Provider) Reload() error {
	if p == nil {
		return ErrNilProvider
	}

	if p.storeFile == "" {
		return ErrNoStoreFile
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	loaded, err := LoadStoreFileFormat(p.storeFile, p.format)
	if err != nil {
		return fmt.Errorf("reload store: %w", err)
	}

	p.current.Store(loaded)
	p.logger.Debug().Str("path", p.storeFile).Int("patterns", loaded.Len()).Msg("Reloaded store file")
	return nil
}

// Save writes the current snapshot to StoreFile.
func (p *Provider) Save() error {
	if p == nil {
		return ErrNilProvider
	}

	if p.storeFile == "" {
		return ErrNoStoreFile
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	return SaveStoreFileFormat(p.storeFile, p.current.Load(), p.format)
}

// ResolveForURL returns the settings effective for a URL in the current snapshot.
//
// Results are cached per snapshot; every call returns an independent copy.
func (p *Provider) ResolveForURL(rawURL string) (Record, bool) {
	if p == nil {
		return nil, false
	}

	snap := p.current.Load()
	if cached, ok := p.cached(snap, rawURL); ok {
		return cloneRecord(cached.settings), cached.matched
	}

	settings, matched := NewMatcher(snap).Resolve(rawURL)
	p.remember(snap, rawURL, cachedResolution{settings: settings, matched: matched})

	return cloneRecord(settings), matched
}

// ResolveForHostPattern returns pattern settings overlaid on ancestors in the current snapshot.
func (p *Provider) ResolveForHostPattern(pattern string) (Record, bool) {
	return p.Snapshot().ResolveForHostPattern(pattern)
}

// Explain returns matched patterns and the overlaid record for one URL.
func (p *Provider) Explain(rawURL string) MatchResult {
	return NewMatcher(p.Snapshot()).Explain(rawURL)
}

// publishLocked persists next when configured and makes it current. Caller holds mu.
func (p *Provider) publishLocked(next *Store) error {
	if p.storeFile != "" {
		if err := SaveStoreFileFormat(p.storeFile, next, p.format); err != nil {
			p.logger.Warn().Err(err).Str("path", p.storeFile).Msg("Failed to persist store, keeping previous snapshot")
			return fmt.Errorf("persist store: %w", err)
		}
	}

	p.current.Store(next)
	return nil
}

// cached returns cached resolution computed from snap.
func (p *Provider) cached(snap *Store, rawURL string) (cachedResolution, bool) {
	if p.cacheSize == 0 {
		return cachedResolution{}, false
	}

	p.cacheMu.Lock()
	defer p.cacheMu.Unlock()

	if p.cacheOwner != snap {
		return cachedResolution{}, false
	}

	res, ok := p.cache[rawURL]
	return res, ok
}

// remember stores resolution computed from snap, dropping entries of older snapshots.
func (p *Provider) remember(snap *Store, rawURL string, res cachedResolution) {
	if p.cacheSize == 0 {
		return
	}

	p.cacheMu.Lock()
	defer p.cacheMu.Unlock()

	if p.cacheOwner != snap {
		// A reader still holding an older snapshot must not evict the newer cache.
		if snap != p.current.Load() {
			return
		}

		clear(p.cache)
		p.cacheOwner = snap
	}

	if len(p.cache) >= p.cacheSize {
		return
	}

	p.cache[rawURL] = res
}

// cachedLen returns the number of cached resolutions.
func (p *Provider) cachedLen() int {
	p.cacheMu.Lock()
	defer p.cacheMu.Unlock()

	return len(p.cache)
}
