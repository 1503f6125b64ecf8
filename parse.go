// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/sitesettings

package sitesettings

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a store document serialization format.
type Format uint8

const (
	// FormatUnknown is unset/invalid format placeholder.
	FormatUnknown Format = iota
	// FormatJSON is JSON document format.
	FormatJSON
	// FormatYAML is YAML document format.
	FormatYAML
	// FormatTOML is TOML document format.
	FormatTOML
)

// storeDocumentVersion is the document version written by Encode.
const storeDocumentVersion = 1

// storeDocument is the serialized store shape.
//
// Entries are kept in write order so decoding restores the same tie-break order.
type storeDocument struct {
	Version int     `json:"version" yaml:"version" toml:"version"`
	Entries []Entry `json:"entries" yaml:"entries" toml:"entries"`
}

// String returns lower-case format name.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	default:
		return "unknown"
	}
}

// ParseFormat parses format name ("json", "yaml", "yml", "toml"), case-insensitive.
func ParseFormat(name string) (Format, error) {
	switch asciiLower(strings.TrimSpace(name)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	default:
		return FormatUnknown, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// FormatFromPath detects store format by file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return FormatUnknown, fmt.Errorf("%w: no extension (%q)", ErrUnsupportedFormat, path)
	}

	return ParseFormat(ext)
}

// Decode reads one store document from reader.
//
// Semantics:
// - empty input is an empty store
// - missing version is treated as current version
// - entries are applied in document order, repeated patterns merge key by key
func Decode(r io.Reader, format Format) (*Store, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read store: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return NewStore(), nil
	}

	var doc storeDocument
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &doc)
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	case FormatTOML:
		err = toml.Unmarshal(data, &doc)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	if err != nil {
		return nil, fmt.Errorf("decode %s store: %w", format, err)
	}

	if doc.Version > storeDocumentVersion || doc.Version < 0 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, doc.Version)
	}

	for i, e := range doc.Entries {
		if e.Pattern == "" {
			return nil, fmt.Errorf("%w: entry %d has empty pattern", ErrInvalidEntry, i)
		}
	}

	return NewStore(doc.Entries...), nil
}

// ParseStoreString decodes store from string input.
func ParseStoreString(src string, format Format) (*Store, error) {
	return Decode(strings.NewReader(src), format)
}

// Encode writes store as one document. Store may be nil.
func Encode(w io.Writer, store *Store, format Format) error {
	doc := storeDocument{
		Version: storeDocumentVersion,
		Entries: store.Entries(),
	}

	var err error
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(doc); err == nil {
			err = enc.Close()
		}
	case FormatTOML:
		// TOML has no null; go-toml silently drops nil values.
		if err = checkTOMLValues(doc.Entries); err == nil {
			err = toml.NewEncoder(w).Encode(doc)
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	if err != nil {
		return fmt.Errorf("encode %s store: %w", format, err)
	}

	return nil
}

// checkTOMLValues rejects nil values anywhere in entry settings.
func checkTOMLValues(entries []Entry) error {
	for _, e := range entries {
		for key, val := range e.Settings {
			if path, ok := findNil(val, key); ok {
				return fmt.Errorf("%w: nil at %q in pattern %q", ErrUnsupportedValue, path, e.Pattern)
			}
		}
	}

	return nil
}

// findNil returns the dotted path of the first nil value found in val.
func findNil(val any, path string) (string, bool) {
	switch v := val.(type) {
	case nil:
		return path, true
	case Record:
		return findNil(map[string]any(v), path)
	case map[string]any:
		for key, item := range v {
			if p, ok := findNil(item, path+"."+key); ok {
				return p, true
			}
		}
	case []any:
		for i, item := range v {
			if p, ok := findNil(item, fmt.Sprintf("%s[%d]", path, i)); ok {
				return p, true
			}
		}
	}

	return "", false
}
