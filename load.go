// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/sitesettings

package sitesettings

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// LoadStoreFile reads and decodes a store file. Format is detected by extension.
func LoadStoreFile(path string) (*Store, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	return LoadStoreFileFormat(path, format)
}

// LoadStoreFileFormat reads and decodes a store file in explicit format.
func LoadStoreFileFormat(path string, format Format) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open store file: %w", err)
	}
	defer func() { _ = f.Close() }()

	store, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("parse store file: %w", err)
	}

	return store, nil
}

// LoadStoreFiles reads and merges store files in the given order.
//
// Later files override earlier ones per pattern and key.
func LoadStoreFiles(paths ...string) (*Store, error) {
	stores := make([]*Store, 0, len(paths))
	for _, path := range paths {
		store, err := LoadStoreFile(path)
		if err != nil {
			return nil, err
		}

		stores = append(stores, store)
	}

	return MergeStores(stores...), nil
}

// SaveStoreFile encodes store into path. Format is detected by extension.
func SaveStoreFile(path string, store *Store) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	return SaveStoreFileFormat(path, store, format)
}

// SaveStoreFileFormat encodes store into path in explicit format.
//
// The file is replaced atomically: content goes to a temp file in the same
// directory which is then renamed over path.
func SaveStoreFileFormat(path string, store *Store, format Format) error {
	var buf bytes.Buffer
	if err := Encode(&buf, store, format); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp store file: %w", err)
	}

	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write store file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close store file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace store file: %w", err)
	}

	return nil
}
