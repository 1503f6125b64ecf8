// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/sitesettings

package sitesettings

import "errors"

// Sentinel errors for sitesettings operations.
var (
	// ErrInvalidURL indicates URL input that cannot be decomposed into protocol and host.
	ErrInvalidURL = errors.New("invalid url")
	// ErrUnsupportedFormat indicates unknown store file format.
	ErrUnsupportedFormat = errors.New("unsupported store format")
	// ErrUnsupportedVersion indicates store document version this package cannot read.
	ErrUnsupportedVersion = errors.New("unsupported store version")
	// ErrInvalidEntry indicates a store document entry without pattern.
	ErrInvalidEntry = errors.New("invalid store entry")
	// ErrUnsupportedValue indicates a setting value the target store format cannot represent.
	ErrUnsupportedValue = errors.New("unsupported setting value")
	// ErrNilProvider indicates a nil Provider receiver.
	ErrNilProvider = errors.New("provider is nil")
	// ErrNoStoreFile indicates a persistence call on a provider without store file.
	ErrNoStoreFile = errors.New("provider has no store file")
)
