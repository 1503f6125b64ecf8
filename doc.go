// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/sitesettings

// Package sitesettings implements a per-site settings store keyed by URL-like host patterns.
//
// Each pattern owns a record of opaque key/value settings. Resolving a URL collects every
// pattern that matches it and overlays their records from the least to the most specific,
// so a key takes the value of the most specific pattern that defines it.
//
// Supported pattern forms:
//   - `*` matches everything
//   - `https://*` any host for one protocol
//   - `https://www.brave.com` exact host, any port
//   - `https://www.brave.com:*` exact host, explicit any port
//   - `https://www.brave.com:8080` exact host and port
//   - `https://*.brave.com` domain and all of its subdomains
//   - `https?://www.brave.com` http or https
//   - `https://www.brave.com/path?q#h` exact URL only, default port unless one is given
//
// Other shapes, such as `https://*/x` or `https://*:8080`, are stored but never match.
//
// Basic flow:
//   - merge settings (`(*Store).MergeSetting`), every write returns a new immutable snapshot
//   - resolve for a concrete URL (`ResolveForURL`)
//   - resolve for a literal pattern with less specific ancestors (`ResolveForHostPattern`)
//   - optionally compile a snapshot once (`NewMatcher`) for repeated resolution
//
// For long-lived owners, use `Provider`:
//   - holds the current snapshot and serializes writers
//   - caches per-URL results until the next write
//   - optionally persists every write to a JSON/YAML/TOML store file (`LoadStoreFile` / `SaveStoreFile`)
package sitesettings
