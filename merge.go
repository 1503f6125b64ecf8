// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/sitesettings

package sitesettings

// MergeRecords overlays records in input order; later records override earlier keys.
//
// The result never aliases input maps, nested values included.
func MergeRecords(layers ...Record) Record {
	total := 0
	for _, layer := range layers {
		total += len(layer)
	}

	out := make(Record, total)
	for _, layer := range layers {
		overlayRecord(out, layer)
	}

	return out
}

// MergeStores unions stores preserving input order.
//
// Entries of every store are replayed in their write order, so for a pattern present
// in several stores later stores win per key and become the later write.
func MergeStores(stores ...*Store) *Store {
	total := 0
	for _, s := range stores {
		total += s.Len()
	}

	out := &Store{entries: make(map[string]*storeEntry, total)}
	for _, s := range stores {
		for _, e := range s.writeOrder() {
			out.mergeInPlace(e.pattern.Source, e.record)
		}
	}

	return out
}

// overlayRecord copies every key of src into dst.
func overlayRecord(dst Record, src Record) {
	for k, v := range src {
		dst[k] = cloneValue(v)
	}
}
