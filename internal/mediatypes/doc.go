// Package mediatypes classifies filenames for the gallery indexer.
//
// This package exists as a dependency-free foundation that can be imported by other
// packages without creating import cycles.
//
// # Extension Detection
//
// Only raster image formats count as media. Use IsMedia on a bare filename:
//
//	if mediatypes.IsMedia(entry.Name()) {
//	    // candidate for a leaf's media list or a cover
//	}
//
// The comparison is case-insensitive, so "IMG_0001.JPG" qualifies.
//
// # MIME Types
//
// GetMimeType is used by the CLI when it reports covers:
//
//	mimeType := mediatypes.GetMimeType(mediatypes.Ext(name)) // e.g., "image/jpeg"
package mediatypes
