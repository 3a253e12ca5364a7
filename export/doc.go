// Package export serializes a packed cage to external formats: JSON for
// the HTTP boundary layer, and a top-down SVG footprint for visual
// debugging of a packing run.
package export
