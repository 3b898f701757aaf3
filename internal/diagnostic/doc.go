// Package diagnostic provides structured warnings and per-class
// progress notes for the shape generator. Fatal conditions are not
// diagnostics; the engine returns them as errors.
//
// Key capabilities:
//   - Unresolved relation-target warnings
//   - Skipped-declaration notices
//   - Per-class generation summaries
package diagnostic
