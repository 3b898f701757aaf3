// Package emit renders resolved shape models into TypeScript source files.
//
// Rendering uses text/template for line-stable output that diffs
// cleanly between runs.
//
// Two layouts:
//   - Aggregate: every declaration in one file, enums first
//   - Per-class: one file per declaration, type-only imports between
//     them, and an index barrel re-exporting everything
package emit
