// Package watch regenerates output whenever input sources change.
//
// Filesystem watches are not recursive, so every directory under the
// input root registers individually. Change bursts are debounced: one
// regeneration runs after the burst settles, not one per event.
package watch
