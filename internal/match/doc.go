// Package match scores identifier similarity for diagnostic
// suggestions. Relation targets that resolve to nothing are compared
// against the known class names so a likely typo can be called out in
// the warning.
//
// Key functions:
//   - Levenshtein: computes edit distance between strings
//   - Similarity: normalized similarity score between two strings
//   - Suggest: picks the closest known name above the confidence bar
package match
