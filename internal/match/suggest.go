package match

import "strings"

// MinSuggestScore is the similarity a candidate must reach before it
// is offered as a suggestion. Below this bar a hint would be noise.
const MinSuggestScore = 0.7

// Suggest returns the candidate closest to name, provided the
// similarity of their normalized forms reaches MinSuggestScore. Ties
// keep the earliest candidate, so callers passing names in a stable
// order get deterministic suggestions.
func Suggest(name string, candidates []string) (string, bool) {
	var (
		best      string
		bestScore float64
	)

	norm := normalizeIdent(name)

	for _, candidate := range candidates {
		if score := Similarity(norm, normalizeIdent(candidate)); score > bestScore {
			best, bestScore = candidate, score
		}
	}

	if bestScore < MinSuggestScore {
		return "", false
	}

	return best, true
}

// normalizeIdent folds an identifier for comparison: lowercased with
// the common separators removed, so OrderItem, order_item, and
// order-item all compare equal.
func normalizeIdent(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range strings.ToLower(s) {
		if r == '_' || r == '-' || r == ' ' {
			continue
		}

		b.WriteRune(r)
	}

	return b.String()
}
