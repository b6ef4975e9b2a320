package trivia

import (
	"html"
	"strings"
)

// Normalize canonicalizes answer text for equality comparison: HTML
// entities are decoded, the result is lowercased, and every character
// outside [a-z0-9] is stripped. Two answers match iff their normalized
// forms are identical. The function is idempotent, which matters
// because option text and the stored canonical answer may have gone
// through independent entity-decoding passes.
func Normalize(s string) string {
	decoded := strings.ToLower(html.UnescapeString(strings.TrimSpace(s)))

	var b strings.Builder
	b.Grow(len(decoded))
	for _, r := range decoded {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// AnswersMatch reports whether a submitted option and the canonical
// answer are the same under normalization.
func AnswersMatch(submitted, canonical string) bool {
	return Normalize(submitted) == Normalize(canonical)
}
