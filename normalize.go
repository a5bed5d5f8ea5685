package grammar

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize brings s to Unicode NFC so that "ą" typed as a + combining
// ogonek and the precomposed letter are matched by the same rules.
// Rule files, lexicons and call arguments all go through it.
func Normalize(s string) string {
	if norm.NFC.IsNormalString(s) {
		return s
	}
	return norm.NFC.String(s)
}

// normalizeTags returns tags in NFC, reusing the slice when nothing changes.
func normalizeTags(tags []string) []string {
	for i, t := range tags {
		if !norm.NFC.IsNormalString(t) {
			out := make([]string, len(tags))
			copy(out, tags[:i])
			for j := i; j < len(tags); j++ {
				out[j] = norm.NFC.String(tags[j])
			}
			return out
		}
	}
	return tags
}

// stripComment drops everything from the first '#'.
func stripComment(line string) string {
	if idx := strings.IndexByte(line, '#'); idx >= 0 {
		return line[:idx]
	}
	return line
}
