package extract

import (
	"regexp"
	"strings"
)

// MinTokenLength is the shortest token that survives tokenization.
const MinTokenLength = 2

var nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// Tokenize lowercases text, splits it on runs of non-alphanumeric
// characters, and drops empty tokens and tokens shorter than
// MinTokenLength. Queries and document text share this path so that a
// query term always normalizes the same way its indexed form did.
func Tokenize(text string) []string {
	parts := nonAlnum.Split(strings.ToLower(text), -1)
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if len(p) >= MinTokenLength {
			tokens = append(tokens, p)
		}
	}
	return tokens
}
