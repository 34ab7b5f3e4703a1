// Package stem normalizes tokens into the index key space by composing a
// Porter stemmer with an English Snowball stemmer, in that order.
package stem

import (
	"github.com/blevesearch/go-porterstemmer"
	"github.com/kljensen/snowball"
)

// Token stems a single token: Porter first, then English Snowball. If the
// Snowball stage errors the Porter result stands.
func Token(token string) string {
	stemmed := porterstemmer.StemString(token)
	out, err := snowball.Stem(stemmed, "english", false)
	if err != nil {
		return stemmed
	}
	return out
}

// Tokens stems every token in the stream, preserving order and length.
func Tokens(tokens []string) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = Token(t)
	}
	return out
}
