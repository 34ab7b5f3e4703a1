// Package extract turns raw HTML into the token multiset the indexer
// consumes: visible text is tokenized, then tokens inside emphasis and
// heading/anchor elements are counted extra.
package extract

import (
	"errors"
	"strings"

	"golang.org/x/net/html"
)

var (
	// ErrNotHTML is returned for content without a closing </html> tag.
	ErrNotHTML = errors.New("extract: content is not HTML")

	// ErrTooShort is returned for documents with fewer than the minimum
	// number of tokens.
	ErrTooShort = errors.New("extract: document below minimum token count")
)

// boldTags are the emphasis elements whose tokens gain one extra count.
var boldTags = map[string]bool{
	"b":      true,
	"strong": true,
}

// importantTags are the heading/anchor elements whose tokens gain two
// extra counts. Overlap with boldTags is intentional: a token inside
// <b> collects both boosts.
var importantTags = map[string]bool{
	"a":      true,
	"b":      true,
	"strong": true,
	"h1":     true,
	"h2":     true,
	"h3":     true,
}

// Extract parses content as HTML and returns its token multiset.
//
// Content that does not contain a literal "</html>" (case-insensitive) is
// rejected with ErrNotHTML. The base stream is the tokenized visible text;
// tokens occurring inside <b>/<strong> are appended once more and tokens
// inside <a>/<b>/<strong>/<h1>/<h2>/<h3> twice more, but only when the
// token also occurs in the base stream, so tag-only artifacts never enter
// the index. A result with fewer than minTokens tokens is rejected with
// ErrTooShort.
//
// Only counts are meaningful to callers; token order carries no contract.
func Extract(content string, minTokens int) ([]string, error) {
	if !strings.Contains(strings.ToLower(content), "</html>") {
		return nil, ErrNotHTML
	}

	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		// x/net/html is lenient; a parse error here means truncated or
		// binary junk, which is treated the same as non-HTML content.
		return nil, ErrNotHTML
	}

	var text strings.Builder
	collectText(doc, &text)
	tokens := Tokenize(collapseWhitespace(text.String()))

	base := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		base[t] = true
	}

	var boldText, importantText strings.Builder
	collectTagged(doc, boldTags, false, &boldText)
	collectTagged(doc, importantTags, false, &importantText)

	for _, t := range Tokenize(collapseWhitespace(boldText.String())) {
		if base[t] {
			tokens = append(tokens, t)
		}
	}
	for _, t := range Tokenize(collapseWhitespace(importantText.String())) {
		if base[t] {
			tokens = append(tokens, t, t)
		}
	}

	if len(tokens) < minTokens {
		return nil, ErrTooShort
	}
	return tokens, nil
}

// collectText appends every text node under n to out, separated by spaces.
func collectText(n *html.Node, out *strings.Builder) {
	if n.Type == html.TextNode {
		out.WriteString(n.Data)
		out.WriteByte(' ')
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, out)
	}
}

// collectTagged appends the text of every node lying under an element in
// tags. inside tracks whether an ancestor already matched, so nested
// matching elements do not double-collect their text.
func collectTagged(n *html.Node, tags map[string]bool, inside bool, out *strings.Builder) {
	if n.Type == html.TextNode {
		if inside {
			out.WriteString(n.Data)
			out.WriteByte(' ')
		}
		return
	}
	if n.Type == html.ElementNode && tags[n.Data] {
		inside = true
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectTagged(c, tags, inside, out)
	}
}

// collapseWhitespace replaces every whitespace run with a single space.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
