package extract

import (
	"errors"
	"strings"
	"testing"
)

// counts folds a token stream into occurrence counts.
func counts(tokens []string) map[string]int {
	m := make(map[string]int)
	for _, t := range tokens {
		m[t]++
	}
	return m
}

func TestExtractRejectsNonHTML(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "plain text", content: "just some plain text with no markup"},
		{name: "empty", content: ""},
		{name: "open tag only", content: "<html><body>truncated page"},
		{name: "json", content: `{"not": "html"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Extract(tt.content, 1); !errors.Is(err, ErrNotHTML) {
				t.Errorf("Extract(%q) error = %v, want ErrNotHTML", tt.name, err)
			}
		})
	}
}

func TestExtractClosingTagCaseInsensitive(t *testing.T) {
	if _, err := Extract("<HTML><body>some tokens here</body></HTML>", 1); err != nil {
		t.Fatalf("uppercase </HTML> should pass the gate: %v", err)
	}
}

func TestExtractTooShort(t *testing.T) {
	content := "<html><body>only five tokens in here</body></html>"
	if _, err := Extract(content, 100); !errors.Is(err, ErrTooShort) {
		t.Errorf("expected ErrTooShort, got %v", err)
	}
	// The same document passes with the gate at its exact token count.
	tokens, err := Extract(content, 5)
	if err != nil {
		t.Fatalf("expected acceptance at exact minimum: %v", err)
	}
	if len(tokens) != 5 {
		t.Errorf("expected 5 tokens, got %d: %v", len(tokens), tokens)
	}
}

func TestExtractBaseStream(t *testing.T) {
	content := "<html><body><p>The quick  brown\nfox, the quick fox!</p></body></html>"
	tokens, err := Extract(content, 1)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	got := counts(tokens)
	want := map[string]int{"the": 2, "quick": 2, "brown": 1, "fox": 2}
	for tok, n := range want {
		if got[tok] != n {
			t.Errorf("token %q: got %d occurrences, want %d", tok, got[tok], n)
		}
	}
}

func TestExtractStructuralBoosts(t *testing.T) {
	content := `<html><body>
<p>alpha beta gamma delta</p>
<b>beta</b>
<h1>gamma</h1>
<a href="/x">zeta</a>
</body></html>`

	tokens, err := Extract(content, 1)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	got := counts(tokens)

	// Base stream (all visible text): alpha beta gamma delta beta gamma zeta.
	// Boosts: beta is bold (+1) and bold is also in the important set (+2);
	// gamma is a heading (+2); zeta is an anchor (+2).
	want := map[string]int{
		"alpha": 1,
		"beta":  2 + 1 + 2,
		"gamma": 2 + 2,
		"delta": 1,
		"zeta":  1 + 2,
	}
	for tok, n := range want {
		if got[tok] != n {
			t.Errorf("token %q: got %d occurrences, want %d", tok, got[tok], n)
		}
	}
}

func TestExtractNestedBoldInHeading(t *testing.T) {
	content := `<html><body><p>omega filler</p><h2><strong>omega</strong></h2></body></html>`
	tokens, err := Extract(content, 1)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	// omega: 2 base occurrences (body + heading text), +1 bold, +2 important.
	if got := counts(tokens)["omega"]; got != 5 {
		t.Errorf("omega: got %d occurrences, want 5", got)
	}
}

func TestExtractOrderIrrelevantButCountsStable(t *testing.T) {
	content := "<html><body><h3>cats and dogs</h3><p>cats chase dogs daily</p></body></html>"
	a, err := Extract(content, 1)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	b, _ := Extract(content, 1)
	ca, cb := counts(a), counts(b)
	for tok, n := range ca {
		if cb[tok] != n {
			t.Errorf("unstable count for %q: %d vs %d", tok, n, cb[tok])
		}
	}
}

func TestExtractSingleCharTokensDropped(t *testing.T) {
	content := "<html><body><p>a b c real words remain</p></body></html>"
	tokens, err := Extract(content, 1)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	for _, tok := range tokens {
		if len(tok) < MinTokenLength {
			t.Errorf("token %q shorter than minimum survived", tok)
		}
	}
	if !strings.Contains(strings.Join(tokens, " "), "real") {
		t.Errorf("expected real tokens to survive, got %v", tokens)
	}
}
