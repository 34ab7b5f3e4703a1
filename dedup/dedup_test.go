package dedup

import "testing"

func TestChecksum(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		want   int64
	}{
		{name: "empty", tokens: nil, want: 0},
		// 'a'=97, 'b'=98
		{name: "single token", tokens: []string{"ab"}, want: 195},
		{name: "two tokens", tokens: []string{"ab", "ab"}, want: 390},
		{name: "order independent", tokens: []string{"ba"}, want: 195},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Checksum(tt.tokens); got != tt.want {
				t.Errorf("Checksum(%v) = %d, want %d", tt.tokens, got, tt.want)
			}
		})
	}
}

func TestFingerprint(t *testing.T) {
	// hash("ab") = 195 = 0b11000011: bits 0, 1, 6, 7. With frequency 1 the
	// accumulators render as a binary-looking string.
	got := Fingerprint([]string{"ab"})
	want := "1100001100000000"
	if got != want {
		t.Errorf("Fingerprint([ab]) = %q, want %q", got, want)
	}

	// Frequency 3 renders each set accumulator as '3': the string is no
	// longer a bitmap, matching the sealed format.
	got = Fingerprint([]string{"ab", "ab", "ab"})
	want = "3300003300000000"
	if got != want {
		t.Errorf("Fingerprint([ab x3]) = %q, want %q", got, want)
	}
}

func TestFingerprintDeterministic(t *testing.T) {
	tokens := []string{"cat", "dog", "cat", "fish"}
	if a, b := Fingerprint(tokens), Fingerprint(tokens); a != b {
		t.Errorf("Fingerprint unstable: %q vs %q", a, b)
	}
}

func TestNeighbors(t *testing.T) {
	got := neighbors("101")
	want := map[string]bool{"001": true, "111": true, "100": true}
	if len(got) != len(want) {
		t.Fatalf("neighbors(101) = %v, want %d flips", got, len(want))
	}
	for _, n := range got {
		if !want[n] {
			t.Errorf("unexpected neighbor %q", n)
		}
	}
}

func TestNeighborsSkipsNonBinaryDigits(t *testing.T) {
	// '3' has no flip; only the zeros and ones flip.
	got := neighbors("301")
	want := map[string]bool{"311": true, "300": true}
	if len(got) != len(want) {
		t.Fatalf("neighbors(301) = %v, want %d flips", got, len(want))
	}
	for _, n := range got {
		if !want[n] {
			t.Errorf("unexpected neighbor %q", n)
		}
	}
}

func TestCheckExactDuplicate(t *testing.T) {
	d := NewDetector()

	status, _, _ := d.Check([]string{"ab", "cd"})
	if status != Unique {
		t.Fatalf("first document: got %v, want Unique", status)
	}
	status, _, _ = d.Check([]string{"ab", "cd"})
	if status != ExactDuplicate {
		t.Errorf("identical document: got %v, want ExactDuplicate", status)
	}
	// Same checksum via reordered characters is still an exact duplicate.
	status, _, _ = d.Check([]string{"ba", "dc"})
	if status != ExactDuplicate {
		t.Errorf("checksum-equal document: got %v, want ExactDuplicate", status)
	}
}

func TestCheckNearDuplicate(t *testing.T) {
	d := NewDetector()

	// hash("ab") = 195: fingerprint 1100001100000000.
	if status, _, _ := d.Check([]string{"ab"}); status != Unique {
		t.Fatalf("first document not unique: %v", status)
	}

	// A single token hashing to 195 + 2^15 = 32963 yields the same
	// fingerprint with only bit 15 flipped, and a different checksum.
	flipped := string(rune(32963))
	if fp := Fingerprint([]string{flipped}); fp != "1100001100000001" {
		t.Fatalf("constructed fingerprint = %q, want 1100001100000001", fp)
	}
	status, _, _ := d.Check([]string{flipped})
	if status != NearDuplicate {
		t.Errorf("Hamming-1 document: got %v, want NearDuplicate", status)
	}
}

func TestCheckNearDuplicateNotRecorded(t *testing.T) {
	d := NewDetector()
	d.Check([]string{"ab"})

	flipped := string(rune(32963))
	d.Check([]string{flipped}) // rejected, must not be recorded

	// A document identical to the rejected one is still judged against
	// the accepted fingerprints only, so it is again a near duplicate,
	// not an exact one.
	status, _, _ := d.Check([]string{flipped})
	if status != NearDuplicate {
		t.Errorf("re-submitted rejected document: got %v, want NearDuplicate", status)
	}
}

func TestCheckDistinctDocuments(t *testing.T) {
	d := NewDetector()
	docs := [][]string{
		{"alpha", "beta", "gamma"},
		{"delta", "epsilon", "zeta"},
		{"eta", "theta", "iota", "kappa"},
	}
	for i, doc := range docs {
		if status, _, _ := d.Check(doc); status != Unique {
			t.Errorf("document %d: got %v, want Unique", i, status)
		}
	}
}
