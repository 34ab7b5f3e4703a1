package index

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
)

// Merge unions the spill files into one final postings file with tf-idf
// weights, returning the token -> byte offset map for the result.
//
// For every token in wordSet, each spill holding the token is seek-read
// at the recorded offset and its (doc_id, raw_freq) pairs collected in
// spill order; doc-id sets across spills are disjoint. With df the number
// of collected postings, each pair scores
//
//	tf_idf = round(raw_freq/doc_len * ln(totalDocs/df), 5)
//
// rounded half-to-even. A token present in every document scores 0.
func Merge(
	wordSet map[string]struct{},
	w *PartialWriter,
	docLen map[int]int,
	totalDocs int,
	outPath string,
) (map[string]int64, error) {
	spills := w.Spills()
	files := make([]*os.File, len(spills))
	for i, name := range spills {
		f, err := os.Open(filepath.Join(w.Dir(), name))
		if err != nil {
			return nil, fmt.Errorf("opening spill %s: %w", name, err)
		}
		files[i] = f
		defer f.Close()
	}

	out, err := os.Create(outPath)
	if err != nil {
		return nil, fmt.Errorf("creating final index: %w", err)
	}

	combined := make(map[string]int64, len(wordSet))
	var off int64
	for token := range wordSet {
		var collected []partialPosting
		for i, name := range spills {
			loc, ok := w.Offsets()[name][token]
			if !ok {
				continue
			}
			line, err := readLineAt(files[i], loc)
			if err != nil {
				out.Close()
				return nil, fmt.Errorf("reading %s at %d: %w", name, loc, err)
			}
			var rec map[string][]partialPosting
			if err := json.Unmarshal(line, &rec); err != nil {
				out.Close()
				return nil, fmt.Errorf("parsing %s at %d: %w", name, loc, err)
			}
			collected = append(collected, rec[token]...)
		}

		df := len(collected)
		scored := make([]Posting, df)
		for i, pp := range collected {
			tf := float64(pp.Freq) / float64(docLen[pp.DocID])
			idf := math.Log(float64(totalDocs) / float64(df))
			scored[i] = Posting{
				DocID:  pp.DocID,
				Freq:   pp.Freq,
				Weight: roundWeight(tf * idf),
			}
		}

		line, err := json.Marshal(map[string][]Posting{token: scored})
		if err != nil {
			out.Close()
			return nil, fmt.Errorf("encoding final record %q: %w", token, err)
		}
		line = append(line, '\n')
		n, err := out.Write(line)
		if err != nil {
			out.Close()
			return nil, fmt.Errorf("writing final index: %w", err)
		}
		combined[token] = off
		off += int64(n)
	}

	if err := out.Close(); err != nil {
		return nil, fmt.Errorf("closing final index: %w", err)
	}

	slog.Info("index: merge complete",
		"tokens", len(combined), "spills", len(spills), "bytes", off)
	return combined, nil
}
