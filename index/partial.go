package index

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// PartialWriter accumulates postings in memory and spills them to
// numbered newline-delimited JSON files when the distinct-token count
// reaches the threshold. It is build-phase state only.
type PartialWriter struct {
	dir       string
	threshold int

	postings map[string][]partialPosting
	spills   []string                    // spill filenames in ordinal order
	offsets  map[string]map[string]int64 // filename -> token -> byte offset
}

// NewPartialWriter returns a writer spilling into dir at the given
// distinct-token threshold.
func NewPartialWriter(dir string, threshold int) *PartialWriter {
	return &PartialWriter{
		dir:       dir,
		threshold: threshold,
		postings:  make(map[string][]partialPosting),
		offsets:   make(map[string]map[string]int64),
	}
}

// Add records one document's stemmed token stream under docID, then
// spills if the distinct-token count reached the threshold. Documents are
// added in doc-id order and each exactly once, so a token's posting for
// the current document is always the last element of its list.
func (w *PartialWriter) Add(docID int, stems []string) error {
	for _, s := range stems {
		list := w.postings[s]
		if n := len(list); n > 0 && list[n-1].DocID == docID {
			list[n-1].Freq++
			continue
		}
		w.postings[s] = append(list, partialPosting{DocID: docID, Freq: 1})
	}

	if len(w.postings) >= w.threshold {
		return w.spill()
	}
	return nil
}

// Flush spills whatever remains in memory. Call once after the corpus is
// fully consumed.
func (w *PartialWriter) Flush() error {
	if len(w.postings) == 0 {
		return nil
	}
	return w.spill()
}

// Spills returns the spill filenames written so far, in ordinal order.
func (w *PartialWriter) Spills() []string { return w.spills }

// Offsets returns the per-spill token offset maps.
func (w *PartialWriter) Offsets() map[string]map[string]int64 { return w.offsets }

// Dir returns the directory spill files are written into.
func (w *PartialWriter) Dir() string { return w.dir }

// spill writes the in-memory postings as one JSON object per line to the
// next ordinal file, records each line's byte offset, and clears memory.
// Any error is fatal to the build: a torn spill cannot be trusted.
func (w *PartialWriter) spill() error {
	name := fmt.Sprintf("%d.json", len(w.spills))
	path := filepath.Join(w.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating spill %s: %w", name, err)
	}

	locs := make(map[string]int64, len(w.postings))
	var off int64
	for token, list := range w.postings {
		line, err := json.Marshal(map[string][]partialPosting{token: list})
		if err != nil {
			f.Close()
			return fmt.Errorf("encoding spill record %q: %w", token, err)
		}
		line = append(line, '\n')
		n, err := f.Write(line)
		if err != nil {
			f.Close()
			return fmt.Errorf("writing spill %s: %w", name, err)
		}
		locs[token] = off
		off += int64(n)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("closing spill %s: %w", name, err)
	}

	w.offsets[name] = locs
	w.spills = append(w.spills, name)
	w.postings = make(map[string][]partialPosting)

	slog.Info("index: spilled partial index",
		"file", name, "tokens", len(locs), "bytes", off)
	return nil
}
