// Package index builds, spills, merges, and scores the on-disk inverted
// index. Spill files and the final index are newline-delimited JSON: one
// {"token": [postings...]} object per line, addressed by byte offset.
package index

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
)

// Posting is one scored entry in a final postings list. On disk it is the
// three-element array [doc_id, raw_freq, tf_idf].
type Posting struct {
	DocID  int
	Freq   int
	Weight float64
}

// MarshalJSON renders the posting as its on-disk array form.
func (p Posting) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{p.DocID, p.Freq, p.Weight})
}

// UnmarshalJSON parses the on-disk array form.
func (p *Posting) UnmarshalJSON(data []byte) error {
	var arr []json.Number
	if err := json.Unmarshal(data, &arr); err != nil {
		return err
	}
	if len(arr) != 3 {
		return fmt.Errorf("posting: expected [doc_id, raw_freq, tf_idf], got %d elements", len(arr))
	}
	docID, err := arr[0].Int64()
	if err != nil {
		return fmt.Errorf("posting doc_id: %w", err)
	}
	freq, err := arr[1].Int64()
	if err != nil {
		return fmt.Errorf("posting raw_freq: %w", err)
	}
	weight, err := arr[2].Float64()
	if err != nil {
		return fmt.Errorf("posting tf_idf: %w", err)
	}
	p.DocID = int(docID)
	p.Freq = int(freq)
	p.Weight = weight
	return nil
}

// partialPosting is one unscored (doc_id, raw_freq) entry in a spill
// file, serialized as the two-element array [doc_id, raw_freq].
type partialPosting struct {
	DocID int
	Freq  int
}

func (p partialPosting) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{p.DocID, p.Freq})
}

func (p *partialPosting) UnmarshalJSON(data []byte) error {
	var arr [2]int
	if err := json.Unmarshal(data, &arr); err != nil {
		return err
	}
	p.DocID = arr[0]
	p.Freq = arr[1]
	return nil
}

// roundWeight rounds a tf-idf weight half-to-even at five decimals, the
// precision sealed into the final index.
func roundWeight(w float64) float64 {
	return math.RoundToEven(w*1e5) / 1e5
}

// readLineAt reads the single newline-terminated record starting at off.
// Records are written line-sized, so the byte at off is always the first
// byte of a record.
func readLineAt(f *os.File, off int64) ([]byte, error) {
	var line []byte
	buf := make([]byte, 4096)
	for {
		n, err := f.ReadAt(buf, off)
		if n > 0 {
			for i := 0; i < n; i++ {
				if buf[i] == '\n' {
					return append(line, buf[:i]...), nil
				}
			}
			line = append(line, buf[:n]...)
			off += int64(n)
		}
		if err != nil {
			if errors.Is(err, io.EOF) && len(line) > 0 {
				return line, nil
			}
			return nil, err
		}
	}
}

// ReadPostingsAt reads and parses the final-index record at off, returning
// its token and scored postings.
func ReadPostingsAt(f *os.File, off int64) (string, []Posting, error) {
	line, err := readLineAt(f, off)
	if err != nil {
		return "", nil, fmt.Errorf("reading record at offset %d: %w", off, err)
	}
	var rec map[string][]Posting
	if err := json.Unmarshal(line, &rec); err != nil {
		return "", nil, fmt.Errorf("parsing record at offset %d: %w", off, err)
	}
	for token, postings := range rec {
		return token, postings, nil
	}
	return "", nil, fmt.Errorf("empty record at offset %d", off)
}
