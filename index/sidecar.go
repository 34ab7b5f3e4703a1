package index

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// Diagnostics summarizes a build for the plain-text results file.
type Diagnostics struct {
	DocsProcessed int
	UniqueTokens  int
	Oversized     int
	Undersized    int
}

// WriteOffsetMap persists the token -> byte offset map of the final index.
func WriteOffsetMap(path string, offsets map[string]int64) error {
	return writeJSON(path, offsets)
}

// LoadOffsetMap reads back a persisted offset map.
func LoadOffsetMap(path string) (map[string]int64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	offsets := make(map[string]int64)
	if err := json.Unmarshal(data, &offsets); err != nil {
		return nil, fmt.Errorf("parsing offset map %s: %w", path, err)
	}
	return offsets, nil
}

// WriteURLMap persists the doc_id -> url map, keyed by the decimal doc id.
func WriteURLMap(path string, urls map[int]string) error {
	keyed := make(map[string]string, len(urls))
	for id, u := range urls {
		keyed[strconv.Itoa(id)] = u
	}
	return writeJSON(path, keyed)
}

// LoadURLMap reads back a persisted URL map.
func LoadURLMap(path string) (map[int]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	keyed := make(map[string]string)
	if err := json.Unmarshal(data, &keyed); err != nil {
		return nil, fmt.Errorf("parsing url map %s: %w", path, err)
	}
	urls := make(map[int]string, len(keyed))
	for k, u := range keyed {
		id, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("url map %s: non-numeric doc id %q", path, k)
		}
		urls[id] = u
	}
	return urls, nil
}

// WriteSpillOffsets persists the per-spill offset maps as a debug
// artifact alongside the spill files.
func WriteSpillOffsets(path string, offsets map[string]map[string]int64) error {
	return writeJSON(path, offsets)
}

// WriteResults writes the plain-text diagnostics file.
func WriteResults(path string, d Diagnostics) error {
	body := "number of documents processed: " + strconv.Itoa(d.DocsProcessed) + "\n" +
		"number of unique words: " + strconv.Itoa(d.UniqueTokens) + "\n" +
		"number of oversized files: " + strconv.Itoa(d.Oversized) + "\n" +
		"number of undersized files: " + strconv.Itoa(d.Undersized) + "\n"
	return os.WriteFile(path, []byte(body), 0o644)
}

func writeJSON(path string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
