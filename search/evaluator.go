// Package search evaluates free-text queries against a sealed index:
// conjunctive matching over seek-read postings, tf-idf ranking, and URL
// de-fragmentation.
package search

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/arapinan/webindex/extract"
	"github.com/arapinan/webindex/index"
	"github.com/arapinan/webindex/stem"
)

// Result is the outcome of one query evaluation.
type Result struct {
	// URLs is the ranked, de-fragmented result list, at most the
	// configured limit.
	URLs []string `json:"urls"`

	// ShownQuery is the surface form of the accepted terms, joined by
	// spaces. The UI displays it as `Showing results for "..."`.
	ShownQuery string `json:"shown_query"`

	// Exact is false when any query term was dropped for being absent
	// from the index.
	Exact bool `json:"exact"`

	// ElapsedMs is the wall-clock evaluation time, filled by the
	// front-end adapter.
	ElapsedMs int64 `json:"elapsed_ms"`
}

// Evaluator answers queries against the sealed artifacts. The loaded maps
// are immutable; the final-index handle is seek-read per term, so an
// Evaluator must not be shared across goroutines.
type Evaluator struct {
	offsets map[string]int64
	urls    map[int]string
	f       *os.File
	limit   int
}

// Open loads the offset and URL maps and opens the final index for
// random access. limit caps the number of returned URLs.
func Open(indexPath, offsetMapPath, urlMapPath string, limit int) (*Evaluator, error) {
	offsets, err := index.LoadOffsetMap(offsetMapPath)
	if err != nil {
		return nil, fmt.Errorf("loading offset map: %w", err)
	}
	urls, err := index.LoadURLMap(urlMapPath)
	if err != nil {
		return nil, fmt.Errorf("loading url map: %w", err)
	}
	f, err := os.Open(indexPath)
	if err != nil {
		return nil, fmt.Errorf("opening final index: %w", err)
	}
	return &Evaluator{offsets: offsets, urls: urls, f: f, limit: limit}, nil
}

// Close releases the final-index handle.
func (e *Evaluator) Close() error {
	if e.f == nil {
		return nil
	}
	err := e.f.Close()
	e.f = nil
	return err
}

// DocCount reports how many documents the loaded URL map covers.
func (e *Evaluator) DocCount() int { return len(e.urls) }

// TokenCount reports how many tokens the loaded offset map covers.
func (e *Evaluator) TokenCount() int { return len(e.offsets) }

// Search evaluates a query.
//
// The query is tokenized exactly like document text and stemmed into the
// index key space, keeping each stem paired with the surface token it
// came from. Stems absent from the offset map are dropped and flip Exact
// to false; if nothing remains the result is empty. Surviving terms are
// seek-read from the final index, intersected (a document must contain
// every accepted term), and ranked by summed tf-idf, ties keeping the
// first term's postings order. Result URLs are stripped of fragments and
// de-duplicated.
func (e *Evaluator) Search(query string) (Result, error) {
	if e.f == nil {
		return Result{}, fmt.Errorf("search: evaluator is closed")
	}

	surface := extract.Tokenize(query)
	stems := stem.Tokens(surface)

	surfaceOf := make(map[string]string, len(stems))
	for i, s := range stems {
		if _, ok := surfaceOf[s]; !ok {
			surfaceOf[s] = surface[i]
		}
	}

	exact := true
	accepted := make([]string, 0, len(stems))
	for _, s := range stems {
		if _, ok := e.offsets[s]; ok {
			accepted = append(accepted, s)
		} else {
			exact = false
		}
	}
	if len(accepted) == 0 {
		return Result{Exact: false}, nil
	}

	shown := make([]string, len(accepted))
	for i, s := range accepted {
		shown[i] = surfaceOf[s]
	}

	// Gather postings per accepted term, counting per-document term hits
	// and summing weights. Candidate order is first appearance in the
	// first term's postings, which fixes the tie-break below.
	var order []int
	hits := make(map[int]int)
	scores := make(map[int]float64)
	for _, term := range accepted {
		_, postings, err := index.ReadPostingsAt(e.f, e.offsets[term])
		if err != nil {
			return Result{}, fmt.Errorf("search: term %q: %w", term, err)
		}
		for _, p := range postings {
			if hits[p.DocID] == 0 {
				order = append(order, p.DocID)
			}
			hits[p.DocID]++
			scores[p.DocID] += p.Weight
		}
	}

	// Conjunctive AND: keep documents hit by every accepted term.
	var docs []int
	for _, id := range order {
		if hits[id] == len(accepted) {
			docs = append(docs, id)
		}
	}

	sort.SliceStable(docs, func(i, j int) bool {
		return scores[docs[i]] > scores[docs[j]]
	})

	var urls []string
	seen := make(map[string]bool)
	for _, id := range docs {
		u := stripFragment(e.urls[id])
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		urls = append(urls, u)
		if len(urls) == e.limit {
			break
		}
	}

	return Result{
		URLs:       urls,
		ShownQuery: strings.Join(shown, " "),
		Exact:      exact,
	}, nil
}

// stripFragment removes everything from '#' onward.
func stripFragment(u string) string {
	if i := strings.IndexByte(u, '#'); i >= 0 {
		return u[:i]
	}
	return u
}
