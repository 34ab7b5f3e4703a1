package webindex

import (
	"fmt"
	"os"
	"time"

	"github.com/arapinan/webindex/search"
)

// Searcher is the query-phase facade: immutable loaded maps plus one
// final-index handle. Open one Searcher per goroutine; the loaded maps
// may be shared but the handle's seek+read is not.
type Searcher struct {
	eval   *search.Evaluator
	closed bool
}

// Open loads the sealed artifacts referenced by cfg and returns a ready
// Searcher.
func Open(cfg Config) (*Searcher, error) {
	cfg = cfg.withDefaults()

	for _, name := range []string{FinalIndexFile, OffsetMapFile, URLMapFile} {
		if _, err := os.Stat(cfg.artifactPath(name)); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrMissingArtifact, cfg.artifactPath(name))
		}
	}

	eval, err := search.Open(
		cfg.artifactPath(FinalIndexFile),
		cfg.artifactPath(OffsetMapFile),
		cfg.artifactPath(URLMapFile),
		cfg.ResultLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingArtifact, err)
	}
	return &Searcher{eval: eval}, nil
}

// Search evaluates one query and reports the wall-clock milliseconds the
// evaluation took alongside the result.
func (s *Searcher) Search(query string) (search.Result, error) {
	if s.closed {
		return search.Result{}, ErrSearcherClosed
	}
	start := time.Now()
	res, err := s.eval.Search(query)
	if err != nil {
		return search.Result{}, err
	}
	res.ElapsedMs = time.Since(start).Milliseconds()
	return res, nil
}

// DocCount reports the number of indexed documents.
func (s *Searcher) DocCount() int { return s.eval.DocCount() }

// TokenCount reports the number of distinct indexed tokens.
func (s *Searcher) TokenCount() int { return s.eval.TokenCount() }

// Close releases the final-index handle.
func (s *Searcher) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.eval.Close()
}
