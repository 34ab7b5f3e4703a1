// Package webindex builds a persistent tf-idf inverted index over a
// crawled web corpus and answers ranked free-text queries against it.
//
// The build phase streams JSON-wrapped HTML documents through extraction,
// stemming, and duplicate detection, accumulating postings that spill to
// disk and are merged into one seek-indexed postings file plus its
// sidecar maps. The query phase loads the sidecars and evaluates
// conjunctive tf-idf queries by random access into the sealed index.
package webindex

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/arapinan/webindex/catalog"
	"github.com/arapinan/webindex/corpus"
	"github.com/arapinan/webindex/dedup"
	"github.com/arapinan/webindex/extract"
	"github.com/arapinan/webindex/index"
	"github.com/arapinan/webindex/stem"
)

// Stats summarizes one completed build.
type Stats struct {
	DocsProcessed int            `json:"docs_processed"` // documents that passed the HTML gate
	DocsIndexed   int            `json:"docs_indexed"`
	Rejected      map[string]int `json:"rejected"` // rejection reason -> count
	UniqueTokens  int            `json:"unique_tokens"`
	Spills        int            `json:"spills"`
	Oversized     int            `json:"oversized"`
	Undersized    int            `json:"undersized"`
	Elapsed       time.Duration  `json:"elapsed"`
}

// Builder owns all build-phase state: the duplicate detector, the
// in-memory partial index, and the growing document maps. A Builder runs
// once; after the artifacts are sealed it is consumed.
type Builder struct {
	cfg      Config
	detector *dedup.Detector
	wordSet  map[string]struct{}
	urls     map[int]string
	docLen   map[int]int
	nextID   int
	consumed bool
}

// NewBuilder returns a Builder for cfg. Zero-valued Config fields take
// their defaults.
func NewBuilder(cfg Config) *Builder {
	return &Builder{
		cfg:      cfg.withDefaults(),
		detector: dedup.NewDetector(),
		wordSet:  make(map[string]struct{}),
		urls:     make(map[int]string),
		docLen:   make(map[int]int),
	}
}

// Run executes the whole build pipeline: walk the corpus, tokenize and
// stem each document, drop duplicates, accumulate and spill postings,
// merge the spills into the final index, and seal the sidecar artifacts.
// Corpus-level problems are logged and skipped; spill or merge I/O
// failures abort the build and nothing on disk should be trusted.
func (b *Builder) Run(ctx context.Context) (*Stats, error) {
	if b.consumed {
		return nil, ErrBuilderConsumed
	}
	start := time.Now()
	cfg := b.cfg

	if _, err := os.Stat(cfg.CorpusDir); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCorpusNotFound, cfg.CorpusDir)
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	var cat *catalog.Store
	var buildID int64
	if cfg.CatalogPath != "" {
		var err error
		cat, err = catalog.New(cfg.CatalogPath)
		if err != nil {
			return nil, fmt.Errorf("opening catalog: %w", err)
		}
		defer cat.Close()
		if buildID, err = cat.StartBuild(ctx, cfg.CorpusDir); err != nil {
			return nil, err
		}
	}

	reader := corpus.NewReader(cfg.CorpusDir, cfg.MinFileSize, cfg.MaxFileSize)
	partial := index.NewPartialWriter(cfg.OutputDir, cfg.PartialThreshold)
	stats := &Stats{Rejected: make(map[string]int)}

	slog.Info("build: starting", "corpus", cfg.CorpusDir, "output", cfg.OutputDir,
		"partial_threshold", cfg.PartialThreshold)

	record := func(doc corpus.Document, rec catalog.DocumentRecord) {
		if cat == nil {
			return
		}
		rec.BuildID = buildID
		rec.Path = doc.Path
		rec.URL = doc.URL
		rec.SizeBytes = int64(len(doc.HTML))
		if err := cat.RecordDocument(ctx, rec); err != nil {
			slog.Warn("build: catalog record failed", "path", doc.Path, "error", err)
		}
	}

	err := reader.Walk(ctx, func(doc corpus.Document) error {
		tokens, err := extract.Extract(doc.HTML, cfg.MinDocTokens)
		switch {
		case errors.Is(err, extract.ErrNotHTML):
			stats.Rejected[catalog.StatusNonHTML]++
			record(doc, catalog.DocumentRecord{Status: catalog.StatusNonHTML})
			return nil
		case errors.Is(err, extract.ErrTooShort):
			stats.DocsProcessed++
			stats.Rejected[catalog.StatusTooShort]++
			record(doc, catalog.DocumentRecord{Status: catalog.StatusTooShort})
			return nil
		case err != nil:
			slog.Warn("build: extraction failed, skipping", "path", doc.Path, "error", err)
			return nil
		}
		stats.DocsProcessed++

		stems := stem.Tokens(tokens)
		status, sum, fp := b.detector.Check(stems)
		if status != dedup.Unique {
			stats.Rejected[status.String()]++
			slog.Debug("build: duplicate dropped", "path", doc.Path, "status", status.String())
			record(doc, catalog.DocumentRecord{
				Status: status.String(), TokenCount: len(stems), Checksum: sum, Fingerprint: fp,
			})
			return nil
		}

		b.nextID++
		docID := b.nextID
		b.urls[docID] = doc.URL
		b.docLen[docID] = len(stems)
		for _, s := range stems {
			b.wordSet[s] = struct{}{}
		}

		if err := partial.Add(docID, stems); err != nil {
			return fmt.Errorf("%w: %v", ErrSpillFailed, err)
		}

		stats.DocsIndexed++
		record(doc, catalog.DocumentRecord{
			Status: catalog.StatusIndexed, DocID: docID,
			TokenCount: len(stems), Checksum: sum, Fingerprint: fp,
		})
		if stats.DocsIndexed%1000 == 0 {
			slog.Info("build: progress", "indexed", stats.DocsIndexed,
				"unique_tokens", len(b.wordSet))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := partial.Flush(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSpillFailed, err)
	}
	if err := index.WriteSpillOffsets(cfg.artifactPath(SpillOffsetsFile), partial.Offsets()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSpillFailed, err)
	}

	slog.Info("build: corpus consumed", "indexed", stats.DocsIndexed,
		"unique_tokens", len(b.wordSet), "spills", len(partial.Spills()))

	combined, err := index.Merge(b.wordSet, partial, b.docLen, stats.DocsIndexed,
		cfg.artifactPath(FinalIndexFile))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMergeFailed, err)
	}

	if err := index.WriteOffsetMap(cfg.artifactPath(OffsetMapFile), combined); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMergeFailed, err)
	}
	if err := index.WriteURLMap(cfg.artifactPath(URLMapFile), b.urls); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMergeFailed, err)
	}

	stats.UniqueTokens = len(b.wordSet)
	stats.Spills = len(partial.Spills())
	stats.Oversized = len(reader.Large)
	stats.Undersized = len(reader.Small)

	if err := index.WriteResults(cfg.artifactPath(ResultsFile), index.Diagnostics{
		DocsProcessed: stats.DocsProcessed,
		UniqueTokens:  stats.UniqueTokens,
		Oversized:     stats.Oversized,
		Undersized:    stats.Undersized,
	}); err != nil {
		return nil, fmt.Errorf("writing results file: %w", err)
	}

	if !cfg.KeepSpills {
		for _, name := range partial.Spills() {
			if err := os.Remove(filepath.Join(cfg.OutputDir, name)); err != nil {
				slog.Warn("build: removing spill failed", "file", name, "error", err)
			}
		}
		if err := os.Remove(cfg.artifactPath(SpillOffsetsFile)); err != nil {
			slog.Warn("build: removing spill offsets failed", "error", err)
		}
	}

	if cat != nil {
		if err := cat.FinishBuild(ctx, buildID, stats.DocsProcessed, stats.DocsIndexed,
			stats.UniqueTokens, stats.Spills); err != nil {
			slog.Warn("build: finishing catalog run failed", "error", err)
		}
	}

	stats.Elapsed = time.Since(start)
	b.consumed = true

	slog.Info("build: sealed",
		"indexed", stats.DocsIndexed, "unique_tokens", stats.UniqueTokens,
		"spills", stats.Spills, "elapsed", stats.Elapsed.Round(time.Millisecond))
	return stats, nil
}
