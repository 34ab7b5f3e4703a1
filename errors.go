package webindex

import "errors"

var (
	// ErrCorpusNotFound is returned when the corpus root directory does not exist.
	ErrCorpusNotFound = errors.New("webindex: corpus directory not found")

	// ErrSpillFailed is returned when writing a partial index to disk fails.
	// The build cannot continue: partial indices on disk are no longer trusted.
	ErrSpillFailed = errors.New("webindex: partial index spill failed")

	// ErrMergeFailed is returned when merging partial indices fails.
	ErrMergeFailed = errors.New("webindex: merge failed")

	// ErrMissingArtifact is returned when a sealed artifact (final index,
	// offset map, URL map) is absent or unreadable at query time.
	ErrMissingArtifact = errors.New("webindex: sealed artifact missing")

	// ErrSearcherClosed is returned when searching on a closed Searcher.
	ErrSearcherClosed = errors.New("webindex: searcher is closed")

	// ErrBuilderConsumed is returned when reusing a Builder whose artifacts
	// have already been sealed.
	ErrBuilderConsumed = errors.New("webindex: builder already consumed")
)
