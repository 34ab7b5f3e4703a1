// Package corpus enumerates a crawled-corpus directory tree and yields
// its documents. Each leaf file is a JSON object with a "url" and a
// "content" field holding raw HTML.
package corpus

import (
	"context"
	"encoding/json"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// Document is one corpus record as read from disk.
type Document struct {
	Path string `json:"path"`
	URL  string `json:"url"`
	HTML string `json:"content"`
}

// record mirrors the on-disk JSON shape of a corpus file.
type record struct {
	URL     string `json:"url"`
	Content string `json:"content"`
}

// Reader walks a corpus tree applying the size gate. Files outside the
// (MinSize, MaxSize] window are diverted to the Small/Large lists and
// skipped; malformed or vanished files are logged and skipped.
type Reader struct {
	Root    string
	MinSize int64
	MaxSize int64

	// Small and Large collect the paths rejected by the size gate, in
	// walk order. They are reported in the build diagnostics.
	Small []string
	Large []string
}

// NewReader returns a Reader over root with the given size gate.
func NewReader(root string, minSize, maxSize int64) *Reader {
	return &Reader{Root: root, MinSize: minSize, MaxSize: maxSize}
}

// Walk visits every regular file under Root in lexical order and calls fn
// for each surviving document. Files named .DS_Store are ignored. A file
// is kept only when MinSize < size <= MaxSize; a file at exactly MinSize is
// diverted to Small, one at exactly MaxSize is kept. Read or decode failures drop the file with a
// warning; they never abort the walk. fn returning an error aborts.
func (r *Reader) Walk(ctx context.Context, fn func(Document) error) error {
	if _, err := os.Stat(r.Root); err != nil {
		return err
	}

	return filepath.WalkDir(r.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			slog.Warn("corpus: walk error, skipping", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() || d.Name() == ".DS_Store" {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		info, err := d.Info()
		if err != nil {
			slog.Warn("corpus: stat failed, skipping", "path", path, "error", err)
			return nil
		}
		if info.Size() <= r.MinSize {
			r.Small = append(r.Small, path)
			return nil
		}
		if info.Size() > r.MaxSize {
			r.Large = append(r.Large, path)
			return nil
		}

		doc, ok := r.load(path)
		if !ok {
			return nil
		}
		return fn(doc)
	})
}

// load reads and decodes one corpus file. Failures are soft: the document
// is dropped with a warning and ok=false.
func (r *Reader) load(path string) (Document, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("corpus: read failed, skipping", "path", path, "error", err)
		return Document{}, false
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		slog.Warn("corpus: malformed JSON, skipping", "path", path, "error", err)
		return Document{}, false
	}

	return Document{Path: path, URL: rec.URL, HTML: rec.Content}, true
}
