//go:build cgo

package webindex

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/arapinan/webindex/catalog"
)

func TestBuildRecordsCatalog(t *testing.T) {
	body := repeat("catalogued content words", 40)
	cfg := seedCorpus(t, []corpusDoc{
		{name: "a.json", url: "https://a/", body: body},
		{name: "b.json", url: "https://b/", body: body}, // exact duplicate
	})
	cfg.CatalogPath = filepath.Join(t.TempDir(), "catalog.db")

	ctx := context.Background()
	stats, err := NewBuilder(cfg).Run(ctx)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	cat, err := catalog.New(cfg.CatalogPath)
	if err != nil {
		t.Fatalf("opening catalog: %v", err)
	}
	defer cat.Close()

	build, err := cat.LatestBuild(ctx)
	if err != nil {
		t.Fatalf("LatestBuild: %v", err)
	}
	if build.Status != "complete" {
		t.Errorf("build status = %q, want complete", build.Status)
	}
	if build.DocsIndexed != stats.DocsIndexed {
		t.Errorf("catalog indexed = %d, stats = %d", build.DocsIndexed, stats.DocsIndexed)
	}

	summary, err := cat.Summary(ctx, build.ID)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	counts := make(map[string]int)
	for _, sc := range summary {
		counts[sc.Status] = sc.Count
	}
	if counts[catalog.StatusIndexed] != 1 || counts[catalog.StatusExactDuplicate] != 1 {
		t.Errorf("summary = %v, want one indexed and one exact_duplicate", counts)
	}
}
