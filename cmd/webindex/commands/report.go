package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arapinan/webindex"
	"github.com/arapinan/webindex/catalog"
)

// NewReportCmd constructs the `webindex report` command, which prints the
// latest build's statistics and per-status document counts from the
// build catalog.
func NewReportCmd() *cobra.Command {
	var status string
	var limit int

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize the latest build from the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := webindex.LoadConfig(configPath)
			if err != nil {
				return err
			}
			if cfg.CatalogPath == "" {
				return fmt.Errorf("report: no catalog configured (set catalog_path or WEBINDEX_CATALOG_PATH)")
			}

			cat, err := catalog.New(cfg.CatalogPath)
			if err != nil {
				return err
			}
			defer cat.Close()

			build, err := cat.LatestBuild(ctx)
			if err != nil {
				return fmt.Errorf("report: %w", err)
			}

			fmt.Printf("build %d (%s) over %s\n", build.ID, build.Status, build.CorpusDir)
			fmt.Printf("  processed: %d  indexed: %d  unique tokens: %d  spills: %d\n",
				build.DocsProcessed, build.DocsIndexed, build.UniqueTokens, build.Spills)

			summary, err := cat.Summary(ctx, build.ID)
			if err != nil {
				return fmt.Errorf("report: %w", err)
			}
			for _, sc := range summary {
				fmt.Printf("  %-16s %d\n", sc.Status, sc.Count)
			}

			if status != "" {
				docs, err := cat.ListByStatus(ctx, build.ID, status, limit)
				if err != nil {
					return fmt.Errorf("report: %w", err)
				}
				for _, d := range docs {
					fmt.Printf("  %s  %s\n", d.Status, d.Path)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "List documents with this status (e.g. near_duplicate)")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum documents to list with --status")

	return cmd
}
