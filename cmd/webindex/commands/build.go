package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/arapinan/webindex"
)

// NewBuildCmd constructs the `webindex build` command, which runs the
// full offline build pipeline and seals the query artifacts.
func NewBuildCmd() *cobra.Command {
	var corpusDir string
	var outputDir string
	var catalogPath string
	var keepSpills bool

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the inverted index from a corpus directory",
		Long: `Walk the corpus tree, tokenize and stem every HTML document, drop
duplicates, and seal the final postings file plus its offset and URL maps.

The build is a batch job: it runs to completion or its on-disk output is
not to be trusted. Partial builds are not resumable.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := webindex.LoadConfig(configPath)
			if err != nil {
				return err
			}
			if corpusDir != "" {
				cfg.CorpusDir = corpusDir
			}
			if outputDir != "" {
				cfg.OutputDir = outputDir
			}
			if catalogPath != "" {
				cfg.CatalogPath = catalogPath
			}
			cfg.KeepSpills = keepSpills

			stats, err := webindex.NewBuilder(cfg).Run(cmd.Context())
			if err != nil {
				return fmt.Errorf("build: %w", err)
			}

			slog.Info("build finished",
				"processed", stats.DocsProcessed,
				"indexed", stats.DocsIndexed,
				"unique_tokens", stats.UniqueTokens,
				"spills", stats.Spills,
				"elapsed", stats.Elapsed)
			for reason, n := range stats.Rejected {
				slog.Info("rejected documents", "reason", reason, "count", n)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&corpusDir, "corpus", "", "Corpus root directory (default DEV)")
	cmd.Flags().StringVar(&outputDir, "out", "", "Artifact output directory (default .)")
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "Optional SQLite build catalog path")
	cmd.Flags().BoolVar(&keepSpills, "keep-spills", false, "Keep transient spill files after merge")

	return cmd
}
