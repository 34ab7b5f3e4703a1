// Package commands defines all Cobra CLI commands for the webindex binary.
package commands

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// configPath holds the --config flag value shared by all subcommands.
var configPath string

// NewRootCmd constructs the root Cobra command that all subcommands attach to.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "webindex",
		Short: "webindex — disk-backed tf-idf search over a crawled web corpus",
		Long: `webindex builds a persistent inverted index from a directory tree of
JSON documents (each holding a URL and raw HTML) and answers ranked
free-text queries against the sealed artifacts.

Configuration is read from an optional JSON or YAML file (--config) with
WEBINDEX_* environment variables overriding file values.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			godotenv.Load()
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			})))
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "Path to JSON or YAML config file")

	root.AddCommand(
		NewBuildCmd(),
		NewSearchCmd(),
		NewReportCmd(),
		NewVersionCmd(),
	)

	return root
}
