package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arapinan/webindex"
	"github.com/arapinan/webindex/search"
)

// NewSearchCmd constructs the `webindex search` command. With arguments
// it evaluates one query; without, it reads queries from stdin.
func NewSearchCmd() *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "search [query...]",
		Short: "Query the sealed index",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := webindex.LoadConfig(configPath)
			if err != nil {
				return err
			}
			if outputDir != "" {
				cfg.OutputDir = outputDir
			}

			s, err := webindex.Open(cfg)
			if err != nil {
				return err
			}
			defer s.Close()

			run := func(query string) error {
				res, err := s.Search(query)
				if err != nil {
					return err
				}
				fmt.Print(search.RenderText(query, res))
				return nil
			}

			if len(args) > 0 {
				return run(strings.Join(args, " "))
			}

			scanner := bufio.NewScanner(os.Stdin)
			fmt.Print("Search: ")
			for scanner.Scan() {
				query := strings.TrimSpace(scanner.Text())
				if query == "" {
					break
				}
				if err := run(query); err != nil {
					return err
				}
				fmt.Print("Search: ")
			}
			return scanner.Err()
		},
	}

	cmd.Flags().StringVar(&outputDir, "out", "", "Directory holding the sealed artifacts (default .)")

	return cmd
}
