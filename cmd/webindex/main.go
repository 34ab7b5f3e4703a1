// Command webindex builds the inverted index from a crawled corpus and
// answers queries against the sealed artifacts. It provides a CLI (via
// Cobra); the companion server binary exposes the same search surface
// over HTTP.
package main

import (
	"fmt"
	"os"

	"github.com/arapinan/webindex/cmd/webindex/commands"
)

func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
