package search

import (
	"fmt"
	"strings"
)

// RenderText formats a result the way the query front-end displays it:
// a header line, the 1-based enumerated URLs, and the search time.
func RenderText(query string, r Result) string {
	var b strings.Builder

	switch {
	case len(r.URLs) == 0:
		fmt.Fprintf(&b, "No results for %q\n", query)
	case r.Exact:
		fmt.Fprintf(&b, "Showing results for %q\n", r.ShownQuery)
	default:
		fmt.Fprintf(&b, "No results for %q. Showing results for %q\n", query, r.ShownQuery)
	}

	for i, u := range r.URLs {
		fmt.Fprintf(&b, "%d. %s\n", i+1, u)
	}

	fmt.Fprintf(&b, "Search time: %d ms\n", r.ElapsedMs)
	return b.String()
}
