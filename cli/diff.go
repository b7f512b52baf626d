package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"

	"github.com/robinvdvleuten/hledger-fmt/output"
)

// unifiedDiff returns the unified diff turning before into after, or an
// empty string when they are equal.
func unifiedDiff(path string, before, after []byte) string {
	edits := myers.ComputeEdits(span.URIFromPath(path), string(before), string(after))
	if len(edits) == 0 {
		return ""
	}
	return fmt.Sprint(gotextdiff.ToUnified(path, path, string(before), edits))
}

// printDiff writes diff to w, coloring added and removed lines.
func printDiff(w io.Writer, styles *output.Styles, diff string) {
	for _, line := range strings.SplitAfter(diff, "\n") {
		if line == "" {
			continue
		}
		text := strings.TrimSuffix(line, "\n")

		switch {
		case strings.HasPrefix(text, "---"), strings.HasPrefix(text, "+++"):
			text = styles.Keyword(text)
		case strings.HasPrefix(text, "@@"):
			text = styles.Hunk(text)
		case strings.HasPrefix(text, "+"):
			text = styles.Added(text)
		case strings.HasPrefix(text, "-"):
			text = styles.Removed(text)
		case strings.HasPrefix(text, `\`):
			text = styles.Dim(text)
		}

		_, _ = fmt.Fprintln(w, text)
	}
}
