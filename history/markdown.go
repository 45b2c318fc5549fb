// Package history keeps finished sessions: as readable Markdown files on any
// afs location, or in DuckDB (see the duckdb subpackage).
package history

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/rickchristie/reagent"
	"github.com/rickchristie/reagent/config"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
)

// Markdown renders a session result with bold field labels. Eureka Thought
// and Final Answer are set apart by an extra blank line.
//
//	# What is the VAT rate?
//
//	**Thought:** I should search GOV.UK
//	**Action:** search_govuk
//	...
func Markdown(result *reagent.Result) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", result.Question)
	fmt.Fprintf(&sb, "_Status: %s, %d iterations_\n", result.Status, result.Iterations)
	if result.Reason != "" {
		fmt.Fprintf(&sb, "_Reason: %s_\n", result.Reason)
	}

	for _, step := range result.Transcript {
		sb.WriteString("\n")
		terminal := step.IsTerminal()
		for _, f := range reagent.Fields {
			if !terminal && reagent.ClosingFields[f] {
				continue
			}
			v, ok := step.Get(f)
			if !ok {
				continue
			}
			if reagent.ClosingFields[f] {
				sb.WriteString("\n")
			}
			fmt.Fprintf(&sb, "**%s:** %s\n", f.Label(), v)
		}
	}
	return sb.String()
}

// FileName is the Markdown file name of a session: its start time and the
// first eight characters of its id.
func FileName(result *reagent.Result) string {
	id := result.SessionID
	if len(id) > 8 {
		id = id[:8]
	}
	return fmt.Sprintf("%s-%s.md", result.StartTime.UTC().Format("20060102-150405"), id)
}

// MarkdownWriter saves sessions as Markdown files under a directory URL.
type MarkdownWriter struct {
	fs  afs.Service
	dir string
}

// NewMarkdownWriter creates a writer for dir, which may be a local path or
// any URL afs understands (file://, mem://, s3://...).
func NewMarkdownWriter(dir string) *MarkdownWriter {
	return &MarkdownWriter{fs: afs.New(), dir: config.ResolveURL(dir)}
}

// Write saves result and returns the URL written.
func (w *MarkdownWriter) Write(ctx context.Context, result *reagent.Result) (string, error) {
	url := strings.TrimRight(w.dir, "/") + "/" + path.Base(FileName(result))
	content := Markdown(result)
	if err := w.fs.Upload(ctx, url, file.DefaultFileOsMode, bytes.NewReader([]byte(content))); err != nil {
		return "", fmt.Errorf("write %s: %w", url, err)
	}
	return url, nil
}
