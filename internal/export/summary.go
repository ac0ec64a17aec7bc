// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/notepub/pkg/types"
)

const (
	previewRunes = 500
	runPreview   = 30
	urlPreview   = 40
)

// PrintSummary writes a detailed, human-readable description of a note.
// With formatting, every formatted run is listed with its offsets.
func PrintSummary(w io.Writer, n types.Note, formatting bool) {
	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 60))
	fmt.Fprintf(w, "Title: %s\n", n.Title)
	fmt.Fprintf(w, "ID: %s\n", n.Identifier)
	fmt.Fprintf(w, "Created: %s\n", n.Created.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Modified: %s\n", n.Modified.Format("2006-01-02 15:04:05"))
	fmt.Fprintln(w, strings.Repeat("-", 60))

	if n.Content == nil {
		fmt.Fprintf(w, "Snippet: %s\n", n.Snippet)
		return
	}

	fmt.Fprintln(w, "Text Content Preview:")
	fmt.Fprintln(w, truncate(n.Content.BodyText, previewRunes, "..."))

	if len(n.Content.NoteLinks) > 0 {
		fmt.Fprintln(w, "\nInternal Links:")
		for _, l := range n.Content.NoteLinks {
			fmt.Fprintf(w, "  - [%s] -> %s\n", l.Text, l.NoteID)
		}
	}

	if !formatting || len(n.Content.StyleRuns) == 0 {
		return
	}
	fmt.Fprintln(w, "\nFormatting Runs:")
	for _, r := range n.Content.StyleRuns {
		attrs := RunAttributes(r)
		if len(attrs) == 0 {
			continue
		}
		fmt.Fprintf(w, "  [%d:%d] %s\n", r.Start, r.End(), strings.Join(attrs, ", "))
		fmt.Fprintf(w, "    %q\n", truncate(r.Text, runPreview, ""))
	}
}

// RunAttributes names the formatting a run carries.
func RunAttributes(r types.StyleRun) []string {
	var attrs []string
	if r.ParagraphStyle != types.ParagraphNormal {
		attrs = append(attrs, r.ParagraphStyle.String())
	}
	flags := []struct {
		on   bool
		name string
	}{
		{r.Blockquote, "blockquote"},
		{r.Bold, "bold"},
		{r.Italic, "italic"},
		{r.Superscript, "superscript"},
		{r.Underline, "underline"},
		{r.Strikethrough, "strikethrough"},
	}
	for _, f := range flags {
		if f.on {
			attrs = append(attrs, f.name)
		}
	}
	if r.LinkURL != "" {
		attrs = append(attrs, "link:"+truncate(r.LinkURL, urlPreview, "..."))
	}
	return attrs
}

// truncate shortens s to n runes, appending suffix when it cut anything.
func truncate(s string, n int, suffix string) string {
	chars := []rune(s)
	if len(chars) <= n {
		return s
	}
	return string(chars[:n]) + suffix
}
