// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes decoded notes as JSON or YAML documents and
// prints human-readable note summaries.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/notepub/pkg/types"
)

// Format is an export encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat means the requested format is neither json nor yaml.
var ErrUnknownFormat = errors.New("unknown export format")

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q (want json or yaml)", ErrUnknownFormat, s)
}

// Entry is one exported note.
type Entry struct {
	ID               int64            `json:"id" yaml:"id"`
	Identifier       string           `json:"identifier" yaml:"identifier"`
	Title            string           `json:"title" yaml:"title"`
	Snippet          string           `json:"snippet" yaml:"snippet"`
	CreationDate     *time.Time       `json:"creation_date" yaml:"creation_date"`
	ModificationDate *time.Time       `json:"modification_date" yaml:"modification_date"`
	TextContent      *string          `json:"text_content,omitempty" yaml:"text_content,omitempty"`
	NoteLinks        []types.NoteLink `json:"note_links,omitempty" yaml:"note_links,omitempty"`
	StyleRuns        []Run            `json:"style_runs,omitempty" yaml:"style_runs,omitempty"`
}

// Run is an exported formatting run.
type Run struct {
	Start         int    `json:"start" yaml:"start"`
	Length        int    `json:"length" yaml:"length"`
	Text          string `json:"text" yaml:"text"`
	Style         string `json:"style" yaml:"style"`
	Blockquote    bool   `json:"is_blockquote" yaml:"is_blockquote"`
	Bold          bool   `json:"is_bold" yaml:"is_bold"`
	Italic        bool   `json:"is_italic" yaml:"is_italic"`
	Superscript   bool   `json:"is_superscript" yaml:"is_superscript"`
	Underline     bool   `json:"is_underline" yaml:"is_underline"`
	Strikethrough bool   `json:"is_strikethrough" yaml:"is_strikethrough"`
	LinkURL       string `json:"link_url" yaml:"link_url"`
}

// Entries converts notes for export. With formatting, every run that
// carries any formatting is included; plain runs never are.
func Entries(notes []types.Note, formatting bool) []Entry {
	entries := make([]Entry, len(notes))
	for i, n := range notes {
		e := Entry{
			ID:               n.ID,
			Identifier:       n.Identifier,
			Title:            n.Title,
			Snippet:          n.Snippet,
			CreationDate:     timePtr(n.Created),
			ModificationDate: timePtr(n.Modified),
		}
		if n.Content != nil {
			text := n.Content.BodyText
			e.TextContent = &text
			e.NoteLinks = n.Content.NoteLinks
			if formatting {
				e.StyleRuns = formattedRuns(n.Content.StyleRuns)
			}
		}
		entries[i] = e
	}
	return entries
}

func formattedRuns(runs []types.StyleRun) []Run {
	var out []Run
	for _, r := range runs {
		if r.IsPlain() {
			continue
		}
		out = append(out, Run{
			Start:         r.Start,
			Length:        r.Length,
			Text:          r.Text,
			Style:         r.ParagraphStyle.String(),
			Blockquote:    r.Blockquote,
			Bold:          r.Bold,
			Italic:        r.Italic,
			Superscript:   r.Superscript,
			Underline:     r.Underline,
			Strikethrough: r.Strikethrough,
			LinkURL:       r.LinkURL,
		})
	}
	return out
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// Write encodes entries to w.
func Write(w io.Writer, format Format, entries []Entry) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(entries); err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
		return enc.Close()
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// WriteFile encodes entries into the file at path.
func WriteFile(path string, format Format, entries []Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	if err := Write(f, format, entries); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
