// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/pdiddy/notepub/internal/site"
	"github.com/pdiddy/notepub/pkg/types"
)

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "List the notes of the configured folder",
	Long: `Notes lists every note of the configured folder with its modification
date, its slug and the notes it links to. On a terminal the listing is a
table; otherwise it is plain text suitable for scripts.`,
	RunE: runNotes,
}

func runNotes(cmd *cobra.Command, args []string) error {
	plain, _ := cmd.Flags().GetBool("plain")

	cfg := sourceConfig()
	src, closeSource, err := openSource(cfg)
	if err != nil {
		return err
	}
	defer closeSource()

	notes, err := src.Notes(context.Background(), cfg.Folder)
	if err != nil {
		return err
	}

	if plain || !isTerminal(os.Stdout) {
		printPlainListing(os.Stdout, notes)
		return nil
	}
	fmt.Println(notesTable(notes, time.Now()))
	return nil
}

// printPlainListing writes one line per note followed by its outgoing
// internal links.
func printPlainListing(w io.Writer, notes []types.Note) {
	for _, n := range notes {
		date := "Unknown"
		if !n.Modified.IsZero() {
			date = n.Modified.Format("2006-01-02")
		}
		fmt.Fprintf(w, "  [%s] %s\n", date, n.Title)
		for _, l := range noteLinks(n) {
			fmt.Fprintf(w, "             -> links to: %s\n", l.NoteID)
		}
	}
}

// notesTable renders notes as a table with relative modification times.
func notesTable(notes []types.Note, now time.Time) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Modified", "Title", "Slug", "Links"})

	for _, n := range notes {
		modified := "unknown"
		if !n.Modified.IsZero() {
			modified = humanize.RelTime(n.Modified, now, "ago", "from now")
		}
		ids := make([]string, 0, len(noteLinks(n)))
		for _, l := range noteLinks(n) {
			ids = append(ids, l.NoteID)
		}
		tw.AppendRow(table.Row{modified, n.Title, site.Slug(n.Title, n.Created), strings.Join(ids, "\n")})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 2, WidthMax: 48},
	})
	tw.AppendFooter(table.Row{"", fmt.Sprintf("%d notes", len(notes)), "", ""})
	return tw.Render()
}

func noteLinks(n types.Note) []types.NoteLink {
	if n.Content == nil {
		return nil
	}
	return n.Content.NoteLinks
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func init() {
	rootCmd.AddCommand(notesCmd)

	notesCmd.Flags().Bool("plain", false, "plain text output even on a terminal")
}
