// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/notepub/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export decoded notes from the note database",
	Long: `Export reads the configured folder straight from the note database and
writes every note, with its body text and internal links, as JSON or YAML.
Without --output it prints a listing, or full summaries with --verbose.

--formatting adds every formatted run (paragraph style, bold, links, ...)
with its offsets into the note text.`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	outPath, _ := cmd.Flags().GetString("output")
	formatName, _ := cmd.Flags().GetString("format")
	formatting, _ := cmd.Flags().GetBool("formatting")
	verbose, _ := cmd.Flags().GetBool("verbose")

	format, err := export.ParseFormat(formatName)
	if err != nil {
		return err
	}

	// Status lines go to stderr; stdout carries only the export.
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	cfg := sourceConfig()
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	folderID, err := store.FolderID(ctx, cfg.Folder)
	if err != nil {
		return err
	}
	fmt.Fprintf(stderr, "Found folder '%s' (ID: %d)\n", cfg.Folder, folderID)

	notes, err := store.NotesInFolder(ctx, folderID)
	if err != nil {
		return err
	}
	fmt.Fprintf(stderr, "Found %d notes\n", len(notes))

	switch {
	case outPath == "-":
		return export.Write(stdout, format, export.Entries(notes, formatting))
	case outPath != "":
		if err := export.WriteFile(outPath, format, export.Entries(notes, formatting)); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Exported %d notes to %s\n", len(notes), outPath)
	case verbose:
		for _, n := range notes {
			export.PrintSummary(stdout, n, formatting)
		}
	default:
		printPlainListing(stdout, notes)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("output", "o", "", "write the export to this file (\"-\" for stdout)")
	exportCmd.Flags().String("format", "json", "export format: json or yaml")
	exportCmd.Flags().BoolP("formatting", "f", false, "include formatting runs")
	exportCmd.Flags().BoolP("verbose", "v", false, "print detailed note summaries")
}
