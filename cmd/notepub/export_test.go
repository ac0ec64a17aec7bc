// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/notepub/internal/export"
	"github.com/pdiddy/notepub/internal/testsupport"
)

func setConfig(t *testing.T, key string, value any) {
	t.Helper()
	old := viper.Get(key)
	viper.Set(key, value)
	t.Cleanup(func() { viper.Set(key, old) })
}

func TestExportToStdoutIsCleanDocument(t *testing.T) {
	path, db := testsupport.NoteStore(t)
	record := testsupport.Compressed(t, testsupport.Record(
		testsupport.Run{Text: "Hello\n"},
		testsupport.Run{Text: "world", TextStyle: testsupport.TextBold},
	))
	testsupport.InsertNote(t, db, 10, "Hello", 0, 100, record)

	setConfig(t, "database_path", path)
	setConfig(t, "notes_folder", "blog")
	require.NoError(t, exportCmd.Flags().Set("output", "-"))
	t.Cleanup(func() { exportCmd.Flags().Set("output", "") })

	var stdout, stderr bytes.Buffer
	exportCmd.SetOut(&stdout)
	exportCmd.SetErr(&stderr)
	t.Cleanup(func() {
		exportCmd.SetOut(nil)
		exportCmd.SetErr(nil)
	})

	require.NoError(t, runExport(exportCmd, nil))

	var entries []export.Entry
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &entries), stdout.String())
	require.Len(t, entries, 1)
	assert.Equal(t, "Hello", entries[0].Title)

	assert.Contains(t, stderr.String(), "Found folder 'blog' (ID: 1)")
	assert.Contains(t, stderr.String(), "Found 1 notes")
}
