// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/notepub/pkg/types"
)

func sampleNotes() []types.Note {
	created := time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)
	return []types.Note{
		{
			ID:         7,
			Identifier: "ABC",
			Title:      "Plans",
			Snippet:    "snip",
			Created:    created,
			Modified:   created.Add(time.Hour),
			Content: &types.ParsedNote{
				Title:    "Plans",
				BodyText: "go now",
				StyleRuns: []types.StyleRun{
					{Start: 0, Length: 6, Text: "Plans\n"},
					{Start: 6, Length: 2, Text: "go", Bold: true},
					{Start: 8, Length: 4, Text: " now", ParagraphStyle: types.ParagraphBulletList},
				},
				NoteLinks: []types.NoteLink{{URL: "applenotes:note/X", NoteID: "X", Text: "go"}},
			},
		},
		{ID: 8, Title: "Empty"},
	}
}

func TestEntries(t *testing.T) {
	entries := Entries(sampleNotes(), true)
	require.Len(t, entries, 2)

	e := entries[0]
	require.NotNil(t, e.TextContent)
	assert.Equal(t, "go now", *e.TextContent)
	require.Len(t, e.StyleRuns, 2, "plain runs are left out")
	assert.Equal(t, "normal", e.StyleRuns[0].Style)
	assert.True(t, e.StyleRuns[0].Bold)
	assert.Equal(t, "bullet-list", e.StyleRuns[1].Style)
	assert.Len(t, e.NoteLinks, 1)

	assert.Nil(t, entries[1].TextContent)
	assert.Nil(t, entries[1].CreationDate)

	assert.Empty(t, Entries(sampleNotes(), false)[0].StyleRuns)
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, Entries(sampleNotes(), false)))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "Plans", decoded[0]["title"])
	assert.Equal(t, "2024-04-01T09:00:00Z", decoded[0]["creation_date"])
	assert.Nil(t, decoded[1]["creation_date"])
	_, hasText := decoded[1]["text_content"]
	assert.False(t, hasText)
}

func TestWriteFileYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.yaml")
	require.NoError(t, WriteFile(path, FormatYAML, Entries(sampleNotes(), true)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded []Entry
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "ABC", decoded[0].Identifier)
	assert.Len(t, decoded[0].StyleRuns, 2)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("YAML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("xml")
	assert.ErrorIs(t, err, ErrUnknownFormat)
	assert.ErrorIs(t, Write(&bytes.Buffer{}, Format("xml"), nil), ErrUnknownFormat)
}

func TestPrintSummary(t *testing.T) {
	notes := sampleNotes()
	notes[0].Content.StyleRuns[1].LinkURL = "https://example.com/" + strings.Repeat("a", 50)

	var buf bytes.Buffer
	PrintSummary(&buf, notes[0], true)
	out := buf.String()
	assert.Contains(t, out, "Title: Plans")
	assert.Contains(t, out, "  - [go] -> X")
	assert.Contains(t, out, "  [6:8] bold, link:https://example.com/aaaaaaaaaaaaaaaaaaaa...")
	assert.Contains(t, out, `    "go"`)
	assert.Contains(t, out, "  [8:12] bullet-list")
	assert.NotContains(t, out, "[0:6]")

	buf.Reset()
	PrintSummary(&buf, notes[1], false)
	assert.Contains(t, buf.String(), "Snippet: ")
}
