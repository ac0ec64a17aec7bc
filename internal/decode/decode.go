// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package decode turns a compressed note record into a types.ParsedNote.
// The record is a gzip stream holding a protobuf message; only the fields
// needed for rendering are read, and malformed trailing data is ignored.
package decode

import (
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/notepub/pkg/types"
)

// ErrMalformedCompression means the record is not a valid gzip stream.
var ErrMalformedCompression = errors.New("malformed compression")

// Parse decompresses and decodes a note record. When the record cannot be
// decompressed it returns an empty ParsedNote together with an error
// wrapping ErrMalformedCompression; callers may log it and carry on.
func Parse(record []byte) (types.ParsedNote, error) {
	data, err := decompress(record)
	if err != nil {
		return types.ParsedNote{}, fmt.Errorf("%w: %v", ErrMalformedCompression, err)
	}
	return ParseUncompressed(data), nil
}

// ParseUncompressed decodes an already-decompressed record. A record
// missing any level of the expected nesting decodes to an empty note.
func ParseUncompressed(data []byte) types.ParsedNote {
	content := noteContentFields(data)
	text := mainText(content)
	title, body, _ := strings.Cut(text, "\n")
	runs := styleRuns(content, text)

	return types.ParsedNote{
		Title:     title,
		BodyText:  body,
		StyleRuns: runs,
		NoteLinks: noteLinks(runs),
	}
}

func decompress(record []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(record))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(zr)
}

// noteLinks collects the runs whose link targets another note.
func noteLinks(runs []types.StyleRun) []types.NoteLink {
	var links []types.NoteLink
	for _, r := range runs {
		id, ok := types.NoteIDFromURL(r.LinkURL)
		if !ok {
			continue
		}
		links = append(links, types.NoteLink{URL: r.LinkURL, NoteID: id, Text: r.Text})
	}
	return links
}
