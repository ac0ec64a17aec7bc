// Package testsupport builds note records and fixtures for tests.
package testsupport

import (
	"bytes"
	"compress/gzip"
	"testing"
	"unicode/utf8"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/pdiddy/notepub/pkg/types"
)

// Text styles as stored in run field 5.
const (
	TextBold   = 1
	TextItalic = 2
)

// Run describes one style run of a fixture record. The note text is the
// concatenation of every run's Text.
type Run struct {
	Text string

	// Length overrides the declared run length; zero means the rune count of
	// Text. Negative values are written as their two's-complement varint.
	Length int

	Style         types.ParagraphStyle
	TextStyle     int
	Underline     bool
	Strikethrough bool
	Blockquote    bool
	Superscript   bool
	Link          string
}

// Record encodes runs as an uncompressed note record with the nesting
// root(2) → document(3) → note content.
func Record(runs ...Run) []byte {
	var text string
	for _, r := range runs {
		text += r.Text
	}
	return RecordWithText(text, runs...)
}

// RecordWithText encodes text and runs independently, so declared run
// lengths can disagree with the text.
func RecordWithText(text string, runs ...Run) []byte {
	var content []byte
	content = protowire.AppendTag(content, 2, protowire.BytesType)
	content = protowire.AppendString(content, text)
	for _, r := range runs {
		content = protowire.AppendTag(content, 5, protowire.BytesType)
		content = protowire.AppendBytes(content, encodeRun(r))
	}

	var doc []byte
	doc = protowire.AppendTag(doc, 1, protowire.VarintType)
	doc = protowire.AppendVarint(doc, 0)
	doc = protowire.AppendTag(doc, 2, protowire.VarintType)
	doc = protowire.AppendVarint(doc, 0)
	doc = protowire.AppendTag(doc, 3, protowire.BytesType)
	doc = protowire.AppendBytes(doc, content)

	var root []byte
	root = protowire.AppendTag(root, 1, protowire.VarintType)
	root = protowire.AppendVarint(root, 0)
	root = protowire.AppendTag(root, 2, protowire.BytesType)
	root = protowire.AppendBytes(root, doc)
	return root
}

// Compressed gzips a record the way the Notes store keeps it.
func Compressed(t testing.TB, record []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(record); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	return buf.Bytes()
}

func encodeRun(r Run) []byte {
	length := r.Length
	if length == 0 {
		length = utf8.RuneCountInString(r.Text)
	}

	var b []byte
	b = protowire.AppendTag(b, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(length))

	var attrs []byte
	if r.Style != types.ParagraphNormal {
		attrs = appendFlag(attrs, 1, uint64(r.Style))
	}
	if r.Underline {
		attrs = appendFlag(attrs, 5, 1)
	}
	if r.Strikethrough {
		attrs = appendFlag(attrs, 6, 1)
	}
	if r.Blockquote {
		attrs = appendFlag(attrs, 8, 1)
	}
	if len(attrs) > 0 {
		b = protowire.AppendTag(b, 2, protowire.BytesType)
		b = protowire.AppendBytes(b, attrs)
	}

	if r.TextStyle != 0 {
		b = appendFlag(b, 5, uint64(r.TextStyle))
	}
	if r.Superscript {
		b = appendFlag(b, 8, 1)
	}
	if r.Link != "" {
		b = protowire.AppendTag(b, 9, protowire.BytesType)
		b = protowire.AppendString(b, r.Link)
	}
	return b
}

func appendFlag(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}
