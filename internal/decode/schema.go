// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package decode

import (
	"math"
	"unicode/utf8"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/pdiddy/notepub/internal/wire"
	"github.com/pdiddy/notepub/pkg/types"
)

// Field numbers of the note schema, by message.
const (
	rootDocument    protowire.Number = 2
	documentContent protowire.Number = 3

	contentText protowire.Number = 2
	contentRun  protowire.Number = 5

	runLength      protowire.Number = 1
	runAttributes  protowire.Number = 2
	runTextStyle   protowire.Number = 5
	runSuperscript protowire.Number = 8
	runLink        protowire.Number = 9

	attrParagraphStyle protowire.Number = 1
	attrUnderline      protowire.Number = 5
	attrStrikethrough  protowire.Number = 6
	attrBlockquote     protowire.Number = 8
)

// Values of the run text-style field.
const (
	textStyleBold   = 1
	textStyleItalic = 2
)

// noteContentFields walks root → document → note content and returns the
// note content fields, or nil when any hop is missing.
func noteContentFields(data []byte) []wire.Field {
	for _, root := range wire.ParseAll(data) {
		if root.Number != rootDocument {
			continue
		}
		doc, ok := root.AsBytes()
		if !ok {
			continue
		}
		if content, ok := wire.FirstBytes(wire.ParseAll(doc), documentContent); ok {
			return wire.ParseAll(content)
		}
	}
	return nil
}

// mainText returns the first text field that holds valid UTF-8.
func mainText(content []wire.Field) string {
	for _, f := range content {
		if f.Number != contentText {
			continue
		}
		if b, ok := f.AsBytes(); ok && utf8.Valid(b) {
			return string(b)
		}
	}
	return ""
}

// styleRuns slices text by the declared length of each run record, in
// order. Runs with a non-positive length, or starting past the end of the
// text, are dropped without moving the cursor; a run overhanging the end
// of the text keeps its declared length but only the text that exists.
func styleRuns(content []wire.Field, text string) []types.StyleRun {
	chars := []rune(text)
	var runs []types.StyleRun
	cursor := 0

	for _, f := range content {
		if f.Number != contentRun {
			continue
		}
		b, ok := f.AsBytes()
		if !ok {
			continue
		}
		run, length := parseRun(b)
		if length <= 0 || cursor >= len(chars) {
			continue
		}

		end := min(cursor+length, len(chars))
		run.Start = cursor
		run.Length = length
		run.Text = string(chars[cursor:end])
		runs = append(runs, run)
		cursor += length
	}
	return runs
}

// parseRun decodes one run record into its attributes and declared length.
// Later occurrences of a field override earlier ones.
func parseRun(b []byte) (types.StyleRun, int) {
	var run types.StyleRun
	var length int64
	var textStyle uint64

	for _, f := range wire.ParseAll(b) {
		switch f.Number {
		case runLength:
			if v, ok := f.AsUint(); ok {
				length = int64(min(v, math.MaxInt32))
			}
		case runAttributes:
			if attrs, ok := f.AsBytes(); ok {
				applyAttributes(&run, attrs)
			}
		case runTextStyle:
			if v, ok := f.AsUint(); ok {
				textStyle = v
			}
		case runSuperscript:
			if v, ok := f.AsUint(); ok {
				run.Superscript = v != 0
			}
		case runLink:
			if v, ok := f.AsBytes(); ok && utf8.Valid(v) {
				run.LinkURL = string(v)
			}
		}
	}

	run.Bold = textStyle == textStyleBold
	run.Italic = textStyle == textStyleItalic

	return run, int(length)
}

// applyAttributes reads the nested character-attribute message of a run.
func applyAttributes(run *types.StyleRun, attrs []byte) {
	for _, f := range wire.ParseAll(attrs) {
		v, ok := f.AsUint()
		if !ok {
			continue
		}
		switch f.Number {
		case attrParagraphStyle:
			run.ParagraphStyle = types.ParagraphStyle(v)
		case attrUnderline:
			run.Underline = v != 0
		case attrStrikethrough:
			run.Strikethrough = v != 0
		case attrBlockquote:
			run.Blockquote = v != 0
		}
	}
}
