// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/notepub/pkg/types"
)

// runsFrom lays texts out back to back starting at offset 0.
func runsFrom(runs ...types.StyleRun) []types.StyleRun {
	pos := 0
	for i := range runs {
		n := len([]rune(runs[i].Text))
		runs[i].Start = pos
		runs[i].Length = n
		pos += n
	}
	return runs
}

func TestBlockTypeOfPriority(t *testing.T) {
	tests := []struct {
		name string
		run  types.StyleRun
		want BlockType
	}{
		{"plain", types.StyleRun{}, BlockNormal},
		{"heading", types.StyleRun{ParagraphStyle: types.ParagraphHeading}, BlockHeading},
		{"subheading", types.StyleRun{ParagraphStyle: types.ParagraphSubheading}, BlockSubheading},
		{"monospace", types.StyleRun{ParagraphStyle: types.ParagraphMonospace}, BlockMonospace},
		{"bullet", types.StyleRun{ParagraphStyle: types.ParagraphBulletList}, BlockBulletList},
		{"dash", types.StyleRun{ParagraphStyle: types.ParagraphDashList}, BlockDashList},
		{"number", types.StyleRun{ParagraphStyle: types.ParagraphNumberList}, BlockNumberList},
		{"quoted heading", types.StyleRun{ParagraphStyle: types.ParagraphHeading, Blockquote: true}, BlockBlockquote},
		{"unknown style", types.StyleRun{ParagraphStyle: 42}, BlockNormal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BlockTypeOf(tt.run))
		})
	}
}

func TestStripTitleDropsAndClips(t *testing.T) {
	runs := runsFrom(
		types.StyleRun{Text: "Tit"},
		types.StyleRun{Text: "le\n"},
		types.StyleRun{Text: "body", Bold: true},
	)
	got := StripTitle(runs, "Title")
	require.Len(t, got, 1)
	assert.Equal(t, "body", got[0].Text)

	straddling := runsFrom(types.StyleRun{Text: "Title\nfirst line"})
	got = StripTitle(straddling, "Title")
	require.Len(t, got, 1)
	assert.Equal(t, "first line", got[0].Text)
	assert.Equal(t, 6, got[0].Start)
	assert.Equal(t, 10, got[0].Length)
}

func TestGroupMergesAdjacentSameType(t *testing.T) {
	runs := runsFrom(
		types.StyleRun{Text: "intro "},
		types.StyleRun{Text: "more\n", Italic: true},
		types.StyleRun{Text: "one\n", ParagraphStyle: types.ParagraphBulletList},
		types.StyleRun{Text: "two\n", ParagraphStyle: types.ParagraphBulletList},
		types.StyleRun{Text: "outro"},
	)
	blocks := Group(runs)
	require.Len(t, blocks, 3)
	assert.Equal(t, BlockNormal, blocks[0].Type)
	assert.Len(t, blocks[0].Runs, 2)
	assert.Equal(t, BlockBulletList, blocks[1].Type)
	assert.Len(t, blocks[1].Runs, 2)
	assert.Equal(t, BlockNormal, blocks[2].Type)
}

func TestSegmentIsExhaustiveAndOrdered(t *testing.T) {
	runs := runsFrom(
		types.StyleRun{Text: "Note\n"},
		types.StyleRun{Text: "Heading\n", ParagraphStyle: types.ParagraphHeading},
		types.StyleRun{Text: "a "},
		types.StyleRun{Text: "b ", Bold: true},
		types.StyleRun{Text: "quote\n", Blockquote: true},
		types.StyleRun{Text: "x := 1\n", ParagraphStyle: types.ParagraphMonospace},
		types.StyleRun{Text: "c\n"},
	)
	blocks := Segment(runs, "Note")

	var flat []types.StyleRun
	for i, b := range blocks {
		if i > 0 {
			assert.NotEqual(t, blocks[i-1].Type, b.Type, "adjacent blocks share a type")
		}
		flat = append(flat, b.Runs...)
	}
	assert.Equal(t, StripTitle(runs, "Note"), flat)
}
