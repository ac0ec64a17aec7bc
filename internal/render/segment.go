// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render converts decoded notes into semantic HTML fragments.
// A note's style runs are grouped into blocks by paragraph type, runs
// inside a block are merged by inline formatting, and each block is
// emitted as headings, lists, quotes, code or paragraphs with internal
// links and footnotes resolved.
package render

import (
	"unicode/utf8"

	"github.com/pdiddy/notepub/pkg/types"
)

// BlockType is the block-level element a run renders into.
type BlockType string

const (
	BlockHeading    BlockType = "heading"
	BlockSubheading BlockType = "subheading"
	BlockMonospace  BlockType = "monospace"
	BlockBlockquote BlockType = "blockquote"
	BlockBulletList BlockType = "bullet-list"
	BlockDashList   BlockType = "dash-list"
	BlockNumberList BlockType = "number-list"
	BlockNormal     BlockType = "normal"
)

// Block is a maximal sequence of consecutive runs sharing a BlockType.
type Block struct {
	Type BlockType
	Runs []types.StyleRun
}

// BlockTypeOf returns the block type of a run. The blockquote flag wins
// over any paragraph style.
func BlockTypeOf(r types.StyleRun) BlockType {
	if r.Blockquote {
		return BlockBlockquote
	}
	switch r.ParagraphStyle {
	case types.ParagraphHeading:
		return BlockHeading
	case types.ParagraphSubheading:
		return BlockSubheading
	case types.ParagraphMonospace:
		return BlockMonospace
	case types.ParagraphBulletList:
		return BlockBulletList
	case types.ParagraphDashList:
		return BlockDashList
	case types.ParagraphNumberList:
		return BlockNumberList
	default:
		return BlockNormal
	}
}

// TitleSpanEnd returns the rune offset where the body starts: the title
// plus its separating newline.
func TitleSpanEnd(title string) int {
	return utf8.RuneCountInString(title) + 1
}

// StripTitle removes the title span from runs. Runs ending inside the
// span are dropped; a run that starts inside the span and continues past
// it is clipped to the part after the span.
func StripTitle(runs []types.StyleRun, title string) []types.StyleRun {
	end := TitleSpanEnd(title)
	out := make([]types.StyleRun, 0, len(runs))
	for _, r := range runs {
		if r.End() <= end {
			continue
		}
		if r.Start < end {
			r = clipFront(r, end-r.Start)
		}
		out = append(out, r)
	}
	return out
}

// Group splits runs into blocks, opening a new block whenever the block
// type changes. Run order is preserved.
func Group(runs []types.StyleRun) []Block {
	var blocks []Block
	for _, r := range runs {
		bt := BlockTypeOf(r)
		if n := len(blocks); n > 0 && blocks[n-1].Type == bt {
			blocks[n-1].Runs = append(blocks[n-1].Runs, r)
			continue
		}
		blocks = append(blocks, Block{Type: bt, Runs: []types.StyleRun{r}})
	}
	return blocks
}

// Segment strips the title span from runs and groups the rest into blocks.
func Segment(runs []types.StyleRun, title string) []Block {
	return Group(StripTitle(runs, title))
}

// clipFront drops the first n runes of a run.
func clipFront(r types.StyleRun, n int) types.StyleRun {
	chars := []rune(r.Text)
	if n > len(chars) {
		n = len(chars)
	}
	r.Text = string(chars[n:])
	r.Start += n
	r.Length -= n
	return r
}
