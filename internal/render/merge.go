// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import "github.com/pdiddy/notepub/pkg/types"

// Signature is the inline formatting of a run. Adjacent runs with equal
// signatures render as one span.
type Signature struct {
	Bold          bool
	Italic        bool
	Superscript   bool
	Underline     bool
	Strikethrough bool
	LinkURL       string
}

// SignatureOf returns the inline formatting of r. Paragraph attributes
// are not part of it.
func SignatureOf(r types.StyleRun) Signature {
	return Signature{
		Bold:          r.Bold,
		Italic:        r.Italic,
		Superscript:   r.Superscript,
		Underline:     r.Underline,
		Strikethrough: r.Strikethrough,
		LinkURL:       r.LinkURL,
	}
}

// HasInline reports whether the signature produces any inline tag.
func (s Signature) HasInline() bool {
	return s != Signature{}
}

// MergedRun is the fusion of consecutive runs with one signature.
// Representative is the first run that went into it.
type MergedRun struct {
	Text           string
	Signature      Signature
	Representative types.StyleRun
}

// Merge fuses adjacent runs with identical signatures. The concatenated
// text of the result equals the concatenated text of runs.
func Merge(runs []types.StyleRun) []MergedRun {
	var merged []MergedRun
	for _, r := range runs {
		sig := SignatureOf(r)
		if n := len(merged); n > 0 && merged[n-1].Signature == sig {
			merged[n-1].Text += r.Text
			continue
		}
		merged = append(merged, MergedRun{Text: r.Text, Signature: sig, Representative: r})
	}
	return merged
}
