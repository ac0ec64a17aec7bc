// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/notepub/pkg/types"
)

// A definition line is "[^N]" with an optional colon, whitespace, then
// the footnote text. The same marker anywhere else is a reference.
var (
	footnoteDefRe = regexp.MustCompile(`^\[\^(\d{1,9})\]:?[ \t]+(\S.*)$`)
	footnoteRefRe = regexp.MustCompile(`\[\^(\d{1,9})\]`)
)

// footnoteDef is a definition cut out of a note body.
type footnoteDef struct {
	id   int
	runs []types.StyleRun
}

// footnotes holds the rendered definitions of one note keyed by number.
type footnotes struct {
	slug string
	defs map[int]string
}

func newFootnotes(slug string) *footnotes {
	return &footnotes{slug: slug, defs: make(map[int]string)}
}

func (f *footnotes) anchorID(n int) string {
	return fmt.Sprintf("%s--footnote-%d--anchor", f.slug, n)
}

func (f *footnotes) targetID(n int) string {
	return fmt.Sprintf("%s--footnote-%d", f.slug, n)
}

// reference returns the superscript back-linked anchor for footnote n.
func (f *footnotes) reference(n int) string {
	return fmt.Sprintf(`<a id="%s" href="#%s"><sup>%d</sup></a>`, f.anchorID(n), f.targetID(n), n)
}

// footer returns the ordered footnote list, or "" without definitions.
func (f *footnotes) footer() string {
	if len(f.defs) == 0 {
		return ""
	}
	ids := make([]int, 0, len(f.defs))
	for id := range f.defs {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var sb strings.Builder
	sb.WriteString("<footer>\n<ol>\n")
	for _, id := range ids {
		fmt.Fprintf(&sb, `<li id="%s">%s<a href="#%s">↩︎</a></li>`+"\n",
			f.targetID(id), f.defs[id], f.anchorID(id))
	}
	sb.WriteString("</ol>\n</footer>")
	return sb.String()
}

// extractFootnotes removes definition lines from runs and returns the
// remaining runs together with the runs of each definition's text. The
// newline ending a definition stays, so the text around it is not joined.
// Definitions inside code blocks are left alone. When a number is
// defined twice the last definition wins.
func extractFootnotes(runs []types.StyleRun) ([]types.StyleRun, []footnoteDef) {
	text := concatText(runs)
	if !strings.Contains(text, "[^") {
		return runs, nil
	}

	type span struct{ from, to, textFrom, textTo, id int }
	var spans []span

	offset := 0
	for line := range strings.SplitSeq(text, "\n") {
		n := utf8.RuneCountInString(line)
		lineStart := offset
		offset += n + 1

		m := footnoteDefRe.FindStringSubmatchIndex(line)
		if m == nil || inCode(runs, lineStart) {
			continue
		}
		id, err := strconv.Atoi(line[m[2]:m[3]])
		if err != nil {
			continue
		}
		s := span{
			from:     lineStart,
			to:       lineStart + n,
			textFrom: lineStart + utf8.RuneCountInString(line[:m[4]]),
			textTo:   lineStart + n,
			id:       id,
		}
		spans = append(spans, s)
	}

	defs := make([]footnoteDef, 0, len(spans))
	for i := len(spans) - 1; i >= 0; i-- {
		s := spans[i]
		defs = append(defs, footnoteDef{id: s.id, runs: sliceRuns(runs, s.textFrom, s.textTo)})
		runs = cutRuns(runs, s.from, s.to)
	}
	return runs, defs
}

// inCode reports whether the run covering offset renders as code.
func inCode(runs []types.StyleRun, offset int) bool {
	pos := 0
	for _, r := range runs {
		n := utf8.RuneCountInString(r.Text)
		if offset < pos+n {
			return BlockTypeOf(r) == BlockMonospace
		}
		pos += n
	}
	return false
}

func concatText(runs []types.StyleRun) string {
	var sb strings.Builder
	for _, r := range runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// sliceRuns returns the parts of runs covering [from, to) of their
// concatenated text, measured in runes.
func sliceRuns(runs []types.StyleRun, from, to int) []types.StyleRun {
	var out []types.StyleRun
	offset := 0
	for _, r := range runs {
		chars := []rune(r.Text)
		lo, hi := max(from-offset, 0), min(to-offset, len(chars))
		offset += len(chars)
		if lo >= hi {
			continue
		}
		if lo == 0 && hi == len(chars) {
			out = append(out, r)
			continue
		}
		part := r
		part.Start = r.Start + lo
		part.Length = hi - lo
		part.Text = string(chars[lo:hi])
		out = append(out, part)
	}
	return out
}

// cutRuns removes [from, to) from the concatenated text of runs.
func cutRuns(runs []types.StyleRun, from, to int) []types.StyleRun {
	total := utf8.RuneCountInString(concatText(runs))
	out := sliceRuns(runs, 0, from)
	return append(out, sliceRuns(runs, to, total)...)
}
