// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/notepub/pkg/types"
)

// WarningKind classifies a non-fatal rendering problem.
type WarningKind string

const (
	// WarnUnresolvedNoteLink marks an internal note link whose target is
	// not in the lookup.
	WarnUnresolvedNoteLink WarningKind = "unresolved-note-link"
	// WarnUnresolvedWikiLink marks a [[Title]] reference with no match.
	WarnUnresolvedWikiLink WarningKind = "unresolved-wiki-link"
)

// Warning is reported once per unresolved reference.
type Warning struct {
	Kind   WarningKind
	Target string
}

func (w Warning) String() string {
	switch w.Kind {
	case WarnUnresolvedWikiLink:
		return fmt.Sprintf("Note not found: [[%s]]", w.Target)
	case WarnUnresolvedNoteLink:
		return fmt.Sprintf("Linked note not found: %s", w.Target)
	default:
		return fmt.Sprintf("%s: %s", w.Kind, w.Target)
	}
}

// Result is the output of rendering one note.
type Result struct {
	Content  string
	Footer   string
	Warnings []Warning
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithHighlight enables syntax highlighting of code blocks.
func WithHighlight(cfg types.HighlightConfig) Option {
	return func(r *Renderer) {
		if cfg.Enabled {
			r.hl = newHighlighter(cfg.Style)
		}
	}
}

// Renderer turns parsed notes into HTML. It holds no per-note state and
// may be shared between goroutines.
type Renderer struct {
	lookup *Lookup
	hl     *highlighter
}

// NewRenderer returns a Renderer resolving links through lookup.
func NewRenderer(lookup *Lookup, opts ...Option) *Renderer {
	r := &Renderer{lookup: lookup}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// HighlightCSS returns the stylesheet for highlighted code blocks, or ""
// when highlighting is off.
func (r *Renderer) HighlightCSS() (string, error) {
	if r.hl == nil {
		return "", nil
	}
	return r.hl.css()
}

// Render converts a parsed note to HTML. The title span is not part of
// the output; slug prefixes footnote anchors.
func (r *Renderer) Render(note types.ParsedNote, slug string) Result {
	runs := note.StyleRuns
	if len(runs) == 0 && note.BodyText != "" {
		runs = []types.StyleRun{{
			Start:  TitleSpanEnd(note.Title),
			Length: utf8.RuneCountInString(note.BodyText),
			Text:   note.BodyText,
		}}
	}

	p := &pass{r: r, notes: newFootnotes(slug)}

	body, defs := extractFootnotes(StripTitle(runs, note.Title))
	for _, d := range defs {
		if _, seen := p.notes.defs[d.id]; seen {
			continue
		}
		p.notes.defs[d.id] = strings.TrimSpace(p.inlineRuns(Merge(d.runs), true))
	}

	var parts []string
	for _, b := range Group(body) {
		if html := p.block(b); html != "" {
			parts = append(parts, html)
		}
	}

	return Result{
		Content:  strings.Join(parts, "\n\n"),
		Footer:   p.notes.footer(),
		Warnings: p.warnings,
	}
}

// pass is the state of rendering one note.
type pass struct {
	r        *Renderer
	notes    *footnotes
	warnings []Warning
}

func (p *pass) warn(kind WarningKind, target string) {
	p.warnings = append(p.warnings, Warning{Kind: kind, Target: target})
}

func (p *pass) block(b Block) string {
	merged := Merge(b.Runs)

	if b.Type == BlockMonospace {
		return p.code(merged)
	}

	content := strings.TrimRight(p.inlineRuns(merged, true), "\n")
	if strings.TrimSpace(content) == "" {
		return ""
	}

	switch b.Type {
	case BlockHeading:
		return "<h2>" + strings.TrimSpace(content) + "</h2>"
	case BlockSubheading:
		return "<h3>" + strings.TrimSpace(content) + "</h3>"
	case BlockBlockquote:
		inner := strings.ReplaceAll(strings.TrimSpace(content), "\n\n", "</p><p>")
		inner = strings.ReplaceAll(inner, "\n", "<br>")
		return "<blockquote><p>" + inner + "</p></blockquote>"
	case BlockBulletList, BlockDashList:
		return list("ul", content)
	case BlockNumberList:
		return list("ol", content)
	default:
		return paragraphs(content)
	}
}

// code renders a monospace block. Formatting and links apply as in any
// other block, but wiki links and footnote references stay literal.
// Highlighting only runs over blocks without inline formatting.
func (p *pass) code(merged []MergedRun) string {
	plain := strings.TrimRight(concatMerged(merged), "\n")
	if strings.TrimSpace(plain) == "" {
		return ""
	}

	formatted := false
	for _, m := range merged {
		if m.Signature.HasInline() {
			formatted = true
			break
		}
	}
	if p.r.hl != nil && !formatted {
		if html, err := p.r.hl.highlight(plain); err == nil {
			return html
		}
	}
	return "<pre><code>" + strings.TrimRight(p.inlineRuns(merged, false), "\n") + "</code></pre>"
}

func (p *pass) inlineRuns(merged []MergedRun, expand bool) string {
	var sb strings.Builder
	for _, m := range merged {
		sb.WriteString(p.inline(m, expand))
	}
	return sb.String()
}

// inline renders one merged run. Formatting tags nest sup, strong, em, u,
// s from the inside out, with a link outermost. Trailing newlines of a
// formatted run stay outside its tags. With expand unset, wiki links and
// footnote references are left as text.
func (p *pass) inline(m MergedRun, expand bool) string {
	sig := m.Signature
	text, trailing := m.Text, ""
	if sig.HasInline() {
		text = strings.TrimRight(m.Text, "\n")
		trailing = m.Text[len(text):]
	}
	if text == "" {
		return trailing
	}

	html := p.text(text, expand && sig.LinkURL == "")
	if sig.Superscript {
		html = "<sup>" + html + "</sup>"
	}
	if sig.Bold {
		html = "<strong>" + html + "</strong>"
	}
	if sig.Italic {
		html = "<em>" + html + "</em>"
	}
	if sig.Underline {
		html = "<u>" + html + "</u>"
	}
	if sig.Strikethrough {
		html = "<s>" + html + "</s>"
	}
	if sig.LinkURL != "" {
		html = p.link(sig.LinkURL, html)
	}
	return html + trailing
}

// link wraps inner in an anchor. Internal note links resolve through the
// lookup; an unresolved one leaves inner unlinked.
func (p *pass) link(url, inner string) string {
	if id, ok := types.NoteIDFromURL(url); ok {
		entry, found := p.r.lookup.ByIdentifier(id)
		if !found {
			p.warn(WarnUnresolvedNoteLink, id)
			return inner
		}
		return `<a href="/` + entry.Slug + `.html">` + inner + `</a>`
	}
	if strings.HasPrefix(url, types.NoteLinkPrefix) {
		p.warn(WarnUnresolvedNoteLink, url)
		return inner
	}
	return `<a href="` + strings.ReplaceAll(url, `"`, "%22") + `">` + inner + `</a>`
}

var inlineRefRe = regexp.MustCompile(`\[\[([^\]]+)\]\]|\[\^(\d{1,9})\]`)

// text escapes s and expands wiki links and footnote references in it.
// Inside an existing link both are left as literal text.
func (p *pass) text(s string, expand bool) string {
	if !expand || !strings.Contains(s, "[") {
		return escapeText(s)
	}

	var sb strings.Builder
	last := 0
	for _, m := range inlineRefRe.FindAllStringSubmatchIndex(s, -1) {
		sb.WriteString(escapeText(s[last:m[0]]))
		last = m[1]

		if m[2] >= 0 {
			sb.WriteString(p.wikiLink(s[m[2]:m[3]]))
			continue
		}
		n, err := strconv.Atoi(s[m[4]:m[5]])
		if err != nil {
			sb.WriteString(escapeText(s[m[0]:m[1]]))
			continue
		}
		sb.WriteString(p.notes.reference(n))
	}
	sb.WriteString(escapeText(s[last:]))
	return sb.String()
}

func (p *pass) wikiLink(title string) string {
	entry, ok := p.r.lookup.ByTitle(title)
	if !ok {
		p.warn(WarnUnresolvedWikiLink, title)
		return escapeText(title)
	}
	return `<a href="/` + entry.Slug + `.html">` + escapeText(title) + `</a>`
}

func concatMerged(merged []MergedRun) string {
	var sb strings.Builder
	for _, m := range merged {
		sb.WriteString(m.Text)
	}
	return sb.String()
}

// paragraphs splits content on blank lines into <p> elements. Single
// newlines inside a paragraph become spaces.
func paragraphs(content string) string {
	var out []string
	for para := range strings.SplitSeq(content, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		out = append(out, "<p>"+strings.ReplaceAll(para, "\n", " ")+"</p>")
	}
	return strings.Join(out, "\n")
}

// list renders each non-blank line of content as a list item.
func list(tag, content string) string {
	var items []string
	for line := range strings.SplitSeq(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		items = append(items, "<li>"+line+"</li>")
	}
	if len(items) == 0 {
		return ""
	}
	return "<" + tag + ">\n" + strings.Join(items, "\n") + "\n</" + tag + ">"
}

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// escapeText escapes the three characters significant in HTML text.
// Quotes are left alone.
func escapeText(s string) string {
	return textEscaper.Replace(s)
}
