// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"html"
	"regexp"
	"strconv"
	"strings"
)

// markupRule is one regexp rewrite applied to bridge markup.
type markupRule struct {
	re   *regexp.Regexp
	repl string
}

// Rewrites that turn the markup exported by the Notes bridge into plain
// semantic HTML, in application order.
var markupRules = []markupRule{
	{regexp.MustCompile(`<tt>`), "<code>"},
	{regexp.MustCompile(`</tt>`), "</code>"},
	{regexp.MustCompile(`<ul class="Apple-dash-list">`), "<ul>"},
	{regexp.MustCompile(`<table[^>]*>`), "<table>"},
	{regexp.MustCompile(`<td[^>]*>`), "<td>"},
	{regexp.MustCompile(`<tr[^>]*>`), "<tr>"},
	{regexp.MustCompile(`<tbody[^>]*>`), "<tbody>"},
	{regexp.MustCompile(`</?object>`), ""},
	{regexp.MustCompile(`<div><br></div>`), "\n"},
	{regexp.MustCompile(`<div>`), ""},
	{regexp.MustCompile(`</div>`), "\n"},
	{regexp.MustCompile(`<td>\n*`), "<td>"},
	{regexp.MustCompile(`\n*</td>`), "</td>"},
	{regexp.MustCompile(`<br>`), "\n"},
	{regexp.MustCompile(`\n{3,}`), "\n\n"},
}

var (
	leadingH1Re     = regexp.MustCompile(`^<h1>.*?</h1>\n*`)
	wikiLinkRe      = regexp.MustCompile(`\[\[([^\]]+)\]\]`)
	markupDefRe     = regexp.MustCompile(`(?m)^\[\^(\d{1,9})\]:?[ \t]+(.+?)[ \t]*$`)
	blockOpenRe     = regexp.MustCompile(`(?i)^<(h[1-6]|ul|ol|li|table|thead|tbody|tr|td|th|blockquote|pre|code|header|footer|article|section|nav|aside|figure|figcaption)`)
	blockCloseRe    = regexp.MustCompile(`(?i)^</(h[1-6]|ul|ol|li|table|thead|tbody|tr|td|th|blockquote|pre|code|header|footer|article|section|nav|aside|figure|figcaption)`)
	endsWithCloseRe = regexp.MustCompile(`</[^>]+>\s*$`)
)

// CleanMarkup normalises bridge markup: tag renames, attribute stripping,
// divs and line breaks turned into newlines.
func CleanMarkup(markup string) string {
	for _, rule := range markupRules {
		markup = rule.re.ReplaceAllString(markup, rule.repl)
	}
	return strings.TrimSpace(markup)
}

// RenderMarkup renders a note delivered as pre-rendered markup. The
// leading <h1> title is dropped; wiki links and footnotes are resolved
// the same way as for decoded notes.
func (r *Renderer) RenderMarkup(markup, slug string) Result {
	p := &pass{r: r, notes: newFootnotes(slug)}

	content := CleanMarkup(markup)
	content = leadingH1Re.ReplaceAllString(content, "")
	content = p.markupWikiLinks(content)
	content = p.markupFootnotes(content)
	content = WrapParagraphs(content)

	return Result{
		Content:  strings.TrimSpace(content),
		Footer:   p.notes.footer(),
		Warnings: p.warnings,
	}
}

func (p *pass) markupWikiLinks(content string) string {
	return wikiLinkRe.ReplaceAllStringFunc(content, func(match string) string {
		title := wikiLinkRe.FindStringSubmatch(match)[1]
		entry, ok := p.r.lookup.ByTitle(html.UnescapeString(title))
		if !ok {
			p.warn(WarnUnresolvedWikiLink, title)
			return title
		}
		return `<a href="/` + entry.Slug + `.html">` + title + `</a>`
	})
}

func (p *pass) markupFootnotes(content string) string {
	content = markupDefRe.ReplaceAllStringFunc(content, func(match string) string {
		m := markupDefRe.FindStringSubmatch(match)
		if id, err := strconv.Atoi(m[1]); err == nil {
			p.notes.defs[id] = strings.TrimSpace(m[2])
		}
		return ""
	})
	return footnoteRefRe.ReplaceAllStringFunc(content, func(match string) string {
		id, err := strconv.Atoi(footnoteRefRe.FindStringSubmatch(match)[1])
		if err != nil {
			return match
		}
		return p.notes.reference(id)
	})
}

// WrapParagraphs wraps runs of bare text lines in <p>, leaving block
// elements and lines inside open blocks untouched.
func WrapParagraphs(markup string) string {
	var out, buf []string
	depth := 0

	flush := func() {
		if text := strings.TrimSpace(strings.Join(buf, " ")); text != "" {
			out = append(out, "<p>"+text+"</p>")
		}
		buf = buf[:0]
	}

	for line := range strings.SplitSeq(markup, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			flush()
		case blockOpenRe.MatchString(line):
			flush()
			out = append(out, line)
			if !endsWithCloseRe.MatchString(line) {
				depth++
			}
		case blockCloseRe.MatchString(line):
			flush()
			out = append(out, line)
			depth = max(0, depth-1)
		case depth > 0:
			out = append(out, line)
		default:
			buf = append(buf, line)
		}
	}
	flush()
	return strings.Join(out, "\n")
}
