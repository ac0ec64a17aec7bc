// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanMarkup(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"tt becomes code", "<tt>x</tt>", "<code>x</code>"},
		{"dash list class", `<ul class="Apple-dash-list"><li>a</li></ul>`, "<ul><li>a</li></ul>"},
		{"table attributes", `<table style="x"><tbody id="b"><tr class="r"><td width="3">` + "\n\ncell\n</td></tr></tbody></table>",
			"<table><tbody><tr><td>cell</td></tr></tbody></table>"},
		{"object wrapper", "<object><table></table></object>", "<table></table>"},
		{"divs to newlines", "<div>one</div><div><br></div><div>two</div>", "one\n\ntwo"},
		{"br to newline", "a<br>b", "a\nb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanMarkup(tt.input))
		})
	}
}

func TestCleanMarkupCollapsesNewlines(t *testing.T) {
	assert.Equal(t, "a\n\nb", CleanMarkup("a<br><br><br><br>b"))
}

func TestWrapParagraphs(t *testing.T) {
	input := "first line\nsecond line\n\n<h2>Head</h2>\n<ul>\n<li>item</li>\nloose\n</ul>\nafter"
	want := "<p>first line second line</p>\n<h2>Head</h2>\n<ul>\n<li>item</li>\nloose\n</ul>\n<p>after</p>"
	assert.Equal(t, want, WrapParagraphs(input))
}

func TestRenderMarkup(t *testing.T) {
	r := NewRenderer(testLookup())
	markup := "<div><h1>My Title</h1></div>" +
		"<div>See [[Other Note]] and [[Nope]][^1].</div>" +
		"<div><br></div>" +
		"<div>[^1]: A <b>source</b></div>"

	res := r.RenderMarkup(markup, "2024/05/my-title")
	assert.Equal(t,
		`<p>See <a href="/2024/03/other-note.html">Other Note</a> and Nope`+
			`<a id="2024/05/my-title--footnote-1--anchor" href="#2024/05/my-title--footnote-1"><sup>1</sup></a>.</p>`,
		res.Content)
	assert.Equal(t, "<footer>\n<ol>\n"+
		`<li id="2024/05/my-title--footnote-1">A <b>source</b><a href="#2024/05/my-title--footnote-1--anchor">↩︎</a></li>`+"\n"+
		"</ol>\n</footer>", res.Footer)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, WarnUnresolvedWikiLink, res.Warnings[0].Kind)
	assert.Equal(t, "Nope", res.Warnings[0].Target)
}
