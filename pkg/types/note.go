// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"strings"
	"time"
)

// ParagraphStyle is the block-level style recorded for a style run
// (attribute field 1 inside the run's character attributes).
type ParagraphStyle int

const (
	ParagraphNormal     ParagraphStyle = 0
	ParagraphHeading    ParagraphStyle = 1
	ParagraphSubheading ParagraphStyle = 2
	ParagraphMonospace  ParagraphStyle = 4
	ParagraphBulletList ParagraphStyle = 100
	ParagraphDashList   ParagraphStyle = 101
	ParagraphNumberList ParagraphStyle = 102
)

// String returns the human-readable style name used in exports.
// Unknown values report as "normal".
func (p ParagraphStyle) String() string {
	switch p {
	case ParagraphHeading:
		return "heading"
	case ParagraphSubheading:
		return "subheading"
	case ParagraphMonospace:
		return "monospace"
	case ParagraphBulletList:
		return "bullet-list"
	case ParagraphDashList:
		return "dash-list"
	case ParagraphNumberList:
		return "number-list"
	default:
		return "normal"
	}
}

// StyleRun is a contiguous span of the note text with one uniform set of
// attributes. Start and Length are rune offsets into the full note text
// (title, newline, body).
type StyleRun struct {
	Start  int    `json:"start" yaml:"start"`
	Length int    `json:"length" yaml:"length"`
	Text   string `json:"text" yaml:"text"`

	ParagraphStyle ParagraphStyle `json:"paragraph_style" yaml:"paragraph_style"`

	Bold          bool `json:"is_bold" yaml:"is_bold"`
	Italic        bool `json:"is_italic" yaml:"is_italic"`
	Blockquote    bool `json:"is_blockquote" yaml:"is_blockquote"`
	Superscript   bool `json:"is_superscript" yaml:"is_superscript"`
	Underline     bool `json:"is_underline" yaml:"is_underline"`
	Strikethrough bool `json:"is_strikethrough" yaml:"is_strikethrough"`

	// LinkURL is empty when the run carries no link.
	LinkURL string `json:"link_url,omitempty" yaml:"link_url,omitempty"`
}

// End returns the rune offset just past the run.
func (r StyleRun) End() int {
	return r.Start + r.Length
}

// IsPlain reports whether the run carries no formatting beyond the
// default paragraph style.
func (r StyleRun) IsPlain() bool {
	return r.ParagraphStyle == ParagraphNormal && !r.Blockquote && !r.Bold && !r.Italic &&
		!r.Superscript && !r.Underline && !r.Strikethrough && r.LinkURL == ""
}

// NoteLink is a run-level link that targets another note.
type NoteLink struct {
	// URL is the full link as recorded (e.g. "applenotes:note/<id>?ownerIdentifier=...").
	URL string `json:"url" yaml:"url"`

	// NoteID is the identifier portion of URL.
	NoteID string `json:"note_id" yaml:"note_id"`

	// Text is the anchor text of the link.
	Text string `json:"text" yaml:"text"`
}

// ParsedNote is the decoded content of one note record. It is built once
// and not modified afterwards.
type ParsedNote struct {
	Title     string     `json:"title" yaml:"title"`
	BodyText  string     `json:"text_content" yaml:"text_content"`
	StyleRuns []StyleRun `json:"style_runs,omitempty" yaml:"style_runs,omitempty"`
	NoteLinks []NoteLink `json:"note_links,omitempty" yaml:"note_links,omitempty"`
}

// IsEmpty reports whether the note decoded to nothing.
func (p ParsedNote) IsEmpty() bool {
	return p.Title == "" && p.BodyText == "" && len(p.StyleRuns) == 0
}

// Note is one note as supplied by a note source. Exactly one of Content
// and Markup carries the body: database sources decode records into
// Content, the automation bridge supplies pre-rendered Markup.
type Note struct {
	// ID is the source's row key (zero for bridge notes).
	ID int64 `json:"id" yaml:"id"`

	// Identifier is the stable note identifier used by internal links.
	Identifier string `json:"identifier" yaml:"identifier"`

	Title    string    `json:"title" yaml:"title"`
	Snippet  string    `json:"snippet,omitempty" yaml:"snippet,omitempty"`
	Created  time.Time `json:"creation_date" yaml:"creation_date"`
	Modified time.Time `json:"modification_date" yaml:"modification_date"`

	// Content is nil when the source row carried no record.
	Content *ParsedNote `json:"content,omitempty" yaml:"content,omitempty"`

	// Markup is pre-rendered HTML from the automation bridge.
	Markup string `json:"markup,omitempty" yaml:"markup,omitempty"`
}

// NoteLinkPrefix starts every run-level link that targets another note.
const NoteLinkPrefix = "applenotes:note/"

// NoteIDFromURL returns the note identifier of an internal note link:
// the last path segment before any query string. It reports false for
// links that do not use the internal scheme.
func NoteIDFromURL(url string) (string, bool) {
	if !strings.HasPrefix(url, NoteLinkPrefix) {
		return "", false
	}
	path, _, _ := strings.Cut(url, "?")
	id := path[strings.LastIndexByte(path, '/')+1:]
	if id == "" {
		return "", false
	}
	return id, true
}
