// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package publish turns a folder of notes into a static blog: one page
// per note, an index of recent posts, an RSS feed and a manifest that
// makes the next run incremental.
package publish

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/notepub/internal/logging"
	"github.com/pdiddy/notepub/internal/render"
	"github.com/pdiddy/notepub/internal/site"
	"github.com/pdiddy/notepub/pkg/types"
)

// ErrNoNotes means the configured folder yielded no notes.
var ErrNoNotes = errors.New("no notes found")

// HighlightCSSFile is written to the output root when highlighting is on.
const HighlightCSSFile = "chroma.css"

// Source supplies the notes of a folder.
type Source interface {
	Notes(ctx context.Context, folder string) ([]types.Note, error)
}

// Summary reports the outcome of one publish run.
type Summary struct {
	Total       int
	Written     int
	Warnings    int
	Incremental bool
	Unchanged   bool
	Since       time.Time
	OutputDir   string
	Manifest    string
}

// Skipped returns the number of notes that were not rewritten.
func (s Summary) Skipped() int {
	return s.Total - s.Written
}

// HasWarnings reports whether any link failed to resolve.
func (s Summary) HasWarnings() bool {
	return s.Warnings > 0
}

// Publisher runs the publish pipeline.
type Publisher struct {
	cfg    types.PublishConfig
	source Source
	log    *logging.Logger
	now    func() time.Time
}

// New returns a Publisher reading notes from source.
func New(cfg types.PublishConfig, source Source, log *logging.Logger) *Publisher {
	if log == nil {
		log = logging.Nop()
	}
	if cfg.MaxPosts <= 0 {
		cfg.MaxPosts = site.DefaultMaxPosts
	}
	return &Publisher{cfg: cfg, source: source, log: log, now: time.Now}
}

// Run publishes every note of the configured folder. Notes modified
// since the last publish are rewritten; the index and feed are rebuilt
// from all notes. Progress lines go to w. Infrastructure failures abort
// the run; unresolved links and undecodable notes only produce warnings.
func (p *Publisher) Run(ctx context.Context, w io.Writer) (Summary, error) {
	cfg := p.cfg
	sum := Summary{OutputDir: cfg.OutputDir, Manifest: cfg.ManifestPath}

	tmpl, err := site.LoadTemplates(cfg.TemplateDir)
	if err != nil {
		return sum, err
	}

	notes, err := p.source.Notes(ctx, cfg.Source.Folder)
	if err != nil {
		return sum, fmt.Errorf("loading notes: %w", err)
	}
	if len(notes) == 0 {
		return sum, fmt.Errorf("%w in folder %q", ErrNoNotes, cfg.Source.Folder)
	}
	sum.Total = len(notes)

	manifest, err := site.LoadManifest(cfg.ManifestPath)
	if err != nil {
		return sum, err
	}
	sum.Incremental = manifest.HasPublished()
	sum.Since = manifest.LastPublished

	changed := 0
	for _, n := range notes {
		if manifest.ChangedSince(n.Modified) {
			changed++
		}
	}
	if changed == 0 {
		sum.Unchanged = true
		fmt.Fprintf(w, "No notes modified since %s\n", manifest.LastPublished.Format(time.RFC3339))
		return sum, nil
	}

	// Links must resolve against every note, not just the changed ones.
	slugs := make([]string, len(notes))
	entries := make([]render.LookupEntry, len(notes))
	for i, n := range notes {
		slugs[i] = site.Slug(n.Title, n.Created)
		entries[i] = render.LookupEntry{
			Title:      n.Title,
			Slug:       slugs[i],
			Identifier: n.Identifier,
			Created:    n.Created,
		}
	}
	renderer := render.NewRenderer(render.NewLookup(entries), render.WithHighlight(cfg.Highlight))

	out, err := site.OpenOutput(cfg.OutputDir)
	if err != nil {
		return sum, err
	}
	defer func() {
		if err := out.Close(); err != nil {
			p.log.Warn("releasing output lock", "output_dir", cfg.OutputDir, "error", err)
		}
	}()

	posts := make([]site.Post, 0, len(notes))
	for i, n := range notes {
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		slug := slugs[i]
		res := p.render(renderer, n, slug)
		for _, warning := range res.Warnings {
			p.log.Warn(warning.String(), "note", n.Title, "slug", slug)
		}
		sum.Warnings += len(res.Warnings)

		vars := map[string]string{
			"title":     n.Title,
			"slug":      slug,
			"datetime":  site.ISODateTime(n.Created),
			"humanDate": site.HumanDate(n.Created),
			"content":   res.Content,
			"footer":    res.Footer,
		}
		posts = append(posts, site.Post{
			Title:   n.Title,
			Slug:    slug,
			Created: n.Created,
			Content: res.Content,
			Snippet: site.Execute(tmpl.Snippet, vars),
		})

		if !manifest.ChangedSince(n.Modified) {
			continue
		}
		if _, err := out.WriteArticle(slug, site.Execute(tmpl.Article, vars)); err != nil {
			return sum, err
		}
		sum.Written++
		fmt.Fprintf(w, "wrote:   %s\n", slug)
	}

	recent := site.Recent(posts, cfg.MaxPosts)
	if _, err := out.Write("index.html", site.IndexPage(tmpl.Index, recent)); err != nil {
		return sum, err
	}
	if _, err := out.Write("feed.xml", site.FeedDocument(tmpl.Feed, cfg.Site, recent)); err != nil {
		return sum, err
	}

	css, err := renderer.HighlightCSS()
	if err != nil {
		return sum, fmt.Errorf("generating highlight stylesheet: %w", err)
	}
	if css != "" {
		if _, err := out.Write(HighlightCSSFile, css); err != nil {
			return sum, err
		}
	}

	if err := site.SaveManifest(cfg.ManifestPath, site.Manifest{LastPublished: p.now()}); err != nil {
		return sum, err
	}

	p.log.Info("published", "written", sum.Written, "total", sum.Total, "output_dir", cfg.OutputDir)
	return sum, nil
}

// render picks the markup path for bridge notes and the run-based path
// for decoded ones. A note without content renders empty.
func (p *Publisher) render(r *render.Renderer, n types.Note, slug string) render.Result {
	if n.Markup != "" {
		return r.RenderMarkup(n.Markup, slug)
	}
	if n.Content == nil {
		return render.Result{}
	}
	return r.Render(*n.Content, slug)
}
