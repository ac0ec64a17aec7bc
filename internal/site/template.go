// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package site

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// ErrMissingTemplate means a required template file does not exist.
var ErrMissingTemplate = errors.New("template not found")

// Template file names inside the template directory.
const (
	ArticleTemplate = "article.html"
	SnippetTemplate = "article-snippet.html"
	IndexTemplate   = "index.html"
	FeedTemplate    = "feed.xml"
)

// Templates holds the four page templates.
type Templates struct {
	Article string
	Snippet string
	Index   string
	Feed    string
}

// LoadTemplates reads every template from dir. Any missing file fails
// the whole load.
func LoadTemplates(dir string) (Templates, error) {
	var t Templates
	for name, dst := range map[string]*string{
		ArticleTemplate: &t.Article,
		SnippetTemplate: &t.Snippet,
		IndexTemplate:   &t.Index,
		FeedTemplate:    &t.Feed,
	} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			return Templates{}, fmt.Errorf("%w: %s", ErrMissingTemplate, path)
		}
		if err != nil {
			return Templates{}, fmt.Errorf("reading template %s: %w", path, err)
		}
		*dst = string(data)
	}
	return t, nil
}

var tokenRe = regexp.MustCompile(`\{\{(\w+)\}\}`)

// Execute substitutes {{name}} tokens from vars in a single pass.
// Substituted values are never rescanned, and unknown tokens are left
// as they are.
func Execute(tmpl string, vars map[string]string) string {
	return tokenRe.ReplaceAllStringFunc(tmpl, func(tok string) string {
		if v, ok := vars[tok[2:len(tok)-2]]; ok {
			return v
		}
		return tok
	})
}
