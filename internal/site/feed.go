// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package site

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/pdiddy/notepub/pkg/types"
)

// DefaultMaxPosts is how many posts the index and feed list.
const DefaultMaxPosts = 30

// Post is one rendered article as listed on the index and in the feed.
type Post struct {
	Title   string
	Slug    string
	Created time.Time
	Content string
	Snippet string
}

// Recent returns up to n posts, newest first. Posts created at the same
// instant keep their input order.
func Recent(posts []Post, n int) []Post {
	sorted := slices.Clone(posts)
	slices.SortStableFunc(sorted, func(a, b Post) int {
		return b.Created.Compare(a.Created)
	})
	if n > 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// IndexPage fills the index template with the snippets of posts.
func IndexPage(tmpl string, posts []Post) string {
	snippets := make([]string, len(posts))
	for i, p := range posts {
		snippets[i] = p.Snippet
	}
	return Execute(tmpl, map[string]string{"articles": strings.Join(snippets, "\n")})
}

// FeedDocument fills the feed template with one item per post.
func FeedDocument(tmpl string, site types.SiteConfig, posts []Post) string {
	return Execute(tmpl, map[string]string{
		"site_title":       site.Title,
		"site_url":         site.URL,
		"site_description": site.Description,
		"items":            FeedItems(posts, site.URL),
	})
}

// FeedItems renders RSS <item> elements. Content is wrapped in CDATA.
func FeedItems(posts []Post, siteURL string) string {
	items := make([]string, len(posts))
	for i, p := range posts {
		link := strings.TrimSuffix(siteURL, "/") + "/" + p.Slug + ".html"
		items[i] = fmt.Sprintf(`<item>
  <title>%s</title>
  <link>%s</link>
  <pubDate>%s</pubDate>
  <description><![CDATA[%s]]></description>
  <guid>%s</guid>
</item>`, escapeXML(p.Title), link, RFC822Date(p.Created), EscapeCDATA(p.Content), link)
	}
	return strings.Join(items, "\n")
}

// EscapeCDATA splits any "]]>" so content stays inside its CDATA section.
func EscapeCDATA(s string) string {
	return strings.ReplaceAll(s, "]]>", "]]]]><![CDATA[>")
}

var xmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}
