// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package site produces the static site around rendered notes: slugs,
// dates, template substitution, the index and feed, the publish manifest
// and the files on disk.
package site

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	slugStripRe = regexp.MustCompile(`[^a-z0-9\s]`)
	slugSpaceRe = regexp.MustCompile(`\s+`)
)

// Slug returns the permanent address of a note, "YYYY/MM/title-slug",
// from its creation date and title. Accents are folded to their base
// letters before anything outside [a-z0-9] is dropped.
func Slug(title string, created time.Time) string {
	s := strings.ToLower(foldDiacritics(title))
	s = slugStripRe.ReplaceAllString(s, "")
	s = slugSpaceRe.ReplaceAllString(strings.TrimSpace(s), "-")
	if s == "" {
		s = "untitled"
	}
	return created.Format("2006/01") + "/" + s
}

func foldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// HumanDate formats t as "January 2, 2006".
func HumanDate(t time.Time) string {
	return t.Format("January 2, 2006")
}

// ISODateTime formats t for a datetime attribute.
func ISODateTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

// RFC822Date formats t for an RSS pubDate, always in UTC.
func RFC822Date(t time.Time) string {
	return t.UTC().Format("Mon, 02 Jan 2006 15:04:05 +0000")
}
