// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// LookupEntry addresses one published note.
type LookupEntry struct {
	Title      string
	Slug       string
	Identifier string
	Created    time.Time
}

// Lookup resolves link targets to slugs. It is built once over every note
// of a batch, including notes that will not be re-rendered, and is read
// only afterwards.
type Lookup struct {
	byTitle map[string]LookupEntry
	byID    map[string]LookupEntry
}

// NewLookup indexes entries by exact title and by identifier. When two
// entries share a key the later one wins.
func NewLookup(entries []LookupEntry) *Lookup {
	l := &Lookup{
		byTitle: make(map[string]LookupEntry, len(entries)),
		byID:    make(map[string]LookupEntry, len(entries)),
	}
	for _, e := range entries {
		l.byTitle[e.Title] = e
		if e.Identifier != "" {
			l.byID[normalizeID(e.Identifier)] = e
		}
	}
	return l
}

// Len returns the number of distinct titles.
func (l *Lookup) Len() int {
	if l == nil {
		return 0
	}
	return len(l.byTitle)
}

// ByTitle finds an entry by its exact, case-sensitive title.
func (l *Lookup) ByTitle(title string) (LookupEntry, bool) {
	if l == nil {
		return LookupEntry{}, false
	}
	e, ok := l.byTitle[title]
	return e, ok
}

// ByIdentifier finds an entry by note identifier, ignoring case.
func (l *Lookup) ByIdentifier(id string) (LookupEntry, bool) {
	if l == nil {
		return LookupEntry{}, false
	}
	e, ok := l.byID[normalizeID(id)]
	return e, ok
}

// normalizeID lower-cases an identifier, canonicalising it first when it
// parses as a UUID.
func normalizeID(id string) string {
	if u, err := uuid.Parse(id); err == nil {
		return u.String()
	}
	return strings.ToLower(id)
}
