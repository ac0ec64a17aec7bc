// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package notestore reads notes straight out of the Notes app's
// NoteStore.sqlite database. The database is opened read-only; note bodies
// are decoded from their compressed records.
package notestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/notepub/internal/decode"
	"github.com/pdiddy/notepub/internal/logging"
	"github.com/pdiddy/notepub/pkg/types"
)

// DefaultPath is the database location relative to the home directory.
const DefaultPath = "Library/Group Containers/group.com.apple.notes/NoteStore.sqlite"

var (
	ErrDatabaseNotFound = errors.New("note database not found")
	ErrFolderNotFound   = errors.New("folder not found")
)

// coreDataEpoch is the zero point of Core Data timestamps.
var coreDataEpoch = time.Date(2001, time.January, 1, 0, 0, 0, 0, time.UTC)

const folderQuery = `SELECT Z_PK FROM ZICCLOUDSYNCINGOBJECT WHERE ZTITLE2 = ?`

const notesQuery = `
	SELECT
		n.Z_PK,
		n.ZIDENTIFIER,
		n.ZTITLE1,
		n.ZSNIPPET,
		n.ZCREATIONDATE3,
		n.ZMODIFICATIONDATE1,
		nd.ZDATA
	FROM ZICCLOUDSYNCINGOBJECT n
	LEFT JOIN ZICNOTEDATA nd ON nd.Z_PK = n.ZNOTEDATA
	WHERE n.ZFOLDER = ?
	ORDER BY n.ZMODIFICATIONDATE1 DESC`

// Store is a read-only handle on a note database.
type Store struct {
	db   *sql.DB
	path string
	log  *logging.Logger
}

// ResolvePath expands an empty path to the default database location and
// a leading "~/" to the home directory.
func ResolvePath(path string) (string, error) {
	home, err := os.UserHomeDir()
	switch {
	case path == "":
		if err != nil {
			return "", fmt.Errorf("locating home directory: %w", err)
		}
		return filepath.Join(home, DefaultPath), nil
	case len(path) > 1 && path[:2] == "~/":
		if err != nil {
			return "", fmt.Errorf("locating home directory: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}

// Open opens the database at path read-only. A missing file is reported
// as ErrDatabaseNotFound rather than silently creating an empty database.
func Open(path string, log *logging.Logger) (*Store, error) {
	if log == nil {
		log = logging.Nop()
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDatabaseNotFound, path)
		}
		return nil, fmt.Errorf("checking database: %w", err)
	}

	dsn := (&url.URL{Scheme: "file", Path: path, RawQuery: "mode=ro&_query_only=true"}).String()
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("opening database: %w", err)
	}

	return &Store{db: db, path: path, log: log.With("database_path", path)}, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// FolderID returns the primary key of the folder called name.
func (s *Store) FolderID(ctx context.Context, name string) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, folderQuery, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: %q", ErrFolderNotFound, name)
	}
	if err != nil {
		return 0, fmt.Errorf("looking up folder %q: %w", name, err)
	}
	return id, nil
}

// NotesInFolder returns the notes of a folder, most recently modified
// first. A note whose record cannot be decoded is still returned, with an
// empty body, and a warning is logged.
func (s *Store) NotesInFolder(ctx context.Context, folderID int64) ([]types.Note, error) {
	rows, err := s.db.QueryContext(ctx, notesQuery, folderID)
	if err != nil {
		return nil, fmt.Errorf("querying notes: %w", err)
	}
	defer rows.Close()

	var notes []types.Note
	for rows.Next() {
		var (
			note              types.Note
			identifier, title sql.NullString
			snippet           sql.NullString
			created, modified sql.NullFloat64
			data              []byte
		)
		if err := rows.Scan(&note.ID, &identifier, &title, &snippet, &created, &modified, &data); err != nil {
			return nil, fmt.Errorf("scanning note row: %w", err)
		}

		note.Identifier = identifier.String
		note.Snippet = snippet.String
		note.Created = CoreDataTime(created)
		note.Modified = CoreDataTime(modified)

		if len(data) > 0 {
			parsed, err := decode.Parse(data)
			if err != nil {
				s.log.Warn("note body could not be decoded", "note_id", note.ID, "error", err)
			}
			note.Content = &parsed
		}

		note.Title = title.String
		if note.Title == "" && note.Content != nil {
			note.Title = note.Content.Title
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading note rows: %w", err)
	}
	return notes, nil
}

// Notes returns the notes of the folder called folder.
func (s *Store) Notes(ctx context.Context, folder string) ([]types.Note, error) {
	id, err := s.FolderID(ctx, folder)
	if err != nil {
		return nil, err
	}
	notes, err := s.NotesInFolder(ctx, id)
	if err != nil {
		return nil, err
	}
	s.log.Debug("loaded notes", "folder", folder, "count", len(notes))
	return notes, nil
}

// CoreDataTime converts seconds since 2001-01-01 UTC. NULL converts to
// the zero time.
func CoreDataTime(ts sql.NullFloat64) time.Time {
	if !ts.Valid {
		return time.Time{}
	}
	return coreDataEpoch.Add(time.Duration(ts.Float64 * float64(time.Second)))
}
