package testsupport

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// NoteStore writes a minimal note database holding one folder, "blog",
// with primary key 1.
func NoteStore(t testing.TB) (string, *sql.DB) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Note Store.sqlite")
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("open note store: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	for _, stmt := range []string{
		`CREATE TABLE ZICCLOUDSYNCINGOBJECT (
			Z_PK INTEGER PRIMARY KEY,
			ZIDENTIFIER TEXT,
			ZTITLE1 TEXT,
			ZTITLE2 TEXT,
			ZSNIPPET TEXT,
			ZCREATIONDATE3 REAL,
			ZMODIFICATIONDATE1 REAL,
			ZNOTEDATA INTEGER,
			ZFOLDER INTEGER
		)`,
		`CREATE TABLE ZICNOTEDATA (Z_PK INTEGER PRIMARY KEY, ZDATA BLOB)`,
		`INSERT INTO ZICCLOUDSYNCINGOBJECT (Z_PK, ZTITLE2) VALUES (1, 'blog')`,
	} {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("create note store: %v", err)
		}
	}
	return path, db
}

// InsertNote adds a note with body data to the "blog" folder. Dates are
// Core Data seconds; a nil title leaves the title column empty.
func InsertNote(t testing.TB, db *sql.DB, pk int, title any, created, modified float64, data []byte) {
	t.Helper()
	if _, err := db.Exec(`INSERT INTO ZICNOTEDATA (Z_PK, ZDATA) VALUES (?, ?)`, pk, data); err != nil {
		t.Fatalf("insert note data: %v", err)
	}
	_, err := db.Exec(`INSERT INTO ZICCLOUDSYNCINGOBJECT
		(Z_PK, ZIDENTIFIER, ZTITLE1, ZSNIPPET, ZCREATIONDATE3, ZMODIFICATIONDATE1, ZNOTEDATA, ZFOLDER)
		VALUES (?, ?, ?, 'snip', ?, ?, ?, 1)`,
		pk, "ID-"+string(rune('A'+pk)), title, created, modified, pk)
	if err != nil {
		t.Fatalf("insert note: %v", err)
	}
}
