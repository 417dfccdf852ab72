package store

import (
	"database/sql"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"github.com/stevemurr/jsonrecords/document"
)

// SqliteSink exports merged collections into a SQLite database.
//
// Tables:
//
//	collections(name)               PRIMARY KEY (name)
//	records(collection, key, data)  PRIMARY KEY (collection, key)
//
// Every merged document gets a collections row, so documents without
// records are still listed. collection is the source file stem, key the
// record key and data the record as compact JSON. Re-exporting replaces rows
// with the same primary key.
type SqliteSink struct {
	db   *sql.DB
	path string
}

func NewSqliteSink(dbPath string) (*SqliteSink, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, newError(OpExport, dbPath, ErrIO, err)
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, newError(OpExport, dbPath, ErrIO, err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, newError(OpExport, dbPath, ErrIO, err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS collections (
		name TEXT PRIMARY KEY
	)`); err != nil {
		db.Close()
		return nil, newError(OpExport, dbPath, ErrIO, err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS records (
		collection TEXT NOT NULL,
		key TEXT NOT NULL,
		data TEXT NOT NULL,
		PRIMARY KEY (collection, key)
	)`); err != nil {
		db.Close()
		return nil, newError(OpExport, dbPath, ErrIO, err)
	}
	return &SqliteSink{db: db, path: dbPath}, nil
}

func (s *SqliteSink) Close() error {
	return s.db.Close()
}

// Save upserts every record of every document in one transaction.
func (s *SqliteSink) Save(collection *document.Object) error {
	tx, err := s.db.Begin()
	if err != nil {
		return newError(OpExport, s.path, ErrIO, err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT INTO records (collection, key, data) VALUES (?, ?, ?)
		 ON CONFLICT(collection, key) DO UPDATE SET data = excluded.data`,
	)
	if err != nil {
		return newError(OpExport, s.path, ErrIO, err)
	}
	defer stmt.Close()

	for name, doc := range collection.All() {
		if _, err := tx.Exec("INSERT OR IGNORE INTO collections (name) VALUES (?)", name); err != nil {
			return newError(OpExport, s.path, ErrIO, err)
		}
		for key, rec := range doc.Object().All() {
			b, err := json.Marshal(rec)
			if err != nil {
				return newError(OpExport, s.path, ErrIO, err)
			}
			if _, err := stmt.Exec(name, key, string(b)); err != nil {
				return newError(OpExport, s.path, ErrIO, err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return newError(OpExport, s.path, ErrIO, err)
	}
	return nil
}

// Collections returns the names of all exported collections, including
// ones without records.
func (s *SqliteSink) Collections() ([]string, error) {
	rows, err := s.db.Query("SELECT name FROM collections ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Load reads an exported collection back as a document, ordered by key.
func (s *SqliteSink) Load(collection string) (*document.Object, error) {
	rows, err := s.db.Query("SELECT key, data FROM records WHERE collection = ? ORDER BY key", collection)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	doc := document.NewObject()
	for rows.Next() {
		var key, raw string
		if err := rows.Scan(&key, &raw); err != nil {
			return nil, err
		}
		v, err := document.Parse([]byte(raw))
		if err != nil {
			return nil, newError(OpLoad, s.path, ErrParse, err)
		}
		doc.Set(key, v)
	}
	return doc, rows.Err()
}
