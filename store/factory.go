package store

import (
	"github.com/pkg/errors"

	"github.com/stevemurr/jsonrecords/document"
)

// Sink persists a merged collection.
type Sink interface {
	// Save writes the collection (file stem -> document).
	Save(collection *document.Object) error
	Close() error
}

// NewSink creates a Sink based on the backend name.
//
// Supported backends:
//
//	"json"   - one JSON document at path (default)
//	"sqlite" - SQLite database at path, one row per record
func (s *Store) NewSink(backend, path string) (Sink, error) {
	switch backend {
	case "json", "":
		return &JSONFileSink{store: s, path: path}, nil
	case "sqlite":
		return NewSqliteSink(path)
	default:
		return nil, errors.Errorf("unknown sink backend: %q (supported: json, sqlite)", backend)
	}
}

var (
	_ Sink = (*JSONFileSink)(nil)
	_ Sink = (*SqliteSink)(nil)
)

// JSONFileSink writes the whole collection to a single file, formatted like
// every other document the store writes.
type JSONFileSink struct {
	store *Store
	path  string
}

func (j *JSONFileSink) Save(collection *document.Object) error {
	return j.store.Save(j.path, collection)
}

func (j *JSONFileSink) Close() error { return nil }
