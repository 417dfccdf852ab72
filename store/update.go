package store

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/stevemurr/jsonrecords/document"
)

// Outcome says what Update did with the target key.
type Outcome int

const (
	// Updated means the fields were merged into an existing record.
	Updated Outcome = iota
	// Created means a new record was inserted.
	Created
	// KeyNotFound means the key was absent and creation was not requested.
	// The file was left untouched.
	KeyNotFound
)

func (o Outcome) String() string {
	switch o {
	case Updated:
		return "updated"
	case Created:
		return "created"
	case KeyNotFound:
		return "key not found"
	default:
		return "unknown"
	}
}

// UpdateResult reports the outcome of one Update call.
type UpdateResult struct {
	Key     string
	Outcome Outcome
}

// Update merges updates into the record stored under key and rewrites the
// whole document at path. Fields not named in updates keep their values.
//
// When key is absent and createIfMissing is set, updates becomes a new
// record at key. Otherwise the absence is reported as KeyNotFound (not an
// error) and the file is not rewritten.
//
// This is a plain read-modify-write: it neither locks the file nor detects
// concurrent edits.
func (s *Store) Update(path, key string, updates *document.Object, createIfMissing bool) (UpdateResult, error) {
	res := UpdateResult{Key: key}
	doc, err := s.Load(path)
	if err != nil {
		return res, err
	}

	existing, ok := doc.Get(key)
	switch {
	case ok:
		rec := existing.Object()
		if rec == nil {
			return res, newError(OpUpdate, path, ErrNotRecord,
				errors.Errorf("key %q holds a %s", key, existing.Kind()))
		}
		rec.Merge(updates)
		res.Outcome = Updated
	case createIfMissing:
		doc.Set(key, document.ObjectValue(updates.Clone()))
		res.Outcome = Created
	default:
		res.Outcome = KeyNotFound
		s.log.Warn("key not found in document",
			zap.String("path", path),
			zap.String("key", key),
		)
		return res, nil
	}

	if err := s.Save(path, doc); err != nil {
		return res, err
	}
	s.log.Debug("record written",
		zap.String("path", path),
		zap.String("key", key),
		zap.Stringer("outcome", res.Outcome),
		zap.Strings("fields", updates.Keys()),
	)
	return res, nil
}

// SearchAndUpdate applies updates to every record whose field matches value
// (see Search). Each match is written with its own Update call, so the file
// is read and rewritten once per match.
func (s *Store) SearchAndUpdate(path, value, field string, updates *document.Object) ([]UpdateResult, error) {
	matches, err := s.Search(path, value, field)
	if err != nil {
		return nil, err
	}
	results := make([]UpdateResult, 0, len(matches))
	for _, m := range matches {
		res, err := s.Update(path, m.Key, updates, false)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}
