package store

import (
	"github.com/stevemurr/jsonrecords/document"
)

// Match is one record found by Search.
type Match struct {
	Key    string
	Record *document.Object
}

// Search loads the document at path and returns every record whose field
// equals value after case folding, in document order. An empty field means
// DefaultField. Records without the field are skipped.
func (s *Store) Search(path, value, field string) ([]Match, error) {
	if field == "" {
		field = DefaultField
	}
	doc, err := s.Load(path)
	if err != nil {
		return nil, err
	}
	return Find(doc, value, field), nil
}

// Find is Search over an already loaded document. The field value is compared
// in its string form (see document.Value.String), so numbers and booleans can
// be searched for too: a null field matches "null" and booleans match
// "true"/"false" (JSON spelling, not "None"/"True"). Entries that are not
// objects are ignored.
func Find(doc *document.Object, value, field string) []Match {
	want := document.Fold(value)
	matches := []Match{}
	for key, entry := range doc.All() {
		rec := entry.Object()
		if rec == nil {
			continue
		}
		v, ok := rec.Get(field)
		if !ok {
			continue
		}
		if document.Fold(v.String()) == want {
			matches = append(matches, Match{Key: key, Record: rec})
		}
	}
	return matches
}
