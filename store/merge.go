package store

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/stevemurr/jsonrecords/document"
)

// Skipped names a file MergeDirectory left out because it did not parse.
type Skipped struct {
	Name string
	Err  error
}

// MergeResult is the outcome of MergeDirectory.
type MergeResult struct {
	// Collection maps file stem to the file's document.
	Collection *document.Object
	Skipped    []Skipped
}

// MergeDirectory loads every file in dir whose name matches the store's
// pattern and returns them keyed by file name without extension.
// Subdirectories are not descended into. Files that are not valid documents
// are logged, listed in Skipped and otherwise ignored; any other read failure
// aborts the merge. Files are visited in lexical order.
func (s *Store) MergeDirectory(dir string) (MergeResult, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return MergeResult{}, newError(OpMerge, dir, ErrNotFound, err)
		}
		return MergeResult{}, newError(OpMerge, dir, ErrIO, err)
	}
	if !info.IsDir() {
		return MergeResult{}, newError(OpMerge, dir, ErrNotFound, errors.New("not a directory"))
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return MergeResult{}, newError(OpMerge, dir, ErrIO, err)
	}

	res := MergeResult{Collection: document.NewObject()}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if ok, _ := doublestar.Match(s.pattern, name); !ok {
			continue
		}
		doc, err := s.Load(filepath.Join(dir, name))
		if errors.Is(err, ErrParse) {
			s.log.Warn("skipping malformed document",
				zap.String("dir", dir),
				zap.String("file", name),
				zap.Error(err),
			)
			res.Skipped = append(res.Skipped, Skipped{Name: name, Err: err})
			continue
		}
		if err != nil {
			return MergeResult{}, err
		}
		res.Collection.Set(mergeKey(name), document.ObjectValue(doc))
	}

	s.log.Info("merged directory",
		zap.String("dir", dir),
		zap.Int("documents", res.Collection.Len()),
		zap.Int("skipped", len(res.Skipped)),
	)
	return res, nil
}

// mergeKey strips the extension from name. Leading dots do not start an
// extension, so ".json" keeps its full name and ".hidden.json" becomes
// ".hidden".
func mergeKey(name string) string {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	if strings.Trim(stem, ".") == "" {
		return name
	}
	return stem
}
