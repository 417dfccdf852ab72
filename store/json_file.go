package store

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/stevemurr/jsonrecords/document"
)

// Load reads the document at path. Nothing is retained after the call.
func (s *Store) Load(path string) (*document.Object, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, newError(OpLoad, path, ErrNotFound, err)
		}
		return nil, newError(OpLoad, path, ErrIO, err)
	}
	doc, err := document.ParseObject(data)
	if err != nil {
		return nil, newError(OpLoad, path, ErrParse, err)
	}
	return doc, nil
}

// Save serializes doc and overwrites path with it.
func (s *Store) Save(path string, doc *document.Object) error {
	b, err := s.Format(document.ObjectValue(doc))
	if err != nil {
		return newError(OpWrite, path, ErrIO, err)
	}
	if s.atomic {
		err = writeAtomic(path, b, s.perm)
	} else {
		err = os.WriteFile(path, b, s.perm)
	}
	if err != nil {
		return newError(OpWrite, path, ErrIO, err)
	}
	return nil
}

// writeAtomic writes to a temporary file in the target's directory, syncs it
// and renames it over path, so readers see either the old or the new content.
// It does not serialize concurrent writers.
func writeAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}
	_ = os.Chmod(tmpPath, perm)

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	// Best effort: persist the rename itself.
	_ = syncDir(dir)
	return nil
}

func syncDir(dir string) error {
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Sync()
}
