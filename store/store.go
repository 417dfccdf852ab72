// Package store searches, edits and merges game-data documents kept as JSON
// files on disk.
//
// Every operation is a complete unit of work: it opens the file, reads it,
// scans or mutates it, optionally rewrites it, and closes it again. Nothing is
// cached between calls and no file is locked. Two processes editing the same
// document race and the last writer wins; with the default (non-atomic) write
// mode a crash during a rewrite can leave a truncated file behind.
package store

import (
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/stevemurr/jsonrecords/document"
)

// DefaultField is the record field searched when none is given.
const DefaultField = "name"

// Options configures a Store. Zero values select the defaults.
type Options struct {
	// Indent is the per-level indentation of rewritten documents
	// (default four spaces).
	Indent string
	// Atomic writes go to a temporary file that is renamed over the target.
	Atomic bool
	// FileMode is used when a file is created (default 0644).
	FileMode os.FileMode
	// Pattern selects the files picked up by MergeDirectory (default "*.json").
	Pattern string
}

// Store carries the settings shared by the record operations. It holds no
// document state.
type Store struct {
	indent  string
	atomic  bool
	perm    os.FileMode
	pattern string
	log     *zap.Logger
}

// New creates a Store. A nil logger discards diagnostics.
func New(opts Options, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{
		indent:  opts.Indent,
		atomic:  opts.Atomic,
		perm:    opts.FileMode,
		pattern: opts.Pattern,
		log:     log,
	}
	if s.indent == "" {
		s.indent = strings.Repeat(" ", 4)
	}
	if s.perm == 0 {
		s.perm = 0o644
	}
	if s.pattern == "" {
		s.pattern = "*.json"
	}
	if !doublestar.ValidatePattern(s.pattern) {
		return nil, errors.Errorf("invalid merge pattern %q", s.pattern)
	}
	return s, nil
}

// Format renders v with the store's indentation.
func (s *Store) Format(v document.Value) ([]byte, error) {
	return document.Encode(v, s.indent)
}
