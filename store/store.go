package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	log "github.com/sirupsen/logrus"
)

// ErrCorruptDocument indicates the data file exists but cannot be parsed.
// This is fatal at startup: refusing to run beats silently clobbering data.
var ErrCorruptDocument = errors.New("store: corrupt document")

// Store owns the single JSON document. All mutation goes through a
// UnitOfWork, which holds the store's exclusive lock for the whole
// read-modify-write-serialize cycle, so no partial write is ever observable.
type Store struct {
	path string

	mu  sync.Mutex
	doc *Document
}

// Open loads the document at path. A missing file yields an empty default
// schema; an unparseable file is an error.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		log.Infof("No data file at %s, starting with empty store", path)
		s.doc = newDocument()
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("failed to read data file %s: %w", path, err)
	}

	doc := newDocument()
	if err := json.Unmarshal(raw, doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptDocument, path, err)
	}
	doc.ensureShape()
	s.doc = doc

	log.WithFields(log.Fields{
		"path":      path,
		"users":     len(doc.Users),
		"reminders": len(doc.Reminders),
		"polls":     len(doc.Polls),
	}).Info("Loaded data file")
	return s, nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// persist serializes doc to a temp file and renames it into place. Callers
// must hold s.mu.
func (s *Store) persist(doc *Document) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize document: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write temp data file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace data file: %w", err)
	}
	return nil
}
