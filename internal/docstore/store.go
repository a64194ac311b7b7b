// Package docstore implements a file-backed document store: one JSON file
// holding a single named array of records, read and rewritten as a whole on
// every mutation.
package docstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// ErrStorage marks any failure to read, decode, or persist the backing file.
var ErrStorage = errors.New("document store failure")

// Store owns a single JSON document on disk. All access to the document goes
// through the store's mutex, so load/modify/persist sequences never interleave
// within one process. The store assumes exclusive ownership of its file;
// running two processes against the same path is not supported.
type Store[T any] struct {
	mu    sync.Mutex
	path  string
	field string
}

// Open returns a store over the JSON file at path. The document has the shape
// {"<field>": [...]}; the file itself is created lazily on first access.
func Open[T any](path, field string) *Store[T] {
	return &Store[T]{path: path, field: field}
}

// Load returns the current collection. A missing file is not an error: it is
// initialized with an empty collection and that collection is returned.
func (s *Store[T]) Load() ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Mutate runs fn against the current collection and persists whatever fn
// returns. The whole sequence holds the store lock, and an error from fn
// aborts the mutation without touching the file.
func (s *Store[T]) Mutate(fn func(records []T) ([]T, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return err
	}

	updated, err := fn(records)
	if err != nil {
		return err
	}

	return s.persist(updated)
}

func (s *Store[T]) load() ([]T, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, storageError("read "+s.path, err)
		}
		if err := s.persist(nil); err != nil {
			return nil, err
		}
		return []T{}, nil
	}

	var doc map[string][]T
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, storageError("decode "+s.path, err)
	}

	records, ok := doc[s.field]
	if !ok {
		return nil, storageError("decode "+s.path, fmt.Errorf("missing %q field", s.field))
	}

	return records, nil
}

// persist writes the full document to a temp file in the same directory and
// renames it over the target, so a crash mid-write leaves the previous
// document intact.
func (s *Store[T]) persist(records []T) error {
	if records == nil {
		records = []T{}
	}

	buf, err := json.MarshalIndent(map[string][]T{s.field: records}, "", "  ")
	if err != nil {
		return storageError("encode document", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return storageError("create data directory", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return storageError("create temp file", err)
	}

	if _, err := tmp.Write(buf); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return storageError("write temp file", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return storageError("close temp file", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return storageError("replace "+s.path, err)
	}

	return nil
}

// NextID returns one more than the largest identifier in records, or 1 for an
// empty collection. Callers must invoke it inside Mutate so that concurrent
// creates cannot observe the same maximum.
func NextID[T any](records []T, id func(T) int64) int64 {
	var max int64
	for _, r := range records {
		if v := id(r); v > max {
			max = v
		}
	}
	return max + 1
}

func storageError(op string, err error) error {
	return fmt.Errorf("docstore: %s: %v: %w", op, err, ErrStorage)
}
