package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Kind names one record collection and its backing file.
type Kind string

const (
	Users  Kind = "users"
	Events Kind = "events"
	Jobs   Kind = "jobs"
	News   Kind = "news"
)

var kinds = []Kind{Users, Events, Jobs, News}

// Store persists one JSON array per record kind under a single directory.
// Every read loads the whole file and every mutation rewrites it; there is no
// partial update. Mutations go through Update, which holds the kind's writer
// lock across the read-modify-write so concurrent requests cannot lose appends.
type Store struct {
	dir string
	mu  map[Kind]*sync.Mutex
}

// Open creates the data directory if needed and seeds each collection file
// with an empty array on first run.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	s := &Store{dir: dir, mu: make(map[Kind]*sync.Mutex, len(kinds))}
	for _, kind := range kinds {
		s.mu[kind] = &sync.Mutex{}
		path := s.path(kind)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
				return nil, err
			}
		}
	}
	return s, nil
}

func (s *Store) path(kind Kind) string {
	return filepath.Join(s.dir, string(kind)+".json")
}

// Load returns the collection in insertion order. A missing or unreadable
// backing file reads as an empty collection; callers never special-case
// first run.
func Load[T any](s *Store, kind Kind) []T {
	data, err := os.ReadFile(s.path(kind))
	if err != nil {
		return nil
	}
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		log.WithFields(log.Fields{"kind": kind, "error": err}).
			Warn("record file unparsable, treating as empty")
		return nil
	}
	return records
}

// Save serializes the full collection and replaces the backing file.
func Save[T any](s *Store, kind Kind, records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(kind), data, 0o644)
}

// Update runs fn on the current collection and persists its result, all under
// the kind's writer lock. fn returning an error abandons the write.
func Update[T any](s *Store, kind Kind, fn func([]T) ([]T, error)) error {
	s.mu[kind].Lock()
	defer s.mu[kind].Unlock()

	records, err := fn(Load[T](s, kind))
	if err != nil {
		return err
	}
	return Save(s, kind, records)
}
