// Package memory implements an in-memory document store for development
// and testing.
package memory

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/tasksync/backend/store"
)

// Store is a mutex-guarded path → document map. FailWith lets tests
// inject I/O failures for specific paths.
type Store struct {
	mu   sync.Mutex
	docs map[string]json.RawMessage
	fail map[string]error

	// Gets counts Get calls per path, for lookup-dedup assertions.
	Gets map[string]int
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		docs: make(map[string]json.RawMessage),
		fail: make(map[string]error),
		Gets: make(map[string]int),
	}
}

var _ store.Client = (*Store)(nil)

// FailWith makes every operation on path return err until cleared with a
// nil err.
func (s *Store) FailWith(path string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.fail, path)
		return
	}
	s.fail[path] = err
}

func (s *Store) Get(ctx context.Context, path string) (json.RawMessage, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Gets[path]++
	if err := s.fail[path]; err != nil {
		return nil, false, err
	}
	doc, ok := s.docs[path]
	if !ok {
		return nil, false, nil
	}
	return append(json.RawMessage(nil), doc...), true, nil
}

func (s *Store) Set(ctx context.Context, path string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fail[path]; err != nil {
		return err
	}
	s.docs[path] = payload
	return nil
}

func (s *Store) Remove(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fail[path]; err != nil {
		return err
	}
	delete(s.docs, path)
	return nil
}

func (s *Store) List(ctx context.Context, prefix string) (map[string]json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fail[prefix]; err != nil {
		return nil, err
	}

	docs := make(map[string]json.RawMessage)
	for path, doc := range s.docs {
		if strings.HasPrefix(path, prefix+"/") {
			child := strings.TrimPrefix(path, prefix+"/")
			docs[child] = append(json.RawMessage(nil), doc...)
		}
	}
	return docs, nil
}

// Len returns the number of stored documents.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.docs)
}
