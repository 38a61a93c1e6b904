// Package memory provides in-process document storage.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/ports"
)

// Store implements ports.DocumentStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]string
	mu   sync.RWMutex
}

var _ ports.DocumentStore = (*Store)(nil)

// NewStore creates a new in-memory store seeded with docs (which may be nil).
func NewStore(docs map[string]string) *Store {
	data := make(map[string]string, len(docs))
	for k, v := range docs {
		data[k] = v
	}
	return &Store{data: data}
}

// Get returns the document stored under key.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.data[key]
	if !ok {
		return "", domain.ErrDocumentNotFound
	}
	return doc, nil
}

// Put stores a document.
func (s *Store) Put(ctx context.Context, key, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = text
	return nil
}

// Delete removes a document.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// List returns the stored keys.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	sort.Strings(keys) // Deterministic order
	return keys, nil
}
