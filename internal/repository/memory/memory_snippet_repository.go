// Package memory provides an in-memory snippet repository for local development and tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/roguepikachu/synopsis/internal/domain"
	"github.com/roguepikachu/synopsis/internal/repository"
)

// SnippetRepository is a concurrency-safe in-memory implementation of repository.SnippetRepository.
type SnippetRepository struct {
	mu    sync.RWMutex
	byID  map[string]domain.Snippet
	finds int
}

// Option configures the repository.
type Option func(*SnippetRepository)

// WithItems seeds the repository with the provided snippets (by ID).
func WithItems(items ...domain.Snippet) Option {
	return func(r *SnippetRepository) {
		for _, s := range items {
			r.byID[s.ID] = s
		}
	}
}

// NewSnippetRepository creates an empty in-memory repository.
func NewSnippetRepository(opts ...Option) *SnippetRepository {
	r := &SnippetRepository{byID: make(map[string]domain.Snippet)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Insert stores s. Identifiers are never overwritten.
func (r *SnippetRepository) Insert(_ context.Context, s domain.Snippet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[s.ID]; ok {
		return fmt.Errorf("duplicate snippet id %s", s.ID)
	}
	r.byID[s.ID] = s
	return nil
}

// FindByID returns the snippet stored under id.
func (r *SnippetRepository) FindByID(_ context.Context, id string) (domain.Snippet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finds++
	if s, ok := r.byID[id]; ok {
		return s, nil
	}
	return domain.Snippet{}, repository.ErrNotFound
}

// Len reports how many snippets are stored.
func (r *SnippetRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

// Finds reports how many lookups reached the repository.
func (r *SnippetRepository) Finds() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.finds
}

// Ping always succeeds; it lets the repository take part in readiness checks.
func (r *SnippetRepository) Ping(context.Context) error { return nil }

var _ repository.SnippetRepository = (*SnippetRepository)(nil)
