// Package redis provides a Redis-backed implementation of the snippet repository.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/roguepikachu/synopsis/internal/domain"
	"github.com/roguepikachu/synopsis/internal/repository"
)

func keySnippet(id string) string { return "snippet:" + id }

// SnippetRepository implements repository.SnippetRepository using Redis as backend.
// Records are stored as JSON documents without expiry.
type SnippetRepository struct {
	client *redis.Client
}

// NewSnippetRepository creates a new Redis-backed snippet repository.
func NewSnippetRepository(client *redis.Client) *SnippetRepository {
	return &SnippetRepository{client: client}
}

// Insert adds a new snippet to Redis. An existing key is never overwritten.
func (r *SnippetRepository) Insert(ctx context.Context, s domain.Snippet) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal snippet: %w", err)
	}
	ok, err := r.client.SetNX(ctx, keySnippet(s.ID), data, 0).Result()
	if err != nil {
		return fmt.Errorf("redis setnx: %w", err)
	}
	if !ok {
		return fmt.Errorf("duplicate snippet id %s", s.ID)
	}
	return nil
}

// FindByID retrieves a snippet by its ID from Redis.
func (r *SnippetRepository) FindByID(ctx context.Context, id string) (domain.Snippet, error) {
	val, err := r.client.Get(ctx, keySnippet(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Snippet{}, repository.ErrNotFound
		}
		return domain.Snippet{}, fmt.Errorf("redis get: %w", err)
	}
	var s domain.Snippet
	if err := json.Unmarshal(val, &s); err != nil {
		return domain.Snippet{}, fmt.Errorf("unmarshal: %w", err)
	}
	return s, nil
}

// Ping checks connectivity for readiness probes.
func (r *SnippetRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

var _ repository.SnippetRepository = (*SnippetRepository)(nil)
