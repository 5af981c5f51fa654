// Package repository defines snippet persistence: the backend contract and the
// Store accessor that assigns identifiers and timestamps.
package repository

import (
	"context"
	"errors"

	"github.com/roguepikachu/synopsis/internal/domain"
)

var (
	// ErrNotFound is returned when no snippet exists for a well-formed identifier.
	ErrNotFound = errors.New("snippet not found")
	// ErrInvalidID is returned for identifiers that are not in the store's format.
	ErrInvalidID = errors.New("invalid snippet id")
	// ErrPersistence wraps any failure to write a snippet.
	ErrPersistence = errors.New("persist snippet")
)

// SnippetRepository is implemented by each storage backend.
type SnippetRepository interface {
	Insert(ctx context.Context, s domain.Snippet) error
	FindByID(ctx context.Context, id string) (domain.Snippet, error)
}
