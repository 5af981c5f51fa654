package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/roguepikachu/synopsis/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store is the record store accessor used by the service layer.
type Store struct {
	repo  SnippetRepository
	now   func() time.Time
	newID func() string
}

// Option configures a Store.
type Option func(*Store)

// WithNow overrides the time source used for createdAt/updatedAt.
func WithNow(f func() time.Time) Option { return func(s *Store) { s.now = f } }

// WithIDGenerator overrides identifier generation. Generated IDs must pass ValidID.
func WithIDGenerator(f func() string) Option { return func(s *Store) { s.newID = f } }

// NewStore wraps a backend repository.
func NewStore(repo SnippetRepository, opts ...Option) *Store {
	s := &Store{
		repo:  repo,
		now:   time.Now,
		newID: NewID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewID returns a fresh ObjectID in hex form.
func NewID() string {
	return primitive.NewObjectID().Hex()
}

// ValidID reports whether id is a 24 character hex ObjectID.
func ValidID(id string) bool {
	_, err := primitive.ObjectIDFromHex(id)
	return err == nil
}

// Create persists a new snippet and returns it with its assigned identifier and timestamps.
func (s *Store) Create(ctx context.Context, text, summary string) (domain.Snippet, error) {
	text = domain.TrimText(text)
	summary = domain.TrimText(summary)
	if err := checkSchema(text, summary); err != nil {
		return domain.Snippet{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	// Millisecond precision round-trips through every backend.
	now := s.now().UTC().Truncate(time.Millisecond)
	snippet := domain.Snippet{
		ID:        s.newID(),
		Text:      text,
		Summary:   summary,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Insert(ctx, snippet); err != nil {
		return domain.Snippet{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return snippet, nil
}

// GetByID looks up a snippet. Malformed identifiers are rejected before the
// backend is queried; valid ones are normalized to lower-case hex.
func (s *Store) GetByID(ctx context.Context, id string) (domain.Snippet, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.Snippet{}, ErrInvalidID
	}
	id = oid.Hex()
	snippet, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return domain.Snippet{}, ErrNotFound
		}
		return domain.Snippet{}, fmt.Errorf("find snippet %s: %w", id, err)
	}
	return snippet, nil
}

func checkSchema(text, summary string) error {
	switch n := domain.TextLength(text); {
	case n == 0:
		return errors.New("text is required")
	case n > domain.MaxTextLength:
		return fmt.Errorf("text too long: %d characters", n)
	}
	switch n := domain.TextLength(summary); {
	case n == 0:
		return errors.New("summary is required")
	case n > domain.MaxSummaryLength:
		return fmt.Errorf("summary too long: %d characters", n)
	}
	return nil
}
