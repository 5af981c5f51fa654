// Package service contains business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/roguepikachu/synopsis/internal/domain"
	"github.com/roguepikachu/synopsis/internal/repository"
	"github.com/roguepikachu/synopsis/internal/summarizer"
	"github.com/roguepikachu/synopsis/pkg/logger"
)

// DefaultStoreTimeout bounds each store call when no option overrides it.
const DefaultStoreTimeout = 10 * time.Second

// Summarizer is the service's view of the summary generator.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// Service provides snippet-related business logic.
type Service struct {
	summarizer   Summarizer
	store        *repository.Store
	storeTimeout time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithStoreTimeout bounds each store operation.
func WithStoreTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.storeTimeout = d
		}
	}
}

// NewService creates a new Service with the given summarizer and store.
func NewService(sum Summarizer, store *repository.Store, opts ...Option) *Service {
	s := &Service{
		summarizer:   sum,
		store:        store,
		storeTimeout: DefaultStoreTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateSnippet summarizes already-validated text and persists the result.
// The summarizer is called exactly once and nothing is written if it fails.
// The pipeline runs to completion even if the caller's context is canceled.
func (s *Service) CreateSnippet(ctx context.Context, text string) (domain.Snippet, error) {
	ctx = context.WithoutCancel(ctx)

	summary, err := s.summarizer.Summarize(ctx, text)
	if err != nil {
		logger.Debug(ctx, "summary generation failed: %v", err)
		if !errors.Is(err, summarizer.ErrSummaryGeneration) {
			err = fmt.Errorf("%w: %w", summarizer.ErrSummaryGeneration, err)
		}
		return domain.Snippet{}, err
	}

	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	snippet, err := s.store.Create(storeCtx, text, summary)
	if err != nil {
		logger.Debug(ctx, "failed to persist snippet: %v", err)
		return domain.Snippet{}, err
	}
	logger.With(ctx, map[string]any{"id": snippet.ID, "text_length": domain.TextLength(snippet.Text)}).Info("snippet created")
	return snippet, nil
}

// GetSnippetByID retrieves a snippet. It returns repository.ErrInvalidID for
// malformed identifiers and repository.ErrNotFound when nothing matches.
func (s *Service) GetSnippetByID(ctx context.Context, id string) (domain.Snippet, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	snippet, err := s.store.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) && !errors.Is(err, repository.ErrInvalidID) {
			logger.Debug(ctx, "failed to get snippet %s: %v", id, err)
		}
		return domain.Snippet{}, err
	}
	logger.Debug(ctx, "snippet %s retrieved", id)
	return snippet, nil
}
