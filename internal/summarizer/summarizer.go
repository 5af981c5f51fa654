// Package summarizer produces short summaries of snippet text using a hosted LLM.
package summarizer

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrSummaryGeneration wraps every failure to obtain a summary.
var ErrSummaryGeneration = errors.New("failed to generate summary")

const promptPrefix = "Summarize the following text in exactly 30 words or less:\n\n"

// Summarizer turns text into a short summary.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// Func adapts a function to the Summarizer interface.
type Func func(ctx context.Context, text string) (string, error)

// Summarize calls f.
func (f Func) Summarize(ctx context.Context, text string) (string, error) { return f(ctx, text) }

// Prompt builds the instruction sent to the model.
func Prompt(text string) string {
	return promptPrefix + text
}

func wrap(err error) error {
	return fmt.Errorf("%w: %w", ErrSummaryGeneration, err)
}

type timeoutSummarizer struct {
	next    Summarizer
	timeout time.Duration
}

// WithTimeout bounds every call to next by d.
func WithTimeout(next Summarizer, d time.Duration) Summarizer {
	return &timeoutSummarizer{next: next, timeout: d}
}

func (t *timeoutSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	summary, err := t.next.Summarize(ctx, text)
	if err != nil {
		if errors.Is(err, ErrSummaryGeneration) {
			return "", err
		}
		return "", wrap(err)
	}
	return summary, nil
}
