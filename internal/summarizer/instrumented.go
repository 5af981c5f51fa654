package summarizer

import (
	"context"
	"time"
)

// Recorder receives the outcome of each summarizer call.
type Recorder interface {
	ObserveSummary(provider string, err error, d time.Duration)
}

type instrumented struct {
	next     Summarizer
	provider string
	rec      Recorder
}

// Instrument reports the duration and outcome of every call to next.
func Instrument(next Summarizer, provider string, rec Recorder) Summarizer {
	return &instrumented{next: next, provider: provider, rec: rec}
}

func (i *instrumented) Summarize(ctx context.Context, text string) (string, error) {
	start := time.Now()
	summary, err := i.next.Summarize(ctx, text)
	i.rec.ObserveSummary(i.provider, err, time.Since(start))
	return summary, err
}
