package service

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/roguepikachu/synopsis/internal/domain"
	"github.com/roguepikachu/synopsis/internal/repository"
	"github.com/roguepikachu/synopsis/internal/repository/memory"
	"github.com/roguepikachu/synopsis/internal/summarizer"
	"github.com/roguepikachu/synopsis/pkg/logger"
)

type stubSummarizer struct {
	summary string
	err     error
	calls   int32
	texts   []string
}

func (s *stubSummarizer) Summarize(_ context.Context, text string) (string, error) {
	atomic.AddInt32(&s.calls, 1)
	s.texts = append(s.texts, text)
	return s.summary, s.err
}

func newService(sum Summarizer) (*Service, *memory.SnippetRepository) {
	repo := memory.NewSnippetRepository()
	return NewService(sum, repository.NewStore(repo)), repo
}

func TestCreateSnippet_Success(t *testing.T) {
	sum := &stubSummarizer{summary: "A greeting."}
	svc, repo := newService(sum)

	got, err := svc.CreateSnippet(context.Background(), "Hello world")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Text != "Hello world" || got.Summary != "A greeting." {
		t.Fatalf("unexpected snippet: %+v", got)
	}
	if !repository.ValidID(got.ID) {
		t.Fatalf("invalid id %q", got.ID)
	}
	if !got.CreatedAt.Equal(got.UpdatedAt) {
		t.Fatalf("createdAt and updatedAt differ")
	}
	if sum.calls != 1 || sum.texts[0] != "Hello world" {
		t.Fatalf("summarizer called %d times with %v", sum.calls, sum.texts)
	}
	if repo.Len() != 1 {
		t.Fatalf("expected one stored snippet, got %d", repo.Len())
	}

	back, err := svc.GetSnippetByID(context.Background(), got.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !back.Equal(got) {
		t.Fatalf("round trip mismatch: %+v vs %+v", back, got)
	}
}

func TestCreateSnippet_SummaryFailureWritesNothing(t *testing.T) {
	sum := &stubSummarizer{err: errors.New("rate limited")}
	svc, repo := newService(sum)

	_, err := svc.CreateSnippet(context.Background(), "Hello world")
	if !errors.Is(err, summarizer.ErrSummaryGeneration) {
		t.Fatalf("want ErrSummaryGeneration, got %v", err)
	}
	if repo.Len() != 0 {
		t.Fatalf("nothing should be stored after a summary failure")
	}
	if sum.calls != 1 {
		t.Fatalf("summarizer must not be retried, calls = %d", sum.calls)
	}
}

func TestCreateSnippet_PersistenceFailure(t *testing.T) {
	// An over-long summary violates the store schema.
	sum := &stubSummarizer{summary: strings.Repeat("s", domain.MaxSummaryLength+1)}
	svc, repo := newService(sum)

	_, err := svc.CreateSnippet(context.Background(), "Hello world")
	if !errors.Is(err, repository.ErrPersistence) {
		t.Fatalf("want ErrPersistence, got %v", err)
	}
	if repo.Len() != 0 {
		t.Fatalf("nothing should be stored")
	}
}

func TestCreateSnippet_FailuresLeaveErrorLoggingToCaller(t *testing.T) {
	var buf bytes.Buffer
	logger.InitLogging("info", "text")
	logger.SetOutput(&buf)
	defer logger.SetOutput(os.Stderr)

	svc, _ := newService(&stubSummarizer{err: errors.New("rate limited")})
	if _, err := svc.CreateSnippet(context.Background(), "Hello world"); err == nil {
		t.Fatalf("expected summary failure")
	}
	svc, _ = newService(&stubSummarizer{summary: strings.Repeat("s", domain.MaxSummaryLength+1)})
	if _, err := svc.CreateSnippet(context.Background(), "Hello world"); err == nil {
		t.Fatalf("expected persistence failure")
	}
	if strings.Contains(buf.String(), "level=error") {
		t.Fatalf("service logged at error level: %s", buf.String())
	}
}

func TestCreateSnippet_IgnoresCallerCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	sum := summarizer.Func(func(ctx context.Context, _ string) (string, error) {
		cancel()
		if err := ctx.Err(); err != nil {
			return "", err
		}
		return "A greeting.", nil
	})
	svc, repo := newService(sum)

	if _, err := svc.CreateSnippet(ctx, "Hello world"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if repo.Len() != 1 {
		t.Fatalf("snippet should be stored after the caller went away")
	}
}

type blockingRepo struct{}

func (blockingRepo) Insert(ctx context.Context, _ domain.Snippet) error {
	<-ctx.Done()
	return ctx.Err()
}

func (blockingRepo) FindByID(ctx context.Context, _ string) (domain.Snippet, error) {
	<-ctx.Done()
	return domain.Snippet{}, ctx.Err()
}

func TestStoreTimeout(t *testing.T) {
	svc := NewService(&stubSummarizer{summary: "s"}, repository.NewStore(blockingRepo{}), WithStoreTimeout(10*time.Millisecond))

	if _, err := svc.CreateSnippet(context.Background(), "t"); !errors.Is(err, repository.ErrPersistence) {
		t.Fatalf("want ErrPersistence, got %v", err)
	}
	_, err := svc.GetSnippetByID(context.Background(), repository.NewID())
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("want deadline exceeded, got %v", err)
	}
}

func TestGetSnippetByID_Errors(t *testing.T) {
	svc, _ := newService(&stubSummarizer{summary: "s"})

	if _, err := svc.GetSnippetByID(context.Background(), "abc"); !errors.Is(err, repository.ErrInvalidID) {
		t.Fatalf("want ErrInvalidID, got %v", err)
	}
	if _, err := svc.GetSnippetByID(context.Background(), repository.NewID()); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
