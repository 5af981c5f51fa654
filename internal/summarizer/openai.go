package summarizer

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/responses"
	"github.com/roguepikachu/synopsis/internal/domain"
)

// OpenAI calls OpenAI's Responses API to produce summaries.
type OpenAI struct {
	client    openai.Client
	model     string
	maxTokens int64
}

// NewOpenAI builds a summarizer for the given model. The client never retries;
// a failed call surfaces to the caller. Extra options are applied last.
func NewOpenAI(apiKey, model string, maxTokens int64, opts ...option.RequestOption) *OpenAI {
	base := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	return &OpenAI{
		client:    openai.NewClient(append(base, opts...)...),
		model:     model,
		maxTokens: maxTokens,
	}
}

// Summarize sends one request and returns the trimmed output text.
func (s *OpenAI) Summarize(ctx context.Context, text string) (string, error) {
	if domain.TrimText(text) == "" {
		return "", wrap(errors.New("input is empty"))
	}
	resp, err := s.client.Responses.New(ctx, responses.ResponseNewParams{
		Model:           openai.ChatModel(s.model),
		MaxOutputTokens: openai.Int(s.maxTokens),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: openai.String(Prompt(text)),
		},
	})
	if err != nil {
		return "", wrap(err)
	}
	summary := domain.TrimText(resp.OutputText())
	if summary == "" {
		return "", wrap(fmt.Errorf("empty response from model (status = %s)", resp.Status))
	}
	return summary, nil
}
