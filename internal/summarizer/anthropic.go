package summarizer

import (
	"context"
	"errors"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/roguepikachu/synopsis/internal/domain"
)

// Anthropic calls the Claude Messages API to produce summaries.
type Anthropic struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

// NewAnthropic builds a summarizer for the given Claude model. Retries are disabled.
func NewAnthropic(apiKey, model string, maxTokens int64, opts ...option.RequestOption) *Anthropic {
	base := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	return &Anthropic{
		client:    anthropic.NewClient(append(base, opts...)...),
		model:     model,
		maxTokens: maxTokens,
	}
}

// Summarize sends one message and joins the text blocks of the reply.
func (s *Anthropic) Summarize(ctx context.Context, text string) (string, error) {
	if domain.TrimText(text) == "" {
		return "", wrap(errors.New("input is empty"))
	}
	message, err := s.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(s.model),
		MaxTokens: s.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(Prompt(text))),
		},
	})
	if err != nil {
		return "", wrap(err)
	}
	var b strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	summary := domain.TrimText(b.String())
	if summary == "" {
		return "", wrap(errors.New("empty response from model"))
	}
	return summary, nil
}
