// Package openai adapts the chat-completions API to the catalog
// product extraction port.
package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/paratodos/storefront/internal/core/domain"
	"github.com/paratodos/storefront/internal/core/port"
)

const (
	defaultModel   = "gpt-4o-mini"
	defaultTimeout = 60 * time.Second
)

// ErrNoAPIKey reports a missing credential. It is checked before any
// call is attempted.
var ErrNoAPIKey = errors.New("llm api key is not configured")

var _ port.ProductExtractor = (*Extractor)(nil)

type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

type Extractor struct {
	client  *goopenai.Client
	model   string
	timeout time.Duration
	hasKey  bool
}

func NewExtractor(cfg Config) Extractor {
	clientCfg := goopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return Extractor{
		client:  goopenai.NewClientWithConfig(clientCfg),
		model:   model,
		timeout: timeout,
		hasKey:  cfg.APIKey != "",
	}
}

// ExtractProducts sends the catalog text to the model and parses the
// returned product list. The call is bounded by the configured
// timeout. Every failure returns an error; the orchestrator resolves
// it to zero products.
func (e Extractor) ExtractProducts(
	ctx context.Context, text string,
) ([]domain.ExtractedProduct, error) {
	const op = "openai.ExtractProducts"
	log := slog.With("op", op)

	if !e.hasKey {
		return nil, fmt.Errorf("%s: %w", op, ErrNoAPIKey)
	}

	prompt, truncated := BuildPrompt(text)
	if truncated {
		log.Warn("catalog text truncated for prompt",
			"limit", maxCatalogChars, "textLen", len(text))
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	resp, err := e.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: e.model,
		ResponseFormat: &goopenai.ChatCompletionResponseFormat{
			Type: goopenai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: completion request failed: %w", op, err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%s: response has no choices", op)
	}

	records, err := ParseProductList(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("catalog products extracted", "count", len(records))
	return records, nil
}
