// Package llm adapts external reasoning providers to the organizer's
// Reasoner port.
package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"dotspark-backend/application/ports"
)

// Config represents reasoning provider configuration
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// OpenAIReasoner implements the Reasoner port against an OpenAI-compatible
// chat completion API
type OpenAIReasoner struct {
	client  *openai.Client
	config  Config
	timeout time.Duration
	logger  *zap.Logger
}

// NewOpenAIReasoner creates a new OpenAI-backed reasoner
func NewOpenAIReasoner(config Config, logger *zap.Logger) *OpenAIReasoner {
	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	if config.Model == "" {
		config.Model = openai.GPT4oMini
	}
	if config.MaxTokens == 0 {
		config.MaxTokens = 1024
	}
	if config.Temperature == 0 {
		config.Temperature = 0.3
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}

	return &OpenAIReasoner{
		client:  openai.NewClientWithConfig(clientConfig),
		config:  config,
		timeout: config.Timeout,
		logger:  logger,
	}
}

// Complete sends a prompt and returns the raw model output. A timeout is
// applied here so a hanging upstream degrades into the caller's fallback
// path instead of stalling the turn.
func (r *OpenAIReasoner) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: r.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		MaxTokens:   r.config.MaxTokens,
		Temperature: float32(r.config.Temperature),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	r.logger.Debug("Reasoner call completed",
		zap.String("model", r.config.Model),
		zap.Duration("duration", time.Since(start)),
		zap.Int("promptTokens", resp.Usage.PromptTokens),
		zap.Int("completionTokens", resp.Usage.CompletionTokens),
	)

	return resp.Choices[0].Message.Content, nil
}

var _ ports.Reasoner = (*OpenAIReasoner)(nil)
