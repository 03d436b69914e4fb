package llmservice

import (
	"context"
	"fmt"
	"strings"

	"product-rag/internal/config"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Client is the generative-model collaborator: single turn, no streaming.
type Client struct {
	llm *openai.LLM
}

// NewClient builds the chat LLM client. Call only when a key is configured;
// a missing credential selects the fallback composer path instead.
func NewClient(cfg *config.LLMConfig) (*Client, error) {
	opts := []openai.Option{
		openai.WithToken(strings.TrimPrefix(cfg.Key, "Bearer ")),
		openai.WithModel(cfg.Model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}
	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize chat LLM: %v", err)
	}
	return &Client{llm: llm}, nil
}

// Complete sends one system+user turn and returns the model text.
func (c *Client) Complete(ctx context.Context, systemPrompt, userContext string) (string, error) {
	log.Debug().Int("context_len", len(userContext)).Msg("Generating completion")

	messages := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextContent{Text: systemPrompt}},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextContent{Text: userContext}},
		},
	}

	res, err := c.llm.GenerateContent(ctx, messages, llms.WithTemperature(0.4))
	if err != nil {
		return "", err
	}
	if len(res.Choices) == 0 {
		return "", fmt.Errorf("chat LLM returned no choices")
	}
	return res.Choices[0].Content, nil
}
