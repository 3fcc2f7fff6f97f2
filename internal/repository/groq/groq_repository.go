package groq

import (
	"context"
	"errors"
	"fmt"

	"agenticWallet/domain"
	"agenticWallet/pkg/logger"

	openai "github.com/sashabaranov/go-openai"
)

const systemPrompt = `You are an expert financial advisor specializing in credit card rewards optimization.
You are given a purchase and a pre-computed ranking of the user's cards.
Explain in 2-3 conversational sentences why the top-ranked card is the best choice for this purchase and goal.
Do not change the ranking; only explain it.`

type GroqConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	MaxTokens   int
}

// GroqRepository talks to Groq's OpenAI-compatible chat completion endpoint.
type GroqRepository struct {
	client *openai.Client
	cfg    GroqConfig
}

func NewGroqRepository(cfg GroqConfig) *GroqRepository {
	if cfg.Model == "" {
		cfg.Model = "llama-3.3-70b-versatile"
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.7
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 1000
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &GroqRepository{
		client: openai.NewClientWithConfig(clientCfg),
		cfg:    cfg,
	}
}

// Complete asks the model for an explanation of the ranked summary. Rate
// limit responses come back as *domain.RateLimitError carrying the raw body
// so the caller can classify them.
func (r *GroqRepository) Complete(ctx context.Context, req domain.ReasoningRequest) (string, error) {
	prompt := fmt.Sprintf(`Transaction Details:
Merchant: %s
Amount: $%.2f
Category: %s
User's Goal: %s

Ranked Cards:
%s

Explain why the top-ranked card is the best choice.`,
		req.Merchant, req.Amount, req.Category, req.Goal, req.RankedSummary)

	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       r.cfg.Model,
		Temperature: r.cfg.Temperature,
		MaxTokens:   r.cfg.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		if isRateLimit(err) {
			return "", &domain.RateLimitError{Raw: err.Error()}
		}
		logger.Error("groq chat completion failed", err)
		return "", fmt.Errorf("groq request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("groq returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}

func isRateLimit(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == 429
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode == 429
	}
	return false
}
