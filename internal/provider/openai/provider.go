// Package openai adapts the official OpenAI SDK to the domain.ChatProvider
// interface used by the advisory chat endpoint.
package openai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/diversicloud/cloudcompare/internal/domain"
	"github.com/diversicloud/cloudcompare/internal/observability"
)

const systemPrompt = "You are a cloud cost advisor for a multi-cloud pricing " +
	"comparison dashboard. Users compare AWS, Azure, and GCP prices for " +
	"compute, storage, database, networking, and serverless workloads. Give " +
	"concise, actionable recommendations grounded in the pricing data the " +
	"user provides."

// Provider implements domain.ChatProvider for OpenAI.
type Provider struct {
	client       openai.Client
	name         string
	defaultModel string
}

// NewProvider creates a new OpenAI chat provider.
func NewProvider(config Config) (*Provider, error) {
	if config.APIKey == "" {
		return nil, errors.New("OpenAI API key is required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(config.APIKey),
	}

	if config.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(config.BaseURL))
	}

	if config.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(time.Duration(config.Timeout)*time.Second))
	}

	if config.MaxRetries > 0 {
		opts = append(opts, option.WithMaxRetries(config.MaxRetries))
	}

	return &Provider{
		client:       openai.NewClient(opts...),
		name:         "openai",
		defaultModel: config.Model,
	}, nil
}

// Complete sends the prompt (with any conversation history) and returns the
// assistant text.
func (p *Provider) Complete(ctx context.Context, req *domain.ChatRequest) (string, error) {
	if req == nil {
		return "", errors.New("request cannot be nil")
	}

	logger := observability.FromContext(ctx)
	logger.Debug("calling OpenAI API")

	resp, err := p.client.Chat.Completions.New(ctx, p.toSDKParams(req))
	if err != nil {
		logger.Error("OpenAI API call failed", observability.Error(err))
		return "", fmt.Errorf("OpenAI API call failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("OpenAI returned no choices")
	}

	logger.Debug("OpenAI API call succeeded",
		observability.Int("prompt_tokens", int(resp.Usage.PromptTokens)),
		observability.Int("completion_tokens", int(resp.Usage.CompletionTokens)),
	)

	return resp.Choices[0].Message.Content, nil
}

// Name returns the provider identifier.
func (p *Provider) Name() string {
	return p.name
}

// toSDKParams converts the chat request to SDK ChatCompletionNewParams.
// Conversation history is replayed before the current prompt.
func (p *Provider) toSDKParams(req *domain.ChatRequest) openai.ChatCompletionNewParams {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Conversation)+2)
	messages = append(messages, openai.SystemMessage(systemPrompt))

	for _, msg := range req.Conversation {
		switch msg.Role {
		case "assistant":
			messages = append(messages, openai.AssistantMessage(msg.Content))
		case "system":
			messages = append(messages, openai.SystemMessage(msg.Content))
		default:
			messages = append(messages, openai.UserMessage(msg.Content))
		}
	}

	messages = append(messages, openai.UserMessage(req.Prompt))

	model := req.Model
	if model == "" {
		model = p.defaultModel
	}

	return openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(model),
		Messages: messages,
	}
}
