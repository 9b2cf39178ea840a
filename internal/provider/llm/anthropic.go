package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/yassirk/tijari-assist/internal/assist"
)

// AnthropicProvider implements the degraded-mode responder on Claude.
type AnthropicProvider struct {
	client      *anthropic.Client
	model       string
	temperature float64
	maxTokens   int64
}

// NewAnthropicProvider creates a new Anthropic chat provider.
func NewAnthropicProvider(apiKey string, temperature float64, maxTokens int64) *AnthropicProvider {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicProvider{
		client:      &client,
		model:       "claude-sonnet-4-20250514",
		temperature: temperature,
		maxTokens:   maxTokens,
	}
}

func (p *AnthropicProvider) Name() string { return "anthropic" }

func (p *AnthropicProvider) Chat(ctx context.Context, messages []assist.Message) (string, error) {
	// Separate system message from conversation messages
	var systemPrompt string
	var convMessages []anthropic.MessageParam
	for _, m := range messages {
		switch m.Role {
		case assist.RoleSystem:
			systemPrompt = m.Content
		case assist.RoleUser:
			convMessages = append(convMessages, anthropic.NewUserMessage(
				anthropic.NewTextBlock(m.Content),
			))
		case assist.RoleAssistant:
			convMessages = append(convMessages, anthropic.NewAssistantMessage(
				anthropic.NewTextBlock(m.Content),
			))
		}
	}

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(p.model),
		MaxTokens:   p.maxTokens,
		Temperature: anthropic.Float(p.temperature),
		Messages:    convMessages,
	}
	if systemPrompt != "" {
		params.System = []anthropic.TextBlockParam{
			{Text: systemPrompt},
		}
	}

	msg, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic chat error: %w", err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return sb.String(), nil
}
