package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/yassirk/tijari-assist/internal/assist"
)

// OpenAIProvider implements the degraded-mode responder on GPT-4o.
type OpenAIProvider struct {
	client      *openai.Client
	model       string
	temperature float64
	maxTokens   int64
}

// NewOpenAIProvider creates a new OpenAI chat provider.
func NewOpenAIProvider(apiKey string, temperature float64, maxTokens int64) *OpenAIProvider {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIProvider{
		client:      &client,
		model:       "gpt-4o",
		temperature: temperature,
		maxTokens:   maxTokens,
	}
}

func (p *OpenAIProvider) Name() string { return "openai" }

func (p *OpenAIProvider) Chat(ctx context.Context, messages []assist.Message) (string, error) {
	var chatMessages []openai.ChatCompletionMessageParamUnion
	for _, m := range messages {
		switch m.Role {
		case assist.RoleSystem:
			chatMessages = append(chatMessages, openai.SystemMessage(m.Content))
		case assist.RoleUser:
			chatMessages = append(chatMessages, openai.UserMessage(m.Content))
		case assist.RoleAssistant:
			chatMessages = append(chatMessages, openai.AssistantMessage(m.Content))
		}
	}

	completion, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:               openai.ChatModel(p.model),
		Messages:            chatMessages,
		Temperature:         openai.Float(p.temperature),
		MaxCompletionTokens: openai.Int(p.maxTokens),
	})
	if err != nil {
		return "", fmt.Errorf("openai chat error: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("openai chat error: empty choices")
	}
	return completion.Choices[0].Message.Content, nil
}
