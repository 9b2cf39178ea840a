package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/yassirk/tijari-assist/internal/assist"
)

// GeminiProvider implements the degraded-mode responder on Google Gemini.
type GeminiProvider struct {
	client      *genai.Client
	model       string
	temperature float32
	maxTokens   int32
}

// NewGeminiProvider creates a new Google Gemini chat provider.
func NewGeminiProvider(ctx context.Context, apiKey string, temperature float32, maxTokens int32) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiProvider{
		client:      client,
		model:       "gemini-2.0-flash",
		temperature: temperature,
		maxTokens:   maxTokens,
	}, nil
}

func (p *GeminiProvider) Name() string { return "gemini" }

func (p *GeminiProvider) Chat(ctx context.Context, messages []assist.Message) (string, error) {
	var systemInstruction string
	var contents []*genai.Content
	for _, m := range messages {
		switch m.Role {
		case assist.RoleSystem:
			systemInstruction = m.Content
		case assist.RoleUser:
			contents = append(contents, &genai.Content{
				Role: "user",
				Parts: []*genai.Part{
					genai.NewPartFromText(m.Content),
				},
			})
		case assist.RoleAssistant:
			contents = append(contents, &genai.Content{
				Role: "model",
				Parts: []*genai.Part{
					genai.NewPartFromText(m.Content),
				},
			})
		}
	}

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(p.temperature),
		MaxOutputTokens: p.maxTokens,
	}
	if systemInstruction != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{
				genai.NewPartFromText(systemInstruction),
			},
		}
	}

	result, err := p.client.Models.GenerateContent(ctx, p.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("gemini chat error: %w", err)
	}
	return result.Text(), nil
}
