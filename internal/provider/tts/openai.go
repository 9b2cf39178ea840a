package tts

import (
	"context"
	"io"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/yassirk/tijari-assist/internal/assist"
)

// OpenAIProvider implements SpeechProvider using the OpenAI speech API. It is
// the general-purpose voice and the fallback behind the Arabic-optimized one.
type OpenAIProvider struct {
	key    string
	client *openai.Client
}

// NewOpenAIProvider creates a new OpenAI speech provider.
func NewOpenAIProvider(apiKey string) *OpenAIProvider {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIProvider{key: apiKey, client: &client}
}

func (p *OpenAIProvider) Name() string { return "openai" }

func (p *OpenAIProvider) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if p.key == "" {
		return nil, assist.NewError(assist.KindCredentialMissing, "openai_credential", nil)
	}

	resp, err := p.client.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		Model:          openai.SpeechModelTTS1,
		Input:          text,
		Voice:          openai.AudioSpeechNewParamsVoiceAlloy,
		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatMP3,
		Speed:          openai.Float(0.9),
	})
	if err != nil {
		return nil, assist.NewError(assist.KindProviderRejected, "openai_tts", err)
	}
	defer resp.Body.Close()

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, assist.NewError(assist.KindProviderRejected, "openai_read", err)
	}
	return audio, nil
}
