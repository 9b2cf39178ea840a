package stt

import (
	"context"
	"fmt"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	speechpb "cloud.google.com/go/speech/apiv1/speechpb"
)

// GoogleProvider implements TranscriptionProvider using Google Cloud
// Speech-to-Text. The API client is dialed once at startup and shared
// across requests.
type GoogleProvider struct {
	client       *speech.Client
	projectID    string
	languageCode string
}

// NewGoogleProvider dials the Speech-to-Text API and returns a provider
// bound to the shared client. languageCode follows the dashboard's
// default locale (e.g. "fr-FR").
func NewGoogleProvider(ctx context.Context, projectID, languageCode string) (*GoogleProvider, error) {
	client, err := speech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("google STT client error: %w", err)
	}

	return &GoogleProvider{
		client:       client,
		projectID:    projectID,
		languageCode: languageCode,
	}, nil
}

func (p *GoogleProvider) Name() string { return "google" }

// Close releases the underlying gRPC connection.
func (p *GoogleProvider) Close() error { return p.client.Close() }

func (p *GoogleProvider) Transcribe(ctx context.Context, audio []byte, contentType string) (string, error) {
	encoding := speechpb.RecognitionConfig_WEBM_OPUS
	switch contentType {
	case "audio/wav":
		encoding = speechpb.RecognitionConfig_LINEAR16
	case "audio/mp3", "audio/mpeg":
		encoding = speechpb.RecognitionConfig_MP3
	case "audio/ogg":
		encoding = speechpb.RecognitionConfig_OGG_OPUS
	}

	resp, err := p.client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:        encoding,
			SampleRateHertz: 16000,
			LanguageCode:    p.languageCode,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{
				Content: audio,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("google STT recognize error: %w", err)
	}

	var sb strings.Builder
	for _, result := range resp.Results {
		for _, alt := range result.Alternatives {
			sb.WriteString(alt.Transcript)
		}
	}

	return sb.String(), nil
}
