package provider

import (
	"context"

	"github.com/yassirk/tijari-assist/internal/assist"
)

// ChatProvider defines the interface for the degraded-mode chat responders.
type ChatProvider interface {
	// Name returns the provider identifier.
	Name() string
	// Chat sends the conversation and returns the complete assistant reply.
	Chat(ctx context.Context, messages []assist.Message) (string, error)
}

// SpeechProvider defines the interface for speech-synthesis providers.
type SpeechProvider interface {
	// Name returns the provider identifier.
	Name() string
	// Synthesize converts text to mp3 audio bytes.
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// TranscriptionProvider defines the interface for voice-note transcription.
type TranscriptionProvider interface {
	// Name returns the provider identifier.
	Name() string
	// Transcribe converts audio to text.
	Transcribe(ctx context.Context, audio []byte, contentType string) (string, error)
}
