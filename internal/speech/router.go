package speech

import (
	"context"
	"errors"
	"log/slog"

	"github.com/yassirk/tijari-assist/internal/assist"
	"github.com/yassirk/tijari-assist/internal/provider"
)

// MimeType is the normalized output type regardless of which provider
// produced the audio.
const MimeType = "audio/mp3"

// Per-provider input caps. Each call site truncates independently because the
// two providers accept different maximum lengths.
const (
	arabicMaxInputChars  = 5000
	generalMaxInputChars = 4000
)

// Router selects a speech provider by script classification. Predominantly
// Arabic/Tifinagh text goes to the script-optimized voice first, with the
// general-purpose voice behind it; everything else goes straight to the
// general-purpose voice.
type Router struct {
	arabic  provider.SpeechProvider
	general provider.SpeechProvider
}

// NewRouter creates a speech router with explicit injected providers.
func NewRouter(arabic, general provider.SpeechProvider) (*Router, error) {
	if arabic == nil {
		return nil, errors.New("speech: arabic provider must not be nil")
	}
	if general == nil {
		return nil, errors.New("speech: general provider must not be nil")
	}
	return &Router{arabic: arabic, general: general}, nil
}

// Synthesize converts text to audio bytes plus the fixed mime type. When
// every provider in the chain fails the error kind is SynthesisUnavailable;
// the chat flow keeps working without audio.
func (r *Router) Synthesize(ctx context.Context, text string) ([]byte, string, error) {
	var attempts []assist.Attempt[[]byte]
	if assist.IsArabicScript(text) {
		attempts = append(attempts, assist.Attempt[[]byte]{
			Name: r.arabic.Name(),
			Invoke: func(ctx context.Context) ([]byte, error) {
				return r.arabic.Synthesize(ctx, truncate(text, arabicMaxInputChars))
			},
		})
	}
	attempts = append(attempts, assist.Attempt[[]byte]{
		Name: r.general.Name(),
		Invoke: func(ctx context.Context) ([]byte, error) {
			return r.general.Synthesize(ctx, truncate(text, generalMaxInputChars))
		},
	})

	audio, winner, err := assist.RunChain(ctx, attempts)
	if err != nil {
		return nil, "", assist.NewError(assist.KindSynthesisUnavailable, "providers_exhausted", err)
	}
	slog.Debug("speech synthesized", "provider", winner, "bytes", len(audio))
	return audio, MimeType, nil
}

// truncate caps s at limit characters, not bytes, so a multibyte rune is
// never cut in half.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
