package provider

import (
	"fmt"
	"sync"
)

// Registry manages available providers.
type Registry struct {
	mu     sync.RWMutex
	chat   map[string]ChatProvider
	speech map[string]SpeechProvider
	stt    map[string]TranscriptionProvider
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		chat:   make(map[string]ChatProvider),
		speech: make(map[string]SpeechProvider),
		stt:    make(map[string]TranscriptionProvider),
	}
}

// RegisterChat registers a degraded-mode chat provider.
func (r *Registry) RegisterChat(p ChatProvider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.chat[p.Name()] = p
}

// RegisterSpeech registers a speech-synthesis provider.
func (r *Registry) RegisterSpeech(p SpeechProvider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.speech[p.Name()] = p
}

// RegisterTranscription registers a voice-note transcription provider.
func (r *Registry) RegisterTranscription(p TranscriptionProvider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stt[p.Name()] = p
}

// GetChat returns the named chat provider.
func (r *Registry) GetChat(name string) (ChatProvider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.chat[name]
	if !ok {
		return nil, fmt.Errorf("chat provider %q not found", name)
	}
	return p, nil
}

// GetSpeech returns the named speech provider.
func (r *Registry) GetSpeech(name string) (SpeechProvider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.speech[name]
	if !ok {
		return nil, fmt.Errorf("speech provider %q not found", name)
	}
	return p, nil
}

// GetTranscription returns the named transcription provider.
func (r *Registry) GetTranscription(name string) (TranscriptionProvider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.stt[name]
	if !ok {
		return nil, fmt.Errorf("transcription provider %q not found", name)
	}
	return p, nil
}

// ListChat returns names of all registered chat providers.
func (r *Registry) ListChat() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.chat))
	for name := range r.chat {
		names = append(names, name)
	}
	return names
}

// ListSpeech returns names of all registered speech providers.
func (r *Registry) ListSpeech() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.speech))
	for name := range r.speech {
		names = append(names, name)
	}
	return names
}

// ListTranscription returns names of all registered transcription providers.
func (r *Registry) ListTranscription() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.stt))
	for name := range r.stt {
		names = append(names, name)
	}
	return names
}
