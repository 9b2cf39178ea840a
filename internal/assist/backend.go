package assist

import "context"

// BackendRequest is the payload the gateway sends to the orchestration
// backend. Context is the caller's opaque bag enriched with the trimmed
// conversation window.
type BackendRequest struct {
	Message    string         `json:"message"`
	Context    map[string]any `json:"context"`
	Images     []string       `json:"images,omitempty"`
	Files      []string       `json:"files,omitempty"`
	ForcedLang string         `json:"forcedLang,omitempty"`
}

// BackendResult is the data half of a successful backend envelope. Optional
// fields stay empty when the backend omits them; the gateway's normalize step
// fills defaults, nothing else does.
type BackendResult struct {
	Response  string `json:"response"`
	PDF       string `json:"pdf,omitempty"`
	Lang      string `json:"lang,omitempty"`
	LangName  string `json:"langName,omitempty"`
	Direction string `json:"direction,omitempty"`
	HasTTS    *bool  `json:"hasTTS,omitempty"`
	Agent     string `json:"agent,omitempty"`
	Tier      string `json:"pack,omitempty"`
	Vertical  string `json:"metier,omitempty"`
}

// Backend is the context-rich orchestration backend, always attempted first
// when the caller is authenticated.
type Backend interface {
	Chat(ctx context.Context, token string, req BackendRequest) (BackendResult, error)
}

// Responder is a degraded-mode chat provider with no business-data access.
type Responder interface {
	Name() string
	Chat(ctx context.Context, messages []Message) (string, error)
}
