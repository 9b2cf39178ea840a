package assist

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
)

// Gateway turns a chat request into a normalized response. It attempts the
// context-rich orchestration backend first; without a session token, or when
// the backend is unreachable, it degrades to the constrained responder. Each
// provider is attempted exactly once; the ordered chain is the only
// retry-like structure in the system.
type Gateway struct {
	backend     Backend
	fallback    Responder
	defaultLang string
}

// NewGateway creates a gateway with explicit injected collaborators.
func NewGateway(backend Backend, fallback Responder, defaultLang string) (*Gateway, error) {
	if backend == nil {
		return nil, errors.New("assist: backend must not be nil")
	}
	if fallback == nil {
		return nil, errors.New("assist: fallback responder must not be nil")
	}
	if defaultLang == "" {
		defaultLang = "fr"
	}
	return &Gateway{backend: backend, fallback: fallback, defaultLang: defaultLang}, nil
}

// Respond produces a ChatResponse for req. The response is always usable:
// fatal failures yield a fixed user-facing message, with the taxonomy error
// returned alongside for logging. A nil error means a clean path (primary,
// fallback or greeting short-circuit).
func (g *Gateway) Respond(ctx context.Context, req ChatRequest, token string) (ChatResponse, error) {
	reqID := uuid.NewString()
	lang := req.ForcedLang
	if lang == "" {
		lang = g.defaultLang
	}

	last, ok := LastUser(req.Messages)
	if !ok {
		// Greeting-only session: no outbound call at all.
		return g.normalize(BackendResult{Response: localized(greetings, lang)}, lang), nil
	}

	var attempts []Attempt[BackendResult]
	if token != "" {
		attempts = append(attempts, Attempt[BackendResult]{
			Name: "orchestrator",
			Invoke: func(ctx context.Context) (BackendResult, error) {
				return g.backend.Chat(ctx, token, g.backendRequest(req, last))
			},
		})
	} else {
		slog.Info("no session token, degraded mode", "request_id", reqID)
	}
	attempts = append(attempts, Attempt[BackendResult]{
		Name: g.fallback.Name(),
		Invoke: func(ctx context.Context) (BackendResult, error) {
			return g.fallbackAttempt(ctx, req, lang)
		},
	})

	res, winner, err := RunChain(ctx, attempts)
	if err != nil {
		slog.Error("chat attempt failed", "request_id", reqID, "provider", winner, "error", err)
		switch KindOf(err) {
		case KindFallbackProvider:
			// Nothing left to try; fixed unavailability message.
			return g.normalize(BackendResult{Response: localized(serviceUnavailable, lang)}, lang), err
		default:
			// Logic-class rejection: downgrading would hide a bug or a
			// deliberate policy rejection from the caller.
			return g.normalize(BackendResult{Response: localized(technicalDifficulty, lang)}, lang), err
		}
	}
	if winner != "orchestrator" && token != "" {
		slog.Warn("orchestrator unavailable, answered in degraded mode", "request_id", reqID, "provider", winner)
	}
	return g.normalize(res, lang), nil
}

func (g *Gateway) backendRequest(req ChatRequest, last Message) BackendRequest {
	enriched := make(map[string]any, len(req.Context.Extra)+3)
	for k, v := range req.Context.Extra {
		enriched[k] = v
	}
	if req.Context.Tier != "" {
		enriched["pack"] = req.Context.Tier
	}
	if req.Context.Vertical != "" {
		enriched["metier"] = req.Context.Vertical
	}
	enriched["history"] = Window(req.Messages, PrimaryWindow)

	return BackendRequest{
		Message:    last.Content,
		Context:    enriched,
		Images:     req.Images,
		Files:      req.Files,
		ForcedLang: req.ForcedLang,
	}
}

// fallbackAttempt runs the constrained responder with its own, narrower
// context window. Its failures are fatal: there is no further fallback.
func (g *Gateway) fallbackAttempt(ctx context.Context, req ChatRequest, lang string) (BackendResult, error) {
	messages := make([]Message, 0, FallbackWindow+1)
	messages = append(messages, Message{Role: RoleSystem, Content: degradedPersona(lang, req.Context)})
	messages = append(messages, Window(req.Messages, FallbackWindow)...)

	reply, err := g.fallback.Chat(ctx, messages)
	if err != nil {
		return BackendResult{}, NewError(KindFallbackProvider, "fallback_chat", err)
	}
	return BackendResult{Response: reply}, nil
}

// normalize is the single place defaults are filled. Both provider paths, the
// greeting short-circuit and the fixed failure messages all converge here.
func (g *Gateway) normalize(res BackendResult, lang string) ChatResponse {
	if res.Lang != "" {
		lang = res.Lang
	}
	langName := res.LangName
	if langName == "" {
		langName = LangName(lang)
	}
	direction := res.Direction
	if direction == "" {
		// Left-to-right unless the backend says otherwise, whatever the
		// resolved language. TODO(product): confirm whether Arabic answers
		// without an explicit direction should render rtl.
		direction = DirectionLTR
	}
	hasAudio := true
	if res.HasTTS != nil {
		hasAudio = *res.HasTTS
	}
	return ChatResponse{
		Message:   res.Response,
		PDF:       res.PDF,
		Lang:      lang,
		LangName:  langName,
		Direction: direction,
		HasAudio:  hasAudio,
		Agent:     res.Agent,
		Tier:      res.Tier,
		Vertical:  res.Vertical,
	}
}
