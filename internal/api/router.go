package api

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/yassirk/tijari-assist/internal/assist"
	"github.com/yassirk/tijari-assist/internal/config"
	"github.com/yassirk/tijari-assist/internal/provider"
	"github.com/yassirk/tijari-assist/internal/speech"
)

// Server holds dependencies for API handlers.
type Server struct {
	cfg      *config.Config
	gateway  *assist.Gateway
	speech   *speech.Router
	registry *provider.Registry
}

// NewRouter creates a fully wired Chi router.
func NewRouter(cfg *config.Config, gateway *assist.Gateway, speechRouter *speech.Router, registry *provider.Registry) *chi.Mux {
	s := &Server{cfg: cfg, gateway: gateway, speech: speechRouter, registry: registry}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/healthz"))
	r.Use(CORSMiddleware(cfg.AllowedOrigin))

	rate, burst := cfg.RateLimitPerSec, cfg.RateLimitBurst
	if rate <= 0 {
		rate = 10
	}
	if burst <= 0 {
		burst = 30
	}
	limiter := NewRateLimiter(rate, burst, time.Second)
	r.Use(limiter.Middleware)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/providers", s.handleProviders)
		r.Route("/assistant", func(r chi.Router) {
			r.Post("/chat", s.handleChat)
			r.Post("/tts", s.handleTTS)
			r.Post("/stt", s.handleSTT)
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleProviders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"chat":          s.registry.ListChat(),
		"speech":        s.registry.ListSpeech(),
		"transcription": s.registry.ListTranscription(),
	})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req assist.ChatRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil || req.Messages == nil {
		// Malformed or empty payloads get the static greeting, not an error
		// status: the chat widget always renders an assistant message.
		resp, _ := s.gateway.Respond(r.Context(), assist.ChatRequest{ForcedLang: req.ForcedLang}, "")
		writeJSON(w, http.StatusOK, resp)
		return
	}

	resp, err := s.gateway.Respond(r.Context(), req, bearerToken(r))
	if err != nil {
		// The response already carries the fixed user-facing message; the
		// cause stays in the logs.
		slog.Error("chat request degraded", "error", err)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTTS(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "text is required"})
		return
	}

	audio, mimeType, err := s.speech.Synthesize(r.Context(), req.Text)
	if err != nil {
		slog.Error("speech synthesis failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "synthesis failed"})
		return
	}

	// The data URI spares the dashboard a second round trip for the bytes.
	uri := "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(audio)
	writeJSON(w, http.StatusOK, map[string]string{"audioDataUri": uri})
}

func (s *Server) handleSTT(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil { // 10MB limit
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid multipart form"})
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "audio file is required"})
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unreadable audio"})
		return
	}

	providerName := r.FormValue("provider")
	if providerName == "" {
		providerName = s.cfg.DefaultTranscriber
	}

	transcriber, err := s.registry.GetTranscription(providerName)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	text, err := transcriber.Transcribe(r.Context(), audio, header.Header.Get("Content-Type"))
	if err != nil {
		slog.Error("transcription failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "transcription failed"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"text": text})
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if after, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return after
	}
	return ""
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
