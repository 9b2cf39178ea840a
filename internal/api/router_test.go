package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/yassirk/tijari-assist/internal/api"
	"github.com/yassirk/tijari-assist/internal/assist"
	"github.com/yassirk/tijari-assist/internal/config"
	"github.com/yassirk/tijari-assist/internal/provider"
	"github.com/yassirk/tijari-assist/internal/speech"
)

type stubBackend struct {
	calls  int
	result assist.BackendResult
	err    error
}

func (s *stubBackend) Chat(_ context.Context, _ string, _ assist.BackendRequest) (assist.BackendResult, error) {
	s.calls++
	return s.result, s.err
}

type stubResponder struct {
	calls int
	reply string
}

func (s *stubResponder) Name() string { return "stub" }
func (s *stubResponder) Chat(_ context.Context, _ []assist.Message) (string, error) {
	s.calls++
	return s.reply, nil
}

type stubVoice struct {
	name  string
	audio []byte
	err   error
}

func (s *stubVoice) Name() string { return s.name }
func (s *stubVoice) Synthesize(_ context.Context, _ string) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.audio, nil
}

type stubTranscriber struct{ text string }

func (s *stubTranscriber) Name() string { return "stub" }
func (s *stubTranscriber) Transcribe(_ context.Context, _ []byte, _ string) (string, error) {
	return s.text, nil
}

type testDeps struct {
	backend   *stubBackend
	responder *stubResponder
	general   *stubVoice
}

func newTestServer(t *testing.T) (*httptest.Server, *testDeps) {
	t.Helper()

	deps := &testDeps{
		backend:   &stubBackend{result: assist.BackendResult{Response: "42 clients actifs", Lang: "fr"}},
		responder: &stubResponder{reply: "réponse en mode dégradé"},
		general:   &stubVoice{name: "openai", audio: []byte("mp3-bytes")},
	}

	cfg := &config.Config{
		Port:               "0",
		DefaultLang:        "fr",
		DefaultTranscriber: "stub",
		AllowedOrigin:      "*",
		RateLimitPerSec:    100,
		RateLimitBurst:     100,
	}

	gateway, err := assist.NewGateway(deps.backend, deps.responder, cfg.DefaultLang)
	if err != nil {
		t.Fatalf("gateway: %v", err)
	}

	arabic := &stubVoice{name: "azure", err: assist.NewError(assist.KindCredentialMissing, "azure_credential", nil)}
	speechRouter, err := speech.NewRouter(arabic, deps.general)
	if err != nil {
		t.Fatalf("speech router: %v", err)
	}

	reg := provider.NewRegistry()
	reg.RegisterChat(deps.responder)
	reg.RegisterSpeech(deps.general)
	reg.RegisterTranscription(&stubTranscriber{text: "combien de ventes ce mois"})

	router := api.NewRouter(cfg, gateway, speechRouter, reg)
	return httptest.NewServer(router), deps
}

func TestHealthEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)
	defer srv.Close()

	for _, path := range []string{"/healthz", "/api/health"} {
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", path, resp.StatusCode)
		}
	}
}

func TestProvidersEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/providers")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var body map[string]any
	json.NewDecoder(resp.Body).Decode(&body)
	for _, key := range []string{"chat", "speech", "transcription"} {
		if _, ok := body[key]; !ok {
			t.Errorf("expected %s field in response", key)
		}
	}
}

func postJSON(t *testing.T, url, body string, headers map[string]string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func decodeChat(t *testing.T, resp *http.Response) assist.ChatResponse {
	t.Helper()
	defer resp.Body.Close()
	var out assist.ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func TestChat_MissingMessagesGetsGreeting(t *testing.T) {
	srv, deps := newTestServer(t)
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/api/assistant/chat", `{}`, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	out := decodeChat(t, resp)

	if out.Message == "" {
		t.Error("expected a greeting message")
	}
	if out.Lang != "fr" {
		t.Errorf("expected lang fr, got %q", out.Lang)
	}
	if deps.backend.calls != 0 || deps.responder.calls != 0 {
		t.Errorf("greeting must not trigger outbound calls, got backend=%d fallback=%d",
			deps.backend.calls, deps.responder.calls)
	}
}

func TestChat_NonArrayMessagesGetsGreeting(t *testing.T) {
	srv, deps := newTestServer(t)
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/api/assistant/chat", `{"messages": "not a list"}`, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	out := decodeChat(t, resp)
	if out.Message == "" {
		t.Error("expected a greeting message")
	}
	if deps.backend.calls != 0 {
		t.Errorf("expected no backend calls, got %d", deps.backend.calls)
	}
}

func TestChat_NoTokenAnswersInDegradedMode(t *testing.T) {
	srv, deps := newTestServer(t)
	defer srv.Close()

	body := `{"messages": [{"role": "user", "content": "Bonjour"}]}`
	resp := postJSON(t, srv.URL+"/api/assistant/chat", body, nil)
	out := decodeChat(t, resp)

	if out.Message != deps.responder.reply {
		t.Errorf("expected degraded-mode reply, got %q", out.Message)
	}
	if deps.backend.calls != 0 {
		t.Errorf("expected no backend call without a token, got %d", deps.backend.calls)
	}
	if deps.responder.calls != 1 {
		t.Errorf("expected exactly one fallback call, got %d", deps.responder.calls)
	}
}

func TestChat_WithTokenUsesPrimaryBackend(t *testing.T) {
	srv, deps := newTestServer(t)
	defer srv.Close()

	body := `{"messages": [{"role": "user", "content": "Combien de clients ?"}]}`
	resp := postJSON(t, srv.URL+"/api/assistant/chat", body, map[string]string{
		"Authorization": "Bearer session-token",
	})
	out := decodeChat(t, resp)

	if out.Message != "42 clients actifs" {
		t.Errorf("expected backend reply, got %q", out.Message)
	}
	if out.Direction != "ltr" {
		t.Errorf("expected default ltr direction, got %q", out.Direction)
	}
	if !out.HasAudio {
		t.Error("expected hasAudio default true")
	}
	if deps.backend.calls != 1 || deps.responder.calls != 0 {
		t.Errorf("expected one primary call and no fallback, got backend=%d fallback=%d",
			deps.backend.calls, deps.responder.calls)
	}
}

func TestTTS_EmptyTextIsBadRequest(t *testing.T) {
	srv, _ := newTestServer(t)
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/api/assistant/tts", `{"text": ""}`, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	var body map[string]string
	json.NewDecoder(resp.Body).Decode(&body)
	if body["error"] == "" {
		t.Error("expected structured error body")
	}
}

func TestTTS_ReturnsDataURI(t *testing.T) {
	srv, _ := newTestServer(t)
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/api/assistant/tts", `{"text": "مرحبا بكم"}`, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body map[string]string
	json.NewDecoder(resp.Body).Decode(&body)
	if !strings.HasPrefix(body["audioDataUri"], "data:audio/mp3;base64,") {
		t.Errorf("expected mp3 data URI, got %q", body["audioDataUri"])
	}
}

func TestTTS_SynthesisFailure(t *testing.T) {
	srv, deps := newTestServer(t)
	defer srv.Close()

	deps.general.err = assist.NewError(assist.KindProviderRejected, "status_500", nil)

	resp := postJSON(t, srv.URL+"/api/assistant/tts", `{"text": "bonjour"}`, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}

	var body map[string]string
	json.NewDecoder(resp.Body).Decode(&body)
	if body["error"] != "synthesis failed" {
		t.Errorf("expected synthesis failed, got %q", body["error"])
	}
}

func TestSTT_MissingAudioIsBadRequest(t *testing.T) {
	srv, _ := newTestServer(t)
	defer srv.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.Close()

	req, _ := http.NewRequest(http.MethodPost, srv.URL+"/api/assistant/stt", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}

func TestSTT_TranscribesVoiceNote(t *testing.T) {
	srv, _ := newTestServer(t)
	defer srv.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile("audio", "note.webm")
	fw.Write([]byte("fake-audio"))
	mw.Close()

	req, _ := http.NewRequest(http.MethodPost, srv.URL+"/api/assistant/stt", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body map[string]string
	json.NewDecoder(resp.Body).Decode(&body)
	if body["text"] != "combien de ventes ce mois" {
		t.Errorf("unexpected transcript: %q", body["text"])
	}
}
