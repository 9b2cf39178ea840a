package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yassirk/tijari-assist/internal/api"
	"github.com/yassirk/tijari-assist/internal/assist"
	"github.com/yassirk/tijari-assist/internal/config"
	"github.com/yassirk/tijari-assist/internal/provider"
	"github.com/yassirk/tijari-assist/internal/provider/llm"
	"github.com/yassirk/tijari-assist/internal/provider/orchestrator"
	"github.com/yassirk/tijari-assist/internal/provider/stt"
	"github.com/yassirk/tijari-assist/internal/provider/tts"
	"github.com/yassirk/tijari-assist/internal/speech"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	registry := provider.NewRegistry()
	registerProviders(cfg, registry)

	fallback, err := registry.GetChat(cfg.FallbackChatProvider)
	if err != nil {
		slog.Error("degraded-mode responder not available", "provider", cfg.FallbackChatProvider, "error", err)
		os.Exit(1)
	}

	backend := orchestrator.New(cfg.OrchestratorBaseURL, cfg.OrchestratorTimeout)
	gateway, err := assist.NewGateway(backend, fallback, cfg.DefaultLang)
	if err != nil {
		slog.Error("failed to build gateway", "error", err)
		os.Exit(1)
	}

	// The Arabic voice is always in the chain; without a credential it skips
	// itself and the general voice answers.
	arabicVoice := tts.NewAzureProvider(cfg.AzureSpeechKey, cfg.AzureSpeechRegion)
	generalVoice := tts.NewOpenAIProvider(cfg.OpenAIAPIKey)
	speechRouter, err := speech.NewRouter(arabicVoice, generalVoice)
	if err != nil {
		slog.Error("failed to build speech router", "error", err)
		os.Exit(1)
	}

	router := api.NewRouter(cfg, gateway, speechRouter, registry)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}

	slog.Info("server stopped")
}

func registerProviders(cfg *config.Config, registry *provider.Registry) {
	// Degraded-mode chat providers
	if cfg.OpenAIAPIKey != "" {
		registry.RegisterChat(llm.NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.FallbackTemperature, int64(cfg.FallbackMaxTokens)))
		slog.Info("registered chat provider", "name", "openai")
	}
	if cfg.AnthropicAPIKey != "" {
		registry.RegisterChat(llm.NewAnthropicProvider(cfg.AnthropicAPIKey, cfg.FallbackTemperature, int64(cfg.FallbackMaxTokens)))
		slog.Info("registered chat provider", "name", "anthropic")
	}
	if cfg.GeminiAPIKey != "" {
		p, err := llm.NewGeminiProvider(context.Background(), cfg.GeminiAPIKey, float32(cfg.FallbackTemperature), int32(cfg.FallbackMaxTokens))
		if err != nil {
			slog.Error("failed to create Gemini provider", "error", err)
		} else {
			registry.RegisterChat(p)
			slog.Info("registered chat provider", "name", "gemini")
		}
	}

	// Speech providers
	if cfg.AzureSpeechKey != "" {
		registry.RegisterSpeech(tts.NewAzureProvider(cfg.AzureSpeechKey, cfg.AzureSpeechRegion))
		slog.Info("registered speech provider", "name", "azure")
	}
	if cfg.OpenAIAPIKey != "" {
		registry.RegisterSpeech(tts.NewOpenAIProvider(cfg.OpenAIAPIKey))
		slog.Info("registered speech provider", "name", "openai")
	}

	// Transcription providers
	if cfg.OpenAIAPIKey != "" {
		registry.RegisterTranscription(stt.NewOpenAIProvider(cfg.OpenAIAPIKey))
		slog.Info("registered transcription provider", "name", "openai")
	}
	if cfg.GoogleProjectID != "" {
		p, err := stt.NewGoogleProvider(context.Background(), cfg.GoogleProjectID, "fr-FR")
		if err != nil {
			slog.Error("failed to create Google transcription provider", "error", err)
		} else {
			registry.RegisterTranscription(p)
			slog.Info("registered transcription provider", "name", "google")
		}
	}
}
