package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	// Orchestration backend
	OrchestratorBaseURL string
	OrchestratorTimeout time.Duration

	// LLM API keys
	OpenAIAPIKey    string
	AnthropicAPIKey string
	GeminiAPIKey    string

	// Speech
	AzureSpeechKey    string
	AzureSpeechRegion string

	// Google Cloud (for transcription)
	GoogleProjectID string

	// App settings
	DefaultLang          string
	FallbackChatProvider string
	FallbackTemperature  float64
	FallbackMaxTokens    int
	DefaultTranscriber   string
	AllowedOrigin        string

	// Per-IP throttling; outbound providers bill per request.
	RateLimitPerSec int
	RateLimitBurst  int
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:                 getEnv("PORT", "8080"),
		OrchestratorBaseURL:  os.Getenv("ORCHESTRATOR_BASE_URL"),
		OrchestratorTimeout:  time.Duration(getEnvAsInt("ORCHESTRATOR_TIMEOUT_SECONDS", 30)) * time.Second,
		OpenAIAPIKey:         os.Getenv("OPENAI_API_KEY"),
		AnthropicAPIKey:      os.Getenv("ANTHROPIC_API_KEY"),
		GeminiAPIKey:         os.Getenv("GEMINI_API_KEY"),
		AzureSpeechKey:       os.Getenv("AZURE_SPEECH_KEY"),
		AzureSpeechRegion:    getEnv("AZURE_SPEECH_REGION", "francecentral"),
		GoogleProjectID:      os.Getenv("GOOGLE_PROJECT_ID"),
		DefaultLang:          getEnv("DEFAULT_LANG", "fr"),
		FallbackChatProvider: getEnv("FALLBACK_CHAT_PROVIDER", "openai"),
		FallbackTemperature:  getEnvAsFloat("FALLBACK_TEMPERATURE", 0.7),
		FallbackMaxTokens:    getEnvAsInt("FALLBACK_MAX_TOKENS", 1024),
		DefaultTranscriber:   getEnv("DEFAULT_TRANSCRIBER", "openai"),
		AllowedOrigin:        getEnv("ALLOWED_ORIGIN", "*"),
		RateLimitPerSec:      getEnvAsInt("RATE_LIMIT_PER_SECOND", 10),
		RateLimitBurst:       getEnvAsInt("RATE_LIMIT_BURST", 30),
	}

	if cfg.OrchestratorBaseURL == "" {
		return nil, fmt.Errorf("ORCHESTRATOR_BASE_URL must not be empty")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvAsFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
