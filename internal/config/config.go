package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	ServerPort string
	GinMode    string
	LogLevel   string
	LogFormat  string

	// Generative model provider (OpenAI-compatible API).
	ProviderAPIKey  string
	ProviderBaseURL string
	TextModel       string
	ImageModel      string
	// ProviderTimeout is the HTTP client ceiling for provider calls. Upstream
	// model latency can run into minutes, so the default is generous.
	ProviderTimeout time.Duration

	// Local image store.
	ImagesDir      string
	ImageRetention time.Duration // 0 disables the retention sweeper

	// SessionSecret signs the session cookie. Session state itself lives in
	// process memory only.
	SessionSecret string

	// GenerateRateLimit is requests per minute per IP on generation routes.
	GenerateRateLimit int

	// AllowedOrigins controls HTTP CORS.
	// Empty slice means all origins are permitted (dev default).
	AllowedOrigins []string
}

// Load reads configuration from environment variables with sensible defaults.
// It loads .env file if present but does not fail if missing.
func Load() *Config {
	_ = godotenv.Load() // Ignore error — .env is optional

	return &Config{
		ServerPort:        getEnv("SERVER_PORT", "3001"),
		GinMode:           getEnv("GIN_MODE", "debug"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "pretty"),
		ProviderAPIKey:    getEnv("PROVIDER_API_KEY", ""),
		ProviderBaseURL:   getEnv("PROVIDER_BASE_URL", ""),
		TextModel:         getEnv("TEXT_MODEL", "gpt-4o-mini"),
		ImageModel:        getEnv("IMAGE_MODEL", "dall-e-3"),
		ProviderTimeout:   time.Duration(getEnvInt("PROVIDER_TIMEOUT_MINUTES", 5)) * time.Minute,
		ImagesDir:         getEnv("IMAGES_DIR", "./images"),
		ImageRetention:    time.Duration(getEnvInt("IMAGE_RETENTION_HOURS", 0)) * time.Hour,
		SessionSecret:     getEnv("SESSION_SECRET", "change-this-to-a-secure-random-string"),
		GenerateRateLimit: getEnvInt("GENERATE_RATE_LIMIT", 30),
		AllowedOrigins:    parseOrigins(getEnv("ALLOWED_ORIGINS", "")),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
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

// parseOrigins splits a comma-separated origins string into a trimmed slice.
// Returns nil (allow-all) if the input is empty.
func parseOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
