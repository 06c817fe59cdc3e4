package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Per call site defaults, used when no *_MODEL override is set.
const (
	defaultOpenAIChatModel        = "gpt-4o-mini"
	defaultOpenAIGenerateModel    = "gpt-3.5-turbo"
	defaultAnthropicChatModel     = "claude-3-5-haiku-latest"
	defaultAnthropicGenerateModel = "claude-sonnet-4-20250514"
)

type Config struct {
	Port     int
	LogLevel string

	Provider        string
	OpenAIAPIKey    string
	OpenAIBaseURL   string
	OpenAIModel     string
	AnthropicAPIKey string
	AnthropicModel  string

	ModelMaxAttempts    int
	ModelRetryDelay     time.Duration
	ModelAttemptTimeout time.Duration
	ChatDeadline        time.Duration
	GenerateTimeout     time.Duration

	NatsURL        string
	NatsToken      string
	DatabaseURL    string
	AnalyticsID    string
	AllowedOrigins []string
}

func Load() Config {
	return Config{
		Port:     envInt("NAMEPAL_PORT", 8080),
		LogLevel: envStr("LOG_LEVEL", "info"),

		Provider:        strings.ToLower(envStr("LLM_PROVIDER", ProviderOpenAI)),
		OpenAIAPIKey:    envStr("OPENAI_API_KEY", ""),
		OpenAIBaseURL:   envStr("OPENAI_BASE_URL", ""),
		OpenAIModel:     envStr("OPENAI_MODEL", ""),
		AnthropicAPIKey: envStr("ANTHROPIC_API_KEY", ""),
		AnthropicModel:  envStr("ANTHROPIC_MODEL", ""),

		ModelMaxAttempts:    envInt("MODEL_MAX_ATTEMPTS", 3),
		ModelRetryDelay:     envDuration("MODEL_RETRY_DELAY", 500*time.Millisecond),
		ModelAttemptTimeout: envDuration("MODEL_ATTEMPT_TIMEOUT", 30*time.Second),
		ChatDeadline:        envDuration("CHAT_DEADLINE", 90*time.Second),
		GenerateTimeout:     envDuration("GENERATE_TIMEOUT", 60*time.Second),

		NatsURL:        envStr("NATS_URL", ""),
		NatsToken:      envStr("NATS_TOKEN", ""),
		DatabaseURL:    envStr("DATABASE_URL", ""),
		AnalyticsID:    envStr("ANALYTICS_ID", ""),
		AllowedOrigins: envList("ALLOWED_ORIGINS", []string{"*"}),
	}
}

// ChatModel is the model used for conversation turns.
func (c Config) ChatModel() string {
	if c.Provider == ProviderAnthropic {
		return firstNonEmpty(c.AnthropicModel, defaultAnthropicChatModel)
	}
	return firstNonEmpty(c.OpenAIModel, defaultOpenAIChatModel)
}

// GenerateModel is the model used for the dedicated generation call.
func (c Config) GenerateModel() string {
	if c.Provider == ProviderAnthropic {
		return firstNonEmpty(c.AnthropicModel, defaultAnthropicGenerateModel)
	}
	return firstNonEmpty(c.OpenAIModel, defaultOpenAIGenerateModel)
}

func firstNonEmpty(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

// envList splits a comma separated value, dropping blank entries.
func envList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
