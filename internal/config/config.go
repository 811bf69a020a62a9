package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr     string
	DBPath   string
	LogLevel string

	// Grading collaborator (OpenAI-compatible API)
	OpenAIAPIKey   string
	OpenAIBaseURL  string
	OpenAIModel    string
	GradingTimeout time.Duration

	// Mission assembly
	DefaultProblemCount int
	MinProblemCount     int
	MaxProblemCount     int
	DefaultTopics       []string

	// Per-user request throttling
	RateLimitPerMinute int
	RateLimitBurst     int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	cfg := Config{
		Addr:                envOr("ADDR", ":8080"),
		DBPath:              envOr("DB_PATH", "file:mathmission.db"),
		LogLevel:            envOr("LOG_LEVEL", "INFO"),
		OpenAIAPIKey:        envOr("OPENAI_API_KEY", ""),
		OpenAIBaseURL:       envOr("OPENAI_BASE_URL", ""),
		OpenAIModel:         envOr("OPENAI_MODEL", "gpt-4o-mini"),
		GradingTimeout:      envDurationOr("GRADING_TIMEOUT", 30*time.Second),
		DefaultProblemCount: envIntOr("DEFAULT_PROBLEM_COUNT", 5),
		MinProblemCount:     envIntOr("MIN_PROBLEM_COUNT", 3),
		MaxProblemCount:     envIntOr("MAX_PROBLEM_COUNT", 10),
		DefaultTopics:       envListOr("DEFAULT_TOPICS", "arithmetic_sequence,geometric_sequence,series,mathematical_induction"),
		RateLimitPerMinute:  envIntOr("RATE_LIMIT_PER_MINUTE", 60),
		RateLimitBurst:      envIntOr("RATE_LIMIT_BURST", 10),
	}

	// The daily problem count always stays inside the configured bounds.
	if cfg.DefaultProblemCount < cfg.MinProblemCount {
		cfg.DefaultProblemCount = cfg.MinProblemCount
	}
	if cfg.DefaultProblemCount > cfg.MaxProblemCount {
		cfg.DefaultProblemCount = cfg.MaxProblemCount
	}

	return cfg
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envDurationOr(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("invalid value for %s=%q, using default %s", key, v, def)
	}
	return def
}

func envListOr(key, def string) []string {
	raw := envOr(key, def)
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
