package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dabin/mathmission/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := config.Load()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "file:mathmission.db", cfg.DBPath)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
	assert.Equal(t, 30*time.Second, cfg.GradingTimeout)
	assert.Equal(t, 5, cfg.DefaultProblemCount)
	assert.Equal(t, 3, cfg.MinProblemCount)
	assert.Equal(t, 10, cfg.MaxProblemCount)
	assert.Equal(t, 60, cfg.RateLimitPerMinute)
	assert.Equal(t, 10, cfg.RateLimitBurst)
	assert.Equal(t, []string{
		"arithmetic_sequence",
		"geometric_sequence",
		"series",
		"mathematical_induction",
	}, cfg.DefaultTopics)
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("DB_PATH", "custom.db")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("GRADING_TIMEOUT", "45s")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "120")

	cfg := config.Load()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "custom.db", cfg.DBPath)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.Equal(t, 45*time.Second, cfg.GradingTimeout)
	assert.Equal(t, 120, cfg.RateLimitPerMinute)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("DEFAULT_PROBLEM_COUNT", "not-a-number")
	t.Setenv("GRADING_TIMEOUT", "soon")

	cfg := config.Load()

	assert.Equal(t, 5, cfg.DefaultProblemCount)
	assert.Equal(t, 30*time.Second, cfg.GradingTimeout)
}

func TestLoad_ProblemCountClampedToBounds(t *testing.T) {
	tests := []struct {
		name     string
		count    string
		min      string
		max      string
		expected int
	}{
		{
			name:     "below minimum",
			count:    "1",
			min:      "3",
			max:      "10",
			expected: 3,
		},
		{
			name:     "above maximum",
			count:    "25",
			min:      "3",
			max:      "10",
			expected: 10,
		},
		{
			name:     "inside bounds",
			count:    "7",
			min:      "3",
			max:      "10",
			expected: 7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DEFAULT_PROBLEM_COUNT", tt.count)
			t.Setenv("MIN_PROBLEM_COUNT", tt.min)
			t.Setenv("MAX_PROBLEM_COUNT", tt.max)

			cfg := config.Load()
			assert.Equal(t, tt.expected, cfg.DefaultProblemCount)
		})
	}
}

func TestLoad_TopicListTrimsEntries(t *testing.T) {
	t.Setenv("DEFAULT_TOPICS", " series , geometry ,, limits ")

	cfg := config.Load()
	assert.Equal(t, []string{"series", "geometry", "limits"}, cfg.DefaultTopics)
}
