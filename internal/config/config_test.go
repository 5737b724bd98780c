package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"GENERATION_MAX_TOKENS", "GENERATION_TIMEOUT", "DEFAULT_TOP_K", "KB_PATH", "SESSION_STORE", "DB_CONNECTION_STRING"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, 256, cfg.Ai.GenerationMaxTokens)
	assert.Equal(t, 60*time.Second, cfg.Ai.GenerationTimeout)
	assert.Equal(t, 3, cfg.Ai.DefaultTopK)
}

func TestGetEnvAsDuration(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{"duration", "90s", 90 * time.Second},
		{"seconds", "45", 45 * time.Second},
		{"empty", "", time.Minute},
		{"garbage", "soon", time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_DURATION", tt.value)
			assert.Equal(t, tt.want, getEnvAsDuration("TEST_DURATION", time.Minute))
		})
	}
}

func TestGetEnvAsInt(t *testing.T) {
	t.Setenv("TEST_INT", "7")
	assert.Equal(t, 7, getEnvAsInt("TEST_INT", 1))

	t.Setenv("TEST_INT", "seven")
	assert.Equal(t, 1, getEnvAsInt("TEST_INT", 1))
}
