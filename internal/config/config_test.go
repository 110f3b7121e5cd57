package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvOrDefault(t *testing.T) {
	tests := []struct {
		name       string
		key        string
		envValue   string
		defaultVal string
		expected   string
	}{
		{"uses env value", "ASKBOX_TEST_VAR_1", "hello", "default", "hello"},
		{"uses default when empty", "ASKBOX_TEST_VAR_2", "", "default", "default"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.envValue)
			assert.Equal(t, tc.expected, getEnvOrDefault(tc.key, tc.defaultVal))
		})
	}
}

func TestGetEnvAsNumbersOrDefault(t *testing.T) {
	t.Setenv("ASKBOX_TEST_INT", "42")
	t.Setenv("ASKBOX_TEST_BAD_INT", "abc")
	t.Setenv("ASKBOX_TEST_FLOAT", "0.5")
	t.Setenv("ASKBOX_TEST_NEG_FLOAT", "-1")
	t.Setenv("ASKBOX_TEST_ZERO_FLOAT", "0")

	assert.Equal(t, 42, getEnvAsIntOrDefault("ASKBOX_TEST_INT", 10))
	assert.Equal(t, 10, getEnvAsIntOrDefault("ASKBOX_TEST_BAD_INT", 10))
	assert.Equal(t, 10, getEnvAsIntOrDefault("ASKBOX_TEST_UNSET_INT", 10))
	assert.Equal(t, 0.5, getEnvAsFloatOrDefault("ASKBOX_TEST_FLOAT", 2))
	assert.Equal(t, 2.0, getEnvAsFloatOrDefault("ASKBOX_TEST_NEG_FLOAT", 2))
	// zero turns the /ask rate limit off
	assert.Equal(t, 0.0, getEnvAsFloatOrDefault("ASKBOX_TEST_ZERO_FLOAT", 2))
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "ALLOWED_ORIGINS", "DB_PATH", "LLM_MODEL", "ASK_BURST", "ASKBOX_SERVER"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, ":5000", cfg.Addr())
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, "askbox.db", cfg.DBPath)
	assert.Equal(t, "llama3.1:8b", cfg.LLMModel)
	assert.Equal(t, 5, cfg.AskBurst)
	assert.Equal(t, "http://localhost:5000", cfg.ServerURL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8100")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test ,")
	t.Setenv("ASK_RATE_PER_SEC", "10")

	cfg := Load()
	assert.Equal(t, ":8100", cfg.Addr())
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	assert.Equal(t, 10.0, cfg.AskRatePerSec)
}
