package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load reads so ambient shell state cannot
// leak into assertions.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GITHUB_TOKEN", "DISCORD_TOKEN",
		"LLM_BASE_URL", "LLM_API_KEY", "OPENAI_API_KEY", "LLM_MODEL",
		"MAX_FILES", "MAX_FILE_SIZE_BYTES", "MAX_CONTENT_CHARS",
		"GITHUB_TIMEOUT", "LLM_TIMEOUT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.MaxFiles)
	assert.Equal(t, 512000, cfg.MaxFileSizeBytes)
	assert.Equal(t, 1000, cfg.MaxContentChars)
	assert.Equal(t, 30*time.Second, cfg.GitHubTimeout)
	assert.Equal(t, 120*time.Second, cfg.LLMTimeout)
	assert.Equal(t, "https://api.openai.com/v1", cfg.LLMBaseURL)
	assert.Equal(t, "gpt-4o", cfg.LLMModel)
	assert.Empty(t, cfg.GitHubToken)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("GITHUB_TOKEN", "ghp_test")
	t.Setenv("LLM_BASE_URL", "http://localhost:8080/v1/")
	t.Setenv("LLM_API_KEY", "sk-test")
	t.Setenv("LLM_MODEL", "llama3")
	t.Setenv("MAX_FILES", "10")
	t.Setenv("MAX_FILE_SIZE_BYTES", "2048")
	t.Setenv("MAX_CONTENT_CHARS", "500")
	t.Setenv("GITHUB_TIMEOUT", "5s")
	t.Setenv("LLM_TIMEOUT", "1m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "ghp_test", cfg.GitHubToken)
	// Trailing slash is trimmed so the SDK does not double it.
	assert.Equal(t, "http://localhost:8080/v1", cfg.LLMBaseURL)
	assert.Equal(t, "sk-test", cfg.LLMAPIKey)
	assert.Equal(t, "llama3", cfg.LLMModel)
	assert.Equal(t, 10, cfg.MaxFiles)
	assert.Equal(t, 2048, cfg.MaxFileSizeBytes)
	assert.Equal(t, 500, cfg.MaxContentChars)
	assert.Equal(t, 5*time.Second, cfg.GitHubTimeout)
	assert.Equal(t, time.Minute, cfg.LLMTimeout)
}

func TestLoadOpenAIKeyFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-fallback")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sk-fallback", cfg.LLMAPIKey)
}

func TestLoadLLMAPIKeyWinsOverFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_API_KEY", "sk-primary")
	t.Setenv("OPENAI_API_KEY", "sk-fallback")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sk-primary", cfg.LLMAPIKey)
}

func TestLoadInvalidOverrides(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"MAX_FILES", "not-a-number"},
		{"MAX_FILES", "-3"},
		{"MAX_FILES", "0"},
		{"MAX_FILE_SIZE_BYTES", "12.5"},
		{"MAX_CONTENT_CHARS", "-1"},
		{"GITHUB_TIMEOUT", "soon"},
		{"GITHUB_TIMEOUT", "-5s"},
		{"LLM_TIMEOUT", "0s"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}
