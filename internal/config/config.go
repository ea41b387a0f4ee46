package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Defaults for the sampling limits and per-call timeouts.
const (
	DefaultMaxFiles         = 50
	DefaultMaxFileSizeBytes = 512000
	DefaultMaxContentChars  = 1000
	DefaultGitHubTimeout    = 30 * time.Second
	DefaultLLMTimeout       = 120 * time.Second
)

type Config struct {
	GitHubToken  string
	DiscordToken string

	LLMBaseURL string
	LLMAPIKey  string
	LLMModel   string

	MaxFiles         int
	MaxFileSizeBytes int
	MaxContentChars  int

	GitHubTimeout time.Duration
	LLMTimeout    time.Duration
}

// Load reads configuration from the environment (and .env if present).
// Every limit has a documented default and can be overridden; invalid
// overrides are errors, not silently ignored.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		GitHubToken:  os.Getenv("GITHUB_TOKEN"),
		DiscordToken: os.Getenv("DISCORD_TOKEN"),

		LLMBaseURL: os.Getenv("LLM_BASE_URL"),
		LLMAPIKey:  os.Getenv("LLM_API_KEY"),
		LLMModel:   os.Getenv("LLM_MODEL"),

		MaxFiles:         DefaultMaxFiles,
		MaxFileSizeBytes: DefaultMaxFileSizeBytes,
		MaxContentChars:  DefaultMaxContentChars,
		GitHubTimeout:    DefaultGitHubTimeout,
		LLMTimeout:       DefaultLLMTimeout,
	}

	if cfg.LLMAPIKey == "" {
		cfg.LLMAPIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.LLMBaseURL == "" {
		cfg.LLMBaseURL = "https://api.openai.com/v1"
	}
	cfg.LLMBaseURL = strings.TrimSuffix(cfg.LLMBaseURL, "/")
	if cfg.LLMModel == "" {
		cfg.LLMModel = "gpt-4o"
	}

	if err := overrideInt("MAX_FILES", &cfg.MaxFiles); err != nil {
		return nil, err
	}
	if err := overrideInt("MAX_FILE_SIZE_BYTES", &cfg.MaxFileSizeBytes); err != nil {
		return nil, err
	}
	if err := overrideInt("MAX_CONTENT_CHARS", &cfg.MaxContentChars); err != nil {
		return nil, err
	}
	if err := overrideDuration("GITHUB_TIMEOUT", &cfg.GitHubTimeout); err != nil {
		return nil, err
	}
	if err := overrideDuration("LLM_TIMEOUT", &cfg.LLMTimeout); err != nil {
		return nil, err
	}

	return cfg, nil
}

func overrideInt(key string, dst *int) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fmt.Errorf("%s must be a positive integer, got %q", key, v)
	}
	*dst = n
	return nil
}

func overrideDuration(key string, dst *time.Duration) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fmt.Errorf("%s must be a positive duration, got %q", key, v)
	}
	*dst = d
	return nil
}
