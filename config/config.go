package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Scorer names accepted by the scorer setting.
const (
	ScorerVader  = "vader"
	ScorerGemini = "gemini"
)

// maxPageSize is the largest listing page the Reddit API serves.
const maxPageSize = 100

// Config holds all application configuration.
type Config struct {
	RedditClientID     string `yaml:"reddit_client_id"`
	RedditClientSecret string `yaml:"reddit_client_secret"`
	RedditUserAgent    string `yaml:"reddit_user_agent"`
	PostLimit          int    `yaml:"post_limit"`
	CommentLimit       int    `yaml:"comment_limit"`
	PageSize           int    `yaml:"page_size"`
	FetchTimeoutSecs   int    `yaml:"fetch_timeout_secs"`
	Timezone           string `yaml:"timezone"`
	OutputDir          string `yaml:"output_dir"`
	Scorer             string `yaml:"scorer"`
	GeminiAPIKey       string `yaml:"gemini_api_key"`
	GeminiModel        string `yaml:"gemini_model"`
	LogLevel           string `yaml:"log_level"`
}

// Load reads configuration from an optional YAML file, then a .env file in
// the working directory, then the process environment, and applies defaults.
// A missing YAML file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config yaml: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// .env values never override variables already set in the environment.
	_ = godotenv.Load()

	applyDefaults(cfg)
	applyEnvironmentOverrides(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// GetConfigPath returns the config file path from environment or default.
func GetConfigPath() string {
	if path := os.Getenv("REDDIT_PERSONA_CONFIG"); path != "" {
		return path
	}
	return "./config.yaml"
}

// Location resolves the configured timezone. Validation guarantees it loads.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// FetchTimeout returns the HTTP timeout for API calls.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSecs) * time.Second
}

func applyDefaults(cfg *Config) {
	if cfg.PostLimit == 0 {
		cfg.PostLimit = 30
	}
	if cfg.CommentLimit == 0 {
		cfg.CommentLimit = 50
	}
	if cfg.PageSize == 0 {
		cfg.PageSize = maxPageSize
	}
	if cfg.FetchTimeoutSecs == 0 {
		cfg.FetchTimeoutSecs = 10
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "Local"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
	if cfg.Scorer == "" {
		cfg.Scorer = ScorerVader
	}
	if cfg.GeminiModel == "" {
		cfg.GeminiModel = "gemini-2.0-flash-lite"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}

func applyEnvironmentOverrides(cfg *Config) {
	overrides := []struct {
		env   string
		field *string
	}{
		{"REDDIT_CLIENT_ID", &cfg.RedditClientID},
		{"REDDIT_CLIENT_SECRET", &cfg.RedditClientSecret},
		{"REDDIT_USER_AGENT", &cfg.RedditUserAgent},
		{"REDDIT_PERSONA_TZ", &cfg.Timezone},
		{"REDDIT_PERSONA_OUT", &cfg.OutputDir},
		{"GEMINI_API_KEY", &cfg.GeminiAPIKey},
	}
	for _, o := range overrides {
		if v := os.Getenv(o.env); v != "" {
			*o.field = v
		}
	}
}

func validate(cfg *Config) error {
	if cfg.RedditClientID == "" {
		return fmt.Errorf("reddit_client_id is required")
	}
	if cfg.RedditClientSecret == "" {
		return fmt.Errorf("reddit_client_secret is required")
	}
	if cfg.RedditUserAgent == "" {
		return fmt.Errorf("reddit_user_agent is required")
	}
	if cfg.PostLimit < 0 || cfg.CommentLimit < 0 {
		return fmt.Errorf("post_limit and comment_limit must not be negative")
	}
	if cfg.PageSize < 1 || cfg.PageSize > maxPageSize {
		return fmt.Errorf("page_size must be between 1 and %d, got %d", maxPageSize, cfg.PageSize)
	}
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}
	switch cfg.Scorer {
	case ScorerVader:
	case ScorerGemini:
		if cfg.GeminiAPIKey == "" {
			return fmt.Errorf("gemini_api_key is required when scorer is %q", ScorerGemini)
		}
	default:
		return fmt.Errorf("scorer must be %q or %q, got %q", ScorerVader, ScorerGemini, cfg.Scorer)
	}
	return nil
}
