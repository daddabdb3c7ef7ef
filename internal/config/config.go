package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

type Config struct {
	Provider        string        `toml:"provider"`          // SPORTSINTEL_PROVIDER (default "gemini")
	Model           string        `toml:"model"`             // SPORTSINTEL_MODEL (empty = provider default)
	WebSearch       bool          `toml:"web_search"`        // SPORTSINTEL_WEB_SEARCH (default true)
	Timeout         time.Duration `toml:"timeout"`           // SPORTSINTEL_TIMEOUT (0 = none)
	MaxOutputTokens int           `toml:"max_output_tokens"` // SPORTSINTEL_MAX_OUTPUT_TOKENS (default 8192)

	GeminiBaseURL string `toml:"gemini_base_url"` // GEMINI_API_BASE_URL
	OpenAIBaseURL string `toml:"openai_base_url"` // OPENAI_API_BASE_URL

	LogLevel  string `toml:"log_level"`  // SPORTSINTEL_LOG_LEVEL
	LogFormat string `toml:"log_format"` // SPORTSINTEL_LOG_FORMAT
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Provider:        ProviderGemini,
		WebSearch:       true,
		MaxOutputTokens: 8192,
		LogLevel:        "info",
		LogFormat:       "compact",
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/sportsintel/config.toml, or the
// platform equivalent.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "sportsintel", "config.toml"), nil
}

// Load layers the defaults, the TOML file at path and the environment. An
// empty path reads DefaultPath and tolerates it being absent; an explicit
// path must exist.
func Load(path string) (*Config, error) {
	c := Default()

	explicit := path != ""
	if !explicit {
		var err error
		if path, err = DefaultPath(); err != nil {
			path = ""
		}
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, c); err != nil {
			if !explicit && errors.Is(err, os.ErrNotExist) {
				err = nil
			}
			if err != nil {
				return nil, fmt.Errorf("config %s: %w", path, err)
			}
		}
	}

	if err := c.applyEnv(); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) applyEnv() error {
	c.Provider = strings.ToLower(envOrDefault("SPORTSINTEL_PROVIDER", c.Provider))
	c.Model = envOrDefault("SPORTSINTEL_MODEL", c.Model)
	c.GeminiBaseURL = envOrDefault("GEMINI_API_BASE_URL", c.GeminiBaseURL)
	c.OpenAIBaseURL = envOrDefault("OPENAI_API_BASE_URL", c.OpenAIBaseURL)
	c.LogLevel = envOrDefault("SPORTSINTEL_LOG_LEVEL", c.LogLevel)
	c.LogFormat = envOrDefault("SPORTSINTEL_LOG_FORMAT", c.LogFormat)

	if v := os.Getenv("SPORTSINTEL_WEB_SEARCH"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("SPORTSINTEL_WEB_SEARCH: %w", err)
		}
		c.WebSearch = enabled
	}
	if v := os.Getenv("SPORTSINTEL_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("SPORTSINTEL_TIMEOUT: %w", err)
		}
		c.Timeout = d
	}
	if v := os.Getenv("SPORTSINTEL_MAX_OUTPUT_TOKENS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SPORTSINTEL_MAX_OUTPUT_TOKENS: %w", err)
		}
		c.MaxOutputTokens = n
	}
	return nil
}

// Validate checks values that cannot be corrected later.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderGemini, ProviderOpenAI:
	default:
		return fmt.Errorf("unknown provider %q (want %s or %s)", c.Provider, ProviderGemini, ProviderOpenAI)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	if c.MaxOutputTokens < 0 {
		return fmt.Errorf("max_output_tokens must not be negative, got %d", c.MaxOutputTokens)
	}
	return nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
