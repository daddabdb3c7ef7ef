package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

var envVars = []string{
	"SPORTSINTEL_PROVIDER", "SPORTSINTEL_MODEL", "SPORTSINTEL_WEB_SEARCH",
	"SPORTSINTEL_TIMEOUT", "SPORTSINTEL_MAX_OUTPUT_TOKENS",
	"SPORTSINTEL_LOG_LEVEL", "SPORTSINTEL_LOG_FORMAT",
	"GEMINI_API_BASE_URL", "OPENAI_API_BASE_URL",
}

func clearAllEnv(t *testing.T) {
	t.Helper()
	for _, key := range envVars {
		t.Setenv(key, "")
	}
	// keep DefaultPath away from the real user config
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearAllEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Provider != ProviderGemini || !cfg.WebSearch || cfg.MaxOutputTokens != 8192 || cfg.Timeout != 0 {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoad_Layers(t *testing.T) {
	file := `
provider = "openai"
model = "gpt-4o-search-preview"
web_search = false
timeout = "45s"
log_level = "debug"
`
	for _, tc := range []struct {
		name          string
		env           map[string]string
		wantProvider  string
		wantModel     string
		wantWebSearch bool
		wantTimeout   time.Duration
		wantLogLevel  string
	}{
		{
			name:          "FileOnly",
			wantProvider:  "openai",
			wantModel:     "gpt-4o-search-preview",
			wantWebSearch: false,
			wantTimeout:   45 * time.Second,
			wantLogLevel:  "debug",
		},
		{
			name: "EnvOverridesFile",
			env: map[string]string{
				"SPORTSINTEL_PROVIDER":   "Gemini",
				"SPORTSINTEL_MODEL":      "gemini-2.5-pro",
				"SPORTSINTEL_WEB_SEARCH": "true",
				"SPORTSINTEL_TIMEOUT":    "2m",
			},
			wantProvider:  "gemini",
			wantModel:     "gemini-2.5-pro",
			wantWebSearch: true,
			wantTimeout:   2 * time.Minute,
			wantLogLevel:  "debug",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			clearAllEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			cfg, err := Load(writeConfig(t, file))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.Provider != tc.wantProvider {
				t.Errorf("Provider = %q, want %q", cfg.Provider, tc.wantProvider)
			}
			if cfg.Model != tc.wantModel {
				t.Errorf("Model = %q, want %q", cfg.Model, tc.wantModel)
			}
			if cfg.WebSearch != tc.wantWebSearch {
				t.Errorf("WebSearch = %v, want %v", cfg.WebSearch, tc.wantWebSearch)
			}
			if cfg.Timeout != tc.wantTimeout {
				t.Errorf("Timeout = %v, want %v", cfg.Timeout, tc.wantTimeout)
			}
			if cfg.LogLevel != tc.wantLogLevel {
				t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, tc.wantLogLevel)
			}
		})
	}
}

func TestLoad_DefaultPathFile(t *testing.T) {
	clearAllEnv(t)
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	if err := os.MkdirAll(filepath.Join(dir, "sportsintel"), 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "sportsintel", "config.toml"), []byte(`model = "from-file"`), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Model != "from-file" {
		t.Errorf("Model = %q, want from-file", cfg.Model)
	}
}

func TestLoad_Errors(t *testing.T) {
	for _, tc := range []struct {
		name string
		file string
		env  map[string]string
	}{
		{name: "UnknownProvider", env: map[string]string{"SPORTSINTEL_PROVIDER": "anthropic"}},
		{name: "BadTimeout", env: map[string]string{"SPORTSINTEL_TIMEOUT": "soon"}},
		{name: "BadWebSearch", env: map[string]string{"SPORTSINTEL_WEB_SEARCH": "maybe"}},
		{name: "BadTokens", env: map[string]string{"SPORTSINTEL_MAX_OUTPUT_TOKENS": "lots"}},
		{name: "NegativeTimeout", env: map[string]string{"SPORTSINTEL_TIMEOUT": "-1s"}},
		{name: "MalformedFile", file: `provider = `},
	} {
		t.Run(tc.name, func(t *testing.T) {
			clearAllEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			path := ""
			if tc.file != "" {
				path = writeConfig(t, tc.file)
			}
			if _, err := Load(path); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	clearAllEnv(t)
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatal("expected error for a missing explicit config file")
	}
}
