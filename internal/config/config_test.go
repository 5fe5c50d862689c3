package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// TestNewConfig documents the default values.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	got := NewConfig()
	want := &Config{
		Endpoint:      "http://127.0.0.1:8000/analyze",
		ListenAddress: ":8080",
		Timeout:       0,
		UserAgent:     DefaultUserAgent,
		Language:      "en",
		MaxBodySize:   5 * 1024 * 1024,
		Parallel:      1,
		SessionTTL:    30 * time.Minute,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}

	if err := got.Validate(); err != nil {
		t.Errorf("expected defaults to be valid, got %v", err)
	}
}

// TestConfigValidate tests each validation rule.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr error
	}{
		{name: "defaults are valid", modify: func(*Config) {}},
		{name: "https endpoint with query is valid", modify: func(c *Config) { c.Endpoint = "https://reviews.example/v1/analyze?api_key=x" }},
		{name: "positive timeout is valid", modify: func(c *Config) { c.Timeout = 30 * time.Second }},
		{name: "turkish is valid", modify: func(c *Config) { c.Language = "tr" }},
		{name: "empty endpoint", modify: func(c *Config) { c.Endpoint = "" }, wantErr: ErrNoEndpoint},
		{name: "relative endpoint", modify: func(c *Config) { c.Endpoint = "/analyze" }, wantErr: ErrInvalidEndpoint},
		{name: "ftp endpoint", modify: func(c *Config) { c.Endpoint = "ftp://reviews.example/analyze" }, wantErr: ErrInvalidEndpoint},
		{name: "negative timeout", modify: func(c *Config) { c.Timeout = -time.Second }, wantErr: ErrInvalidTimeout},
		{name: "zero max body size", modify: func(c *Config) { c.MaxBodySize = 0 }, wantErr: ErrInvalidMaxBodySize},
		{name: "unsupported language", modify: func(c *Config) { c.Language = "fr" }, wantErr: ErrUnsupportedLanguage},
		{name: "zero parallel", modify: func(c *Config) { c.Parallel = 0 }, wantErr: ErrInvalidParallel},
		{name: "zero session ttl", modify: func(c *Config) { c.SessionTTL = 0 }, wantErr: ErrInvalidSessionTTL},
		{
			name:    "json and markdown",
			modify:  func(c *Config) { c.JSONReport, c.MarkdownReport = true, true },
			wantErr: ErrConflictingReportFormats,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := NewConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

// TestConfigApplyFile tests overlaying a config file on the defaults.
func TestConfigApplyFile(t *testing.T) {
	t.Parallel()

	t.Run("set fields override defaults", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cfg.Headers = map[string]string{"X-Trace": "1", "X-Api-Key": "old"}
		cfg.ApplyFile(&File{
			Endpoint:   "https://reviews.example/analyze",
			Timeout:    45 * time.Second,
			Headers:    map[string]string{"X-Api-Key": "new"},
			Language:   "tr",
			Parallel:   4,
			SessionTTL: time.Hour,
		})

		if cfg.Endpoint != "https://reviews.example/analyze" {
			t.Errorf("unexpected Endpoint %q", cfg.Endpoint)
		}
		if cfg.Timeout != 45*time.Second {
			t.Errorf("unexpected Timeout %v", cfg.Timeout)
		}
		if cfg.Language != "tr" || cfg.Parallel != 4 || cfg.SessionTTL != time.Hour {
			t.Errorf("unexpected overlay result %+v", cfg)
		}
		want := map[string]string{"X-Trace": "1", "X-Api-Key": "new"}
		if diff := cmp.Diff(want, cfg.Headers); diff != "" {
			t.Errorf("headers mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("zero fields keep defaults", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cfg.ApplyFile(&File{})
		if diff := cmp.Diff(NewConfig(), cfg); diff != "" {
			t.Errorf("empty file changed config (-want +got):\n%s", diff)
		}

		cfg.ApplyFile(nil)
		if diff := cmp.Diff(NewConfig(), cfg); diff != "" {
			t.Errorf("nil file changed config (-want +got):\n%s", diff)
		}
	})
}

// TestLoadConfigFile tests the LoadConfigFile function.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("returns ErrConfigNotFound for non-existent file", func(t *testing.T) {
		t.Parallel()

		f, err := LoadConfigFile("/nonexistent/path/.reviewlens")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("expected ErrConfigNotFound, got: %v", err)
		}
		if f != nil {
			t.Error("expected nil file when not found")
		}
	})

	t.Run("loads valid YAML config", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".reviewlens")
		content := `endpoint: "https://reviews.example/analyze"
listen: "127.0.0.1:9090"
timeout: 90s
proxy: "127.0.0.1:9050"
userAgent: "reviewlens-test"
headers:
  X-Api-Key: "abc"
language: tr
maxBodySize: 1024
parallel: 3
sessionTTL: 1h
`
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		got, err := LoadConfigFile(configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := &File{
			Endpoint:    "https://reviews.example/analyze",
			Listen:      "127.0.0.1:9090",
			Timeout:     90 * time.Second,
			Proxy:       "127.0.0.1:9050",
			UserAgent:   "reviewlens-test",
			Headers:     map[string]string{"X-Api-Key": "abc"},
			Language:    "tr",
			MaxBodySize: 1024,
			Parallel:    3,
			SessionTTL:  time.Hour,
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("file mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("returns error for invalid YAML", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".reviewlens")
		if err := os.WriteFile(configPath, []byte(`invalid: yaml: content: [}`), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		_, err := LoadConfigFile(configPath)
		if err == nil || !strings.Contains(err.Error(), configPath) {
			t.Errorf("expected parse error naming the file, got %v", err)
		}
	})
}

// TestFindConfigFile tests the FindConfigFile function.
func TestFindConfigFile(t *testing.T) {
	t.Run("returns explicit path if exists", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(configPath, []byte("endpoint: http://x/analyze"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if got := FindConfigFile(configPath); got != configPath {
			t.Errorf("expected %q, got %q", configPath, got)
		}
	})

	t.Run("returns empty for non-existent explicit path", func(t *testing.T) {
		if got := FindConfigFile("/nonexistent/path/config.yaml"); got != "" {
			t.Errorf("expected empty string, got %q", got)
		}
	})

	t.Run("finds file in current directory", func(t *testing.T) {
		t.Chdir(t.TempDir())

		cwd, err := os.Getwd()
		if err != nil {
			t.Fatal(err)
		}
		want := filepath.Join(cwd, DefaultConfigFile)
		if err := os.WriteFile(want, []byte("language: tr\n"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if got := FindConfigFile(""); got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	})
}

// TestXDGConfigPaths tests XDG path helpers.
func TestXDGConfigPaths(t *testing.T) {
	t.Parallel()

	dir := XDGConfigDir()
	if filepath.Base(dir) != AppName {
		t.Errorf("expected XDG config dir to end in %q, got %q", AppName, dir)
	}
	if got := XDGConfigFile(); got != filepath.Join(dir, "config.yaml") {
		t.Errorf("unexpected XDG config file %q", got)
	}
}
