package pipeline

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/shortforge/hookcut/internal/ports/adapters/heuristic"
	"github.com/shortforge/hookcut/internal/ports/adapters/openai"
)

func validConfig() Config {
	return Config{
		Source:       "talk.mp4",
		NumHooks:     3,
		Animation:    "pop",
		CaptionMode:  "word",
		MinClip:      15 * time.Second,
		MaxClip:      60 * time.Second,
		WhisperModel: "models/ggml-base.bin",
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	if err := validConfig().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "empty source",
			mutate:  func(c *Config) { c.Source = "  " },
			wantErr: "source is empty",
		},
		{
			name:    "zero hooks",
			mutate:  func(c *Config) { c.NumHooks = 0 },
			wantErr: "hooks must be > 0",
		},
		{
			name:    "negative hooks",
			mutate:  func(c *Config) { c.NumHooks = -1 },
			wantErr: "hooks must be > 0",
		},
		{
			name:    "zero min clip",
			mutate:  func(c *Config) { c.MinClip = 0 },
			wantErr: "min clip must be > 0",
		},
		{
			name:    "zero max clip",
			mutate:  func(c *Config) { c.MaxClip = 0 },
			wantErr: "max clip must be > 0",
		},
		{
			name:    "inverted bounds",
			mutate:  func(c *Config) { c.MinClip = 90 * time.Second },
			wantErr: "min clip must be <= max clip",
		},
		{
			name:    "unknown animation",
			mutate:  func(c *Config) { c.Animation = "wobble" },
			wantErr: "unknown animation style",
		},
		{
			name:    "unknown caption mode",
			mutate:  func(c *Config) { c.CaptionMode = "karaoke" },
			wantErr: "caption mode",
		},
		{
			name:    "missing whisper model",
			mutate:  func(c *Config) { c.WhisperModel = "" },
			wantErr: "whisper model path is required",
		},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("want error containing %q, got nil", tc.wantErr)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("err = %v, want %q", err, tc.wantErr)
			}
		})
	}
}

func TestPickOracle(t *testing.T) {
	t.Parallel()

	logger := zerolog.Nop()

	cfg := validConfig()
	if _, ok := pickOracle(cfg, logger).(*heuristic.Adapter); !ok {
		t.Fatalf("no API key must select the heuristic scorer")
	}

	cfg.OpenAIAPIKey = "sk-test"
	if _, ok := pickOracle(cfg, logger).(*openai.Adapter); !ok {
		t.Fatalf("API key must select the hosted model")
	}
}

func TestBuildRunOutDir(t *testing.T) {
	now := time.Date(2026, 2, 12, 10, 30, 45, 1234, time.UTC)
	got := buildRunOutDir("out", "/tmp/My Cool.Video.mp4", now)
	base := filepath.Base(got)
	if filepath.Dir(got) != "out" {
		t.Fatalf("unexpected parent dir: %s", got)
	}
	if !strings.HasPrefix(base, "my-cool-video-20260212-103045Z-") {
		t.Fatalf("unexpected run dir format: %s", base)
	}
	if len(base) != len("my-cool-video-20260212-103045Z-")+6 {
		t.Fatalf("unexpected run dir suffix length: %s", base)
	}
}

func TestBuildRunOutDir_URLSource(t *testing.T) {
	now := time.Date(2026, 2, 12, 10, 30, 45, 0, time.UTC)
	got := buildRunOutDir("out", "https://youtu.be/dQw4w9WgXcQ", now)
	base := filepath.Base(got)
	if strings.Contains(base, "/") || strings.Contains(base, ":") {
		t.Fatalf("url characters leaked into the run dir: %s", base)
	}
}

func TestNormalizePathSegment(t *testing.T) {
	tests := map[string]string{
		"  My Cool.Video  ": "my-cool-video",
		"___":               "",
		"abc123":            "abc123",
		"Name (v2)!":        "name-v2",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			if got := normalizePathSegment(in); got != want {
				t.Fatalf("normalizePathSegment(%q) = %q, want %q", in, got, want)
			}
		})
	}
}
