// Package config loads the environment-driven options and the optional YAML
// animation tuning file.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Options is everything the pipeline reads from the environment. Flags
// override these per run.
type Options struct {
	OpenAIAPIKey  string `envconfig:"OPENAI_API_KEY"`
	OpenAIModel   string `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`
	OpenAIBaseURL string `envconfig:"OPENAI_BASE_URL"`

	WhisperBin   string `envconfig:"WHISPER_BIN" default:"whisper-cli"`
	WhisperModel string `envconfig:"WHISPER_MODEL" default:".cache/models/ggml-base.bin"`

	YtdlpBin string `envconfig:"YTDLP_BIN" default:"yt-dlp"`

	TempDir   string `envconfig:"TEMP_DIR"`
	OutputDir string `envconfig:"OUTPUT_DIR" default:"output"`

	MinClipSeconds   int `envconfig:"MIN_CLIP_SECONDS" default:"15"`
	MaxClipSeconds   int `envconfig:"MAX_CLIP_SECONDS" default:"60"`
	PauseThresholdMS int `envconfig:"PAUSE_THRESHOLD_MS" default:"600"`

	RenderConcurrency int `envconfig:"RENDER_CONCURRENCY" default:"2"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogPretty bool   `envconfig:"LOG_PRETTY" default:"true"`
}

// Load reads Options from the environment. The CLI loads .env beforehand.
func Load() (*Options, error) {
	var opts Options
	if err := envconfig.Process("", &opts); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &opts, nil
}
