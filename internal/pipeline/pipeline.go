// Package pipeline validates run configuration, wires the adapters, and owns
// the run's directories and manifest.
package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/shortforge/hookcut/internal/config"
	"github.com/shortforge/hookcut/internal/domain/captions"
	"github.com/shortforge/hookcut/internal/domain/hooks"
	"github.com/shortforge/hookcut/internal/ports"
	"github.com/shortforge/hookcut/internal/ports/adapters/ffmpeg"
	"github.com/shortforge/hookcut/internal/ports/adapters/heuristic"
	"github.com/shortforge/hookcut/internal/ports/adapters/openai"
	"github.com/shortforge/hookcut/internal/ports/adapters/whispercpp"
	"github.com/shortforge/hookcut/internal/ports/adapters/ytdlp"
	"github.com/shortforge/hookcut/internal/types"
	"github.com/shortforge/hookcut/internal/usecase"
)

type Config struct {
	Source string
	OutDir string

	NumHooks    int
	Animation   string
	CaptionMode string
	MinClip     time.Duration
	MaxClip     time.Duration
	DropShort   bool
	Pause       time.Duration

	StylesFile string

	KeepTemp    bool
	TempDir     string
	Concurrency int

	WhisperBin   string
	WhisperModel string
	YtdlpBin     string

	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Source) == "" {
		return errors.New("source is empty")
	}
	if c.NumHooks <= 0 {
		return errors.New("hooks must be > 0")
	}
	if c.MinClip <= 0 {
		return errors.New("min clip must be > 0")
	}
	if c.MaxClip <= 0 {
		return errors.New("max clip must be > 0")
	}
	if c.MinClip > c.MaxClip {
		return errors.New("min clip must be <= max clip")
	}
	if _, err := captions.ParseStyle(c.Animation); err != nil {
		return err
	}
	if _, err := captions.ParseMode(c.CaptionMode); err != nil {
		return err
	}
	if c.WhisperModel == "" {
		return errors.New("whisper model path is required")
	}
	return nil
}

type Result struct {
	RunID    string
	RunDir   string
	Manifest types.Manifest
}

func Run(ctx context.Context, cfg Config) (Result, error) {
	runID := uuid.NewString()
	logger := log.With().Str("run_id", runID).Logger()

	style, err := captions.ParseStyle(cfg.Animation)
	if err != nil {
		return Result{}, err
	}
	mode, err := captions.ParseMode(cfg.CaptionMode)
	if err != nil {
		return Result{}, err
	}
	params, layout, err := config.LoadStyles(cfg.StylesFile)
	if err != nil {
		return Result{}, err
	}

	tempBase := cfg.TempDir
	if tempBase == "" {
		tempBase = os.TempDir()
	}
	workDir := filepath.Join(tempBase, "hookcut-"+runID)
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return Result{}, err
	}
	if !cfg.KeepTemp {
		defer os.RemoveAll(workDir)
	}
	logger.Debug().Str("work_dir", workDir).Msg("workspace ready")

	outRoot := cfg.OutDir
	if outRoot == "" {
		outRoot = "output"
	}
	runDir := buildRunOutDir(outRoot, cfg.Source, time.Now().UTC())
	if err := os.MkdirAll(filepath.Join(runDir, "subtitles"), 0o755); err != nil {
		return Result{}, err
	}
	logger.Info().Str("run_dir", runDir).Msg("output directory created")

	onShort := hooks.KeepShort
	if cfg.DropShort {
		onShort = hooks.DropShort
	}

	uc := usecase.New(usecase.Deps{
		Fetch:  ytdlp.New(cfg.YtdlpBin),
		Video:  ffmpeg.New(layout.PlayResX, layout.PlayResY),
		ASR:    whispercpp.New(cfg.WhisperBin, cfg.WhisperModel),
		Oracle: pickOracle(cfg, logger),
	})

	res, err := uc.Run(ctx, usecase.Input{
		Source:      cfg.Source,
		WorkDir:     workDir,
		OutDir:      runDir,
		NumHooks:    cfg.NumHooks,
		MinClip:     cfg.MinClip,
		MaxClip:     cfg.MaxClip,
		OnShort:     onShort,
		Pause:       cfg.Pause,
		Mode:        mode,
		Style:       style,
		Params:      params,
		Layout:      layout,
		Concurrency: cfg.Concurrency,
	})
	if err != nil {
		return Result{}, err
	}

	m := res.Manifest
	m.RunID = runID
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return Result{}, fmt.Errorf("marshal manifest: %w", err)
	}
	manifestPath := filepath.Join(runDir, "manifest.json")
	if err := os.WriteFile(manifestPath, b, 0o644); err != nil {
		return Result{}, err
	}
	logger.Info().Int("clips", len(m.Clips)).Str("manifest", manifestPath).Msg("run complete")

	return Result{RunID: runID, RunDir: runDir, Manifest: m}, nil
}

// pickOracle prefers the hosted model and falls back to the lexical scorer
// when no key is configured.
func pickOracle(cfg Config, logger zerolog.Logger) ports.Oracle {
	if cfg.OpenAIAPIKey != "" {
		return openai.New(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL)
	}
	logger.Info().Msg("no OPENAI_API_KEY set, using heuristic scorer")
	return heuristic.New()
}

func buildRunOutDir(outRoot, source string, now time.Time) string {
	name := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	name = normalizePathSegment(name)
	if name == "" {
		name = "input"
	}
	ts := now.UTC().Format("20060102-150405Z")
	runSeed := fmt.Sprintf("%s|%d", source, now.UTC().UnixNano())
	suffix := hash(runSeed)[:6]
	return filepath.Join(outRoot, fmt.Sprintf("%s-%s-%s", name, ts, suffix))
}

func normalizePathSegment(s string) string {
	var b strings.Builder
	prevDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
			prevDash = false
		default:
			if !prevDash {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

func hash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:12]
}

// ensure adapters implement ports
var _ ports.Fetcher = (*ytdlp.Adapter)(nil)
var _ ports.VideoTool = (*ffmpeg.Adapter)(nil)
var _ ports.ASR = (*whispercpp.Adapter)(nil)
var _ ports.Oracle = (*openai.Adapter)(nil)
var _ ports.Oracle = (*heuristic.Adapter)(nil)
