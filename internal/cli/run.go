package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/shortforge/hookcut/internal/config"
	"github.com/shortforge/hookcut/internal/logging"
	"github.com/shortforge/hookcut/internal/pipeline"
)

func run(cmd *cobra.Command, source string) error {
	opts, err := config.Load()
	if err != nil {
		return err
	}

	jsonLogs, _ := cmd.Flags().GetBool("json-logs")
	logging.Init(opts.LogLevel, opts.LogPretty && !jsonLogs)

	hooksN, _ := cmd.Flags().GetInt("hooks")
	animation, _ := cmd.Flags().GetString("animation")
	captionMode, _ := cmd.Flags().GetString("captions")
	outDir, _ := cmd.Flags().GetString("output-dir")
	keepTemp, _ := cmd.Flags().GetBool("keep-temp")
	dropShort, _ := cmd.Flags().GetBool("drop-short")
	stylesFile, _ := cmd.Flags().GetString("styles")
	minSec, _ := cmd.Flags().GetInt("min")
	maxSec, _ := cmd.Flags().GetInt("max")

	if minSec <= 0 {
		minSec = opts.MinClipSeconds
	}
	if maxSec <= 0 {
		maxSec = opts.MaxClipSeconds
	}
	if outDir == "" {
		outDir = opts.OutputDir
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Hour)
	defer cancel()

	cfg := pipeline.Config{
		Source:      source,
		OutDir:      outDir,
		NumHooks:    hooksN,
		Animation:   animation,
		CaptionMode: captionMode,
		MinClip:     time.Duration(minSec) * time.Second,
		MaxClip:     time.Duration(maxSec) * time.Second,
		DropShort:   dropShort,
		Pause:       time.Duration(opts.PauseThresholdMS) * time.Millisecond,
		StylesFile:  stylesFile,
		KeepTemp:    keepTemp,
		TempDir:     opts.TempDir,
		Concurrency: opts.RenderConcurrency,

		WhisperBin:   opts.WhisperBin,
		WhisperModel: opts.WhisperModel,
		YtdlpBin:     opts.YtdlpBin,

		OpenAIAPIKey:  opts.OpenAIAPIKey,
		OpenAIModel:   opts.OpenAIModel,
		OpenAIBaseURL: opts.OpenAIBaseURL,
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	res, err := pipeline.Run(ctx, cfg)
	if err != nil {
		return err
	}

	printSummary(cmd.OutOrStdout(), res)
	return nil
}
