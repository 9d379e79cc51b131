// Package ffmpeg drives audio extraction, probing and clip rendering through
// ffmpeg-go.
package ffmpeg

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	ffmpeggo "github.com/u2takey/ffmpeg-go"

	"github.com/shortforge/hookcut/internal/ports"
)

type Adapter struct {
	width  int
	height int
}

func New(width, height int) *Adapter {
	if width <= 0 || height <= 0 {
		width, height = 1080, 1920
	}
	return &Adapter{width: width, height: height}
}

func (a *Adapter) ExtractAudioMono16k(ctx context.Context, inPath, outWav string) error {
	err := ffmpeggo.Input(inPath).
		Output(outWav, ffmpeggo.KwArgs{
			"vn": "",
			"ac": 1,
			"ar": 16000,
			"f":  "wav",
		}).
		OverWriteOutput().
		Run()
	if err != nil {
		return fmt.Errorf("ffmpeg extract audio: %w", err)
	}
	return ctx.Err()
}

// RenderClip cuts the job window, crops to the vertical canvas and burns the
// subtitle sidecar in one pass.
func (a *Adapter) RenderClip(ctx context.Context, job ports.RenderJob) error {
	vf := fmt.Sprintf(
		"scale=%d:%d:force_original_aspect_ratio=increase,crop=%d:%d",
		a.width, a.height, a.width, a.height,
	)
	if job.SubtitlePath != "" {
		vf += ",subtitles=" + escapeFilterPath(job.SubtitlePath)
	}
	log.Debug().
		Str("out", job.OutPath).
		Dur("start", job.Start).
		Dur("end", job.End).
		Msg("rendering clip")

	err := ffmpeggo.Input(job.Source, ffmpeggo.KwArgs{
		"ss": fmtSeconds(job.Start),
		"to": fmtSeconds(job.End),
	}).
		Output(job.OutPath, ffmpeggo.KwArgs{
			"vf":       vf,
			"c:v":      "libx264",
			"preset":   "veryfast",
			"crf":      18,
			"c:a":      "aac",
			"b:a":      "192k",
			"movflags": "+faststart",
		}).
		OverWriteOutput().
		Run()
	if err != nil {
		return fmt.Errorf("ffmpeg render clip: %w", err)
	}
	return ctx.Err()
}

func (a *Adapter) ProbeDuration(ctx context.Context, inPath string) (time.Duration, error) {
	out, err := ffmpeggo.Probe(inPath)
	if err != nil {
		return 0, fmt.Errorf("ffprobe: %w", err)
	}
	var probed struct {
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
	}
	if err := json.Unmarshal([]byte(out), &probed); err != nil {
		return 0, fmt.Errorf("parse ffprobe output: %w", err)
	}
	sec, err := strconv.ParseFloat(strings.TrimSpace(probed.Format.Duration), 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", probed.Format.Duration, err)
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return time.Duration(sec * float64(time.Second)), nil
}

func fmtSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', 3, 64)
}

func escapeFilterPath(p string) string {
	p = strings.ReplaceAll(p, "\\", "\\\\")
	p = strings.ReplaceAll(p, ":", "\\:")
	return p
}
