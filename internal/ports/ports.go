// Package ports declares the narrow interfaces the pipeline needs from the
// outside world. Adapters live under ports/adapters; the domain packages never
// import a vendor API.
package ports

import (
	"context"
	"time"

	"github.com/shortforge/hookcut/internal/types"
)

// Fetcher turns a video locator (local path or URL) into a local media file
// inside destDir.
type Fetcher interface {
	Fetch(ctx context.Context, locator, destDir string) (string, error)
}

// RenderJob describes one clip render: cut the window out of Source, burn the
// subtitle file when set, and write a vertical MP4 to OutPath.
type RenderJob struct {
	Source       string
	Start        time.Duration
	End          time.Duration
	SubtitlePath string
	OutPath      string
}

type VideoTool interface {
	ExtractAudioMono16k(ctx context.Context, inPath, outWav string) error
	ProbeDuration(ctx context.Context, inPath string) (time.Duration, error)
	RenderClip(ctx context.Context, job RenderJob) error
}

type ASR interface {
	Transcribe(ctx context.Context, wavPath, workDir string) ([]types.Word, error)
}

// TimedLine is one sentence of transcript text with its spoken window, the
// unit the scorer reasons over.
type TimedLine struct {
	StartSec float64
	EndSec   float64
	Text     string
}

// ScoreRequest carries the transcript and the clip constraints the scorer
// should aim for. MaxCandidates is a hint, not a hard cap; the normalizer
// validates whatever comes back.
type ScoreRequest struct {
	Lines         []TimedLine
	MaxCandidates int
	MinClip       time.Duration
	MaxClip       time.Duration
}

// Oracle ranks transcript moments by retention potential. Implementations
// make exactly one attempt; retry policy belongs to the caller.
type Oracle interface {
	Score(ctx context.Context, req ScoreRequest) ([]types.RawCandidate, error)
}
