// Package usecase orchestrates one run over the ports: fetch, transcribe,
// score, resolve hooks, and render a clip per selected hook.
package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/shortforge/hookcut/internal/domain/captions"
	"github.com/shortforge/hookcut/internal/domain/clips"
	"github.com/shortforge/hookcut/internal/domain/hooks"
	"github.com/shortforge/hookcut/internal/domain/subtitles"
	"github.com/shortforge/hookcut/internal/domain/transcript"
	"github.com/shortforge/hookcut/internal/ports"
	"github.com/shortforge/hookcut/internal/types"
)

type Deps struct {
	Fetch  ports.Fetcher
	Video  ports.VideoTool
	ASR    ports.ASR
	Oracle ports.Oracle
}

type Usecase struct{ d Deps }

func New(d Deps) Usecase { return Usecase{d: d} }

type Input struct {
	Source  string
	WorkDir string
	OutDir  string

	NumHooks int
	MinClip  time.Duration
	MaxClip  time.Duration
	OnShort  hooks.ShortPolicy
	Pause    time.Duration

	Mode   captions.Mode
	Style  captions.Style
	Params captions.Params
	Layout subtitles.Layout

	Concurrency int
}

type Result struct {
	Manifest types.Manifest
}

func (u Usecase) Run(ctx context.Context, in Input) (Result, error) {
	local, err := u.d.Fetch.Fetch(ctx, in.Source, in.WorkDir)
	if err != nil {
		return Result{}, fmt.Errorf("fetch: %w", err)
	}

	mediaDur, err := u.d.Video.ProbeDuration(ctx, local)
	if err != nil {
		return Result{}, fmt.Errorf("probe: %w", err)
	}
	log.Info().Str("media", local).Dur("duration", mediaDur).Msg("source ready")

	wav := filepath.Join(in.WorkDir, "audio.wav")
	if err := u.d.Video.ExtractAudioMono16k(ctx, local, wav); err != nil {
		return Result{}, fmt.Errorf("extract audio: %w", err)
	}

	words, err := u.d.ASR.Transcribe(ctx, wav, in.WorkDir)
	if err != nil {
		return Result{}, fmt.Errorf("transcribe: %w", err)
	}
	tr, err := transcript.New(words, in.Pause)
	if err != nil {
		return Result{}, err
	}
	log.Info().Int("words", tr.Len()).Int("sentences", len(tr.SentenceEnds())).Msg("transcript built")

	raw, err := u.d.Oracle.Score(ctx, ports.ScoreRequest{
		Lines:         sentenceLines(tr),
		MaxCandidates: in.NumHooks * 2,
		MinClip:       in.MinClip,
		MaxClip:       in.MaxClip,
	})
	if err != nil {
		return Result{}, fmt.Errorf("score: %w", err)
	}

	spans, err := hooks.Normalize(raw, tr)
	if err != nil {
		return Result{}, err
	}

	lim := hooks.Limits{Min: in.MinClip, Max: in.MaxClip, OnShort: in.OnShort}
	resolved := make([]hooks.ResolvedSegment, 0, len(spans))
	for _, sp := range spans {
		if seg, ok := hooks.Resolve(sp, tr, lim); ok {
			resolved = append(resolved, seg)
		}
	}
	if len(resolved) == 0 {
		return Result{}, fmt.Errorf("%w: every candidate dropped during resolution", hooks.ErrNoViableHooks)
	}

	selected := hooks.Select(resolved, in.NumHooks, hooks.ByTime)
	log.Info().Int("requested", in.NumHooks).Int("selected", len(selected)).Msg("hooks selected")

	clipEntries, err := u.renderAll(ctx, in, tr, selected, local)
	if err != nil {
		return Result{}, err
	}

	return Result{Manifest: types.Manifest{
		Input:       in.Source,
		Source:      local,
		DurationSec: mediaDur.Seconds(),
		Words:       tr.Len(),
		Animation:   in.Style.String(),
		CaptionMode: in.Mode.String(),
		Clips:       clipEntries,
	}}, nil
}

// renderAll builds captions and renders every selected hook, a bounded number
// at a time. The first failure cancels the remaining work.
func (u Usecase) renderAll(
	ctx context.Context,
	in Input,
	tr *transcript.Transcript,
	selected []hooks.ResolvedSegment,
	local string,
) ([]types.ManifestClip, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	conc := in.Concurrency
	if conc <= 0 {
		conc = 2
	}
	sem := make(chan struct{}, conc)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	entries := make([]types.ManifestClip, len(selected))
	for i, seg := range selected {
		wg.Add(1)
		go func(i int, seg hooks.ResolvedSegment) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if ctx.Err() != nil {
				return
			}
			entry, err := u.renderOne(ctx, in, tr, seg, local, i+1)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				cancel()
				return
			}
			entries[i] = entry
		}(i, seg)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func (u Usecase) renderOne(
	ctx context.Context,
	in Input,
	tr *transcript.Transcript,
	seg hooks.ResolvedSegment,
	local string,
	rank int,
) (types.ManifestClip, error) {
	id := fmt.Sprintf("viral_hook_%d", rank)

	timeline := captions.Timeline(seg, tr, in.Mode)
	ins, err := clips.Assemble(seg, timeline)
	if err != nil {
		return types.ManifestClip{}, err
	}

	assRel := filepath.Join("subtitles", id+".ass")
	assPath := filepath.Join(in.OutDir, assRel)
	doc := subtitles.Compile(ins, in.Style, in.Params, in.Layout)
	if err := os.WriteFile(assPath, []byte(doc), 0o644); err != nil {
		return types.ManifestClip{}, fmt.Errorf("write subtitles: %w", err)
	}

	outRel := id + ".mp4"
	if err := u.d.Video.RenderClip(ctx, ports.RenderJob{
		Source:       local,
		Start:        seg.Start,
		End:          seg.End,
		SubtitlePath: assPath,
		OutPath:      filepath.Join(in.OutDir, outRel),
	}); err != nil {
		return types.ManifestClip{}, fmt.Errorf("render %s: %w", id, err)
	}
	log.Info().Str("clip", id).Dur("start", seg.Start).Dur("end", seg.End).Msg("clip rendered")

	return types.ManifestClip{
		ID:          id,
		File:        filepath.ToSlash(outRel),
		Subtitles:   filepath.ToSlash(assRel),
		StartSec:    seg.Start.Seconds(),
		EndSec:      seg.End.Seconds(),
		DurationSec: seg.Duration().Seconds(),
		Score:       seg.Score,
		Kind:        seg.Kind,
		Reason:      seg.Rationale,
		Text:        tr.Text(seg.StartWord, seg.EndWord),
	}, nil
}

// sentenceLines flattens the transcript into timed sentence lines for the
// scorer prompt.
func sentenceLines(tr *transcript.Transcript) []ports.TimedLine {
	var out []ports.TimedLine
	start := 0
	for _, end := range tr.SentenceEnds() {
		out = append(out, ports.TimedLine{
			StartSec: tr.WordStart(start).Seconds(),
			EndSec:   tr.WordEnd(end).Seconds(),
			Text:     tr.Text(start, end),
		})
		start = end + 1
	}
	return out
}
