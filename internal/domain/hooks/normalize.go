// Package hooks turns raw scorer output into a ranked, non-overlapping set of
// duration-bounded segments worth clipping.
package hooks

import (
	"errors"
	"fmt"
	"time"

	"github.com/shortforge/hookcut/internal/domain/transcript"
	"github.com/shortforge/hookcut/internal/types"
)

// ErrNoViableHooks reports that the scorer produced nothing usable. The
// caller decides whether to re-query or abort; silently continuing with zero
// hooks would hide a broken scorer.
var ErrNoViableHooks = errors.New("no viable hook candidates")

// CandidateSpan is a scorer suggestion anchored onto the transcript. Word
// indices are inclusive on both ends.
type CandidateSpan struct {
	StartWord int
	EndWord   int
	Rationale string
	Kind      string
	Score     float64
}

// Normalize anchors raw time ranges onto transcript words and filters out
// entries the scorer got wrong: inverted or empty ranges and exact duplicates
// of an already-kept span. Overlapping but distinct spans survive; resolving
// overlap is selection's job. Returns ErrNoViableHooks when nothing survives.
func Normalize(raw []types.RawCandidate, tr *transcript.Transcript) ([]CandidateSpan, error) {
	out := make([]CandidateSpan, 0, len(raw))
	seen := make(map[[2]int]bool, len(raw))
	for _, rc := range raw {
		if rc.EndSec <= rc.StartSec {
			continue
		}
		start := anchorStart(tr, dur(rc.StartSec))
		end := anchorEnd(tr, dur(rc.EndSec))
		start = clampIndex(start, tr.Len())
		end = clampIndex(end, tr.Len())
		if end < start {
			continue
		}
		key := [2]int{start, end}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, CandidateSpan{
			StartWord: start,
			EndWord:   end,
			Rationale: rc.Reason,
			Kind:      rc.Kind,
			Score:     clamp01(rc.Score),
		})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %d raw candidates, none anchored", ErrNoViableHooks, len(raw))
	}
	return out, nil
}

// anchorStart maps an instant to the word speaking at it, or the first word
// after it when it lands in silence.
func anchorStart(tr *transcript.Transcript, at time.Duration) int {
	if i, ok := tr.WordAt(at); ok {
		return i
	}
	i := tr.NearestWord(at)
	if tr.WordEnd(i) <= at && i < tr.Len()-1 {
		return i + 1
	}
	return i
}

// anchorEnd maps an instant to the word speaking at it, or the last word
// before it when it lands in silence.
func anchorEnd(tr *transcript.Transcript, at time.Duration) int {
	if i, ok := tr.WordAt(at); ok {
		return i
	}
	i := tr.NearestWord(at)
	if tr.WordStart(i) >= at && i > 0 {
		return i - 1
	}
	return i
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n-1 {
		return n - 1
	}
	return i
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func dur(sec float64) time.Duration { return time.Duration(sec * float64(time.Second)) }
