package hooks

import (
	"time"

	"github.com/shortforge/hookcut/internal/domain/transcript"
)

// ShortPolicy decides what happens to a candidate when the transcript runs
// out before the minimum duration is reached.
type ShortPolicy int

const (
	// KeepShort keeps the segment at its maximal possible duration. A short
	// hook beats a discarded one.
	KeepShort ShortPolicy = iota
	// DropShort discards the candidate instead.
	DropShort
)

// Limits bounds segment resolution.
type Limits struct {
	Min     time.Duration
	Max     time.Duration
	OnShort ShortPolicy
}

// ResolvedSegment is a candidate after boundary snapping and duration
// clamping. Word indices are inclusive; times come from the first and last
// included words.
type ResolvedSegment struct {
	Start     time.Duration
	End       time.Duration
	StartWord int
	EndWord   int
	Score     float64
	Kind      string
	Rationale string
}

// Duration returns the segment's clip length.
func (s ResolvedSegment) Duration() time.Duration { return s.End - s.Start }

// Resolve snaps a candidate onto clean boundaries and clamps it into the
// duration limits:
//   - snap start back to its sentence start, then end forward to its sentence
//     end, each only while the span stays within lim.Max (otherwise the edge
//     stays on its word boundary);
//   - while shorter than lim.Min, pull in whole neighbouring sentences,
//     end-first then start, until the transcript is exhausted;
//   - if still over lim.Max, cut words from the end only, keeping the hook's
//     opening line intact.
//
// The second return is false only when the transcript could not reach lim.Min
// and lim.OnShort is DropShort.
func Resolve(c CandidateSpan, tr *transcript.Transcript, lim Limits) (ResolvedSegment, bool) {
	s, e := c.StartWord, c.EndWord

	if ss := tr.SentenceStart(s); ss < s && tr.Span(ss, e) <= lim.Max {
		s = ss
	}
	if se := tr.SentenceEnd(e); se > e && tr.Span(s, se) <= lim.Max {
		e = se
	}

	// Grow by whole sentences until long enough. Overshooting lim.Max here is
	// fine; the truncation step below pulls the end back in.
	for tr.Span(s, e) < lim.Min {
		grew := false
		if e < tr.Len()-1 {
			e = tr.SentenceEnd(e + 1)
			grew = true
			if tr.Span(s, e) >= lim.Min {
				break
			}
		}
		if s > 0 {
			s = tr.SentenceStart(s - 1)
			grew = true
		}
		if !grew {
			break
		}
	}

	if tr.Span(s, e) > lim.Max {
		e = truncateEnd(tr, s, e, lim.Max)
	}

	if tr.Span(s, e) < lim.Min && lim.OnShort == DropShort {
		return ResolvedSegment{}, false
	}

	return ResolvedSegment{
		Start:     tr.WordStart(s),
		End:       tr.WordEnd(e),
		StartWord: s,
		EndWord:   e,
		Score:     c.Score,
		Kind:      c.Kind,
		Rationale: c.Rationale,
	}, true
}

// truncateEnd returns the last index in [s, e] that keeps the span within
// max. A single word longer than max is left alone; there is no shorter
// boundary to cut to.
func truncateEnd(tr *transcript.Transcript, s, e int, max time.Duration) int {
	for j := e; j > s; j-- {
		if tr.Span(s, j) <= max {
			return j
		}
	}
	return s
}
