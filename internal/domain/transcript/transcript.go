// Package transcript holds the canonical word-level timing model every other
// stage works from. A Transcript is built once per run from ASR output and is
// read-only afterwards.
package transcript

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shortforge/hookcut/internal/types"
)

// ErrMalformed reports ASR output that violates the timing invariants. It is
// fatal: nothing downstream can work from broken word timings.
var ErrMalformed = errors.New("malformed transcript")

// DefaultPauseThreshold is the inter-word silence treated as a sentence break
// when the speaker never lands on terminal punctuation.
const DefaultPauseThreshold = 600 * time.Millisecond

// overlapTolerance absorbs small word-boundary overlaps that ASR engines
// produce around co-articulated speech.
const overlapTolerance = 50 * time.Millisecond

type Transcript struct {
	words []types.Word

	// sentenceEnds holds indices of words that close a sentence, strictly
	// increasing, always ending with the last word index.
	sentenceEnds []int
}

// New validates words and builds the immutable transcript. Words must be
// non-empty, sorted by start, non-overlapping beyond a small tolerance, and
// each must have end > start. pause <= 0 selects DefaultPauseThreshold.
func New(words []types.Word, pause time.Duration) (*Transcript, error) {
	if pause <= 0 {
		pause = DefaultPauseThreshold
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("%w: no words", ErrMalformed)
	}
	for i, w := range words {
		if dur(w.End) <= dur(w.Start) {
			return nil, fmt.Errorf("%w: word %d %q has end %.3f <= start %.3f", ErrMalformed, i, w.Word, w.End, w.Start)
		}
		if i > 0 {
			if dur(w.Start) < dur(words[i-1].Start) {
				return nil, fmt.Errorf("%w: word %d %q starts before word %d", ErrMalformed, i, w.Word, i-1)
			}
			if dur(words[i-1].End) > dur(w.Start)+overlapTolerance {
				return nil, fmt.Errorf("%w: word %d %q overlaps word %d beyond tolerance", ErrMalformed, i, w.Word, i-1)
			}
		}
	}
	tr := &Transcript{words: words}
	tr.sentenceEnds = findSentenceEnds(words, pause)
	return tr, nil
}

// findSentenceEnds splits on terminal punctuation or on an inter-word gap
// longer than pause, whichever comes first. The final word always closes the
// last sentence.
func findSentenceEnds(words []types.Word, pause time.Duration) []int {
	var ends []int
	for i := range words {
		if i == len(words)-1 {
			ends = append(ends, i)
			break
		}
		if hasTerminalPunct(words[i].Word) {
			ends = append(ends, i)
			continue
		}
		if dur(words[i+1].Start)-dur(words[i].End) > pause {
			ends = append(ends, i)
		}
	}
	return ends
}

func (t *Transcript) Len() int { return len(t.words) }

// Words returns the backing slice. Callers must not mutate it.
func (t *Transcript) Words() []types.Word { return t.words }

// SentenceEnds returns indices of sentence-closing words, strictly increasing.
func (t *Transcript) SentenceEnds() []int { return t.sentenceEnds }

// Slice returns words in the half-open index range [start, end). Out-of-range
// bounds are clamped; an inverted range yields nil.
func (t *Transcript) Slice(start, end int) []types.Word {
	if start < 0 {
		start = 0
	}
	if end > len(t.words) {
		end = len(t.words)
	}
	if start >= end {
		return nil
	}
	return t.words[start:end]
}

// WordAt returns the index of the word whose [start, end) window contains the
// instant, or false when the instant falls in silence or outside the
// transcript.
func (t *Transcript) WordAt(at time.Duration) (int, bool) {
	i := sort.Search(len(t.words), func(i int) bool { return dur(t.words[i].End) > at })
	if i == len(t.words) || dur(t.words[i].Start) > at {
		return 0, false
	}
	return i, true
}

// NearestWord returns the index of the word closest to the instant, snapping
// into the transcript when the instant lies outside it. The transcript is
// never empty, so the result is always valid.
func (t *Transcript) NearestWord(at time.Duration) int {
	if i, ok := t.WordAt(at); ok {
		return i
	}
	// In a gap: sort.Search lands on the first word starting after the
	// instant; compare against its predecessor.
	i := sort.Search(len(t.words), func(i int) bool { return dur(t.words[i].Start) > at })
	if i == 0 {
		return 0
	}
	if i == len(t.words) {
		return len(t.words) - 1
	}
	if at-dur(t.words[i-1].End) <= dur(t.words[i].Start)-at {
		return i - 1
	}
	return i
}

// SentenceStart returns the index of the first word of the sentence containing
// word i.
func (t *Transcript) SentenceStart(i int) int {
	k := sort.SearchInts(t.sentenceEnds, i)
	if k == 0 {
		return 0
	}
	return t.sentenceEnds[k-1] + 1
}

// SentenceEnd returns the index of the last word of the sentence containing
// word i.
func (t *Transcript) SentenceEnd(i int) int {
	k := sort.SearchInts(t.sentenceEnds, i)
	if k == len(t.sentenceEnds) {
		return len(t.words) - 1
	}
	return t.sentenceEnds[k]
}

// WordStart returns word i's start as a duration from the media start.
func (t *Transcript) WordStart(i int) time.Duration { return dur(t.words[i].Start) }

// WordEnd returns word i's end as a duration from the media start.
func (t *Transcript) WordEnd(i int) time.Duration { return dur(t.words[i].End) }

// Span returns the spoken duration of the inclusive word range [i, j].
func (t *Transcript) Span(i, j int) time.Duration { return t.WordEnd(j) - t.WordStart(i) }

// Duration returns the full transcript span from first word start to last
// word end.
func (t *Transcript) Duration() time.Duration { return t.Span(0, len(t.words)-1) }

// Text joins the trimmed words of the inclusive range [i, j] with single
// spaces.
func (t *Transcript) Text(i, j int) string {
	var b strings.Builder
	for k := i; k <= j && k < len(t.words); k++ {
		w := strings.TrimSpace(t.words[k].Word)
		if w == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(w)
	}
	return b.String()
}

// hasTerminalPunct reports whether the token ends a sentence once trailing
// closers (quotes, brackets) are stripped.
func hasTerminalPunct(tok string) bool {
	s := strings.TrimSpace(tok)
	s = strings.TrimRightFunc(s, func(r rune) bool {
		switch r {
		case '"', '\'', ')', ']', '}', '”', '’':
			return true
		}
		return false
	})
	if s == "" {
		return false
	}
	last, _ := utf8.DecodeLastRuneInString(s)
	switch last {
	case '.', '!', '?', '…':
		return true
	}
	return false
}

func dur(sec float64) time.Duration { return time.Duration(sec * float64(time.Second)) }
