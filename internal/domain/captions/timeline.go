// Package captions slices a selected segment into timed on-screen text units
// and computes per-instant animation state for them.
package captions

import (
	"fmt"
	"strings"
	"time"

	"github.com/shortforge/hookcut/internal/domain/hooks"
	"github.com/shortforge/hookcut/internal/domain/transcript"
	"github.com/shortforge/hookcut/internal/types"
)

// Mode picks the caption unit: one word per chunk or one sentence per chunk.
type Mode int

const (
	ModeWord Mode = iota
	ModeSentence
)

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "word":
		return ModeWord, nil
	case "sentence":
		return ModeSentence, nil
	}
	return 0, fmt.Errorf("unknown caption mode %q (want word or sentence)", s)
}

func (m Mode) String() string {
	if m == ModeSentence {
		return "sentence"
	}
	return "word"
}

// Chunk is one visual caption unit. Times are absolute media time; the
// renderer shifts them to clip-local offsets.
type Chunk struct {
	Text  string
	Start time.Duration
	End   time.Duration
	Words []types.Word
}

// Duration returns the chunk's on-screen window.
func (c Chunk) Duration() time.Duration { return c.End - c.Start }

// Timeline slices the segment's words into chunks. Word mode yields one chunk
// per word with that word's times. Sentence mode groups by the transcript's
// sentence boundaries restricted to the segment; a sentence cut off by
// max-duration truncation becomes a final partial chunk from the words that
// made it in.
func Timeline(seg hooks.ResolvedSegment, tr *transcript.Transcript, mode Mode) []Chunk {
	if mode == ModeWord {
		words := tr.Slice(seg.StartWord, seg.EndWord+1)
		out := make([]Chunk, 0, len(words))
		for _, w := range words {
			out = append(out, Chunk{
				Text:  strings.TrimSpace(w.Word),
				Start: dur(w.Start),
				End:   dur(w.End),
				Words: []types.Word{w},
			})
		}
		return out
	}

	var out []Chunk
	for i := seg.StartWord; i <= seg.EndWord; {
		j := tr.SentenceEnd(i)
		if j > seg.EndWord {
			j = seg.EndWord
		}
		words := tr.Slice(i, j+1)
		out = append(out, Chunk{
			Text:  tr.Text(i, j),
			Start: dur(words[0].Start),
			End:   dur(words[len(words)-1].End),
			Words: words,
		})
		i = j + 1
	}
	return out
}

func dur(sec float64) time.Duration { return time.Duration(sec * float64(time.Second)) }
