package heuristic

import (
	"context"
	"testing"
	"time"

	"github.com/shortforge/hookcut/internal/ports"
)

// talkyLines spaces 8 sentences 10 seconds apart so windows of 2-3 lines land
// inside a [15s, 30s] clip bound.
func talkyLines() []ports.TimedLine {
	texts := []string{
		"Here is why nobody talks about this secret.",
		"The first mistake costs you 3 hours every week.",
		"How to fix it? Do this one thing!",
		"Step 1 is always the hardest.",
		"I was shocked when I saw the numbers: 42 percent.",
		"Never skip this part.",
		"Remember what happened in 2019?",
		"That is the key insight.",
	}
	lines := make([]ports.TimedLine, len(texts))
	for i, txt := range texts {
		lines[i] = ports.TimedLine{
			StartSec: float64(i) * 10,
			EndSec:   float64(i)*10 + 9,
			Text:     txt,
		}
	}
	return lines
}

func TestScore_WindowsRespectClipBounds(t *testing.T) {
	t.Parallel()

	got, err := New().Score(context.Background(), ports.ScoreRequest{
		Lines:   talkyLines(),
		MinClip: 15 * time.Second,
		MaxClip: 30 * time.Second,
	})
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if len(got) == 0 {
		t.Fatalf("hooky transcript produced no candidates")
	}
	for _, c := range got {
		win := c.EndSec - c.StartSec
		if win < 15 || win > 30 {
			t.Errorf("window %.1fs outside [15, 30]: %+v", win, c)
		}
		if c.Score <= 0 || c.Score > 1 {
			t.Errorf("score %v outside (0, 1]", c.Score)
		}
		if c.Kind != "heuristic" {
			t.Errorf("kind = %q", c.Kind)
		}
		if c.Quote == "" || c.Reason == "" {
			t.Errorf("candidate missing text or rationale: %+v", c)
		}
	}
}

func TestScore_SortedAndCapped(t *testing.T) {
	t.Parallel()

	got, err := New().Score(context.Background(), ports.ScoreRequest{
		Lines:         talkyLines(),
		MaxCandidates: 3,
		MinClip:       15 * time.Second,
		MaxClip:       30 * time.Second,
	})
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if len(got) > 3 {
		t.Fatalf("got %d candidates, want at most 3", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Score > got[i-1].Score {
			t.Fatalf("candidates not sorted by score: %v after %v", got[i].Score, got[i-1].Score)
		}
	}
}

func TestScore_Deterministic(t *testing.T) {
	t.Parallel()

	req := ports.ScoreRequest{
		Lines:         talkyLines(),
		MaxCandidates: 5,
		MinClip:       15 * time.Second,
		MaxClip:       30 * time.Second,
	}
	a, err := New().Score(context.Background(), req)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	b, err := New().Score(context.Background(), req)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if len(a) != len(b) {
		t.Fatalf("runs disagree: %d vs %d candidates", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("candidate %d differs between runs:\n%+v\n%+v", i, a[i], b[i])
		}
	}
}

func TestScore_BadBounds(t *testing.T) {
	t.Parallel()

	if _, err := New().Score(context.Background(), ports.ScoreRequest{
		Lines:   talkyLines(),
		MinClip: 30 * time.Second,
		MaxClip: 15 * time.Second,
	}); err == nil {
		t.Fatalf("inverted bounds must fail")
	}
	if _, err := New().Score(context.Background(), ports.ScoreRequest{
		Lines: talkyLines(),
	}); err == nil {
		t.Fatalf("zero max must fail")
	}
}

func TestScoreText_Cues(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		text     string
		wantZero bool
		wantCue  string
	}{
		{name: "empty", text: "   ", wantZero: true},
		{name: "bland", text: "and then we went on and on about things", wantZero: true},
		{name: "numbers", text: "we measured 42 against 17", wantCue: "numbers"},
		{name: "hook words", text: "the secret nobody mentions", wantCue: "hook words"},
		{name: "procedural", text: "how to do this properly", wantCue: "procedural"},
		{name: "questions", text: "why does this work?", wantCue: "questions"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			score, cues := scoreText(tc.text)
			if tc.wantZero {
				if score != 0 {
					t.Fatalf("score = %v, want 0", score)
				}
				return
			}
			if score <= 0 {
				t.Fatalf("score = %v, want positive", score)
			}
			found := false
			for _, c := range cues {
				if c == tc.wantCue {
					found = true
				}
			}
			if !found {
				t.Fatalf("cues %v missing %q", cues, tc.wantCue)
			}
		})
	}
}
