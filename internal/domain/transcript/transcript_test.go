package transcript

import (
	"errors"
	"testing"
	"time"

	"github.com/shortforge/hookcut/internal/types"
)

func word(start, end float64, text string) types.Word {
	return types.Word{Start: start, End: end, Word: text, Confidence: 0.9}
}

func TestNew_RejectsBrokenTimings(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		words []types.Word
	}{
		{name: "empty", words: nil},
		{name: "end before start", words: []types.Word{word(1.0, 0.5, "hi")}},
		{name: "zero length", words: []types.Word{word(1.0, 1.0, "hi")}},
		{name: "unsorted", words: []types.Word{word(2.0, 2.5, "b"), word(1.0, 1.5, "a")}},
		{name: "overlap beyond tolerance", words: []types.Word{word(0, 1.0, "a"), word(0.5, 1.5, "b")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.words, 0); !errors.Is(err, ErrMalformed) {
				t.Fatalf("New(%s) error = %v, want ErrMalformed", tc.name, err)
			}
		})
	}
}

func TestNew_AllowsSmallOverlap(t *testing.T) {
	t.Parallel()

	// 30ms overlap sits inside the tolerance window.
	words := []types.Word{word(0, 1.00, "a"), word(0.97, 1.5, "b")}
	if _, err := New(words, 0); err != nil {
		t.Fatalf("New = %v, want nil", err)
	}
}

func TestSentenceEnds_PunctuationAndPauses(t *testing.T) {
	t.Parallel()

	words := []types.Word{
		word(0.0, 0.4, "We"),
		word(0.4, 0.8, "launched."), // terminal punctuation
		word(0.9, 1.3, "Nobody"),
		word(1.3, 1.7, "noticed"), // followed by a 0.9s pause
		word(2.6, 3.0, "until"),
		word(3.0, 3.4, "everything"),
		word(3.4, 3.8, "changed"), // last word closes the final sentence
	}
	tr, err := New(words, 600*time.Millisecond)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	got := tr.SentenceEnds()
	want := []int{1, 3, 6}
	if len(got) != len(want) {
		t.Fatalf("SentenceEnds = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("SentenceEnds = %v, want %v", got, want)
		}
	}
	for i := 1; i < len(got); i++ {
		if got[i] <= got[i-1] {
			t.Fatalf("SentenceEnds not strictly increasing: %v", got)
		}
	}
	if last := got[len(got)-1]; last != tr.Len()-1 {
		t.Fatalf("final sentence end = %d, want last word %d", last, tr.Len()-1)
	}
}

func TestWordAt(t *testing.T) {
	t.Parallel()

	words := []types.Word{
		word(0.0, 0.5, "a"),
		word(0.5, 1.0, "b"),
		word(2.0, 2.5, "c"), // 1s silence before this word
	}
	tr, err := New(words, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	cases := []struct {
		at     time.Duration
		want   int
		wantOK bool
	}{
		{at: 0, want: 0, wantOK: true},
		{at: 250 * time.Millisecond, want: 0, wantOK: true},
		{at: 500 * time.Millisecond, want: 1, wantOK: true}, // half-open: boundary belongs to the next word
		{at: 1500 * time.Millisecond, wantOK: false},        // inside the silence
		{at: 2200 * time.Millisecond, want: 2, wantOK: true},
		{at: 3 * time.Second, wantOK: false}, // past the end
	}
	for _, tc := range cases {
		got, ok := tr.WordAt(tc.at)
		if ok != tc.wantOK || (ok && got != tc.want) {
			t.Fatalf("WordAt(%v) = (%d, %v), want (%d, %v)", tc.at, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestNearestWord(t *testing.T) {
	t.Parallel()

	words := []types.Word{
		word(1.0, 1.5, "a"),
		word(3.0, 3.5, "b"),
	}
	tr, err := New(words, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	cases := []struct {
		at   time.Duration
		want int
	}{
		{at: 0, want: 0},                       // before the transcript
		{at: 1700 * time.Millisecond, want: 0}, // gap, closer to a's end
		{at: 2800 * time.Millisecond, want: 1}, // gap, closer to b's start
		{at: 10 * time.Second, want: 1},        // past the end
	}
	for _, tc := range cases {
		if got := tr.NearestWord(tc.at); got != tc.want {
			t.Fatalf("NearestWord(%v) = %d, want %d", tc.at, got, tc.want)
		}
	}
}

func TestSliceAndText(t *testing.T) {
	t.Parallel()

	words := []types.Word{
		word(0, 0.5, " one "),
		word(0.5, 1.0, "two"),
		word(1.0, 1.5, "three"),
	}
	tr, err := New(words, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if got := tr.Slice(0, 2); len(got) != 2 || got[1].Word != "two" {
		t.Fatalf("Slice(0,2) = %v", got)
	}
	if got := tr.Slice(-5, 99); len(got) != 3 {
		t.Fatalf("Slice with out-of-range bounds = %v, want all words", got)
	}
	if got := tr.Slice(2, 1); got != nil {
		t.Fatalf("Slice inverted = %v, want nil", got)
	}
	if got := tr.Text(0, 2); got != "one two three" {
		t.Fatalf("Text = %q", got)
	}
}

func TestSentenceStartEnd(t *testing.T) {
	t.Parallel()

	words := []types.Word{
		word(0.0, 0.4, "First"),
		word(0.4, 0.8, "sentence."),
		word(0.9, 1.3, "Second"),
		word(1.3, 1.7, "one"),
		word(1.7, 2.1, "here."),
		word(2.2, 2.6, "Tail"),
	}
	tr, err := New(words, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	cases := []struct {
		idx        int
		start, end int
	}{
		{idx: 0, start: 0, end: 1},
		{idx: 1, start: 0, end: 1},
		{idx: 3, start: 2, end: 4},
		{idx: 5, start: 5, end: 5},
	}
	for _, tc := range cases {
		if got := tr.SentenceStart(tc.idx); got != tc.start {
			t.Fatalf("SentenceStart(%d) = %d, want %d", tc.idx, got, tc.start)
		}
		if got := tr.SentenceEnd(tc.idx); got != tc.end {
			t.Fatalf("SentenceEnd(%d) = %d, want %d", tc.idx, got, tc.end)
		}
	}
}
