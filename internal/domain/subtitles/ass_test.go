package subtitles

import (
	"strings"
	"testing"
	"time"

	"github.com/shortforge/hookcut/internal/domain/captions"
	"github.com/shortforge/hookcut/internal/domain/clips"
)

func testInstruction() clips.Instruction {
	return clips.Instruction{
		Start: 10 * time.Second,
		End:   14 * time.Second,
		Captions: []captions.Chunk{
			{Text: "stop scrolling", Start: 10 * time.Second, End: 12 * time.Second},
			{Text: "right now", Start: 12 * time.Second, End: 14 * time.Second},
		},
	}
}

func TestCompile_HeaderCarriesCanvas(t *testing.T) {
	t.Parallel()

	doc := Compile(testInstruction(), captions.StyleFadeIn, captions.DefaultParams(), DefaultLayout())
	if !strings.Contains(doc, "PlayResX: 1080") || !strings.Contains(doc, "PlayResY: 1920") {
		t.Fatalf("missing vertical canvas in header:\n%s", doc)
	}
	if !strings.Contains(doc, "Style: Hook,") {
		t.Fatalf("missing style definition:\n%s", doc)
	}
}

func TestCompile_EventsAreClipLocalAndUppercase(t *testing.T) {
	t.Parallel()

	doc := Compile(testInstruction(), captions.StyleFadeIn, captions.DefaultParams(), DefaultLayout())

	if !strings.Contains(doc, "STOP SCROLLING") || !strings.Contains(doc, "RIGHT NOW") {
		t.Fatalf("caption text must be uppercased:\n%s", doc)
	}
	// First chunk starts at media time 10s = clip-local 0.
	if !strings.Contains(doc, "Dialogue: 0,0:00:00.00,") {
		t.Fatalf("first event must start at clip-local zero:\n%s", doc)
	}
	// Nothing may reference absolute media time.
	if strings.Contains(doc, "0:00:10.") {
		t.Fatalf("found absolute media timestamps in events:\n%s", doc)
	}
}

func TestCompile_AnimatedHeadThenStaticTail(t *testing.T) {
	t.Parallel()

	doc := Compile(testInstruction(), captions.StyleFadeIn, captions.DefaultParams(), DefaultLayout())

	// The fade head is sampled per frame and carries alpha overrides; once
	// settled, a single fully-opaque event covers the rest of each chunk.
	alphaEvents, staticEvents := 0, 0
	for _, ln := range strings.Split(doc, "\n") {
		if !strings.HasPrefix(ln, "Dialogue:") {
			continue
		}
		if strings.Contains(ln, "\\alpha") {
			alphaEvents++
		} else {
			staticEvents++
		}
	}
	if alphaEvents < 10 {
		t.Fatalf("fade head too sparse: %d alpha events\n%s", alphaEvents, doc)
	}
	if staticEvents != 2 {
		t.Fatalf("got %d static tail events, want one per chunk\n%s", staticEvents, doc)
	}
	// Last chunk's tail runs to the clip-local end of the clip (14s - 10s).
	if !strings.Contains(doc, ",0:00:04.00,Hook,") {
		t.Fatalf("final event must end at clip-local 4s:\n%s", doc)
	}
}

func TestCompile_TypewriterRevealsPrefixes(t *testing.T) {
	t.Parallel()

	ins := clips.Instruction{
		Start: 0,
		End:   2 * time.Second,
		Captions: []captions.Chunk{
			{Text: "abc", Start: 0, End: 2 * time.Second},
		},
	}
	doc := Compile(ins, captions.StyleTypewriter, captions.DefaultParams(), DefaultLayout())

	for _, prefix := range []string{"}A\n", "}AB\n", "}ABC\n"} {
		if !strings.Contains(doc, prefix) {
			t.Fatalf("typewriter missing glyph prefix %q:\n%s", prefix, doc)
		}
	}
	if got := strings.Count(doc, "Dialogue:"); got != 3 {
		t.Fatalf("got %d events, want one per revealed glyph", got)
	}
}

func TestCompile_PopScalesPastHundred(t *testing.T) {
	t.Parallel()

	doc := Compile(testInstruction(), captions.StylePop, captions.DefaultParams(), DefaultLayout())
	if !strings.Contains(doc, "\\fscx11") {
		t.Fatalf("pop head must scale above 100%%:\n%s", doc)
	}
}

func TestAssTime_Format(t *testing.T) {
	t.Parallel()

	got := assTime(61*time.Second + 234*time.Millisecond)
	if got != "0:01:01.23" {
		t.Fatalf("unexpected assTime: %s", got)
	}
}

func TestSanitizeASS_NeutralizesOverrides(t *testing.T) {
	t.Parallel()

	got := sanitizeASS(`{\b1}bold\`)
	if strings.ContainsAny(got, "{}") {
		t.Fatalf("braces must not survive: %q", got)
	}
}
