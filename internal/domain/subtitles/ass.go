// Package subtitles compiles a clip's caption render plan into an ASS
// document the video tool burns into the frame.
package subtitles

import (
	"fmt"
	"strings"
	"time"

	"github.com/shortforge/hookcut/internal/domain/captions"
	"github.com/shortforge/hookcut/internal/domain/clips"
)

// Layout fixes the output canvas and typography. Captions sit centered at 70%
// height, the sweet spot above vertical-video UI chrome.
type Layout struct {
	PlayResX int
	PlayResY int
	FPS      int
	FontName string
	FontSize int
}

func DefaultLayout() Layout {
	return Layout{
		PlayResX: 1080,
		PlayResY: 1920,
		FPS:      30,
		FontName: "Arial",
		FontSize: 72,
	}
}

// baseY returns the caption anchor height on the canvas.
func (l Layout) baseY() float64 { return 0.7 * float64(l.PlayResY) }

// Compile samples the animation engine eagerly at the layout's frame rate and
// emits ASS dialogue events. The animated head of each chunk becomes
// per-frame events; once the style settles, one static event covers the rest
// of the chunk. Typewriter emits one event per revealed glyph instead of per
// frame. Event times are clip-local because the renderer cuts the clip before
// burning.
func Compile(ins clips.Instruction, style captions.Style, tune captions.Params, layout Layout) string {
	var b strings.Builder
	b.WriteString(header(layout))
	b.WriteString("\n[Events]\n")
	b.WriteString("Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n")

	frameStep := time.Second / time.Duration(layout.FPS)
	for i, chunk := range ins.Captions {
		text := sanitizeASS(strings.ToUpper(chunk.Text))
		if text == "" {
			continue
		}
		localStart := chunk.Start - ins.Start
		d := chunk.Duration()

		if style == captions.StyleTypewriter {
			writeTypewriterEvents(&b, chunk, localStart, text, layout)
			continue
		}

		settle := time.Duration(captions.SettleFraction(style, tune) * float64(d))
		for t := time.Duration(0); t < settle; t += frameStep {
			stepEnd := t + frameStep
			if stepEnd > settle {
				stepEnd = settle
			}
			f := captions.FrameAt(chunk, i, t, style, tune)
			writeEvent(&b, localStart+t, localStart+stepEnd, overrides(f, layout)+text)
		}
		if settle < d {
			f := captions.FrameAt(chunk, i, settle, style, tune)
			writeEvent(&b, localStart+settle, localStart+d, overrides(f, layout)+text)
		}
	}
	return b.String()
}

// writeTypewriterEvents emits one event per glyph reveal, spacing reveals
// evenly across the chunk so the last glyph lands as the chunk closes.
func writeTypewriterEvents(b *strings.Builder, chunk captions.Chunk, localStart time.Duration, text string, layout Layout) {
	runes := []rune(text)
	total := len(runes)
	d := chunk.Duration()
	pos := fmt.Sprintf("{\\pos(%.0f,%.0f)}", float64(layout.PlayResX)/2, layout.baseY())
	for k := 1; k <= total; k++ {
		from := localStart + time.Duration(float64(d)*float64(k-1)/float64(total))
		to := localStart + time.Duration(float64(d)*float64(k)/float64(total))
		if k == total {
			to = localStart + d
		}
		writeEvent(b, from, to, pos+string(runes[:k]))
	}
}

func writeEvent(b *strings.Builder, from, to time.Duration, text string) {
	if to <= from {
		return
	}
	fmt.Fprintf(b, "Dialogue: 0,%s,%s,Hook,,0,0,0,,%s\n", assTime(from), assTime(to), text)
}

// overrides translates a frame's state into ASS override tags.
func overrides(f captions.Frame, layout Layout) string {
	var b strings.Builder
	b.WriteString("{")
	fmt.Fprintf(&b, "\\pos(%.0f,%.0f)", float64(layout.PlayResX)/2+f.XOffset, layout.baseY()+f.YOffset)
	if f.Opacity < 1 {
		fmt.Fprintf(&b, "\\alpha&H%02X&", alphaHex(f.Opacity))
	}
	if f.Scale != 1 {
		fmt.Fprintf(&b, "\\fscx%.0f\\fscy%.0f", f.Scale*100, f.Scale*100)
	}
	if g, ok := f.Extra["glow"]; ok {
		fmt.Fprintf(&b, "\\blur%.1f", 2+4*g)
	}
	b.WriteString("}")
	return b.String()
}

// alphaHex maps opacity 1 to ASS alpha 00 (opaque) and 0 to FF (invisible).
func alphaHex(opacity float64) int {
	a := int((1 - opacity) * 255)
	if a < 0 {
		a = 0
	}
	if a > 255 {
		a = 255
	}
	return a
}

func header(l Layout) string {
	return strings.TrimSpace(fmt.Sprintf(`
[Script Info]
ScriptType: v4.00+
PlayResX: %d
PlayResY: %d
ScaledBorderAndShadow: yes

[V4+ Styles]
Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding
Style: Hook, %s, %d, &H00FFFFFF, &H00FFD200, &H00000000, &H64000000, 1,0,0,0,100,100,0,0,1,6,2,5, 40,40,0,1
`, l.PlayResX, l.PlayResY, l.FontName, l.FontSize))
}

func assTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hs := int(d / time.Hour)
	d -= time.Duration(hs) * time.Hour
	ms := int(d / time.Minute)
	d -= time.Duration(ms) * time.Minute
	s := int(d / time.Second)
	d -= time.Duration(s) * time.Second
	cs := int(d / (10 * time.Millisecond))
	return fmt.Sprintf("%d:%02d:%02d.%02d", hs, ms, s, cs)
}

func sanitizeASS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "{", "(")
	s = strings.ReplaceAll(s, "}", ")")
	return strings.TrimSpace(s)
}
