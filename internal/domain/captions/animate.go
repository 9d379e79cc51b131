package captions

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"
)

// Style tags one of the six caption animations. The set is closed; dispatch
// goes through a function table rather than a type hierarchy.
type Style int

const (
	StyleFadeIn Style = iota
	StyleSlideUp
	StylePop
	StyleTypewriter
	StyleShake
	StyleGlow
)

var styleNames = map[Style]string{
	StyleFadeIn:     "fade_in",
	StyleSlideUp:    "slide_up",
	StylePop:        "pop",
	StyleTypewriter: "typewriter",
	StyleShake:      "shake",
	StyleGlow:       "glow",
}

func ParseStyle(s string) (Style, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for st, name := range styleNames {
		if name == want {
			return st, nil
		}
	}
	return 0, fmt.Errorf("unknown animation style %q", s)
}

func (s Style) String() string { return styleNames[s] }

// StyleNames lists the accepted style tags for flag help text.
func StyleNames() []string {
	return []string{"fade_in", "slide_up", "pop", "typewriter", "shake", "glow"}
}

// Params are the animation tuning constants. Zero values are never valid;
// start from DefaultParams and override from config.
type Params struct {
	FadeFraction     float64 // share of the chunk spent fading in
	SlideFraction    float64 // share of the chunk spent sliding up
	SlideOffsetPX    float64 // starting y offset below the resting position
	PopFraction      float64 // share of the chunk spent on the overshoot curve
	PopPeak          float64 // overshoot scale peak
	ShakeFraction    float64 // share of the chunk spent shaking
	ShakeAmplitudePX float64
	ShakeFreqHz      float64
	GlowFreqHz       float64
}

func DefaultParams() Params {
	return Params{
		FadeFraction:     0.3,
		SlideFraction:    0.3,
		SlideOffsetPX:    150,
		PopFraction:      0.25,
		PopPeak:          1.15,
		ShakeFraction:    0.2,
		ShakeAmplitudePX: 5,
		ShakeFreqHz:      8,
		GlowFreqHz:       1,
	}
}

// Frame is the animation state of one chunk at one sampled instant.
type Frame struct {
	Chunk   int
	Local   time.Duration
	Opacity float64
	Scale   float64
	XOffset float64
	YOffset float64
	Glyphs  int
	Extra   map[string]float64
}

type styleFunc func(f *Frame, p float64, local time.Duration, glyphs int, tune Params)

var styleFuncs = map[Style]styleFunc{
	StyleFadeIn:     fadeIn,
	StyleSlideUp:    slideUp,
	StylePop:        pop,
	StyleTypewriter: typewriter,
	StyleShake:      shake,
	StyleGlow:       glow,
}

// FrameAt computes the chunk's animation state at local time from the chunk
// start. Pure: same inputs, same frame. Instants outside [0, duration] clamp
// progress to [0,1]; samplers land slightly past chunk edges through float
// rounding and that must not error.
func FrameAt(c Chunk, idx int, local time.Duration, style Style, tune Params) Frame {
	d := c.Duration()
	p := 1.0
	if d > 0 {
		p = clamp01(float64(local) / float64(d))
	}
	total := utf8.RuneCountInString(c.Text)

	f := Frame{
		Chunk:   idx,
		Local:   local,
		Opacity: 1,
		Scale:   1,
		Glyphs:  total,
	}
	styleFuncs[style](&f, p, local, total, tune)
	return f
}

func fadeIn(f *Frame, p float64, _ time.Duration, _ int, tune Params) {
	f.Opacity = math.Min(1, p/tune.FadeFraction)
}

func slideUp(f *Frame, p float64, _ time.Duration, _ int, tune Params) {
	if p < tune.SlideFraction {
		ramp := p / tune.SlideFraction
		f.YOffset = tune.SlideOffsetPX * (1 - ramp)
		f.Opacity = ramp
	}
}

func pop(f *Frame, p float64, _ time.Duration, _ int, tune Params) {
	riseEnd := tune.PopFraction * 0.6
	switch {
	case p < riseEnd:
		ramp := p / riseEnd
		f.Scale = 0.5 + (tune.PopPeak-0.5)*ramp
		f.Opacity = ramp
	case p < tune.PopFraction:
		ease := (p - riseEnd) / (tune.PopFraction - riseEnd)
		f.Scale = tune.PopPeak - (tune.PopPeak-1)*ease
	}
}

func typewriter(f *Frame, p float64, _ time.Duration, glyphs int, _ Params) {
	f.Glyphs = int(math.Floor(p * float64(glyphs)))
	if f.Glyphs > glyphs {
		f.Glyphs = glyphs
	}
}

func shake(f *Frame, p float64, local time.Duration, _ int, tune Params) {
	if p < tune.ShakeFraction {
		f.XOffset = tune.ShakeAmplitudePX * math.Sin(2*math.Pi*tune.ShakeFreqHz*local.Seconds())
	}
}

func glow(f *Frame, _ float64, local time.Duration, _ int, tune Params) {
	f.Extra = map[string]float64{
		"glow": 0.5 + 0.5*math.Sin(2*math.Pi*tune.GlowFreqHz*local.Seconds()),
	}
}

// SettleFraction reports the share of the chunk after which the style's frame
// state stops changing. Renderers sample per frame up to this point and emit
// one static event for the rest. Typewriter and glow animate for the full
// chunk.
func SettleFraction(style Style, tune Params) float64 {
	switch style {
	case StyleFadeIn:
		return tune.FadeFraction
	case StyleSlideUp:
		return tune.SlideFraction
	case StylePop:
		return tune.PopFraction
	case StyleShake:
		return tune.ShakeFraction
	default:
		return 1
	}
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
