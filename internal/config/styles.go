package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/shortforge/hookcut/internal/domain/captions"
	"github.com/shortforge/hookcut/internal/domain/subtitles"
)

// stylesFile mirrors captions.Params and subtitles.Layout with yaml tags.
// Only set fields override the built-in defaults.
type stylesFile struct {
	Fade struct {
		Fraction *float64 `yaml:"fraction"`
	} `yaml:"fade"`
	Slide struct {
		Fraction *float64 `yaml:"fraction"`
		OffsetPX *float64 `yaml:"offset_px"`
	} `yaml:"slide"`
	Pop struct {
		Fraction *float64 `yaml:"fraction"`
		Peak     *float64 `yaml:"peak"`
	} `yaml:"pop"`
	Shake struct {
		Fraction    *float64 `yaml:"fraction"`
		AmplitudePX *float64 `yaml:"amplitude_px"`
		FreqHz      *float64 `yaml:"freq_hz"`
	} `yaml:"shake"`
	Glow struct {
		FreqHz *float64 `yaml:"freq_hz"`
	} `yaml:"glow"`
	Canvas struct {
		Width    *int    `yaml:"width"`
		Height   *int    `yaml:"height"`
		FPS      *int    `yaml:"fps"`
		FontName *string `yaml:"font_name"`
		FontSize *int    `yaml:"font_size"`
	} `yaml:"canvas"`
}

// LoadStyles returns the animation params and render layout, overridden by
// the YAML file at path when given. An empty path means built-in defaults.
func LoadStyles(path string) (captions.Params, subtitles.Layout, error) {
	params := captions.DefaultParams()
	layout := subtitles.DefaultLayout()
	if path == "" {
		return params, layout, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return params, layout, fmt.Errorf("read styles file: %w", err)
	}
	var sf stylesFile
	if err := yaml.Unmarshal(b, &sf); err != nil {
		return params, layout, fmt.Errorf("parse styles file: %w", err)
	}

	setF(&params.FadeFraction, sf.Fade.Fraction)
	setF(&params.SlideFraction, sf.Slide.Fraction)
	setF(&params.SlideOffsetPX, sf.Slide.OffsetPX)
	setF(&params.PopFraction, sf.Pop.Fraction)
	setF(&params.PopPeak, sf.Pop.Peak)
	setF(&params.ShakeFraction, sf.Shake.Fraction)
	setF(&params.ShakeAmplitudePX, sf.Shake.AmplitudePX)
	setF(&params.ShakeFreqHz, sf.Shake.FreqHz)
	setF(&params.GlowFreqHz, sf.Glow.FreqHz)

	setI(&layout.PlayResX, sf.Canvas.Width)
	setI(&layout.PlayResY, sf.Canvas.Height)
	setI(&layout.FPS, sf.Canvas.FPS)
	setI(&layout.FontSize, sf.Canvas.FontSize)
	if sf.Canvas.FontName != nil && *sf.Canvas.FontName != "" {
		layout.FontName = *sf.Canvas.FontName
	}

	return params, layout, nil
}

func setF(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}

func setI(dst *int, src *int) {
	if src != nil && *src > 0 {
		*dst = *src
	}
}
