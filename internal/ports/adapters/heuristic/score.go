package heuristic

import (
	"regexp"
	"strings"
)

var (
	reNum  = regexp.MustCompile(`\b\d+(?:[\.,]\d+)?\b`)
	reHook = regexp.MustCompile(`(?i)\b(important|key|secret|mistake|never|always|here\s+is\s+why|remember|insane|shocking|nobody)\b`)
	reHow  = regexp.MustCompile(`(?i)\b(how\s+to|step\s+\d+|first|second|third|do\s+this|watch\s+what)\b`)
)

// scoreText rates a candidate window in [0,1] from lexical attention cues and
// names the cues that fired. Deliberately lightweight: deterministic, cheap,
// and good enough for pre-ranking when no model is available.
func scoreText(text string) (float64, []string) {
	t := strings.TrimSpace(text)
	if t == "" {
		return 0, nil
	}
	lower := strings.ToLower(t)

	var score float64
	var cues []string

	if n := len(reNum.FindAllStringIndex(t, -1)); n > 0 {
		score += 0.04 * float64(n)
		cues = append(cues, "numbers")
	}
	if n := len(reHook.FindAllStringIndex(lower, -1)); n > 0 {
		score += 0.09 * float64(n)
		cues = append(cues, "hook words")
	}
	if reHow.MatchString(lower) {
		score += 0.12
		cues = append(cues, "procedural")
	}
	if n := strings.Count(t, "?"); n > 0 {
		score += 0.07 * float64(n)
		cues = append(cues, "questions")
	}
	if n := strings.Count(t, "!"); n > 0 {
		score += 0.03 * float64(n)
		cues = append(cues, "emphasis")
	}

	// Length penalty keeps short punchy windows ahead of rambling ones with
	// the same cue count.
	score -= 0.00006 * float64(len([]rune(t)))

	if score < 0 {
		return 0, nil
	}
	if score > 1 {
		score = 1
	}
	return score, cues
}
