package openai

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shortforge/hookcut/internal/types"
)

// parseHooks pulls the hook array out of model output that may arrive fenced
// in markdown or wrapped in chatter. Scores land in [0,1] (the model speaks
// 1-10).
func parseHooks(content string) ([]types.RawCandidate, error) {
	clean, err := extractJSONObject(content)
	if err != nil {
		return nil, err
	}

	var out struct {
		Hooks []struct {
			StartTime     float64 `json:"start_time"`
			EndTime       float64 `json:"end_time"`
			HookText      string  `json:"hook_text"`
			ViralityScore float64 `json:"virality_score"`
			HookType      string  `json:"hook_type"`
			Reason        string  `json:"reason"`
		} `json:"hooks"`
	}
	if err := json.Unmarshal([]byte(clean), &out); err != nil {
		return nil, fmt.Errorf("decode hooks: %w", err)
	}

	res := make([]types.RawCandidate, 0, len(out.Hooks))
	for _, h := range out.Hooks {
		res = append(res, types.RawCandidate{
			StartSec: h.StartTime,
			EndSec:   h.EndTime,
			Quote:    strings.TrimSpace(h.HookText),
			Kind:     strings.TrimSpace(h.HookType),
			Reason:   strings.TrimSpace(h.Reason),
			Score:    clamp01(h.ViralityScore / 10),
		})
	}
	return res, nil
}

func extractJSONObject(s string) (string, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return "", errors.New("openai: empty content")
	}

	// Strip markdown code fences.
	if strings.HasPrefix(t, "```") {
		if i := strings.Index(t, "\n"); i >= 0 {
			t = t[i+1:]
		}
		if j := strings.LastIndex(t, "```"); j >= 0 {
			t = t[:j]
		}
		t = strings.TrimSpace(t)
	}

	// Best-effort: take the first JSON object found.
	start := strings.Index(t, "{")
	end := strings.LastIndex(t, "}")
	if start >= 0 && end > start {
		return t[start : end+1], nil
	}

	return "", fmt.Errorf("openai: could not locate JSON object in: %q", truncate(t, 200))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
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
