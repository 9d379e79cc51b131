// Package heuristic is the offline Oracle: it windows consecutive transcript
// sentences into candidate spans and scores them with cheap lexical cues. It
// keeps the pipeline useful without an API key and serves as a deterministic
// baseline in tests.
package heuristic

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/shortforge/hookcut/internal/ports"
	"github.com/shortforge/hookcut/internal/types"
)

type Adapter struct{}

func New() *Adapter { return &Adapter{} }

// Score builds every window of consecutive lines whose span fits inside
// [MinClip, MaxClip], scores each, and returns the best MaxCandidates. One
// pass, no I/O, deterministic.
func (a *Adapter) Score(_ context.Context, req ports.ScoreRequest) ([]types.RawCandidate, error) {
	minSec := req.MinClip.Seconds()
	maxSec := req.MaxClip.Seconds()
	if maxSec <= 0 || maxSec < minSec {
		return nil, fmt.Errorf("heuristic: bad clip bounds [%f, %f]", minSec, maxSec)
	}

	var out []types.RawCandidate
	for i := range req.Lines {
		start := req.Lines[i].StartSec
		var parts []string
		for j := i; j < len(req.Lines); j++ {
			end := req.Lines[j].EndSec
			win := end - start
			if win > maxSec {
				break
			}
			if strings.TrimSpace(req.Lines[j].Text) != "" {
				parts = append(parts, strings.TrimSpace(req.Lines[j].Text))
			}
			if win < minSec {
				continue
			}
			text := strings.Join(parts, " ")
			if text == "" {
				continue
			}
			score, cues := scoreText(text)
			if score <= 0 {
				continue
			}
			out = append(out, types.RawCandidate{
				StartSec: start,
				EndSec:   end,
				Quote:    text,
				Kind:     "heuristic",
				Reason:   "lexical cues: " + strings.Join(cues, ", "),
				Score:    score,
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].StartSec < out[j].StartSec
	})
	if req.MaxCandidates > 0 && len(out) > req.MaxCandidates {
		out = out[:req.MaxCandidates]
	}
	return out, nil
}
