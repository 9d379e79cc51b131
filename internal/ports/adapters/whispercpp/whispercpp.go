// Package whispercpp shells out to a whisper.cpp binary and flattens its JSON
// output into the pipeline's word list.
package whispercpp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/shortforge/hookcut/internal/types"
)

type Adapter struct {
	bin   string
	model string
}

func New(binPath, modelPath string) *Adapter {
	return &Adapter{bin: binPath, model: modelPath}
}

func (a *Adapter) Transcribe(ctx context.Context, wavPath, workDir string) ([]types.Word, error) {
	outPrefix := filepath.Join(workDir, "whisper")
	args := []string{
		"-m", a.model,
		"-f", wavPath,
		"-oj",
		"-of", outPrefix,
		"-owts",
	}
	log.Debug().Str("bin", a.bin).Strs("args", args).Msg("transcribing")
	cmd := exec.CommandContext(ctx, a.bin, args...)
	if b, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("whisper.cpp failed: %w\n%s", err, string(b))
	}

	jb, err := os.ReadFile(outPrefix + ".json")
	if err != nil {
		return nil, err
	}
	return parseWords(jb)
}

// parseWords flattens segment-grouped words into one ordered list, trimming
// tokens and dropping empties. Missing confidences default to 1 so a stricter
// whisper build and a plain one feed the same downstream shape.
func parseWords(jb []byte) ([]types.Word, error) {
	var raw struct {
		Segments []struct {
			Words []struct {
				Word       string  `json:"word"`
				Start      float64 `json:"start"`
				End        float64 `json:"end"`
				Confidence float64 `json:"confidence"`
			} `json:"words"`
		} `json:"segments"`
	}
	if err := json.Unmarshal(jb, &raw); err != nil {
		return nil, fmt.Errorf("parse whisper output: %w", err)
	}

	var out []types.Word
	for _, seg := range raw.Segments {
		for _, w := range seg.Words {
			text := strings.TrimSpace(w.Word)
			if text == "" {
				continue
			}
			conf := w.Confidence
			if conf == 0 {
				conf = 1
			}
			out = append(out, types.Word{
				Word:       text,
				Start:      w.Start,
				End:        w.End,
				Confidence: conf,
			})
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("whisper output has no word timestamps")
	}
	return out, nil
}
