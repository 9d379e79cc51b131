// Package clips packages a selected segment and its caption timeline into the
// instruction the renderer consumes.
package clips

import (
	"errors"
	"fmt"
	"time"

	"github.com/shortforge/hookcut/internal/domain/captions"
	"github.com/shortforge/hookcut/internal/domain/hooks"
)

// ErrEmptyCaptionTimeline reports a non-empty segment arriving with no caption
// chunks. Upstream guarantees at least one word per segment, so hitting this
// means a bug, not bad input.
var ErrEmptyCaptionTimeline = errors.New("empty caption timeline")

// Instruction is the renderer's work order for one clip.
type Instruction struct {
	Start    time.Duration
	End      time.Duration
	Captions []captions.Chunk
}

// Assemble combines the segment window with its caption timeline. No
// computation beyond packaging.
func Assemble(seg hooks.ResolvedSegment, timeline []captions.Chunk) (Instruction, error) {
	if len(timeline) == 0 {
		return Instruction{}, fmt.Errorf("%w: segment %s-%s has words but no captions",
			ErrEmptyCaptionTimeline, seg.Start, seg.End)
	}
	return Instruction{Start: seg.Start, End: seg.End, Captions: timeline}, nil
}
