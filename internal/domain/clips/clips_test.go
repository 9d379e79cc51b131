package clips

import (
	"errors"
	"testing"
	"time"

	"github.com/shortforge/hookcut/internal/domain/captions"
	"github.com/shortforge/hookcut/internal/domain/hooks"
)

func TestAssemble_PackagesSegmentAndTimeline(t *testing.T) {
	t.Parallel()

	seg := hooks.ResolvedSegment{Start: 10 * time.Second, End: 25 * time.Second}
	timeline := []captions.Chunk{
		{Text: "HOOK", Start: 10 * time.Second, End: 11 * time.Second},
		{Text: "LINE", Start: 11 * time.Second, End: 12 * time.Second},
	}

	ins, err := Assemble(seg, timeline)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if ins.Start != seg.Start || ins.End != seg.End {
		t.Fatalf("window = [%v, %v], want the segment's", ins.Start, ins.End)
	}
	if len(ins.Captions) != 2 {
		t.Fatalf("captions = %d chunks, want 2", len(ins.Captions))
	}
}

func TestAssemble_EmptyTimelineIsAnInvariantViolation(t *testing.T) {
	t.Parallel()

	seg := hooks.ResolvedSegment{Start: 10 * time.Second, End: 25 * time.Second}
	if _, err := Assemble(seg, nil); !errors.Is(err, ErrEmptyCaptionTimeline) {
		t.Fatalf("Assemble error = %v, want ErrEmptyCaptionTimeline", err)
	}
}
