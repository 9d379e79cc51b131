package hooks

import "sort"

// Order controls how the final selection is sequenced.
type Order int

const (
	// ByRank keeps best-first order.
	ByRank Order = iota
	// ByTime re-sorts the chosen segments chronologically for downstream
	// numbering. Which segments win does not change.
	ByTime
)

// Select picks up to n segments, best first, skipping any that overlap an
// already-accepted segment. Ties on score go to the earlier start. Fewer than
// n results is a normal outcome, not an error.
func Select(segs []ResolvedSegment, n int, order Order) []ResolvedSegment {
	if n <= 0 || len(segs) == 0 {
		return nil
	}

	ranked := make([]ResolvedSegment, len(segs))
	copy(ranked, segs)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Start < ranked[j].Start
	})

	picked := make([]ResolvedSegment, 0, n)
	for _, cand := range ranked {
		if len(picked) == n {
			break
		}
		clash := false
		for _, p := range picked {
			if overlaps(cand, p) {
				clash = true
				break
			}
		}
		if !clash {
			picked = append(picked, cand)
		}
	}

	if order == ByTime {
		sort.SliceStable(picked, func(i, j int) bool { return picked[i].Start < picked[j].Start })
	}
	return picked
}

func overlaps(a, b ResolvedSegment) bool {
	return a.Start < b.End && b.Start < a.End
}
