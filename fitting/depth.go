package fitting

import (
	"sort"

	"github.com/sarchlab/sramgen/ram"
)

type depthCandidate struct {
	depth      int
	iterations int
	residue    int
}

func makeDepthCandidate(tileDepth, want int) depthCandidate {
	iterations := (want + tileDepth - 1) / tileDepth

	return depthCandidate{
		depth:      tileDepth,
		iterations: iterations,
		residue:    iterations*tileDepth - want,
	}
}

// rankDepths orders the depth tiles by (iterations, residue, depth): fewer
// banks first, then least wasted words, then the smallest tile.
func rankDepths(depths []int, want int, powerOfTwoOnly bool) []depthCandidate {
	candidates := make([]depthCandidate, 0, len(depths))

	for _, d := range depths {
		if d <= 0 {
			continue
		}

		if powerOfTwoOnly && !ram.IsPowerOfTwo(d) {
			continue
		}

		candidates = append(candidates, makeDepthCandidate(d, want))
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.iterations != b.iterations {
			return a.iterations < b.iterations
		}

		if a.residue != b.residue {
			return a.residue < b.residue
		}

		return a.depth < b.depth
	})

	return candidates
}
