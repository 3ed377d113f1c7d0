package fitting

import (
	"math"
	"sort"
)

// A WidthComposer covers a target width with several smaller catalog widths.
// It returns the chosen widths in ascending order, or false if it cannot
// find any.
type WidthComposer interface {
	Compose(candidates []int, target int) ([]int, bool)
}

// ExhaustiveComposer searches every combination. It is used when the
// catalog offers only a few widths.
type ExhaustiveComposer struct{}

// Compose implements WidthComposer.
func (ExhaustiveComposer) Compose(candidates []int, target int) ([]int, bool) {
	tiles := CombinationSum(candidates, target)
	return tiles, tiles != nil
}

// ToleranceComposer accepts an overshoot of up to Tolerance times the target
// to keep the search short when the catalog offers many widths.
type ToleranceComposer struct {
	Tolerance float64
	MaxTiles  int
}

// Compose implements WidthComposer.
func (c ToleranceComposer) Compose(candidates []int, target int) ([]int, bool) {
	tiles := SumTheList(candidates, target, c.Tolerance, c.MaxTiles)
	return tiles, tiles != nil
}

func normalizeCandidates(candidates []int) []int {
	seen := make(map[int]bool)
	out := make([]int, 0, len(candidates))

	for _, c := range candidates {
		if c > 0 && !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}

	sort.Ints(out)

	return out
}

// CombinationSum returns the multiset of candidates, with repetition, that
// sums exactly to target with the fewest elements. Ties go to the
// lexicographically smallest ascending sequence. If no exact combination
// exists, it returns the combination with the smallest sum above target,
// again preferring fewer elements.
func CombinationSum(candidates []int, target int) []int {
	cands := normalizeCandidates(candidates)
	if len(cands) == 0 || target <= 0 {
		return nil
	}

	// Adding the largest candidate to any sum below target never jumps
	// past this limit, so the smallest overshooting sum lies within it.
	limit := target + cands[len(cands)-1]

	best := make([][]int, limit+1)
	reach := make([]bool, limit+1)
	best[0] = []int{}
	reach[0] = true

	for s := 1; s <= limit; s++ {
		for _, c := range cands {
			if c > s || !reach[s-c] {
				continue
			}

			combo := insertSorted(best[s-c], c)
			if !reach[s] || better(combo, best[s]) {
				best[s] = combo
				reach[s] = true
			}
		}
	}

	for s := target; s <= limit; s++ {
		if reach[s] {
			return best[s]
		}
	}

	return nil
}

func better(a, b []int) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}

	return lexLess(a, b)
}

func insertSorted(list []int, v int) []int {
	out := make([]int, 0, len(list)+1)
	inserted := false

	for _, x := range list {
		if !inserted && v < x {
			out = append(out, v)
			inserted = true
		}

		out = append(out, x)
	}

	if !inserted {
		out = append(out, v)
	}

	return out
}

// SumTheList enumerates combinations with repetition by increasing size. At
// each size an exact sum wins; otherwise the combination with the least
// overshoot not exceeding tolerance*target is taken. Larger sizes are only
// tried when a size yields nothing. At most maxTiles elements are used.
func SumTheList(
	candidates []int,
	target int,
	tolerance float64,
	maxTiles int,
) []int {
	cands := normalizeCandidates(candidates)
	if len(cands) == 0 || target <= 0 || maxTiles <= 0 {
		return nil
	}

	maxOver := int(math.Floor(tolerance * float64(target)))
	if maxOver < 0 {
		maxOver = 0
	}

	largest := cands[len(cands)-1]
	minSize := (target + largest - 1) / largest

	for k := minSize; k <= maxTiles; k++ {
		s := sizedSearch{
			cands:   cands,
			target:  target,
			maxOver: maxOver,
			combo:   make([]int, 0, k),
		}
		s.search(0, k, 0)

		if s.exact != nil {
			return s.exact
		}

		if s.best != nil {
			return s.best
		}
	}

	return nil
}

type sizedSearch struct {
	cands   []int
	target  int
	maxOver int

	combo    []int
	exact    []int
	best     []int
	bestOver int
}

func (s *sizedSearch) search(start, remaining, sum int) {
	if s.exact != nil {
		return
	}

	if remaining == 0 {
		s.visit(sum)
		return
	}

	largest := s.cands[len(s.cands)-1]
	if sum+remaining*largest < s.target {
		return
	}

	for i := start; i < len(s.cands); i++ {
		c := s.cands[i]
		if sum+remaining*c > s.target+s.maxOver {
			return
		}

		s.combo = append(s.combo, c)
		s.search(i, remaining-1, sum+c)
		s.combo = s.combo[:len(s.combo)-1]

		if s.exact != nil {
			return
		}
	}
}

func (s *sizedSearch) visit(sum int) {
	over := sum - s.target

	switch {
	case over == 0:
		s.exact = append([]int(nil), s.combo...)
	case over > 0 && over <= s.maxOver:
		if s.best == nil || over < s.bestOver {
			s.best = append([]int(nil), s.combo...)
			s.bestOver = over
		}
	}
}
