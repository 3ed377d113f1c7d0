package fitting

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func sum(list []int) int {
	total := 0
	for _, v := range list {
		total += v
	}

	return total
}

var _ = Describe("CombinationSum", func() {
	It("should use the fewest widths for an exact sum", func() {
		Expect(CombinationSum([]int{4, 8, 16}, 20)).To(Equal([]int{4, 16}))
		Expect(CombinationSum([]int{1, 5, 10}, 15)).To(Equal([]int{5, 10}))
	})

	It("should break ties lexicographically", func() {
		// 3+9 and 5+7 both use two widths.
		Expect(CombinationSum([]int{9, 7, 5, 3}, 12)).
			To(Equal([]int{3, 9}))
	})

	It("should take the smallest sum above the target", func() {
		Expect(CombinationSum([]int{6, 10}, 17)).To(Equal([]int{6, 6, 6}))
		Expect(CombinationSum([]int{5, 7}, 3)).To(Equal([]int{5}))
	})

	It("should ignore duplicate and invalid candidates", func() {
		Expect(CombinationSum([]int{8, 8, 0, -4, 16}, 24)).
			To(Equal([]int{8, 16}))
	})

	It("should return nil without candidates", func() {
		Expect(CombinationSum(nil, 8)).To(BeNil())
		Expect(CombinationSum([]int{8}, 0)).To(BeNil())
	})

	It("should always cover the target", func() {
		r := rand.New(rand.NewSource(1))

		for i := 0; i < 200; i++ {
			n := r.Intn(8) + 1
			cands := make([]int, n)
			for j := range cands {
				cands[j] = r.Intn(40) + 1
			}

			target := r.Intn(200) + 1
			tiles := CombinationSum(cands, target)

			Expect(tiles).NotTo(BeEmpty())
			Expect(sum(tiles)).To(BeNumerically(">=", target))
			Expect(sum(tiles) - target).
				To(BeNumerically("<", tiles[len(tiles)-1]+1))
		}
	})
})

var _ = Describe("SumTheList", func() {
	var cands []int

	BeforeEach(func() {
		cands = []int{10, 11, 12, 13, 14, 15, 16, 17, 18}
	})

	It("should find an exact sum with the fewest widths", func() {
		Expect(SumTheList(cands, 40, 0.15, 16)).
			To(Equal([]int{10, 12, 18}))
		Expect(SumTheList([]int{9, 11}, 20, 0.15, 16)).
			To(Equal([]int{9, 11}))
	})

	It("should accept an overshoot within the tolerance", func() {
		Expect(SumTheList([]int{7, 9}, 10, 0.5, 16)).To(Equal([]int{7, 7}))
	})

	It("should reject an overshoot beyond the tolerance", func() {
		Expect(SumTheList([]int{7, 9}, 10, 0.15, 16)).To(BeNil())
	})

	It("should respect the tile limit", func() {
		Expect(SumTheList([]int{1}, 20, 0.15, 16)).To(BeNil())
		Expect(SumTheList([]int{1}, 16, 0.15, 16)).To(HaveLen(16))
	})

	It("should stay within the tolerance", func() {
		r := rand.New(rand.NewSource(2))

		for i := 0; i < 100; i++ {
			target := r.Intn(300) + 20
			tiles := SumTheList(cands, target, 0.15, 16)
			if tiles == nil {
				continue
			}

			Expect(sum(tiles)).To(BeNumerically(">=", target))
			Expect(float64(sum(tiles) - target)).
				To(BeNumerically("<=", 0.15*float64(target)))
			Expect(len(tiles)).To(BeNumerically("<=", 16))
		}
	})
})
