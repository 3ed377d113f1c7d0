package ram

// Log2 returns the log2 of a number. It also returns false if the number is
// not a power of two.
func Log2(n uint64) (uint64, bool) {
	oneCount := 0
	onePos := uint64(0)

	for i := uint64(0); i < 64; i++ {
		if n&(1<<i) > 0 {
			onePos = i
			oneCount++
		}
	}

	return onePos, oneCount == 1
}

// IsPowerOfTwo returns true if n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	if n <= 0 {
		return false
	}

	_, ok := Log2(uint64(n))

	return ok
}

// ClogTwo returns the number of bits required to address n words. A single
// word still takes one address bit.
func ClogTwo(n int) int {
	if n <= 2 {
		return 1
	}

	bits := 0
	for v := n - 1; v > 0; v >>= 1 {
		bits++
	}

	return bits
}
