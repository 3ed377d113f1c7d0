package ram

// ECCWidth returns the number of Hamming check bits needed to protect
// dataWidth data bits. It is the smallest r >= 1 such that
// 2^(r-1) >= r + dataWidth.
func ECCWidth(dataWidth int) int {
	if dataWidth <= 0 {
		return 0
	}

	r := 1
	for (1 << (r - 1)) < r+dataWidth {
		r++
	}

	return r
}
