package catalog

import (
	"strings"

	"github.com/sarchlab/sramgen/ram"
)

// A Policy captures the vendor quirks that affect how macros are picked and
// wired.
type Policy struct {
	Vendor string

	// SplitClockDomains marks vendors that ship different two-port macros
	// for same-clock and cross-clock use. Cross-clock types get a "2c"
	// suffix.
	SplitClockDomains bool

	// PowerOfTwoDepths restricts depth tiles to powers of two.
	PowerOfTwoDepths bool

	// RangeCompareBanks always decodes banks with address range compares,
	// even for power-of-two tiles.
	RangeCompareBanks bool
}

var policies = map[string]Policy{
	"tsmc": {Vendor: "tsmc", SplitClockDomains: true},
	"smic": {Vendor: "smic", PowerOfTwoDepths: true},
	"umc":  {Vendor: "umc", RangeCompareBanks: true},
}

// RegisterPolicy adds or replaces the policy of a vendor.
func RegisterPolicy(p Policy) {
	policies[strings.ToLower(p.Vendor)] = p
}

// PolicyFor returns the policy of a vendor. Unknown vendors get the default
// policy.
func PolicyFor(vendor string) Policy {
	if p, ok := policies[strings.ToLower(vendor)]; ok {
		return p
	}

	return Policy{Vendor: vendor}
}

// MemoryType derives the physical memory type of a request. Flop memories
// have no physical type.
func (p Policy) MemoryType(r ram.Request) string {
	return p.memoryType(r, r.BitWriteEnable)
}

func (p Policy) memoryType(r ram.Request, bwe bool) string {
	var typ string

	switch r.Topology {
	case ram.SinglePort:
		typ = "sp"
	case ram.TwoPort:
		typ = "tp"
	default:
		return ""
	}

	if bwe {
		typ += "bw"
	}

	if r.Topology.IsTwoPort() && p.SplitClockDomains && !r.SameClock() {
		typ += "2c"
	}

	return typ
}

// MemoryTypes lists the acceptable physical types in preference order. A
// request without bit-write-enable may fall back to a masked macro whose
// mask is tied off.
func (p Policy) MemoryTypes(r ram.Request) []string {
	primary := p.MemoryType(r)
	if primary == "" {
		return nil
	}

	if r.BitWriteEnable {
		return []string{primary}
	}

	return []string{primary, p.memoryType(r, true)}
}

// UseRangeCompare tells whether banks of the given tile depth are decoded by
// range compares instead of address bit slices.
func (p Policy) UseRangeCompare(tileDepth int) bool {
	return p.RangeCompareBanks || !ram.IsPowerOfTwo(tileDepth)
}
