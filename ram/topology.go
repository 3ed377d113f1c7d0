package ram

import (
	"strings"

	"github.com/pkg/errors"
)

// Topology describes the port arrangement of a logical memory.
type Topology int

// The supported topologies.
const (
	SinglePort Topology = iota
	TwoPort
	SinglePortFlop
	TwoPortFlop
)

var topologyCodes = map[Topology]string{
	SinglePort:     "sp",
	TwoPort:        "tp",
	SinglePortFlop: "spf",
	TwoPortFlop:    "tpf",
}

// Code returns the short code used in plugin arguments and module names.
func (t Topology) Code() string {
	code, ok := topologyCodes[t]
	if !ok {
		return "unknown"
	}

	return code
}

func (t Topology) String() string {
	switch t {
	case SinglePort:
		return "single-port"
	case TwoPort:
		return "two-port"
	case SinglePortFlop:
		return "single-port-flop"
	case TwoPortFlop:
		return "two-port-flop"
	}

	return "unknown"
}

// IsTwoPort returns true if the memory has separate read and write ports.
func (t Topology) IsTwoPort() bool {
	return t == TwoPort || t == TwoPortFlop
}

// IsFlop returns true if the memory is built from flip-flops rather than
// macros.
func (t Topology) IsFlop() bool {
	return t == SinglePortFlop || t == TwoPortFlop
}

// ParseTopology converts a topology code into a Topology. Both the short
// codes (sp, tp, spf, tpf) and the numeric codes (1 to 4) are accepted.
func ParseTopology(code string) (Topology, error) {
	switch strings.ToLower(strings.TrimSpace(code)) {
	case "sp", "1":
		return SinglePort, nil
	case "tp", "2":
		return TwoPort, nil
	case "spf", "3":
		return SinglePortFlop, nil
	case "tpf", "4":
		return TwoPortFlop, nil
	}

	return 0, errors.Wrapf(ErrInvalidRequest, "unsupported topology code %q", code)
}
