package ram

import "strings"

// Names of the logical ports of a generated memory.
const (
	PortClk    = "clk"
	PortWClk   = "wclk"
	PortRClk   = "rclk"
	PortCS     = "cs"
	PortWE     = "we"
	PortRE     = "re"
	PortAddr   = "addr"
	PortWAddr  = "waddr"
	PortRAddr  = "raddr"
	PortDin    = "din"
	PortBWE    = "bwe"
	PortDout   = "dout"
	PortECCSBE = "ecc_sbe"
	PortECCDBE = "ecc_dbe"
)

// A Port is one pin of the logical memory interface.
type Port struct {
	Name   string
	Width  int
	Output bool

	// Clock and reset ports connect to shared signals at the instantiation
	// site rather than to prefixed per-memory signals.
	Shared bool
}

// Ports lists the logical interface of the memory, inputs first.
func (r Request) Ports() []Port {
	aw := r.AddrWidth()

	var ports []Port

	if r.Topology.IsTwoPort() {
		ports = append(ports,
			Port{Name: PortWClk, Width: 1, Shared: true},
			Port{Name: PortRClk, Width: 1, Shared: true},
		)
	} else {
		ports = append(ports, Port{Name: PortClk, Width: 1, Shared: true})
	}

	if r.HasReset() {
		ports = append(ports, Port{Name: r.Reset, Width: 1, Shared: true})
	}

	if r.Topology.IsTwoPort() {
		ports = append(ports,
			Port{Name: PortWE, Width: 1},
			Port{Name: PortWAddr, Width: aw},
			Port{Name: PortDin, Width: r.Width},
		)
		if r.BitWriteEnable {
			ports = append(ports, Port{Name: PortBWE, Width: r.Width})
		}
		ports = append(ports,
			Port{Name: PortRE, Width: 1},
			Port{Name: PortRAddr, Width: aw},
		)
	} else {
		ports = append(ports,
			Port{Name: PortCS, Width: 1},
			Port{Name: PortWE, Width: 1},
			Port{Name: PortAddr, Width: aw},
			Port{Name: PortDin, Width: r.Width},
		)
		if r.BitWriteEnable {
			ports = append(ports, Port{Name: PortBWE, Width: r.Width})
		}
	}

	ports = append(ports, Port{Name: PortDout, Width: r.Width, Output: true})

	if r.ECC {
		ports = append(ports,
			Port{Name: PortECCSBE, Width: 1, Output: true},
			Port{Name: PortECCDBE, Width: 1, Output: true},
		)
	}

	return ports
}

// HasReset tells whether the memory has a reset input. Only the output
// register and flop arrays are reset.
func (r Request) HasReset() bool {
	return r.Pipeline || r.Topology.IsFlop()
}

// WritePort returns the names of the write clock, write enable, and write
// address ports.
func (r Request) WritePort() (clk, we, addr string) {
	if r.Topology.IsTwoPort() {
		return PortWClk, PortWE, PortWAddr
	}

	return PortClk, PortWE, PortAddr
}

// ReadPort returns the names of the read clock and read address ports.
func (r Request) ReadPort() (clk, addr string) {
	if r.Topology.IsTwoPort() {
		return PortRClk, PortRAddr
	}

	return PortClk, PortAddr
}

var activeLowSuffixes = []string{"_n", "_b", "rstn", "resetn"}

// ResetActiveLow tells whether the reset is asserted low, judged by its name
// (rst_n, reset_b, rstn, sys_resetn).
func (r Request) ResetActiveLow() bool {
	name := strings.ToLower(r.Reset)
	for _, suffix := range activeLowSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}

	return false
}

// ClockFor returns the signal name that drives a logical clock port at the
// instantiation site.
func (r Request) ClockFor(port string) string {
	if port == PortRClk {
		return r.ReadClock
	}

	return r.WriteClock
}
