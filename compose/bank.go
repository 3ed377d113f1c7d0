package compose

import (
	"fmt"
	"strings"

	"github.com/sarchlab/sramgen/ram"
)

// bankRange returns the first and last logical word of a bank, clamped to
// the address space.
func (c *composer) bankRange(bank int) (lo, hi int) {
	lo = c.plan.TileDepth * bank
	hi = c.plan.TileDepth*(bank+1) - 1

	if limit := 1<<uint(c.addrWidth) - 1; hi > limit {
		hi = limit
	}

	return lo, hi
}

// selWidth is the width of the registered bank index.
func (c *composer) selWidth() int {
	if c.rangeCompare {
		return ram.ClogTwo(c.plan.Iterations)
	}

	return c.addrWidth - c.physAddrWidth
}

// match returns the expression that is true when the address falls in a
// bank.
func (c *composer) match(addr string, bank int) string {
	if !c.rangeCompare {
		return fmt.Sprintf("(%s == %s)",
			slice(addr, c.addrWidth-1, c.physAddrWidth),
			literal(c.selWidth(), bank))
	}

	lo, hi := c.bankRange(bank)

	return fmt.Sprintf("(%s >= %s) && (%s <= %s)",
		addr, literal(c.addrWidth, lo), addr, literal(c.addrWidth, hi))
}

func (c *composer) localAddrName(addr string, bank int) string {
	return fmt.Sprintf("%s_b%d", addr, bank)
}

// localAddr returns the bank-local address driving a macro address pin.
func (c *composer) localAddr(addr string, bank int) string {
	if c.plan.Iterations == 1 {
		return fitBus(addr, c.addrWidth, c.physAddrWidth)
	}

	return c.localAddrName(addr, bank)
}

func (c *composer) addrPorts() []string {
	if c.req.Topology.IsTwoPort() {
		return []string{ram.PortWAddr, ram.PortRAddr}
	}

	return []string{ram.PortAddr}
}

// decodeBanks declares the bank selects and the bank-local addresses.
func (c *composer) decodeBanks() {
	if c.plan.Iterations == 1 {
		return
	}

	mode := "address slice"
	if c.rangeCompare {
		mode = "range compare"
	}
	c.out.comment("bank decode (%s)", mode)

	for bank := 0; bank < c.plan.Iterations; bank++ {
		if c.req.Topology.IsTwoPort() {
			c.out.wire(1, c.bankSelect(ram.PortWE, bank),
				fmt.Sprintf("%s & %s", ram.PortWE, c.match(ram.PortWAddr, bank)))
			c.out.wire(1, c.bankSelect(ram.PortRE, bank),
				fmt.Sprintf("%s & %s", ram.PortRE, c.match(ram.PortRAddr, bank)))
		} else {
			c.out.wire(1, c.bankSelect(ram.PortCS, bank),
				fmt.Sprintf("%s & %s", ram.PortCS, c.match(ram.PortAddr, bank)))
		}

		for _, addr := range c.addrPorts() {
			c.out.wire(c.physAddrWidth, c.localAddrName(addr, bank),
				c.bankOffset(addr, bank))
		}
	}
}

// bankOffset rebases an address onto a bank. Slice-decoded banks simply drop
// the upper bits.
func (c *composer) bankOffset(addr string, bank int) string {
	lo, _ := c.bankRange(bank)
	if !c.rangeCompare || lo == 0 {
		return fitBus(addr, c.addrWidth, c.physAddrWidth)
	}

	offset := fmt.Sprintf("(%s - %s)", addr, literal(c.addrWidth, lo))
	if c.addrWidth <= c.physAddrWidth {
		return fitBus(offset, c.addrWidth, c.physAddrWidth)
	}

	// Part selects of expressions are not legal Verilog, so the width of
	// the subtraction is set by the declaration instead.
	return offset
}

// bankSelect names the per-bank qualified version of a control port. A
// single bank uses the port itself.
func (c *composer) bankSelect(port string, bank int) string {
	if c.plan.Iterations == 1 {
		return port
	}

	return fmt.Sprintf("%s_b%d", port, bank)
}

// selectBank registers the index of the bank being read and muxes the bank
// outputs on the next cycle, when the macros return the data.
func (c *composer) selectBank() {
	if c.plan.Iterations == 1 {
		return
	}

	width := c.selWidth()
	clk, raddr := c.req.ReadPort()

	c.out.comment("read bank select")
	c.out.wire(width, "rsel", c.readIndex(raddr))
	c.out.reg(width, "rsel_q")
	c.out.line("always @(posedge %s) begin", clk)
	c.out.line("    if (%s)", c.readEnable())
	c.out.line("        rsel_q <= rsel;")
	c.out.line("end")

	c.out.reg(c.dataWidth, "mem_dout")
	c.out.line("always @(*) begin")
	c.out.line("    case (rsel_q)")
	for bank := 0; bank < c.plan.Iterations; bank++ {
		c.out.line("        %s: mem_dout = %s;",
			literal(width, bank), c.bankOut(bank))
	}

	if !ram.IsPowerOfTwo(c.plan.Iterations) {
		c.out.line("        default: mem_dout = {%d{1'b0}};", c.dataWidth)
	}
	c.out.line("    endcase")
	c.out.line("end")
}

func (c *composer) readIndex(raddr string) string {
	if !c.rangeCompare {
		return slice(raddr, c.addrWidth-1, c.physAddrWidth)
	}

	width := c.selWidth()
	last := c.plan.Iterations - 1

	var sb strings.Builder
	for bank := 0; bank < last; bank++ {
		fmt.Fprintf(&sb, "(%s) ? %s : ", c.match(raddr, bank), literal(width, bank))
	}
	sb.WriteString(literal(width, last))

	return sb.String()
}

func (c *composer) readEnable() string {
	if c.req.Topology.IsTwoPort() {
		return ram.PortRE
	}

	return fmt.Sprintf("%s & ~%s", ram.PortCS, ram.PortWE)
}
