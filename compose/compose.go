// Package compose stitches the macros of a fitting plan into the structural
// body of one logical memory.
package compose

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/sarchlab/sramgen/catalog"
	"github.com/sarchlab/sramgen/fitting"
	"github.com/sarchlab/sramgen/ram"
)

var (
	// ErrMissingPorts is returned when a macro lacks a pin the memory
	// needs.
	ErrMissingPorts = errors.New("macro lacks required ports")

	// ErrUnknownRole is returned when a pin role cannot be driven in the
	// requested topology.
	ErrUnknownRole = errors.New("pin role cannot be connected")
)

// An Instance is one physical macro placed by the composition.
type Instance struct {
	Name  string
	Macro string
	Bank  int
	Tile  int
}

// A Result is the structural body of a memory.
type Result struct {
	Body      string
	Instances []Instance

	// TieOffs names the wires that sink macro output bits beyond the
	// requested width.
	TieOffs []string
}

type composer struct {
	plan   fitting.Plan
	req    ram.Request
	cat    *catalog.Catalog
	out    *netlist

	addrWidth     int
	physAddrWidth int
	dataWidth     int
	rangeCompare  bool

	dinBus string
	result Result
}

// Compose emits the wiring of every macro instance in the plan, the bank
// decode and read mux, and the ECC encoder and decoder.
func Compose(
	plan fitting.Plan,
	r ram.Request,
	c *catalog.Catalog,
) (Result, error) {
	if plan.Iterations <= 0 || len(plan.Tiles) == 0 {
		return Result{}, errors.Wrapf(fitting.ErrNoCandidates,
			"empty plan for %s", r.Prefix)
	}

	policy := catalog.PolicyFor(c.Vendor())
	comp := &composer{
		plan:          plan,
		req:           r,
		cat:           c,
		out:           &netlist{},
		addrWidth:     r.AddrWidth(),
		physAddrWidth: ram.ClogTwo(plan.TileDepth),
		dataWidth:     plan.EffectiveWidth,
		rangeCompare: plan.TileDepth < 2 ||
			policy.UseRangeCompare(plan.TileDepth),
	}

	if err := comp.compose(); err != nil {
		log.WithFields(r.Fields()).
			WithField("vendor", c.Vendor()).
			WithField("type", plan.Type).
			Error(err)

		return Result{}, err
	}

	comp.result.Body = comp.out.String()

	return comp.result, nil
}

func (c *composer) compose() error {
	c.out.comment("%s %s: %d bank(s) of %d words, tiles %s",
		c.plan.Vendor, c.plan.Type, c.plan.Iterations, c.plan.TileDepth,
		tileList(c.plan.Tiles))

	c.encodeECC()
	c.decodeBanks()

	for bank := 0; bank < c.plan.Iterations; bank++ {
		for tile := range c.plan.Tiles {
			if err := c.instantiate(bank, tile); err != nil {
				return err
			}
		}

		c.mergeTiles(bank)
	}

	c.selectBank()
	data := c.decodeECC()
	c.drive(data)

	return nil
}

func (c *composer) instName(bank, tile int) string {
	return fmt.Sprintf("u_b%d_t%d", bank, tile)
}

func (c *composer) tileOut(bank, tile int) string {
	return fmt.Sprintf("dout_b%d_t%d", bank, tile)
}

func (c *composer) bankOut(bank int) string {
	if c.plan.Iterations == 1 {
		return "mem_dout"
	}

	return fmt.Sprintf("dout_b%d", bank)
}

// tileBits returns the lowest bit of a tile and how many of its bits carry
// requested data.
func (c *composer) tileBits(tile int) (lo, used int) {
	lo = c.plan.TileOffsets()[tile]
	used = c.dataWidth - lo

	if used > c.plan.Tiles[tile] {
		used = c.plan.Tiles[tile]
	}

	if used < 0 {
		used = 0
	}

	return lo, used
}

// tileSlice cuts the bits of a tile out of a bus and pads what the bus does
// not cover.
func (c *composer) tileSlice(bus string, tile int, pad string) string {
	width := c.plan.Tiles[tile]
	lo, used := c.tileBits(tile)

	if used == 0 {
		return fmt.Sprintf("{%d{%s}}", width, pad)
	}

	part := slice(bus, lo+used-1, lo)
	if used == width {
		return part
	}

	return fmt.Sprintf("{{%d{%s}}, %s}", width-used, pad, part)
}

func (c *composer) instantiate(bank, tile int) error {
	macro := c.plan.Macros[tile]

	ports, err := c.cat.Ports(macro, c.plan.Type)
	if err != nil {
		return errors.Wrapf(err, "composing %s", c.req.Prefix)
	}

	if err := c.checkPorts(macro, ports); err != nil {
		return err
	}

	width := c.plan.Tiles[tile]
	out := c.tileOut(bank, tile)
	c.out.wire(width, out, "")

	conns := make([]connection, 0, len(ports.Inputs)+len(ports.Outputs))
	for _, pin := range ports.Pins() {
		expr, err := c.pinExpr(pin, ports, bank, tile)
		if err != nil {
			return errors.Wrapf(err, "pin %s of %s", pin.Name, macro)
		}

		conns = append(conns, connection{pin: pin.Name, expr: expr})
	}

	c.out.instance(macro, c.instName(bank, tile), conns)
	c.result.Instances = append(c.result.Instances, Instance{
		Name:  c.instName(bank, tile),
		Macro: macro,
		Bank:  bank,
		Tile:  tile,
	})

	_, used := c.tileBits(tile)
	if used < width {
		sink := fmt.Sprintf("%s_unused_b%d_t%d", c.req.Prefix, bank, tile)
		c.out.wire(width-used, sink, slice(out, width-1, used))
		c.result.TieOffs = append(c.result.TieOffs, sink)
	}

	return nil
}

func (c *composer) checkPorts(macro string, p catalog.PortMap) error {
	missing := []string{}

	if !p.HasRole(catalog.RoleDout) {
		missing = append(missing, "dout")
	}

	if !p.HasRole(catalog.RoleDin) {
		missing = append(missing, "din")
	}

	if !p.HasRole(catalog.RoleClk, catalog.RoleWClk, catalog.RoleRClk) {
		missing = append(missing, "clock")
	}

	if !p.HasRole(catalog.RoleWE, catalog.RoleWCE) {
		missing = append(missing, "write enable")
	}

	if c.req.Topology.IsTwoPort() {
		if !p.HasRole(catalog.RoleWAddr) || !p.HasRole(catalog.RoleRAddr) {
			missing = append(missing, "read and write address")
		}
	} else if !p.HasRole(catalog.RoleAddr, catalog.RoleWAddr, catalog.RoleRAddr) {
		missing = append(missing, "address")
	}

	if c.req.BitWriteEnable && !p.HasRole(catalog.RoleBWE) {
		missing = append(missing, "bit write enable")
	}

	if len(missing) > 0 {
		return errors.Wrapf(ErrMissingPorts, "%s has no %s",
			macro, strings.Join(missing, ", "))
	}

	return nil
}

func (c *composer) mergeTiles(bank int) {
	parts := make([]string, 0, len(c.plan.Tiles))

	for tile := len(c.plan.Tiles) - 1; tile >= 0; tile-- {
		_, used := c.tileBits(tile)

		switch {
		case used == 0:
			continue
		case used == c.plan.Tiles[tile]:
			parts = append(parts, c.tileOut(bank, tile))
		default:
			parts = append(parts, slice(c.tileOut(bank, tile), used-1, 0))
		}
	}

	c.out.wire(c.dataWidth, c.bankOut(bank), concat(parts))
}

func (c *composer) drive(data string) {
	if !c.req.Pipeline {
		c.out.assign(ram.PortDout, data)
		return
	}

	clk, _ := c.req.ReadPort()
	edge, cond := "posedge", c.req.Reset
	if c.req.ResetActiveLow() {
		edge, cond = "negedge", "!"+c.req.Reset
	}

	c.out.reg(c.req.Width, "dout_q")
	c.out.line("always @(posedge %s or %s %s) begin", clk, edge, c.req.Reset)
	c.out.line("    if (%s)", cond)
	c.out.line("        dout_q <= {%d{1'b0}};", c.req.Width)
	c.out.line("    else")
	c.out.line("        dout_q <= %s;", data)
	c.out.line("end")
	c.out.assign(ram.PortDout, "dout_q")
}

func tileList(tiles []int) string {
	s := make([]string, len(tiles))
	for i, t := range tiles {
		s[i] = fmt.Sprintf("%d", t)
	}

	return "[" + strings.Join(s, "+") + "]"
}
