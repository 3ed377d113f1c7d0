package compose

import (
	"fmt"

	"github.com/sarchlab/sramgen/ram"
)

// Names of the Hamming encoder and decoder modules of the cell library.
const (
	ECCEncoder = "ecc_gen"
	ECCDecoder = "ecc_cor"
)

// encodeECC appends the check bits above the data on the way into the
// macros.
func (c *composer) encodeECC() {
	c.dinBus = ram.PortDin
	if !c.req.ECC {
		return
	}

	w, r := c.req.Width, c.req.ECCWidth

	c.out.comment("ECC encode")
	c.out.wire(r, "ecc_chk", "")
	c.out.instance(fmt.Sprintf("%s #(.DW(%d), .CW(%d))", ECCEncoder, w, r),
		"u_ecc_gen", []connection{
			{pin: "din", expr: ram.PortDin},
			{pin: "chk", expr: "ecc_chk"},
		})
	c.out.wire(c.dataWidth, "mem_din",
		fmt.Sprintf("{ecc_chk, %s}", ram.PortDin))

	c.dinBus = "mem_din"
}

// decodeECC corrects the stored word and slices the data bits back out. It
// returns the bus carrying the read data.
func (c *composer) decodeECC() string {
	if !c.req.ECC {
		return "mem_dout"
	}

	w, r := c.req.Width, c.req.ECCWidth

	c.out.comment("ECC decode")
	c.out.wire(c.dataWidth, "ecc_fixed", "")
	c.out.instance(fmt.Sprintf("%s #(.DW(%d), .CW(%d))", ECCDecoder, w, r),
		"u_ecc_cor", []connection{
			{pin: "din", expr: "mem_dout"},
			{pin: "dout", expr: "ecc_fixed"},
			{pin: "sbe", expr: ram.PortECCSBE},
			{pin: "dbe", expr: ram.PortECCDBE},
		})

	return slice("ecc_fixed", w-1, 0)
}
