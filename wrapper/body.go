package wrapper

import (
	"github.com/sarchlab/sramgen/ram"
)

// bodyData feeds the behavioral and flop templates.
type bodyData struct {
	Width    int
	Depth    int
	BWE      bool
	ECC      bool
	Pipeline bool

	WClk    string
	RClk    string
	WAddr   string
	RAddr   string
	WriteEn string
	ReadEn  string

	Reset       string
	ResetEdge   string
	ResetActive string
}

func makeBodyData(r ram.Request) bodyData {
	wclk, we, waddr := r.WritePort()
	rclk, raddr := r.ReadPort()

	d := bodyData{
		Width:    r.Width,
		Depth:    r.Depth,
		BWE:      r.BitWriteEnable,
		ECC:      r.ECC,
		Pipeline: r.Pipeline,
		WClk:     wclk,
		RClk:     rclk,
		WAddr:    waddr,
		RAddr:    raddr,
		WriteEn:  we,
		ReadEn:   ram.PortRE,
		Reset:    r.Reset,
	}

	if !r.Topology.IsTwoPort() {
		d.WriteEn = ram.PortCS + " & " + ram.PortWE
		d.ReadEn = ram.PortCS + " & ~" + ram.PortWE
	}

	d.ResetEdge, d.ResetActive = "posedge", r.Reset
	if r.ResetActiveLow() {
		d.ResetEdge, d.ResetActive = "negedge", "!"+r.Reset
	}

	return d
}
