package generator

import (
	"strconv"
	"strings"

	"github.com/sarchlab/sramgen/compose"
	"github.com/sarchlab/sramgen/datarecording"
	"github.com/sarchlab/sramgen/fitting"
	"github.com/sarchlab/sramgen/ram"
	"github.com/sarchlab/sramgen/wrapper"
)

// An Output is the result of generating one memory.
type Output struct {
	Request ram.Request
	Vendor  string

	// Plan and Composition are nil when no macros were used.
	Plan        *fitting.Plan
	Composition *compose.Result

	Module        wrapper.Module
	Path          string
	Instantiation string
	Fallback      bool
}

// HistoryEntry returns the row recorded for this generation.
func (o Output) HistoryEntry() datarecording.Generation {
	g := datarecording.Generation{
		Prefix:   o.Request.Prefix,
		Topology: o.Request.Topology.Code(),
		Width:    o.Request.Width,
		Depth:    o.Request.Depth,
		Vendor:   o.Vendor,
		ECCWidth: o.Request.ECCWidth,
		Module:   o.Module.Name,
		Fallback: o.Fallback,
	}

	if o.Plan != nil {
		g.Type = o.Plan.Type
		g.TileDepth = o.Plan.TileDepth
		g.Iterations = o.Plan.Iterations
		g.DepthResidue = o.Plan.DepthResidue
		g.Tiles = joinTiles(o.Plan.Tiles)
		g.WidthResidue = o.Plan.WidthResidue
	}

	return g
}

func joinTiles(tiles []int) string {
	s := make([]string, len(tiles))
	for i, t := range tiles {
		s[i] = strconv.Itoa(t)
	}

	return strings.Join(s, "+")
}
