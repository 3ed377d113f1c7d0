// Package fitting finds combinations of catalog macros that implement a
// logical memory.
package fitting

import (
	"fmt"
	"strings"
)

// A Plan tells how a request is tiled onto physical macros. Every bank is
// TileDepth words deep and holds one macro per width tile. Plans are not
// modified once computed.
type Plan struct {
	Vendor string
	Type   string

	TileDepth    int
	Iterations   int
	DepthResidue int

	Tiles          []int
	Macros         []string
	EffectiveWidth int
	WidthResidue   int
}

// TotalWidth returns the sum of the width tiles.
func (p Plan) TotalWidth() int {
	total := 0
	for _, t := range p.Tiles {
		total += t
	}

	return total
}

// NumInstances returns the number of macros the plan instantiates.
func (p Plan) NumInstances() int {
	return p.Iterations * len(p.Tiles)
}

// TileOffsets returns the lowest bit of each width tile on the physical data
// bus.
func (p Plan) TileOffsets() []int {
	offsets := make([]int, len(p.Tiles))
	lo := 0

	for i, t := range p.Tiles {
		offsets[i] = lo
		lo += t
	}

	return offsets
}

// Equal returns true if two plans are identical.
func (p Plan) Equal(o Plan) bool {
	return p.Vendor == o.Vendor &&
		p.Type == o.Type &&
		p.TileDepth == o.TileDepth &&
		p.Iterations == o.Iterations &&
		p.DepthResidue == o.DepthResidue &&
		p.EffectiveWidth == o.EffectiveWidth &&
		p.WidthResidue == o.WidthResidue &&
		intsEqual(p.Tiles, o.Tiles) &&
		stringsEqual(p.Macros, o.Macros)
}

func (p Plan) String() string {
	tiles := make([]string, len(p.Tiles))
	for i, t := range p.Tiles {
		tiles[i] = fmt.Sprintf("%d", t)
	}

	return fmt.Sprintf(
		"%s/%s depth %d x%d (residue %d), widths [%s] (residue %d)",
		p.Vendor, p.Type, p.TileDepth, p.Iterations, p.DepthResidue,
		strings.Join(tiles, "+"), p.WidthResidue)
}

// less orders plans by (iterations, depth residue, tile depth, tile count,
// width residue, tiles).
func (p Plan) less(o Plan) bool {
	if p.Iterations != o.Iterations {
		return p.Iterations < o.Iterations
	}

	if p.DepthResidue != o.DepthResidue {
		return p.DepthResidue < o.DepthResidue
	}

	if p.TileDepth != o.TileDepth {
		return p.TileDepth < o.TileDepth
	}

	if len(p.Tiles) != len(o.Tiles) {
		return len(p.Tiles) < len(o.Tiles)
	}

	if p.WidthResidue != o.WidthResidue {
		return p.WidthResidue < o.WidthResidue
	}

	return lexLess(p.Tiles, o.Tiles)
}

func lexLess(a, b []int) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}

	return len(a) < len(b)
}

func intsEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

func stringsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}
