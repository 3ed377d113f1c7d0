package fitting

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/sarchlab/sramgen/catalog"
	"github.com/sarchlab/sramgen/ram"
)

var (
	// ErrNoCandidates is returned when the catalog has no macro of a
	// suitable type.
	ErrNoCandidates = errors.New("no candidate macros")

	// ErrUnsatisfiable is returned when no combination of macros covers
	// the requested width.
	ErrUnsatisfiable = errors.New("width cannot be composed")

	// ErrMixedDepths is returned when an explicit macro list mixes depths.
	ErrMixedDepths = errors.New("explicit macros have different depths")

	// ErrUnknownMacro is returned when an explicit macro is not in the
	// catalog.
	ErrUnknownMacro = errors.New("unknown macro")
)

// A Fitter selects the macro tiling of a request.
type Fitter struct {
	opts       Options
	exhaustive WidthComposer
	tolerant   WidthComposer
}

// Fit computes the plan for the request. The same request and catalog always
// yield the same plan.
func (f *Fitter) Fit(r ram.Request, c *catalog.Catalog) (Plan, error) {
	if r.Topology.IsFlop() {
		return Plan{}, errors.Wrapf(ErrNoCandidates,
			"%s is a flop memory", r.Prefix)
	}

	policy := catalog.PolicyFor(c.Vendor())
	types := policy.MemoryTypes(r)

	if len(r.Macros) > 0 {
		return f.fitExplicit(r, c, types[0])
	}

	powerOfTwo := f.opts.PowerOfTwoDepths || policy.PowerOfTwoDepths

	var lastErr error
	for _, typ := range types {
		plan, err := f.fitType(r, c, typ, powerOfTwo)
		if err == nil {
			log.WithFields(r.Fields()).
				WithField("plan", plan.String()).
				Debug("macros fitted")

			return plan, nil
		}

		lastErr = err
	}

	return Plan{}, lastErr
}

func (f *Fitter) fitType(
	r ram.Request,
	c *catalog.Catalog,
	typ string,
	powerOfTwo bool,
) (Plan, error) {
	depths := rankDepths(c.Depths(typ), r.Depth, powerOfTwo)
	if len(depths) == 0 {
		return Plan{}, errors.Wrapf(ErrNoCandidates,
			"vendor %s has no %s macros for %s", c.Vendor(), typ, r.Prefix)
	}

	target := r.EffectiveWidth()
	found := false

	var best Plan

	for _, d := range depths {
		tiles, ok := f.selectWidths(c.Widths(d.depth, typ), target)
		if !ok {
			continue
		}

		plan := f.makePlan(c, typ, d, tiles, target)
		if !found || plan.less(best) {
			best = plan
			found = true
		}
	}

	if !found {
		return Plan{}, errors.Wrapf(ErrUnsatisfiable,
			"vendor %s, type %s, width %d", c.Vendor(), typ, target)
	}

	return best, nil
}

// selectWidths prefers an exact width, then the smallest wider macro, and
// composes narrower macros only when neither exists.
func (f *Fitter) selectWidths(widths []int, target int) ([]int, bool) {
	smallest := 0
	var narrower []int

	for _, w := range widths {
		switch {
		case w == target:
			return []int{w}, true
		case w > target:
			if smallest == 0 || w < smallest {
				smallest = w
			}
		default:
			narrower = append(narrower, w)
		}
	}

	if smallest > 0 {
		return []int{smallest}, true
	}

	if len(narrower) == 0 {
		return nil, false
	}

	if len(narrower) <= f.opts.ExhaustiveLimit {
		return f.exhaustive.Compose(narrower, target)
	}

	return f.tolerant.Compose(narrower, target)
}

func (f *Fitter) makePlan(
	c *catalog.Catalog,
	typ string,
	d depthCandidate,
	tiles []int,
	target int,
) Plan {
	plan := Plan{
		Vendor:         c.Vendor(),
		Type:           typ,
		TileDepth:      d.depth,
		Iterations:     d.iterations,
		DepthResidue:   d.residue,
		Tiles:          tiles,
		Macros:         make([]string, len(tiles)),
		EffectiveWidth: target,
	}

	for i, w := range tiles {
		plan.Macros[i], _ = c.Macro(d.depth, w, typ)
	}

	plan.WidthResidue = plan.TotalWidth() - target

	return plan
}

func (f *Fitter) fitExplicit(
	r ram.Request,
	c *catalog.Catalog,
	primary string,
) (Plan, error) {
	macros := make([]catalog.Macro, len(r.Macros))

	for i, name := range r.Macros {
		m, ok := c.Lookup(name)
		if !ok {
			return Plan{}, errors.Wrapf(ErrUnknownMacro,
				"%s (vendor %s)", name, c.Vendor())
		}

		if i > 0 && m.Depth != macros[0].Depth {
			return Plan{}, errors.Wrapf(ErrMixedDepths,
				"%s is %d deep, %s is %d deep",
				name, m.Depth, macros[0].Name, macros[0].Depth)
		}

		macros[i] = m
	}

	typ := macros[0].Type
	if typ == catalog.Wildcard {
		typ = primary
	}

	target := r.EffectiveWidth()
	d := makeDepthCandidate(macros[0].Depth, r.Depth)
	plan := Plan{
		Vendor:         c.Vendor(),
		Type:           typ,
		TileDepth:      d.depth,
		Iterations:     d.iterations,
		DepthResidue:   d.residue,
		Tiles:          make([]int, len(macros)),
		Macros:         make([]string, len(macros)),
		EffectiveWidth: target,
	}

	for i, m := range macros {
		plan.Tiles[i] = m.Width
		plan.Macros[i] = m.Name
	}

	plan.WidthResidue = plan.TotalWidth() - target
	if plan.WidthResidue < 0 {
		return Plan{}, errors.Wrapf(ErrUnsatisfiable,
			"explicit macros provide %d of %d bits",
			plan.TotalWidth(), target)
	}

	return plan, nil
}

// Fit computes a plan with a fitter built from the given options.
func Fit(r ram.Request, c *catalog.Catalog, opts Options) (Plan, error) {
	return MakeBuilder().WithOptions(opts).Build().Fit(r, c)
}
