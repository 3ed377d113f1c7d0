// Package generator turns memory requests into module files.
package generator

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/sarchlab/sramgen/catalog"
	"github.com/sarchlab/sramgen/compose"
	"github.com/sarchlab/sramgen/fitting"
	"github.com/sarchlab/sramgen/hooking"
	"github.com/sarchlab/sramgen/ram"
	"github.com/sarchlab/sramgen/wrapper"
)

// ModuleExt is the extension of the generated module files.
const ModuleExt = ".v"

// ErrNoCatalog is returned when a plan is asked for without a vendor catalog.
var ErrNoCatalog = errors.New("no vendor catalog")

// A Generator fits, composes, and writes memories. Hooks are invoked at every
// stage.
type Generator struct {
	hooking.HookableBase

	catalog   *catalog.Catalog
	fitter    *fitting.Fitter
	emitter   *wrapper.Emitter
	outputDir string
}

// Catalog returns the vendor catalog, or nil when generating without one.
func (g *Generator) Catalog() *catalog.Catalog {
	return g.catalog
}

// OutputDir returns the directory that receives the module files.
func (g *Generator) OutputDir() string {
	return g.outputDir
}

func (g *Generator) fields(r ram.Request) log.Fields {
	fields := r.Fields()
	if g.catalog != nil {
		fields["vendor"] = g.catalog.Vendor()
	}

	return fields
}

// Fit returns the fitting plan of a request.
func (g *Generator) Fit(r ram.Request) (fitting.Plan, error) {
	if g.catalog == nil {
		return fitting.Plan{}, errors.Wrapf(ErrNoCatalog,
			"cannot fit %s", r.Prefix)
	}

	g.InvokeHook(hooking.HookCtx{
		Domain: g,
		Pos:    hooking.HookPosBeforeFit,
		Item:   r,
	})

	plan, err := g.fitter.Fit(r, g.catalog)
	if err != nil {
		return fitting.Plan{}, err
	}

	g.InvokeHook(hooking.HookCtx{
		Domain: g,
		Pos:    hooking.HookPosAfterFit,
		Item:   r,
		Detail: plan,
	})

	return plan, nil
}

// Generate builds the module of a request and writes it to the output
// directory. Flop memories need no macros. Macro memories without a catalog
// fall back to the behavioral model. Fitting and composition failures are
// returned and no module is written.
func (g *Generator) Generate(r ram.Request) (Output, error) {
	out := Output{Request: r}
	if g.catalog != nil {
		out.Vendor = g.catalog.Vendor()
	}

	var phys *wrapper.Physical

	switch {
	case r.Topology.IsFlop():
	case g.catalog == nil:
		g.fallback(r, "no vendor catalog")
		out.Fallback = true
	default:
		var err error

		phys, err = g.physical(r, &out)
		if err != nil {
			log.WithFields(g.fields(r)).WithError(err).
				Error("cannot build memory from macros")

			return Output{}, err
		}
	}

	module, err := g.emitter.Emit(r, phys)
	if err != nil {
		return Output{}, errors.Wrapf(err, "emitting %s", r.Prefix)
	}

	out.Module = module
	out.Instantiation = wrapper.Instantiate(r, module.Name)

	out.Path, err = g.write(module)
	if err != nil {
		return Output{}, err
	}

	g.InvokeHook(hooking.HookCtx{
		Domain: g,
		Pos:    hooking.HookPosModuleWritten,
		Item:   r,
		Detail: out,
	})

	return out, nil
}

func (g *Generator) physical(
	r ram.Request,
	out *Output,
) (*wrapper.Physical, error) {
	plan, err := g.Fit(r)
	if err != nil {
		return nil, err
	}

	out.Plan = &plan

	result, err := compose.Compose(plan, r, g.catalog)
	if err != nil {
		return nil, err
	}

	out.Composition = &result

	g.InvokeHook(hooking.HookCtx{
		Domain: g,
		Pos:    hooking.HookPosAfterCompose,
		Item:   r,
		Detail: result,
	})

	return &wrapper.Physical{
		Vendor: g.catalog.Vendor(),
		Body:   result.Body,
	}, nil
}

func (g *Generator) fallback(r ram.Request, reason string) {
	log.WithFields(g.fields(r)).
		Warnf("%s, using the behavioral model", reason)

	g.InvokeHook(hooking.HookCtx{
		Domain: g,
		Pos:    hooking.HookPosFallback,
		Item:   r,
		Detail: reason,
	})
}

func (g *Generator) write(m wrapper.Module) (string, error) {
	if err := os.MkdirAll(g.outputDir, 0o755); err != nil {
		return "", errors.Wrapf(err, "creating %s", g.outputDir)
	}

	path := filepath.Join(g.outputDir, m.Name+ModuleExt)
	if err := os.WriteFile(path, []byte(m.Text), 0o644); err != nil {
		return "", errors.Wrapf(err, "writing %s", path)
	}

	return path, nil
}
