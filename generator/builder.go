package generator

import (
	"github.com/sarchlab/sramgen/catalog"
	"github.com/sarchlab/sramgen/fitting"
	"github.com/sarchlab/sramgen/wrapper"
)

// A Builder can build generators.
type Builder struct {
	catalog   *catalog.Catalog
	options   fitting.Options
	emitter   *wrapper.Emitter
	outputDir string
}

// MakeBuilder creates a builder with default fitting options that writes to
// the working directory.
func MakeBuilder() Builder {
	return Builder{
		options:   fitting.DefaultOptions(),
		outputDir: ".",
	}
}

// WithCatalog sets the vendor catalog. Without a catalog, memories fall back
// to the behavioral model.
func (b Builder) WithCatalog(c *catalog.Catalog) Builder {
	b.catalog = c
	return b
}

// WithFittingOptions sets the options of the fitter.
func (b Builder) WithFittingOptions(opts fitting.Options) Builder {
	b.options = opts
	return b
}

// WithEmitter sets the module emitter.
func (b Builder) WithEmitter(e *wrapper.Emitter) Builder {
	b.emitter = e
	return b
}

// WithOutputDir sets the directory that receives the module files.
func (b Builder) WithOutputDir(dir string) Builder {
	b.outputDir = dir
	return b
}

// Build creates a generator.
func (b Builder) Build() *Generator {
	emitter := b.emitter
	if emitter == nil {
		emitter = wrapper.MakeBuilder().Build()
	}

	outputDir := b.outputDir
	if outputDir == "" {
		outputDir = "."
	}

	return &Generator{
		catalog:   b.catalog,
		fitter:    fitting.MakeBuilder().WithOptions(b.options).Build(),
		emitter:   emitter,
		outputDir: outputDir,
	}
}
