package fitting

// Options tunes the width search.
type Options struct {
	// ExhaustiveLimit is the largest number of candidate widths searched
	// exhaustively.
	ExhaustiveLimit int `yaml:"exhaustiveLimit"`

	// Tolerance is the accepted overshoot, as a fraction of the width, when
	// the search is not exhaustive.
	Tolerance float64 `yaml:"tolerance"`

	// MaxTiles caps the number of width tiles.
	MaxTiles int `yaml:"maxTiles"`

	// PowerOfTwoDepths restricts depth tiles to powers of two for every
	// vendor.
	PowerOfTwoDepths bool `yaml:"powerOfTwoDepths"`
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		ExhaustiveLimit: 8,
		Tolerance:       0.15,
		MaxTiles:        16,
	}
}

// A Builder can build fitters.
type Builder struct {
	opts       Options
	exhaustive WidthComposer
	tolerant   WidthComposer
}

// MakeBuilder creates a builder with default options.
func MakeBuilder() Builder {
	return Builder{opts: DefaultOptions()}
}

// WithOptions sets the search options. Zero fields keep their defaults.
func (b Builder) WithOptions(opts Options) Builder {
	defaults := DefaultOptions()

	if opts.ExhaustiveLimit <= 0 {
		opts.ExhaustiveLimit = defaults.ExhaustiveLimit
	}

	if opts.Tolerance <= 0 {
		opts.Tolerance = defaults.Tolerance
	}

	if opts.MaxTiles <= 0 {
		opts.MaxTiles = defaults.MaxTiles
	}

	b.opts = opts

	return b
}

// WithExhaustiveComposer replaces the composer used for short width lists.
func (b Builder) WithExhaustiveComposer(c WidthComposer) Builder {
	b.exhaustive = c
	return b
}

// WithTolerantComposer replaces the composer used for long width lists.
func (b Builder) WithTolerantComposer(c WidthComposer) Builder {
	b.tolerant = c
	return b
}

// Build creates a fitter.
func (b Builder) Build() *Fitter {
	f := &Fitter{
		opts:       b.opts,
		exhaustive: b.exhaustive,
		tolerant:   b.tolerant,
	}

	if f.exhaustive == nil {
		f.exhaustive = ExhaustiveComposer{}
	}

	if f.tolerant == nil {
		f.tolerant = ToleranceComposer{
			Tolerance: b.opts.Tolerance,
			MaxTiles:  b.opts.MaxTiles,
		}
	}

	return f
}
