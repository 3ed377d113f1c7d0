package ram

import (
	"github.com/sirupsen/logrus"
)

// Builder builds memory requests.
type Builder struct {
	prefix         string
	width          int
	depth          int
	topology       Topology
	pipeline       bool
	bitWriteEnable bool
	ecc            bool
	reset          string
	writeClock     string
	readClock      string
	loop           LoopSpec
	macros         []string
}

// MakeBuilder creates a builder with default values.
func MakeBuilder() Builder {
	return Builder{
		topology:   SinglePort,
		reset:      "rst_n",
		writeClock: "clk",
	}
}

// WithPrefix sets the name of the memory.
func (b Builder) WithPrefix(prefix string) Builder {
	b.prefix = prefix
	return b
}

// WithWidth sets the number of data bits per word.
func (b Builder) WithWidth(width int) Builder {
	b.width = width
	return b
}

// WithDepth sets the number of words.
func (b Builder) WithDepth(depth int) Builder {
	b.depth = depth
	return b
}

// WithTopology sets the port topology.
func (b Builder) WithTopology(topology Topology) Builder {
	b.topology = topology
	return b
}

// WithPipeline registers the read data output.
func (b Builder) WithPipeline(pipeline bool) Builder {
	b.pipeline = pipeline
	return b
}

// WithBitWriteEnable enables per-bit write masking.
func (b Builder) WithBitWriteEnable(bwe bool) Builder {
	b.bitWriteEnable = bwe
	return b
}

// WithECC protects the stored data with Hamming check bits.
func (b Builder) WithECC(ecc bool) Builder {
	b.ecc = ecc
	return b
}

// WithReset sets the reset signal name.
func (b Builder) WithReset(reset string) Builder {
	b.reset = reset
	return b
}

// WithClock sets the clock of a single-port memory, or the write clock of a
// two-port memory.
func (b Builder) WithClock(clock string) Builder {
	b.writeClock = clock
	return b
}

// WithReadClock sets the read clock of a two-port memory.
func (b Builder) WithReadClock(clock string) Builder {
	b.readClock = clock
	return b
}

// WithLoop replicates the instantiation.
func (b Builder) WithLoop(loop LoopSpec) Builder {
	b.loop = loop
	return b
}

// WithMacros pins the physical macros to use.
func (b Builder) WithMacros(macros ...string) Builder {
	b.macros = append([]string(nil), macros...)
	return b
}

// Build creates a validated Request. ECC disables bit-write-enable with a
// warning. Single-port memories read on the write clock.
func (b Builder) Build() (Request, error) {
	r := Request{
		Prefix:         b.prefix,
		Width:          b.width,
		Depth:          b.depth,
		Topology:       b.topology,
		Pipeline:       b.pipeline,
		BitWriteEnable: b.bitWriteEnable,
		ECC:            b.ecc,
		Reset:          b.reset,
		WriteClock:     b.writeClock,
		ReadClock:      b.readClock,
		Loop:           b.loop,
		Macros:         b.macros,
	}

	if !r.Topology.IsTwoPort() {
		r.ReadClock = r.WriteClock
	}

	if r.ECC {
		if r.BitWriteEnable {
			logrus.WithFields(r.Fields()).
				Warn("ECC is enabled, disabling bit-write-enable")
			r.BitWriteEnable = false
		}

		r.ECCWidth = ECCWidth(r.Width)
	}

	if err := r.Validate(); err != nil {
		return Request{}, err
	}

	return r, nil
}
