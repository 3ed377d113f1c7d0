// Package ram describes the logical memories that the generator is asked to
// build.
package ram

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ErrInvalidRequest is returned when a memory request cannot be built.
var ErrInvalidRequest = errors.New("invalid memory request")

// A Request is a normalized and validated description of a logical memory.
// Requests are created by a Builder or by ParseArgs and are not modified
// afterwards.
type Request struct {
	Prefix         string
	Width          int
	Depth          int
	Topology       Topology
	Pipeline       bool
	BitWriteEnable bool
	ECC            bool
	ECCWidth       int
	Reset          string
	WriteClock     string
	ReadClock      string
	Loop           LoopSpec

	// Macros optionally pins the physical macros to use, bypassing the
	// catalog search.
	Macros []string
}

// EffectiveWidth is the number of bits that must be stored per word,
// including the ECC check bits.
func (r Request) EffectiveWidth() int {
	return r.Width + r.ECCWidth
}

// AddrWidth returns the width of the logical address bus.
func (r Request) AddrWidth() int {
	return ClogTwo(r.Depth)
}

// SameClock returns true if reads and writes are clocked by the same signal.
func (r Request) SameClock() bool {
	return r.ReadClock == r.WriteClock
}

// Fields returns the logging fields identifying the request.
func (r Request) Fields() logrus.Fields {
	return logrus.Fields{
		"prefix": r.Prefix,
		"width":  r.Width,
		"depth":  r.Depth,
	}
}

func (r Request) String() string {
	var opts []string
	if r.Pipeline {
		opts = append(opts, "pipeline")
	}
	if r.BitWriteEnable {
		opts = append(opts, "bwe")
	}
	if r.ECC {
		opts = append(opts, fmt.Sprintf("ecc%d", r.ECCWidth))
	}

	s := fmt.Sprintf("%s %s %dx%d", r.Prefix, r.Topology.Code(), r.Depth, r.Width)
	if len(opts) > 0 {
		s += " [" + strings.Join(opts, ",") + "]"
	}

	return s
}

// Validate checks the request invariants.
func (r Request) Validate() error {
	if r.Prefix == "" {
		return errors.Wrap(ErrInvalidRequest, "prefix must not be empty")
	}

	if r.Width <= 0 {
		return errors.Wrapf(ErrInvalidRequest, "width must be > 0, got %d", r.Width)
	}

	if r.Depth <= 0 {
		return errors.Wrapf(ErrInvalidRequest, "depth must be > 0, got %d", r.Depth)
	}

	if _, ok := topologyCodes[r.Topology]; !ok {
		return errors.Wrapf(ErrInvalidRequest, "unsupported topology %d", r.Topology)
	}

	if r.HasReset() && r.Reset == "" {
		return errors.Wrap(ErrInvalidRequest,
			"pipelined and flop memories require a reset name")
	}

	if r.WriteClock == "" {
		return errors.Wrap(ErrInvalidRequest, "clock name must not be empty")
	}

	if r.Topology.IsTwoPort() && r.ReadClock == "" {
		return errors.Wrap(ErrInvalidRequest,
			"two-port memories require both write and read clock names")
	}

	if r.ECC && r.BitWriteEnable {
		return errors.Wrap(ErrInvalidRequest,
			"bit-write-enable cannot be combined with ECC")
	}

	if r.ECC && r.ECCWidth != ECCWidth(r.Width) {
		return errors.Wrapf(ErrInvalidRequest,
			"ECC width %d does not match data width %d", r.ECCWidth, r.Width)
	}

	return nil
}
