package ram

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// LoopSpec describes how an arrayed memory instantiation is replicated. A
// zero LoopSpec means a single instance.
type LoopSpec struct {
	Count int
	Names []string
}

// IsEmpty returns true if the memory is not arrayed.
func (l LoopSpec) IsEmpty() bool {
	return l.Count == 0 && len(l.Names) == 0
}

// Suffixes returns the per-instance suffixes appended to instance and port
// names. A non-arrayed memory has a single empty suffix.
func (l LoopSpec) Suffixes() []string {
	if len(l.Names) > 0 {
		suffixes := make([]string, len(l.Names))
		for i, n := range l.Names {
			suffixes[i] = "_" + n
		}

		return suffixes
	}

	if l.Count > 0 {
		suffixes := make([]string, l.Count)
		for i := range suffixes {
			suffixes[i] = "_" + strconv.Itoa(i)
		}

		return suffixes
	}

	return []string{""}
}

// ParseLoop parses a loop specification. An integer is a replication count.
// Anything else is a list of names separated by commas or spaces, optionally
// wrapped in brackets, braces or quotes.
func ParseLoop(spec string) (LoopSpec, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return LoopSpec{}, nil
	}

	if n, err := strconv.Atoi(spec); err == nil {
		if n <= 0 {
			return LoopSpec{}, errors.Wrapf(ErrInvalidRequest,
				"loop count must be > 0, got %d", n)
		}

		return LoopSpec{Count: n}, nil
	}

	spec = strings.Trim(spec, "[]{}()\"'")
	fields := strings.FieldsFunc(spec, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})

	if len(fields) == 0 {
		return LoopSpec{}, errors.Wrapf(ErrInvalidRequest,
			"loop specification %q has no names", spec)
	}

	seen := make(map[string]bool)
	for _, f := range fields {
		if seen[f] {
			return LoopSpec{}, errors.Wrapf(ErrInvalidRequest,
				"duplicated loop name %q", f)
		}
		seen[f] = true
	}

	return LoopSpec{Names: fields}, nil
}

// ParseFlag parses a boolean plugin argument.
func ParseFlag(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y", "on":
		return true, nil
	case "0", "false", "no", "n", "off", "":
		return false, nil
	}

	return false, errors.Wrapf(ErrInvalidRequest, "invalid flag %q", s)
}

// ParseArgs builds a request from the tokenized arguments of a memory plugin
// invocation:
//
//	prefix, width, depth, topology, pipeline, bwe, reset, clk [, rclk] [, ecc] [, loop]
//
// The read clock is required for two-port topologies. Single-port topologies
// accept it only when it repeats the clock.
func ParseArgs(tokens []string) (Request, error) {
	const numRequired = 8

	args := make([]string, len(tokens))
	for i, t := range tokens {
		args[i] = strings.TrimSpace(t)
	}

	if len(args) < numRequired {
		return Request{}, errors.Wrapf(ErrInvalidRequest,
			"expected at least %d arguments, got %d", numRequired, len(args))
	}

	width, err := strconv.Atoi(args[1])
	if err != nil {
		return Request{}, errors.Wrapf(ErrInvalidRequest, "width %q", args[1])
	}

	depth, err := strconv.Atoi(args[2])
	if err != nil {
		return Request{}, errors.Wrapf(ErrInvalidRequest, "depth %q", args[2])
	}

	topology, err := ParseTopology(args[3])
	if err != nil {
		return Request{}, err
	}

	pipeline, err := ParseFlag(args[4])
	if err != nil {
		return Request{}, errors.WithMessage(err, "pipeline")
	}

	bwe, err := ParseFlag(args[5])
	if err != nil {
		return Request{}, errors.WithMessage(err, "bit-write-enable")
	}

	b := MakeBuilder().
		WithPrefix(args[0]).
		WithWidth(width).
		WithDepth(depth).
		WithTopology(topology).
		WithPipeline(pipeline).
		WithBitWriteEnable(bwe).
		WithReset(args[6]).
		WithClock(args[7])

	rest := args[numRequired:]
	if topology.IsTwoPort() {
		if len(rest) == 0 {
			return Request{}, errors.Wrap(ErrInvalidRequest,
				"two-port memories require a read clock argument")
		}

		b = b.WithReadClock(rest[0])
		rest = rest[1:]
	} else if len(rest) > 0 && rest[0] == args[7] {
		// A single-port memory may repeat its clock as the read clock.
		rest = rest[1:]
	}

	var loopTokens []string
	for _, t := range rest {
		if strings.EqualFold(t, "ecc") {
			b = b.WithECC(true)
			continue
		}

		if t != "" {
			loopTokens = append(loopTokens, t)
		}
	}

	if len(loopTokens) > 0 {
		loop, err := ParseLoop(strings.Join(loopTokens, ","))
		if err != nil {
			return Request{}, err
		}

		b = b.WithLoop(loop)
	}

	return b.Build()
}
