package wrapper

import (
	"fmt"
	"strings"

	"github.com/sarchlab/sramgen/ram"
)

// Instantiate returns the plugin-syntax instantiation of a module, one block
// per loop element. Clocks and reset connect to the named shared signals,
// every other port to a signal named after the prefix and the port.
func Instantiate(r ram.Request, module string) string {
	var sb strings.Builder

	for _, suffix := range r.Loop.Suffixes() {
		fmt.Fprintf(&sb, "&Instance(\"%s\", \"u_%s%s\");\n",
			module, r.Prefix, suffix)

		for _, p := range r.Ports() {
			fmt.Fprintf(&sb, "&Connect(.%s(%s));\n",
				p.Name, connectedSignal(r, p, suffix))
		}
	}

	return sb.String()
}

func connectedSignal(r ram.Request, p ram.Port, suffix string) string {
	if !p.Shared {
		return fmt.Sprintf("%s_%s%s", r.Prefix, p.Name, suffix)
	}

	switch p.Name {
	case ram.PortClk, ram.PortWClk, ram.PortRClk:
		return r.ClockFor(p.Name)
	}

	return p.Name
}
