package compose

import (
	"fmt"
	"strings"
)

// netlist accumulates Verilog text.
type netlist struct {
	sb strings.Builder
}

func (n *netlist) String() string {
	return n.sb.String()
}

func (n *netlist) line(format string, args ...interface{}) {
	fmt.Fprintf(&n.sb, format, args...)
	n.sb.WriteByte('\n')
}

func (n *netlist) comment(format string, args ...interface{}) {
	n.line("// "+format, args...)
}

// wire declares a net, optionally driven by an expression.
func (n *netlist) wire(width int, name, expr string) {
	decl := "wire " + name
	if width > 1 {
		decl = fmt.Sprintf("wire [%d:0] %s", width-1, name)
	}

	if expr == "" {
		n.line("%s;", decl)
		return
	}

	n.line("%s = %s;", decl, expr)
}

func (n *netlist) reg(width int, name string) {
	if width > 1 {
		n.line("reg [%d:0] %s;", width-1, name)
		return
	}

	n.line("reg %s;", name)
}

func (n *netlist) assign(name, expr string) {
	n.line("assign %s = %s;", name, expr)
}

type connection struct {
	pin  string
	expr string
}

func (n *netlist) instance(module, name string, conns []connection) {
	width := 0
	for _, c := range conns {
		if len(c.pin) > width {
			width = len(c.pin)
		}
	}

	n.line("%s %s (", module, name)
	for i, c := range conns {
		sep := ","
		if i == len(conns)-1 {
			sep = ""
		}

		n.line("    .%-*s (%s)%s", width, c.pin, c.expr, sep)
	}
	n.line(");")
}

func slice(bus string, hi, lo int) string {
	if hi == lo {
		return fmt.Sprintf("%s[%d]", bus, hi)
	}

	return fmt.Sprintf("%s[%d:%d]", bus, hi, lo)
}

func concat(parts []string) string {
	if len(parts) == 1 {
		return parts[0]
	}

	return "{" + strings.Join(parts, ", ") + "}"
}

// fitBus zero-extends or truncates a bus to another width.
func fitBus(bus string, from, to int) string {
	switch {
	case from == to:
		return bus
	case from < to:
		return fmt.Sprintf("{{%d{1'b0}}, %s}", to-from, bus)
	default:
		return slice(bus, to-1, 0)
	}
}

func literal(width, value int) string {
	return fmt.Sprintf("%d'd%d", width, value)
}

func invert(expr string) string {
	if isIdentifier(expr) {
		return "~" + expr
	}

	return "~(" + expr + ")"
}

func isIdentifier(expr string) bool {
	for _, r := range expr {
		if !(r == '_' || r == '[' || r == ']' || r == ':' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9')) {
			return false
		}
	}

	return expr != ""
}
