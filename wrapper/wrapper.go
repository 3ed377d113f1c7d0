// Package wrapper assembles generated memories into module definitions and
// instantiations.
package wrapper

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/pkg/errors"

	"github.com/sarchlab/sramgen/ram"
)

//go:embed templates/*.v.tmpl
var templateFS embed.FS

var templates = template.Must(
	template.New("wrapper").
		Funcs(template.FuncMap{
			"dec":   func(n int) int { return n - 1 },
			"last":  func(ports []string) int { return len(ports) - 1 },
			"zeros": func(n int) string { return fmt.Sprintf("{%d{1'b0}}", n) },
		}).
		ParseFS(templateFS, "templates/*.v.tmpl"))

// DefaultGuardPrefix starts the names of the conditional-compilation guards.
const DefaultGuardPrefix = "SRAMGEN"

// Physical is a macro-based body produced for one vendor.
type Physical struct {
	Vendor string
	Body   string
}

// A Module is a generated memory definition.
type Module struct {
	Name string
	Text string
}

// An Emitter renders module definitions.
type Emitter struct {
	guardPrefix string
}

// A Builder can build emitters.
type Builder struct {
	guardPrefix string
}

// MakeBuilder creates a builder with the default guard prefix.
func MakeBuilder() Builder {
	return Builder{guardPrefix: DefaultGuardPrefix}
}

// WithGuardPrefix sets the prefix of the guard macros.
func (b Builder) WithGuardPrefix(prefix string) Builder {
	b.guardPrefix = prefix
	return b
}

// Build creates an emitter.
func (b Builder) Build() *Emitter {
	prefix := strings.ToUpper(b.guardPrefix)
	if prefix == "" {
		prefix = DefaultGuardPrefix
	}

	return &Emitter{guardPrefix: prefix}
}

// ModuleName returns the name of the module generated for a request.
func ModuleName(r ram.Request) string {
	name := fmt.Sprintf("%s_%s_%dx%d",
		r.Prefix, r.Topology.Code(), r.Depth, r.Width)

	if r.Pipeline {
		name += "_p"
	}

	if r.BitWriteEnable {
		name += "_bw"
	}

	if r.ECC {
		name += "_ecc"
	}

	return name
}

// Guard returns the macro that selects the body of a vendor.
func (e *Emitter) Guard(vendor string) string {
	return e.guardPrefix + "_" + strings.ToUpper(vendor)
}

type moduleData struct {
	Name     string
	Summary  string
	Ports    []string
	Guard    string
	Primary  string
	Fallback string
}

// Emit renders the module of a request. The physical body, when given, is
// selected by the vendor guard with the behavioral model as fallback. Flop
// memories use the flop array, with the behavioral model under a guard.
func (e *Emitter) Emit(r ram.Request, phys *Physical) (Module, error) {
	behavioral, err := render("behavioral.v.tmpl", makeBodyData(r))
	if err != nil {
		return Module{}, err
	}

	data := moduleData{
		Name:     ModuleName(r),
		Summary:  r.String(),
		Ports:    portDecls(r),
		Fallback: indent(behavioral),
	}

	switch {
	case r.Topology.IsFlop():
		flop, err := render("flop.v.tmpl", makeBodyData(r))
		if err != nil {
			return Module{}, err
		}

		data.Guard = e.guardPrefix + "_BEHAVIORAL"
		data.Primary, data.Fallback = indent(behavioral), indent(flop)
	case phys != nil:
		data.Guard = e.Guard(phys.Vendor)
		data.Primary = indent(phys.Body)
	}

	text, err := render("module.v.tmpl", data)
	if err != nil {
		return Module{}, err
	}

	return Module{Name: data.Name, Text: text}, nil
}

func render(name string, data interface{}) (string, error) {
	var buf bytes.Buffer

	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", errors.Wrapf(err, "rendering %s", name)
	}

	return buf.String(), nil
}

func portDecls(r ram.Request) []string {
	ports := r.Ports()
	decls := make([]string, len(ports))

	for i, p := range ports {
		dir := "input "
		if p.Output {
			dir = "output"
		}

		rng := ""
		if p.Width > 1 {
			rng = fmt.Sprintf("[%d:0]", p.Width-1)
		}

		decls[i] = fmt.Sprintf("%s %-8s %s", dir, rng, p.Name)
	}

	return decls
}

func indent(body string) string {
	lines := strings.Split(strings.TrimRight(body, "\n"), "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = "    " + l
		}
	}

	return strings.Join(lines, "\n") + "\n"
}
