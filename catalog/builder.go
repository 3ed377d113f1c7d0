package catalog

import (
	"encoding/json"

	"github.com/pkg/errors"
)

type portEntry struct {
	key   string
	ports PortMap
}

// Builder builds catalogs.
type Builder struct {
	vendor     string
	technology string
	dir        string
	macros     []Macro
	ports      []portEntry
	labels     map[string]json.RawMessage
}

// MakeBuilder creates a builder for an empty catalog.
func MakeBuilder() Builder {
	return Builder{}
}

// WithVendor sets the vendor name.
func (b Builder) WithVendor(vendor string) Builder {
	b.vendor = vendor
	return b
}

// WithTechnology sets the technology name.
func (b Builder) WithTechnology(technology string) Builder {
	b.technology = technology
	return b
}

// WithDir records where the catalog files came from.
func (b Builder) WithDir(dir string) Builder {
	b.dir = dir
	return b
}

// WithMacro adds macros for a shape and type. Names are listed in preference
// order.
func (b Builder) WithMacro(depth, width int, typ string, names ...string) Builder {
	macros := make([]Macro, 0, len(b.macros)+len(names))
	macros = append(macros, b.macros...)

	for _, n := range names {
		macros = append(macros, Macro{Name: n, Depth: depth, Width: width, Type: typ})
	}

	b.macros = macros

	return b
}

// WithPorts sets the port mapping of a memory type or of a single macro.
func (b Builder) WithPorts(key string, ports PortMap) Builder {
	entries := make([]portEntry, 0, len(b.ports)+1)
	entries = append(entries, b.ports...)
	entries = append(entries, portEntry{key: key, ports: ports})
	b.ports = entries

	return b
}

// WithLabels keeps the non-numeric entries of a depth table.
func (b Builder) WithLabels(labels map[string]json.RawMessage) Builder {
	b.labels = labels
	return b
}

// Build creates the catalog and checks that every typed macro has a port
// mapping.
func (b Builder) Build() (*Catalog, error) {
	c := &Catalog{
		vendor:     b.vendor,
		technology: b.technology,
		dir:        b.dir,
		entries:    make(map[int]map[int]map[string][]string),
		byName:     make(map[string]Macro),
		ports:      make(map[string]PortMap),
		labels:     b.labels,
	}

	if c.labels == nil {
		c.labels = make(map[string]json.RawMessage)
	}

	for _, m := range b.macros {
		if m.Depth <= 0 || m.Width <= 0 {
			return nil, errors.Wrapf(ErrMalformed,
				"macro %s has invalid shape %dx%d", m.Name, m.Depth, m.Width)
		}

		prev, ok := c.byName[m.Name]
		if ok && (prev.Depth != m.Depth || prev.Width != m.Width) {
			return nil, errors.Wrapf(ErrMalformed,
				"macro %s listed as both %dx%d and %dx%d",
				m.Name, prev.Depth, prev.Width, m.Depth, m.Width)
		}

		if !ok {
			c.byName[m.Name] = m
		}

		widths, ok := c.entries[m.Depth]
		if !ok {
			widths = make(map[int]map[string][]string)
			c.entries[m.Depth] = widths
		}

		types, ok := widths[m.Width]
		if !ok {
			types = make(map[string][]string)
			widths[m.Width] = types
		}

		types[m.Type] = append(types[m.Type], m.Name)
	}

	for _, p := range b.ports {
		c.ports[p.key] = p.ports
	}

	if err := c.checkPorts(); err != nil {
		return nil, err
	}

	return c, nil
}
