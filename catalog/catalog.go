// Package catalog models the physical memory macros that a vendor offers for
// a technology.
package catalog

import (
	"encoding/json"
	"sort"

	"github.com/pkg/errors"
)

// Wildcard is the memory type of entries that serve every memory type.
const Wildcard = "*"

var (
	// ErrNotFound is returned when a catalog directory or file is absent.
	ErrNotFound = errors.New("memory catalog not found")

	// ErrMalformed is returned when a catalog file cannot be parsed.
	ErrMalformed = errors.New("malformed memory catalog")

	// ErrPortMapping is returned when a macro has no port mapping.
	ErrPortMapping = errors.New("missing port mapping")
)

// A Macro is a single fixed-shape physical memory.
type Macro struct {
	Name  string
	Depth int
	Width int
	Type  string
}

// A Catalog holds all the macros of one vendor. It is read-only once built.
type Catalog struct {
	vendor     string
	technology string
	dir        string

	// depth -> width -> type -> names in preference order
	entries map[int]map[int]map[string][]string
	byName  map[string]Macro
	ports   map[string]PortMap
	labels  map[string]json.RawMessage
}

// Vendor returns the vendor name.
func (c *Catalog) Vendor() string {
	return c.vendor
}

// Technology returns the technology the catalog was loaded for.
func (c *Catalog) Technology() string {
	return c.technology
}

// Dir returns the directory the catalog was loaded from, if any.
func (c *Catalog) Dir() string {
	return c.dir
}

// Labels returns the non-numeric top level entries of the depth table.
func (c *Catalog) Labels() map[string]json.RawMessage {
	return c.labels
}

func typeMatches(entryType, typ string) bool {
	return entryType == typ || entryType == Wildcard
}

// Depths returns the depths, in ascending order, that have at least one
// macro of the given type.
func (c *Catalog) Depths(typ string) []int {
	var depths []int

	for depth, widths := range c.entries {
		if c.hasType(widths, typ) {
			depths = append(depths, depth)
		}
	}

	sort.Ints(depths)

	return depths
}

func (c *Catalog) hasType(widths map[int]map[string][]string, typ string) bool {
	for _, types := range widths {
		for t := range types {
			if typeMatches(t, typ) {
				return true
			}
		}
	}

	return false
}

// Widths returns the widths, in ascending order, offered at a depth for the
// given type.
func (c *Catalog) Widths(depth int, typ string) []int {
	var widths []int

	for width, types := range c.entries[depth] {
		for t := range types {
			if typeMatches(t, typ) {
				widths = append(widths, width)
				break
			}
		}
	}

	sort.Ints(widths)

	return widths
}

// Macro returns the preferred macro for a shape and type. Typed entries win
// over wildcard entries.
func (c *Catalog) Macro(depth, width int, typ string) (string, bool) {
	types := c.entries[depth][width]

	if names := types[typ]; len(names) > 0 {
		return names[0], true
	}

	if names := types[Wildcard]; len(names) > 0 {
		return names[0], true
	}

	return "", false
}

// Lookup finds a macro by name.
func (c *Catalog) Lookup(name string) (Macro, bool) {
	m, ok := c.byName[name]
	return m, ok
}

// Ports returns the port mapping of a macro. A mapping keyed by the macro
// name wins over the mapping of its memory type.
func (c *Catalog) Ports(macro, typ string) (PortMap, error) {
	if p, ok := c.ports[macro]; ok {
		return p, nil
	}

	if m, ok := c.byName[macro]; ok && m.Type != Wildcard {
		if p, ok := c.ports[m.Type]; ok {
			return p, nil
		}
	}

	if p, ok := c.ports[typ]; ok {
		return p, nil
	}

	return PortMap{}, errors.Wrapf(ErrPortMapping,
		"macro %s (type %s) of vendor %s", macro, typ, c.vendor)
}

// Types returns the memory types that have macros, excluding the wildcard.
func (c *Catalog) Types() []string {
	seen := make(map[string]bool)
	for _, widths := range c.entries {
		for _, types := range widths {
			for t := range types {
				if t != Wildcard {
					seen[t] = true
				}
			}
		}
	}

	types := make([]string, 0, len(seen))
	for t := range seen {
		types = append(types, t)
	}

	sort.Strings(types)

	return types
}

// NumMacros returns the number of distinct macro names.
func (c *Catalog) NumMacros() int {
	return len(c.byName)
}

func (c *Catalog) checkPorts() error {
	names := make([]string, 0, len(c.byName))
	for name := range c.byName {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		m := c.byName[name]
		if m.Type == Wildcard {
			continue
		}

		if _, err := c.Ports(name, m.Type); err != nil {
			return err
		}
	}

	for key, p := range c.ports {
		for _, pins := range []map[string]Role{p.Inputs, p.Outputs} {
			for pin, role := range pins {
				if !role.Valid() {
					return errors.Wrapf(ErrMalformed,
						"pin %s of %s has unknown role %q", pin, key, role)
				}
			}
		}
	}

	return nil
}
