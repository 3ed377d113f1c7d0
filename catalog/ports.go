package catalog

import (
	"sort"
	"strings"
)

// A Role tells which logical signal drives, or is driven by, a physical
// macro pin.
type Role string

// Pin roles. Roles ending in _n are active low.
const (
	RoleClk   Role = "clk"
	RoleWClk  Role = "wclk"
	RoleRClk  Role = "rclk"
	RoleCE    Role = "ce"
	RoleCEN   Role = "ce_n"
	RoleWE    Role = "we"
	RoleWEN   Role = "we_n"
	RoleRE    Role = "re"
	RoleREN   Role = "re_n"
	RoleWCE   Role = "wce"
	RoleWCEN  Role = "wce_n"
	RoleRCE   Role = "rce"
	RoleRCEN  Role = "rce_n"
	RoleAddr  Role = "addr"
	RoleWAddr Role = "waddr"
	RoleRAddr Role = "raddr"
	RoleDin   Role = "din"
	RoleBWE   Role = "bwe"
	RoleBWEN  Role = "bwe_n"
	RoleDout  Role = "dout"
	RoleTie0  Role = "0"
	RoleTie1  Role = "1"
)

var knownRoles = map[Role]bool{
	RoleClk: true, RoleWClk: true, RoleRClk: true,
	RoleCE: true, RoleCEN: true, RoleWE: true, RoleWEN: true,
	RoleRE: true, RoleREN: true, RoleWCE: true, RoleWCEN: true,
	RoleRCE: true, RoleRCEN: true,
	RoleAddr: true, RoleWAddr: true, RoleRAddr: true,
	RoleDin: true, RoleBWE: true, RoleBWEN: true, RoleDout: true,
	RoleTie0: true, RoleTie1: true,
}

// Valid returns true if the role is known.
func (r Role) Valid() bool {
	return knownRoles[r]
}

// ActiveLow returns true if the pin asserts on a logic zero.
func (r Role) ActiveLow() bool {
	return strings.HasSuffix(string(r), "_n")
}

// Base returns the role without its polarity suffix.
func (r Role) Base() Role {
	return Role(strings.TrimSuffix(string(r), "_n"))
}

// A PortMap maps the physical pin names of a macro to their roles.
type PortMap struct {
	Inputs  map[string]Role `json:"input"`
	Outputs map[string]Role `json:"output"`
}

// HasRole returns true if any pin of the macro plays one of the given roles,
// in either polarity.
func (p PortMap) HasRole(roles ...Role) bool {
	for _, pins := range []map[string]Role{p.Inputs, p.Outputs} {
		for _, r := range pins {
			for _, want := range roles {
				if r.Base() == want.Base() {
					return true
				}
			}
		}
	}

	return false
}

// Pin is a physical pin together with its role.
type Pin struct {
	Name   string
	Role   Role
	Output bool
}

// Pins returns all pins sorted with inputs first, then by name.
func (p PortMap) Pins() []Pin {
	pins := make([]Pin, 0, len(p.Inputs)+len(p.Outputs))
	for name, role := range p.Inputs {
		pins = append(pins, Pin{Name: name, Role: role})
	}

	for name, role := range p.Outputs {
		pins = append(pins, Pin{Name: name, Role: role, Output: true})
	}

	sort.Slice(pins, func(i, j int) bool {
		if pins[i].Output != pins[j].Output {
			return !pins[i].Output
		}

		return pins[i].Name < pins[j].Name
	})

	return pins
}
