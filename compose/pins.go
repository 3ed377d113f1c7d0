package compose

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/sarchlab/sramgen/catalog"
	"github.com/sarchlab/sramgen/ram"
)

// pinExpr returns the signal that drives, or is driven by, one macro pin.
func (c *composer) pinExpr(
	pin catalog.Pin,
	ports catalog.PortMap,
	bank, tile int,
) (string, error) {
	switch pin.Role {
	case catalog.RoleTie0:
		return "1'b0", nil
	case catalog.RoleTie1:
		return "1'b1", nil
	}

	base := pin.Role.Base()

	if base == catalog.RoleBWE && !c.req.BitWriteEnable {
		enabled, disabled := "1'b1", "1'b0"
		if pin.Role.ActiveLow() {
			enabled = disabled
		}

		return fmt.Sprintf("{%d{%s}}", c.plan.Tiles[tile], enabled), nil
	}

	var (
		expr string
		err  error
	)

	if c.req.Topology.IsTwoPort() {
		expr, err = c.twoPortExpr(base, bank, tile)
	} else {
		expr, err = c.singlePortExpr(base, ports, bank, tile)
	}

	if err != nil {
		return "", err
	}

	if pin.Role.ActiveLow() {
		expr = invert(expr)
	}

	return expr, nil
}

func (c *composer) dataExpr(role catalog.Role, bank, tile int) (string, bool) {
	switch role {
	case catalog.RoleDin:
		return c.tileSlice(c.dinBus, tile, "1'b0"), true
	case catalog.RoleBWE:
		return c.tileSlice(ram.PortBWE, tile, "1'b0"), true
	case catalog.RoleDout:
		return c.tileOut(bank, tile), true
	}

	return "", false
}

func (c *composer) singlePortExpr(
	role catalog.Role,
	ports catalog.PortMap,
	bank, tile int,
) (string, error) {
	if expr, ok := c.dataExpr(role, bank, tile); ok {
		return expr, nil
	}

	cs := c.bankSelect(ram.PortCS, bank)

	switch role {
	case catalog.RoleClk, catalog.RoleWClk, catalog.RoleRClk:
		return ram.PortClk, nil
	case catalog.RoleCE:
		return cs, nil
	case catalog.RoleWE:
		if ports.HasRole(catalog.RoleCE) {
			return ram.PortWE, nil
		}

		return fmt.Sprintf("%s & %s", cs, ram.PortWE), nil
	case catalog.RoleWCE:
		return fmt.Sprintf("%s & %s", cs, ram.PortWE), nil
	case catalog.RoleRE, catalog.RoleRCE:
		return fmt.Sprintf("%s & ~%s", cs, ram.PortWE), nil
	case catalog.RoleAddr, catalog.RoleWAddr, catalog.RoleRAddr:
		return c.localAddr(ram.PortAddr, bank), nil
	}

	return "", errors.Wrapf(ErrUnknownRole, "%q in a single-port memory", role)
}

func (c *composer) twoPortExpr(role catalog.Role, bank, tile int) (string, error) {
	if expr, ok := c.dataExpr(role, bank, tile); ok {
		return expr, nil
	}

	we := c.bankSelect(ram.PortWE, bank)
	re := c.bankSelect(ram.PortRE, bank)

	switch role {
	case catalog.RoleClk, catalog.RoleWClk:
		return ram.PortWClk, nil
	case catalog.RoleRClk:
		return ram.PortRClk, nil
	case catalog.RoleCE:
		return fmt.Sprintf("%s | %s", we, re), nil
	case catalog.RoleWE, catalog.RoleWCE:
		return we, nil
	case catalog.RoleRE, catalog.RoleRCE:
		return re, nil
	case catalog.RoleWAddr:
		return c.localAddr(ram.PortWAddr, bank), nil
	case catalog.RoleRAddr:
		return c.localAddr(ram.PortRAddr, bank), nil
	}

	return "", errors.Wrapf(ErrUnknownRole, "%q in a two-port memory", role)
}
