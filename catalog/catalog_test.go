package catalog

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var spPorts = PortMap{
	Inputs: map[string]Role{
		"CLK": RoleClk, "CEB": RoleCEN, "WEB": RoleWEN,
		"A": RoleAddr, "D": RoleDin,
	},
	Outputs: map[string]Role{"Q": RoleDout},
}

var _ = Describe("Catalog", func() {
	var c *Catalog

	BeforeEach(func() {
		var err error
		c, err = MakeBuilder().
			WithVendor("acme").
			WithMacro(1024, 32, "sp", "m1024x32a", "m1024x32b").
			WithMacro(1024, 16, "sp", "m1024x16").
			WithMacro(2048, 8, Wildcard, "m2048x8").
			WithMacro(512, 64, "tp", "t512x64").
			WithPorts("sp", spPorts).
			WithPorts("tp", spPorts).
			WithPorts("m2048x8", spPorts).
			Build()
		Expect(err).NotTo(HaveOccurred())
	})

	It("should list depths of a type in ascending order", func() {
		Expect(c.Depths("sp")).To(Equal([]int{1024, 2048}))
		Expect(c.Depths("tp")).To(Equal([]int{512, 2048}))
		Expect(c.Depths("spbw")).To(Equal([]int{2048}))
	})

	It("should list widths of a depth", func() {
		Expect(c.Widths(1024, "sp")).To(Equal([]int{16, 32}))
		Expect(c.Widths(1024, "tp")).To(BeEmpty())
	})

	It("should return the preferred macro", func() {
		name, ok := c.Macro(1024, 32, "sp")
		Expect(ok).To(BeTrue())
		Expect(name).To(Equal("m1024x32a"))

		name, ok = c.Macro(2048, 8, "tp")
		Expect(ok).To(BeTrue())
		Expect(name).To(Equal("m2048x8"))

		_, ok = c.Macro(1024, 8, "sp")
		Expect(ok).To(BeFalse())
	})

	It("should look up macros by name", func() {
		m, ok := c.Lookup("m1024x32b")
		Expect(ok).To(BeTrue())
		Expect(m).To(Equal(Macro{Name: "m1024x32b", Depth: 1024, Width: 32, Type: "sp"}))
	})

	It("should list the memory types", func() {
		Expect(c.Types()).To(Equal([]string{"sp", "tp"}))
		Expect(c.NumMacros()).To(Equal(5))
	})

	It("should fail when a typed macro has no port mapping", func() {
		_, err := MakeBuilder().
			WithVendor("acme").
			WithMacro(64, 8, "spbw", "m64x8").
			Build()

		Expect(errors.Is(err, ErrPortMapping)).To(BeTrue())
	})

	It("should fail when a pin has an unknown role", func() {
		_, err := MakeBuilder().
			WithMacro(64, 8, "sp", "m64x8").
			WithPorts("sp", PortMap{Inputs: map[string]Role{"X": "bogus"}}).
			Build()

		Expect(errors.Is(err, ErrMalformed)).To(BeTrue())
	})

	It("should fail when a macro name has two shapes", func() {
		_, err := MakeBuilder().
			WithMacro(64, 8, Wildcard, "m").
			WithMacro(64, 16, Wildcard, "m").
			Build()

		Expect(errors.Is(err, ErrMalformed)).To(BeTrue())
	})
})

var _ = Describe("PortMap", func() {
	It("should find roles regardless of polarity", func() {
		Expect(spPorts.HasRole(RoleCE)).To(BeTrue())
		Expect(spPorts.HasRole(RoleBWE)).To(BeFalse())
	})

	It("should sort pins with inputs first", func() {
		pins := spPorts.Pins()
		Expect(pins[0].Name).To(Equal("A"))
		Expect(pins[len(pins)-1]).To(Equal(Pin{Name: "Q", Role: RoleDout, Output: true}))
	})
})
