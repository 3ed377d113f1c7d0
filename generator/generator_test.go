package generator

import (
	"errors"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/sarchlab/sramgen/catalog"
	"github.com/sarchlab/sramgen/fitting"
	"github.com/sarchlab/sramgen/hooking"
	"github.com/sarchlab/sramgen/ram"
	"github.com/sarchlab/sramgen/wrapper"
)

var spPorts = catalog.PortMap{
	Inputs: map[string]catalog.Role{
		"CLK": catalog.RoleClk, "CEB": catalog.RoleCEN,
		"WEB": catalog.RoleWEN, "A": catalog.RoleAddr, "D": catalog.RoleDin,
	},
	Outputs: map[string]catalog.Role{"Q": catalog.RoleDout},
}

func buildCatalog() *catalog.Catalog {
	c, err := catalog.MakeBuilder().
		WithVendor("acme").
		WithMacro(1024, 32, "sp", "sp1024x32").
		WithMacro(1024, 16, "sp", "sp1024x16").
		WithPorts("sp", spPorts).
		Build()
	Expect(err).NotTo(HaveOccurred())

	return c
}

func request(b ram.Builder) ram.Request {
	r, err := b.Build()
	Expect(err).NotTo(HaveOccurred())

	return r
}

func spRequest(width, depth int) ram.Builder {
	return ram.MakeBuilder().WithPrefix("buf").WithWidth(width).WithDepth(depth)
}

var _ = Describe("Generator", func() {
	var (
		mockCtrl  *gomock.Controller
		hook      *MockHook
		outputDir string
		positions []*hooking.HookPos
		details   []interface{}
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		hook = NewMockHook(mockCtrl)

		var err error
		outputDir, err = os.MkdirTemp("", "sramgen")
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(os.RemoveAll, outputDir)

		positions = nil
		details = nil
		hook.EXPECT().Func(gomock.Any()).
			Do(func(ctx hooking.HookCtx) {
				positions = append(positions, ctx.Pos)
				details = append(details, ctx.Detail)
			}).
			AnyTimes()
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	build := func(b Builder) *Generator {
		g := b.WithOutputDir(outputDir).Build()
		g.AcceptHook(hook)

		return g
	}

	It("should write the module of a macro memory", func() {
		g := build(MakeBuilder().WithCatalog(buildCatalog()))

		out, err := g.Generate(request(spRequest(32, 1024)))

		Expect(err).NotTo(HaveOccurred())
		Expect(out.Fallback).To(BeFalse())
		Expect(out.Vendor).To(Equal("acme"))
		Expect(out.Plan).NotTo(BeNil())
		Expect(out.Plan.Tiles).To(Equal([]int{32}))
		Expect(out.Composition).NotTo(BeNil())
		Expect(out.Module.Name).To(Equal("buf_sp_1024x32"))
		Expect(out.Path).To(Equal(filepath.Join(outputDir, "buf_sp_1024x32.v")))
		Expect(out.Instantiation).To(
			HavePrefix(`&Instance("buf_sp_1024x32", "u_buf");`))

		text, err := os.ReadFile(out.Path)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(text)).To(Equal(out.Module.Text))
		Expect(string(text)).To(ContainSubstring("`ifdef SRAMGEN_ACME"))
		Expect(string(text)).To(ContainSubstring("sp1024x32 u_b0_t0 ("))

		Expect(positions).To(Equal([]*hooking.HookPos{
			hooking.HookPosBeforeFit,
			hooking.HookPosAfterFit,
			hooking.HookPosAfterCompose,
			hooking.HookPosModuleWritten,
		}))
		Expect(details[1]).To(Equal(*out.Plan))
		Expect(details[3]).To(Equal(out))
	})

	It("should use the guard prefix of the emitter", func() {
		g := build(MakeBuilder().
			WithCatalog(buildCatalog()).
			WithEmitter(wrapper.MakeBuilder().WithGuardPrefix("chip").Build()))

		out, err := g.Generate(request(spRequest(32, 1024)))

		Expect(err).NotTo(HaveOccurred())
		Expect(out.Module.Text).To(ContainSubstring("`ifdef CHIP_ACME"))
	})

	It("should fall back to the behavioral model without a catalog", func() {
		g := build(MakeBuilder())

		out, err := g.Generate(request(spRequest(32, 1024)))

		Expect(err).NotTo(HaveOccurred())
		Expect(out.Fallback).To(BeTrue())
		Expect(out.Plan).To(BeNil())
		Expect(out.Module.Text).NotTo(ContainSubstring("`ifdef"))
		Expect(out.Path).To(BeAnExistingFile())
		Expect(positions).To(Equal([]*hooking.HookPos{
			hooking.HookPosFallback,
			hooking.HookPosModuleWritten,
		}))
	})

	It("should not fit flop memories", func() {
		g := build(MakeBuilder().WithCatalog(buildCatalog()))

		out, err := g.Generate(request(spRequest(8, 16).
			WithTopology(ram.SinglePortFlop)))

		Expect(err).NotTo(HaveOccurred())
		Expect(out.Fallback).To(BeFalse())
		Expect(out.Plan).To(BeNil())
		Expect(out.Module.Text).To(ContainSubstring("`ifdef SRAMGEN_BEHAVIORAL"))
		Expect(positions).To(Equal([]*hooking.HookPos{
			hooking.HookPosModuleWritten,
		}))
	})

	It("should fail without writing when no macro fits", func() {
		g := build(MakeBuilder().WithCatalog(buildCatalog()))

		_, err := g.Generate(request(spRequest(32, 1024).
			WithTopology(ram.TwoPort).
			WithReadClock("rclk")))

		Expect(errors.Is(err, fitting.ErrNoCandidates)).To(BeTrue())
		Expect(positions).To(Equal([]*hooking.HookPos{
			hooking.HookPosBeforeFit,
		}))

		entries, err := os.ReadDir(outputDir)
		Expect(err).NotTo(HaveOccurred())
		Expect(entries).To(BeEmpty())
	})

	It("should refuse to fit without a catalog", func() {
		g := build(MakeBuilder())

		_, err := g.Fit(request(spRequest(32, 1024)))

		Expect(errors.Is(err, ErrNoCatalog)).To(BeTrue())
		Expect(positions).To(BeEmpty())
	})

	It("should create the output directory", func() {
		nested := filepath.Join(outputDir, "rtl", "mem")
		g := MakeBuilder().WithOutputDir(nested).Build()

		out, err := g.Generate(request(spRequest(32, 1024)))

		Expect(err).NotTo(HaveOccurred())
		Expect(out.Path).To(Equal(filepath.Join(nested, "buf_sp_1024x32.v")))
		Expect(out.Path).To(BeAnExistingFile())
	})

	It("should describe the generation for the history", func() {
		g := build(MakeBuilder().WithCatalog(buildCatalog()))

		out, err := g.Generate(request(spRequest(48, 2000)))
		Expect(err).NotTo(HaveOccurred())

		entry := out.HistoryEntry()

		Expect(entry.Prefix).To(Equal("buf"))
		Expect(entry.Topology).To(Equal("sp"))
		Expect(entry.Vendor).To(Equal("acme"))
		Expect(entry.Type).To(Equal("sp"))
		Expect(entry.TileDepth).To(Equal(1024))
		Expect(entry.Iterations).To(Equal(2))
		Expect(entry.DepthResidue).To(Equal(48))
		Expect(entry.Tiles).To(Equal("16+32"))
		Expect(entry.WidthResidue).To(Equal(0))
		Expect(entry.Module).To(Equal("buf_sp_2000x48"))
		Expect(entry.Fallback).To(BeFalse())
	})
})
