package wrapper

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/sramgen/ram"
)

func request(b ram.Builder) ram.Request {
	r, err := b.Build()
	Expect(err).NotTo(HaveOccurred())

	return r
}

func spRequest() ram.Builder {
	return ram.MakeBuilder().WithPrefix("buf").WithWidth(32).WithDepth(1024)
}

var _ = Describe("ModuleName", func() {
	It("should encode shape and features", func() {
		Expect(ModuleName(request(spRequest()))).To(Equal("buf_sp_1024x32"))
		Expect(ModuleName(request(spRequest().
			WithPipeline(true).
			WithBitWriteEnable(true)))).
			To(Equal("buf_sp_1024x32_p_bw"))
		Expect(ModuleName(request(spRequest().
			WithTopology(ram.TwoPortFlop).
			WithReadClock("clk").
			WithECC(true)))).
			To(Equal("buf_tpf_1024x32_ecc"))
	})
})

var _ = Describe("Emitter", func() {
	var e *Emitter

	BeforeEach(func() {
		e = MakeBuilder().Build()
	})

	It("should emit a behavioral module without a vendor", func() {
		m, err := e.Emit(request(spRequest()), nil)

		Expect(err).NotTo(HaveOccurred())
		Expect(m.Name).To(Equal("buf_sp_1024x32"))
		Expect(m.Text).To(ContainSubstring("module buf_sp_1024x32 ("))
		Expect(m.Text).To(ContainSubstring("input  [9:0]    addr,"))
		Expect(m.Text).To(ContainSubstring("output [31:0]   dout\n);"))
		Expect(m.Text).To(ContainSubstring("reg [31:0] mem [0:1023];"))
		Expect(m.Text).To(ContainSubstring("if (cs & we)"))
		Expect(m.Text).To(ContainSubstring("mem[addr] <= din;"))
		Expect(m.Text).To(ContainSubstring("assign dout = rdata;"))
		Expect(m.Text).NotTo(ContainSubstring("`ifdef"))
		Expect(strings.TrimSpace(m.Text)).To(HaveSuffix("endmodule"))
	})

	It("should guard the physical body", func() {
		phys := &Physical{Vendor: "tsmc", Body: "ts1n28 u_b0_t0 ();\n"}

		m, err := e.Emit(request(spRequest()), phys)

		Expect(err).NotTo(HaveOccurred())
		Expect(m.Text).To(ContainSubstring(
			"`ifdef SRAMGEN_TSMC\n    ts1n28 u_b0_t0 ();\n`else\n"))
		Expect(m.Text).To(ContainSubstring("    reg [31:0] mem [0:1023];"))
		Expect(m.Text).To(ContainSubstring("`endif"))
	})

	It("should use the configured guard prefix", func() {
		e = MakeBuilder().WithGuardPrefix("chip").Build()

		m, err := e.Emit(request(spRequest()), &Physical{Vendor: "umc", Body: "x\n"})

		Expect(err).NotTo(HaveOccurred())
		Expect(m.Text).To(ContainSubstring("`ifdef CHIP_UMC"))
	})

	It("should mask writes and register outputs", func() {
		m, err := e.Emit(request(spRequest().
			WithBitWriteEnable(true).
			WithPipeline(true)), nil)

		Expect(err).NotTo(HaveOccurred())
		Expect(m.Text).To(ContainSubstring("input           rst_n,"))
		Expect(m.Text).To(ContainSubstring(
			"mem[addr] <= (mem[addr] & ~bwe) | (din & bwe);"))
		Expect(m.Text).To(ContainSubstring(
			"always @(posedge clk or negedge rst_n) begin"))
		Expect(m.Text).To(ContainSubstring("dout_q <= {32{1'b0}};"))
		Expect(m.Text).To(ContainSubstring("assign dout = dout_q;"))
	})

	It("should emit two-port behavioral models", func() {
		m, err := e.Emit(request(spRequest().
			WithTopology(ram.TwoPort).
			WithClock("wclk").
			WithReadClock("rclk").
			WithECC(true)), nil)

		Expect(err).NotTo(HaveOccurred())
		Expect(m.Text).To(ContainSubstring("always @(posedge wclk) begin"))
		Expect(m.Text).To(ContainSubstring("mem[waddr] <= din;"))
		Expect(m.Text).To(ContainSubstring("always @(posedge rclk) begin"))
		Expect(m.Text).To(ContainSubstring("if (re)"))
		Expect(m.Text).To(ContainSubstring("rdata <= mem[raddr];"))
		Expect(m.Text).To(ContainSubstring("assign ecc_sbe = 1'b0;"))
	})

	It("should emit flop arrays", func() {
		m, err := e.Emit(request(spRequest().
			WithDepth(16).
			WithTopology(ram.SinglePortFlop)), nil)

		Expect(err).NotTo(HaveOccurred())
		Expect(m.Name).To(Equal("buf_spf_16x32"))
		Expect(m.Text).To(ContainSubstring("`ifdef SRAMGEN_BEHAVIORAL"))
		Expect(m.Text).To(ContainSubstring(
			"always @(posedge clk or negedge rst_n) begin"))
		Expect(m.Text).To(ContainSubstring("for (i = 0; i < 16; i = i + 1)"))
		Expect(m.Text).To(ContainSubstring("input           rst_n,"))
	})
})

var _ = Describe("Instantiate", func() {
	It("should connect every port", func() {
		r := request(spRequest().WithClock("core_clk"))

		text := Instantiate(r, "buf_sp_1024x32")

		Expect(text).To(Equal(
			"&Instance(\"buf_sp_1024x32\", \"u_buf\");\n" +
				"&Connect(.clk(core_clk));\n" +
				"&Connect(.cs(buf_cs));\n" +
				"&Connect(.we(buf_we));\n" +
				"&Connect(.addr(buf_addr));\n" +
				"&Connect(.din(buf_din));\n" +
				"&Connect(.dout(buf_dout));\n"))
	})

	It("should replicate per loop index", func() {
		r := request(spRequest().WithLoop(ram.LoopSpec{Count: 2}))

		text := Instantiate(r, "buf_sp_1024x32")

		Expect(text).To(ContainSubstring("&Instance(\"buf_sp_1024x32\", \"u_buf_0\");"))
		Expect(text).To(ContainSubstring("&Instance(\"buf_sp_1024x32\", \"u_buf_1\");"))
		Expect(text).To(ContainSubstring("&Connect(.din(buf_din_1));"))
		Expect(strings.Count(text, "&Connect(.clk(clk));")).To(Equal(2))
	})

	It("should replicate per loop name", func() {
		r := request(spRequest().
			WithTopology(ram.TwoPort).
			WithClock("wc").
			WithReadClock("rc").
			WithPipeline(true).
			WithLoop(ram.LoopSpec{Names: []string{"even", "odd"}}))

		text := Instantiate(r, "m")

		Expect(text).To(ContainSubstring("&Instance(\"m\", \"u_buf_odd\");"))
		Expect(text).To(ContainSubstring("&Connect(.raddr(buf_raddr_odd));"))
		Expect(text).To(ContainSubstring("&Connect(.rclk(rc));"))
		Expect(text).To(ContainSubstring("&Connect(.wclk(wc));"))
		Expect(text).To(ContainSubstring("&Connect(.rst_n(rst_n));"))
	})
})
