package ram

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func portNames(ports []Port) []string {
	names := make([]string, len(ports))
	for i, p := range ports {
		names[i] = p.Name
	}

	return names
}

var _ = Describe("Ports", func() {
	It("should list single-port pins", func() {
		r, err := MakeBuilder().
			WithPrefix("buf").WithWidth(32).WithDepth(1024).
			Build()
		Expect(err).NotTo(HaveOccurred())

		ports := r.Ports()

		Expect(portNames(ports)).To(Equal(
			[]string{"clk", "cs", "we", "addr", "din", "dout"}))
		Expect(ports[3].Width).To(Equal(10))
		Expect(ports[5].Output).To(BeTrue())
		Expect(ports[0].Shared).To(BeTrue())
	})

	It("should list two-port pins with mask, reset, and ECC", func() {
		r, err := MakeBuilder().
			WithPrefix("q").WithWidth(16).WithDepth(64).
			WithTopology(TwoPort).
			WithClock("wclk_i").WithReadClock("rclk_i").
			WithPipeline(true).
			WithBitWriteEnable(true).
			Build()
		Expect(err).NotTo(HaveOccurred())

		Expect(portNames(r.Ports())).To(Equal([]string{
			"wclk", "rclk", "rst_n", "we", "waddr", "din", "bwe",
			"re", "raddr", "dout",
		}))
		Expect(r.ClockFor(PortRClk)).To(Equal("rclk_i"))
		Expect(r.ClockFor(PortWClk)).To(Equal("wclk_i"))
	})

	It("should add ECC status outputs", func() {
		r, err := MakeBuilder().
			WithPrefix("q").WithWidth(16).WithDepth(64).
			WithECC(true).
			Build()
		Expect(err).NotTo(HaveOccurred())

		names := portNames(r.Ports())
		Expect(names[len(names)-2:]).To(Equal([]string{"ecc_sbe", "ecc_dbe"}))
	})

	It("should guess the reset polarity from its name", func() {
		Expect(Request{Reset: "rst_n"}.ResetActiveLow()).To(BeTrue())
		Expect(Request{Reset: "reset_b"}.ResetActiveLow()).To(BeTrue())
		Expect(Request{Reset: "rst"}.ResetActiveLow()).To(BeFalse())
		Expect(Request{Reset: "RSTN"}.ResetActiveLow()).To(BeTrue())
		Expect(Request{Reset: "sys_resetn"}.ResetActiveLow()).To(BeTrue())
		Expect(Request{Reset: "sys_reset_in"}.ResetActiveLow()).To(BeFalse())
		Expect(Request{Reset: "por_on"}.ResetActiveLow()).To(BeFalse())
	})
})
