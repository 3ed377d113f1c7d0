package catalog

import (
	"errors"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Load", func() {
	It("should load a vendor release directory", func() {
		c, err := Load("testdata", "n28", "tsmc")

		Expect(err).NotTo(HaveOccurred())
		Expect(c.Vendor()).To(Equal("tsmc"))
		Expect(c.Technology()).To(Equal("n28"))
		Expect(c.Depths("sp")).To(Equal([]int{512, 1024, 4096}))
		Expect(c.Widths(4096, "sp")).To(Equal([]int{8, 39}))

		name, _ := c.Macro(512, 64, "sp")
		Expect(name).To(Equal("ts1n28_sp_512x64_hd"))
	})

	It("should keep labels", func() {
		c, err := Load("testdata", "n28", "tsmc")

		Expect(err).NotTo(HaveOccurred())
		Expect(c.Labels()).To(HaveKey("release"))
		Expect(c.Labels()).To(HaveKey("1024/note"))
	})

	It("should fall back to the vendor-agnostic default path", func() {
		c, err := Load("testdata", "n7", "acme")

		Expect(err).NotTo(HaveOccurred())
		Expect(c.Dir()).To(Equal(filepath.Join("testdata", "default", "acme")))
		Expect(c.Depths("sp")).To(Equal([]int{256}))

		ports, err := c.Ports("acme_sp_256x32", "sp")
		Expect(err).NotTo(HaveOccurred())
		Expect(ports.Outputs).To(HaveKeyWithValue("DO", RoleDout))
	})

	It("should report a missing catalog", func() {
		_, err := Load("testdata", "n3", "nobody")

		Expect(errors.Is(err, ErrNotFound)).To(BeTrue())
	})

	It("should report a missing mapping file", func() {
		dir := GinkgoT().TempDir()
		Expect(os.WriteFile(filepath.Join(dir, DepthTableFile),
			[]byte(`{"64": {"8": "m"}}`), 0o644)).To(Succeed())

		_, err := LoadDir(dir, "x")

		Expect(errors.Is(err, ErrNotFound)).To(BeTrue())
	})

	It("should reject malformed JSON", func() {
		dir := GinkgoT().TempDir()
		Expect(os.WriteFile(filepath.Join(dir, DepthTableFile),
			[]byte(`{"64": `), 0o644)).To(Succeed())
		Expect(os.WriteFile(filepath.Join(dir, PortTableFile),
			[]byte(`{}`), 0o644)).To(Succeed())

		_, err := LoadDir(dir, "x")

		Expect(errors.Is(err, ErrMalformed)).To(BeTrue())
	})
})

var _ = Describe("Schema", func() {
	It("should accept all entry forms", func() {
		doc := []byte(`{
			"v": "1",
			"64": {"8": "a", "16": ["b", "c"], "32": {"sp": "d", "tp": ["e"]}}
		}`)

		Expect(ValidateDepthTable(doc)).To(Succeed())
	})

	It("should reject numeric width entries", func() {
		Expect(ValidateDepthTable([]byte(`{"64": {"8": 3}}`))).NotTo(Succeed())
	})

	It("should reject unknown roles", func() {
		doc := []byte(`{"sp": {"input": {"CLK": "clock"}}}`)

		err := ValidatePortTable(doc)
		Expect(errors.Is(err, ErrMalformed)).To(BeTrue())
	})
})
