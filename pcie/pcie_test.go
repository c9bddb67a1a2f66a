package pcie_test

import (
	"encoding/binary"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/ising/fpga"
	"github.com/sarchlab/ising/pcie"
)

const bdf = "0000:00:1d.0"

var _ = Describe("Platform", func() {
	var (
		root   string
		devDir string
		p      *pcie.Platform
	)

	writeFile := func(path string, data []byte) {
		Expect(os.WriteFile(path, data, 0o644)).To(Succeed())
	}

	BeforeEach(func() {
		root = GinkgoT().TempDir()
		devDir = filepath.Join(root, "bus", "pci", "devices", bdf)
		Expect(os.MkdirAll(devDir, 0o755)).To(Succeed())

		writeFile(filepath.Join(devDir, "vendor"), []byte("0x1d0f\n"))
		writeFile(filepath.Join(devDir, "device"), []byte("0xf000\n"))
		writeFile(filepath.Join(devDir, "resource0"), make([]byte, 4096))
		writeFile(filepath.Join(root, "bus", "pci", "rescan"), nil)

		p = pcie.NewPlatform(root, map[int]string{0: bdf, 1: "0000:00:1b.0"})
	})

	It("should fail init without a PCI tree", func() {
		p = pcie.NewPlatform(filepath.Join(root, "missing"), nil)

		Expect(p.Init()).NotTo(Succeed())
	})

	It("should describe the loaded image", func() {
		Expect(p.Init()).To(Succeed())

		info, err := p.DescribeImage(0)

		Expect(err).NotTo(HaveOccurred())
		Expect(info.Status).To(Equal(fpga.StatusLoaded))
		Expect(info.ImageID).To(Equal(fpga.DefaultImageID))
	})

	It("should report a slot without a device as not programmed", func() {
		Expect(p.Init()).To(Succeed())

		info, err := p.DescribeImage(1)

		Expect(err).NotTo(HaveOccurred())
		Expect(info.Status).To(Equal(fpga.StatusNotProgrammed))
	})

	It("should refuse unknown slots", func() {
		Expect(p.Init()).To(Succeed())

		_, err := p.DescribeImage(5)
		Expect(err).To(HaveOccurred())

		_, err = p.Attach(5, fpga.AppPF, fpga.AppPFBar0)
		Expect(err).To(HaveOccurred())
	})

	It("should request a bus rescan", func() {
		Expect(p.Rescan(0)).To(Succeed())

		data, err := os.ReadFile(filepath.Join(root, "bus", "pci", "rescan"))
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(Equal("1"))
	})

	Context("when attached", func() {
		var h fpga.Handle

		BeforeEach(func() {
			Expect(p.Init()).To(Succeed())

			var err error
			h, err = p.Attach(0, fpga.AppPF, fpga.AppPFBar0)
			Expect(err).NotTo(HaveOccurred())
		})

		It("should store registers into the BAR", func() {
			Expect(p.Poke(h, 0x500, 0xdeadbeef)).To(Succeed())

			v, err := p.Peek(h, 0x500)
			Expect(err).NotTo(HaveOccurred())
			Expect(v).To(Equal(uint32(0xdeadbeef)))

			Expect(p.Detach(h)).To(Succeed())

			data, err := os.ReadFile(filepath.Join(devDir, "resource0"))
			Expect(err).NotTo(HaveOccurred())
			Expect(binary.NativeEndian.Uint32(data[0x500:])).
				To(Equal(uint32(0xdeadbeef)))
		})

		It("should refuse addresses outside the BAR", func() {
			Expect(p.Poke(h, 4096, 1)).NotTo(Succeed())
			Expect(p.Poke(h, 4094, 1)).NotTo(Succeed())

			_, err := p.Peek(h, 0x1_0000_0000)
			Expect(err).To(HaveOccurred())
		})

		It("should refuse addresses that wrap around", func() {
			_, err := p.Peek(h, 0xffff_ffff_ffff_fffc)
			Expect(err).To(HaveOccurred())

			Expect(p.Poke(h, 0xffff_ffff_ffff_fffc, 1)).NotTo(Succeed())
		})

		It("should refuse unaligned addresses", func() {
			Expect(p.Poke(h, 0x502, 1)).NotTo(Succeed())
		})

		It("should forget the handle after detach", func() {
			Expect(p.Detach(h)).To(Succeed())

			Expect(p.Detach(h)).NotTo(Succeed())
			_, err := p.Peek(h, 0)
			Expect(err).To(HaveOccurred())
		})
	})

	It("should fail to attach a missing BAR", func() {
		Expect(p.Init()).To(Succeed())

		_, err := p.Attach(0, fpga.AppPF, 4)

		Expect(err).To(HaveOccurred())
	})
})
