package fpga_test

import (
	"errors"

	gomock "github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/ising/fpga"
)

var _ = Describe("Session", func() {
	var (
		mockCtrl *gomock.Controller
		platform *MockPlatform
		builder  fpga.SessionBuilder
		loaded   fpga.ImageInfo
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		platform = NewMockPlatform(mockCtrl)
		builder = fpga.MakeSessionBuilder().
			WithPlatform(platform).
			WithSlot(2).
			WithLogger(quietLogger())
		loaded = fpga.ImageInfo{
			Status:  fpga.StatusLoaded,
			ImageID: fpga.DefaultImageID,
		}
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should init, check the image and attach", func() {
		gomock.InOrder(
			platform.EXPECT().Init().Return(nil),
			platform.EXPECT().DescribeImage(2).Return(loaded, nil),
			platform.EXPECT().
				Attach(2, fpga.AppPF, fpga.AppPFBar0).
				Return(fpga.Handle(5), nil),
		)

		s, err := builder.Open()

		Expect(err).NotTo(HaveOccurred())
		Expect(s.Slot()).To(Equal(2))
		Expect(s.Handle()).To(Equal(fpga.Handle(5)))
	})

	It("should report a library init failure", func() {
		platform.EXPECT().Init().Return(errors.New("no driver"))

		_, err := builder.Open()

		Expect(errors.Is(err, fpga.ErrLibraryInit)).To(BeTrue())
	})

	It("should report an attach failure", func() {
		platform.EXPECT().Init().Return(nil)
		platform.EXPECT().DescribeImage(2).Return(loaded, nil)
		platform.EXPECT().
			Attach(2, fpga.AppPF, fpga.AppPFBar0).
			Return(fpga.InvalidHandle, errors.New("busy"))

		_, err := builder.Open()

		Expect(errors.Is(err, fpga.ErrAttach)).To(BeTrue())
	})

	Context("when attached", func() {
		var s *fpga.Session

		BeforeEach(func() {
			platform.EXPECT().Init().Return(nil)
			platform.EXPECT().DescribeImage(2).Return(loaded, nil)
			platform.EXPECT().
				Attach(2, fpga.AppPF, fpga.AppPFBar0).
				Return(fpga.Handle(1), nil)

			var err error
			s, err = builder.Open()
			Expect(err).NotTo(HaveOccurred())
		})

		It("should forward pokes and peeks to the handle", func() {
			platform.EXPECT().
				Poke(fpga.Handle(1), uint64(0x500), uint32(1)).
				Return(nil)
			platform.EXPECT().
				Peek(fpga.Handle(1), uint64(0x1000)).
				Return(uint32(0x8000), nil)

			Expect(s.Poke(0x500, 1)).To(Succeed())

			v, err := s.Peek(0x1000)
			Expect(err).NotTo(HaveOccurred())
			Expect(v).To(Equal(uint32(0x8000)))
		})

		It("should wrap register failures", func() {
			platform.EXPECT().
				Poke(fpga.Handle(1), uint64(0x600), uint32(7)).
				Return(errors.New("bus error"))

			err := s.Poke(0x600, 7)

			Expect(errors.Is(err, fpga.ErrRegisterIO)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("CTR_CUTOFF"))
		})

		It("should write and read back", func() {
			gomock.InOrder(
				platform.EXPECT().
					Poke(fpga.Handle(1), uint64(0x01002000), uint32(1)).
					Return(nil),
				platform.EXPECT().
					Peek(fpga.Handle(1), uint64(0x01002000)).
					Return(uint32(1), nil),
			)

			v, err := s.WriteVerify(0x01002000, 1)

			Expect(err).NotTo(HaveOccurred())
			Expect(v).To(Equal(uint32(1)))
		})

		It("should detach exactly once", func() {
			platform.EXPECT().Detach(fpga.Handle(1)).Return(nil).Times(1)

			Expect(s.Close()).To(Succeed())
			Expect(s.Close()).To(Succeed())
			Expect(s.Handle()).To(Equal(fpga.InvalidHandle))
		})

		It("should refuse register access after close", func() {
			platform.EXPECT().Detach(fpga.Handle(1)).Return(nil)
			Expect(s.Close()).To(Succeed())

			Expect(s.Poke(0x500, 0)).To(MatchError(fpga.ErrSessionClosed))
			_, err := s.Peek(0x500)
			Expect(err).To(MatchError(fpga.ErrSessionClosed))
		})

		It("should report a detach failure", func() {
			platform.EXPECT().Detach(fpga.Handle(1)).Return(errors.New("gone"))

			Expect(s.Close()).NotTo(Succeed())
		})
	})
})

var _ = Describe("WithSession", func() {
	var (
		mockCtrl *gomock.Controller
		platform *MockPlatform
		builder  fpga.SessionBuilder
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		platform = NewMockPlatform(mockCtrl)
		builder = fpga.MakeSessionBuilder().
			WithPlatform(platform).
			WithLogger(quietLogger())

		platform.EXPECT().Init().Return(nil)
		platform.EXPECT().DescribeImage(0).Return(fpga.ImageInfo{
			Status:  fpga.StatusLoaded,
			ImageID: fpga.DefaultImageID,
		}, nil)
		platform.EXPECT().Attach(0, 0, 0).Return(fpga.Handle(0), nil)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should close after a failing body", func() {
		platform.EXPECT().Detach(fpga.Handle(0)).Return(nil)
		bodyErr := errors.New("body failed")

		err := fpga.WithSession(builder, func(*fpga.Session) error {
			return bodyErr
		})

		Expect(err).To(MatchError(bodyErr))
	})

	It("should not let a detach failure change the result", func() {
		platform.EXPECT().Detach(fpga.Handle(0)).Return(errors.New("gone"))

		err := fpga.WithSession(builder, func(*fpga.Session) error {
			return nil
		})

		Expect(err).NotTo(HaveOccurred())
	})

	It("should write a register and return the read back", func() {
		gomock.InOrder(
			platform.EXPECT().
				Poke(fpga.Handle(0), uint64(0x600), uint32(0x40000000)).
				Return(nil),
			platform.EXPECT().
				Peek(fpga.Handle(0), uint64(0x600)).
				Return(uint32(0x40000000), nil),
			platform.EXPECT().Detach(fpga.Handle(0)).Return(nil),
		)

		v, err := fpga.WriteRegister(builder, 0x600, 0x40000000)

		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(Equal(uint32(0x40000000)))
	})

	It("should read a register", func() {
		gomock.InOrder(
			platform.EXPECT().
				Peek(fpga.Handle(0), uint64(0x1000)).
				Return(uint32(1), nil),
			platform.EXPECT().Detach(fpga.Handle(0)).Return(nil),
		)

		v, err := fpga.ReadRegister(builder, 0x1000)

		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(Equal(uint32(1)))
	})
})
