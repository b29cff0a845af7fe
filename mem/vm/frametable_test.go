package vm

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("FrameTable", func() {
	var (
		ft *FrameTable
	)

	BeforeEach(func() {
		ft = NewFrameTable(3)
	})

	It("should start with all frames free", func() {
		Expect(ft.Len()).To(Equal(3))
		Expect(ft.NumOccupied()).To(Equal(0))
		Expect(ft.IsFull()).To(BeFalse())

		index, ok := ft.FirstFree()
		Expect(ok).To(BeTrue())
		Expect(index).To(Equal(FrameIndex(0)))
	})

	It("should return the lowest free frame", func() {
		ft.Occupy(0, 10)
		ft.Occupy(2, 12)

		index, ok := ft.FirstFree()

		Expect(ok).To(BeTrue())
		Expect(index).To(Equal(FrameIndex(1)))
	})

	It("should report no free frame when full", func() {
		ft.Occupy(0, 10)
		ft.Occupy(1, 11)
		ft.Occupy(2, 12)

		index, ok := ft.FirstFree()

		Expect(ok).To(BeFalse())
		Expect(index).To(Equal(NoFrame))
		Expect(ft.IsFull()).To(BeTrue())
	})

	It("should tell the occupant", func() {
		ft.Occupy(1, 42)

		vpn, ok := ft.Occupant(1)
		Expect(ok).To(BeTrue())
		Expect(vpn).To(Equal(VPN(42)))

		_, ok = ft.Occupant(0)
		Expect(ok).To(BeFalse())

		_, ok = ft.Occupant(7)
		Expect(ok).To(BeFalse())
	})

	It("should not double count when replacing an occupant", func() {
		ft.Occupy(1, 42)
		ft.Occupy(1, 43)

		Expect(ft.NumOccupied()).To(Equal(1))
		vpn, _ := ft.Occupant(1)
		Expect(vpn).To(Equal(VPN(43)))
	})

	It("should free frames", func() {
		ft.Occupy(1, 42)
		ft.Free(1)
		ft.Free(1)

		Expect(ft.NumOccupied()).To(Equal(0))
		_, ok := ft.Occupant(1)
		Expect(ok).To(BeFalse())
	})

	It("should list the slots in order", func() {
		ft.Occupy(2, 7)

		Expect(ft.Slots()).To(Equal([]FrameSlot{
			{Index: 0},
			{Index: 1},
			{Index: 2, Occupied: true, VPN: 7},
		}))
	})

	It("should panic when accessing a frame out of range", func() {
		Expect(func() { ft.Occupy(3, 1) }).To(Panic())
		Expect(func() { ft.Free(-1) }).To(Panic())
	})

	It("should allow an empty table", func() {
		empty := NewFrameTable(0)

		_, ok := empty.FirstFree()

		Expect(ok).To(BeFalse())
		Expect(empty.IsFull()).To(BeTrue())
	})
})
