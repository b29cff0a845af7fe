package replacement

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/vmsim/mem/vm"
)

var _ = Describe("FIFO", func() {
	var (
		p *FIFO
	)

	BeforeEach(func() {
		p = NewFIFO()
	})

	It("should not find a victim when nothing is tracked", func() {
		victim, ok := p.SelectVictim()

		Expect(ok).To(BeFalse())
		Expect(victim).To(Equal(vm.NoFrame))
	})

	It("should evict the frame loaded first", func() {
		p.OnPageLoad(2)
		p.OnPageLoad(0)
		p.OnPageLoad(1)

		victim, ok := p.SelectVictim()

		Expect(ok).To(BeTrue())
		Expect(victim).To(Equal(vm.FrameIndex(2)))
	})

	It("should ignore accesses", func() {
		p.OnPageLoad(0)
		p.OnPageLoad(1)
		p.OnPageAccess(0)
		p.OnPageAccess(0)

		victim, _ := p.SelectVictim()

		Expect(victim).To(Equal(vm.FrameIndex(0)))
	})

	It("should not remove the victim by selecting it", func() {
		p.OnPageLoad(0)
		p.OnPageLoad(1)

		p.SelectVictim()

		Expect(p.TrackedFrames()).To(Equal([]vm.FrameIndex{0, 1}))
	})

	It("should move a reloaded frame to the tail", func() {
		p.OnPageLoad(0)
		p.OnPageLoad(1)

		p.OnFrameFree(0)
		p.OnPageLoad(0)

		victim, _ := p.SelectVictim()
		Expect(victim).To(Equal(vm.FrameIndex(1)))

		p.OnFrameFree(1)
		p.OnPageLoad(1)

		victim, _ = p.SelectVictim()
		Expect(victim).To(Equal(vm.FrameIndex(0)))
	})

	It("should never select a freed frame", func() {
		p.OnPageLoad(0)
		p.OnFrameFree(0)
		p.OnFrameFree(0)

		_, ok := p.SelectVictim()

		Expect(ok).To(BeFalse())
		Expect(p.TrackedFrames()).To(BeEmpty())
	})

	It("should describe the queue", func() {
		p.OnPageLoad(3)
		p.OnPageLoad(1)

		Expect(p.Name()).To(Equal("FIFO"))
		Expect(p.DescribeState()).To(Equal("FIFO order (oldest first): [3, 1]"))
	})
})
