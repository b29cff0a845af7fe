package replacement

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/vmsim/mem/vm"
)

// sliceLRU keeps the usage order in a plain slice, reordered on every
// access. It is the reference the LRU policy must agree with.
type sliceLRU struct {
	order []vm.FrameIndex
}

func (r *sliceLRU) indexOf(frame vm.FrameIndex) int {
	for i, f := range r.order {
		if f == frame {
			return i
		}
	}

	return -1
}

func (r *sliceLRU) remove(frame vm.FrameIndex) bool {
	i := r.indexOf(frame)
	if i < 0 {
		return false
	}

	r.order = append(r.order[:i], r.order[i+1:]...)

	return true
}

func (r *sliceLRU) load(frame vm.FrameIndex) {
	r.remove(frame)
	r.order = append(r.order, frame)
}

func (r *sliceLRU) access(frame vm.FrameIndex) {
	if r.remove(frame) {
		r.order = append(r.order, frame)
	}
}

func (r *sliceLRU) victim() (vm.FrameIndex, bool) {
	if len(r.order) == 0 {
		return vm.NoFrame, false
	}

	return r.order[0], true
}

var _ = Describe("LRU", func() {
	var (
		p *LRU
	)

	BeforeEach(func() {
		p = NewLRU()
	})

	It("should not find a victim when nothing is tracked", func() {
		_, ok := p.SelectVictim()

		Expect(ok).To(BeFalse())
	})

	It("should evict the least recently loaded frame", func() {
		p.OnPageLoad(0)
		p.OnPageLoad(1)

		victim, ok := p.SelectVictim()

		Expect(ok).To(BeTrue())
		Expect(victim).To(Equal(vm.FrameIndex(0)))
	})

	It("should consider accesses", func() {
		p.OnPageLoad(0)
		p.OnPageLoad(1)
		p.OnPageAccess(0)

		victim, _ := p.SelectVictim()

		Expect(victim).To(Equal(vm.FrameIndex(1)))
	})

	It("should ignore accesses to untracked frames", func() {
		p.OnPageLoad(0)
		p.OnPageAccess(5)

		Expect(p.TrackedFrames()).To(Equal([]vm.FrameIndex{0}))
	})

	It("should reset the priority of a freed and reloaded frame", func() {
		p.OnPageLoad(0)
		p.OnPageLoad(1)
		p.OnPageLoad(2)

		p.OnFrameFree(0)
		p.OnPageLoad(0)

		victim, _ := p.SelectVictim()
		Expect(victim).To(Equal(vm.FrameIndex(1)))

		p.OnFrameFree(1)
		p.OnFrameFree(2)

		victim, _ = p.SelectVictim()
		Expect(victim).To(Equal(vm.FrameIndex(0)))
	})

	It("should describe the usage order", func() {
		p.OnPageLoad(0)
		p.OnPageLoad(1)
		p.OnPageAccess(0)

		Expect(p.Name()).To(Equal("LRU"))
		Expect(p.DescribeState()).
			To(Equal("LRU order (least recent first): [1, 0]"))
	})

	It("should behave like the ordered slice reference", func() {
		rng := rand.New(rand.NewSource(7))
		ref := &sliceLRU{}

		for i := 0; i < 5000; i++ {
			frame := vm.FrameIndex(rng.Intn(8))

			switch rng.Intn(4) {
			case 0:
				p.OnPageLoad(frame)
				ref.load(frame)
			case 1:
				p.OnPageAccess(frame)
				ref.access(frame)
			case 2:
				p.OnFrameFree(frame)
				ref.remove(frame)
			case 3:
				victim, ok := p.SelectVictim()
				refVictim, refOK := ref.victim()
				Expect(ok).To(Equal(refOK))
				Expect(victim).To(Equal(refVictim))
			}

			Expect(p.order()).To(Equal(append([]vm.FrameIndex{}, ref.order...)))
		}
	})
})
