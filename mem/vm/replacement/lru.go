package replacement

import (
	"container/list"

	"github.com/sarchlab/vmsim/mem/vm"
)

// LRU evicts the frame that was least recently loaded or accessed.
//
// The list is ordered from the least recently used frame at the front to the
// most recently used frame at the back. The map gives direct access to the
// list element of each frame, so that every operation is O(1).
type LRU struct {
	usage    *list.List
	elements map[vm.FrameIndex]*list.Element
}

// NewLRU creates a new LRU policy.
func NewLRU() *LRU {
	return &LRU{
		usage:    list.New(),
		elements: make(map[vm.FrameIndex]*list.Element),
	}
}

// OnPageLoad makes the frame the most recently used one.
func (p *LRU) OnPageLoad(frame vm.FrameIndex) {
	elem, ok := p.elements[frame]
	if ok {
		p.usage.MoveToBack(elem)
		return
	}

	p.elements[frame] = p.usage.PushBack(frame)
}

// OnPageAccess makes the frame the most recently used one. Accessing a frame
// that is not tracked has no effect.
func (p *LRU) OnPageAccess(frame vm.FrameIndex) {
	elem, ok := p.elements[frame]
	if !ok {
		return
	}

	p.usage.MoveToBack(elem)
}

// OnFrameFree stops tracking the frame.
func (p *LRU) OnFrameFree(frame vm.FrameIndex) {
	elem, ok := p.elements[frame]
	if !ok {
		return
	}

	p.usage.Remove(elem)
	delete(p.elements, frame)
}

// SelectVictim returns the least recently used frame.
func (p *LRU) SelectVictim() (vm.FrameIndex, bool) {
	front := p.usage.Front()
	if front == nil {
		return vm.NoFrame, false
	}

	return front.Value.(vm.FrameIndex), true
}

// Name returns "LRU".
func (p *LRU) Name() string {
	return "LRU"
}

// DescribeState lists the frames from the least to the most recently used.
func (p *LRU) DescribeState() string {
	return "LRU order (least recent first): " + formatFrames(p.order())
}

// TrackedFrames returns the tracked frames in ascending order.
func (p *LRU) TrackedFrames() []vm.FrameIndex {
	return sortedFrames(p.order())
}

func (p *LRU) order() []vm.FrameIndex {
	frames := make([]vm.FrameIndex, 0, p.usage.Len())
	for e := p.usage.Front(); e != nil; e = e.Next() {
		frames = append(frames, e.Value.(vm.FrameIndex))
	}

	return frames
}
