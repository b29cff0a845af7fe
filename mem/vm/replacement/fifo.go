package replacement

import (
	"container/list"

	"github.com/sarchlab/vmsim/mem/vm"
)

// FIFO evicts the frame that was loaded the longest time ago. Accesses do not
// change the order.
type FIFO struct {
	queue    *list.List
	elements map[vm.FrameIndex]*list.Element
}

// NewFIFO creates a new FIFO policy.
func NewFIFO() *FIFO {
	return &FIFO{
		queue:    list.New(),
		elements: make(map[vm.FrameIndex]*list.Element),
	}
}

// OnPageLoad puts the frame at the tail of the queue.
func (p *FIFO) OnPageLoad(frame vm.FrameIndex) {
	p.OnFrameFree(frame)
	p.elements[frame] = p.queue.PushBack(frame)
}

// OnPageAccess does nothing. Insertion order is immutable.
func (p *FIFO) OnPageAccess(_ vm.FrameIndex) {
}

// OnFrameFree drops the frame from the queue.
func (p *FIFO) OnFrameFree(frame vm.FrameIndex) {
	elem, ok := p.elements[frame]
	if !ok {
		return
	}

	p.queue.Remove(elem)
	delete(p.elements, frame)
}

// SelectVictim returns the head of the queue.
func (p *FIFO) SelectVictim() (vm.FrameIndex, bool) {
	front := p.queue.Front()
	if front == nil {
		return vm.NoFrame, false
	}

	return front.Value.(vm.FrameIndex), true
}

// Name returns "FIFO".
func (p *FIFO) Name() string {
	return "FIFO"
}

// DescribeState lists the frames from the oldest to the newest.
func (p *FIFO) DescribeState() string {
	return "FIFO order (oldest first): " + formatFrames(p.order())
}

// TrackedFrames returns the frames in the queue in ascending order.
func (p *FIFO) TrackedFrames() []vm.FrameIndex {
	return sortedFrames(p.order())
}

func (p *FIFO) order() []vm.FrameIndex {
	frames := make([]vm.FrameIndex, 0, p.queue.Len())
	for e := p.queue.Front(); e != nil; e = e.Next() {
		frames = append(frames, e.Value.(vm.FrameIndex))
	}

	return frames
}
