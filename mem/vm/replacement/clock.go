package replacement

import (
	"fmt"
	"strings"

	"github.com/sarchlab/vmsim/mem/vm"
)

// Clock is the second-chance policy. Frames sit on a ring in slot order and a
// hand sweeps over the ring. A frame whose reference bit is set gets its bit
// cleared and is skipped; the first tracked frame found with a clear bit is
// the victim. The hand position persists across calls.
//
// A freshly loaded frame starts with its reference bit set.
type Clock struct {
	slots      []clockSlot
	hand       int
	numTracked int
}

type clockSlot struct {
	tracked    bool
	referenced bool
}

// NewClock creates a Clock policy for the given number of frames.
func NewClock(numFrames int) *Clock {
	if numFrames < 0 {
		numFrames = 0
	}

	return &Clock{
		slots: make([]clockSlot, numFrames),
	}
}

// OnPageLoad starts tracking the frame with its reference bit set.
func (p *Clock) OnPageLoad(frame vm.FrameIndex) {
	p.ensureSlot(frame)

	if !p.slots[frame].tracked {
		p.numTracked++
	}

	p.slots[frame] = clockSlot{tracked: true, referenced: true}
}

// OnPageAccess sets the reference bit of a tracked frame.
func (p *Clock) OnPageAccess(frame vm.FrameIndex) {
	if !p.isTracked(frame) {
		return
	}

	p.slots[frame].referenced = true
}

// OnFrameFree stops tracking the frame and clears its reference bit.
func (p *Clock) OnFrameFree(frame vm.FrameIndex) {
	if !p.isTracked(frame) {
		return
	}

	p.slots[frame] = clockSlot{}
	p.numTracked--
}

// SelectVictim sweeps the ring from the hand. The hand stops on the slot
// after the victim.
func (p *Clock) SelectVictim() (vm.FrameIndex, bool) {
	if p.numTracked == 0 {
		return vm.NoFrame, false
	}

	for {
		current := p.hand
		slot := &p.slots[current]
		p.hand = (p.hand + 1) % len(p.slots)

		if !slot.tracked {
			continue
		}

		if slot.referenced {
			slot.referenced = false
			continue
		}

		return vm.FrameIndex(current), true
	}
}

// Name returns "Clock".
func (p *Clock) Name() string {
	return "Clock"
}

// DescribeState prints the hand and every slot. A tracked frame is printed
// with its reference bit, an empty slot as "-".
func (p *Clock) DescribeState() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Clock hand: %d, frames: [", p.hand)
	for i, s := range p.slots {
		if i > 0 {
			b.WriteString(", ")
		}

		switch {
		case !s.tracked:
			fmt.Fprintf(&b, "%d:-", i)
		case s.referenced:
			fmt.Fprintf(&b, "%d:1", i)
		default:
			fmt.Fprintf(&b, "%d:0", i)
		}
	}
	b.WriteByte(']')

	return b.String()
}

// TrackedFrames returns the tracked frames in ascending order.
func (p *Clock) TrackedFrames() []vm.FrameIndex {
	frames := make([]vm.FrameIndex, 0, p.numTracked)
	for i, s := range p.slots {
		if s.tracked {
			frames = append(frames, vm.FrameIndex(i))
		}
	}

	return frames
}

func (p *Clock) isTracked(frame vm.FrameIndex) bool {
	return frame >= 0 && int(frame) < len(p.slots) && p.slots[frame].tracked
}

func (p *Clock) ensureSlot(frame vm.FrameIndex) {
	if frame < 0 {
		panic(fmt.Sprintf("invalid frame %d", frame))
	}

	for int(frame) >= len(p.slots) {
		p.slots = append(p.slots, clockSlot{})
	}
}
