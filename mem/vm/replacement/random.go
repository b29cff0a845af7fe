package replacement

import (
	"fmt"
	"math/rand"

	"github.com/sarchlab/vmsim/mem/vm"
)

// Random evicts a frame drawn uniformly among the tracked frames. The draws
// come from a generator seeded at construction, so that two policies with the
// same seed and the same history select the same victims.
type Random struct {
	seed    int64
	rng     *rand.Rand
	draws   uint64
	frames  []vm.FrameIndex
	indices map[vm.FrameIndex]int
}

// NewRandom creates a Random policy with the given seed.
func NewRandom(seed int64) *Random {
	return &Random{
		seed:    seed,
		rng:     rand.New(rand.NewSource(seed)),
		indices: make(map[vm.FrameIndex]int),
	}
}

// OnPageLoad starts tracking the frame.
func (p *Random) OnPageLoad(frame vm.FrameIndex) {
	if _, ok := p.indices[frame]; ok {
		return
	}

	p.indices[frame] = len(p.frames)
	p.frames = append(p.frames, frame)
}

// OnPageAccess does nothing.
func (p *Random) OnPageAccess(_ vm.FrameIndex) {
}

// OnFrameFree stops tracking the frame.
func (p *Random) OnFrameFree(frame vm.FrameIndex) {
	index, ok := p.indices[frame]
	if !ok {
		return
	}

	last := len(p.frames) - 1
	p.frames[index] = p.frames[last]
	p.indices[p.frames[index]] = index
	p.frames = p.frames[:last]
	delete(p.indices, frame)
}

// SelectVictim draws one of the tracked frames.
func (p *Random) SelectVictim() (vm.FrameIndex, bool) {
	if len(p.frames) == 0 {
		return vm.NoFrame, false
	}

	p.draws++

	return p.frames[p.rng.Intn(len(p.frames))], true
}

// Name returns "Random".
func (p *Random) Name() string {
	return "Random"
}

// DescribeState prints the seed, the number of draws and the tracked frames.
func (p *Random) DescribeState() string {
	return fmt.Sprintf("Random seed: %d, draws: %d, frames: %s",
		p.seed, p.draws, formatFrames(p.TrackedFrames()))
}

// TrackedFrames returns the tracked frames in ascending order.
func (p *Random) TrackedFrames() []vm.FrameIndex {
	frames := make([]vm.FrameIndex, len(p.frames))
	copy(frames, p.frames)

	return sortedFrames(frames)
}
