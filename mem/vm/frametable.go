package vm

import "fmt"

// A FrameTable holds a fixed number of frames. Each frame is either empty or
// holds exactly one virtual page.
//
// FrameTable does not synchronize access. The owner is responsible for
// serializing the calls.
type FrameTable struct {
	frames      []frame
	numOccupied int
}

type frame struct {
	occupied bool
	vpn      VPN
}

// NewFrameTable creates a FrameTable with numFrames empty frames.
func NewFrameTable(numFrames int) *FrameTable {
	if numFrames < 0 {
		panic(fmt.Sprintf("invalid number of frames %d", numFrames))
	}

	return &FrameTable{
		frames: make([]frame, numFrames),
	}
}

// Len returns the total number of frames.
func (t *FrameTable) Len() int {
	return len(t.frames)
}

// NumOccupied returns the number of frames that hold a page.
func (t *FrameTable) NumOccupied() int {
	return t.numOccupied
}

// IsFull returns true if no frame is free.
func (t *FrameTable) IsFull() bool {
	return t.numOccupied == len(t.frames)
}

// FirstFree returns the lowest index of an empty frame. The bool return value
// is false if all the frames are occupied.
func (t *FrameTable) FirstFree() (FrameIndex, bool) {
	if t.IsFull() {
		return NoFrame, false
	}

	for i, f := range t.frames {
		if !f.occupied {
			return FrameIndex(i), true
		}
	}

	return NoFrame, false
}

// Occupant returns the page held by the given frame. The bool return value is
// false if the frame is empty or out of range.
func (t *FrameTable) Occupant(index FrameIndex) (VPN, bool) {
	if !t.inRange(index) {
		return 0, false
	}

	f := t.frames[index]

	return f.vpn, f.occupied
}

// Occupy places a page into a frame, replacing the previous occupant if any.
func (t *FrameTable) Occupy(index FrameIndex, vpn VPN) {
	t.frameMustExist(index)

	if !t.frames[index].occupied {
		t.numOccupied++
	}

	t.frames[index] = frame{occupied: true, vpn: vpn}
}

// Free marks a frame as empty.
func (t *FrameTable) Free(index FrameIndex) {
	t.frameMustExist(index)

	if t.frames[index].occupied {
		t.numOccupied--
	}

	t.frames[index] = frame{}
}

// Slots returns a copy of the occupancy of every frame, ordered by index.
func (t *FrameTable) Slots() []FrameSlot {
	slots := make([]FrameSlot, len(t.frames))
	for i, f := range t.frames {
		slots[i] = FrameSlot{
			Index:    FrameIndex(i),
			Occupied: f.occupied,
			VPN:      f.vpn,
		}
	}

	return slots
}

func (t *FrameTable) inRange(index FrameIndex) bool {
	return index >= 0 && int(index) < len(t.frames)
}

func (t *FrameTable) frameMustExist(index FrameIndex) {
	if !t.inRange(index) {
		panic(fmt.Sprintf("frame %d does not exist", index))
	}
}
