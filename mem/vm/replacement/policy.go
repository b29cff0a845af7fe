// Package replacement provides the page replacement policies that decide
// which resident page gets evicted when no frame is free.
package replacement

import (
	"sort"
	"strconv"
	"strings"

	"github.com/sarchlab/vmsim/mem/vm"
)

// A Policy tracks the occupied frames and selects the victim of an eviction.
//
// A policy tracks exactly the frames that have been loaded and not freed
// since. Implementations are not safe for concurrent use.
type Policy interface {
	// OnPageLoad notifies that the frame now holds a newly resident page.
	OnPageLoad(frame vm.FrameIndex)

	// OnPageAccess notifies that the page held by the frame is referenced
	// again.
	OnPageAccess(frame vm.FrameIndex)

	// OnFrameFree notifies that the frame no longer holds a page. The frame
	// is never selected as a victim until it is loaded again.
	OnFrameFree(frame vm.FrameIndex)

	// SelectVictim returns the frame to evict. The bool return value is false
	// if no frame is tracked. The victim stays tracked.
	SelectVictim() (vm.FrameIndex, bool)

	// Name returns the name of the policy.
	Name() string

	// DescribeState returns a human readable dump of the bookkeeping.
	DescribeState() string

	// TrackedFrames returns the tracked frames in ascending order.
	TrackedFrames() []vm.FrameIndex
}

func formatFrames(frames []vm.FrameIndex) string {
	var b strings.Builder

	b.WriteByte('[')
	for i, f := range frames {
		if i > 0 {
			b.WriteString(", ")
		}

		b.WriteString(strconv.Itoa(int(f)))
	}
	b.WriteByte(']')

	return b.String()
}

func sortedFrames(frames []vm.FrameIndex) []vm.FrameIndex {
	sort.Slice(frames, func(i, j int) bool { return frames[i] < frames[j] })
	return frames
}
