// Package vm provides the data structures that describe a flat virtual
// address space mapped onto a fixed pool of physical frames.
package vm

import "fmt"

// VPN stands for Virtual Page Number. Only non-negative values identify a
// page; negative values are representable so that callers can be rejected.
type VPN int64

// NoPage is used where a page number is required but none applies.
const NoPage VPN = -1

// FrameIndex identifies a physical frame slot.
type FrameIndex int

// NoFrame is used where a frame index is required but none applies.
const NoFrame FrameIndex = -1

// A Mapping is a page table entry, telling which frame holds a resident page.
type Mapping struct {
	VPN   VPN        `json:"vpn"`
	Frame FrameIndex `json:"frame"`
}

func (m Mapping) String() string {
	return fmt.Sprintf("%d->%d", m.VPN, m.Frame)
}

// A FrameSlot describes the occupancy of a single frame.
type FrameSlot struct {
	Index    FrameIndex `json:"index"`
	Occupied bool       `json:"occupied"`
	VPN      VPN        `json:"vpn"`
}

func (s FrameSlot) String() string {
	if !s.Occupied {
		return fmt.Sprintf("%d:-", s.Index)
	}

	return fmt.Sprintf("%d:%d", s.Index, s.VPN)
}
