package mmu

import (
	"errors"
	"fmt"

	"github.com/sarchlab/vmsim/mem/vm"
)

// OutcomeKind tells what happened during a page access.
type OutcomeKind int

// The possible outcomes of a page access.
const (
	// Hit means the page was already resident.
	Hit OutcomeKind = iota

	// FaultFilled means the page was loaded into a free frame.
	FaultFilled

	// FaultEvicted means another page was evicted to make room for the page.
	FaultEvicted

	// InvalidArgument means the page number was malformed.
	InvalidArgument

	// DegenerateConfiguration means the manager has no frame at all.
	DegenerateConfiguration

	// InternalInconsistency means the replacement policy could not provide a
	// victim although all frames are occupied.
	InternalInconsistency
)

var outcomeKindNames = []string{
	"Hit",
	"FaultFilled",
	"FaultEvicted",
	"InvalidArgument",
	"DegenerateConfiguration",
	"InternalInconsistency",
}

func (k OutcomeKind) String() string {
	if k < 0 || int(k) >= len(outcomeKindNames) {
		return fmt.Sprintf("OutcomeKind(%d)", int(k))
	}

	return outcomeKindNames[k]
}

// MarshalText makes the kinds readable in JSON.
func (k OutcomeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Errors reported by outcomes that are not successful accesses.
var (
	ErrInvalidArgument         = errors.New("invalid virtual page number")
	ErrDegenerateConfiguration = errors.New("memory manager has no frame")
	ErrInternalInconsistency   = errors.New(
		"replacement policy failed to provide a victim")
)

// An Outcome is the result of a page access.
type Outcome struct {
	Kind OutcomeKind `json:"kind"`

	// VPN is the requested page.
	VPN vm.VPN `json:"vpn"`

	// Frame holds the page after the access. It is vm.NoFrame for errors.
	Frame vm.FrameIndex `json:"frame"`

	// EvictedVPN is the page that used to be in Frame. It is vm.NoPage unless
	// Kind is FaultEvicted.
	EvictedVPN vm.VPN `json:"evicted_vpn"`
}

// Err returns the error associated with the outcome, or nil if the access
// succeeded.
func (o Outcome) Err() error {
	switch o.Kind {
	case InvalidArgument:
		return fmt.Errorf("%w: %d", ErrInvalidArgument, o.VPN)
	case DegenerateConfiguration:
		return ErrDegenerateConfiguration
	case InternalInconsistency:
		return ErrInternalInconsistency
	default:
		return nil
	}
}

// IsFault returns true if the page was not resident before the access.
func (o Outcome) IsFault() bool {
	return o.Kind == FaultFilled || o.Kind == FaultEvicted
}

func (o Outcome) String() string {
	switch o.Kind {
	case Hit:
		return fmt.Sprintf("Hit(page %d in frame %d)", o.VPN, o.Frame)
	case FaultFilled:
		return fmt.Sprintf("FaultFilled(page %d into free frame %d)",
			o.VPN, o.Frame)
	case FaultEvicted:
		return fmt.Sprintf("FaultEvicted(page %d replaced page %d in frame %d)",
			o.VPN, o.EvictedVPN, o.Frame)
	case InvalidArgument:
		return fmt.Sprintf("InvalidArgument(page %d)", o.VPN)
	default:
		return o.Kind.String()
	}
}

func hit(vpn vm.VPN, frame vm.FrameIndex) Outcome {
	return Outcome{Kind: Hit, VPN: vpn, Frame: frame, EvictedVPN: vm.NoPage}
}

func faultFilled(vpn vm.VPN, frame vm.FrameIndex) Outcome {
	return Outcome{
		Kind:       FaultFilled,
		VPN:        vpn,
		Frame:      frame,
		EvictedVPN: vm.NoPage,
	}
}

func faultEvicted(vpn, evicted vm.VPN, frame vm.FrameIndex) Outcome {
	return Outcome{
		Kind:       FaultEvicted,
		VPN:        vpn,
		Frame:      frame,
		EvictedVPN: evicted,
	}
}

func failure(kind OutcomeKind, vpn vm.VPN) Outcome {
	return Outcome{
		Kind:       kind,
		VPN:        vpn,
		Frame:      vm.NoFrame,
		EvictedVPN: vm.NoPage,
	}
}
