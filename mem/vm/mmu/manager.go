// Package mmu provides the memory manager, which translates page accesses
// into hits and faults over a fixed pool of frames.
package mmu

import (
	"errors"
	"fmt"
	"log"
	"slices"
	"sync"

	"github.com/sarchlab/vmsim/mem/vm"
	"github.com/sarchlab/vmsim/mem/vm/replacement"
	"github.com/sarchlab/vmsim/sim/hooking"
)

// HookPosAccess marks the completion of a page access. The hook item is the
// Outcome and the detail is an AccessDetail.
var HookPosAccess = &hooking.HookPos{Name: "Access"}

// AccessDetail carries the extra information of an access hook.
type AccessDetail struct {
	// Seq counts the accesses of a manager, starting from 1.
	Seq uint64
}

// ErrInvariantViolation is wrapped by the errors returned from Verify.
var ErrInvariantViolation = errors.New("memory manager invariant violated")

// Manager owns a frame table and a page table, and consults a replacement
// policy when a fault finds no free frame.
//
// All methods are safe for concurrent use. Accesses are serialized, and each
// one is applied completely before the next one starts. Hooks run while the
// manager is locked, so they must not call back into the manager, not even to
// register another hook.
type Manager struct {
	hooking.HookableBase

	name         string
	lock         sync.Mutex
	frames       *vm.FrameTable
	pageTable    vm.PageTable
	policy       replacement.Policy
	log2PageSize uint64
	logger       *log.Logger
	numAccesses  uint64
}

// Name returns the name of the manager.
func (m *Manager) Name() string {
	return m.name
}

// TotalFrames returns the number of frames the manager owns.
func (m *Manager) TotalFrames() int {
	return m.frames.Len()
}

// PageSize returns the number of bytes in a page.
func (m *Manager) PageSize() uint64 {
	return 1 << m.log2PageSize
}

// PolicyName returns the name of the replacement policy.
func (m *Manager) PolicyName() string {
	m.lock.Lock()
	defer m.lock.Unlock()

	return m.policy.Name()
}

// AcceptHook registers a hook. It waits for the access in progress, if any.
func (m *Manager) AcceptHook(hook hooking.Hook) {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.HookableBase.AcceptHook(hook)
}

// NumHooks returns the number of hooks registered.
func (m *Manager) NumHooks() int {
	m.lock.Lock()
	defer m.lock.Unlock()

	return m.HookableBase.NumHooks()
}

// Hooks returns a copy of the registered hooks.
func (m *Manager) Hooks() []hooking.Hook {
	m.lock.Lock()
	defer m.lock.Unlock()

	return slices.Clone(m.HookableBase.Hooks())
}

// AccessPage references a virtual page, loading it into a frame if it is not
// resident.
func (m *Manager) AccessPage(vpn vm.VPN) Outcome {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.numAccesses++
	outcome := m.accessPage(vpn)

	m.InvokeHook(hooking.HookCtx{
		Domain: m,
		Pos:    HookPosAccess,
		Item:   outcome,
		Detail: AccessDetail{Seq: m.numAccesses},
	})

	return outcome
}

// AccessAddress references the page that contains a virtual byte address.
func (m *Manager) AccessAddress(addr int64) Outcome {
	// The arithmetic shift keeps negative addresses negative, so they are
	// rejected as invalid page numbers.
	return m.AccessPage(vm.VPN(addr >> m.log2PageSize))
}

func (m *Manager) accessPage(vpn vm.VPN) Outcome {
	if vpn < 0 {
		return failure(InvalidArgument, vpn)
	}

	if m.frames.Len() == 0 {
		return failure(DegenerateConfiguration, vpn)
	}

	if frame, found := m.pageTable.Find(vpn); found {
		m.policy.OnPageAccess(frame)
		return hit(vpn, frame)
	}

	if frame, ok := m.frames.FirstFree(); ok {
		m.frames.Occupy(frame, vpn)
		m.pageTable.Insert(vpn, frame)
		m.policy.OnPageLoad(frame)

		return faultFilled(vpn, frame)
	}

	return m.evictAndLoad(vpn)
}

func (m *Manager) evictAndLoad(vpn vm.VPN) Outcome {
	victim, ok := m.policy.SelectVictim()
	if !ok {
		m.logger.Printf("%s: policy %s has no victim while all %d frames "+
			"are occupied", m.name, m.policy.Name(), m.frames.Len())
		return failure(InternalInconsistency, vpn)
	}

	evicted, occupied := m.frames.Occupant(victim)
	if !occupied {
		m.logger.Printf("%s: policy %s selected frame %d, which is not "+
			"occupied", m.name, m.policy.Name(), victim)
		return failure(InternalInconsistency, vpn)
	}

	m.pageTable.Remove(evicted)
	m.policy.OnFrameFree(victim)

	m.frames.Occupy(victim, vpn)
	m.pageTable.Insert(vpn, victim)
	m.policy.OnPageLoad(victim)

	return faultEvicted(vpn, evicted, victim)
}

// Status is a snapshot of the state of a manager.
type Status struct {
	Name        string         `json:"name"`
	PolicyName  string         `json:"policy_name"`
	PolicyState string         `json:"policy_state"`
	TotalFrames int            `json:"total_frames"`
	NumAccesses uint64         `json:"num_accesses"`
	Frames      []vm.FrameSlot `json:"frames"`
	PageTable   []vm.Mapping   `json:"page_table"`
}

// Status returns a snapshot of the manager. The snapshot does not share any
// memory with the manager.
func (m *Manager) Status() Status {
	m.lock.Lock()
	defer m.lock.Unlock()

	return Status{
		Name:        m.name,
		PolicyName:  m.policy.Name(),
		PolicyState: m.policy.DescribeState(),
		TotalFrames: m.frames.Len(),
		NumAccesses: m.numAccesses,
		Frames:      m.frames.Slots(),
		PageTable:   m.pageTable.Mappings(),
	}
}

// Verify checks that the page table, the frame table and the policy agree
// with each other.
func (m *Manager) Verify() error {
	m.lock.Lock()
	defer m.lock.Unlock()

	numMapped := m.pageTable.Len()
	numOccupied := m.frames.NumOccupied()

	if numMapped != numOccupied {
		return fmt.Errorf("%w: %d pages mapped but %d frames occupied",
			ErrInvariantViolation, numMapped, numOccupied)
	}

	if numOccupied > m.frames.Len() {
		return fmt.Errorf("%w: %d frames occupied out of %d",
			ErrInvariantViolation, numOccupied, m.frames.Len())
	}

	for _, mapping := range m.pageTable.Mappings() {
		occupant, ok := m.frames.Occupant(mapping.Frame)
		if !ok || occupant != mapping.VPN {
			return fmt.Errorf("%w: page %d maps to frame %d, "+
				"which does not hold it",
				ErrInvariantViolation, mapping.VPN, mapping.Frame)
		}
	}

	occupiedFrames := make([]vm.FrameIndex, 0, numOccupied)
	for _, slot := range m.frames.Slots() {
		if slot.Occupied {
			occupiedFrames = append(occupiedFrames, slot.Index)
		}
	}

	tracked := m.policy.TrackedFrames()
	if !slices.Equal(tracked, occupiedFrames) {
		return fmt.Errorf("%w: policy tracks frames %v but frames %v "+
			"are occupied", ErrInvariantViolation, tracked, occupiedFrames)
	}

	return nil
}
