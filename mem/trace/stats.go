package trace

import (
	"sync"

	"github.com/sarchlab/vmsim/mem/vm/mmu"
	"github.com/sarchlab/vmsim/sim/hooking"
)

// Stats summarizes the accesses observed by a StatsCounter.
type Stats struct {
	Accesses  uint64 `json:"accesses"`
	Hits      uint64 `json:"hits"`
	Fills     uint64 `json:"fills"`
	Evictions uint64 `json:"evictions"`
	Errors    uint64 `json:"errors"`
}

// Faults returns the number of accesses that loaded a page.
func (s Stats) Faults() uint64 {
	return s.Fills + s.Evictions
}

// HitRatio returns the fraction of successful accesses that hit. It is 0 if
// there is no successful access.
func (s Stats) HitRatio() float64 {
	served := s.Hits + s.Faults()
	if served == 0 {
		return 0
	}

	return float64(s.Hits) / float64(served)
}

// StatsCounter is a hook that counts the outcomes of page accesses.
type StatsCounter struct {
	lock  sync.Mutex
	stats Stats
}

// NewStatsCounter creates a new StatsCounter.
func NewStatsCounter() *StatsCounter {
	return &StatsCounter{}
}

// Func counts the access.
func (c *StatsCounter) Func(ctx hooking.HookCtx) {
	outcome, _, ok := accessFromCtx(ctx)
	if !ok {
		return
	}

	c.lock.Lock()
	defer c.lock.Unlock()

	c.stats.Accesses++

	switch outcome.Kind {
	case mmu.Hit:
		c.stats.Hits++
	case mmu.FaultFilled:
		c.stats.Fills++
	case mmu.FaultEvicted:
		c.stats.Evictions++
	default:
		c.stats.Errors++
	}
}

// Snapshot returns the counts collected so far.
func (c *StatsCounter) Snapshot() Stats {
	c.lock.Lock()
	defer c.lock.Unlock()

	return c.stats
}

// Reset clears the counts.
func (c *StatsCounter) Reset() {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.stats = Stats{}
}
