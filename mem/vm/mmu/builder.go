package mmu

import (
	"fmt"
	"log"

	"github.com/sarchlab/vmsim/mem/vm"
	"github.com/sarchlab/vmsim/mem/vm/replacement"
)

// A Builder can build memory managers.
type Builder struct {
	totalFrames  int
	policySpec   replacement.Spec
	policy       replacement.Policy
	log2PageSize uint64
	logger       *log.Logger
}

// MakeBuilder creates a new builder. By default, the manager has 4 frames of
// 4 KiB and uses the FIFO policy.
func MakeBuilder() Builder {
	return Builder{
		totalFrames:  4,
		policySpec:   replacement.Spec{Kind: replacement.KindFIFO},
		log2PageSize: 12,
		logger:       log.Default(),
	}
}

// WithTotalFrames sets the number of frames. Zero frames is allowed and makes
// every access fail with DegenerateConfiguration.
func (b Builder) WithTotalFrames(n int) Builder {
	b.totalFrames = n
	return b
}

// WithPolicySpec selects the replacement policy to create.
func (b Builder) WithPolicySpec(spec replacement.Spec) Builder {
	b.policySpec = spec
	return b
}

// WithPolicy injects an existing replacement policy. The policy must not
// track any frame yet and must not be shared with another manager. It takes
// precedence over the policy spec.
func (b Builder) WithPolicy(p replacement.Policy) Builder {
	b.policy = p
	return b
}

// WithLog2PageSize sets the page size used to translate byte addresses.
func (b Builder) WithLog2PageSize(log2PageSize uint64) Builder {
	b.log2PageSize = log2PageSize
	return b
}

// WithLogger sets the logger that reports internal inconsistencies.
func (b Builder) WithLogger(logger *log.Logger) Builder {
	b.logger = logger
	return b
}

// Build returns a newly created memory manager.
func (b Builder) Build(name string) *Manager {
	b.validate()

	m := &Manager{
		name:         name,
		frames:       vm.NewFrameTable(b.totalFrames),
		pageTable:    vm.NewPageTable(),
		policy:       b.policy,
		log2PageSize: b.log2PageSize,
		logger:       b.logger,
	}

	if m.policy == nil {
		m.policy = replacement.New(b.policySpec, b.totalFrames)
	}

	return m
}

func (b Builder) validate() {
	if b.totalFrames < 0 {
		panic(fmt.Sprintf("number of frames must not be negative, got %d",
			b.totalFrames))
	}

	if b.log2PageSize >= 63 {
		panic(fmt.Sprintf("log2 page size %d is too large", b.log2PageSize))
	}

	if b.logger == nil {
		panic("logger is not set")
	}
}
