package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sarchlab/vmsim/mem/trace"
	"github.com/sarchlab/vmsim/mem/vm"
	"github.com/sarchlab/vmsim/mem/vm/mmu"
	"github.com/sarchlab/vmsim/mem/vm/replacement"
)

// workload describes the reference string and the manager to run it on.
type workload struct {
	frames       int
	policy       string
	seq          string
	traceFile    string
	addresses    bool
	log2PageSize uint64
}

func (w workload) loadSequence() ([]int64, error) {
	if w.seq != "" && w.traceFile != "" {
		return nil, errors.New("--seq and --trace cannot be used together")
	}

	if w.traceFile != "" {
		f, err := os.Open(w.traceFile)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		seq, err := trace.ReadSequence(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", w.traceFile, err)
		}

		return seq, nil
	}

	if w.seq != "" {
		return trace.ReadSequence(strings.NewReader(w.seq))
	}

	return nil, errors.New("no reference string, use --seq or --trace")
}

func (w workload) validate() error {
	if w.frames < 0 {
		return fmt.Errorf("number of frames must not be negative, got %d",
			w.frames)
	}

	if w.log2PageSize >= 63 {
		return fmt.Errorf("log2 page size %d is too large", w.log2PageSize)
	}

	return nil
}

func (w workload) builder() (mmu.Builder, error) {
	if err := w.validate(); err != nil {
		return mmu.Builder{}, err
	}

	spec, err := replacement.ParseSpec(w.policy)
	if err != nil {
		return mmu.Builder{}, err
	}

	return w.builderWithSpec(spec), nil
}

func (w workload) builderWithSpec(spec replacement.Spec) mmu.Builder {
	return mmu.MakeBuilder().
		WithTotalFrames(w.frames).
		WithPolicySpec(spec).
		WithLog2PageSize(w.log2PageSize)
}

func (w workload) access(m *mmu.Manager, value int64) mmu.Outcome {
	if w.addresses {
		return m.AccessAddress(value)
	}

	return m.AccessPage(vm.VPN(value))
}
