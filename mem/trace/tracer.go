// Package trace provides hooks that record the page accesses of memory
// managers.
package trace

import (
	"log"
	"sync"

	"github.com/rs/xid"
	"github.com/sarchlab/vmsim/datarecording"
	"github.com/sarchlab/vmsim/mem/vm/mmu"
	"github.com/sarchlab/vmsim/sim/hooking"
)

// AccessTableName is the table that DB tracers write into.
const AccessTableName = "page_accesses"

// AccessEntry is a row of the page access table.
type AccessEntry struct {
	ID         string
	Manager    string
	Seq        uint64
	Kind       string
	VPN        int64
	Frame      int
	EvictedVPN int64
}

type named interface {
	Name() string
}

func domainName(ctx hooking.HookCtx) string {
	if n, ok := ctx.Domain.(named); ok {
		return n.Name()
	}

	return ""
}

// accessFromCtx extracts the outcome of an access hook. It returns false for
// any other hook position.
func accessFromCtx(ctx hooking.HookCtx) (mmu.Outcome, uint64, bool) {
	if ctx.Pos != mmu.HookPosAccess {
		return mmu.Outcome{}, 0, false
	}

	outcome, ok := ctx.Item.(mmu.Outcome)
	if !ok {
		return mmu.Outcome{}, 0, false
	}

	detail, _ := ctx.Detail.(mmu.AccessDetail)

	return outcome, detail.Seq, true
}

// A logTracer is a hook that writes every access as a line of text.
type logTracer struct {
	logger *log.Logger
}

// NewLogTracer creates a hook that prints the accesses with the given logger.
func NewLogTracer(logger *log.Logger) hooking.Hook {
	return &logTracer{logger: logger}
}

// Func prints the access.
func (t *logTracer) Func(ctx hooking.HookCtx) {
	outcome, seq, ok := accessFromCtx(ctx)
	if !ok {
		return
	}

	t.logger.Printf("access, %s, %d, %s, %d, %d, %d\n",
		domainName(ctx),
		seq,
		outcome.Kind,
		outcome.VPN,
		outcome.Frame,
		outcome.EvictedVPN,
	)
}

// A dbTracer is a hook that records the accesses into a database using the
// data recorder.
type dbTracer struct {
	lock         sync.Mutex
	dataRecorder datarecording.DataRecorder
}

// NewDBTracer creates a hook that records accesses into the page access
// table. The table is created when the tracer is created, so only one DB
// tracer can share a recorder.
func NewDBTracer(dataRecorder datarecording.DataRecorder) hooking.Hook {
	t := &dbTracer{
		dataRecorder: dataRecorder,
	}

	t.dataRecorder.CreateTable(AccessTableName, AccessEntry{})

	return t
}

// Func records the access.
func (t *dbTracer) Func(ctx hooking.HookCtx) {
	outcome, seq, ok := accessFromCtx(ctx)
	if !ok {
		return
	}

	entry := AccessEntry{
		ID:         xid.New().String(),
		Manager:    domainName(ctx),
		Seq:        seq,
		Kind:       outcome.Kind.String(),
		VPN:        int64(outcome.VPN),
		Frame:      int(outcome.Frame),
		EvictedVPN: int64(outcome.EvictedVPN),
	}

	t.lock.Lock()
	defer t.lock.Unlock()

	t.dataRecorder.InsertData(AccessTableName, entry)
}
