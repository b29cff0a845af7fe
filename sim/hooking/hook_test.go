package hooking

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type recordingHook struct {
	name string
	log  *[]string
}

func (h *recordingHook) Func(ctx HookCtx) {
	*h.log = append(*h.log, h.name+":"+ctx.Pos.Name)
}

var _ = Describe("HookableBase", func() {
	var (
		base *HookableBase
		log  []string
		pos  *HookPos
	)

	BeforeEach(func() {
		base = &HookableBase{}
		log = nil
		pos = &HookPos{Name: "Access"}
	})

	It("should invoke hooks in registration order", func() {
		base.AcceptHook(&recordingHook{name: "a", log: &log})
		base.AcceptHook(&recordingHook{name: "b", log: &log})

		base.InvokeHook(HookCtx{Pos: pos})

		Expect(base.NumHooks()).To(Equal(2))
		Expect(log).To(Equal([]string{"a:Access", "b:Access"}))
	})

	It("should panic when the same hook is registered twice", func() {
		hook := &recordingHook{name: "a", log: &log}
		base.AcceptHook(hook)

		Expect(func() { base.AcceptHook(hook) }).To(Panic())
	})

	It("should accept function hooks", func() {
		var items []interface{}
		f := HookFunc(func(ctx HookCtx) {
			items = append(items, ctx.Item)
		})
		base.AcceptHook(f)
		base.AcceptHook(f)

		base.InvokeHook(HookCtx{Pos: pos, Item: 1})

		Expect(items).To(Equal([]interface{}{1, 1}))
		Expect(base.Hooks()).To(HaveLen(2))
	})
})
