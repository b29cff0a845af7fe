package monitoring

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"

	"github.com/sarchlab/vmsim/mem/vm"
	"github.com/sarchlab/vmsim/mem/vm/mmu"
	"github.com/sarchlab/vmsim/mem/vm/replacement"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func newManager(name string, frames int) *mmu.Manager {
	return mmu.MakeBuilder().
		WithTotalFrames(frames).
		WithPolicySpec(replacement.Spec{Kind: replacement.KindLRU}).
		WithLogger(log.New(&bytes.Buffer{}, "", 0)).
		Build(name)
}

var _ = Describe("Monitor", func() {
	var (
		m       *Monitor
		manager *mmu.Manager
		server  *httptest.Server
	)

	get := func(path string) (int, []byte) {
		rsp, err := http.Get(server.URL + path)
		Expect(err).ToNot(HaveOccurred())
		defer rsp.Body.Close()

		buf := new(bytes.Buffer)
		_, err = buf.ReadFrom(rsp.Body)
		Expect(err).ToNot(HaveOccurred())

		return rsp.StatusCode, buf.Bytes()
	}

	post := func(path string) (int, []byte) {
		rsp, err := http.Post(server.URL+path, "text/plain", nil)
		Expect(err).ToNot(HaveOccurred())
		defer rsp.Body.Close()

		buf := new(bytes.Buffer)
		_, err = buf.ReadFrom(rsp.Body)
		Expect(err).ToNot(HaveOccurred())

		return rsp.StatusCode, buf.Bytes()
	}

	BeforeEach(func() {
		m = NewMonitor()
		manager = newManager("MMU", 2)
		m.RegisterManager(manager)
		server = httptest.NewServer(m.router())
	})

	AfterEach(func() {
		server.Close()
	})

	It("should attach a stats counter when registering", func() {
		Expect(manager.NumHooks()).To(Equal(1))
		Expect(m.stats).To(HaveKey("MMU"))
	})

	It("should not register two managers with the same name", func() {
		Expect(func() {
			m.RegisterManager(newManager("MMU", 1))
		}).To(Panic())
	})

	It("should fall back to a random port for reserved ports", func() {
		Expect(m.WithPortNumber(80).portNumber).To(Equal(0))
		Expect(m.WithPortNumber(8080).portNumber).To(Equal(8080))
	})

	It("should list managers", func() {
		m.RegisterManager(newManager("Other", 1))

		code, body := get("/api/list_managers")

		Expect(code).To(Equal(http.StatusOK))
		Expect(body).To(MatchJSON(`["MMU", "Other"]`))
	})

	It("should report 404 for unknown managers", func() {
		code, body := get("/api/status/Nobody")

		Expect(code).To(Equal(http.StatusNotFound))
		Expect(string(body)).To(Equal("Manager not found"))
	})

	It("should report the status", func() {
		manager.AccessPage(3)

		code, body := get("/api/status/MMU")
		Expect(code).To(Equal(http.StatusOK))

		var status mmu.Status
		Expect(json.Unmarshal(body, &status)).To(Succeed())
		Expect(status.Name).To(Equal("MMU"))
		Expect(status.PolicyName).To(Equal("LRU"))
		Expect(status.TotalFrames).To(Equal(2))
		Expect(status.PageTable).To(Equal([]vm.Mapping{{VPN: 3, Frame: 0}}))
	})

	It("should access pages and count them", func() {
		code, body := post("/api/access/MMU/7")
		Expect(code).To(Equal(http.StatusOK))
		Expect(body).To(MatchJSON(`{
			"kind": "FaultFilled", "vpn": 7, "frame": 0, "evicted_vpn": -1
		}`))

		post("/api/access/MMU/7")
		post("/api/access/MMU/-1")

		code, body = get("/api/stats/MMU")
		Expect(code).To(Equal(http.StatusOK))
		Expect(body).To(MatchJSON(`{
			"accesses": 3, "hits": 1, "fills": 1, "evictions": 0,
			"errors": 1, "hit_ratio": 0.5
		}`))
	})

	It("should report the error of failed accesses", func() {
		_, body := post("/api/access/MMU/-5")

		var rsp map[string]any
		Expect(json.Unmarshal(body, &rsp)).To(Succeed())
		Expect(rsp["kind"]).To(Equal("InvalidArgument"))
		Expect(rsp["error"]).To(ContainSubstring("invalid virtual page number"))
	})

	It("should reject malformed page numbers", func() {
		code, _ := post("/api/access/MMU/abc")

		Expect(code).To(Equal(http.StatusBadRequest))
		Expect(manager.Status().NumAccesses).To(BeZero())
	})

	It("should only accept accesses by POST", func() {
		code, _ := get("/api/access/MMU/1")

		Expect(code).ToNot(Equal(http.StatusOK))
		Expect(manager.Status().NumAccesses).To(BeZero())
	})

	It("should verify managers", func() {
		manager.AccessPage(1)

		_, body := get("/api/verify/MMU")

		Expect(body).To(MatchJSON(`{"ok": true}`))
	})

	It("should serialize manager details", func() {
		manager.AccessPage(1)

		code, body := get("/api/manager/MMU")

		Expect(code).To(Equal(http.StatusOK))
		Expect(string(body)).To(ContainSubstring("MMU"))
	})

	It("should list progress bars", func() {
		bar := m.CreateProgressBar("Run", 10)
		bar.IncrementInProgress(4)
		bar.MoveInProgressToFinished(3)

		_, body := get("/api/progress")

		var bars []map[string]any
		Expect(json.Unmarshal(body, &bars)).To(Succeed())
		Expect(bars).To(HaveLen(1))
		Expect(bars[0]["name"]).To(Equal("Run"))
		Expect(bars[0]["finished"]).To(BeNumerically("==", 3))
		Expect(bars[0]["in_progress"]).To(BeNumerically("==", 1))

		m.CompleteProgressBar(bar)

		_, body = get("/api/progress")
		Expect(body).To(MatchJSON(`[]`))
	})

	It("should report resources", func() {
		code, body := get("/api/resource")

		Expect(code).To(Equal(http.StatusOK))
		Expect(string(body)).To(ContainSubstring("memory_size"))
	})

	It("should serve the web page", func() {
		code, body := get("/")

		Expect(code).To(Equal(http.StatusOK))
		Expect(string(body)).To(HavePrefix("<!DOCTYPE html>"))
	})
})
