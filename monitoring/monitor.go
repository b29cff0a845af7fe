// Package monitoring turns a simulation into a web server, so that the memory
// managers can be inspected and driven while the simulation runs.
package monitoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"sync"
	"time"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/rs/xid"
	"github.com/sarchlab/vmsim/mem/trace"
	"github.com/sarchlab/vmsim/mem/vm"
	"github.com/sarchlab/vmsim/mem/vm/mmu"
	"github.com/sarchlab/vmsim/monitoring/web"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"
)

// Monitor can turn a simulation into a server and allows external monitoring
// and controlling of the memory managers.
type Monitor struct {
	portNumber  int
	openBrowser bool

	managersLock sync.Mutex
	managers     []*mmu.Manager
	stats        map[string]*trace.StatsCounter

	progressBarsLock sync.Mutex
	progressBars     []*ProgressBar
}

// NewMonitor creates a new Monitor
func NewMonitor() *Monitor {
	return &Monitor{
		stats: make(map[string]*trace.StatsCounter),
	}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// WithOpenBrowser makes the monitor open the web page once the server starts.
func (m *Monitor) WithOpenBrowser(open bool) *Monitor {
	m.openBrowser = open
	return m
}

// RegisterManager registers a memory manager to be monitored. A stats counter
// is attached to the manager, so only the accesses after the registration are
// counted. Names must be unique.
func (m *Monitor) RegisterManager(manager *mmu.Manager) {
	m.managersLock.Lock()
	defer m.managersLock.Unlock()

	if _, exists := m.stats[manager.Name()]; exists {
		panic(fmt.Sprintf("manager %s is already registered", manager.Name()))
	}

	counter := trace.NewStatsCounter()
	manager.AcceptHook(counter)

	m.managers = append(m.managers, manager)
	m.stats[manager.Name()] = counter
}

// CreateProgressBar creates a new progress bar.
func (m *Monitor) CreateProgressBar(name string, total uint64) *ProgressBar {
	bar := &ProgressBar{
		ID:        xid.New().String(),
		Name:      name,
		StartTime: time.Now(),
		Total:     total,
	}

	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	m.progressBars = append(m.progressBars, bar)

	return bar
}

// CompleteProgressBar removes a bar to be shown on the webpage.
func (m *Monitor) CompleteProgressBar(pb *ProgressBar) {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	newBars := make([]*ProgressBar, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		if b != pb {
			newBars = append(newBars, b)
		}
	}

	m.progressBars = newBars
}

func (m *Monitor) router() *mux.Router {
	r := mux.NewRouter()

	fs := web.Assets()
	fServer := http.FileServer(fs)
	r.HandleFunc("/api/list_managers", m.listManagers)
	r.HandleFunc("/api/status/{name}", m.status)
	r.HandleFunc("/api/stats/{name}", m.reportStats)
	r.HandleFunc("/api/verify/{name}", m.verify)
	r.HandleFunc("/api/manager/{name}", m.managerDetails)
	r.HandleFunc("/api/access/{name}/{vpn}", m.access).Methods(http.MethodPost)
	r.HandleFunc("/api/progress", m.listProgressBars)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)
	r.PathPrefix("/").Handler(fServer)

	return r
}

// StartServer starts the monitor as a web server with a custom port if wanted.
// It returns the URL of the web page.
func (m *Monitor) StartServer() string {
	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	url := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)

	fmt.Fprintf(os.Stderr, "Monitoring simulation with %s\n", url)

	r := m.router()

	go func() {
		err := http.Serve(listener, r)
		dieOnErr(err)
	}()

	if m.openBrowser {
		err = browser.OpenURL(url)
		if err != nil {
			log.Printf("cannot open browser: %v", err)
		}
	}

	return url
}

func (m *Monitor) listManagers(w http.ResponseWriter, _ *http.Request) {
	m.managersLock.Lock()
	names := make([]string, 0, len(m.managers))
	for _, manager := range m.managers {
		names = append(names, manager.Name())
	}
	m.managersLock.Unlock()

	writeJSON(w, names)
}

func (m *Monitor) status(w http.ResponseWriter, r *http.Request) {
	manager := m.findManagerOr404(w, mux.Vars(r)["name"])
	if manager == nil {
		return
	}

	writeJSON(w, manager.Status())
}

type statsRsp struct {
	trace.Stats
	HitRatio float64 `json:"hit_ratio"`
}

func (m *Monitor) reportStats(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	manager := m.findManagerOr404(w, name)
	if manager == nil {
		return
	}

	m.managersLock.Lock()
	stats := m.stats[name].Snapshot()
	m.managersLock.Unlock()

	writeJSON(w, statsRsp{Stats: stats, HitRatio: stats.HitRatio()})
}

type verifyRsp struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

func (m *Monitor) verify(w http.ResponseWriter, r *http.Request) {
	manager := m.findManagerOr404(w, mux.Vars(r)["name"])
	if manager == nil {
		return
	}

	rsp := verifyRsp{OK: true}
	if err := manager.Verify(); err != nil {
		rsp = verifyRsp{OK: false, Error: err.Error()}
	}

	writeJSON(w, rsp)
}

func (m *Monitor) managerDetails(w http.ResponseWriter, r *http.Request) {
	manager := m.findManagerOr404(w, mux.Vars(r)["name"])
	if manager == nil {
		return
	}

	status := manager.Status()

	serializer := goseth.NewSerializer()
	serializer.SetRoot(&status)
	serializer.SetMaxDepth(2)
	err := serializer.Serialize(w)

	dieOnErr(err)
}

type accessRsp struct {
	mmu.Outcome
	Error string `json:"error,omitempty"`
}

func (m *Monitor) access(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	manager := m.findManagerOr404(w, vars["name"])
	if manager == nil {
		return
	}

	vpn, err := strconv.ParseInt(vars["vpn"], 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintf(w, "Error: %s", err)
		return
	}

	outcome := manager.AccessPage(vm.VPN(vpn))

	rsp := accessRsp{Outcome: outcome}
	if err := outcome.Err(); err != nil {
		rsp.Error = err.Error()
	}

	writeJSON(w, rsp)
}

func (m *Monitor) findManagerOr404(
	w http.ResponseWriter,
	name string,
) *mmu.Manager {
	m.managersLock.Lock()
	defer m.managersLock.Unlock()

	for _, manager := range m.managers {
		if manager.Name() == name {
			return manager
		}
	}

	w.WriteHeader(http.StatusNotFound)
	_, err := w.Write([]byte("Manager not found"))
	dieOnErr(err)

	return nil
}

func (m *Monitor) listProgressBars(w http.ResponseWriter, _ *http.Request) {
	m.progressBarsLock.Lock()
	bars := make([]progressBarRsp, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		bars = append(bars, b.snapshot())
	}
	m.progressBarsLock.Unlock()

	writeJSON(w, bars)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	process, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := process.CPUPercent()
	dieOnErr(err)

	memorySize, err := process.MemoryInfo()
	dieOnErr(err)

	rsp := resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	}

	writeJSON(w, rsp)
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	dieOnErr(err)

	time.Sleep(time.Second)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	writeJSON(w, prof)
}

func writeJSON(w http.ResponseWriter, v any) {
	bytes, err := json.Marshal(v)
	dieOnErr(err)

	w.Header().Set("Content-Type", "application/json")

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
