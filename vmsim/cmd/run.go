package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/sarchlab/vmsim/datarecording"
	"github.com/sarchlab/vmsim/mem/trace"
	"github.com/sarchlab/vmsim/mem/vm/mmu"
	"github.com/sarchlab/vmsim/monitoring"
	"github.com/spf13/cobra"
)

type runOptions struct {
	workload

	recordPath  string
	logPath     string
	verify      bool
	quiet       bool
	monitor     bool
	monitorPort int
	openBrowser bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a reference string through a memory manager.",
	Long: "`run --frames 3 --policy lru --seq \"1 2 3 1 4\"` prints the " +
		"outcome of every access and the final state of the manager.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		for flag, env := range map[string]string{
			"frames":       envFrames,
			"policy":       envPolicy,
			"monitor-port": envMonitorPort,
		} {
			if err := envOverride(cmd, flag, env); err != nil {
				return fmt.Errorf("%s: %w", env, err)
			}
		}

		opts := runOptions{}
		flags := cmd.Flags()
		opts.frames, _ = flags.GetInt("frames")
		opts.policy, _ = flags.GetString("policy")
		opts.seq, _ = flags.GetString("seq")
		opts.traceFile, _ = flags.GetString("trace")
		opts.addresses, _ = flags.GetBool("addresses")
		opts.log2PageSize, _ = flags.GetUint64("log2-page-size")
		opts.recordPath, _ = flags.GetString("record")
		opts.logPath, _ = flags.GetString("log")
		opts.verify, _ = flags.GetBool("verify")
		opts.quiet, _ = flags.GetBool("quiet")
		opts.monitor, _ = flags.GetBool("monitor")
		opts.monitorPort, _ = flags.GetInt("monitor-port")
		opts.openBrowser, _ = flags.GetBool("open-browser")

		return simulate(cmd.Context(), opts, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	addWorkloadFlags(runCmd)

	runCmd.Flags().StringP("policy", "p", "fifo",
		"Replacement policy: fifo, lru, clock, random or random(<seed>).")

	runCmd.Flags().String("record", "",
		"Record every access into <path>.sqlite3.")
	runCmd.Flags().String("log", "", "Append every access to a text file.")
	runCmd.Flags().Bool("verify", false,
		"Check the manager invariants after every access.")
	runCmd.Flags().BoolP("quiet", "q", false,
		"Only print the final state.")
	runCmd.Flags().Bool("monitor", false,
		"Serve the monitoring web page and wait for Ctrl+C after the run.")
	runCmd.Flags().Int("monitor-port", 0,
		"Port of the monitoring server. A random port is used if not set.")
	runCmd.Flags().Bool("open-browser", false,
		"Open the monitoring web page in a browser.")
}

func addWorkloadFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("frames", "f", 4, "Number of physical frames.")
	cmd.Flags().StringP("seq", "s", "",
		"Reference string, separated by spaces or commas.")
	cmd.Flags().StringP("trace", "t", "",
		"File holding the reference string. '#' starts a comment.")
	cmd.Flags().Bool("addresses", false,
		"Treat the references as byte addresses instead of page numbers.")
	cmd.Flags().Uint64("log2-page-size", 12,
		"Log2 of the page size, used with --addresses.")
}

func simulate(ctx context.Context, opts runOptions, out io.Writer) error {
	seq, err := opts.loadSequence()
	if err != nil {
		return err
	}

	builder, err := opts.builder()
	if err != nil {
		return err
	}

	if err := checkRecordPath(opts.recordPath); err != nil {
		return err
	}

	manager := builder.Build("MMU")

	counter := trace.NewStatsCounter()
	manager.AcceptHook(counter)

	if opts.logPath != "" {
		f, err := os.OpenFile(opts.logPath,
			os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()

		manager.AcceptHook(trace.NewLogTracer(log.New(f, "", 0)))
	}

	if opts.recordPath != "" {
		recorder := datarecording.New(opts.recordPath)
		defer recorder.Close()

		manager.AcceptHook(trace.NewDBTracer(recorder))
	}

	var monitor *monitoring.Monitor
	var bar *monitoring.ProgressBar
	if opts.monitor {
		monitor = monitoring.NewMonitor().
			WithPortNumber(opts.monitorPort).
			WithOpenBrowser(opts.openBrowser)
		monitor.RegisterManager(manager)
		monitor.StartServer()

		bar = monitor.CreateProgressBar("Accesses", uint64(len(seq)))
	}

	err = replay(opts, manager, seq, bar, out)
	if err != nil {
		return err
	}

	printStatus(out, manager.Status(), counter.Snapshot())

	if monitor != nil {
		monitor.CompleteProgressBar(bar)
		waitForInterrupt(ctx, out)
	}

	return nil
}

// checkRecordPath rejects a recording that would overwrite an existing
// database, since the recorder panics in that case.
func checkRecordPath(path string) error {
	if path == "" {
		return nil
	}

	filename := path + ".sqlite3"

	_, err := os.Stat(filename)
	if err == nil {
		return fmt.Errorf("recording %s already exists", filename)
	}

	if !os.IsNotExist(err) {
		return err
	}

	return nil
}

func replay(
	opts runOptions,
	manager *mmu.Manager,
	seq []int64,
	bar *monitoring.ProgressBar,
	out io.Writer,
) error {
	for i, value := range seq {
		outcome := opts.access(manager, value)

		if bar != nil {
			bar.IncrementFinished(1)
		}

		if !opts.quiet {
			fmt.Fprintf(out, "%6d  %8d  %s\n", i+1, value, outcome)
		}

		if outcome.Kind == mmu.InternalInconsistency {
			return fmt.Errorf("access %d: %w", i+1, outcome.Err())
		}

		if opts.verify {
			if err := manager.Verify(); err != nil {
				return fmt.Errorf("access %d: %w", i+1, err)
			}
		}
	}

	return nil
}

func printStatus(out io.Writer, status mmu.Status, stats trace.Stats) {
	fmt.Fprintf(out, "\nPolicy: %s\n", status.PolicyName)
	fmt.Fprintf(out, "%s\n", status.PolicyState)

	frames := make([]string, 0, len(status.Frames))
	for _, slot := range status.Frames {
		frames = append(frames, slot.String())
	}

	mappings := make([]string, 0, len(status.PageTable))
	for _, m := range status.PageTable {
		mappings = append(mappings, m.String())
	}

	fmt.Fprintf(out, "Frames (%d): [%s]\n",
		status.TotalFrames, strings.Join(frames, ", "))
	fmt.Fprintf(out, "Page table: [%s]\n", strings.Join(mappings, ", "))
	fmt.Fprintf(out,
		"Accesses: %d, hits: %d, faults: %d, evictions: %d, errors: %d, "+
			"hit ratio: %.3f\n",
		stats.Accesses, stats.Hits, stats.Faults(), stats.Evictions,
		stats.Errors, stats.HitRatio())
}

func waitForInterrupt(ctx context.Context, out io.Writer) {
	if ctx == nil {
		ctx = context.Background()
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	fmt.Fprintln(out, "Press Ctrl+C to exit.")
	<-ctx.Done()
}
