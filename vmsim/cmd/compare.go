package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/sarchlab/vmsim/mem/trace"
	"github.com/sarchlab/vmsim/mem/vm/replacement"
	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Run a reference string through every replacement policy.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := envOverride(cmd, "frames", envFrames); err != nil {
			return fmt.Errorf("%s: %w", envFrames, err)
		}

		w := workload{}
		flags := cmd.Flags()
		w.frames, _ = flags.GetInt("frames")
		w.seq, _ = flags.GetString("seq")
		w.traceFile, _ = flags.GetString("trace")
		w.addresses, _ = flags.GetBool("addresses")
		w.log2PageSize, _ = flags.GetUint64("log2-page-size")
		seed, _ := flags.GetInt64("seed")

		return compare(w, seed, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)
	addWorkloadFlags(compareCmd)

	compareCmd.Flags().Int64("seed", 0, "Seed of the Random policy.")
}

// compare replays the same reference string with one fresh manager per
// policy and prints one row per policy.
func compare(w workload, seed int64, out io.Writer) error {
	seq, err := w.loadSequence()
	if err != nil {
		return err
	}

	if err := w.validate(); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "POLICY\tHITS\tFAULTS\tEVICTIONS\tERRORS\tHIT RATIO\tRESIDENT")

	for _, spec := range replacement.AllSpecs(seed) {
		manager := w.builderWithSpec(spec).Build(spec.String())

		counter := trace.NewStatsCounter()
		manager.AcceptHook(counter)

		for _, value := range seq {
			w.access(manager, value)
		}

		stats := counter.Snapshot()

		resident := make([]string, 0)
		for _, m := range manager.Status().PageTable {
			resident = append(resident, fmt.Sprint(m.VPN))
		}

		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%.3f\t[%s]\n",
			spec, stats.Hits, stats.Faults(), stats.Evictions, stats.Errors,
			stats.HitRatio(), strings.Join(resident, " "))
	}

	return tw.Flush()
}
