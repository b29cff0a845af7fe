package cmd

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/sarchlab/vmsim/datarecording"
	"github.com/sarchlab/vmsim/mem/trace"
	"github.com/spf13/cobra"
)

type inspectOptions struct {
	path    string
	kind    string
	manager string
	limit   int
	offset  int
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <recording.sqlite3>",
	Short: "Print the accesses stored by `run --record`.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := inspectOptions{path: args[0]}
		flags := cmd.Flags()
		opts.kind, _ = flags.GetString("kind")
		opts.manager, _ = flags.GetString("manager")
		opts.limit, _ = flags.GetInt("limit")
		opts.offset, _ = flags.GetInt("offset")

		return inspect(cmd.Context(), opts, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().String("kind", "",
		"Only show accesses of an outcome kind, such as FaultEvicted.")
	inspectCmd.Flags().String("manager", "",
		"Only show accesses of a memory manager.")
	inspectCmd.Flags().Int("limit", 0, "Maximum number of rows to show.")
	inspectCmd.Flags().Int("offset", 0, "Number of rows to skip.")
}

func inspect(ctx context.Context, opts inspectOptions, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	reader, err := datarecording.NewReader(opts.path)
	if err != nil {
		return err
	}
	defer reader.Close()

	entries, total, err := trace.QueryAccesses(ctx, reader, trace.AccessFilter{
		Manager: opts.manager,
		Kind:    opts.kind,
		Limit:   opts.limit,
		Offset:  opts.offset,
	})
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "MANAGER\tSEQ\tKIND\tVPN\tFRAME\tEVICTED")

	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%d\t%d\t%d\n",
			e.Manager, e.Seq, e.Kind, e.VPN, e.Frame, e.EvictedVPN)
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "%d of %d accesses\n", len(entries), total)

	return nil
}
