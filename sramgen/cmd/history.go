package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/sarchlab/sramgen/datarecording"
)

var historyLimit int

var errNoHistory = errors.New("recordPath is not configured")

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List the recorded generations, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if cfg.RecordPath == "" {
			return failed(nil, errNoHistory, "no run history")
		}

		reader, err := datarecording.NewReader(cfg.RecordPath)
		if err != nil {
			return failed(nil, err, "cannot open run history")
		}
		defer reader.Close()

		history, err := datarecording.ReadHistory(
			context.Background(), reader, historyLimit)
		if err != nil {
			return failed(nil, err, "cannot read run history")
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "TIME\tRUN\tMODULE\tVENDOR\tTYPE\tTILES\tBANKS\tRESIDUE")

		for _, g := range history {
			module := g.Module
			if g.Fallback {
				module += " (behavioral)"
			}

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d x %s\t%d\t%d/%d\n",
				g.Time, g.RunID, module, g.Vendor, g.Type,
				g.TileDepth, g.Tiles, g.Iterations,
				g.DepthResidue, g.WidthResidue)
		}

		return w.Flush()
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20,
		"number of generations to list, 0 for all")
	rootCmd.AddCommand(historyCmd)
}
