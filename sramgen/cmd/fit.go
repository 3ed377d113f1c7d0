package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var fitCmd = &cobra.Command{
	Use:   "fit [arguments...]",
	Short: "Print the macros that would implement a memory",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := parseRequest(args)
		if err != nil {
			return err
		}

		s, err := openSession(true)
		if err != nil {
			return err
		}

		plan, err := s.generator().Fit(r)
		if err != nil {
			return failed(s.requestFields(r), err, "cannot fit memory")
		}

		w := cmd.OutOrStdout()
		fmt.Fprintln(w, r)
		fmt.Fprintln(w, plan)

		offsets := plan.TileOffsets()
		for i, m := range plan.Macros {
			fmt.Fprintf(w, "  tile %d: %s, bits [%d:%d]\n",
				i, m, offsets[i]+plan.Tiles[i]-1, offsets[i])
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(fitCmd)
}
