package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sarchlab/sramgen/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Summarize the macros of the vendor catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(true)
		if err != nil {
			return err
		}

		c := s.catalog
		policy := catalog.PolicyFor(c.Vendor())

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "vendor %s, technology %s\n", c.Vendor(), c.Technology())
		fmt.Fprintf(w, "directory %s, %d macros\n", c.Dir(), c.NumMacros())
		fmt.Fprintf(w, "split clock domains %t, power-of-two depths %t, "+
			"range compare banks %t\n",
			policy.SplitClockDomains, policy.PowerOfTwoDepths,
			policy.RangeCompareBanks)

		for _, typ := range c.Types() {
			fmt.Fprintf(w, "%s:\n", typ)

			for _, d := range c.Depths(typ) {
				widths := c.Widths(d, typ)
				names := make([]string, len(widths))
				for i, width := range widths {
					names[i] = fmt.Sprint(width)
				}

				fmt.Fprintf(w, "  %6d: %s\n", d, strings.Join(names, " "))
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}
