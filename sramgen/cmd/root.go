// Package cmd provides the command-line interface of sramgen.
package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

var (
	configPath  string
	catalogRoot string
	technology  string
	chip        string
	outputDir   string
	macros      []string
	verbose     bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sramgen",
	Short: "Sramgen builds logical memories out of vendor SRAM macros.",
	Long: `Sramgen builds logical memories out of vendor SRAM macros. ` +
		`It fits the requested width and depth to the macros of the vendor ` +
		`catalog, wires them into one module, and prints the instantiation.`,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cmd.SilenceUsage = true

		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "configuration file")
	flags.StringVar(&catalogRoot, "catalog-root", "",
		"directory holding the technology catalogs")
	flags.StringVar(&technology, "tech", "",
		"technology identifier, defaults to $SRAMGEN_TECH")
	flags.StringVar(&chip, "chip", "",
		"chip identifier, defaults to $SRAMGEN_CHIP")
	flags.StringVarP(&outputDir, "out", "o", "",
		"directory that receives the module files")
	flags.StringSliceVar(&macros, "macros", nil,
		"use these macros instead of searching the catalog")
	flags.BoolVarP(&verbose, "verbose", "v", false, "log every stage")
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Failures have been logged by the commands; the process
// exits through atexit so that the run history is flushed.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
