package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sarchlab/sramgen/datarecording"
	"github.com/sarchlab/sramgen/generator"
	"github.com/sarchlab/sramgen/hooking"
	"github.com/sarchlab/sramgen/wrapper"
)

var genCmd = &cobra.Command{
	Use:   "gen [arguments...]",
	Short: "Generate the module of a memory and print its instantiation",
	Long: `Generate the module of a memory and print its instantiation. ` +
		`The arguments are prefix, width, depth, topology, pipeline, ` +
		`bit-write-enable, reset, clock, and optionally the read clock, ` +
		`ECC, and a loop specification.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := parseRequest(args)
		if err != nil {
			return err
		}

		s, err := openSession(false)
		if err != nil {
			return err
		}

		g := s.generator()

		if s.cfg.RecordPath != "" {
			rec, err := s.recorder()
			if err != nil {
				return err
			}
			defer closeRecorder(rec)

			g.AcceptHook(rec)
		}

		out, err := g.Generate(r)
		if err != nil {
			return failed(s.requestFields(r), err, "cannot generate memory")
		}

		logrus.WithFields(r.Fields()).
			WithField("path", out.Path).
			Info("module written")

		fmt.Fprint(cmd.OutOrStdout(), out.Instantiation)

		return nil
	},
}

// generator builds a generator from the session. The run history is not
// attached; only commands that write modules record them.
func (s *session) generator() *generator.Generator {
	g := generator.MakeBuilder().
		WithCatalog(s.catalog).
		WithFittingOptions(s.cfg.Fitting).
		WithEmitter(wrapper.MakeBuilder().
			WithGuardPrefix(s.cfg.GuardPrefix).
			Build()).
		WithOutputDir(s.cfg.OutputDir).
		Build()

	if verbose {
		g.AcceptHook(hooking.NewLogHook(nil, logrus.DebugLevel))
	}

	return g
}

func (s *session) recorder() (*datarecording.Recorder, error) {
	dr, err := datarecording.New(s.cfg.RecordPath)
	if err != nil {
		return nil, failed(nil, err, "cannot open run history")
	}

	rec, err := datarecording.NewRecorder(dr)
	if err != nil {
		return nil, failed(nil, err, "cannot open run history")
	}

	return rec, nil
}

func closeRecorder(rec *datarecording.Recorder) {
	if err := rec.Close(); err != nil {
		logrus.WithError(err).Warn("cannot record run")
	}
}

func init() {
	rootCmd.AddCommand(genCmd)
}
