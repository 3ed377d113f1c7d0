package datarecording

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/xid"
	log "github.com/sirupsen/logrus"

	"github.com/sarchlab/sramgen/hooking"
)

// Names of the history tables.
const (
	GenerationTable = "generation"
	RunTable        = "run"
)

const timeFormat = "2006-01-02 15:04:05.000000000"

// A Generation is one row of the generation history.
type Generation struct {
	RunID        string
	Time         string
	Prefix       string
	Topology     string
	Width        int
	Depth        int
	Vendor       string
	Type         string
	TileDepth    int
	Iterations   int
	DepthResidue int
	Tiles        string
	WidthResidue int
	ECCWidth     int
	Module       string
	Fallback     bool
}

// A Run is one invocation of the generator.
type Run struct {
	RunID       string
	Command     string
	Start       string
	End         string
	Generations int
}

// Recordable is implemented by hook details that can be stored in the
// history.
type Recordable interface {
	HistoryEntry() Generation
}

// A Recorder appends the generations of one run to the history. It is a hook
// that records every written module.
type Recorder struct {
	recorder DataRecorder
	run      Run
}

// NewRecorder prepares the history tables and starts a new run.
func NewRecorder(dr DataRecorder) (*Recorder, error) {
	if err := dr.CreateTable(GenerationTable, Generation{}); err != nil {
		return nil, err
	}

	if err := dr.CreateTable(RunTable, Run{}); err != nil {
		return nil, err
	}

	return &Recorder{
		recorder: dr,
		run: Run{
			RunID:   xid.New().String(),
			Command: strings.Join(os.Args, " "),
			Start:   time.Now().Format(timeFormat),
		},
	}, nil
}

// RunID returns the identifier shared by all the rows of this run.
func (r *Recorder) RunID() string {
	return r.run.RunID
}

// Record buffers a generation.
func (r *Recorder) Record(g Generation) error {
	g.RunID = r.run.RunID
	if g.Time == "" {
		g.Time = time.Now().Format(timeFormat)
	}

	if err := r.recorder.InsertData(GenerationTable, g); err != nil {
		return err
	}

	r.run.Generations++

	return nil
}

// Func records the detail of module-written hooks.
func (r *Recorder) Func(ctx hooking.HookCtx) {
	if ctx.Pos != hooking.HookPosModuleWritten {
		return
	}

	entry, ok := ctx.Detail.(Recordable)
	if !ok {
		return
	}

	if err := r.Record(entry.HistoryEntry()); err != nil {
		log.WithError(err).Warn("cannot record generation")
	}
}

// Close records the run and flushes the history.
func (r *Recorder) Close() error {
	r.run.End = time.Now().Format(timeFormat)

	if err := r.recorder.InsertData(RunTable, r.run); err != nil {
		return err
	}

	return r.recorder.Close()
}

// ReadHistory returns the most recent generations, newest first. A limit of
// zero returns all of them.
func ReadHistory(
	ctx context.Context,
	reader DataReader,
	limit int,
) ([]Generation, error) {
	reader.MapTable(GenerationTable, Generation{})

	rows, _, err := reader.Query(ctx, GenerationTable, QueryParams{
		OrderBy: "Time DESC",
		Limit:   limit,
	})
	if err != nil {
		return nil, errors.Wrap(err, "reading history")
	}

	history := make([]Generation, len(rows))
	for i, row := range rows {
		history[i] = *row.(*Generation)
	}

	return history, nil
}
