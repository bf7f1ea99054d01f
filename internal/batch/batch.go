// Package batch designs many beams concurrently with a bounded worker pool.
package batch

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"github.com/alexiusacademia/rcsched/internal/beam"
	"github.com/alexiusacademia/rcsched/internal/design"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Item is the outcome for one input beam. Exactly one of Design and Err is set.
type Item struct {
	Input  beam.Input
	Design *design.Design
	Err    error
}

// Result holds the outcome of a batch, in input order.
type Result struct {
	RunID    string
	Items    []Item
	Duration time.Duration
}

// Designs returns the successful designs in input order.
func (r *Result) Designs() []*design.Design {
	out := make([]*design.Design, 0, len(r.Items))
	for _, it := range r.Items {
		if it.Design != nil {
			out = append(out, it.Design)
		}
	}
	return out
}

// Failed returns the items whose input could not be designed.
func (r *Result) Failed() []Item {
	var out []Item
	for _, it := range r.Items {
		if it.Err != nil {
			out = append(out, it)
		}
	}
	return out
}

// Counts tallies designs by final state.
func (r *Result) Counts() map[design.State]int {
	counts := make(map[design.State]int)
	for _, it := range r.Items {
		if it.Design != nil {
			counts[it.Design.State()]++
		}
	}
	return counts
}

// Runner designs batches of beams.
type Runner struct {
	Options design.Options
	Workers int
	Logger  *slog.Logger
}

// NewRunner creates a runner. workers <= 0 uses one worker per core.
func NewRunner(opts design.Options, workers int, logger *slog.Logger) *Runner {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{Options: opts, Workers: workers, Logger: logger}
}

// Run designs every input. Each beam gets its own record and designers, so
// beams share nothing. Invalid inputs are reported per item and never stop
// the batch; only cancellation of ctx does.
func (r *Runner) Run(ctx context.Context, inputs []beam.Input) (*Result, error) {
	start := time.Now()
	res := &Result{
		RunID: uuid.NewString(),
		Items: make([]Item, len(inputs)),
	}
	log := r.Logger.With("run_id", res.RunID)
	log.Info("batch started", "beams", len(inputs), "workers", r.Workers)

	// gctx is cancelled once Wait returns; only the caller's ctx decides the outcome.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.Workers)

	for i, in := range inputs {
		if gctx.Err() != nil {
			break
		}
		i, in := i, in // per-iteration copies (go directive predates Go 1.22 loop semantics)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res.Items[i] = r.designOne(log, in)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res.Duration = time.Since(start)
	counts := res.Counts()
	log.Info("batch finished",
		"designed", len(res.Designs()),
		"failed", len(res.Failed()),
		"overstressed", counts[design.FlexOverstressed]+counts[design.ShearOverstressed],
		"unsolvable", counts[design.Unsolvable],
		"duration", res.Duration,
	)
	return res, nil
}

func (r *Runner) designOne(log *slog.Logger, in beam.Input) Item {
	rec, err := beam.New(in)
	if err != nil {
		log.Warn("invalid beam", "storey", in.Storey, "beam", in.ID, "error", err)
		return Item{Input: in, Err: err}
	}

	d := design.Run(rec, r.Options)
	log.Debug("beam designed", "storey", in.Storey, "beam", in.ID, "state", d.State().String())
	return Item{Input: in, Design: d}
}
