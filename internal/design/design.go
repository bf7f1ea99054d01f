package design

import (
	"fmt"

	"github.com/alexiusacademia/rcsched/internal/beam"
)

// State is the outcome of a beam's design run
type State int

const (
	Nominal State = iota
	FlexOverstressed
	ShearOverstressed
	Unsolvable
)

func (s State) String() string {
	switch s {
	case Nominal:
		return "nominal"
	case FlexOverstressed:
		return "flexure overstressed"
	case ShearOverstressed:
		return "shear overstressed"
	case Unsolvable:
		return "unsolvable"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Design is the complete reinforcement design of one beam
type Design struct {
	Record  *beam.Record
	Options Options

	Flexural *Flexural
	Shear    *Shear
	Sideface *Sideface

	state State
}

// Run designs rec: flexure first, then stirrups, then side-face bars. Each
// stage reads only the finished results of the stages before it. rec is
// modified by the torsion split; pass a clone to keep the original.
func Run(rec *beam.Record, opts Options) *Design {
	opts = opts.normalized()
	d := &Design{Record: rec, Options: opts}

	if rec.FlexOverstress.Any() {
		d.transition(FlexOverstressed)
	}

	d.Flexural = NewFlexural(rec, opts)
	d.Flexural.Design()
	if d.Flexural.Exhausted {
		d.transition(FlexOverstressed)
	}

	if rec.ShearOverstress.Any() {
		d.transition(ShearOverstressed)
	}

	d.Shear = NewShear(rec, d.Flexural)
	d.Shear.Design()

	d.Sideface = NewSideface(rec, d.Flexural, d.Shear, opts)
	d.Sideface.Design()

	if !d.Shear.AllSolved() || d.Sideface.Unsolved() {
		d.transition(Unsolvable)
	}
	return d
}

// transition leaves Nominal at most once; every other state is terminal.
func (d *Design) transition(to State) {
	if d.state == Nominal {
		d.state = to
	}
}

// State returns the outcome of the run
func (d *Design) State() State { return d.state }

// Overstressed reports whether the beam ended in an overstressed state
func (d *Design) Overstressed() bool {
	return d.state == FlexOverstressed || d.state == ShearOverstressed
}
