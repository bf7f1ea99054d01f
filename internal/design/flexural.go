package design

import (
	"fmt"
	"strings"

	"github.com/alexiusacademia/rcsched/internal/aci"
	"github.com/alexiusacademia/rcsched/internal/beam"
)

// Face selects the top or bottom flexural bars
type Face int

const (
	Top Face = iota
	Bottom
)

func (f Face) String() string {
	if f == Top {
		return "top"
	}
	return "bottom"
}

// Flexural designs the longitudinal bars of one beam
type Flexural struct {
	rec  *beam.Record
	opts Options

	// Bars in each layer
	Bars int

	// Torsion-longitudinal demand before any split
	PreSplitTorsion beam.Triple
	TorsionSplit    bool

	Top    [3]RebarChoice
	Bottom [3]RebarChoice

	// Spare flexural area per station, available to resist torsion on deep beams
	Residual beam.Triple

	// A station needed more layers than allowed
	Exhausted bool

	done bool
}

// NewFlexural prepares the flexural design of rec
func NewFlexural(rec *beam.Record, opts Options) *Flexural {
	return &Flexural{
		rec:  rec,
		opts: opts.normalized(),
	}
}

// Design runs the flexural design once. Later calls are no-ops.
func (f *Flexural) Design() {
	if f.done {
		return
	}
	f.done = true

	f.Bars = aci.BarsPerLayer(f.rec.Width)
	f.PreSplitTorsion = f.rec.TorsionLongitudinal
	f.splitTorsion()

	f.Top = f.designFace(Top, f.rec.Top)
	f.Bottom = f.designFace(Bottom, f.rec.Bottom)

	if f.rec.Span <= f.opts.ContinuitySpan {
		mergeFace(&f.Top)
		mergeFace(&f.Bottom)
	}

	if f.rec.Depth() > f.opts.DeepBeamDepth && !f.Overstressed() {
		for _, s := range beam.Stations {
			f.Residual[s] = spare(f.Top[s]) + spare(f.Bottom[s])
		}
	}
}

// splitTorsion folds torsion-longitudinal demand of shallow beams into the
// top and bottom bars, half to each face.
func (f *Flexural) splitTorsion() {
	if f.rec.FlexOverstress.Any() || f.rec.Depth() > f.opts.DeepBeamDepth {
		return
	}
	for _, s := range beam.Stations {
		half := f.rec.TorsionLongitudinal[s] / 2
		f.rec.Top[s] += half
		f.rec.Bottom[s] += half
		f.rec.TorsionLongitudinal[s] = 0
	}
	f.TorsionSplit = true
}

func (f *Flexural) designFace(face Face, required beam.Triple) [3]RebarChoice {
	var out [3]RebarChoice
	flagged := f.faceFlagged(face)

	for _, s := range beam.Stations {
		req := required[s]
		if flagged {
			out[s] = RebarChoice{Label: LabelOverstressed, Required: req}
			continue
		}

		set, ok := SearchFlexural(req, f.Bars, aci.FlexuralDiameters, f.opts.MaxLayers)
		if !ok {
			out[s] = RebarChoice{Label: LayerCapMessage(f.opts.MaxLayers), Required: req}
			f.Exhausted = true
			continue
		}

		provided := roundArea(set.Area)
		out[s] = RebarChoice{
			Diameters:   set.Diameters,
			Label:       barLabel(f.Bars, set.Diameters),
			Required:    req,
			Provided:    provided,
			Utilization: utilization(req, provided),
			Solved:      true,
		}
	}
	return out
}

func (f *Flexural) faceFlagged(face Face) bool {
	flags := f.rec.FlexOverstress
	if f.opts.FlagMapping == FlagMappingPerFace {
		if face == Top {
			return flags.Negative
		}
		return flags.Positive
	}
	return flags.Any()
}

// mergeFace gives every solved station the arrangement of the station with
// the largest provided area, the first one on ties.
func mergeFace(face *[3]RebarChoice) {
	best := -1
	for i, c := range face {
		if c.Solved && (best < 0 || c.Provided > face[best].Provided) {
			best = i
		}
	}
	if best < 0 {
		return
	}

	src := face[best]
	for i := range face {
		if !face[i].Solved {
			continue
		}
		req := face[i].Required
		face[i] = src
		face[i].Diameters = append([]float64(nil), src.Diameters...)
		face[i].Required = req
		face[i].Utilization = utilization(req, src.Provided)
	}
}

func spare(c RebarChoice) float64 {
	if !c.Solved {
		return 0
	}
	return c.Provided - c.Required
}

// barLabel writes an arrangement as "3T25 + 3T16"
func barLabel(bars int, diameters []float64) string {
	parts := make([]string, len(diameters))
	for i, d := range diameters {
		parts[i] = fmt.Sprintf("%dT%s", bars, formatDiameter(d))
	}
	return strings.Join(parts, " + ")
}

// Face returns the choices of one face
func (f *Flexural) Face(face Face) [3]RebarChoice {
	if face == Top {
		return f.Top
	}
	return f.Bottom
}

// Overstressed reports whether the flexural design cannot support later stages
func (f *Flexural) Overstressed() bool {
	return f.rec.FlexOverstress.Any() || f.Exhausted
}

// AllSolved reports whether all six stations found an arrangement
func (f *Flexural) AllSolved() bool {
	for _, s := range beam.Stations {
		if !f.Top[s].Solved || !f.Bottom[s].Solved {
			return false
		}
	}
	return true
}

// SmallestDiameter is the smallest longitudinal bar used at any station,
// or zero when nothing is solved.
func (f *Flexural) SmallestDiameter() float64 {
	smallest := 0.0
	for _, face := range [][3]RebarChoice{f.Top, f.Bottom} {
		for _, c := range face {
			for _, d := range c.Diameters {
				if smallest == 0 || d < smallest {
					smallest = d
				}
			}
		}
	}
	return smallest
}

// MaxLayerSum is the largest summed layer diameter over the stations of a face
func (f *Flexural) MaxLayerSum(face Face) float64 {
	m := 0.0
	for _, c := range f.Face(face) {
		if sum := c.LayerSum(); sum > m {
			m = sum
		}
	}
	return m
}
