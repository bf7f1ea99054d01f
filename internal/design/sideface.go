package design

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/rcsched/internal/aci"
	"github.com/alexiusacademia/rcsched/internal/beam"
)

// Sideface designs the longitudinal bars on the vertical faces of deep beams
type Sideface struct {
	rec   *beam.Record
	flex  *Flexural
	shear *Shear
	opts  Options

	Active bool

	// Torsion-longitudinal demand left after the flexural residual, per station
	Required beam.Triple

	// Height between the stirrups and the top and bottom bars (mm)
	ClearSpace float64

	Choice SidefaceChoice

	done bool
}

// NewSideface prepares the side-face design. flex and shear must already be designed.
func NewSideface(rec *beam.Record, flex *Flexural, shear *Shear, opts Options) *Sideface {
	return &Sideface{
		rec:    rec,
		flex:   flex,
		shear:  shear,
		opts:   opts.normalized(),
		Choice: SidefaceChoice{Label: LabelNotApplicable},
	}
}

// Design runs the side-face design once. Later calls are no-ops.
func (sf *Sideface) Design() {
	if sf.done {
		return
	}
	sf.done = true

	sf.Active = sf.rec.Depth() > sf.opts.DeepBeamDepth && !sf.flex.Overstressed() && !sf.shear.Overstressed()
	if !sf.Active {
		return
	}

	for _, s := range beam.Stations {
		sf.Required[s] = sf.flex.PreSplitTorsion[s] - sf.flex.Residual[s]
	}
	sf.ClearSpace = sf.rec.EffectiveDepth() -
		2*sf.shear.MaxDiameter() -
		sf.flex.MaxLayerSum(Top) -
		sf.flex.MaxLayerSum(Bottom)

	governing := sf.Required.Max()
	bars, ok := SearchSideface(governing, sf.ClearSpace, aci.SidefaceDiameters, aci.SidefaceSpacings)
	if !ok {
		sf.Choice = SidefaceChoice{Label: LabelCannotSatisfy, Required: governing}
		return
	}

	provided := roundArea(bars.Area)
	sf.Choice = SidefaceChoice{
		Diameter:    bars.Diameter,
		Spacing:     bars.Spacing,
		Label:       fmt.Sprintf("T%s@%s EF", formatDiameter(bars.Diameter), formatDiameter(bars.Spacing)),
		Required:    governing,
		Provided:    provided,
		Utilization: utilization(math.Max(governing, 0), provided),
		Solved:      true,
	}
}

// Unsolved reports whether an active side-face design found no arrangement
func (sf *Sideface) Unsolved() bool {
	return sf.Active && !sf.Choice.Solved
}
