package design

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/rcsched/internal/aci"
	"github.com/alexiusacademia/rcsched/internal/beam"
)

// Shear designs the stirrups of one beam from its record and the finished
// flexural design.
type Shear struct {
	rec  *beam.Record
	flex *Flexural

	// Leg counts tried by the search
	Legs []int

	// Av + 2·At per station (mm²/m)
	Demand beam.Triple

	// Allowed spacings at the ends and at midspan, largest first
	Spacings       []float64
	CenterSpacings []float64

	Links [3]StirrupChoice

	// Vs exceeds 0.33·√f'c·bw·d, so transverse leg spacing must be checked
	CheckTransverseSpacing bool

	done bool
}

// NewShear prepares the stirrup design of rec. flex must already be designed.
func NewShear(rec *beam.Record, flex *Flexural) *Shear {
	return &Shear{
		rec:            rec,
		flex:           flex,
		Spacings:       append([]float64(nil), aci.StirrupSpacings...),
		CenterSpacings: append([]float64(nil), aci.StirrupSpacings...),
	}
}

// Design runs the stirrup design once. Later calls are no-ops.
func (sh *Shear) Design() {
	if sh.done {
		return
	}
	sh.done = true

	sh.Legs = legCandidates(sh.rec.Width, sh.rec.EffectiveDepth(), sh.flex.Bars)
	sh.CheckTransverseSpacing = sh.transverseCheck()

	if !sh.Overstressed() {
		for _, s := range beam.Stations {
			sh.Demand[s] = roundArea(sh.rec.ShearArea[s] + 2*sh.rec.TorsionTransverse[s])
		}
	}

	if !sh.flex.Overstressed() && !sh.Overstressed() && sh.flex.AllSolved() {
		sh.Spacings, sh.CenterSpacings = spacingLimits(sh.rec.EffectiveDepth(), sh.flex.SmallestDiameter())
	}

	for _, s := range beam.Stations {
		sh.Links[s] = sh.designStation(s)
	}

	sh.matchEnds()
}

func (sh *Shear) designStation(s beam.Station) StirrupChoice {
	demand := sh.Demand[s]
	switch {
	case sh.Overstressed():
		return StirrupChoice{Label: LabelOverstressed}
	case sh.flex.Overstressed():
		return StirrupChoice{Label: LabelNotApplicable, Required: demand}
	}

	spacings := sh.Spacings
	if s == beam.Middle {
		spacings = sh.CenterSpacings
	}

	set, ok := SearchStirrups(demand, sh.rec.TorsionTransverse[s], aci.StirrupDiameters, sh.Legs, spacings)
	if !ok {
		return StirrupChoice{Label: LabelCannotSatisfy, Required: demand}
	}

	provided := roundArea(set.Area)
	return StirrupChoice{
		Diameter:    set.Diameter,
		Legs:        set.Legs,
		Spacing:     set.Spacing,
		Label:       fmt.Sprintf("%dL-T%s@%s", set.Legs, formatDiameter(set.Diameter), formatDiameter(set.Spacing)),
		Required:    demand,
		Provided:    provided,
		Utilization: utilization(demand, provided),
		Solved:      true,
	}
}

// matchEnds details both ends with the heavier of the two end arrangements
func (sh *Shear) matchEnds() {
	left, right := sh.Links[beam.Left], sh.Links[beam.Right]
	if !left.Solved || !right.Solved {
		return
	}

	src := left
	if right.Provided > left.Provided {
		src = right
	}
	for _, s := range []beam.Station{beam.Left, beam.Right} {
		req := sh.Links[s].Required
		sh.Links[s] = src
		sh.Links[s].Required = req
		sh.Links[s].Utilization = utilization(req, src.Provided)
	}
}

func (sh *Shear) transverseCheck() bool {
	d := sh.rec.EffectiveDepth()
	vs := sh.rec.ShearForce.Max() - aci.ConcreteShearCapacity(sh.rec.Grade, sh.rec.Width, d)
	return vs > aci.TransverseSpacingLimit(sh.rec.Grade, sh.rec.Width, d)
}

// Overstressed reports whether the shear or torsion envelope was flagged
func (sh *Shear) Overstressed() bool {
	return sh.rec.ShearOverstress.Any()
}

// MaxDiameter is the largest stirrup diameter used at any station
func (sh *Shear) MaxDiameter() float64 {
	m := 0.0
	for _, l := range sh.Links {
		m = math.Max(m, l.Diameter)
	}
	return m
}

// AllSolved reports whether every station found an arrangement
func (sh *Shear) AllSolved() bool {
	for _, l := range sh.Links {
		if !l.Solved {
			return false
		}
	}
	return true
}

// legCandidates lists the stirrup leg counts worth trying. Narrow beams only
// get as many legs as they have bars across the width.
func legCandidates(width, effectiveDepth float64, bars int) []int {
	maxSpacing := math.Min(effectiveDepth, aci.MaxTransverseSpacing)
	required := (width - aci.StirrupCoverAllowance) / maxSpacing
	if required < 2 {
		switch bars {
		case 2:
			return []int{2}
		case 3:
			return []int{2, 3}
		}
	}
	return []int{2, 3, 4}
}

// spacingLimits returns the allowed end and midspan spacings
// ACI 318-19 Section 18.6.4.4
func spacingLimits(effectiveDepth, smallestBar float64) (ends, center []float64) {
	limit := math.Min(
		math.Min(effectiveDepth/4, 8*smallestBar),
		math.Min(24*aci.AssumedStirrupDiameter, aci.MaxStirrupSpacing),
	)
	centerLimit := math.Min(effectiveDepth/2, aci.MaxStirrupSpacing)

	return aci.AllowedSpacings(aci.SnapSpacing(limit)), aci.AllowedSpacings(aci.SnapSpacing(centerLimit))
}
