package design

// Quantities are the concrete and reinforcement take-off of one beam.
// Areas are cross-sectional in m², volumes in m³.
type Quantities struct {
	ConcreteArea   float64
	ConcreteVolume float64

	FlexuralArea   float64
	FlexuralVolume float64

	ShearArea   float64
	ShearVolume float64

	SidefaceArea   float64
	SidefaceVolume float64

	TotalArea   float64
	TotalVolume float64
}

// Quantities computes the take-off from the provided areas
func (d *Design) Quantities() Quantities {
	rec := d.Record
	span := rec.Span / 1000

	concrete := rec.Width * rec.Depth() / 1e6

	flex := 0.0
	for _, face := range [][3]RebarChoice{d.Flexural.Top, d.Flexural.Bottom} {
		for _, c := range face {
			flex += c.Provided
		}
	}
	flex /= 1e6

	shear := 0.0
	for _, l := range d.Shear.Links {
		shear += l.Provided
	}
	shear /= 1e6

	side := d.Sideface.Choice.Provided / 1e6
	total := flex + shear + side

	return Quantities{
		ConcreteArea:   round(concrete, 3),
		ConcreteVolume: round(concrete*span, 3),
		FlexuralArea:   round(flex, 3),
		FlexuralVolume: round(flex*span, 3),
		ShearArea:      round(shear, 3),
		ShearVolume:    round(shear*span, 3),
		SidefaceArea:   round(side, 3),
		SidefaceVolume: round(side*span, 3),
		TotalArea:      round(total, 3),
		TotalVolume:    round(total*span, 3),
	}
}
