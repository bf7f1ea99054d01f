package diagram

import (
	"github.com/alexiusacademia/rcsched/internal/beam"
	"github.com/alexiusacademia/rcsched/internal/design"
)

// Cover is the clear cover to the stirrups used for drawing (mm)
const Cover = 40.0

// Layer is one row of flexural bars
type Layer struct {
	Bars     int
	Diameter float64 // mm
}

// SectionData holds what is drawn for one station of a designed beam
type SectionData struct {
	Name    string
	Station beam.Station
	State   string

	// Beam dimensions (mm)
	Width float64
	Depth float64
	Cover float64

	// Flexural layers, outermost first
	Top         []Layer
	Bottom      []Layer
	TopLabel    string
	BottomLabel string

	// Stirrups, zero when unsolved
	Stirrup   float64
	Legs      int
	LinkLabel string

	// Side-face bars on each vertical face, zero when not provided
	SideDiameter float64
	SideBars     int
	SideLabel    string
}

// Bar is a drawn bar position, measured from the bottom-left corner
type Bar struct {
	X, Y     float64
	Diameter float64
}

// FromDesign collects the arrangement at station s of a finished design
func FromDesign(d *design.Design, s beam.Station) SectionData {
	rec := d.Record
	data := SectionData{
		Name:    rec.Name(),
		Station: s,
		State:   d.State().String(),
		Width:   rec.Width,
		Depth:   rec.Depth(),
		Cover:   Cover,
	}

	top, bottom := d.Flexural.Top[s], d.Flexural.Bottom[s]
	data.TopLabel = top.Label
	data.BottomLabel = bottom.Label
	data.Top = layers(d.Flexural.Bars, top)
	data.Bottom = layers(d.Flexural.Bars, bottom)

	link := d.Shear.Links[s]
	data.LinkLabel = link.Label
	if link.Solved {
		data.Stirrup = link.Diameter
		data.Legs = link.Legs
	}

	sf := d.Sideface
	data.SideLabel = sf.Choice.Label
	if sf.Choice.Solved && sf.Choice.Spacing > 0 {
		data.SideDiameter = sf.Choice.Diameter
		data.SideBars = max(int(sf.ClearSpace/sf.Choice.Spacing), 1)
	}
	return data
}

func layers(bars int, c design.RebarChoice) []Layer {
	if !c.Solved {
		return nil
	}
	out := make([]Layer, len(c.Diameters))
	for i, dia := range c.Diameters {
		out[i] = Layer{Bars: bars, Diameter: dia}
	}
	return out
}

// Bars lays out every bar of the section. Layers are stacked bar on bar
// inside the stirrups and side-face bars are spread evenly between the
// innermost top and bottom layers.
func (d SectionData) Bars() []Bar {
	var out []Bar
	inner := d.Cover + d.Stirrup

	y := d.Depth - inner
	for _, l := range d.Top {
		out = append(out, layerBars(d.Width, inner, y-l.Diameter/2, l)...)
		y -= l.Diameter
	}
	upper := y

	y = inner
	for _, l := range d.Bottom {
		out = append(out, layerBars(d.Width, inner, y+l.Diameter/2, l)...)
		y += l.Diameter
	}
	lower := y

	if d.SideBars > 0 && upper > lower {
		step := (upper - lower) / float64(d.SideBars+1)
		left := inner + d.SideDiameter/2
		right := d.Width - inner - d.SideDiameter/2
		for k := 1; k <= d.SideBars; k++ {
			yk := lower + float64(k)*step
			out = append(out,
				Bar{X: left, Y: yk, Diameter: d.SideDiameter},
				Bar{X: right, Y: yk, Diameter: d.SideDiameter},
			)
		}
	}
	return out
}

func layerBars(width, inner, y float64, l Layer) []Bar {
	if l.Bars <= 0 {
		return nil
	}
	left := inner + l.Diameter/2
	right := width - inner - l.Diameter/2
	if l.Bars == 1 {
		return []Bar{{X: width / 2, Y: y, Diameter: l.Diameter}}
	}
	out := make([]Bar, l.Bars)
	step := (right - left) / float64(l.Bars-1)
	for i := range out {
		out[i] = Bar{X: left + float64(i)*step, Y: y, Diameter: l.Diameter}
	}
	return out
}
