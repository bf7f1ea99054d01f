// Package schedule turns beam designs into a reinforcement schedule and
// quantity take-off.
package schedule

import (
	"github.com/alexiusacademia/rcsched/internal/beam"
	"github.com/alexiusacademia/rcsched/internal/design"
)

// Criteria is the required/provided check behind one schedule entry
type Criteria struct {
	Required    float64
	Provided    float64
	Utilization float64
	Solved      bool
}

// UtilizationCell is the utilization as written to a sheet, "-" when unsolved
func (c Criteria) UtilizationCell() any {
	if !c.Solved {
		return design.LabelNotApplicable
	}
	return c.Utilization
}

// Row is one beam of the reinforcement schedule
type Row struct {
	Storey string
	ID     string
	Span   float64
	Width  float64
	Depth  float64

	Bottom   [3]string
	Top      [3]string
	Sideface string
	Links    [3]string

	CheckTransverseSpacing bool

	BottomCriteria [3]Criteria
	TopCriteria    [3]Criteria
	ShearCriteria  [3]Criteria

	State design.State
}

// QuantityRow is one beam of the quantities schedule
type QuantityRow struct {
	Storey string
	ID     string
	design.Quantities
}

// NewRow lays out a finished design as a schedule row
func NewRow(d *design.Design) Row {
	rec := d.Record
	r := Row{
		Storey:                 rec.Storey,
		ID:                     rec.ID,
		Span:                   rec.Span,
		Width:                  rec.Width,
		Depth:                  rec.Depth(),
		Sideface:               d.Sideface.Choice.Label,
		CheckTransverseSpacing: d.Shear.CheckTransverseSpacing,
		State:                  d.State(),
	}

	for _, s := range beam.Stations {
		bot, top, link := d.Flexural.Bottom[s], d.Flexural.Top[s], d.Shear.Links[s]

		r.Bottom[s] = bot.Label
		r.Top[s] = top.Label
		r.Links[s] = link.Label

		r.BottomCriteria[s] = Criteria{bot.Required, bot.Provided, bot.Utilization, bot.Solved}
		r.TopCriteria[s] = Criteria{top.Required, top.Provided, top.Utilization, top.Solved}
		r.ShearCriteria[s] = Criteria{link.Required, link.Provided, link.Utilization, link.Solved}
	}
	return r
}

// NewQuantityRow takes off the quantities of a finished design
func NewQuantityRow(d *design.Design) QuantityRow {
	return QuantityRow{
		Storey:     d.Record.Storey,
		ID:         d.Record.ID,
		Quantities: d.Quantities(),
	}
}

// Build lays out designs in order. Nil entries are skipped.
func Build(designs []*design.Design) ([]Row, []QuantityRow) {
	rows := make([]Row, 0, len(designs))
	quantities := make([]QuantityRow, 0, len(designs))
	for _, d := range designs {
		if d == nil {
			continue
		}
		rows = append(rows, NewRow(d))
		quantities = append(quantities, NewQuantityRow(d))
	}
	return rows, quantities
}

// Totals sums the quantities of all beams
func Totals(quantities []QuantityRow) design.Quantities {
	var t design.Quantities
	for _, q := range quantities {
		t.ConcreteArea += q.ConcreteArea
		t.ConcreteVolume += q.ConcreteVolume
		t.FlexuralArea += q.FlexuralArea
		t.FlexuralVolume += q.FlexuralVolume
		t.ShearArea += q.ShearArea
		t.ShearVolume += q.ShearVolume
		t.SidefaceArea += q.SidefaceArea
		t.SidefaceVolume += q.SidefaceVolume
		t.TotalArea += q.TotalArea
		t.TotalVolume += q.TotalVolume
	}
	return t
}
