package schedule

import (
	"fmt"
	"io"
	"time"

	"github.com/alexiusacademia/rcsched/internal/design"
	"github.com/phpdave11/gofpdf"
)

// Report describes the header of the PDF schedule
type Report struct {
	Title   string
	Project string
	RunID   string
	Date    time.Time
}

// WritePDF writes a printable schedule: one block per beam with the bars at
// each station, the side-face bars and the design state.
func WritePDF(w io.Writer, rep Report, rows []Row, quantities []QuantityRow) error {
	if rep.Title == "" {
		rep.Title = "Beam Reinforcement Schedule"
	}
	if rep.Date.IsZero() {
		rep.Date = time.Now()
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, rep.Title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 10)
	if rep.Project != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Project: %s", rep.Project))
		pdf.Ln(6)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", rep.Date.Format("2006-01-02")))
	pdf.Ln(6)
	if rep.RunID != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Run: %s", rep.RunID))
		pdf.Ln(6)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Beams: %d", len(rows)))
	pdf.Ln(10)

	_, pageHeight := pdf.GetPageSize()
	for _, r := range rows {
		if pdf.GetY() > pageHeight-60 {
			pdf.AddPage()
		}
		writeBeamBlock(pdf, r)
	}

	if len(quantities) > 0 {
		writeTotals(pdf, Totals(quantities))
	}

	return pdf.Output(w)
}

func writeBeamBlock(pdf *gofpdf.Fpdf, r Row) {
	const (
		labelWidth   = 30.0
		stationWidth = 53.0
		rowHeight    = 6.0
	)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 7, fmt.Sprintf("%s / %s   %gx%g mm   span %g mm   [%s]", r.Storey, r.ID, r.Width, r.Depth, r.Span, r.State))
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(labelWidth, rowHeight, "", "1", 0, "C", true, 0, "")
	for _, h := range []string{"Left", "Middle", "Right"} {
		pdf.CellFormat(stationWidth, rowHeight, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	lines := []struct {
		name  string
		cells [3]string
	}{
		{"Top", r.Top},
		{"Bottom", r.Bottom},
		{"Shear links", r.Links},
	}
	for _, l := range lines {
		pdf.CellFormat(labelWidth, rowHeight, l.name, "1", 0, "L", false, 0, "")
		for _, c := range l.cells {
			pdf.CellFormat(stationWidth, rowHeight, c, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.CellFormat(labelWidth, rowHeight, "Side face", "1", 0, "L", false, 0, "")
	pdf.CellFormat(3*stationWidth, rowHeight, r.Sideface, "1", 0, "C", false, 0, "")
	pdf.Ln(-1)

	if r.CheckTransverseSpacing {
		pdf.SetFont("Helvetica", "I", 8)
		pdf.Cell(0, 5, "Check transverse shear spacing of stirrup legs.")
		pdf.Ln(5)
	}
	pdf.Ln(4)
}

func writeTotals(pdf *gofpdf.Fpdf, t design.Quantities) {
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 7, "Quantities")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 9)
	for _, l := range []struct {
		name         string
		area, volume float64
	}{
		{"Concrete", t.ConcreteArea, t.ConcreteVolume},
		{"Flexural reinforcement", t.FlexuralArea, t.FlexuralVolume},
		{"Shear reinforcement", t.ShearArea, t.ShearVolume},
		{"Side face reinforcement", t.SidefaceArea, t.SidefaceVolume},
		{"Total reinforcement", t.TotalArea, t.TotalVolume},
	} {
		pdf.CellFormat(60, 6, l.name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("%.3f m2", l.area), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("%.3f m3", l.volume), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
}
