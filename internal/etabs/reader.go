// Package etabs reads beam design envelopes exported from ETABS to Excel.
package etabs

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/alexiusacademia/rcsched/internal/beam"
	"github.com/alexiusacademia/rcsched/internal/section"
	"github.com/xuri/excelize/v2"
)

// Table titles written by ETABS in cell A1 of each exported sheet
const (
	FlexureTable    = "TABLE:  Concrete Beam Flexure Envelope - ACI 318-19"
	ShearTable      = "TABLE:  Concrete Beam Shear Envelope - ACI 318-19"
	AssignmentTable = "TABLE:  Frame Assignments - Summary"
)

// Column headings used from each table
const (
	colStory        = "Story"
	colLabel        = "Label"
	colLength       = "Length"
	colSection      = "Section"
	colPosCombo     = "+ve Moment Combo"
	colNegCombo     = "-ve Moment Combo"
	colAsTop        = "As Top"
	colAsBot        = "As Bot"
	colTorsionLong  = "TLngRebar (Al)"
	colShearForce   = "Shear Force"
	colShearCombo   = "Shear Design Combo"
	colTorsionCombo = "TTrnCombo"
	colShearArea    = "VRebar (Av/s)"
	colTorsionArea  = "TTrnRebar (At/s)"
)

// Envelope tables hold one row per station
const rowsPerBeam = 3

// Row layout: title, headings, units, then data
const (
	headerRow    = 1
	firstDataRow = 3
)

var (
	ErrMissingSheet  = errors.New("etabs: missing table")
	ErrMissingColumn = errors.New("etabs: missing column")
	ErrRowCount      = errors.New("etabs: row count mismatch")
	ErrLabelMismatch = errors.New("etabs: beam labels do not line up")
)

type table struct {
	title  string
	sheet  string
	header map[string]int
	rows   [][]string
}

// ReadFile reads beam inputs from an ETABS export on disk
func ReadFile(path string) ([]beam.Input, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return read(f)
}

// Read reads beam inputs from an ETABS export
func Read(r io.Reader) ([]beam.Input, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	return read(f)
}

func read(f *excelize.File) ([]beam.Input, error) {
	tables, err := loadTables(f)
	if err != nil {
		return nil, err
	}
	flex, shear, assign := tables[0], tables[1], tables[2]

	for _, t := range []struct {
		tbl  *table
		cols []string
	}{
		{assign, []string{colStory, colLabel, colLength}},
		{flex, []string{colSection, colPosCombo, colNegCombo, colAsTop, colAsBot}},
		{shear, []string{colTorsionLong, colShearForce, colShearCombo, colTorsionCombo, colShearArea, colTorsionArea}},
	} {
		for _, c := range t.cols {
			if _, ok := t.tbl.header[c]; !ok {
				return nil, fmt.Errorf("%w %q in %s", ErrMissingColumn, c, t.tbl.title)
			}
		}
	}

	n := len(assign.rows)
	if len(flex.rows) != n*rowsPerBeam {
		return nil, fmt.Errorf("%w: %d beams but %d flexure rows", ErrRowCount, n, len(flex.rows))
	}
	if len(shear.rows) != n*rowsPerBeam {
		return nil, fmt.Errorf("%w: %d beams but %d shear rows", ErrRowCount, n, len(shear.rows))
	}

	inputs := make([]beam.Input, 0, n)
	for i, row := range assign.rows {
		in, err := readBeam(row, assign, flex.rows[i*rowsPerBeam:(i+1)*rowsPerBeam], flex, shear.rows[i*rowsPerBeam:(i+1)*rowsPerBeam], shear)
		if err != nil {
			return nil, fmt.Errorf("beam %d: %w", i+1, err)
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}

func readBeam(row []string, assign *table, flexRows [][]string, flex *table, shearRows [][]string, shear *table) (beam.Input, error) {
	in := beam.Input{
		Storey: assign.cell(row, colStory),
		ID:     assign.cell(row, colLabel),
	}

	for _, t := range []struct {
		tbl  *table
		rows [][]string
	}{{flex, flexRows}, {shear, shearRows}} {
		if _, ok := t.tbl.header[colLabel]; !ok {
			continue
		}
		for _, r := range t.rows {
			if label := t.tbl.cell(r, colLabel); label != in.ID {
				return in, fmt.Errorf("%w: %s row has %q, expected %q", ErrLabelMismatch, t.tbl.sheet, label, in.ID)
			}
		}
	}

	length, err := number(assign.cell(row, colLength))
	if err != nil {
		return in, fmt.Errorf("%s: %w", colLength, err)
	}
	in.Span = math.Round(length * 1000)

	desc, err := section.Parse(flex.cell(flexRows[0], colSection))
	if err != nil {
		return in, err
	}
	in.Width, in.Depth, in.Grade = desc.Width, desc.Depth, desc.Grade

	in.FlexOverstress = beam.FlexureFlags{
		Positive: flex.flagged(flexRows, colPosCombo),
		Negative: flex.flagged(flexRows, colNegCombo),
	}
	in.ShearOverstress = beam.ShearFlags{
		Shear:   shear.flagged(shearRows, colShearCombo),
		Torsion: shear.flagged(shearRows, colTorsionCombo),
	}

	fields := []struct {
		tbl  *table
		rows [][]string
		col  string
		dst  *beam.Triple
	}{
		{flex, flexRows, colAsTop, &in.Top},
		{flex, flexRows, colAsBot, &in.Bottom},
		{shear, shearRows, colTorsionLong, &in.TorsionLongitudinal},
		{shear, shearRows, colShearForce, &in.ShearForce},
		{shear, shearRows, colShearArea, &in.ShearArea},
		{shear, shearRows, colTorsionArea, &in.TorsionTransverse},
	}
	for _, fd := range fields {
		if *fd.dst, err = fd.tbl.triple(fd.rows, fd.col); err != nil {
			return in, err
		}
	}
	return in, nil
}

func loadTables(f *excelize.File) ([3]*table, error) {
	var out [3]*table
	titles := [3]string{FlexureTable, ShearTable, AssignmentTable}

	sheets := f.GetSheetList()
	byTitle := make(map[string]*table, len(sheets))
	var ordered []*table
	for _, sheet := range sheets {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return out, fmt.Errorf("read sheet %s: %w", sheet, err)
		}
		t := newTable(sheet, rows)
		byTitle[t.title] = t
		ordered = append(ordered, t)
	}

	// Tables are found by title, falling back to the export's sheet order
	for i, title := range titles {
		if t, ok := byTitle[title]; ok {
			out[i] = t
			continue
		}
		if i < len(ordered) && !isKnownTitle(ordered[i].title) {
			out[i] = ordered[i]
			out[i].title = title
			continue
		}
		return out, fmt.Errorf("%w %q", ErrMissingSheet, title)
	}
	return out, nil
}

func isKnownTitle(title string) bool {
	return title == FlexureTable || title == ShearTable || title == AssignmentTable
}

func newTable(sheet string, rows [][]string) *table {
	t := &table{sheet: sheet, header: map[string]int{}}
	if len(rows) > 0 && len(rows[0]) > 0 {
		t.title = strings.TrimSpace(rows[0][0])
	}
	if len(rows) > headerRow {
		for i, h := range rows[headerRow] {
			if h = strings.TrimSpace(h); h != "" {
				t.header[h] = i
			}
		}
	}
	for i := firstDataRow; i < len(rows); i++ {
		if !blank(rows[i]) {
			t.rows = append(t.rows, rows[i])
		}
	}
	return t
}

func (t *table) cell(row []string, col string) string {
	i, ok := t.header[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// flagged reports whether any station of col is marked overstressed
func (t *table) flagged(rows [][]string, col string) bool {
	for _, r := range rows {
		if overstressed(t.cell(r, col)) {
			return true
		}
	}
	return false
}

func (t *table) triple(rows [][]string, col string) (beam.Triple, error) {
	var out beam.Triple
	for i, r := range rows {
		v := t.cell(r, col)
		if overstressed(v) {
			continue
		}
		f, err := number(v)
		if err != nil {
			return out, fmt.Errorf("%s %s: %w", t.sheet, col, err)
		}
		out[i] = f
	}
	return out, nil
}

// overstressed matches the ETABS "O/S" marker and cells left empty by the export
func overstressed(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "o/s", "", "nan":
		return true
	}
	return false
}

func number(v string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(v), 64)
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
