package schedule

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Sheet names of the exported workbook
const (
	ScheduleSheet   = "Beam Reinforcement Schedule"
	QuantitiesSheet = "Quantities Schedule"
)

type column struct {
	group string
	name  string
}

var scheduleColumns = buildScheduleColumns()

var quantityColumns = []column{
	{"Storey", ""},
	{"Etabs ID", ""},
	{"Concrete", "Area (m^2)"},
	{"Concrete", "Volume (m^3)"},
	{"Flexural Reinforcement", "Area (m^2)"},
	{"Flexural Reinforcement", "Volume (m^3)"},
	{"Shear Reinforcement", "Area (m^2)"},
	{"Shear Reinforcement", "Volume (m^3)"},
	{"Side Face Reinforcement", "Area (m^2)"},
	{"Side Face Reinforcement", "Volume (m^3)"},
	{"Total Reinforcement", "Area (m^2)"},
	{"Total Reinforcement", "Volume (m^3)"},
}

func buildScheduleColumns() []column {
	cols := []column{
		{"Storey", ""},
		{"Etabs ID", ""},
		{"Span (mm)", ""},
		{"Dimensions", "Width (mm)"},
		{"Dimensions", "Depth (mm)"},
		{"Bottom Reinforcement", "Left (BL)"},
		{"Bottom Reinforcement", "Middle (B)"},
		{"Bottom Reinforcement", "Right (BR)"},
		{"Top Reinforcement", "Left (TL)"},
		{"Top Reinforcement", "Middle (T)"},
		{"Top Reinforcement", "Right (TR)"},
		{"Side Face Reinforcement", ""},
		{"Shear links", "Left (H)"},
		{"Shear links", "Middle (J)"},
		{"Shear links", "Right (K)"},
		{"Check Transverse Shear Spacing?", ""},
	}
	for _, g := range []string{"Flexural BL", "Flexural BM", "Flexural BR", "Flexural TL", "Flexural TM", "Flexural TR", "Shear L", "Shear M", "Shear R"} {
		cols = append(cols,
			column{g + " Criteria", "Required (mm^2)"},
			column{g + " Criteria", "Provided (mm^2)"},
			column{g + " Criteria", "Utilization (%)"},
		)
	}
	return append(cols, column{"Design State", ""})
}

func (r Row) values() []any {
	vals := []any{r.Storey, r.ID, r.Span, r.Width, r.Depth}
	for _, v := range r.Bottom {
		vals = append(vals, v)
	}
	for _, v := range r.Top {
		vals = append(vals, v)
	}
	vals = append(vals, r.Sideface)
	for _, v := range r.Links {
		vals = append(vals, v)
	}
	vals = append(vals, r.CheckTransverseSpacing)

	for _, group := range [][3]Criteria{r.BottomCriteria, r.TopCriteria, r.ShearCriteria} {
		for _, c := range group {
			vals = append(vals, c.Required, c.Provided, c.UtilizationCell())
		}
	}
	return append(vals, r.State.String())
}

func (q QuantityRow) values() []any {
	return []any{
		q.Storey, q.ID,
		q.ConcreteArea, q.ConcreteVolume,
		q.FlexuralArea, q.FlexuralVolume,
		q.ShearArea, q.ShearVolume,
		q.SidefaceArea, q.SidefaceVolume,
		q.TotalArea, q.TotalVolume,
	}
}

// WriteXLSX writes the schedule workbook: the full schedule, the quantities,
// then one sheet per storey in the order storeys first appear.
func WriteXLSX(w io.Writer, rows []Row, quantities []QuantityRow) error {
	f, err := newWorkbook(rows, quantities)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// SaveXLSX writes the schedule workbook to path
func SaveXLSX(path string, rows []Row, quantities []QuantityRow) error {
	f, err := newWorkbook(rows, quantities)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func newWorkbook(rows []Row, quantities []QuantityRow) (*excelize.File, error) {
	f := excelize.NewFile()

	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		f.Close()
		return nil, err
	}

	if err := f.SetSheetName("Sheet1", ScheduleSheet); err != nil {
		f.Close()
		return nil, err
	}

	scheduleValues := make([][]any, len(rows))
	for i, r := range rows {
		scheduleValues[i] = r.values()
	}
	if err := writeSheet(f, ScheduleSheet, header, scheduleColumns, scheduleValues); err != nil {
		f.Close()
		return nil, err
	}

	quantityValues := make([][]any, len(quantities))
	for i, q := range quantities {
		quantityValues[i] = q.values()
	}
	if err := writeSheet(f, QuantitiesSheet, header, quantityColumns, quantityValues); err != nil {
		f.Close()
		return nil, err
	}

	used := map[string]bool{
		strings.ToLower(ScheduleSheet):   true,
		strings.ToLower(QuantitiesSheet): true,
	}
	for _, group := range groupByStorey(rows) {
		vals := make([][]any, len(group.rows))
		for i, r := range group.rows {
			vals[i] = r.values()
		}
		sheet := uniqueSheetName(storeySheetName(group.storey), used)
		if err := writeSheet(f, sheet, header, scheduleColumns, vals); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

// writeSheet writes a two-row header, merging each group heading over its
// columns, followed by the data rows.
func writeSheet(f *excelize.File, sheet string, style int, cols []column, rows [][]any) error {
	if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
	}

	for i := 0; i < len(cols); {
		j := i
		for j+1 < len(cols) && cols[j+1].group == cols[i].group {
			j++
		}
		start, _ := excelize.CoordinatesToCellName(i+1, 1)
		end, _ := excelize.CoordinatesToCellName(j+1, 1)
		if err := f.SetCellValue(sheet, start, cols[i].group); err != nil {
			return err
		}

		switch {
		case j > i:
			if err := f.MergeCell(sheet, start, end); err != nil {
				return err
			}
		case cols[i].name == "":
			below, _ := excelize.CoordinatesToCellName(i+1, 2)
			if err := f.MergeCell(sheet, start, below); err != nil {
				return err
			}
		}

		for k := i; k <= j; k++ {
			if cols[k].name == "" {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(k+1, 2)
			if err := f.SetCellValue(sheet, cell, cols[k].name); err != nil {
				return err
			}
		}
		i = j + 1
	}

	last, _ := excelize.CoordinatesToCellName(len(cols), 2)
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return err
	}

	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+3)
		r := r
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return err
		}
	}
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      2,
		TopLeftCell: "A3",
		ActivePane:  "bottomLeft",
	})
}

type storeyGroup struct {
	storey string
	rows   []Row
}

func groupByStorey(rows []Row) []storeyGroup {
	var groups []storeyGroup
	index := map[string]int{}
	for _, r := range rows {
		i, ok := index[r.Storey]
		if !ok {
			i = len(groups)
			index[r.Storey] = i
			groups = append(groups, storeyGroup{storey: r.Storey})
		}
		groups[i].rows = append(groups[i].rows, r)
	}
	return groups
}

// storeySheetName makes a storey name usable as a sheet name
func storeySheetName(storey string) string {
	name := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return '_'
		}
		return r
	}, strings.TrimSpace(storey))
	if name == "" {
		name = "Unassigned"
	}
	if name == ScheduleSheet || name == QuantitiesSheet {
		name = "Storey " + name
	}
	if len([]rune(name)) > 31 {
		name = string([]rune(name)[:31])
	}
	return name
}

// uniqueSheetName numbers name when another storey already produced the same
// sheet name. Excel compares sheet names case-insensitively.
func uniqueSheetName(name string, used map[string]bool) string {
	candidate := name
	for n := 2; used[strings.ToLower(candidate)]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		base := []rune(name)
		if limit := 31 - len(suffix); len(base) > limit {
			base = base[:limit]
		}
		candidate = string(base) + suffix
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}
