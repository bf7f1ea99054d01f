package etabs

import (
	"bytes"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/alexiusacademia/rcsched/internal/beam"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type sheetData struct {
	name   string
	title  string
	header []any
	units  []any
	rows   [][]any
}

var (
	assignHeader = []any{"Story", "Label", "UniqueName", "Design Type", "Length", "Analysis Section"}
	flexHeader   = []any{"Story", "Label", "UniqueName", "Section", "Location", "-ve Moment Combo", "-ve Moment", "As Top", "+ve Moment Combo", "+ve Moment", "As Bot"}
	shearHeader  = []any{"Story", "Label", "UniqueName", "Section", "Location", "Shear Design Combo", "Shear Force", "VRebar (Av/s)", "TTrnCombo", "TTrnRebar (At/s)", "TLngRebar (Al)"}
)

func exportSheets() []sheetData {
	return []sheetData{
		{
			name:   "Flexure",
			title:  FlexureTable,
			header: flexHeader,
			units:  []any{"", "", "", "", "mm", "", "kN-m", "mm²", "", "kN-m", "mm²"},
			rows: [][]any{
				{"L46", "B46", "101", "B400X800-C45/56", 200, "DCon2", -120, 365, "DCon5", 0, 207},
				{"L46", "B46", "101", "B400X800-C45/56", 1325, "DCon2", -40, 173, "DCon5", 90, 247},
				{"L46", "B46", "101", "B400X800-C45/56", 2450, "DCon2", -60, 195, "DCon5", 0, 146},
				{"L24", "B548", "88", "B700X1550-C45/56", 300, "DCon2", -5200, 14712, "DCon7", 0, 4584},
				{"L24", "B548", "88", "B700X1550-C45/56", 2945, "O/S", 0, "O/S", "DCon7", 2400, 5415},
				{"L24", "B548", "88", "B700X1550-C45/56", 5590, "DCon2", -1300, 3638, "DCon7", 0, 10007},
			},
		},
		{
			name:   "Shear",
			title:  ShearTable,
			header: shearHeader,
			units:  []any{"", "", "", "", "mm", "", "kN", "mm²/m", "", "mm²/m", "mm²"},
			rows: [][]any{
				{"L46", "B46", "101", "B400X800-C45/56", 200, "DCon2", 30, 105, "DCon2", 792, 2500},
				{"L46", "B46", "101", "B400X800-C45/56", 1325, "DCon2", 31, 107, "DCon2", 792, 2500},
				{"L46", "B46", "101", "B400X800-C45/56", 2450, "DCon2", 36, 107, "DCon2", 761, 2500},
				{"L24", "B548", "88", "B700X1550-C45/56", 300, "DCon9", 3195, 5026, "DCon9", 800, 6096},
				{"L24", "B548", "88", "B700X1550-C45/56", 2945, "DCon9", 3169, 4971, "", 437, 6096},
				{"L24", "B548", "88", "B700X1550-C45/56", 5590, "DCon9", 1997, 2434, "DCon9", 458, 6096},
			},
		},
		{
			name:   "Assignments",
			title:  AssignmentTable,
			header: assignHeader,
			units:  []any{"", "", "", "", "m", ""},
			rows: [][]any{
				{"L46", "B46", "101", "Beam", 2.65, "B400X800-C45/56"},
				{"L24", "B548", "88", "Beam", 5.89, "B700X1550-C45/56"},
			},
		},
	}
}

func buildWorkbook(t *testing.T, sheets []sheetData) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, s := range sheets {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", s.name))
		} else {
			_, err := f.NewSheet(s.name)
			require.NoError(t, err)
		}
		require.NoError(t, f.SetSheetRow(s.name, "A1", &[]any{s.title}))
		require.NoError(t, f.SetSheetRow(s.name, "A2", &s.header))
		require.NoError(t, f.SetSheetRow(s.name, "A3", &s.units))
		for r, row := range s.rows {
			row := row
			require.NoError(t, f.SetSheetRow(s.name, fmt.Sprintf("A%d", r+4), &row))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestRead(t *testing.T) {
	inputs, err := Read(buildWorkbook(t, exportSheets()))
	require.NoError(t, err)
	require.Len(t, inputs, 2)

	b46 := inputs[0]
	assert.Equal(t, "L46", b46.Storey)
	assert.Equal(t, "B46", b46.ID)
	assert.Equal(t, 400.0, b46.Width)
	assert.Equal(t, 800.0, b46.Depth)
	assert.Equal(t, 2650.0, b46.Span)
	assert.Equal(t, 45.0, b46.Grade)
	assert.Equal(t, beam.FlexureFlags{}, b46.FlexOverstress)
	assert.Equal(t, beam.ShearFlags{}, b46.ShearOverstress)
	assert.Equal(t, beam.Triple{365, 173, 195}, b46.Top)
	assert.Equal(t, beam.Triple{207, 247, 146}, b46.Bottom)
	assert.Equal(t, beam.Triple{2500, 2500, 2500}, b46.TorsionLongitudinal)
	assert.Equal(t, beam.Triple{30, 31, 36}, b46.ShearForce)
	assert.Equal(t, beam.Triple{105, 107, 107}, b46.ShearArea)
	assert.Equal(t, beam.Triple{792, 792, 761}, b46.TorsionTransverse)

	b548 := inputs[1]
	assert.Equal(t, 5890.0, b548.Span)
	assert.Equal(t, 1550.0, b548.Depth)
	assert.True(t, b548.FlexOverstress.Negative)
	assert.False(t, b548.FlexOverstress.Positive)
	assert.False(t, b548.ShearOverstress.Shear)
	assert.True(t, b548.ShearOverstress.Torsion)
	assert.Equal(t, beam.Triple{14712, 0, 3638}, b548.Top)
}

func TestReadFile(t *testing.T) {
	buf := buildWorkbook(t, exportSheets())
	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "export.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	inputs, err := ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, inputs, 2)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.Error(t, err)
}

func TestReadFallsBackToSheetOrder(t *testing.T) {
	sheets := exportSheets()
	for i := range sheets {
		sheets[i].title = "Untitled export"
	}

	inputs, err := Read(buildWorkbook(t, sheets))
	require.NoError(t, err)
	assert.Len(t, inputs, 2)
}

func TestReadErrors(t *testing.T) {
	t.Run("missing table", func(t *testing.T) {
		_, err := Read(buildWorkbook(t, exportSheets()[:2]))
		assert.ErrorIs(t, err, ErrMissingSheet)
	})

	t.Run("missing column", func(t *testing.T) {
		sheets := exportSheets()
		sheets[1].header = append([]any(nil), shearHeader...)
		sheets[1].header[10] = "Al"
		_, err := Read(buildWorkbook(t, sheets))
		assert.ErrorIs(t, err, ErrMissingColumn)
		assert.ErrorContains(t, err, "TLngRebar (Al)")
	})

	t.Run("row count", func(t *testing.T) {
		sheets := exportSheets()
		sheets[0].rows = sheets[0].rows[:5]
		_, err := Read(buildWorkbook(t, sheets))
		assert.ErrorIs(t, err, ErrRowCount)
	})

	t.Run("label mismatch", func(t *testing.T) {
		sheets := exportSheets()
		sheets[1].rows[4][1] = "B549"
		_, err := Read(buildWorkbook(t, sheets))
		assert.ErrorIs(t, err, ErrLabelMismatch)
	})

	t.Run("bad section", func(t *testing.T) {
		sheets := exportSheets()
		sheets[0].rows[0][3] = "COL600"
		_, err := Read(buildWorkbook(t, sheets))
		assert.ErrorContains(t, err, "COL600")
	})

	t.Run("not a workbook", func(t *testing.T) {
		_, err := Read(bytes.NewBufferString("plain text"))
		assert.Error(t, err)
	})
}

func TestOverstressed(t *testing.T) {
	for _, v := range []string{"O/S", "o/s", " O/S ", "", "nan"} {
		assert.True(t, overstressed(v), v)
	}
	for _, v := range []string{"DCon2", "0", "OK"} {
		assert.False(t, overstressed(v), v)
	}
}
