package design

import (
	"testing"

	"github.com/alexiusacademia/rcsched/internal/beam"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Demands taken from ETABS exports of a residential tower.
var (
	b46Deep = beam.Input{
		Storey:              "L46",
		ID:                  "B46",
		Width:               400,
		Depth:               800,
		Span:                2650,
		Grade:               45,
		Top:                 beam.Triple{365, 173, 195},
		Bottom:              beam.Triple{207, 247, 146},
		TorsionLongitudinal: beam.Triple{2500, 2500, 2500},
		ShearForce:          beam.Triple{30, 31, 36},
		ShearArea:           beam.Triple{105, 107, 107},
		TorsionTransverse:   beam.Triple{792, 792, 761},
	}

	l24Transfer = beam.Input{
		Storey:              "L24",
		ID:                  "B548",
		Width:               700,
		Depth:               1550,
		Span:                5890,
		Grade:               45,
		Top:                 beam.Triple{14712, 6140, 3638},
		Bottom:              beam.Triple{4584, 5415, 10007},
		TorsionLongitudinal: beam.Triple{6096, 6096, 6096},
		ShearForce:          beam.Triple{3195, 3169, 1997},
		ShearArea:           beam.Triple{5026, 4971, 2434},
		TorsionTransverse:   beam.Triple{800, 437, 458},
	}

	b1050Long = beam.Input{
		Storey:     "L10",
		ID:         "B1050",
		Width:      400,
		Depth:      750,
		Span:       8619,
		Grade:      45,
		Top:        beam.Triple{1979, 703, 1979},
		Bottom:     beam.Triple{1230, 1099, 1053},
		ShearForce: beam.Triple{237, 187, 216},
	}
)

func b46Shallow() beam.Input {
	in := b46Deep
	in.Depth = 600
	in.TorsionLongitudinal = beam.Triple{1343, 1343, 1343}
	return in
}

func mustRecord(t *testing.T, in beam.Input) *beam.Record {
	t.Helper()
	rec, err := beam.New(in)
	require.NoError(t, err)
	return rec
}

func labels[T interface{ label() string }](cs [3]T) [3]string {
	return [3]string{cs[0].label(), cs[1].label(), cs[2].label()}
}

func (c RebarChoice) label() string   { return c.Label }
func (c StirrupChoice) label() string { return c.Label }

func provided(cs [3]RebarChoice) [3]float64 {
	return [3]float64{cs[0].Provided, cs[1].Provided, cs[2].Provided}
}

func utilizations(cs [3]RebarChoice) [3]float64 {
	return [3]float64{cs[0].Utilization, cs[1].Utilization, cs[2].Utilization}
}

func TestRunDeepShortBeam(t *testing.T) {
	d := Run(mustRecord(t, b46Deep), DefaultOptions())
	assert.Equal(t, Nominal, d.State())

	f := d.Flexural
	assert.Equal(t, 3, f.Bars)
	assert.False(t, f.TorsionSplit)
	assert.Equal(t, beam.Triple{2500, 2500, 2500}, d.Record.TorsionLongitudinal)

	assert.Equal(t, [3]string{"3T16", "3T16", "3T16"}, labels(f.Top))
	assert.Equal(t, [3]float64{603, 603, 603}, provided(f.Top))
	assert.Equal(t, [3]float64{60.5, 28.7, 32.3}, utilizations(f.Top))
	assert.Equal(t, [3]float64{34.3, 41.0, 24.2}, utilizations(f.Bottom))
	assert.Equal(t, beam.Triple{634, 786, 865}, f.Residual)

	sh := d.Shear
	assert.Equal(t, []int{2, 3}, sh.Legs)
	assert.Equal(t, beam.Triple{1689, 1691, 1629}, sh.Demand)
	assert.Equal(t, []float64{125, 100}, sh.Spacings)
	assert.Equal(t, []float64{250, 200, 150, 125, 100}, sh.CenterSpacings)
	assert.Equal(t, [3]string{"2L-T12@125", "3L-T12@200", "2L-T12@125"}, labels(sh.Links))
	assert.Equal(t, 1810.0, sh.Links[beam.Left].Provided)
	assert.Equal(t, 1696.0, sh.Links[beam.Middle].Provided)
	assert.Equal(t, 93.3, sh.Links[beam.Left].Utilization)
	assert.Equal(t, 99.7, sh.Links[beam.Middle].Utilization)
	assert.Equal(t, 90.0, sh.Links[beam.Right].Utilization)
	assert.False(t, sh.CheckTransverseSpacing)

	sf := d.Sideface
	assert.True(t, sf.Active)
	assert.Equal(t, beam.Triple{1866, 1714, 1635}, sf.Required)
	assert.Equal(t, 584.0, sf.ClearSpace)
	assert.Equal(t, "T25@250 EF", sf.Choice.Label)
	assert.Equal(t, 2293.0, sf.Choice.Provided)
	assert.Equal(t, 81.4, sf.Choice.Utilization)

	assert.Equal(t, Quantities{
		ConcreteArea:   0.32,
		ConcreteVolume: 0.848,
		FlexuralArea:   0.004,
		FlexuralVolume: 0.01,
		ShearArea:      0.005,
		ShearVolume:    0.014,
		SidefaceArea:   0.002,
		SidefaceVolume: 0.006,
		TotalArea:      0.011,
		TotalVolume:    0.03,
	}, d.Quantities())
}

func TestRunShallowBeamSplitsTorsion(t *testing.T) {
	d := Run(mustRecord(t, b46Shallow()), DefaultOptions())
	assert.Equal(t, Nominal, d.State())

	f := d.Flexural
	assert.True(t, f.TorsionSplit)
	assert.Equal(t, beam.Triple{0, 0, 0}, d.Record.TorsionLongitudinal)
	assert.Equal(t, beam.Triple{1343, 1343, 1343}, f.PreSplitTorsion)
	assert.Equal(t, beam.Triple{1036.5, 844.5, 866.5}, d.Record.Top)
	assert.Equal(t, beam.Triple{878.5, 918.5, 817.5}, d.Record.Bottom)

	assert.Equal(t, [3]string{"3T25", "3T25", "3T25"}, labels(f.Top))
	assert.Equal(t, [3]float64{1473, 1473, 1473}, provided(f.Top))
	assert.Equal(t, [3]float64{70.4, 57.3, 58.8}, utilizations(f.Top))
	assert.Equal(t, [3]string{"3T20", "3T20", "3T20"}, labels(f.Bottom))
	assert.Equal(t, [3]float64{93.3, 97.5, 86.8}, utilizations(f.Bottom))
	assert.Equal(t, beam.Triple{}, f.Residual)

	sh := d.Shear
	assert.Equal(t, []float64{100}, sh.Spacings)
	assert.Equal(t, []float64{200, 150, 125, 100}, sh.CenterSpacings)
	assert.Equal(t, [3]string{"2L-T12@100", "3L-T12@200", "2L-T12@100"}, labels(sh.Links))
	assert.Equal(t, 2262.0, sh.Links[beam.Right].Provided)
	assert.Equal(t, 72.0, sh.Links[beam.Right].Utilization)

	assert.False(t, d.Sideface.Active)
	assert.Equal(t, LabelNotApplicable, d.Sideface.Choice.Label)
	assert.Equal(t, LabelNotApplicable, d.Sideface.Choice.UtilizationText())

	q := d.Quantities()
	assert.Equal(t, 0.24, q.ConcreteArea)
	assert.Equal(t, 0.636, q.ConcreteVolume)
	assert.Equal(t, 0.007, q.FlexuralArea)
	assert.Equal(t, 0.019, q.FlexuralVolume)
	assert.Equal(t, 0.006, q.ShearArea)
	assert.Equal(t, 0.016, q.ShearVolume)
	assert.Equal(t, 0.0, q.SidefaceArea)
	assert.Equal(t, 0.013, q.TotalArea)
	assert.Equal(t, 0.036, q.TotalVolume)
}

func TestRunTransferBeam(t *testing.T) {
	d := Run(mustRecord(t, l24Transfer), DefaultOptions())
	assert.Equal(t, Nominal, d.State())

	f := d.Flexural
	assert.Equal(t, 6, f.Bars)
	assert.Equal(t, [3]string{
		"6T32 + 6T32 + 6T25 + 6T25",
		"6T32 + 6T32 + 6T25 + 6T25",
		"6T32 + 6T32 + 6T25 + 6T25",
	}, labels(f.Top))
	assert.Equal(t, [3]float64{15541, 15541, 15541}, provided(f.Top))
	assert.Equal(t, [3]float64{94.7, 39.5, 23.4}, utilizations(f.Top))
	assert.Equal(t, [3]float64{10716, 10716, 10716}, provided(f.Bottom))
	assert.Equal(t, "6T32 + 6T25 + 6T25", f.Bottom[beam.Left].Label)
	assert.Equal(t, beam.Triple{6961, 14702, 12612}, f.Residual)

	sh := d.Shear
	assert.Equal(t, []int{2, 3, 4}, sh.Legs)
	assert.Equal(t, beam.Triple{6626, 5845, 3350}, sh.Demand)
	assert.Equal(t, []float64{200, 150, 125, 100}, sh.Spacings)
	assert.Equal(t, [3]string{"4L-T16@100", "3L-T16@100", "4L-T16@100"}, labels(sh.Links))
	assert.Equal(t, 8042.0, sh.Links[beam.Left].Provided)
	assert.Equal(t, 41.7, sh.Links[beam.Right].Utilization)
	assert.True(t, sh.CheckTransverseSpacing)

	sf := d.Sideface
	assert.Equal(t, beam.Triple{-865, -8606, -6516}, sf.Required)
	assert.Equal(t, 1012.0, sf.ClearSpace)
	assert.Equal(t, "T16@250 EF", sf.Choice.Label)
	assert.Equal(t, 1628.0, sf.Choice.Provided)
	assert.Equal(t, 0.0, sf.Choice.Utilization)

	q := d.Quantities()
	assert.Equal(t, 1.085, q.ConcreteArea)
	assert.Equal(t, 6.391, q.ConcreteVolume)
	assert.Equal(t, 0.079, q.FlexuralArea)
	assert.Equal(t, 0.464, q.FlexuralVolume)
	assert.Equal(t, 0.022, q.ShearArea)
	assert.Equal(t, 0.13, q.ShearVolume)
	assert.Equal(t, 0.103, q.TotalArea)
	assert.Equal(t, 0.604, q.TotalVolume)
}

func TestRunTwoLayerCapExhausts(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxLayers = 2

	d := Run(mustRecord(t, l24Transfer), opts)
	assert.Equal(t, FlexOverstressed, d.State())
	assert.True(t, d.Overstressed())

	f := d.Flexural
	assert.True(t, f.Exhausted)
	assert.Equal(t, "Required rebar exceeds two layers.", f.Top[beam.Left].Label)
	assert.False(t, f.Top[beam.Left].Solved)
	assert.Equal(t, LabelNotApplicable, f.Top[beam.Left].UtilizationText())
	assert.Equal(t, "6T32 + 6T20", f.Top[beam.Middle].Label)
	assert.Equal(t, 6710.0, f.Top[beam.Middle].Provided)
	assert.Equal(t, 91.5, f.Top[beam.Middle].Utilization)
	assert.Equal(t, 54.2, f.Top[beam.Right].Utilization)
	assert.Equal(t, [3]string{"6T25 + 6T25", "6T25 + 6T25", "Required rebar exceeds two layers."}, labels(f.Bottom))
	assert.Equal(t, beam.Triple{}, f.Residual)

	sh := d.Shear
	assert.Equal(t, beam.Triple{6626, 5845, 3350}, sh.Demand)
	assert.Equal(t, [3]string{"-", "-", "-"}, labels(sh.Links))
	assert.Equal(t, LabelNotApplicable, d.Sideface.Choice.Label)

	q := d.Quantities()
	assert.Equal(t, 0.025, q.FlexuralArea)
	assert.Equal(t, 0.148, q.FlexuralVolume)
	assert.Equal(t, 0.0, q.ShearArea)
	assert.Equal(t, 0.025, q.TotalArea)
	assert.Equal(t, 0.148, q.TotalVolume)
}

func TestRunLongSpanKeepsStations(t *testing.T) {
	d := Run(mustRecord(t, b1050Long), DefaultOptions())
	assert.Equal(t, Nominal, d.State())

	f := d.Flexural
	assert.Equal(t, [3]string{"3T32", "3T20", "3T32"}, labels(f.Top))
	assert.Equal(t, [3]float64{82.0, 74.6, 82.0}, utilizations(f.Top))
	assert.Equal(t, [3]string{"3T25", "3T25", "3T25"}, labels(f.Bottom))
	assert.Equal(t, [3]float64{83.5, 74.6, 71.5}, utilizations(f.Bottom))
	assert.Equal(t, beam.Triple{677, 613, 854}, f.Residual)

	sh := d.Shear
	assert.Equal(t, []float64{150, 125, 100}, sh.Spacings)
	assert.Equal(t, [3]string{"2L-T12@150", "2L-T12@250", "2L-T12@150"}, labels(sh.Links))
	assert.Equal(t, 905.0, sh.Links[beam.Middle].Provided)

	assert.Equal(t, 519.0, d.Sideface.ClearSpace)
	assert.Equal(t, "T16@250 EF", d.Sideface.Choice.Label)
	assert.Equal(t, 835.0, d.Sideface.Choice.Provided)

	q := d.Quantities()
	assert.Equal(t, 0.3, q.ConcreteArea)
	assert.Equal(t, 2.586, q.ConcreteVolume)
	assert.Equal(t, 0.01, q.FlexuralArea)
	assert.Equal(t, 0.088, q.FlexuralVolume)
	assert.Equal(t, 0.004, q.ShearArea)
	assert.Equal(t, 0.034, q.ShearVolume)
	assert.Equal(t, 0.001, q.SidefaceArea)
	assert.Equal(t, 0.007, q.SidefaceVolume)
	assert.Equal(t, 0.015, q.TotalArea)
	assert.Equal(t, 0.129, q.TotalVolume)
}

func TestContinuityMerge(t *testing.T) {
	in := b1050Long
	in.Span = 6000

	d := Run(mustRecord(t, in), DefaultOptions())
	f := d.Flexural
	assert.Equal(t, [3]string{"3T32", "3T32", "3T32"}, labels(f.Top))
	assert.Equal(t, [3]float64{2413, 2413, 2413}, provided(f.Top))
	assert.Equal(t, 29.1, f.Top[beam.Middle].Utilization)
	assert.Equal(t, 703.0, f.Top[beam.Middle].Required)
}

func TestFlexureFlags(t *testing.T) {
	t.Run("any flag overstresses both faces", func(t *testing.T) {
		in := b46Shallow()
		in.FlexOverstress.Positive = true

		d := Run(mustRecord(t, in), DefaultOptions())
		assert.Equal(t, FlexOverstressed, d.State())
		assert.False(t, d.Flexural.TorsionSplit)
		assert.Equal(t, beam.Triple{1343, 1343, 1343}, d.Record.TorsionLongitudinal)
		assert.Equal(t, [3]string{"Overstressed", "Overstressed", "Overstressed"}, labels(d.Flexural.Top))
		assert.Equal(t, [3]string{"Overstressed", "Overstressed", "Overstressed"}, labels(d.Flexural.Bottom))
		assert.Equal(t, [3]string{"-", "-", "-"}, labels(d.Shear.Links))
		assert.Equal(t, LabelNotApplicable, d.Sideface.Choice.Label)
	})

	t.Run("per-face mapping", func(t *testing.T) {
		in := b46Deep
		in.FlexOverstress.Positive = true
		opts := DefaultOptions()
		opts.FlagMapping = FlagMappingPerFace

		d := Run(mustRecord(t, in), opts)
		assert.Equal(t, FlexOverstressed, d.State())
		assert.Equal(t, [3]string{"3T16", "3T16", "3T16"}, labels(d.Flexural.Top))
		assert.Equal(t, [3]string{"Overstressed", "Overstressed", "Overstressed"}, labels(d.Flexural.Bottom))
		assert.Equal(t, beam.Triple{}, d.Flexural.Residual)
		assert.False(t, d.Sideface.Active)
	})
}

func TestShearFlags(t *testing.T) {
	in := b46Deep
	in.ShearOverstress.Torsion = true

	d := Run(mustRecord(t, in), DefaultOptions())
	assert.Equal(t, ShearOverstressed, d.State())
	assert.Equal(t, beam.Triple{}, d.Shear.Demand)
	assert.Equal(t, []float64{250, 200, 150, 125, 100}, d.Shear.Spacings)
	assert.Equal(t, [3]string{"Overstressed", "Overstressed", "Overstressed"}, labels(d.Shear.Links))
	assert.False(t, d.Sideface.Active)

	// flexure is still designed
	assert.Equal(t, [3]string{"3T16", "3T16", "3T16"}, labels(d.Flexural.Top))
}

func TestFirstTransitionWins(t *testing.T) {
	in := b46Deep
	in.FlexOverstress.Negative = true
	in.ShearOverstress.Shear = true

	d := Run(mustRecord(t, in), DefaultOptions())
	assert.Equal(t, FlexOverstressed, d.State())
	assert.Equal(t, [3]string{"Overstressed", "Overstressed", "Overstressed"}, labels(d.Shear.Links))
}

func TestDegenerateClearSpace(t *testing.T) {
	in := beam.Input{
		ID:     "SHALLOW",
		Width:  300,
		Depth:  200,
		Span:   3000,
		Grade:  30,
		Top:    beam.Triple{5000, 5000, 5000},
		Bottom: beam.Triple{5000, 5000, 5000},
	}
	opts := DefaultOptions()
	opts.DeepBeamDepth = 100

	d := Run(mustRecord(t, in), opts)
	require.True(t, d.Flexural.AllSolved())
	assert.Equal(t, []int{2}, d.Shear.Legs)

	sf := d.Sideface
	assert.True(t, sf.Active)
	assert.LessOrEqual(t, sf.ClearSpace, 0.0)
	assert.False(t, sf.Choice.Solved)
	assert.Equal(t, LabelCannotSatisfy, sf.Choice.Label)
	assert.Equal(t, 0.0, sf.Choice.Provided)
	assert.Equal(t, Unsolvable, d.State())
}

func TestRunIsIdempotent(t *testing.T) {
	for _, in := range []beam.Input{b46Deep, b46Shallow(), l24Transfer, b1050Long} {
		rec := mustRecord(t, in)
		first := Run(rec.Clone(), DefaultOptions())
		second := Run(rec.Clone(), DefaultOptions())
		assert.Equal(t, first, second, in.ID)
	}
}

func TestDesignersRunOnce(t *testing.T) {
	d := Run(mustRecord(t, b46Shallow()), DefaultOptions())
	top := d.Flexural.Top
	links := d.Shear.Links

	d.Flexural.Design()
	d.Shear.Design()
	d.Sideface.Design()

	assert.Equal(t, top, d.Flexural.Top)
	assert.Equal(t, links, d.Shear.Links)
	assert.Equal(t, beam.Triple{1036.5, 844.5, 866.5}, d.Record.Top)
}

func TestLegCandidates(t *testing.T) {
	assert.Equal(t, []int{2}, legCandidates(250, 400, 2))
	assert.Equal(t, []int{2, 3}, legCandidates(400, 640, 3))
	assert.Equal(t, []int{2, 3, 4}, legCandidates(500, 640, 4))
	assert.Equal(t, []int{2, 3, 4}, legCandidates(1400, 640, 2))
}

func TestParseFlagMapping(t *testing.T) {
	m, err := ParseFlagMapping("per-face")
	require.NoError(t, err)
	assert.Equal(t, FlagMappingPerFace, m)

	m, err = ParseFlagMapping("")
	require.NoError(t, err)
	assert.Equal(t, FlagMappingAny, m)

	_, err = ParseFlagMapping("bottom-only")
	assert.Error(t, err)
}

func TestLayerCapMessage(t *testing.T) {
	assert.Equal(t, "Required rebar exceeds four layers.", LayerCapMessage(4))
	assert.Equal(t, "Required rebar exceeds two layers.", LayerCapMessage(2))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "nominal", Nominal.String())
	assert.Equal(t, "flexure overstressed", FlexOverstressed.String())
	assert.Equal(t, "shear overstressed", ShearOverstressed.String())
	assert.Equal(t, "unsolvable", Unsolvable.String())
}
