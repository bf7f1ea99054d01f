package aci

import (
	"math"
	"sort"
	"strconv"
)

// ACI 318-19 detailing constants used by the schedule designer.
// All lengths are in mm, areas in mm², forces in kN.

const (
	// Proportion of overall depth taken as effective depth
	EffectiveDepthRatio = 0.8

	// Beams deeper than this keep torsion-longitudinal steel on the side faces
	// instead of folding it into the top and bottom bars
	DeepBeamDepth = 700.0

	// Spans up to this length are detailed with continuous top and bottom bars
	ContinuitySpan = 6000.0

	// Default maximum number of flexural layers tried by the bar search
	DefaultMaxLayers = 4

	// Upper bound on stirrup leg spacing across the width (Section 9.7.6.2.2)
	MaxTransverseSpacing = 600.0

	// Cover and stirrup allowance subtracted from width when counting legs
	StirrupCoverAllowance = 80.0

	// Worst-case stirrup diameter used for the 24·db spacing limit
	AssumedStirrupDiameter = 12.0

	// Absolute cap on stirrup spacing within the confinement zone
	MaxStirrupSpacing = 250.0
)

// Bar catalogues, in search order.
var (
	FlexuralDiameters = []float64{16, 20, 25, 32}
	StirrupDiameters  = []float64{12, 16}
	SidefaceDiameters = []float64{16, 20, 25}

	StirrupSpacings  = []float64{250, 200, 150, 125, 100}
	SidefaceSpacings = []float64{250, 200, 150}
)

// spacingBands snaps a computed spacing limit down to a buildable value.
// The first band that contains the value wins.
var spacingBands = []struct {
	lo, hi, snap float64
}{
	{200, 250, 200},
	{150, 200, 150},
	{125, 150, 125},
	{100, 125, 100},
}

// BarArea returns the nominal area of a single bar of diameter d.
func BarArea(d float64) float64 {
	return math.Pi * (d / 2) * (d / 2)
}

// BarsPerLayer returns the number of bars placed in one flexural layer
// for a beam of the given width.
func BarsPerLayer(width float64) int {
	n := int(width) / 100
	if n > 2 {
		return n - 1
	}
	return 2
}

// SnapSpacing rounds a spacing limit down through the stirrup ladder.
// Values outside every band are returned unchanged.
func SnapSpacing(v float64) float64 {
	for _, b := range spacingBands {
		if v >= b.lo && v < b.hi {
			return b.snap
		}
	}
	return v
}

// AllowedSpacings lists the ladder spacings not exceeding limit together with
// the limit itself, largest first and without duplicates.
func AllowedSpacings(limit float64) []float64 {
	seen := map[float64]bool{limit: true}
	out := []float64{limit}
	for _, s := range StirrupSpacings {
		if s <= limit && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(out)))
	return out
}

// ConcreteShearCapacity returns Vc = 0.17·√f'c·bw·d in kN
// ACI 318-19 Table 22.5.5.1
func ConcreteShearCapacity(fc, bw, d float64) float64 {
	return 0.17 * math.Sqrt(fc) * bw * d * 1e-3
}

// TransverseSpacingLimit returns the Vs threshold 0.33·√f'c·bw·d in kN above
// which stirrup spacing limits are halved (Section 9.7.6.2.2).
func TransverseSpacingLimit(fc, bw, d float64) float64 {
	return 0.33 * math.Sqrt(fc) * bw * d * 1e-3
}

// NumberWord spells out small layer counts for schedule messages.
func NumberWord(n int) string {
	words := []string{"zero", "one", "two", "three", "four", "five", "six"}
	if n >= 0 && n < len(words) {
		return words[n]
	}
	return strconv.Itoa(n)
}
