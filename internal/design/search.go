package design

import (
	"sort"

	"github.com/alexiusacademia/rcsched/internal/aci"
)

// BarSet is a candidate flexural arrangement: one diameter per layer, each
// layer holding the same number of bars.
type BarSet struct {
	Diameters []float64 // largest first
	Area      float64   // mm², unrounded
}

// SearchFlexural finds the arrangement with the least excess area over
// required, trying one layer first and adding layers only when no
// arrangement with fewer layers is adequate. Layers repeat diameters freely.
func SearchFlexural(required float64, bars int, catalogue []float64, maxLayers int) (BarSet, bool) {
	for layers := 1; layers <= maxLayers; layers++ {
		var best BarSet
		found := false

		eachMultiset(catalogue, layers, func(ds []float64) {
			area := 0.0
			for _, d := range ds {
				area += float64(bars) * aci.BarArea(d)
			}
			if area < required {
				return
			}
			if !found || area-required < best.Area-required {
				best = BarSet{Diameters: append([]float64(nil), ds...), Area: area}
				found = true
			}
		})

		if found {
			sort.Sort(sort.Reverse(sort.Float64Slice(best.Diameters)))
			return best, true
		}
	}
	return BarSet{}, false
}

// eachMultiset calls fn with every size-k multiset of catalogue, in the
// order of combinations with replacement. The slice passed to fn is reused.
func eachMultiset(catalogue []float64, k int, fn func([]float64)) {
	if k <= 0 {
		return
	}
	buf := make([]float64, k)
	var rec func(pos, start int)
	rec = func(pos, start int) {
		if pos == k {
			fn(buf)
			return
		}
		for i := start; i < len(catalogue); i++ {
			buf[pos] = catalogue[i]
			rec(pos+1, i)
		}
	}
	rec(0, 0)
}

// StirrupSet is a candidate stirrup arrangement
type StirrupSet struct {
	Diameter float64
	Legs     int
	Spacing  float64
	Area     float64 // mm² per metre, unrounded
}

// SearchStirrups finds the stirrup arrangement with the least excess over
// demand whose two outer legs also carry the torsion requirement.
func SearchStirrups(demand, torsion float64, diameters []float64, legs []int, spacings []float64) (StirrupSet, bool) {
	var best StirrupSet
	found := false

	for _, d := range diameters {
		bar := aci.BarArea(d)
		for _, n := range legs {
			for _, s := range spacings {
				area := bar * float64(n) * 1000 / s
				outer := bar * 2 * 1000 / s
				if area < demand || outer < torsion {
					continue
				}
				if !found || area-demand < best.Area-demand {
					best = StirrupSet{Diameter: d, Legs: n, Spacing: s, Area: area}
					found = true
				}
			}
		}
	}
	return best, found
}

// FaceBars is a candidate side-face arrangement, placed on each face
type FaceBars struct {
	Diameter float64
	Spacing  float64
	Area     float64 // mm², unrounded
}

// SearchSideface finds the side-face bars with the least excess over
// required for a clear height between the top and bottom bars.
func SearchSideface(required, clear float64, diameters, spacings []float64) (FaceBars, bool) {
	if clear <= 0 {
		return FaceBars{}, false
	}

	var best FaceBars
	found := false
	for _, d := range diameters {
		for _, s := range spacings {
			area := aci.BarArea(d) * 2 * clear / s
			if area < required {
				continue
			}
			if !found || area-required < best.Area-required {
				best = FaceBars{Diameter: d, Spacing: s, Area: area}
				found = true
			}
		}
	}
	return best, found
}
