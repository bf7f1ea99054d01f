package beam

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/alexiusacademia/rcsched/internal/aci"
)

// Station is one of the three design positions along a span
type Station int

const (
	Left Station = iota
	Middle
	Right
)

// Stations lists the design positions in schedule order
var Stations = [3]Station{Left, Middle, Right}

func (s Station) String() string {
	switch s {
	case Left:
		return "left"
	case Middle:
		return "middle"
	case Right:
		return "right"
	}
	return fmt.Sprintf("station(%d)", int(s))
}

// Triple holds one value per station in left, middle, right order
type Triple [3]float64

// At returns the value at station s
func (t Triple) At(s Station) float64 { return t[s] }

func (t Triple) Max() float64 {
	m := t[0]
	for _, v := range t[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func (t Triple) Min() float64 {
	m := t[0]
	for _, v := range t[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func (t Triple) Sum() float64 {
	return t[0] + t[1] + t[2]
}

// UnmarshalJSON rejects station lists that do not have exactly three values.
func (t *Triple) UnmarshalJSON(data []byte) error {
	var vals []float64
	if err := json.Unmarshal(data, &vals); err != nil {
		return err
	}
	if len(vals) != 3 {
		return fmt.Errorf("expected 3 station values, got %d", len(vals))
	}
	copy(t[:], vals)
	return nil
}

// FlexureFlags marks moment envelopes that the analysis already reported
// as overstressed
type FlexureFlags struct {
	Positive bool `json:"positive" yaml:"positive"`
	Negative bool `json:"negative" yaml:"negative"`
}

func (f FlexureFlags) Any() bool { return f.Positive || f.Negative }

// ShearFlags marks shear and torsion envelopes that the analysis already
// reported as overstressed
type ShearFlags struct {
	Shear   bool `json:"shear" yaml:"shear"`
	Torsion bool `json:"torsion" yaml:"torsion"`
}

func (f ShearFlags) Any() bool { return f.Shear || f.Torsion }

// Input is the per-beam demand produced by an extraction step
type Input struct {
	Storey string  `json:"storey" yaml:"storey"`
	ID     string  `json:"id" yaml:"id"`
	Width  float64 `json:"width" yaml:"width"` // mm
	Depth  float64 `json:"depth" yaml:"depth"` // mm
	Span   float64 `json:"span" yaml:"span"`   // mm
	Grade  float64 `json:"grade" yaml:"grade"` // f'c, MPa

	FlexOverstress  FlexureFlags `json:"flexure_overstress" yaml:"flexure_overstress"`
	ShearOverstress ShearFlags   `json:"shear_overstress" yaml:"shear_overstress"`

	// Required areas (mm²) and shear force (kN) per station
	Top                 Triple `json:"top" yaml:"top"`
	Bottom              Triple `json:"bottom" yaml:"bottom"`
	TorsionLongitudinal Triple `json:"torsion_longitudinal" yaml:"torsion_longitudinal"`
	ShearForce          Triple `json:"shear_force" yaml:"shear_force"`
	ShearArea           Triple `json:"shear" yaml:"shear"`
	TorsionTransverse   Triple `json:"torsion_transverse" yaml:"torsion_transverse"`
}

// Record is the design record of one beam. It is built once from an Input and
// only the flexural torsion split mutates it afterwards.
type Record struct {
	Storey string
	ID     string

	// Geometry (mm)
	Width float64
	Span  float64

	depth          float64
	effectiveDepth float64

	// Concrete compressive strength f'c (MPa)
	Grade float64

	FlexOverstress  FlexureFlags
	ShearOverstress ShearFlags

	Top                 Triple // mm²
	Bottom              Triple // mm²
	TorsionLongitudinal Triple // mm²
	ShearForce          Triple // kN
	ShearArea           Triple // Av/s, mm²/m
	TorsionTransverse   Triple // At/s, mm²/m
}

// New builds a validated record from extracted demand
func New(in Input) (*Record, error) {
	r := &Record{
		Storey:              in.Storey,
		ID:                  in.ID,
		Width:               in.Width,
		Span:                in.Span,
		Grade:               in.Grade,
		FlexOverstress:      in.FlexOverstress,
		ShearOverstress:     in.ShearOverstress,
		Top:                 in.Top,
		Bottom:              in.Bottom,
		TorsionLongitudinal: in.TorsionLongitudinal,
		ShearForce:          in.ShearForce,
		ShearArea:           in.ShearArea,
		TorsionTransverse:   in.TorsionTransverse,
	}
	r.SetDepth(in.Depth)

	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Depth returns the overall section depth (mm)
func (r *Record) Depth() float64 { return r.depth }

// EffectiveDepth returns d, always 0.8 of the overall depth
func (r *Record) EffectiveDepth() float64 { return r.effectiveDepth }

// SetDepth changes the overall depth and recomputes the effective depth
func (r *Record) SetDepth(depth float64) {
	r.depth = depth
	r.effectiveDepth = aci.EffectiveDepthRatio * depth
}

// Name identifies the beam in logs and reports
func (r *Record) Name() string {
	if r.Storey == "" {
		return r.ID
	}
	return r.Storey + "/" + r.ID
}

// Clone returns an independent copy of the record
func (r *Record) Clone() *Record {
	c := *r
	return &c
}

// Validate checks that the geometry and demands are usable
func (r *Record) Validate() error {
	if !positive(r.Width) {
		return &ValidationError{fmt.Sprintf("%s: width must be positive", r.Name())}
	}
	if !positive(r.depth) {
		return &ValidationError{fmt.Sprintf("%s: depth must be positive", r.Name())}
	}
	if !positive(r.Span) {
		return &ValidationError{fmt.Sprintf("%s: span must be positive", r.Name())}
	}
	if !positive(r.Grade) {
		return &ValidationError{fmt.Sprintf("%s: concrete grade must be positive", r.Name())}
	}

	demands := []struct {
		name string
		vals Triple
	}{
		{"top flexural area", r.Top},
		{"bottom flexural area", r.Bottom},
		{"torsion longitudinal area", r.TorsionLongitudinal},
		{"shear area", r.ShearArea},
		{"torsion transverse area", r.TorsionTransverse},
	}
	for _, d := range demands {
		for _, s := range Stations {
			v := d.vals[s]
			if !finite(v) {
				return &ValidationError{fmt.Sprintf("%s: %s at %s station must be a number", r.Name(), d.name, s)}
			}
			if v < 0 {
				return &ValidationError{fmt.Sprintf("%s: %s at %s station must not be negative", r.Name(), d.name, s)}
			}
		}
	}
	for _, s := range Stations {
		if !finite(r.ShearForce[s]) {
			return &ValidationError{fmt.Sprintf("%s: shear force at %s station must be a number", r.Name(), s)}
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// positive rejects NaN and infinities along with zero and negatives
func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

// ValidationError represents a beam record validation error
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}
