package design

import (
	"fmt"
	"math"
	"strings"

	"github.com/alexiusacademia/rcsched/internal/aci"
)

// Schedule sentinels, rendered verbatim by the reporting layer
const (
	LabelOverstressed  = "Overstressed"
	LabelNotApplicable = "-"
	LabelCannotSatisfy = "Cannot satisfy requirement. Please reassess"
)

// LayerCapMessage is the label of a flexural station that needs more than
// maxLayers layers.
func LayerCapMessage(maxLayers int) string {
	return fmt.Sprintf("Required rebar exceeds %s layers.", aci.NumberWord(maxLayers))
}

// FlagMapping decides which face a flexure overstress flag applies to
type FlagMapping int

const (
	// FlagMappingAny treats either flag as overstressing both faces
	FlagMappingAny FlagMapping = iota
	// FlagMappingPerFace maps the negative envelope to the top face and the
	// positive envelope to the bottom face
	FlagMappingPerFace
)

func (m FlagMapping) String() string {
	switch m {
	case FlagMappingAny:
		return "any"
	case FlagMappingPerFace:
		return "per-face"
	}
	return fmt.Sprintf("FlagMapping(%d)", int(m))
}

// ParseFlagMapping reads a mapping name as written in configuration
func ParseFlagMapping(s string) (FlagMapping, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "any":
		return FlagMappingAny, nil
	case "per-face", "per_face", "perface":
		return FlagMappingPerFace, nil
	}
	return FlagMappingAny, fmt.Errorf("unknown flag mapping %q (want any or per-face)", s)
}

// Options are the named design choices that vary between projects
type Options struct {
	MaxLayers      int
	FlagMapping    FlagMapping
	ContinuitySpan float64 // mm
	DeepBeamDepth  float64 // mm
}

// DefaultOptions returns the ACI 318-19 defaults
func DefaultOptions() Options {
	return Options{
		MaxLayers:      aci.DefaultMaxLayers,
		FlagMapping:    FlagMappingAny,
		ContinuitySpan: aci.ContinuitySpan,
		DeepBeamDepth:  aci.DeepBeamDepth,
	}
}

func (o Options) normalized() Options {
	d := DefaultOptions()
	if o.MaxLayers <= 0 {
		o.MaxLayers = d.MaxLayers
	}
	if o.ContinuitySpan <= 0 {
		o.ContinuitySpan = d.ContinuitySpan
	}
	if o.DeepBeamDepth <= 0 {
		o.DeepBeamDepth = d.DeepBeamDepth
	}
	return o
}

// RebarChoice is the flexural arrangement at one station of one face
type RebarChoice struct {
	Diameters   []float64 // one per layer, largest first
	Label       string
	Required    float64 // mm²
	Provided    float64 // mm², rounded
	Utilization float64 // %
	Solved      bool
}

// LayerSum is the sum of the layer diameters, the height the bars take up
func (c RebarChoice) LayerSum() float64 {
	sum := 0.0
	for _, d := range c.Diameters {
		sum += d
	}
	return sum
}

// UtilizationText renders utilization for a schedule cell
func (c RebarChoice) UtilizationText() string {
	return utilizationText(c.Solved, c.Utilization)
}

// StirrupChoice is the stirrup arrangement at one station
type StirrupChoice struct {
	Diameter    float64
	Legs        int
	Spacing     float64
	Label       string
	Required    float64 // mm² per metre
	Provided    float64 // mm² per metre, rounded
	Utilization float64
	Solved      bool
}

func (c StirrupChoice) UtilizationText() string {
	return utilizationText(c.Solved, c.Utilization)
}

// SidefaceChoice is the beam-level side-face arrangement, placed on each face
type SidefaceChoice struct {
	Diameter    float64
	Spacing     float64
	Label       string
	Required    float64 // governing requirement, mm²
	Provided    float64 // mm², rounded
	Utilization float64
	Solved      bool
}

func (c SidefaceChoice) UtilizationText() string {
	return utilizationText(c.Solved, c.Utilization)
}

func utilizationText(solved bool, u float64) string {
	if !solved {
		return LabelNotApplicable
	}
	return fmt.Sprintf("%.1f", u)
}

// utilization returns required/provided as a percentage to one decimal
func utilization(required, provided float64) float64 {
	if provided <= 0 {
		return 0
	}
	return round(required/provided*100, 1)
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// roundArea rounds a provided area to whole mm², ties to even
func roundArea(v float64) float64 {
	return math.RoundToEven(v)
}

func formatDiameter(d float64) string {
	return fmt.Sprintf("%g", d)
}
