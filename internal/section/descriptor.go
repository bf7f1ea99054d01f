package section

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Descriptor is a rectangular beam section as named in an ETABS model,
// e.g. "B600X750-C45/56"
type Descriptor struct {
	Name  string
	Width float64 // mm
	Depth float64 // mm
	Grade float64 // f'c, MPa (cylinder strength)
	Cube  float64 // cube strength after the slash, MPa; 0 when absent
}

var (
	dimensionsPattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*x\s*(\d+(?:\.\d+)?)`)
	gradePattern      = regexp.MustCompile(`(?i)c\s*(\d+(?:\.\d+)?)\s*(?:/\s*(\d+(?:\.\d+)?))?`)
)

// Parse reads the width, depth and concrete grade from a section name.
// Prefixes and separators around the numbers are ignored.
func Parse(name string) (Descriptor, error) {
	d := Descriptor{Name: strings.TrimSpace(name)}

	dims := dimensionsPattern.FindStringSubmatchIndex(d.Name)
	if dims == nil {
		return d, &ParseError{name, "missing WIDTHxDEPTH"}
	}
	d.Width, _ = strconv.ParseFloat(d.Name[dims[2]:dims[3]], 64)
	d.Depth, _ = strconv.ParseFloat(d.Name[dims[4]:dims[5]], 64)

	grade := gradePattern.FindStringSubmatch(d.Name[dims[1]:])
	if grade == nil {
		return d, &ParseError{name, "missing concrete grade"}
	}
	d.Grade, _ = strconv.ParseFloat(grade[1], 64)
	if grade[2] != "" {
		d.Cube, _ = strconv.ParseFloat(grade[2], 64)
	}

	if d.Width <= 0 || d.Depth <= 0 || d.Grade <= 0 {
		return d, &ParseError{name, "dimensions and grade must be positive"}
	}
	return d, nil
}

// String formats the descriptor in the B<width>X<depth>-C<grade>/<cube> form
func (d Descriptor) String() string {
	s := fmt.Sprintf("B%gX%g-C%g", d.Width, d.Depth, d.Grade)
	if d.Cube > 0 {
		s += fmt.Sprintf("/%g", d.Cube)
	}
	return s
}

// ParseError reports a section name that could not be read
type ParseError struct {
	Name   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("section %q: %s", e.Name, e.Reason)
}
