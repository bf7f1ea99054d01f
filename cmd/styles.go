package cmd

import (
	"github.com/alexiusacademia/rcsched/internal/design"
	"github.com/charmbracelet/lipgloss"
)

var (
	colorPass = lipgloss.AdaptiveColor{Light: "#86b300", Dark: "#c2d94c"}
	colorWarn = lipgloss.AdaptiveColor{Light: "#f2ae49", Dark: "#ffb454"}
	colorFail = lipgloss.AdaptiveColor{Light: "#f07171", Dark: "#f07178"}

	passStyle = lipgloss.NewStyle().Foreground(colorPass).Bold(true)
	warnStyle = lipgloss.NewStyle().Foreground(colorWarn).Bold(true)
	failStyle = lipgloss.NewStyle().Foreground(colorFail).Bold(true)
)

// renderState colours a design state for the terminal
func renderState(s design.State) string {
	switch s {
	case design.Nominal:
		return passStyle.Render("✓ " + s.String())
	case design.FlexOverstressed, design.ShearOverstressed:
		return warnStyle.Render("⚠ " + s.String())
	default:
		return failStyle.Render("✗ " + s.String())
	}
}
