package ui

import (
	"github.com/charmbracelet/lipgloss"

	"todue/internal/config"
	"todue/internal/urgency"
)

type styles struct {
	high, medium, low lipgloss.Style

	title     lipgloss.Style
	cursor    lipgloss.Style
	completed lipgloss.Style
	dim       lipgloss.Style
	alert     lipgloss.Style

	calHeader   lipgloss.Style
	calDay      lipgloss.Style
	calToday    lipgloss.Style
	calSelected lipgloss.Style
}

func newStyles(c config.Colors) styles {
	return styles{
		high:   lipgloss.NewStyle().Foreground(lipgloss.Color(c.High)),
		medium: lipgloss.NewStyle().Foreground(lipgloss.Color(c.Medium)),
		low:    lipgloss.NewStyle().Foreground(lipgloss.Color(c.Low)),

		title:     lipgloss.NewStyle().Bold(true),
		cursor:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		completed: lipgloss.NewStyle().Strikethrough(true).Faint(true),
		dim:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		alert: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(c.High)).
			Padding(0, 1),

		calHeader:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Bold(true),
		calDay:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		calToday:    lipgloss.NewStyle().Underline(true),
		calSelected: lipgloss.NewStyle().Background(lipgloss.Color("63")).Foreground(lipgloss.Color("0")),
	}
}

func (s styles) tier(t urgency.Tier) lipgloss.Style {
	switch t {
	case urgency.High:
		return s.high
	case urgency.Medium:
		return s.medium
	default:
		return s.low
	}
}
