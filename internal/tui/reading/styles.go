// Package reading provides the interactive TUI for a tarot reading.
package reading

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/deeklead/midori/internal/config"
)

// Color palette
var (
	colorPrimary   = lipgloss.AdaptiveColor{Light: "#2e7d32", Dark: "#81c784"} // Green
	colorAccent    = lipgloss.AdaptiveColor{Light: "#7b1fa2", Dark: "#d2a6ff"} // Purple
	colorWarning   = lipgloss.AdaptiveColor{Light: "#b26a00", Dark: "#ffb454"} // Amber
	colorDim       = lipgloss.AdaptiveColor{Light: "#8a8a8a", Dark: "#6c7680"} // Gray
	colorHighlight = lipgloss.AdaptiveColor{Light: "#0277bd", Dark: "#59c2ff"} // Cyan
)

// Styles for the reading TUI
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	SelectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorHighlight)

	NormalStyle = lipgloss.NewStyle()

	InstructionStyle = lipgloss.NewStyle().
				Foreground(colorAccent).
				Bold(true)

	StatusStyle = lipgloss.NewStyle().
			Foreground(colorPrimary)

	WarningStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	DimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1)

	CardNameStyle = lipgloss.NewStyle().
			Bold(true)

	ReversedStyle = lipgloss.NewStyle().
			Foreground(colorWarning).
			Italic(true)
)

// cardBackColors tints face-down cards by the configured card back.
var cardBackColors = map[config.CardBack]lipgloss.AdaptiveColor{
	config.CardBackByzantine:  {Light: "#1a237e", Dark: "#7986cb"},
	config.CardBackLightBrown: {Light: "#795548", Dark: "#d7b899"},
	config.CardBackRoseMoon:   {Light: "#ad1457", Dark: "#f48fb1"},
	config.CardBackPersia:     {Light: "#00695c", Dark: "#4db6ac"},
}

// cardBackStyle returns the style for face-down cards.
func cardBackStyle(back config.CardBack) lipgloss.Style {
	c, ok := cardBackColors[back]
	if !ok {
		c = cardBackColors[config.CardBackByzantine]
	}
	return lipgloss.NewStyle().Foreground(c)
}
