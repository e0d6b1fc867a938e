package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/pullup/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// ProtocolColor returns the accent style for a protocol.
func ProtocolColor(p domain.Protocol) lipgloss.Style {
	switch p {
	case domain.ProtocolMaxEffort:
		return StyleRed
	case domain.ProtocolAutoVolume:
		return StyleBlue
	case domain.ProtocolLadder:
		return StylePurple
	default:
		return StyleDim
	}
}

// ProtocolBadge renders a colored protocol name such as "● Max Day".
func ProtocolBadge(p domain.Protocol) string {
	return ProtocolColor(p).Render("● " + p.DisplayName())
}

// PhaseLabel renders the phase name shown above the countdown.
func PhaseLabel(phase domain.Phase) string {
	switch phase {
	case domain.PhasePerforming:
		return StyleGreen.Render("GO")
	case domain.PhaseResting:
		return StyleYellow.Render("REST")
	case domain.PhaseRecordingInput:
		return StyleHeader.Render("RECORD")
	case domain.PhaseComplete:
		return StyleGreen.Render("DONE")
	default:
		return StyleDim.Render(string(phase))
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
