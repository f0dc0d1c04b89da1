package formatter

import (
	"fmt"
	"strconv"
	"strings"

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

// PercentColor picks a style for an attendance percentage: green from 75,
// yellow from 50, red below.
func PercentColor(percent int) lipgloss.Style {
	switch {
	case percent >= 75:
		return StyleGreen
	case percent >= 50:
		return StyleYellow
	default:
		return StyleRed
	}
}

// VerdictPill returns a colored status such as "● ELIGIBLE".
func VerdictPill(eligible, terminal bool) string {
	switch {
	case terminal:
		return StylePurple.Render("● TOP RANK")
	case eligible:
		return StyleGreen.Render("● ELIGIBLE")
	default:
		return StyleRed.Render("● NOT YET")
	}
}

// NoResponseMark renders a no-response count, red with a cross once flagged.
func NoResponseMark(count int, flagged bool) string {
	switch {
	case flagged:
		return StyleRed.Render(fmt.Sprintf("✗ %d", count))
	case count == 0:
		return Dim("0")
	default:
		return StyleYellow.Render(strconv.Itoa(count))
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
