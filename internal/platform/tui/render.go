package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorSky:     lipgloss.NewStyle().Foreground(lipgloss.Color("117")),
	core.ColorPipe:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorPipeCap: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBird:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBirdEye: lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGround:  lipgloss.NewStyle().Foreground(lipgloss.Color("136")),
	core.ColorScore:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
	core.ColorBanner:  lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
	core.ColorDanger:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	core.ColorMuted:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// Shared styles for the non-game screens.
var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// styleFor returns the style for a cell color, unstyled if unknown.
func styleFor(c core.Color) lipgloss.Style {
	if style, ok := colorStyles[c]; ok {
		return style
	}
	return colorStyles[core.ColorDefault]
}

// RenderScreen converts a Screen buffer to a styled string, one line per row.
// Runs of cells sharing a color are rendered with a single style.
func RenderScreen(s *core.Screen) string {
	lines := make([]string, s.Height())
	run := make([]rune, 0, s.Width())

	for y := range lines {
		var line strings.Builder
		run = run[:0]
		current := s.GetCell(0, y).Color

		for x := range s.Width() {
			cell := s.GetCell(x, y)
			if cell.Color != current {
				line.WriteString(styleFor(current).Render(string(run)))
				run, current = run[:0], cell.Color
			}
			run = append(run, cell.Rune)
		}
		if len(run) > 0 {
			line.WriteString(styleFor(current).Render(string(run)))
		}
		lines[y] = line.String()
	}
	return strings.Join(lines, "\n")
}
