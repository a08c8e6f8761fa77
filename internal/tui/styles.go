// internal/tui/styles.go
//
// Lipgloss palette and styles.

package tui

import "github.com/charmbracelet/lipgloss"

// Semantic color palette.
var (
	colorGold    = lipgloss.Color("#FFD700") // crystals and rewards
	colorSuccess = lipgloss.Color("#00E676") // right answer
	colorDanger  = lipgloss.Color("#FF5252") // wrong answer
	colorMuted   = lipgloss.Color("#636363") // locked phases, hints
	colorWhite   = lipgloss.Color("#EEEEEE")
	colorSurface = lipgloss.Color("#1E1E2E")
)

// phaseColors maps a phase's cosmetic color name to a terminal color.
var phaseColors = map[string]lipgloss.Color{
	"blue":   lipgloss.Color("#5B8DEF"),
	"green":  lipgloss.Color("#00E676"),
	"orange": lipgloss.Color("#FFA726"),
	"pink":   lipgloss.Color("#F06292"),
	"purple": lipgloss.Color("#AB47BC"),
}

func phaseColor(name string) lipgloss.Color {
	if c, ok := phaseColors[name]; ok {
		return c
	}
	return colorWhite
}

// Status icons for phases.
const (
	iconCrystal = "💎"
	iconLocked  = "🔒"
	iconOpen    = "⭐"
	iconCursor  = "▶"
)

var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorGold).
			MarginBottom(1)

	styleStatusBar = lipgloss.NewStyle().
			Background(colorSurface).
			Foreground(colorWhite).
			Padding(0, 1)

	styleHint = lipgloss.NewStyle().
			Foreground(colorMuted).
			MarginTop(1)

	styleLocked = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleSpeech = lipgloss.NewStyle().
			Italic(true).
			Foreground(colorWhite).
			MarginTop(1)

	styleRight = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Bold(true)

	styleWrong = lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true)
)

// tile renders one number box; selected boxes are filled with the phase color.
func tile(n string, color lipgloss.Color, selected bool) string {
	s := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Width(4).
		Align(lipgloss.Center)
	if selected {
		s = s.Background(color).Foreground(colorSurface).Bold(true)
	}
	return s.Render(n)
}

// styleCertificate frames the completion certificate.
var styleCertificate = lipgloss.NewStyle().
	Border(lipgloss.DoubleBorder()).
	BorderForeground(colorGold).
	Padding(1, 4).
	Align(lipgloss.Center)
