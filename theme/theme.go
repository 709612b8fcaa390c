package theme

import (
	"github.com/charmbracelet/lipgloss"

	"keystrip/visualizer"
)

type Theme struct {
	Palette *Palette
	Symbols Symbols
}

type Symbols struct {
	Cell      rune // █ one strip cell
	PedalDown rune // ● sustain held
	PedalUp   rune // ○ sustain released
}

func New(palette *Palette) *Theme {
	return &Theme{
		Palette: palette,
		Symbols: Symbols{
			Cell:      '█',
			PedalDown: '●',
			PedalUp:   '○',
		},
	}
}

// Color roles mapped to palette positions (0-1)
const (
	RoleBG      = 0.0
	RoleSurface = 0.2
	RoleMuted   = 0.4
	RoleFG      = 0.6
	RoleAccent  = 0.8
	RoleWarning = 1.0
)

func (t *Theme) BG() lipgloss.Color {
	return Lipgloss(t.Palette.Lookup(RoleBG))
}

func (t *Theme) FG() lipgloss.Color {
	return Lipgloss(t.Palette.Lookup(RoleFG))
}

func (t *Theme) Muted() lipgloss.Color {
	return Lipgloss(t.Palette.Lookup(RoleMuted))
}

func (t *Theme) Accent() lipgloss.Color {
	return Lipgloss(t.Palette.Lookup(RoleAccent))
}

func (t *Theme) Warning() lipgloss.Color {
	return Lipgloss(t.Palette.Lookup(RoleWarning))
}

// Styles used by the status line

func (t *Theme) StatusStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.FG()).Background(t.BG())
}

func (t *Theme) MutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Muted())
}

func (t *Theme) AccentStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Accent()).Bold(true)
}

func (t *Theme) WarningStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Warning())
}

// Lipgloss converts a color to a lipgloss hex color
func Lipgloss(c RGB) lipgloss.Color {
	return lipgloss.Color(Hex(c))
}

func Hex(c RGB) string {
	return visualizer.RGB(c).Hex()
}
