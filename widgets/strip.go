package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"keystrip/theme"
)

// RenderCell renders a single colored cell
func RenderCell(color [3]uint8, cell rune) string {
	style := lipgloss.NewStyle().Foreground(theme.Lipgloss(theme.RGB(color)))
	return style.Render(string(cell))
}

// RenderRow renders one row of the strip from RGBA pixels. Runs of equal
// color share one style so long dark stretches stay cheap.
func RenderRow(pixels []byte, cell rune) string {
	var out strings.Builder
	n := len(pixels) / 4
	for i := 0; i < n; {
		c := [3]uint8{pixels[i*4], pixels[i*4+1], pixels[i*4+2]}
		j := i + 1
		for j < n && pixels[j*4] == c[0] && pixels[j*4+1] == c[1] && pixels[j*4+2] == c[2] {
			j++
		}
		style := lipgloss.NewStyle().Foreground(theme.Lipgloss(theme.RGB(c)))
		out.WriteString(style.Render(strings.Repeat(string(cell), j-i)))
		i = j
	}
	return out.String()
}

// RenderStrip repeats the row height times; the strip has no vertical detail
func RenderStrip(pixels []byte, height int, cell rune) string {
	if height < 1 {
		height = 1
	}
	row := RenderRow(pixels, cell)
	lines := make([]string, height)
	for i := range lines {
		lines[i] = row
	}
	return strings.Join(lines, "\n")
}

// RenderLegendItem renders a single legend item: "█ Name - description"
func RenderLegendItem(color [3]uint8, cell rune, name, desc string) string {
	return fmt.Sprintf("  %s %s - %s", RenderCell(color, cell), name, desc)
}

// RenderKeyHelp formats key bindings in a friendly way
func RenderKeyHelp(sections []KeySection) string {
	var lines []string
	for _, sec := range sections {
		if sec.Title != "" {
			lines = append(lines, sec.Title)
		}
		for _, k := range sec.Keys {
			lines = append(lines, fmt.Sprintf("  %-12s %s", k.Key, k.Desc))
		}
	}
	return strings.Join(lines, "\n")
}

// KeySection groups related key bindings
type KeySection struct {
	Title string
	Keys  []KeyBinding
}

// KeyBinding is a single key and its description
type KeyBinding struct {
	Key  string
	Desc string
}
