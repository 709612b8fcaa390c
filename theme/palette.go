package theme

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"keystrip/visualizer"
)

type RGB [3]uint8

type Palette struct {
	Name   string
	Colors []RGB
	Names  []string // optional, one per color
}

// pitchClassNames follows key index order: key 0 is A0
var pitchClassNames = [12]string{"A", "A#", "B", "C", "C#", "D", "D#", "E", "F", "F#", "G", "G#"}

// PitchClasses returns the strip colors as a palette, one entry per class
func PitchClasses() *Palette {
	p := &Palette{Name: "keystrip pitch classes"}
	for pc, c := range visualizer.Palette() {
		p.Colors = append(p.Colors, RGB(c))
		p.Names = append(p.Names, fmt.Sprintf("%d %s", pc, pitchClassNames[pc]))
	}
	return p
}

// UI is the built-in palette for the terminal chrome, dark to bright
func UI() *Palette {
	return &Palette{
		Name: "keystrip ui",
		Colors: []RGB{
			{12, 12, 16},
			{40, 40, 52},
			{90, 90, 110},
			{170, 170, 190},
			{255, 127, 0},
			{255, 0, 127},
		},
	}
}

func LoadGPL(path string) (*Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p, err := ParseGPL(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// ParseGPL reads a GIMP palette
func ParseGPL(r io.Reader) (*Palette, error) {
	p := &Palette{}
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if strings.HasPrefix(line, "Name:") {
			p.Name = strings.TrimSpace(strings.TrimPrefix(line, "Name:"))
			continue
		}

		// Skip headers and comments
		if line == "" || line[0] == '#' || strings.HasPrefix(line, "GIMP") || strings.HasPrefix(line, "Columns") {
			continue
		}

		// first 3 fields are R G B, the rest is the color name
		fields := strings.Fields(line)
		if len(fields) >= 3 {
			r, err1 := strconv.Atoi(fields[0])
			g, err2 := strconv.Atoi(fields[1])
			b, err3 := strconv.Atoi(fields[2])
			if err1 == nil && err2 == nil && err3 == nil {
				p.Colors = append(p.Colors, RGB{uint8(r), uint8(g), uint8(b)})
				p.Names = append(p.Names, strings.Join(fields[3:], " "))
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(p.Colors) == 0 {
		return nil, fmt.Errorf("no colors found in palette")
	}

	return p, nil
}

// WriteGPL writes the palette in GIMP format
func (p *Palette) WriteGPL(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "GIMP Palette")
	fmt.Fprintf(bw, "Name: %s\n", p.Name)
	fmt.Fprintln(bw, "Columns: 12")
	fmt.Fprintln(bw, "#")
	for i, c := range p.Colors {
		name := ""
		if i < len(p.Names) {
			name = p.Names[i]
		}
		fmt.Fprintf(bw, "%3d %3d %3d\t%s\n", c[0], c[1], c[2], name)
	}
	return bw.Flush()
}

// Compare returns the indexes where p differs from want, including entries
// missing from either side
func Compare(p, want *Palette) []int {
	var diff []int
	n := max(len(p.Colors), len(want.Colors))
	for i := 0; i < n; i++ {
		if i >= len(p.Colors) || i >= len(want.Colors) || p.Colors[i] != want.Colors[i] {
			diff = append(diff, i)
		}
	}
	return diff
}

// Lookup returns interpolated color for normalized value 0-1
func (p *Palette) Lookup(norm float64) RGB {
	if norm <= 0 {
		return p.Colors[0]
	}
	if norm >= 1 {
		return p.Colors[len(p.Colors)-1]
	}

	// Find the two colors to interpolate between
	pos := norm * float64(len(p.Colors)-1)
	i := int(pos)
	frac := pos - float64(i)

	c0 := p.Colors[i]
	c1 := p.Colors[i+1]

	return RGB{
		lerp(c0[0], c1[0], frac),
		lerp(c0[1], c1[1], frac),
		lerp(c0[2], c1[2], frac),
	}
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a)*(1-t) + float64(b)*t)
}
