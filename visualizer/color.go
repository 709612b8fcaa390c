package visualizer

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// PitchClass identifies a key modulo 12 (0..11)
type PitchClass int

type RGB [3]uint8

type RGBA [4]uint8

var (
	black = RGBA{0, 0, 0, 0xFF}

	// Hue in degrees per pitch class, indexed like keys (0 = A). C sits at
	// 0 and each fifth above it adds 30 degrees. A# and F both sit on 330.
	hues = [12]float64{
		0:  90,  // A
		1:  330, // A#
		2:  150, // B
		3:  0,   // C
		4:  210, // C#
		5:  60,  // D
		6:  270, // D#
		7:  120, // E
		8:  330, // F
		9:  180, // F#
		10: 30,  // G
		11: 240, // G#
	}

	palette = buildPalette()
)

func buildPalette() [12]RGB {
	var p [12]RGB
	for pc := range p {
		p[pc] = hsvToRGB(hues[pc], 1, 1)
	}
	return p
}

// hsvToRGB truncates each channel to 0-255, no rounding
func hsvToRGB(h, s, v float64) RGB {
	c := colorful.Hsv(h, s, v)
	return RGB{uint8(c.R * 255), uint8(c.G * 255), uint8(c.B * 255)}
}

func (pc PitchClass) normalize() PitchClass {
	pc %= 12
	if pc < 0 {
		pc += 12
	}
	return pc
}

// Hue returns the hue in degrees assigned to a pitch class
func Hue(pc PitchClass) float64 {
	return hues[pc.normalize()]
}

// ColorFor returns the fixed color of a pitch class. Values outside 0..11
// are reduced modulo 12.
func ColorFor(pc PitchClass) RGB {
	return palette[pc.normalize()]
}

// Palette returns the colors of all 12 pitch classes in class order
func Palette() [12]RGB {
	return palette
}

func (c RGB) Opaque() RGBA {
	return RGBA{c[0], c[1], c[2], 0xFF}
}

// Hex formats the color as #rrggbb
func (c RGB) Hex() string {
	return colorful.Color{
		R: float64(c[0]) / 255,
		G: float64(c[1]) / 255,
		B: float64(c[2]) / 255,
	}.Hex()
}
