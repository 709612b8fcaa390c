package visualizer

import "fmt"

// KeyForPixel maps an output cell to the key it shows:
// floor(i*88/width). Wide strips repeat keys, narrow strips skip them.
func KeyForPixel(i, width int) Key {
	return Key(i * NumKeys / width)
}

// RenderInto fills dst with width RGBA pixels projected from state.
// A lit key takes its pitch-class color; intensity only gates on/off.
// dst must be exactly 4*width bytes.
func RenderInto(dst []byte, state *KeyState, width int) {
	if width <= 0 || len(dst) != 4*width {
		panic(fmt.Sprintf("visualizer: buffer of %d bytes for width %d", len(dst), width))
	}
	for i := 0; i < width; i++ {
		px := black
		k := KeyForPixel(i, width)
		if state.intensities[k] > 0 {
			px = ColorFor(k.PitchClass()).Opaque()
		}
		copy(dst[i*4:i*4+4], px[:])
	}
}
