package visualizer

import "testing"

func TestColorForTable(t *testing.T) {
	tests := []struct {
		pc   PitchClass
		hue  float64
		want RGB
	}{
		{3, 0, RGB{255, 0, 0}},
		{10, 30, RGB{255, 127, 0}},
		{5, 60, RGB{255, 255, 0}},
		{0, 90, RGB{127, 255, 0}},
		{7, 120, RGB{0, 255, 0}},
		{2, 150, RGB{0, 255, 127}},
		{9, 180, RGB{0, 255, 255}},
		{4, 210, RGB{0, 127, 255}},
		{11, 240, RGB{0, 0, 255}},
		{6, 270, RGB{127, 0, 255}},
		{1, 330, RGB{255, 0, 127}},
		{8, 330, RGB{255, 0, 127}},
	}
	for _, tt := range tests {
		if got := Hue(tt.pc); got != tt.hue {
			t.Errorf("Hue(%d) = %v, want %v", tt.pc, got, tt.hue)
		}
		if got := ColorFor(tt.pc); got != tt.want {
			t.Errorf("ColorFor(%d) = %v, want %v", tt.pc, got, tt.want)
		}
	}
}

func TestColorForCollision(t *testing.T) {
	if ColorFor(1) != ColorFor(8) {
		t.Fatal("A# and F should share a color")
	}
	seen := map[RGB]int{}
	for _, c := range Palette() {
		seen[c]++
	}
	if len(seen) != 11 {
		t.Fatalf("expected 11 distinct colors, got %d", len(seen))
	}
}

func TestColorForWraps(t *testing.T) {
	if ColorFor(12) != ColorFor(0) || ColorFor(-1) != ColorFor(11) {
		t.Fatal("pitch classes should wrap modulo 12")
	}
}

func TestHSVTruncates(t *testing.T) {
	// 0.5 * 255 = 127.5 truncates to 127
	if got := hsvToRGB(30, 1, 1); got != (RGB{255, 127, 0}) {
		t.Fatalf("hsvToRGB(30) = %v", got)
	}
	if got := hsvToRGB(0, 0, 0.5); got != (RGB{127, 127, 127}) {
		t.Fatalf("hsvToRGB(0, 0, 0.5) = %v", got)
	}
}

func TestRGBHex(t *testing.T) {
	if got := ColorFor(10).Hex(); got != "#ff7f00" {
		t.Fatalf("Hex() = %q", got)
	}
}

func TestKeyColorsOnPiano(t *testing.T) {
	v, err := New(NumKeys)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		key  Key
		want RGBA
	}{
		{0, RGBA{127, 255, 0, 255}},  // A0
		{1, RGBA{255, 0, 127, 255}},  // A#0
		{8, RGBA{255, 0, 127, 255}},  // F1
		{39, RGBA{255, 0, 0, 255}},   // C4
		{46, RGBA{255, 127, 0, 255}}, // G4
	}
	for _, tt := range tests {
		v.Receive([]byte{NoteOn, tt.key.Note(), 127})
	}
	for _, tt := range tests {
		if got := v.Pixel(int(tt.key)); got != tt.want {
			t.Errorf("%s: pixel = %v, want %v", tt.key.Name(), got, tt.want)
		}
	}
}
