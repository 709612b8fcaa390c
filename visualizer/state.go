package visualizer

// KeyState holds the intensity of every piano key and the sustain pedal.
// The zero value is all keys released with the pedal up.
type KeyState struct {
	intensities [NumKeys]float64
	pedal       float64
}

// noteOn overwrites the key's intensity, it does not accumulate
func (s *KeyState) noteOn(k Key, velocity float64) {
	s.intensities[k] = velocity
}

func (s *KeyState) noteOff(k Key) {
	s.intensities[k] = 0
}

func (s *KeyState) setPedal(v float64) {
	s.pedal = v
}

// Intensity returns 0 for keys outside the piano
func (s KeyState) Intensity(k Key) float64 {
	if !k.Valid() {
		return 0
	}
	return s.intensities[k]
}

// Intensities returns a copy of all 88 intensities
func (s KeyState) Intensities() [NumKeys]float64 {
	return s.intensities
}

// Pedal is the last sustain position. It does not affect rendering.
func (s KeyState) Pedal() float64 {
	return s.pedal
}

func (s KeyState) Lit(k Key) bool {
	return s.Intensity(k) > 0
}

// Active lists lit keys from lowest to highest
func (s KeyState) Active() []Key {
	var keys []Key
	for i, v := range s.intensities {
		if v > 0 {
			keys = append(keys, Key(i))
		}
	}
	return keys
}
