package ledstrip

const (
	CmdShowFrame = 0x20
	SOF0         = 0xAA
	SOF1         = 0x55

	// LEN is 16 bits and counts CMD, Seq and the RGB payload
	MaxCells = (0xFFFF - 2) / 3
)

// Frame is one full strip snapshot sent to the LED controller
type Frame struct {
	Seq    byte
	Pixels []byte // RGBA, 4 bytes per cell
}

// Encode builds the on-wire representation. Alpha is dropped:
//
//	[SOF0][SOF1][LEN_HI][LEN_LO][CMD][Seq][r0 g0 b0 ... rN gN bN][CKS]
//
// CKS is the XOR of every byte from LEN_HI through the payload.
func (f *Frame) Encode() []byte {
	cells := len(f.Pixels) / 4
	length := 2 + cells*3

	out := make([]byte, 0, 4+length+1)
	out = append(out, SOF0, SOF1, byte(length>>8), byte(length), CmdShowFrame, f.Seq)
	for i := 0; i < cells; i++ {
		px := f.Pixels[i*4 : i*4+3]
		out = append(out, px...)
	}

	var cks byte
	for _, b := range out[2:] {
		cks ^= b
	}
	return append(out, cks)
}
