package video

// Width and Height are the DMG's fixed screen dimensions in pixels.
const (
	Width  = 160
	Height = 144
)

// Shade is one of the four 2-bit grayscale values a palette can map a
// color id to.
type Shade uint8

const (
	ShadeWhite     Shade = 0
	ShadeLightGrey Shade = 1
	ShadeDarkGrey  Shade = 2
	ShadeBlack     Shade = 3
)

// shadeRGB holds the RGB triplet for each shade, per spec §3.
var shadeRGB = [4][3]byte{
	ShadeWhite:     {0xFF, 0xFF, 0xFF},
	ShadeLightGrey: {0xCC, 0xCC, 0xCC},
	ShadeDarkGrey:  {0x77, 0x77, 0x77},
	ShadeBlack:     {0x00, 0x00, 0x00},
}

// FrameBuffer holds one RGBA8 frame, row-major, top-left origin.
type FrameBuffer struct {
	pixels []byte // len == Width*Height*4
}

// NewFrameBuffer returns a FrameBuffer with every byte zero (black, alpha 0)
// until pixels are drawn.
func NewFrameBuffer() *FrameBuffer {
	return &FrameBuffer{pixels: make([]byte, Width*Height*4)}
}

// SetPixel writes the given shade at (x, y) with full alpha.
func (f *FrameBuffer) SetPixel(x, y int, shade Shade) {
	offset := (y*Width + x) * 4
	rgb := shadeRGB[shade&0x3]
	f.pixels[offset+0] = rgb[0]
	f.pixels[offset+1] = rgb[1]
	f.pixels[offset+2] = rgb[2]
	f.pixels[offset+3] = 0xFF
}

// Bytes returns the raw RGBA8 buffer.
func (f *FrameBuffer) Bytes() []byte {
	return f.pixels
}
