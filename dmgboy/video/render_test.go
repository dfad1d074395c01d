package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodePalette(t *testing.T) {
	// BGP = 0b11_10_01_00: id0->white, id1->light grey, id2->dark grey, id3->black
	bgp := uint8(0b11_10_01_00)
	assert.Equal(t, ShadeWhite, Decode(bgp, 0))
	assert.Equal(t, ShadeLightGrey, Decode(bgp, 1))
	assert.Equal(t, ShadeDarkGrey, Decode(bgp, 2))
	assert.Equal(t, ShadeBlack, Decode(bgp, 3))
}

func TestTileRowDecodesLeftToRight(t *testing.T) {
	// low byte has bit7 set (leftmost pixel), high byte has bit0 set (rightmost).
	row := TileRow(0b1000_0000, 0b0000_0001)
	assert.Equal(t, uint8(1), row[0]) // leftmost: low bit set only
	assert.Equal(t, uint8(2), row[7]) // rightmost: high bit set only
	for x := 1; x < 7; x++ {
		assert.Equal(t, uint8(0), row[x])
	}
}

func TestDecodeSprite(t *testing.T) {
	oam := make([]byte, 160)
	oam[4] = 20               // Y
	oam[5] = 12                // X
	oam[6] = 0x42              // tile
	oam[7] = 1 << 7            // priority bit set

	s := DecodeSprite(oam, 1)
	assert.Equal(t, 4, s.Y) // 20-16
	assert.Equal(t, 4, s.X) // 12-8
	assert.Equal(t, uint8(0x42), s.Tile)
	assert.True(t, s.BehindBackground())
	assert.False(t, s.FlipX())
	assert.False(t, s.FlipY())
	assert.False(t, s.UsesOBP1())
}

func TestFrameBufferSetPixel(t *testing.T) {
	fb := NewFrameBuffer()
	fb.SetPixel(0, 0, ShadeBlack)
	fb.SetPixel(1, 0, ShadeWhite)

	b := fb.Bytes()
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0xFF}, b[0:4])
	assert.Equal(t, []byte{0xFF, 0xFF, 0xFF, 0xFF}, b[4:8])
}
