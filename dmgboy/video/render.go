package video

import "github.com/cortland/dmgboy/dmgboy/addr"

// tileAddr resolves a tile id to its 16-byte data address (relative to the
// start of VRAM), honoring the LCDC bit 4 addressing mode switch
// (unsigned vs signed tile ids).
func (g *GPU) tileAddr(id uint8) uint16 {
	if g.lcdc&0x10 != 0 {
		return addr.TileData0 - addr.VRAMStart + uint16(id)*16
	}
	return addr.TileData2 - addr.VRAMStart + uint16(int8(id))*16
}

func (g *GPU) bgTileMapBase() uint16 {
	if g.lcdc&0x08 != 0 {
		return addr.TileMap1 - addr.VRAMStart
	}
	return addr.TileMap0 - addr.VRAMStart
}

func (g *GPU) windowTileMapBase() uint16 {
	if g.lcdc&0x40 != 0 {
		return addr.TileMap1 - addr.VRAMStart
	}
	return addr.TileMap0 - addr.VRAMStart
}

func (g *GPU) windowVisible() bool {
	return g.lcdc&0x20 != 0 && g.wx <= 166 && g.wy <= g.ly
}

// renderScanline draws the current LY into the framebuffer: background,
// then window, then sprites. Called once, on the Drawing->HBlank
// transition.
func (g *GPU) renderScanline() {
	y := int(g.ly)
	if y >= Height {
		return
	}

	bgOn := g.lcdc&0x01 != 0
	winOn := g.windowVisible()

	for x := 0; x < Width; x++ {
		var id uint8
		switch {
		case winOn && x+7 >= int(g.wx):
			id = g.sampleTileMap(g.windowTileMapBase(), x-int(g.wx)+7, g.windowLine)
		case bgOn:
			srcX := (x + int(g.scx)) & 0xFF
			srcY := (y + int(g.scy)) & 0xFF
			id = g.sampleTileMap(g.bgTileMapBase(), srcX, srcY)
		default:
			id = 0
		}
		g.bgColorID[x] = id
		g.fb.SetPixel(x, y, Decode(g.bgp, id))
	}

	if winOn {
		g.windowLine++
	}

	if g.lcdc&0x02 != 0 {
		g.renderSprites(y)
	}
}

// sampleTileMap returns the BG/window color id at pixel (x, y) within a
// 256x256 tile map addressed relative to VRAM.
func (g *GPU) sampleTileMap(mapBase uint16, x, y int) uint8 {
	tileCol := x / 8
	tileRow := y / 8
	mapIndex := mapBase + uint16(tileRow)*32 + uint16(tileCol)
	tileID := g.vram[mapIndex]

	rowInTile := uint16(y % 8)
	dataOffset := g.tileAddr(tileID) + rowInTile*2
	low := g.vram[dataOffset]
	high := g.vram[dataOffset+1]

	return TileRow(low, high)[x%8]
}

const spriteHeightTall = 16

func (g *GPU) renderSprites(y int) {
	tall := g.lcdc&0x04 != 0
	height := 8
	if tall {
		height = spriteHeightTall
	}

	var visible []Sprite
	for i := 0; i < 40 && len(visible) < 10; i++ {
		s := DecodeSprite(g.oam[:], i)
		if y >= s.Y && y < s.Y+height {
			visible = append(visible, s)
		}
	}

	// Sprites earlier in OAM draw on top of later ones at the same X;
	// render back-to-front so index 0 ends up topmost.
	for i := len(visible) - 1; i >= 0; i-- {
		g.drawSprite(visible[i], y, height)
	}
}

func (g *GPU) drawSprite(s Sprite, y, height int) {
	line := y - s.Y
	if s.FlipY() {
		line = height - 1 - line
	}

	tile := s.Tile
	if height == spriteHeightTall {
		tile &^= 0x01
		if line >= 8 {
			tile |= 0x01
			line -= 8
		}
	}

	dataOffset := uint16(tile)*16 + uint16(line)*2
	low := g.vram[dataOffset]
	high := g.vram[dataOffset+1]
	row := TileRow(low, high)

	palette := g.obp0
	if s.UsesOBP1() {
		palette = g.obp1
	}

	for col := 0; col < 8; col++ {
		srcCol := col
		if s.FlipX() {
			srcCol = 7 - col
		}
		id := row[srcCol]
		if id == 0 {
			continue // color 0 is transparent for sprites
		}

		screenX := s.X + col
		if screenX < 0 || screenX >= Width {
			continue
		}
		if s.BehindBackground() && g.bgColorID[screenX] != 0 {
			continue
		}
		g.fb.SetPixel(screenX, y, Decode(palette, id))
	}
}
