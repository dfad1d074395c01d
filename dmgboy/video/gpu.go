// Package video implements the DMG pixel unit: the scanline/mode state
// machine (OAM-scan -> drawing -> HBlank -> VBlank), VRAM/OAM storage, and
// background/window/sprite rendering into an RGBA8 framebuffer.
package video

import "github.com/cortland/dmgboy/dmgboy/addr"

// Mode is the 2-bit STAT mode code.
type Mode uint8

const (
	ModeHBlank Mode = 0
	ModeVBlank Mode = 1
	ModeOAMScan Mode = 2
	ModeDrawing Mode = 3
)

const (
	oamScanTicks  = 80
	drawingTicks  = 172
	hblankTicks   = 204
	scanlineTicks = oamScanTicks + drawingTicks + hblankTicks // 456
	visibleLines  = 144
	vblankLines   = 10
	totalLines    = visibleLines + vblankLines
)

// GPU is the DMG pixel unit. It owns VRAM, OAM and the LCD registers, and
// renders background/window/sprites scanline by scanline.
type GPU struct {
	vram [0x2000]byte
	oam  [0xA0]byte

	lcdc, stat, scy, scx, ly, lyc, bgp, obp0, obp1, wy, wx uint8

	mode        Mode
	ticks       int // ticks elapsed within the current mode
	windowLine  int // internal window line counter, increments only on lines the window is drawn

	fb         *FrameBuffer
	bgColorID  [Width]uint8 // color ids (0-3) of the just-drawn BG/window line, for sprite priority
}

// New returns a GPU with mode VBlank and LY at the power-on line 144,
// matching the state a real DMG is in just before the boot ROM enables
// the LCD.
func New() *GPU {
	return &GPU{
		fb:   NewFrameBuffer(),
		mode: ModeVBlank,
		ly:   144,
	}
}

// FrameBuffer returns the most recently rendered frame.
func (g *GPU) FrameBuffer() *FrameBuffer { return g.fb }

func (g *GPU) lcdEnabled() bool { return g.lcdc&0x80 != 0 }

// ReadVRAM/WriteVRAM access the 8 KiB VRAM window (0x8000-0x9FFF
// relative).
func (g *GPU) ReadVRAM(address uint16) uint8    { return g.vram[address] }
func (g *GPU) WriteVRAM(address uint16, v uint8) { g.vram[address] = v }

// ReadOAM/WriteOAM access the 160-byte OAM window (0xFE00-0xFE9F
// relative).
func (g *GPU) ReadOAM(address uint16) uint8    { return g.oam[address] }
func (g *GPU) WriteOAM(address uint16, v uint8) { g.oam[address] = v }

// OAMBytes exposes the raw OAM region for DMA copies.
func (g *GPU) OAMBytes() []byte { return g.oam[:] }

// ReadReg dispatches a read to one of the LCD registers.
func (g *GPU) ReadReg(address uint16) uint8 {
	switch address {
	case addr.LCDC:
		return g.lcdc
	case addr.STAT:
		if !g.lcdEnabled() {
			return (g.stat &^ 0x03) | 0x01
		}
		return g.stat
	case addr.SCY:
		return g.scy
	case addr.SCX:
		return g.scx
	case addr.LY:
		if !g.lcdEnabled() {
			return 0
		}
		return g.ly
	case addr.LYC:
		return g.lyc
	case addr.BGP:
		return g.bgp
	case addr.OBP0:
		return g.obp0
	case addr.OBP1:
		return g.obp1
	case addr.WY:
		return g.wy
	case addr.WX:
		return g.wx
	default:
		return 0xFF
	}
}

// WriteReg dispatches a write to one of the LCD registers. LY is
// read-only from the CPU's perspective; STAT only accepts its upper five
// bits from a CPU write (mode and LYC-coincidence bits are hardware-owned).
func (g *GPU) WriteReg(address uint16, v uint8) {
	switch address {
	case addr.LCDC:
		wasEnabled := g.lcdEnabled()
		g.lcdc = v
		if wasEnabled && !g.lcdEnabled() {
			g.disableLCD()
		}
	case addr.STAT:
		g.stat = (g.stat & 0x07) | (v & 0xF8)
	case addr.SCY:
		g.scy = v
	case addr.SCX:
		g.scx = v
	case addr.LY:
		// read-only
	case addr.LYC:
		g.lyc = v
	case addr.BGP:
		g.bgp = v
	case addr.OBP0:
		g.obp0 = v
	case addr.OBP1:
		g.obp1 = v
	case addr.WY:
		g.wy = v
	case addr.WX:
		g.wx = v
	}
}

func (g *GPU) disableLCD() {
	g.ticks = 0
	g.ly = 0
	g.setMode(ModeVBlank)
	g.windowLine = 0
}

func (g *GPU) setMode(m Mode) {
	g.mode = m
	g.stat = (g.stat &^ 0x03) | uint8(m)
}

func (g *GPU) statInterruptEnabled(bit uint8) bool {
	return g.stat&(1<<bit) != 0
}

// Tick advances the pixel unit by cycles machine cycles (4*cycles clock
// ticks) and returns any interrupts newly requested during this call.
func (g *GPU) Tick(cycles int) []addr.Interrupt {
	if !g.lcdEnabled() {
		return nil
	}

	var fired []addr.Interrupt
	g.ticks += 4 * cycles

	for {
		switch g.mode {
		case ModeOAMScan:
			if g.ticks < oamScanTicks {
				return fired
			}
			g.ticks -= oamScanTicks
			g.setMode(ModeDrawing)

		case ModeDrawing:
			if g.ticks < drawingTicks {
				return fired
			}
			g.ticks -= drawingTicks
			g.renderScanline()
			g.setMode(ModeHBlank)
			if g.statInterruptEnabled(3) {
				fired = append(fired, addr.LCDStat)
			}

		case ModeHBlank:
			if g.ticks < hblankTicks {
				return fired
			}
			g.ticks -= hblankTicks
			g.ly++

			if g.ly >= visibleLines {
				g.setMode(ModeVBlank)
				g.windowLine = 0
				fired = append(fired, addr.VBlank)
				if g.statInterruptEnabled(4) {
					fired = append(fired, addr.LCDStat)
				}
			} else {
				g.setMode(ModeOAMScan)
				if g.statInterruptEnabled(5) {
					fired = append(fired, addr.LCDStat)
				}
			}
			fired = g.updateLYC(fired)

		case ModeVBlank:
			if g.ticks < scanlineTicks {
				return fired
			}
			g.ticks -= scanlineTicks
			g.ly++

			if g.ly >= totalLines {
				g.ly = 0
				g.setMode(ModeOAMScan)
				if g.statInterruptEnabled(5) {
					fired = append(fired, addr.LCDStat)
				}
			}
			fired = g.updateLYC(fired)
		}
	}
}

func (g *GPU) updateLYC(fired []addr.Interrupt) []addr.Interrupt {
	coincidence := g.ly == g.lyc
	wasSet := g.stat&0x04 != 0
	g.stat = (g.stat &^ 0x04)
	if coincidence {
		g.stat |= 0x04
	}
	if coincidence && !wasSet && g.statInterruptEnabled(6) {
		fired = append(fired, addr.LCDStat)
	}
	return fired
}
