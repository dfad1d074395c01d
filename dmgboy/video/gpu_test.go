package video

import (
	"testing"

	"github.com/cortland/dmgboy/dmgboy/addr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEnabledGPU() *GPU {
	g := New()
	g.WriteReg(addr.LCDC, 0x91) // LCD on, BG on, tile data mode 1
	g.ly = 0
	g.setMode(ModeOAMScan)
	g.ticks = 0
	return g
}

func TestGPUModeSequence(t *testing.T) {
	g := newEnabledGPU()

	g.Tick(oamScanTicks / 4)
	assert.Equal(t, ModeDrawing, g.mode)

	g.Tick(drawingTicks / 4)
	assert.Equal(t, ModeHBlank, g.mode)

	g.Tick(hblankTicks / 4)
	assert.Equal(t, ModeOAMScan, g.mode)
	assert.Equal(t, uint8(1), g.ly)
}

func TestGPUEntersVBlankAfterVisibleLines(t *testing.T) {
	g := newEnabledGPU()

	for line := 0; line < visibleLines; line++ {
		g.Tick(scanlineTicks / 4)
	}

	assert.Equal(t, ModeVBlank, g.mode)
	assert.Equal(t, uint8(visibleLines), g.ly)
}

func TestGPURequestsVBlankInterruptOnce(t *testing.T) {
	g := newEnabledGPU()

	var fired []addr.Interrupt
	for line := 0; line < visibleLines; line++ {
		fired = append(fired, g.Tick(scanlineTicks/4)...)
	}

	count := 0
	for _, i := range fired {
		if i == addr.VBlank {
			count++
		}
	}
	require.Equal(t, 1, count)
}

func TestGPUWrapsAfterVBlank(t *testing.T) {
	g := newEnabledGPU()

	for line := 0; line < totalLines; line++ {
		g.Tick(scanlineTicks / 4)
	}

	assert.Equal(t, ModeOAMScan, g.mode)
	assert.Equal(t, uint8(0), g.ly)
}

func TestGPULYCInterrupt(t *testing.T) {
	g := newEnabledGPU()
	g.WriteReg(addr.LYC, 1)
	g.WriteReg(addr.STAT, 0x40) // enable LYC=LY interrupt

	var fired []addr.Interrupt
	fired = append(fired, g.Tick(scanlineTicks/4)...) // line 0 -> 1

	found := false
	for _, i := range fired {
		if i == addr.LCDStat {
			found = true
		}
	}
	assert.True(t, found)
	assert.NotZero(t, g.ReadReg(addr.STAT)&0x04)
}

func TestGPUDisabledReadsLYZeroAndModeOne(t *testing.T) {
	g := New()
	g.lcdc = 0 // LCD off

	assert.Equal(t, uint8(0), g.ReadReg(addr.LY))
	assert.Equal(t, uint8(1), g.ReadReg(addr.STAT)&0x03)
	assert.Nil(t, g.Tick(100))
}

func TestGPUDisablingMidFrameResetsState(t *testing.T) {
	g := newEnabledGPU()
	g.Tick(scanlineTicks / 4 * 10)

	g.WriteReg(addr.LCDC, 0x00)
	assert.Equal(t, uint8(0), g.ly)
	assert.Equal(t, ModeVBlank, g.mode)
}

func TestVRAMAndOAMReadWrite(t *testing.T) {
	g := New()
	g.WriteVRAM(0x0010, 0xAB)
	assert.Equal(t, uint8(0xAB), g.ReadVRAM(0x0010))

	g.WriteOAM(0x04, 0x7F)
	assert.Equal(t, uint8(0x7F), g.ReadOAM(0x04))
}

func TestSTATWritePreservesModeAndCoincidenceBits(t *testing.T) {
	g := newEnabledGPU()
	g.stat = 0x07 // mode 3, coincidence set
	g.WriteReg(addr.STAT, 0x78)

	assert.Equal(t, uint8(0x7F), g.stat)
}
