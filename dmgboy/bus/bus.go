// Package bus implements the DMG address space: it decodes every CPU
// memory access into a read or write against the cartridge, work RAM, the
// pixel unit's VRAM/OAM, HRAM, or one of the I/O register blocks, and owns
// the boot ROM latch and OAM DMA transfer.
package bus

import (
	"fmt"
	"log/slog"

	"github.com/cortland/dmgboy/dmgboy/addr"
	"github.com/cortland/dmgboy/dmgboy/audio"
	"github.com/cortland/dmgboy/dmgboy/cartridge"
	"github.com/cortland/dmgboy/dmgboy/interrupt"
	"github.com/cortland/dmgboy/dmgboy/joypad"
	"github.com/cortland/dmgboy/dmgboy/serial"
	"github.com/cortland/dmgboy/dmgboy/timer"
	"github.com/cortland/dmgboy/dmgboy/video"
)

type region uint8

const (
	regionROM region = iota
	regionVRAM
	regionExtRAM
	regionWRAM
	regionEcho
	regionOAM
	regionIO
	regionHRAM
)

var regionMap = buildRegionMap()

func buildRegionMap() [256]region {
	var m [256]region
	for i := 0x00; i <= 0x7F; i++ {
		m[i] = regionROM
	}
	for i := 0x80; i <= 0x9F; i++ {
		m[i] = regionVRAM
	}
	for i := 0xA0; i <= 0xBF; i++ {
		m[i] = regionExtRAM
	}
	for i := 0xC0; i <= 0xDF; i++ {
		m[i] = regionWRAM
	}
	for i := 0xE0; i <= 0xFD; i++ {
		m[i] = regionEcho
	}
	m[0xFE] = regionOAM
	m[0xFF] = regionIO // HRAM (0xFF80-0xFFFE) is special-cased within this byte
	return m
}

// Bus wires together every addressable subsystem of a DMG: the cartridge,
// work RAM, the pixel unit, the timer, the joypad, the interrupt
// controller, the serial port and the APU register stub.
type Bus struct {
	Cart      *cartridge.Cartridge
	GPU       *video.GPU
	Timer     *timer.Timer
	Joypad    *joypad.Pad
	Interrupt *interrupt.Controller
	Serial    *serial.LogSink
	APU       *audio.Stub

	wram [0x2000]byte
	hram [0x7F]byte

	bootROM      []byte
	bootROMArmed bool
}

// New returns a Bus with an empty cartridge and every subsystem in its
// power-on state.
func New() *Bus {
	b := &Bus{
		Cart:      cartridge.Empty(),
		GPU:       video.New(),
		Timer:     timer.New(),
		Joypad:    joypad.New(),
		Interrupt: interrupt.New(),
		APU:       audio.New(),
	}
	b.Serial = serial.NewLogSink(func() { b.Interrupt.Request(addr.Serial) })
	return b
}

// LoadBootROM arms the boot ROM latch: while armed, reads of 0x0000-0x00FF
// return rom instead of the cartridge, exactly as on real hardware before
// the CPU disarms it by writing to 0xFF50.
func (b *Bus) LoadBootROM(rom []byte) {
	b.bootROM = rom
	b.bootROMArmed = len(rom) > 0
}

// LoadCartridge swaps in a freshly parsed cartridge.
func (b *Bus) LoadCartridge(cart *cartridge.Cartridge) {
	b.Cart = cart
}

// Tick advances the timer and pixel unit by cycles machine cycles,
// forwarding any interrupts they raise to the interrupt controller.
func (b *Bus) Tick(cycles int) {
	if b.Timer.Tick(cycles) {
		b.Interrupt.Request(addr.Timer)
	}
	for _, irq := range b.GPU.Tick(cycles) {
		b.Interrupt.Request(irq)
	}
	b.Serial.Tick(cycles)
}

// PressButton registers a button press and raises the joypad interrupt on
// a genuine press transition.
func (b *Bus) PressButton(button joypad.Button) {
	if b.Joypad.Press(button) {
		b.Interrupt.Request(addr.Joypad)
	}
}

// ReleaseButton registers a button release.
func (b *Bus) ReleaseButton(button joypad.Button) {
	b.Joypad.Release(button)
}

// Read returns the byte at address, panicking if address falls outside
// every known region (which should be unreachable, since regionIO covers
// the whole 0xFF00-0xFFFF byte).
func (b *Bus) Read(address uint16) uint8 {
	if b.bootROMArmed && address <= addr.BootROMEnd {
		return b.bootROM[address]
	}

	switch regionMap[address>>8] {
	case regionROM, regionExtRAM:
		return b.Cart.Read(address)
	case regionVRAM:
		return b.GPU.ReadVRAM(address - addr.VRAMStart)
	case regionWRAM:
		return b.wram[address-addr.WRAMStart]
	case regionEcho:
		return b.wram[address-addr.EchoStart]
	case regionOAM:
		if address <= addr.OAMEnd {
			return b.GPU.ReadOAM(address - addr.OAMStart)
		}
		return 0xFF // forbidden region, reads as 0xFF on DMG
	case regionIO:
		return b.readIO(address)
	default:
		panic(fmt.Sprintf("bus: read from unmapped address 0x%04X", address))
	}
}

// Write stores value at address.
func (b *Bus) Write(address uint16, value uint8) {
	switch regionMap[address>>8] {
	case regionROM, regionExtRAM:
		b.Cart.Write(address, value)
	case regionVRAM:
		b.GPU.WriteVRAM(address-addr.VRAMStart, value)
	case regionWRAM:
		b.wram[address-addr.WRAMStart] = value
	case regionEcho:
		b.wram[address-addr.EchoStart] = value
	case regionOAM:
		if address <= addr.OAMEnd {
			b.GPU.WriteOAM(address-addr.OAMStart, value)
		}
		// forbidden region writes are discarded
	case regionIO:
		b.writeIO(address, value)
	default:
		panic(fmt.Sprintf("bus: write to unmapped address 0x%04X value 0x%02X", address, value))
	}
}

func (b *Bus) readIO(address uint16) uint8 {
	switch {
	case address == addr.P1:
		return b.Joypad.ReadP1()
	case address == addr.SB:
		return b.Serial.ReadSB()
	case address == addr.SC:
		return b.Serial.ReadSC()
	case address == addr.DIV:
		return b.Timer.ReadDIV()
	case address == addr.TIMA:
		return b.Timer.ReadTIMA()
	case address == addr.TMA:
		return b.Timer.ReadTMA()
	case address == addr.TAC:
		return b.Timer.ReadTAC()
	case address == addr.IF:
		return b.Interrupt.ReadIF()
	case address == addr.IE:
		return b.Interrupt.ReadIE()
	case address >= addr.AudioStart && address <= addr.WaveRAMEnd:
		return b.APU.ReadRegister(address)
	case address >= addr.LCDC && address <= addr.WX:
		return b.GPU.ReadReg(address)
	case address == addr.BootROMDisarm:
		return 0xFF
	case address >= addr.HRAMStart && address <= addr.HRAMEnd:
		return b.hram[address-addr.HRAMStart]
	default:
		return 0xFF
	}
}

func (b *Bus) writeIO(address uint16, value uint8) {
	switch {
	case address == addr.P1:
		b.Joypad.WriteP1(value)
	case address == addr.SB:
		b.Serial.WriteSB(value)
	case address == addr.SC:
		b.Serial.WriteSC(value)
	case address == addr.DIV:
		b.Timer.WriteDIV(value)
	case address == addr.TIMA:
		b.Timer.WriteTIMA(value)
	case address == addr.TMA:
		b.Timer.WriteTMA(value)
	case address == addr.TAC:
		b.Timer.WriteTAC(value)
	case address == addr.IF:
		b.Interrupt.WriteIF(value)
	case address == addr.IE:
		b.Interrupt.WriteIE(value)
	case address >= addr.AudioStart && address <= addr.WaveRAMEnd:
		b.APU.WriteRegister(address, value)
	case address == addr.DMA:
		b.runOAMDMA(value)
	case address >= addr.LCDC && address <= addr.WX:
		b.GPU.WriteReg(address, value)
	case address == addr.BootROMDisarm:
		if b.bootROMArmed {
			slog.Debug("bus: boot ROM disarmed")
		}
		b.bootROMArmed = false
	case address >= addr.HRAMStart && address <= addr.HRAMEnd:
		b.hram[address-addr.HRAMStart] = value
	default:
		// unmapped or unimplemented I/O register: discard silently, as
		// real hardware does for the unused upper nibble of this region.
	}
}

// runOAMDMA performs the synchronous 160-byte copy from (value << 8) into
// OAM that a write to 0xFF46 triggers. Real hardware takes 160 machine
// cycles and locks out most bus access during the transfer; this emulator
// performs the copy instantaneously, which is sufficient for correctness
// outside of DMA-timing test ROMs.
func (b *Bus) runOAMDMA(value uint8) {
	source := uint16(value) << 8
	for i := uint16(0); i < 160; i++ {
		b.GPU.WriteOAM(i, b.Read(source+i))
	}
}
