// Package dmgboy ties the CPU, bus, pixel unit, timer and joypad together
// into a runnable DMG machine: load a ROM, run a frame at a time, read
// back the framebuffer, and feed it button presses.
package dmgboy

import (
	"fmt"
	"log/slog"

	"github.com/cortland/dmgboy/dmgboy/bus"
	"github.com/cortland/dmgboy/dmgboy/cartridge"
	"github.com/cortland/dmgboy/dmgboy/cpu"
	"github.com/cortland/dmgboy/dmgboy/joypad"
)

// cyclesPerFrame is 70224 T-states expressed as machine cycles (the CPU's
// Step and the bus's Tick both operate in M-cycles; see the cycle-unit
// note in the video and timer packages for the internal x4 conversion).
const cyclesPerFrame = 17556

// Machine is a complete DMG: CPU, bus (which in turn owns the pixel unit,
// timer, joypad, interrupt controller, serial port and APU stub), and the
// bookkeeping needed to step it one frame at a time.
type Machine struct {
	CPU *cpu.CPU
	Bus *bus.Bus

	frameCount uint64
}

// New returns a Machine with an empty cartridge and every subsystem in
// its power-on state.
func New() *Machine {
	b := bus.New()
	c := cpu.New(b, b.Interrupt)
	return &Machine{CPU: c, Bus: b}
}

// LoadBootROM arms the boot ROM latch and moves the CPU to its boot entry
// state (registers zeroed, PC 0x0000) instead of the post-boot state New
// assumes.
func (m *Machine) LoadBootROM(rom []byte) {
	m.Bus.LoadBootROM(rom)
	m.CPU.Reset()
	m.CPU.ToBootEntry()
}

// LoadROM parses a raw ROM image and installs it as the active cartridge.
func (m *Machine) LoadROM(data []byte) error {
	cart, err := cartridge.Load(data)
	if err != nil {
		return fmt.Errorf("dmgboy: load ROM: %w", err)
	}
	m.Bus.LoadCartridge(cart)
	slog.Info("dmgboy: ROM loaded", "title", cart.Title)
	return nil
}

// RunFrame executes CPU instructions and ticks every subsystem until one
// full 70224-T-state video frame has elapsed.
func (m *Machine) RunFrame() {
	elapsed := 0
	for elapsed < cyclesPerFrame {
		cycles := m.CPU.Step()
		m.Bus.Tick(cycles)
		elapsed += cycles
	}
	m.frameCount++
}

// FrameCount returns the number of frames completed so far.
func (m *Machine) FrameCount() uint64 { return m.frameCount }

// Framebuffer returns the current frame as packed RGBA8 bytes, row-major,
// top-left origin, 160x144 pixels.
func (m *Machine) Framebuffer() []byte {
	return m.Bus.GPU.FrameBuffer().Bytes()
}

// Press registers a button press, raising the joypad interrupt on a
// genuine press transition.
func (m *Machine) Press(button joypad.Button) {
	m.Bus.PressButton(button)
}

// Release registers a button release.
func (m *Machine) Release(button joypad.Button) {
	m.Bus.ReleaseButton(button)
}
