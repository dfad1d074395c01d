// Package cpu implements the Sharp LR35902 instruction set: the full base
// and CB-prefixed opcode tables, flag semantics, and interrupt dispatch.
package cpu

import (
	"fmt"

	"github.com/cortland/dmgboy/dmgboy/addr"
)

// Memory is the address space a CPU executes against.
type Memory interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// Interrupts is the subset of the interrupt controller the CPU needs to
// decide whether to wake from HALT and which source to service.
type Interrupts interface {
	NextDue() (addr.Interrupt, bool)
	Clear(source addr.Interrupt)
	Pending() bool
}

// CPU holds the Sharp LR35902 register file and execution state.
type CPU struct {
	a, f, b, c, d, e, h, l uint8
	sp, pc                 uint16

	bus Memory
	irq Interrupts

	ime      bool
	imeDelay int // counts down to 1 instruction after EI, when IME actually takes effect
	halted     bool
	stopped    bool

	currentOpcode uint8
}

// New returns a CPU wired to the given bus and interrupt controller, with
// registers in their documented DMG post-boot-ROM state. Callers that
// supply their own boot ROM should zero these via ToBootEntry before running
// it.
func New(bus Memory, irq Interrupts) *CPU {
	c := &CPU{bus: bus, irq: irq}
	c.Reset()
	return c
}

// Reset sets the register file to the values a real DMG has immediately
// after its internal boot ROM hands off to cartridge code.
func (c *CPU) Reset() {
	c.setAF(0x01B0)
	c.setBC(0x0013)
	c.setDE(0x00D8)
	c.setHL(0x014D)
	c.sp = 0xFFFE
	c.pc = 0x0100
	c.ime = false
	c.imeDelay = 0
	c.halted = false
	c.stopped = false
}

// ToBootEntry resets every register to zero and sets PC to 0x0000, the
// state a DMG's internal boot ROM actually starts executing from (as
// opposed to the post-boot state Reset assumes for BIOS-less runs).
func (c *CPU) ToBootEntry() {
	c.setAF(0)
	c.setBC(0)
	c.setDE(0)
	c.setHL(0)
	c.sp = 0
	c.pc = 0
	c.ime = false
	c.imeDelay = 0
	c.halted = false
	c.stopped = false
}

// PC returns the program counter, primarily for debugging and tests.
func (c *CPU) PC() uint16 { return c.pc }

// Halted reports whether the CPU is currently in the low-power HALT state.
func (c *CPU) Halted() bool { return c.halted }

// Step executes exactly one instruction (servicing an interrupt first, if
// one is due and IME is set) and returns the number of machine cycles it
// took.
func (c *CPU) Step() int {
	if cycles, serviced := c.serviceInterrupt(); serviced {
		return cycles
	}

	if c.halted {
		if c.irq.Pending() {
			c.halted = false
		} else {
			return 1
		}
	}

	if c.imeDelay > 0 {
		c.imeDelay--
		if c.imeDelay == 0 {
			c.ime = true
		}
	}

	opcode := c.fetch()
	return c.execute(opcode)
}

func (c *CPU) fetch() uint8 {
	v := c.bus.Read(c.pc)
	c.pc++
	return v
}

func (c *CPU) fetch16() uint16 {
	low := c.fetch()
	high := c.fetch()
	return uint16(high)<<8 | uint16(low)
}

// serviceInterrupt pushes PC and jumps to the vector of the highest
// priority due interrupt, if IME is set and one exists. It also wakes the
// CPU from HALT even when IME is clear, since real hardware does that
// unconditionally (the HALT bug that results from an *unserviced* pending
// interrupt is intentionally not simulated).
func (c *CPU) serviceInterrupt() (int, bool) {
	source, due := c.irq.NextDue()
	if !due {
		return 0, false
	}

	c.halted = false

	if !c.ime {
		return 0, false
	}

	c.ime = false
	c.irq.Clear(source)
	c.push(c.pc)
	c.pc = source.Vector()
	return 5, true
}

func (c *CPU) execute(opcode uint8) int {
	c.currentOpcode = opcode
	if fn, ok := baseOpcodes[opcode]; ok {
		return fn(c)
	}
	panic(fmt.Sprintf("cpu: illegal opcode 0x%02X at 0x%04X", opcode, c.pc-1))
}

func (c *CPU) executeCB(opcode uint8) int {
	if fn, ok := cbOpcodes[opcode]; ok {
		return fn(c)
	}
	panic(fmt.Sprintf("cpu: illegal CB opcode 0x%02X at 0x%04X", opcode, c.pc-1))
}
