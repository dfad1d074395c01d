package cpu

import "github.com/cortland/dmgboy/dmgboy/bit"

// flag bit positions within the F register.
const (
	flagZ uint8 = 7
	flagN uint8 = 6
	flagH uint8 = 5
	flagC uint8 = 4
)

func (c *CPU) setFlag(index uint8, set bool) {
	c.f = bit.SetTo(index, c.f, set)
	c.f &= 0xF0 // the low nibble of F is always zero on real hardware
}

func (c *CPU) flag(index uint8) bool { return bit.IsSet(index, c.f) }

func (c *CPU) getBC() uint16 { return bit.Combine(c.b, c.c) }
func (c *CPU) getDE() uint16 { return bit.Combine(c.d, c.e) }
func (c *CPU) getHL() uint16 { return bit.Combine(c.h, c.l) }
func (c *CPU) getAF() uint16 { return bit.Combine(c.a, c.f) }

func (c *CPU) setBC(v uint16) { c.b, c.c = bit.High(v), bit.Low(v) }
func (c *CPU) setDE(v uint16) { c.d, c.e = bit.High(v), bit.Low(v) }
func (c *CPU) setHL(v uint16) { c.h, c.l = bit.High(v), bit.Low(v) }
func (c *CPU) setAF(v uint16) { c.a, c.f = bit.High(v), bit.Low(v)&0xF0 }

// r8 indexes the eight operands a register-field opcode can encode: the
// six single registers, (HL) indirect, and A, in the Game Boy's standard
// bit-triplet order.
const (
	r8B = iota
	r8C
	r8D
	r8E
	r8H
	r8L
	r8HL
	r8A
)

func (c *CPU) readR8(i uint8) uint8 {
	switch i {
	case r8B:
		return c.b
	case r8C:
		return c.c
	case r8D:
		return c.d
	case r8E:
		return c.e
	case r8H:
		return c.h
	case r8L:
		return c.l
	case r8HL:
		return c.bus.Read(c.getHL())
	default:
		return c.a
	}
}

func (c *CPU) writeR8(i uint8, v uint8) {
	switch i {
	case r8B:
		c.b = v
	case r8C:
		c.c = v
	case r8D:
		c.d = v
	case r8E:
		c.e = v
	case r8H:
		c.h = v
	case r8L:
		c.l = v
	case r8HL:
		c.bus.Write(c.getHL(), v)
	default:
		c.a = v
	}
}

// r16 indexes the four register pairs a 16-bit opcode can encode for the
// group that includes SP (used by LD rr,nn / INC rr / DEC rr / ADD HL,rr).
const (
	r16BC = iota
	r16DE
	r16HL
	r16SP
)

func (c *CPU) readR16(i uint8) uint16 {
	switch i {
	case r16BC:
		return c.getBC()
	case r16DE:
		return c.getDE()
	case r16HL:
		return c.getHL()
	default:
		return c.sp
	}
}

func (c *CPU) writeR16(i uint8, v uint16) {
	switch i {
	case r16BC:
		c.setBC(v)
	case r16DE:
		c.setDE(v)
	case r16HL:
		c.setHL(v)
	default:
		c.sp = v
	}
}

// r16Stack indexes the four register pairs PUSH/POP encode, which use AF
// in place of SP.
const (
	r16StackBC = iota
	r16StackDE
	r16StackHL
	r16StackAF
)

func (c *CPU) readR16Stack(i uint8) uint16 {
	if i == r16StackAF {
		return c.getAF()
	}
	return c.readR16(i)
}

func (c *CPU) writeR16Stack(i uint8, v uint16) {
	if i == r16StackAF {
		c.setAF(v)
		return
	}
	c.writeR16(i, v)
}
