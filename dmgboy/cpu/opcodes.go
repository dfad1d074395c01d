package cpu

// baseOpcodes dispatches the unprefixed instruction set. It is assembled
// in init() from a handful of explicit entries for irregular instructions
// plus generated entries for the regular blocks (register loads, ALU ops,
// INC/DEC, stack ops) that repeat the same operation across all eight r8
// or four r16 slots.
var baseOpcodes = map[uint8]func(*CPU) int{}

// cbOpcodes dispatches the CB-prefixed instruction set, which is entirely
// regular: each of eight operations applies across all eight r8 slots.
var cbOpcodes = map[uint8]func(*CPU) int{}

func init() {
	registerIrregularOpcodes()
	registerLoadBlock()
	registerALUBlock()
	registerIncDecBlock()
	registerStackBlock()
	registerCBBlock()
}

func registerIrregularOpcodes() {
	baseOpcodes[0x00] = func(c *CPU) int { return 1 } // NOP

	baseOpcodes[0x08] = func(c *CPU) int { // LD (nn),SP
		addr := c.fetch16()
		c.bus.Write(addr, uint8(c.sp))
		c.bus.Write(addr+1, uint8(c.sp>>8))
		return 5
	}

	baseOpcodes[0x10] = func(c *CPU) int { // STOP
		c.fetch() // STOP's second byte is conventionally 0x00 and ignored
		c.stopped = true
		return 1
	}

	baseOpcodes[0x76] = func(c *CPU) int { // HALT
		c.halted = true
		return 1
	}

	baseOpcodes[0x07] = func(c *CPU) int { c.a = c.rlc(c.a); c.setFlag(flagZ, false); return 1 } // RLCA
	baseOpcodes[0x0F] = func(c *CPU) int { c.a = c.rrc(c.a); c.setFlag(flagZ, false); return 1 } // RRCA
	baseOpcodes[0x17] = func(c *CPU) int { c.a = c.rl(c.a); c.setFlag(flagZ, false); return 1 }  // RLA
	baseOpcodes[0x1F] = func(c *CPU) int { c.a = c.rr(c.a); c.setFlag(flagZ, false); return 1 }  // RRA

	baseOpcodes[0x27] = func(c *CPU) int { c.daa(); return 1 } // DAA
	baseOpcodes[0x2F] = func(c *CPU) int { // CPL
		c.a = ^c.a
		c.setFlag(flagN, true)
		c.setFlag(flagH, true)
		return 1
	}
	baseOpcodes[0x37] = func(c *CPU) int { // SCF
		c.setFlag(flagN, false)
		c.setFlag(flagH, false)
		c.setFlag(flagC, true)
		return 1
	}
	baseOpcodes[0x3F] = func(c *CPU) int { // CCF
		c.setFlag(flagN, false)
		c.setFlag(flagH, false)
		c.setFlag(flagC, !c.flag(flagC))
		return 1
	}

	baseOpcodes[0x02] = func(c *CPU) int { c.bus.Write(c.getBC(), c.a); return 2 } // LD (BC),A
	baseOpcodes[0x12] = func(c *CPU) int { c.bus.Write(c.getDE(), c.a); return 2 } // LD (DE),A
	baseOpcodes[0x22] = func(c *CPU) int { // LD (HL+),A
		c.bus.Write(c.getHL(), c.a)
		c.setHL(c.getHL() + 1)
		return 2
	}
	baseOpcodes[0x32] = func(c *CPU) int { // LD (HL-),A
		c.bus.Write(c.getHL(), c.a)
		c.setHL(c.getHL() - 1)
		return 2
	}
	baseOpcodes[0x0A] = func(c *CPU) int { c.a = c.bus.Read(c.getBC()); return 2 } // LD A,(BC)
	baseOpcodes[0x1A] = func(c *CPU) int { c.a = c.bus.Read(c.getDE()); return 2 } // LD A,(DE)
	baseOpcodes[0x2A] = func(c *CPU) int { // LD A,(HL+)
		c.a = c.bus.Read(c.getHL())
		c.setHL(c.getHL() + 1)
		return 2
	}
	baseOpcodes[0x3A] = func(c *CPU) int { // LD A,(HL-)
		c.a = c.bus.Read(c.getHL())
		c.setHL(c.getHL() - 1)
		return 2
	}

	baseOpcodes[0xE0] = func(c *CPU) int { c.bus.Write(0xFF00+uint16(c.fetch()), c.a); return 3 } // LD (FF00+n),A
	baseOpcodes[0xF0] = func(c *CPU) int { c.a = c.bus.Read(0xFF00 + uint16(c.fetch())); return 3 } // LD A,(FF00+n)
	baseOpcodes[0xE2] = func(c *CPU) int { c.bus.Write(0xFF00+uint16(c.c), c.a); return 2 }          // LD (C),A
	baseOpcodes[0xF2] = func(c *CPU) int { c.a = c.bus.Read(0xFF00 + uint16(c.c)); return 2 }         // LD A,(C)
	baseOpcodes[0xEA] = func(c *CPU) int { c.bus.Write(c.fetch16(), c.a); return 4 }                  // LD (nn),A
	baseOpcodes[0xFA] = func(c *CPU) int { c.a = c.bus.Read(c.fetch16()); return 4 }                  // LD A,(nn)

	baseOpcodes[0xF9] = func(c *CPU) int { c.sp = c.getHL(); return 2 } // LD SP,HL
	baseOpcodes[0xF8] = func(c *CPU) int {                              // LD HL,SP+e
		offset := int8(c.fetch())
		c.setHL(c.addToSP(offset))
		return 3
	}
	baseOpcodes[0xE8] = func(c *CPU) int { // ADD SP,e
		offset := int8(c.fetch())
		c.sp = c.addToSP(offset)
		return 4
	}

	baseOpcodes[0xC3] = func(c *CPU) int { c.pc = c.fetch16(); return 4 } // JP nn
	baseOpcodes[0xE9] = func(c *CPU) int { c.pc = c.getHL(); return 1 }   // JP (HL)
	baseOpcodes[0x18] = func(c *CPU) int { // JR e
		offset := int8(c.fetch())
		c.pc = uint16(int32(c.pc) + int32(offset))
		return 3
	}
	baseOpcodes[0xCD] = func(c *CPU) int { // CALL nn
		target := c.fetch16()
		c.push(c.pc)
		c.pc = target
		return 6
	}
	baseOpcodes[0xC9] = func(c *CPU) int { c.pc = c.pop(); return 4 } // RET
	baseOpcodes[0xD9] = func(c *CPU) int { // RETI
		c.pc = c.pop()
		c.ime = true
		return 4
	}

	registerConditionalBranches()

	baseOpcodes[0xF3] = func(c *CPU) int { c.ime = false; c.imeDelay = 0; return 1 } // DI
	baseOpcodes[0xFB] = func(c *CPU) int { // EI
		if !c.ime {
			c.imeDelay = 1
		}
		return 1
	}

	baseOpcodes[0xCB] = func(c *CPU) int { return c.executeCB(c.fetch()) }

	for i, opcode := range []uint8{0xC7, 0xCF, 0xD7, 0xDF, 0xE7, 0xEF, 0xF7, 0xFF} {
		target := uint16(i) * 8
		baseOpcodes[opcode] = func(c *CPU) int {
			c.push(c.pc)
			c.pc = target
			return 4
		}
	}
}

var condJumpTable = []struct {
	opcode uint8
	flag   uint8
	want   bool
}{
	{0x20, flagZ, false}, {0x28, flagZ, true}, {0x30, flagC, false}, {0x38, flagC, true},
}

func registerConditionalBranches() {
	for _, cond := range condJumpTable {
		flag, want := cond.flag, cond.want
		baseOpcodes[cond.opcode] = func(c *CPU) int { // JR cc,e
			offset := int8(c.fetch())
			if c.flag(flag) != want {
				return 2
			}
			c.pc = uint16(int32(c.pc) + int32(offset))
			return 3
		}
	}

	jpOpcodes := []struct {
		opcode uint8
		flag   uint8
		want   bool
	}{{0xC2, flagZ, false}, {0xCA, flagZ, true}, {0xD2, flagC, false}, {0xDA, flagC, true}}
	for _, cond := range jpOpcodes {
		flag, want := cond.flag, cond.want
		baseOpcodes[cond.opcode] = func(c *CPU) int { // JP cc,nn
			target := c.fetch16()
			if c.flag(flag) != want {
				return 3
			}
			c.pc = target
			return 4
		}
	}

	callOpcodes := []struct {
		opcode uint8
		flag   uint8
		want   bool
	}{{0xC4, flagZ, false}, {0xCC, flagZ, true}, {0xD4, flagC, false}, {0xDC, flagC, true}}
	for _, cond := range callOpcodes {
		flag, want := cond.flag, cond.want
		baseOpcodes[cond.opcode] = func(c *CPU) int { // CALL cc,nn
			target := c.fetch16()
			if c.flag(flag) != want {
				return 3
			}
			c.push(c.pc)
			c.pc = target
			return 6
		}
	}

	retOpcodes := []struct {
		opcode uint8
		flag   uint8
		want   bool
	}{{0xC0, flagZ, false}, {0xC8, flagZ, true}, {0xD0, flagC, false}, {0xD8, flagC, true}}
	for _, cond := range retOpcodes {
		flag, want := cond.flag, cond.want
		baseOpcodes[cond.opcode] = func(c *CPU) int { // RET cc
			if c.flag(flag) != want {
				return 2
			}
			c.pc = c.pop()
			return 5
		}
	}
}

// registerLoadBlock builds the 0x40-0x7F block: LD r,r' for every pair of
// r8 slots, except 0x76 which is HALT (registered separately).
func registerLoadBlock() {
	for dst := uint8(0); dst < 8; dst++ {
		for src := uint8(0); src < 8; src++ {
			opcode := 0x40 + dst*8 + src
			if opcode == 0x76 {
				continue
			}
			d, s := dst, src
			cycles := 1
			if d == r8HL || s == r8HL {
				cycles = 2
			}
			baseOpcodes[opcode] = func(c *CPU) int {
				c.writeR8(d, c.readR8(s))
				return cycles
			}
		}
	}

	// LD r,n (column 6 of rows 0x00,0x10,...0x30 -> 0x06,0x0E,...,0x3E)
	for r := uint8(0); r < 8; r++ {
		opcode := 0x06 + r*8
		reg := r
		cycles := 2
		if reg == r8HL {
			cycles = 3
		}
		baseOpcodes[opcode] = func(c *CPU) int {
			c.writeR8(reg, c.fetch())
			return cycles
		}
	}

	// LD rr,nn
	for i := uint8(0); i < 4; i++ {
		opcode := 0x01 + i*0x10
		pair := i
		baseOpcodes[opcode] = func(c *CPU) int {
			c.writeR16(pair, c.fetch16())
			return 3
		}
	}
}

// registerALUBlock builds 0x80-0xBF: ADD/ADC/SUB/SBC/AND/XOR/OR/CP against
// every r8 slot, plus their 0xC6-type immediate-operand counterparts.
func registerALUBlock() {
	ops := []func(*CPU, uint8){
		(*CPU).add, (*CPU).adc, (*CPU).sub, (*CPU).sbc,
		(*CPU).and, (*CPU).xor, (*CPU).or, (*CPU).cp,
	}

	for row, op := range ops {
		for r := uint8(0); r < 8; r++ {
			opcode := uint8(0x80+row*8) + r
			reg := r
			fn := op
			cycles := 1
			if reg == r8HL {
				cycles = 2
			}
			baseOpcodes[opcode] = func(c *CPU) int {
				fn(c, c.readR8(reg))
				return cycles
			}
		}

		immOpcode := uint8(0xC6 + row*8)
		fn := op
		baseOpcodes[immOpcode] = func(c *CPU) int {
			fn(c, c.fetch())
			return 2
		}
	}
}

// registerIncDecBlock builds INC/DEC r8 (0x04/0x05 pattern), INC/DEC r16,
// and ADD HL,rr.
func registerIncDecBlock() {
	for r := uint8(0); r < 8; r++ {
		incOpcode := 0x04 + r*8
		decOpcode := 0x05 + r*8
		reg := r
		cycles := 1
		if reg == r8HL {
			cycles = 3
		}
		baseOpcodes[incOpcode] = func(c *CPU) int {
			c.writeR8(reg, c.inc8(c.readR8(reg)))
			return cycles
		}
		baseOpcodes[decOpcode] = func(c *CPU) int {
			c.writeR8(reg, c.dec8(c.readR8(reg)))
			return cycles
		}
	}

	for i := uint8(0); i < 4; i++ {
		incOpcode := 0x03 + i*0x10
		decOpcode := 0x0B + i*0x10
		addOpcode := 0x09 + i*0x10
		pair := i
		baseOpcodes[incOpcode] = func(c *CPU) int { c.writeR16(pair, c.readR16(pair)+1); return 2 }
		baseOpcodes[decOpcode] = func(c *CPU) int { c.writeR16(pair, c.readR16(pair)-1); return 2 }
		baseOpcodes[addOpcode] = func(c *CPU) int { c.addToHL(c.readR16(pair)); return 2 }
	}
}

// registerStackBlock builds PUSH/POP for all four r16Stack slots.
func registerStackBlock() {
	for i := uint8(0); i < 4; i++ {
		pushOpcode := 0xC5 + i*0x10
		popOpcode := 0xC1 + i*0x10
		pair := i
		baseOpcodes[pushOpcode] = func(c *CPU) int { c.push(c.readR16Stack(pair)); return 4 }
		baseOpcodes[popOpcode] = func(c *CPU) int { c.writeR16Stack(pair, c.pop()); return 3 }
	}
}
