package cpu

// registerCBBlock fills cbOpcodes. The CB-prefixed set is fully regular:
// eight rotate/shift operations each applied to all eight r8 slots
// (0x00-0x3F), then BIT/RES/SET for each of the eight bit indices against
// all eight r8 slots (0x40-0xFF).
func registerCBBlock() {
	shiftOps := []func(*CPU, uint8) uint8{
		(*CPU).rlc, (*CPU).rrc, (*CPU).rl, (*CPU).rr,
		(*CPU).sla, (*CPU).sra, (*CPU).swap, (*CPU).srl,
	}

	for row, op := range shiftOps {
		for r := uint8(0); r < 8; r++ {
			opcode := uint8(row*8) + r
			reg := r
			fn := op
			cycles := 2
			if reg == r8HL {
				cycles = 4
			}
			cbOpcodes[opcode] = func(c *CPU) int {
				c.writeR8(reg, fn(c, c.readR8(reg)))
				return cycles
			}
		}
	}

	for bitIdx := uint8(0); bitIdx < 8; bitIdx++ {
		for r := uint8(0); r < 8; r++ {
			reg := r
			idx := bitIdx

			bitOpcode := 0x40 + idx*8 + reg
			bitCycles := 2
			if reg == r8HL {
				bitCycles = 3
			}
			cbOpcodes[bitOpcode] = func(c *CPU) int {
				c.bit(idx, c.readR8(reg))
				return bitCycles
			}

			resOpcode := 0x80 + idx*8 + reg
			setOpcode := 0xC0 + idx*8 + reg
			rwCycles := 2
			if reg == r8HL {
				rwCycles = 4
			}
			cbOpcodes[resOpcode] = func(c *CPU) int {
				c.writeR8(reg, c.readR8(reg)&^(1<<idx))
				return rwCycles
			}
			cbOpcodes[setOpcode] = func(c *CPU) int {
				c.writeR8(reg, c.readR8(reg)|(1<<idx))
				return rwCycles
			}
		}
	}
}
