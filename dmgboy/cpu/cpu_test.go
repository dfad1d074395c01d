package cpu

import (
	"testing"

	"github.com/cortland/dmgboy/dmgboy/addr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMemory struct {
	data [0x10000]uint8
}

func (m *fakeMemory) Read(address uint16) uint8    { return m.data[address] }
func (m *fakeMemory) Write(address uint16, v uint8) { m.data[address] = v }

type fakeInterrupts struct {
	due     addr.Interrupt
	pending bool
	cleared []addr.Interrupt
}

func (f *fakeInterrupts) NextDue() (addr.Interrupt, bool) { return f.due, f.pending }
func (f *fakeInterrupts) Clear(source addr.Interrupt)     { f.cleared = append(f.cleared, source); f.pending = false }
func (f *fakeInterrupts) Pending() bool                   { return f.pending }

func newTestCPU() (*CPU, *fakeMemory, *fakeInterrupts) {
	mem := &fakeMemory{}
	irq := &fakeInterrupts{}
	c := New(mem, irq)
	c.pc = 0x0000
	return c, mem, irq
}

func loadProgram(mem *fakeMemory, at uint16, bytes ...uint8) {
	for i, b := range bytes {
		mem.data[at+uint16(i)] = b
	}
}

func TestResetState(t *testing.T) {
	c := New(&fakeMemory{}, &fakeInterrupts{})
	assert.Equal(t, uint16(0x0100), c.pc)
	assert.Equal(t, uint16(0xFFFE), c.sp)
}

func TestNOPTakesOneMCycle(t *testing.T) {
	c, mem, _ := newTestCPU()
	loadProgram(mem, 0, 0x00)
	cycles := c.Step()
	assert.Equal(t, 1, cycles)
	assert.Equal(t, uint16(1), c.pc)
}

func TestLDRRAndIncDec(t *testing.T) {
	c, mem, _ := newTestCPU()
	loadProgram(mem, 0,
		0x06, 0x05, // LD B,5
		0x04,       // INC B
		0x05,       // DEC B
		0x05,       // DEC B -> 4
	)
	c.Step()
	assert.Equal(t, uint8(5), c.b)
	c.Step()
	assert.Equal(t, uint8(6), c.b)
	c.Step()
	assert.Equal(t, uint8(5), c.b)
	c.Step()
	assert.Equal(t, uint8(4), c.b)
	assert.False(t, c.flag(flagZ))
}

func TestDecToZeroSetsZeroFlag(t *testing.T) {
	c, mem, _ := newTestCPU()
	c.b = 1
	loadProgram(mem, 0, 0x05) // DEC B
	c.Step()
	assert.Equal(t, uint8(0), c.b)
	assert.True(t, c.flag(flagZ))
	assert.True(t, c.flag(flagN))
}

func TestAddSetsCarryAndHalfCarry(t *testing.T) {
	c, mem, _ := newTestCPU()
	c.a = 0xFF
	c.b = 0x01
	loadProgram(mem, 0, 0x80) // ADD A,B
	c.Step()
	assert.Equal(t, uint8(0), c.a)
	assert.True(t, c.flag(flagZ))
	assert.True(t, c.flag(flagC))
	assert.True(t, c.flag(flagH))
}

func TestCPDoesNotModifyA(t *testing.T) {
	c, mem, _ := newTestCPU()
	c.a = 10
	c.b = 10
	loadProgram(mem, 0, 0xB8) // CP B
	c.Step()
	assert.Equal(t, uint8(10), c.a)
	assert.True(t, c.flag(flagZ))
}

func TestPushPopRoundTrips(t *testing.T) {
	c, mem, _ := newTestCPU()
	c.setBC(0xBEEF)
	loadProgram(mem, 0,
		0xC5, // PUSH BC
		0x01, 0x00, 0x00, // LD BC,0
		0xC1, // POP BC
	)
	c.Step()
	c.Step()
	assert.Equal(t, uint16(0), c.getBC())
	c.Step()
	assert.Equal(t, uint16(0xBEEF), c.getBC())
}

func TestJRConditionalNotTakenCostsFewerCycles(t *testing.T) {
	c, mem, _ := newTestCPU()
	c.setFlag(flagZ, false)
	loadProgram(mem, 0, 0x28, 0x05) // JR Z,+5 (not taken since Z=0)
	cycles := c.Step()
	assert.Equal(t, 2, cycles)
	assert.Equal(t, uint16(2), c.pc)
}

func TestJRConditionalTaken(t *testing.T) {
	c, mem, _ := newTestCPU()
	c.setFlag(flagZ, true)
	loadProgram(mem, 0, 0x28, 0x05) // JR Z,+5
	cycles := c.Step()
	assert.Equal(t, 3, cycles)
	assert.Equal(t, uint16(7), c.pc)
}

func TestCallAndReturn(t *testing.T) {
	c, mem, _ := newTestCPU()
	loadProgram(mem, 0, 0xCD, 0x10, 0x00) // CALL 0x0010
	loadProgram(mem, 0x10, 0xC9)          // RET
	c.Step()
	assert.Equal(t, uint16(0x10), c.pc)
	c.Step()
	assert.Equal(t, uint16(3), c.pc)
}

func TestRST(t *testing.T) {
	c, mem, _ := newTestCPU()
	loadProgram(mem, 0, 0xEF) // RST 28H
	c.Step()
	assert.Equal(t, uint16(0x28), c.pc)
}

func TestCBBitResSet(t *testing.T) {
	c, mem, _ := newTestCPU()
	c.b = 0x00
	loadProgram(mem, 0,
		0xCB, 0x46, // BIT 0,(HL) -- reused pattern to exercise CB dispatch, uses (HL)
	)
	c.setHL(0x9000)
	mem.data[0x9000] = 0x01
	cycles := c.Step()
	assert.Equal(t, 3, cycles)
	assert.False(t, c.flag(flagZ)) // bit 0 of 0x01 is set -> BIT clears Z

	loadProgram(mem, 2, 0xCB, 0xC6) // SET 0,(HL)
	mem.data[0x9000] = 0x00
	c.Step()
	assert.Equal(t, uint8(0x01), mem.data[0x9000])

	loadProgram(mem, 4, 0xCB, 0x86) // RES 0,(HL)
	c.Step()
	assert.Equal(t, uint8(0x00), mem.data[0x9000])
}

func TestCBSwap(t *testing.T) {
	c, mem, _ := newTestCPU()
	c.a = 0x12
	loadProgram(mem, 0, 0xCB, 0x37) // SWAP A
	c.Step()
	assert.Equal(t, uint8(0x21), c.a)
}

func TestHaltWaitsForPendingInterrupt(t *testing.T) {
	c, mem, irq := newTestCPU()
	loadProgram(mem, 0, 0x76) // HALT
	c.Step()
	assert.True(t, c.Halted())

	cycles := c.Step()
	assert.Equal(t, 1, cycles)
	assert.True(t, c.Halted())

	irq.pending = true
	irq.due = addr.Timer
	c.Step()
	assert.False(t, c.Halted())
}

func TestEIDelaysIMEByOneInstruction(t *testing.T) {
	c, mem, _ := newTestCPU()
	loadProgram(mem, 0, 0xFB, 0x00, 0x00) // EI, NOP, NOP
	c.Step()                             // EI
	assert.False(t, c.ime)
	c.Step() // NOP: IME arms here
	assert.True(t, c.ime)
}

func TestInterruptDispatchPushesPCAndJumps(t *testing.T) {
	c, mem, irq := newTestCPU()
	c.ime = true
	c.pc = 0x1234
	irq.pending = true
	irq.due = addr.VBlank

	cycles := c.Step()

	assert.Equal(t, 5, cycles)
	assert.Equal(t, addr.VBlank.Vector(), c.pc)
	assert.False(t, c.ime)
	require.Len(t, irq.cleared, 1)
	assert.Equal(t, addr.VBlank, irq.cleared[0])

	returnAddr := c.pop()
	assert.Equal(t, uint16(0x1234), returnAddr)
	_ = mem
}
