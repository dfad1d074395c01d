// Package joypad implements the DMG button matrix: four d-pad buttons and
// four face/start/select buttons, column-multiplexed through the P1
// (0xFF00) register.
package joypad

import "github.com/cortland/dmgboy/dmgboy/bit"

// Button identifies one of the eight physical buttons.
type Button uint8

const (
	Right Button = iota
	Left
	Up
	Down
	A
	B
	Select
	Start
)

// column identifies which half of the matrix P1 currently exposes.
type column uint8

const (
	columnNone column = iota
	columnDPad
	columnButtons
)

// Pad tracks pressed state and the currently selected column.
type Pad struct {
	pressed uint8 // bit i set == button i (Button order above) is held down
	sel     column
}

// New returns a Pad with no buttons pressed and no column selected.
func New() *Pad {
	return &Pad{sel: columnNone}
}

// WriteP1 applies a write to the P1 register. Bits 5 and 4 are active-low
// column selectors: '10' (bit4=0) selects the d-pad, '01' (bit5=0) selects
// buttons, '11' selects neither, '00' selects both (not modeled separately
// here — DMG games never rely on it, and only the three named cases
// matter in practice).
func (p *Pad) WriteP1(value uint8) {
	selectDPad := !bit.IsSet(4, value)
	selectButtons := !bit.IsSet(5, value)

	switch {
	case selectDPad && !selectButtons:
		p.sel = columnDPad
	case selectButtons && !selectDPad:
		p.sel = columnButtons
	default:
		p.sel = columnNone
	}
}

// ReadP1 returns the current P1 register value: upper nibble echoes the
// selector bits, lower nibble holds the active-low state of the selected
// column's four buttons (0 = pressed). Bits 6-7 always read high.
func (p *Pad) ReadP1() uint8 {
	result := uint8(0xC0)

	switch p.sel {
	case columnDPad:
		result |= 1 << 5 // buttons column not selected (active-low)
		result |= p.columnBits(Right, Left, Up, Down)
	case columnButtons:
		result |= 1 << 4 // d-pad column not selected (active-low)
		result |= p.columnBits(A, B, Select, Start)
	default:
		result |= 0x30
		result |= 0x0F
	}

	return result
}

// columnBits builds the active-low lower nibble for a column's four
// buttons, in P1 bit order 0..3.
func (p *Pad) columnBits(buttons ...Button) uint8 {
	var out uint8
	for i, b := range buttons {
		if !bit.IsSet(uint8(b), p.pressed) {
			out = bit.Set(uint8(i), out)
		}
	}
	return out
}

func (p *Pad) isSelected(b Button) bool {
	if b < A {
		return p.sel == columnDPad
	}
	return p.sel == columnButtons
}

// Press marks the given button as held down. It returns true if the
// button newly transitioned to pressed while its column was selected,
// which is the condition under which the caller should raise the Joypad
// interrupt.
func (p *Pad) Press(b Button) bool {
	wasPressed := bit.IsSet(uint8(b), p.pressed)
	p.pressed = bit.Set(uint8(b), p.pressed)

	return !wasPressed && p.isSelected(b)
}

// Release clears the held state of the given button.
func (p *Pad) Release(b Button) {
	p.pressed = bit.Reset(uint8(b), p.pressed)
}
