package joypad

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectDPadReadsPressedButton(t *testing.T) {
	p := New()
	p.WriteP1(0b00100000) // bit5=1 (buttons off), bit4=0 (dpad selected)
	p.Press(Up)

	v := p.ReadP1()
	assert.False(t, v&(1<<2) != 0, "Up bit should read 0 (pressed)")
	assert.True(t, v&(1<<0) != 0, "Right bit should read 1 (released)")
}

func TestSelectButtonsReadsPressedButton(t *testing.T) {
	p := New()
	p.WriteP1(0b00010000) // bit4=1 (dpad off), bit5=0 (buttons selected)
	p.Press(A)

	v := p.ReadP1()
	assert.False(t, v&(1<<0) != 0, "A bit should read 0 (pressed)")
}

func TestNoColumnSelectedReadsAllReleased(t *testing.T) {
	p := New()
	p.WriteP1(0b00110000)
	p.Press(A)
	p.Press(Up)

	assert.Equal(t, uint8(0x0F), p.ReadP1()&0x0F)
}

func TestPressReturnsTrueOnlyWhenColumnSelectedAndNewlyPressed(t *testing.T) {
	p := New()
	p.WriteP1(0b00100000) // dpad selected

	assert.True(t, p.Press(Up), "dpad button newly pressed while dpad selected")
	assert.False(t, p.Press(Up), "already pressed")
	assert.False(t, p.Press(A), "face button pressed while buttons column not selected")
}

func TestRelease(t *testing.T) {
	p := New()
	p.WriteP1(0b00100000)
	p.Press(Down)
	p.Release(Down)

	v := p.ReadP1()
	assert.True(t, v&(1<<3) != 0, "Down bit should read 1 (released)")
}
