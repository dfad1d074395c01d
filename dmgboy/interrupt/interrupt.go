// Package interrupt implements the DMG's 5-source interrupt controller:
// the IE (0xFFFF) and IF (0xFF0F) registers and the priority rules the CPU
// uses to pick which source to service.
package interrupt

import "github.com/cortland/dmgboy/dmgboy/addr"

// Controller owns the interrupt enable and interrupt flag registers.
// Only bits 0..4 are semantically meaningful. IE stores all eight bits as
// written; IF keeps only bits 0..4 and reads back with its upper bits
// pulled high, matching real hardware.
type Controller struct {
	ie uint8
	f  uint8
}

// New returns a Controller with both registers cleared.
func New() *Controller {
	return &Controller{}
}

// ReadIE returns the interrupt enable register.
func (c *Controller) ReadIE() uint8 { return c.ie }

// WriteIE replaces the interrupt enable register.
func (c *Controller) WriteIE(v uint8) { c.ie = v }

// ReadIF returns the interrupt flag register. The upper three bits always
// read back as 1, matching DMG hardware.
func (c *Controller) ReadIF() uint8 { return c.f | 0xE0 }

// WriteIF replaces the interrupt flag register.
func (c *Controller) WriteIF(v uint8) { c.f = v & 0x1F }

// Request sets the IF bit for the given source.
func (c *Controller) Request(source addr.Interrupt) {
	c.f |= 1 << source.Bit()
}

// Clear clears the IF bit for the given source.
func (c *Controller) Clear(source addr.Interrupt) {
	c.f &^= 1 << source.Bit()
}

// Enabled reports whether the given source is armed in IE.
func (c *Controller) Enabled(source addr.Interrupt) bool {
	return c.ie&(1<<source.Bit()) != 0
}

// Requested reports whether the given source currently has IF set.
func (c *Controller) Requested(source addr.Interrupt) bool {
	return c.f&(1<<source.Bit()) != 0
}

// Due reports whether the given source is both enabled and requested.
func (c *Controller) Due(source addr.Interrupt) bool {
	return c.Enabled(source) && c.Requested(source)
}

// Pending reports whether any enabled source currently has IF set.
func (c *Controller) Pending() bool {
	return c.ie&c.f&0x1F != 0
}

// priorityOrder lists the five sources from highest to lowest priority.
var priorityOrder = [5]addr.Interrupt{
	addr.VBlank, addr.LCDStat, addr.Timer, addr.Serial, addr.Joypad,
}

// NextDue returns the highest-priority source that is both enabled and
// requested, and true if one exists.
func (c *Controller) NextDue() (addr.Interrupt, bool) {
	for _, source := range priorityOrder {
		if c.Due(source) {
			return source, true
		}
	}
	return 0, false
}
