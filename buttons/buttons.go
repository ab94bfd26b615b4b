// Package buttons implements the button matrix at port FF00: the
// action/direction register pair and deferred-interrupt arming when a
// button is pressed while its group is disabled.
//
// Grounded on the teacher's console/controller.go polling shape, adapted
// from an NES shift-register controller to the Game Boy's two-group matrix.
//
// https://gbdev.io/pandocs/Joypad_Input.html
package buttons

import (
	"github.com/jrfarr/dmgcore/bitutil"
	"github.com/jrfarr/dmgcore/interrupt"
)

// Button identifies one of the eight physical buttons.
type Button uint8

const (
	A Button = iota
	B
	Select
	Start
	Right
	Left
	Up
	Down
)

func (b Button) isAction() bool {
	switch b {
	case A, B, Select, Start:
		return true
	}
	return false
}

func (b Button) bit() uint8 {
	switch b {
	case A, Right:
		return 1 << 0
	case B, Left:
		return 1 << 1
	case Select, Up:
		return 1 << 2
	case Start, Down:
		return 1 << 3
	}
	panic("buttons: invalid button")
}

// Controller is the FF00 register: two 4-bit groups (action, direction),
// each readable only when its select bit is driven low by software, plus
// the deferred-interrupt arming described in 6.
type Controller struct {
	ic *interrupt.Controller

	actionSelected    bool
	directionSelected bool

	actionState    uint8 // bit set = pressed
	directionState uint8

	deferredAction    bool
	deferredDirection bool

	actionEdge    bitutil.EdgeDetector
	directionEdge bitutil.EdgeDetector
}

// New returns a Controller wired to the given interrupt controller.
func New(ic *interrupt.Controller) *Controller {
	return &Controller{ic: ic}
}

// PressButton marks a button pressed. If its group is currently selected
// this raises ButtonPressed immediately; otherwise the press is armed as a
// deferred interrupt, delivered once the group is next selected.
func (c *Controller) PressButton(b Button) {
	if b.isAction() {
		c.actionState |= b.bit()
		if c.actionSelected {
			c.ic.Request(interrupt.ButtonPressed)
		} else {
			c.deferredAction = true
		}
		return
	}
	c.directionState |= b.bit()
	if c.directionSelected {
		c.ic.Request(interrupt.ButtonPressed)
	} else {
		c.deferredDirection = true
	}
}

// ReleaseButton marks a button released.
func (c *Controller) ReleaseButton(b Button) {
	if b.isAction() {
		c.actionState &^= b.bit()
		return
	}
	c.directionState &^= b.bit()
}

// Tick delivers any deferred button interrupt whose group has just become
// selected.
func (c *Controller) Tick() {
	actionRising, _ := c.actionEdge.Update(c.actionSelected)
	directionRising, _ := c.directionEdge.Update(c.directionSelected)

	if actionRising && c.deferredAction {
		c.ic.Request(interrupt.ButtonPressed)
		c.deferredAction = false
	}
	if directionRising && c.deferredDirection {
		c.ic.Request(interrupt.ButtonPressed)
		c.deferredDirection = false
	}
}

// Read returns the FF00 register value: bits 0-3 are the selected group's
// active-low button state (or all 1s if neither group is selected), bits
// 4-5 echo the selection, bits 6-7 read as 1.
func (c *Controller) Read() uint8 {
	var lower uint8 = 0x0F
	switch {
	case c.actionSelected:
		lower = ^c.actionState & 0x0F
	case c.directionSelected:
		lower = ^c.directionState & 0x0F
	}

	v := lower | 0xC0
	if !c.actionSelected {
		v |= 1 << 5
	}
	if !c.directionSelected {
		v |= 1 << 4
	}
	return v
}

// Write updates the group-select bits from a CPU write to FF00. Bit 5
// clear selects the action group, bit 4 clear selects the direction group
// (active low, matching the port's semantics).
func (c *Controller) Write(v uint8) {
	c.actionSelected = v&(1<<5) == 0
	c.directionSelected = v&(1<<4) == 0
}
