// Package speed implements the CGB double-speed controller: the KEY1
// prepare-switch register and the STOP-triggered speed flip.
//
// https://gbdev.io/pandocs/CGB_Registers.html#ff4d--key1-cgb-mode-only-prepare-speed-switch
package speed

// Controller owns the KEY1 register and the current speed mode.
type Controller struct {
	doubleSpeed bool
	prepared    bool
}

// New returns a Controller in single-speed mode.
func New() *Controller {
	return &Controller{}
}

// DoubleSpeed reports whether the system is currently running at double
// speed: the CPU and timer advance 2 dots per M-cycle instead of 4, and
// CPU/timer machine cycles are twice as fast relative to the PPU dot clock.
func (c *Controller) DoubleSpeed() bool { return c.doubleSpeed }

// ReadKEY1 returns the KEY1 register: bit 7 is the current speed, bit 0 is
// the prepare-to-switch armed flag.
func (c *Controller) ReadKEY1() uint8 {
	var v uint8 = 0x7E
	if c.doubleSpeed {
		v |= 0x80
	}
	if c.prepared {
		v |= 0x01
	}
	return v
}

// WriteKEY1 arms (or disarms) the prepare-to-switch bit; the actual flip
// only happens when the CPU is observed stopped, via Tick.
func (c *Controller) WriteKEY1(v uint8) {
	c.prepared = v&0x01 != 0
}

// Tick polls the CPU's stopped flag together with the armed KEY1 bit: when
// both are true, it flips double-speed, clears the prepare flag, and
// reports that the CPU should resume. Otherwise it reports no change.
func (c *Controller) Tick(cpuStopped bool) (resume bool) {
	if !cpuStopped || !c.prepared {
		return false
	}
	c.doubleSpeed = !c.doubleSpeed
	c.prepared = false
	return true
}
