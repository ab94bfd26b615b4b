// Package cpu implements the CPU instruction scheduler: opcode fetch/decode
// and a per-M-cycle step queue that reproduces the documented machine-cycle
// count of every instruction.
//
// Grounded on the decision recorded in SPEC_FULL.md/DESIGN.md to use the
// spec-sanctioned simpler alternative to an explicit micro-op/Defer queue: a
// decoded instruction is a slice of step closures, one per remaining
// M-cycle, pushed onto a FIFO and drained one per Tick call.
//
// https://gbdev.io/pandocs/CPU_Instruction_Set.html
package cpu

import (
	"github.com/jrfarr/dmgcore/interrupt"
	"github.com/jrfarr/dmgcore/register"
)

// Bus is the minimal byte-addressable memory accessor the CPU needs. The
// memory package's Bus satisfies this directly.
type Bus interface {
	ReadByte(addr uint16) uint8
	WriteByte(addr uint16, val uint8)
}

// step is one M-cycle's worth of an instruction's work.
type step func(c *CPU)

// CPU is the SM83 instruction scheduler: register file, decode/dispatch and
// the pending-step queue that lets a multi-M-cycle instruction span several
// Tick calls.
type CPU struct {
	Regs *register.File
	ic   *interrupt.Controller
	bus  Bus

	enabled bool // false while DMA holds the bus; see dma.CPU
	stopped bool
	halted  bool

	queue []step

	// Scratch operand buffers, equivalent to spec.md's CPU "context": used
	// by multi-cycle decode steps to carry a fetched operand from one
	// M-cycle to the next (e.g. the low byte of a 16-bit immediate).
	scratchByte uint8
	scratchWord uint16
	scratchAddr uint16
}

// New returns a CPU in the documented DMG post-boot-ROM state, wired to bus
// for memory access and ic for interrupt service.
func New(bus Bus, ic *interrupt.Controller) *CPU {
	return &CPU{Regs: register.New(), ic: ic, bus: bus, enabled: true}
}

// SetEnabled stalls or resumes the CPU; the DMA controller calls this to
// hold the bus during a general-purpose/H-Blank transfer.
func (c *CPU) SetEnabled(v bool) { c.enabled = v }

// Enabled reports whether the CPU is currently permitted to run (false
// while DMA holds the bus).
func (c *CPU) Enabled() bool { return c.enabled }

// Stopped reports whether STOP has suspended the CPU; the speed controller
// polls this to decide whether to flip double-speed mode.
func (c *CPU) Stopped() bool { return c.stopped }

// Resume clears the stopped flag; called by the speed controller once it
// has completed a double-speed flip armed by KEY1.
func (c *CPU) Resume() { c.stopped = false }

// Tick advances the CPU by exactly one M-cycle: draining a queued step, or
// servicing STOP-wakeup, HALT-wakeup, interrupt dispatch and a fresh opcode
// fetch, matching the dispatch order of spec.md §4.2.
func (c *CPU) Tick() {
	if !c.enabled {
		return
	}

	if c.stopped {
		if c.ic.Requested(interrupt.ButtonPressed) {
			c.stopped = false
			c.beginInterruptService(interrupt.ButtonPressed)
		}
		return
	}

	if len(c.queue) > 0 {
		s := c.queue[0]
		c.queue = c.queue[1:]
		s(c)
		return
	}

	if c.halted {
		if c.ic.AnyRequested() {
			c.halted = false
		} else {
			return
		}
	}

	if src, ok := c.ic.Pending(); ok {
		c.beginInterruptService(src)
		return
	}

	op := c.fetchByte()
	c.dispatch(op)
}

func (c *CPU) fetchByte() uint8 {
	pc := c.Regs.ReadWord(register.PC)
	v := c.bus.ReadByte(pc)
	c.Regs.WriteWord(register.PC, pc+1)
	return v
}

func (c *CPU) schedule(steps ...step) {
	c.queue = append(c.queue, steps...)
}

// beginInterruptService clears the source's IF bit, disables IME, and
// queues the two internal-delay cycles, the two PC-pushing cycles and the
// vector jump (5 M-cycles total, matching real hardware's interrupt
// dispatch latency).
func (c *CPU) beginInterruptService(src interrupt.Source) {
	c.ic.Clear(src)
	c.ic.SetIME(false)
	if src == interrupt.ButtonPressed {
		c.stopped = false
	}
	vector := src.Vector()

	c.schedule(
		func(c *CPU) {},
		func(c *CPU) {
			pc := c.Regs.ReadWord(register.PC)
			sp := c.Regs.ReadWord(register.SP) - 1
			c.Regs.WriteWord(register.SP, sp)
			c.bus.WriteByte(sp, uint8(pc>>8))
		},
		func(c *CPU) {
			pc := c.Regs.ReadWord(register.PC)
			sp := c.Regs.ReadWord(register.SP) - 1
			c.Regs.WriteWord(register.SP, sp)
			c.bus.WriteByte(sp, uint8(pc))
		},
		func(c *CPU) {
			c.Regs.WriteWord(register.PC, vector)
		},
	)
}
