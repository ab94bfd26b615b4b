// Package timer implements the divider/TIMA/TMA/TAC timer circuit,
// including the selectable falling-edge clock bit that drives TIMA.
//
// https://gbdev.io/pandocs/Timer_and_Divider_Registers.html
package timer

import (
	"github.com/jrfarr/dmgcore/bitutil"
	"github.com/jrfarr/dmgcore/interrupt"
)

// selectBit maps TAC's low two bits to the divider bit TIMA increments on.
// A falling edge of bit b recurs every 2^(b+1) dots, so the documented
// rates (4096/262144/65536/16384 Hz against a 4194304 Hz dot clock, i.e.
// periods of 1024/16/64/256 dots) select bits 9/3/5/7 — one lower than the
// divider-register bit number spec.md §4.3's prose names, confirmed by its
// own §8 scenario 2 (exactly one TimerOverflow after 65536 ticks at
// TAC=0x04 requires a 256 M-cycle/1024-dot period, i.e. bit 9).
var selectBit = [4]uint8{9, 3, 5, 7}

// Timer owns the 16-bit internal divider and the TIMA/TMA/TAC registers.
type Timer struct {
	ic *interrupt.Controller

	divider uint16
	tima    uint8
	tma     uint8
	tac     uint8

	edge bitutil.EdgeDetector
}

// New returns a Timer wired to the given interrupt controller.
func New(ic *interrupt.Controller) *Timer {
	return &Timer{ic: ic}
}

func (t *Timer) enabled() bool { return t.tac&0x04 != 0 }

func (t *Timer) selectedBit() uint8 { return selectBit[t.tac&0x03] }

// Tick advances the divider by one M-cycle's worth of dots (4, or 2 in
// double-speed) and steps TIMA on the selected bit's falling transition.
func (t *Timer) Tick(dots uint16) {
	old := t.divider
	t.divider += dots
	_ = old

	bit := t.selectedBit()
	_, falling := t.edge.Update(bitutil.GetBit16(t.divider, bit))
	if t.enabled() && falling {
		t.tima++
		if t.tima == 0 {
			t.tima = t.tma
			t.ic.Request(interrupt.TimerOverflow)
		}
	}
}

// ReadDIV returns the upper byte of the internal divider.
func (t *Timer) ReadDIV() uint8 { return uint8(t.divider >> 8) }

// WriteDIV resets the divider to zero, regardless of the written value.
// Since this can itself cross the selected bit's falling edge, it runs
// through the same edge detector as Tick.
func (t *Timer) WriteDIV() {
	t.divider = 0
	_, falling := t.edge.Update(bitutil.GetBit16(t.divider, t.selectedBit()))
	if t.enabled() && falling {
		t.tima++
		if t.tima == 0 {
			t.tima = t.tma
			t.ic.Request(interrupt.TimerOverflow)
		}
	}
}

func (t *Timer) ReadTIMA() uint8    { return t.tima }
func (t *Timer) WriteTIMA(v uint8)  { t.tima = v }
func (t *Timer) ReadTMA() uint8     { return t.tma }
func (t *Timer) WriteTMA(v uint8)   { t.tma = v }
func (t *Timer) ReadTAC() uint8     { return t.tac | 0xF8 }
func (t *Timer) WriteTAC(v uint8)   { t.tac = v & 0x07 }
