// Package emulator wires the CPU, PPU, APU, MBC, DMA, timer, speed and
// button controllers together behind a single address bus and drives them
// through the fixed per-machine-cycle order spec.md §5 describes.
//
// Grounded on the teacher's console.Console, which owns an equivalent set
// of components (CPU, PPU, mapper, controllers) and a single Tick/Run loop;
// this core generalizes that shape to the Game Boy's eight-component order
// and its double-speed dot/M-cycle split.
package emulator

import (
	"fmt"

	"github.com/jrfarr/dmgcore/apu"
	"github.com/jrfarr/dmgcore/buttons"
	"github.com/jrfarr/dmgcore/cartridge"
	"github.com/jrfarr/dmgcore/cpu"
	"github.com/jrfarr/dmgcore/dma"
	"github.com/jrfarr/dmgcore/interrupt"
	"github.com/jrfarr/dmgcore/mbc"
	"github.com/jrfarr/dmgcore/memory"
	"github.com/jrfarr/dmgcore/ppu"
	"github.com/jrfarr/dmgcore/sink"
	"github.com/jrfarr/dmgcore/speed"
	"github.com/jrfarr/dmgcore/timer"
)

// DotsPerFrame is the number of dot-clock ticks in one complete frame: 154
// scanlines of 456 dots each.
const DotsPerFrame = 154 * 456

// singleSpeedNanosPerMCycle and doubleSpeedNanosPerMCycle are how many
// wall-clock nanoseconds one M-cycle represents, used only to advance the
// MBC3 real-time clock (spec.md §4.6); everything else in this core is
// driven purely by M-cycle counts, not wall-clock time.
const (
	singleSpeedNanosPerMCycle = 1000
	doubleSpeedNanosPerMCycle = 500
)

// Emulator owns every component of the cycle-synchronized core and drives
// them one M-cycle at a time.
type Emulator struct {
	CPU     *cpu.CPU
	PPU     *ppu.PPU
	APU     *apu.Controller
	Bus     *memory.Bus
	MBC     mbc.MBC
	DMA     *dma.Controller
	Timer   *timer.Timer
	Speed   *speed.Controller
	Buttons *buttons.Controller
	IC      *interrupt.Controller
	ROM     *cartridge.ROM
}

// New parses romData's header, constructs the appropriate MBC (seeded from
// saved battery RAM, which may be nil), and wires every component onto a
// shared bus. It returns an *cartridge.UnsupportedCartridgeError wrapped
// error for a cartridge type this core doesn't emulate, per spec.md §7.
func New(romData []byte, px sink.Pixel, audio sink.Audio, saved []byte) (*Emulator, error) {
	rom, err := cartridge.New(romData)
	if err != nil {
		return nil, err
	}
	bankController, err := mbc.New(rom, saved)
	if err != nil {
		return nil, fmt.Errorf("emulator: %w", err)
	}

	ic := interrupt.New()
	p := ppu.New(ic, px)
	p.SetMonochromeCompat(rom.Header().IsMonochrome())
	bc := buttons.New(ic)
	tm := timer.New(ic)
	dc := dma.New()
	sc := speed.New()
	ac := apu.New(audio)

	bus := memory.New(bankController, p, bc, tm, ic, dc, sc, ac)
	c := cpu.New(bus, ic)

	return &Emulator{
		CPU:     c,
		PPU:     p,
		APU:     ac,
		Bus:     bus,
		MBC:     bankController,
		DMA:     dc,
		Timer:   tm,
		Speed:   sc,
		Buttons: bc,
		IC:      ic,
		ROM:     rom,
	}, nil
}

// Tick advances every component by exactly one machine cycle, in the fixed
// order spec.md §5 names: CPU, cartridge (MBC/RTC), speed controller,
// buttons, APU, timer, PPU, DMA. It returns the number of dots the PPU and
// timer just consumed (4, or 2 at double speed), for a caller accumulating
// toward a full frame.
func (e *Emulator) Tick() uint16 {
	e.CPU.Tick()

	ns := int64(singleSpeedNanosPerMCycle)
	if e.Speed.DoubleSpeed() {
		ns = doubleSpeedNanosPerMCycle
	}
	e.MBC.Tick(ns)

	if e.Speed.Tick(e.CPU.Stopped()) {
		e.CPU.Resume()
	}

	e.Buttons.Tick()

	e.APU.Tick(e.Timer.ReadDIV(), e.Speed.DoubleSpeed())

	dots := uint16(4)
	if e.Speed.DoubleSpeed() {
		dots = 2
	}
	e.Timer.Tick(dots)
	e.PPU.Tick(dots)

	e.DMA.Tick(memory.DMABus{Bus: e.Bus}, e.CPU, e.PPU.Mode() == ppu.HBlank, e.Speed.DoubleSpeed())

	return dots
}

// RunFrame advances the emulator by exactly one complete frame (70224
// dots), regardless of how many double-speed flips happen along the way.
func (e *Emulator) RunFrame() {
	var consumed int
	for consumed < DotsPerFrame {
		consumed += int(e.Tick())
	}
}

// PressButton and ReleaseButton forward to the button controller; see
// buttons.Controller for the deferred-interrupt arming rule.
func (e *Emulator) PressButton(b buttons.Button)   { e.Buttons.PressButton(b) }
func (e *Emulator) ReleaseButton(b buttons.Button) { e.Buttons.ReleaseButton(b) }

// BatteryRAM returns the cartridge's battery-backed save RAM, or nil if the
// cartridge has none, for the caller to persist between sessions
// independent of a full save-state (spec.md §1: ROM/save file I/O is an
// external collaborator's job).
func (e *Emulator) BatteryRAM() []byte { return e.MBC.RAM() }
