// Package ppu implements the LCD controller: VRAM/OAM/CRAM storage, the
// dot-clock mode state machine, and the per-scanline renderer.
//
// https://gbdev.io/pandocs/Rendering.html
package ppu

import (
	"github.com/jrfarr/dmgcore/bitutil"
	"github.com/jrfarr/dmgcore/interrupt"
	"github.com/jrfarr/dmgcore/sink"
)

const totalDots = 456 * 154

// PPU owns the LCD controller's storage and dot-clock state machine.
type PPU struct {
	ic   *interrupt.Controller
	sink sink.Pixel

	lcdc lcdc
	stat stat
	regs registers

	vram    vram
	oamRaw  [160]uint8
	bgCRAM  cram
	objCRAM cram

	dot  int
	mode Mode

	statLine bitutil.EdgeDetector

	scannedObjects []Object
	scanCursor     int

	monochromeCompat bool
}

// New returns a PPU wired to the given interrupt controller and pixel
// sink, starting in monochrome-compatibility mode (the only mode this core
// fully implements; see SPEC_FULL.md).
func New(ic *interrupt.Controller, px sink.Pixel) *PPU {
	return &PPU{ic: ic, sink: px, monochromeCompat: true}
}

// SetMonochromeCompat toggles whether BG/window/object colors are resolved
// through BGP/OBP0/OBP1 against a single stored palette (DMG compatibility)
// or directly through the per-tile/per-object CGB palette index.
func (p *PPU) SetMonochromeCompat(v bool) { p.monochromeCompat = v }

func (p *PPU) Mode() Mode { return p.mode }

// Tick advances the dot counter by the given number of dots (4, or 2 in
// double speed), one dot at a time so mode transitions and the OAM scan's
// two-objects-per-4-dots cadence land exactly on their real boundaries
// regardless of the step size passed in.
func (p *PPU) Tick(dots uint16) {
	for i := uint16(0); i < dots; i++ {
		p.stepOneDot()
	}
}

func (p *PPU) stepOneDot() {
	if !p.lcdc.enabled() {
		p.dot = (p.dot + 1) % totalDots
		return
	}

	p.dot = (p.dot + 1) % totalDots
	line := p.dot / 456
	column := p.dot % 456

	newMode := computeMode(line, column)
	prevMode := p.mode
	p.mode = newMode
	p.regs.ly = uint8(line)

	lycMatch := p.regs.ly == p.regs.lyc
	statSignal := p.statSourceEnabled(newMode) || (lycMatch && p.stat.lycEnabled())
	if rising, _ := p.statLine.Update(statSignal); rising {
		p.ic.Request(interrupt.Stat)
	}

	if newMode == OAMScan {
		if prevMode != OAMScan {
			p.scannedObjects = p.scannedObjects[:0]
			p.scanCursor = 0
		}
		if column%4 == 0 {
			p.scanTwoObjects(line)
		}
	}

	if newMode == Render && prevMode != Render {
		p.renderLine(line)
	}

	if line == 144 && column == 0 {
		p.ic.Request(interrupt.VerticalBlank)
		p.sink.Flush()
	}
}

func computeMode(line, column int) Mode {
	if line >= 144 {
		return VBlank
	}
	if column <= 79 {
		return OAMScan
	}
	if column <= 247 {
		return Render
	}
	return HBlank
}

func (p *PPU) statSourceEnabled(m Mode) bool {
	switch m {
	case HBlank:
		return p.stat.mode0Enabled()
	case VBlank:
		return p.stat.mode1Enabled()
	case OAMScan:
		return p.stat.mode2Enabled()
	}
	return false
}

func (p *PPU) objectAt(i int) Object {
	return ObjectFromBytes(p.oamRaw[i*4:i*4+4], i)
}

// scanTwoObjects examines the next two OAM entries for intersection with
// the current line, per the 80-dot/40-entry/4-dots-per-two-entries budget
// of real OAM scan.
func (p *PPU) scanTwoObjects(line int) {
	height := 8
	if p.lcdc.tallObjects() {
		height = 16
	}
	for i := 0; i < 2 && p.scanCursor < 40; i++ {
		obj := p.objectAt(p.scanCursor)
		p.scanCursor++
		if len(p.scannedObjects) >= 10 {
			continue
		}
		if intersectsLine(obj.Y, line, height) {
			p.scannedObjects = append(p.scannedObjects, obj)
		}
	}
}

// intersectsLine implements the exact object/scanline intersection test:
// lcd_y <= L+16 and (lcd_y > L+8 for 8x8 objects, lcd_y > L for 8x16).
func intersectsLine(lcdY uint8, line, height int) bool {
	y := int(lcdY)
	if y > line+16 {
		return false
	}
	if height == 16 {
		return y > line
	}
	return y > line+8
}

// --- bus-facing register access ---

func (p *PPU) ReadVRAM(addr uint16) uint8  { return p.vram.read(addr) }
func (p *PPU) WriteVRAM(addr uint16, v uint8) { p.vram.write(addr, v) }
func (p *PPU) ReadVBK() uint8              { return p.vram.readVBK() }
func (p *PPU) WriteVBK(v uint8)            { p.vram.writeVBK(v) }

func (p *PPU) ReadOAM(addr uint16) uint8 {
	i := addr - 0xFE00
	if int(i) >= len(p.oamRaw) {
		return 0xFF
	}
	// Real hardware blocks OAM reads during OAM-scan/render; this core
	// reads through unconditionally, matching its simplified bus model.
	return p.oamRaw[i]
}

func (p *PPU) WriteOAM(addr uint16, v uint8) {
	i := addr - 0xFE00
	if int(i) < len(p.oamRaw) {
		p.oamRaw[i] = v
	}
}

func (p *PPU) ReadLCDC() uint8   { return p.lcdc.v }
func (p *PPU) WriteLCDC(v uint8) { p.lcdc.v = v }
func (p *PPU) ReadSTAT() uint8 {
	return p.stat.read(p.mode, p.regs.ly == p.regs.lyc)
}
func (p *PPU) WriteSTAT(v uint8) { p.stat.write(v) }

func (p *PPU) ReadSCY() uint8   { return p.regs.scy }
func (p *PPU) WriteSCY(v uint8) { p.regs.scy = v }
func (p *PPU) ReadSCX() uint8   { return p.regs.scx }
func (p *PPU) WriteSCX(v uint8) { p.regs.scx = v }
func (p *PPU) ReadLY() uint8    { return p.regs.ly }
func (p *PPU) ReadLYC() uint8   { return p.regs.lyc }
func (p *PPU) WriteLYC(v uint8) { p.regs.lyc = v }
func (p *PPU) ReadWY() uint8    { return p.regs.wy }
func (p *PPU) WriteWY(v uint8)  { p.regs.wy = v }
func (p *PPU) ReadWX() uint8    { return p.regs.wx }
func (p *PPU) WriteWX(v uint8)  { p.regs.wx = v }

func (p *PPU) ReadBGP() uint8    { return p.regs.bgp }
func (p *PPU) WriteBGP(v uint8)  { p.regs.bgp = v }
func (p *PPU) ReadOBP0() uint8   { return p.regs.obp0 }
func (p *PPU) WriteOBP0(v uint8) { p.regs.obp0 = v }
func (p *PPU) ReadOBP1() uint8   { return p.regs.obp1 }
func (p *PPU) WriteOBP1(v uint8) { p.regs.obp1 = v }

func (p *PPU) ReadBCPS() uint8    { return p.bgCRAM.readIndex() }
func (p *PPU) WriteBCPS(v uint8)  { p.bgCRAM.writeIndex(v) }
func (p *PPU) ReadBCPD() uint8    { return p.bgCRAM.readData() }
func (p *PPU) WriteBCPD(v uint8)  { p.bgCRAM.writeData(v) }
func (p *PPU) ReadOCPS() uint8    { return p.objCRAM.readIndex() }
func (p *PPU) WriteOCPS(v uint8)  { p.objCRAM.writeIndex(v) }
func (p *PPU) ReadOCPD() uint8    { return p.objCRAM.readData() }
func (p *PPU) WriteOCPD(v uint8)  { p.objCRAM.writeData(v) }
