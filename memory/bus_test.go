package memory

import (
	"testing"

	"github.com/jrfarr/dmgcore/buttons"
	"github.com/jrfarr/dmgcore/dma"
	"github.com/jrfarr/dmgcore/interrupt"
	"github.com/jrfarr/dmgcore/mbc"
	"github.com/jrfarr/dmgcore/ppu"
	"github.com/jrfarr/dmgcore/sink"
	"github.com/jrfarr/dmgcore/speed"
	"github.com/jrfarr/dmgcore/timer"
)

// fakeAudio satisfies the Audio register-file interface without any of the
// apu package's channel behavior, enough to exercise bus routing.
type fakeAudio struct {
	regs [0x40]uint8
}

func (a *fakeAudio) ReadRegister(addr uint16) uint8    { return a.regs[addr-0xFF10] }
func (a *fakeAudio) WriteRegister(addr uint16, v uint8) { a.regs[addr-0xFF10] = v }

func newTestBus() *Bus {
	ic := interrupt.New()
	px := fakePixelSink{}
	p := ppu.New(ic, px)
	bc := buttons.New(ic)
	tm := timer.New(ic)
	dc := dma.New()
	sc := speed.New()
	return New(mbc.Dummy, p, bc, tm, ic, dc, sc, &fakeAudio{})
}

type fakePixelSink struct{}

func (fakePixelSink) DrawPixel(x, y int, z uint8, color uint16, target sink.Target) {}
func (fakePixelSink) Flush()                                                       {}
func (fakePixelSink) SetRenderTargetEnabled(target sink.Target, enabled bool)       {}
func (fakePixelSink) RenderTargetIsEnabled(target sink.Target) bool                 { return false }

func TestWRAMBankSwitch(t *testing.T) {
	b := newTestBus()

	b.WriteByte(0xC000, 0xAA) // fixed bank 0
	b.WriteByte(0xD000, 0x01) // switchable bank, default SVBK=1

	b.WriteByte(0xFF70, 0x02) // switch to bank 2
	b.WriteByte(0xD000, 0x02)

	b.WriteByte(0xFF70, 0x01)
	if got := b.ReadByte(0xD000); got != 0x01 {
		t.Errorf("bank 1 byte = %#x, want 0x01 (banks must not alias)", got)
	}
	b.WriteByte(0xFF70, 0x02)
	if got := b.ReadByte(0xD000); got != 0x02 {
		t.Errorf("bank 2 byte = %#x, want 0x02", got)
	}
	if got := b.ReadByte(0xC000); got != 0xAA {
		t.Errorf("fixed bank 0 byte = %#x, want 0xAA", got)
	}
}

func TestWRAMBankZeroRemapsToOne(t *testing.T) {
	b := newTestBus()
	b.WriteByte(0xFF70, 0x00)
	if got := b.ReadByte(0xFF70); got&0x07 != 1 {
		t.Errorf("SVBK low bits = %#x, want 1 (write of 0 remaps to 1)", got&0x07)
	}
}

func TestHighRAMStack(t *testing.T) {
	b := newTestBus()
	b.WriteByte(0xFF80, 0x42)
	b.WriteByte(0xFFFE, 0x99)
	if got := b.ReadByte(0xFF80); got != 0x42 {
		t.Errorf("FF80 = %#x, want 0x42", got)
	}
	if got := b.ReadByte(0xFFFE); got != 0x99 {
		t.Errorf("FFFE = %#x, want 0x99", got)
	}
}

func TestProhibitedRangeReadsFF(t *testing.T) {
	b := newTestBus()
	if got := b.ReadByte(0xFEA0); got != 0xFF {
		t.Errorf("ReadByte(0xFEA0) = %#x, want 0xFF", got)
	}
	b.WriteByte(0xFEA0, 0x12) // must be swallowed, not panic
}

func TestIEIFRouting(t *testing.T) {
	b := newTestBus()
	b.WriteByte(0xFFFF, 0x1F)
	if got := b.ic.ReadIE(); got != 0x1F {
		t.Errorf("IE = %#x, want 0x1F", got)
	}
	b.WriteByte(0xFF0F, 0x05)
	if got := b.ic.ReadIF(); got&0x1F != 0x05 {
		t.Errorf("IF low bits = %#x, want 0x05", got&0x1F)
	}
}
