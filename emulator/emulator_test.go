package emulator

import (
	"testing"

	"github.com/jrfarr/dmgcore/register"
	"github.com/jrfarr/dmgcore/sink"
)

// minimalROM returns a ROM-only (MBC0) cartridge image large enough to
// carry a valid header, with the given size in 16KB banks.
func minimalROM(banks int) []byte {
	rom := make([]byte, banks*0x4000)
	if len(rom) < 0x8000 {
		rom = append(rom, make([]byte, 0x8000-len(rom))...)
	}
	rom[0x0147] = 0x00 // ROM only
	rom[0x0148] = 0x00 // 2 banks (32KB)
	rom[0x0149] = 0x00 // no RAM
	rom[0x0143] = 0x00 // monochrome-only header
	return rom
}

// countingPixelSink counts Main-target draws and flushes, per spec.md §8
// scenario 4.
type countingPixelSink struct {
	draws   int
	flushes int
}

func (s *countingPixelSink) DrawPixel(x, y int, z uint8, color uint16, target sink.Target) {
	if target == sink.Main {
		s.draws++
	}
}
func (s *countingPixelSink) Flush()                                           { s.flushes++ }
func (s *countingPixelSink) SetRenderTargetEnabled(target sink.Target, enabled bool) {}
func (s *countingPixelSink) RenderTargetIsEnabled(target sink.Target) bool    { return true }

type nullAudioSink struct{}

func (nullAudioSink) PlayPulse(channel int, frequencyHz, duty float64)        {}
func (nullAudioSink) PlayCustomWave(channel int, samples [16]byte)            {}
func (nullAudioSink) PlayNoise(channel int, frequencyHz float64, short bool)  {}
func (nullAudioSink) Stop(channel int)                                        {}
func (nullAudioSink) SetGain(channel int, gain float64)                       {}
func (nullAudioSink) SetStereoGain(channel int, side sink.Side, gain float64) {}
func (nullAudioSink) SetFrequency(channel int, frequencyHz float64)           {}
func (nullAudioSink) MuteAll()                                                {}
func (nullAudioSink) UnmuteAll()                                              {}
func (nullAudioSink) SetMasterVolume(v uint8)                                 {}

// TestFrameDrawsEveryMainPixelOnce reproduces spec.md §8 scenario 4: with
// LCDC.enable=1, a blank all-zero tile map and BGP=0xE4, one full frame
// (70224 dots) draws 160x144 Main pixels and flushes exactly once.
func TestFrameDrawsEveryMainPixelOnce(t *testing.T) {
	px := &countingPixelSink{}
	emu, err := New(minimalROM(2), px, nullAudioSink{}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	emu.Bus.WriteByte(0xFF40, 0x91) // LCDC: enable + BG enable + 8000 addressing
	emu.Bus.WriteByte(0xFF47, 0xE4) // BGP

	emu.RunFrame()

	if px.draws != 160*144 {
		t.Errorf("Main draws = %d, want %d", px.draws, 160*144)
	}
	if px.flushes != 1 {
		t.Errorf("flushes = %d, want 1", px.flushes)
	}
}

// TestLegacyOAMDMAEndToEnd reproduces spec.md §8 scenario 1 through the
// full emulator/bus stack: writing FF46 copies 160 bytes from
// 0xC000..=0xC09F into OAM after 160 M-cycles.
func TestLegacyOAMDMAEndToEnd(t *testing.T) {
	emu, err := New(minimalROM(2), &countingPixelSink{}, nullAudioSink{}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for i := 0; i < 0x100; i++ {
		emu.Bus.WriteByte(uint16(0xC000+i), uint8(i))
	}
	emu.Bus.WriteByte(0xFF46, 0xC0)

	for i := 0; i < 160; i++ {
		emu.Tick()
	}

	for i := 0; i < 160; i++ {
		if got, want := emu.Bus.ReadByte(uint16(0xFE00+i)), uint8(i); got != want {
			t.Errorf("OAM[%#x] = %#x, want %#x", 0xFE00+i, got, want)
		}
	}
}

// TestSaveStateRoundTrip checks that an encoded save state restores an
// equivalent PC/SP after a few M-cycles have mutated them.
func TestSaveStateRoundTrip(t *testing.T) {
	emu, err := New(minimalROM(2), &countingPixelSink{}, nullAudioSink{}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for i := 0; i < 1000; i++ {
		emu.Tick()
	}

	pc := emu.CPU.Regs.ReadWord(register.PC)
	sp := emu.CPU.Regs.ReadWord(register.SP)
	data, err := emu.SaveState().Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	for i := 0; i < 1000; i++ {
		emu.Tick()
	}

	restored, err := DecodeSaveState(data)
	if err != nil {
		t.Fatalf("DecodeSaveState: %v", err)
	}
	if err := emu.LoadState(restored); err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	if got := emu.CPU.Regs.ReadWord(register.PC); got != pc {
		t.Errorf("PC after LoadState = %#04x, want %#04x", got, pc)
	}
	if got := emu.CPU.Regs.ReadWord(register.SP); got != sp {
		t.Errorf("SP after LoadState = %#04x, want %#04x", got, sp)
	}
}
