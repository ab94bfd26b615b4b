package mbc

import (
	"testing"

	"github.com/jrfarr/dmgcore/cartridge"
)

// buildROM constructs a ROM image with numBanks 16KB banks, each bank's
// first byte set to its own bank index so tests can assert on which bank
// got mapped in, plus a valid header of the given cartridge type/ram size.
func buildROM(t *testing.T, typ uint8, numBanks int, ramSizeCode uint8) *cartridge.ROM {
	t.Helper()
	if numBanks < 2 {
		numBanks = 2
	}
	data := make([]byte, numBanks*0x4000)
	for b := 0; b < numBanks; b++ {
		data[b*0x4000] = uint8(b)
	}

	romSizeCode := uint8(0)
	for (2 << romSizeCode) < numBanks {
		romSizeCode++
	}

	const (
		offTitle    = 0x0134
		offTitleEnd = 0x0144
		offType     = 0x0147
		offROMSize  = 0x0148
		offRAMSize  = 0x0149
		offChecksum = 0x014D
	)
	copy(data[offTitle:offTitleEnd], "TEST")
	data[offType] = typ
	data[offROMSize] = romSizeCode
	data[offRAMSize] = ramSizeCode

	var sum uint8
	for i := 0x0134; i <= 0x014C; i++ {
		sum = sum - data[i] - 1
	}
	data[offChecksum] = sum

	rom, err := cartridge.New(data)
	if err != nil {
		t.Fatalf("cartridge.New: %v", err)
	}
	return rom
}

func TestNewDispatchesByFamily(t *testing.T) {
	cases := []struct {
		name string
		typ  uint8
	}{
		{"mbc0", cartridge.TypeROMOnly},
		{"mbc1", cartridge.TypeMBC1RAMBattery},
		{"mbc2", cartridge.TypeMBC2Battery},
		{"mbc3", cartridge.TypeMBC3TimerRAMBattery},
		{"mbc5", cartridge.TypeMBC5RAMBattery},
	}
	for _, c := range cases {
		rom := buildROM(t, c.typ, 4, 2)
		m, err := New(rom, nil)
		if err != nil {
			t.Fatalf("%s: New: %v", c.name, err)
		}
		if m == nil {
			t.Fatalf("%s: New returned nil MBC", c.name)
		}
	}
}

func TestNewRejectsUnsupported(t *testing.T) {
	rom := buildROM(t, 0xFE, 2, 0)
	if _, err := New(rom, nil); err == nil {
		t.Fatalf("expected error for unsupported cartridge type")
	}
}

func TestMBC1Banking(t *testing.T) {
	rom := buildROM(t, cartridge.TypeMBC1RAMBattery, 8, 2)
	m, err := New(rom, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// bank register 0 coerces to bank 1.
	m.WriteROM(0x2000, 0x00)
	if got := m.ReadROM(0x4000); got != 1 {
		t.Errorf("bank 0 should coerce to bank 1, got bank %d", got)
	}

	m.WriteROM(0x2000, 0x05)
	if got := m.ReadROM(0x4000); got != 5 {
		t.Errorf("expected bank 5, got bank %d", got)
	}

	m.WriteROM(0x0000, 0x0A) // enable RAM
	m.WriteRAM(0xA000, 0x42)
	if got := m.ReadRAM(0xA000); got != 0x42 {
		t.Errorf("ReadRAM(0xA000) = %#02x, want 0x42", got)
	}
}

func TestMBC1RAMDisabledReadsFF(t *testing.T) {
	rom := buildROM(t, cartridge.TypeMBC1RAMBattery, 4, 2)
	m, _ := New(rom, nil)
	if got := m.ReadRAM(0xA000); got != 0xFF {
		t.Errorf("ReadRAM with RAM disabled = %#02x, want 0xff", got)
	}
}

func TestMBC2BuiltInRAMNibbles(t *testing.T) {
	rom := buildROM(t, cartridge.TypeMBC2Battery, 4, 0)
	m, err := New(rom, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	m.WriteROM(0x0000, 0x0A) // RAM enable (bit 8 of address clear)
	m.WriteRAM(0xA000, 0xFF)
	if got := m.ReadRAM(0xA000); got != 0xFF {
		t.Errorf("ReadRAM = %#02x, want 0xff (nibble all-ones plus forced upper nibble)", got)
	}
	m.WriteRAM(0xA000, 0x03)
	if got := m.ReadRAM(0xA000); got != 0xF3 {
		t.Errorf("ReadRAM = %#02x, want 0xf3", got)
	}

	m.WriteROM(0x0100, 0x03) // bank select (bit 8 of address set)
	if got := m.ReadROM(0x4000); got != 3 {
		t.Errorf("expected bank 3, got %d", got)
	}
}

func TestMBC3BankingAndRTCLatch(t *testing.T) {
	rom := buildROM(t, cartridge.TypeMBC3TimerRAMBattery, 4, 2)
	m, err := New(rom, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	raw, ok := m.(*mbc3)
	if !ok {
		t.Fatalf("expected *mbc3, got %T", m)
	}

	m.WriteROM(0x2000, 0x02)
	if got := m.ReadROM(0x4000); got != 2 {
		t.Errorf("expected bank 2, got %d", got)
	}

	// Seed the live RTC to 23:59:59, day 511, via direct register writes,
	// matching the scenario where software sets the clock before latching.
	m.WriteROM(0x0000, 0x0A) // RAM/RTC enable
	m.WriteROM(0x4000, 0x0C) // select days-high register
	m.WriteRAM(0xA000, 0x01) // day bit 8 set -> day 511 combined with low byte below
	m.WriteROM(0x4000, 0x0B)
	m.WriteRAM(0xA000, 0xFF) // days-low = 0xFF
	m.WriteROM(0x4000, 0x0A)
	m.WriteRAM(0xA000, 23)
	m.WriteROM(0x4000, 0x09)
	m.WriteRAM(0xA000, 59)
	m.WriteROM(0x4000, 0x08)
	m.WriteRAM(0xA000, 59)

	// Advance exactly one second and latch.
	raw.live.tick(nsPerSecond)
	m.WriteROM(0x6000, 0x00)
	m.WriteROM(0x6000, 0x01) // 0->1 edge triggers the latch

	m.WriteROM(0x4000, 0x08)
	if got := m.ReadRAM(0xA000); got != 0 {
		t.Errorf("latched seconds = %d, want 0", got)
	}
	m.WriteROM(0x4000, 0x09)
	if got := m.ReadRAM(0xA000); got != 0 {
		t.Errorf("latched minutes = %d, want 0", got)
	}
	m.WriteROM(0x4000, 0x0A)
	if got := m.ReadRAM(0xA000); got != 0 {
		t.Errorf("latched hours = %d, want 0", got)
	}
	m.WriteROM(0x4000, 0x0B)
	if got := m.ReadRAM(0xA000); got != 0x00 {
		t.Errorf("latched days-low = %#02x, want 0x00", got)
	}
	m.WriteROM(0x4000, 0x0C)
	if got := m.ReadRAM(0xA000); got != 0x80 {
		t.Errorf("latched days-high = %#02x, want 0x80 (carry set, day bit0 clear)", got)
	}
}

func TestMBC5BankZeroSelectable(t *testing.T) {
	rom := buildROM(t, cartridge.TypeMBC5RAMBattery, 4, 2)
	m, err := New(rom, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	m.WriteROM(0x2000, 0x02)
	m.WriteROM(0x2000, 0x00) // MBC5 allows re-selecting bank 0 in the swappable window
	if got := m.ReadROM(0x4000); got != 0 {
		t.Errorf("expected bank 0 selectable, got bank %d", got)
	}
}

func TestMBC5RAMBanking(t *testing.T) {
	rom := buildROM(t, cartridge.TypeMBC5RAMBattery, 2, 3)
	m, err := New(rom, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	m.WriteROM(0x0000, 0x0A)
	m.WriteROM(0x4000, 0x02)
	m.WriteRAM(0xA000, 0x7F)
	if got := m.ReadRAM(0xA000); got != 0x7F {
		t.Errorf("ReadRAM = %#02x, want 0x7f", got)
	}
	m.WriteROM(0x4000, 0x00)
	if got := m.ReadRAM(0xA000); got == 0x7F {
		t.Errorf("expected different RAM bank to not see bank 2's value")
	}
}

func TestSavedRAMRoundTrips(t *testing.T) {
	rom := buildROM(t, cartridge.TypeMBC1RAMBattery, 4, 2)
	saved := make([]byte, 0x2000*4)
	saved[0x10] = 0x99
	m, err := New(rom, saved)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := m.RAM()[0x10]; got != 0x99 {
		t.Errorf("RAM()[0x10] = %#02x, want 0x99 (restored from saved image)", got)
	}
}
