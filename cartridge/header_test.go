package cartridge

import "testing"

// buildHeader returns a minimal 0x150-byte ROM image with the given
// cartridge type/rom size/ram size bytes and title, and a valid checksum.
func buildHeader(t *testing.T, title string, typ, romSize, ramSize uint8) []byte {
	t.Helper()
	rom := make([]byte, 0x150)
	copy(rom[offTitle:offTitleEnd], title)
	rom[offType] = typ
	rom[offROMSize] = romSize
	rom[offRAMSize] = ramSize

	var sum uint8
	for i := 0x0134; i <= 0x014C; i++ {
		sum = sum - rom[i] - 1
	}
	rom[offChecksum] = sum
	return rom
}

func TestParseHeaderTitle(t *testing.T) {
	rom := buildHeader(t, "TETRIS", TypeROMOnly, 0, 0)
	h, err := ParseHeader(rom)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if got := h.Title(); got != "TETRIS" {
		t.Errorf("Title() = %q, want %q", got, "TETRIS")
	}
}

func TestParseHeaderTooShort(t *testing.T) {
	if _, err := ParseHeader(make([]byte, 0x10)); err == nil {
		t.Fatalf("expected error for truncated ROM")
	}
}

func TestVerifyChecksum(t *testing.T) {
	rom := buildHeader(t, "POKEMON RED", TypeMBC3TimerRAMBattery, 1, 2)
	h, err := ParseHeader(rom)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if !h.VerifyChecksum(rom) {
		t.Fatalf("expected checksum to verify")
	}
	rom[offTitle] ^= 0xFF
	if h.VerifyChecksum(rom) {
		t.Fatalf("expected checksum to fail after corrupting title byte")
	}
}

func TestFamily(t *testing.T) {
	cases := []struct {
		typ  uint8
		want Family
	}{
		{TypeROMOnly, FamilyMBC0},
		{TypeMBC1RAMBattery, FamilyMBC1},
		{TypeMBC2Battery, FamilyMBC2},
		{TypeMBC3TimerRAMBattery, FamilyMBC3},
		{TypeMBC5RumbleRAMBattery, FamilyMBC5},
	}
	for _, c := range cases {
		rom := buildHeader(t, "X", c.typ, 0, 0)
		h, err := ParseHeader(rom)
		if err != nil {
			t.Fatalf("ParseHeader: %v", err)
		}
		fam, err := h.Family()
		if err != nil {
			t.Fatalf("Family(): %v", err)
		}
		if fam != c.want {
			t.Errorf("type %#02x: Family() = %v, want %v", c.typ, fam, c.want)
		}
	}
}

func TestFamilyUnsupported(t *testing.T) {
	rom := buildHeader(t, "X", 0xFE, 0, 0)
	h, err := ParseHeader(rom)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if _, err := h.Family(); err == nil {
		t.Fatalf("expected unsupported cartridge error")
	} else if _, ok := err.(*UnsupportedCartridgeError); !ok {
		t.Fatalf("expected *UnsupportedCartridgeError, got %T", err)
	}
}

func TestHasRTCAndBattery(t *testing.T) {
	rom := buildHeader(t, "X", TypeMBC3TimerRAMBattery, 0, 0)
	h, _ := ParseHeader(rom)
	if !h.HasRTC() {
		t.Errorf("expected HasRTC() true")
	}
	if !h.HasBattery() {
		t.Errorf("expected HasBattery() true")
	}

	rom = buildHeader(t, "X", TypeMBC3, 0, 0)
	h, _ = ParseHeader(rom)
	if h.HasRTC() || h.HasBattery() {
		t.Errorf("plain MBC3 should have neither RTC nor battery")
	}
}

func TestROMAndRAMBanks(t *testing.T) {
	rom := buildHeader(t, "X", TypeMBC5, 3, 3)
	h, _ := ParseHeader(rom)
	if got := h.ROMBanks(); got != 16 {
		t.Errorf("ROMBanks() = %d, want 16", got)
	}
	if got := h.RAMBanks(); got != 4 {
		t.Errorf("RAMBanks() = %d, want 4", got)
	}
}

func TestCompatibilityPaletteKey(t *testing.T) {
	rom := buildHeader(t, "POKEMON", TypeROMOnly, 0, 0)
	h, _ := ParseHeader(rom)
	title, fourth, checksum := h.CompatibilityPaletteKey()
	if title != "POKEMON" {
		t.Errorf("title = %q, want POKEMON", title)
	}
	if fourth != 'E' {
		t.Errorf("fourthLetter = %q, want 'E'", fourth)
	}
	if checksum != h.checksum {
		t.Errorf("checksum = %#02x, want %#02x", checksum, h.checksum)
	}
}
