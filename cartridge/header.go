// Package cartridge implements Game Boy ROM header parsing: the cartridge
// type byte (used to select an MBC), title/CGB/SGB/destination metadata,
// and header checksum validation.
//
// https://gbdev.io/pandocs/The_Cartridge_Header.html
package cartridge

import "fmt"

// Header field offsets within the ROM, relative to the start of bank 0.
const (
	offTitle       = 0x0134
	offTitleEnd    = 0x0144 // exclusive
	offCGBFlag     = 0x0143
	offSGBFlag     = 0x0146
	offType        = 0x0147
	offROMSize     = 0x0148
	offRAMSize     = 0x0149
	offDestination = 0x014A
	offChecksum    = 0x014D
)

// Cartridge type byte values we recognize and assign to an MBC family.
// https://gbdev.io/pandocs/The_Cartridge_Header.html#0147--cartridge-type
const (
	TypeROMOnly              = 0x00
	TypeMBC1                 = 0x01
	TypeMBC1RAM              = 0x02
	TypeMBC1RAMBattery       = 0x03
	TypeMBC2                 = 0x05
	TypeMBC2Battery          = 0x06
	TypeMBC3TimerBattery     = 0x0F
	TypeMBC3TimerRAMBattery  = 0x10
	TypeMBC3                = 0x11
	TypeMBC3RAM              = 0x12
	TypeMBC3RAMBattery       = 0x13
	TypeMBC5                 = 0x19
	TypeMBC5RAM              = 0x1A
	TypeMBC5RAMBattery       = 0x1B
	TypeMBC5Rumble           = 0x1C
	TypeMBC5RumbleRAM        = 0x1D
	TypeMBC5RumbleRAMBattery = 0x1E
)

// UnsupportedCartridgeError reports a cartridge type this core does not
// emulate (spec.md §7: fatal, reported at construction time).
type UnsupportedCartridgeError struct {
	Type uint8
}

func (e *UnsupportedCartridgeError) Error() string {
	return fmt.Sprintf("cartridge: unsupported cartridge type 0x%02X", e.Type)
}

// Family identifies which MBC implementation a cartridge type maps to.
type Family int

const (
	FamilyMBC0 Family = iota
	FamilyMBC1
	FamilyMBC2
	FamilyMBC3
	FamilyMBC5
)

// HasRTC reports whether the cartridge type includes an MBC3 real-time
// clock.
func (h *Header) HasRTC() bool {
	return h.typ == TypeMBC3TimerBattery || h.typ == TypeMBC3TimerRAMBattery
}

// HasBattery reports whether cartridge RAM (or the RTC) is battery backed.
func (h *Header) HasBattery() bool {
	switch h.typ {
	case TypeMBC1RAMBattery, TypeMBC2Battery, TypeMBC3TimerBattery,
		TypeMBC3TimerRAMBattery, TypeMBC3RAMBattery, TypeMBC5RAMBattery,
		TypeMBC5RumbleRAMBattery:
		return true
	}
	return false
}

// Family maps the raw cartridge type byte to the MBC family that should
// drive this cartridge, or an error if the type is not one of the
// MBC0/1/2/3/5 variants this core supports.
func (h *Header) Family() (Family, error) {
	switch h.typ {
	case TypeROMOnly:
		return FamilyMBC0, nil
	case TypeMBC1, TypeMBC1RAM, TypeMBC1RAMBattery:
		return FamilyMBC1, nil
	case TypeMBC2, TypeMBC2Battery:
		return FamilyMBC2, nil
	case TypeMBC3TimerBattery, TypeMBC3TimerRAMBattery, TypeMBC3, TypeMBC3RAM, TypeMBC3RAMBattery:
		return FamilyMBC3, nil
	case TypeMBC5, TypeMBC5RAM, TypeMBC5RAMBattery, TypeMBC5Rumble, TypeMBC5RumbleRAM, TypeMBC5RumbleRAMBattery:
		return FamilyMBC5, nil
	}
	return 0, &UnsupportedCartridgeError{Type: h.typ}
}

// ROMBanks returns the number of 16KB ROM banks declared by the header.
func (h *Header) ROMBanks() int {
	if h.romSize > 8 {
		return 2 // degrade gracefully; unusual size codes aren't part of this core's scope
	}
	return 2 << h.romSize
}

// RAMBanks returns the number of 8KB cartridge-RAM banks declared by the
// header (0 if the cartridge has none).
func (h *Header) RAMBanks() int {
	switch h.ramSize {
	case 0:
		return 0
	case 1:
		return 1 // 2KB, treated as a single partial bank
	case 2:
		return 1
	case 3:
		return 4
	case 4:
		return 16
	case 5:
		return 8
	}
	return 0
}

// Header holds the parsed contents of the Game Boy cartridge header.
type Header struct {
	title       string
	cgbFlag     uint8
	sgbFlag     uint8
	typ         uint8
	romSize     uint8
	ramSize     uint8
	destination uint8
	checksum    uint8
}

// ParseHeader reads the cartridge header out of a full ROM image.
func ParseHeader(rom []byte) (*Header, error) {
	if len(rom) < 0x0150 {
		return nil, fmt.Errorf("cartridge: ROM too small to contain a header (%d bytes)", len(rom))
	}

	title := string(rom[offTitle:offTitleEnd])
	for i, c := range title {
		if c == 0 {
			title = title[:i]
			break
		}
	}

	return &Header{
		title:       title,
		cgbFlag:     rom[offCGBFlag],
		sgbFlag:     rom[offSGBFlag],
		typ:         rom[offType],
		romSize:     rom[offROMSize],
		ramSize:     rom[offRAMSize],
		destination: rom[offDestination],
		checksum:    rom[offChecksum],
	}, nil
}

// Title returns the cartridge's (possibly truncated) title string.
func (h *Header) Title() string { return h.title }

// IsColorOnly reports whether the cartridge requires CGB hardware (value
// 0xC0); IsColorSupported additionally covers 0x80 (color-enhanced but
// backward compatible).
func (h *Header) IsColorOnly() bool      { return h.cgbFlag == 0xC0 }
func (h *Header) IsColorSupported() bool { return h.cgbFlag == 0x80 || h.cgbFlag == 0xC0 }

// IsMonochrome reports whether the cartridge declares itself as a
// monochrome-only title, meaning a color system must fall back to
// monochrome-compatibility palettes (spec.md §9).
func (h *Header) IsMonochrome() bool { return !h.IsColorSupported() }

// SupportsSGB reports whether the Super Game Boy function byte is set.
func (h *Header) SupportsSGB() bool { return h.sgbFlag == 0x03 }

// VerifyChecksum recomputes the header checksum over bytes 0x134-0x14C and
// reports whether it matches the stored value.
func (h *Header) VerifyChecksum(rom []byte) bool {
	var sum uint8
	for i := 0x0134; i <= 0x014C; i++ {
		sum = sum - rom[i] - 1
	}
	return sum == h.checksum
}

// CompatibilityPaletteKey returns the (title, fourth-letter, checksum)
// tuple the real hardware's boot ROM uses to select a monochrome
// compatibility palette. spec.md and original_source both treat the actual
// title->palette table as belonging to an external collaborator; this core
// only computes the lookup key.
func (h *Header) CompatibilityPaletteKey() (title string, fourthLetter byte, checksum uint8) {
	var fl byte
	if len(h.title) > 3 {
		fl = h.title[3]
	}
	return h.title, fl, h.checksum
}
