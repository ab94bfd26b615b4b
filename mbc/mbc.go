// Package mbc implements the Game Boy memory bank controllers (MBC0/1/2/3/5)
// that own cartridge ROM and RAM and answer the bus's reads/writes of
// 0x0000-0x7FFF and 0xA000-0xBFFF.
//
// Where the teacher registers its NES mappers in a registry
// (mappers.RegisterMapper/mappers.Get), New here picks one of the five MBC
// families this core supports with a plain switch on the header's family.
package mbc

import (
	"fmt"

	"github.com/jrfarr/dmgcore/cartridge"
)

// MBC is the interface every bank controller implements. The bus routes
// 0x0000-0x7FFF and 0xA000-0xBFFF reads/writes here unconditionally; the
// MBC decides what bank, if any, answers.
type MBC interface {
	ReadROM(addr uint16) uint8
	WriteROM(addr uint16, val uint8) // control writes; 0x0000-0x7FFF
	ReadRAM(addr uint16) uint8       // 0xA000-0xBFFF
	WriteRAM(addr uint16, val uint8)
	// Tick advances any cartridge-internal clock by the given number of
	// nanoseconds. Only MBC3 does anything with it.
	Tick(ns int64)
	// RAM returns the battery-backed save RAM for persistence, or nil if
	// the cartridge has none.
	RAM() []byte
	// BankState returns the bank-select/RTC registers for save-state
	// persistence; RAM contents travel separately through RAM().
	BankState() BankState
	// RestoreBankState restores bank-select/RTC registers from a snapshot
	// returned by BankState.
	RestoreBankState(s BankState)
}

// RTCState is the MBC3 real-time clock's persisted register state: the live
// running counter plus the last-latched snapshot.
type RTCState struct {
	LiveNanoseconds     uint64
	LiveDaysCarry       bool
	LiveHalted          bool
	LatchedNanoseconds  uint64
	LatchedDaysCarry    bool
	LatchedHalted       bool
	LatchBit            bool
}

// BankState is a tagged union of every MBC family's bank-select registers;
// only the fields a given family uses are meaningful, the rest stay zero.
type BankState struct {
	RAMOn     bool
	BankLow   uint8
	BankHigh  uint8
	Mode      uint8
	ROMBank   uint16
	RAMBank   uint8
	RTC       RTCState
}

// New constructs the MBC implementation appropriate for rom's cartridge
// type, seeding cartridge RAM from saved (may be nil for a fresh save).
func New(rom *cartridge.ROM, saved []byte) (MBC, error) {
	fam, err := rom.Header().Family()
	if err != nil {
		return nil, err
	}

	ramSize := ramBytesFor(rom)
	ram := make([]byte, ramSize)
	if len(saved) > 0 {
		copy(ram, saved)
	}

	switch fam {
	case cartridge.FamilyMBC0:
		return newMBC0(rom, ram), nil
	case cartridge.FamilyMBC1:
		return newMBC1(rom, ram), nil
	case cartridge.FamilyMBC2:
		// MBC2's RAM is a fixed 512x4-bit array built into the
		// mapper, not sized from the header.
		return newMBC2(rom), nil
	case cartridge.FamilyMBC3:
		return newMBC3(rom, ram), nil
	case cartridge.FamilyMBC5:
		return newMBC5(rom, ram), nil
	}
	return nil, fmt.Errorf("mbc: unhandled family %v", fam)
}

func ramBytesFor(rom *cartridge.ROM) int {
	banks := rom.Header().RAMBanks()
	if banks == 0 {
		return 0
	}
	return banks * 0x2000
}

// romBankMask returns a mask that coerces a bank-select register into the
// range actually addressable by the ROM's bank count. The mask is count-1,
// which relies on the header's bank count being a power of two.
func romBankMask(rom *cartridge.ROM) uint16 {
	banks := rom.Header().ROMBanks()
	if banks <= 1 {
		return 0
	}
	return uint16(banks - 1)
}
