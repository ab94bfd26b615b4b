package mbc

import "github.com/jrfarr/dmgcore/cartridge"

// mbc1 implements the MBC1 banking scheme: a 5-bit lower ROM bank register,
// a 2-bit upper register shared between ROM-bank-high-bits and RAM-bank
// selection (depending on mode), and a mode bit.
//
// https://gbdev.io/pandocs/MBC1.html
type mbc1 struct {
	rom      *cartridge.ROM
	ram      []byte
	romMask  uint16
	ramOn    bool
	bankLow  uint8 // 5 bits
	bankHigh uint8 // 2 bits
	mode     uint8 // 0 = ROM banking mode, 1 = RAM banking mode
}

func newMBC1(rom *cartridge.ROM, ram []byte) *mbc1 {
	return &mbc1{rom: rom, ram: ram, romMask: romBankMask(rom), bankLow: 1}
}

func (m *mbc1) romBank() uint16 {
	lo := m.bankLow
	if lo == 0 {
		lo = 1
	}
	bank := uint16(m.bankHigh)<<5 | uint16(lo)
	return bank & m.romMask
}

// lowWindowBank returns which bank is mapped into 0x0000-0x3FFF: normally
// bank 0, but in advanced (mode=1) banking the upper bits also shift the
// low window into the matching 512KB quadrant.
func (m *mbc1) lowWindowBank() uint16 {
	if m.mode == 1 {
		return (uint16(m.bankHigh) << 5) & m.romMask
	}
	return 0
}

func (m *mbc1) ReadROM(addr uint16) uint8 {
	if addr < 0x4000 {
		bank := m.lowWindowBank()
		return m.rom.ReadByte(int(bank)*0x4000 + int(addr))
	}
	bank := m.romBank()
	return m.rom.ReadByte(int(bank)*0x4000 + int(addr-0x4000))
}

func (m *mbc1) WriteROM(addr uint16, val uint8) {
	switch {
	case addr < 0x2000:
		m.ramOn = val&0x0F == 0x0A
	case addr < 0x4000:
		m.bankLow = val & 0x1F
	case addr < 0x6000:
		m.bankHigh = val & 0x03
	default:
		m.mode = val & 0x01
	}
}

func (m *mbc1) ramBank() uint16 {
	if m.mode == 1 {
		return uint16(m.bankHigh)
	}
	return 0
}

func (m *mbc1) ReadRAM(addr uint16) uint8 {
	if !m.ramOn || len(m.ram) == 0 {
		return 0xFF
	}
	i := int(m.ramBank())*0x2000 + int(addr-0xA000)
	if i >= len(m.ram) {
		return 0xFF
	}
	return m.ram[i]
}

func (m *mbc1) WriteRAM(addr uint16, val uint8) {
	if !m.ramOn || len(m.ram) == 0 {
		return
	}
	i := int(m.ramBank())*0x2000 + int(addr-0xA000)
	if i < len(m.ram) {
		m.ram[i] = val
	}
}

func (m *mbc1) Tick(ns int64) {}

func (m *mbc1) RAM() []byte { return m.ram }

func (m *mbc1) BankState() BankState {
	return BankState{RAMOn: m.ramOn, BankLow: m.bankLow, BankHigh: m.bankHigh, Mode: m.mode}
}

func (m *mbc1) RestoreBankState(s BankState) {
	m.ramOn = s.RAMOn
	m.bankLow = s.BankLow
	m.bankHigh = s.BankHigh
	m.mode = s.Mode
}
