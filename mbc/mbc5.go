package mbc

import "github.com/jrfarr/dmgcore/cartridge"

// mbc5 implements the MBC5 banking scheme: a 9-bit ROM bank register split
// across two write windows and a 4-bit RAM bank register. Unlike MBC1/2/3,
// MBC5 does not coerce a written bank value of 0 up to 1 — bank 0 is
// selectable in the swappable 0x4000-0x7FFF window.
//
// https://gbdev.io/pandocs/MBC5.html
type mbc5 struct {
	rom       *cartridge.ROM
	ram       []byte
	romMask   uint16
	ramOn     bool
	romBankLo uint8 // 8 bits, 0x2000-0x2FFF
	romBankHi uint8 // 1 bit, 0x3000-0x3FFF
	ramBank   uint8 // 4 bits, 0x4000-0x5FFF
}

func newMBC5(rom *cartridge.ROM, ram []byte) *mbc5 {
	return &mbc5{rom: rom, ram: ram, romMask: romBankMask(rom)}
}

func (m *mbc5) romBank() uint16 {
	bank := uint16(m.romBankHi)<<8 | uint16(m.romBankLo)
	return bank & m.romMask
}

func (m *mbc5) ReadROM(addr uint16) uint8 {
	if addr < 0x4000 {
		return m.rom.ReadByte(int(addr))
	}
	bank := m.romBank()
	return m.rom.ReadByte(int(bank)*0x4000 + int(addr-0x4000))
}

func (m *mbc5) WriteROM(addr uint16, val uint8) {
	switch {
	case addr < 0x2000:
		m.ramOn = val&0x0F == 0x0A
	case addr < 0x3000:
		m.romBankLo = val
	case addr < 0x4000:
		m.romBankHi = val & 0x01
	case addr < 0x6000:
		m.ramBank = val & 0x0F
	}
}

func (m *mbc5) ReadRAM(addr uint16) uint8 {
	if !m.ramOn || len(m.ram) == 0 {
		return 0xFF
	}
	i := int(m.ramBank)*0x2000 + int(addr-0xA000)
	if i >= len(m.ram) {
		return 0xFF
	}
	return m.ram[i]
}

func (m *mbc5) WriteRAM(addr uint16, val uint8) {
	if !m.ramOn || len(m.ram) == 0 {
		return
	}
	i := int(m.ramBank)*0x2000 + int(addr-0xA000)
	if i < len(m.ram) {
		m.ram[i] = val
	}
}

func (m *mbc5) Tick(ns int64) {}

func (m *mbc5) RAM() []byte { return m.ram }

func (m *mbc5) BankState() BankState {
	return BankState{RAMOn: m.ramOn, BankLow: m.romBankLo, BankHigh: m.romBankHi, RAMBank: m.ramBank}
}

func (m *mbc5) RestoreBankState(s BankState) {
	m.ramOn = s.RAMOn
	m.romBankLo = s.BankLow
	m.romBankHi = s.BankHigh
	m.ramBank = s.RAMBank
}
