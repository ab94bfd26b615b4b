package mbc

import "github.com/jrfarr/dmgcore/cartridge"

// mbc2RAMSize is the fixed size of MBC2's built-in 4-bit RAM: 512 nibbles,
// stored one nibble per byte for simplicity.
const mbc2RAMSize = 512

// mbc2 implements the MBC2 banking scheme: a single bank-select register
// (1-15) and a built-in 512x4-bit RAM, with address bit 8 of a
// 0x0000-0x3FFF write distinguishing a bank-select write from a
// RAM-enable-latch write.
//
// https://gbdev.io/pandocs/MBC2.html
type mbc2 struct {
	rom     *cartridge.ROM
	ram     [mbc2RAMSize]uint8
	romMask uint16
	ramOn   bool
	bank    uint8 // 4 bits, 1-15
}

func newMBC2(rom *cartridge.ROM) *mbc2 {
	return &mbc2{rom: rom, romMask: romBankMask(rom), bank: 1}
}

func (m *mbc2) ReadROM(addr uint16) uint8 {
	if addr < 0x4000 {
		return m.rom.ReadByte(int(addr))
	}
	bank := uint16(m.bank) & m.romMask
	return m.rom.ReadByte(int(bank)*0x4000 + int(addr-0x4000))
}

func (m *mbc2) WriteROM(addr uint16, val uint8) {
	if addr >= 0x4000 {
		return
	}
	if addr&0x0100 != 0 {
		m.bank = val & 0x0F
		if m.bank == 0 {
			m.bank = 1
		}
	} else {
		m.ramOn = val&0x0F == 0x0A
	}
}

func (m *mbc2) ReadRAM(addr uint16) uint8 {
	if !m.ramOn {
		return 0xFF
	}
	i := int(addr-0xA000) % mbc2RAMSize
	return m.ram[i] | 0xF0
}

func (m *mbc2) WriteRAM(addr uint16, val uint8) {
	if !m.ramOn {
		return
	}
	i := int(addr-0xA000) % mbc2RAMSize
	m.ram[i] = val & 0x0F
}

func (m *mbc2) Tick(ns int64) {}

func (m *mbc2) RAM() []byte { return m.ram[:] }

func (m *mbc2) BankState() BankState {
	return BankState{RAMOn: m.ramOn, BankLow: m.bank}
}

func (m *mbc2) RestoreBankState(s BankState) {
	m.ramOn = s.RAMOn
	m.bank = s.BankLow
}
