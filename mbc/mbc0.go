package mbc

import "github.com/jrfarr/dmgcore/cartridge"

// mbc0 is a plain ROM-only cartridge: no banking, up to 32KB ROM and an
// optional single fixed 8KB RAM bank.
type mbc0 struct {
	rom *cartridge.ROM
	ram []byte
}

func newMBC0(rom *cartridge.ROM, ram []byte) *mbc0 {
	return &mbc0{rom: rom, ram: ram}
}

func (m *mbc0) ReadROM(addr uint16) uint8 {
	return m.rom.ReadByte(int(addr))
}

func (m *mbc0) WriteROM(addr uint16, val uint8) {}

func (m *mbc0) ReadRAM(addr uint16) uint8 {
	i := int(addr - 0xA000)
	if i >= len(m.ram) {
		return 0xFF
	}
	return m.ram[i]
}

func (m *mbc0) WriteRAM(addr uint16, val uint8) {
	i := int(addr - 0xA000)
	if i < len(m.ram) {
		m.ram[i] = val
	}
}

func (m *mbc0) Tick(ns int64) {}

func (m *mbc0) RAM() []byte { return m.ram }

func (m *mbc0) BankState() BankState          { return BankState{} }
func (m *mbc0) RestoreBankState(s BankState) {}
