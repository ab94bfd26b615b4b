package mbc

// dummyMBC is a flat, unbanked MBC fake for tests elsewhere in the module
// that need an MBC but don't care about banking behavior.
type dummyMBC struct {
	rom [0x8000]uint8
	ram [0x2000]uint8
}

func (d *dummyMBC) ReadROM(addr uint16) uint8     { return d.rom[addr] }
func (d *dummyMBC) WriteROM(addr uint16, v uint8) { d.rom[addr] = v }
func (d *dummyMBC) ReadRAM(addr uint16) uint8     { return d.ram[addr-0xA000] }
func (d *dummyMBC) WriteRAM(addr uint16, v uint8) { d.ram[addr-0xA000] = v }
func (d *dummyMBC) Tick(ns int64)                 {}
func (d *dummyMBC) RAM() []byte                   { return d.ram[:] }
func (d *dummyMBC) BankState() BankState          { return BankState{} }
func (d *dummyMBC) RestoreBankState(s BankState)  {}

// Dummy is a package-level fake, mirroring the teacher's mappers.Dummy
// fixture for use across other packages' tests.
var Dummy MBC = &dummyMBC{}
