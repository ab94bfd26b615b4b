package ppu

import "github.com/jrfarr/dmgcore/bitutil"

// vramBankSize is the size of one of the two CGB VRAM banks.
const vramBankSize = 0x2000

// vram holds the two switchable 8KB banks mapped at 8000-9FFF. Bank 1 only
// exists in CGB mode but this core always allocates it; a DMG cartridge
// simply never switches VBK away from bank 0.
type vram struct {
	banks [2][vramBankSize]uint8
	vbk   uint8 // 0 or 1
}

func (v *vram) readVBK() uint8  { return v.vbk | 0xFE }
func (v *vram) writeVBK(x uint8) { v.vbk = x & 0x01 }

func (v *vram) read(addr uint16) uint8 {
	return v.banks[v.vbk][addr-0x8000]
}

func (v *vram) write(addr uint16, val uint8) {
	v.banks[v.vbk][addr-0x8000] = val
}

// readBank reads from an explicit bank, bypassing VBK — used by the
// renderer, which must read both banks' tile attributes/data regardless of
// which one VBK currently exposes to the CPU.
func (v *vram) readBank(bank uint8, addr uint16) uint8 {
	return v.banks[bank&0x01][addr-0x8000]
}

// tileRow returns the two bytes of tile row `row` (0-7) for tileIndex,
// honoring LCDC's addressing mode: Mode8000 treats tileIndex as unsigned
// against base 0x8000; Mode8800 treats it as signed against base 0x9000.
func (v *vram) tileRow(bank uint8, mode TileAddressing, tileIndex uint8, row uint8) (lo, hi uint8) {
	var base uint16
	if mode == Mode8000 {
		base = 0x8000 + uint16(tileIndex)*16
	} else {
		base = uint16(int32(0x9000) + int32(int8(tileIndex))*16)
	}
	addr := base + uint16(row)*2
	lo = v.readBank(bank, addr)
	hi = v.readBank(bank, addr+1)
	return
}

// decodeTileRow returns the 8 color indices (0-3) of a tile row, left pixel
// first, via the interleave trick shared with the rest of the core.
func decodeTileRow(lo, hi uint8) []uint8 {
	return bitutil.Crumbs(bitutil.Interleave(lo, hi)).Reversed()
}

// TileAddressing identifies LCDC bit 4's tile data addressing mode.
type TileAddressing uint8

const (
	Mode8800 TileAddressing = iota
	Mode8000
)
