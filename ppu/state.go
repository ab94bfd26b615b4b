package ppu

// CRAMState is one color-RAM bank's persisted contents: its 64 raw bytes
// plus the auto-increment index register.
type CRAMState struct {
	Index uint8
	Auto  bool
	Data  [64]uint8
}

func (c *cram) save() CRAMState {
	return CRAMState{Index: c.addr.index, Auto: c.addr.auto, Data: c.data}
}

func (c *cram) restore(s CRAMState) {
	c.addr.index = s.Index
	c.addr.auto = s.Auto
	c.data = s.Data
}

// VRAMState is the two switchable 8KB VRAM banks plus the VBK select.
type VRAMState struct {
	Banks [2][vramBankSize]uint8
	VBK   uint8
}

// LCDState is the plain LCD control/position/palette registers (FF40-FF45,
// FF47-FF4B) plus the dot-clock position needed to resume mid-frame.
type LCDState struct {
	LCDC             uint8
	STAT             uint8
	SCY, SCX         uint8
	LY, LYC          uint8
	WY, WX           uint8
	BGP, OBP0, OBP1  uint8
	Dot              int
	Mode             Mode
	StatLine         bool
	MonochromeCompat bool
}

// State is the PPU's full persisted state, split into the named blobs
// spec.md's persisted-state list calls out separately (CRAM, VRAM, OAM,
// LCD).
type State struct {
	BGCRAM  CRAMState
	ObjCRAM CRAMState
	VRAM    VRAMState
	OAM     [160]uint8
	LCD     LCDState
}

// SaveState snapshots the PPU's CRAM, VRAM, OAM and LCD-register state.
func (p *PPU) SaveState() State {
	return State{
		BGCRAM:  p.bgCRAM.save(),
		ObjCRAM: p.objCRAM.save(),
		VRAM:    VRAMState{Banks: p.vram.banks, VBK: p.vram.vbk},
		OAM:     p.oamRaw,
		LCD: LCDState{
			LCDC:             p.lcdc.v,
			STAT:             p.stat.v,
			SCY:              p.regs.scy,
			SCX:              p.regs.scx,
			LY:               p.regs.ly,
			LYC:              p.regs.lyc,
			WY:               p.regs.wy,
			WX:               p.regs.wx,
			BGP:              p.regs.bgp,
			OBP0:             p.regs.obp0,
			OBP1:             p.regs.obp1,
			Dot:              p.dot,
			Mode:             p.mode,
			StatLine:         p.statLine.Value(),
			MonochromeCompat: p.monochromeCompat,
		},
	}
}

// LoadState restores a snapshot returned by SaveState. The scanned-object
// buffer for the current line is not persisted; it rebuilds on the next
// OAM-scan mode entry.
func (p *PPU) LoadState(s State) {
	p.bgCRAM.restore(s.BGCRAM)
	p.objCRAM.restore(s.ObjCRAM)
	p.vram.banks = s.VRAM.Banks
	p.vram.vbk = s.VRAM.VBK
	p.oamRaw = s.OAM

	p.lcdc.v = s.LCD.LCDC
	p.stat.v = s.LCD.STAT
	p.regs.scy = s.LCD.SCY
	p.regs.scx = s.LCD.SCX
	p.regs.ly = s.LCD.LY
	p.regs.lyc = s.LCD.LYC
	p.regs.wy = s.LCD.WY
	p.regs.wx = s.LCD.WX
	p.regs.bgp = s.LCD.BGP
	p.regs.obp0 = s.LCD.OBP0
	p.regs.obp1 = s.LCD.OBP1
	p.dot = s.LCD.Dot
	p.mode = s.LCD.Mode
	p.statLine.SetValue(s.LCD.StatLine)
	p.monochromeCompat = s.LCD.MonochromeCompat
	p.scannedObjects = p.scannedObjects[:0]
	p.scanCursor = 0
}
