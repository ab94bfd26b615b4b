package ppu

// Mode is the current dot-clock mode, mirrored in STAT bits 0-1.
type Mode uint8

const (
	HBlank Mode = iota
	VBlank
	OAMScan
	Render
)

// lcdc is LCDC (FF40), the master LCD control register.
type lcdc struct {
	v uint8
}

func (l *lcdc) enabled() bool          { return l.v&0x80 != 0 }
func (l *lcdc) windowTileMapHigh() bool { return l.v&0x40 != 0 }
func (l *lcdc) windowEnabled() bool    { return l.v&0x20 != 0 }
func (l *lcdc) tileAddressing() TileAddressing {
	if l.v&0x10 != 0 {
		return Mode8000
	}
	return Mode8800
}
func (l *lcdc) bgTileMapHigh() bool { return l.v&0x08 != 0 }
func (l *lcdc) tallObjects() bool   { return l.v&0x04 != 0 }
func (l *lcdc) objectsEnabled() bool { return l.v&0x02 != 0 }

// bgWindowEnabledOrPriority is LCDC bit 0: on DMG, disables BG/window
// drawing entirely; on CGB it instead governs whether objects can be drawn
// over BG/window priority bits. Monochrome-compatibility mode uses the DMG
// reading; outside it, the renderer does not consult this bit.
func (l *lcdc) bgWindowEnabled() bool { return l.v&0x01 != 0 }

// stat is STAT (FF41).
type stat struct {
	v uint8 // bits 3-6 only; bits 0-1 (mode) and bit 2 (LYC=LY) are derived
}

func (s *stat) mode0Enabled() bool { return s.v&0x08 != 0 }
func (s *stat) mode1Enabled() bool { return s.v&0x10 != 0 }
func (s *stat) mode2Enabled() bool { return s.v&0x20 != 0 }
func (s *stat) lycEnabled() bool   { return s.v&0x40 != 0 }

func (s *stat) read(mode Mode, lycMatch bool) uint8 {
	v := s.v&0x78 | 0x80
	v |= uint8(mode) & 0x03
	if lycMatch {
		v |= 0x04
	}
	return v
}

func (s *stat) write(v uint8) { s.v = v & 0x78 }

// registers bundles the remaining plain byte registers the bus and renderer
// read and write directly: scroll, window position, LY/LYC, and the DMG
// monochrome-compatibility palettes.
type registers struct {
	scy, scx uint8
	ly       uint8
	lyc      uint8
	wy, wx   uint8
	bgp, obp0, obp1 uint8
}
