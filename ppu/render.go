package ppu

import (
	"sort"

	"github.com/jrfarr/dmgcore/sink"
)

// renderLine draws one full scanline into the pixel sink: background,
// window, then objects, each as independent z-tagged draws (4.4). Order
// between layers doesn't matter to a sink that keeps the highest z per
// pixel; only the draw order *within* a z tier (same-priority objects)
// matters, and that's controlled by the X-order sort in renderObjects.
func (p *PPU) renderLine(line int) {
	bgWindowVisible := !p.monochromeCompat || p.lcdc.bgWindowEnabled()
	windowActive := p.lcdc.windowEnabled() && bgWindowVisible &&
		p.regs.wy <= uint8(line) && p.regs.wx <= 166

	for x := 0; x < 160; x++ {
		if bgWindowVisible {
			p.renderBackgroundPixel(x, line)
		}
		if windowActive && x+7 >= int(p.regs.wx) {
			p.renderWindowPixel(x, line)
		}
	}
	p.renderObjects(line)
}

func (p *PPU) colorAttributesAvailable() bool { return !p.monochromeCompat }

func (p *PPU) bgShadeColor(paletteReg uint8, palette, colorIndex uint8) uint16 {
	if p.monochromeCompat {
		shade := (paletteReg >> (2 * colorIndex)) & 0x3
		return p.bgCRAM.Color(0, shade)
	}
	return p.bgCRAM.Color(palette, colorIndex)
}

func (p *PPU) renderBackgroundPixel(x, line int) {
	bgX := (x + int(p.regs.scx)) & 0xFF
	bgY := (line + int(p.regs.scy)) & 0xFF
	p.renderBGWindowTilePixel(x, line, bgX, bgY, p.lcdc.bgTileMapHigh(), false)
}

func (p *PPU) renderWindowPixel(x, line int) {
	winX := x - (int(p.regs.wx) - 7)
	winY := line - int(p.regs.wy)
	if winX < 0 || winY < 0 {
		return
	}
	p.renderBGWindowTilePixel(x, line, winX, winY, p.lcdc.windowTileMapHigh(), true)
}

// renderBGWindowTilePixel shares the tile-map lookup, attribute decode and
// row/column flip logic between background and window; isWindow only
// changes the resulting z and whether transparency is honored.
func (p *PPU) renderBGWindowTilePixel(screenX, screenY, localX, localY int, tileMapHigh, isWindow bool) {
	tileCol := localX / 8
	tileRow := localY / 8
	mapBase := uint16(0x9800)
	if tileMapHigh {
		mapBase = 0x9C00
	}
	mapAddr := mapBase + uint16(tileRow)*32 + uint16(tileCol)
	tileIndex := p.vram.readBank(0, mapAddr)

	var attr uint8
	if p.colorAttributesAvailable() {
		attr = p.vram.readBank(1, mapAddr)
	}
	bank := (attr >> 3) & 1
	flipX := attr&0x20 != 0
	flipY := attr&0x40 != 0
	bgPriority := attr&0x80 != 0
	palette := attr & 0x07

	row := uint8(localY % 8)
	if flipY {
		row = 7 - row
	}
	lo, hi := p.vram.tileRow(bank, p.lcdc.tileAddressing(), tileIndex, row)
	crumbs := decodeTileRow(lo, hi)
	col := localX % 8
	if flipX {
		col = 7 - col
	}
	colorIndex := crumbs[col]

	color := p.bgShadeColor(p.regs.bgp, palette, colorIndex)

	var z uint8
	switch {
	case isWindow:
		z = 0xFF
	case colorIndex == 0:
		z = 0
	case p.monochromeCompat || !bgPriority:
		z = 3
	default:
		z = 6
	}

	p.sink.DrawPixel(screenX, screenY, z, color, sink.Main)
	if p.sink.RenderTargetIsEnabled(sink.TileAtlas) {
		atlasX := int(tileIndex%16)*8 + col
		atlasY := int(tileIndex/16)*8 + int(row)
		p.sink.DrawPixel(atlasX, atlasY, z, color, sink.TileAtlas)
	}
}

func (p *PPU) renderObjects(line int) {
	if !p.lcdc.objectsEnabled() || len(p.scannedObjects) == 0 {
		return
	}
	objs := make([]Object, len(p.scannedObjects))
	copy(objs, p.scannedObjects)
	if p.monochromeCompat {
		sort.SliceStable(objs, func(i, j int) bool { return objs[i].X < objs[j].X })
	}

	height := 8
	if p.lcdc.tallObjects() {
		height = 16
	}

	for _, obj := range objs {
		top := int(obj.Y) - 16
		row := line - top
		if row < 0 || row >= height {
			continue
		}
		if obj.FlipY {
			row = height - 1 - row
		}
		tileID := obj.TileID
		if height == 16 {
			tileID &= 0xFE
			if row >= 8 {
				tileID++
				row -= 8
			}
		}

		lo, hi := p.vram.tileRow(obj.Bank, Mode8000, tileID, uint8(row))
		crumbs := decodeTileRow(lo, hi)
		left := int(obj.X) - 8

		for sx := 0; sx < 8; sx++ {
			screenX := left + sx
			if screenX < 0 || screenX >= 160 {
				continue
			}
			col := sx
			if obj.FlipX {
				col = 7 - sx
			}
			ci := crumbs[col]
			if ci == 0 {
				continue
			}

			var color uint16
			if p.monochromeCompat {
				pal := p.regs.obp0
				if obj.DMGPalette != 0 {
					pal = p.regs.obp1
				}
				shade := (pal >> (2 * ci)) & 0x3
				color = p.objCRAM.Color(uint8(obj.DMGPalette), shade)
			} else {
				color = p.objCRAM.Color(obj.CGBPalette, ci)
			}

			z := uint8(5)
			if obj.Priority {
				z = 2
			}
			p.sink.DrawPixel(screenX, line, z, color, sink.Main)
			if p.sink.RenderTargetIsEnabled(sink.ObjectAtlas) {
				atlasX := (obj.index%16)*8 + col
				atlasY := (obj.index/16)*8 + row
				p.sink.DrawPixel(atlasX, atlasY, z, color, sink.ObjectAtlas)
			}
		}
	}
}
