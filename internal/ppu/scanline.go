package ppu

// Tick advances the PPU by one dot (one PPU cycle, a third of a CPU
// cycle) and returns 1, matching the clock.Ticker contract so the
// PPU can be attached to the scheduler directly.
func (p *PPU) Tick() uint64 {
	p.stepDot()
	return 1
}

func (p *PPU) stepDot() {
	switch {
	case p.scanline == preRenderLine:
		p.preRenderDot()
	case p.scanline < visibleScanlines:
		p.visibleDot()
	}

	p.dot++
	if p.dot > 340 {
		p.dot = 0
		p.scanline++
		if p.scanline > preRenderLine {
			p.scanline = 0
			p.frameOdd = !p.frameOdd
			p.FrameComplete = true
		}
	}

	// VBlank is raised as the PPU steps onto dot 1 of scanline 241.
	if p.scanline == vblankStartLine && p.dot == 1 {
		p.status |= statusVBlank
		if p.ctrl&ctrlNMIEnable != 0 && p.NMI != nil {
			p.NMI.TriggerNMI()
		}
	}
}

func (p *PPU) preRenderDot() {
	if p.dot == 1 {
		p.status &^= statusVBlank | statusSprite0Hit | statusSpriteOverflow
		// Lower the NMI line with the VBlank flag so the next VBlank
		// start is a fresh edge for an edge-triggered receiver.
		if c, ok := p.NMI.(interface{ ClearNMI() }); ok {
			c.ClearNMI()
		}
	}
	if p.renderingEnabled() {
		p.backgroundFetch()
		if p.dot == 257 {
			p.copyHorizontalScroll()
		}
		if p.dot >= 280 && p.dot <= 304 {
			p.copyVerticalScroll()
		}
		// Skip the idle cycle on odd frames, matching the real PPU's
		// shortened pre-render line.
		if p.dot == 339 && p.frameOdd {
			p.dot++
		}
	}
}

func (p *PPU) visibleDot() {
	if p.dot >= 1 && p.dot <= 256 {
		if p.renderingEnabled() {
			p.backgroundFetch()
			p.renderPixel()
		}
	}
	if p.dot == 257 {
		if p.renderingEnabled() {
			p.copyHorizontalScroll()
		}
		p.evaluateSprites()
	}
}

// backgroundFetch runs the 8-dot nametable/attribute/pattern fetch
// cycle and shifts the background registers every dot, and increments
// the coarse-X/Y loopy components at the tile boundaries.
func (p *PPU) backgroundFetch() {
	if p.dot == 0 {
		return
	}
	if p.dot <= 256 || (p.dot >= 321 && p.dot <= 336) {
		p.shiftBackgroundRegisters()
		switch p.dot % 8 {
		case 1:
			p.reloadShiftRegisters()
			p.ntByte = p.Bus.Read(0x2000 | (p.v & 0x0FFF))
		case 3:
			p.atByte = p.fetchAttributeByte()
		case 5:
			p.ptLo = p.fetchPatternByte(false)
		case 7:
			p.ptHi = p.fetchPatternByte(true)
		case 0:
			p.incrementCoarseX()
		}
	}
	if p.dot == 256 {
		p.incrementFineY()
	}
}

func (p *PPU) fetchAttributeByte() uint8 {
	addr := 0x23C0 | (p.v & 0x0C00) | ((p.v >> 4) & 0x38) | ((p.v >> 2) & 0x07)
	return p.Bus.Read(addr)
}

func (p *PPU) fetchPatternByte(high bool) uint8 {
	fineY := (p.v >> 12) & 0x07
	table := uint16(0)
	if p.ctrl&ctrlBGPattern != 0 {
		table = 0x1000
	}
	addr := table + uint16(p.ntByte)*16 + fineY
	if high {
		addr += 8
	}
	return p.Bus.Read(addr)
}

func (p *PPU) reloadShiftRegisters() {
	p.bgPatternLo = (p.bgPatternLo &^ 0x00FF) | uint16(p.ptLo)
	p.bgPatternHi = (p.bgPatternHi &^ 0x00FF) | uint16(p.ptHi)

	attrBit := uint16(0)
	if p.v&0x02 != 0 {
		attrBit |= 0x01
	}
	if p.v&0x40 != 0 {
		attrBit |= 0x02
	}
	shift := (p.atByte >> (attrBit * 2)) & 0x03
	lo := uint16(0)
	hi := uint16(0)
	if shift&0x01 != 0 {
		lo = 0x00FF
	}
	if shift&0x02 != 0 {
		hi = 0x00FF
	}
	p.bgAttribLo = (p.bgAttribLo &^ 0x00FF) | lo
	p.bgAttribHi = (p.bgAttribHi &^ 0x00FF) | hi
}

func (p *PPU) shiftBackgroundRegisters() {
	p.bgPatternLo <<= 1
	p.bgPatternHi <<= 1
	p.bgAttribLo <<= 1
	p.bgAttribHi <<= 1
}

func (p *PPU) incrementCoarseX() {
	if p.v&0x001F == 31 {
		p.v &^= 0x001F
		p.v ^= 0x0400
	} else {
		p.v++
	}
}

func (p *PPU) incrementFineY() {
	if p.v&0x7000 != 0x7000 {
		p.v += 0x1000
	} else {
		p.v &^= 0x7000
		y := (p.v & 0x03E0) >> 5
		switch y {
		case 29:
			y = 0
			p.v ^= 0x0800
		case 31:
			y = 0
		default:
			y++
		}
		p.v = (p.v &^ 0x03E0) | (y << 5)
	}
}

func (p *PPU) copyHorizontalScroll() {
	p.v = (p.v &^ 0x041F) | (p.t & 0x041F)
}

func (p *PPU) copyVerticalScroll() {
	p.v = (p.v &^ 0x7BE0) | (p.t & 0x7BE0)
}

// renderPixel composites the background shift-register output with
// the pre-evaluated sprite list for the current scanline and writes
// one pixel of OutputBuffer.
func (p *PPU) renderPixel() {
	x := p.dot - 1
	y := p.scanline

	bgPixel, bgPalette := p.backgroundPixelAt()
	if p.mask&maskShowBG == 0 || (x < 8 && p.mask&maskShowBGLeft == 0) {
		bgPixel = 0
	}

	sprPixel, sprPalette, sprPriority, sprIsZero := p.spritePixelAt(x)
	if p.mask&maskShowSprites == 0 || (x < 8 && p.mask&maskShowSprLeft == 0) {
		sprPixel = 0
	}

	if sprIsZero && bgPixel != 0 && sprPixel != 0 && x != 255 {
		p.status |= statusSprite0Hit
	}

	var colorIndex uint16
	switch {
	case bgPixel == 0 && sprPixel == 0:
		colorIndex = 0x3F00
	case bgPixel == 0:
		colorIndex = 0x3F10 + uint16(sprPalette)*4 + uint16(sprPixel)
	case sprPixel == 0:
		colorIndex = 0x3F00 + uint16(bgPalette)*4 + uint16(bgPixel)
	case sprPriority:
		colorIndex = 0x3F00 + uint16(bgPalette)*4 + uint16(bgPixel)
	default:
		colorIndex = 0x3F10 + uint16(sprPalette)*4 + uint16(sprPixel)
	}

	paletteEntry := p.Bus.Read(colorIndex) & 0x3F
	if y < ScreenHeight && x < ScreenWidth {
		p.OutputBuffer[y*ScreenWidth+x] = nesPalette[paletteEntry]
	}
}

func (p *PPU) backgroundPixelAt() (pixel uint8, palette uint8) {
	mux := uint16(0x8000) >> p.fineX
	lo := uint8(0)
	hi := uint8(0)
	if p.bgPatternLo&mux != 0 {
		lo = 1
	}
	if p.bgPatternHi&mux != 0 {
		hi = 1
	}
	pixel = hi<<1 | lo

	alo := uint8(0)
	ahi := uint8(0)
	if p.bgAttribLo&mux != 0 {
		alo = 1
	}
	if p.bgAttribHi&mux != 0 {
		ahi = 1
	}
	palette = ahi<<1 | alo
	return pixel, palette
}

func (p *PPU) spritePixelAt(x int) (pixel uint8, palette uint8, behindBG bool, isZero bool) {
	for i := 0; i < p.spriteCount; i++ {
		offset := x - int(p.spriteX[i])
		if offset < 0 || offset > 7 {
			continue
		}
		attr := p.spriteAttrib[i]
		if attr&0x40 != 0 {
			offset = 7 - offset
		}
		lo := (p.spritePatternLo[i] >> (7 - uint(offset))) & 1
		hi := (p.spritePatternHi[i] >> (7 - uint(offset))) & 1
		v := hi<<1 | lo
		if v == 0 {
			continue
		}
		return v, attr & 0x03, attr&0x20 != 0, p.spriteIsZero[i]
	}
	return 0, 0, false, false
}

// evaluateSprites selects up to 8 sprites visible on the NEXT
// scanline (p.scanline+1) and sets the sprite-overflow flag when a 9th
// in-range sprite is found. The hardware's misaligned OAM scan after
// the eighth sprite, with its spurious overflow flags and misses, is
// not reproduced.
func (p *PPU) evaluateSprites() {
	spriteHeight := 8
	if p.ctrl&ctrlSpriteSize != 0 {
		spriteHeight = 16
	}
	targetLine := p.scanline + 1

	p.spriteCount = 0
	n := 0
	overflowChecks := 0
	for n < 64 {
		y := int(p.OAM[n*4+0])
		row := targetLine - y
		if row >= 0 && row < spriteHeight {
			if p.spriteCount < 8 {
				base := n * 4
				p.loadSprite(p.spriteCount, base, n == 0, row, spriteHeight)
				p.spriteCount++
			} else {
				p.status |= statusSpriteOverflow
				break
			}
		}
		n++
		overflowChecks++
		if overflowChecks > 64 {
			break
		}
	}
}

func (p *PPU) loadSprite(slot int, oamBase int, isZero bool, row int, spriteHeight int) {
	attr := p.OAM[oamBase+2]
	x := p.OAM[oamBase+3]
	tile := p.OAM[oamBase+1]

	if attr&0x80 != 0 {
		row = spriteHeight - 1 - row
	}

	var addr uint16
	if spriteHeight == 16 {
		table := uint16(tile&0x01) * 0x1000
		tileIndex := uint16(tile &^ 0x01)
		if row >= 8 {
			tileIndex++
			row -= 8
		}
		addr = table + tileIndex*16 + uint16(row)
	} else {
		table := uint16(0)
		if p.ctrl&ctrlSpritePattern != 0 {
			table = 0x1000
		}
		addr = table + uint16(tile)*16 + uint16(row)
	}

	p.spritePatternLo[slot] = p.Bus.Read(addr)
	p.spritePatternHi[slot] = p.Bus.Read(addr + 8)
	p.spriteAttrib[slot] = attr
	p.spriteX[slot] = x
	p.spriteIsZero[slot] = isZero
}
