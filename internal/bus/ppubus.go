package bus

import (
	"bytes"
	"encoding/gob"

	"nescore/internal/cart"
)

// PPUBus is the PPU's own address space: pattern tables ($0000-$1FFF,
// routed to the mapper's CHR window), two physical 1 KiB nametables
// mirrored across the four logical $2000/$2400/$2800/$2C00 slots
// per the cartridge's Mirroring mode, and 32 bytes of palette RAM
// mirrored through $3F00-$3FFF.
type PPUBus struct {
	Mapper     cart.Mapper
	Nametables [0x800]uint8 // two physical 1 KiB nametables
	Palette    [0x20]uint8
}

func NewPPUBus(mapper cart.Mapper) *PPUBus {
	return &PPUBus{Mapper: mapper}
}

func (p *PPUBus) Read(addr uint16) uint8 {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		if p.Mapper != nil {
			return p.Mapper.PPURead(addr)
		}
		return 0
	case addr < 0x3F00:
		return p.Nametables[p.nametableIndex(addr)]
	default:
		return p.Palette[paletteIndex(addr)]
	}
}

func (p *PPUBus) Write(addr uint16, value uint8) {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		if p.Mapper != nil {
			p.Mapper.PPUWrite(addr, value)
		}
	case addr < 0x3F00:
		p.Nametables[p.nametableIndex(addr)] = value
	default:
		p.Palette[paletteIndex(addr)] = value
	}
}

// nametableIndex maps a $2000-$2FFF address (wrapped into the
// four-slot $2000-$3EFF window) onto one of the two physical 1 KiB
// nametable banks, per the cartridge's mirroring mode.
func (p *PPUBus) nametableIndex(addr uint16) uint16 {
	offset := (addr - 0x2000) % 0x1000 // fold $3000-$3EFF mirror
	table := offset / 0x400            // logical table 0-3
	inTable := offset % 0x400

	mirror := cart.MirrorFourScreen
	if p.Mapper != nil {
		mirror = p.Mapper.Mirroring()
	}

	var bank uint16
	switch mirror {
	case cart.MirrorVertical:
		bank = table % 2
	case cart.MirrorHorizontal:
		bank = table / 2
	case cart.MirrorSingleLower:
		bank = 0
	case cart.MirrorSingleUpper:
		bank = 1
	default: // four-screen: not fully supported (no extra VRAM), fold to vertical
		bank = table % 2
	}

	return bank*0x400 + inTable
}

// paletteIndex folds the $3F00-$3FFF mirror and applies the hardware
// aliasing of the background-color entries in each sprite palette
// ($3F10/$3F14/$3F18/$3F1C read through to $3F00/$3F04/$3F08/$3F0C).
func paletteIndex(addr uint16) uint16 {
	idx := (addr - 0x3F00) % 0x20
	if idx >= 0x10 && idx%4 == 0 {
		idx -= 0x10
	}
	return idx
}

type ppuBusSnapshot struct {
	Nametables [0x800]uint8
	Palette    [0x20]uint8
}

// Snapshot returns a gob-encoded copy of the nametable and palette
// RAM; CHR banking lives on the mapper's own snapshot, not here.
func (p *PPUBus) Snapshot() []byte {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(ppuBusSnapshot{Nametables: p.Nametables, Palette: p.Palette}); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func (p *PPUBus) Restore(blob []byte) error {
	var s ppuBusSnapshot
	if err := gob.NewDecoder(bytes.NewReader(blob)).Decode(&s); err != nil {
		return err
	}
	p.Nametables, p.Palette = s.Nametables, s.Palette
	return nil
}
