// Package cart implements the cartridge descriptor and the Mapper
// abstraction (NROM, MMC1) through which the CPU and PPU buses reach
// PRG-ROM, CHR-ROM/RAM and battery-backed save RAM.
package cart

import "nescore/internal/debug"

// Mirroring selects how the PPU bus aliases its two physical nametables
// across the four logical $2000/$2400/$2800/$2C00 slots.
type Mirroring int

const (
	MirrorHorizontal Mirroring = iota
	MirrorVertical
	MirrorSingleLower
	MirrorSingleUpper
	MirrorFourScreen
)

// Cartridge holds the raw PRG/CHR banks and battery RAM decoded from an
// iNES image, independent of how a Mapper maps them into address space.
type Cartridge struct {
	PRG       []uint8 // PRG-ROM, 16 KiB units
	CHR       []uint8 // CHR-ROM; empty when the board uses CHR-RAM
	CHRIsRAM  bool
	SRAM      [0x2000]uint8 // battery-backed PRG-RAM at $6000-$7FFF
	HasBattery bool
	MapperID  uint8
	Mirror    Mirroring
}

// Mapper is the per-board address translation and bank-switching logic.
// The bus calls these on every access in $4020-$FFFF (CPU side) and
// $0000-$1FFF / nametable fetches (PPU side); none of them can fail —
// out-of-range or unmapped addresses return open-bus zero, per the
// ambient error-handling policy that steady-state ticks never error.
type Mapper interface {
	// CPURead/CPUWrite service the $6000-$FFFF window: SRAM, PRG-ROM,
	// and any mapper control registers. cpuCycle is the CPU's own cycle
	// counter at the time of the write; MMC1 needs it to detect and
	// ignore the second of two writes issued on consecutive cycles.
	CPURead(addr uint16) uint8
	CPUWrite(addr uint16, value uint8, cpuCycle uint64)

	// PPURead/PPUWrite service the $0000-$1FFF CHR window.
	PPURead(addr uint16) uint8
	PPUWrite(addr uint16, value uint8)

	// Mirroring reports the current nametable mirroring mode; mappers
	// that can change it at runtime (MMC1) update this via CPUWrite.
	Mirroring() Mirroring

	// Snapshot/Restore support save states; each mapper encodes its own
	// register file into a small opaque blob via encoding/gob.
	Snapshot() []byte
	Restore(blob []byte) error
}

// New constructs the Mapper implementation for the cartridge's MapperID.
// Unsupported mapper numbers are rejected by the rom loader before a
// Cartridge ever reaches here, so this only ever sees 0 or 1.
func New(c *Cartridge, logger *debug.Logger) Mapper {
	switch c.MapperID {
	case 1:
		return newMMC1(c, logger)
	default:
		return newNROM(c, logger)
	}
}
