package cart

import "nescore/internal/debug"

// nrom implements mapper 0: fixed PRG banks (16 KiB mirrored to fill
// $8000-$FFFF, or 32 KiB mapped directly), fixed 8 KiB CHR, and SRAM at
// $6000-$7FFF, mapped whether or not the board has battery backing. No
// bank switching.
type nrom struct {
	cart   *Cartridge
	logger *debug.Logger
}

func newNROM(c *Cartridge, logger *debug.Logger) *nrom {
	return &nrom{cart: c, logger: logger}
}

func (m *nrom) CPURead(addr uint16) uint8 {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		return m.cart.SRAM[addr-0x6000]
	case addr >= 0x8000:
		prgLen := len(m.cart.PRG)
		if prgLen == 0 {
			return 0
		}
		off := int(addr-0x8000) % prgLen
		return m.cart.PRG[off]
	default:
		return 0
	}
}

func (m *nrom) CPUWrite(addr uint16, value uint8, cpuCycle uint64) {
	if addr >= 0x6000 && addr < 0x8000 {
		m.cart.SRAM[addr-0x6000] = value
	}
	// Writes into $8000-$FFFF are no-ops: NROM carries no registers.
}

func (m *nrom) PPURead(addr uint16) uint8 {
	if int(addr) < len(m.cart.CHR) {
		return m.cart.CHR[addr]
	}
	return 0
}

func (m *nrom) PPUWrite(addr uint16, value uint8) {
	if m.cart.CHRIsRAM && int(addr) < len(m.cart.CHR) {
		m.cart.CHR[addr] = value
	}
}

func (m *nrom) Mirroring() Mirroring {
	return m.cart.Mirror
}

// nromState is the gob-encoded snapshot; NROM has no mutable registers
// of its own, so only SRAM needs to round-trip.
type nromState struct {
	SRAM [0x2000]uint8
}

func (m *nrom) Snapshot() []byte {
	return encodeGob(nromState{SRAM: m.cart.SRAM})
}

func (m *nrom) Restore(blob []byte) error {
	var s nromState
	if err := decodeGob(blob, &s); err != nil {
		return err
	}
	m.cart.SRAM = s.SRAM
	return nil
}
