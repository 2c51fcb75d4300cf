package cart

import "nescore/internal/debug"

// mmc1 implements mapper 1: a 5-bit serial shift register loaded one bit
// per CPU write (LSB first), committed to one of four internal
// registers on the 5th write. Writing with bit 7 set resets the shift
// register and forces control |= 0x0C (PRG mode 3, fixed-last-bank)
// regardless of shift progress. Two writes issued on consecutive CPU
// cycles are hardware-known to corrupt the shift register, so the
// second write of such a pair is ignored.
type mmc1 struct {
	cart   *Cartridge
	logger *debug.Logger

	shift    uint8
	shiftCnt uint8

	control uint8 // bit0-1 mirroring, bit2-3 PRG mode, bit4 CHR mode
	chrBank0 uint8
	chrBank1 uint8
	prgBank  uint8

	lastWriteCycle uint64
	haveLastWrite  bool
}

func newMMC1(c *Cartridge, logger *debug.Logger) *mmc1 {
	return &mmc1{
		cart:    c,
		control: 0x0C, // power-on: PRG mode 3 (fix last bank at $C000)
	}
}

func (m *mmc1) CPURead(addr uint16) uint8 {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		return m.cart.SRAM[addr-0x6000]
	case addr >= 0x8000:
		return m.cart.PRG[m.prgOffset(addr)]
	default:
		return 0
	}
}

func (m *mmc1) prgOffset(addr uint16) int {
	bankCount := len(m.cart.PRG) / 0x4000
	if bankCount == 0 {
		return 0
	}
	prgMode := (m.control >> 2) & 0x03
	bank := int(m.prgBank & 0x0F)

	var sel int
	switch {
	case prgMode == 0 || prgMode == 1:
		// 32 KiB mode: ignore low bit of bank select.
		sel = bank &^ 1
		off := int(addr - 0x8000)
		return ((sel % bankCount) * 0x4000) + off
	case prgMode == 2:
		// fix first bank at $8000, switch 16 KiB at $C000
		if addr < 0xC000 {
			return int(addr - 0x8000)
		}
		sel = bank % bankCount
		return (sel * 0x4000) + int(addr-0xC000)
	default: // prgMode == 3
		// switch 16 KiB at $8000, fix last bank at $C000
		if addr < 0xC000 {
			sel = bank % bankCount
			return (sel * 0x4000) + int(addr-0x8000)
		}
		return ((bankCount - 1) * 0x4000) + int(addr-0xC000)
	}
}

func (m *mmc1) chrOffset(addr uint16) int {
	chrLen := len(m.cart.CHR)
	if chrLen == 0 {
		return 0
	}
	chrMode := (m.control >> 4) & 0x01
	if chrMode == 0 {
		// 8 KiB mode: ignore low bit of bank 0 select.
		bank := int(m.chrBank0 &^ 1)
		bankCount := chrLen / 0x2000
		if bankCount == 0 {
			bankCount = 1
		}
		return ((bank % bankCount) * 0x2000) + int(addr)
	}
	// 4 KiB independent banks.
	bankCount := chrLen / 0x1000
	if bankCount == 0 {
		bankCount = 1
	}
	if addr < 0x1000 {
		bank := int(m.chrBank0) % bankCount
		return (bank * 0x1000) + int(addr)
	}
	bank := int(m.chrBank1) % bankCount
	return (bank * 0x1000) + int(addr-0x1000)
}

func (m *mmc1) CPUWrite(addr uint16, value uint8, cpuCycle uint64) {
	if addr >= 0x6000 && addr < 0x8000 {
		m.cart.SRAM[addr-0x6000] = value
		return
	}
	if addr < 0x8000 {
		return
	}

	if m.haveLastWrite && cpuCycle == m.lastWriteCycle+1 {
		m.lastWriteCycle = cpuCycle
		return
	}
	m.lastWriteCycle = cpuCycle
	m.haveLastWrite = true

	if value&0x80 != 0 {
		m.shift = 0
		m.shiftCnt = 0
		m.control |= 0x0C
		return
	}

	m.shift |= (value & 0x01) << m.shiftCnt
	m.shiftCnt++

	if m.shiftCnt < 5 {
		return
	}

	result := m.shift
	m.shift = 0
	m.shiftCnt = 0

	switch {
	case addr < 0xA000:
		m.control = result
	case addr < 0xC000:
		m.chrBank0 = result
	case addr < 0xE000:
		m.chrBank1 = result
	default:
		m.prgBank = result & 0x0F
	}

	if m.logger != nil && m.logger.IsComponentEnabled(debug.ComponentMapper) {
		m.logger.LogMapperf(debug.LogLevelDebug, "mmc1 register %04X <- %02X", addr, result)
	}
}

func (m *mmc1) PPURead(addr uint16) uint8 {
	if m.cart.CHRIsRAM {
		if int(addr) < len(m.cart.CHR) {
			return m.cart.CHR[addr]
		}
		return 0
	}
	return m.cart.CHR[m.chrOffset(addr)]
}

func (m *mmc1) PPUWrite(addr uint16, value uint8) {
	if m.cart.CHRIsRAM {
		off := m.chrOffset(addr)
		if off < len(m.cart.CHR) {
			m.cart.CHR[off] = value
		}
	}
}

func (m *mmc1) Mirroring() Mirroring {
	switch m.control & 0x03 {
	case 0:
		return MirrorSingleLower
	case 1:
		return MirrorSingleUpper
	case 2:
		return MirrorVertical
	default:
		return MirrorHorizontal
	}
}

type mmc1State struct {
	SRAM     [0x2000]uint8
	Shift    uint8
	ShiftCnt uint8
	Control  uint8
	ChrBank0 uint8
	ChrBank1 uint8
	PrgBank  uint8
}

func (m *mmc1) Snapshot() []byte {
	return encodeGob(mmc1State{
		SRAM:     m.cart.SRAM,
		Shift:    m.shift,
		ShiftCnt: m.shiftCnt,
		Control:  m.control,
		ChrBank0: m.chrBank0,
		ChrBank1: m.chrBank1,
		PrgBank:  m.prgBank,
	})
}

func (m *mmc1) Restore(blob []byte) error {
	var s mmc1State
	if err := decodeGob(blob, &s); err != nil {
		return err
	}
	m.cart.SRAM = s.SRAM
	m.shift = s.Shift
	m.shiftCnt = s.ShiftCnt
	m.control = s.Control
	m.chrBank0 = s.ChrBank0
	m.chrBank1 = s.ChrBank1
	m.prgBank = s.PrgBank
	m.haveLastWrite = false
	return nil
}
