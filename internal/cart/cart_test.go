package cart

import "testing"

func newTestNROM(prgBanks int) (*Cartridge, Mapper) {
	c := &Cartridge{
		PRG:    make([]uint8, prgBanks*0x4000),
		CHR:    make([]uint8, 0x2000),
		MapperID: 0,
	}
	return c, New(c, nil)
}

func TestNROMMirrorsSingleBankAcrossWindow(t *testing.T) {
	c, m := newTestNROM(1)
	c.PRG[0] = 0xAA
	c.PRG[0x3FFF] = 0xBB

	if got := m.CPURead(0x8000); got != 0xAA {
		t.Errorf("8000: got %02X", got)
	}
	if got := m.CPURead(0xFFFF); got != 0xBB {
		t.Errorf("FFFF (should mirror 3FFF): got %02X", got)
	}
}

func TestNROMSRAMRoundtrip(t *testing.T) {
	c, m := newTestNROM(2)
	m.CPUWrite(0x6000, 0x42, 0)
	if got := m.CPURead(0x6000); got != 0x42 {
		t.Errorf("expected SRAM roundtrip, got %02X", got)
	}
	_ = c
}

func newTestMMC1(prgBanks, chrBanks int) (*Cartridge, Mapper) {
	c := &Cartridge{
		PRG:      make([]uint8, prgBanks*0x4000),
		CHR:      make([]uint8, chrBanks*0x2000),
		MapperID: 1,
	}
	return c, New(c, nil)
}

// writeMMC1 performs the 5 serial writes MMC1 needs to load a register,
// each on a distinct CPU cycle so none are dropped as back-to-back.
func writeMMC1(m Mapper, addr uint16, value uint8, startCycle uint64) {
	for i := 0; i < 5; i++ {
		bit := (value >> uint(i)) & 0x01
		m.CPUWrite(addr, bit, startCycle+uint64(i)*2)
	}
}

func TestMMC1FiveWriteShiftLoadsControl(t *testing.T) {
	_, m := newTestMMC1(4, 2)
	writeMMC1(m, 0x8000, 0x0F, 100) // control = 0b01111: horizontal mirroring bits set (bits0-1=11)

	if got := m.Mirroring(); got != MirrorHorizontal {
		t.Errorf("expected horizontal mirroring, got %v", got)
	}
}

func TestMMC1ResetBitForcesPRGMode3(t *testing.T) {
	_, m := newTestMMC1(4, 2)
	writeMMC1(m, 0x8000, 0x00, 100) // control = 0, PRG mode 0 (32KiB)
	m.CPUWrite(0x8000, 0x80, 200)   // reset bit

	mm := m.(*mmc1)
	if mm.control&0x0C != 0x0C {
		t.Errorf("expected reset write to force control bits 2-3 to 11, got %02X", mm.control)
	}
}

func TestMMC1IgnoresConsecutiveCycleWrite(t *testing.T) {
	_, m := newTestMMC1(4, 2)
	mm := m.(*mmc1)

	m.CPUWrite(0x8000, 1, 500)
	m.CPUWrite(0x8000, 1, 501) // consecutive cycle: must be dropped

	if mm.shiftCnt != 1 {
		t.Errorf("expected second consecutive-cycle write to be ignored, shiftCnt=%d", mm.shiftCnt)
	}
}

func TestMMC1PRGBankSelectMode3FixesLastBank(t *testing.T) {
	c, m := newTestMMC1(4, 2)
	c.PRG[3*0x4000] = 0x77 // last bank's first byte

	// control defaults to 0x0C (mode 3) at power-on; select PRG bank 0.
	writeMMC1(m, 0xE000, 0x00, 1000)

	if got := m.CPURead(0xC000); got != 0x77 {
		t.Errorf("expected last PRG bank fixed at C000, got %02X", got)
	}
}

func TestMMC1SnapshotRoundtrip(t *testing.T) {
	_, m := newTestMMC1(4, 2)
	writeMMC1(m, 0x8000, 0x0F, 100)
	writeMMC1(m, 0xE000, 0x05, 200)

	blob := m.Snapshot()

	_, m2 := newTestMMC1(4, 2)
	if err := m2.Restore(blob); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if m2.Mirroring() != m.Mirroring() {
		t.Errorf("mirroring mismatch after restore")
	}
}
