package ppu

import "testing"

type fakeBus struct {
	mem [0x4000]uint8
}

func (b *fakeBus) Read(addr uint16) uint8  { return b.mem[addr&0x3FFF] }
func (b *fakeBus) Write(addr uint16, v uint8) { b.mem[addr&0x3FFF] = v }

type fakeNMI struct {
	count int
}

func (n *fakeNMI) TriggerNMI() { n.count++ }

func newTestPPU() (*PPU, *fakeBus, *fakeNMI) {
	bus := &fakeBus{}
	nmi := &fakeNMI{}
	return New(bus, nmi), bus, nmi
}

func runDots(p *PPU, n int) {
	for i := 0; i < n; i++ {
		p.Tick()
	}
}

func TestVBlankFlagSetsAtScanline241Dot1(t *testing.T) {
	p, _, nmi := newTestPPU()
	p.Write8(0x2000, ctrlNMIEnable)

	// From the pre-render line (261) to scanline 241 dot 1:
	// (340-0+1) dots to finish 261, then 241 full scanlines (0..240) of 341 dots,
	// then 1 more dot to reach dot 1 of scanline 241.
	dotsToVBlank := (341 - p.dot) + 241*341 + 1
	runDots(p, dotsToVBlank)

	if p.status&statusVBlank == 0 {
		t.Fatal("expected VBlank flag set at scanline 241 dot 1")
	}
	if nmi.count != 1 {
		t.Fatalf("expected NMI triggered once, got %d", nmi.count)
	}
}

func TestReadingPPUSTATUSClearsVBlankAndWriteToggle(t *testing.T) {
	p, _, _ := newTestPPU()
	p.status |= statusVBlank
	p.w = true

	v := p.Read8(0x2002)
	if v&statusVBlank == 0 {
		t.Fatal("expected read to return VBlank flag set")
	}
	if p.status&statusVBlank != 0 {
		t.Error("expected VBlank flag cleared after PPUSTATUS read")
	}
	if p.w {
		t.Error("expected write toggle cleared after PPUSTATUS read")
	}
}

func TestPPUSCROLLThenPPUADDRSequencing(t *testing.T) {
	p, _, _ := newTestPPU()

	p.Write8(0x2005, 0x7D) // coarse X=15, fine X=5
	p.Write8(0x2005, 0x5E) // coarse Y=11, fine Y=6

	p.Write8(0x2006, 0x3D)
	p.Write8(0x2006, 0xF0)

	if p.v != 0x3DF0 {
		t.Errorf("expected v=3DF0 after PPUADDR sequence, got %04X", p.v)
	}
}

func TestPPUDATAReadIsBufferedExceptPalette(t *testing.T) {
	p, bus, _ := newTestPPU()
	bus.mem[0x2000] = 0xAB
	bus.mem[0x2001] = 0xCD

	p.v = 0x2000
	first := p.Read8(0x2007)
	if first != 0 {
		t.Errorf("expected first PPUDATA read to return stale buffer 0, got %02X", first)
	}
	second := p.Read8(0x2007)
	if second != 0xAB {
		t.Errorf("expected second PPUDATA read to return buffered 0xAB, got %02X", second)
	}

	bus.mem[0x3F00] = 0x21
	p.v = 0x3F00
	if palette := p.Read8(0x2007); palette != 0x21 {
		t.Errorf("expected palette PPUDATA read to return 0x21 immediately, got %02X", palette)
	}
}

func TestPPUDATAIncrementsBy32WhenCtrlBitSet(t *testing.T) {
	p, _, _ := newTestPPU()
	p.ctrl = ctrlIncrement32
	p.v = 0x2000
	p.Write8(0x2007, 0x11)
	if p.v != 0x2020 {
		t.Errorf("expected v to advance by 32, got %04X", p.v)
	}
}

func TestOAMDATAWriteAdvancesOAMAddr(t *testing.T) {
	p, _, _ := newTestPPU()
	p.Write8(0x2003, 0x05)
	p.Write8(0x2004, 0x77)
	if p.OAM[5] != 0x77 {
		t.Fatalf("expected OAM[5]=0x77, got %02X", p.OAM[5])
	}
	if p.oamAddr != 6 {
		t.Errorf("expected oamAddr to advance to 6, got %d", p.oamAddr)
	}
}

func TestSpriteEvaluationSelectsFirstEightAndSetsOverflow(t *testing.T) {
	p, _, _ := newTestPPU()
	p.mask = maskShowSprites
	// 9 sprites all on row 10.
	for i := 0; i < 9; i++ {
		base := i * 4
		p.OAM[base+0] = 10 // Y
		p.OAM[base+1] = uint8(i)
		p.OAM[base+2] = 0
		p.OAM[base+3] = uint8(i * 8)
	}
	p.scanline = 10 // target line is scanline+1 = 11
	p.dot = 257
	p.evaluateSprites()

	if p.spriteCount != 8 {
		t.Errorf("expected 8 sprites selected, got %d", p.spriteCount)
	}
	if p.status&statusSpriteOverflow == 0 {
		t.Error("expected sprite overflow flag set with a 9th matching sprite")
	}
}

func TestFrameCompletesAfterPreRenderLineWraps(t *testing.T) {
	p, _, _ := newTestPPU()
	// New() starts on the pre-render line (261) at dot 0; finishing
	// its remaining dots wraps the scanline counter back to 0 and
	// marks the frame complete.
	runDots(p, DotsPerScanline-p.dot)
	if !p.FrameComplete {
		t.Error("expected FrameComplete after the pre-render line wraps to scanline 0")
	}
	if p.scanline != 0 || p.dot != 0 {
		t.Errorf("expected wrap to scanline 0 dot 0, got scanline=%d dot=%d", p.scanline, p.dot)
	}
}
