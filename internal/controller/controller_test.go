package controller

import "testing"

func TestStrobeHighContinuouslyReloadsA(t *testing.T) {
	p := NewPad()
	p.Write8(0x4016, 0x01) // strobe high
	p.SetButton(ButtonA, true)

	if got := p.Read8(0x4016); got&0x01 != 1 {
		t.Errorf("expected A bit set while strobe high, got %02X", got)
	}
	if got := p.Read8(0x4016); got&0x01 != 1 {
		t.Errorf("expected repeated reads to keep returning A while strobed, got %02X", got)
	}
}

func TestSequentialReadShiftsOutEachButton(t *testing.T) {
	p := NewPad()
	p.SetButton(ButtonA, true)
	p.SetButton(ButtonSelect, true)

	p.Write8(0x4016, 0x01)
	p.Write8(0x4016, 0x00) // latch on falling edge

	want := []uint8{1, 0, 1, 0, 0, 0, 0, 0} // A, B, Select, Start, Up, Down, Left, Right
	for i, w := range want {
		got := p.Read8(0x4016) & 0x01
		if got != w {
			t.Errorf("bit %d: got %d, want %d", i, got, w)
		}
	}
}

func TestReadsAfterEighthReturnOnes(t *testing.T) {
	p := NewPad()
	p.Write8(0x4016, 0x01)
	p.Write8(0x4016, 0x00)

	for i := 0; i < 8; i++ {
		p.Read8(0x4016)
	}
	for i := 0; i < 3; i++ {
		if got := p.Read8(0x4016) & 0x01; got != 1 {
			t.Errorf("expected open-bus 1s past 8th read, got %d", got)
		}
	}
}

func TestUpperBitsAreOpenBus(t *testing.T) {
	p := NewPad()
	if got := p.Read8(0x4016); got&0xC0 != 0x40 {
		t.Errorf("expected bit6 set (0x40) in every read, got %02X", got)
	}
}
