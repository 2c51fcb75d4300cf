package apu

import "testing"

type fakeBus struct {
	mem [0x10000]uint8
}

func (b *fakeBus) Read(addr uint16) uint8 { return b.mem[addr] }

type fakeIRQ struct {
	asserted bool
}

func (f *fakeIRQ) SetIRQLine(asserted bool) { f.asserted = asserted }

type fakeStaller struct {
	total uint64
}

func (f *fakeStaller) Stall(cycles uint64) { f.total += cycles }

func tickN(a *APU, n int) {
	for i := 0; i < n; i++ {
		a.Tick()
	}
}

func TestPulseLengthCounterLoadsFromTable(t *testing.T) {
	a := New(&fakeBus{}, &fakeIRQ{})
	a.writeChannelEnable(0x01)
	a.Write8(0x4000, 0x00)
	a.Write8(0x4002, 0xFF)
	a.Write8(0x4003, 0x08) // length table index 1 -> 254

	if a.pulse1.lengthCounter != 254 {
		t.Errorf("expected length counter 254, got %d", a.pulse1.lengthCounter)
	}
}

func TestPulseLengthCounterDecaysOnHalfFrame(t *testing.T) {
	a := New(&fakeBus{}, &fakeIRQ{})
	a.writeChannelEnable(0x01)
	a.Write8(0x4000, 0x00) // halt=false
	a.Write8(0x4002, 0x00)
	a.Write8(0x4003, 0x08) // length=254

	a.clockHalfFrame()
	if a.pulse1.lengthCounter != 253 {
		t.Errorf("expected length counter to decay to 253, got %d", a.pulse1.lengthCounter)
	}
}

func TestLengthCounterHaltSuppressesDecay(t *testing.T) {
	a := New(&fakeBus{}, &fakeIRQ{})
	a.writeChannelEnable(0x01)
	a.Write8(0x4000, 0x20) // halt flag set
	a.Write8(0x4002, 0x00)
	a.Write8(0x4003, 0x08)

	a.clockHalfFrame()
	if a.pulse1.lengthCounter != 254 {
		t.Errorf("expected length counter to stay at 254 when halted, got %d", a.pulse1.lengthCounter)
	}
}

func TestFrameSequencer4StepFiresIRQAtCycle14915(t *testing.T) {
	a := New(&fakeBus{}, &fakeIRQ{})
	tickN(a, 14915)
	if !a.frameIRQFlag {
		t.Error("expected frame IRQ flag set after 14915 cycles in 4-step mode")
	}
}

func TestWritingFrameCounterBit6DisablesIRQ(t *testing.T) {
	a := New(&fakeBus{}, &fakeIRQ{})
	a.Write8(0x4017, 0x40)
	tickN(a, 14915)
	if a.frameIRQFlag {
		t.Error("expected frame IRQ suppressed when bit 6 of $4017 is set")
	}
}

func TestReadingStatusClearsFrameIRQFlag(t *testing.T) {
	a := New(&fakeBus{}, &fakeIRQ{})
	a.frameIRQFlag = true
	status := a.Read8(0x4015)
	if status&0x40 == 0 {
		t.Fatal("expected status byte to report frame IRQ flag")
	}
	if a.frameIRQFlag {
		t.Error("expected frame IRQ flag cleared after $4015 read")
	}
}

func TestTrianglePlaysOnlyWithNonZeroLengthAndLinearCounters(t *testing.T) {
	a := New(&fakeBus{}, &fakeIRQ{})
	a.writeChannelEnable(0x04)
	a.Write8(0x4008, 0x7F) // linear counter load, no halt
	a.Write8(0x400A, 0x00)
	a.Write8(0x400B, 0x08) // length loaded, timer high=0

	a.clockQuarterFrame() // reload linear counter
	if a.triangle.lengthCounter == 0 {
		t.Fatal("expected non-zero length counter after $400B write")
	}
	if a.triangleOutput(&a.triangle) == 0 {
		t.Fatal("expected triangle output with both counters non-zero")
	}
	a.triangle.linearCounter = 0
	if a.triangleOutput(&a.triangle) != 0 {
		t.Fatal("expected triangle silent once the linear counter is zero")
	}
}

func TestNoiseShiftRegisterNeverGetsStuckAtZero(t *testing.T) {
	a := New(&fakeBus{}, &fakeIRQ{})
	a.noise.shiftRegister = 1
	for i := 0; i < 1000; i++ {
		a.stepNoiseTimer(&a.noise)
	}
	if a.noise.shiftRegister == 0 {
		t.Error("expected noise LFSR to never reach 0")
	}
}

func TestDMCFetchesSampleByteAndStallsCPU(t *testing.T) {
	bus := &fakeBus{}
	bus.mem[0xC000] = 0xFF
	a := New(bus, &fakeIRQ{})
	staller := &fakeStaller{}
	a.SetStaller(staller)

	a.Write8(0x4012, 0x00) // sample address $C000
	a.Write8(0x4013, 0x00) // sample length 1
	a.writeChannelEnable(0x10)

	for i := 0; i < int(dmcRateTable[0])+1; i++ {
		a.stepDMCTimer(&a.dmc)
	}

	if staller.total == 0 {
		t.Error("expected DMC sample fetch to stall the CPU")
	}
}

func TestMixerSilentWhenAllChannelsZero(t *testing.T) {
	if v := mix(0, 0, 0, 0, 0); v != -1.0 {
		t.Errorf("expected mixer to output -1.0 (silence) for all-zero channels, got %f", v)
	}
}
