package dma

import "testing"

type fakeMem struct {
	data [0x10000]uint8
}

func (m *fakeMem) Read(addr uint16) uint8 { return m.data[addr] }

type fakeOAM struct {
	bytes [256]uint8
}

func (o *fakeOAM) WriteOAMByte(index uint8, value uint8) { o.bytes[index] = value }

func runToCompletion(c *Controller) uint64 {
	var total uint64
	for c.Active() {
		total += c.Tick()
	}
	return total
}

func TestDMATakes513CyclesOnEvenStart(t *testing.T) {
	mem := &fakeMem{}
	oam := &fakeOAM{}
	c := New(mem, oam)

	c.TriggerOAMDMA(0x02, 1000) // even cycle
	total := runToCompletion(c)

	if total != 513 {
		t.Errorf("expected 513 cycles on even-cycle start, got %d", total)
	}
}

func TestDMATakes514CyclesOnOddStart(t *testing.T) {
	mem := &fakeMem{}
	oam := &fakeOAM{}
	c := New(mem, oam)

	c.TriggerOAMDMA(0x02, 1001) // odd cycle
	total := runToCompletion(c)

	if total != 514 {
		t.Errorf("expected 514 cycles on odd-cycle start, got %d", total)
	}
}

func TestDMACopiesFullPageIntoOAM(t *testing.T) {
	mem := &fakeMem{}
	for i := 0; i < 256; i++ {
		mem.data[0x0200+i] = uint8(i)
	}
	oam := &fakeOAM{}
	c := New(mem, oam)

	c.TriggerOAMDMA(0x02, 1000)
	runToCompletion(c)

	for i := 0; i < 256; i++ {
		if oam.bytes[i] != uint8(i) {
			t.Fatalf("OAM[%d] = %02X, want %02X", i, oam.bytes[i], uint8(i))
		}
	}
}

func TestInactiveControllerTicksZero(t *testing.T) {
	c := New(&fakeMem{}, &fakeOAM{})
	if got := c.Tick(); got != 0 {
		t.Errorf("expected idle controller to tick 0, got %d", got)
	}
}

type fakeStaller struct {
	total uint64
}

func (f *fakeStaller) Stall(cycles uint64) { f.total += cycles }

func TestTriggerStallsCPUForMatchingCycleCount(t *testing.T) {
	c := New(&fakeMem{}, &fakeOAM{})
	staller := &fakeStaller{}
	c.SetStaller(staller)

	c.TriggerOAMDMA(0x02, 1001) // odd cycle
	if staller.total != 514 {
		t.Errorf("expected CPU stalled for 514 cycles, got %d", staller.total)
	}

	total := runToCompletion(c)
	if total != staller.total {
		t.Errorf("controller's own tick total %d does not match CPU stall %d", total, staller.total)
	}
}
