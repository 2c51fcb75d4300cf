// Package dma implements the OAM DMA controller triggered by a CPU
// write to $4014: it stalls the CPU and copies one 256-byte page from
// CPU memory into PPU OAM, two cycles per byte copied.
package dma

import "nescore/internal/debug"

// CPUMemory is the minimal read surface DMA needs from the CPU bus.
type CPUMemory interface {
	Read(addr uint16) uint8
}

// OAM is the minimal write surface DMA needs from the PPU's OAM.
type OAM interface {
	WriteOAMByte(index uint8, value uint8)
}

// Staller halts the CPU for the duration of the transfer; real hardware
// holds the CPU off the bus for the whole 513/514 cycles, not just the
// cycles the DMA controller itself is scheduled on.
type Staller interface {
	Stall(cycles uint64)
}

// Controller drives the OAM DMA transfer. It is attached to the
// scheduler as a Ticker alongside the CPU/PPU/APU; while a transfer is
// in flight it reports itself busy so the CPU stalls.
type Controller struct {
	mem     CPUMemory
	oam     OAM
	staller Staller

	active    bool
	page      uint8
	index     int  // next OAM index to write, 0-255
	alignWait bool // true for one extra cycle when DMA starts on an odd CPU cycle
	dummyDone bool // the one mandatory cycle before any byte copy starts

	logger *debug.Logger
}

func New(mem CPUMemory, oam OAM) *Controller {
	return &Controller{mem: mem, oam: oam}
}

func (c *Controller) SetLogger(logger *debug.Logger) {
	c.logger = logger
}

func (c *Controller) SetStaller(staller Staller) {
	c.staller = staller
}

// TriggerOAMDMA starts a transfer from page*0x100 into OAM. cpuCycle is
// the CPU's cycle counter at the time of the $4014 write, used to
// determine the 513 vs. 514-cycle stall (odd start cycle costs one
// extra alignment cycle). The CPU is stalled for the full duration up
// front; the Controller's own Tick calls account for the same span on
// the scheduler's side so the two stay in lockstep.
func (c *Controller) TriggerOAMDMA(page uint8, cpuCycle uint64) {
	c.active = true
	c.page = page
	c.index = 0
	c.alignWait = cpuCycle%2 != 0
	c.dummyDone = false

	total := uint64(513)
	if c.alignWait {
		total = 514
	}
	if c.staller != nil {
		c.staller.Stall(total)
	}

	if c.logger != nil && c.logger.IsComponentEnabled(debug.ComponentDMA) {
		c.logger.LogDMAf(debug.LogLevelDebug, "OAM DMA triggered: page=%02X align=%v", page, c.alignWait)
	}
}

// Active reports whether a transfer is in progress; the CPU must stall
// (not fetch/execute instructions) while this is true.
func (c *Controller) Active() bool {
	return c.active
}

// Tick performs one step of the transfer and returns the number of CPU
// cycles it consumed: the first tick burns the one mandatory dummy-read
// cycle (two if the transfer started on an odd CPU cycle), every
// subsequent tick copies one byte for 2 cycles. Total cycles reported
// across a full transfer is 513 or 514, matching the CPU's own Stall
// count so the two stay synchronized. The scheduler's DMA factor is 3
// master cycles per CPU cycle reported here, the same as the CPU's (the
// DMA ticker shares the CPU's cycle domain, not its own).
func (c *Controller) Tick() uint64 {
	if !c.active {
		return 0
	}

	if !c.dummyDone {
		c.dummyDone = true
		if c.alignWait {
			return 2
		}
		return 1
	}

	addr := uint16(c.page)<<8 | uint16(c.index)
	value := c.mem.Read(addr)
	c.oam.WriteOAMByte(uint8(c.index), value)
	c.index++

	if c.index >= 256 {
		c.active = false
	}

	return 2
}
