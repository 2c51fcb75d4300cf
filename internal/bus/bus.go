// Package bus implements the CPU-visible and PPU-visible address spaces
// and the routing rules ($0000-$FFFF on the CPU side, $0000-$3FFF on
// the PPU side) that wire RAM, PPU/APU registers, controllers and the
// cartridge mapper together.
package bus

import (
	"bytes"
	"encoding/gob"

	"nescore/internal/cart"
	"nescore/internal/debug"
)

// IOHandler is the register-file interface the CPU bus dispatches
// $2000-$2007 (PPU) and $4000-$4017 (APU/controllers) reads and writes
// through.
type IOHandler interface {
	Read8(addr uint16) uint8
	Write8(addr uint16, value uint8)
}

// DMATrigger is notified when the CPU writes $4014; it receives the
// high byte of the source page and is responsible for stalling the CPU
// and copying 256 bytes into OAM.
type DMATrigger interface {
	TriggerOAMDMA(page uint8, cpuCycle uint64)
}

// Bus is the CPU's view of the NES address space.
type Bus struct {
	RAM [0x0800]uint8 // 2 KiB internal RAM, mirrored through $1FFF

	PPU    IOHandler
	APU    IOHandler
	Pad1   IOHandler
	Pad2   IOHandler
	Mapper cart.Mapper
	DMA    DMATrigger

	logger *debug.Logger
}

// New creates a CPU bus. Handlers are wired in after construction via
// the exported fields, since the bus is built before its peripherals
// exist.
func New() *Bus {
	return &Bus{}
}

func (b *Bus) SetLogger(logger *debug.Logger) {
	b.logger = logger
}

// Read reads one byte from the CPU address space. No access can fail:
// unmapped regions return 0 (an internal BusDecodeMiss condition that
// never surfaces to the caller, per the ambient error-handling policy).
func (b *Bus) Read(addr uint16) uint8 {
	switch {
	case addr < 0x2000:
		return b.RAM[addr&0x07FF]
	case addr < 0x4000:
		reg := 0x2000 + (addr & 0x0007)
		if b.PPU != nil {
			return b.PPU.Read8(reg)
		}
		return 0
	case addr == 0x4016:
		if b.Pad1 != nil {
			return b.Pad1.Read8(addr)
		}
		return 0
	case addr == 0x4017:
		if b.Pad2 != nil {
			return b.Pad2.Read8(addr)
		}
		return 0
	case addr < 0x4018:
		if b.APU != nil {
			return b.APU.Read8(addr)
		}
		return 0
	case addr < 0x4020:
		return 0 // unused APU/IO test-mode range
	default:
		if b.Mapper != nil {
			return b.Mapper.CPURead(addr)
		}
		return 0
	}
}

// Write writes one byte, with cpuCycle stamped for mappers (MMC1) that
// need to detect consecutive-cycle writes.
func (b *Bus) Write(addr uint16, value uint8, cpuCycle uint64) {
	switch {
	case addr < 0x2000:
		b.RAM[addr&0x07FF] = value
	case addr < 0x4000:
		reg := 0x2000 + (addr & 0x0007)
		if b.PPU != nil {
			b.PPU.Write8(reg, value)
		}
	case addr == 0x4014:
		if b.DMA != nil {
			b.DMA.TriggerOAMDMA(value, cpuCycle)
		}
	case addr == 0x4016:
		if b.Pad1 != nil {
			b.Pad1.Write8(addr, value)
		}
		if b.Pad2 != nil {
			b.Pad2.Write8(addr, value)
		}
	case addr < 0x4018:
		if b.APU != nil {
			b.APU.Write8(addr, value)
		}
	case addr < 0x4020:
		// unused APU/IO test-mode range, writes absorbed silently
	default:
		if b.Mapper != nil {
			b.Mapper.CPUWrite(addr, value, cpuCycle)
			if b.logger != nil && b.logger.IsComponentEnabled(debug.ComponentBus) {
				b.logger.LogBusf(debug.LogLevelTrace, "mapper write %04X <- %02X", addr, value)
			}
		}
	}
}

// Snapshot returns a gob-encoded copy of the 2 KiB internal RAM.
func (b *Bus) Snapshot() []byte {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(b.RAM); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func (b *Bus) Restore(blob []byte) error {
	return gob.NewDecoder(bytes.NewReader(blob)).Decode(&b.RAM)
}
