// Package machine assembles the cartridge, buses, CPU, PPU, APU,
// DMA controller and pads into a runnable console and drives them
// through the master-clock scheduler, frame by frame.
package machine

import (
	"fmt"

	"nescore/internal/apu"
	"nescore/internal/bus"
	"nescore/internal/cart"
	"nescore/internal/clock"
	"nescore/internal/controller"
	"nescore/internal/cpu"
	"nescore/internal/debug"
	"nescore/internal/dma"
	"nescore/internal/ppu"
	"nescore/internal/rom"
)

// The PPU runs three dots for every CPU cycle on real hardware; the
// scheduler models that by giving the CPU and APU (which steps once
// per CPU cycle internally) a 3x larger master-cycle factor than the
// PPU's per-dot factor.
const (
	cpuFactor = 3
	ppuFactor = 1
	apuFactor = 3
	dmaFactor = 3
)

// Config holds the host-tunable knobs the machine is constructed
// with, in place of a config file: there is nothing here a CLI flag
// can't express, so no config-file parser is wired in.
type Config struct {
	SampleRate int // audio sample rate APU.DrainSamples produces at

	// MirrorOverride forces a mirroring mode regardless of what the
	// cartridge header reports; it applies only when UseMirrorOverride
	// is set, otherwise the header's mode is used. Rarely needed outside
	// four-screen test ROMs.
	MirrorOverride     cart.Mirroring
	UseMirrorOverride  bool
	StrictIllegalOpcode bool
	LogLevel           debug.LogLevel
}

// DefaultConfig matches real NES audio/video timing.
func DefaultConfig() Config {
	return Config{SampleRate: 44100, LogLevel: debug.LogLevelNone}
}

// Machine is the complete assembled console.
type Machine struct {
	Config Config
	Logger *debug.Logger

	Scheduler *clock.Scheduler
	Bus       *bus.Bus
	PPUBus    *bus.PPUBus
	CPU       *cpu.CPU
	PPU       *ppu.PPU
	APU       *apu.APU
	DMA       *dma.Controller
	Pad1      *controller.Pad
	Pad2      *controller.Pad

	Cartridge *cart.Cartridge
	Mapper    cart.Mapper
}

// New assembles a machine with no cartridge loaded. LoadROM must be
// called before Reset or RunFrame will do anything useful.
func New(cfg Config) *Machine {
	logger := debug.NewLogger(10000)
	logger.SetMinLevel(cfg.LogLevel)

	m := &Machine{Config: cfg, Logger: logger}

	m.Scheduler = clock.New()
	m.Scheduler.SetLogger(logger)

	m.Bus = bus.New()
	m.Bus.SetLogger(logger)

	m.Pad1 = controller.NewPad()
	m.Pad2 = controller.NewPad()

	m.CPU = cpu.New(m.Bus)
	m.CPU.SetLogger(cpu.NewLoggerAdapter(logger, cpu.LogNone))

	// The PPU's own bus is wired in once a cartridge exists (LoadROM);
	// it is nil until then, matching every other handler field that is
	// filled in after construction.
	m.PPU = ppu.New(nil, m.CPU)
	m.PPU.SetLogger(logger)

	m.APU = apu.New(m.Bus, m.CPU)
	m.APU.SetStaller(m.CPU)
	m.APU.SetSampleRate(cfg.SampleRate)
	m.APU.SetLogger(logger)

	m.DMA = dma.New(m.Bus, m.PPU)
	m.DMA.SetStaller(m.CPU)
	m.DMA.SetLogger(logger)

	m.Bus.PPU = m.PPU
	m.Bus.APU = m.APU
	m.Bus.Pad1 = m.Pad1
	m.Bus.Pad2 = m.Pad2
	m.Bus.DMA = m.DMA

	m.Scheduler.Attach("cpu", m.CPU, cpuFactor)
	m.Scheduler.Attach("ppu", m.PPU, ppuFactor)
	m.Scheduler.Attach("apu", m.APU, apuFactor)
	m.Scheduler.Attach("dma", m.DMA, dmaFactor)

	return m
}

// LoadROM parses an iNES image, builds the matching mapper, wires the
// PPU bus to it, and resets the machine to power-on state. A
// *rom.LoaderError is returned unchanged so callers can distinguish a
// bad image from any other failure with errors.As.
func (m *Machine) LoadROM(data []uint8) error {
	cartridge, err := rom.Load(data)
	if err != nil {
		return err
	}
	if m.Config.UseMirrorOverride {
		cartridge.Mirror = m.Config.MirrorOverride
	}

	m.Cartridge = cartridge
	m.Mapper = cart.New(cartridge, m.Logger)
	m.Bus.Mapper = m.Mapper

	m.PPUBus = bus.NewPPUBus(m.Mapper)
	m.PPU.Bus = m.PPUBus

	m.Reset()
	return nil
}

// Reset resets the CPU and rewinds the scheduler. PPU, APU, DMA and pad
// state are left as they are, and so are the cartridge and its mapper:
// a reset is not a reload.
func (m *Machine) Reset() {
	m.CPU.Reset()
	m.Scheduler.Reset()
}

// RunFrame steps the scheduler until the PPU reports FrameComplete,
// which it does when the pre-render line wraps to scanline 0. A new
// PPU starts on the pre-render line, so the first call after New covers
// only that scanline; later calls cover a full sweep of 262 scanlines.
func (m *Machine) RunFrame() {
	m.PPU.FrameComplete = false
	for !m.PPU.FrameComplete {
		m.Scheduler.Step()
	}
}

// OutputBuffer returns the PPU's 256x240 RGBA8888 framebuffer for the
// frame just completed.
func (m *Machine) OutputBuffer() []uint32 {
	return m.PPU.OutputBuffer[:]
}

// DrainSamples returns and clears the accumulated mono PCM samples
// generated since the last call, at Config.SampleRate.
func (m *Machine) DrainSamples() []float32 {
	return m.APU.DrainSamples()
}

// SetButton routes a translated key event to one of the two pads; pad
// selects 1 or 2.
func (m *Machine) SetButton(pad int, button int, pressed bool) {
	switch pad {
	case 1:
		m.Pad1.SetButton(button, pressed)
	case 2:
		m.Pad2.SetButton(button, pressed)
	}
}

// StateCorruptionError is returned by Hydrate when a blob's version
// tag doesn't match, or any component's own blob fails to decode; the
// caller must treat this as fatal, never attempt to keep running on
// a partially-restored machine.
type StateCorruptionError struct {
	Reason string
}

func (e *StateCorruptionError) Error() string {
	return fmt.Sprintf("machine: state corruption: %s", e.Reason)
}
