// Package cpu implements the 6502-family CPU core: the full documented
// instruction set (decimal mode excluded), all addressing modes, and
// NMI/IRQ/RESET/BRK interrupt handling.
package cpu

import "fmt"

// State is the complete architectural state of the CPU.
type State struct {
	A, X, Y uint8
	SP      uint8
	PC      uint16
	P       uint8 // NV-BDIZC

	Cycles uint64
}

// Flag bits within P, in register-bit order.
const (
	FlagC uint8 = 1 << 0
	FlagZ uint8 = 1 << 1
	FlagI uint8 = 1 << 2
	FlagD uint8 = 1 << 3 // present for bit-fidelity; decimal arithmetic is never applied
	FlagB uint8 = 1 << 4
	Flag1 uint8 = 1 << 5 // unused, always reads as 1
	FlagV uint8 = 1 << 6
	FlagN uint8 = 1 << 7
)

const (
	vectorNMI   uint16 = 0xFFFA
	vectorRESET uint16 = 0xFFFC
	vectorIRQ   uint16 = 0xFFFE
)

// Memory is the bus interface the CPU reads and writes through.
// cpuCycle is the CPU's own cycle counter at the time of a write,
// which mappers such as MMC1 need for their consecutive-write rule.
type Memory interface {
	Read(addr uint16) uint8
	Write(addr uint16, value uint8, cpuCycle uint64)
}

// Logger receives one notification per retired instruction.
type Logger interface {
	LogInstruction(pc uint16, opcode uint8, mnemonic string, state State)
}

// CPU is the emulated 6502 core.
type CPU struct {
	State State
	Mem   Memory
	Log   Logger

	nmiPending bool
	nmiLine    bool // tracks the NMI line's previous level, for edge detection
	irqLine    bool

	stallCycles uint64 // set by the DMA controller via Stall; consumed before fetch

	// IllegalOpcodeCount counts undefined opcodes executed as NOP, for
	// callers that want diagnostics on an illegal-opcode-strict toggle
	// without making tick() itself capable of failing.
	IllegalOpcodeCount uint64
}

// New creates a CPU wired to mem; Reset must be called once the bus is
// fully wired (cartridge attached) to load the reset vector.
func New(mem Memory) *CPU {
	return &CPU{Mem: mem}
}

func (c *CPU) SetLogger(log Logger) {
	c.Log = log
}

// Reset loads PC from the reset vector and sets the power-on register
// state a real 6502 exhibits.
func (c *CPU) Reset() {
	c.State.SP -= 3 // real hardware: 3 phantom stack reads during reset
	c.State.P |= FlagI
	c.State.PC = c.readWord(vectorRESET)
	c.State.Cycles = 0
	c.nmiPending = false
	c.nmiLine = false
	c.irqLine = false
}

// TriggerNMI raises the NMI line; NMI is edge-triggered, so it only
// fires once per low-to-high transition, serviced after the current
// instruction retires.
func (c *CPU) TriggerNMI() {
	if !c.nmiLine {
		c.nmiPending = true
	}
	c.nmiLine = true
}

// ClearNMI lowers the NMI line, re-arming it for the next edge.
func (c *CPU) ClearNMI() {
	c.nmiLine = false
}

// SetIRQLine sets the level-triggered IRQ line; it is serviced after
// the current instruction whenever the line is high and the I flag is
// clear, and continues firing every instruction while held high.
func (c *CPU) SetIRQLine(asserted bool) {
	c.irqLine = asserted
}

// Stall adds cycles the CPU must burn doing nothing before its next
// fetch, used by OAM DMA to halt the CPU for 513/514 cycles.
func (c *CPU) Stall(cycles uint64) {
	c.stallCycles += cycles
}

// Tick executes one instruction (or burns one stall cycle) and returns
// the number of CPU cycles consumed, satisfying clock.Ticker. Every
// instruction is total: illegal opcodes execute as a one-byte,
// two-cycle NOP rather than erroring, per the ambient error policy
// that steady-state ticks never fail.
func (c *CPU) Tick() uint64 {
	if c.stallCycles > 0 {
		c.stallCycles--
		c.State.Cycles++
		return 1
	}

	if c.nmiPending {
		c.nmiPending = false
		cycles := c.serviceInterrupt(vectorNMI, false)
		c.State.Cycles += cycles
		return cycles
	}
	if c.irqLine && c.State.P&FlagI == 0 {
		cycles := c.serviceInterrupt(vectorIRQ, false)
		c.State.Cycles += cycles
		return cycles
	}

	pc := c.State.PC
	opcode := c.fetch8()
	info := opcodeTable[opcode]
	if !opcodeDefined[opcode] {
		c.IllegalOpcodeCount++
	}

	addr, pageCrossed := c.resolveOperand(info.mode)
	cycles := uint64(info.cycles)
	if pageCrossed && info.pageCrossPenalty {
		cycles++
	}
	if info.exec != nil {
		extra := info.exec(c, addr, info.mode)
		cycles += extra
	}

	if c.Log != nil {
		c.Log.LogInstruction(pc, opcode, info.mnemonic, c.State)
	}

	c.State.Cycles += cycles
	return cycles
}

// serviceInterrupt pushes PC and P and jumps to vector. brkFlag
// controls whether the pushed P has the B flag set (true only for a
// software BRK, never for a hardware NMI/IRQ).
func (c *CPU) serviceInterrupt(vector uint16, brkFlag bool) uint64 {
	c.push16(c.State.PC)
	p := c.State.P | Flag1
	if brkFlag {
		p |= FlagB
	} else {
		p &^= FlagB
	}
	c.push8(p)
	c.State.P |= FlagI
	c.State.PC = c.readWord(vector)
	return 7
}

func (c *CPU) fetch8() uint8 {
	v := c.Mem.Read(c.State.PC)
	c.State.PC++
	return v
}

func (c *CPU) fetch16() uint16 {
	lo := c.fetch8()
	hi := c.fetch8()
	return uint16(lo) | uint16(hi)<<8
}

func (c *CPU) readWord(addr uint16) uint16 {
	lo := c.Mem.Read(addr)
	hi := c.Mem.Read(addr + 1)
	return uint16(lo) | uint16(hi)<<8
}

// readWordWrap reproduces the 6502 bug where a 16-bit read whose low
// byte is at $xxFF wraps within the same page instead of crossing into
// the next one. Used by indirect addressing modes.
func (c *CPU) readWordWrap(addr uint16) uint16 {
	lo := c.Mem.Read(addr)
	hiAddr := (addr & 0xFF00) | uint16(uint8(addr)+1)
	hi := c.Mem.Read(hiAddr)
	return uint16(lo) | uint16(hi)<<8
}

func (c *CPU) push8(v uint8) {
	c.Mem.Write(0x0100|uint16(c.State.SP), v, c.State.Cycles)
	c.State.SP--
}

func (c *CPU) pop8() uint8 {
	c.State.SP++
	return c.Mem.Read(0x0100 | uint16(c.State.SP))
}

func (c *CPU) push16(v uint16) {
	c.push8(uint8(v >> 8))
	c.push8(uint8(v))
}

func (c *CPU) pop16() uint16 {
	lo := c.pop8()
	hi := c.pop8()
	return uint16(lo) | uint16(hi)<<8
}

func (c *CPU) setZN(v uint8) {
	if v == 0 {
		c.State.P |= FlagZ
	} else {
		c.State.P &^= FlagZ
	}
	if v&0x80 != 0 {
		c.State.P |= FlagN
	} else {
		c.State.P &^= FlagN
	}
}

func (c *CPU) getFlag(mask uint8) bool {
	return c.State.P&mask != 0
}

func (c *CPU) setFlag(mask uint8, v bool) {
	if v {
		c.State.P |= mask
	} else {
		c.State.P &^= mask
	}
}

// String reports the PC for diagnostic messages, matching the
// teacher's GetPC helper.
func (c *CPU) String() string {
	return fmt.Sprintf("PC=%04X A=%02X X=%02X Y=%02X SP=%02X P=%02X", c.State.PC, c.State.A, c.State.X, c.State.Y, c.State.SP, c.State.P)
}
