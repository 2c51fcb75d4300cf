package cpu

// AddrMode identifies how an instruction's operand address is formed.
type AddrMode int

const (
	ModeImplied AddrMode = iota
	ModeAccumulator
	ModeImmediate
	ModeZeroPage
	ModeZeroPageX
	ModeZeroPageY
	ModeAbsolute
	ModeAbsoluteX
	ModeAbsoluteY
	ModeIndirect
	ModeIndirectX
	ModeIndirectY
	ModeRelative
)

// opcodeInfo is one entry of the 256-slot dispatch table. exec returns
// the number of cycles to add beyond the table's base cycles (used for
// branch-taken/page-cross penalties computed inside the instruction
// itself, e.g. branches).
type opcodeInfo struct {
	mnemonic         string
	mode             AddrMode
	cycles           uint8
	pageCrossPenalty bool
	exec             func(c *CPU, addr uint16, mode AddrMode) uint64
}

var opcodeTable [256]opcodeInfo

// opcodeDefined marks the slots define() actually fills, distinguishing
// real NOP (0xEA) from the undefined-opcode fallback that also executes
// as a NOP but is counted separately for diagnostics.
var opcodeDefined [256]bool

func define(opcode uint8, mnemonic string, mode AddrMode, cycles uint8, pageCross bool, exec func(*CPU, uint16, AddrMode) uint64) {
	opcodeTable[opcode] = opcodeInfo{mnemonic: mnemonic, mode: mode, cycles: cycles, pageCrossPenalty: pageCross, exec: exec}
	opcodeDefined[opcode] = true
}

func init() {
	// Undefined opcodes execute as an unofficial implied-mode NOP: the
	// ambient error-handling policy treats illegal opcodes as non-fatal.
	for i := range opcodeTable {
		opcodeTable[i] = opcodeInfo{mnemonic: "NOP", mode: ModeImplied, cycles: 2, exec: execNOP}
	}

	define(0xA9, "LDA", ModeImmediate, 2, false, execLDA)
	define(0xA5, "LDA", ModeZeroPage, 3, false, execLDA)
	define(0xB5, "LDA", ModeZeroPageX, 4, false, execLDA)
	define(0xAD, "LDA", ModeAbsolute, 4, false, execLDA)
	define(0xBD, "LDA", ModeAbsoluteX, 4, true, execLDA)
	define(0xB9, "LDA", ModeAbsoluteY, 4, true, execLDA)
	define(0xA1, "LDA", ModeIndirectX, 6, false, execLDA)
	define(0xB1, "LDA", ModeIndirectY, 5, true, execLDA)

	define(0xA2, "LDX", ModeImmediate, 2, false, execLDX)
	define(0xA6, "LDX", ModeZeroPage, 3, false, execLDX)
	define(0xB6, "LDX", ModeZeroPageY, 4, false, execLDX)
	define(0xAE, "LDX", ModeAbsolute, 4, false, execLDX)
	define(0xBE, "LDX", ModeAbsoluteY, 4, true, execLDX)

	define(0xA0, "LDY", ModeImmediate, 2, false, execLDY)
	define(0xA4, "LDY", ModeZeroPage, 3, false, execLDY)
	define(0xB4, "LDY", ModeZeroPageX, 4, false, execLDY)
	define(0xAC, "LDY", ModeAbsolute, 4, false, execLDY)
	define(0xBC, "LDY", ModeAbsoluteX, 4, true, execLDY)

	define(0x85, "STA", ModeZeroPage, 3, false, execSTA)
	define(0x95, "STA", ModeZeroPageX, 4, false, execSTA)
	define(0x8D, "STA", ModeAbsolute, 4, false, execSTA)
	define(0x9D, "STA", ModeAbsoluteX, 5, false, execSTA)
	define(0x99, "STA", ModeAbsoluteY, 5, false, execSTA)
	define(0x81, "STA", ModeIndirectX, 6, false, execSTA)
	define(0x91, "STA", ModeIndirectY, 6, false, execSTA)

	define(0x86, "STX", ModeZeroPage, 3, false, execSTX)
	define(0x96, "STX", ModeZeroPageY, 4, false, execSTX)
	define(0x8E, "STX", ModeAbsolute, 4, false, execSTX)

	define(0x84, "STY", ModeZeroPage, 3, false, execSTY)
	define(0x94, "STY", ModeZeroPageX, 4, false, execSTY)
	define(0x8C, "STY", ModeAbsolute, 4, false, execSTY)

	define(0xAA, "TAX", ModeImplied, 2, false, execTAX)
	define(0xA8, "TAY", ModeImplied, 2, false, execTAY)
	define(0x8A, "TXA", ModeImplied, 2, false, execTXA)
	define(0x98, "TYA", ModeImplied, 2, false, execTYA)
	define(0xBA, "TSX", ModeImplied, 2, false, execTSX)
	define(0x9A, "TXS", ModeImplied, 2, false, execTXS)

	define(0x48, "PHA", ModeImplied, 3, false, execPHA)
	define(0x08, "PHP", ModeImplied, 3, false, execPHP)
	define(0x68, "PLA", ModeImplied, 4, false, execPLA)
	define(0x28, "PLP", ModeImplied, 4, false, execPLP)

	define(0x69, "ADC", ModeImmediate, 2, false, execADC)
	define(0x65, "ADC", ModeZeroPage, 3, false, execADC)
	define(0x75, "ADC", ModeZeroPageX, 4, false, execADC)
	define(0x6D, "ADC", ModeAbsolute, 4, false, execADC)
	define(0x7D, "ADC", ModeAbsoluteX, 4, true, execADC)
	define(0x79, "ADC", ModeAbsoluteY, 4, true, execADC)
	define(0x61, "ADC", ModeIndirectX, 6, false, execADC)
	define(0x71, "ADC", ModeIndirectY, 5, true, execADC)

	define(0xE9, "SBC", ModeImmediate, 2, false, execSBC)
	define(0xE5, "SBC", ModeZeroPage, 3, false, execSBC)
	define(0xF5, "SBC", ModeZeroPageX, 4, false, execSBC)
	define(0xED, "SBC", ModeAbsolute, 4, false, execSBC)
	define(0xFD, "SBC", ModeAbsoluteX, 4, true, execSBC)
	define(0xF9, "SBC", ModeAbsoluteY, 4, true, execSBC)
	define(0xE1, "SBC", ModeIndirectX, 6, false, execSBC)
	define(0xF1, "SBC", ModeIndirectY, 5, true, execSBC)

	define(0x29, "AND", ModeImmediate, 2, false, execAND)
	define(0x25, "AND", ModeZeroPage, 3, false, execAND)
	define(0x35, "AND", ModeZeroPageX, 4, false, execAND)
	define(0x2D, "AND", ModeAbsolute, 4, false, execAND)
	define(0x3D, "AND", ModeAbsoluteX, 4, true, execAND)
	define(0x39, "AND", ModeAbsoluteY, 4, true, execAND)
	define(0x21, "AND", ModeIndirectX, 6, false, execAND)
	define(0x31, "AND", ModeIndirectY, 5, true, execAND)

	define(0x09, "ORA", ModeImmediate, 2, false, execORA)
	define(0x05, "ORA", ModeZeroPage, 3, false, execORA)
	define(0x15, "ORA", ModeZeroPageX, 4, false, execORA)
	define(0x0D, "ORA", ModeAbsolute, 4, false, execORA)
	define(0x1D, "ORA", ModeAbsoluteX, 4, true, execORA)
	define(0x19, "ORA", ModeAbsoluteY, 4, true, execORA)
	define(0x01, "ORA", ModeIndirectX, 6, false, execORA)
	define(0x11, "ORA", ModeIndirectY, 5, true, execORA)

	define(0x49, "EOR", ModeImmediate, 2, false, execEOR)
	define(0x45, "EOR", ModeZeroPage, 3, false, execEOR)
	define(0x55, "EOR", ModeZeroPageX, 4, false, execEOR)
	define(0x4D, "EOR", ModeAbsolute, 4, false, execEOR)
	define(0x5D, "EOR", ModeAbsoluteX, 4, true, execEOR)
	define(0x59, "EOR", ModeAbsoluteY, 4, true, execEOR)
	define(0x41, "EOR", ModeIndirectX, 6, false, execEOR)
	define(0x51, "EOR", ModeIndirectY, 5, true, execEOR)

	define(0x24, "BIT", ModeZeroPage, 3, false, execBIT)
	define(0x2C, "BIT", ModeAbsolute, 4, false, execBIT)

	define(0xC9, "CMP", ModeImmediate, 2, false, execCMP)
	define(0xC5, "CMP", ModeZeroPage, 3, false, execCMP)
	define(0xD5, "CMP", ModeZeroPageX, 4, false, execCMP)
	define(0xCD, "CMP", ModeAbsolute, 4, false, execCMP)
	define(0xDD, "CMP", ModeAbsoluteX, 4, true, execCMP)
	define(0xD9, "CMP", ModeAbsoluteY, 4, true, execCMP)
	define(0xC1, "CMP", ModeIndirectX, 6, false, execCMP)
	define(0xD1, "CMP", ModeIndirectY, 5, true, execCMP)

	define(0xE0, "CPX", ModeImmediate, 2, false, execCPX)
	define(0xE4, "CPX", ModeZeroPage, 3, false, execCPX)
	define(0xEC, "CPX", ModeAbsolute, 4, false, execCPX)

	define(0xC0, "CPY", ModeImmediate, 2, false, execCPY)
	define(0xC4, "CPY", ModeZeroPage, 3, false, execCPY)
	define(0xCC, "CPY", ModeAbsolute, 4, false, execCPY)

	define(0xE6, "INC", ModeZeroPage, 5, false, execINC)
	define(0xF6, "INC", ModeZeroPageX, 6, false, execINC)
	define(0xEE, "INC", ModeAbsolute, 6, false, execINC)
	define(0xFE, "INC", ModeAbsoluteX, 7, false, execINC)
	define(0xE8, "INX", ModeImplied, 2, false, execINX)
	define(0xC8, "INY", ModeImplied, 2, false, execINY)

	define(0xC6, "DEC", ModeZeroPage, 5, false, execDEC)
	define(0xD6, "DEC", ModeZeroPageX, 6, false, execDEC)
	define(0xCE, "DEC", ModeAbsolute, 6, false, execDEC)
	define(0xDE, "DEC", ModeAbsoluteX, 7, false, execDEC)
	define(0xCA, "DEX", ModeImplied, 2, false, execDEX)
	define(0x88, "DEY", ModeImplied, 2, false, execDEY)

	define(0x0A, "ASL", ModeAccumulator, 2, false, execASL)
	define(0x06, "ASL", ModeZeroPage, 5, false, execASL)
	define(0x16, "ASL", ModeZeroPageX, 6, false, execASL)
	define(0x0E, "ASL", ModeAbsolute, 6, false, execASL)
	define(0x1E, "ASL", ModeAbsoluteX, 7, false, execASL)

	define(0x4A, "LSR", ModeAccumulator, 2, false, execLSR)
	define(0x46, "LSR", ModeZeroPage, 5, false, execLSR)
	define(0x56, "LSR", ModeZeroPageX, 6, false, execLSR)
	define(0x4E, "LSR", ModeAbsolute, 6, false, execLSR)
	define(0x5E, "LSR", ModeAbsoluteX, 7, false, execLSR)

	define(0x2A, "ROL", ModeAccumulator, 2, false, execROL)
	define(0x26, "ROL", ModeZeroPage, 5, false, execROL)
	define(0x36, "ROL", ModeZeroPageX, 6, false, execROL)
	define(0x2E, "ROL", ModeAbsolute, 6, false, execROL)
	define(0x3E, "ROL", ModeAbsoluteX, 7, false, execROL)

	define(0x6A, "ROR", ModeAccumulator, 2, false, execROR)
	define(0x66, "ROR", ModeZeroPage, 5, false, execROR)
	define(0x76, "ROR", ModeZeroPageX, 6, false, execROR)
	define(0x6E, "ROR", ModeAbsolute, 6, false, execROR)
	define(0x7E, "ROR", ModeAbsoluteX, 7, false, execROR)

	define(0x4C, "JMP", ModeAbsolute, 3, false, execJMP)
	define(0x6C, "JMP", ModeIndirect, 5, false, execJMP)
	define(0x20, "JSR", ModeAbsolute, 6, false, execJSR)
	define(0x60, "RTS", ModeImplied, 6, false, execRTS)
	define(0x00, "BRK", ModeImplied, 7, false, execBRK)
	define(0x40, "RTI", ModeImplied, 6, false, execRTI)

	define(0x90, "BCC", ModeRelative, 2, false, makeBranch(FlagC, false))
	define(0xB0, "BCS", ModeRelative, 2, false, makeBranch(FlagC, true))
	define(0xF0, "BEQ", ModeRelative, 2, false, makeBranch(FlagZ, true))
	define(0xD0, "BNE", ModeRelative, 2, false, makeBranch(FlagZ, false))
	define(0x30, "BMI", ModeRelative, 2, false, makeBranch(FlagN, true))
	define(0x10, "BPL", ModeRelative, 2, false, makeBranch(FlagN, false))
	define(0x50, "BVC", ModeRelative, 2, false, makeBranch(FlagV, false))
	define(0x70, "BVS", ModeRelative, 2, false, makeBranch(FlagV, true))

	define(0x18, "CLC", ModeImplied, 2, false, execCLC)
	define(0xD8, "CLD", ModeImplied, 2, false, execCLD)
	define(0x58, "CLI", ModeImplied, 2, false, execCLI)
	define(0xB8, "CLV", ModeImplied, 2, false, execCLV)
	define(0x38, "SEC", ModeImplied, 2, false, execSEC)
	define(0xF8, "SED", ModeImplied, 2, false, execSED)
	define(0x78, "SEI", ModeImplied, 2, false, execSEI)

	define(0xEA, "NOP", ModeImplied, 2, false, execNOP)
}

// resolveOperand consumes the instruction's operand bytes from the
// instruction stream and returns the effective address, plus whether
// indexing crossed a page boundary (the trigger for the +1 cycle
// penalty on indexed/indirect-indexed reads).
func (c *CPU) resolveOperand(mode AddrMode) (addr uint16, pageCrossed bool) {
	switch mode {
	case ModeImplied, ModeAccumulator:
		return 0, false
	case ModeImmediate:
		addr = c.State.PC
		c.fetch8()
		return addr, false
	case ModeZeroPage:
		return uint16(c.fetch8()), false
	case ModeZeroPageX:
		return uint16(c.fetch8() + c.State.X), false
	case ModeZeroPageY:
		return uint16(c.fetch8() + c.State.Y), false
	case ModeAbsolute:
		return c.fetch16(), false
	case ModeAbsoluteX:
		base := c.fetch16()
		addr = base + uint16(c.State.X)
		return addr, (base & 0xFF00) != (addr & 0xFF00)
	case ModeAbsoluteY:
		base := c.fetch16()
		addr = base + uint16(c.State.Y)
		return addr, (base & 0xFF00) != (addr & 0xFF00)
	case ModeIndirect:
		ptr := c.fetch16()
		return c.readWordWrap(ptr), false
	case ModeIndirectX:
		zp := c.fetch8() + c.State.X
		return c.readWordWrap(uint16(zp)), false
	case ModeIndirectY:
		zp := c.fetch8()
		base := c.readWordWrap(uint16(zp))
		addr = base + uint16(c.State.Y)
		return addr, (base & 0xFF00) != (addr & 0xFF00)
	case ModeRelative:
		offset := int8(c.fetch8())
		return uint16(int32(c.State.PC) + int32(offset)), false
	default:
		return 0, false
	}
}

func execLDA(c *CPU, addr uint16, mode AddrMode) uint64 {
	c.State.A = c.Mem.Read(addr)
	c.setZN(c.State.A)
	return 0
}

func execLDX(c *CPU, addr uint16, mode AddrMode) uint64 {
	c.State.X = c.Mem.Read(addr)
	c.setZN(c.State.X)
	return 0
}

func execLDY(c *CPU, addr uint16, mode AddrMode) uint64 {
	c.State.Y = c.Mem.Read(addr)
	c.setZN(c.State.Y)
	return 0
}

func execSTA(c *CPU, addr uint16, mode AddrMode) uint64 {
	c.Mem.Write(addr, c.State.A, c.State.Cycles)
	return 0
}

func execSTX(c *CPU, addr uint16, mode AddrMode) uint64 {
	c.Mem.Write(addr, c.State.X, c.State.Cycles)
	return 0
}

func execSTY(c *CPU, addr uint16, mode AddrMode) uint64 {
	c.Mem.Write(addr, c.State.Y, c.State.Cycles)
	return 0
}

func execTAX(c *CPU, addr uint16, mode AddrMode) uint64 { c.State.X = c.State.A; c.setZN(c.State.X); return 0 }
func execTAY(c *CPU, addr uint16, mode AddrMode) uint64 { c.State.Y = c.State.A; c.setZN(c.State.Y); return 0 }
func execTXA(c *CPU, addr uint16, mode AddrMode) uint64 { c.State.A = c.State.X; c.setZN(c.State.A); return 0 }
func execTYA(c *CPU, addr uint16, mode AddrMode) uint64 { c.State.A = c.State.Y; c.setZN(c.State.A); return 0 }
func execTSX(c *CPU, addr uint16, mode AddrMode) uint64 { c.State.X = c.State.SP; c.setZN(c.State.X); return 0 }
func execTXS(c *CPU, addr uint16, mode AddrMode) uint64 { c.State.SP = c.State.X; return 0 }

func execPHA(c *CPU, addr uint16, mode AddrMode) uint64 { c.push8(c.State.A); return 0 }
func execPHP(c *CPU, addr uint16, mode AddrMode) uint64 { c.push8(c.State.P | Flag1 | FlagB); return 0 }
func execPLA(c *CPU, addr uint16, mode AddrMode) uint64 {
	c.State.A = c.pop8()
	c.setZN(c.State.A)
	return 0
}
func execPLP(c *CPU, addr uint16, mode AddrMode) uint64 {
	c.State.P = (c.pop8() &^ FlagB) | Flag1
	return 0
}

func adcValue(c *CPU, value uint8) {
	a := c.State.A
	carryIn := uint16(0)
	if c.getFlag(FlagC) {
		carryIn = 1
	}
	sum := uint16(a) + uint16(value) + carryIn
	result := uint8(sum)
	c.setFlag(FlagC, sum > 0xFF)
	overflow := (a^value)&0x80 == 0 && (a^result)&0x80 != 0
	c.setFlag(FlagV, overflow)
	c.State.A = result
	c.setZN(result)
}

func execADC(c *CPU, addr uint16, mode AddrMode) uint64 {
	adcValue(c, c.Mem.Read(addr))
	return 0
}

func execSBC(c *CPU, addr uint16, mode AddrMode) uint64 {
	adcValue(c, c.Mem.Read(addr)^0xFF)
	return 0
}

func execAND(c *CPU, addr uint16, mode AddrMode) uint64 {
	c.State.A &= c.Mem.Read(addr)
	c.setZN(c.State.A)
	return 0
}

func execORA(c *CPU, addr uint16, mode AddrMode) uint64 {
	c.State.A |= c.Mem.Read(addr)
	c.setZN(c.State.A)
	return 0
}

func execEOR(c *CPU, addr uint16, mode AddrMode) uint64 {
	c.State.A ^= c.Mem.Read(addr)
	c.setZN(c.State.A)
	return 0
}

func execBIT(c *CPU, addr uint16, mode AddrMode) uint64 {
	val := c.Mem.Read(addr)
	c.setFlag(FlagZ, c.State.A&val == 0)
	c.setFlag(FlagN, val&0x80 != 0)
	c.setFlag(FlagV, val&0x40 != 0)
	return 0
}

func compare(c *CPU, reg, val uint8) {
	c.setFlag(FlagC, reg >= val)
	c.setZN(reg - val)
}

func execCMP(c *CPU, addr uint16, mode AddrMode) uint64 { compare(c, c.State.A, c.Mem.Read(addr)); return 0 }
func execCPX(c *CPU, addr uint16, mode AddrMode) uint64 { compare(c, c.State.X, c.Mem.Read(addr)); return 0 }
func execCPY(c *CPU, addr uint16, mode AddrMode) uint64 { compare(c, c.State.Y, c.Mem.Read(addr)); return 0 }

func execINC(c *CPU, addr uint16, mode AddrMode) uint64 {
	v := c.Mem.Read(addr) + 1
	c.Mem.Write(addr, v, c.State.Cycles)
	c.setZN(v)
	return 0
}
func execINX(c *CPU, addr uint16, mode AddrMode) uint64 { c.State.X++; c.setZN(c.State.X); return 0 }
func execINY(c *CPU, addr uint16, mode AddrMode) uint64 { c.State.Y++; c.setZN(c.State.Y); return 0 }

func execDEC(c *CPU, addr uint16, mode AddrMode) uint64 {
	v := c.Mem.Read(addr) - 1
	c.Mem.Write(addr, v, c.State.Cycles)
	c.setZN(v)
	return 0
}
func execDEX(c *CPU, addr uint16, mode AddrMode) uint64 { c.State.X--; c.setZN(c.State.X); return 0 }
func execDEY(c *CPU, addr uint16, mode AddrMode) uint64 { c.State.Y--; c.setZN(c.State.Y); return 0 }

func execASL(c *CPU, addr uint16, mode AddrMode) uint64 {
	if mode == ModeAccumulator {
		carry := c.State.A&0x80 != 0
		c.State.A <<= 1
		c.setFlag(FlagC, carry)
		c.setZN(c.State.A)
		return 0
	}
	v := c.Mem.Read(addr)
	carry := v&0x80 != 0
	v <<= 1
	c.Mem.Write(addr, v, c.State.Cycles)
	c.setFlag(FlagC, carry)
	c.setZN(v)
	return 0
}

func execLSR(c *CPU, addr uint16, mode AddrMode) uint64 {
	if mode == ModeAccumulator {
		carry := c.State.A&0x01 != 0
		c.State.A >>= 1
		c.setFlag(FlagC, carry)
		c.setZN(c.State.A)
		return 0
	}
	v := c.Mem.Read(addr)
	carry := v&0x01 != 0
	v >>= 1
	c.Mem.Write(addr, v, c.State.Cycles)
	c.setFlag(FlagC, carry)
	c.setZN(v)
	return 0
}

func execROL(c *CPU, addr uint16, mode AddrMode) uint64 {
	var carryIn uint8
	if c.getFlag(FlagC) {
		carryIn = 1
	}
	if mode == ModeAccumulator {
		newCarry := c.State.A&0x80 != 0
		c.State.A = (c.State.A << 1) | carryIn
		c.setFlag(FlagC, newCarry)
		c.setZN(c.State.A)
		return 0
	}
	v := c.Mem.Read(addr)
	newCarry := v&0x80 != 0
	v = (v << 1) | carryIn
	c.Mem.Write(addr, v, c.State.Cycles)
	c.setFlag(FlagC, newCarry)
	c.setZN(v)
	return 0
}

func execROR(c *CPU, addr uint16, mode AddrMode) uint64 {
	var carryIn uint8
	if c.getFlag(FlagC) {
		carryIn = 0x80
	}
	if mode == ModeAccumulator {
		newCarry := c.State.A&0x01 != 0
		c.State.A = (c.State.A >> 1) | carryIn
		c.setFlag(FlagC, newCarry)
		c.setZN(c.State.A)
		return 0
	}
	v := c.Mem.Read(addr)
	newCarry := v&0x01 != 0
	v = (v >> 1) | carryIn
	c.Mem.Write(addr, v, c.State.Cycles)
	c.setFlag(FlagC, newCarry)
	c.setZN(v)
	return 0
}

func execJMP(c *CPU, addr uint16, mode AddrMode) uint64 {
	c.State.PC = addr
	return 0
}

func execJSR(c *CPU, addr uint16, mode AddrMode) uint64 {
	c.push16(c.State.PC - 1)
	c.State.PC = addr
	return 0
}

func execRTS(c *CPU, addr uint16, mode AddrMode) uint64 {
	c.State.PC = c.pop16() + 1
	return 0
}

func execBRK(c *CPU, addr uint16, mode AddrMode) uint64 {
	c.State.PC++ // BRK's signature byte is skipped
	c.serviceInterrupt(vectorIRQ, true)
	return 0
}

func execRTI(c *CPU, addr uint16, mode AddrMode) uint64 {
	c.State.P = (c.pop8() &^ FlagB) | Flag1
	c.State.PC = c.pop16()
	return 0
}

func makeBranch(flagMask uint8, wantSet bool) func(*CPU, uint16, AddrMode) uint64 {
	return func(c *CPU, addr uint16, mode AddrMode) uint64 {
		if c.getFlag(flagMask) != wantSet {
			return 0
		}
		old := c.State.PC
		c.State.PC = addr
		extra := uint64(1)
		if old&0xFF00 != addr&0xFF00 {
			extra++
		}
		return extra
	}
}

func execCLC(c *CPU, addr uint16, mode AddrMode) uint64 { c.setFlag(FlagC, false); return 0 }
func execCLD(c *CPU, addr uint16, mode AddrMode) uint64 { c.setFlag(FlagD, false); return 0 }
func execCLI(c *CPU, addr uint16, mode AddrMode) uint64 { c.setFlag(FlagI, false); return 0 }
func execCLV(c *CPU, addr uint16, mode AddrMode) uint64 { c.setFlag(FlagV, false); return 0 }
func execSEC(c *CPU, addr uint16, mode AddrMode) uint64 { c.setFlag(FlagC, true); return 0 }
func execSED(c *CPU, addr uint16, mode AddrMode) uint64 { c.setFlag(FlagD, true); return 0 }
func execSEI(c *CPU, addr uint16, mode AddrMode) uint64 { c.setFlag(FlagI, true); return 0 }

func execNOP(c *CPU, addr uint16, mode AddrMode) uint64 { return 0 }
