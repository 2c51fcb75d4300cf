package cpu

import (
	"bytes"
	"encoding/gob"
)

// snapshot is the complete plain-record CPU state: the architectural
// registers plus the interrupt latches, which must survive a freeze
// since NMI/IRQ are serviced between instructions, exactly where a
// freeze is allowed to happen.
type snapshot struct {
	State              State
	NMIPending         bool
	NMILine            bool
	IRQLine            bool
	StallCycles        uint64
	IllegalOpcodeCount uint64
}

func (c *CPU) Snapshot() []byte {
	s := snapshot{
		State: c.State, NMIPending: c.nmiPending, NMILine: c.nmiLine,
		IRQLine: c.irqLine, StallCycles: c.stallCycles, IllegalOpcodeCount: c.IllegalOpcodeCount,
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(s); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func (c *CPU) Restore(blob []byte) error {
	var s snapshot
	if err := gob.NewDecoder(bytes.NewReader(blob)).Decode(&s); err != nil {
		return err
	}
	c.State = s.State
	c.nmiPending, c.nmiLine, c.irqLine = s.NMIPending, s.NMILine, s.IRQLine
	c.stallCycles, c.IllegalOpcodeCount = s.StallCycles, s.IllegalOpcodeCount
	return nil
}
