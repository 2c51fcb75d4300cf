package machine

import (
	"bytes"
	"encoding/gob"
)

// saveStateVersion is bumped whenever the shape of SaveState changes;
// Hydrate refuses to load a blob stamped with a different version.
const saveStateVersion = 1

// SaveState is the machine-level save state: a version tag plus the
// concatenation of every component's own opaque byte blob, per
// spec's "closed set of per-component snapshot shapes."
type SaveState struct {
	Version int

	CPU    []byte
	PPU    []byte
	APU    []byte
	Bus    []byte // CPU-side 2 KiB RAM
	PPUBus []byte // nametables + palette RAM
	Mapper []byte
	Pad1   []byte
	Pad2   []byte
}

// Freeze captures the machine's complete state as a gob-encoded blob.
// Must be called between instructions (i.e. right after RunFrame
// returns, never from inside a callback mid-frame); every component's
// own Snapshot already only captures state valid at an instruction
// or dot boundary.
func (m *Machine) Freeze() []byte {
	s := SaveState{
		Version: saveStateVersion,
		CPU:     m.CPU.Snapshot(),
		PPU:     m.PPU.Snapshot(),
		APU:     m.APU.Snapshot(),
		Bus:     m.Bus.Snapshot(),
		PPUBus:  m.PPUBus.Snapshot(),
		Mapper:  m.Mapper.Snapshot(),
		Pad1:    m.Pad1.Snapshot(),
		Pad2:    m.Pad2.Snapshot(),
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(s); err != nil {
		panic(err) // fixed-shape struct of byte slices, cannot fail
	}
	return buf.Bytes()
}

// Hydrate restores the machine from a blob produced by Freeze. A
// malformed blob or a version mismatch returns a *StateCorruptionError
// and leaves the machine untouched. A component decode failure also
// returns one, but the components restored before it keep their
// restored state. A ROM must already be loaded (the mapper/PPU bus the
// blob restores into must exist).
func (m *Machine) Hydrate(blob []byte) error {
	var s SaveState
	if err := gob.NewDecoder(bytes.NewReader(blob)).Decode(&s); err != nil {
		return &StateCorruptionError{Reason: "malformed save state: " + err.Error()}
	}
	if s.Version != saveStateVersion {
		return &StateCorruptionError{Reason: "version mismatch"}
	}
	if m.Mapper == nil {
		return &StateCorruptionError{Reason: "no ROM loaded to hydrate into"}
	}

	if err := m.CPU.Restore(s.CPU); err != nil {
		return &StateCorruptionError{Reason: "cpu: " + err.Error()}
	}
	if err := m.PPU.Restore(s.PPU); err != nil {
		return &StateCorruptionError{Reason: "ppu: " + err.Error()}
	}
	if err := m.APU.Restore(s.APU); err != nil {
		return &StateCorruptionError{Reason: "apu: " + err.Error()}
	}
	if err := m.Bus.Restore(s.Bus); err != nil {
		return &StateCorruptionError{Reason: "bus ram: " + err.Error()}
	}
	if err := m.PPUBus.Restore(s.PPUBus); err != nil {
		return &StateCorruptionError{Reason: "ppu bus: " + err.Error()}
	}
	if err := m.Mapper.Restore(s.Mapper); err != nil {
		return &StateCorruptionError{Reason: "mapper: " + err.Error()}
	}
	if err := m.Pad1.Restore(s.Pad1); err != nil {
		return &StateCorruptionError{Reason: "pad1: " + err.Error()}
	}
	if err := m.Pad2.Restore(s.Pad2); err != nil {
		return &StateCorruptionError{Reason: "pad2: " + err.Error()}
	}

	m.Scheduler.Reset()
	return nil
}
