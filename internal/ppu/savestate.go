package ppu

import (
	"bytes"
	"encoding/gob"
)

// snapshot is the complete, plain-record PPU state: everything a
// hydrate needs to resume rendering from the exact dot it was frozen
// at, since a freeze can only happen between dots, not mid-fetch.
type snapshot struct {
	Ctrl, Mask, Status uint8
	OAMAddr            uint8
	OAM                [256]uint8

	V, T  uint16
	FineX uint8
	W     bool

	ReadBuffer uint8

	Scanline int
	Dot      int
	FrameOdd bool

	BGPatternLo, BGPatternHi uint16
	BGAttribLo, BGAttribHi   uint16
	NTByte, ATByte, PTLo, PTHi uint8

	SecondaryOAM    [32]uint8
	SpriteCount     int
	SpritePatternLo [8]uint8
	SpritePatternHi [8]uint8
	SpriteAttrib    [8]uint8
	SpriteX         [8]uint8
	SpriteIsZero    [8]bool
}

// Snapshot returns a gob-encoded copy of the PPU's internal state. The
// output buffer and frame-complete flag are excluded: they are derived
// render output, not state a hydrate needs to resume from.
func (p *PPU) Snapshot() []byte {
	s := snapshot{
		Ctrl: p.ctrl, Mask: p.mask, Status: p.status,
		OAMAddr: p.oamAddr, OAM: p.OAM,
		V: p.v, T: p.t, FineX: p.fineX, W: p.w,
		ReadBuffer: p.readBuffer,
		Scanline:   p.scanline, Dot: p.dot, FrameOdd: p.frameOdd,
		BGPatternLo: p.bgPatternLo, BGPatternHi: p.bgPatternHi,
		BGAttribLo: p.bgAttribLo, BGAttribHi: p.bgAttribHi,
		NTByte: p.ntByte, ATByte: p.atByte, PTLo: p.ptLo, PTHi: p.ptHi,
		SecondaryOAM:    p.secondaryOAM,
		SpriteCount:     p.spriteCount,
		SpritePatternLo: p.spritePatternLo,
		SpritePatternHi: p.spritePatternHi,
		SpriteAttrib:    p.spriteAttrib,
		SpriteX:         p.spriteX,
		SpriteIsZero:    p.spriteIsZero,
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(s); err != nil {
		panic(err) // fixed-size plain struct, encoding cannot fail
	}
	return buf.Bytes()
}

// Restore replaces the PPU's internal state with a blob from Snapshot.
func (p *PPU) Restore(blob []byte) error {
	var s snapshot
	if err := gob.NewDecoder(bytes.NewReader(blob)).Decode(&s); err != nil {
		return err
	}
	p.ctrl, p.mask, p.status = s.Ctrl, s.Mask, s.Status
	p.oamAddr, p.OAM = s.OAMAddr, s.OAM
	p.v, p.t, p.fineX, p.w = s.V, s.T, s.FineX, s.W
	p.readBuffer = s.ReadBuffer
	p.scanline, p.dot, p.frameOdd = s.Scanline, s.Dot, s.FrameOdd
	p.bgPatternLo, p.bgPatternHi = s.BGPatternLo, s.BGPatternHi
	p.bgAttribLo, p.bgAttribHi = s.BGAttribLo, s.BGAttribHi
	p.ntByte, p.atByte, p.ptLo, p.ptHi = s.NTByte, s.ATByte, s.PTLo, s.PTHi
	p.secondaryOAM = s.SecondaryOAM
	p.spriteCount = s.SpriteCount
	p.spritePatternLo = s.SpritePatternLo
	p.spritePatternHi = s.SpritePatternHi
	p.spriteAttrib = s.SpriteAttrib
	p.spriteX = s.SpriteX
	p.spriteIsZero = s.SpriteIsZero
	return nil
}
