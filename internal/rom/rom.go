// Package rom parses iNES ROM images into an cart.Cartridge descriptor.
package rom

import (
	"errors"
	"fmt"

	"nescore/internal/cart"
)

// LoaderError is the sentinel error type for every way a ROM image can
// fail to load; callers match it with errors.As. It is the only error
// type that crosses the package boundary — bad headers, truncated
// files and unsupported mappers are all reported through it rather
// than ad hoc fmt.Errorf values, so callers have one type to check.
type LoaderError struct {
	Reason string
}

func (e *LoaderError) Error() string {
	return fmt.Sprintf("rom: %s", e.Reason)
}

const (
	headerSize    = 16
	trainerSize   = 512
	prgBankSize   = 16 * 1024
	chrBankSize   = 8 * 1024
	magic0, magic1, magic2, magic3 = 'N', 'E', 'S', 0x1A
)

// Load parses a raw iNES (.nes) file image into a Cartridge. Supported
// mappers are 0 (NROM) and 1 (MMC1); any other mapper number, a bad
// magic, or a file shorter than its header claims produces a
// *LoaderError.
func Load(data []uint8) (*cart.Cartridge, error) {
	if len(data) < headerSize {
		return nil, &LoaderError{Reason: fmt.Sprintf("file too short for iNES header: %d bytes", len(data))}
	}

	if data[0] != magic0 || data[1] != magic1 || data[2] != magic2 || data[3] != magic3 {
		return nil, &LoaderError{Reason: fmt.Sprintf("bad magic bytes: %02X %02X %02X %02X", data[0], data[1], data[2], data[3])}
	}

	prgBanks := int(data[4])
	chrBanks := int(data[5])
	flags6 := data[6]
	flags7 := data[7]

	hasTrainer := flags6&0x04 != 0
	hasBattery := flags6&0x02 != 0
	fourScreen := flags6&0x08 != 0

	mapperID := (flags7 & 0xF0) | (flags6 >> 4)
	if mapperID != 0 && mapperID != 1 {
		return nil, &LoaderError{Reason: fmt.Sprintf("unsupported mapper %d (only NROM and MMC1 are implemented)", mapperID)}
	}

	offset := headerSize
	if hasTrainer {
		offset += trainerSize
	}

	prgSize := prgBanks * prgBankSize
	if len(data) < offset+prgSize {
		return nil, &LoaderError{Reason: fmt.Sprintf("truncated PRG-ROM: need %d bytes at offset %d, have %d", prgSize, offset, len(data)-offset)}
	}
	prg := make([]uint8, prgSize)
	copy(prg, data[offset:offset+prgSize])
	offset += prgSize

	chrSize := chrBanks * chrBankSize
	var chr []uint8
	chrIsRAM := chrBanks == 0
	if chrIsRAM {
		chr = make([]uint8, chrBankSize) // 8 KiB CHR-RAM default
	} else {
		if len(data) < offset+chrSize {
			return nil, &LoaderError{Reason: fmt.Sprintf("truncated CHR-ROM: need %d bytes at offset %d, have %d", chrSize, offset, len(data)-offset)}
		}
		chr = make([]uint8, chrSize)
		copy(chr, data[offset:offset+chrSize])
	}

	var mirror cart.Mirroring
	switch {
	case fourScreen:
		mirror = cart.MirrorFourScreen
	case flags6&0x01 != 0:
		mirror = cart.MirrorVertical
	default:
		mirror = cart.MirrorHorizontal
	}

	return &cart.Cartridge{
		PRG:        prg,
		CHR:        chr,
		CHRIsRAM:   chrIsRAM,
		HasBattery: hasBattery,
		MapperID:   mapperID,
		Mirror:     mirror,
	}, nil
}

// IsLoaderError reports whether err is (or wraps) a *LoaderError.
func IsLoaderError(err error) bool {
	var le *LoaderError
	return errors.As(err, &le)
}
