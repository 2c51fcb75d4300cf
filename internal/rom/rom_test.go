package rom

import "testing"

func buildHeader(prgBanks, chrBanks, flags6, flags7 uint8) []uint8 {
	h := make([]uint8, 16)
	h[0], h[1], h[2], h[3] = 'N', 'E', 'S', 0x1A
	h[4] = prgBanks
	h[5] = chrBanks
	h[6] = flags6
	h[7] = flags7
	return h
}

func TestLoadRejectsBadMagic(t *testing.T) {
	data := make([]uint8, 16+16*1024)
	copy(data, []uint8{'B', 'A', 'D', 0x00})
	_, err := Load(data)
	if !IsLoaderError(err) {
		t.Fatalf("expected LoaderError, got %v", err)
	}
}

func TestLoadRejectsTruncatedPRG(t *testing.T) {
	data := buildHeader(2, 1, 0, 0) // claims 32 KiB PRG but supplies none
	_, err := Load(data)
	if !IsLoaderError(err) {
		t.Fatalf("expected LoaderError for truncated PRG, got %v", err)
	}
}

func TestLoadRejectsUnsupportedMapper(t *testing.T) {
	data := buildHeader(1, 1, 0x00, 0x20) // mapper = (0x20>>4)<<4 | (0>>4) = 32
	data = append(data, make([]uint8, 1*16*1024+1*8*1024)...)
	_, err := Load(data)
	if !IsLoaderError(err) {
		t.Fatalf("expected LoaderError for unsupported mapper, got %v", err)
	}
}

func TestLoadNROMProducesUsableCartridge(t *testing.T) {
	data := buildHeader(1, 1, 0x01, 0x00) // vertical mirroring, mapper 0
	data = append(data, make([]uint8, 1*16*1024+1*8*1024)...)
	c, err := Load(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.MapperID != 0 {
		t.Errorf("expected mapper 0, got %d", c.MapperID)
	}
	if len(c.PRG) != 16*1024 {
		t.Errorf("expected 16 KiB PRG, got %d", len(c.PRG))
	}
	if c.CHRIsRAM {
		t.Errorf("expected CHR-ROM, got CHR-RAM")
	}
}

func TestLoadZeroCHRBanksYieldsCHRRAM(t *testing.T) {
	data := buildHeader(1, 0, 0x00, 0x00)
	data = append(data, make([]uint8, 1*16*1024)...)
	c, err := Load(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !c.CHRIsRAM {
		t.Errorf("expected CHR-RAM when chrBanks == 0")
	}
	if len(c.CHR) != 8*1024 {
		t.Errorf("expected 8 KiB CHR-RAM, got %d", len(c.CHR))
	}
}

func TestLoadMapperNumberCombinesBothFlagBytes(t *testing.T) {
	// mapper 1 = MMC1: flags6 high nibble = 1, flags7 high nibble = 0
	data := buildHeader(2, 1, 0x10, 0x00)
	data = append(data, make([]uint8, 2*16*1024+1*8*1024)...)
	c, err := Load(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.MapperID != 1 {
		t.Errorf("expected mapper 1, got %d", c.MapperID)
	}
}

func TestLoadHeaderTooShort(t *testing.T) {
	_, err := Load([]uint8{0x4E, 0x45})
	if !IsLoaderError(err) {
		t.Fatalf("expected LoaderError, got %v", err)
	}
}
