package ppu

// nesPalette maps the 64 NES color indices to 0xRRGGBBAA values.
var nesPalette = [64]uint32{
	rgb(0x6D, 0x6D, 0x6D), rgb(0x00, 0x24, 0x92), rgb(0x00, 0x00, 0xDB), rgb(0x6D, 0x49, 0xDB),
	rgb(0x92, 0x00, 0x6D), rgb(0xB6, 0x00, 0x6D), rgb(0xB6, 0x24, 0x00), rgb(0x92, 0x49, 0x00),
	rgb(0x6D, 0x49, 0x00), rgb(0x24, 0x49, 0x00), rgb(0x00, 0x6D, 0x24), rgb(0x00, 0x92, 0x00),
	rgb(0x00, 0x49, 0x49), rgb(0x00, 0x00, 0x00), rgb(0x00, 0x00, 0x00), rgb(0x00, 0x00, 0x00),
	rgb(0xB6, 0xB6, 0xB6), rgb(0x00, 0x6D, 0xDB), rgb(0x00, 0x49, 0xFF), rgb(0x92, 0x00, 0xFF),
	rgb(0xB6, 0x00, 0xFF), rgb(0xFF, 0x00, 0x92), rgb(0xFF, 0x00, 0x00), rgb(0xDB, 0x6D, 0x00),
	rgb(0x92, 0x6D, 0x00), rgb(0x24, 0x92, 0x00), rgb(0x00, 0x92, 0x00), rgb(0x00, 0xB6, 0x6D),
	rgb(0x00, 0x92, 0x92), rgb(0x24, 0x24, 0x24), rgb(0x00, 0x00, 0x00), rgb(0x00, 0x00, 0x00),
	rgb(0xFF, 0xFF, 0xFF), rgb(0x6D, 0xB6, 0xFF), rgb(0x92, 0x92, 0xFF), rgb(0xDB, 0x6D, 0xFF),
	rgb(0xFF, 0x00, 0xFF), rgb(0xFF, 0x6D, 0xFF), rgb(0xFF, 0x92, 0x00), rgb(0xFF, 0xB6, 0x00),
	rgb(0xDB, 0xDB, 0x00), rgb(0x6D, 0xDB, 0x00), rgb(0x00, 0xFF, 0x00), rgb(0x49, 0xFF, 0xDB),
	rgb(0x00, 0xFF, 0xFF), rgb(0x49, 0x49, 0x49), rgb(0x00, 0x00, 0x00), rgb(0x00, 0x00, 0x00),
	rgb(0xFF, 0xFF, 0xFF), rgb(0xB6, 0xDB, 0xFF), rgb(0xDB, 0xB6, 0xFF), rgb(0xFF, 0xB6, 0xFF),
	rgb(0xFF, 0x92, 0xFF), rgb(0xFF, 0xB6, 0xB6), rgb(0xFF, 0xDB, 0x92), rgb(0xFF, 0xFF, 0x49),
	rgb(0xFF, 0xFF, 0x6D), rgb(0xB6, 0xFF, 0x49), rgb(0x92, 0xFF, 0x6D), rgb(0x49, 0xFF, 0xDB),
	rgb(0x92, 0xDB, 0xFF), rgb(0x92, 0x92, 0x92), rgb(0x00, 0x00, 0x00), rgb(0x00, 0x00, 0x00),
}

func rgb(r, g, b uint8) uint32 {
	return uint32(r)<<24 | uint32(g)<<16 | uint32(b)<<8 | 0xFF
}
