// texture.go - texture memory management and format decode (C3)

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine

License: GPLv3 or later
*/

/*
texture.go - per-TMU texture RAM download and the format-to-ARGB lookup
tables for the 8-bit and 16-bit non-palettized formats (RGB332, A8, I8,
AI44, RGB565, ARGB1555, ARGB4444, AI88). Palettized and NCC formats look
into their own per-context/per-TMU 256-entry tables instead.
*/

package voodoo

// format decode tables, precomputed once at package init (C3: "Format→ARGB
// lookup tables are precomputed once at startup for the 8-bit and 16-bit
// non-palettized formats").
var (
	rgb332Table   [256]uint32
	alpha8Table   [256]uint32
	int8Table     [256]uint32
	ai44Table     [256]uint32
	rgb565Table   [65536]uint32
	argb1555Table [65536]uint32
	argb4444Table [65536]uint32
	ai88Table     [65536]uint32
)

func init() {
	for i := 0; i < 256; i++ {
		r3 := (i >> 5) & 0x7
		g3 := (i >> 2) & 0x7
		b2 := i & 0x3
		r := uint8(r3 * 255 / 7)
		g := uint8(g3 * 255 / 7)
		b := uint8(b2 * 255 / 3)
		rgb332Table[i] = packARGB(0xFF, r, g, b)

		alpha8Table[i] = packARGB(uint8(i), 0, 0, 0)

		v := uint8(i)
		int8Table[i] = packARGB(0xFF, v, v, v)

		a4 := (i >> 4) & 0xF
		i4 := i & 0xF
		a := uint8(a4 * 255 / 15)
		iv := uint8(i4 * 255 / 15)
		ai44Table[i] = packARGB(a, iv, iv, iv)
	}

	for i := 0; i < 65536; i++ {
		r5 := (i >> 11) & 0x1F
		g6 := (i >> 5) & 0x3F
		b5 := i & 0x1F
		r := uint8(r5 * 255 / 31)
		g := uint8(g6 * 255 / 63)
		b := uint8(b5 * 255 / 31)
		rgb565Table[i] = packARGB(0xFF, r, g, b)

		a1 := (i >> 15) & 0x1
		r5b := (i >> 10) & 0x1F
		g5b := (i >> 5) & 0x1F
		b5b := i & 0x1F
		aVal := uint8(0)
		if a1 != 0 {
			aVal = 0xFF
		}
		argb1555Table[i] = packARGB(aVal, uint8(r5b*255/31), uint8(g5b*255/31), uint8(b5b*255/31))

		a4b := (i >> 12) & 0xF
		r4 := (i >> 8) & 0xF
		g4 := (i >> 4) & 0xF
		b4 := i & 0xF
		argb4444Table[i] = packARGB(uint8(a4b*255/15), uint8(r4*255/15), uint8(g4*255/15), uint8(b4*255/15))

		a8 := (i >> 8) & 0xFF
		i8 := i & 0xFF
		ai88Table[i] = packARGB(uint8(a8), uint8(i8), uint8(i8), uint8(i8))
	}
}

// downloadMipMap copies data into TMU RAM at the given byte address and
// marks regdirty, honoring an optional level mask restricting which LODs
// are considered present.
func (t *tmuState) downloadMipMap(addr uint32, data []byte, levelMask uint32) {
	end := int(addr) + len(data)
	if end > len(t.ram) {
		end = len(t.ram)
	}
	if int(addr) >= len(t.ram) {
		return
	}
	copy(t.ram[addr:end], data[:end-int(addr)])
	if levelMask != 0 {
		t.lodmask = levelMask
	}
	t.regdirty = true
}

// downloadMipMapPartial updates a contiguous sub-range within a single
// LOD's byte extent; it must not extend past that LOD's boundary.
func (t *tmuState) downloadMipMapPartial(addr uint32, data []byte, lodStart, lodEnd uint32) {
	maxLen := int(lodEnd - lodStart)
	if maxLen < 0 {
		maxLen = 0
	}
	if len(data) > maxLen {
		data = data[:maxLen]
	}
	t.downloadMipMap(addr, data, 0)
}

// downloadPalette writes up to 256 ARGB entries into the color palette.
func (t *tmuState) downloadPalette(entries []uint32) {
	n := copy(t.palette[:], entries)
	_ = n
}

func (t *tmuState) downloadAlphaPalette(entries []uint32) {
	copy(t.alphaPalette[:], entries)
}

func (t *tmuState) writeNCCEntry(table int, y [16]int32, i [4]int32, q [4]int32) {
	if table < 0 || table > 1 {
		return
	}
	t.ncc[table].y = y
	t.ncc[table].i = i
	t.ncc[table].q = q
	t.ncc[table].dirty = true
}

// decodeTexel converts a raw texel (up to 2 bytes, little-endian) into
// ARGB8888 using the format selected by textureMode. Unknown format codes
// render magenta to aid debugging, per spec.
func decodeTexel(format uint32, raw uint16, t *tmuState) uint32 {
	switch format {
	case texFmt8BitPalette, texFmtP8:
		return t.palette[raw&0xFF]
	case texFmtA8:
		return alpha8Table[raw&0xFF]
	case texFmtI8:
		return int8Table[raw&0xFF]
	case texFmtAI44:
		return ai44Table[raw&0xFF]
	case texFmtARGB8332:
		return rgb332Table[raw&0xFF]
	case texFmtAI88:
		return ai88Table[raw&0xFFFF]
	case texFmtRGB565:
		return rgb565Table[raw&0xFFFF]
	case texFmtARGB1555:
		return argb1555Table[raw&0xFFFF]
	case texFmtARGB4444:
		return argb4444Table[raw&0xFFFF]
	case texFmtYIQ, texFmtAYIQ8422:
		idx := 0
		if format == texFmtYIQ {
			idx = 0
		} else {
			idx = 1
		}
		return t.ncc[idx].decoded[raw&0xFF]
	default:
		return 0xFFFF00FF // magenta: unknown format
	}
}

// bytesPerTexel reports the raw storage width for a texture format: 1 or
// 2 bytes, used by the fetch stage in texture_pipeline.go.
func bytesPerTexel(format uint32) int {
	switch format {
	case texFmt8BitPalette, texFmtP8, texFmtA8, texFmtI8, texFmtAI44, texFmtARGB8332, texFmtYIQ:
		return 1
	default:
		return 2
	}
}
