package voodoo

import "testing"

func TestDecodeTexel_RGB565RoundTrips(t *testing.T) {
	tmu := newTMUState(1 << 16)
	raw := uint16(0x1F<<11 | 0x3F<<5 | 0x1F) // full white in 565
	got := decodeTexel(texFmtRGB565, raw, tmu)
	a, r, g, b := colorComponents(got)
	if a != 0xFF || r != 0xFF || g != 0xFF || b != 0xFF {
		t.Fatalf("decodeTexel(RGB565, white) = %08x, want opaque white", got)
	}
}

func TestDecodeTexel_UnknownFormatIsMagenta(t *testing.T) {
	tmu := newTMUState(1 << 16)
	got := decodeTexel(0xFFFF, 0, tmu)
	if got != 0xFFFF00FF {
		t.Fatalf("decodeTexel(unknown) = %08x, want magenta", got)
	}
}

func TestDecodeTexel_PaletteLookup(t *testing.T) {
	tmu := newTMUState(1 << 16)
	tmu.downloadPalette([]uint32{packARGB(0xFF, 1, 2, 3)})
	got := decodeTexel(texFmt8BitPalette, 0, tmu)
	if got != packARGB(0xFF, 1, 2, 3) {
		t.Fatalf("palette lookup = %08x, want %08x", got, packARGB(0xFF, 1, 2, 3))
	}
}

func TestGrTexTextureMemRequired_NoMipMaps(t *testing.T) {
	got := GrTexTextureMemRequired(64, 64, texFmtRGB565, false)
	want := uint32(64 * 64 * 2)
	if got != want {
		t.Fatalf("GrTexTextureMemRequired = %d, want %d", got, want)
	}
}

func TestGrTexTextureMemRequired_WithMipMaps(t *testing.T) {
	got := GrTexTextureMemRequired(4, 4, texFmtRGB565, true)
	// 4x4 + 2x2 + 1x1 texels, 2 bytes each.
	want := uint32((16 + 4 + 1) * 2)
	if got != want {
		t.Fatalf("GrTexTextureMemRequired(mipmaps) = %d, want %d", got, want)
	}
}

func TestTexSourceAndDownload(t *testing.T) {
	c := newTestContext(t, 32, 32)
	c.GrTexSource(0, 0, texFmtRGB565)
	data := make([]byte, 8*8*2)
	for i := range data {
		data[i] = 0xFF
	}
	c.GrTexDownloadMipMap(0, data, 1)
	c.tmu[0].recompute()
	if c.tmu[0].regdirty {
		t.Fatalf("expected regdirty to clear after recompute")
	}
}

// TestTexDownloadMipMap_MultiLevelMask exercises a bulk mipmap upload
// spanning LODs 0-2 and checks that recompute() neither collapses
// lodmask back to bit 0 nor mis-sizes lodoffset for a 2-byte-per-texel
// format (RGB565).
func TestTexDownloadMipMap_MultiLevelMask(t *testing.T) {
	c := newTestContext(t, 32, 32)
	c.GrTexSource(0, 0, texFmtRGB565)

	// 8x8 LOD0 + 4x4 LOD1 + 2x2 LOD2, 2 bytes/texel, laid out contiguously.
	data := make([]byte, (64+16+4)*2)
	c.GrTexDownloadMipMap(0, data, 0b111)
	c.tmu[0].recompute()

	if c.tmu[0].regdirty {
		t.Fatalf("expected regdirty to clear after recompute")
	}
	if c.tmu[0].lodmask != 0b111 {
		t.Fatalf("lodmask = %#x, want %#x", c.tmu[0].lodmask, 0b111)
	}

	wantOffsets := [3]uint32{0, 64 * 2, (64 + 16) * 2}
	for lod, want := range wantOffsets {
		if got := c.tmu[0].lodoffset[lod]; got != want {
			t.Fatalf("lodoffset[%d] = %d, want %d", lod, got, want)
		}
	}
}

func TestTexClampMode(t *testing.T) {
	c := newTestContext(t, 32, 32)
	c.GrTexClampMode(0, true, false)
	if c.tmu[0].textureMode&texClampS == 0 {
		t.Errorf("expected texClampS set")
	}
	if c.tmu[0].textureMode&texClampT != 0 {
		t.Errorf("expected texClampT clear")
	}
}
