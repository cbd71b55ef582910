// glide_texture.go - texture upload and sampling-mode entry points (C7)

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

package voodoo

// GrTexSource selects which TMU's texture RAM a download targets and
// records the base address for LOD 0.
func (c *Context) GrTexSource(tmu int, baseAddr uint32, format uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if tmu < 0 || tmu > 1 {
		return
	}
	t := &c.tmu[tmu]
	t.texBase[0] = baseAddr
	t.textureMode = setField(t.textureMode, texFormatMask, texFormatShift, format)
	t.regdirty = true
}

// GrTexDownloadMipMap uploads an entire mipmap chain's raw texel bytes
// starting at the TMU's configured base address.
func (c *Context) GrTexDownloadMipMap(tmu int, data []byte, levelMask uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if tmu < 0 || tmu > 1 {
		return
	}
	t := &c.tmu[tmu]
	t.downloadMipMap(t.texBase[0], data, levelMask)
}

// GrTexDownloadMipMapLevel uploads one LOD's texel data at the given
// byte address, recording that address as the LOD's base.
func (c *Context) GrTexDownloadMipMapLevel(tmu int, lod int, addr uint32, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if tmu < 0 || tmu > 1 || lod < 0 || lod > 8 {
		return
	}
	t := &c.tmu[tmu]
	t.texBase[lod] = addr
	t.lodmask |= 1 << uint(lod)
	t.downloadMipMap(addr, data, 0)
}

// GrTexDownloadMipMapLevelPartial uploads a byte sub-range within LOD's
// extent, used for incremental texture streaming.
func (c *Context) GrTexDownloadMipMapLevelPartial(tmu int, addr uint32, data []byte, lodStart, lodEnd uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if tmu < 0 || tmu > 1 {
		return
	}
	c.tmu[tmu].downloadMipMapPartial(addr, data, lodStart, lodEnd)
}

// GrTexDownloadTable uploads either the 256-entry color palette or the
// alpha palette (kind selects which). NCC tables are uploaded through
// GrTexDownloadTableNCC.
func (c *Context) GrTexDownloadTable(tmu int, kind int, entries []uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if tmu < 0 || tmu > 1 {
		return
	}
	t := &c.tmu[tmu]
	switch kind {
	case TexTablePalette:
		t.downloadPalette(entries)
	case TexTableAlphaPalette:
		t.downloadAlphaPalette(entries)
	}
}

// TexTable selects which table GrTexDownloadTable writes.
const (
	TexTablePalette = iota
	TexTableAlphaPalette
)

// GrTexDownloadTableNCC uploads a 24-coefficient Y/I/Q NCC table (table
// 0 or 1).
func (c *Context) GrTexDownloadTableNCC(tmu int, table int, y [16]int32, i [4]int32, q [4]int32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if tmu < 0 || tmu > 1 {
		return
	}
	c.tmu[tmu].writeNCCEntry(table, y, i, q)
}

// GrTexFilterMode selects point or bilinear sampling for both minify and
// magnify paths.
func (c *Context) GrTexFilterMode(tmu int, bilinear bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if tmu < 0 || tmu > 1 {
		return
	}
	t := &c.tmu[tmu]
	if bilinear {
		t.textureMode |= texMinify | texMagnify
	} else {
		t.textureMode &^= texMinify | texMagnify
	}
}

// GrTexMipMapMode selects whether trilinear blending is requested. The
// spec leaves trilinear unimplemented (§9); it is accepted here and
// recorded but the pipeline always falls back to the selected single LOD.
func (c *Context) GrTexMipMapMode(tmu int, trilinear bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if tmu < 0 || tmu > 1 {
		return
	}
	t := &c.tmu[tmu]
	if trilinear {
		t.textureMode |= texTrilinear
	} else {
		t.textureMode &^= texTrilinear
	}
}

// GrTexLodBiasValue adds a signed bias to the LOD selected by the
// perspective-divide magnitude.
func (c *Context) GrTexLodBiasValue(tmu int, bias int32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if tmu < 0 || tmu > 1 {
		return
	}
	c.tmu[tmu].lodbias = bias
}

// GrTexClampMode sets clamp (true) vs wrap (false) addressing
// independently for S and T.
func (c *Context) GrTexClampMode(tmu int, clampS, clampT bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if tmu < 0 || tmu > 1 {
		return
	}
	t := &c.tmu[tmu]
	if clampS {
		t.textureMode |= texClampS
	} else {
		t.textureMode &^= texClampS
	}
	if clampT {
		t.textureMode |= texClampT
	} else {
		t.textureMode &^= texClampT
	}
}

// GrTexDetailControl is accepted for API completeness; detail textures
// are outside this implementation's scope (see design notes), so this
// only records the bit in textureMode for later introspection.
func (c *Context) GrTexDetailControl(tmu int, enable bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if tmu < 0 || tmu > 1 {
		return
	}
	t := &c.tmu[tmu]
	if enable {
		t.textureMode |= texDetail
	} else {
		t.textureMode &^= texDetail
	}
}

// GrTexMinAddress reports the TMU's current LOD 0 base address and
// GrTexMaxAddress the size in bytes of the TMU's texture RAM.
func (c *Context) GrTexMinAddress(tmu int) uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if tmu < 0 || tmu > 1 {
		return 0
	}
	return c.tmu[tmu].texBase[0]
}

func (c *Context) GrTexMaxAddress(tmu int) uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if tmu < 0 || tmu > 1 {
		return 0
	}
	return uint32(len(c.tmu[tmu].ram))
}

// GrTexTextureMemRequired computes the total byte footprint of a texture
// with the given base dimensions and format; when withMipMaps is set it
// also sums the halved dimensions at each LOD down to 1x1.
func GrTexTextureMemRequired(width, height int, format uint32, withMipMaps bool) uint32 {
	bpp := bytesPerTexel(format)
	var total uint32
	w, h := width, height
	for {
		total += uint32(w * h * bpp)
		if !withMipMaps || (w == 1 && h == 1) {
			break
		}
		if w > 1 {
			w >>= 1
		}
		if h > 1 {
			h >>= 1
		}
	}
	return total
}
