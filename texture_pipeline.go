// texture_pipeline.go - per-TMU texture sampling and combine (C5)

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
texture_pipeline.go - produces one ARGB texel per pixel per TMU: perspective
divide, LOD selection with dither, clamp/wrap addressing, format fetch and
decode, optional bilinear filtering, then the per-TMU combine stage that
folds the texel into the running "other" input for the color path.
*/

package voodoo

// texCoordIter carries one TMU's iterated S, T, W state for the pixel
// currently being shaded, in the same fixed-point precision as the FBI.
type texCoordIter struct {
	s, t, w int64 // Q14.18 s/t, Q2.30 w (shares FBI w gradient in practice)
}

// sampleResult is what one TMU produces for a pixel, ready to feed the
// per-TMU combine stage.
type sampleResult struct {
	argb uint32
}

// sampleTMU runs the full C5 pipeline for one TMU at one pixel.
func sampleTMU(t *tmuState, it texCoordIter, xPixel int) sampleResult {
	perspective := t.textureMode&texPerspective != 0

	var s64, t64 int64
	lod := int32(0)

	if perspective && it.w != 0 {
		recip, log2 := fastReciplog(it.w)
		s64 = (it.s * recip) >> 29
		t64 = (it.t * recip) >> 29
		lod = log2 >> 8
	} else {
		s64 = it.s
		t64 = it.t
	}

	if t.textureMode&texLODDither != 0 {
		lod += int32((xPixel & 3) - 2)
	}
	lod += t.lodbias

	if lod < t.lodmin {
		lod = t.lodmin
	}
	if lod > t.lodmax {
		lod = t.lodmax
	}
	ilod := int(lod)
	if ilod < 0 {
		ilod = 0
	}
	if ilod > 8 {
		ilod = 8
	}
	// If the selected LOD was never uploaded, fall back to the next
	// coarser present level (C3 invariant).
	for ilod < 8 && t.lodmask&(1<<uint(ilod)) == 0 {
		ilod++
	}

	smax := int32(t.wmask >> uint(ilod))
	tmax := int32(t.hmask >> uint(ilod))

	s0 := int32(s64 >> shift14_18)
	t0 := int32(t64 >> shift14_18)
	fracMask := int64(1)<<shift14_18 - 1
	u := uint8((s64 & fracMask) >> (shift14_18 - 8))
	v := uint8((t64 & fracMask) >> (shift14_18 - 8))

	clampOrWrap := func(coord, max int32, clamp bool) int32 {
		if clamp {
			if coord < 0 {
				return 0
			}
			if coord > max {
				return max
			}
			return coord
		}
		return coord & max
	}

	format := field(t.textureMode, texFormatMask, texFormatShift)
	bilinear := t.textureMode&texMagnify != 0

	fetch := func(sc, tc int32) uint32 {
		sc = clampOrWrap(sc, smax, t.textureMode&texClampS != 0)
		tc = clampOrWrap(tc, tmax, t.textureMode&texClampT != 0)
		stride := int(smax) + 1
		bpp := bytesPerTexel(format)
		texelIdx := int(tc)*stride + int(sc)
		addr := int(t.lodoffset[ilod]) + texelIdx*bpp
		if addr < 0 || addr+bpp > len(t.ram) {
			return 0xFFFF00FF
		}
		var raw uint16
		if bpp == 1 {
			raw = uint16(t.ram[addr])
		} else {
			raw = uint16(t.ram[addr]) | uint16(t.ram[addr+1])<<8
		}
		return decodeTexel(format, raw, t)
	}

	if !bilinear {
		return sampleResult{argb: fetch(s0, t0)}
	}

	c00 := fetch(s0, t0)
	c01 := fetch(s0+1, t0)
	c10 := fetch(s0, t0+1)
	c11 := fetch(s0+1, t0+1)
	return sampleResult{argb: bilerpARGB(c00, c01, c10, c11, u, v)}
}

// bilerpARGB performs the bilinear blend described in §4.5: linear
// interpolation of the four neighbor texels using u,v as 8-bit fractions.
func bilerpARGB(c00, c01, c10, c11 uint32, u, v uint8) uint32 {
	invU := 255 - uint32(u)
	invV := 255 - uint32(v)

	lerp := func(shift uint) uint32 {
		b00 := (c00 >> shift) & 0xFF
		b01 := (c01 >> shift) & 0xFF
		b10 := (c10 >> shift) & 0xFF
		b11 := (c11 >> shift) & 0xFF
		top := b00*invU + b01*uint32(u)
		bot := b10*invU + b11*uint32(u)
		return ((top*invV + bot*uint32(v)) >> 16) & 0xFF
	}
	a := lerp(24)
	r := lerp(16)
	g := lerp(8)
	b := lerp(0)
	return a<<24 | r<<16 | g<<8 | b
}

// tmuCombine applies TMU0's combine: folds its local texel into the
// "other" input (TMU1's sampled texel), using the same algebraic form as
// the color-path combine in pixel_pipeline.go but reading the TMU's own
// combine fields (set by GrTexCombine) rather than fbzColorPath's. The
// added term is always the local texel.
func tmuCombine(mode uint32, local, other uint32) uint32 {
	mselect := field(mode, texCCMSelectMask, texCCMSelectShift)
	zeroOther := mode&texCCZeroOther != 0
	subLocal := mode&texCCSubClocal != 0
	invert := mode&texCCInvertOutput != 0

	oa, or_, og, ob := colorComponents(other)
	la, lr, lg, lb := colorComponents(local)

	combine := func(o, l uint8) int32 {
		var co int32 = int32(o)
		if zeroOther {
			co = 0
		}
		cl := int32(0)
		if subLocal {
			cl = int32(l)
		}
		diff := co - cl
		var m int32
		switch mselect {
		case mselectZero:
			m = 0
		case mselectCLocal:
			m = int32(l)
		case mselectAOther:
			m = int32(oa)
		case mselectALocal:
			m = int32(la)
		default:
			m = 255
		}
		out := diff*m/255 + int32(l)
		if invert {
			out = 255 - out
		}
		return out
	}

	a := clampToU8(combine(oa, la))
	r := clampToU8(combine(or_, lr))
	g := clampToU8(combine(og, lg))
	b := clampToU8(combine(ob, lb))
	return packARGB(a, r, g, b)
}
