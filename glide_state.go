// glide_state.go - mode/register setter entry points (C7)

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
glide_state.go - each GrFoo mode setter packs its arguments directly into
the corresponding register field via setField, the same shape as the
teacher's HandleWrite bit-twiddling for VERTEX_* and COLOR_* registers, just
addressed by name instead of by MMIO offset.
*/

package voodoo

// GrColorCombine configures the RGB color-combine unit of fbzColorPath.
func (c *Context) GrColorCombine(rgbSelect, aSelect, mselect uint32, addASelect uint32, invertOutput bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r := c.fbi.fbzColorPath
	r = setField(r, fcpRGBSelectMask, fcpRGBSelectShift, rgbSelect)
	r = setField(r, fcpASelectMask, fcpASelectShift, aSelect)
	r = setField(r, fcpCCMSelectMask, fcpCCMSelectShift, mselect)
	r = setField(r, fcpCCAddASelect, 13, addASelect)
	if invertOutput {
		r |= fcpCCInvertOutput
	} else {
		r &^= fcpCCInvertOutput
	}
	c.fbi.fbzColorPath = r
}

// GrAlphaCombine configures the alpha-combine unit of fbzColorPath.
func (c *Context) GrAlphaCombine(amSelect uint32, localSelect bool, invertOutput bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r := c.fbi.fbzColorPath
	r = setField(r, fcpCCAMSelectMask, fcpCCAMSelectShift, amSelect)
	if localSelect {
		r |= fcpCCALocalSelect
	} else {
		r &^= fcpCCALocalSelect
	}
	if invertOutput {
		r |= fcpCAInvertOutput
	} else {
		r &^= fcpCAInvertOutput
	}
	c.fbi.fbzColorPath = r
}

// GrTexCombine configures a TMU's local/other combine path, reusing the
// same mselect taxonomy as the color-combine unit but stored in
// textureMode's own combine fields (bits 18+) so it never aliases the
// addressing/filtering bits below.
func (c *Context) GrTexCombine(tmu int, rgbSelect, aSelect uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if tmu < 0 || tmu > 1 {
		return
	}
	t := &c.tmu[tmu]
	t.textureMode = setField(t.textureMode, texCCRgbSelectMask, texCCRgbSelectShift, rgbSelect)
	t.textureMode = setField(t.textureMode, texCCASelectMask, texCCASelectShift, aSelect)
	t.regdirty = true
}

// GrAlphaBlendFunction sets the four blend factors (RGB src/dst, alpha
// src/dst) in alphaMode, enabling the blend stage unless all four
// factors amount to a pass-through (ONE, ZERO, ONE, ZERO).
func (c *Context) GrAlphaBlendFunction(srcRGB, dstRGB, srcA, dstA uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r := c.fbi.alphaMode
	r = setField(r, alphaSrcRGB, 8, srcRGB)
	r = setField(r, alphaDstRGB, 12, dstRGB)
	r = setField(r, alphaSrcA, 16, srcA)
	r = setField(r, alphaDstA, 20, dstA)

	identity := srcRGB == blendOne && dstRGB == blendZero &&
		srcA == blendOne && dstA == blendZero
	if identity {
		r &^= alphaBlendEn
	} else {
		r |= alphaBlendEn
	}
	c.fbi.alphaMode = r
}

// GrAlphaTestFunction sets the alpha compare function (cmpNever..cmpAlways).
func (c *Context) GrAlphaTestFunction(fn int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r := setField(c.fbi.alphaMode, alphaTestFunc, 1, uint32(fn))
	if fn == cmpAlways {
		r &^= alphaTestEn
	} else {
		r |= alphaTestEn
	}
	c.fbi.alphaMode = r
}

// GrAlphaTestReferenceValue sets the reference byte alphaTestFunc compares
// the pixel's alpha against.
func (c *Context) GrAlphaTestReferenceValue(ref uint8) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fbi.alphaMode = setField(c.fbi.alphaMode, alphaRef, 24, uint32(ref))
}

// GrDepthBufferMode toggles whether the depth buffer participates at all.
func (c *Context) GrDepthBufferMode(enable bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if enable {
		c.fbi.fbzMode |= fbzDepthEnable
	} else {
		c.fbi.fbzMode &^= fbzDepthEnable
	}
}

// GrDepthBufferFunction sets the depth compare function.
func (c *Context) GrDepthBufferFunction(fn int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fbi.fbzMode = setField(c.fbi.fbzMode, fbzDepthFunc, 5, uint32(fn))
}

// GrDepthMask toggles whether passing pixels write the depth buffer.
func (c *Context) GrDepthMask(enable bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if enable {
		c.fbi.fbzMode |= fbzDepthWrite
	} else {
		c.fbi.fbzMode &^= fbzDepthWrite
	}
}

// GrDepthBiasLevel sets a signed bias added to the depth value before
// the compare (stored in zaColor's low bits per the teacher's layout).
func (c *Context) GrDepthBiasLevel(bias int16) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fbi.zaColor = (c.fbi.zaColor &^ 0xFFFF) | uint32(uint16(bias))
}

// GrConstantColorValue sets color1, the constant color combine inputs
// reference via ccSelectColor1.
func (c *Context) GrConstantColorValue(argb uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fbi.color1 = argb
}

// GrChromakeyMode enables or disables chroma-key rejection.
func (c *Context) GrChromakeyMode(enable bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if enable {
		c.fbi.fbzMode |= fbzChromakey
	} else {
		c.fbi.fbzMode &^= fbzChromakey
	}
}

// GrChromakeyValue sets the exact chroma-key color.
func (c *Context) GrChromakeyValue(argb uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fbi.chromaKey = argb
}

// GrChromaRangeValue sets the per-channel tolerance around the chroma key.
func (c *Context) GrChromaRangeValue(rng uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fbi.chromaRange = rng
}

// GrFogMode toggles fog application and its source (const/iterated/z).
func (c *Context) GrFogMode(enable, useZ bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r := c.fbi.fogMode
	if enable {
		r |= fogEnable
	} else {
		r &^= fogEnable
	}
	if useZ {
		r |= fogZAlpha
	} else {
		r &^= fogZAlpha
	}
	c.fbi.fogMode = r
}

// GrFogColorValue sets the flat fog color blended in at full fog.
func (c *Context) GrFogColorValue(argb uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fbi.fogColor = argb
}

// GrFogTable loads the 64-entry fog density table and recomputes each
// entry's delta to the next, matching the hardware's linear-interpolated
// fog ramp.
func (c *Context) GrFogTable(values [fogTableSize]uint8) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := 0; i < fogTableSize; i++ {
		c.fbi.fogTable[i].value = values[i]
	}
	for i := 0; i < fogTableSize; i++ {
		next := i + 1
		if next >= fogTableSize {
			next = fogTableSize - 1
		}
		c.fbi.fogTable[i].delta = int8(int(c.fbi.fogTable[next].value) - int(c.fbi.fogTable[i].value))
	}
}

// GrDitherMode enables ordered dithering and selects the 2x2 or 4x4 matrix.
func (c *Context) GrDitherMode(enable, use2x2 bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if enable {
		c.fbi.fbzMode |= fbzDither
	} else {
		c.fbi.fbzMode &^= fbzDither
	}
	if use2x2 {
		c.fbi.fbzMode |= fbzDither2x2
	} else {
		c.fbi.fbzMode &^= fbzDither2x2
	}
}

// GrStippleMode enables stippling; pattern selects rotating vs fixed-mask
// stipple per fbzStippleRot.
func (c *Context) GrStippleMode(enable, rotate bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if enable {
		c.fbi.fbzMode |= fbzStipple
	} else {
		c.fbi.fbzMode &^= fbzStipple
	}
	if rotate {
		c.fbi.fbzMode |= fbzStippleRot
	} else {
		c.fbi.fbzMode &^= fbzStippleRot
	}
}

// GrStipplePattern sets the 32-bit stipple mask.
func (c *Context) GrStipplePattern(pattern uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fbi.stipple = pattern
}

// GrClipWindow sets the inclusive-exclusive clip rectangle.
func (c *Context) GrClipWindow(left, top, right, bottom int32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fbi.clipLeft = left & clipValueMask
	c.fbi.clipTop = top & clipValueMask
	c.fbi.clipRight = right & clipValueMask
	c.fbi.clipBottom = bottom & clipValueMask
}

// GrCullMode sets backface culling: cullDisable, cullFrontFacing or
// cullBackFacing.
func (c *Context) GrCullMode(mode int32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fbi.cullMode = mode
}

// GrDepthRange is accepted for API completeness; the software pipeline
// always maps depth to the full 20.12 range, so this has no effect and
// does not record its arguments (no hardware viewport-depth register
// exists in the modeled subset).
func (c *Context) GrDepthRange(_, _ float32) {}
