package voodoo

import (
	"testing"
)

func newTestContext(t *testing.T, width, height int) *Context {
	t.Helper()
	c := newContext(width, height, NullDisplay{})
	return c
}

// clearAndPresent: buffer clear followed by swap must produce a front
// buffer filled with the clear color.
func TestScenario_ClearAndPresent(t *testing.T) {
	c := newTestContext(t, 16, 16)
	c.GrBufferClear(packARGB(0xFF, 0x10, 0x20, 0x30), 0xFFFF)
	c.GrBufferSwap()

	front := c.fbi.frontBuffer()
	want := rgb565From(packARGB(0xFF, 0x10, 0x20, 0x30))
	for i, px := range front {
		if px != want {
			t.Fatalf("pixel %d = %#04x, want %#04x", i, px, want)
		}
	}
}

// coloredTriangle: a flat-shaded triangle fully inside the clip window
// must write every covered pixel and account for it in pixels_out.
func TestScenario_ColoredTriangle(t *testing.T) {
	c := newTestContext(t, 64, 64)
	c.GrDepthBufferMode(false)

	v := [3]vertex{
		{x: 5, y: 5, oow: 1, r: 255, g: 0, b: 0, a: 255},
		{x: 40, y: 5, oow: 1, r: 255, g: 0, b: 0, a: 255},
		{x: 5, y: 40, oow: 1, r: 255, g: 0, b: 0, a: 255},
	}
	c.drawTriangle(v)

	if c.fbi.stats.PixelsOut == 0 {
		t.Fatalf("expected pixels_out > 0")
	}
	covered := c.fbi.stats.PixelsOut + c.fbi.stats.ZFuncFail + c.fbi.stats.AFuncFail +
		c.fbi.stats.ChromaFail + c.fbi.stats.StippleCount
	if covered != c.fbi.stats.PixelsOut {
		t.Fatalf("pixel accounting mismatch: covered=%d pixelsOut=%d", covered, c.fbi.stats.PixelsOut)
	}

	buf := c.fbi.drawBuffer()
	mid := 20*c.fbi.rowpixels + 20
	if buf[mid] == 0 {
		t.Errorf("expected a non-zero pixel inside the triangle at (20,20)")
	}
}

// depthOcclusion: a far triangle drawn first, then a near triangle
// covering the same pixels with depth test enabled, must pass the depth
// test and add to pixels_out, while re-drawing the far triangle on top
// afterward must fail the depth test.
func TestScenario_DepthOcclusion(t *testing.T) {
	c := newTestContext(t, 64, 64)
	c.GrDepthBufferMode(true)
	c.GrDepthBufferFunction(cmpLess)

	far := [3]vertex{
		{x: 0, y: 0, oow: 1, r: 1, g: 0, b: 0, a: 1, z: 60000},
		{x: 64, y: 0, oow: 1, r: 1, g: 0, b: 0, a: 1, z: 60000},
		{x: 0, y: 64, oow: 1, r: 1, g: 0, b: 0, a: 1, z: 60000},
	}
	near := [3]vertex{
		{x: 0, y: 0, oow: 1, r: 0, g: 1, b: 0, a: 1, z: 6000},
		{x: 64, y: 0, oow: 1, r: 0, g: 1, b: 0, a: 1, z: 6000},
		{x: 0, y: 64, oow: 1, r: 0, g: 1, b: 0, a: 1, z: 6000},
	}

	c.drawTriangle(far)
	afterFar := c.fbi.stats.PixelsOut

	c.drawTriangle(near)
	if c.fbi.stats.PixelsOut <= afterFar {
		t.Fatalf("expected near triangle to add pixels_out")
	}

	beforeRefail := c.fbi.stats.ZFuncFail
	c.drawTriangle(far)
	if c.fbi.stats.ZFuncFail <= beforeRefail {
		t.Fatalf("expected redrawing the far triangle to fail the depth test")
	}
}

// alphaBlend: drawing a 50%-alpha triangle over an opaque background
// must leave the destination neither fully the source nor fully the
// background color.
func TestScenario_AlphaBlend(t *testing.T) {
	c := newTestContext(t, 32, 32)
	c.GrDepthBufferMode(false)
	c.GrBufferClear(packARGB(0xFF, 0, 0, 0xFF), 0xFFFF)

	c.GrAlphaBlendFunction(blendSrcAlpha, blendInvSrcA, blendSrcAlpha, blendInvSrcA)

	v := [3]vertex{
		{x: 0, y: 0, oow: 1, r: 255, g: 0, b: 0, a: 128},
		{x: 32, y: 0, oow: 1, r: 255, g: 0, b: 0, a: 128},
		{x: 0, y: 32, oow: 1, r: 255, g: 0, b: 0, a: 128},
	}
	c.drawTriangle(v)

	buf := c.fbi.drawBuffer()
	px := buf[10*c.fbi.rowpixels+5]
	r := uint8((px>>11)&0x1F) * 255 / 31
	b := uint8(px&0x1F) * 255 / 31
	if r == 0 || b == 0 {
		t.Fatalf("expected a blended pixel with both red and blue contribution, got r=%d b=%d", r, b)
	}
}

func TestGrDrawPoint_WritesPixel(t *testing.T) {
	c := newTestContext(t, 32, 32)
	c.GrDepthBufferMode(false)
	c.GrDrawPoint(5, 5, 1, 1, 1, 1, 0)
	if c.fbi.stats.PixelsOut == 0 {
		t.Fatalf("expected GrDrawPoint to shade at least one pixel")
	}
}

func TestGrDrawLine_WritesPixels(t *testing.T) {
	c := newTestContext(t, 32, 32)
	c.GrDepthBufferMode(false)
	c.GrDrawLine(2, 2, 20, 2, 1, 1, 1, 1, 0, 2)
	if c.fbi.stats.PixelsOut == 0 {
		t.Fatalf("expected GrDrawLine to shade at least one pixel")
	}
}

func TestGrDrawVertexArrayContiguous(t *testing.T) {
	c := newTestContext(t, 32, 32)
	c.GrDepthBufferMode(false)
	verts := []GrVertexArrayElement{
		{X: 2, Y: 2, OOW: 1, R: 1, G: 1, B: 1, A: 1},
		{X: 20, Y: 2, OOW: 1, R: 1, G: 1, B: 1, A: 1},
		{X: 2, Y: 20, OOW: 1, R: 1, G: 1, B: 1, A: 1},
	}
	c.GrDrawVertexArrayContiguous(verts)
	if c.fbi.stats.PixelsOut == 0 {
		t.Fatalf("expected triangle to shade pixels")
	}
}

func TestVertexAssembly_GouraudPerVertexColor(t *testing.T) {
	c := newTestContext(t, 32, 32)
	c.GrVertexLayout(true, false, false)

	c.GrVertexColorTarget(0)
	c.GrVertexPosition(2, 2, 1)
	c.GrVertexColor(1, 0, 0, 1)
	c.GrVertexCorner(0)

	c.GrVertexColorTarget(1)
	c.GrVertexPosition(20, 2, 1)
	c.GrVertexColor(0, 1, 0, 1)
	c.GrVertexCorner(1)

	c.GrVertexColorTarget(2)
	c.GrVertexPosition(2, 20, 1)
	c.GrVertexColor(0, 0, 1, 1)
	c.GrVertexCorner(2)

	c.GrDrawTriangle()
	if c.fbi.stats.PixelsOut == 0 {
		t.Fatalf("expected assembled triangle to shade pixels")
	}
}
