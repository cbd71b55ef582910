// state.go - Voodoo graphics context, FBI and TMU state model

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
state.go - the process-wide graphics Context: the FBI (framebuffer
interface) state, the two TMU states, the shared format-decode lookup
tables, and the statistics counters. The Context is the single owner of
everything the pixel pipeline and rasterizer touch; workers hold an
immutable reference to it plus a mutable, disjoint slice of the
framebuffer for the scanlines they own.
*/

package voodoo

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
)

// numColorBuffers is the number of RGB565 buffers allocated. swap only
// alternates between buffers 0 and 1; buffer 2 is allocated but never
// drawn to or presented.
const numColorBuffers = 3

// fogTableEntry is one of the 64 fog table slots: a blend value plus the
// precomputed delta to the next entry.
type fogTableEntry struct {
	value uint8
	delta int8
}

// nccTable decodes Voodoo's Narrow Channel Compression texture format:
// 24 signed coefficients (16 Y, 4 I, 4 Q) drive a 256-entry decoded
// texel cache.
type nccTable struct {
	y  [16]int32
	i  [4]int32
	q  [4]int32
	decoded [256]uint32
	dirty   bool
}

// tmuState models one Texture Mapping Unit.
type tmuState struct {
	ram []byte // texture RAM, >= 2 MiB

	textureMode uint32
	tLOD        uint32
	tDetail     uint32
	texBase     [9]uint32 // per-LOD base address as programmed

	wmask, hmask uint32
	lodoffset    [9]uint32
	lodmask      uint32
	lodmin       int32
	lodmax       int32
	lodbias      int32

	palette      [256]uint32
	alphaPalette [256]uint32
	ncc          [2]nccTable

	regdirty bool
}

func newTMUState(ramSize int) *tmuState {
	return &tmuState{
		ram:    make([]byte, ramSize),
		lodmax: 8,
	}
}

// fbiState models the Framebuffer Interface: the register-visible
// rendering state plus the buffers themselves.
type fbiState struct {
	width, height int
	rowpixels     int
	yorigin       int

	colorBuf [numColorBuffers][]uint16 // RGB565
	auxBuf   []uint16                  // depth (or alpha-planes)

	frontIdx int32 // atomically swapped index into colorBuf
	backIdx  int32
	drawIdx  int32

	fbzMode      uint32
	fbzColorPath uint32
	alphaMode    uint32
	fogMode      uint32

	chromaKey   uint32
	chromaRange uint32
	zaColor     uint32
	stipple     uint32
	color0      uint32
	color1      uint32

	clipLeft, clipRight int32
	clipTop, clipBottom int32

	cullMode int32

	fogColor uint32
	fogTable [fogTableSize]fogTableEntry

	// Statistics, reset per context creation and incremented by both the
	// serial setup stage and the parallel pixel pipeline workers.
	stats Statistics
}

// Statistics mirrors the per-pixel bookkeeping §4.4/§8 requires: every
// covered pixel is accounted for in exactly one bucket.
type Statistics struct {
	PixelsOut    uint64
	ZFuncFail    uint64
	AFuncFail    uint64
	ChromaFail   uint64
	StippleCount uint64
	ClipRejected uint64
	TrisRejected uint64
}

func (s *Statistics) addPixelsOut(n uint64)    { atomic.AddUint64(&s.PixelsOut, n) }
func (s *Statistics) addZFuncFail(n uint64)    { atomic.AddUint64(&s.ZFuncFail, n) }
func (s *Statistics) addAFuncFail(n uint64)    { atomic.AddUint64(&s.AFuncFail, n) }
func (s *Statistics) addChromaFail(n uint64)   { atomic.AddUint64(&s.ChromaFail, n) }
func (s *Statistics) addStippleCount(n uint64) { atomic.AddUint64(&s.StippleCount, n) }
func (s *Statistics) addClipRejected(n uint64) { atomic.AddUint64(&s.ClipRejected, n) }
func (s *Statistics) addTrisRejected(n uint64) { atomic.AddUint64(&s.TrisRejected, n) }

// Context is the process-wide Voodoo graphics handle created by
// GlideInit/SstWinOpen and torn down by SstWinClose/GlideShutdown.
type Context struct {
	mu sync.Mutex

	fbi  fbiState
	tmu  [2]tmuState
	open bool

	vertexLayout vertexLayout
	current      triangleAssembly

	pool *workerPool

	display  Display
	winToken any

	lfb lfbState

	verbose bool
}

// logf writes a diagnostic line to stderr when Verbose is enabled,
// matching the teacher's bare fmt-based logging texture.
func (c *Context) logf(format string, args ...any) {
	if c.verbose {
		fmt.Fprintf(os.Stderr, "voodoo: "+format+"\n", args...)
	}
}

func newContext(width, height int, display Display) *Context {
	c := &Context{
		display: display,
		verbose: os.Getenv("GLIDE3X_VERBOSE") != "",
	}
	c.fbi.initDefaults(width, height)
	c.tmu[0] = *newTMUState(2 << 20)
	c.tmu[1] = *newTMUState(2 << 20)
	c.vertexLayout = defaultVertexLayout()
	c.open = true
	if n := configuredWorkerCount(); n > 0 {
		c.pool = newWorkerPool(n)
	}
	return c
}

// initDefaults sets up buffers and register defaults matching the
// teacher's initDefaultState: depth test enabled LESS, RGB/depth write on.
func (f *fbiState) initDefaults(width, height int) {
	f.width = width
	f.height = height
	f.rowpixels = width
	f.yorigin = 0

	count := width * height
	for i := range f.colorBuf {
		f.colorBuf[i] = make([]uint16, count)
	}
	f.auxBuf = make([]uint16, count)
	for i := range f.auxBuf {
		f.auxBuf[i] = 0xFFFF
	}

	f.frontIdx = 0
	f.backIdx = 1
	f.drawIdx = 1

	f.fbzMode = fbzDepthEnable | fbzRGBWrite | fbzDepthWrite | (cmpLess << 5)
	f.clipLeft, f.clipTop = 0, 0
	f.clipRight, f.clipBottom = int32(width), int32(height)
	f.color0 = 0
	f.color1 = 0xFFFFFFFF
	f.zaColor = 0
}

// swap publishes the draw buffer as the new front buffer with atomic
// index updates and makes the old front buffer the next draw target, so
// the two buffers alternate.
func (f *fbiState) swap() {
	newFront := atomic.LoadInt32(&f.drawIdx)
	oldFront := atomic.SwapInt32(&f.frontIdx, newFront)
	// The buffer that was front becomes the new draw target once the
	// current back buffer (not yet shown) takes its place.
	atomic.StoreInt32(&f.backIdx, oldFront)
	atomic.StoreInt32(&f.drawIdx, oldFront)
}

func (f *fbiState) drawBuffer() []uint16 {
	return f.colorBuf[atomic.LoadInt32(&f.drawIdx)]
}

func (f *fbiState) frontBuffer() []uint16 {
	return f.colorBuf[atomic.LoadInt32(&f.frontIdx)]
}

// recomputeTMU runs the C3 recompute step if regdirty is set, deriving
// wmask/hmask/lodoffset/lodmask from the current register state. It must
// run on the application thread before any worker dispatch touches the
// TMU (§5 dirty-flag discipline).
func (t *tmuState) recompute() {
	if !t.regdirty {
		return
	}

	w := 1 << (field(t.tLOD, 0xF, 0) + 3) // smallest power-of-two width hint; refined by upload
	h := 1 << (field(t.tLOD, 0xF0, 4) + 3)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	t.wmask = uint32(w - 1)
	t.hmask = uint32(h - 1)

	t.lodmin = int32(field(t.tLOD, 0xF00, 8))
	t.lodmax = int32(field(t.tLOD, 0xF000, 12))
	if t.lodmax == 0 {
		t.lodmax = 8
	}
	if t.lodmin > t.lodmax {
		t.lodmin = t.lodmax
	}

	// lodmask: bit i set means LOD i is present. downloadMipMap (bulk
	// upload with an explicit level mask) and GrTexDownloadMipMapLevel
	// (per-level upload) both set the relevant bits directly as they
	// write texBase; recompute only asserts the LOD 0 floor bit, since
	// LOD 0 is always present once a texture is bound.
	t.lodmask |= 1

	format := field(t.textureMode, texFormatMask, texFormatShift)
	bpp := uint32(bytesPerTexel(format))

	offset := t.texBase[0]
	ww, hh := w, h
	for lod := 0; lod <= 8; lod++ {
		if t.lodmask&(1<<uint(lod)) != 0 {
			t.lodoffset[lod] = offset
			size := uint32(ww*hh) * bpp
			offset += size
		} else if lod > 0 {
			t.lodoffset[lod] = t.lodoffset[lod-1]
		}
		if ww > 1 {
			ww >>= 1
		}
		if hh > 1 {
			hh >>= 1
		}
	}

	for i := range t.ncc {
		if t.ncc[i].dirty {
			t.ncc[i].regenerate()
			t.ncc[i].dirty = false
		}
	}

	t.regdirty = false
}

// regenerate rebuilds the 256-entry NCC decode table from the 24 signed
// Y/I/Q coefficients, matching Voodoo's 2:1 texture compression scheme.
func (n *nccTable) regenerate() {
	for idx := 0; idx < 256; idx++ {
		yv := n.y[idx&0xF]
		iv := n.i[(idx>>4)&0x3]
		qv := n.q[(idx>>6)&0x3]

		r := clampToU8(int32((yv + iv) >> 0))
		g := clampToU8(int32((yv - (iv+qv)/2) >> 0))
		b := clampToU8(int32((yv + qv) >> 0))
		n.decoded[idx] = packARGB(0xFF, r, g, b)
	}
}
