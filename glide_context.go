// glide_context.go - Glide session lifecycle and vertex assembly (C7)

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
glide_context.go - the library-level entry points (GlideInit/GlideShutdown,
SstWinOpen/SstWinClose) plus the per-vertex-write triangle assembly that
mirrors how real Glide hosts build a triangle: a handful of register-style
calls (GrVertexColor, GrVertexTexCoord, ...) accumulate into "the current
vertex", and GrDrawTriangle snapshots three of them. Grounded on the
teacher's VoodooEngine current-vertex assembly (currentVertex,
vertexColors, currentColorTarget cycling 0,1,2).
*/

package voodoo

import "fmt"

// global library state: a single process-wide Glide session, matching
// the real API's single-board assumption and the teacher's single
// VoodooEngine instance per process.
var (
	libInitialized bool
	activeCtx      *Context
)

// vertexLayout records which per-vertex attributes a draw call supplies,
// set once via GrVertexLayout/GrGouraudShadeMode before the first
// triangle of a batch.
type vertexLayout struct {
	gouraudShading bool
	textureEnabled [2]bool
}

func defaultVertexLayout() vertexLayout {
	return vertexLayout{gouraudShading: true}
}

// triangleAssembly holds the vertex currently being written by
// GrVertex*/GrColor* calls plus the three completed corners awaiting
// GrDrawTriangle, matching the teacher's currentVertex/vertexColors/
// currentColorTarget fields.
type triangleAssembly struct {
	building     vertex
	colorTarget  int
	vertices     [3]vertex
	vertexColors [3]vertex
}

// GrGlideInit brings the library to its initialized-but-no-board state.
// Calling it twice without an intervening GrGlideShutdown is a no-op,
// matching Glide's documented idempotence.
func GrGlideInit() {
	libInitialized = true
}

// GrGlideShutdown releases the active session, if any, and returns the
// library to its uninitialized state.
func GrGlideShutdown() {
	if activeCtx != nil {
		activeCtx.close()
		activeCtx = nil
	}
	libInitialized = false
}

// GrSstWinOpen opens the single emulated board's rendering window at the
// given resolution and hands frame output to display. origin is accepted
// for API compatibility but only GR_ORIGIN_UPPER_LEFT is implemented
// (§9 open question).
func GrSstWinOpen(display Display, width, height int, origin int) (*Context, error) {
	if !libInitialized {
		return nil, fmt.Errorf("voodoo: GrGlideInit not called")
	}
	if activeCtx != nil {
		return nil, fmt.Errorf("voodoo: a window is already open")
	}
	if display == nil {
		display = NullDisplay{}
	}

	c := newContext(width, height, display)
	token, err := display.Open(width, height)
	if err != nil {
		return nil, fmt.Errorf("voodoo: display open: %w", err)
	}
	c.winToken = token
	activeCtx = c
	c.logf("window opened %dx%d", width, height)
	return c, nil
}

// GrSstWinClose tears down the active window.
func GrSstWinClose(c *Context) {
	if c == nil || c != activeCtx {
		return
	}
	c.close()
	activeCtx = nil
}

func (c *Context) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.open {
		return
	}
	c.display.Close(c.winToken)
	c.open = false
}

// GrSstScreenWidth and GrSstScreenHeight report the current window's
// dimensions.
func (c *Context) GrSstScreenWidth() int  { return c.fbi.width }
func (c *Context) GrSstScreenHeight() int { return c.fbi.height }

// GrVertexLayout configures which attributes GrDrawTriangle reads from
// the assembled vertices.
func (c *Context) GrVertexLayout(gouraud bool, tmu0, tmu1 bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vertexLayout = vertexLayout{gouraudShading: gouraud, textureEnabled: [2]bool{tmu0, tmu1}}
}

// GrVertexColorTarget selects which of the three in-flight vertices
// subsequent GrVertexColor/GrVertexTexCoord calls write to, matching the
// teacher's currentColorTarget cycling 0,1,2.
func (c *Context) GrVertexColorTarget(idx int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if idx < 0 || idx > 2 {
		return
	}
	c.current.colorTarget = idx
}

// GrVertexPosition sets the current vertex's screen-space x,y and 1/w.
func (c *Context) GrVertexPosition(x, y, oow float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current.building.x = x
	c.current.building.y = y
	c.current.building.oow = oow
}

// GrVertexColor sets the current vertex's RGBA. Under Gouraud shading
// this writes into the color-target slot; otherwise it writes the
// shared flat-shading vertex, matching the teacher's dual write path.
func (c *Context) GrVertexColor(r, g, b, a float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.vertexLayout.gouraudShading {
		v := &c.current.vertexColors[c.current.colorTarget]
		v.r, v.g, v.b, v.a = r, g, b, a
	} else {
		c.current.building.r = r
		c.current.building.g = g
		c.current.building.b = b
		c.current.building.a = a
	}
}

// GrVertexZ sets the current vertex's depth value.
func (c *Context) GrVertexZ(z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.vertexLayout.gouraudShading {
		c.current.vertexColors[c.current.colorTarget].z = z
	} else {
		c.current.building.z = z
	}
}

// GrVertexTexCoord sets the current vertex's s,t,w for the given TMU
// (0 or 1).
func (c *Context) GrVertexTexCoord(tmu int, s, t, w float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if tmu < 0 || tmu > 1 {
		return
	}
	target := &c.current.building
	if c.vertexLayout.gouraudShading {
		target = &c.current.vertexColors[c.current.colorTarget]
	}
	target.tmu[tmu] = struct{ s, t, w float32 }{s, t, w}
}
