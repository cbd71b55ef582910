// glide_query.go - version/hardware queries and buffer lifecycle (C7)

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
glide_query.go - version/board enumeration and the buffer-swap/idle/flush
family. Real Glide hosts probe GrSstQueryBoards/GrSstQueryHardware before
GrSstWinOpen to decide resolution and TMU count; since this library has
exactly one synthesized board, these calls return a fixed descriptor
rather than walking PCI config space like the hardware driver did.
*/

package voodoo

// GrGlideVersion is the Glide API level this package implements.
const GrGlideVersion = "3.0 (software)"

// GrGlideGetVersion returns the library version string, matching the
// signature of the original Glide entry point.
func GrGlideGetVersion() string {
	return GrGlideVersion
}

// HardwareDescriptor mirrors the subset of GrHwConfiguration the spec
// asks callers to be able to query: a single synthesized SST-1 board
// with two TMUs and the texture RAM size each was created with.
type HardwareDescriptor struct {
	NumBoards   int
	NumTMU      int
	TMURamBytes [2]int
	FBRamBytes  int
}

// GrSstQueryBoards reports how many boards are present: always one, this
// being a single-context software implementation.
func GrSstQueryBoards() int {
	return 1
}

// GrSstQueryHardware synthesizes the active context's hardware
// descriptor. Calling it before GrSstWinOpen reports zeroed TMU sizes.
func GrSstQueryHardware() HardwareDescriptor {
	d := HardwareDescriptor{NumBoards: 1, NumTMU: 2}
	if activeCtx != nil {
		d.TMURamBytes[0] = len(activeCtx.tmu[0].ram)
		d.TMURamBytes[1] = len(activeCtx.tmu[1].ram)
		d.FBRamBytes = len(activeCtx.fbi.colorBuf[0]) * 2 * numColorBuffers
	}
	return d
}

// GrGet reports a small set of read-only capability/state values;
// pname selects which.
const (
	GrGetTMUMemory = iota
	GrGetFBMemory
	GrGetScreenWidth
	GrGetScreenHeight
)

func (c *Context) GrGet(pname int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch pname {
	case GrGetTMUMemory:
		return len(c.tmu[0].ram) + len(c.tmu[1].ram)
	case GrGetFBMemory:
		return len(c.fbi.colorBuf[0]) * 2 * numColorBuffers
	case GrGetScreenWidth:
		return c.fbi.width
	case GrGetScreenHeight:
		return c.fbi.height
	default:
		return 0
	}
}

// GrBufferClear fills the draw buffer with color and the aux buffer with
// depth, matching a Voodoo fast-fill command.
func (c *Context) GrBufferClear(color uint32, depth uint16) {
	c.mu.Lock()
	defer c.mu.Unlock()
	buf := c.fbi.drawBuffer()
	rgb := rgb565From(color)
	for i := range buf {
		buf[i] = rgb
	}
	for i := range c.fbi.auxBuf {
		c.fbi.auxBuf[i] = depth
	}
}

func rgb565From(argb uint32) uint16 {
	_, r, g, b := colorComponents(argb)
	return uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
}

// GrBufferSwap publishes the completed draw buffer as the new front
// buffer and hands it to the display collaborator.
func (c *Context) GrBufferSwap() {
	c.mu.Lock()
	c.fbi.swap()
	front := c.fbi.frontBuffer()
	width, height, rowpixels := c.fbi.width, c.fbi.height, c.fbi.rowpixels
	disp := c.display
	c.mu.Unlock()

	disp.Present(front, width, height, rowpixels)
}

// GrBufferNumPending always reports 0: this implementation has no
// asynchronous swap queue, every GrBufferSwap call is synchronous.
func (c *Context) GrBufferNumPending() int { return 0 }

// GrSstIdle blocks until the board is idle. The software pipeline never
// runs asynchronously relative to the calling goroutine, so this call
// returns immediately.
func (c *Context) GrSstIdle() {}

// GrFlush and GrFinish are accepted for API completeness; every draw
// call here already completes synchronously before returning.
func (c *Context) GrFlush()  {}
func (c *Context) GrFinish() {}

// GrStatistics returns a snapshot of the pixel-accounting counters
// accumulated since the window was opened.
func (c *Context) GrStatistics() Statistics {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fbi.stats
}
