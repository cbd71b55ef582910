// headless_adapter.go - snapshot-only Display implementation for tests and CI

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
headless_adapter.go - a Display that keeps the last presented frame as an
*image.RGBA and nothing else, for tests and headless CI builds, the same
role the teacher's headless VulkanBackend stub fills when no GPU is
available. Snapshot offers an optional resize via x/image/draw for
callers that want a fixed-size comparison image regardless of the
framebuffer's native resolution.
*/

package display

import (
	"image"
	"image/color"
	"sync"

	"golang.org/x/image/draw"

	voodoo "github.com/intuitionamiga/glidevoodoo"
)

var _ voodoo.Display = (*HeadlessAdapter)(nil)

// HeadlessAdapter records every presented frame without showing a
// window; Snapshot retrieves the most recent one.
type HeadlessAdapter struct {
	mu    sync.Mutex
	frame *image.RGBA
	count int
}

func NewHeadlessAdapter() *HeadlessAdapter {
	return &HeadlessAdapter{}
}

func (h *HeadlessAdapter) Open(width, height int) (any, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.frame = image.NewRGBA(image.Rect(0, 0, width, height))
	return nil, nil
}

func (h *HeadlessAdapter) Present(pixels []uint16, width, height, rowpixels int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.frame == nil || h.frame.Bounds().Dx() != width || h.frame.Bounds().Dy() != height {
		h.frame = image.NewRGBA(image.Rect(0, 0, width, height))
	}
	for y := 0; y < height; y++ {
		row := pixels[y*rowpixels : y*rowpixels+width]
		for x, px := range row {
			r := uint8(((px >> 11) & 0x1F) * 255 / 31)
			g := uint8(((px >> 5) & 0x3F) * 255 / 63)
			b := uint8((px & 0x1F) * 255 / 31)
			h.frame.SetRGBA(x, y, color.RGBA{r, g, b, 0xFF})
		}
	}
	h.count++
}

func (h *HeadlessAdapter) Close(any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.frame = nil
}

// Snapshot returns a copy of the last presented frame.
func (h *HeadlessAdapter) Snapshot() *image.RGBA {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.frame == nil {
		return nil
	}
	cp := image.NewRGBA(h.frame.Bounds())
	draw.Draw(cp, cp.Bounds(), h.frame, image.Point{}, draw.Src)
	return cp
}

// SnapshotScaled returns the last frame resampled to width x height,
// for tests that compare against a fixed-size golden image regardless
// of the window's actual resolution.
func (h *HeadlessAdapter) SnapshotScaled(width, height int) *image.RGBA {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.frame == nil {
		return nil
	}
	out := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.BiLinear.Scale(out, out.Bounds(), h.frame, h.frame.Bounds(), draw.Over, nil)
	return out
}

// FrameCount reports how many frames have been presented.
func (h *HeadlessAdapter) FrameCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.count
}
