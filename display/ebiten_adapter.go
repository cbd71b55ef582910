//go:build !headless

// ebiten_adapter.go - windowed Display implementation backed by Ebiten

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
ebiten_adapter.go - implements voodoo.Display on top of an Ebiten window,
in the same shape as the teacher's EbitenOutput: a frame buffer guarded
by a mutex, written by Present and read back by Draw. RGB565 is expanded
to RGBA8888 here since Ebiten images only accept the latter.
*/

package display

import (
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"

	voodoo "github.com/intuitionamiga/glidevoodoo"
)

var _ voodoo.Display = (*EbitenAdapter)(nil)

// EbitenAdapter is a voodoo.Display that opens a resizable window and
// draws every presented frame into it.
type EbitenAdapter struct {
	title string

	mu     sync.RWMutex
	rgba   []byte
	width  int
	height int

	window *ebiten.Image
	ready  chan struct{}
	once   sync.Once
}

// NewEbitenAdapter creates an adapter with the given window title.
func NewEbitenAdapter(title string) *EbitenAdapter {
	if title == "" {
		title = "glidevoodoo"
	}
	return &EbitenAdapter{title: title, ready: make(chan struct{}, 1)}
}

func (e *EbitenAdapter) Open(width, height int) (any, error) {
	e.mu.Lock()
	e.width, e.height = width, height
	e.rgba = make([]byte, width*height*4)
	e.mu.Unlock()

	e.once.Do(func() {
		ebiten.SetWindowSize(width, height)
		ebiten.SetWindowTitle(e.title)
		ebiten.SetWindowResizable(true)
		go func() {
			if err := ebiten.RunGame(e); err != nil {
				fmt.Printf("glidevoodoo: ebiten error: %v\n", err)
			}
		}()
	})
	return nil, nil
}

func (e *EbitenAdapter) Present(pixels []uint16, width, height, rowpixels int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.rgba) != width*height*4 {
		e.rgba = make([]byte, width*height*4)
	}
	for y := 0; y < height; y++ {
		row := pixels[y*rowpixels : y*rowpixels+width]
		for x, px := range row {
			r := uint8(((px >> 11) & 0x1F) * 255 / 31)
			g := uint8(((px >> 5) & 0x3F) * 255 / 63)
			b := uint8((px & 0x1F) * 255 / 31)
			off := (y*width + x) * 4
			e.rgba[off] = r
			e.rgba[off+1] = g
			e.rgba[off+2] = b
			e.rgba[off+3] = 0xFF
		}
	}
}

func (e *EbitenAdapter) Close(any) {}

// Update satisfies ebiten.Game; this adapter has no input handling.
func (e *EbitenAdapter) Update() error {
	if ebiten.IsWindowBeingClosed() {
		return ebiten.Termination
	}
	return nil
}

func (e *EbitenAdapter) Draw(screen *ebiten.Image) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.width == 0 || e.height == 0 {
		return
	}
	if e.window == nil || e.window.Bounds().Dx() != e.width || e.window.Bounds().Dy() != e.height {
		e.window = ebiten.NewImage(e.width, e.height)
	}
	e.window.WritePixels(e.rgba)
	screen.DrawImage(e.window, nil)

	select {
	case e.ready <- struct{}{}:
	default:
	}
}

func (e *EbitenAdapter) Layout(_, _ int) (int, int) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.width, e.height
}
