// glidestat - pixel-pipeline statistics for a one-shot glidevoodoo demo run

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
glidestat drives a headless Context through a fixed demo workload and
prints a pixel-accounting table to the terminal once, then exits. It
uses x/term only to query the terminal width for the table's rule
lines; stdin is not put in raw mode.
*/

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	voodoo "github.com/intuitionamiga/glidevoodoo"
	"github.com/intuitionamiga/glidevoodoo/display"
)

func main() {
	width, height := 640, 480

	voodoo.GrGlideInit()
	defer voodoo.GrGlideShutdown()

	head := display.NewHeadlessAdapter()
	ctx, err := voodoo.GrSstWinOpen(head, width, height, 0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "glidestat: %v\n", err)
		os.Exit(1)
	}
	defer voodoo.GrSstWinClose(ctx)

	cols, _, err := term.GetSize(int(os.Stdin.Fd()))
	if err != nil {
		cols = 80
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	runDemoTriangles(ctx)

	printReport(ctx, cols)
}

// runDemoTriangles draws a point, a line and one triangle with the depth
// test enabled so the printed statistics are non-trivial; alpha blending
// and texturing stay disabled.
func runDemoTriangles(ctx *voodoo.Context) {
	ctx.GrDepthBufferMode(true)
	ctx.GrDepthBufferFunction(1) // cmpLess

	ctx.GrDrawPoint(10, 10, 1, 0, 0, 1, 0.5)
	ctx.GrDrawLine(0, 0, 100, 100, 0, 1, 0, 1, 0.5, 2)

	verts := []voodoo.GrVertexArrayElement{
		{X: 50, Y: 50, OOW: 1, R: 1, G: 1, B: 1, A: 1, Z: 0.1},
		{X: 200, Y: 50, OOW: 1, R: 1, G: 0, B: 0, A: 1, Z: 0.1},
		{X: 125, Y: 200, OOW: 1, R: 0, G: 1, B: 0, A: 1, Z: 0.1},
	}
	ctx.GrDrawVertexArrayContiguous(verts)

	ctx.GrBufferSwap()
}

func printReport(ctx *voodoo.Context, cols int) {
	stats := ctx.GrStatistics()

	rule := ruleLine(cols)
	fmt.Println(rule)
	fmt.Printf("%-20s %12s\n", "counter", "value")
	fmt.Println(rule)
	fmt.Printf("%-20s %12d\n", "pixels_out", stats.PixelsOut)
	fmt.Printf("%-20s %12d\n", "zfunc_fail", stats.ZFuncFail)
	fmt.Printf("%-20s %12d\n", "afunc_fail", stats.AFuncFail)
	fmt.Printf("%-20s %12d\n", "chroma_fail", stats.ChromaFail)
	fmt.Printf("%-20s %12d\n", "stipple_count", stats.StippleCount)
	fmt.Printf("%-20s %12d\n", "clip_rejected", stats.ClipRejected)
	fmt.Printf("%-20s %12d\n", "tris_rejected", stats.TrisRejected)
	fmt.Println(rule)

	covered := stats.PixelsOut + stats.ZFuncFail + stats.AFuncFail + stats.ChromaFail + stats.StippleCount
	fmt.Printf("covered_pixels (derived): %d\n", covered)
}

func ruleLine(cols int) string {
	if cols <= 0 || cols > 200 {
		cols = 80
	}
	b := make([]byte, cols)
	for i := range b {
		b[i] = '-'
	}
	return string(b)
}
