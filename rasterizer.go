// rasterizer.go - triangle setup and edge walking (C6)

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
rasterizer.go - per-triangle setup (vertex unpack, viewport, area/cull,
clip reject, gradient computation) and edge walking into scanline spans.
Setup runs serially on the calling goroutine; the resulting spans and
gradients are handed to the worker pool (or rasterized inline for small
triangles) for the parallel pixel-shading stage.
*/

package voodoo

// vertex is one triangle corner in the application's input precision
// (float32, matching how Glide vertex structs are built by the host);
// it is converted to fixed point during setup.
type vertex struct {
	x, y float32
	oow  float32 // 1/w
	r, g, b, a float32
	z float32
	tmu [2]struct{ s, t, w float32 }
}

type gradients struct {
	x0, y0 int32 // leftmost pixel center of vertex A's scanline origin, in pixel units
	baseX, baseY float32

	r, g, b, a, z, w float32
	dRdx, dGdx, dBdx, dAdx, dZdx, dWdx float32
	dRdy, dGdy, dBdy, dAdy, dZdy, dWdy float32

	tmu [2]struct {
		s, t, w             float32
		dSdx, dTdx, dWdx    float32
		dSdy, dTdy, dWdy    float32
	}
}

// pixelAt evaluates every iterated parameter at pixel (x,y) and converts
// to the pipeline's fixed-point precision.
func (g *gradients) pixelAt(y, x int32) pixelInput {
	dx := float32(x) - g.baseX
	dy := float32(y) - g.baseY

	r := g.r + dx*g.dRdx + dy*g.dRdy
	gr := g.g + dx*g.dGdx + dy*g.dGdy
	b := g.b + dx*g.dBdx + dy*g.dBdy
	a := g.a + dx*g.dAdx + dy*g.dAdy
	z := g.z + dx*g.dZdx + dy*g.dZdy
	w := g.w + dx*g.dWdx + dy*g.dWdy

	in := pixelInput{x: x, y: y}
	in.r = int64(r * float32(int64(1)<<shift12_12))
	in.g = int64(gr * float32(int64(1)<<shift12_12))
	in.b = int64(b * float32(int64(1)<<shift12_12))
	in.a = int64(a * float32(int64(1)<<shift12_12))
	in.z = int64(z * float32(int64(1)<<shift20_12))
	in.w = int64(w * float32(int64(1)<<shift2_30))

	for i := 0; i < 2; i++ {
		t := &g.tmu[i]
		s := t.s + dx*t.dSdx + dy*t.dSdy
		tt := t.t + dx*t.dTdx + dy*t.dTdy
		ww := t.w + dx*t.dWdx + dy*t.dWdy
		in.tmu[i] = texCoordIter{
			s: int64(s * float32(int64(1)<<shift14_18)),
			t: int64(tt * float32(int64(1)<<shift14_18)),
			w: int64(ww * float32(int64(1)<<shift2_30)),
		}
	}
	return in
}

// setupTriangle performs the serial §4.6 setup stage. Returns ok=false
// if the triangle is silently dropped (degenerate, culled, or fully
// clip-rejected) in which case stats has already been updated.
func setupTriangle(fbi *fbiState, v [3]vertex, cullMode int32, stats *Statistics) (gradients, []span, int64, bool) {
	ax, ay := v[0].x, v[0].y
	bx, by := v[1].x, v[1].y
	cx, cy := v[2].x, v[2].y

	area := (bx-ax)*(cy-ay) - (cx-ax)*(by-ay)
	if area == 0 {
		stats.addTrisRejected(1)
		return gradients{}, nil, 0, false
	}

	frontFacing := area < 0
	switch cullMode {
	case cullFrontFacing:
		if frontFacing {
			stats.addTrisRejected(1)
			return gradients{}, nil, 0, false
		}
	case cullBackFacing:
		if !frontFacing {
			stats.addTrisRejected(1)
			return gradients{}, nil, 0, false
		}
	}

	minX, maxX := min3(ax, bx, cx), max3(ax, bx, cx)
	minY, maxY := min3(ay, by, cy), max3(ay, by, cy)
	if maxX < float32(fbi.clipLeft) || minX >= float32(fbi.clipRight) ||
		maxY < float32(fbi.clipTop) || minY >= float32(fbi.clipBottom) {
		stats.addClipRejected(1)
		return gradients{}, nil, 0, false
	}

	invArea := 1.0 / area
	dxBA, dyBA := bx-ax, by-ay
	dxCA, dyCA := cx-ax, cy-ay

	gradOf := func(va, vb, vc float32) (val, dx, dy float32) {
		dvB, dvC := vb-va, vc-va
		dx = (dvB*dyCA - dvC*dyBA) * invArea
		dy = (dvC*dxBA - dvB*dxCA) * invArea
		return va, dx, dy
	}

	var g gradients
	g.r, g.dRdx, g.dRdy = gradOf(v[0].r, v[1].r, v[2].r)
	g.g, g.dGdx, g.dGdy = gradOf(v[0].g, v[1].g, v[2].g)
	g.b, g.dBdx, g.dBdy = gradOf(v[0].b, v[1].b, v[2].b)
	g.a, g.dAdx, g.dAdy = gradOf(v[0].a, v[1].a, v[2].a)
	g.z, g.dZdx, g.dZdy = gradOf(v[0].z, v[1].z, v[2].z)
	g.w, g.dWdx, g.dWdy = gradOf(v[0].oow, v[1].oow, v[2].oow)
	for i := 0; i < 2; i++ {
		g.tmu[i].s, g.tmu[i].dSdx, g.tmu[i].dSdy = gradOf(v[0].tmu[i].s, v[1].tmu[i].s, v[2].tmu[i].s)
		g.tmu[i].t, g.tmu[i].dTdx, g.tmu[i].dTdy = gradOf(v[0].tmu[i].t, v[1].tmu[i].t, v[2].tmu[i].t)
		g.tmu[i].w, g.tmu[i].dWdx, g.tmu[i].dWdy = gradOf(v[0].tmu[i].w, v[1].tmu[i].w, v[2].tmu[i].w)
	}
	g.baseX, g.baseY = ax, ay

	spans := walkEdges(v, fbi)

	var total int64
	for i := range spans {
		spans[i].pixelStart = total
		total += int64(spans[i].count)
	}

	if total == 0 {
		stats.addClipRejected(1)
		return gradients{}, nil, 0, false
	}

	return g, spans, total, true
}

// walkEdges sorts vertices by Y and emits one span per scanline across
// the triangle's extent, clipped to the clip window.
func walkEdges(v [3]vertex, fbi *fbiState) []span {
	idx := [3]int{0, 1, 2}
	for i := 0; i < 2; i++ {
		for j := i + 1; j < 3; j++ {
			if v[idx[j]].y < v[idx[i]].y {
				idx[i], idx[j] = idx[j], idx[i]
			}
		}
	}
	top, mid, bot := v[idx[0]], v[idx[1]], v[idx[2]]

	yStart := int32(ceilf(top.y))
	yEnd := int32(ceilf(bot.y))
	if yStart < fbi.clipTop {
		yStart = fbi.clipTop
	}
	if yEnd > fbi.clipBottom {
		yEnd = fbi.clipBottom
	}

	edge := func(y0 float32, y1 float32, x0, x1 float32, y float32) (float32, bool) {
		if y1 == y0 {
			return 0, false
		}
		t := (y - y0) / (y1 - y0)
		if t < 0 || t > 1 {
			return 0, false
		}
		return x0 + t*(x1-x0), true
	}

	var spans []span
	for y := yStart; y < yEnd; y++ {
		fy := float32(y) + 0.5

		var xs [2]float32
		n := 0
		if xv, ok := edge(top.y, bot.y, top.x, bot.x, fy); ok {
			xs[n] = xv
			n++
		}
		if fy <= mid.y {
			if xv, ok := edge(top.y, mid.y, top.x, mid.x, fy); ok {
				xs[n] = xv
				n++
			}
		} else {
			if xv, ok := edge(mid.y, bot.y, mid.x, bot.x, fy); ok {
				xs[n] = xv
				n++
			}
		}
		if n < 2 {
			continue
		}
		left, right := xs[0], xs[1]
		if left > right {
			left, right = right, left
		}

		xStart := int32(ceilf(left))
		xEnd := int32(ceilf(right))
		if xStart < fbi.clipLeft {
			xStart = fbi.clipLeft
		}
		if xEnd > fbi.clipRight {
			xEnd = fbi.clipRight
		}
		if xEnd <= xStart {
			continue
		}
		spans = append(spans, span{y: y, xStart: xStart, count: xEnd - xStart})
	}
	return spans
}

// cull mode values exposed to the Glide translator.
const (
	cullDisable = iota
	cullFrontFacing
	cullBackFacing
)

func min3(a, b, c float32) float32 {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}

func max3(a, b, c float32) float32 {
	if a > b {
		if a > c {
			return a
		}
		return c
	}
	if b > c {
		return b
	}
	return c
}

func ceilf(v float32) float32 {
	i := float32(int32(v))
	if i < v {
		return i + 1
	}
	return i
}

// drawTriangle runs setup, then either dispatches to the worker pool or
// rasterizes inline depending on the pixel-count threshold (§4.6).
func (c *Context) drawTriangle(v [3]vertex) {
	g, spans, total, ok := setupTriangle(&c.fbi, v, c.fbi.cullMode, &c.fbi.stats)
	if !ok {
		return
	}

	for i := range c.tmu {
		c.tmu[i].recompute()
	}

	job := &rasterJob{
		fbi:         &c.fbi,
		tmu:         &c.tmu,
		grad:        g,
		spans:       spans,
		totalPixels: total,
		destBuf:     c.fbi.drawBuffer(),
		auxBuf:      c.fbi.auxBuf,
		rowpixels:   c.fbi.rowpixels,
	}

	if total < parallelThreshold || c.pool == nil {
		rasterizeInline(job, &c.fbi.stats)
		return
	}
	c.pool.dispatch(job)
}

func rasterizeInline(job *rasterJob, stats *Statistics) {
	rasterizeWorkUnit(job, 0, 1, stats)
}
