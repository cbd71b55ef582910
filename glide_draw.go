// glide_draw.go - triangle/line/point/vertex-array drawing entry points (C7)

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
glide_draw.go - GrDrawTriangle snapshots the three in-flight vertices
into the batch, same as the teacher's executeTriangleCmd; GrDrawLine and
GrDrawPoint are expressed as degenerate triangles over the setup/raster
path rather than a separate line rasterizer, per the spec's explicit
design note that they may reuse the triangle pipeline.
*/

package voodoo

import "math"

// GrDrawTriangle snapshots the current triangle-assembly vertices
// (applying Gouraud or flat shading per the active vertex layout) and
// submits them to the rasterizer.
func (c *Context) GrDrawTriangle() {
	c.mu.Lock()
	var tri [3]vertex
	if c.vertexLayout.gouraudShading {
		tri = c.current.vertexColors
	} else {
		for i := range tri {
			tri[i] = c.current.building
		}
	}
	tri[0].x, tri[1].x, tri[2].x = c.current.vertices[0].x, c.current.vertices[1].x, c.current.vertices[2].x
	tri[0].y, tri[1].y, tri[2].y = c.current.vertices[0].y, c.current.vertices[1].y, c.current.vertices[2].y
	tri[0].oow, tri[1].oow, tri[2].oow = c.current.vertices[0].oow, c.current.vertices[1].oow, c.current.vertices[2].oow
	c.mu.Unlock()

	c.drawTriangle(tri)
}

// GrVertexCorner commits the current position (set by GrVertexPosition)
// into slot idx (0,1,2) of the triangle being assembled, then sets the
// color target to the same slot, matching the teacher's per-vertex
// register-write cadence.
func (c *Context) GrVertexCorner(idx int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if idx < 0 || idx > 2 {
		return
	}
	c.current.vertices[idx] = c.current.building
	c.current.colorTarget = idx
}

// GrDrawPoint draws a single pixel as a minimal axis-aligned triangle
// covering it, reusing the full pixel pipeline (depth test, texturing,
// fog, blend) rather than a bespoke point path.
func (c *Context) GrDrawPoint(x, y float32, r, g, b, a, z float32) {
	v := vertex{x: x, y: y, oow: 1, r: r, g: g, b: b, a: a, z: z}
	v2 := v
	v2.x += 1
	v3 := v
	v3.y += 1
	c.drawTriangle([3]vertex{v, v2, v3})
}

// GrDrawLine draws a thin quad (two triangles) along the segment from
// (x0,y0) to (x1,y1), again through the ordinary triangle path.
func (c *Context) GrDrawLine(x0, y0, x1, y1 float32, r, g, b, a, z float32, width float32) {
	dx, dy := x1-x0, y1-y0
	length := float32(math.Sqrt(float64(dx*dx + dy*dy)))
	if length == 0 {
		return
	}
	nx, ny := -dy/length*width/2, dx/length*width/2

	v00 := vertex{x: x0 + nx, y: y0 + ny, oow: 1, r: r, g: g, b: b, a: a, z: z}
	v01 := vertex{x: x0 - nx, y: y0 - ny, oow: 1, r: r, g: g, b: b, a: a, z: z}
	v10 := vertex{x: x1 + nx, y: y1 + ny, oow: 1, r: r, g: g, b: b, a: a, z: z}
	v11 := vertex{x: x1 - nx, y: y1 - ny, oow: 1, r: r, g: g, b: b, a: a, z: z}

	c.drawTriangle([3]vertex{v00, v01, v10})
	c.drawTriangle([3]vertex{v01, v11, v10})
}

// GrVertexArrayElement describes one vertex for the batched array
// drawing entry points below.
type GrVertexArrayElement struct {
	X, Y, OOW      float32
	R, G, B, A, Z  float32
	TMU            [2]struct{ S, T, W float32 }
}

func toInternalVertex(e GrVertexArrayElement) vertex {
	v := vertex{x: e.X, y: e.Y, oow: e.OOW, r: e.R, g: e.G, b: e.B, a: e.A, z: e.Z}
	for i := 0; i < 2; i++ {
		v.tmu[i] = struct{ s, t, w float32 }{e.TMU[i].S, e.TMU[i].T, e.TMU[i].W}
	}
	return v
}

// GrDrawVertexArray draws a fan of triangles, each built from vertices
// [0, i+1, i+2] of verts, matching GR_TRIANGLE_FAN semantics.
func (c *Context) GrDrawVertexArray(verts []GrVertexArrayElement) {
	if len(verts) < 3 {
		return
	}
	base := toInternalVertex(verts[0])
	for i := 1; i+1 < len(verts); i++ {
		v1 := toInternalVertex(verts[i])
		v2 := toInternalVertex(verts[i+1])
		c.drawTriangle([3]vertex{base, v1, v2})
	}
}

// GrDrawVertexArrayContiguous draws independent, non-overlapping
// triangles: every consecutive run of three vertices is one triangle.
func (c *Context) GrDrawVertexArrayContiguous(verts []GrVertexArrayElement) {
	for i := 0; i+2 < len(verts); i += 3 {
		c.drawTriangle([3]vertex{
			toInternalVertex(verts[i]),
			toInternalVertex(verts[i+1]),
			toInternalVertex(verts[i+2]),
		})
	}
}

// GrDrawVertexArrayLinear draws a triangle strip: each new vertex forms
// a triangle with the previous two.
func (c *Context) GrDrawVertexArrayLinear(verts []GrVertexArrayElement) {
	if len(verts) < 3 {
		return
	}
	for i := 0; i+2 < len(verts); i++ {
		c.drawTriangle([3]vertex{
			toInternalVertex(verts[i]),
			toInternalVertex(verts[i+1]),
			toInternalVertex(verts[i+2]),
		})
	}
}
