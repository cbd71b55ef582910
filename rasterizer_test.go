package voodoo

import "testing"

func TestSetupTriangle_DegenerateRejected(t *testing.T) {
	var fbi fbiState
	fbi.initDefaults(64, 64)
	var stats Statistics

	v := [3]vertex{{x: 1, y: 1}, {x: 1, y: 1}, {x: 1, y: 1}}
	_, _, _, ok := setupTriangle(&fbi, v, cullDisable, &stats)
	if ok {
		t.Fatalf("expected degenerate triangle to be rejected")
	}
	if stats.TrisRejected != 1 {
		t.Fatalf("tris_rejected = %d, want 1", stats.TrisRejected)
	}
}

func TestSetupTriangle_FullyOutsideClipRejected(t *testing.T) {
	var fbi fbiState
	fbi.initDefaults(64, 64)
	var stats Statistics

	v := [3]vertex{
		{x: 200, y: 200, oow: 1},
		{x: 260, y: 200, oow: 1},
		{x: 200, y: 260, oow: 1},
	}
	_, _, _, ok := setupTriangle(&fbi, v, cullDisable, &stats)
	if ok {
		t.Fatalf("expected fully clipped triangle to be rejected")
	}
	if stats.ClipRejected != 1 {
		t.Fatalf("clip_rejected = %d, want 1", stats.ClipRejected)
	}
}

func TestSetupTriangle_CullFrontFacing(t *testing.T) {
	var fbi fbiState
	fbi.initDefaults(64, 64)
	var stats Statistics

	// Counter-clockwise in screen space (y-down): area < 0 is
	// front-facing per setupTriangle's convention.
	v := [3]vertex{
		{x: 0, y: 0, oow: 1},
		{x: 0, y: 10, oow: 1},
		{x: 10, y: 0, oow: 1},
	}
	_, _, _, ok := setupTriangle(&fbi, v, cullFrontFacing, &stats)
	if ok {
		t.Fatalf("expected front-facing triangle to be culled")
	}
}

func TestWalkEdges_ProducesSpansWithinClip(t *testing.T) {
	var fbi fbiState
	fbi.initDefaults(32, 32)

	v := [3]vertex{
		{x: 4, y: 4},
		{x: 20, y: 4},
		{x: 4, y: 20},
	}
	spans := walkEdges(v, &fbi)
	if len(spans) == 0 {
		t.Fatalf("expected at least one span")
	}
	for _, s := range spans {
		if s.xStart < fbi.clipLeft || s.xStart+s.count > fbi.clipRight {
			t.Fatalf("span out of clip bounds: %+v", s)
		}
		if s.y < fbi.clipTop || s.y >= fbi.clipBottom {
			t.Fatalf("span row out of clip bounds: %+v", s)
		}
	}
}
