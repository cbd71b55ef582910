package voodoo

import "testing"

func TestGlideLifecycle_InitOpenCloseShutdown(t *testing.T) {
	GrGlideInit()
	defer GrGlideShutdown()

	c, err := GrSstWinOpen(NullDisplay{}, 32, 32, 0)
	if err != nil {
		t.Fatalf("GrSstWinOpen: %v", err)
	}
	if c.GrSstScreenWidth() != 32 || c.GrSstScreenHeight() != 32 {
		t.Fatalf("unexpected dimensions %d x %d", c.GrSstScreenWidth(), c.GrSstScreenHeight())
	}

	GrSstWinClose(c)
	GrGlideShutdown()

	if _, err := GrSstWinOpen(nil, 32, 32, 0); err == nil {
		t.Fatalf("expected error opening a window before re-init")
	}
}

func TestGlideLifecycle_DoubleOpenFails(t *testing.T) {
	GrGlideInit()
	defer GrGlideShutdown()

	c1, err := GrSstWinOpen(NullDisplay{}, 16, 16, 0)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	defer GrSstWinClose(c1)

	if _, err := GrSstWinOpen(NullDisplay{}, 16, 16, 0); err == nil {
		t.Fatalf("expected second GrSstWinOpen to fail while a window is open")
	}
}

func TestGrSstQueryHardware_ReportsOpenContext(t *testing.T) {
	GrGlideInit()
	defer GrGlideShutdown()

	c, err := GrSstWinOpen(NullDisplay{}, 16, 16, 0)
	if err != nil {
		t.Fatalf("GrSstWinOpen: %v", err)
	}
	defer GrSstWinClose(c)

	hw := GrSstQueryHardware()
	if hw.NumTMU != 2 {
		t.Fatalf("NumTMU = %d, want 2", hw.NumTMU)
	}
	if hw.TMURamBytes[0] == 0 {
		t.Fatalf("expected non-zero TMU RAM size once a window is open")
	}
}

func TestGrBufferClearSwap_StatisticsUnaffected(t *testing.T) {
	c := newTestContext(t, 8, 8)
	before := c.GrStatistics()
	c.GrBufferClear(0, 0)
	c.GrBufferSwap()
	after := c.GrStatistics()
	if before != after {
		t.Fatalf("expected clear/swap to leave pixel statistics untouched")
	}
}
