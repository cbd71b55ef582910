// workers.go - triangle-worker pool for parallel scanline dispatch (C6)

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
workers.go - a small fixed pool of goroutines that divide one triangle's
pixel work into M equal work units, handed out by an atomic fetch-add on
a shared work index. The calling goroutine blocks on a condition variable
until every worker has signalled completion, matching §4.6/§5: no
application-visible concurrency, only internal parallel scanline dispatch.
*/

package voodoo

import (
	"os"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
)

// parallelThreshold is the pixel-count floor below which a triangle
// bypasses the worker pool entirely and rasterizes on the calling thread.
const parallelThreshold = 200

// span is one scanline's pixel range within a triangle's raster job.
type span struct {
	y          int32
	xStart     int32
	count      int32
	pixelStart int64 // cumulative pixel offset across all spans, for work-unit slicing
}

// rasterJob is everything a worker needs to shade its assigned work
// units of one triangle; shared read-only except for disjoint
// framebuffer/aux ranges and each worker's own statistics.
type rasterJob struct {
	fbi  *fbiState
	tmu  *[2]tmuState
	grad gradients
	spans []span
	totalPixels int64

	destBuf []uint16
	auxBuf  []uint16
	rowpixels int
}

type workerPool struct {
	n        int
	workIdx  int64
	doneCnt  int64
	wanted   int64
	mu       sync.Mutex
	cond     *sync.Cond
	job      *rasterJob
	statsPer []Statistics

	once sync.Once
}

func configuredWorkerCount() int {
	if s := os.Getenv("GLIDE3X_THREADS"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			if n <= 0 {
				return 0
			}
			if n > 8 {
				n = 8
			}
			return n
		}
	}
	n := runtime.NumCPU() - 1
	if n < 0 {
		n = 0
	}
	if n > 8 {
		n = 8
	}
	return n
}

func newWorkerPool(n int) *workerPool {
	p := &workerPool{n: n, statsPer: make([]Statistics, n)}
	p.cond = sync.NewCond(&p.mu)
	return p
}

// ensureStarted lazily spins up the N worker goroutines on first use,
// matching §3's "created lazily on first triangle whose covered pixel
// count exceeds a small threshold".
func (p *workerPool) ensureStarted() {
	p.once.Do(func() {
		for i := 0; i < p.n; i++ {
			go p.workerLoop(i)
		}
	})
}

func (p *workerPool) workerLoop(id int) {
	for {
		p.mu.Lock()
		for p.job == nil {
			p.cond.Wait()
		}
		job := p.job
		wanted := p.wanted
		p.mu.Unlock()

		m := wanted
		for {
			unit := atomic.AddInt64(&p.workIdx, 1) - 1
			if unit >= m {
				break
			}
			rasterizeWorkUnit(job, unit, m, &p.statsPer[id])
		}

		p.mu.Lock()
		done := atomic.AddInt64(&p.doneCnt, 1)
		if done == int64(p.n) {
			p.cond.Broadcast()
		}
		p.mu.Unlock()

		// Wait for the job to be cleared before looping back, so a worker
		// that finishes early does not immediately re-enter with the same
		// job while siblings are still signalling completion.
		p.mu.Lock()
		for p.job == job {
			p.cond.Wait()
		}
		p.mu.Unlock()
	}
}

// dispatch divides job across M = (N+1)*4 work units and blocks until
// all workers finish, aggregating their per-worker statistics into
// job.fbi.stats.
func (p *workerPool) dispatch(job *rasterJob) {
	p.ensureStarted()

	m := int64((p.n + 1) * 4)

	p.mu.Lock()
	atomic.StoreInt64(&p.workIdx, 0)
	atomic.StoreInt64(&p.doneCnt, 0)
	p.wanted = m
	p.job = job
	p.cond.Broadcast()
	p.mu.Unlock()

	p.mu.Lock()
	for atomic.LoadInt64(&p.doneCnt) != int64(p.n) {
		p.cond.Wait()
	}
	p.job = nil
	p.cond.Broadcast()
	p.mu.Unlock()

	for i := range p.statsPer {
		mergeStats(&job.fbi.stats, &p.statsPer[i])
		p.statsPer[i] = Statistics{}
	}
}

func mergeStats(dst *Statistics, src *Statistics) {
	dst.addPixelsOut(src.PixelsOut)
	dst.addZFuncFail(src.ZFuncFail)
	dst.addAFuncFail(src.AFuncFail)
	dst.addChromaFail(src.ChromaFail)
	dst.addStippleCount(src.StippleCount)
	dst.addClipRejected(src.ClipRejected)
	dst.addTrisRejected(src.TrisRejected)
}

// rasterizeWorkUnit shades the pixel range [total*unit/M, total*(unit+1)/M)
// across the job's spans.
func rasterizeWorkUnit(job *rasterJob, unit, m int64, stats *Statistics) {
	lo := job.totalPixels * unit / m
	hi := job.totalPixels * (unit + 1) / m

	for _, sp := range job.spans {
		spLo := sp.pixelStart
		spHi := spLo + int64(sp.count)
		start := maxI64(lo, spLo)
		end := minI64(hi, spHi)
		if start >= end {
			continue
		}
		rowOff := int(sp.y) * job.rowpixels
		destRow := job.destBuf[rowOff : rowOff+job.rowpixels]
		auxRow := job.auxBuf[rowOff : rowOff+job.rowpixels]

		for p := start; p < end; p++ {
			col := int(sp.xStart) + int(p-spLo)
			in := job.grad.pixelAt(sp.y, int32(col))
			shadePixel(job.fbi, job.tmu, stats, in, destRow, auxRow, col)
		}
	}
}

func maxI64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func minI64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
