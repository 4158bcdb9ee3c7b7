package renderer

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/fresneltrace/fresnel/log"
	"github.com/fresneltrace/fresnel/pkg/core"
	"github.com/fresneltrace/fresnel/pkg/geometry"
)

var logger = log.New("renderer")

// Options configure a render run.
type Options struct {
	Width      int
	Height     int
	Sampler    Sampler
	MaxDepth   int
	Seed       int64
	NumWorkers int       // <= 0 selects runtime.NumCPU()
	Progress   io.Writer // nil disables the scanline counter

	// Snapshot, when set, receives a partial frame holding every row
	// finished so far, after each completed scanline. It runs on the
	// collecting goroutine and must not retain the frame across calls.
	Snapshot func(frame *Framebuffer, rowsDone, rowsTotal int)
}

// Renderer shades a pixel grid against a shape tree.
type Renderer struct {
	camera     *Camera
	background Background
	root       geometry.Shape
	opts       Options
}

// NewRenderer creates a renderer over an immutable shape tree.
func NewRenderer(camera *Camera, background Background, root geometry.Shape, opts Options) *Renderer {
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = runtime.NumCPU()
	}
	return &Renderer{
		camera:     camera,
		background: background,
		root:       root,
		opts:       opts,
	}
}

// rowTask asks a worker to shade one scanline.
type rowTask struct {
	y   int          // row index counting up from the bottom of the image
	rng *core.Random // per-row source derived from the render seed
}

// rowResult reports one completed scanline.
type rowResult struct {
	y   int
	err error
}

// renderWorker pulls scanline tasks off the shared queue. Rows are
// disjoint, so workers write to the shared framebuffer without locking.
type renderWorker struct {
	id          int
	renderer    *Renderer
	frame       *Framebuffer
	ctx         context.Context
	taskQueue   chan rowTask
	resultQueue chan rowResult
}

func (w *renderWorker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		if err := w.ctx.Err(); err != nil {
			w.resultQueue <- rowResult{y: task.y, err: err}
			continue
		}
		w.renderer.renderRow(task.y, task.rng, w.frame)
		w.resultQueue <- rowResult{y: task.y}
	}
}

// Render shades every pixel and returns the finished framebuffer with the
// run's statistics. Cancelling the context aborts at the next row boundary.
// The output is a pure function of the scene and the seed: per-row random
// sources make the image identical for any worker count.
func (r *Renderer) Render(ctx context.Context) (*Framebuffer, RenderStats, error) {
	start := time.Now()
	frame := NewFramebuffer(r.opts.Width, r.opts.Height)

	logger.Infof("rendering %dx%d, %d samples/pixel, depth %d, %d workers",
		r.opts.Width, r.opts.Height, r.opts.Sampler.SamplesPerPixel(), r.opts.MaxDepth, r.opts.NumWorkers)

	taskQueue := make(chan rowTask, r.opts.Height)
	resultQueue := make(chan rowResult, r.opts.Height)

	var wg sync.WaitGroup
	for i := 0; i < r.opts.NumWorkers; i++ {
		worker := &renderWorker{
			id:          i,
			renderer:    r,
			frame:       frame,
			ctx:         ctx,
			taskQueue:   taskQueue,
			resultQueue: resultQueue,
		}
		wg.Add(1)
		go worker.run(&wg)
	}

	// Top image row first. Row y counts up from the bottom, so the
	// submission order runs y = height-1 down to 0.
	for y := r.opts.Height - 1; y >= 0; y-- {
		taskQueue <- rowTask{y: y, rng: core.NewRandom(r.opts.Seed ^ int64(y+1))}
	}
	close(taskQueue)

	// A private copy for snapshots: a received result is the only proof
	// a row's pixels are safe to read while workers keep writing others.
	var snapshot *Framebuffer
	if r.opts.Snapshot != nil {
		snapshot = NewFramebuffer(r.opts.Width, r.opts.Height)
	}

	remaining := r.opts.Height
	var firstErr error
	for i := 0; i < r.opts.Height; i++ {
		result := <-resultQueue
		if result.err != nil && firstErr == nil {
			firstErr = result.err
		}
		remaining--
		if r.opts.Progress != nil {
			fmt.Fprintf(r.opts.Progress, "\rScanlines remaining: %d ", remaining)
		}
		if snapshot != nil && result.err == nil {
			snapshot.CopyRow(frame, r.opts.Height-1-result.y)
			r.opts.Snapshot(snapshot, r.opts.Height-remaining, r.opts.Height)
		}
	}
	wg.Wait()

	if r.opts.Progress != nil {
		fmt.Fprintln(r.opts.Progress)
	}
	if firstErr != nil {
		return nil, RenderStats{}, firstErr
	}

	samples := r.opts.Sampler.SamplesPerPixel()
	stats := RenderStats{
		Width:           r.opts.Width,
		Height:          r.opts.Height,
		SamplesPerPixel: samples,
		MaxDepth:        r.opts.MaxDepth,
		PrimaryRays:     int64(r.opts.Width) * int64(r.opts.Height) * int64(samples),
		Workers:         r.opts.NumWorkers,
		RenderTime:      time.Since(start),
	}
	logger.Infof("render finished in %s", stats.RenderTime)

	return frame, stats, nil
}

// renderRow shades one scanline left to right. y counts up from the
// bottom of the image; the framebuffer row is height-1-y.
func (r *Renderer) renderRow(y int, rng *core.Random, frame *Framebuffer) {
	samples := r.opts.Sampler.SamplesPerPixel()
	for x := 0; x < r.opts.Width; x++ {
		var acc core.Accumulator
		for k := 0; k < samples; k++ {
			s, t := r.opts.Sampler.UV(k, x, y, r.opts.Width, r.opts.Height)
			ray := r.camera.GetRay(s, t, rng)
			acc.Add(RayColor(ray, r.background, r.root, r.opts.MaxDepth, rng))
		}
		frame.SetPixel(x, r.opts.Height-1-y, acc.Average().RGB8())
	}
}
