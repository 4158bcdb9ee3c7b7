package renderer

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/fresneltrace/fresnel/pkg/core"
	"github.com/fresneltrace/fresnel/pkg/geometry"
	"github.com/fresneltrace/fresnel/pkg/material"
)

func testOptions(width, height, n, workers int) Options {
	return Options{
		Width:      width,
		Height:     height,
		Sampler:    NewSampler(n),
		MaxDepth:   8,
		Seed:       42,
		NumWorkers: workers,
	}
}

func TestRender_EmptySceneIsBackground(t *testing.T) {
	camera := NewCamera(defaultCameraConfig())
	background := NewGradientBackground(core.NewColor(0.5, 0.7, 1.0))
	root := geometry.NewBVH(nil, core.NewInterval(0, 1))

	opts := testOptions(8, 8, 2, 3)
	frame, stats, err := NewRenderer(camera, background, root, opts).Render(context.Background())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if stats.PrimaryRays != 8*8*4 {
		t.Errorf("Expected 256 primary rays, got %d", stats.PrimaryRays)
	}

	// With no shapes and a closed lens every pixel is exactly the
	// average background over its sample rays.
	sampler := NewSampler(2)
	rng := core.NewRandom(9)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			var acc core.Accumulator
			for k := 0; k < sampler.SamplesPerPixel(); k++ {
				s, v := sampler.UV(k, x, y, 8, 8)
				acc.Add(background.At(camera.GetRay(s, v, rng)))
			}
			want := acc.Average().RGB8()
			if got := frame.PixelAt(x, 7-y); got != want {
				t.Errorf("Pixel (%d, %d): expected %+v, got %+v", x, y, want, got)
			}
		}
	}

	// The sky ramp puts the base color at the top and fades toward
	// white at the bottom.
	top := frame.PixelAt(4, 0)
	bottom := frame.PixelAt(4, 7)
	if top.B <= top.R {
		t.Errorf("Expected a blue cast at the top of the sky, got %+v", top)
	}
	if int(top.B)-int(top.R) <= int(bottom.B)-int(bottom.R) {
		t.Errorf("Expected the sky to fade toward white at the bottom, got top %+v bottom %+v", top, bottom)
	}
}

func TestRender_WorkerCountInvariance(t *testing.T) {
	sphere := geometry.NewSphere(core.NewPoint3(0, 0, -1), 0.5, material.NewLambertian(core.NewColor(0.5, 0.5, 0.5)))
	root := geometry.NewBVH([]geometry.Shape{sphere}, core.NewInterval(0, 1))
	background := NewGradientBackground(core.NewColor(0.5, 0.7, 1.0))

	render := func(workers int) []byte {
		camera := NewCamera(defaultCameraConfig())
		frame, _, err := NewRenderer(camera, background, root, testOptions(6, 4, 2, workers)).Render(context.Background())
		if err != nil {
			t.Fatalf("Render with %d workers failed: %v", workers, err)
		}
		return frame.Bytes()
	}

	one := render(1)
	four := render(4)
	if !bytes.Equal(one, four) {
		t.Error("Expected identical images for 1 and 4 workers")
	}
}

func TestRender_SingleSphereCenterPixel(t *testing.T) {
	cfg := defaultCameraConfig()
	cfg.LookFrom = core.NewPoint3(0, 0, 3)
	cfg.LookAt = core.NewPoint3(0, 0, 0)
	camera := NewCamera(cfg)

	sphere := geometry.NewSphere(core.NewPoint3(0, 0, 0), 1, material.NewLambertian(core.NewColor(0.5, 0.5, 0.5)))
	root := geometry.NewBVH([]geometry.Shape{sphere}, core.NewInterval(0, 1))
	background := NewGradientBackground(core.NewColor(0.5, 0.7, 1.0))

	opts := testOptions(9, 9, 3, 2)
	opts.MaxDepth = 16
	frame, _, err := NewRenderer(camera, background, root, opts).Render(context.Background())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	// Quantized albedo 0.5 is byte 181. Every bounce multiplies the sky
	// radiance by 0.5, so the shaded red and green channels stay strictly
	// below it, and the sky tint keeps r <= g <= b.
	center := frame.PixelAt(4, 4)
	if center.R == 0 || center.G == 0 || center.B == 0 {
		t.Errorf("Expected a lit center pixel, got %+v", center)
	}
	if center.R >= 181 || center.G >= 181 || center.B > 181 {
		t.Errorf("Expected the center pixel below the albedo, got %+v", center)
	}
	if center.R > center.G || center.G > center.B {
		t.Errorf("Expected r <= g <= b at the center, got %+v", center)
	}

	// Corner rays miss the sphere and see the bare sky.
	sampler := NewSampler(3)
	rng := core.NewRandom(1)
	var acc core.Accumulator
	for k := 0; k < sampler.SamplesPerPixel(); k++ {
		s, v := sampler.UV(k, 0, 8, 9, 9)
		acc.Add(background.At(camera.GetRay(s, v, rng)))
	}
	want := acc.Average().RGB8()
	if got := frame.PixelAt(0, 0); got != want {
		t.Errorf("Expected the corner pixel %+v to equal the sky average, got %+v", want, got)
	}
}

func TestRender_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	camera := NewCamera(defaultCameraConfig())
	root := geometry.NewBVH(nil, core.NewInterval(0, 1))
	_, _, err := NewRenderer(camera, NewSolidBackground(core.Color{}), root, testOptions(4, 4, 1, 2)).Render(ctx)
	if err == nil {
		t.Fatal("Expected a cancellation error")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestRender_ProgressCounter(t *testing.T) {
	var progress bytes.Buffer
	camera := NewCamera(defaultCameraConfig())
	root := geometry.NewBVH(nil, core.NewInterval(0, 1))

	opts := testOptions(2, 2, 1, 1)
	opts.Progress = &progress
	_, _, err := NewRenderer(camera, NewSolidBackground(core.Color{}), root, opts).Render(context.Background())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	want := "\rScanlines remaining: 1 \rScanlines remaining: 0 \n"
	if progress.String() != want {
		t.Errorf("Expected %q, got %q", want, progress.String())
	}
}

func TestRender_SnapshotPerRow(t *testing.T) {
	camera := NewCamera(defaultCameraConfig())
	background := NewGradientBackground(core.NewColor(0.5, 0.7, 1.0))
	root := geometry.NewBVH(nil, core.NewInterval(0, 1))

	var doneCounts []int
	var lastBytes []byte
	opts := testOptions(4, 4, 1, 2)
	opts.Snapshot = func(frame *Framebuffer, rowsDone, rowsTotal int) {
		if rowsTotal != 4 {
			t.Errorf("Expected 4 total rows, got %d", rowsTotal)
		}
		doneCounts = append(doneCounts, rowsDone)
		lastBytes = append(lastBytes[:0], frame.Bytes()...)
	}

	frame, _, err := NewRenderer(camera, background, root, opts).Render(context.Background())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if len(doneCounts) != 4 {
		t.Fatalf("Expected 4 snapshots, got %d", len(doneCounts))
	}
	for i, n := range doneCounts {
		if n != i+1 {
			t.Errorf("Expected snapshot %d to report %d rows done, got %d", i, i+1, n)
		}
	}
	if !bytes.Equal(lastBytes, frame.Bytes()) {
		t.Error("Expected the final snapshot to match the finished frame")
	}
}
