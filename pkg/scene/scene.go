package scene

import (
	"fmt"
	"time"

	"github.com/fresneltrace/fresnel/log"
	"github.com/fresneltrace/fresnel/pkg/core"
	"github.com/fresneltrace/fresnel/pkg/geometry"
	"github.com/fresneltrace/fresnel/pkg/material"
	"github.com/fresneltrace/fresnel/pkg/renderer"
)

var logger = log.New("scene")

// Scene is a fully built, render-ready description of one frame.
type Scene struct {
	Camera     *renderer.Camera
	Background renderer.Background
	Shapes     []geometry.Shape
	Root       *geometry.BVH

	Width    int
	Height   int
	Sampler  renderer.Sampler
	MaxDepth int
	Time     core.Interval

	BuildTime time.Duration
	BVHStats  geometry.Stats
}

// Scene builds the render-ready scene described by the config.
func (c *Config) Scene() (*Scene, error) {
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}

	shapes := make([]geometry.Shape, 0, len(c.SceneList))
	for i, obj := range c.SceneList {
		shape, err := obj.Build()
		if err != nil {
			return nil, fmt.Errorf("scene_list[%d]: %w", i, err)
		}
		shapes = append(shapes, shape)
	}

	camera := renderer.NewCamera(renderer.CameraConfig{
		LookFrom:      c.Camera.LookFrom,
		LookAt:        c.Camera.LookAt,
		Up:            c.Camera.Up,
		VerticalFov:   c.Camera.VerticalFov,
		AspectRatio:   c.Camera.AspectRatio,
		Aperture:      c.Camera.Aperture,
		FocusDistance: c.Camera.FocusDistance,
		Time:          core.NewInterval(c.Camera.TimeMin, c.Camera.TimeMax),
	})

	var background renderer.Background = renderer.NewSolidBackground(c.BackgroundColor)
	if c.Background == "gradient" {
		background = renderer.NewGradientBackground(c.BackgroundColor)
	}

	return &Scene{
		Camera:     camera,
		Background: background,
		Shapes:     shapes,
		Width:      c.Image.Width,
		Height:     c.Image.Height,
		Sampler:    renderer.NewSampler(c.Sampler.N),
		MaxDepth:   c.Sampler.MaxDepth,
		Time:       core.NewInterval(c.Camera.TimeMin, c.Camera.TimeMax),
	}, nil
}

// Preprocess builds the acceleration structure and warms lazy textures.
// Call once before rendering; afterwards the scene graph is read-only and
// safe to share across render workers.
func (s *Scene) Preprocess() {
	start := time.Now()

	// The builder reorders its input, so hand it a copy and keep the
	// authored shape order intact.
	shapes := make([]geometry.Shape, len(s.Shapes))
	copy(shapes, s.Shapes)
	s.Root = geometry.NewBVH(shapes, s.Time)
	s.BVHStats = s.Root.Stats()

	warmed := s.prewarmTextures()
	s.BuildTime = time.Since(start)

	logger.Debugf("built BVH: %d nodes, depth %d, %d unbounded, %d textures warmed, %s",
		s.BVHStats.Nodes, s.BVHStats.Depth, s.BVHStats.Unbounded, warmed, s.BuildTime)
}

// prewarmTextures forces every image texture to decode before rendering
// starts, so the hot path never touches the filesystem. Reports how many
// loaded successfully.
func (s *Scene) prewarmTextures() int {
	warmed := 0
	for _, shape := range s.Shapes {
		walkShape(shape, func(tex material.Texture) {
			if img, ok := tex.(*material.Image); ok && img.Prewarm() {
				warmed++
			}
		})
	}
	return warmed
}

// walkShape visits every texture reachable from a shape.
func walkShape(shape geometry.Shape, visit func(material.Texture)) {
	switch sh := shape.(type) {
	case *geometry.Sphere:
		walkMaterial(sh.Material, visit)
	case *geometry.Rect:
		walkMaterial(sh.Material, visit)
	case *geometry.Box:
		walkMaterial(sh.Material, visit)
	case *geometry.List:
		for _, child := range sh.Shapes {
			walkShape(child, visit)
		}
	}
}

func walkMaterial(mat material.Material, visit func(material.Texture)) {
	switch m := mat.(type) {
	case *material.Lambertian:
		walkTexture(m.Albedo, visit)
	case *material.DiffuseLight:
		walkTexture(m.Texture, visit)
	}
}

func walkTexture(tex material.Texture, visit func(material.Texture)) {
	visit(tex)
	if checker, ok := tex.(*material.Checker); ok {
		walkTexture(checker.Odd, visit)
		walkTexture(checker.Even, visit)
	}
}
