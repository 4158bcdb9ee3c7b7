package scene

import (
	"fmt"
	"strings"

	"github.com/fresneltrace/fresnel/pkg/core"
)

// BuiltinInfo describes one scene from the built-in library.
type BuiltinInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type builtinScene struct {
	name        string
	description string
	build       func() *Config
}

var builtins = []builtinScene{
	{"cover", "random sphere field with motion blur over a checker ground", NewCoverScene},
	{"cornell", "Cornell box with an area light and two boxes", NewCornellScene},
	{"perlin", "two turbulence-textured spheres", NewPerlinScene},
	{"earth", "image-textured globe", NewEarthScene},
	{"simple", "lambertian, dielectric and metal spheres in a row", NewSimpleScene},
	{"empty", "sky gradient only", NewEmptyScene},
}

// Builtins lists the built-in scene library in registration order.
func Builtins() []BuiltinInfo {
	infos := make([]BuiltinInfo, 0, len(builtins))
	for _, b := range builtins {
		infos = append(infos, BuiltinInfo{Name: b.name, Description: b.description})
	}
	return infos
}

// Builtin returns a fresh config for a named built-in scene.
func Builtin(name string) (*Config, error) {
	names := make([]string, 0, len(builtins))
	for _, b := range builtins {
		if b.name == name {
			return b.build(), nil
		}
		names = append(names, b.name)
	}
	return nil, fmt.Errorf("unknown built-in scene %q (have %s)", name, strings.Join(names, ", "))
}

func solidTex(r, g, b float64) TextureCfg {
	c := core.NewColor(r, g, b)
	return TextureCfg{Solid: &c}
}

func lambertian(albedo TextureCfg) MaterialCfg {
	return MaterialCfg{Lambertian: &LambertianCfg{Albedo: albedo}}
}

func metal(r, g, b, fuzz float64) MaterialCfg {
	return MaterialCfg{Metal: &MetalCfg{Albedo: core.NewColor(r, g, b), Fuzz: fuzz}}
}

func glass(index float64) MaterialCfg {
	return MaterialCfg{Dielectric: &DielectricCfg{RefractiveIndex: index}}
}

func sphereAt(x, y, z, radius float64, mat MaterialCfg) ObjectCfg {
	return ObjectCfg{Sphere: &SphereCfg{
		Center:   core.NewPoint3(x, y, z),
		Radius:   radius,
		Material: mat,
	}}
}

// NewCoverScene builds the classic random sphere field: a checkered
// ground, hundreds of small spheres with mixed materials and bouncing
// diffuse ones, and three large feature spheres. Seeded, so the layout is
// identical on every call.
func NewCoverScene() *Config {
	rng := core.NewRandom(42)

	objects := []ObjectCfg{
		sphereAt(0, -1000, 0, 1000, lambertian(TextureCfg{Checker: &CheckerCfg{
			Odd:  solidTex(0.2, 0.3, 0.1),
			Even: solidTex(0.9, 0.9, 0.9),
		}})),
	}

	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			choose := rng.Float()
			center := core.NewPoint3(
				float64(a)+0.9*rng.Float(),
				0.2,
				float64(b)+0.9*rng.Float(),
			)
			if center.Subtract(core.NewPoint3(4, 0.2, 0)).Length() <= 0.9 {
				continue
			}

			switch {
			case choose < 0.8:
				albedo := rng.Color().MultiplyColor(rng.Color())
				velocity := core.NewVec3(0, rng.In(core.NewInterval(0, 0.5)), 0)
				objects = append(objects, ObjectCfg{Sphere: &SphereCfg{
					Center:   center,
					Velocity: &velocity,
					Radius:   0.2,
					Material: MaterialCfg{Lambertian: &LambertianCfg{Albedo: TextureCfg{Solid: &albedo}}},
				}})
			case choose < 0.95:
				albedo := rng.ColorIn(core.NewInterval(0.5, 1))
				fuzz := rng.In(core.NewInterval(0, 0.5))
				objects = append(objects, ObjectCfg{Sphere: &SphereCfg{
					Center:   center,
					Radius:   0.2,
					Material: MaterialCfg{Metal: &MetalCfg{Albedo: albedo, Fuzz: fuzz}},
				}})
			default:
				objects = append(objects, ObjectCfg{Sphere: &SphereCfg{
					Center:   center,
					Radius:   0.2,
					Material: glass(1.5),
				}})
			}
		}
	}

	objects = append(objects,
		sphereAt(0, 1, 0, 1, glass(1.5)),
		sphereAt(-4, 1, 0, 1, lambertian(solidTex(0.4, 0.2, 0.1))),
		sphereAt(4, 1, 0, 1, metal(0.7, 0.6, 0.5, 0)),
	)

	return &Config{
		Image: ImageCfg{Filename: "cover.png", Width: 800, Height: 450},
		Camera: CameraCfg{
			LookFrom:      core.NewPoint3(13, 2, 3),
			LookAt:        core.NewPoint3(0, 0, 0),
			Up:            core.NewVec3(0, 1, 0),
			VerticalFov:   20,
			AspectRatio:   16.0 / 9.0,
			Aperture:      0.1,
			FocusDistance: 10,
			TimeMin:       0,
			TimeMax:       1,
		},
		Sampler:         SamplerCfg{N: 10, MaxDepth: 50},
		BackgroundColor: core.NewColor(0.5, 0.7, 1.0),
		Background:      "gradient",
		SceneList:       objects,
	}
}

// NewCornellScene builds the Cornell box: white floor, ceiling and back
// wall, a red and a green side wall, a ceiling light and two boxes.
func NewCornellScene() *Config {
	white := lambertian(solidTex(0.73, 0.73, 0.73))
	red := lambertian(solidTex(0.65, 0.05, 0.05))
	green := lambertian(solidTex(0.12, 0.45, 0.15))
	light := MaterialCfg{DiffuseLight: &DiffuseLightCfg{Emit: solidTex(15, 15, 15)}}

	objects := []ObjectCfg{
		{Rect: &RectCfg{Axes: core.PermYZX, A: [2]float64{0, 555}, B: [2]float64{0, 555}, Offset: 555, Material: green}},
		{Rect: &RectCfg{Axes: core.PermYZX, A: [2]float64{0, 555}, B: [2]float64{0, 555}, Offset: 0, Material: red}},
		{Rect: &RectCfg{Axes: core.PermXZY, A: [2]float64{213, 343}, B: [2]float64{227, 332}, Offset: 554, Material: light}},
		{Rect: &RectCfg{Axes: core.PermXZY, A: [2]float64{0, 555}, B: [2]float64{0, 555}, Offset: 0, Material: white}},
		{Rect: &RectCfg{Axes: core.PermXZY, A: [2]float64{0, 555}, B: [2]float64{0, 555}, Offset: 555, Material: white}},
		{Rect: &RectCfg{Axes: core.PermXYZ, A: [2]float64{0, 555}, B: [2]float64{0, 555}, Offset: 555, Material: white}},
		{Box: &BoxCfg{Min: core.NewPoint3(130, 0, 65), Max: core.NewPoint3(295, 165, 230), Material: white}},
		{Box: &BoxCfg{Min: core.NewPoint3(265, 0, 295), Max: core.NewPoint3(430, 330, 460), Material: white}},
	}

	return &Config{
		Image: ImageCfg{Filename: "cornell.png", Width: 600, Height: 600},
		Camera: CameraCfg{
			LookFrom:      core.NewPoint3(278, 278, -800),
			LookAt:        core.NewPoint3(278, 278, 0),
			Up:            core.NewVec3(0, 1, 0),
			VerticalFov:   40,
			AspectRatio:   1,
			Aperture:      0,
			FocusDistance: 10,
		},
		Sampler:         SamplerCfg{N: 10, MaxDepth: 50},
		BackgroundColor: core.NewColor(0, 0, 0),
		Background:      "solid",
		SceneList:       objects,
	}
}

// NewPerlinScene builds two turbulence-textured spheres.
func NewPerlinScene() *Config {
	noise := TextureCfg{Noise: &NoiseCfg{Scale: 4, Seed: 7}}

	return &Config{
		Image: ImageCfg{Filename: "perlin.png", Width: 400, Height: 225},
		Camera: CameraCfg{
			LookFrom:      core.NewPoint3(13, 2, 3),
			LookAt:        core.NewPoint3(0, 0, 0),
			Up:            core.NewVec3(0, 1, 0),
			VerticalFov:   20,
			AspectRatio:   16.0 / 9.0,
			Aperture:      0,
			FocusDistance: 10,
		},
		Sampler:         SamplerCfg{N: 10, MaxDepth: 50},
		BackgroundColor: core.NewColor(0.5, 0.7, 1.0),
		Background:      "gradient",
		SceneList: []ObjectCfg{
			sphereAt(0, -1000, 0, 1000, lambertian(noise)),
			sphereAt(0, 2, 0, 2, lambertian(noise)),
		},
	}
}

// NewEarthScene builds a single image-textured globe.
func NewEarthScene() *Config {
	earth := TextureCfg{Image: &ImageTextureCfg{Path: "earthmap.jpg"}}

	return &Config{
		Image: ImageCfg{Filename: "earth.png", Width: 400, Height: 225},
		Camera: CameraCfg{
			LookFrom:      core.NewPoint3(0, 0, 12),
			LookAt:        core.NewPoint3(0, 0, 0),
			Up:            core.NewVec3(0, 1, 0),
			VerticalFov:   20,
			AspectRatio:   16.0 / 9.0,
			Aperture:      0,
			FocusDistance: 12,
		},
		Sampler:         SamplerCfg{N: 10, MaxDepth: 50},
		BackgroundColor: core.NewColor(0.5, 0.7, 1.0),
		Background:      "gradient",
		SceneList: []ObjectCfg{
			sphereAt(0, 0, 0, 2, lambertian(earth)),
		},
	}
}

// NewSimpleScene builds the three-material sphere line-up over a matte
// ground.
func NewSimpleScene() *Config {
	return &Config{
		Image: ImageCfg{Filename: "simple.png", Width: 400, Height: 225},
		Camera: CameraCfg{
			LookFrom:      core.NewPoint3(0, 0, 0),
			LookAt:        core.NewPoint3(0, 0, -1),
			Up:            core.NewVec3(0, 1, 0),
			VerticalFov:   90,
			AspectRatio:   16.0 / 9.0,
			Aperture:      0,
			FocusDistance: 1,
		},
		Sampler:         SamplerCfg{N: 7, MaxDepth: 50},
		BackgroundColor: core.NewColor(0.5, 0.7, 1.0),
		Background:      "gradient",
		SceneList: []ObjectCfg{
			sphereAt(0, -100.5, -1, 100, lambertian(solidTex(0.8, 0.8, 0.0))),
			sphereAt(0, 0, -1, 0.5, lambertian(solidTex(0.1, 0.2, 0.5))),
			sphereAt(-1, 0, -1, 0.5, glass(1.5)),
			sphereAt(1, 0, -1, 0.5, metal(0.8, 0.6, 0.2, 0.3)),
		},
	}
}

// NewEmptyScene builds a shapeless sky-only scene.
func NewEmptyScene() *Config {
	return &Config{
		Image: ImageCfg{Filename: "empty.png", Width: 400, Height: 225},
		Camera: CameraCfg{
			LookFrom:      core.NewPoint3(0, 0, 0),
			LookAt:        core.NewPoint3(0, 0, -1),
			Up:            core.NewVec3(0, 1, 0),
			VerticalFov:   90,
			AspectRatio:   16.0 / 9.0,
			Aperture:      0,
			FocusDistance: 1,
		},
		Sampler:         SamplerCfg{N: 4, MaxDepth: 8},
		BackgroundColor: core.NewColor(0.5, 0.7, 1.0),
		Background:      "gradient",
		SceneList:       []ObjectCfg{},
	}
}
