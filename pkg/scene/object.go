package scene

import (
	"fmt"
	"math"

	"github.com/fresneltrace/fresnel/pkg/core"
	"github.com/fresneltrace/fresnel/pkg/geometry"
	"github.com/fresneltrace/fresnel/pkg/material"
)

// ObjectCfg is the tagged JSON form of one shape: exactly one variant key
// must be set.
type ObjectCfg struct {
	Sphere *SphereCfg  `json:"sphere,omitempty"`
	Rect   *RectCfg    `json:"rect,omitempty"`
	Box    *BoxCfg     `json:"box,omitempty"`
	List   []ObjectCfg `json:"list,omitempty"`
}

// SphereCfg describes a stationary or moving sphere. A non-nil velocity
// makes the center sweep linearly from its position at the reference time.
type SphereCfg struct {
	Center   core.Point3 `json:"center"`
	Velocity *core.Vec3  `json:"velocity,omitempty"`
	Time     float64     `json:"time,omitempty"`
	Radius   float64     `json:"radius"`
	Material MaterialCfg `json:"material"`
}

// RectCfg describes an axis-aligned rectangle. Axes lists the permutation
// mapping plane coordinates (a, b, offset) to world axes.
type RectCfg struct {
	Axes     core.Permutation `json:"axes"`
	A        [2]float64       `json:"a"`
	B        [2]float64       `json:"b"`
	Offset   float64          `json:"offset"`
	Material MaterialCfg      `json:"material"`
}

// BoxCfg describes an axis-aligned box between two opposite corners.
type BoxCfg struct {
	Min      core.Point3 `json:"min"`
	Max      core.Point3 `json:"max"`
	Material MaterialCfg `json:"material"`
}

func (o ObjectCfg) variantKeys() []string {
	var keys []string
	if o.Sphere != nil {
		keys = append(keys, "sphere")
	}
	if o.Rect != nil {
		keys = append(keys, "rect")
	}
	if o.Box != nil {
		keys = append(keys, "box")
	}
	if o.List != nil {
		keys = append(keys, "list")
	}
	return keys
}

// Build constructs the shape described by the variant.
func (o ObjectCfg) Build() (geometry.Shape, error) {
	keys := o.variantKeys()
	if len(keys) != 1 {
		return nil, fmt.Errorf("object needs exactly one variant key, got %v", keys)
	}
	switch {
	case o.Sphere != nil:
		return o.Sphere.Build()
	case o.Rect != nil:
		return o.Rect.Build()
	case o.Box != nil:
		return o.Box.Build()
	default:
		list := geometry.NewList()
		for i, child := range o.List {
			shape, err := child.Build()
			if err != nil {
				return nil, fmt.Errorf("list[%d]: %w", i, err)
			}
			list.Add(shape)
		}
		return list, nil
	}
}

// Build constructs the sphere.
func (c *SphereCfg) Build() (geometry.Shape, error) {
	if c.Radius <= 0 {
		return nil, fmt.Errorf("sphere radius must be positive, got %v", c.Radius)
	}
	mat, err := c.Material.Build()
	if err != nil {
		return nil, fmt.Errorf("sphere material: %w", err)
	}
	if c.Velocity != nil {
		return geometry.NewMovingSphere(c.Center, *c.Velocity, c.Time, c.Radius, mat), nil
	}
	return geometry.NewSphere(c.Center, c.Radius, mat), nil
}

// Build constructs the rectangle.
func (c *RectCfg) Build() (geometry.Shape, error) {
	if c.Axes[0] == c.Axes[1] || c.Axes[0] == c.Axes[2] || c.Axes[1] == c.Axes[2] {
		return nil, fmt.Errorf("rect axes %v must be a permutation of x, y, z", c.Axes)
	}
	if c.A[0] == c.A[1] || c.B[0] == c.B[1] {
		return nil, fmt.Errorf("rect spans must be non-empty, got a=%v b=%v", c.A, c.B)
	}
	mat, err := c.Material.Build()
	if err != nil {
		return nil, fmt.Errorf("rect material: %w", err)
	}
	a := core.NewInterval(math.Min(c.A[0], c.A[1]), math.Max(c.A[0], c.A[1]))
	b := core.NewInterval(math.Min(c.B[0], c.B[1]), math.Max(c.B[0], c.B[1]))
	return geometry.NewRect(c.Axes, a, b, c.Offset, mat), nil
}

// Build constructs the box, normalizing the corner order per axis.
func (c *BoxCfg) Build() (geometry.Shape, error) {
	if c.Min.X == c.Max.X || c.Min.Y == c.Max.Y || c.Min.Z == c.Max.Z {
		return nil, fmt.Errorf("box corners must differ on every axis, got min=%v max=%v", c.Min, c.Max)
	}
	mat, err := c.Material.Build()
	if err != nil {
		return nil, fmt.Errorf("box material: %w", err)
	}
	lo := core.NewPoint3(math.Min(c.Min.X, c.Max.X), math.Min(c.Min.Y, c.Max.Y), math.Min(c.Min.Z, c.Max.Z))
	hi := core.NewPoint3(math.Max(c.Min.X, c.Max.X), math.Max(c.Min.Y, c.Max.Y), math.Max(c.Min.Z, c.Max.Z))
	return geometry.NewBox(lo, hi, mat), nil
}

// MaterialCfg is the tagged JSON form of one material.
type MaterialCfg struct {
	Lambertian   *LambertianCfg   `json:"lambertian,omitempty"`
	Metal        *MetalCfg        `json:"metal,omitempty"`
	Dielectric   *DielectricCfg   `json:"dielectric,omitempty"`
	DiffuseLight *DiffuseLightCfg `json:"diffuse_light,omitempty"`
}

// LambertianCfg is a diffuse surface with a textured albedo.
type LambertianCfg struct {
	Albedo TextureCfg `json:"albedo"`
}

// MetalCfg is a fuzzed mirror.
type MetalCfg struct {
	Albedo core.Color `json:"albedo"`
	Fuzz   float64    `json:"fuzz"`
}

// DielectricCfg is clear glass with the given refractive index.
type DielectricCfg struct {
	RefractiveIndex float64 `json:"refractive_index"`
}

// DiffuseLightCfg is a textured area emitter.
type DiffuseLightCfg struct {
	Emit TextureCfg `json:"emit"`
}

func (m MaterialCfg) variantKeys() []string {
	var keys []string
	if m.Lambertian != nil {
		keys = append(keys, "lambertian")
	}
	if m.Metal != nil {
		keys = append(keys, "metal")
	}
	if m.Dielectric != nil {
		keys = append(keys, "dielectric")
	}
	if m.DiffuseLight != nil {
		keys = append(keys, "diffuse_light")
	}
	return keys
}

// Build constructs the material described by the variant.
func (m MaterialCfg) Build() (material.Material, error) {
	keys := m.variantKeys()
	if len(keys) != 1 {
		return nil, fmt.Errorf("material needs exactly one variant key, got %v", keys)
	}
	switch {
	case m.Lambertian != nil:
		albedo, err := m.Lambertian.Albedo.Build()
		if err != nil {
			return nil, fmt.Errorf("lambertian albedo: %w", err)
		}
		return material.NewTexturedLambertian(albedo), nil
	case m.Metal != nil:
		return material.NewMetal(m.Metal.Albedo, m.Metal.Fuzz), nil
	case m.Dielectric != nil:
		if m.Dielectric.RefractiveIndex <= 0 {
			return nil, fmt.Errorf("dielectric refractive_index must be positive, got %v", m.Dielectric.RefractiveIndex)
		}
		return material.NewDielectric(m.Dielectric.RefractiveIndex), nil
	default:
		emit, err := m.DiffuseLight.Emit.Build()
		if err != nil {
			return nil, fmt.Errorf("diffuse_light emit: %w", err)
		}
		return material.NewTexturedDiffuseLight(emit), nil
	}
}

// TextureCfg is the tagged JSON form of one texture.
type TextureCfg struct {
	Solid   *core.Color      `json:"solid,omitempty"`
	Checker *CheckerCfg      `json:"checker,omitempty"`
	Noise   *NoiseCfg        `json:"noise,omitempty"`
	Image   *ImageTextureCfg `json:"image,omitempty"`
}

// CheckerCfg alternates two textures on a 3D checkerboard.
type CheckerCfg struct {
	Odd  TextureCfg `json:"odd"`
	Even TextureCfg `json:"even"`
}

// NoiseCfg is a seeded Perlin turbulence texture.
type NoiseCfg struct {
	Scale float64 `json:"scale"`
	Depth int     `json:"depth,omitempty"`
	Seed  int64   `json:"seed"`
	Size  int     `json:"size,omitempty"`
}

// ImageTextureCfg samples a decoded image file.
type ImageTextureCfg struct {
	Path string `json:"path"`
}

func (t TextureCfg) variantKeys() []string {
	var keys []string
	if t.Solid != nil {
		keys = append(keys, "solid")
	}
	if t.Checker != nil {
		keys = append(keys, "checker")
	}
	if t.Noise != nil {
		keys = append(keys, "noise")
	}
	if t.Image != nil {
		keys = append(keys, "image")
	}
	return keys
}

// Build constructs the texture described by the variant.
func (t TextureCfg) Build() (material.Texture, error) {
	keys := t.variantKeys()
	if len(keys) != 1 {
		return nil, fmt.Errorf("texture needs exactly one variant key, got %v", keys)
	}
	switch {
	case t.Solid != nil:
		return material.NewSolid(*t.Solid), nil
	case t.Checker != nil:
		odd, err := t.Checker.Odd.Build()
		if err != nil {
			return nil, fmt.Errorf("checker odd: %w", err)
		}
		even, err := t.Checker.Even.Build()
		if err != nil {
			return nil, fmt.Errorf("checker even: %w", err)
		}
		return material.NewChecker(odd, even), nil
	case t.Noise != nil:
		depth := t.Noise.Depth
		if depth <= 0 {
			depth = 7
		}
		size := t.Noise.Size
		if size <= 0 {
			size = 256
		}
		return material.NewNoise(t.Noise.Scale, depth, size, t.Noise.Seed), nil
	default:
		if t.Image.Path == "" {
			return nil, fmt.Errorf("image texture needs a path")
		}
		return material.NewImage(t.Image.Path), nil
	}
}
