package material

import (
	"math"

	"github.com/fresneltrace/fresnel/pkg/core"
)

// Solid provides a uniform color everywhere
type Solid struct {
	Color core.Color
}

// NewSolid creates a new solid color texture
func NewSolid(color core.Color) *Solid {
	return &Solid{Color: color}
}

// Value returns the solid color regardless of UV or position
func (s *Solid) Value(u, v float64, p core.Point3) core.Color {
	return s.Color
}

// Checker alternates two sub-textures in a 3D checkerboard keyed off the
// hit point, so the pattern is stable under surface reparameterization.
type Checker struct {
	Odd  Texture
	Even Texture
}

// NewChecker creates a checker texture from its two sub-textures
func NewChecker(odd, even Texture) *Checker {
	return &Checker{Odd: odd, Even: even}
}

// NewCheckerColors creates a checker texture over two solid colors
func NewCheckerColors(odd, even core.Color) *Checker {
	return &Checker{Odd: NewSolid(odd), Even: NewSolid(even)}
}

// Value selects the odd sub-texture where sin(10x)*sin(10y)*sin(10z) is
// negative and the even one elsewhere
func (c *Checker) Value(u, v float64, p core.Point3) core.Color {
	sines := math.Sin(10*p.X) * math.Sin(10*p.Y) * math.Sin(10*p.Z)
	if sines < 0 {
		return c.Odd.Value(u, v, p)
	}
	return c.Even.Value(u, v, p)
}
