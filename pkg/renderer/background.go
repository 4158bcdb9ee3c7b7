package renderer

import (
	"github.com/fresneltrace/fresnel/pkg/core"
)

// Background supplies the radiance for rays that escape the scene.
type Background interface {
	At(ray core.Ray) core.Color
}

// SolidBackground returns one color for every escaped ray.
type SolidBackground struct {
	Color core.Color
}

// NewSolidBackground creates a constant background.
func NewSolidBackground(c core.Color) SolidBackground {
	return SolidBackground{Color: c}
}

// At returns the background color regardless of ray direction.
func (b SolidBackground) At(ray core.Ray) core.Color {
	return b.Color
}

// GradientBackground blends from white at the bottom of the view to the
// base color at the zenith, the classic sky ramp.
type GradientBackground struct {
	Base core.Color
}

// NewGradientBackground creates a sky gradient with the given zenith color.
func NewGradientBackground(base core.Color) GradientBackground {
	return GradientBackground{Base: base}
}

// At blends base and white by t = 0.5*(y+1) of the unit ray direction.
func (b GradientBackground) At(ray core.Ray) core.Color {
	unit, _ := ray.Direction.Unit()
	t := 0.5 * (unit.Y + 1)
	return core.Mix(b.Base, core.NewColor(1, 1, 1), t)
}
