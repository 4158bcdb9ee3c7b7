package material

import (
	"github.com/fresneltrace/fresnel/pkg/core"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	Albedo Texture // Base color/reflectance, solid or textured
}

// NewLambertian creates a lambertian material with a solid color
func NewLambertian(albedo core.Color) *Lambertian {
	return &Lambertian{Albedo: NewSolid(albedo)}
}

// NewTexturedLambertian creates a lambertian material over a texture
func NewTexturedLambertian(albedo Texture) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

// Scatter implements the Material interface for lambertian scattering.
// Back-face hits are absorbed: the surface is opaque from behind.
func (l *Lambertian) Scatter(rec *HitRecord, rng *core.Random) (ScatterResult, bool) {
	if !rec.FrontFace {
		return ScatterResult{}, false
	}

	direction := rec.Normal.Add(rng.UnitVector())
	unit, ok := direction.Unit()
	if !ok {
		// The random draw exactly cancelled the normal
		unit = rec.Normal
	}

	return ScatterResult{
		Scattered:   core.NewRayAt(rec.Point, unit, rec.Incoming.Time),
		Attenuation: l.Albedo.Value(rec.U, rec.V, rec.Point),
	}, true
}

// Emit implements the Material interface; lambertian surfaces emit nothing
func (l *Lambertian) Emit(rec *HitRecord) core.Color {
	return core.Color{}
}
