package material

import (
	"github.com/fresneltrace/fresnel/pkg/core"
)

// Metal represents a metallic material with fuzzy specular reflection
type Metal struct {
	Albedo core.Color // Metal color
	Fuzz   float64    // 0.0 = perfect mirror, 1.0 = very fuzzy
}

// NewMetal creates a new metal material with fuzz clamped to [0, 1]
func NewMetal(albedo core.Color, fuzz float64) *Metal {
	if fuzz > 1 {
		fuzz = 1
	}
	if fuzz < 0 {
		fuzz = 0
	}
	return &Metal{Albedo: albedo, Fuzz: fuzz}
}

// Scatter implements the Material interface for metal scattering.
// The mirror direction is perturbed by a fuzz-scaled random vector;
// draws that land below the surface or cancel out are resampled.
func (m *Metal) Scatter(rec *HitRecord, rng *core.Random) (ScatterResult, bool) {
	if !rec.FrontFace {
		return ScatterResult{}, false
	}

	incoming, ok := rec.Incoming.Direction.Unit()
	if !ok {
		return ScatterResult{}, false
	}
	reflected := incoming.Reflect(rec.Normal)

	var unit core.Vec3
	for {
		perturbed := reflected.Add(rng.InUnitSphere().Multiply(m.Fuzz))
		u, ok := perturbed.Unit()
		if ok && u.Dot(rec.Normal) > 0 {
			unit = u
			break
		}
	}

	return ScatterResult{
		Scattered:   core.NewRayAt(rec.Point, unit, rec.Incoming.Time),
		Attenuation: m.Albedo,
	}, true
}

// Emit implements the Material interface; metal surfaces emit nothing
func (m *Metal) Emit(rec *HitRecord) core.Color {
	return core.Color{}
}
