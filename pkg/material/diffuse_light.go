package material

import (
	"github.com/fresneltrace/fresnel/pkg/core"
)

// DiffuseLight is an emission-only material
type DiffuseLight struct {
	Texture Texture // Emitted light color/intensity
}

// NewDiffuseLight creates a light emitting a solid color
func NewDiffuseLight(emission core.Color) *DiffuseLight {
	return &DiffuseLight{Texture: NewSolid(emission)}
}

// NewTexturedDiffuseLight creates a light emitting a texture sample
func NewTexturedDiffuseLight(emit Texture) *DiffuseLight {
	return &DiffuseLight{Texture: emit}
}

// Scatter implements the Material interface; lights never scatter
func (l *DiffuseLight) Scatter(rec *HitRecord, rng *core.Random) (ScatterResult, bool) {
	return ScatterResult{}, false
}

// Emit returns the emission texture sampled at the hit
func (l *DiffuseLight) Emit(rec *HitRecord) core.Color {
	return l.Texture.Value(rec.U, rec.V, rec.Point)
}
