package material

import (
	"github.com/fresneltrace/fresnel/pkg/core"
)

// Texture provides spatially-varying colors for materials
type Texture interface {
	// Value returns the color at the given surface UV coordinates and 3D point.
	// UV drives image textures, the point drives procedural textures.
	Value(u, v float64, p core.Point3) core.Color
}

// Material decides how a ray continues after a hit
type Material interface {
	// Scatter produces the continuation ray and its attenuation.
	// ok=false means the ray terminates here: absorbed or emission-only.
	Scatter(rec *HitRecord, rng *core.Random) (ScatterResult, bool)

	// Emit returns the surface's own emission at the hit. Black for
	// non-emissive materials.
	Emit(rec *HitRecord) core.Color
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray   // The scattered ray, unit direction, same time as the incoming ray
	Attenuation core.Color // Color attenuation applied to the recursive radiance
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     core.Point3 // Point of intersection
	Normal    core.Vec3   // Surface normal, always opposing the incoming ray
	Incoming  core.Ray    // The ray that produced the hit
	T         float64     // Parameter t along the ray
	U, V      float64     // Surface parameterization at the hit
	FrontFace bool        // Whether the ray hit the front face
	Material  Material    // Material of the hit object
}

// SetFaceNormal sets the normal vector and determines front/back face.
// The stored normal always points against the incoming ray direction.
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.Incoming = ray
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}
