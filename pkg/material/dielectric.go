package material

import (
	"math"

	"github.com/fresneltrace/fresnel/pkg/core"
)

// Dielectric represents a transparent material like glass that both
// reflects and refracts
type Dielectric struct {
	RefractiveIndex float64 // Index of refraction, e.g. 1.5 for glass
}

// NewDielectric creates a new dielectric material
func NewDielectric(refractiveIndex float64) *Dielectric {
	return &Dielectric{RefractiveIndex: refractiveIndex}
}

// Scatter implements the Material interface for dielectric scattering.
// Clear glass absorbs nothing: attenuation is always white.
func (d *Dielectric) Scatter(rec *HitRecord, rng *core.Random) (ScatterResult, bool) {
	var ratio float64
	if rec.FrontFace {
		ratio = 1 / d.RefractiveIndex // entering the material
	} else {
		ratio = d.RefractiveIndex // exiting the material
	}

	incoming, ok := rec.Incoming.Direction.Unit()
	if !ok {
		return ScatterResult{}, false
	}

	cosTheta := math.Min(-incoming.Dot(rec.Normal), 1)
	sinTheta := math.Sqrt(1 - cosTheta*cosTheta)

	cannotRefract := ratio*sinTheta > 1

	// Reflection and refraction of a unit vector stay unit length
	var direction core.Vec3
	if cannotRefract || Reflectance(cosTheta, d.RefractiveIndex) > rng.Float() {
		direction = incoming.Reflect(rec.Normal)
	} else {
		direction = refract(incoming, rec.Normal, ratio, cosTheta)
	}

	return ScatterResult{
		Scattered:   core.NewRayAt(rec.Point, direction, rec.Incoming.Time),
		Attenuation: core.NewColor(1, 1, 1),
	}, true
}

// Emit implements the Material interface; glass emits nothing
func (d *Dielectric) Emit(rec *HitRecord) core.Color {
	return core.Color{}
}

// refract bends a unit vector through the surface using Snell's law
func refract(uv, n core.Vec3, ratio, cosTheta float64) core.Vec3 {
	rOutPerp := uv.Add(n.Multiply(cosTheta)).Multiply(ratio)
	rOutParallel := n.Multiply(-math.Sqrt(math.Abs(1 - rOutPerp.LengthSquared())))
	return rOutPerp.Add(rOutParallel)
}

// Reflectance calculates the Fresnel reflectance using Schlick's
// approximation with r0 taken at normal incidence
func Reflectance(cosTheta, refractiveIndex float64) float64 {
	r0 := (1 - refractiveIndex) / (1 + refractiveIndex)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosTheta, 5)
}
