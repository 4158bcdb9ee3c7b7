package geometry

import (
	"math"

	"github.com/fresneltrace/fresnel/pkg/core"
	"github.com/fresneltrace/fresnel/pkg/material"
)

// Sphere represents a sphere whose center may translate linearly over
// time. The center is stored as a ray: its origin is the position at the
// reference time and its direction is the velocity.
type Sphere struct {
	Center   core.Ray
	Radius   float64
	Material material.Material
}

// NewSphere creates a stationary sphere
func NewSphere(center core.Point3, radius float64, mat material.Material) *Sphere {
	return &Sphere{
		Center:   core.NewRay(center, core.NewVec3(0, 0, 0)),
		Radius:   radius,
		Material: mat,
	}
}

// NewMovingSphere creates a sphere at the given center at the reference
// time, translating with the given velocity
func NewMovingSphere(center core.Point3, velocity core.Vec3, time, radius float64, mat material.Material) *Sphere {
	return &Sphere{
		Center:   core.NewRayAt(center, velocity, time),
		Radius:   radius,
		Material: mat,
	}
}

// CenterAt returns the center position at time t
func (s *Sphere) CenterAt(t float64) core.Point3 {
	return s.Center.At(t - s.Center.Time)
}

// Hit tests if a ray intersects with the sphere at the ray's time
func (s *Sphere) Hit(ray core.Ray, t core.Interval) (*material.HitRecord, bool) {
	center := s.CenterAt(ray.Time)
	oc := ray.Origin.Subtract(center)

	// Quadratic equation coefficients in half-b form: at² + 2bt + c = 0
	a := ray.Direction.LengthSquared()
	halfB := oc.Dot(ray.Direction)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return nil, false
	}
	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first, then the farther one
	root := (-halfB - sqrtD) / a
	if !t.Contains(root) {
		root = (-halfB + sqrtD) / a
		if !t.Contains(root) {
			return nil, false
		}
	}

	rec := &material.HitRecord{
		T:        root,
		Point:    ray.At(root),
		Material: s.Material,
	}

	// Outward normal from center to hit point; unit length for r > 0
	outward := rec.Point.Subtract(center).Divide(s.Radius)
	rec.U, rec.V = sphereUV(outward)
	rec.SetFaceNormal(ray, outward)

	return rec, true
}

// BoundingBox returns a box covering the sphere over the time interval.
// The swept volume is bounded by merging the boxes at the interval ends,
// which is exact for linear motion.
func (s *Sphere) BoundingBox(t core.Interval) (core.AABB, bool) {
	r := core.NewVec3(s.Radius, s.Radius, s.Radius)
	c0 := s.CenterAt(t.Start)
	c1 := s.CenterAt(t.End)
	box0 := core.NewAABB(c0.SubtractVec(r), c0.Add(r))
	box1 := core.NewAABB(c1.SubtractVec(r), c1.Add(r))
	return box0.Merge(box1), true
}

// sphereUV maps a point on the unit sphere to surface coordinates.
// u wraps around the Y axis starting at the -X meridian, v runs from the
// south pole (v=0) to the north pole (v=1).
func sphereUV(p core.Vec3) (u, v float64) {
	theta := math.Acos(-p.Y)
	phi := math.Atan2(-p.Z, p.X) + math.Pi
	return phi / (2 * math.Pi), theta / math.Pi
}
