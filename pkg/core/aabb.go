package core

import "math"

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Point3 // Minimum corner
	Max Point3 // Maximum corner
}

// NewAABB creates an AABB from two opposite corner points. Coordinates are
// sorted per axis. Panics if the points share a coordinate on any axis,
// since a zero-extent box cannot be intersected meaningfully.
func NewAABB(a, b Point3) AABB {
	lo := Point3{math.Min(a.X, b.X), math.Min(a.Y, b.Y), math.Min(a.Z, b.Z)}
	hi := Point3{math.Max(a.X, b.X), math.Max(a.Y, b.Y), math.Max(a.Z, b.Z)}
	if lo.X == hi.X || lo.Y == hi.Y || lo.Z == hi.Z {
		panic("AABB extents must be non-zero on all three axes")
	}
	return AABB{Min: lo, Max: hi}
}

// Hit tests if a ray intersects this AABB within t using the slab method.
// Zero direction components divide to signed infinities: the axis then
// rejects the ray when the origin sits outside its slab and constrains
// nothing when inside. An origin exactly on a slab face produces NaN and
// counts as a miss. The overlap must be non-empty under strict inequality.
func (aabb AABB) Hit(ray Ray, t Interval) bool {
	tMin, tMax := t.Start, t.End
	for axis := AxisX; axis <= AxisZ; axis++ {
		invD := 1 / ray.Direction.Component(axis)
		t0 := (aabb.Min.Component(axis) - ray.Origin.Component(axis)) * invD
		t1 := (aabb.Max.Component(axis) - ray.Origin.Component(axis)) * invD
		if invD < 0 {
			t0, t1 = t1, t0
		}
		tMin = math.Max(tMin, t0)
		tMax = math.Min(tMax, t1)
		if !(tMin < tMax) {
			return false
		}
	}
	return true
}

// Merge returns an AABB that bounds both this AABB and another
func (aabb AABB) Merge(other AABB) AABB {
	lo := Point3{
		X: math.Min(aabb.Min.X, other.Min.X),
		Y: math.Min(aabb.Min.Y, other.Min.Y),
		Z: math.Min(aabb.Min.Z, other.Min.Z),
	}
	hi := Point3{
		X: math.Max(aabb.Max.X, other.Max.X),
		Y: math.Max(aabb.Max.Y, other.Max.Y),
		Z: math.Max(aabb.Max.Z, other.Max.Z),
	}
	return AABB{Min: lo, Max: hi}
}

// MergeOptional merges two possibly-absent boxes. An absent box is the
// identity; the result is absent only when both inputs are.
func MergeOptional(a AABB, aOK bool, b AABB, bOK bool) (AABB, bool) {
	switch {
	case aOK && bOK:
		return a.Merge(b), true
	case aOK:
		return a, true
	case bOK:
		return b, true
	}
	return AABB{}, false
}

// Contains reports whether other lies entirely inside this AABB
func (aabb AABB) Contains(other AABB) bool {
	return aabb.Min.X <= other.Min.X && other.Max.X <= aabb.Max.X &&
		aabb.Min.Y <= other.Min.Y && other.Max.Y <= aabb.Max.Y &&
		aabb.Min.Z <= other.Min.Z && other.Max.Z <= aabb.Max.Z
}

// Size returns the extent of the AABB along each axis
func (aabb AABB) Size() Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

// Volume returns the absolute volume of the AABB
func (aabb AABB) Volume() float64 {
	size := aabb.Size()
	return math.Abs(size.X * size.Y * size.Z)
}
