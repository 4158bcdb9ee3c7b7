package geometry

import (
	"github.com/fresneltrace/fresnel/pkg/core"
	"github.com/fresneltrace/fresnel/pkg/material"
)

// Thickness added on the normal axis so a rectangle's bounding box is
// never degenerate.
const rectThickness = 1e-4

// Rect is an axis-aligned rectangle. The permutation's first two axes
// span the plane with half-open ranges A and B; the third axis is the
// normal, on which the plane sits at Offset. The three canonical
// orientations are PermXYZ (z-normal), PermXZY (y-normal) and PermYZX
// (x-normal).
type Rect struct {
	Axes     core.Permutation
	A, B     core.Interval
	Offset   float64
	Material material.Material
}

// NewRect creates a rectangle spanning a and b on the first two axes of
// the permutation, at the given offset along the third
func NewRect(axes core.Permutation, a, b core.Interval, offset float64, mat material.Material) *Rect {
	return &Rect{Axes: axes, A: a, B: b, Offset: offset, Material: mat}
}

// NewRectXY creates a rectangle in the plane z = offset
func NewRectXY(x0, x1, y0, y1, offset float64, mat material.Material) *Rect {
	return NewRect(core.PermXYZ, core.NewInterval(x0, x1), core.NewInterval(y0, y1), offset, mat)
}

// NewRectXZ creates a rectangle in the plane y = offset
func NewRectXZ(x0, x1, z0, z1, offset float64, mat material.Material) *Rect {
	return NewRect(core.PermXZY, core.NewInterval(x0, x1), core.NewInterval(z0, z1), offset, mat)
}

// NewRectYZ creates a rectangle in the plane x = offset
func NewRectYZ(y0, y1, z0, z1, offset float64, mat material.Material) *Rect {
	return NewRect(core.PermYZX, core.NewInterval(y0, y1), core.NewInterval(z0, z1), offset, mat)
}

// Hit tests if a ray intersects with the rectangle. The ray is permuted
// into a frame where the rectangle lies in the z = Offset plane. A zero
// direction component on the normal axis divides to an infinite or NaN
// t, which the range check rejects.
func (r *Rect) Hit(ray core.Ray, t core.Interval) (*material.HitRecord, bool) {
	origin := ray.Origin.Permute(r.Axes)
	direction := ray.Direction.Permute(r.Axes)

	root := (r.Offset - origin.Z) / direction.Z
	if !t.Contains(root) {
		return nil, false
	}

	a := origin.X + root*direction.X
	b := origin.Y + root*direction.Y
	if !r.A.Contains(a) || !r.B.Contains(b) {
		return nil, false
	}

	rec := &material.HitRecord{
		T:        root,
		Point:    ray.At(root),
		U:        (a - r.A.Start) / r.A.Width(),
		V:        (b - r.B.Start) / r.B.Width(),
		Material: r.Material,
	}

	// The outward normal opposes the ray's normal-axis travel, so
	// rectangle hits are always front-face hits.
	outward := core.NewVec3(0, 0, 1)
	if direction.Z > 0 {
		outward = core.NewVec3(0, 0, -1)
	}
	rec.SetFaceNormal(ray, outward.Unpermute(r.Axes))

	return rec, true
}

// BoundingBox returns the rectangle's plane thickened on the normal axis
func (r *Rect) BoundingBox(core.Interval) (core.AABB, bool) {
	lo := core.NewPoint3(r.A.Start, r.B.Start, r.Offset-rectThickness).Unpermute(r.Axes)
	hi := core.NewPoint3(r.A.End, r.B.End, r.Offset+rectThickness).Unpermute(r.Axes)
	return core.NewAABB(lo, hi), true
}
