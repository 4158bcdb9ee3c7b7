package geometry

import (
	"sync"

	"github.com/fresneltrace/fresnel/pkg/core"
	"github.com/fresneltrace/fresnel/pkg/material"
)

// Box is an axis-aligned rectangular prism spanned by two diagonally
// opposite corners. On first use it expands into six rectangles wrapped
// in a small hierarchy; the expansion is memoized.
type Box struct {
	Min, Max core.Point3
	Material material.Material

	once  sync.Once
	faces *BVH
}

// NewBox creates a box from two diagonally-opposite corners
func NewBox(min, max core.Point3, mat material.Material) *Box {
	return &Box{Min: min, Max: max, Material: mat}
}

// sides returns the memoized six-face hierarchy
func (b *Box) sides() *BVH {
	b.once.Do(func() {
		faces := []Shape{
			NewRectXY(b.Min.X, b.Max.X, b.Min.Y, b.Max.Y, b.Max.Z, b.Material),
			NewRectXY(b.Min.X, b.Max.X, b.Min.Y, b.Max.Y, b.Min.Z, b.Material),
			NewRectXZ(b.Min.X, b.Max.X, b.Min.Z, b.Max.Z, b.Max.Y, b.Material),
			NewRectXZ(b.Min.X, b.Max.X, b.Min.Z, b.Max.Z, b.Min.Y, b.Material),
			NewRectYZ(b.Min.Y, b.Max.Y, b.Min.Z, b.Max.Z, b.Max.X, b.Material),
			NewRectYZ(b.Min.Y, b.Max.Y, b.Min.Z, b.Max.Z, b.Min.X, b.Material),
		}
		// Rectangle boxes are time-independent, so any interval builds
		// the same hierarchy.
		b.faces = NewBVH(faces, core.NewInterval(0, 1))
	})
	return b.faces
}

// Hit tests if a ray intersects with any face of the box
func (b *Box) Hit(ray core.Ray, t core.Interval) (*material.HitRecord, bool) {
	return b.sides().Hit(ray, t)
}

// BoundingBox returns the face hierarchy's box, the corner span
// thickened by the rectangle epsilon
func (b *Box) BoundingBox(t core.Interval) (core.AABB, bool) {
	return b.sides().BoundingBox(t)
}
