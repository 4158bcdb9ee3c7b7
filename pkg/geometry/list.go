package geometry

import (
	"github.com/fresneltrace/fresnel/pkg/core"
	"github.com/fresneltrace/fresnel/pkg/material"
)

// List is an ordered collection of shapes intersected sequentially
type List struct {
	Shapes []Shape
}

// NewList creates a list of the given shapes
func NewList(shapes ...Shape) *List {
	return &List{Shapes: shapes}
}

// Add appends shapes to the list
func (l *List) Add(shapes ...Shape) {
	l.Shapes = append(l.Shapes, shapes...)
}

// Hit returns the closest intersection across all shapes. Each hit
// tightens the range's end so later shapes only report strictly closer
// hits.
func (l *List) Hit(ray core.Ray, t core.Interval) (*material.HitRecord, bool) {
	var closest *material.HitRecord
	for _, shape := range l.Shapes {
		if rec, ok := shape.Hit(ray, t); ok {
			closest = rec
			t = t.ClipEnd(rec.T)
		}
	}
	return closest, closest != nil
}

// BoundingBox merges the children's boxes. ok=false when the list is
// empty or any child is unbounded.
func (l *List) BoundingBox(t core.Interval) (core.AABB, bool) {
	if len(l.Shapes) == 0 {
		return core.AABB{}, false
	}
	box, ok := l.Shapes[0].BoundingBox(t)
	if !ok {
		return core.AABB{}, false
	}
	for _, shape := range l.Shapes[1:] {
		childBox, childOK := shape.BoundingBox(t)
		if !childOK {
			return core.AABB{}, false
		}
		box = box.Merge(childBox)
	}
	return box, true
}
