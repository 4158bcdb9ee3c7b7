package geometry

import (
	"github.com/fresneltrace/fresnel/pkg/core"
	"github.com/fresneltrace/fresnel/pkg/material"
)

// Shape interface for objects that can be hit by rays
type Shape interface {
	// Hit returns the closest intersection with t in the half-open range
	// [t.Start, t.End), or false when the ray misses.
	Hit(ray core.Ray, t core.Interval) (*material.HitRecord, bool)

	// BoundingBox returns a conservative box covering the shape over the
	// time interval. ok=false means the shape is unbounded and cannot
	// enter a bounding volume hierarchy.
	BoundingBox(t core.Interval) (core.AABB, bool)
}
