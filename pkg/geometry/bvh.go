package geometry

import (
	"math"
	"sort"

	"github.com/fresneltrace/fresnel/pkg/core"
	"github.com/fresneltrace/fresnel/pkg/material"
)

// BVH is a bounding volume hierarchy over a set of shapes. Shapes
// without a bounding box cannot enter the hierarchy; they are kept in an
// unbounded fallback list and intersected linearly after the tree.
type BVH struct {
	Root      *BVHNode
	Unbounded []Shape
}

// BVHNode is one node of the hierarchy. Children are either further
// nodes or primitives; both are always present, and a node built from a
// single shape carries it on both sides.
type BVHNode struct {
	Box   core.AABB
	Left  Shape
	Right Shape
}

// NewBVH builds a hierarchy over the shapes using their bounding boxes
// over the time interval t. The input slice is reordered in place: shapes
// without a bounding box are swept to the front and excluded, and the
// remainder is sorted repeatedly during the build.
func NewBVH(shapes []Shape, t core.Interval) *BVH {
	unbounded := partitionUnbounded(shapes, t)
	bvh := &BVH{Unbounded: unbounded}
	if bounded := shapes[len(unbounded):]; len(bounded) > 0 {
		bvh.Root = buildNode(bounded, t)
	}
	return bvh
}

// partitionUnbounded moves shapes without a bounding box to the front of
// the slice with a two-pointer sweep and returns that prefix
func partitionUnbounded(shapes []Shape, t core.Interval) []Shape {
	next := 0
	for i, shape := range shapes {
		if _, ok := shape.BoundingBox(t); !ok {
			shapes[i], shapes[next] = shapes[next], shapes[i]
			next++
		}
	}
	return shapes[:next]
}

// buildNode recursively builds the hierarchy over one or more boundable
// shapes. For each axis the slice is sorted by bounding-box lower corner
// and split at the middle; the axis whose subtree volumes are most
// balanced wins. Ties keep the earlier axis, in X, Y, Z order.
func buildNode(shapes []Shape, t core.Interval) *BVHNode {
	if len(shapes) <= 2 {
		left := shapes[0]
		right := left
		if len(shapes) == 2 {
			right = shapes[1]
		}
		return newNode(left, right, t)
	}

	mid := len(shapes) / 2
	var bestLeft, bestRight *BVHNode
	bestRatio := math.Inf(1)
	for axis := core.AxisX; axis <= core.AxisZ; axis++ {
		sortByLowerCorner(shapes, axis, t)
		left := buildNode(shapes[:mid], t)
		right := buildNode(shapes[mid:], t)
		ratio := volumeRatio(left.Box, right.Box)
		if ratio < bestRatio {
			bestRatio = ratio
			bestLeft, bestRight = left, right
		}
	}
	return newNode(bestLeft, bestRight, t)
}

func newNode(left, right Shape, t core.Interval) *BVHNode {
	leftBox, leftOK := left.BoundingBox(t)
	rightBox, rightOK := right.BoundingBox(t)
	if !leftOK || !rightOK {
		panic("BVH node child has no bounding box")
	}
	return &BVHNode{Box: leftBox.Merge(rightBox), Left: left, Right: right}
}

// volumeRatio measures how unbalanced a split is: the larger subtree
// volume over the smaller, 1.0 for a perfectly balanced split
func volumeRatio(a, b core.AABB) float64 {
	volA, volB := a.Volume(), b.Volume()
	return math.Max(volA, volB) / math.Min(volA, volB)
}

// sortByLowerCorner stably sorts shapes by the axis coordinate of their
// bounding-box lower corner. A NaN coordinate would corrupt the sort
// order, so the comparator panics on one.
func sortByLowerCorner(shapes []Shape, axis core.Axis, t core.Interval) {
	sort.SliceStable(shapes, func(i, j int) bool {
		a := lowerCorner(shapes[i], axis, t)
		b := lowerCorner(shapes[j], axis, t)
		if math.IsNaN(a) || math.IsNaN(b) {
			panic("NaN in BVH sort key")
		}
		return a < b
	})
}

func lowerCorner(shape Shape, axis core.Axis, t core.Interval) float64 {
	box, ok := shape.BoundingBox(t)
	if !ok {
		panic("BVH node child has no bounding box")
	}
	return box.Min.Component(axis)
}

// Hit intersects the hierarchy and then the unbounded fallback shapes,
// returning the closest hit
func (b *BVH) Hit(ray core.Ray, t core.Interval) (*material.HitRecord, bool) {
	var closest *material.HitRecord
	if b.Root != nil {
		if rec, ok := b.Root.Hit(ray, t); ok {
			closest = rec
			t = t.ClipEnd(rec.T)
		}
	}
	for _, shape := range b.Unbounded {
		if rec, ok := shape.Hit(ray, t); ok {
			closest = rec
			t = t.ClipEnd(rec.T)
		}
	}
	return closest, closest != nil
}

// BoundingBox returns the root box. The aggregate is unbounded when any
// fallback shape exists or the hierarchy is empty.
func (b *BVH) BoundingBox(core.Interval) (core.AABB, bool) {
	if b.Root == nil || len(b.Unbounded) > 0 {
		return core.AABB{}, false
	}
	return b.Root.Box, true
}

// Hit tests the node box first, then the children. When the left child
// hits, the right child searches only [t.Start, t_left): a right hit is
// strictly closer and wins.
func (n *BVHNode) Hit(ray core.Ray, t core.Interval) (*material.HitRecord, bool) {
	if !n.Box.Hit(ray, t) {
		return nil, false
	}
	leftRec, leftOK := n.Left.Hit(ray, t)
	if leftOK {
		if rightRec, rightOK := n.Right.Hit(ray, t.ClipEnd(leftRec.T)); rightOK {
			return rightRec, true
		}
		return leftRec, true
	}
	return n.Right.Hit(ray, t)
}

// BoundingBox returns the node's precomputed box
func (n *BVHNode) BoundingBox(core.Interval) (core.AABB, bool) {
	return n.Box, true
}

// Stats describes the size and depth of a built hierarchy
type Stats struct {
	Nodes     int // Interior node count
	Depth     int // Longest root-to-node path, 1 for a lone root
	Unbounded int // Shapes kept outside the hierarchy
}

// Stats walks the hierarchy and reports its shape
func (b *BVH) Stats() Stats {
	s := Stats{Unbounded: len(b.Unbounded)}
	if b.Root != nil {
		collectStats(b.Root, 1, &s)
	}
	return s
}

func collectStats(node *BVHNode, depth int, s *Stats) {
	s.Nodes++
	if depth > s.Depth {
		s.Depth = depth
	}
	if left, ok := node.Left.(*BVHNode); ok {
		collectStats(left, depth+1, s)
	}
	if right, ok := node.Right.(*BVHNode); ok {
		collectStats(right, depth+1, s)
	}
}
