package core

import (
	"math"
	"testing"
)

func TestAABB_Hit(t *testing.T) {
	box := NewAABB(NewPoint3(0, 0, 0), NewPoint3(1, 1, 1))

	tests := []struct {
		name     string
		origin   Point3
		dir      Vec3
		t        Interval
		expected bool
	}{
		{
			name:     "from inside along x within range",
			origin:   NewPoint3(0.5, 0.5, 0.5),
			dir:      NewVec3(1, 0, 0),
			t:        NewInterval(0, 2),
			expected: true,
		},
		{
			name:     "from inside along x with range past the exit",
			origin:   NewPoint3(0.5, 0.5, 0.5),
			dir:      NewVec3(1, 0, 0),
			t:        NewInterval(2, 3),
			expected: false,
		},
		{
			name:     "from outside moving in along -x",
			origin:   NewPoint3(2, 0.5, 0.5),
			dir:      NewVec3(-1, 0, 0),
			t:        NewInterval(1, 2),
			expected: true,
		},
		{
			name:     "parallel ray with origin inside the slab",
			origin:   NewPoint3(0.5, 0.5, 0.5),
			dir:      NewVec3(0, 0, 1),
			t:        NewInterval(0, 10),
			expected: true,
		},
		{
			name:     "parallel ray with origin outside the slab",
			origin:   NewPoint3(2, 0.5, 0.5),
			dir:      NewVec3(0, 1, 0),
			t:        NewInterval(0, 10),
			expected: false,
		},
		{
			name:     "parallel ray with origin exactly on the slab face",
			origin:   NewPoint3(0, 0.5, 0.5),
			dir:      NewVec3(0, 1, 0),
			t:        NewInterval(0, 10),
			expected: false,
		},
		{
			name:     "two zero components inside both slabs",
			origin:   NewPoint3(0.5, 0.5, -1),
			dir:      NewVec3(0, 0, 1),
			t:        NewInterval(0, 10),
			expected: true,
		},
		{
			name:     "negative direction through the box",
			origin:   NewPoint3(0.5, 0.5, 2),
			dir:      NewVec3(0, 0, -1),
			t:        NewInterval(0, 10),
			expected: true,
		},
		{
			name:     "diagonal miss",
			origin:   NewPoint3(2, 2, 2),
			dir:      NewVec3(1, 1, 1),
			t:        NewInterval(0, 10),
			expected: false,
		},
		{
			name:     "diagonal hit through opposite corners",
			origin:   NewPoint3(-1, -1, -1),
			dir:      NewVec3(1, 1, 1),
			t:        NewInterval(0, 10),
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := box.Hit(NewRay(tt.origin, tt.dir), tt.t)
			if got != tt.expected {
				t.Errorf("Expected hit=%v, got %v", tt.expected, got)
			}
		})
	}
}

func TestAABB_HitZeroDirectionProperty(t *testing.T) {
	// With one direction component zero, a hit requires the matching
	// origin coordinate strictly inside the open slab and a non-empty
	// overlap on the remaining axes.
	box := NewAABB(NewPoint3(0, 0, 0), NewPoint3(1, 1, 1))

	for _, x := range []float64{-0.5, 0, 0.25, 0.5, 0.99, 1, 1.5} {
		ray := NewRay(NewPoint3(x, 0.5, -2), NewVec3(0, 0, 1))
		inside := 0 < x && x < 1
		if got := box.Hit(ray, NewInterval(0, 10)); got != inside {
			t.Errorf("Expected hit=%v for x=%v, got %v", inside, x, got)
		}
	}
}

func TestNewAABB_SortsCorners(t *testing.T) {
	box := NewAABB(NewPoint3(1, -2, 3), NewPoint3(-1, 2, -3))

	if box.Min != NewPoint3(-1, -2, -3) {
		t.Errorf("Expected min (-1,-2,-3), got %v", box.Min)
	}
	if box.Max != NewPoint3(1, 2, 3) {
		t.Errorf("Expected max (1,2,3), got %v", box.Max)
	}
}

func TestNewAABB_DegeneratePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Expected a panic for a degenerate axis")
		}
	}()
	NewAABB(NewPoint3(0, 0, 0), NewPoint3(1, 0, 1))
}

func TestAABB_Merge(t *testing.T) {
	a := NewAABB(NewPoint3(0, 0, 0), NewPoint3(1, 1, 1))
	b := NewAABB(NewPoint3(2, -1, 0.5), NewPoint3(3, 0.5, 2))
	c := NewAABB(NewPoint3(-5, 4, -2), NewPoint3(-4, 5, -1))

	ab := a.Merge(b)
	if ab.Min != NewPoint3(0, -1, 0) || ab.Max != NewPoint3(3, 1, 2) {
		t.Errorf("Expected merged box [(0,-1,0),(3,1,2)], got %v", ab)
	}

	if got, want := a.Merge(b), b.Merge(a); got != want {
		t.Errorf("Expected merge to commute, got %v and %v", got, want)
	}
	if got, want := a.Merge(b).Merge(c), a.Merge(b.Merge(c)); got != want {
		t.Errorf("Expected merge to associate, got %v and %v", got, want)
	}

	if !ab.Contains(a) || !ab.Contains(b) {
		t.Errorf("Expected merged box to contain both inputs")
	}
}

func TestMergeOptional_AbsentIsIdentity(t *testing.T) {
	a := NewAABB(NewPoint3(0, 0, 0), NewPoint3(1, 1, 1))

	if got, ok := MergeOptional(a, true, AABB{}, false); !ok || got != a {
		t.Errorf("Expected identity merge to return the box, got %v ok=%v", got, ok)
	}
	if got, ok := MergeOptional(AABB{}, false, a, true); !ok || got != a {
		t.Errorf("Expected identity merge to return the box, got %v ok=%v", got, ok)
	}
	if _, ok := MergeOptional(AABB{}, false, AABB{}, false); ok {
		t.Errorf("Expected merging two absent boxes to be absent")
	}
}

func TestAABB_Volume(t *testing.T) {
	box := NewAABB(NewPoint3(0, 0, 0), NewPoint3(2, 3, 4))
	if got := box.Volume(); math.Abs(got-24) > 1e-12 {
		t.Errorf("Expected volume 24, got %v", got)
	}
}

func TestInterval_Contains(t *testing.T) {
	iv := NewInterval(1, 2)

	if !iv.Contains(1) {
		t.Errorf("Expected the start to be contained")
	}
	if iv.Contains(2) {
		t.Errorf("Expected the end to be excluded")
	}
	if iv.Contains(0.999) || iv.Contains(2.001) {
		t.Errorf("Expected values outside [1,2) to be excluded")
	}
	if got := iv.ClipEnd(1.5); got.Start != 1 || got.End != 1.5 {
		t.Errorf("Expected clipped interval [1,1.5), got %v", got)
	}
}
