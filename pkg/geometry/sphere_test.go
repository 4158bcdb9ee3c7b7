package geometry

import (
	"math"
	"testing"

	"github.com/fresneltrace/fresnel/pkg/core"
	"github.com/fresneltrace/fresnel/pkg/material"
)

func testMaterial() material.Material {
	return material.NewLambertian(core.NewColor(0.5, 0.5, 0.5))
}

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := NewSphere(core.NewPoint3(0, 0, 0), 1.0, testMaterial())
	ray := core.NewRay(core.NewPoint3(2, 0, 0), core.NewVec3(0, 1, 0))

	hit, isHit := sphere.Hit(ray, core.NewInterval(0.001, 1000.0))
	if isHit {
		t.Errorf("Expected miss, but got hit at t=%f", hit.T)
	}
}

func TestSphere_Hit_FrontAndBackFace(t *testing.T) {
	sphere := NewSphere(core.NewPoint3(0, 0, 0), 1.0, testMaterial())

	tests := []struct {
		name           string
		rayOrigin      core.Point3
		rayDirection   core.Vec3
		expectedT      float64
		expectedFront  bool
		expectedNormal core.Vec3
	}{
		{
			name:           "front face hit from outside",
			rayOrigin:      core.NewPoint3(0, 0, 2),
			rayDirection:   core.NewVec3(0, 0, -1),
			expectedT:      1.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "back face hit from inside",
			rayOrigin:      core.NewPoint3(0, 0, 0),
			rayDirection:   core.NewVec3(0, 0, 1),
			expectedT:      1.0,
			expectedFront:  false,
			expectedNormal: core.NewVec3(0, 0, -1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, tt.rayDirection)
			hit, isHit := sphere.Hit(ray, core.NewInterval(0.001, 1000.0))

			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}

			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}

			if hit.FrontFace != tt.expectedFront {
				t.Errorf("Expected front face %t, got %t", tt.expectedFront, hit.FrontFace)
			}

			tolerance := 1e-9
			if math.Abs(hit.Normal.X-tt.expectedNormal.X) > tolerance ||
				math.Abs(hit.Normal.Y-tt.expectedNormal.Y) > tolerance ||
				math.Abs(hit.Normal.Z-tt.expectedNormal.Z) > tolerance {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}

			if hit.Material != sphere.Material {
				t.Error("Expected hit record to carry the sphere's material")
			}
		})
	}
}

func TestSphere_Hit_HalfOpenRange(t *testing.T) {
	// Roots along this ray are t=1 and t=3.
	sphere := NewSphere(core.NewPoint3(0, 0, 0), 1.0, testMaterial())
	ray := core.NewRay(core.NewPoint3(0, 0, 2), core.NewVec3(0, 0, -1))

	tests := []struct {
		name      string
		tRange    core.Interval
		expectHit bool
		expectedT float64
	}{
		{name: "both roots in range picks closer", tRange: core.NewInterval(0.001, 1000.0), expectHit: true, expectedT: 1.0},
		{name: "closer root excluded picks farther", tRange: core.NewInterval(2.0, 1000.0), expectHit: true, expectedT: 3.0},
		{name: "range start is inclusive", tRange: core.NewInterval(1.0, 2.0), expectHit: true, expectedT: 1.0},
		{name: "range end is exclusive", tRange: core.NewInterval(0.001, 1.0), expectHit: false},
		{name: "both roots below range", tRange: core.NewInterval(3.5, 1000.0), expectHit: false},
		{name: "both roots above range", tRange: core.NewInterval(0.001, 0.5), expectHit: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := sphere.Hit(ray, tt.tRange)
			if isHit != tt.expectHit {
				t.Fatalf("Expected hit=%t, got %t", tt.expectHit, isHit)
			}
			if isHit && math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
		})
	}
}

func TestSphere_Hit_UV(t *testing.T) {
	sphere := NewSphere(core.NewPoint3(0, 0, 0), 1.0, testMaterial())

	tests := []struct {
		name         string
		rayOrigin    core.Point3
		rayDirection core.Vec3
		expectedU    float64
		expectedV    float64
	}{
		{name: "+x equator", rayOrigin: core.NewPoint3(2, 0, 0), rayDirection: core.NewVec3(-1, 0, 0), expectedU: 0.5, expectedV: 0.5},
		{name: "+z equator", rayOrigin: core.NewPoint3(0, 0, 2), rayDirection: core.NewVec3(0, 0, -1), expectedU: 0.25, expectedV: 0.5},
		{name: "-z equator", rayOrigin: core.NewPoint3(0, 0, -2), rayDirection: core.NewVec3(0, 0, 1), expectedU: 0.75, expectedV: 0.5},
		{name: "north pole", rayOrigin: core.NewPoint3(0, 2, 0), rayDirection: core.NewVec3(0, -1, 0), expectedU: 0.5, expectedV: 1.0},
		{name: "south pole", rayOrigin: core.NewPoint3(0, -2, 0), rayDirection: core.NewVec3(0, 1, 0), expectedU: 0.5, expectedV: 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, tt.rayDirection)
			hit, isHit := sphere.Hit(ray, core.NewInterval(0.001, 1000.0))
			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}
			if math.Abs(hit.U-tt.expectedU) > 1e-9 || math.Abs(hit.V-tt.expectedV) > 1e-9 {
				t.Errorf("Expected uv=(%f, %f), got (%f, %f)", tt.expectedU, tt.expectedV, hit.U, hit.V)
			}
		})
	}
}

func TestSphere_CenterAt(t *testing.T) {
	sphere := NewMovingSphere(core.NewPoint3(0, 0, 0), core.NewVec3(1, 0, 0), 1.0, 0.5, testMaterial())

	tests := []struct {
		time     float64
		expected core.Point3
	}{
		{time: 1.0, expected: core.NewPoint3(0, 0, 0)},
		{time: 0.0, expected: core.NewPoint3(-1, 0, 0)},
		{time: 1.5, expected: core.NewPoint3(0.5, 0, 0)},
	}

	for _, tt := range tests {
		if got := sphere.CenterAt(tt.time); got != tt.expected {
			t.Errorf("Expected center %v at time %f, got %v", tt.expected, tt.time, got)
		}
	}
}

func TestSphere_Hit_MovingCenter(t *testing.T) {
	sphere := NewMovingSphere(core.NewPoint3(0, 0, 0), core.NewVec3(1, 0, 0), 0.0, 1.0, testMaterial())

	// At time 0.5 the center sits at (0.5, 0, 0), dead ahead of this ray.
	ray := core.NewRayAt(core.NewPoint3(0.5, 0, 2), core.NewVec3(0, 0, -1), 0.5)
	hit, isHit := sphere.Hit(ray, core.NewInterval(0.001, 1000.0))
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}
	if math.Abs(hit.T-1.0) > 1e-9 {
		t.Errorf("Expected t=1 against the time-0.5 center, got t=%f", hit.T)
	}

	// The same ray at time 0 grazes the sphere off-center, farther along.
	rayAtZero := core.NewRayAt(core.NewPoint3(0.5, 0, 2), core.NewVec3(0, 0, -1), 0.0)
	hitZero, isHit := sphere.Hit(rayAtZero, core.NewInterval(0.001, 1000.0))
	if !isHit {
		t.Fatal("Expected off-center hit at time 0, but got miss")
	}
	if hitZero.T <= hit.T {
		t.Errorf("Expected off-center hit farther than t=%f, got t=%f", hit.T, hitZero.T)
	}
}

func TestSphere_BoundingBox(t *testing.T) {
	stationary := NewSphere(core.NewPoint3(2, 3, 4), 1.0, testMaterial())
	box, ok := stationary.BoundingBox(core.NewInterval(0, 1))
	if !ok {
		t.Fatal("Expected a bounding box for a sphere")
	}
	if box.Min != core.NewPoint3(1, 2, 3) || box.Max != core.NewPoint3(3, 4, 5) {
		t.Errorf("Expected box (1,2,3)..(3,4,5), got %v..%v", box.Min, box.Max)
	}

	moving := NewMovingSphere(core.NewPoint3(0, 0, 0), core.NewVec3(2, 0, 0), 0.0, 0.5, testMaterial())
	box, ok = moving.BoundingBox(core.NewInterval(0, 1))
	if !ok {
		t.Fatal("Expected a bounding box for a moving sphere")
	}
	if box.Min != core.NewPoint3(-0.5, -0.5, -0.5) || box.Max != core.NewPoint3(2.5, 0.5, 0.5) {
		t.Errorf("Expected swept box (-0.5,-0.5,-0.5)..(2.5,0.5,0.5), got %v..%v", box.Min, box.Max)
	}
}
