package core

import (
	"encoding/json"
	"fmt"
)

// Scene files serialize vectors and points as 3-element arrays and
// colors as {r, g, b} objects.

// MarshalJSON encodes the vector as [x, y, z]
func (v Vec3) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]float64{v.X, v.Y, v.Z})
}

// UnmarshalJSON decodes a vector from [x, y, z]
func (v *Vec3) UnmarshalJSON(data []byte) error {
	var a [3]float64
	if err := unmarshalTriple(data, &a); err != nil {
		return err
	}
	*v = Vec3{a[0], a[1], a[2]}
	return nil
}

// MarshalJSON encodes the point as [x, y, z]
func (p Point3) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]float64{p.X, p.Y, p.Z})
}

// UnmarshalJSON decodes a point from [x, y, z]
func (p *Point3) UnmarshalJSON(data []byte) error {
	var a [3]float64
	if err := unmarshalTriple(data, &a); err != nil {
		return err
	}
	*p = Point3{a[0], a[1], a[2]}
	return nil
}

func unmarshalTriple(data []byte, out *[3]float64) error {
	var raw []float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 3 {
		return fmt.Errorf("expected 3 elements, got %d", len(raw))
	}
	copy(out[:], raw)
	return nil
}

type colorJSON struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// MarshalJSON encodes the color as {"r": r, "g": g, "b": b}
func (c Color) MarshalJSON() ([]byte, error) {
	return json.Marshal(colorJSON{R: c.R, G: c.G, B: c.B})
}

// UnmarshalJSON decodes a color from {"r": r, "g": g, "b": b}
func (c *Color) UnmarshalJSON(data []byte) error {
	var raw colorJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = Color{R: raw.R, G: raw.G, B: raw.B}
	return nil
}
