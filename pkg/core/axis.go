package core

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Axis identifies one of the three coordinate axes
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// String returns the lowercase axis label
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return fmt.Sprintf("axis(%d)", int(a))
}

// ParseAxis parses an axis label, accepting either case
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(s) {
	case "x":
		return AxisX, nil
	case "y":
		return AxisY, nil
	case "z":
		return AxisZ, nil
	}
	return 0, fmt.Errorf("invalid axis label %q", s)
}

// MarshalJSON encodes the axis as its lowercase label
func (a Axis) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON decodes an axis from its label
func (a *Axis) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseAxis(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Component returns the vector component on the given axis
func (v Vec3) Component(a Axis) float64 {
	switch a {
	case AxisX:
		return v.X
	case AxisY:
		return v.Y
	case AxisZ:
		return v.Z
	}
	panic(fmt.Sprintf("invalid axis %d", int(a)))
}

// Component returns the point coordinate on the given axis
func (p Point3) Component(a Axis) float64 {
	switch a {
	case AxisX:
		return p.X
	case AxisY:
		return p.Y
	case AxisZ:
		return p.Z
	}
	panic(fmt.Sprintf("invalid axis %d", int(a)))
}

// Permutation is an ordered triple of axis labels defining a reordering
// of tuple components.
type Permutation [3]Axis

// Canonical permutations for the three axis-aligned rectangle
// orientations: the first two axes span the plane, the third is normal.
var (
	PermXYZ = Permutation{AxisX, AxisY, AxisZ}
	PermXZY = Permutation{AxisX, AxisZ, AxisY}
	PermYZX = Permutation{AxisY, AxisZ, AxisX}
)

// Permute returns (v[p0], v[p1], v[p2])
func (v Vec3) Permute(p Permutation) Vec3 {
	return Vec3{v.Component(p[0]), v.Component(p[1]), v.Component(p[2])}
}

// Unpermute is the inverse of Permute
func (v Vec3) Unpermute(p Permutation) Vec3 {
	var c [3]float64
	c[p[0]] = v.X
	c[p[1]] = v.Y
	c[p[2]] = v.Z
	return Vec3{c[0], c[1], c[2]}
}

// Permute returns (p[perm0], p[perm1], p[perm2])
func (p Point3) Permute(perm Permutation) Point3 {
	return Point3{p.Component(perm[0]), p.Component(perm[1]), p.Component(perm[2])}
}

// Unpermute is the inverse of Permute
func (p Point3) Unpermute(perm Permutation) Point3 {
	var c [3]float64
	c[perm[0]] = p.X
	c[perm[1]] = p.Y
	c[perm[2]] = p.Z
	return Point3{c[0], c[1], c[2]}
}
