package core

import "math/rand"

// Random is a seedable source of the random values the tracer draws:
// uniform scalars, points in the unit cube, sphere and disk, unit
// vectors, and colors. Construction paths that must be reproducible
// (BVH build, noise tables) take an explicit seed; rendering uses one
// instance per worker.
type Random struct {
	rng *rand.Rand
}

// NewRandom creates a random source from a seed
func NewRandom(seed int64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

// NewRandomFrom wraps an existing generator
func NewRandomFrom(rng *rand.Rand) *Random {
	return &Random{rng: rng}
}

// Float returns a uniform value in [0, 1)
func (r *Random) Float() float64 {
	return r.rng.Float64()
}

// In returns a uniform value in the half-open interval
func (r *Random) In(iv Interval) float64 {
	return iv.Start + r.rng.Float64()*iv.Width()
}

// IntN returns a uniform integer in [0, n)
func (r *Random) IntN(n int) int {
	return r.rng.Intn(n)
}

// InUnitCube returns a vector uniform in [-1, 1]^3
func (r *Random) InUnitCube() Vec3 {
	return Vec3{
		X: 2*r.rng.Float64() - 1,
		Y: 2*r.rng.Float64() - 1,
		Z: 2*r.rng.Float64() - 1,
	}
}

// InUnitSphere returns a vector uniform inside the unit sphere,
// by rejection from the unit cube
func (r *Random) InUnitSphere() Vec3 {
	for {
		p := r.InUnitCube()
		if p.LengthSquared() < 1 {
			return p
		}
	}
}

// InUnitDisk returns a vector uniform inside the unit disk on the
// z=0 plane, by rejection from the square slice of the unit cube
func (r *Random) InUnitDisk() Vec3 {
	for {
		p := Vec3{X: 2*r.rng.Float64() - 1, Y: 2*r.rng.Float64() - 1}
		if p.LengthSquared() < 1 {
			return p
		}
	}
}

// UnitVector returns a uniformly distributed unit vector,
// rejecting the zero-length draws that cannot be normalized
func (r *Random) UnitVector() Vec3 {
	for {
		if u, ok := r.InUnitSphere().Unit(); ok {
			return u
		}
	}
}

// Color returns a color with components uniform in [0, 1)
func (r *Random) Color() Color {
	return Color{R: r.rng.Float64(), G: r.rng.Float64(), B: r.rng.Float64()}
}

// ColorIn returns a color with components uniform in the interval
func (r *Random) ColorIn(iv Interval) Color {
	return Color{R: r.In(iv), G: r.In(iv), B: r.In(iv)}
}
