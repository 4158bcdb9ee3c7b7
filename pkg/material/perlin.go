package material

import (
	"math"
	"sync"

	"github.com/fresneltrace/fresnel/pkg/core"
)

// Perlin generates smooth 3D gradient noise from a permutation table and
// gradient vectors. The tables are built lazily from the seed on first
// sample; the seed fully determines the state, so concurrent first-touch
// is safe and reproducible.
type Perlin struct {
	Size int   // table size, a power of two, typically 256
	Seed int64 // shuffle and gradient seed

	once   sync.Once
	ranvec []core.Vec3
	permX  []int
	permY  []int
	permZ  []int
}

// NewPerlin creates an uninitialized noise source. No tables are built
// until the first call to Noise or Turbulence.
func NewPerlin(size int, seed int64) *Perlin {
	return &Perlin{Size: size, Seed: seed}
}

func (p *Perlin) init() {
	rng := core.NewRandom(p.Seed)

	p.ranvec = make([]core.Vec3, p.Size)
	for i := range p.ranvec {
		p.ranvec[i] = rng.InUnitCube()
	}

	p.permX = generatePerm(rng, p.Size)
	p.permY = generatePerm(rng, p.Size)
	p.permZ = generatePerm(rng, p.Size)
}

// generatePerm shuffles the identity with a swap target drawn from [0, i),
// which yields a cyclic permutation: every element moves.
func generatePerm(rng *core.Random, size int) []int {
	perm := make([]int, size)
	for i := range perm {
		perm[i] = i
	}
	for i := size - 1; i > 0; i-- {
		target := rng.IntN(i)
		perm[i], perm[target] = perm[target], perm[i]
	}
	return perm
}

// Noise returns smooth noise in roughly [-1, 1] at the given point
func (p *Perlin) Noise(pt core.Point3) float64 {
	p.once.Do(p.init)

	u := pt.X - math.Floor(pt.X)
	v := pt.Y - math.Floor(pt.Y)
	w := pt.Z - math.Floor(pt.Z)

	i := int(math.Floor(pt.X))
	j := int(math.Floor(pt.Y))
	k := int(math.Floor(pt.Z))

	var c [2][2][2]core.Vec3
	for di := 0; di < 2; di++ {
		for dj := 0; dj < 2; dj++ {
			for dk := 0; dk < 2; dk++ {
				idx := p.permX[remEuclid(i+di, p.Size)] ^
					p.permY[remEuclid(j+dj, p.Size)] ^
					p.permZ[remEuclid(k+dk, p.Size)]
				c[di][dj][dk] = p.ranvec[idx]
			}
		}
	}

	return perlinInterp(&c, u, v, w)
}

// Turbulence sums depth octaves of noise with the frequency doubling and
// the amplitude halving each octave
func (p *Perlin) Turbulence(pt core.Point3, depth int) float64 {
	accum := 0.0
	temp := pt
	weight := 1.0
	for i := 0; i < depth; i++ {
		accum += weight * p.Noise(temp)
		weight *= 0.5
		temp = core.Point3{X: temp.X * 2, Y: temp.Y * 2, Z: temp.Z * 2}
	}
	return math.Abs(accum)
}

func perlinInterp(c *[2][2][2]core.Vec3, u, v, w float64) float64 {
	// Hermite smoothing on the blend weights keeps the lattice invisible
	uu := u * u * (3 - 2*u)
	vv := v * v * (3 - 2*v)
	ww := w * w * (3 - 2*w)

	accum := 0.0
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				fi, fj, fk := float64(i), float64(j), float64(k)
				weight := core.NewVec3(u-fi, v-fj, w-fk)
				accum += (fi*uu + (1-fi)*(1-uu)) *
					(fj*vv + (1-fj)*(1-vv)) *
					(fk*ww + (1-fk)*(1-ww)) *
					c[i][j][k].Dot(weight)
			}
		}
	}
	return accum
}

func remEuclid(v, size int) int {
	m := v % size
	if m < 0 {
		m += size
	}
	return m
}

// Noise is a marble-like procedural texture driven by Perlin turbulence
type Noise struct {
	Scale  float64
	Depth  int
	Perlin *Perlin
}

// NewNoise creates a noise texture with its own lazily-built Perlin state
func NewNoise(scale float64, depth int, size int, seed int64) *Noise {
	return &Noise{Scale: scale, Depth: depth, Perlin: NewPerlin(size, seed)}
}

// Value returns a gray band modulated by sin of the scaled depth plus
// turbulence, the classic marble pattern
func (n *Noise) Value(u, v float64, p core.Point3) core.Color {
	scaled := core.Point3{X: p.X * n.Scale, Y: p.Y * n.Scale, Z: p.Z * n.Scale}
	t := 0.5 * (1 + math.Sin(n.Scale*p.Z+10*n.Perlin.Turbulence(scaled, n.Depth)))
	return core.Mix(core.NewColor(1, 1, 1), core.NewColor(0, 0, 0), t)
}
