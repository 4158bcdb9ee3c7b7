package renderer

import (
	"math"

	"github.com/fresneltrace/fresnel/pkg/core"
	"github.com/fresneltrace/fresnel/pkg/geometry"
)

// hitEpsilon skips self-intersections of scattered rays with the surface
// they just left.
const hitEpsilon = 0.001

// RayColor returns the radiance carried along one ray, recursing through
// scattered bounces until the depth budget runs out.
func RayColor(ray core.Ray, background Background, root geometry.Shape, depth int, rng *core.Random) core.Color {
	if depth <= 0 {
		return core.NewColor(0, 0, 0)
	}

	rec, ok := root.Hit(ray, core.NewInterval(hitEpsilon, math.Inf(1)))
	if !ok {
		return background.At(ray)
	}

	emitted := rec.Material.Emit(rec)
	scatter, ok := rec.Material.Scatter(rec, rng)
	if !ok {
		return emitted
	}

	bounce := RayColor(scatter.Scattered, background, root, depth-1, rng)
	return emitted.Add(scatter.Attenuation.MultiplyColor(bounce))
}
