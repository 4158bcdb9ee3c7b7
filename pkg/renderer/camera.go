package renderer

import (
	"math"

	"github.com/fresneltrace/fresnel/pkg/core"
)

// CameraConfig describes a thin-lens camera in world space.
type CameraConfig struct {
	LookFrom      core.Point3
	LookAt        core.Point3
	Up            core.Vec3
	VerticalFov   float64 // degrees
	AspectRatio   float64
	Aperture      float64
	FocusDistance float64
	Time          core.Interval
}

// Camera generates primary rays for screen coordinates.
type Camera struct {
	origin          core.Point3
	lowerLeftCorner core.Point3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v            core.Vec3
	lensRadius      float64
	time            core.Interval
}

// NewCamera derives the view basis and viewport from the config.
// Panics when LookFrom equals LookAt or Up is parallel to the view
// direction.
func NewCamera(cfg CameraConfig) *Camera {
	w, ok := cfg.LookFrom.Subtract(cfg.LookAt).Unit()
	if !ok {
		panic("camera look_from equals look_at")
	}
	u, ok := cfg.Up.Cross(w).Unit()
	if !ok {
		panic("camera up is parallel to the view direction")
	}
	v := w.Cross(u)

	theta := cfg.VerticalFov * math.Pi / 180
	viewportHeight := 2 * math.Tan(theta/2) * cfg.FocusDistance
	viewportWidth := cfg.AspectRatio * viewportHeight

	horizontal := u.Multiply(viewportWidth)
	vertical := v.Multiply(viewportHeight)
	lowerLeftCorner := cfg.LookFrom.
		SubtractVec(horizontal.Multiply(0.5)).
		SubtractVec(vertical.Multiply(0.5)).
		SubtractVec(w.Multiply(cfg.FocusDistance))

	return &Camera{
		origin:          cfg.LookFrom,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		lensRadius:      cfg.Aperture / 2,
		time:            cfg.Time,
	}
}

// GetRay generates a ray through screen coordinates (s, t) in [0,1]².
// The ray origin is offset across the lens disk for depth of field and
// the ray time is drawn uniformly from the exposure interval.
func (c *Camera) GetRay(s, t float64, rng *core.Random) core.Ray {
	rd := rng.InUnitDisk().Multiply(c.lensRadius)
	offset := c.u.Multiply(rd.X).Add(c.v.Multiply(rd.Y))
	origin := c.origin.Add(offset)

	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(origin)
	unit, _ := direction.Unit()

	return core.NewRayAt(origin, unit, rng.In(c.time))
}
