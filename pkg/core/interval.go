package core

// Interval is a half-open scalar range [Start, End) used for ray
// parameter bounds and shutter time spans.
type Interval struct {
	Start, End float64
}

// NewInterval creates a new interval
func NewInterval(start, end float64) Interval {
	return Interval{Start: start, End: end}
}

// Contains reports whether t lies in [Start, End)
func (iv Interval) Contains(t float64) bool {
	return iv.Start <= t && t < iv.End
}

// Width returns End - Start
func (iv Interval) Width() float64 {
	return iv.End - iv.Start
}

// ClipEnd returns the interval with its end tightened to end
func (iv Interval) ClipEnd(end float64) Interval {
	return Interval{Start: iv.Start, End: end}
}
