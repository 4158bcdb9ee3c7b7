package core

import "math"

// Color is a floating-point RGB triple. Components are unclamped linear
// radiance values; quantization to display bytes happens once, at image
// write, via RGB8.
type Color struct {
	R, G, B float64
}

// NewColor creates a new Color
func NewColor(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// Add returns the sum of two colors
func (c Color) Add(other Color) Color {
	return Color{c.R + other.R, c.G + other.G, c.B + other.B}
}

// Multiply returns the color scaled by a scalar
func (c Color) Multiply(scalar float64) Color {
	return Color{c.R * scalar, c.G * scalar, c.B * scalar}
}

// MultiplyColor returns the component-wise product, the attenuation of
// one color by another
func (c Color) MultiplyColor(other Color) Color {
	return Color{c.R * other.R, c.G * other.G, c.B * other.B}
}

// Mix blends two colors with weights t and 1-t: t*a + (1-t)*b
func Mix(a, b Color, t float64) Color {
	return a.Multiply(t).Add(b.Multiply(1 - t))
}

// RGB8 is an 8-bit quantized RGB triple
type RGB8 struct {
	R, G, B uint8
}

// RGB8 quantizes the color to bytes. The square root is the gamma 2.0
// approximation, applied here and nowhere else.
func (c Color) RGB8() RGB8 {
	return RGB8{
		R: quantize(c.R),
		G: quantize(c.G),
		B: quantize(c.B),
	}
}

func quantize(x float64) uint8 {
	v := math.Floor(math.Sqrt(math.Max(0, x)) * 255.999)
	if v > 255 {
		v = 255
	}
	return uint8(v)
}

// Accumulator averages color samples for one pixel
type Accumulator struct {
	sum   Color
	count int
}

// Add accumulates one sample
func (a *Accumulator) Add(c Color) {
	a.sum = a.sum.Add(c)
	a.count++
}

// Count returns the number of accumulated samples
func (a *Accumulator) Count() int {
	return a.count
}

// Average returns the mean of the accumulated samples.
// Panics when no samples have been added.
func (a *Accumulator) Average() Color {
	if a.count == 0 {
		panic("Average of an empty accumulator")
	}
	n := float64(a.count)
	return Color{a.sum.R / n, a.sum.G / n, a.sum.B / n}
}
