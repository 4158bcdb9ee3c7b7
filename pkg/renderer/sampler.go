package renderer

// Sampler produces stratified sub-pixel coordinates on an n by n grid.
type Sampler struct {
	N int // samples per axis
}

// NewSampler creates a stratified sampler with n samples per axis.
func NewSampler(n int) Sampler {
	return Sampler{N: n}
}

// SamplesPerPixel returns the number of samples taken per pixel, n².
func (sp Sampler) SamplesPerPixel() int {
	return sp.N * sp.N
}

// UV maps sample k of pixel (x, y) to screen coordinates in [0,1]².
// y counts up from the bottom image row. Sample k lands in stratum
// (k mod n, k / n) of the pixel.
func (sp Sampler) UV(k, x, y, width, height int) (float64, float64) {
	n := float64(sp.N)
	i := float64(k % sp.N)
	j := float64(k / sp.N)
	u := (float64(x) + i/n) / float64(width)
	v := (float64(y) + j/n) / float64(height)
	return u, v
}
