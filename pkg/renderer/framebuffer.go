package renderer

import (
	"image"
	"image/png"
	"io"

	"github.com/fresneltrace/fresnel/pkg/core"
)

// Framebuffer is a row-major RGB byte buffer with row 0 at the top of the
// image, matching PNG scanline order.
type Framebuffer struct {
	width  int
	height int
	pix    []byte
}

// NewFramebuffer allocates a zeroed buffer for width x height pixels.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		width:  width,
		height: height,
		pix:    make([]byte, width*height*3),
	}
}

// Width returns the image width in pixels.
func (fb *Framebuffer) Width() int { return fb.width }

// Height returns the image height in pixels.
func (fb *Framebuffer) Height() int { return fb.height }

// SetPixel stores the quantized color at (x, y), y = 0 at the top row.
func (fb *Framebuffer) SetPixel(x, y int, c core.RGB8) {
	i := (y*fb.width + x) * 3
	fb.pix[i] = c.R
	fb.pix[i+1] = c.G
	fb.pix[i+2] = c.B
}

// PixelAt returns the stored bytes at (x, y).
func (fb *Framebuffer) PixelAt(x, y int) core.RGB8 {
	i := (y*fb.width + x) * 3
	return core.RGB8{R: fb.pix[i], G: fb.pix[i+1], B: fb.pix[i+2]}
}

// Bytes returns the raw RGB buffer in scanline order, 3 bytes per pixel.
func (fb *Framebuffer) Bytes() []byte {
	return fb.pix
}

// CopyRow copies row y from a framebuffer of the same dimensions.
func (fb *Framebuffer) CopyRow(src *Framebuffer, y int) {
	i := y * fb.width * 3
	copy(fb.pix[i:i+fb.width*3], src.pix[i:i+fb.width*3])
}

// Image copies the buffer into an NRGBA image with opaque alpha.
func (fb *Framebuffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.width, fb.height))
	for y := 0; y < fb.height; y++ {
		for x := 0; x < fb.width; x++ {
			src := (y*fb.width + x) * 3
			dst := img.PixOffset(x, y)
			img.Pix[dst] = fb.pix[src]
			img.Pix[dst+1] = fb.pix[src+1]
			img.Pix[dst+2] = fb.pix[src+2]
			img.Pix[dst+3] = 0xff
		}
	}
	return img
}

// WritePNG encodes the framebuffer as an 8-bit non-interlaced PNG.
func (fb *Framebuffer) WritePNG(w io.Writer) error {
	return png.Encode(w, fb.Image())
}
