package material

import (
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"math"
	"os"
	"sync"

	_ "golang.org/x/image/bmp"  // BMP decoder
	_ "golang.org/x/image/tiff" // TIFF decoder
	_ "golang.org/x/image/webp" // WebP decoder

	"github.com/fresneltrace/fresnel/pkg/core"
)

// errorColor is returned for every sample of a texture whose image
// could not be loaded.
var errorColor = core.NewColor(0, 1, 1)

// Image is a texture backed by an image file. The file is decoded lazily
// on first sample; after a failed decode every sample returns a fixed
// error color. Pixels are stored as 3 bytes each, row-major, top-down.
type Image struct {
	Path string

	once   sync.Once
	width  int
	height int
	stride int
	pixels []uint8
	failed bool
}

// NewImage creates an image texture for the given file path. The file is
// not touched until the first sample or an explicit Prewarm.
func NewImage(path string) *Image {
	return &Image{Path: path}
}

// Prewarm forces the lazy decode and reports whether the image loaded.
// Rendering can call this before the pixel loop to keep file I/O out of
// the sampling hot path.
func (t *Image) Prewarm() bool {
	t.once.Do(t.load)
	return !t.failed
}

func (t *Image) load() {
	file, err := os.Open(t.Path)
	if err != nil {
		t.failed = true
		return
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		t.failed = true
		return
	}

	bounds := img.Bounds()
	t.width = bounds.Dx()
	t.height = bounds.Dy()
	t.stride = t.width * 3
	t.pixels = make([]uint8, t.stride*t.height)

	for y := 0; y < t.height; y++ {
		for x := 0; x < t.width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns 16-bit channels; keep the high byte
			offset := y*t.stride + x*3
			t.pixels[offset] = uint8(r >> 8)
			t.pixels[offset+1] = uint8(g >> 8)
			t.pixels[offset+2] = uint8(b >> 8)
		}
	}
}

// Value samples the image at clamped (u, 1-v) with nearest-neighbor
// lookup and no filtering
func (t *Image) Value(u, v float64, p core.Point3) core.Color {
	t.once.Do(t.load)
	if t.failed {
		return errorColor
	}

	u = clamp01(u)
	v = 1 - clamp01(v)

	x := int(math.Floor(u * float64(t.width)))
	y := int(math.Floor(v * float64(t.height)))
	if x >= t.width {
		x = t.width - 1
	}
	if y >= t.height {
		y = t.height - 1
	}

	offset := y*t.stride + x*3
	return core.NewColor(
		float64(t.pixels[offset])/255,
		float64(t.pixels[offset+1])/255,
		float64(t.pixels[offset+2])/255,
	)
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
