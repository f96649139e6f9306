package imgfilter

import (
	"errors"
	"fmt"
	"image"

	"github.com/vearutop/imgfilter/surface"
)

// Default surface dimensions used when none are given.
const (
	DefaultWidth  = 768
	DefaultHeight = 576
)

var (
	// ErrBufferSize is returned when a buffer length is not width * height * 4.
	ErrBufferSize = errors.New("imgfilter: buffer length does not match dimensions")

	// ErrInvalidSize is returned for a non-positive pixelation block size.
	ErrInvalidSize = errors.New("imgfilter: invalid block size")
)

// Surface is a 2D raster the filters use for image I/O and resampling.
// *surface.ImageSurface is the bundled implementation.
type Surface interface {
	Width() int
	Height() int
	// SetSmoothing toggles interpolation for subsequent scaled draws.
	SetSmoothing(enabled bool)
	// ReadPixels returns a copy of a rectangular region as RGBA samples.
	ReadPixels(x, y, width, height int) []uint8
	// WritePixels stores a width x height RGBA buffer at (x, y).
	WritePixels(pix []uint8, width, height, x, y int) error
	// DrawImage draws img scaled into dst.
	DrawImage(img image.Image, dst image.Rectangle)
	// BlitScaled draws the src region of the surface scaled into dst on the same surface.
	BlitScaled(src, dst image.Rectangle)
	// Image rasterizes the surface into an independent image.
	Image() (image.Image, error)
}

// NewSurface allocates a blank surface. Non-positive dimensions fall back to
// DefaultWidth and DefaultHeight.
func NewSurface(width, height int, smoothing bool) Surface {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}

	Logger().Debug("allocating surface", "width", width, "height", height, "smoothing", smoothing)

	return surface.New(width, height, func(o *surface.Options) {
		o.Smoothing = smoothing
	})
}

// GetData draws img onto a surface at its own size and returns its pixels.
// When env is nil a surface of the image size is allocated.
func GetData(img image.Image, env Surface) PixelBuffer {
	w, h := imageSize(img)
	if env == nil {
		env = NewSurface(w, h, false)
	}
	env.DrawImage(img, image.Rect(0, 0, w, h))
	return PixelBuffer(env.ReadPixels(0, 0, w, h))
}

// GetImage turns a width x height buffer into an image via a surface.
// When env is nil a surface of the buffer size is allocated.
func GetImage(buf PixelBuffer, width, height int, env Surface) (image.Image, error) {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	if len(buf) != width*height*4 {
		return nil, fmt.Errorf("%w: got %d bytes for %dx%d", ErrBufferSize, len(buf), width, height)
	}
	if env == nil {
		env = NewSurface(width, height, false)
	}
	if err := env.WritePixels(buf, width, height, 0, 0); err != nil {
		return nil, fmt.Errorf("write pixels: %w", err)
	}
	img, err := env.Image()
	if err != nil {
		return nil, fmt.Errorf("rasterize: %w", err)
	}
	return img, nil
}

// DrawImage filters the pixels of img and writes them to dst at (x, y).
// A nil filter draws the image unchanged.
func DrawImage(dst Surface, img image.Image, f Filter, x, y int) error {
	if f == nil {
		f = IdentityFilter()
	}
	w, h := imageSize(img)
	data := f(GetData(img, nil))
	return dst.WritePixels(data, w, h, x, y)
}

func imageSize(img image.Image) (int, int) {
	if b := img.Bounds(); !b.Empty() {
		return b.Dx(), b.Dy()
	}
	return DefaultWidth, DefaultHeight
}
