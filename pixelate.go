package imgfilter

import (
	"fmt"
	"image"
	"math"
)

// PixelateOptions controls Pixelate.
type PixelateOptions struct {
	// Width and Height are the buffer dimensions.
	Width  int
	Height int
	// Size is the block edge in pixels, expected to be greater than 1.
	Size float64
	// Surface is used for resampling, a new one without smoothing is allocated when nil.
	Surface Surface
}

// DefaultPixelateOptions returns the default pixelation configuration.
func DefaultPixelateOptions() PixelateOptions {
	return PixelateOptions{
		Width:  DefaultWidth,
		Height: DefaultHeight,
		Size:   8,
	}
}

// Pixelate downsamples the image by Size and scales it back up, which produces
// blocks when the surface does not smooth. Unlike the per-pixel filters it keeps
// the alpha the surface returns.
func Pixelate(buf PixelBuffer, opts ...func(o *PixelateOptions)) (PixelBuffer, error) {
	opt := DefaultPixelateOptions()
	for _, applyOpt := range opts {
		applyOpt(&opt)
	}

	if opt.Size <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSize, opt.Size)
	}
	if opt.Width <= 0 || opt.Height <= 0 || len(buf) != opt.Width*opt.Height*4 {
		return nil, fmt.Errorf("%w: got %d bytes for %dx%d", ErrBufferSize, len(buf), opt.Width, opt.Height)
	}

	env := opt.Surface
	if env == nil {
		env = NewSurface(opt.Width, opt.Height, false)
	}

	full := image.Rect(0, 0, opt.Width, opt.Height)
	small := image.Rect(0, 0, blocks(opt.Width, opt.Size), blocks(opt.Height, opt.Size))

	Logger().Debug("pixelating",
		"width", opt.Width, "height", opt.Height, "size", opt.Size,
		"blocksX", small.Dx(), "blocksY", small.Dy())

	if err := env.WritePixels(buf, opt.Width, opt.Height, 0, 0); err != nil {
		return nil, fmt.Errorf("write pixels: %w", err)
	}
	env.BlitScaled(full, small)
	env.BlitScaled(small, full)

	return PixelBuffer(env.ReadPixels(0, 0, opt.Width, opt.Height)), nil
}

// blocks returns how many blocks of size cover n pixels, at least one.
func blocks(n int, size float64) int {
	b := int(math.Ceil(float64(n) / size))
	if b < 1 {
		return 1
	}
	return b
}
