package imgfilter

import "math"

// PixelBuffer is a flat, row-major, non-premultiplied RGBA sample buffer
// with a top-left origin. Its length is width * height * 4.
type PixelBuffer []uint8

// RGBA is one pixel as produced by a PixelFunc.
// Components are unquantized; they are converted to samples when stored.
type RGBA struct {
	R, G, B, A float64
}

// PixelFunc maps one pixel to a new one.
type PixelFunc func(r, g, b, a float64) RGBA

// NewPixelBuffer allocates a zeroed buffer for a width x height image.
func NewPixelBuffer(width, height int) PixelBuffer {
	if width <= 0 || height <= 0 {
		return PixelBuffer{}
	}
	return make(PixelBuffer, width*height*4)
}

// Pixels returns the number of complete pixels in the buffer.
func (b PixelBuffer) Pixels() int {
	return len(b) / 4
}

// Clone returns an independent copy of the buffer.
func (b PixelBuffer) Clone() PixelBuffer {
	if b == nil {
		return nil
	}
	out := make(PixelBuffer, len(b))
	copy(out, b)
	return out
}

// MapPixels applies fn to every pixel of buf in ascending offset order and returns
// the result in a new buffer of the same length. buf is not modified.
// Trailing bytes that do not form a complete pixel are copied unchanged.
func MapPixels(buf PixelBuffer, fn PixelFunc) PixelBuffer {
	out := buf.Clone()
	for i := 0; i+3 < len(out); i += 4 {
		c := fn(float64(out[i]), float64(out[i+1]), float64(out[i+2]), float64(out[i+3]))
		out[i+0] = toSample(c.R)
		out[i+1] = toSample(c.G)
		out[i+2] = toSample(c.B)
		out[i+3] = toSample(c.A)
	}
	return out
}

// toSample quantizes v the way a clamped byte array stores numbers:
// NaN becomes 0, values are saturated to [0, 255] and ties round to even.
func toSample(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.RoundToEven(v))
}
