package surface

import (
	"errors"
	"image"
	"image/draw"
)

var (
	// ErrClosed is returned by operations on a closed surface.
	ErrClosed = errors.New("surface: closed")

	// ErrBufferSize is returned when a pixel buffer does not match the declared dimensions.
	ErrBufferSize = errors.New("surface: buffer length does not match dimensions")
)

// Options configures an ImageSurface.
type Options struct {
	// Smoothing enables interpolation for scaled draws. Without it scaled draws use
	// nearest-neighbor sampling.
	Smoothing bool
	// Scaler is used for scaled draws while smoothing is enabled.
	// Defaults to bilinear KernelScaler.
	Scaler Scaler
}

// ImageSurface is a software surface backed by non-premultiplied RGBA pixels.
type ImageSurface struct {
	img     *image.NRGBA
	opt     Options
	nearest Scaler
}

// New allocates a transparent width x height surface.
func New(width, height int, opts ...func(o *Options)) *ImageSurface {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	opt := Options{
		Scaler: KernelScaler{Interpolation: InterpolationBilinear},
	}
	for _, applyOpt := range opts {
		applyOpt(&opt)
	}
	if opt.Scaler == nil {
		opt.Scaler = KernelScaler{Interpolation: InterpolationBilinear}
	}

	return &ImageSurface{
		img:     image.NewNRGBA(image.Rect(0, 0, width, height)),
		opt:     opt,
		nearest: NearestScaler(),
	}
}

// Width returns the surface width in pixels.
func (s *ImageSurface) Width() int {
	if s.img == nil {
		return 0
	}
	return s.img.Rect.Dx()
}

// Height returns the surface height in pixels.
func (s *ImageSurface) Height() int {
	if s.img == nil {
		return 0
	}
	return s.img.Rect.Dy()
}

// Bounds returns the surface rectangle.
func (s *ImageSurface) Bounds() image.Rectangle {
	if s.img == nil {
		return image.Rectangle{}
	}
	return s.img.Rect
}

// SetSmoothing toggles interpolation for subsequent scaled draws.
func (s *ImageSurface) SetSmoothing(enabled bool) {
	s.opt.Smoothing = enabled
}

// Smoothing reports whether scaled draws interpolate.
func (s *ImageSurface) Smoothing() bool {
	return s.opt.Smoothing
}

// ReadPixels copies a region into a new RGBA buffer of width*height*4 bytes.
// Parts of the region outside the surface read as transparent black.
func (s *ImageSurface) ReadPixels(x, y, width, height int) []uint8 {
	if width <= 0 || height <= 0 {
		return []uint8{}
	}
	out := make([]uint8, width*height*4)
	if s.img == nil {
		return out
	}

	region := image.Rect(x, y, x+width, y+height)
	in := region.Intersect(s.img.Rect)
	if in.Empty() {
		return out
	}

	rowSize := in.Dx() * 4
	for sy := in.Min.Y; sy < in.Max.Y; sy++ {
		src := s.img.Pix[s.img.PixOffset(in.Min.X, sy):]
		dst := out[((sy-y)*width+(in.Min.X-x))*4:]
		copy(dst[:rowSize], src[:rowSize])
	}

	return out
}

// WritePixels stores a width x height RGBA buffer with its top-left corner at (x, y).
// Pixels falling outside the surface are dropped.
func (s *ImageSurface) WritePixels(pix []uint8, width, height, x, y int) error {
	if s.img == nil {
		return ErrClosed
	}
	if width < 0 || height < 0 || len(pix) != width*height*4 {
		return ErrBufferSize
	}

	region := image.Rect(x, y, x+width, y+height)
	in := region.Intersect(s.img.Rect)
	if in.Empty() {
		return nil
	}

	rowSize := in.Dx() * 4
	for dy := in.Min.Y; dy < in.Max.Y; dy++ {
		src := pix[((dy-y)*width+(in.Min.X-x))*4:]
		dst := s.img.Pix[s.img.PixOffset(in.Min.X, dy):]
		copy(dst[:rowSize], src[:rowSize])
	}

	return nil
}

// DrawImage draws img scaled to fill dst.
func (s *ImageSurface) DrawImage(img image.Image, dst image.Rectangle) {
	if s.img == nil || img == nil || dst.Empty() {
		return
	}
	sr := img.Bounds()
	if sr.Empty() {
		return
	}
	if sr.Size() == dst.Size() {
		if n, ok := img.(*image.NRGBA); ok {
			copyNRGBA(s.img, dst, n, sr.Min)
			return
		}
		draw.Draw(s.img, dst, img, sr.Min, draw.Src)
		return
	}
	s.scaler().Scale(s.img, dst, img, sr)
}

// BlitScaled draws the src region of the surface scaled into dst on the same surface.
// The source region is copied before drawing, so overlapping rectangles are fine.
func (s *ImageSurface) BlitScaled(src, dst image.Rectangle) {
	if s.img == nil {
		return
	}
	src = src.Intersect(s.img.Rect)
	if src.Empty() || dst.Empty() {
		return
	}

	snapshot := image.NewNRGBA(image.Rect(0, 0, src.Dx(), src.Dy()))
	copyNRGBA(snapshot, snapshot.Rect, s.img, src.Min)

	if src.Size() == dst.Size() {
		copyNRGBA(s.img, dst, snapshot, image.Point{})
		return
	}
	s.scaler().Scale(s.img, dst, snapshot, snapshot.Rect)
}

// Image returns an independent copy of the surface contents.
func (s *ImageSurface) Image() (image.Image, error) {
	if s.img == nil {
		return nil, ErrClosed
	}
	out := image.NewNRGBA(s.img.Rect)
	copy(out.Pix, s.img.Pix)
	return out, nil
}

// Close releases the pixel store. Close is idempotent.
func (s *ImageSurface) Close() error {
	s.img = nil
	return nil
}

// copyNRGBA copies pixels without color model conversion, so low-alpha
// samples survive unchanged. dr is clipped to dst.
func copyNRGBA(dst *image.NRGBA, dr image.Rectangle, src *image.NRGBA, sp image.Point) {
	in := dr.Intersect(dst.Rect)
	if in.Empty() {
		return
	}
	sp = sp.Add(in.Min.Sub(dr.Min))
	sr := image.Rectangle{Min: sp, Max: sp.Add(in.Size())}.Intersect(src.Rect)
	if sr.Empty() {
		return
	}
	rowSize := sr.Dx() * 4
	for y := 0; y < sr.Dy(); y++ {
		from := src.Pix[src.PixOffset(sr.Min.X, sr.Min.Y+y):]
		to := dst.Pix[dst.PixOffset(in.Min.X, in.Min.Y+y):]
		copy(to[:rowSize], from[:rowSize])
	}
}

func (s *ImageSurface) scaler() Scaler {
	if s.opt.Smoothing {
		return s.opt.Scaler
	}
	return s.nearest
}
