package surface

import (
	"fmt"
	"image"
	"math"
	"sync"

	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
)

// Interpolation selects the resampling kernel.
type Interpolation int

const (
	// InterpolationNearest is nearest-neighbor sampling.
	InterpolationNearest Interpolation = iota
	// InterpolationBilinear is linear sampling.
	InterpolationBilinear
	// InterpolationBicubic is cubic sampling.
	InterpolationBicubic
	// InterpolationMitchellNetravali is Mitchell-Netravali sampling.
	InterpolationMitchellNetravali
	// InterpolationLanczos2 is Lanczos sampling with a=2.
	InterpolationLanczos2
	// InterpolationLanczos3 is Lanczos sampling with a=3.
	InterpolationLanczos3
)

var interpolationNames = map[Interpolation]string{
	InterpolationNearest:           "nearest",
	InterpolationBilinear:          "bilinear",
	InterpolationBicubic:           "bicubic",
	InterpolationMitchellNetravali: "mitchell",
	InterpolationLanczos2:          "lanczos2",
	InterpolationLanczos3:          "lanczos3",
}

func (i Interpolation) String() string {
	if n, ok := interpolationNames[i]; ok {
		return n
	}
	return fmt.Sprintf("Interpolation(%d)", int(i))
}

// ParseInterpolation resolves an interpolation by its String name.
func ParseInterpolation(name string) (Interpolation, error) {
	for i, n := range interpolationNames {
		if n == name {
			return i, nil
		}
	}
	return InterpolationNearest, fmt.Errorf("surface: unknown interpolation %q", name)
}

func (i Interpolation) resizeFunc() resize.InterpolationFunction {
	switch i {
	case InterpolationBilinear:
		return resize.Bilinear
	case InterpolationBicubic:
		return resize.Bicubic
	case InterpolationMitchellNetravali:
		return resize.MitchellNetravali
	case InterpolationLanczos2:
		return resize.Lanczos2
	case InterpolationLanczos3:
		return resize.Lanczos3
	default:
		return resize.NearestNeighbor
	}
}

// KernelScaler is a separable two-pass resampler.
type KernelScaler struct {
	Interpolation Interpolation
}

// Scale implements Scaler.
func (k KernelScaler) Scale(dst *image.NRGBA, dr image.Rectangle, src image.Image, sr image.Rectangle) {
	sr = sr.Intersect(src.Bounds())
	if dr.Empty() || sr.Empty() {
		return
	}

	pix, stride := nrgbaPix(src, sr)
	srcW, srcH := sr.Dx(), sr.Dy()
	dstW, dstH := dr.Dx(), dr.Dy()

	var out []uint8
	if k.Interpolation == InterpolationNearest {
		out = nearestRGBA8(pix, srcW, srcH, stride, dstW, dstH)
	} else {
		out = resampleRGBA8(pix, srcW, srcH, stride, dstW, dstH, kernelFor(k.Interpolation))
	}

	copyClipped(dst, dr, out)
}

// kernel is a symmetric filter that is zero outside [-support, support].
type kernel struct {
	interp  Interpolation
	support float64
	at      func(x float64) float64
}

// bcSpline builds a Mitchell-Netravali family cubic: B=0, C=0.5 is
// Catmull-Rom, B=C=1/3 is the Mitchell-Netravali recommendation.
func bcSpline(b, c float64) func(float64) float64 {
	p0, p2, p3 := (6-2*b)/6, (-18+12*b+6*c)/6, (12-9*b-6*c)/6
	q0, q1, q2, q3 := (8*b+24*c)/6, (-12*b-48*c)/6, (6*b+30*c)/6, (-b-6*c)/6
	return func(x float64) float64 {
		x = math.Abs(x)
		switch {
		case x < 1:
			return p0 + x*x*(p2+x*p3)
		case x < 2:
			return q0 + x*(q1+x*(q2+x*q3))
		default:
			return 0
		}
	}
}

func lanczos(a float64) func(float64) float64 {
	return func(x float64) float64 {
		if x <= -a || x >= a {
			return 0
		}
		return sinc(x) * sinc(x/a)
	}
}

func triangle(x float64) float64 {
	return math.Max(0, 1-math.Abs(x))
}

func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	x *= math.Pi
	return math.Sin(x) / x
}

var kernels = map[Interpolation]kernel{
	InterpolationBilinear:          {InterpolationBilinear, 1, triangle},
	InterpolationBicubic:           {InterpolationBicubic, 2, bcSpline(0, 0.5)},
	InterpolationMitchellNetravali: {InterpolationMitchellNetravali, 2, bcSpline(1.0/3, 1.0/3)},
	InterpolationLanczos2:          {InterpolationLanczos2, 2, lanczos(2)},
	InterpolationLanczos3:          {InterpolationLanczos3, 3, lanczos(3)},
}

func kernelFor(interp Interpolation) kernel {
	if k, ok := kernels[interp]; ok {
		return k
	}
	return kernels[InterpolationBilinear]
}

// weights maps every destination sample of one axis to taps source
// samples. Indexes are already clamped to the source edge.
type weights struct {
	taps   int
	index  []int
	coeffs []float32
}

type weightsKey struct {
	src, dst int
	interp   Interpolation
}

var weightsCache sync.Map

// nrgbaPix returns the pixels of region r as non-premultiplied RGBA rows.
func nrgbaPix(img image.Image, r image.Rectangle) ([]uint8, int) {
	if n, ok := img.(*image.NRGBA); ok {
		return n.Pix[n.PixOffset(r.Min.X, r.Min.Y):], n.Stride
	}
	tmp := image.NewNRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(tmp, tmp.Rect, img, r.Min, draw.Src)
	return tmp.Pix, tmp.Stride
}

func nearestRGBA8(src []uint8, srcW, srcH, srcStride, dstW, dstH int) []uint8 {
	out := make([]uint8, dstW*dstH*4)
	for y := 0; y < dstH; y++ {
		sy := y * srcH / dstH
		row := src[sy*srcStride:]
		for x := 0; x < dstW; x++ {
			sx := x * srcW / dstW
			copy(out[(y*dstW+x)*4:(y*dstW+x)*4+4], row[sx*4:sx*4+4])
		}
	}
	return out
}

func resampleRGBA8(src []uint8, srcW, srcH, srcStride, dstW, dstH int, k kernel) []uint8 {
	wx := axisWeights(srcW, dstW, k)
	wy := axisWeights(srcH, dstH, k)

	// Horizontal pass: srcH rows of dstW pixels.
	temp := make([]float32, dstW*srcH*4)
	for y := 0; y < srcH; y++ {
		row := src[y*srcStride:]
		for x := 0; x < dstW; x++ {
			var acc [4]float32
			for i := x * wx.taps; i < (x+1)*wx.taps; i++ {
				px := row[wx.index[i]*4:]
				w := wx.coeffs[i]
				for c := range acc {
					acc[c] += float32(px[c]) * w
				}
			}
			copy(temp[(y*dstW+x)*4:], acc[:])
		}
	}

	out := make([]uint8, dstW*dstH*4)
	for y := 0; y < dstH; y++ {
		for x := 0; x < dstW; x++ {
			var acc [4]float32
			for i := y * wy.taps; i < (y+1)*wy.taps; i++ {
				px := temp[(wy.index[i]*dstW+x)*4:]
				w := wy.coeffs[i]
				for c := range acc {
					acc[c] += px[c] * w
				}
			}
			o := out[(y*dstW+x)*4:]
			for c, v := range acc {
				o[c] = toByte(v)
			}
		}
	}

	return out
}

// axisWeights samples k at every destination pixel center mapped back to
// the source axis. When downscaling the kernel is stretched by the scale
// so every source sample contributes.
func axisWeights(src, dst int, k kernel) weights {
	key := weightsKey{src: src, dst: dst, interp: k.interp}
	if cached, ok := weightsCache.Load(key); ok {
		return cached.(weights)
	}

	scale := float64(src) / float64(dst)
	stretch := math.Max(scale, 1)
	taps := int(2 * k.support * math.Ceil(stretch))

	w := weights{
		taps:   taps,
		index:  make([]int, dst*taps),
		coeffs: make([]float32, dst*taps),
	}
	for d := 0; d < dst; d++ {
		center := scale*(float64(d)+0.5) - 0.5
		first := int(center) - taps/2 + 1
		row := d * taps

		var sum float64
		for i := 0; i < taps; i++ {
			v := k.at((center - float64(first+i)) / stretch)
			w.index[row+i] = clampIndex(first+i, src)
			w.coeffs[row+i] = float32(v)
			sum += v
		}
		if sum != 0 {
			for i := row; i < row+taps; i++ {
				w.coeffs[i] = float32(float64(w.coeffs[i]) / sum)
			}
		}
	}

	weightsCache.Store(key, w)
	return w
}

// copyClipped stores a dr.Dx() x dr.Dy() RGBA buffer into dst at dr.
func copyClipped(dst *image.NRGBA, dr image.Rectangle, pix []uint8) {
	in := dr.Intersect(dst.Rect)
	if in.Empty() {
		return
	}
	w := dr.Dx()
	rowSize := in.Dx() * 4
	for y := in.Min.Y; y < in.Max.Y; y++ {
		from := pix[((y-dr.Min.Y)*w+(in.Min.X-dr.Min.X))*4:]
		to := dst.Pix[dst.PixOffset(in.Min.X, y):]
		copy(to[:rowSize], from[:rowSize])
	}
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func toByte(v float32) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(255, float64(v)))))
}
