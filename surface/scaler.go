package surface

import (
	"fmt"
	"image"
	"strings"

	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
)

// Scaler draws the sr region of src scaled into the dr region of dst.
// Parts of dr outside dst are clipped.
type Scaler interface {
	Scale(dst *image.NRGBA, dr image.Rectangle, src image.Image, sr image.Rectangle)
}

// NearestScaler returns the scaler used while smoothing is disabled.
// It copies whole samples, so no color conversion happens for translucent pixels.
func NearestScaler() Scaler {
	return KernelScaler{Interpolation: InterpolationNearest}
}

// DrawScaler scales with a golang.org/x/image/draw interpolator.
type DrawScaler struct {
	Interpolator draw.Interpolator
}

// Scale implements Scaler.
func (d DrawScaler) Scale(dst *image.NRGBA, dr image.Rectangle, src image.Image, sr image.Rectangle) {
	interp := d.Interpolator
	if interp == nil {
		interp = draw.NearestNeighbor
	}
	interp.Scale(dst, dr, src, sr, draw.Src, nil)
}

// ResizeScaler scales with github.com/nfnt/resize.
type ResizeScaler struct {
	Func resize.InterpolationFunction
}

// Scale implements Scaler.
func (r ResizeScaler) Scale(dst *image.NRGBA, dr image.Rectangle, src image.Image, sr image.Rectangle) {
	if dr.Empty() || sr.Empty() {
		return
	}
	resized := resize.Resize(uint(dr.Dx()), uint(dr.Dy()), subImage(src, sr), r.Func)
	draw.Draw(dst, dr, resized, resized.Bounds().Min, draw.Src)
}

func subImage(img image.Image, r image.Rectangle) image.Image {
	if r == img.Bounds() {
		return img
	}
	if si, ok := img.(interface {
		SubImage(r image.Rectangle) image.Image
	}); ok {
		return si.SubImage(r)
	}
	out := image.NewNRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(out, out.Rect, img, r.Min, draw.Src)
	return out
}

// ScalerByName resolves a scaler name of the form "<backend>-<interpolation>".
//
// Backends are "kernel" (built-in resampler, any Interpolation name), "xdraw"
// (nearest, approx-bilinear, bilinear, catmullrom) and "nfnt" (any Interpolation
// name). A bare interpolation name selects the kernel backend.
func ScalerByName(name string) (Scaler, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	backend, interp, found := strings.Cut(name, "-")
	if !found {
		backend, interp = "kernel", name
	}

	switch backend {
	case "kernel":
		i, err := ParseInterpolation(interp)
		if err != nil {
			return nil, err
		}
		return KernelScaler{Interpolation: i}, nil
	case "xdraw":
		switch interp {
		case "nearest":
			return DrawScaler{Interpolator: draw.NearestNeighbor}, nil
		case "approx-bilinear":
			return DrawScaler{Interpolator: draw.ApproxBiLinear}, nil
		case "bilinear":
			return DrawScaler{Interpolator: draw.BiLinear}, nil
		case "catmullrom":
			return DrawScaler{Interpolator: draw.CatmullRom}, nil
		}
	case "nfnt":
		i, err := ParseInterpolation(interp)
		if err != nil {
			return nil, err
		}
		return ResizeScaler{Func: i.resizeFunc()}, nil
	}

	return nil, fmt.Errorf("surface: unknown scaler %q", name)
}
