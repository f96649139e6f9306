package surface

import (
	"image"
	"image/color"
	"math"
	"testing"
)

func allScalers(t *testing.T) map[string]Scaler {
	t.Helper()
	names := []string{
		"nearest", "bilinear", "bicubic", "mitchell", "lanczos2", "lanczos3",
		"kernel-lanczos3",
		"xdraw-nearest", "xdraw-approx-bilinear", "xdraw-bilinear", "xdraw-catmullrom",
		"nfnt-nearest", "nfnt-bilinear", "nfnt-lanczos3",
	}
	out := make(map[string]Scaler, len(names))
	for _, name := range names {
		s, err := ScalerByName(name)
		if err != nil {
			t.Fatalf("scaler %q: %v", name, err)
		}
		out[name] = s
	}
	return out
}

func TestScalers_solidColor(t *testing.T) {
	c := color.NRGBA{R: 12, G: 140, B: 250, A: 255}
	src := solid(9, 7, c)

	for name, sc := range allScalers(t) {
		for _, size := range []image.Point{{3, 2}, {20, 13}, {9, 7}} {
			dst := image.NewNRGBA(image.Rect(0, 0, size.X, size.Y))
			sc.Scale(dst, dst.Rect, src, src.Rect)
			for i := 0; i < len(dst.Pix); i += 4 {
				got := color.NRGBA{R: dst.Pix[i], G: dst.Pix[i+1], B: dst.Pix[i+2], A: dst.Pix[i+3]}
				if got != c {
					t.Fatalf("%s %v: pixel %d = %v, want %v", name, size, i/4, got, c)
				}
			}
		}
	}
}

func TestScalers_clipToDestination(t *testing.T) {
	c := color.NRGBA{R: 1, G: 2, B: 3, A: 255}
	src := solid(4, 4, c)

	for name, sc := range allScalers(t) {
		dst := image.NewNRGBA(image.Rect(0, 0, 4, 4))
		sc.Scale(dst, image.Rect(2, 2, 10, 10), src, src.Rect)
		if dst.NRGBAAt(0, 0) != (color.NRGBA{}) {
			t.Fatalf("%s: pixel outside destination written", name)
		}
		if dst.NRGBAAt(3, 3) != c {
			t.Fatalf("%s: pixel inside destination = %v", name, dst.NRGBAAt(3, 3))
		}
	}
}

func TestScalerByName_unknown(t *testing.T) {
	for _, name := range []string{"", "cubic", "xdraw-lanczos3", "gpu-nearest", "nfnt-box"} {
		if _, err := ScalerByName(name); err == nil {
			t.Fatalf("%q should not resolve", name)
		}
	}
}

func TestParseInterpolation(t *testing.T) {
	for i := InterpolationNearest; i <= InterpolationLanczos3; i++ {
		got, err := ParseInterpolation(i.String())
		if err != nil {
			t.Fatalf("parse %s: %v", i, err)
		}
		if got != i {
			t.Fatalf("parse %s: got %s", i, got)
		}
	}
	if Interpolation(42).String() != "Interpolation(42)" {
		t.Fatalf("unexpected name %s", Interpolation(42))
	}
}

func TestKernelScaler_nearestPicksSamples(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: 10, A: 255})
	src.SetNRGBA(1, 0, color.NRGBA{R: 200, A: 255})

	dst := image.NewNRGBA(image.Rect(0, 0, 4, 1))
	KernelScaler{Interpolation: InterpolationNearest}.Scale(dst, dst.Rect, src, src.Rect)

	want := []uint8{10, 10, 200, 200}
	for x, w := range want {
		if got := dst.NRGBAAt(x, 0).R; got != w {
			t.Fatalf("x=%d: got %d, want %d", x, got, w)
		}
	}
}

func TestKernels(t *testing.T) {
	for _, tc := range []struct {
		interp Interpolation
		x      float64
		want   float64
	}{
		{InterpolationBilinear, 0, 1},
		{InterpolationBilinear, 0.25, 0.75},
		{InterpolationBilinear, 1.5, 0},
		{InterpolationBicubic, 0, 1},
		{InterpolationBicubic, 0.5, 0.5625},
		{InterpolationBicubic, 1, 0},
		{InterpolationBicubic, -2, 0},
		{InterpolationMitchellNetravali, 0, 8.0 / 9},
		{InterpolationMitchellNetravali, 2, 0},
		{InterpolationLanczos2, 0, 1},
		{InterpolationLanczos2, 1, 0},
		{InterpolationLanczos3, 3, 0},
	} {
		got := kernelFor(tc.interp).at(tc.x)
		if math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("%s(%v) = %v, want %v", tc.interp, tc.x, got, tc.want)
		}
	}
}

func TestAxisWeights(t *testing.T) {
	for _, interp := range []Interpolation{InterpolationBilinear, InterpolationLanczos3} {
		for _, dims := range [][2]int{{10, 4}, {4, 10}, {7, 7}, {1, 5}} {
			src, dst := dims[0], dims[1]
			w := axisWeights(src, dst, kernelFor(interp))
			if len(w.index) != dst*w.taps || len(w.coeffs) != dst*w.taps {
				t.Fatalf("%s %dx%d: %d taps, %d indexes", interp, src, dst, w.taps, len(w.index))
			}
			for d := 0; d < dst; d++ {
				var sum float64
				for i := d * w.taps; i < (d+1)*w.taps; i++ {
					if w.index[i] < 0 || w.index[i] >= src {
						t.Fatalf("%s %d->%d: index %d out of range", interp, src, dst, w.index[i])
					}
					sum += float64(w.coeffs[i])
				}
				if math.Abs(sum-1) > 1e-5 {
					t.Fatalf("%s %d->%d: weights of %d sum to %v", interp, src, dst, d, sum)
				}
			}
		}
	}
}

func BenchmarkScalers(b *testing.B) {
	src := solid(640, 480, color.NRGBA{R: 1, G: 2, B: 3, A: 255})
	dst := image.NewNRGBA(image.Rect(0, 0, 80, 60))
	for _, name := range []string{"kernel-bilinear", "kernel-lanczos3", "xdraw-catmullrom", "nfnt-lanczos3"} {
		sc, err := ScalerByName(name)
		if err != nil {
			b.Fatal(err)
		}
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				sc.Scale(dst, dst.Rect, src, src.Rect)
			}
		})
	}
}
