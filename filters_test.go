package imgfilter

import (
	"testing"
)

var palette = PixelBuffer{
	255, 255, 255, 255,
	0, 0, 0, 255,
	10, 20, 30, 255,
	200, 100, 50, 128,
	3, 250, 90, 0,
}

func assertPixel(t *testing.T, buf PixelBuffer, i int, want [4]uint8) {
	t.Helper()
	got := [4]uint8{buf[i*4], buf[i*4+1], buf[i*4+2], buf[i*4+3]}
	if got != want {
		t.Fatalf("pixel %d: got %v, want %v", i, got, want)
	}
}

func assertOpaque(t *testing.T, buf PixelBuffer) {
	t.Helper()
	for i := 3; i < len(buf); i += 4 {
		if buf[i] != 255 {
			t.Fatalf("alpha at %d is %d", i, buf[i])
		}
	}
}

func assertSameColors(t *testing.T, got, want PixelBuffer) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length %d, want %d", len(got), len(want))
	}
	for i := 0; i < len(got); i += 4 {
		if got[i] != want[i] || got[i+1] != want[i+1] || got[i+2] != want[i+2] {
			t.Fatalf("pixel %d: got %v, want %v", i/4, got[i:i+3], want[i:i+3])
		}
	}
}

func TestGrayscale(t *testing.T) {
	out := Grayscale(palette)
	assertOpaque(t, out)
	for i := 0; i < len(out); i += 4 {
		if out[i] != out[i+1] || out[i+1] != out[i+2] {
			t.Fatalf("pixel %d not gray: %v", i/4, out[i:i+4])
		}
	}
	assertPixel(t, out, 1, [4]uint8{0, 0, 0, 255})
	assertPixel(t, out, 0, [4]uint8{173, 173, 173, 255})
}

func TestThreshold(t *testing.T) {
	out := Threshold(palette)
	assertOpaque(t, out)
	for i := 0; i < len(out); i += 4 {
		for c := 0; c < 3; c++ {
			if v := out[i+c]; v != 63 && v != 191 {
				t.Fatalf("unexpected level %d", v)
			}
		}
	}
	assertPixel(t, out, 0, [4]uint8{191, 191, 191, 255})
	assertPixel(t, out, 1, [4]uint8{63, 63, 63, 255})
	assertPixel(t, out, 2, [4]uint8{63, 63, 63, 255})
}

func TestThreshold_options(t *testing.T) {
	out := Threshold(palette, func(o *ThresholdOptions) {
		o.Threshold = 0
		o.Light = 10
	})
	for i := 0; i < 5; i++ {
		assertPixel(t, out, i, [4]uint8{10, 10, 10, 255})
	}

	out = Threshold(palette, func(o *ThresholdOptions) {
		o.Threshold = 256
		o.Dark = 1
	})
	for i := 0; i < 5; i++ {
		assertPixel(t, out, i, [4]uint8{1, 1, 1, 255})
	}
}

func TestBrightness(t *testing.T) {
	out := Brightness(palette, 0)
	assertOpaque(t, out)
	assertSameColors(t, out, palette)
	assertPixel(t, out, 2, [4]uint8{10, 20, 30, 255})

	out = Brightness(palette, 100)
	assertPixel(t, out, 0, [4]uint8{255, 255, 255, 255})
	assertPixel(t, out, 2, [4]uint8{110, 120, 130, 255})

	out = Brightness(palette, -255)
	for i := 0; i < 5; i++ {
		assertPixel(t, out, i, [4]uint8{0, 0, 0, 255})
	}
}

func TestContrast(t *testing.T) {
	out := Contrast(palette, 0)
	assertOpaque(t, out)
	assertSameColors(t, out, palette)

	bw := PixelBuffer{
		0, 0, 0, 255,
		255, 255, 255, 255,
		40, 40, 40, 255,
		200, 200, 200, 255,
	}
	out = Contrast(bw, 255)
	assertPixel(t, out, 0, [4]uint8{0, 0, 0, 255})
	assertPixel(t, out, 1, [4]uint8{255, 255, 255, 255})
	assertPixel(t, out, 2, [4]uint8{0, 0, 0, 255})
	assertPixel(t, out, 3, [4]uint8{255, 255, 255, 255})

	// Full negative contrast collapses everything to the mean.
	mean := uint8(AverageStats(bw, false).Mean)
	out = Contrast(bw, -255)
	for i := 0; i < 4; i++ {
		assertPixel(t, out, i, [4]uint8{mean, mean, mean, 255})
	}
}

func TestSaturation(t *testing.T) {
	out := Saturation(palette, 0)
	assertOpaque(t, out)
	assertSameColors(t, out, palette)

	out = Saturation(palette, -255)
	assertPixel(t, out, 2, [4]uint8{20, 20, 20, 255})
	assertPixel(t, out, 0, [4]uint8{255, 255, 255, 255})

	out = Saturation(PixelBuffer{100, 120, 140, 9}, 85)
	assertPixel(t, out, 0, [4]uint8{80, 120, 160, 255})
}

func TestGamma(t *testing.T) {
	out := Gamma(palette, 1)
	assertOpaque(t, out)
	assertSameColors(t, out, palette)

	out = Gamma(PixelBuffer{0, 255, 51, 7}, 2)
	assertPixel(t, out, 0, [4]uint8{0, 255, 10, 255})

	out = Gamma(PixelBuffer{0, 255, 64, 7}, 0.5)
	assertPixel(t, out, 0, [4]uint8{0, 255, 128, 255})
}

func TestGamma_invalid(t *testing.T) {
	// Zero raised to a negative power is +Inf, which saturates; nothing is rejected.
	out := Gamma(PixelBuffer{0, 255, 51, 7}, -1)
	assertPixel(t, out, 0, [4]uint8{255, 255, 255, 255})
}

func TestFilters_inputUntouched(t *testing.T) {
	orig := palette.Clone()
	Grayscale(palette)
	Threshold(palette)
	Brightness(palette, 40)
	Contrast(palette, 40)
	Saturation(palette, 40)
	Gamma(palette, 2.2)
	if string(orig) != string(palette) {
		t.Fatalf("input buffer modified")
	}
}
