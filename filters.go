package imgfilter

import "math"

const opaque = 255

// ThresholdOptions controls Threshold.
type ThresholdOptions struct {
	// Threshold is the luma cut-off in [0, 255].
	Threshold float64
	// Light is written for pixels at or above Threshold.
	Light float64
	// Dark is written for pixels below Threshold.
	Dark float64
}

// DefaultThresholdOptions returns the default threshold configuration.
func DefaultThresholdOptions() ThresholdOptions {
	return ThresholdOptions{
		Threshold: 127,
		Light:     191,
		Dark:      63,
	}
}

// Grayscale replaces every channel with BrightnessLuma.
func Grayscale(buf PixelBuffer) PixelBuffer {
	return MapPixels(buf, func(r, g, b, _ float64) RGBA {
		luma := BrightnessLuma(r, g, b)
		return RGBA{R: luma, G: luma, B: luma, A: opaque}
	})
}

// Threshold maps pixels to one of two gray levels depending on their luma.
func Threshold(buf PixelBuffer, opts ...func(o *ThresholdOptions)) PixelBuffer {
	opt := DefaultThresholdOptions()
	for _, applyOpt := range opts {
		applyOpt(&opt)
	}

	return MapPixels(buf, func(r, g, b, _ float64) RGBA {
		v := opt.Light
		if BrightnessLuma(r, g, b) < opt.Threshold {
			v = opt.Dark
		}
		return RGBA{R: v, G: v, B: v, A: opaque}
	})
}

// Brightness adds delta, usually in [-255, 255], to every channel.
func Brightness(buf PixelBuffer, delta float64) PixelBuffer {
	return MapPixels(buf, func(r, g, b, _ float64) RGBA {
		return RGBA{R: Clamp(r + delta), G: Clamp(g + delta), B: Clamp(b + delta), A: opaque}
	})
}

// Contrast stretches channels around the buffer's mean brightness.
// Beta is in [-255, 255]; 0 leaves colors unchanged.
func Contrast(buf PixelBuffer, beta float64) PixelBuffer {
	mean := float64(AverageStats(buf, false).Mean)
	alpha := ContrastAlpha(beta)

	return MapPixels(buf, func(r, g, b, _ float64) RGBA {
		return RGBA{
			R: Clamp(alpha*(r-mean) + mean),
			G: Clamp(alpha*(g-mean) + mean),
			B: Clamp(alpha*(b-mean) + mean),
			A: opaque,
		}
	})
}

// Saturation stretches channels around each pixel's own channel mean.
// Beta is in [-255, 255]; 0 leaves colors unchanged, -255 removes color.
func Saturation(buf PixelBuffer, beta float64) PixelBuffer {
	alpha := ContrastAlpha(beta)

	return MapPixels(buf, func(r, g, b, _ float64) RGBA {
		m := (r + g + b) / 3
		return RGBA{
			R: Clamp(alpha*(r-m) + m),
			G: Clamp(alpha*(g-m) + m),
			B: Clamp(alpha*(b-m) + m),
			A: opaque,
		}
	})
}

// Gamma applies 255 * (c/255)^gamma to every channel. Gamma should be positive.
func Gamma(buf PixelBuffer, gamma float64) PixelBuffer {
	return MapPixels(buf, func(r, g, b, _ float64) RGBA {
		return RGBA{
			R: 255 * math.Pow(r/255, gamma),
			G: 255 * math.Pow(g/255, gamma),
			B: 255 * math.Pow(b/255, gamma),
			A: opaque,
		}
	})
}
