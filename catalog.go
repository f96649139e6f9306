package imgfilter

import "sort"

// Filter transforms a pixel buffer into a new one.
type Filter func(buf PixelBuffer) PixelBuffer

// IdentityFilter returns a copy of the buffer.
func IdentityFilter() Filter {
	return func(buf PixelBuffer) PixelBuffer { return buf.Clone() }
}

// GrayscaleFilter binds Grayscale.
func GrayscaleFilter() Filter {
	return Grayscale
}

// ThresholdFilter binds Threshold with the given options.
func ThresholdFilter(opts ...func(o *ThresholdOptions)) Filter {
	return func(buf PixelBuffer) PixelBuffer { return Threshold(buf, opts...) }
}

// BrightnessFilter binds Brightness with delta.
func BrightnessFilter(delta float64) Filter {
	return func(buf PixelBuffer) PixelBuffer { return Brightness(buf, delta) }
}

// ContrastFilter binds Contrast with beta.
func ContrastFilter(beta float64) Filter {
	return func(buf PixelBuffer) PixelBuffer { return Contrast(buf, beta) }
}

// SaturationFilter binds Saturation with beta.
func SaturationFilter(beta float64) Filter {
	return func(buf PixelBuffer) PixelBuffer { return Saturation(buf, beta) }
}

// GammaFilter binds Gamma with gamma.
func GammaFilter(gamma float64) Filter {
	return func(buf PixelBuffer) PixelBuffer { return Gamma(buf, gamma) }
}

// Params carries the numeric parameters recognized by the named filters.
// Fields irrelevant to a filter are ignored.
type Params struct {
	Threshold ThresholdOptions
	Delta     float64
	Beta      float64
	Gamma     float64
}

// DefaultParams returns the default parameter set of every named filter.
func DefaultParams() Params {
	return Params{
		Threshold: DefaultThresholdOptions(),
		Gamma:     1,
	}
}

var catalog = map[string]func(p Params) Filter{
	"identity":  func(Params) Filter { return IdentityFilter() },
	"grayscale": func(Params) Filter { return GrayscaleFilter() },
	"threshold": func(p Params) Filter {
		return ThresholdFilter(func(o *ThresholdOptions) { *o = p.Threshold })
	},
	"brightness": func(p Params) Filter { return BrightnessFilter(p.Delta) },
	"contrast":   func(p Params) Filter { return ContrastFilter(p.Beta) },
	"saturation": func(p Params) Filter { return SaturationFilter(p.Beta) },
	"gamma":      func(p Params) Filter { return GammaFilter(p.Gamma) },
}

// LookupFilter returns the per-pixel filter registered under name bound to p.
// Pixelate is not part of the catalog since it needs a Surface.
func LookupFilter(name string, p Params) (Filter, bool) {
	mk, ok := catalog[name]
	if !ok {
		return nil, false
	}
	return mk(p), true
}

// FilterNames lists the catalog in alphabetical order.
func FilterNames() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
