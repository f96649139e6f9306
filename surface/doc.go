// Package surface implements a software 2D drawing surface over an *image.NRGBA.
//
// A surface supports the handful of raster operations the filters need: reading and
// writing raw RGBA regions, drawing external images scaled into a rectangle, and
// scaled blits of the surface onto itself. Scaling is pluggable through Scaler; the
// package ships a separable kernel resampler, golang.org/x/image/draw interpolators
// and github.com/nfnt/resize.
//
// Surfaces are not safe for concurrent use.
package surface
