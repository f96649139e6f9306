// Package imgfilter provides per-pixel image filters over raw RGBA pixel buffers.
//
// Filters are plain functions from a PixelBuffer to a new PixelBuffer and never touch
// their input. Moving images in and out of buffers goes through a Surface, a small 2D
// drawing abstraction with a pure-Go implementation in the surface package.
package imgfilter
