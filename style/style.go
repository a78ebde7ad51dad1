// Package style holds the fixed geometry of the dot QR style and the
// immutable configuration that the layout engine consumes.
package style

import "math"

// Options is the raw, caller-facing configuration. Zero values fall back to
// defaults during Resolve.
type Options struct {
	ModuleColor     string  `mapstructure:"module-color" json:"moduleColor"`
	EyeFrameColor   string  `mapstructure:"eye-frame-color" json:"eyeFrameColor"`
	PixelsPerModule int     `mapstructure:"pixels-per-module" json:"pixelsPerModule"`
	DotSizeFactor   float64 `mapstructure:"dot-size-factor" json:"dotSizeFactor"`
	DotSizeVariance float64 `mapstructure:"dot-size-variance" json:"dotSizeVariance"`
	BatchSeed       *int    `mapstructure:"batch-seed" json:"batchSeed,omitempty"`
	EyeMidRadius    float64 `mapstructure:"eye-frame-mid-radius" json:"eyeFrameMidRadius"`
	EyePupilRadius  float64 `mapstructure:"eye-frame-pupil-radius" json:"eyeFramePupilRadius"`
}

// Style is a resolved configuration: colors parsed, ratios clamped and
// defaults applied. Construct it with Options.Resolve.
type Style struct {
	ModuleColor     Color
	EyeFrameColor   Color
	PixelsPerModule int
	DotSizeFactor   float64
	DotSizeVariance float64
	Seed            int
	EyeMidRadius    float64
	EyePupilRadius  float64
}

// Default returns the resolved style for zero options.
func Default() Style { return Options{}.Resolve() }

// Resolve applies defaults and clamps every ratio into its valid range.
func (o Options) Resolve() Style {
	s := Style{
		ModuleColor:     ParseColor(o.ModuleColor),
		EyeFrameColor:   ParseColor(o.EyeFrameColor),
		PixelsPerModule: o.PixelsPerModule,
		DotSizeFactor:   o.DotSizeFactor,
		DotSizeVariance: Clamp(o.DotSizeVariance, 0, MaxDotSizeVariance),
		EyeMidRadius:    o.EyeMidRadius,
		EyePupilRadius:  o.EyePupilRadius,
	}
	if s.PixelsPerModule <= 0 {
		s.PixelsPerModule = DefaultPixelsPerModule
	}
	if s.DotSizeFactor <= 0 {
		s.DotSizeFactor = DefaultDotSizeFactor
	}
	s.DotSizeFactor = Clamp(s.DotSizeFactor, MinDotSizeFactor, MaxDotSizeFactor)
	if o.BatchSeed != nil {
		s.Seed = *o.BatchSeed
	}
	if s.EyeMidRadius <= 0 {
		s.EyeMidRadius = DefaultEyeMidRadiusRatio
	}
	if s.EyePupilRadius <= 0 {
		s.EyePupilRadius = DefaultEyePupilRadiusRatio
	}
	return s
}

// Clamp bounds v to [lo, hi]. NaN resolves to lo.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

// RasterFontSize is the caption font size in pixels for the given module size.
func RasterFontSize(pixelsPerModule int) float64 {
	return Clamp(float64(pixelsPerModule)*RasterFontSizeMultiplier, RasterMinFontSize, RasterMaxFontSize)
}
