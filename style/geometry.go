package style

// Geometry of the dot style. Sizes are in modules unless stated otherwise.
const (
	BorderModules = 4 // quiet zone added on every side of the matrix
	FinderSize    = 7 // side of a QR finder pattern

	EyeOuterSize  = 7
	EyeMidInset   = 1
	EyeMidSize    = 5
	EyePupilInset = 2
	EyePupilSize  = 3

	EyeOuterRadiusRatio        = 1.0
	DefaultEyeMidRadiusRatio   = 0.8
	DefaultEyePupilRadiusRatio = 0.6

	// LogoSizeRatio keeps the logo small enough for High error correction to
	// recover the modules it hides.
	LogoSizeRatio         = 0.22
	LogoCornerRadiusRatio = 0.2
)

// Dot size bounds, as a fraction of the module size.
const (
	DefaultDotSizeFactor = 0.75
	MinDotSizeFactor     = 0.65
	MaxDotSizeFactor     = 0.82
	MaxDotSizeVariance   = 0.04
)

// DefaultPixelsPerModule is the raster module size used when none is configured.
const DefaultPixelsPerModule = 30

// Raster caption metrics. Pixel values are multiples of the module size.
const (
	RasterCaptionGapModules    = 3
	RasterCaptionBandModules   = 7
	RasterFontSizeMultiplier   = 2.0
	RasterMinFontSize          = 30.0
	RasterMaxFontSize          = 60.0
	RasterCaptionMaxWidthRatio = 0.9
	RasterCaptionBgPadding     = 0.5
)

// Vector caption metrics in module units.
const (
	VectorCaptionGap           = 3.0
	VectorCaptionBand          = 6.0
	VectorFontSize             = 1.2
	VectorCaptionMaxWidthRatio = 0.85
	VectorCaptionBgPadding     = 0.5
	VectorCaptionBgRadius      = 0.3
	VectorCharWidthEstimate    = 0.6
)

// Shared caption metrics.
const (
	LineHeightMultiplier = 1.4
	CaptionBgInsetRatio  = 0.05 // background spans 5%..95% of the body width
)
