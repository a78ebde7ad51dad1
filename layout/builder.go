package layout

import (
	"errors"
	"fmt"
	"math"

	"github.com/ByLCY/dotqr/style"
)

// ErrInvalidMatrix 表示模块矩阵为空或不是方阵。
var ErrInvalidMatrix = errors.New("layout: 模块矩阵必须为非空方阵")

// Build 根据二维码矩阵与已解析的样式生成有序的图元列表：
// 数据圆点、三个定位眼、可选 logo，最后是说明文字。坐标单位为 opts.Unit。
func Build(m Matrix, s style.Style, opts BuildOptions) (*Result, error) {
	if m == nil || m.Size() <= 0 {
		return nil, ErrInvalidMatrix
	}
	if s.PixelsPerModule <= 0 {
		return nil, fmt.Errorf("layout: 每模块像素数必须为正数，当前为 %d", s.PixelsPerModule)
	}
	if opts.Caption != "" && opts.Typesetter == nil {
		return nil, fmt.Errorf("layout: 说明文字 %q 缺少排版后端 Typesetter", opts.Caption)
	}

	b := newBuilder(m, s, opts)
	b.addDots()
	b.addEyes()
	b.addLogo()
	b.addCaption()
	return b.result(), nil
}

// InFinderZone 判断 n×n 矩阵中的模块 (x, y) 是否位于左上、右上或左下定位块内。
func InFinderZone(x, y, n int) bool {
	f := style.FinderSize
	switch {
	case x < f && y < f:
		return true
	case x >= n-f && y < f:
		return true
	case x < f && y >= n-f:
		return true
	default:
		return false
	}
}

type builder struct {
	m     Matrix
	n     int
	s     style.Style
	opts  BuildOptions
	scale float64 // 每个模块对应的画布单位
	body  float64 // 含静区的二维码主体边长
	h     float64
	prims []Primitive
}

func newBuilder(m Matrix, s style.Style, opts BuildOptions) *builder {
	n := m.Size()
	scale := Length(1).To(opts.Unit, s.PixelsPerModule)
	body := Length(n + 2*style.BorderModules).To(opts.Unit, s.PixelsPerModule)
	return &builder{
		m:     m,
		n:     n,
		s:     s,
		opts:  opts,
		scale: scale,
		body:  body,
		h:     body,
		prims: make([]Primitive, 0, n*n/2+16),
	}
}

func (b *builder) result() *Result {
	return &Result{
		Unit:       b.opts.Unit,
		Scale:      b.scale,
		Width:      b.body,
		Height:     b.h,
		BodySize:   b.body,
		Primitives: b.prims,
	}
}

// units 将以模块计的长度换算为当前布局单位。
func (b *builder) units(modules float64) float64 {
	return Length(modules).To(b.opts.Unit, b.s.PixelsPerModule)
}

func (b *builder) addDots() {
	for y := 0; y < b.n; y++ {
		for x := 0; x < b.n; x++ {
			if InFinderZone(x, y, b.n) || !b.m.Module(x, y) {
				continue
			}
			factor := DotFactor(b.s, y*b.n+x)
			b.prims = append(b.prims, circle(b.dot(x, y, factor)))
		}
	}
}

// dot 在模块 (x, y) 中心放置圆点。栅格直径取整像素，且至少比模块小一个像素，相邻圆点不会相接。
func (b *builder) dot(x, y int, factor float64) Circle {
	if b.opts.Unit == UnitPixel {
		ppm := b.s.PixelsPerModule
		d := max(1, min(int(float64(ppm)*factor), ppm-1))
		o := (ppm - d) / 2
		left := (style.BorderModules+x)*ppm + o
		top := (style.BorderModules+y)*ppm + o
		r := float64(d) / 2
		return Circle{CX: float64(left) + r, CY: float64(top) + r, R: r, Color: b.s.ModuleColor}
	}
	return Circle{
		CX:    float64(style.BorderModules+x) + 0.5,
		CY:    float64(style.BorderModules+y) + 0.5,
		R:     0.5 * factor,
		Color: b.s.ModuleColor,
	}
}

func (b *builder) addEyes() {
	far := style.BorderModules + b.n - style.FinderSize
	near := style.BorderModules
	for _, o := range [3][2]int{{near, near}, {far, near}, {near, far}} {
		b.addEye(float64(o[0]), float64(o[1]))
	}
}

// addEye 以模块坐标 (left, top) 为原点绘制三层同心圆角方块。
func (b *builder) addEye(left, top float64) {
	layers := []struct {
		inset, size, radius float64
		color               style.Color
	}{
		{0, style.EyeOuterSize, style.EyeOuterRadiusRatio, b.s.EyeFrameColor},
		{style.EyeMidInset, style.EyeMidSize, b.s.EyeMidRadius, style.White},
		{style.EyePupilInset, style.EyePupilSize, b.s.EyePupilRadius, b.s.EyeFrameColor},
	}
	for _, l := range layers {
		b.prims = append(b.prims, roundRect(RoundRect{
			X:      b.units(left + l.inset),
			Y:      b.units(top + l.inset),
			Width:  b.units(l.size),
			Height: b.units(l.size),
			Radius: b.units(l.radius),
			Color:  l.color,
		}))
	}
}

func (b *builder) addLogo() {
	logo := b.opts.Logo
	if logo == nil || len(logo.Data) == 0 {
		return
	}
	size := b.body * style.LogoSizeRatio
	if b.opts.Unit == UnitPixel {
		size = math.Floor(size)
	}
	pos := (b.body - size) / 2
	b.prims = append(b.prims,
		roundRect(RoundRect{
			X: pos, Y: pos, Width: size, Height: size,
			Radius: size * style.LogoCornerRadiusRatio,
			Color:  style.White,
		}),
		imageBox(ImageBox{
			X: pos, Y: pos, Width: size, Height: size,
			Source: logo.Path,
			MIME:   logo.MIME,
			Data:   logo.Data,
		}),
	)
}

// captionMetrics 为说明文字区域的尺寸，单位为画布单位。
type captionMetrics struct {
	gap, band      float64
	fontSize       float64
	maxWidth       float64
	bgPad, bgRound float64
}

func (b *builder) captionMetrics() captionMetrics {
	if b.opts.Unit == UnitPixel {
		return captionMetrics{
			gap:      b.units(style.RasterCaptionGapModules),
			band:     b.units(style.RasterCaptionBandModules),
			fontSize: style.RasterFontSize(b.s.PixelsPerModule),
			maxWidth: b.body * style.RasterCaptionMaxWidthRatio,
			bgPad:    b.units(style.RasterCaptionBgPadding),
		}
	}
	return captionMetrics{
		gap:      style.VectorCaptionGap,
		band:     style.VectorCaptionBand,
		fontSize: style.VectorFontSize,
		maxWidth: b.body * style.VectorCaptionMaxWidthRatio,
		bgPad:    style.VectorCaptionBgPadding,
		bgRound:  style.VectorCaptionBgRadius,
	}
}

func (b *builder) addCaption() {
	caption := b.opts.Caption
	if caption == "" {
		return
	}
	cm := b.captionMetrics()
	top := b.body + cm.gap
	b.h = top + cm.band

	b.prims = append(b.prims, roundRect(RoundRect{
		X:      b.body * style.CaptionBgInsetRatio,
		Y:      top - cm.bgPad,
		Width:  b.body * (1 - 2*style.CaptionBgInsetRatio),
		Height: cm.band,
		Radius: cm.bgRound,
		Color:  style.White,
	}))

	lines := b.opts.Typesetter.LayoutLines(caption, cm.maxWidth, cm.fontSize)
	if len(lines) == 0 {
		return
	}
	lineHeight := cm.fontSize * style.LineHeightMultiplier
	baseline := top + cm.band/2 + cm.fontSize/3
	if len(lines) > 1 {
		baseline = top + (cm.band-float64(len(lines))*lineHeight)/2 + cm.fontSize
	}
	for _, line := range lines {
		b.prims = append(b.prims, textRun(TextRun{
			X:        b.body / 2,
			Y:        baseline,
			Content:  line,
			FontSize: cm.fontSize,
			Align:    AlignCenter,
			Bold:     true,
			Color:    style.Black,
		}))
		baseline += lineHeight
	}
}
