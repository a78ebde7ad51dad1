package renderer

import "github.com/ByLCY/dotqr/layout"

// Canonical 为全尺寸的标准渲染结果，各输出分辨率均由它派生。
type Canonical interface {
	// AspectRatio 返回高宽比（高 / 宽）。
	AspectRatio() float64
}

// Renderer 将布局结果渲染为类型 T 的标准产物，例如像素缓冲或 SVG 文档。
type Renderer[T Canonical] interface {
	Render(result *layout.Result) (T, error)
}
