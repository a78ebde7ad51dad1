package vectorrenderer

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ByLCY/dotqr/layout"
	"github.com/ByLCY/dotqr/renderer"
)

// CharWidthRatio 为假定的平均字宽（单位 em），用于在没有字体度量时估算文字宽度。
const CharWidthRatio = 0.6

const fontFamily = "Arial, sans-serif"

// Renderer 将模块单位的布局输出为自包含的 SVG 文档。
type Renderer struct{}

var (
	_ renderer.Renderer[*Document] = (*Renderer)(nil)
	_ layout.Typesetter            = (*Renderer)(nil)
)

// Document 为标准矢量渲染结果。
type Document struct {
	Markup string
	Width  float64
	Height float64
}

// AspectRatio 返回以模块计的高宽比。
func (d *Document) AspectRatio() float64 {
	if d == nil || d.Width <= 0 {
		return 1
	}
	return d.Height / d.Width
}

// NewRenderer 创建矢量渲染器。
func NewRenderer() *Renderer { return &Renderer{} }

// Render 输出 <svg>，其 width、height 与 viewBox 均等于模块单位画布，
// 先绘制白色背景，再按顺序输出各图元。
func (r *Renderer) Render(result *layout.Result) (*Document, error) {
	if result == nil {
		return nil, fmt.Errorf("vector: 布局结果为空")
	}
	if result.Unit != layout.UnitModule {
		return nil, fmt.Errorf("vector: 布局单位必须为 module，当前为 %s", layout.UnitToString(result.Unit))
	}
	if result.Width <= 0 || result.Height <= 0 {
		return nil, fmt.Errorf("vector: 画布尺寸无效 %gx%g", result.Width, result.Height)
	}

	w, h := num(result.Width), num(result.Height)
	var sb strings.Builder
	sb.Grow(64 * (len(result.Primitives) + 4))
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="%s" height="%s" viewBox="0 0 %s %s">`, w, h, w, h)
	fmt.Fprintf(&sb, `<rect width="%s" height="%s" fill="white"/>`, w, h)
	for i, p := range result.Primitives {
		if err := writePrimitive(&sb, p); err != nil {
			return nil, fmt.Errorf("vector: 第 %d 个图元 (%s) 输出失败: %w", i, p.Kind, err)
		}
	}
	sb.WriteString("</svg>")

	return &Document{Markup: sb.String(), Width: result.Width, Height: result.Height}, nil
}

// LayoutLines 不依赖字体度量实现 layout.Typesetter：每个字符计为一个单位，
// 每行容量为 maxWidth / (fontSize * CharWidthRatio)。
func (r *Renderer) LayoutLines(content string, maxWidth, fontSize float64) []string {
	charsPerLine := maxWidth / (fontSize * CharWidthRatio)
	return layout.WrapURL(content, runeCount, charsPerLine)
}

func runeCount(s string) float64 { return float64(utf8.RuneCountInString(s)) }

func writePrimitive(sb *strings.Builder, p layout.Primitive) error {
	switch p.Kind {
	case layout.KindCircle:
		c := p.Circle
		fmt.Fprintf(sb, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s"/>`, c.CX, c.CY, c.R, c.Color.Hex())
	case layout.KindRect:
		rc := p.Rect
		fmt.Fprintf(sb, `<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f"`, rc.X, rc.Y, rc.Width, rc.Height)
		if rc.Radius > 0 {
			fmt.Fprintf(sb, ` rx="%.2f" ry="%.2f"`, rc.Radius, rc.Radius)
		}
		fmt.Fprintf(sb, ` fill="%s"/>`, rc.Color.Hex())
	case layout.KindImage:
		img := p.Image
		if len(img.Data) == 0 {
			return nil
		}
		fmt.Fprintf(sb, `<image x="%.2f" y="%.2f" width="%.2f" height="%.2f" href="%s" preserveAspectRatio="xMidYMid meet"/>`,
			img.X, img.Y, img.Width, img.Height, DataURI(img.MIME, img.Data))
	case layout.KindText:
		t := p.Text
		fmt.Fprintf(sb, `<text x="%.2f" y="%.2f" font-family="%s" font-size="%.2f"`, t.X, t.Y, fontFamily, t.FontSize)
		if t.Bold {
			sb.WriteString(` font-weight="bold"`)
		}
		fmt.Fprintf(sb, ` fill="%s" text-anchor="%s">%s</text>`, t.Color.Hex(), anchor(t.Align), EscapeText(t.Content))
	default:
		return fmt.Errorf("未知图元类型 %q", p.Kind)
	}
	return nil
}

func anchor(a layout.Align) string {
	switch a {
	case layout.AlignCenter:
		return "middle"
	case layout.AlignRight:
		return "end"
	default:
		return "start"
	}
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// EscapeText 转义 XML 的五个保留字符。
func EscapeText(s string) string { return xmlEscaper.Replace(s) }

// DataURI 将数据内联为 base64 data URI，mime 为空时按 image/png 处理。
func DataURI(mime string, data []byte) string {
	if mime == "" {
		mime = "image/png"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// num 格式化根节点尺寸，不保留多余的零。
func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
