package rasterrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"sync"
	"unicode/utf8"

	"github.com/nfnt/resize"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"

	"github.com/ByLCY/dotqr/fonts"
	"github.com/ByLCY/dotqr/layout"
	"github.com/ByLCY/dotqr/renderer"
	"github.com/ByLCY/dotqr/style"
)

// Renderer 基于 github.com/tdewolff/canvas 绘制像素布局，并按画布 1mm 对应 1 像素栅格化。
type Renderer struct {
	boldFont    string
	regularFont string

	fontMu sync.Mutex
	family *canvas.FontFamily
}

var (
	_ renderer.Renderer[*Image] = (*Renderer)(nil)
	_ layout.Typesetter         = (*Renderer)(nil)
)

// Options 为栅格渲染器的配置。
type Options struct {
	// BoldFont 与 RegularFont 为 fonts 包中的内置字体名。
	BoldFont    string
	RegularFont string
}

// Image 为标准栅格渲染结果。
type Image struct {
	*image.RGBA
}

func (img *Image) Width() int  { return img.Bounds().Dx() }
func (img *Image) Height() int { return img.Bounds().Dy() }

// AspectRatio 返回像素高宽比。
func (img *Image) AspectRatio() float64 {
	if img == nil || img.RGBA == nil || img.Width() == 0 {
		return 1
	}
	return float64(img.Height()) / float64(img.Width())
}

// NewRenderer 创建使用内置 Go 字体的渲染器。
func NewRenderer() *Renderer { return NewRendererWithOptions(Options{}) }

// NewRendererWithOptions 按指定字体创建渲染器。
func NewRendererWithOptions(opts Options) *Renderer {
	r := &Renderer{boldFont: opts.BoldFont, regularFont: opts.RegularFont}
	if r.boldFont == "" {
		r.boldFont = "gobold"
	}
	if r.regularFont == "" {
		r.regularFont = "goregular"
	}
	return r
}

// Render 在不透明白色画布上按顺序绘制图元。
func (r *Renderer) Render(result *layout.Result) (*Image, error) {
	if result == nil {
		return nil, fmt.Errorf("raster: 布局结果为空")
	}
	if result.Unit != layout.UnitPixel {
		return nil, fmt.Errorf("raster: 布局单位必须为 px，当前为 %s", layout.UnitToString(result.Unit))
	}
	if result.Width <= 0 || result.Height <= 0 {
		return nil, fmt.Errorf("raster: 画布尺寸无效 %gx%g", result.Width, result.Height)
	}

	c := canvas.New(result.Width, result.Height)
	ctx := canvas.NewContext(c)
	ctx.SetStrokeColor(color.RGBA{0, 0, 0, 0})
	ctx.SetFillColor(canvas.White)
	ctx.DrawPath(0, 0, canvas.Rectangle(result.Width, result.Height))

	d := &drawer{r: r, ctx: ctx, height: result.Height}
	for i, p := range result.Primitives {
		if err := d.draw(p); err != nil {
			return nil, fmt.Errorf("raster: 第 %d 个图元 (%s) 绘制失败: %w", i, p.Kind, err)
		}
	}
	return &Image{RGBA: rasterizer.Draw(c, canvas.DPMM(1.0), canvas.DefaultColorSpace)}, nil
}

// LayoutLines 以粗体字体的真实度量实现 layout.Typesetter，fontSize 与 maxWidth 单位为像素。
func (r *Renderer) LayoutLines(content string, maxWidth, fontSize float64) []string {
	face, err := r.fontFace(fontSize, true, style.Black)
	if err != nil {
		// 无法取得字体度量时，按平均字宽 0.6em 估算
		return layout.WrapURL(content, func(s string) float64 {
			return float64(utf8.RuneCountInString(s)) * fontSize * 0.6
		}, maxWidth)
	}
	return layout.WrapURL(content, face.TextWidth, maxWidth)
}

// drawer 将布局坐标（原点左上、y 向下）映射到画布坐标（原点左下、y 向上）。
type drawer struct {
	r      *Renderer
	ctx    *canvas.Context
	height float64
}

func (d *drawer) flipY(y, h float64) float64 { return d.height - y - h }

func (d *drawer) draw(p layout.Primitive) error {
	switch p.Kind {
	case layout.KindCircle:
		c := p.Circle
		d.ctx.SetFillColor(c.Color.ToRGBA())
		d.ctx.DrawPath(c.CX, d.flipY(c.CY, 0), canvas.Circle(c.R))
	case layout.KindRect:
		rc := p.Rect
		d.ctx.SetFillColor(rc.Color.ToRGBA())
		d.ctx.DrawPath(rc.X, d.flipY(rc.Y, rc.Height), canvas.RoundedRectangle(rc.Width, rc.Height, rc.Radius))
	case layout.KindImage:
		return d.drawImage(p.Image)
	case layout.KindText:
		return d.drawText(p.Text)
	default:
		return fmt.Errorf("未知图元类型 %q", p.Kind)
	}
	return nil
}

// drawImage 将解码后的图片缩放到目标框大小，并按 1 源像素对应 1 画布像素放置。
func (d *drawer) drawImage(box *layout.ImageBox) error {
	if len(box.Data) == 0 {
		return nil
	}
	src, _, err := image.Decode(bytes.NewReader(box.Data))
	if err != nil {
		return fmt.Errorf("解码图片 %s 失败: %w", box.Source, err)
	}
	w, h := uint(box.Width), uint(box.Height)
	if w == 0 || h == 0 {
		return nil
	}
	scaled := resize.Resize(w, h, src, resize.Lanczos3)
	d.ctx.DrawImage(box.X, d.flipY(box.Y, float64(h)), scaled, canvas.DPMM(1.0))
	return nil
}

func (d *drawer) drawText(tr *layout.TextRun) error {
	face, err := d.r.fontFace(tr.FontSize, tr.Bold, tr.Color)
	if err != nil {
		return err
	}
	align := canvas.Left
	switch tr.Align {
	case layout.AlignCenter:
		align = canvas.Center
	case layout.AlignRight:
		align = canvas.Right
	}
	d.ctx.DrawText(tr.X, d.flipY(tr.Y, 0), canvas.NewTextLine(face, tr.Content, align))
	return nil
}

// fontFace 返回字号为 sizePx 像素的字体。画布上 1mm 对应 1 像素，字号需经 mm→pt 换算。
func (r *Renderer) fontFace(sizePx float64, bold bool, col style.Color) (*canvas.FontFace, error) {
	family, err := r.ensureFamily()
	if err != nil {
		return nil, err
	}
	weight := canvas.FontRegular
	if bold {
		weight = canvas.FontBold
	}
	return family.Face(layout.PxToPt(sizePx), col.ToRGBA(), weight, canvas.FontNormal), nil
}

func (r *Renderer) ensureFamily() (*canvas.FontFamily, error) {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()
	if r.family != nil {
		return r.family, nil
	}
	family := canvas.NewFontFamily("dotqr-caption")
	for _, f := range []struct {
		name  string
		style canvas.FontStyle
	}{
		{r.regularFont, canvas.FontRegular},
		{r.boldFont, canvas.FontBold},
	} {
		data, err := fonts.Load(f.name)
		if err != nil {
			return nil, err
		}
		if err := family.LoadFont(data, 0, f.style); err != nil {
			return nil, fmt.Errorf("加载字体 %s 失败: %w", f.name, err)
		}
	}
	r.family = family
	return family, nil
}
