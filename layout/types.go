package layout

import "github.com/ByLCY/dotqr/style"

// 本文件定义栅格与矢量后端共用的绘制图元，调试 JSON 也使用同一结构。

// Matrix 是只读的二维码模块方阵。
type Matrix interface {
	Size() int
	Module(x, y int) bool
}

// Result 保存有序的图元列表及其画布尺寸。
type Result struct {
	Unit       Unit        `json:"unit"`
	Scale      float64     `json:"scale"` // 每个模块对应的画布单位
	Width      float64     `json:"width"`
	Height     float64     `json:"height"`
	BodySize   float64     `json:"bodySize"` // 二维码主体边长，含静区
	Primitives []Primitive `json:"primitives"`
}

// Kind 标记 Primitive 携带的具体图元。
type Kind string

const (
	KindCircle Kind = "circle"
	KindRect   Kind = "rect"
	KindImage  Kind = "image"
	KindText   Kind = "text"
)

// Primitive 为带标签的联合体，只有与 Kind 对应的字段非空。
type Primitive struct {
	Kind   Kind       `json:"kind"`
	Circle *Circle    `json:"circle,omitempty"`
	Rect   *RoundRect `json:"rect,omitempty"`
	Image  *ImageBox  `json:"image,omitempty"`
	Text   *TextRun   `json:"text,omitempty"`
}

// Circle 为实心圆。
type Circle struct {
	CX    float64     `json:"cx"`
	CY    float64     `json:"cy"`
	R     float64     `json:"r"`
	Color style.Color `json:"color"`
}

// RoundRect 为实心圆角矩形，Radius 为 0 时为直角。
type RoundRect struct {
	X      float64     `json:"x"`
	Y      float64     `json:"y"`
	Width  float64     `json:"width"`
	Height float64     `json:"height"`
	Radius float64     `json:"radius"`
	Color  style.Color `json:"color"`
}

// ImageBox 放置一张已编码的图片（PNG、JPEG 或 GIF 字节）。
type ImageBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Source string  `json:"source"`
	MIME   string  `json:"mime"`
	Data   []byte  `json:"-"`
}

// Align 为文本行的水平锚点，空值表示左对齐。
type Align string

const (
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// TextRun 为单行文本，按基线定位。
type TextRun struct {
	X        float64     `json:"x"`
	Y        float64     `json:"y"` // 基线
	Content  string      `json:"content"`
	FontSize float64     `json:"fontSize"`
	Align    Align       `json:"align"`
	Bold     bool        `json:"bold"`
	Color    style.Color `json:"color"`
}

// Logo 为已读取并校验过、可直接嵌入的 logo 资源。
type Logo struct {
	Path string
	MIME string
	Data []byte
}

func circle(c Circle) Primitive       { return Primitive{Kind: KindCircle, Circle: &c} }
func roundRect(r RoundRect) Primitive { return Primitive{Kind: KindRect, Rect: &r} }
func imageBox(i ImageBox) Primitive   { return Primitive{Kind: KindImage, Image: &i} }
func textRun(t TextRun) Primitive     { return Primitive{Kind: KindText, Text: &t} }
