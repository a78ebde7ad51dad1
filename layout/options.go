package layout

// BuildOptions 为一次布局的参数。
type BuildOptions struct {
	Unit       Unit       // 栅格后端用 UnitPixel，矢量后端用 UnitModule
	Caption    string     // 显示在码下方的文字；为空时不预留文字区域
	Logo       *Logo      // 未找到 logo 时为 nil
	Typesetter Typesetter // 设置 Caption 时必填
}

// Typesetter 由渲染后端提供，将说明文字折成不超过 maxWidth 的多行。
// 宽度与字号均使用当前布局的单位。
type Typesetter interface {
	LayoutLines(content string, maxWidth, fontSize float64) []string
}
