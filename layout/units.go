package layout

// Unit 为布局结果的坐标单位。
type Unit int

const (
	UnitPixel  Unit = iota // 栅格：模块按每模块像素数缩放
	UnitModule             // 矢量：一个单位即一个模块
)

// pt 与 mm 的换算常量。栅格后端的画布上 1mm 对应 1 像素，创建字体时像素字号需经此换算。
const (
	ptToMm = 0.352777
	mmToPt = 1.0 / ptToMm
)

// UnitToString 返回 Unit 的简短名称。
func UnitToString(u Unit) string {
	switch u {
	case UnitPixel:
		return "px"
	case UnitModule:
		return "module"
	default:
		return ""
	}
}

// MarshalText 让调试 JSON 以名称输出单位。
func (u Unit) MarshalText() ([]byte, error) { return []byte(UnitToString(u)), nil }

// Length 为以模块计的长度，可换算为任一单位。
type Length float64

// To 按给定的每模块像素数将长度换算为目标单位。
func (l Length) To(target Unit, pixelsPerModule int) float64 {
	if target == UnitPixel {
		return float64(l) * float64(pixelsPerModule)
	}
	return float64(l)
}

// PxToPt 在 1px = 1mm 的画布上将像素换算为 pt。
func PxToPt(px float64) float64 { return px * mmToPt }
