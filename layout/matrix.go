package layout

// Bitmap 是以布尔行存储的 Matrix，按 bitmap[y][x] 访问。
type Bitmap [][]bool

// NewBitmap 校验 rows 为非空方阵。
func NewBitmap(rows [][]bool) (Bitmap, error) {
	if len(rows) == 0 {
		return nil, ErrInvalidMatrix
	}
	for _, row := range rows {
		if len(row) != len(rows) {
			return nil, ErrInvalidMatrix
		}
	}
	return Bitmap(rows), nil
}

func (b Bitmap) Size() int { return len(b) }

func (b Bitmap) Module(x, y int) bool { return b[y][x] }
