package layout

import (
	"encoding/binary"
	"hash/fnv"

	"github.com/ByLCY/dotqr/style"
)

// mix 对 (seed, index) 的小端字节做 32 位 FNV-1a 哈希，结果只取决于输入。
func mix(seed, index int) uint32 {
	var buf [8]byte
	binary.LittleEndian.PutUint32(buf[:4], uint32(int32(seed)))
	binary.LittleEndian.PutUint32(buf[4:], uint32(int32(index)))
	h := fnv.New32a()
	_, _ = h.Write(buf[:])
	return h.Sum32()
}

// DotFactor 返回索引为 y*N+x 的模块的圆点尺寸系数。
// variance 为 0 时直接返回基础系数；否则按 (seed, index) 在 [-variance, +variance]
// 内扰动，再夹回允许的圆点范围。
func DotFactor(s style.Style, index int) float64 {
	if s.DotSizeVariance <= 0 {
		return s.DotSizeFactor
	}
	t := float64(mix(s.Seed, index)%10000)/10000 - 0.5
	factor := s.DotSizeFactor + t*2*s.DotSizeVariance
	return style.Clamp(factor, style.MinDotSizeFactor, style.MaxDotSizeFactor)
}
