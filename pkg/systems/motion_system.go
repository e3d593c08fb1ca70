package systems

import (
	"math"

	"github.com/decker502/mikiri/pkg/components"
)

// wobblePeriod 摆动周期（秒）
const wobblePeriod = 3.0

// FragmentPositionAt 计算碎片在回合时间 t 的画面位置
//
// 直线运动：origin + polar(speed*t, dir)
// 摆动运动：再叠加 polar(speed/5 * sin(2πt/3), dir+π/2)
//
// t 可以为负数：负时间时碎片从远处向文字收拢，t=0 时恰好组成文字形状
func FragmentPositionAt(f components.Fragment, t float64) (x, y float64) {
	dx, dy := polar(f.Speed*t, f.Direction)
	x = f.OriginX + dx
	y = f.OriginY + dy

	if f.Motion.HasWobble() {
		wx, wy := polar(f.Speed/5*math.Sin(2*math.Pi*t/wobblePeriod), f.Direction+math.Pi/2)
		x += wx
		y += wy
	}
	return x, y
}

// FragmentPositions 批量计算位置，复用 dst 的底层数组
// 返回的切片长度为 2*len(fragments)，依次为 x0, y0, x1, y1, ...
func FragmentPositions(fragments []components.Fragment, t float64, dst []float64) []float64 {
	dst = dst[:0]
	for _, f := range fragments {
		x, y := FragmentPositionAt(f, t)
		dst = append(dst, x, y)
	}
	return dst
}
