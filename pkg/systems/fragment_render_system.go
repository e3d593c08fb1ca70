package systems

import (
	"image/color"

	"github.com/decker502/mikiri/pkg/components"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// spriteRadius 圆形精灵的半径（像素）
const spriteRadius = 32

// FragmentRenderSystem 碎片渲染系统
// 每个碎片用预先绘制的白色圆形精灵按半径缩放绘制
type FragmentRenderSystem struct {
	sprite    *ebiten.Image // 延迟创建，测试中不需要图形上下文
	alpha     float32
	positions []float64 // 位置缓冲，每帧复用
}

// NewFragmentRenderSystem 创建碎片渲染系统
//
// 参数：
//   - alpha: 碎片的绘制不透明度
func NewFragmentRenderSystem(alpha float64) *FragmentRenderSystem {
	return &FragmentRenderSystem{
		alpha: float32(alpha),
	}
}

// Draw 绘制回合时间 t 时的所有碎片
func (s *FragmentRenderSystem) Draw(dst *ebiten.Image, fragments []components.Fragment, t float64) {
	if len(fragments) == 0 {
		return
	}
	if s.sprite == nil {
		s.sprite = newCircleSprite()
	}

	s.positions = FragmentPositions(fragments, t, s.positions)

	op := &ebiten.DrawImageOptions{}
	op.Filter = ebiten.FilterLinear
	for i, f := range fragments {
		scale := f.Radius / spriteRadius
		op.GeoM.Reset()
		op.GeoM.Translate(-spriteRadius, -spriteRadius)
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(s.positions[2*i], s.positions[2*i+1])

		op.ColorScale.Reset()
		op.ColorScale.ScaleAlpha(s.alpha)

		dst.DrawImage(s.sprite, op)
	}
}

// newCircleSprite 绘制抗锯齿的白色实心圆
func newCircleSprite() *ebiten.Image {
	img := ebiten.NewImage(spriteRadius*2, spriteRadius*2)
	vector.DrawFilledCircle(img, spriteRadius, spriteRadius, spriteRadius, color.White, true)
	return img
}
