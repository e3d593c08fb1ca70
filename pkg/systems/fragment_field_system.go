package systems

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"math"

	"github.com/decker502/mikiri/pkg/components"
	"github.com/decker502/mikiri/pkg/config"
	"github.com/decker502/mikiri/pkg/game"
)

// FragmentParams 某个难度下的碎片生成参数
type FragmentParams struct {
	Density   float64 // 文字像素被采样为碎片的概率
	Spread    float64 // 碎片相对像素的最大偏移（位图像素）
	SizeMin   float64 // 最小半径
	SizeMax   float64 // 最大半径
	SpeedBase float64 // 最低速度
	SpeedMax  float64 // 速度随机部分的上限
}

// FragmentParamsForLevel 根据难度计算碎片参数
// level 超出 [0, 1] 时被截断
func FragmentParamsForLevel(cfg config.FragmentConfig, level float64) FragmentParams {
	level = math.Max(0, math.Min(1, level))
	return FragmentParams{
		Density:   cfg.DensityBase + cfg.DensityPerLevel*level,
		Spread:    cfg.SpreadBase + cfg.SpreadPerLevel*level,
		SizeMin:   cfg.SizeMin,
		SizeMax:   cfg.SizeMax,
		SpeedBase: cfg.SpeedBase,
		SpeedMax:  cfg.SpeedMaxBase + cfg.SpeedMaxPerLevel*level,
	}
}

// FieldLayout 位图坐标到画面坐标的映射和光晕参数
type FieldLayout struct {
	CanvasWidth      float64
	CanvasHeight     float64
	VerticalOffset   float64 // 映射后整体上移的距离
	HaloCount        int     // 光晕碎片数量
	HaloRadiusFactor float64 // 光晕半径 = 位图宽度 * HaloRadiusFactor
}

// NewFieldLayout 从游戏配置创建布局
func NewFieldLayout(cfg *config.GameConfig) FieldLayout {
	return FieldLayout{
		CanvasWidth:      float64(cfg.Window.Width),
		CanvasHeight:     float64(cfg.Window.Height),
		VerticalOffset:   cfg.Fragments.VerticalOffset,
		HaloCount:        cfg.Fragments.HaloCount,
		HaloRadiusFactor: cfg.Fragments.HaloRadiusFactor,
	}
}

// GenerateFragments 根据文字位图生成碎片
//
// 步骤：
//  1. 亮度 > 0.5 的每个像素以 Density 的概率生成一个碎片
//  2. 在位图中心周围追加 HaloCount 个光晕碎片（速度上限减半）
//  3. 所有基准位置按画面/位图比例缩放并上移 VerticalOffset
//
// 返回的碎片数 = HaloCount + 被采样的像素数
func GenerateFragments(bitmap image.Image, params FragmentParams, layout FieldLayout, rng game.RandomSource) []components.Fragment {
	bounds := bitmap.Bounds()
	bw, bh := bounds.Dx(), bounds.Dy()

	fragments := make([]components.Fragment, 0, layout.HaloCount+int(float64(bw*bh)*params.Density/4))

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if !isLit(bitmap, x, y) {
				continue
			}
			if rng.Float64() >= params.Density {
				continue
			}
			ox, oy := polar(rng.Float64()*params.Spread, rng.Float64()*2*math.Pi)
			fragments = append(fragments, newFragment(
				float64(x-bounds.Min.X)+ox,
				float64(y-bounds.Min.Y)+oy,
				params, params.SpeedMax, rng,
			))
		}
	}

	cx, cy := float64(bw)/2, float64(bh)/2
	haloRadius := float64(bw) * layout.HaloRadiusFactor
	for i := 0; i < layout.HaloCount; i++ {
		ox, oy := polar(rng.Float64()*haloRadius, rng.Float64()*2*math.Pi)
		fragments = append(fragments, newFragment(cx+ox, cy+oy, params, params.SpeedMax/2, rng))
	}

	scaleX, scaleY := 1.0, 1.0
	if bw > 0 && bh > 0 {
		scaleX = layout.CanvasWidth / float64(bw)
		scaleY = layout.CanvasHeight / float64(bh)
	}
	for i := range fragments {
		fragments[i].OriginX *= scaleX
		fragments[i].OriginY = fragments[i].OriginY*scaleY - layout.VerticalOffset
	}

	return fragments
}

// newFragment 随机生成一个碎片（基准位置为位图坐标）
func newFragment(x, y float64, params FragmentParams, speedMax float64, rng game.RandomSource) components.Fragment {
	return components.Fragment{
		OriginX:    x,
		OriginY:    y,
		Radius:     params.SizeMin + rng.Float64()*(params.SizeMax-params.SizeMin),
		ColorAlpha: 0.1 + rng.Float64()*0.2,
		Direction:  rng.Float64() * 2 * math.Pi,
		Speed:      params.SpeedBase + rng.Float64()*speedMax,
		Motion:     components.MotionVariant(rng.IntN(components.MotionVariantCount)),
	}
}

// isLit 像素亮度是否超过 0.5
func isLit(img image.Image, x, y int) bool {
	if g, ok := img.(*image.Gray); ok {
		return g.GrayAt(x, y).Y > 127
	}
	return color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y > 127
}

// polar 极坐标转直角坐标
func polar(r, theta float64) (x, y float64) {
	return r * math.Cos(theta), r * math.Sin(theta)
}

// FragmentField 一道题目的全部碎片
type FragmentField struct {
	Character string
	Glyph     *image.Gray // 出题文字位图（答案画面使用）
	Fragments []components.Fragment
}

// FragmentFieldSystem 碎片场生成系统
// 持有文字绘制器、布局和共享的随机数来源
type FragmentFieldSystem struct {
	rasterizer GlyphRasterizer
	config     config.FragmentConfig
	layout     FieldLayout
	rng        game.RandomSource
}

// NewFragmentFieldSystem 创建碎片场生成系统
func NewFragmentFieldSystem(rasterizer GlyphRasterizer, cfg config.FragmentConfig, layout FieldLayout, rng game.RandomSource) *FragmentFieldSystem {
	return &FragmentFieldSystem{
		rasterizer: rasterizer,
		config:     cfg,
		layout:     layout,
		rng:        rng,
	}
}

// Generate 为字符生成碎片场
func (s *FragmentFieldSystem) Generate(character string, level float64) (*FragmentField, error) {
	glyph, err := s.rasterizer.Rasterize(character)
	if err != nil {
		return nil, fmt.Errorf("failed to rasterize %q: %w", character, err)
	}

	params := FragmentParamsForLevel(s.config, level)
	fragments := GenerateFragments(glyph, params, s.layout, s.rng)

	log.Printf("[FragmentField] %q level=%.2f: %d fragments (%d halo)",
		character, level, len(fragments), s.layout.HaloCount)

	return &FragmentField{
		Character: character,
		Glyph:     glyph,
		Fragments: fragments,
	}, nil
}
