package systems

import (
	"log"

	"github.com/decker502/mikiri/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// gaussianBlurShaderSrc 9-tap 可分离高斯模糊，Direction 为 (1,0) 或 (0,1)
const gaussianBlurShaderSrc = `//kage:unit pixels

package main

var Direction vec2

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	c := imageSrc0At(srcPos) * 0.227027
	c += imageSrc0At(srcPos + Direction*1.0) * 0.1945946
	c += imageSrc0At(srcPos - Direction*1.0) * 0.1945946
	c += imageSrc0At(srcPos + Direction*2.0) * 0.1216216
	c += imageSrc0At(srcPos - Direction*2.0) * 0.1216216
	c += imageSrc0At(srcPos + Direction*3.0) * 0.054054
	c += imageSrc0At(srcPos - Direction*3.0) * 0.054054
	c += imageSrc0At(srcPos + Direction*4.0) * 0.016216
	c += imageSrc0At(srcPos - Direction*4.0) * 0.016216
	return c
}
`

// BloomEffect 泛光效果
//
// 碎片先画到全尺寸图层，模糊后依次缩小到 1/4、1/8 再模糊，
// 三层以加法混合叠加到画面上
type BloomEffect struct {
	width, height int
	shader        *ebiten.Shader

	blur1, internal1 *ebiten.Image
	blur4, internal4 *ebiten.Image
	blur8, internal8 *ebiten.Image
}

// NewBloomEffect 创建泛光效果
// 着色器编译失败时返回的效果不做任何绘制（泛光被禁用）
func NewBloomEffect(width, height int) *BloomEffect {
	b := &BloomEffect{width: width, height: height}

	shader, err := ebiten.NewShader([]byte(gaussianBlurShaderSrc))
	if err != nil {
		log.Printf("[BloomEffect] Warning: 着色器编译失败，泛光已禁用: %v", err)
		return b
	}
	b.shader = shader

	b.blur1 = ebiten.NewImage(width, height)
	b.internal1 = ebiten.NewImage(width, height)
	b.blur4 = ebiten.NewImage(max(width/4, 1), max(height/4, 1))
	b.internal4 = ebiten.NewImage(max(width/4, 1), max(height/4, 1))
	b.blur8 = ebiten.NewImage(max(width/8, 1), max(height/8, 1))
	b.internal8 = ebiten.NewImage(max(width/8, 1), max(height/8, 1))
	return b
}

// Enabled 泛光是否可用
func (b *BloomEffect) Enabled() bool {
	return b.shader != nil
}

// Target 返回清空后的绘制目标，调用方把要发光的内容画到这里
// 泛光禁用时返回 nil
func (b *BloomEffect) Target() *ebiten.Image {
	if !b.Enabled() {
		return nil
	}
	b.blur1.Clear()
	return b.blur1
}

// Update 模糊并生成缩小图层
func (b *BloomEffect) Update() {
	if !b.Enabled() {
		return
	}

	b.gaussianBlur(b.blur1, b.internal1)

	downsample(b.blur1, b.blur4)
	b.gaussianBlur(b.blur4, b.internal4)

	downsample(b.blur4, b.blur8)
	b.gaussianBlur(b.blur8, b.internal8)
}

// Draw 以加法混合把三层叠加到 dst
func (b *BloomEffect) Draw(dst *ebiten.Image, intensity1, intensity4, intensity8 float64) {
	if !b.Enabled() {
		return
	}

	b.drawLayer(dst, b.blur1, intensity1)
	b.drawLayer(dst, b.blur4, intensity4)
	b.drawLayer(dst, b.blur8, intensity8)
}

// drawLayer 拉伸到全尺寸并加法混合
func (b *BloomEffect) drawLayer(dst, layer *ebiten.Image, intensity float64) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(b.width)/float64(layer.Bounds().Dx()), float64(b.height)/float64(layer.Bounds().Dy()))
	op.Filter = ebiten.FilterLinear
	op.Blend = ebiten.BlendLighter
	// 颜色是预乘 alpha 的，四个分量一起缩放
	a := float32(intensity)
	op.ColorScale.Scale(a, a, a, a)
	dst.DrawImage(layer, op)
}

// gaussianBlur 水平模糊到 internal，再垂直模糊回 img
func (b *BloomEffect) gaussianBlur(img, internal *ebiten.Image) {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()

	internal.Clear()
	op := &ebiten.DrawRectShaderOptions{}
	op.Images[0] = img
	op.Uniforms = map[string]any{"Direction": []float32{1, 0}}
	internal.DrawRectShader(w, h, b.shader, op)

	img.Clear()
	op = &ebiten.DrawRectShaderOptions{}
	op.Images[0] = internal
	op.Uniforms = map[string]any{"Direction": []float32{0, 1}}
	img.DrawRectShader(w, h, b.shader, op)
}

// downsample 线性缩小 src 到 dst 的尺寸
func downsample(src, dst *ebiten.Image) {
	dst.Clear()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(dst.Bounds().Dx())/float64(src.Bounds().Dx()), float64(dst.Bounds().Dy())/float64(src.Bounds().Dy()))
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(src, op)
}

// BloomIntensities 泛光三层的闪烁强度
// t 为当前时间（秒），周期分别为数十毫秒，产生细微的闪烁
func BloomIntensities(t float64) (a1, a4, a8 float64) {
	a1 = 0.2 + 0.09*utils.Sine0_1(0.029, t)*utils.Sine0_1(0.072, t)
	a4 = 0.4 + 0.08*utils.Sine0_1(0.058, t)*utils.Sine0_1(0.092, t)
	a8 = 0.7 + 0.05*utils.Sine0_1(0.072, t)*utils.Sine0_1(0.080, t)
	return a1, a4, a8
}
