package systems

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// ErrEmptyCharacter 没有可绘制的字符
var ErrEmptyCharacter = errors.New("empty character")

// GlyphRasterizer 将单个字符绘制为灰度位图（黑底白字）
type GlyphRasterizer interface {
	Rasterize(character string) (*image.Gray, error)
}

// OpenTypeRasterizer 使用 OpenType 字体在 CPU 上绘制文字位图
// 不依赖 Ebitengine 窗口，生成碎片和命令行工具都可以使用
type OpenTypeRasterizer struct {
	face   font.Face
	width  int
	height int
}

// NewOpenTypeRasterizer 创建文字位图绘制器
//
// 参数：
//   - f: 已解析的字体
//   - width, height: 位图尺寸
//   - size: 字号（像素）
func NewOpenTypeRasterizer(f *opentype.Font, width, height int, size float64) (*OpenTypeRasterizer, error) {
	if f == nil {
		return nil, fmt.Errorf("glyph rasterizer requires a font")
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid glyph bitmap size %dx%d", width, height)
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create glyph face: %w", err)
	}

	return &OpenTypeRasterizer{
		face:   face,
		width:  width,
		height: height,
	}, nil
}

// Size 返回位图尺寸
func (r *OpenTypeRasterizer) Size() (width, height int) {
	return r.width, r.height
}

// Rasterize 绘制字符，字形包围盒居中于位图
// 字体中没有的字符会绘制为缺字方框（.notdef）
func (r *OpenTypeRasterizer) Rasterize(character string) (*image.Gray, error) {
	if character == "" {
		return nil, ErrEmptyCharacter
	}

	dst := image.NewGray(image.Rect(0, 0, r.width, r.height))
	draw.Draw(dst, dst.Bounds(), image.Black, image.Point{}, draw.Src)

	bounds, _ := font.BoundString(r.face, character)
	glyphW := bounds.Max.X - bounds.Min.X
	glyphH := bounds.Max.Y - bounds.Min.Y

	// 原点 = 位图中心 - 包围盒中心
	originX := fixed.I(r.width)/2 - (bounds.Min.X + glyphW/2)
	originY := fixed.I(r.height)/2 - (bounds.Min.Y + glyphH/2)

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.White),
		Face: r.face,
		Dot:  fixed.Point26_6{X: originX, Y: originY},
	}
	d.DrawString(character)

	return dst, nil
}
