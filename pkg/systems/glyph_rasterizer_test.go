package systems

import (
	"errors"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

func newTestRasterizer(t *testing.T) *OpenTypeRasterizer {
	t.Helper()
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		t.Fatalf("Failed to parse goregular: %v", err)
	}
	r, err := NewOpenTypeRasterizer(f, 200, 150, 120)
	if err != nil {
		t.Fatalf("NewOpenTypeRasterizer failed: %v", err)
	}
	return r
}

// TestOpenTypeRasterizerCentered 测试字形居中绘制
func TestOpenTypeRasterizerCentered(t *testing.T) {
	r := newTestRasterizer(t)

	img, err := r.Rasterize("H")
	if err != nil {
		t.Fatalf("Rasterize failed: %v", err)
	}
	if img.Bounds().Dx() != 200 || img.Bounds().Dy() != 150 {
		t.Fatalf("Bitmap size = %v, want 200x150", img.Bounds())
	}

	minX, minY, maxX, maxY := 200, 150, -1, -1
	lit := 0
	for y := 0; y < 150; y++ {
		for x := 0; x < 200; x++ {
			if img.GrayAt(x, y).Y > 127 {
				lit++
				minX, minY = min(minX, x), min(minY, y)
				maxX, maxY = max(maxX, x), max(maxY, y)
			}
		}
	}
	if lit == 0 {
		t.Fatal("No lit pixels in rasterized glyph")
	}

	cx := float64(minX+maxX) / 2
	cy := float64(minY+maxY) / 2
	if cx < 95 || cx > 105 {
		t.Errorf("Glyph center X = %.1f, want ~100", cx)
	}
	if cy < 70 || cy > 80 {
		t.Errorf("Glyph center Y = %.1f, want ~75", cy)
	}
}

// TestOpenTypeRasterizerMissingGlyph 测试字体中不存在的字符仍然有输出（缺字方框）
func TestOpenTypeRasterizerMissingGlyph(t *testing.T) {
	r := newTestRasterizer(t)

	img, err := r.Rasterize("鬱")
	if err != nil {
		t.Fatalf("Rasterize failed: %v", err)
	}
	if img == nil {
		t.Fatal("Rasterize returned nil image")
	}
}

// TestOpenTypeRasterizerErrors 测试错误输入
func TestOpenTypeRasterizerErrors(t *testing.T) {
	r := newTestRasterizer(t)

	if _, err := r.Rasterize(""); !errors.Is(err, ErrEmptyCharacter) {
		t.Errorf("Rasterize(\"\") error = %v, want ErrEmptyCharacter", err)
	}

	if _, err := NewOpenTypeRasterizer(nil, 200, 150, 120); err == nil {
		t.Error("Expected error for nil font")
	}

	f, _ := opentype.Parse(goregular.TTF)
	if _, err := NewOpenTypeRasterizer(f, 0, 150, 120); err == nil {
		t.Error("Expected error for zero width")
	}
}
