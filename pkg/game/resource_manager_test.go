package game

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

// TestLoadFontFallback 测试找不到字体时回退到内置字体
func TestLoadFontFallback(t *testing.T) {
	rm := NewResourceManager()

	err := rm.LoadFont("", []string{"/nonexistent/font.ttc", "/nonexistent/font.ttf"})
	if err != nil {
		t.Fatalf("LoadFont() error: %v", err)
	}

	if !rm.IsFallbackFont() {
		t.Errorf("Expected fallback font, got %s", rm.FontPath())
	}
	if rm.GlyphFont() == nil {
		t.Error("GlyphFont() should not be nil after LoadFont")
	}
}

// TestLoadFontCandidate 测试从候选路径加载字体
func TestLoadFontCandidate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0644); err != nil {
		t.Fatalf("Failed to write test font: %v", err)
	}

	rm := NewResourceManager()
	if err := rm.LoadFont("", []string{"/nonexistent/font.ttc", path}); err != nil {
		t.Fatalf("LoadFont() error: %v", err)
	}

	if rm.FontPath() != path {
		t.Errorf("FontPath() = %s, want %s", rm.FontPath(), path)
	}
	if rm.IsFallbackFont() {
		t.Error("Should not be using the fallback font")
	}
}

// TestLoadFontExplicitMissing 测试显式指定的字体不存在时返回错误
func TestLoadFontExplicitMissing(t *testing.T) {
	rm := NewResourceManager()
	if err := rm.LoadFont("/nonexistent/explicit.ttf", nil); err == nil {
		t.Error("Expected error for missing explicit font")
	}
}

// TestLoadFontCorruptCandidateSkipped 测试损坏的候选字体被跳过
func TestLoadFontCorruptCandidateSkipped(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.ttf")
	if err := os.WriteFile(path, []byte("not a font"), 0644); err != nil {
		t.Fatalf("Failed to write broken font: %v", err)
	}

	rm := NewResourceManager()
	if err := rm.LoadFont("", []string{path}); err != nil {
		t.Fatalf("LoadFont() error: %v", err)
	}
	if !rm.IsFallbackFont() {
		t.Errorf("Expected fallback after corrupt candidate, got %s", rm.FontPath())
	}
}

// TestFaceCache 测试相同字号返回同一个 Face
func TestFaceCache(t *testing.T) {
	rm := NewResourceManager()
	if err := rm.LoadFont("", nil); err != nil {
		t.Fatalf("LoadFont() error: %v", err)
	}

	a := rm.Face(42)
	b := rm.Face(42)
	c := rm.Face(20)

	if a != b {
		t.Error("Face(42) should be cached")
	}
	if a == c {
		t.Error("Different sizes should return different faces")
	}
	if a.Size != 42 {
		t.Errorf("Face size = %v, want 42", a.Size)
	}
}

// TestIsFontCollection 测试字体集合检测
func TestIsFontCollection(t *testing.T) {
	if isFontCollection(goregular.TTF) {
		t.Error("goregular.TTF is not a collection")
	}
	if !isFontCollection([]byte("ttcf\x00\x01\x00\x00")) {
		t.Error("ttcf header should be detected as a collection")
	}
	if isFontCollection([]byte("tt")) {
		t.Error("Short data should not be a collection")
	}
}
