package game

import (
	"bytes"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FallbackFontName 找不到日文字体时使用的内置字体名称
const FallbackFontName = "goregular (builtin)"

// ResourceManager is responsible for loading and caching the font used by the game.
//
// The same font file serves two purposes:
//   - text.GoTextFace for UI text drawn by Ebitengine
//   - opentype.Font for rasterizing the question glyph into a CPU bitmap
//
// Thread Safety Note:
// This implementation is NOT thread-safe. For the single-threaded game loop,
// no synchronization is needed.
type ResourceManager struct {
	fontPath      string                       // Path of the loaded font, or FallbackFontName
	faceSource    *text.GoTextFaceSource       // Source for Ebitengine v2 text faces
	glyphFont     *opentype.Font               // Parsed font for glyph rasterization
	fontFaceCache map[float64]*text.GoTextFace // Cache for text faces: size -> face
}

// NewResourceManager creates a ResourceManager with an empty font cache.
func NewResourceManager() *ResourceManager {
	return &ResourceManager{
		fontFaceCache: make(map[float64]*text.GoTextFace),
	}
}

// LoadFont 加载字体
//
// 查找顺序：
//  1. explicitPath（命令行 --font 指定，加载失败直接返回错误）
//  2. candidates 中第一个可以加载的文件
//  3. 内置 goregular 字体（没有汉字，题目会显示为缺字方框）
func (rm *ResourceManager) LoadFont(explicitPath string, candidates []string) error {
	if explicitPath != "" {
		if err := rm.loadFontFile(explicitPath); err != nil {
			return fmt.Errorf("failed to load font %s: %w", explicitPath, err)
		}
		return nil
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := rm.loadFontFile(path); err != nil {
			log.Printf("[ResourceManager] Warning: 字体加载失败 %s: %v", path, err)
			continue
		}
		return nil
	}

	log.Printf("[ResourceManager] Warning: 未找到日文字体，使用内置字体 %s", FallbackFontName)
	return rm.setFontData(goregular.TTF, FallbackFontName)
}

// loadFontFile 从文件加载字体
func (rm *ResourceManager) loadFontFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return rm.setFontData(data, path)
}

// setFontData 解析字体数据并替换当前字体
// 支持 .ttf/.otf 单字体文件和 .ttc 字体集合（取第一个字体）
func (rm *ResourceManager) setFontData(data []byte, name string) error {
	source, glyphFont, err := parseFontData(data)
	if err != nil {
		return err
	}

	rm.fontPath = name
	rm.faceSource = source
	rm.glyphFont = glyphFont
	clear(rm.fontFaceCache)

	log.Printf("[ResourceManager] 字体加载完成: %s", name)
	return nil
}

// parseFontData 同时创建 Ebitengine 文字源和 opentype 字体
func parseFontData(data []byte) (*text.GoTextFaceSource, *opentype.Font, error) {
	if isFontCollection(data) {
		collection, err := opentype.ParseCollection(data)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to parse font collection: %w", err)
		}
		glyphFont, err := collection.Font(0)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read font 0 of collection: %w", err)
		}
		sources, err := text.NewGoTextFaceSourcesFromCollection(bytes.NewReader(data))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create font sources: %w", err)
		}
		if len(sources) == 0 {
			return nil, nil, fmt.Errorf("font collection is empty")
		}
		return sources[0], glyphFont, nil
	}

	glyphFont, err := opentype.Parse(data)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse font: %w", err)
	}
	source, err := text.NewGoTextFaceSource(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create font source: %w", err)
	}
	return source, glyphFont, nil
}

// isFontCollection 检查 TrueType Collection 文件头
func isFontCollection(data []byte) bool {
	return len(data) >= 4 && string(data[:4]) == "ttcf"
}

// Face 返回指定字号的文字 Face（带缓存）
// 必须先调用 LoadFont
func (rm *ResourceManager) Face(size float64) *text.GoTextFace {
	if face, ok := rm.fontFaceCache[size]; ok {
		return face
	}
	face := &text.GoTextFace{
		Source:    rm.faceSource,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	rm.fontFaceCache[size] = face
	return face
}

// GlyphFont 返回用于光栅化题目文字的字体
func (rm *ResourceManager) GlyphFont() *opentype.Font {
	return rm.glyphFont
}

// FontPath 返回当前字体的路径
func (rm *ResourceManager) FontPath() string {
	return rm.fontPath
}

// IsFallbackFont 是否正在使用内置的回退字体
func (rm *ResourceManager) IsFallbackFont() bool {
	return rm.fontPath == FallbackFontName
}
