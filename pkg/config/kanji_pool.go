package config

import (
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/decker502/mikiri/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// KanjiPoolPath 嵌入的出题字库路径
const KanjiPoolPath = "data/kanji_pool.yaml"

// BaseStrokeCeiling 难度为 0 时的笔画上限
const BaseStrokeCeiling = 4

// KanjiBand 某一笔画数的汉字分组
type KanjiBand struct {
	Strokes    int    `yaml:"strokes"`
	Characters string `yaml:"characters"`
}

// KanjiPool 出题字库（data/kanji_pool.yaml）
type KanjiPool struct {
	// BandWindow 0 = 使用上限以内的所有分组；N>0 = 只使用最高的 N 个笔画数
	BandWindow int         `yaml:"bandWindow"`
	Bands      []KanjiBand `yaml:"bands"`
}

// ParseKanjiPool 解析并校验字库 YAML
// 分组按笔画数升序排列
func ParseKanjiPool(data []byte) (*KanjiPool, error) {
	var pool KanjiPool
	if err := yaml.Unmarshal(data, &pool); err != nil {
		return nil, fmt.Errorf("failed to parse kanji pool YAML: %w", err)
	}

	sort.SliceStable(pool.Bands, func(i, j int) bool {
		return pool.Bands[i].Strokes < pool.Bands[j].Strokes
	})

	if err := ValidateKanjiPool(&pool); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return &pool, nil
}

// LoadKanjiPool 从嵌入资源加载出题字库
func LoadKanjiPool(path string) (*KanjiPool, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read kanji pool file: %w", err)
	}
	return ParseKanjiPool(data)
}

// ValidateKanjiPool 验证字库
//   - 笔画数不能为负且不能重复
//   - 字符串必须是合法 UTF-8
//   - 难度 0 的笔画上限内至少有一个字，否则第一题就无法出题
func ValidateKanjiPool(pool *KanjiPool) error {
	if pool.BandWindow < 0 {
		return fmt.Errorf("bandWindow must be >= 0, got %d", pool.BandWindow)
	}

	seen := make(map[int]bool, len(pool.Bands))
	for _, band := range pool.Bands {
		if band.Strokes < 0 {
			return fmt.Errorf("band strokes must be >= 0, got %d", band.Strokes)
		}
		if seen[band.Strokes] {
			return fmt.Errorf("duplicate band for %d strokes", band.Strokes)
		}
		seen[band.Strokes] = true

		if !utf8.ValidString(band.Characters) {
			return fmt.Errorf("band %d contains invalid UTF-8", band.Strokes)
		}
	}

	if len(pool.Candidates(BaseStrokeCeiling)) == 0 {
		return fmt.Errorf("no characters available at %d strokes or below", BaseStrokeCeiling)
	}

	return nil
}

// Candidates 返回笔画上限以内可出题的所有字符
// 每个元素是一个完整字符（按 rune 切分，兼容 𠮟 等扩展区汉字）
func (p *KanjiPool) Candidates(ceiling int) []string {
	lower := 0
	if p.BandWindow > 0 {
		lower = ceiling - p.BandWindow + 1
	}

	var result []string
	for _, band := range p.Bands {
		if band.Strokes < lower || band.Strokes > ceiling {
			continue
		}
		for _, r := range band.Characters {
			result = append(result, string(r))
		}
	}
	return result
}

// StrokesOf 返回字符所在分组的笔画数，不在字库中时返回 -1
func (p *KanjiPool) StrokesOf(character string) int {
	for _, band := range p.Bands {
		for _, r := range band.Characters {
			if string(r) == character {
				return band.Strokes
			}
		}
	}
	return -1
}
