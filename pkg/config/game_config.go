package config

import (
	"errors"
	"fmt"

	"github.com/decker502/mikiri/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig 配置校验失败
var ErrInvalidConfig = errors.New("invalid config")

// GameConfigPath 嵌入的游戏配置文件路径
const GameConfigPath = "data/game_config.yaml"

// GameConfig 游戏配置（data/game_config.yaml）
type GameConfig struct {
	Window    WindowConfig   `yaml:"window"`
	Glyph     GlyphConfig    `yaml:"glyph"`
	Fragments FragmentConfig `yaml:"fragments"`
	Phases    PhaseConfig    `yaml:"phases"`
	Question  QuestionConfig `yaml:"question"`
	Font      FontConfig     `yaml:"font"`
	Audio     AudioConfig    `yaml:"audio"`
}

// WindowConfig 窗口和逻辑画面尺寸
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// GlyphConfig 出题文字位图参数
type GlyphConfig struct {
	BitmapWidth  int     `yaml:"bitmapWidth"`
	BitmapHeight int     `yaml:"bitmapHeight"`
	FontSize     float64 `yaml:"fontSize"`
}

// FragmentConfig 碎片生成参数
// 各参数随难度 level (0~1) 线性变化
type FragmentConfig struct {
	DensityBase      float64 `yaml:"densityBase"`
	DensityPerLevel  float64 `yaml:"densityPerLevel"`
	SpreadBase       float64 `yaml:"spreadBase"`
	SpreadPerLevel   float64 `yaml:"spreadPerLevel"`
	SizeMin          float64 `yaml:"sizeMin"`
	SizeMax          float64 `yaml:"sizeMax"`
	SpeedBase        float64 `yaml:"speedBase"`
	SpeedMaxBase     float64 `yaml:"speedMaxBase"`
	SpeedMaxPerLevel float64 `yaml:"speedMaxPerLevel"`
	HaloCount        int     `yaml:"haloCount"`
	HaloRadiusFactor float64 `yaml:"haloRadiusFactor"`
	VerticalOffset   float64 `yaml:"verticalOffset"`
	DrawAlpha        float64 `yaml:"drawAlpha"`
}

// PhaseConfig 游戏阶段计时参数（秒）
type PhaseConfig struct {
	TitleDwell            float64 `yaml:"titleDwell"`
	AnnounceDuration      float64 `yaml:"announceDuration"`
	TimeLimit             float64 `yaml:"timeLimit"`
	CountdownVisibleBelow float64 `yaml:"countdownVisibleBelow"`
	JudgeDuration         float64 `yaml:"judgeDuration"`
	RevealDwell           float64 `yaml:"revealDwell"`
	GameOverDwell         float64 `yaml:"gameOverDwell"`
	LevelStep             float64 `yaml:"levelStep"`
	AnnounceBetweenRounds bool    `yaml:"announceBetweenRounds"`
}

// QuestionConfig 出题参数
type QuestionConfig struct {
	PreRollMin    float64 `yaml:"preRollMin"`
	PreRollSpread float64 `yaml:"preRollSpread"`
}

// FontConfig 字体查找路径
type FontConfig struct {
	Candidates []string `yaml:"candidates"`
}

// AudioConfig 音频参数
type AudioConfig struct {
	SampleRate int     `yaml:"sampleRate"`
	Volume     float64 `yaml:"volume"`
}

// DefaultGameConfig 返回默认配置
// 配置文件中缺省的字段使用这里的值
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		Window: WindowConfig{
			Title:  "瞬字の見切り",
			Width:  800,
			Height: 600,
		},
		Glyph: GlyphConfig{
			BitmapWidth:  200,
			BitmapHeight: 150,
			FontSize:     120,
		},
		Fragments: FragmentConfig{
			DensityBase:      0.25,
			DensityPerLevel:  -0.05,
			SpreadBase:       2.0,
			SpreadPerLevel:   2.0,
			SizeMin:          3.0,
			SizeMax:          12.0,
			SpeedBase:        20.0,
			SpeedMaxBase:     200.0,
			SpeedMaxPerLevel: 400.0,
			HaloCount:        600,
			HaloRadiusFactor: 1.5,
			VerticalOffset:   56,
			DrawAlpha:        0.5,
		},
		Phases: PhaseConfig{
			TitleDwell:            1.0,
			AnnounceDuration:      1.5,
			TimeLimit:             13.0,
			CountdownVisibleBelow: 10.0,
			JudgeDuration:         1.5,
			RevealDwell:           1.0,
			GameOverDwell:         1.0,
			LevelStep:             0.1,
		},
		Question: QuestionConfig{
			PreRollMin:    2.5,
			PreRollSpread: 2.5,
		},
		Audio: AudioConfig{
			SampleRate: 48000,
			Volume:     0.5,
		},
	}
}

// ParseGameConfig 解析 YAML 配置
// 先填充默认值，再用 YAML 中出现的字段覆盖
func ParseGameConfig(data []byte) (*GameConfig, error) {
	cfg := DefaultGameConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse game config YAML: %w", err)
	}

	if err := validateGameConfig(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return cfg, nil
}

// LoadGameConfig 从嵌入资源加载游戏配置
func LoadGameConfig(path string) (*GameConfig, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config file: %w", err)
	}
	return ParseGameConfig(data)
}

// validateGameConfig 验证配置的有效性
func validateGameConfig(cfg *GameConfig) error {
	if cfg.Window.Width <= 0 || cfg.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Glyph.BitmapWidth <= 0 || cfg.Glyph.BitmapHeight <= 0 {
		return fmt.Errorf("glyph bitmap size must be positive, got %dx%d", cfg.Glyph.BitmapWidth, cfg.Glyph.BitmapHeight)
	}
	if cfg.Glyph.FontSize <= 0 {
		return fmt.Errorf("glyph.fontSize must be positive, got %v", cfg.Glyph.FontSize)
	}

	f := cfg.Fragments
	if f.SizeMin <= 0 || f.SizeMax < f.SizeMin {
		return fmt.Errorf("fragment size range invalid: [%v, %v]", f.SizeMin, f.SizeMax)
	}
	if f.HaloCount < 0 {
		return fmt.Errorf("fragments.haloCount must be >= 0, got %d", f.HaloCount)
	}
	for _, level := range []float64{0, 1} {
		density := f.DensityBase + f.DensityPerLevel*level
		if density < 0 || density > 1 {
			return fmt.Errorf("fragment density at level %v out of [0,1]: %v", level, density)
		}
		if f.SpeedMaxBase+f.SpeedMaxPerLevel*level < 0 {
			return fmt.Errorf("fragment speedMax at level %v must be >= 0", level)
		}
	}

	p := cfg.Phases
	if p.TimeLimit <= 0 {
		return fmt.Errorf("phases.timeLimit must be positive, got %v", p.TimeLimit)
	}
	if p.TitleDwell < 0 || p.AnnounceDuration < 0 || p.JudgeDuration < 0 || p.RevealDwell < 0 || p.GameOverDwell < 0 {
		return fmt.Errorf("phase durations must be >= 0")
	}
	if p.LevelStep < 0 || p.LevelStep > 1 {
		return fmt.Errorf("phases.levelStep must be in [0,1], got %v", p.LevelStep)
	}

	if cfg.Question.PreRollMin < 0 || cfg.Question.PreRollSpread < 0 {
		return fmt.Errorf("question pre-roll must be >= 0")
	}

	if cfg.Audio.SampleRate <= 0 {
		return fmt.Errorf("audio.sampleRate must be positive, got %d", cfg.Audio.SampleRate)
	}
	if cfg.Audio.Volume < 0 || cfg.Audio.Volume > 1 {
		return fmt.Errorf("audio.volume must be in [0,1], got %v", cfg.Audio.Volume)
	}

	return nil
}
