package config

import (
	"errors"
	"math"
	"os"
	"testing"
)

// TestParseGameConfigDefaults 测试缺省字段使用默认值
func TestParseGameConfigDefaults(t *testing.T) {
	cfg, err := ParseGameConfig([]byte("window:\n  width: 1024\n"))
	if err != nil {
		t.Fatalf("ParseGameConfig() error: %v", err)
	}

	if cfg.Window.Width != 1024 {
		t.Errorf("Window.Width = %d, want 1024", cfg.Window.Width)
	}
	// 未出现的字段保持默认值
	if cfg.Window.Height != 600 {
		t.Errorf("Window.Height = %d, want default 600", cfg.Window.Height)
	}
	if cfg.Fragments.HaloCount != 600 {
		t.Errorf("Fragments.HaloCount = %d, want default 600", cfg.Fragments.HaloCount)
	}
	if cfg.Phases.TimeLimit != 13.0 {
		t.Errorf("Phases.TimeLimit = %v, want default 13.0", cfg.Phases.TimeLimit)
	}
}

// TestParseGameConfigInvalid 测试非法配置被拒绝
func TestParseGameConfigInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"窗口宽度为0", "window:\n  width: 0\n"},
		{"位图高度为负", "glyph:\n  bitmapHeight: -1\n"},
		{"尺寸范围颠倒", "fragments:\n  sizeMin: 10\n  sizeMax: 5\n"},
		{"密度超过1", "fragments:\n  densityBase: 1.5\n"},
		{"等级1时密度为负", "fragments:\n  densityBase: 0.1\n  densityPerLevel: -0.2\n"},
		{"时间上限为0", "phases:\n  timeLimit: 0\n"},
		{"难度增量超过1", "phases:\n  levelStep: 2\n"},
		{"音量超过1", "audio:\n  volume: 1.5\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseGameConfig([]byte(tt.yaml))
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("ParseGameConfig() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

// TestParseGameConfigMalformed 测试 YAML 语法错误
func TestParseGameConfigMalformed(t *testing.T) {
	_, err := ParseGameConfig([]byte("window: [unclosed"))
	if err == nil {
		t.Fatal("Expected error for malformed YAML")
	}
	if errors.Is(err, ErrInvalidConfig) {
		t.Error("Syntax errors should not be reported as ErrInvalidConfig")
	}
}

// TestShippedGameConfig 验证随程序发布的配置文件
func TestShippedGameConfig(t *testing.T) {
	data, err := os.ReadFile("../../data/game_config.yaml")
	if err != nil {
		t.Fatalf("Failed to read shipped config: %v", err)
	}

	cfg, err := ParseGameConfig(data)
	if err != nil {
		t.Fatalf("Shipped config is invalid: %v", err)
	}

	def := DefaultGameConfig()
	if cfg.Fragments != def.Fragments {
		t.Errorf("Shipped fragment config differs from defaults:\n got %+v\nwant %+v", cfg.Fragments, def.Fragments)
	}
	if cfg.Phases != def.Phases {
		t.Errorf("Shipped phase config differs from defaults:\n got %+v\nwant %+v", cfg.Phases, def.Phases)
	}
	if len(cfg.Font.Candidates) == 0 {
		t.Error("Shipped config should list font candidates")
	}

	// 位图与画面比例一致，碎片缩放不变形
	sx := float64(cfg.Window.Width) / float64(cfg.Glyph.BitmapWidth)
	sy := float64(cfg.Window.Height) / float64(cfg.Glyph.BitmapHeight)
	if math.Abs(sx-sy) > 1e-9 {
		t.Errorf("Canvas/bitmap aspect mismatch: sx=%v sy=%v", sx, sy)
	}
}
