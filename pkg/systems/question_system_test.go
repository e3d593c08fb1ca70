package systems

import (
	"errors"
	"testing"

	"github.com/decker502/mikiri/pkg/config"
	"github.com/decker502/mikiri/pkg/game"
)

// TestStrokeCeiling 测试笔画上限公式（截断取整）
func TestStrokeCeiling(t *testing.T) {
	tests := []struct {
		level float64
		want  int
	}{
		{0, 4},
		{0.1, 5},
		{0.24, 7},
		{0.5, 12},
		{1, 20},
	}

	for _, tt := range tests {
		if got := StrokeCeiling(tt.level); got != tt.want {
			t.Errorf("StrokeCeiling(%v) = %d, want %d", tt.level, got, tt.want)
		}
	}
}

func testPool() *config.KanjiPool {
	return &config.KanjiPool{
		Bands: []config.KanjiBand{
			{Strokes: 1, Characters: "一"},
			{Strokes: 3, Characters: "山川"},
			{Strokes: 5, Characters: "𠮟"},
			{Strokes: 20, Characters: "鐘"},
		},
	}
}

// TestQuestionSystemNext 测试出题
func TestQuestionSystemNext(t *testing.T) {
	cfg := config.DefaultGameConfig().Question

	t.Run("难度0只出4画以内", func(t *testing.T) {
		sys := NewQuestionSystem(testPool(), cfg, game.NewRandomSource(1))
		allowed := map[string]bool{"一": true, "山": true, "川": true}
		seen := map[string]bool{}
		for i := 0; i < 200; i++ {
			q, err := sys.Next(0)
			if err != nil {
				t.Fatalf("Next failed: %v", err)
			}
			if !allowed[q.Character] {
				t.Fatalf("Unexpected character %q at level 0", q.Character)
			}
			seen[q.Character] = true
			if q.PreRollOffset > -2.5 || q.PreRollOffset <= -5.0 {
				t.Fatalf("PreRollOffset = %v, want in (-5, -2.5]", q.PreRollOffset)
			}
		}
		if len(seen) != 3 {
			t.Errorf("Saw %d distinct characters, want all 3", len(seen))
		}
	})

	t.Run("扩展区汉字作为一个字符", func(t *testing.T) {
		sys := NewQuestionSystem(testPool(), cfg, game.NewRandomSource(2))
		found := false
		for i := 0; i < 200; i++ {
			q, err := sys.Next(0.1) // 上限 5 画
			if err != nil {
				t.Fatalf("Next failed: %v", err)
			}
			if q.Character == "𠮟" {
				found = true
			}
			if len([]rune(q.Character)) != 1 {
				t.Fatalf("Character %q is not a single rune", q.Character)
			}
		}
		if !found {
			t.Error("Expected 𠮟 to be drawn at level 0.1")
		}
	})

	t.Run("字库为空", func(t *testing.T) {
		pool := &config.KanjiPool{Bands: []config.KanjiBand{{Strokes: 10, Characters: "家"}}}
		sys := NewQuestionSystem(pool, cfg, game.NewRandomSource(3))
		q, err := sys.Next(0)
		if !errors.Is(err, ErrEmptyPool) {
			t.Fatalf("error = %v, want ErrEmptyPool", err)
		}
		if q.Character != "" {
			t.Errorf("Character = %q, want empty on error", q.Character)
		}
	})

	t.Run("笔画窗口", func(t *testing.T) {
		pool := testPool()
		pool.BandWindow = 1
		sys := NewQuestionSystem(pool, cfg, game.NewRandomSource(4))
		for i := 0; i < 50; i++ {
			q, err := sys.Next(1) // 上限 20 画，只用 20 画分组
			if err != nil {
				t.Fatalf("Next failed: %v", err)
			}
			if q.Character != "鐘" {
				t.Fatalf("Character = %q, want 鐘", q.Character)
			}
		}
	})
}

// TestQuestionSystemDeterministic 测试相同种子出相同的题
func TestQuestionSystemDeterministic(t *testing.T) {
	cfg := config.DefaultGameConfig().Question
	a := NewQuestionSystem(testPool(), cfg, game.NewRandomSource(77))
	b := NewQuestionSystem(testPool(), cfg, game.NewRandomSource(77))

	for i := 0; i < 20; i++ {
		qa, _ := a.Next(0.5)
		qb, _ := b.Next(0.5)
		if qa != qb {
			t.Fatalf("Round %d: %+v vs %+v", i, qa, qb)
		}
	}
}
