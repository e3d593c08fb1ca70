package systems

import (
	"errors"
	"fmt"
	"log"

	"github.com/decker502/mikiri/pkg/components"
	"github.com/decker502/mikiri/pkg/config"
	"github.com/decker502/mikiri/pkg/game"
)

// ErrEmptyPool 笔画上限以内没有可出题的字符（字库配置错误）
var ErrEmptyPool = errors.New("no kanji available for stroke ceiling")

// StrokeCeiling 难度对应的笔画上限：int(4 + 16*level)
func StrokeCeiling(level float64) int {
	return int(float64(config.BaseStrokeCeiling) + 16*level)
}

// QuestionSystem 出题系统
type QuestionSystem struct {
	pool   *config.KanjiPool
	config config.QuestionConfig
	rng    game.RandomSource
}

// NewQuestionSystem 创建出题系统
func NewQuestionSystem(pool *config.KanjiPool, cfg config.QuestionConfig, rng game.RandomSource) *QuestionSystem {
	return &QuestionSystem{
		pool:   pool,
		config: cfg,
		rng:    rng,
	}
}

// Next 按难度随机出一道题
// 从笔画上限以内的字符中均匀抽取，PreRollOffset = -(preRollMin + rand*preRollSpread)
func (s *QuestionSystem) Next(level float64) (components.Question, error) {
	ceiling := StrokeCeiling(level)
	candidates := s.pool.Candidates(ceiling)
	if len(candidates) == 0 {
		return components.Question{}, fmt.Errorf("%w: ceiling %d", ErrEmptyPool, ceiling)
	}

	q := components.Question{
		Character:     candidates[s.rng.IntN(len(candidates))],
		PreRollOffset: -(s.config.PreRollMin + s.rng.Float64()*s.config.PreRollSpread),
	}

	log.Printf("[QuestionSystem] level=%.2f ceiling=%d candidates=%d -> %q (preroll %.2fs)",
		level, ceiling, len(candidates), q.Character, q.PreRollOffset)
	return q, nil
}
