package game

import (
	"math"
	"strings"
)

// SessionState 一局游戏的状态
//
// 由 GamePhaseSystem 持有，只在阶段切换时修改
type SessionState struct {
	Level              float64  // 难度 0 ~ 1
	Stage              int      // 当前题号（从 1 开始）
	ConsecutiveCorrect int      // 连续答对数
	History            []string // 已出过的题目
	Answer             string   // 玩家当前输入的答案
}

// NewSessionState 创建新一局的状态
func NewSessionState() SessionState {
	return SessionState{Stage: 1}
}

// Reset 回到第一题
// 难度、题号、出题记录、输入和连续答对数全部清零
func (s *SessionState) Reset() {
	*s = NewSessionState()
}

// levelPrecision 难度按 1e-9 取整，避免 0.1 累加十次得到 0.9999999999999999
const levelPrecision = 1e9

// AdvanceRound 答对后进入下一题：难度增加 step（上限 1），题号加一
func (s *SessionState) AdvanceRound(step float64) {
	s.Level = math.Round((s.Level+step)*levelPrecision) / levelPrecision
	if s.Level > 1 {
		s.Level = 1
	}
	if s.Level < 0 {
		s.Level = 0
	}
	s.Stage++
}

// BeginRound 记录新题目并清空输入
func (s *SessionState) BeginRound(character string) {
	s.History = append(s.History, character)
	s.Answer = ""
}

// RecordCorrect 连续答对数加一
func (s *SessionState) RecordCorrect() {
	s.ConsecutiveCorrect++
}

// HistoryText 用分隔符连接出题记录
func (s SessionState) HistoryText(sep string) string {
	return strings.Join(s.History, sep)
}

// Clone 返回独立的副本（History 不共享底层数组）
func (s SessionState) Clone() SessionState {
	c := s
	c.History = append([]string(nil), s.History...)
	return c
}
