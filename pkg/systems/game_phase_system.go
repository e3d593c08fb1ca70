package systems

import (
	"fmt"
	"log"
	"math"

	"github.com/decker502/mikiri/pkg/components"
	"github.com/decker502/mikiri/pkg/config"
	"github.com/decker502/mikiri/pkg/game"
)

// timeUpEpsilon 剩余时间低于此值视为时间到
const timeUpEpsilon = 1e-3

// PlayerInput 每帧的玩家输入
// 由 KeyboardInput 实现，测试中使用假实现
type PlayerInput interface {
	// ConfirmJustPressed 本帧是否按下确认键（Enter）
	ConfirmJustPressed() bool
	// EditingText 输入法正在编辑、尚未确定的文本
	EditingText() string
	// UpdateText 把本帧的输入应用到已确定的文本上并返回结果
	UpdateText(committed string) string
}

// QuestionSource 出题来源
type QuestionSource interface {
	Next(level float64) (components.Question, error)
}

// FieldGenerator 碎片场生成器
type FieldGenerator interface {
	Generate(character string, level float64) (*FragmentField, error)
}

// TransitionHandler 阶段切换回调
type TransitionHandler func(from, to components.GamePhase)

// GamePhaseSystem 游戏阶段状态机
//
// 只有一个当前阶段和一个阶段计时器；
// 题目、碎片场和 SessionState 只在阶段切换时修改。
// 唯一的例外是倒计时阶段每帧更新的答案输入。
type GamePhaseSystem struct {
	questions QuestionSource
	fields    FieldGenerator
	config    config.PhaseConfig

	phase      components.GamePhase
	phaseTimer float64 // 当前阶段经过时间（秒）
	roundClock float64 // 回合时钟，从 PreRollOffset 开始计时

	question    components.Question
	field       *FragmentField
	session     game.SessionState
	lastCorrect bool

	onTransition []TransitionHandler
}

// NewGamePhaseSystem 创建游戏阶段状态机，初始阶段为标题画面
func NewGamePhaseSystem(questions QuestionSource, fields FieldGenerator, cfg config.PhaseConfig) *GamePhaseSystem {
	return &GamePhaseSystem{
		questions: questions,
		fields:    fields,
		config:    cfg,
		phase:     components.PhaseTitle,
		session:   game.NewSessionState(),
	}
}

// OnTransition 注册阶段切换回调（音效、日志等）
func (s *GamePhaseSystem) OnTransition(handler TransitionHandler) {
	s.onTransition = append(s.onTransition, handler)
}

// Update 推进一帧
//
// 返回的错误（字库为空、文字绘制失败）是致命错误，应停止游戏循环
func (s *GamePhaseSystem) Update(dt float64, input PlayerInput) error {
	s.phaseTimer += dt

	switch s.phase {
	case components.PhaseTitle:
		if s.phaseTimer > s.config.TitleDwell && input.ConfirmJustPressed() {
			if err := s.prepareRound(); err != nil {
				return err
			}
			s.enterPhase(components.PhaseQuestionAnnounce)
		}

	case components.PhaseQuestionAnnounce:
		if s.phaseTimer > s.config.AnnounceDuration {
			s.startCountdown()
		}

	case components.PhaseCountdown:
		s.roundClock += dt
		if s.Remaining() < timeUpEpsilon ||
			(s.session.Answer != "" && input.EditingText() == "" && input.ConfirmJustPressed()) {
			s.lastCorrect = s.session.Answer == s.question.Character
			s.enterPhase(components.PhaseJudging)
			return nil
		}
		s.session.Answer = input.UpdateText(s.session.Answer)

	case components.PhaseJudging:
		// 判定演出期间碎片继续飞行
		s.roundClock += dt
		if s.phaseTimer > s.config.JudgeDuration {
			if s.lastCorrect {
				s.session.RecordCorrect()
			}
			s.enterPhase(components.PhaseReveal)
		}

	case components.PhaseReveal:
		if s.phaseTimer > s.config.RevealDwell && input.ConfirmJustPressed() {
			if !s.lastCorrect {
				s.enterPhase(components.PhaseGameOver)
				return nil
			}
			s.session.AdvanceRound(s.config.LevelStep)
			if err := s.prepareRound(); err != nil {
				return err
			}
			s.beginNextRound()
		}

	case components.PhaseGameOver:
		if s.phaseTimer > s.config.GameOverDwell && input.ConfirmJustPressed() {
			s.session.Reset()
			if err := s.prepareRound(); err != nil {
				return err
			}
			s.beginNextRound()
		}
	}

	return nil
}

// prepareRound 按当前难度生成题目和碎片场，并记入出题记录
func (s *GamePhaseSystem) prepareRound() error {
	level := s.session.Level

	q, err := s.questions.Next(level)
	if err != nil {
		return fmt.Errorf("failed to generate question at level %.2f: %w", level, err)
	}

	field, err := s.fields.Generate(q.Character, level)
	if err != nil {
		return fmt.Errorf("failed to generate fragments for %q: %w", q.Character, err)
	}

	s.question = q
	s.field = field
	s.lastCorrect = false
	s.session.BeginRound(q.Character)
	return nil
}

// beginNextRound 题目准备好后进入倒计时（或先显示"第 N 问"）
func (s *GamePhaseSystem) beginNextRound() {
	if s.config.AnnounceBetweenRounds {
		s.enterPhase(components.PhaseQuestionAnnounce)
		return
	}
	s.startCountdown()
}

// startCountdown 回合时钟从 PreRollOffset 开始
func (s *GamePhaseSystem) startCountdown() {
	s.roundClock = s.question.PreRollOffset
	s.enterPhase(components.PhaseCountdown)
}

// enterPhase 切换阶段并重置阶段计时器
func (s *GamePhaseSystem) enterPhase(to components.GamePhase) {
	from := s.phase
	s.phase = to
	s.phaseTimer = 0

	log.Printf("[GamePhase] %s -> %s (stage %d, level %.2f, streak %d)",
		from, to, s.session.Stage, s.session.Level, s.session.ConsecutiveCorrect)

	for _, handler := range s.onTransition {
		handler(from, to)
	}
}

// Phase 当前阶段
func (s *GamePhaseSystem) Phase() components.GamePhase {
	return s.phase
}

// PhaseElapsed 当前阶段经过的时间（秒）
func (s *GamePhaseSystem) PhaseElapsed() float64 {
	return s.phaseTimer
}

// RoundClock 回合时钟（碎片运动使用的时间）
func (s *GamePhaseSystem) RoundClock() float64 {
	return s.roundClock
}

// Remaining 剩余时间 = max(timeLimit - roundClock, 0)
func (s *GamePhaseSystem) Remaining() float64 {
	return math.Max(s.config.TimeLimit-s.roundClock, 0)
}

// CountdownVisible 是否显示倒计时数字（判定演出中不显示）
func (s *GamePhaseSystem) CountdownVisible() bool {
	return s.phase == components.PhaseCountdown && s.Remaining() < s.config.CountdownVisibleBelow
}

// Question 当前题目
func (s *GamePhaseSystem) Question() components.Question {
	return s.question
}

// Field 当前碎片场（标题画面时为 nil）
func (s *GamePhaseSystem) Field() *FragmentField {
	return s.field
}

// Session 返回 SessionState 的副本
func (s *GamePhaseSystem) Session() game.SessionState {
	return s.session.Clone()
}

// LastAnswerCorrect 当前回合的答案是否正确（判定阶段之后有效）
func (s *GamePhaseSystem) LastAnswerCorrect() bool {
	return s.lastCorrect
}
