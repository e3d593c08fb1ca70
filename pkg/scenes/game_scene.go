package scenes

import (
	"log"

	"github.com/decker502/mikiri/pkg/components"
	"github.com/decker502/mikiri/pkg/config"
	"github.com/decker502/mikiri/pkg/game"
	"github.com/decker502/mikiri/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
)

// GameScene 游戏主场景
// 每帧推进 GamePhaseSystem，并按当前阶段绘制对应的画面
type GameScene struct {
	config          *config.GameConfig
	resourceManager *game.ResourceManager
	audioManager    *game.AudioManager

	phases *systems.GamePhaseSystem
	input  *systems.KeyboardInput

	fragmentRenderer  *systems.FragmentRenderSystem
	bloom             *systems.BloomEffect
	textInputRenderer *systems.TextInputRenderSystem

	// 当前题目文字位图（答案画面使用），碎片场变化时重新创建
	glyphImage *ebiten.Image
	glyphField *systems.FragmentField

	clock        float64 // 场景运行总时间（闪烁、泛光使用）
	lastNumeral  int     // 上一帧显示的倒计时数字，0 = 未显示
	screenWidth  float64
	screenHeight float64
}

// NewGameScene 创建游戏主场景
//
// 参数：
//   - cfg: 游戏配置
//   - rm: 已加载字体的资源管理器
//   - am: 音频管理器（可为 nil）
//   - phases: 游戏阶段状态机
//   - input: 键盘输入
func NewGameScene(cfg *config.GameConfig, rm *game.ResourceManager, am *game.AudioManager, phases *systems.GamePhaseSystem, input *systems.KeyboardInput) *GameScene {
	scene := &GameScene{
		config:          cfg,
		resourceManager: rm,
		audioManager:    am,
		phases:          phases,
		input:           input,
		screenWidth:     float64(cfg.Window.Width),
		screenHeight:    float64(cfg.Window.Height),
	}

	scene.fragmentRenderer = systems.NewFragmentRenderSystem(cfg.Fragments.DrawAlpha)
	scene.bloom = systems.NewBloomEffect(cfg.Window.Width, cfg.Window.Height)
	scene.textInputRenderer = systems.NewTextInputRenderSystem(
		rm.Face(systems.InputFontSize),
		rm.Face(systems.InputPromptFontSize),
	)

	// 输入法候选窗口显示在输入框下方
	x, y, w, h := systems.InputBoxRect(scene.screenWidth, scene.screenHeight)
	input.SetIMEPosition(int(x+w/2), int(y+h))

	phases.OnTransition(scene.onPhaseTransition)

	log.Printf("[GameScene] Initialized (%dx%d, font %s, bloom %v)",
		cfg.Window.Width, cfg.Window.Height, rm.FontPath(), scene.bloom.Enabled())
	return scene
}

// Update 推进一帧
func (s *GameScene) Update(deltaTime float64) error {
	s.clock += deltaTime

	if err := s.phases.Update(deltaTime, s.input); err != nil {
		return err
	}

	if s.phases.Phase() == components.PhaseCountdown {
		s.input.UpdateCursorBlink(deltaTime)
		s.updateCountdownTick()
	}
	return nil
}

// updateCountdownTick 倒计时数字变化时播放提示音
func (s *GameScene) updateCountdownTick() {
	numeral := 0
	if s.phases.CountdownVisible() {
		numeral = countdownNumeral(s.phases.Remaining())
	}
	if numeral != 0 && numeral != s.lastNumeral {
		s.audioManager.PlaySound(game.SoundTick)
	}
	s.lastNumeral = numeral
}

// onPhaseTransition 阶段切换回调
func (s *GameScene) onPhaseTransition(from, to components.GamePhase) {
	if from == components.PhaseCountdown {
		s.input.Blur()
		s.lastNumeral = 0
	}
	if to == components.PhaseCountdown {
		s.input.Reset()
	}
	if id, ok := soundForTransition(from, to, s.phases.LastAnswerCorrect()); ok {
		s.audioManager.PlaySound(id)
	}
}

// soundForTransition 阶段切换对应的音效
//   - 进入判定：答对 / 答错
//   - 玩家按确认键推进的切换：确认音
func soundForTransition(from, to components.GamePhase, correct bool) (game.SoundID, bool) {
	if to == components.PhaseJudging {
		if correct {
			return game.SoundCorrect, true
		}
		return game.SoundWrong, true
	}
	switch from {
	case components.PhaseTitle, components.PhaseReveal, components.PhaseGameOver:
		return game.SoundConfirm, true
	}
	return 0, false
}

// countdownNumeral 倒计时显示的数字：max(1, int(remaining)+1)
func countdownNumeral(remaining float64) int {
	return max(1, int(remaining)+1)
}

// countdownFontSize 倒计时数字字号，越接近 0 越大
func countdownFontSize(remaining float64) float64 {
	return 180 + 20*(10-remaining)
}

// Draw 按当前阶段绘制画面
func (s *GameScene) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	switch s.phases.Phase() {
	case components.PhaseTitle:
		s.drawTitle(screen)
	case components.PhaseQuestionAnnounce:
		s.drawQuestionAnnounce(screen)
	case components.PhaseCountdown, components.PhaseJudging:
		s.drawCountdown(screen)
		if s.phases.Phase() == components.PhaseJudging {
			s.drawJudge(screen)
		}
	case components.PhaseReveal:
		s.drawReveal(screen)
	case components.PhaseGameOver:
		s.drawGameOver(screen)
	}
}

// drawFragmentsWithBloom 绘制碎片并叠加泛光
func (s *GameScene) drawFragmentsWithBloom(screen *ebiten.Image, t float64) {
	field := s.phases.Field()
	if field == nil {
		return
	}

	s.fragmentRenderer.Draw(screen, field.Fragments, t)

	if target := s.bloom.Target(); target != nil {
		s.fragmentRenderer.Draw(target, field.Fragments, t)
		s.bloom.Update()
		a1, a4, a8 := systems.BloomIntensities(s.clock)
		s.bloom.Draw(screen, a1, a4, a8)
	}
}

// currentGlyphImage 返回当前题目的文字图像（按碎片场缓存）
func (s *GameScene) currentGlyphImage() *ebiten.Image {
	field := s.phases.Field()
	if field == nil || field.Glyph == nil {
		return nil
	}
	if field != s.glyphField {
		if s.glyphImage != nil {
			s.glyphImage.Deallocate()
		}
		s.glyphImage = ebiten.NewImageFromImage(field.Glyph)
		s.glyphField = field
	}
	return s.glyphImage
}
