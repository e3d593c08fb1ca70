// Package app 提供游戏应用的核心包装器
//
// 负责加载配置和字库、创建字体/音频/系统，并把它们组装成 GameScene。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/decker502/mikiri/pkg/config"
	"github.com/decker502/mikiri/pkg/game"
	"github.com/decker502/mikiri/pkg/scenes"
	"github.com/decker502/mikiri/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// answerMaxLength 答案输入框最多接受的字符数
const answerMaxLength = 8

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// FontPath 指定字体文件，为空则按配置中的候选路径查找
	FontPath string
	// Seed 随机数种子，0 表示使用当前时间
	Seed uint64
	// Mute 关闭音效
	Mute bool
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	config                   *config.GameConfig
	sceneManager             *game.SceneManager
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	gameConfig, err := config.LoadGameConfig(config.GameConfigPath)
	if err != nil {
		return nil, fmt.Errorf("游戏配置加载失败: %w", err)
	}

	pool, err := config.LoadKanjiPool(config.KanjiPoolPath)
	if err != nil {
		return nil, fmt.Errorf("字库加载失败: %w", err)
	}
	log.Printf("[App] 字库: %d 个笔画分组, 难度 0 可出题 %d 字",
		len(pool.Bands), len(pool.Candidates(config.BaseStrokeCeiling)))

	// 字体
	resourceManager := game.NewResourceManager()
	if err := resourceManager.LoadFont(cfg.FontPath, gameConfig.Font.Candidates); err != nil {
		return nil, fmt.Errorf("字体加载失败: %w", err)
	}

	rasterizer, err := systems.NewOpenTypeRasterizer(resourceManager.GlyphFont(),
		gameConfig.Glyph.BitmapWidth, gameConfig.Glyph.BitmapHeight, gameConfig.Glyph.FontSize)
	if err != nil {
		return nil, fmt.Errorf("文字位图初始化失败: %w", err)
	}

	// 音频
	audioContext := audio.NewContext(gameConfig.Audio.SampleRate)
	audioManager := game.NewAudioManager(audioContext, gameConfig.Audio.Volume, cfg.Mute)
	log.Printf("[App] AudioManager initialized (muted=%v)", cfg.Mute)

	// 出题和碎片生成共用同一个随机数来源
	rng := game.NewRandomSource(cfg.Seed)
	questions := systems.NewQuestionSystem(pool, gameConfig.Question, rng)
	fields := systems.NewFragmentFieldSystem(rasterizer, gameConfig.Fragments, systems.NewFieldLayout(gameConfig), rng)
	phases := systems.NewGamePhaseSystem(questions, fields, gameConfig.Phases)
	input := systems.NewKeyboardInput(answerMaxLength)

	sceneManager := game.NewSceneManager()
	sceneManager.SwitchTo(scenes.NewGameScene(gameConfig, resourceManager, audioManager, phases, input))

	return &App{
		config:       gameConfig,
		sceneManager: sceneManager,
		verbose:      cfg.Verbose,
	}, nil
}

// WindowConfig 返回窗口配置（供 main 设置窗口标题和大小）
func (a *App) WindowConfig() config.WindowConfig {
	return a.config.Window
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次），返回错误时游戏循环停止
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.config.Window.Width, a.config.Window.Height)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", a.config.Window.Width, a.config.Window.Height)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	return a.sceneManager.Update(deltaTime)
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.config.Window.Width, a.config.Window.Height
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
