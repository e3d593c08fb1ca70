package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/decker502/mikiri/pkg/app"
	"github.com/decker502/mikiri/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

// run 解析参数并运行游戏，返回致命错误
func run(args []string) error {
	fs := flag.NewFlagSet("mikiri", flag.ContinueOnError)
	verbose := fs.Bool("verbose", false, "显示详细日志")
	fontPath := fs.String("font", "", "字体文件路径（.ttf/.otf/.ttc），为空则自动查找")
	seed := fs.Uint64("seed", 0, "随机数种子，0 表示使用当前时间")
	fullscreen := fs.Bool("fullscreen", false, "全屏启动")
	mute := fs.Bool("mute", false, "关闭音效")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("参数错误: %w", err)
	}

	embedded.Init(dataFS)

	game, err := app.NewApp(app.Config{
		Verbose:  *verbose,
		FontPath: *fontPath,
		Seed:     *seed,
		Mute:     *mute,
	})
	if err != nil {
		return fmt.Errorf("初始化失败: %w", err)
	}

	window := game.WindowConfig()
	ebiten.SetWindowSize(window.Width, window.Height)
	ebiten.SetWindowTitle(window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(*fullscreen)

	if err := ebiten.RunGame(game); err != nil {
		return fmt.Errorf("游戏异常退出: %w", err)
	}
	return nil
}

// reportError 输出致命错误
// 不经过 log：非 --verbose 模式下 log 输出已被丢弃
func reportError(w io.Writer, err error) {
	fmt.Fprintf(w, "mikiri: %v\n", err)
}
