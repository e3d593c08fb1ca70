// fragment_preview 离线生成碎片场预览图
//
// 用法:
//
//	go run ./cmd/fragment_preview --char 森 --level 0.5 --time 0 --out preview.png
//
// 不打开窗口，直接用 CPU 绘制文字位图和碎片，便于调整 data/game_config.yaml 中的参数。
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log"
	"math"
	"os"

	"github.com/decker502/mikiri/pkg/components"
	"github.com/decker502/mikiri/pkg/config"
	"github.com/decker502/mikiri/pkg/game"
	"github.com/decker502/mikiri/pkg/systems"
	"golang.org/x/image/vector"
)

// circleKappa 用四段三次贝塞尔曲线近似圆的控制点系数
const circleKappa = 0.5522847498

func main() {
	character := flag.String("char", "", "要预览的汉字，为空则按难度随机出题")
	level := flag.Float64("level", 0, "难度 0 ~ 1")
	elapsed := flag.Float64("time", 0, "回合时间（秒），0 时碎片组成文字形状")
	seed := flag.Uint64("seed", 1, "随机数种子")
	fontPath := flag.String("font", "", "字体文件路径，为空则按配置中的候选路径查找")
	configPath := flag.String("config", "data/game_config.yaml", "游戏配置文件")
	poolPath := flag.String("pool", "data/kanji_pool.yaml", "字库文件")
	out := flag.String("out", "fragment_preview.png", "输出 PNG 文件")
	glyphOut := flag.String("glyph", "", "额外输出文字位图 PNG（可选）")
	verbose := flag.Bool("verbose", false, "显示详细日志")
	flag.Parse()

	if !*verbose {
		log.SetFlags(0)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}

	rng := game.NewRandomSource(*seed)

	ch := *character
	if ch == "" {
		ch, err = pickCharacter(*poolPath, cfg.Question, *level, rng)
		if err != nil {
			log.Fatalf("出题失败: %v", err)
		}
	}

	rm := game.NewResourceManager()
	if err := rm.LoadFont(*fontPath, cfg.Font.Candidates); err != nil {
		log.Fatalf("字体加载失败: %v", err)
	}
	if rm.IsFallbackFont() {
		fmt.Fprintln(os.Stderr, "警告: 未找到日文字体，汉字将显示为缺字方框（使用 --font 指定字体）")
	}

	rasterizer, err := systems.NewOpenTypeRasterizer(rm.GlyphFont(), cfg.Glyph.BitmapWidth, cfg.Glyph.BitmapHeight, cfg.Glyph.FontSize)
	if err != nil {
		log.Fatalf("文字位图初始化失败: %v", err)
	}

	fields := systems.NewFragmentFieldSystem(rasterizer, cfg.Fragments, systems.NewFieldLayout(cfg), rng)
	field, err := fields.Generate(ch, *level)
	if err != nil {
		log.Fatalf("碎片生成失败: %v", err)
	}

	canvas := renderField(field.Fragments, *elapsed, cfg.Window.Width, cfg.Window.Height, cfg.Fragments.DrawAlpha)
	if err := writePNG(*out, canvas); err != nil {
		log.Fatalf("写入失败: %v", err)
	}

	if *glyphOut != "" {
		if err := writePNG(*glyphOut, field.Glyph); err != nil {
			log.Fatalf("写入失败: %v", err)
		}
	}

	fmt.Printf("字符: %s  难度: %.2f  时间: %.2fs  碎片: %d  字体: %s\n",
		ch, *level, *elapsed, len(field.Fragments), rm.FontPath())
	fmt.Printf("输出: %s\n", *out)
}

// loadConfig 读取配置文件
// 与字库一样，文件不存在时报错，不回退到默认值
func loadConfig(path string) (*config.GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config: %w", err)
	}
	return config.ParseGameConfig(data)
}

// pickCharacter 按难度从字库随机出题
func pickCharacter(poolPath string, cfg config.QuestionConfig, level float64, rng game.RandomSource) (string, error) {
	data, err := os.ReadFile(poolPath)
	if err != nil {
		return "", fmt.Errorf("failed to read kanji pool: %w", err)
	}
	pool, err := config.ParseKanjiPool(data)
	if err != nil {
		return "", err
	}
	q, err := systems.NewQuestionSystem(pool, cfg, rng).Next(level)
	if err != nil {
		return "", err
	}
	return q.Character, nil
}

// renderField 在黑色画布上绘制时间 t 的碎片（半透明白色实心圆）
// 画布四周留出边距，超出边距的碎片直接跳过，光栅器只需处理完整落在画布内的圆
func renderField(fragments []components.Fragment, t float64, width, height int, alpha float64) image.Image {
	margin := 0
	for _, f := range fragments {
		margin = max(margin, int(math.Ceil(f.Radius))+1)
	}
	padded := image.NewRGBA(image.Rect(-margin, -margin, width+margin, height+margin))
	draw.Draw(padded, padded.Bounds(), image.Black, image.Point{}, draw.Src)

	src := image.NewUniform(color.NRGBA{R: 255, G: 255, B: 255, A: uint8(alpha * 255)})
	positions := systems.FragmentPositions(fragments, t, nil)

	var z vector.Rasterizer
	for i, f := range fragments {
		x, y := positions[2*i], positions[2*i+1]
		bounds := image.Rect(
			int(math.Floor(x-f.Radius)), int(math.Floor(y-f.Radius)),
			int(math.Ceil(x+f.Radius)), int(math.Ceil(y+f.Radius)),
		)
		if bounds.Empty() || !bounds.In(padded.Bounds()) {
			continue
		}

		z.Reset(bounds.Dx(), bounds.Dy())
		addCircle(&z, float32(x-float64(bounds.Min.X)), float32(y-float64(bounds.Min.Y)), float32(f.Radius))
		z.Draw(padded, bounds, src, image.Point{})
	}
	return padded.SubImage(image.Rect(0, 0, width, height))
}

// addCircle 把圆形路径加入光栅器
func addCircle(z *vector.Rasterizer, cx, cy, r float32) {
	k := r * circleKappa
	z.MoveTo(cx+r, cy)
	z.CubeTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
	z.CubeTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
	z.CubeTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
	z.CubeTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	z.ClosePath()
}

// writePNG 写入 PNG 文件
func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
