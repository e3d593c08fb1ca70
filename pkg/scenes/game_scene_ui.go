package scenes

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/decker502/mikiri/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 画面文字
const (
	titleText         = "瞬字の見切り"
	startPromptText   = "Enterではじめる"
	nextPromptText    = "Enterで次の問題へ "
	gameOverPrompt    = "Enterを押してください "
	restartPromptText = "Enterではじめから "
	promptMarker      = "▶"
)

// 字号
const (
	titleFontSize     = 80.0
	announceFontSize  = 80.0
	stageFontSize     = 20.0
	promptFontSize    = 20.0
	answerFontSize    = 42.0
	streakFontSize    = 80.0
	streakLabelSize   = 48.0
	historyFontSize   = 24.0
	startPromptOffset = 96.0
)

// 布局
const (
	answerBottomOffset = 56.0  // "答えは X" 距画面底部
	gameOverShiftY     = -56.0 // 结算画面整体上移
	historyBoxWidth    = 400.0
	historyBoxHeight   = 200.0
	historyBoxOffsetY  = 160.0 // 出题一览框中心距画面底部
	historyLineSpacing = 1.3
)

var (
	colorBackground  = color.RGBA{0, 0, 0, 255}
	colorWhite       = color.RGBA{255, 255, 255, 255}
	colorCyan        = color.RGBA{0, 255, 255, 255}
	colorMagenta     = color.RGBA{255, 0, 255, 255}
	colorStartPrompt = color.RGBA{204, 204, 204, 255}
	colorLawnGreen   = color.RGBA{124, 252, 0, 255}
	colorFirebrick   = color.RGBA{178, 34, 34, 255}
	colorGray        = color.RGBA{128, 128, 128, 255}
	colorShadow      = color.RGBA{0, 0, 0, 255}
)

// withAlpha 给不透明颜色加上透明度
func withAlpha(c color.RGBA, alpha float64) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(utils.Clamp(alpha, 0, 1) * 255)}
}

// drawText 绘制文本
// (x, y) 为对齐点，primary 为水平对齐，secondary 为垂直对齐
func drawText(screen *ebiten.Image, str string, face text.Face, x, y float64, primary, secondary text.Align, clr color.RGBA, alpha float64) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.ColorScale.ScaleAlpha(float32(alpha))
	op.PrimaryAlign = primary
	op.SecondaryAlign = secondary
	text.Draw(screen, str, face, op)
}

// baselineTop 基线位于 baselineY 时文字顶部的 y 坐标
func baselineTop(face text.Face, baselineY float64) float64 {
	return baselineY - face.Metrics().HAscent
}

// drawTitle 标题画面：带色差效果的标题和闪烁的开始提示
func (s *GameScene) drawTitle(screen *ebiten.Image) {
	cx, cy := s.screenWidth/2, s.screenHeight/2
	face := s.resourceManager.Face(titleFontSize)

	// 青色和品红各偏移 2 像素，再叠加白色
	layers := []struct {
		dx    float64
		clr   color.RGBA
		alpha float64
	}{
		{2, colorCyan, 0.5},
		{-2, colorMagenta, 0.5},
		{0, colorWhite, 1},
	}
	for _, l := range layers {
		op := &text.DrawOptions{}
		op.GeoM.Scale(0.75, 1.2)
		op.GeoM.Translate(cx+l.dx, cy-30)
		op.ColorScale.ScaleWithColor(l.clr)
		op.ColorScale.ScaleAlpha(float32(l.alpha))
		op.PrimaryAlign = text.AlignCenter
		op.SecondaryAlign = text.AlignCenter
		text.Draw(screen, titleText, face, op)
	}

	if s.phases.PhaseElapsed() > s.config.Phases.TitleDwell {
		drawText(screen, startPromptText, s.resourceManager.Face(promptFontSize),
			cx, cy+startPromptOffset, text.AlignCenter, text.AlignCenter,
			colorStartPrompt, utils.Jump0_1(0.8, s.clock))
	}
}

// drawQuestionAnnounce "第 N 问"
func (s *GameScene) drawQuestionAnnounce(screen *ebiten.Image) {
	drawText(screen, stageLabel(s.phases.Session().Stage), s.resourceManager.Face(announceFontSize),
		s.screenWidth/2, s.screenHeight/2, text.AlignCenter, text.AlignCenter, colorWhite, 1)
}

// stageLabel 题号文字
func stageLabel(stage int) string {
	return fmt.Sprintf("第 %d 問", stage)
}

// drawCountdown 碎片飞行画面：碎片、输入框、题号和倒计时数字
func (s *GameScene) drawCountdown(screen *ebiten.Image) {
	s.drawFragmentsWithBloom(screen, s.phases.RoundClock())

	s.textInputRenderer.Draw(screen, s.input.State())

	drawText(screen, stageLabel(s.phases.Session().Stage), s.resourceManager.Face(stageFontSize),
		4, 0, text.AlignStart, text.AlignStart, colorWhite, 1)

	if s.phases.CountdownVisible() {
		remaining := s.phases.Remaining()
		face := s.resourceManager.Face(math.Round(countdownFontSize(remaining)))
		drawText(screen, fmt.Sprint(countdownNumeral(remaining)), face,
			s.screenWidth/2, s.screenHeight/2, text.AlignCenter, text.AlignCenter, colorWhite, 0.85)
	}
}

// drawJudge 判定演出：答对显示收缩的绿色圆环，答错显示收缩的红色叉号
func (s *GameScene) drawJudge(screen *ebiten.Image) {
	elapsed := s.phases.PhaseElapsed()
	if elapsed >= 1.0 {
		return
	}

	t0_1 := utils.Clamp(elapsed/0.5, 0, 1)
	t1_0 := utils.EaseInExpo(utils.Clamp(1-elapsed/0.5, 0, 1))
	alpha := (0.3 + 0.5*utils.Square0_1(0.1, s.clock)) * t0_1

	cx, cy := float32(s.screenWidth/2), float32(s.screenHeight/2)

	if s.phases.LastAnswerCorrect() {
		radius := float32(200 + 500*t1_0)
		vector.StrokeCircle(screen, cx, cy, radius, 70, withAlpha(colorLawnGreen, alpha), true)
		return
	}

	scale := 1 + 2*t1_0
	arm := float32(300 * scale / math.Sqrt2)
	width := float32(80 * scale)
	clr := withAlpha(colorFirebrick, alpha)
	vector.StrokeLine(screen, cx-arm, cy-arm, cx+arm, cy+arm, width, clr, true)
	vector.StrokeLine(screen, cx-arm, cy+arm, cx+arm, cy-arm, width, clr, true)
}

// drawReveal 答案画面：半透明的文字、t=0 时刻的碎片、答案和提示
func (s *GameScene) drawReveal(screen *ebiten.Image) {
	elapsed := s.phases.PhaseElapsed()

	if glyph := s.currentGlyphImage(); glyph != nil {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(s.screenWidth/float64(glyph.Bounds().Dx()), s.screenHeight/float64(glyph.Bounds().Dy()))
		op.GeoM.Translate(0, -s.config.Fragments.VerticalOffset)
		op.Filter = ebiten.FilterLinear
		op.ColorScale.ScaleAlpha(0.5)
		screen.DrawImage(glyph, op)
	}

	s.drawFragmentsWithBloom(screen, 0)

	answer := "答えは " + s.phases.Question().Character
	face := s.resourceManager.Face(answerFontSize)
	ax, ay := s.screenWidth/2, s.screenHeight-answerBottomOffset
	drawText(screen, answer, face, ax+4, ay+4, text.AlignCenter, text.AlignCenter, colorShadow, 1)
	drawText(screen, answer, face, ax, ay, text.AlignCenter, text.AlignCenter, colorWhite, 1)

	if elapsed > s.config.Phases.RevealDwell {
		prompt := gameOverPrompt
		if s.phases.LastAnswerCorrect() {
			prompt = nextPromptText
		}
		s.drawCornerPrompt(screen, prompt)
	}

	// 黑色淡入
	if fade := 1 - utils.Clamp(elapsed/0.3, 0, 1); fade > 0 {
		vector.DrawFilledRect(screen, 0, 0, float32(s.screenWidth), float32(s.screenHeight), withAlpha(colorBackground, fade), false)
	}
}

// drawCornerPrompt 右下角的提示文字和闪烁的 ▶
func (s *GameScene) drawCornerPrompt(screen *ebiten.Image, prompt string) {
	face := s.resourceManager.Face(promptFontSize)
	drawText(screen, prompt, face, s.screenWidth, s.screenHeight, text.AlignEnd, text.AlignEnd, colorWhite, 1)

	_, h := text.Measure(prompt, face, 0)
	markerX := s.screenWidth - text.Advance(prompt, face)
	drawText(screen, promptMarker, face, markerX, s.screenHeight-h/2,
		text.AlignEnd, text.AlignCenter, colorWhite, utils.Square0_1(0.8, s.clock))
}

// drawGameOver 结算画面：连续答对数和出题一览
func (s *GameScene) drawGameOver(screen *ebiten.Image) {
	elapsed := s.phases.PhaseElapsed()
	alpha := utils.Clamp(elapsed/1.5, 0, 1)
	session := s.phases.Session()

	cx := s.screenWidth / 2
	baseline := s.screenHeight/2 - 40 + gameOverShiftY

	// "連続正答は N 回でした"，数字居中于 cx+20
	numFace := s.resourceManager.Face(streakFontSize)
	labelFace := s.resourceManager.Face(streakLabelSize)
	num := fmt.Sprint(session.ConsecutiveCorrect)
	numW := text.Advance(num, numFace)
	numX := cx + 20 - numW/2

	drawText(screen, num, numFace, numX, baselineTop(numFace, baseline), text.AlignStart, text.AlignStart, colorLawnGreen, alpha)
	drawText(screen, "連続正答は ", labelFace, numX, baselineTop(labelFace, baseline), text.AlignEnd, text.AlignStart, colorWhite, alpha)
	drawText(screen, " 回でした", labelFace, numX+numW, baselineTop(labelFace, baseline), text.AlignStart, text.AlignStart, colorWhite, alpha)

	// 出题一览
	boxX := cx - historyBoxWidth/2
	boxY := s.screenHeight - historyBoxOffsetY - historyBoxHeight/2 + gameOverShiftY
	historyFace := s.resourceManager.Face(historyFontSize)
	lines := utils.WrapText("出題一覧: "+session.HistoryText(","), historyFace, historyBoxWidth)
	maxLines := int(historyBoxHeight / (historyFontSize * historyLineSpacing))
	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}

	op := &text.DrawOptions{}
	op.GeoM.Translate(boxX, boxY)
	op.ColorScale.ScaleWithColor(colorWhite)
	op.ColorScale.ScaleAlpha(float32(alpha))
	op.LineSpacing = historyFontSize * historyLineSpacing
	text.Draw(screen, strings.Join(lines, "\n"), historyFace, op)

	vector.StrokeRect(screen, float32(boxX-4), float32(boxY-2), historyBoxWidth+8, historyBoxHeight+4, 2, colorGray, true)

	if elapsed > s.config.Phases.GameOverDwell {
		s.drawCornerPrompt(screen, restartPromptText)
	}
}
