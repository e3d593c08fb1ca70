package systems

import (
	"image/color"

	"github.com/decker502/mikiri/pkg/components"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 输入框布局
const (
	inputBoxWidth       = 320.0
	inputBoxHeight      = 64.0
	inputBoxBottomSpace = 12.0 // 输入框下边缘到画面底部的距离
	inputBandPadding    = 32.0 // 背景暗带在输入框上下各多出的高度
	inputCursorHalfLen  = 20.0

	// InputFontSize 答案文字字号
	InputFontSize = 42.0
	// InputPromptFontSize 提示文字字号
	InputPromptFontSize = 16.0
)

// AnswerPrompt 输入框上方的提示文字
const AnswerPrompt = "出てくる漢字１文字を答えてください"

var (
	inputBandColor   = color.RGBA{0, 0, 0, 204}
	inputFrameColor  = color.RGBA{192, 192, 192, 255} // silver
	inputTextColor   = color.White
	compositionColor = color.RGBA{128, 128, 128, 255}
	inputPromptColor = color.White
	inputCursorColor = color.RGBA{230, 230, 230, 230}
)

// InputBoxRect 输入框位置（画面底部居中）
func InputBoxRect(screenWidth, screenHeight float64) (x, y, w, h float64) {
	cx := screenWidth / 2
	cy := screenHeight - inputBoxHeight/2 - inputBoxBottomSpace
	return cx - inputBoxWidth/2, cy - inputBoxHeight/2, inputBoxWidth, inputBoxHeight
}

// TextInputRenderSystem 答案输入框渲染系统
// 负责绘制背景暗带、边框、已确定文本、输入法未确定文本、光标和提示文字
type TextInputRenderSystem struct {
	textFace   *text.GoTextFace
	promptFace *text.GoTextFace
}

// NewTextInputRenderSystem 创建输入框渲染系统
func NewTextInputRenderSystem(textFace, promptFace *text.GoTextFace) *TextInputRenderSystem {
	return &TextInputRenderSystem{
		textFace:   textFace,
		promptFace: promptFace,
	}
}

// Draw 绘制输入框
func (s *TextInputRenderSystem) Draw(screen *ebiten.Image, input *components.TextInputComponent) {
	sw := float64(screen.Bounds().Dx())
	sh := float64(screen.Bounds().Dy())
	x, y, w, h := InputBoxRect(sw, sh)
	cy := y + h/2

	// 1. 背景暗带（横跨整个画面）
	bandH := h + inputBandPadding*2
	vector.DrawFilledRect(screen, 0, float32(cy-bandH/2), float32(sw), float32(bandH), inputBandColor, false)

	// 2. 边框
	vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 2, inputFrameColor, true)

	// 3. 文本：光标前 + 未确定文本（灰色）+ 光标后，已确定文本居中
	cursor := min(max(input.CursorPosition, 0), len(input.Text))
	before := input.Text[:cursor]
	after := input.Text[cursor:]

	committedWidth := text.Advance(input.Text, s.textFace)
	penX := x + w/2 - committedWidth/2

	penX = s.drawSegment(screen, before, penX, cy, inputTextColor)
	cursorX := penX
	penX = s.drawSegment(screen, input.Composition, penX, cy, compositionColor)
	if input.Composition != "" {
		cursorX = penX
	}
	s.drawSegment(screen, after, penX, cy, inputTextColor)

	// 4. 光标（闪烁的竖线）
	if input.IsFocused && input.CursorVisible {
		vector.StrokeLine(screen,
			float32(cursorX), float32(cy-inputCursorHalfLen),
			float32(cursorX), float32(cy+inputCursorHalfLen),
			2, inputCursorColor, true)
	}

	// 5. 提示文字
	op := &text.DrawOptions{}
	op.GeoM.Translate(x+w/2, y-12)
	op.ColorScale.ScaleWithColor(inputPromptColor)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignEnd
	text.Draw(screen, AnswerPrompt, s.promptFace, op)
}

// drawSegment 从 penX 开始绘制一段文本（垂直居中于 cy），返回结束位置
func (s *TextInputRenderSystem) drawSegment(screen *ebiten.Image, str string, penX, cy float64, clr color.Color) float64 {
	if str == "" {
		return penX
	}

	op := &text.DrawOptions{}
	op.GeoM.Translate(penX, cy)
	op.ColorScale.ScaleWithColor(clr)
	op.SecondaryAlign = text.AlignCenter
	text.Draw(screen, str, s.textFace, op)

	return penX + text.Advance(str, s.textFace)
}
